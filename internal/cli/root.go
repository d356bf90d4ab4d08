/*
 * root.go, part of cmview.
 *
 * Copyright 2026 The cmview authors
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 */

// Package cli implements the cmview command line.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/cmview/cmview/config"
)

// Execute runs the root command and exits with status 1 on error.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := newRootCmd(os.Stdout, os.Stderr).ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

// app is the state shared by all subcommands.
type app struct {
	out     io.Writer
	errOut  io.Writer
	cfg     config.Config
	log     *zap.Logger
	cfgPath string
	verbose bool
	json    bool
	quiet   bool
}

func (A *app) setup() error {
	cfg, err := config.Load(A.cfgPath)
	if err != nil {
		return err
	}
	A.cfg = cfg
	if A.quiet {
		A.log = zap.NewNop()
		return nil
	}
	var zc zap.Config
	if A.json {
		zc = zap.NewProductionConfig()
	} else {
		zc = zap.NewDevelopmentConfig()
		zc.Level = zap.NewAtomicLevelAt(zapcore.InfoLevel)
		zc.DisableStacktrace = true
	}
	if A.verbose {
		zc.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	A.log, err = zc.Build()
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	return nil
}

func newRootCmd(out, errOut io.Writer) *cobra.Command {
	A := &app{out: out, errOut: errOut, log: zap.NewNop()}
	cmd := &cobra.Command{
		Use:          "cmview",
		Short:        "Protein contact maps, shown in PyMol and refined with Tinker",
		SilenceUsage: true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			return A.setup()
		},
		PersistentPostRun: func(_ *cobra.Command, _ []string) {
			_ = A.log.Sync()
		},
	}
	cmd.SetOut(out)
	cmd.SetErr(errOut)
	cmd.PersistentFlags().StringVar(&A.cfgPath, "config", "", "configuration file (default $"+config.EnvConfig+" or ~/"+config.DefaultFileName+")")
	cmd.PersistentFlags().BoolVarP(&A.verbose, "verbose", "v", false, "log debug messages")
	cmd.PersistentFlags().BoolVar(&A.json, "json", false, "log in JSON")
	cmd.PersistentFlags().BoolVarP(&A.quiet, "quiet", "q", false, "don't log")

	cmd.AddCommand(contactsCmd(A), plotCmd(A), pymolCmd(A), tinkerCmd(A))
	return cmd
}
