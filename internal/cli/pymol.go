/*
 * pymol.go, part of cmview.
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

package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/cmview/cmview/model"
	"github.com/cmview/cmview/pymol"
	"github.com/cmview/cmview/rig"
)

type pymolFlags struct {
	modelFlags
	url    string
	serial int
}

func (F *pymolFlags) register(cmd *cobra.Command) {
	F.modelFlags.register(cmd)
	cmd.Flags().StringVar(&F.url, "url", "", "PyMol server: http://, tcp://, file:// or - (default from config)")
	cmd.Flags().IntVar(&F.serial, "serial", 1, "serial number of the PyMol selection")
}

// session loads the model of file, connects to PyMol and loads the
// structure there. The returned function closes everything.
func (F *pymolFlags) session(ctx context.Context, A *app, file string) (*model.PdbFileModel, *pymol.Adaptor, func() error, error) {
	M, err := F.load(A, file)
	if err != nil {
		return nil, nil, nil, err
	}
	url := F.url
	if url == "" {
		url = A.cfg.PyMol.URL
	}
	client, err := pymol.Dial(ctx, url)
	if err != nil {
		M.Close()
		return nil, nil, nil, err
	}
	w := pymol.NewServerWriter(ctx, client)
	opts := []pymol.AdaptorOption{pymol.WithLogger(A.log)}
	if A.cfg.PyMol.Script != "" {
		opts = append(opts, pymol.WithScript(A.cfg.PyMol.Script))
	}
	ad, err := pymol.NewAdaptor(w, M.PdbCode(), M.ChainCode(), M.TempPDB(), opts...)
	closeAll := func() error {
		err := w.Flush()
		if cerr := client.Close(); err == nil {
			err = cerr
		}
		// The structure file has to outlive the session when commands are
		// only written to a script.
		if url == "-" || strings.HasPrefix(url, "file://") {
			M.Release()
			return err
		}
		if cerr := M.Close(); err == nil {
			err = cerr
		}
		return err
	}
	if err != nil {
		closeAll()
		return nil, nil, nil, err
	}
	A.log.Info("structure loaded in PyMol", zap.String("object", ad.Object()), zap.String("url", url))
	return M, ad, closeAll, nil
}

func pymolCmd(A *app) *cobra.Command {
	c := &cobra.Command{
		Use:   "pymol",
		Short: "Show contacts and neighbourhoods in PyMol",
	}
	c.AddCommand(pymolEdgesCmd(A), pymolNbhCmd(A))
	return c
}

func pymolEdgesCmd(A *app) *cobra.Command {
	var F pymolFlags
	var contacts string
	var all bool
	c := &cobra.Command{
		Use:   "edges FILE",
		Short: "Show contacts as distances between alpha carbons",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if (contacts == "") == !all {
				return fmt.Errorf("give either --contacts or --all")
			}
			M, ad, closeAll, err := F.session(cmd.Context(), A, args[0])
			if err != nil {
				return err
			}
			sel := M.Graph().Contacts()
			if !all {
				if sel, err = rig.ParseContactList(contacts); err != nil {
					closeAll()
					return err
				}
			}
			if err := ad.EdgeSelection(F.serial, sel); err != nil {
				closeAll()
				return err
			}
			if err := closeAll(); err != nil {
				return err
			}
			fmt.Fprintf(A.out, "%d contacts sent as %sSel%d\n", len(sel), ad.Object(), F.serial)
			return nil
		},
	}
	F.register(c)
	c.Flags().StringVar(&contacts, "contacts", "", "contacts to show, e.g. 3-10,4-12")
	c.Flags().BoolVar(&all, "all", false, "show every contact of the map")
	return c
}

func pymolNbhCmd(A *app) *cobra.Command {
	var F pymolFlags
	var edge string
	c := &cobra.Command{
		Use:   "nbh FILE",
		Short: "Show the common neighbourhood of two residues as triangles",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := rig.ParseContact(edge)
			if err != nil {
				return err
			}
			M, ad, closeAll, err := F.session(cmd.Context(), A, args[0])
			if err != nil {
				return err
			}
			nbh := M.Graph().CommonNeighborhood(e.I, e.J)
			if err := ad.ShowTriangles(nbh, F.serial); err != nil {
				closeAll()
				return err
			}
			if err := closeAll(); err != nil {
				return err
			}
			fmt.Fprintf(A.out, "%d common neighbours of %d and %d sent as %sNbh%d\n", nbh.Len(), e.I, e.J, ad.Object(), F.serial)
			return nil
		},
	}
	F.register(c)
	c.Flags().StringVar(&edge, "edge", "", "edge i-j whose common neighbours are shown")
	_ = c.MarkFlagRequired("edge")
	return c
}
