/*
 * plot.go, part of cmview.
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
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/cmview/cmview/cmplot"
)

func plotCmd(A *app) *cobra.Command {
	var F modelFlags
	var output, compare, title string
	c := &cobra.Command{
		Use:   "plot FILE",
		Short: "Draw the contact map of a structure, or compare it with another",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			M, err := F.load(A, args[0])
			if err != nil {
				return err
			}
			defer M.Close()
			if output == "" {
				output = strings.TrimSuffix(filepath.Base(args[0]), filepath.Ext(args[0])) + ".png"
			}
			if title == "" {
				title = M.LoadedGraphID()
			}
			if compare == "" {
				if err := cmplot.ContactMap(M.Graph(), title, output); err != nil {
					return err
				}
			} else {
				second, err := F.load(A, compare)
				if err != nil {
					return err
				}
				defer second.Close()
				err = cmplot.CompareMap(M.Graph(), second.Graph(), title+" vs "+second.LoadedGraphID(), output)
				if err != nil {
					return err
				}
			}
			fmt.Fprintln(A.out, output)
			return nil
		},
	}
	F.register(c)
	c.Flags().StringVarP(&output, "output", "o", "", "figure file (default FILE.png)")
	c.Flags().StringVar(&compare, "compare", "", "second structure to compare with")
	c.Flags().StringVar(&title, "title", "", "figure title")
	return c
}
