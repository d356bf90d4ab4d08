/*
 * contacts.go, part of cmview.
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

	"github.com/spf13/cobra"

	"github.com/cmview/cmview/model"
)

// modelFlags are the flags that say which contact map to load.
type modelFlags struct {
	chain    string
	model    int
	ensemble bool
	ctype    string
	cutoff   float64
	minSep   int
	maxSep   int
}

func (F *modelFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&F.chain, "chain", "c", "", "chain code (default: first chain)")
	cmd.Flags().IntVarP(&F.model, "model", "m", 1, "model serial")
	cmd.Flags().BoolVar(&F.ensemble, "ensemble", false, "average the contact maps of all models")
	cmd.Flags().StringVarP(&F.ctype, "type", "t", "", "contact type, e.g. Ca, Cb, ALL, BB/SC (default from config)")
	cmd.Flags().Float64VarP(&F.cutoff, "cutoff", "d", 0, "distance cutoff in angstroms (default from config)")
	cmd.Flags().IntVar(&F.minSep, "min-sep", -1, "minimum sequence separation (default from config)")
	cmd.Flags().IntVar(&F.maxSep, "max-sep", -1, "maximum sequence separation (default from config)")
}

// load creates and loads the model of file. Unset flags take the
// configured values.
func (F *modelFlags) load(A *app, file string) (*model.PdbFileModel, error) {
	c := A.cfg.Contacts
	if F.ctype != "" {
		c.Type = F.ctype
	}
	if F.cutoff != 0 {
		c.Cutoff = F.cutoff
	}
	if F.minSep >= 0 {
		c.MinSeqSep = F.minSep
	}
	if F.maxSep >= 0 {
		c.MaxSeqSep = F.maxSep
	}
	M, err := model.NewPdbFileModel(file, c.Type, c.Cutoff, c.MinSeqSep, c.MaxSeqSep,
		model.WithLogger(A.log), model.WithTempDir(A.cfg.TempDir))
	if err != nil {
		return nil, err
	}
	if err := M.LoadEnsemble(F.chain, F.model, F.ensemble); err != nil {
		return nil, err
	}
	return M, nil
}

func contactsCmd(A *app) *cobra.Command {
	var F modelFlags
	c := &cobra.Command{
		Use:   "contacts FILE",
		Short: "Load a structure and print its contacts",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			M, err := F.load(A, args[0])
			if err != nil {
				return err
			}
			defer M.Close()
			G := M.Graph()
			fmt.Fprintf(A.out, "# %s %s %.2f %d residues %d contacts\n", M.LoadedGraphID(), M.ContactType(), M.Cutoff(), len(G.Nodes()), G.EdgeCount())
			for _, c := range G.Contacts() {
				if !M.IsGraphWeighted() {
					fmt.Fprintf(A.out, "%d\t%d\n", c.I, c.J)
					continue
				}
				w, _ := G.Weight(c.I, c.J)
				fmt.Fprintf(A.out, "%d\t%d\t%.3f\n", c.I, c.J, w)
			}
			return nil
		},
	}
	F.register(c)
	return c
}
