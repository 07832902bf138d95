/*
 * geometry.go, part of gopackmol.
 *
 * Copyright 2024 Raul Mera <rmera{at}chemDOThelsinkiDOTfi>
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

package main

import (
	"fmt"
	"strconv"

	packmol "github.com/rmera/gopackmol"
	"github.com/spf13/cobra"
)

func newBoundsCmd(a *app) *cobra.Command {
	var margin float64
	var shape string
	cmd := &cobra.Command{
		Use:   "bounds <solute>",
		Short: "Print the region enclosing a molecule",
		Long:  `Reads an XYZ or PDB file (optionally .gz or .zst) and prints the box or sphere that contains it, grown by the margin, and its volume.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cloud, err := packmol.FileLoader{}.Load(args[0])
			if err != nil {
				return err
			}
			region, err := packmol.Calibrate(cloud, shape, margin)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, packmol.ShapeLine(region))
			fmt.Fprintf(out, "volume %.1f\n", region.Volume())
			return nil
		},
	}
	cmd.Flags().Float64Var(&margin, "margin", 2.0, "distance between the molecule and the region walls, in Angstroms")
	cmd.Flags().StringVar(&shape, "shape", "box", "region shape: box or sphere")
	return cmd
}

func newEstimateCmd(a *app) *cobra.Command {
	var solvent string
	cmd := &cobra.Command{
		Use:   "estimate <volume>",
		Short: "Estimate how many solvent molecules fill a volume",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			vol, err := strconv.ParseFloat(args[0], 64)
			if err != nil {
				return packmol.WrapError(packmol.InvalidInput, "estimate", err, "volume")
			}
			corr, err := a.correlation(solvent)
			if err != nil {
				return err
			}
			n, err := packmol.EstimateCount(vol, corr)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), n)
			return nil
		},
	}
	cmd.Flags().StringVar(&solvent, "solvent", "", "solvent preset giving the correlation")
	return cmd
}

// correlation returns the correlation of the named preset, or the one from
// the environment if name is empty.
func (a *app) correlation(name string) (*packmol.Correlation, error) {
	if name == "" {
		return a.cfg.Corr(), nil
	}
	presets, err := a.solvents()
	if err != nil {
		return nil, err
	}
	p, err := presets.Lookup(name)
	if err != nil {
		return nil, err
	}
	return p.Correlation(a.cfg.Corr())
}
