/*
 * calibrate.go, part of gopackmol.
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

	packmol "github.com/rmera/gopackmol"
	"github.com/rmera/gopackmol/corrplot"
	"github.com/spf13/cobra"
)

func newCalibrateCmd(a *app) *cobra.Command {
	var solvent, plotFile string
	cmd := &cobra.Command{
		Use:   "calibrate --solvent <name>",
		Short: "Fit the volume correlation of a solvent preset to its samples",
		Long: `Fits the slope and intercept of a solvent preset to the sample runs listed in the
presets file, and prints them in a form that can be pasted back into the file.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			presets, err := a.solvents()
			if err != nil {
				return err
			}
			if presets == nil {
				return packmol.NewError(packmol.InvalidInput, "calibrate", "no solvent presets file given")
			}
			p, err := presets.Lookup(solvent)
			if err != nil {
				return err
			}
			corr, err := p.Fit()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "[solvent.%s]\nslope = %.6g\nintercept = %.6g\n", p.Name, corr.Slope, corr.Intercept)
			if plotFile == "" {
				return nil
			}
			vmax := 0.0
			for _, s := range p.Samples {
				if s.Volume > vmax {
					vmax = s.Volume
				}
			}
			return corrplot.Plot(corr, p.Samples, 0, 1.1*vmax, plotFile)
		},
	}
	cmd.Flags().StringVar(&solvent, "solvent", "", "name of the solvent preset")
	cmd.Flags().StringVar(&plotFile, "plot", "", "also plot the fit to this image file")
	cmd.MarkFlagRequired("solvent")
	return cmd
}
