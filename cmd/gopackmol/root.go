/*
 * root.go, part of gopackmol.
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
	"github.com/rmera/gopackmol/config"
	"github.com/rmera/gopackmol/internal/logging"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// app is the state shared by all the subcommands.
type app struct {
	cfg          *config.Config
	log          *zap.Logger
	solventsFile string
}

// solvents reads the solvent presets, if a presets file was given.
func (a *app) solvents() (config.Solvents, error) {
	if a.solventsFile == "" {
		return nil, nil
	}
	return config.ReadSolvents(a.solventsFile)
}

func newRootCmd() *cobra.Command {
	a := &app{cfg: config.Default()}
	root := &cobra.Command{
		Use:           "gopackmol",
		Short:         "Prepare and run Packmol solvation jobs",
		Long:          `gopackmol builds Packmol input files around a solute, estimating the amount of solvent from the volume of the region, and runs the solver.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			a.cfg = cfg
			if !cmd.Flags().Changed("solvents") {
				a.solventsFile = cfg.SolventsFile
			}
			a.log = logging.NewOrNop(cfg.Log())
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.log != nil {
				a.log.Sync()
			}
		},
	}
	root.PersistentFlags().StringVar(&a.solventsFile, "solvents", "", "TOML file with solvent presets (default $PACKMOL_SOLVENTS)")
	root.AddCommand(
		newBoundsCmd(a),
		newEstimateCmd(a),
		newGenerateCmd(a),
		newCheckCmd(a),
		newRunCmd(a),
		newCalibrateCmd(a),
	)
	return root
}
