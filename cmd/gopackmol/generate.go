/*
 * generate.go, part of gopackmol.
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
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	packmol "github.com/rmera/gopackmol"
	"github.com/rmera/gopackmol/job"
	"github.com/spf13/cobra"
)

func newGenerateCmd(a *app) *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "generate <job.yaml>",
		Short: "Write the Packmol input for a job",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text, _, err := a.buildJob(args[0])
			if err != nil {
				return err
			}
			if output == "" || output == "-" {
				_, err = fmt.Fprint(cmd.OutOrStdout(), text)
				return err
			}
			if err := os.WriteFile(output, []byte(text), 0o644); err != nil {
				return packmol.WrapError(packmol.ProcessIOError, "generate", err, "%s", output)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "file to write the input to (default stdout)")
	return cmd
}

func newCheckCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "check <input.inp>",
		Short: "Check a hand-written Packmol input",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := readInput(args[0])
			if err != nil {
				return err
			}
			conf, err := packmol.ParseInput(strings.NewReader(text))
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if s := conf.Solute(); s != nil {
				fmt.Fprintf(out, "solute  %s\n", s.File)
			}
			s := conf.Solvent()
			fmt.Fprintf(out, "solvent %s x%d", s.File, s.Number)
			if s.Shape != nil {
				fmt.Fprintf(out, " %s %s (volume %.1f)", s.Constraint, packmol.ShapeLine(s.Shape), s.Shape.Volume())
			}
			fmt.Fprintln(out)
			return nil
		},
	}
}

// buildJob reads a job file and returns the input text for it, and the
// directory the solver must run in.
func (a *app) buildJob(path string) (string, string, error) {
	j, err := job.Read(path)
	if err != nil {
		return "", "", err
	}
	presets, err := a.solvents()
	if err != nil {
		return "", "", err
	}
	conf, err := j.Build(packmol.FileLoader{}, presets, a.cfg.Corr())
	if err != nil {
		return "", "", err
	}
	a.log.Debug("job built", zapConfig(conf)...)
	return packmol.Emit(conf), j.Dir, nil
}

func readInput(path string) (string, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return "", packmol.WrapError(packmol.NotFound, "readInput", err, "%s", path)
	} else if err != nil {
		return "", packmol.WrapError(packmol.ProcessIOError, "readInput", err, "%s", path)
	}
	return string(data), nil
}

// isJob tells job files from solver inputs.
func isJob(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return true
	}
	return false
}
