/*
 * build.go, part of gopackmol.
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

package job

import (
	packmol "github.com/rmera/gopackmol"
	"github.com/rmera/gopackmol/config"
)

// Build turns the job into a validated solver configuration. loader reads the
// solute when the region is calibrated. presets may be nil if the job names no
// preset. corr, if given, is the correlation used when the solvent preset has
// none; the default correlation is used otherwise.
func (j *Job) Build(loader packmol.Loader, presets config.Solvents, corr ...*packmol.Correlation) (*packmol.SolverConfig, error) {
	const caller = "Job.Build"
	var fallback *packmol.Correlation
	if len(corr) > 0 && corr[0] != nil {
		fallback = corr[0]
	}
	tol := j.Tolerance
	if tol == 0 {
		tol = DefaultTolerance
	}
	filetype := j.FileType
	if filetype == "" {
		filetype = "pdb"
	}

	solvent := &packmol.StructureSpec{File: j.path(j.Solvent.File), Number: j.Solvent.Number}
	var preset *config.Preset
	if j.Solvent.Preset != "" {
		var err error
		if preset, err = presets.Lookup(j.Solvent.Preset); err != nil {
			return nil, packmol.ErrDecorate(err, caller)
		}
		if solvent.File == "" {
			solvent.File = preset.File
		}
	}
	if solvent.File == "" {
		return nil, packmol.NewError(packmol.InvalidInput, caller, "no solvent file")
	}
	cons := packmol.Inside
	if j.Solvent.Constraint != "" {
		var err error
		if cons, err = packmol.ParseConstraint(j.Solvent.Constraint); err != nil {
			return nil, packmol.ErrDecorate(err, caller)
		}
	}
	solvent.Constraint = cons

	var solute *packmol.StructureSpec
	if j.Solute != nil {
		solute = &packmol.StructureSpec{File: j.path(j.Solute.File), Number: j.Solute.Number}
		if solute.Number == 0 {
			solute.Number = 1
		}
		if p := j.Solute.Fixed; p != nil {
			solute.Fixed = &packmol.Placement{Position: p.Position, Angles: p.Angles, Center: p.Center}
		}
	}

	shape, err := j.region(loader, solute)
	if err != nil {
		return nil, packmol.ErrDecorate(err, caller)
	}
	solvent.Shape = shape

	if j.Solvent.GuessNumber {
		c := fallback
		if preset != nil {
			if c, err = preset.Correlation(fallback); err != nil {
				return nil, packmol.ErrDecorate(err, caller)
			}
		}
		if solvent.Number, err = packmol.EstimateCount(shape.Volume(), c); err != nil {
			return nil, packmol.ErrDecorate(err, caller)
		}
	}
	conf, err := packmol.NewSolverConfig(tol, filetype, j.Output, solvent, solute)
	if err != nil {
		return nil, packmol.ErrDecorate(err, caller)
	}
	return conf, nil
}

// region returns the packing region of the solvent, calibrating it around
// the solute if the shape mode asks for it.
func (j *Job) region(loader packmol.Loader, solute *packmol.StructureSpec) (packmol.Shape, error) {
	const caller = "Job.region"
	s := j.Solvent.Shape
	mode, err := packmol.ParseShapeMode(s.Mode)
	if err != nil {
		return nil, packmol.ErrDecorate(err, caller)
	}
	if mode.NeedsCalibration() {
		if solute == nil || solute.File == "" {
			return nil, packmol.NewError(packmol.InvalidInput, caller, "the region can only be adjusted around a solute")
		}
		if loader == nil {
			loader = packmol.FileLoader{}
		}
		cloud, err := loader.Load(solute.File)
		if err != nil {
			return nil, packmol.ErrDecorate(err, caller)
		}
		shape, err := packmol.Calibrate(cloud, s.Kind, s.Margin)
		if err != nil {
			return nil, packmol.ErrDecorate(err, caller)
		}
		return shape, nil
	}
	var shape packmol.Shape
	switch s.Kind {
	case "", "box":
		if s.Min == nil || s.Max == nil {
			return nil, packmol.NewError(packmol.InvalidInput, caller, "a manual box needs min and max")
		}
		shape = packmol.Box{Min: *s.Min, Max: *s.Max}
	case "sphere":
		if s.Center == nil || s.Radius == nil {
			return nil, packmol.NewError(packmol.InvalidInput, caller, "a manual sphere needs center and radius")
		}
		shape = packmol.Sphere{Center: *s.Center, Radius: *s.Radius}
	default:
		return nil, packmol.NewError(packmol.InvalidInput, caller, "unknown region kind %q", s.Kind)
	}
	if err := shape.Valid(); err != nil {
		return nil, packmol.ErrDecorate(err, caller)
	}
	return shape, nil
}
