/*
 * job.go, part of gopackmol.
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

// Package job reads YAML job descriptions and turns them into Packmol
// solver configurations.
//
// A job names the solute and the solvent, says how the packing region is
// obtained (given by hand, or calibrated around the solute) and whether the
// number of solvent molecules is given or estimated from the region volume.
package job

import (
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	packmol "github.com/rmera/gopackmol"
	"gopkg.in/yaml.v3"
)

// DefaultTolerance is the solver tolerance, in Angstroms, used when a job gives none.
const DefaultTolerance = 2.0

// Job is a job description, as read from its YAML file.
type Job struct {
	Tolerance float64 `yaml:"tolerance"`
	FileType  string  `yaml:"filetype"`
	Output    string  `yaml:"output"`
	Solute    *Solute `yaml:"solute"`
	Solvent   Solvent `yaml:"solvent"`
	Dir       string  `yaml:"-"` //relative files are taken from here
}

// Solute is the structure around which the solvent is packed.
type Solute struct {
	File   string     `yaml:"file"`
	Number int        `yaml:"number"` //1 if not given
	Fixed  *Placement `yaml:"fixed"`
}

// Placement fixes a structure in space.
type Placement struct {
	Position packmol.Point3 `yaml:"position"`
	Angles   packmol.Point3 `yaml:"angles"`
	Center   bool           `yaml:"center"`
}

// Solvent describes the solvent and the region it fills.
type Solvent struct {
	Preset      string `yaml:"preset"`
	File        string `yaml:"file"`
	Number      int    `yaml:"number"`
	GuessNumber bool   `yaml:"guess_number"`
	Constraint  string `yaml:"constraint"` //inside if empty
	Shape       Shape  `yaml:"shape"`
}

// Shape is the packing region of the solvent.
type Shape struct {
	Kind   string          `yaml:"kind"` //box or sphere
	Mode   string          `yaml:"mode"` //manual or auto
	Margin float64         `yaml:"margin"`
	Min    *packmol.Point3 `yaml:"min"`
	Max    *packmol.Point3 `yaml:"max"`
	Center *packmol.Point3 `yaml:"center"`
	Radius *float64        `yaml:"radius"`
}

// Parse decodes a job from r. Unknown fields are an error.
func Parse(r io.Reader) (*Job, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	j := new(Job)
	if err := dec.Decode(j); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, packmol.NewError(packmol.ParseError, "job.Parse", "empty job")
		}
		return nil, packmol.WrapError(packmol.ParseError, "job.Parse", err, "")
	}
	return j, nil
}

// Read reads the job in the YAML file path. The files the job names are
// relative to the directory of path.
func Read(path string) (*Job, error) {
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, packmol.WrapError(packmol.NotFound, "job.Read", err, "%s", path)
	} else if err != nil {
		return nil, packmol.WrapError(packmol.ParseError, "job.Read", err, "%s", path)
	}
	defer f.Close()
	j, err := Parse(f)
	if err != nil {
		return nil, packmol.ErrDecorate(err, "job.Read "+path)
	}
	j.Dir = filepath.Dir(path)
	return j, nil
}

func (j *Job) path(file string) string {
	if file == "" || filepath.IsAbs(file) || j.Dir == "" {
		return file
	}
	return filepath.Join(j.Dir, file)
}
