/*
 * input.go, part of gopackmol.
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

package packmol

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
)

// Constraint tells the solver how a structure relates to its Shape.
type Constraint int

const (
	Inside Constraint = iota
	Outside
	Above
	Below
)

var constraintNames = [...]string{"inside", "outside", "above", "below"}

// String returns the lowercase keyword used in the solver input.
func (c Constraint) String() string {
	if c < Inside || c > Below {
		return fmt.Sprintf("Constraint(%d)", int(c))
	}
	return constraintNames[c]
}

// ParseConstraint returns the Constraint for the keyword s.
func ParseConstraint(s string) (Constraint, error) {
	for i, v := range constraintNames {
		if strings.EqualFold(v, s) {
			return Constraint(i), nil
		}
	}
	return Inside, NewError(InvalidInput, "ParseConstraint", "unknown constraint %q", s)
}

// Role distinguishes the solute, placed once, from the solvent, replicated to fill
// the region.
type Role int

const (
	Solvent Role = iota
	Solute
)

func (r Role) String() string {
	if r == Solute {
		return "solute"
	}
	return "solvent"
}

// Placement fixes a structure at a position with the given Euler angles (radians),
// optionally centering it first.
type Placement struct {
	Position Point3
	Angles   [3]float64
	Center   bool
}

// StructureSpec describes one molecular species to place.
type StructureSpec struct {
	Role       Role
	File       string
	Number     int
	Shape      Shape //can be nil, then no region is written for the structure.
	Constraint Constraint
	Fixed      *Placement
}

// BaseName returns the file name of the structure without its directory and
// everything from its first dot on.
func (S *StructureSpec) BaseName() string {
	base := filepath.Base(S.File)
	if i := strings.IndexByte(base, '.'); i >= 0 {
		base = base[:i]
	}
	return base
}

// SolverConfig holds everything the solver input needs.
type SolverConfig struct {
	Tolerance  float64
	FileType   string
	Output     string
	Structures []StructureSpec
}

// NewSolverConfig builds a validated SolverConfig. solvent is required, solute
// is optional (nil). The solute, if present, goes first.
func NewSolverConfig(tolerance float64, filetype, output string, solvent, solute *StructureSpec) (*SolverConfig, error) {
	if solvent == nil {
		return nil, NewError(InvalidInput, "NewSolverConfig", "no solvent specified")
	}
	c := &SolverConfig{Tolerance: tolerance, FileType: filetype, Output: output}
	if solute != nil {
		s := *solute
		s.Role = Solute
		c.Structures = append(c.Structures, s)
	}
	s := *solvent
	s.Role = Solvent
	c.Structures = append(c.Structures, s)
	if err := c.Validate(); err != nil {
		return nil, errDecorate(err, "NewSolverConfig")
	}
	return c, nil
}

// Solvent returns the solvent structure, or nil if there is none.
func (C *SolverConfig) Solvent() *StructureSpec {
	for i := range C.Structures {
		if C.Structures[i].Role == Solvent {
			return &C.Structures[i]
		}
	}
	return nil
}

// Solute returns the solute structure, or nil if there is none.
func (C *SolverConfig) Solute() *StructureSpec {
	for i := range C.Structures {
		if C.Structures[i].Role == Solute {
			return &C.Structures[i]
		}
	}
	return nil
}

// Validate returns an InvalidInput error if C is not something Emit should be
// given.
func (C *SolverConfig) Validate() error {
	const caller = "SolverConfig.Validate"
	if !(C.Tolerance > 0) {
		return NewError(InvalidInput, caller, "tolerance must be positive, got %g", C.Tolerance)
	}
	if strings.TrimSpace(C.FileType) == "" {
		return NewError(InvalidInput, caller, "no file type")
	}
	if strings.TrimSpace(C.Output) == "" {
		return NewError(InvalidInput, caller, "no output file")
	}
	var solvents, solutes int
	for i, s := range C.Structures {
		switch s.Role {
		case Solvent:
			solvents++
		case Solute:
			if i != 0 {
				return NewError(InvalidInput, caller, "the solute must be the first structure")
			}
			solutes++
		}
		if s.File == "" || s.BaseName() == "" {
			return NewError(InvalidInput, caller, "%s structure %d has no file", s.Role, i)
		}
		if s.Number < 0 {
			return NewError(InvalidInput, caller, "%s structure %d has a negative number of molecules", s.Role, i)
		}
		if s.Shape != nil {
			if err := s.Shape.Valid(); err != nil {
				return errDecorate(err, caller)
			}
		}
	}
	if solvents != 1 {
		return NewError(InvalidInput, caller, "exactly one solvent structure needed, got %d", solvents)
	}
	if solutes > 1 {
		return NewError(InvalidInput, caller, "at most one solute structure allowed, got %d", solutes)
	}
	return nil
}

func ftoa(f float64) string {
	return strconv.FormatFloat(f, 'f', 1, 64)
}

func joinFloats(fs []float64) string {
	s := make([]string, len(fs))
	for i, f := range fs {
		s[i] = ftoa(f)
	}
	return strings.Join(s, " ")
}

// ShapeLine returns shape the way it is written after the constraint keyword,
// for instance "box 0.0 0.0 0.0 1.0 1.0 1.0".
func ShapeLine(shape Shape) string {
	return shape.keyword() + " " + joinFloats(shape.params())
}

// Emit writes C in the input format of the packing solver. The format, including
// the indentation and the 1-decimal precision, is what the solver parser expects,
// so it must not change. C is assumed to be valid.
func Emit(C *SolverConfig) string {
	var b strings.Builder
	b.WriteString("tolerance " + ftoa(C.Tolerance) + "\n")
	b.WriteString("filetype " + C.FileType + "\n")
	b.WriteString("output " + C.Output + "\n")
	b.WriteString("\n")
	for i := range C.Structures {
		s := &C.Structures[i]
		b.WriteString("structure " + s.BaseName() + "." + C.FileType + "\n")
		b.WriteString("  number " + strconv.Itoa(s.Number) + "\n")
		if s.Fixed != nil {
			if s.Fixed.Center {
				b.WriteString("  center\n")
			}
			p := s.Fixed.Position
			a := s.Fixed.Angles
			b.WriteString("  fixed " + joinFloats([]float64{p[0], p[1], p[2], a[0], a[1], a[2]}) + "\n")
		}
		if s.Shape != nil {
			b.WriteString("  " + s.Constraint.String() + " " + ShapeLine(s.Shape) + "\n")
		}
		b.WriteString("end structure\n")
		b.WriteString("\n")
	}
	return b.String()
}
