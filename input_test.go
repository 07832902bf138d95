/*
 * input_test.go, part of gopackmol.
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
	"math/rand"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const boxInput = `tolerance 2.0
filetype pdb
output solvated.pdb

structure protein.pdb
  number 1
end structure

structure water.pdb
  number 110
  inside box -1.0 -1.0 -1.0 3.0 3.0 1.0
end structure

`

func TestEmitBox(Te *testing.T) {
	conf, err := NewSolverConfig(2, "pdb", "solvated.pdb",
		&StructureSpec{File: "/data/solvents/water.xyz", Number: 110, Shape: Box{Min: Point3{-1, -1, -1}, Max: Point3{3, 3, 1}}},
		&StructureSpec{File: "/data/protein.pdb", Number: 1})
	require.NoError(Te, err)
	assert.Equal(Te, boxInput, Emit(conf))
	assert.Equal(Te, Solute, conf.Structures[0].Role)
	assert.Equal(Te, "/data/protein.pdb", conf.Solute().File)
	assert.Equal(Te, 110, conf.Solvent().Number)
}

func TestEmitSphereNoSolute(Te *testing.T) {
	conf, err := NewSolverConfig(2.04, "xyz", "out.xyz",
		&StructureSpec{File: "ethanol.mol.xyz", Number: 20, Shape: Sphere{Center: Point3{0.26, -1.04, 3}, Radius: 12.345}, Constraint: Outside},
		nil)
	require.NoError(Te, err)
	want := "tolerance 2.0\nfiletype xyz\noutput out.xyz\n\n" +
		"structure ethanol.xyz\n  number 20\n  outside sphere 0.3 -1.0 3.0 12.3\nend structure\n\n"
	assert.Equal(Te, want, Emit(conf))
	assert.Nil(Te, conf.Solute())
}

func TestEmitFixed(Te *testing.T) {
	conf, err := NewSolverConfig(2, "pdb", "o.pdb",
		&StructureSpec{File: "water.pdb", Number: 5, Shape: Box{Max: Point3{10, 10, 10}}},
		&StructureSpec{File: "prot.pdb", Number: 1, Fixed: &Placement{Position: Point3{5, 5, 5}, Center: true}})
	require.NoError(Te, err)
	assert.Contains(Te, Emit(conf), "structure prot.pdb\n  number 1\n  center\n  fixed 5.0 5.0 5.0 0.0 0.0 0.0\nend structure\n")
}

func TestValidate(Te *testing.T) {
	water := &StructureSpec{File: "water.pdb", Number: 10, Shape: Box{Max: Point3{1, 1, 1}}}
	_, err := NewSolverConfig(2, "pdb", "o.pdb", nil, water)
	assert.ErrorIs(Te, err, InvalidInput)
	_, err = NewSolverConfig(0, "pdb", "o.pdb", water, nil)
	assert.ErrorIs(Te, err, InvalidInput)
	_, err = NewSolverConfig(2, "", "o.pdb", water, nil)
	assert.ErrorIs(Te, err, InvalidInput)
	_, err = NewSolverConfig(2, "pdb", "", water, nil)
	assert.ErrorIs(Te, err, InvalidInput)
	_, err = NewSolverConfig(2, "pdb", "o.pdb", &StructureSpec{File: "w.pdb", Number: -1}, nil)
	assert.ErrorIs(Te, err, InvalidInput)
	_, err = NewSolverConfig(2, "pdb", "o.pdb", &StructureSpec{File: "w.pdb", Shape: Sphere{Radius: -1}}, nil)
	assert.ErrorIs(Te, err, InvalidInput)
	_, err = NewSolverConfig(2, "pdb", "o.pdb", &StructureSpec{File: ".hidden"}, nil)
	assert.ErrorIs(Te, err, InvalidInput)

	C := &SolverConfig{Tolerance: 2, FileType: "pdb", Output: "o.pdb", Structures: []StructureSpec{*water, {Role: Solute, File: "p.pdb"}}}
	assert.ErrorIs(Te, C.Validate(), InvalidInput) //solute not first
	C.Structures = []StructureSpec{{Role: Solute, File: "p.pdb"}}
	assert.ErrorIs(Te, C.Validate(), InvalidInput) //no solvent
	C.Structures = []StructureSpec{*water, *water}
	assert.ErrorIs(Te, C.Validate(), InvalidInput) //two solvents
}

// round1 is what survives a trip through the input text.
func round1(f float64) float64 {
	r, _ := strconv.ParseFloat(ftoa(f), 64)
	return r
}

func TestEmitParseRoundTrip(Te *testing.T) {
	r := rand.New(rand.NewSource(42))
	for trial := 0; trial < 50; trial++ {
		var shape Shape
		c := Point3{r.Float64()*50 - 25, r.Float64()*50 - 25, r.Float64()*50 - 25}
		if r.Intn(2) == 0 {
			shape = Sphere{Center: c, Radius: r.Float64() * 30}
		} else {
			shape = Box{Min: c, Max: c.Add(Point3{r.Float64() * 30, r.Float64() * 30, r.Float64() * 30})}
		}
		solvent := &StructureSpec{File: "solvent.pdb", Number: r.Intn(5000), Shape: shape, Constraint: Constraint(r.Intn(4))}
		var solute *StructureSpec
		if r.Intn(2) == 0 {
			solute = &StructureSpec{File: "dir/solute.pdb", Number: 1}
		}
		conf, err := NewSolverConfig(0.1+r.Float64()*4, "pdb", "out_"+string(rune('a'+trial%26))+".pdb", solvent, solute)
		require.NoError(Te, err)
		back, err := ParseInput(strings.NewReader(Emit(conf)))
		require.NoError(Te, err, Emit(conf))

		assert.Equal(Te, round1(conf.Tolerance), back.Tolerance)
		assert.Equal(Te, conf.FileType, back.FileType)
		assert.Equal(Te, conf.Output, back.Output)
		require.Len(Te, back.Structures, len(conf.Structures))
		for i, s := range conf.Structures {
			b := back.Structures[i]
			assert.Equal(Te, s.Role, b.Role)
			assert.Equal(Te, s.Number, b.Number)
			assert.Equal(Te, s.Constraint, b.Constraint)
			assert.Equal(Te, s.BaseName()+".pdb", b.File)
			if s.Shape == nil {
				assert.Nil(Te, b.Shape)
				continue
			}
			want := s.Shape.params()
			got := b.Shape.params()
			require.Len(Te, got, len(want))
			for j := range want {
				assert.InDelta(Te, round1(want[j]), got[j], 1e-9)
			}
		}
		//emitting again what we parsed gives back the same text
		assert.Equal(Te, Emit(conf), Emit(back))
	}
}

func TestParseInputErrors(Te *testing.T) {
	bad := map[string]string{
		"unknown keyword":    "tolerance 2.0\nfiletype pdb\noutput o.pdb\nseed 5\n",
		"bad tolerance":      "tolerance two\n",
		"unclosed structure": "tolerance 2.0\nfiletype pdb\noutput o.pdb\nstructure w.pdb\n  number 3\n",
		"short box":          "tolerance 2.0\nfiletype pdb\noutput o.pdb\nstructure w.pdb\n  inside box 1 2 3\nend structure\n",
		"bad region":         "tolerance 2.0\nfiletype pdb\noutput o.pdb\nstructure w.pdb\n  inside cube 0 0 0 5\nend structure\n",
		"bad number":         "tolerance 2.0\nfiletype pdb\noutput o.pdb\nstructure w.pdb\n  number many\nend structure\n",
		"two regions":        "tolerance 2.0\nfiletype pdb\noutput o.pdb\nstructure w.pdb\n  inside sphere 0 0 0 5\n  outside sphere 0 0 0 1\nend structure\n",
	}
	for name, text := range bad {
		_, err := ParseInput(strings.NewReader(text))
		assert.ErrorIs(Te, err, ParseError, name)
	}
	_, err := ParseInput(strings.NewReader("tolerance 2.0\nfiletype pdb\noutput o.pdb\n"))
	assert.ErrorIs(Te, err, InvalidInput)
	_, err = ParseInput(strings.NewReader("tolerance 2.0\nfiletype pdb\noutput o.pdb\nstructure w.pdb\n  number 3\n  inside box 5 0 0 0 1 1\nend structure\n"))
	assert.ErrorIs(Te, err, InvalidInput)
}

func TestParseInputComments(Te *testing.T) {
	conf, err := ParseInput(strings.NewReader("# edited by hand\n" + boxInput))
	require.NoError(Te, err)
	assert.Equal(Te, boxInput, Emit(conf))
}

func TestShapeLine(Te *testing.T) {
	assert.Equal(Te, "box -1.0 -1.0 -1.0 3.0 3.0 1.0", ShapeLine(Box{Min: Point3{-1, -1, -1}, Max: Point3{3, 3, 1}}))
	assert.Equal(Te, "sphere 1.0 0.0 0.0 3.0", ShapeLine(Sphere{Center: Point3{1, 0, 0}, Radius: 3}))
}
