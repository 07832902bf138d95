/*
 * parse.go, part of gopackmol.
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
	"bufio"
	"io"
	"strconv"
	"strings"
)

// ParseInput reads solver input in the format produced by Emit and returns the
// corresponding SolverConfig. Only the keywords Emit writes are understood.
// Lines starting with # are comments. When two structures are present, the
// first one is taken as the solute. The result is validated.
func ParseInput(r io.Reader) (*SolverConfig, error) {
	const caller = "ParseInput"
	C := new(SolverConfig)
	var cur *StructureSpec
	sc := bufio.NewScanner(r)
	lineno := 0
	perr := func(format string, a ...any) error {
		return NewError(ParseError, caller, "line %d: "+format, append([]any{lineno}, a...)...)
	}
	for sc.Scan() {
		lineno++
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)
		key := strings.ToLower(fields[0])
		args := fields[1:]
		if cur == nil {
			switch key {
			case "tolerance":
				if len(args) != 1 {
					return nil, perr("tolerance takes one value")
				}
				t, err := strconv.ParseFloat(args[0], 64)
				if err != nil {
					return nil, perr("bad tolerance %q", args[0])
				}
				C.Tolerance = t
			case "filetype":
				if len(args) != 1 {
					return nil, perr("filetype takes one value")
				}
				C.FileType = args[0]
			case "output":
				if len(args) < 1 {
					return nil, perr("output needs a file name")
				}
				C.Output = strings.Join(args, " ")
			case "structure":
				if len(args) != 1 {
					return nil, perr("structure takes one file name")
				}
				cur = &StructureSpec{File: args[0]}
			default:
				return nil, perr("unknown keyword %q", fields[0])
			}
			continue
		}
		switch key {
		case "number":
			if len(args) != 1 {
				return nil, perr("number takes one value")
			}
			n, err := strconv.Atoi(args[0])
			if err != nil {
				return nil, perr("bad number %q", args[0])
			}
			cur.Number = n
		case "center":
			if cur.Fixed == nil {
				cur.Fixed = new(Placement)
			}
			cur.Fixed.Center = true
		case "fixed":
			v, err := parseFloats(args, 6)
			if err != nil {
				return nil, perr("fixed: %s", err)
			}
			if cur.Fixed == nil {
				cur.Fixed = new(Placement)
			}
			cur.Fixed.Position = Point3{v[0], v[1], v[2]}
			cur.Fixed.Angles = [3]float64{v[3], v[4], v[5]}
		case "end":
			if len(args) != 1 || strings.ToLower(args[0]) != "structure" {
				return nil, perr("expected 'end structure'")
			}
			C.Structures = append(C.Structures, *cur)
			cur = nil
		default:
			c, err := ParseConstraint(key)
			if err != nil {
				return nil, perr("unknown keyword %q", fields[0])
			}
			if len(args) < 1 {
				return nil, perr("%s needs a region", key)
			}
			var shape Shape
			switch strings.ToLower(args[0]) {
			case "box":
				v, err := parseFloats(args[1:], 6)
				if err != nil {
					return nil, perr("box: %s", err)
				}
				shape = Box{Min: Point3{v[0], v[1], v[2]}, Max: Point3{v[3], v[4], v[5]}}
			case "sphere":
				v, err := parseFloats(args[1:], 4)
				if err != nil {
					return nil, perr("sphere: %s", err)
				}
				shape = Sphere{Center: Point3{v[0], v[1], v[2]}, Radius: v[3]}
			default:
				return nil, perr("unknown region %q", args[0])
			}
			if cur.Shape != nil {
				return nil, perr("only one region per structure is supported")
			}
			cur.Shape = shape
			cur.Constraint = c
		}
	}
	if err := sc.Err(); err != nil {
		return nil, WrapError(ParseError, caller, err, "reading input")
	}
	if cur != nil {
		return nil, NewError(ParseError, caller, "structure %s not closed", cur.File)
	}
	switch len(C.Structures) {
	case 1:
		C.Structures[0].Role = Solvent
	case 2:
		C.Structures[0].Role = Solute
		C.Structures[1].Role = Solvent
	default:
		return nil, NewError(InvalidInput, caller, "expected 1 or 2 structures, got %d", len(C.Structures))
	}
	if err := C.Validate(); err != nil {
		return nil, errDecorate(err, caller)
	}
	return C, nil
}

func parseFloats(s []string, n int) ([]float64, error) {
	if len(s) != n {
		return nil, NewError(ParseError, "parseFloats", "%d values expected, got %d", n, len(s))
	}
	ret := make([]float64, n)
	for i, v := range s {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return nil, WrapError(ParseError, "parseFloats", err, "value %d", i)
		}
		ret[i] = f
	}
	return ret, nil
}
