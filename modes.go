/*
 * modes.go, part of gopackmol.
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

// ShapeMode says where the region parameters come from.
type ShapeMode int

const (
	// Manual: the user gives the box corners or the sphere center and radius.
	Manual ShapeMode = iota
	// AutoAdjust: the region is calibrated from the solute, the user only gives the margin.
	AutoAdjust
)

func (m ShapeMode) String() string {
	if m == AutoAdjust {
		return "auto"
	}
	return "manual"
}

// ParseShapeMode accepts "manual" or "auto" (also "" for manual).
func ParseShapeMode(s string) (ShapeMode, error) {
	switch s {
	case "", "manual":
		return Manual, nil
	case "auto", "autoadjust", "auto-adjust":
		return AutoAdjust, nil
	}
	return Manual, NewError(InvalidInput, "ParseShapeMode", "unknown shape mode %q", s)
}

// Fields tells which input fields are editable for a given state of the
// front end. It is a plain value, so any interface can apply it.
type Fields struct {
	Region       bool //box corners, sphere center and radius
	Margin       bool
	SolventCount bool
}

// ShapeFields returns the editable fields for the given shape mode.
// The solvent count is left editable; combine with CountFields.
func ShapeFields(mode ShapeMode) Fields {
	if mode == AutoAdjust {
		return Fields{Region: false, Margin: true, SolventCount: true}
	}
	return Fields{Region: true, Margin: false, SolventCount: true}
}

// CountFields returns f with the solvent count disabled if the count is guessed
// from the region volume.
func (f Fields) CountFields(guess bool) Fields {
	f.SolventCount = !guess
	return f
}

// NeedsCalibration reports whether a change in the solute file must trigger a new
// calibration of the region.
func (m ShapeMode) NeedsCalibration() bool {
	return m == AutoAdjust
}
