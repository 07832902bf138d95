/*
 * doc.go, part of gopackmol.
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

/***Dedicated to the long life of the Ven. Khenpo Phuntzok Tenzin Rinpoche***/

/*
Package packmol prepares input for the Packmol solver, which packs molecules in
regions of space.

	**gopackmol Capabilities**

	Reads the coordinates of a solute from XYZ and PDB files, plain or
	compressed with gzip or zstd.

	Calibrates a packing region around the solute: the axis-aligned bounding box,
	or a sphere centered in the centroid of the solute, both enlarged by a margin.
	The sphere is not the minimal enclosing sphere, only an approximation.

	Suggests the number of solvent molecules for a region, from a linear
	correlation between the region volume and the molecule count. The correlation
	can be re-fitted from previous runs.

	Writes and reads the Packmol input format.

	Runs Packmol asynchronously (see the run subpackage), streaming its output.

The typical flow is:

	coords, err := packmol.FileLoader{}.Load("protein.pdb")
	box, err := packmol.Bounds(coords, 2.0)
	n, err := packmol.EstimateCount(box.Volume())
	conf, err := packmol.NewSolverConfig(2.0, "pdb", "solvated.pdb",
		&packmol.StructureSpec{File: "water.pdb", Number: n, Shape: box},
		&packmol.StructureSpec{File: "protein.pdb", Number: 1})
	text := packmol.Emit(conf)
*/
package packmol
