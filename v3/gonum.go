/*
 * gonum.go, part of gopackmol.
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

package v3

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// Matrix is a set of vectors in 3D space, backed by a gonum Dense.
// Within the package a "vector" is a row of the matrix, i.e. the
// cartesian coordinates of one point (one atom).
type Matrix struct {
	*mat.Dense
}

// NewMatrix generates and returns a Matrix with 3 columns from data.
// data is taken row-major, so data[0:3] is the first vector.
func NewMatrix(data []float64) (*Matrix, error) {
	const cols int = 3
	l := len(data)
	if l == 0 {
		return nil, Error{"empty input slice", []string{"NewMatrix"}, true}
	}
	if l%cols != 0 {
		return nil, Error{fmt.Sprintf("Input slice lenght %d not divisible by %d: %d", l, cols, l%cols), []string{"NewMatrix"}, true}
	}
	r := mat.NewDense(l/cols, cols, data)
	return &Matrix{r}, nil
}

// Zeros returns a zero-filled Matrix with vecs vectors and 3 in the other dimension.
func Zeros(vecs int) *Matrix {
	const cols int = 3
	f := make([]float64, cols*vecs)
	return &Matrix{mat.NewDense(vecs, cols, f)}
}

// NVecs returns the number of vectors in F. A nil Matrix
// (or one without data) has zero vectors.
func (F *Matrix) NVecs() int {
	if F == nil || F.Dense == nil || F.Dense.IsEmpty() {
		return 0
	}
	r, c := F.Dims()
	if c != 3 {
		panic(ErrNotXx3Matrix)
	}
	return r
}

// Vec returns a copy of the ith vector as an array.
func (F *Matrix) Vec(i int) [3]float64 {
	if i >= F.NVecs() || i < 0 {
		panic(ErrIndexOutOfRange)
	}
	return [3]float64{F.At(i, 0), F.At(i, 1), F.At(i, 2)}
}

// Col returns a copy of the ith column (0=x, 1=y, 2=z) as a slice.
func (F *Matrix) Col(i int) []float64 {
	if i < 0 || i > 2 {
		panic(ErrIndexOutOfRange)
	}
	return mat.Col(nil, i, F.Dense)
}

// SubVec subtracts the vector vec from each vector of A, putting the result
// in the receiver. A and F may be the same matrix.
func (F *Matrix) SubVec(A *Matrix, vec [3]float64) {
	ar := A.NVecs()
	if ar != F.NVecs() {
		panic(ErrShape)
	}
	row := make([]float64, 3)
	for i := 0; i < ar; i++ {
		mat.Row(row, i, A.Dense)
		floats.Sub(row, vec[:])
		F.SetRow(i, row)
	}
}

// Norm returns the euclidean norm of the ith vector of F.
func (F *Matrix) Norm(i int) float64 {
	v := F.Vec(i)
	return floats.Norm(v[:], 2)
}

// String prints the matrix one vector per line.
func (F *Matrix) String() string {
	if F.NVecs() == 0 {
		return "[]"
	}
	return fmt.Sprintf("%.4v", mat.Formatted(F.Dense))
}
