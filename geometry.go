/*
 * geometry.go, part of gopackmol.
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
	"math"

	v3 "github.com/rmera/gopackmol/v3"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Point3 is a point in cartesian space, in Angstroms.
type Point3 [3]float64

// Add returns p+q.
func (p Point3) Add(q Point3) Point3 {
	return Point3{p[0] + q[0], p[1] + q[1], p[2] + q[2]}
}

// Shape is a region within which molecules are packed. It is either
// a Box or a Sphere.
type Shape interface {
	// Volume returns the volume enclosed by the shape, in cubic Angstroms.
	Volume() float64
	// Translate returns a copy of the shape displaced by d.
	Translate(d Point3) Shape
	// Valid returns an error if the shape breaks its invariants.
	Valid() error
	keyword() string
	params() []float64
}

// Box is an axis-aligned box, given by its minimum and maximum corners.
type Box struct {
	Min, Max Point3
}

// Volume returns the product of the three extents of the box.
func (B Box) Volume() float64 {
	v := 1.0
	for i := 0; i < 3; i++ {
		v *= B.Max[i] - B.Min[i]
	}
	return v
}

func (B Box) Translate(d Point3) Shape {
	return Box{Min: B.Min.Add(d), Max: B.Max.Add(d)}
}

// Valid checks that Min <= Max on every axis.
func (B Box) Valid() error {
	for i := 0; i < 3; i++ {
		if !(B.Min[i] <= B.Max[i]) {
			return NewError(InvalidInput, "Box.Valid", "min %v greater than max %v on axis %d", B.Min, B.Max, i)
		}
	}
	return nil
}

func (B Box) keyword() string { return "box" }

func (B Box) params() []float64 {
	return []float64{B.Min[0], B.Min[1], B.Min[2], B.Max[0], B.Max[1], B.Max[2]}
}

// Sphere is given by its center and radius.
type Sphere struct {
	Center Point3
	Radius float64
}

// Volume returns 4/3*pi*r^3
func (S Sphere) Volume() float64 {
	return 4.0 / 3.0 * math.Pi * S.Radius * S.Radius * S.Radius
}

func (S Sphere) Translate(d Point3) Shape {
	return Sphere{Center: S.Center.Add(d), Radius: S.Radius}
}

// Valid checks that the radius is not negative.
func (S Sphere) Valid() error {
	if !(S.Radius >= 0) {
		return NewError(InvalidInput, "Sphere.Valid", "negative radius %g", S.Radius)
	}
	return nil
}

func (S Sphere) keyword() string { return "sphere" }

func (S Sphere) params() []float64 {
	return []float64{S.Center[0], S.Center[1], S.Center[2], S.Radius}
}

// Volume returns the volume of shape. It is the same as shape.Volume(), and is
// here so the calibrator and the estimator can be chained as plain functions.
func Volume(shape Shape) float64 {
	return shape.Volume()
}

// Bounds returns the axis-aligned bounding box of the points in cloud,
// with every side pushed out by margin.
func Bounds(cloud *v3.Matrix, margin float64) (Box, error) {
	if cloud.NVecs() == 0 {
		return Box{}, NewError(InvalidInput, "Bounds", "empty point cloud")
	}
	var b Box
	for i := 0; i < 3; i++ {
		col := cloud.Col(i)
		b.Min[i] = floats.Min(col) - margin
		b.Max[i] = floats.Max(col) + margin
	}
	if err := b.Valid(); err != nil {
		return Box{}, errDecorate(err, "Bounds")
	}
	return b, nil
}

// Centroid returns the geometric center (the arithmetic mean) of the points in cloud.
func Centroid(cloud *v3.Matrix) (Point3, error) {
	if cloud.NVecs() == 0 {
		return Point3{}, NewError(InvalidInput, "Centroid", "empty point cloud")
	}
	var c Point3
	for i := 0; i < 3; i++ {
		c[i] = stat.Mean(cloud.Col(i), nil)
	}
	return c, nil
}

// EnclosingSphere returns a sphere centered in the centroid of cloud, with a radius
// equal to the largest centroid-point distance plus margin.
// Note that this is not the minimal enclosing sphere. The centroid approach
// is kept on purpose, so regions match those produced by earlier versions.
func EnclosingSphere(cloud *v3.Matrix, margin float64) (Sphere, error) {
	center, err := Centroid(cloud)
	if err != nil {
		return Sphere{}, errDecorate(err, "EnclosingSphere")
	}
	centered := v3.Zeros(cloud.NVecs())
	centered.SubVec(cloud, center)
	maxR := 0.0
	for i := 0; i < centered.NVecs(); i++ {
		maxR = math.Max(maxR, centered.Norm(i))
	}
	s := Sphere{Center: center, Radius: maxR + margin}
	if err := s.Valid(); err != nil {
		return Sphere{}, errDecorate(err, "EnclosingSphere")
	}
	return s, nil
}

// Calibrate returns either the bounding box or the enclosing sphere of cloud,
// depending on kind ("box" or "sphere").
func Calibrate(cloud *v3.Matrix, kind string, margin float64) (Shape, error) {
	switch kind {
	case "box", "":
		b, err := Bounds(cloud, margin)
		if err != nil {
			return nil, errDecorate(err, "Calibrate")
		}
		return b, nil
	case "sphere":
		s, err := EnclosingSphere(cloud, margin)
		if err != nil {
			return nil, errDecorate(err, "Calibrate")
		}
		return s, nil
	default:
		return nil, NewError(InvalidInput, "Calibrate", "unknown shape %q", kind)
	}
}
