/*
 * geometry_test.go, part of gopackmol.
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
	"errors"
	"math"
	"math/rand"
	"testing"

	v3 "github.com/rmera/gopackmol/v3"
	"github.com/stretchr/testify/assert"
	"gonum.org/v1/gonum/floats"
	"github.com/stretchr/testify/require"
)

func triangle(Te *testing.T) *v3.Matrix {
	cloud, err := v3.NewMatrix([]float64{0, 0, 0, 2, 0, 0, 0, 2, 0})
	require.NoError(Te, err)
	return cloud
}

func randomCloud(Te *testing.T, r *rand.Rand, n int) *v3.Matrix {
	data := make([]float64, 3*n)
	for i := range data {
		data[i] = r.Float64()*40 - 20
	}
	cloud, err := v3.NewMatrix(data)
	require.NoError(Te, err)
	return cloud
}

func TestBoundsTriangle(Te *testing.T) {
	box, err := Bounds(triangle(Te), 1)
	require.NoError(Te, err)
	assert.Equal(Te, Point3{-1, -1, -1}, box.Min)
	assert.Equal(Te, Point3{3, 3, 1}, box.Max)
	assert.InDelta(Te, 4*4*2, box.Volume(), 1e-12)
}

func TestBoundsMargin(Te *testing.T) {
	r := rand.New(rand.NewSource(7))
	for trial := 0; trial < 20; trial++ {
		cloud := randomCloud(Te, r, 1+r.Intn(50))
		small, err := Bounds(cloud, 0.5)
		require.NoError(Te, err)
		big, err := Bounds(cloud, 3)
		require.NoError(Te, err)
		for i := 0; i < 3; i++ {
			assert.LessOrEqual(Te, small.Min[i], small.Max[i])
			assert.Less(Te, big.Min[i], small.Min[i])
			assert.Greater(Te, big.Max[i], small.Max[i])
			assert.InDelta(Te, 2.5, small.Min[i]-big.Min[i], 1e-9)
		}
		assert.Greater(Te, big.Volume(), small.Volume())
	}
}

func TestBoundsEmpty(Te *testing.T) {
	_, err := Bounds(nil, 1)
	assert.True(Te, errors.Is(err, InvalidInput))
	_, err = Bounds(&v3.Matrix{}, 1)
	assert.True(Te, errors.Is(err, InvalidInput))
	_, err = EnclosingSphere(nil, 1)
	assert.True(Te, errors.Is(err, InvalidInput))
	_, err = Centroid(nil)
	assert.ErrorIs(Te, err, InvalidInput)
}

func TestBoundsNegativeMargin(Te *testing.T) {
	//a single point with a negative margin would give an inverted box.
	cloud, err := v3.NewMatrix([]float64{1, 1, 1})
	require.NoError(Te, err)
	_, err = Bounds(cloud, -1)
	assert.ErrorIs(Te, err, InvalidInput)
	_, err = EnclosingSphere(cloud, -1)
	assert.ErrorIs(Te, err, InvalidInput)
	box, err := Bounds(cloud, 0)
	require.NoError(Te, err)
	assert.Equal(Te, 0.0, box.Volume())
}

func TestEnclosingSphere(Te *testing.T) {
	r := rand.New(rand.NewSource(11))
	for trial := 0; trial < 20; trial++ {
		n := 1 + r.Intn(60)
		cloud := randomCloud(Te, r, n)
		s, err := EnclosingSphere(cloud, 0)
		require.NoError(Te, err)
		var mean Point3
		for i := 0; i < n; i++ {
			v := cloud.Vec(i)
			for j := range mean {
				mean[j] += v[j] / float64(n)
			}
		}
		for j := range mean {
			assert.InDelta(Te, mean[j], s.Center[j], 1e-9)
		}
		for i := 0; i < n; i++ {
			v := cloud.Vec(i)
			assert.LessOrEqual(Te, floats.Distance(v[:], s.Center[:], 2), s.Radius+1e-12)
		}
		withMargin, err := EnclosingSphere(cloud, 2)
		require.NoError(Te, err)
		assert.InDelta(Te, s.Radius+2, withMargin.Radius, 1e-12)
	}
}

func TestEnclosingSphereTriangle(Te *testing.T) {
	s, err := EnclosingSphere(triangle(Te), 1)
	require.NoError(Te, err)
	c := 2.0 / 3.0
	assert.InDeltaSlice(Te, []float64{c, c, 0}, s.Center[:], 1e-12)
	//farthest points are (2,0,0) and (0,2,0)
	assert.InDelta(Te, math.Hypot(2-c, c)+1, s.Radius, 1e-12)
}

func TestVolumeTranslation(Te *testing.T) {
	r := rand.New(rand.NewSource(3))
	shapes := []Shape{
		Box{Min: Point3{-1, -2, -3}, Max: Point3{4, 5, 6}},
		Sphere{Center: Point3{1, 2, 3}, Radius: 7.5},
	}
	for _, s := range shapes {
		for i := 0; i < 10; i++ {
			d := Point3{r.NormFloat64() * 100, r.NormFloat64() * 100, r.NormFloat64() * 100}
			assert.InDelta(Te, Volume(s), Volume(s.Translate(d)), 1e-6*Volume(s))
		}
	}
	assert.InDelta(Te, 4.0/3.0*math.Pi*1000, Sphere{Radius: 10}.Volume(), 1e-9)
	assert.InDelta(Te, 5*7*9, shapes[0].Volume(), 1e-12)
}

func TestCalibrate(Te *testing.T) {
	s, err := Calibrate(triangle(Te), "sphere", 0)
	require.NoError(Te, err)
	assert.IsType(Te, Sphere{}, s)
	b, err := Calibrate(triangle(Te), "box", 0)
	require.NoError(Te, err)
	assert.IsType(Te, Box{}, b)
	_, err = Calibrate(triangle(Te), "cylinder", 0)
	assert.ErrorIs(Te, err, InvalidInput)
	shape, err := Calibrate(nil, "box", 0)
	assert.Nil(Te, shape)
	assert.ErrorIs(Te, err, InvalidInput)
}
