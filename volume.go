/*
 * volume.go, part of gopackmol.
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

	"gonum.org/v1/gonum/stat"
)

// Correlation is an empirical linear relation between the volume of a packing
// region (in cubic Angstroms) and the number of solvent molecules it takes.
type Correlation struct {
	Slope     float64 `toml:"slope" yaml:"slope"`
	Intercept float64 `toml:"intercept" yaml:"intercept"`
}

// Default correlation parameters, a fit for small organic solvents.
const (
	DefaultSlope     = 0.09
	DefaultIntercept = 19.75
)

// DefaultCorrelation returns a Correlation with the default parameters.
func DefaultCorrelation() *Correlation {
	return &Correlation{Slope: DefaultSlope, Intercept: DefaultIntercept}
}

func (C *Correlation) estimate(volume float64) float64 {
	return math.Round(C.Slope*volume + C.Intercept)
}

// Count returns round(Slope*volume+Intercept), or 0 if that is negative or
// undefined. Estimates that do not fit in an int are clamped to math.MaxInt.
func (C *Correlation) Count(volume float64) int {
	n := C.estimate(volume)
	switch {
	case !(n > 0):
		return 0
	case n >= float64(math.MaxInt):
		return math.MaxInt
	}
	return int(n)
}

// EstimateCount suggests the number of solvent molecules needed to fill a region
// of the given volume. It uses the first correlation given, or DefaultCorrelation
// if none is given.
func EstimateCount(volume float64, corr ...*Correlation) (int, error) {
	if math.IsNaN(volume) || math.IsInf(volume, 0) {
		return 0, NewError(InvalidInput, "EstimateCount", "volume is %g", volume)
	}
	c := DefaultCorrelation()
	if len(corr) > 0 && corr[0] != nil {
		c = corr[0]
	}
	if n := c.estimate(volume); math.IsNaN(n) || n >= float64(math.MaxInt) {
		return 0, NewError(InvalidInput, "EstimateCount", "volume %g gives no usable count", volume)
	}
	return c.Count(volume), nil
}

// FitCorrelation obtains a least-squares Correlation from pairs of region volumes
// and the number of solvent molecules that were actually packed in them.
func FitCorrelation(volumes, counts []float64) (*Correlation, error) {
	if len(volumes) != len(counts) {
		return nil, NewError(InvalidInput, "FitCorrelation", "%d volumes but %d counts", len(volumes), len(counts))
	}
	if len(volumes) < 2 {
		return nil, NewError(InvalidInput, "FitCorrelation", "at least 2 samples needed, got %d", len(volumes))
	}
	if stat.Variance(volumes, nil) == 0 {
		return nil, NewError(InvalidInput, "FitCorrelation", "all sample volumes are equal")
	}
	alpha, beta := stat.LinearRegression(volumes, counts, nil, false)
	return &Correlation{Slope: beta, Intercept: alpha}, nil
}
