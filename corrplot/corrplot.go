/*
 * corrplot.go, part of gopackmol.
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

// Package corrplot draws volume to solvent count correlations, with the
// sample runs they were fitted from.
package corrplot

import (
	"image/color"

	packmol "github.com/rmera/gopackmol"
	"github.com/rmera/gopackmol/config"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// Size of the saved plot.
var Size = 5 * vg.Inch

func basicPlot(title string) *plot.Plot {
	p := plot.New()
	p.Title.Padding = 3 * vg.Millimeter
	p.Title.Text = title
	p.X.Label.Text = "Volume (A^3)"
	p.Y.Label.Text = "Solvent molecules"
	p.Add(plotter.NewGrid())
	return p
}

// Plot draws the line of corr between the volumes vmin and vmax, plus the
// samples as points, and saves it to file. The image format is taken from
// the extension of file (png, svg, pdf, eps, jpg, tiff). A nil corr plots
// the default correlation.
func Plot(corr *packmol.Correlation, samples []config.Sample, vmin, vmax float64, file string) error {
	if !(vmax > vmin) {
		return packmol.NewError(packmol.InvalidInput, "corrplot.Plot", "empty volume range [%g, %g]", vmin, vmax)
	}
	if corr == nil {
		corr = packmol.DefaultCorrelation()
	}
	p := basicPlot("Volume correlation")
	p.X.Min = vmin
	p.X.Max = vmax
	line := plotter.NewFunction(func(v float64) float64 {
		return float64(corr.Count(v))
	})
	line.XMin = vmin
	line.XMax = vmax
	line.Samples = 200
	line.Color = color.RGBA{B: 200, A: 255}
	line.Width = vg.Points(1.5)
	p.Add(line)
	p.Legend.Add("estimate", line)
	if len(samples) > 0 {
		pts := make(plotter.XYs, len(samples))
		for i, s := range samples {
			pts[i].X = s.Volume
			pts[i].Y = s.Count
		}
		s, err := plotter.NewScatter(pts)
		if err != nil {
			return packmol.WrapError(packmol.InvalidInput, "corrplot.Plot", err, "samples")
		}
		s.GlyphStyle.Color = color.RGBA{R: 255, A: 255}
		s.GlyphStyle.Radius = vg.Points(3)
		p.Add(s)
		p.Legend.Add("samples", s)
	}
	p.Legend.Top = true
	p.Legend.Left = true
	if err := p.Save(Size, Size, file); err != nil {
		return packmol.WrapError(packmol.ProcessIOError, "corrplot.Plot", err, "%s", file)
	}
	return nil
}
