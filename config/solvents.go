/*
 * solvents.go, part of gopackmol.
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

package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/pelletier/go-toml/v2"
	packmol "github.com/rmera/gopackmol"
)

// Sample is the outcome of one packing run: the volume of the region and the
// number of solvent molecules that fit in it.
type Sample struct {
	Volume float64 `toml:"volume"`
	Count  float64 `toml:"count"`
}

// Preset describes one solvent. A preset file looks like:
//
//	[solvent.water]
//	file = "water.pdb"
//	slope = 0.0334
//	intercept = 0.0
//
//	[[solvent.water.samples]]
//	volume = 1000.0
//	count = 33
type Preset struct {
	Name      string   `toml:"-"`
	File      string   `toml:"file"`
	Slope     float64  `toml:"slope"`
	Intercept float64  `toml:"intercept"`
	Samples   []Sample `toml:"samples"`
}

// Calibrated reports whether the preset gives its own correlation.
func (p *Preset) Calibrated() bool {
	return p.Slope != 0 || p.Intercept != 0
}

// Correlation returns the preset correlation. A preset with samples but no slope
// or intercept is fitted from its samples. Otherwise it returns fallback.
func (p *Preset) Correlation(fallback *packmol.Correlation) (*packmol.Correlation, error) {
	if p.Calibrated() {
		return &packmol.Correlation{Slope: p.Slope, Intercept: p.Intercept}, nil
	}
	if len(p.Samples) > 0 {
		return p.Fit()
	}
	if fallback == nil {
		fallback = packmol.DefaultCorrelation()
	}
	return fallback, nil
}

// Fit fits a correlation to the preset samples.
func (p *Preset) Fit() (*packmol.Correlation, error) {
	volumes := make([]float64, len(p.Samples))
	counts := make([]float64, len(p.Samples))
	for i, s := range p.Samples {
		volumes[i] = s.Volume
		counts[i] = s.Count
	}
	c, err := packmol.FitCorrelation(volumes, counts)
	if err != nil {
		return nil, packmol.ErrDecorate(err, "Preset.Fit "+p.Name)
	}
	return c, nil
}

// Solvents maps solvent names to their presets.
type Solvents map[string]*Preset

type solventsFile struct {
	Solvent map[string]*Preset `toml:"solvent"`
}

// ReadSolvents reads the presets in the TOML file path. Relative structure
// files are taken as relative to the directory of path.
func ReadSolvents(path string) (Solvents, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, packmol.WrapError(packmol.NotFound, "ReadSolvents", err, "%s", path)
	} else if err != nil {
		return nil, packmol.WrapError(packmol.ParseError, "ReadSolvents", err, "%s", path)
	}
	var f solventsFile
	if err := toml.Unmarshal(data, &f); err != nil {
		return nil, packmol.WrapError(packmol.ParseError, "ReadSolvents", err, "%s", path)
	}
	dir := filepath.Dir(path)
	ret := make(Solvents, len(f.Solvent))
	for name, p := range f.Solvent {
		if p == nil || p.File == "" {
			return nil, packmol.NewError(packmol.ParseError, "ReadSolvents", "%s: solvent %q has no file", path, name)
		}
		p.Name = name
		if !filepath.IsAbs(p.File) {
			p.File = filepath.Join(dir, p.File)
		}
		ret[name] = p
	}
	return ret, nil
}

// Lookup returns the preset called name.
func (s Solvents) Lookup(name string) (*Preset, error) {
	p, ok := s[name]
	if !ok {
		return nil, packmol.NewError(packmol.NotFound, "Solvents.Lookup", "no solvent preset %q", name)
	}
	return p, nil
}

// Names returns the preset names in order.
func (s Solvents) Names() []string {
	names := make([]string, 0, len(s))
	for n := range s {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
