/*
 * main_test.go, part of gopackmol.
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

package main

import (
	"bytes"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	packmol "github.com/rmera/gopackmol"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func solventsFile(t *testing.T) string {
	p := filepath.Join(t.TempDir(), "solvents.toml")
	require.NoError(t, os.WriteFile(p, []byte("[solvent.water]\nfile = \"/data/water.pdb\"\nslope = 0.5\n"), 0o644))
	return p
}

func TestBounds(t *testing.T) {
	out, err := execute(t, "bounds", "--margin", "1", filepath.Join("..", "..", "testdata", "triangle.pdb"))
	require.NoError(t, err)
	assert.Equal(t, "box -1.0 -1.0 -1.0 3.0 3.0 1.0\nvolume 32.0\n", out)

	_, err = execute(t, "bounds", "--shape", "cube", filepath.Join("..", "..", "testdata", "triangle.pdb"))
	assert.ErrorIs(t, err, packmol.InvalidInput)
	_, err = execute(t, "bounds", "nothere.pdb")
	assert.ErrorIs(t, err, packmol.NotFound)
}

func TestEstimate(t *testing.T) {
	t.Setenv("PACKMOL_SLOPE", "0.09")
	t.Setenv("PACKMOL_INTERCEPT", "19.75")
	out, err := execute(t, "estimate", "1000")
	require.NoError(t, err)
	assert.Equal(t, "110\n", out)

	out, err = execute(t, "estimate", "--solvents", solventsFile(t), "--solvent", "water", "1000")
	require.NoError(t, err)
	assert.Equal(t, "500\n", out)

	_, err = execute(t, "estimate", "lots")
	assert.ErrorIs(t, err, packmol.InvalidInput)
}

func TestGenerateAndCheck(t *testing.T) {
	dir := t.TempDir()
	inp := filepath.Join(dir, "solvate.inp")
	_, err := execute(t, "generate", "--solvents", solventsFile(t), "-o", inp, filepath.Join("..", "..", "job", "testdata", "solvate.yaml"))
	require.NoError(t, err)
	text, err := os.ReadFile(inp)
	require.NoError(t, err)
	assert.Contains(t, string(text), "structure water.pdb\n  number 16\n  inside box -1.0 -1.0 -1.0 3.0 3.0 1.0\nend structure\n")

	out, err := execute(t, "check", inp)
	require.NoError(t, err)
	assert.Equal(t, "solute  triangle.pdb\nsolvent water.pdb x16 inside box -1.0 -1.0 -1.0 3.0 3.0 1.0 (volume 32.0)\n", out)

	bad := filepath.Join(dir, "bad.inp")
	require.NoError(t, os.WriteFile(bad, []byte("tolerance 2.0\nseed 3\n"), 0o644))
	_, err = execute(t, "check", bad)
	assert.ErrorIs(t, err, packmol.ParseError)
}

func TestRunInput(t *testing.T) {
	if _, err := exec.LookPath("cat"); err != nil {
		t.Skip("cat not available")
	}
	t.Setenv("PACKMOL_BIN", "cat")
	t.Setenv("PACKMOL_TMPDIR", t.TempDir())
	dir := t.TempDir()
	inp := filepath.Join(dir, "hand.inp")
	text := "tolerance 2.0\nfiletype pdb\noutput o.pdb\n\nstructure w.pdb\n  number 3\n  inside sphere 0.0 0.0 0.0 5.0\nend structure\n\n"
	require.NoError(t, os.WriteFile(inp, []byte(text), 0o644))
	metrics := filepath.Join(dir, "run.prom")
	out, err := execute(t, "run", "--metrics", metrics, inp)
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(out, text), out)
	prom, err := os.ReadFile(metrics)
	require.NoError(t, err)
	assert.Contains(t, string(prom), `gopackmol_runs_finished_total{outcome="completed"} 1`)
}

func TestRunFailure(t *testing.T) {
	if _, err := exec.LookPath("false"); err != nil {
		t.Skip("false not available")
	}
	t.Setenv("PACKMOL_BIN", "false")
	inp := filepath.Join(t.TempDir(), "hand.inp")
	require.NoError(t, os.WriteFile(inp, []byte("tolerance 2.0\nfiletype pdb\noutput o.pdb\nstructure w.pdb\nend structure\n"), 0o644))
	_, err := execute(t, "run", inp)
	assert.ErrorIs(t, err, packmol.ExitError)
}

func TestCalibrate(t *testing.T) {
	presets := filepath.Join("..", "..", "config", "testdata", "solvents.toml")
	png := filepath.Join(t.TempDir(), "ethanol.png")
	out, err := execute(t, "calibrate", "--solvents", presets, "--solvent", "ethanol", "--plot", png)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "[solvent.ethanol]\nslope = 0.01"), out)
	_, err = os.Stat(png)
	assert.NoError(t, err)

	_, err = execute(t, "calibrate", "--solvents", presets, "--solvent", "water")
	assert.ErrorIs(t, err, packmol.InvalidInput) //no samples
	_, err = execute(t, "calibrate", "--solvent", "water")
	assert.ErrorIs(t, err, packmol.InvalidInput)
}
