/*
 * files_test.go, part of gopackmol.
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
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	v3 "github.com/rmera/gopackmol/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var rootdirtest string = "testdata"

func TestXYZLoad(Te *testing.T) {
	coords, err := FileLoader{}.Load(filepath.Join(rootdirtest, "water.xyz"))
	require.NoError(Te, err)
	require.Equal(Te, 3, coords.NVecs())
	assert.Equal(Te, [3]float64{0, 0.7572, -0.4692}, coords.Vec(1))
}

func TestPDBLoad(Te *testing.T) {
	coords, err := FileLoader{}.Load(filepath.Join(rootdirtest, "triangle.pdb"))
	require.NoError(Te, err)
	//the atom after ENDMDL belongs to a second model and is not read.
	require.Equal(Te, 3, coords.NVecs())
	box, err := Bounds(coords, 1)
	require.NoError(Te, err)
	assert.Equal(Te, Point3{-1, -1, -1}, box.Min)
	assert.Equal(Te, Point3{3, 3, 1}, box.Max)
}

func compressTo(Te *testing.T, src, dst string) {
	data, err := os.ReadFile(src)
	require.NoError(Te, err)
	f, err := os.Create(dst)
	require.NoError(Te, err)
	defer f.Close()
	switch filepath.Ext(dst) {
	case ".gz":
		w := gzip.NewWriter(f)
		_, err = w.Write(data)
		require.NoError(Te, err)
		require.NoError(Te, w.Close())
	case ".zst":
		w, err := zstd.NewWriter(f)
		require.NoError(Te, err)
		_, err = w.Write(data)
		require.NoError(Te, err)
		require.NoError(Te, w.Close())
	}
}

func TestCompressedLoad(Te *testing.T) {
	dir := Te.TempDir()
	for _, name := range []string{"water.xyz.gz", "water.xyz.zst", "triangle.pdb.gz", "triangle.pdb.zst"} {
		dst := filepath.Join(dir, name)
		compressTo(Te, filepath.Join(rootdirtest, strings.TrimSuffix(name, filepath.Ext(name))), dst)
		coords, err := FileLoader{}.Load(dst)
		require.NoError(Te, err, name)
		assert.Equal(Te, 3, coords.NVecs(), name)
	}
}

func TestLoadErrors(Te *testing.T) {
	_, err := FileLoader{}.Load(filepath.Join(rootdirtest, "nothere.pdb"))
	assert.ErrorIs(Te, err, NotFound)
	assert.ErrorIs(Te, err, os.ErrNotExist)

	dir := Te.TempDir()
	cases := map[string]string{
		"empty.xyz":    "",
		"zero.xyz":     "0\nnothing\n",
		"short.xyz":    "3\nwater\nO 0 0 0\n",
		"badcoord.xyz": "1\nx\nO 0 zero 0\n",
		"huge.xyz":     "9999999999999999\ncomment\nO 0 0 0\n",
		"noatoms.pdb":  "REMARK nothing here\nEND\n",
		"badatom.pdb":  "ATOM      1  C1  MOL A   1       x.000   0.000   0.000  1.00  0.00           C\n",
		"mol.mol2":     "@<TRIPOS>MOLECULE\n",
		"bad.xyz.gz":   "this is not gzip",
	}
	for name, content := range cases {
		p := filepath.Join(dir, name)
		require.NoError(Te, os.WriteFile(p, []byte(content), 0o644))
		_, err := FileLoader{}.Load(p)
		assert.ErrorIs(Te, err, ParseError, name)
	}
}

func TestLoaderFunc(Te *testing.T) {
	var l Loader = LoaderFunc(func(path string) (*v3.Matrix, error) {
		return triangle(Te), nil
	})
	coords, err := l.Load("whatever")
	require.NoError(Te, err)
	assert.Equal(Te, 3, coords.NVecs())
}
