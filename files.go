/*
 * files.go, part of gopackmol.
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
	"bufio"
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	v3 "github.com/rmera/gopackmol/v3"
)

// Loader obtains the atomic coordinates of a molecule stored in a file.
type Loader interface {
	Load(path string) (*v3.Matrix, error)
}

// LoaderFunc adapts a function to the Loader interface.
type LoaderFunc func(path string) (*v3.Matrix, error)

func (f LoaderFunc) Load(path string) (*v3.Matrix, error) { return f(path) }

// FileLoader reads XYZ and PDB files, which can be compressed with gzip (.gz)
// or zstd (.zst). Only the first frame or model is read.
type FileLoader struct{}

// Load reads the coordinates in the file path. The format is taken from the
// extension, after removing the compression one, if any.
func (FileLoader) Load(path string) (*v3.Matrix, error) {
	const caller = "FileLoader.Load"
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, WrapError(NotFound, caller, err, "%s", path)
		}
		return nil, WrapError(ParseError, caller, err, "%s", path)
	}
	defer f.Close()
	r, name, err := decompressor(f, path)
	if err != nil {
		return nil, WrapError(ParseError, caller, err, "%s: can't decompress", path)
	}
	defer r.Close()
	var coords *v3.Matrix
	switch strings.ToLower(filepath.Ext(name)) {
	case ".xyz":
		coords, err = XYZRead(r)
	case ".pdb", ".ent":
		coords, err = PDBRead(r)
	default:
		return nil, NewError(ParseError, caller, "%s: unknown molecule format %q", path, filepath.Ext(name))
	}
	if err != nil {
		return nil, WrapError(ParseError, caller, err, "%s", path)
	}
	return coords, nil
}

// zstd.Decoder doesn't implement io.ReadCloser, as its Close returns nothing.
type zstdCloser struct {
	*zstd.Decoder
}

func (z zstdCloser) Close() error {
	z.Decoder.Close()
	return nil
}

// decompressor returns a reader for the uncompressed content of f, and the
// name of the file without the compression extension.
func decompressor(f io.Reader, name string) (io.ReadCloser, string, error) {
	ext := strings.ToLower(filepath.Ext(name))
	switch ext {
	case ".gz":
		r, err := gzip.NewReader(f)
		return r, strings.TrimSuffix(name, filepath.Ext(name)), err
	case ".zst", ".zstd":
		r, err := zstd.NewReader(f)
		if err != nil {
			return nil, name, err
		}
		return zstdCloser{r}, strings.TrimSuffix(name, filepath.Ext(name)), nil
	}
	return io.NopCloser(f), name, nil
}

// XYZRead reads the first frame of an XYZ file and returns its coordinates.
func XYZRead(r io.Reader) (*v3.Matrix, error) {
	xyz := bufio.NewReader(r)
	line, err := xyz.ReadString('\n')
	if err != nil && (err != io.EOF || line == "") {
		return nil, NewError(ParseError, "XYZRead", "ill formatted XYZ file: no atom count")
	}
	natoms, err := strconv.Atoi(strings.TrimSpace(line))
	if err != nil || natoms <= 0 {
		return nil, NewError(ParseError, "XYZRead", "ill formatted XYZ file: bad atom count %q", strings.TrimSpace(line))
	}
	if _, err = xyz.ReadString('\n'); err != nil { //We dont care about this line
		return nil, NewError(ParseError, "XYZRead", "ill formatted XYZ file: missing comment line")
	}
	//natoms comes from the file, so it only bounds the reading.
	coords := make([]float64, 0, 3*min(natoms, 1024))
	for i := 0; i < natoms; i++ {
		line, err = xyz.ReadString('\n')
		if err != nil && (err != io.EOF || line == "") {
			return nil, NewError(ParseError, "XYZRead", "%d atoms expected, %d found", natoms, i)
		}
		fields := strings.Fields(line)
		if len(fields) < 4 {
			return nil, NewError(ParseError, "XYZRead", "line for atom %d ill formed", i+1)
		}
		for j := 1; j <= 3; j++ {
			f, err := strconv.ParseFloat(fields[j], 64)
			if err != nil {
				return nil, WrapError(ParseError, "XYZRead", err, "atom %d", i+1)
			}
			coords = append(coords, f)
		}
	}
	return v3.NewMatrix(coords)
}

// PDBRead reads the coordinates of the ATOM and HETATM records of the first
// model in a PDB file.
func PDBRead(r io.Reader) (*v3.Matrix, error) {
	sc := bufio.NewScanner(r)
	coords := make([]float64, 0, 300)
	lineno := 0
	for sc.Scan() {
		lineno++
		line := sc.Text()
		if strings.HasPrefix(line, "ENDMDL") || strings.HasPrefix(line, "END ") || strings.TrimSpace(line) == "END" {
			break
		}
		if !strings.HasPrefix(line, "ATOM") && !strings.HasPrefix(line, "HETATM") {
			continue
		}
		if len(line) < 54 {
			return nil, NewError(ParseError, "PDBRead", "line %d: record too short", lineno)
		}
		for _, span := range [3][2]int{{30, 38}, {38, 46}, {46, 54}} {
			f, err := strconv.ParseFloat(strings.TrimSpace(line[span[0]:span[1]]), 64)
			if err != nil {
				return nil, WrapError(ParseError, "PDBRead", err, "line %d", lineno)
			}
			coords = append(coords, f)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, WrapError(ParseError, "PDBRead", err, "reading")
	}
	if len(coords) == 0 {
		return nil, NewError(ParseError, "PDBRead", "no atoms found")
	}
	return v3.NewMatrix(coords)
}
