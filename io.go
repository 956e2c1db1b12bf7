/*
Copyright © 2019 the Cubical authors.
This file is part of Cubical.

Cubical is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

Cubical is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with Cubical.  If not, see <http://www.gnu.org/licenses/>.
*/

package cubical

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/ctessum/sparse"
	"github.com/sbinet/npyio"
	"gonum.org/v1/gonum/floats"
)

// diphaMagic identifies a DIPHA file.
const diphaMagic = 8067171840

// DIPHA file types.
const (
	diphaImageData          = 1
	diphaPersistenceDiagram = 2
)

// ReadGrid reads a grid of vertex birth values from the named file,
// inferring the format from the file name extension: ".txt" for Perseus,
// ".npy" for NumPy, and ".complex" for DIPHA image data. NaN birth values
// are rejected.
func ReadGrid(filename string, threshold float64) (*Grid, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("cubical: couldn't open file %s: %v", filename, err)
	}
	defer f.Close()

	var values *sparse.DenseArray
	switch {
	case strings.HasSuffix(filename, ".txt"):
		values, err = readPerseus(f)
	case strings.HasSuffix(filename, ".npy"):
		values, err = readNumPy(f)
	case strings.HasSuffix(filename, ".complex"):
		values, err = readDIPHA(f)
	default:
		return nil, fmt.Errorf("cubical: unknown input file format (the extension should be one of npy, txt, or complex): %s", filename)
	}
	if err != nil {
		return nil, fmt.Errorf("cubical: reading %s: %v", filename, err)
	}
	if floats.HasNaN(values.Elements) {
		return nil, fmt.Errorf("cubical: %s contains NaN birth values", filename)
	}
	return NewGrid(values, threshold)
}

// readPerseus reads the Perseus cubical grid format: the number of axes,
// one extent per axis, then one birth value per vertex with x varying
// fastest. The value -1 marks a vertex excluded from the complex and is
// stored as +Inf.
func readPerseus(r io.Reader) (*sparse.DenseArray, error) {
	scan := bufio.NewScanner(r)
	scan.Split(bufio.ScanWords)
	next := func() (float64, error) {
		if !scan.Scan() {
			if err := scan.Err(); err != nil {
				return 0, err
			}
			return 0, io.ErrUnexpectedEOF
		}
		return strconv.ParseFloat(scan.Text(), 64)
	}

	dim, err := next()
	if err != nil {
		return nil, fmt.Errorf("reading dimension: %v", err)
	}
	if dim < 1 || dim > 3 || dim != math.Trunc(dim) {
		return nil, fmt.Errorf("dimension must be 1, 2, or 3, not %v", dim)
	}
	extents := make([]int, int(dim))
	n := 1
	for i := range extents {
		e, err := next()
		if err != nil {
			return nil, fmt.Errorf("reading extent %d: %v", i, err)
		}
		if e < 1 || e != math.Trunc(e) {
			return nil, fmt.Errorf("extent %d must be a positive integer, not %v", i, e)
		}
		extents[i] = int(e)
		n *= int(e)
	}
	// Perseus lists extents x first; storage is x fastest.
	shape := make([]int, len(extents))
	for i, e := range extents {
		shape[len(shape)-1-i] = e
	}
	values := sparse.ZerosDense(shape...)
	for i := 0; i < n; i++ {
		v, err := next()
		if err != nil {
			return nil, fmt.Errorf("reading value %d of %d: %v", i, n, err)
		}
		if v == -1 {
			v = math.Inf(1)
		}
		values.Elements[i] = v
	}
	return values, nil
}

// readNumPy reads a 1-, 2- or 3-axis float64 NumPy array in C order. The
// slowest-varying axis is z for 3-axis arrays and y for 2-axis arrays.
func readNumPy(r io.Reader) (*sparse.DenseArray, error) {
	nr, err := npyio.NewReader(r)
	if err != nil {
		return nil, err
	}
	shape := nr.Header.Descr.Shape
	if len(shape) < 1 || len(shape) > 3 {
		return nil, fmt.Errorf("array must have 1 to 3 axes, not %d", len(shape))
	}
	if nr.Header.Descr.Fortran {
		return nil, fmt.Errorf("Fortran-order arrays are not supported")
	}
	var data []float64
	if err := nr.Read(&data); err != nil {
		return nil, err
	}
	values := sparse.ZerosDense(shape...)
	if len(data) != len(values.Elements) {
		return nil, fmt.Errorf("got %d values for shape %v", len(data), shape)
	}
	copy(values.Elements, data)
	return values, nil
}

// readDIPHA reads the DIPHA IMAGE_DATA format: a little-endian stream of
// the DIPHA magic number, the file type, the value count, the number of
// axes, the extents (x first), and the values with x varying fastest.
func readDIPHA(r io.Reader) (*sparse.DenseArray, error) {
	var magic, ftype, n, dim int64
	for _, v := range []*int64{&magic, &ftype, &n, &dim} {
		if err := binary.Read(r, binary.LittleEndian, v); err != nil {
			return nil, err
		}
	}
	if magic != diphaMagic {
		return nil, fmt.Errorf("bad magic number %d; this is not a DIPHA file", magic)
	}
	if ftype != diphaImageData {
		return nil, fmt.Errorf("DIPHA file type must be %d (image data), not %d", diphaImageData, ftype)
	}
	if dim < 1 || dim > 3 {
		return nil, fmt.Errorf("image must have 1 to 3 axes, not %d", dim)
	}
	extents := make([]int64, dim)
	total := int64(1)
	for i := range extents {
		if err := binary.Read(r, binary.LittleEndian, &extents[i]); err != nil {
			return nil, err
		}
		if extents[i] < 1 {
			return nil, fmt.Errorf("extent %d must be positive, not %d", i, extents[i])
		}
		total *= extents[i]
	}
	if total != n {
		return nil, fmt.Errorf("value count %d does not match extents %v", n, extents)
	}
	shape := make([]int, dim)
	for i, e := range extents {
		shape[len(shape)-1-i] = int(e)
	}
	values := sparse.ZerosDense(shape...)
	if err := binary.Read(r, binary.LittleEndian, values.Elements); err != nil {
		return nil, err
	}
	return values, nil
}

// WriteDiagram writes the persistence diagram to the named file, in a
// format inferred from the file name: CSV for ".csv", NumPy for ".npy",
// and the DIPHA persistence diagram format otherwise. DIPHA output never
// includes locations.
func WriteDiagram(d *Diagram, filename string, loc Location) error {
	f, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("cubical: opening output file: %v", err)
	}
	defer f.Close()
	w := bufio.NewWriter(f)
	switch {
	case strings.HasSuffix(filename, ".csv"):
		err = writeCSV(w, d, loc)
	case strings.HasSuffix(filename, ".npy"):
		err = writeNumPy(w, d, loc)
	default:
		err = writeDIPHA(w, d)
	}
	if err != nil {
		return fmt.Errorf("cubical: writing %s: %v", filename, err)
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("cubical: writing %s: %v", filename, err)
	}
	return f.Close()
}

// writeCSV writes one "dim,birth,death[,x,y,z]" line per pair.
func writeCSV(w io.Writer, d *Diagram, loc Location) error {
	for i := range d.Pairs {
		p := &d.Pairs[i]
		if _, err := fmt.Fprintf(w, "%d,%v,%v", p.Dim, p.Birth, p.Death); err != nil {
			return err
		}
		if loc != LocNone {
			x, y, z := p.Location(d.g, loc)
			if _, err := fmt.Fprintf(w, ",%d,%d,%d", x, y, z); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintln(w); err != nil {
			return err
		}
	}
	return nil
}

// writeNumPy writes the diagram as a float64 array of shape (p, 6) with
// columns dim, birth, death, x, y, z. The array shape is fixed, so birth
// locations are written when loc is LocNone. The header is written
// directly because the diagram may be empty and a 0×6 shape must
// round-trip.
func writeNumPy(w io.Writer, d *Diagram, loc Location) error {
	if loc == LocNone {
		loc = LocBirth
	}
	header := fmt.Sprintf("{'descr': '<f8', 'fortran_order': False, 'shape': (%d, 6), }", len(d.Pairs))
	// Pad so that the preamble length is a multiple of 64, ending in \n.
	pad := 64 - (len(npyio.Magic)+4+len(header)+1)%64
	header += strings.Repeat(" ", pad) + "\n"
	if _, err := w.Write(npyio.Magic[:]); err != nil {
		return err
	}
	if _, err := w.Write([]byte{1, 0}); err != nil {
		return err
	}
	if err := binary.Write(w, binary.LittleEndian, uint16(len(header))); err != nil {
		return err
	}
	if _, err := io.WriteString(w, header); err != nil {
		return err
	}
	row := make([]float64, 6)
	for i := range d.Pairs {
		p := &d.Pairs[i]
		x, y, z := p.Location(d.g, loc)
		row[0], row[1], row[2] = float64(p.Dim), p.Birth, p.Death
		row[3], row[4], row[5] = float64(x), float64(y), float64(z)
		if err := binary.Write(w, binary.LittleEndian, row); err != nil {
			return err
		}
	}
	return nil
}

// writeDIPHA writes the DIPHA persistence diagram format: the magic
// number, the file type, the pair count, then dim, birth, and death per
// pair, all little-endian.
func writeDIPHA(w io.Writer, d *Diagram) error {
	hdr := []int64{diphaMagic, diphaPersistenceDiagram, int64(len(d.Pairs))}
	if err := binary.Write(w, binary.LittleEndian, hdr); err != nil {
		return err
	}
	for i := range d.Pairs {
		p := &d.Pairs[i]
		if err := binary.Write(w, binary.LittleEndian, int64(p.Dim)); err != nil {
			return err
		}
		if err := binary.Write(w, binary.LittleEndian, []float64{p.Birth, p.Death}); err != nil {
			return err
		}
	}
	return nil
}
