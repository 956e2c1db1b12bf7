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

import "fmt"

// A cofaceStep locates one coface candidate of a cell: the offset of the
// coface anchor from the cell anchor and the coface type slot.
type cofaceStep struct {
	dx, dy, dz, m int
}

// Coface candidate tables. For each cell type the candidates are listed
// z axis first, then y, then x, positive side before negative, which fixes
// the emission order of the enumerator.
var (
	// A vertex is a face of up to six edges.
	vertexCofaces = [6]cofaceStep{
		{0, 0, 0, 2}, {0, 0, -1, 2},
		{0, 0, 0, 1}, {0, -1, 0, 1},
		{0, 0, 0, 0}, {-1, 0, 0, 0},
	}
	// An axis edge is a face of up to four squares, two in each of the
	// planes containing its direction.
	edgeCofaces = [3][4]cofaceStep{
		{{0, 0, 0, 1}, {0, 0, -1, 1}, {0, 0, 0, 0}, {0, -1, 0, 0}},
		{{0, 0, 0, 2}, {0, 0, -1, 2}, {0, 0, 0, 0}, {-1, 0, 0, 0}},
		{{0, 0, 0, 2}, {0, -1, 0, 2}, {0, 0, 0, 1}, {-1, 0, 0, 1}},
	}
	// A square is a face of up to two cubes, one on each side of its plane.
	squareCofaces = [3][2]cofaceStep{
		{{0, 0, 0, 0}, {0, 0, -1, 0}},
		{{0, 0, 0, 0}, {0, -1, 0, 0}},
		{{0, 0, 0, 0}, {-1, 0, 0, 0}},
	}
)

// A CoboundaryEnumerator yields the cofaces of a cell, each tagged with its
// induced birth, in the fixed order of the candidate tables above. Cofaces
// born at or above the grid threshold (including any reaching outside the
// grid) are skipped. Use as
//
//	e.Reset(c)
//	for e.Next() {
//		cf := e.Coface()
//		...
//	}
type CoboundaryEnumerator struct {
	g          *Grid
	cell       Cube
	x, y, z, m int
	steps      []cofaceStep
	pos        int
	coface     Cube
}

// NewCoboundaryEnumerator returns an enumerator over cofaces in g.
func NewCoboundaryEnumerator(g *Grid) *CoboundaryEnumerator {
	return &CoboundaryEnumerator{g: g}
}

// Reset points the enumerator at the cofaces of c. Dual edge slots have no
// cofaces in the complexes this enumerator serves; asking for them is a bug.
func (e *CoboundaryEnumerator) Reset(c Cube) {
	e.cell = c
	e.x, e.y, e.z, e.m = e.g.XYZM(c.Index)
	e.pos = 0
	switch c.Dim {
	case 0:
		e.steps = vertexCofaces[:]
	case 1:
		if e.m > 2 {
			panic(fmt.Sprintf("cubical: dual edge slot %d has no coboundary", e.m))
		}
		e.steps = edgeCofaces[e.m][:]
	case 2:
		e.steps = squareCofaces[e.m][:]
	case 3:
		e.steps = nil
	default:
		panic(fmt.Sprintf("cubical: no cells of dimension %d", c.Dim))
	}
}

// Next advances to the next coface below the threshold, reporting whether
// one exists.
func (e *CoboundaryEnumerator) Next() bool {
	for e.pos < len(e.steps) {
		s := e.steps[e.pos]
		e.pos++
		x, y, z := e.x+s.dx, e.y+s.dy, e.z+s.dz
		// The induced birth is the maximum over the coface's corners,
		// which equals max(cell birth, new corner births). It is +Inf
		// whenever the coface reaches outside the grid, so the threshold
		// comparison doubles as the bounds check.
		birth := e.g.CellBirth(x, y, z, s.m, int(e.cell.Dim)+1)
		if birth < e.g.Threshold {
			e.coface = Cube{birth, e.g.Index(x, y, z, s.m), e.cell.Dim + 1}
			return true
		}
	}
	return false
}

// Coface returns the coface found by the last successful call to Next.
func (e *CoboundaryEnumerator) Coface() Cube { return e.coface }
