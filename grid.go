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
	"fmt"
	"math"

	"github.com/ctessum/sparse"
)

// numCellTypes is the number of cell-type slots at each anchor vertex.
// Slots are interpreted per cell dimension: a vertex uses slot 0; edges use
// slots 0..2 for the positive axis directions and 3..12 for the dual edges
// of the top-dimension sweep; squares use slots 0..2 for the three axis
// planes; the cube uses slot 0.
const numCellTypes = 13

// A Grid holds the vertex birth values of a 1-, 2- or 3-dimensional scalar
// grid along with the filtration threshold. Cells with birth at or above
// Threshold are not part of the filtration. A Grid is immutable after
// creation.
type Grid struct {
	AX, AY, AZ int // grid extents; AY and AZ are 1 for lower-dimensional inputs

	// Dim is the dimension of the input grid (1, 2 or 3), taken from the
	// number of axes of the input array rather than from the extents.
	Dim int

	// Threshold is the filtration cutoff. Cells born at or above it are
	// excluded.
	Threshold float64

	data *sparse.DenseArray // vertex births, shape (AZ, AY, AX)
}

// NewGrid creates a grid from an array of vertex birth values with 1 to 3
// axes. The fastest-varying axis of the array is x, so a 3-axis array has
// shape (AZ, AY, AX). The array is retained, not copied.
func NewGrid(values *sparse.DenseArray, threshold float64) (*Grid, error) {
	shape := values.GetShape()
	g := &Grid{AX: 1, AY: 1, AZ: 1, Dim: len(shape), Threshold: threshold, data: values}
	switch len(shape) {
	case 1:
		g.AX = shape[0]
	case 2:
		g.AY, g.AX = shape[0], shape[1]
	case 3:
		g.AZ, g.AY, g.AX = shape[0], shape[1], shape[2]
	default:
		return nil, fmt.Errorf("cubical: grid must have 1 to 3 axes, not %d", len(shape))
	}
	if g.AX < 1 || g.AY < 1 || g.AZ < 1 {
		return nil, fmt.Errorf("cubical: grid extents must be positive: %v", shape)
	}
	return g, nil
}

// Size returns the number of grid vertices.
func (g *Grid) Size() int { return g.AX * g.AY * g.AZ }

// VertexBirth returns the birth value of the vertex at (x, y, z), or +Inf
// for coordinates outside the grid so that any cell reaching outside the
// grid is born above every finite threshold.
func (g *Grid) VertexBirth(x, y, z int) float64 {
	if x < 0 || x >= g.AX || y < 0 || y >= g.AY || z < 0 || z >= g.AZ {
		return math.Inf(1)
	}
	return g.data.Get1d(x + g.AX*(y+g.AY*z))
}

// vertexBirth1d returns the birth of the vertex with packed index i.
func (g *Grid) vertexBirth1d(i int) float64 { return g.data.Get1d(i) }

// Index packs cell coordinates and type slot into a linear index. The
// packing is a bijection for anchors inside the grid and m < numCellTypes.
func (g *Grid) Index(x, y, z, m int) int64 {
	return int64(x) + int64(g.AX)*(int64(y)+int64(g.AY)*(int64(z)+int64(g.AZ)*int64(m)))
}

// XYZM unpacks a linear cell index into its anchor coordinates and type
// slot. A malformed index is a bug in the caller, not a data error.
func (g *Grid) XYZM(index int64) (x, y, z, m int) {
	if index < 0 || index >= int64(g.Size())*numCellTypes {
		panic(fmt.Sprintf("cubical: cell index %d out of range", index))
	}
	i := index
	x = int(i % int64(g.AX))
	i /= int64(g.AX)
	y = int(i % int64(g.AY))
	i /= int64(g.AY)
	z = int(i % int64(g.AZ))
	m = int(i / int64(g.AZ))
	return
}

// CellXYZ returns the anchor coordinates of the cell with the given index,
// used as the reported location of a persistence pair.
func (g *Grid) CellXYZ(index int64) (x, y, z int) {
	x, y, z, _ = g.XYZM(index)
	return
}

// edgeEnds gives the two endpoint vertices of each edge slot as offsets
// from the anchor. Slots 0..2 are the positive axis edges. Slots 3..12 are
// the dual edges used by the top-dimension (Alexander) sweep: together with
// the axis edges they cover the 13 positive directions of the
// 26-neighborhood, anchored at the minimum corner of their bounding box.
var edgeEnds = [numCellTypes][2][3]int{
	{{0, 0, 0}, {1, 0, 0}},
	{{0, 0, 0}, {0, 1, 0}},
	{{0, 0, 0}, {0, 0, 1}},
	{{0, 0, 0}, {1, 1, 0}},
	{{1, 0, 0}, {0, 1, 0}},
	{{0, 0, 0}, {0, 1, 1}},
	{{0, 1, 0}, {0, 0, 1}},
	{{0, 0, 0}, {1, 0, 1}},
	{{1, 0, 0}, {0, 0, 1}},
	{{0, 0, 0}, {1, 1, 1}},
	{{1, 0, 0}, {0, 1, 1}},
	{{0, 1, 0}, {1, 0, 1}},
	{{0, 0, 1}, {1, 1, 0}},
}

// squareCorners gives the four corner vertices of each square slot:
// m=0 spans x-y, m=1 spans x-z, m=2 spans y-z.
var squareCorners = [3][4][3]int{
	{{0, 0, 0}, {1, 0, 0}, {1, 1, 0}, {0, 1, 0}},
	{{0, 0, 0}, {0, 0, 1}, {1, 0, 1}, {1, 0, 0}},
	{{0, 0, 0}, {0, 1, 0}, {0, 1, 1}, {0, 0, 1}},
}

// CellBirth returns the birth of the cell of dimension dim anchored at
// (x, y, z) with type slot m: the maximum of the births of its corner
// vertices. Cells reaching outside the grid are born at +Inf.
func (g *Grid) CellBirth(x, y, z, m, dim int) float64 {
	switch dim {
	case 0:
		return g.VertexBirth(x, y, z)
	case 1:
		e := &edgeEnds[m]
		return math.Max(
			g.VertexBirth(x+e[0][0], y+e[0][1], z+e[0][2]),
			g.VertexBirth(x+e[1][0], y+e[1][1], z+e[1][2]))
	case 2:
		b := math.Inf(-1)
		for _, c := range &squareCorners[m] {
			b = math.Max(b, g.VertexBirth(x+c[0], y+c[1], z+c[2]))
		}
		return b
	case 3:
		b := math.Inf(-1)
		for dz := 0; dz <= 1; dz++ {
			for dy := 0; dy <= 1; dy++ {
				for dx := 0; dx <= 1; dx++ {
					b = math.Max(b, g.VertexBirth(x+dx, y+dy, z+dz))
				}
			}
		}
		return b
	}
	panic(fmt.Sprintf("cubical: no cells of dimension %d", dim))
}

// edgeVertices returns the packed vertex indices of the two endpoints of
// the edge cell with the given index. The edge must lie inside the grid.
func (g *Grid) edgeVertices(index int64) (int, int) {
	x, y, z, m := g.XYZM(index)
	e := &edgeEnds[m]
	v1 := x + e[0][0] + g.AX*(y+e[0][1]+g.AY*(z+e[0][2]))
	v2 := x + e[1][0] + g.AX*(y+e[1][1]+g.AY*(z+e[1][2]))
	return v1, v2
}
