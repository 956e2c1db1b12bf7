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

import "sort"

// JointPairs computes dimension-0 persistence by sweeping edges in
// filtration order and uniting vertex components. With the dual edge slots
// of the top-dimension method it computes top-dimensional persistence the
// same way.
type JointPairs struct {
	g       *Grid
	diagram *Diagram
}

// NewJointPairs returns a sweep that records pairs into diagram.
func NewJointPairs(g *Grid, diagram *Diagram) *JointPairs {
	return &JointPairs{g: g, diagram: diagram}
}

// EnumEdges collects the edge cells of the given type slots whose birth is
// below the threshold, sorted in sweep order: ascending birth, ties by
// descending index.
func (jp *JointPairs) EnumEdges(ms []int) []Cube {
	g := jp.g
	var edges []Cube
	for z := 0; z < g.AZ; z++ {
		for y := 0; y < g.AY; y++ {
			for x := 0; x < g.AX; x++ {
				for _, m := range ms {
					birth := g.CellBirth(x, y, z, m, 1)
					if birth < g.Threshold {
						edges = append(edges, Cube{birth, g.Index(x, y, z, m), 1})
					}
				}
			}
		}
	}
	sort.Slice(edges, func(i, j int) bool { return cubeLess(edges[j], edges[i]) })
	return edges
}

// Sweep unites vertex components along the given edges, which must be in
// filtration order. Each merge kills the younger of the two components; the
// pair is recorded with dimension emitDim unless it is trivial. After the
// sweep, every surviving component born below the threshold is recorded as
// an essential pair dying at the threshold, in vertex index order.
//
// The returned slice holds the edges that closed a cycle instead of
// merging, in column-reduction order: with the link_find method these are
// exactly the dimension-1 columns for the subsequent reduction.
func (jp *JointPairs) Sweep(edges []Cube, emitDim uint8) []Cube {
	g := jp.g
	uf := NewUnionFind(g)
	columns := make([]Cube, 0, len(edges))
	for _, e := range edges {
		v1, v2 := g.edgeVertices(e.Index)
		loser, merged := uf.Union(v1, v2)
		if !merged {
			columns = append(columns, e)
			continue
		}
		birth := uf.Birth(loser)
		jp.diagram.Add(emitDim, birth, e.Birth,
			Cube{birth, int64(loser), 0}, e)
	}
	for i, n := 0, g.Size(); i < n; i++ {
		if uf.Find(i) != i {
			continue
		}
		if birth := uf.Birth(i); birth < g.Threshold {
			jp.diagram.Add(emitDim, birth, g.Threshold,
				Cube{birth, int64(i), 0}, noneCube)
		}
	}
	// The sweep saw the cycle edges in ascending order; the reduction
	// wants them descending.
	for i, j := 0, len(columns)-1; i < j; i, j = i+1, j-1 {
		columns[i], columns[j] = columns[j], columns[i]
	}
	return columns
}
