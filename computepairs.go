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

// ComputePairs reduces the coboundary matrix of one dimension at a time
// over ℤ/2, column by column in filtration order. Most columns pair
// immediately through the apparent-pair shortcut; the rest accumulate a
// working coboundary in a priority queue whose repeated pivot extraction
// implements the ℤ/2 column additions.
type ComputePairs struct {
	g       *Grid
	diagram *Diagram

	// dim is the dimension of the columns currently being reduced. It
	// starts at 1: with the link_find method dimension 0 is handled by the
	// union-find sweep and the first reduction runs over its leftover
	// edges without an assembly step.
	dim uint8

	// minCacheSize is the smallest working coboundary worth caching.
	// Smaller columns are recomputed from scratch if they are ever reduced
	// against, trading time for memory. The reduction is correct either
	// way: any column with the right pivot serves for the addition.
	minCacheSize int

	// pivotColumnIndex maps a cell index to the column whose reduction
	// ended with that cell as pivot. It is cleared at the start of each
	// Reduce and read by the following dimension's AssembleColumns, so
	// its keys always refer to cells of a single dimension.
	pivotColumnIndex map[int64]int

	// apparentPairs counts the columns paired by the apparent-pair
	// shortcut without ever building a working coboundary.
	apparentPairs int
}

// NewComputePairs returns a reducer recording pairs into diagram.
func NewComputePairs(g *Grid, diagram *Diagram, minCacheSize int) *ComputePairs {
	return &ComputePairs{
		g:                g,
		diagram:          diagram,
		dim:              1,
		minCacheSize:     minCacheSize,
		pivotColumnIndex: make(map[int64]int),
	}
}

// AssembleColumns enumerates the columns to reduce in the given dimension,
// sorted in reduction order (descending birth). For dimension 0 these are
// all vertices below the threshold. For higher dimensions they are the cells of the three
// axis-aligned type slots below the threshold, excluding any cell that is
// already the pivot of a column reduced in the previous dimension.
func (cp *ComputePairs) AssembleColumns(dim uint8) []Cube {
	cp.dim = dim
	g := cp.g
	var ctr []Cube
	if dim == 0 {
		for z := 0; z < g.AZ; z++ {
			for y := 0; y < g.AY; y++ {
				for x := 0; x < g.AX; x++ {
					if birth := g.VertexBirth(x, y, z); birth < g.Threshold {
						ctr = append(ctr, Cube{birth, g.Index(x, y, z, 0), 0})
					}
				}
			}
		}
	} else {
		for z := 0; z < g.AZ; z++ {
			for y := 0; y < g.AY; y++ {
				for x := 0; x < g.AX; x++ {
					for m := 0; m < 3; m++ {
						ind := g.Index(x, y, z, m)
						if _, ok := cp.pivotColumnIndex[ind]; ok {
							continue
						}
						if birth := g.CellBirth(x, y, z, m, int(dim)); birth < g.Threshold {
							ctr = append(ctr, Cube{birth, ind, dim})
						}
					}
				}
			}
		}
	}
	sortCubes(ctr)
	return ctr
}

// Reduce processes the columns left to right, recording one pair per
// column: an apparent pair when the first enumerated coface shares the
// column's birth and is unclaimed, a finite pair when the working
// coboundary yields a fresh pivot, or an essential pair when it empties.
// Columns whose pivot collides with an earlier column are reduced against
// that column, reusing its recorded working coboundary when one was kept.
func (cp *ComputePairs) Reduce(ctr []Cube) {
	cp.pivotColumnIndex = make(map[int64]int, len(ctr))
	recorded := make(map[int]CubeHeap, len(ctr))
	cofaces := NewCoboundaryEnumerator(cp.g)
	var cofaceEntries []Cube

	for i := range ctr {
		var working CubeHeap
		birth := ctr[i].Birth

		j := i
		pivot := noneCube
		mightBeApparentPair := true

		for {
			foundPersistencePair := false
			cofaceEntries = cofaceEntries[:0]
			cofaces.Reset(ctr[j])
			for cofaces.Next() {
				coface := cofaces.Coface()
				cofaceEntries = append(cofaceEntries, coface)
				if mightBeApparentPair && ctr[j].Birth == coface.Birth {
					if _, claimed := cp.pivotColumnIndex[coface.Index]; !claimed {
						pivot = coface
						foundPersistencePair = true
						break
					}
					mightBeApparentPair = false
				}
			}

			if foundPersistencePair {
				if working.Len() == 0 {
					cp.apparentPairs++
				}
				cp.diagram.Add(cp.dim, birth, pivot.Birth, ctr[i], pivot)
				cp.pivotColumnIndex[pivot.Index] = i
				break
			}

			if wc, ok := recorded[j]; ok {
				for _, c := range wc {
					working.push(c)
				}
			} else {
				for _, c := range cofaceEntries {
					working.push(c)
				}
			}
			pivot = getPivot(&working)

			if pivot.isNone() {
				// The column reduced to zero: the feature it created
				// survives to the threshold.
				if birth != cp.g.Threshold {
					cp.diagram.Add(cp.dim, birth, cp.g.Threshold, ctr[i], noneCube)
				}
				break
			}
			if k, ok := cp.pivotColumnIndex[pivot.Index]; ok {
				j = k
				continue
			}
			if len(working) >= cp.minCacheSize {
				recorded[i] = working
			}
			cp.diagram.Add(cp.dim, birth, pivot.Birth, ctr[i], pivot)
			cp.pivotColumnIndex[pivot.Index] = i
			break
		}
	}
}

// popPivot removes and returns the surviving top cell of the working
// coboundary after pairwise ℤ/2 cancellation of equal indices, or noneCube
// if everything cancels. Equal indices are necessarily adjacent at the top
// because a cell's birth is a function of its index.
func popPivot(column *CubeHeap) Cube {
	if column.Len() == 0 {
		return noneCube
	}
	pivot := column.popTop()
	for column.Len() > 0 && column.top().Index == pivot.Index {
		column.popTop()
		if column.Len() == 0 {
			return noneCube
		}
		pivot = column.popTop()
	}
	return pivot
}

// getPivot returns the pivot of the working coboundary without removing
// it, cancelling any annihilated entries along the way.
func getPivot(column *CubeHeap) Cube {
	pivot := popPivot(column)
	if !pivot.isNone() {
		column.push(pivot)
	}
	return pivot
}
