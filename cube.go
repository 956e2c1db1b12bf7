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
	"container/heap"
	"sort"
)

// A Cube identifies one cell of the filtered complex: the filtration value
// at which it appears, its packed linear index (see Grid.Index), and its
// dimension.
type Cube struct {
	Birth float64
	Index int64
	Dim   uint8
}

// noneCube marks the absence of a cell, for example the pivot of an empty
// working coboundary.
var noneCube = Cube{0, -1, 0}

func (c Cube) isNone() bool { return c.Index == -1 }

// cubeLess is the total order shared by the reduction and its priority
// queues: a precedes b when a is born later, with ties broken by ascending
// index. Columns are reduced in this order (the coboundary reduction walks
// the filtration backwards), and the maximum under it, i.e. the
// earliest-born cell with the largest index, is the top of a CubeHeap.
func cubeLess(a, b Cube) bool {
	if a.Birth != b.Birth {
		return a.Birth > b.Birth
	}
	return a.Index < b.Index
}

// sortCubes puts cells in column-reduction order: descending birth, ties
// by ascending index. Indices are unique, so the order is total and the
// result deterministic.
func sortCubes(c []Cube) {
	sort.Slice(c, func(i, j int) bool { return cubeLess(c[i], c[j]) })
}

// A CubeHeap is a priority queue of cells whose top is the cell appearing
// earliest in the filtration (ties going to the larger index), i.e. the
// candidate pivot of a working coboundary. Duplicate indices are allowed;
// they are cancelled pairwise (coefficients are in ℤ/2) when a pivot is
// extracted.
type CubeHeap []Cube

func (h CubeHeap) Len() int           { return len(h) }
func (h CubeHeap) Less(i, j int) bool { return cubeLess(h[j], h[i]) }
func (h CubeHeap) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }

func (h *CubeHeap) Push(x interface{}) { *h = append(*h, x.(Cube)) }

func (h *CubeHeap) Pop() interface{} {
	old := *h
	n := len(old)
	c := old[n-1]
	*h = old[:n-1]
	return c
}

func (h *CubeHeap) push(c Cube) { heap.Push(h, c) }

// popTop removes and returns the top cell. The heap must be non-empty.
func (h *CubeHeap) popTop() Cube { return heap.Pop(h).(Cube) }

func (h CubeHeap) top() Cube { return h[0] }
