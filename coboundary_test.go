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
	"math"
	"testing"
)

func collectCofaces(g *Grid, c Cube) []Cube {
	e := NewCoboundaryEnumerator(g)
	e.Reset(c)
	var out []Cube
	for e.Next() {
		out = append(out, e.Coface())
	}
	return out
}

func TestCofaceCounts(t *testing.T) {
	g := testGrid(t, []int{3, 3, 3}, make([]float64, 27), math.Inf(1))
	tests := []struct {
		name string
		cell Cube
		want int
	}{
		{"interior vertex", Cube{0, g.Index(1, 1, 1, 0), 0}, 6},
		{"corner vertex", Cube{0, g.Index(0, 0, 0, 0), 0}, 3},
		{"interior x edge", Cube{0, g.Index(0, 1, 1, 0), 1}, 4},
		{"boundary x edge", Cube{0, g.Index(0, 0, 0, 0), 1}, 2},
		{"interior xy square", Cube{0, g.Index(0, 0, 1, 0), 2}, 2},
		{"boundary xy square", Cube{0, g.Index(0, 0, 0, 0), 2}, 1},
		{"cube", Cube{0, g.Index(0, 0, 0, 0), 3}, 0},
	}
	for _, test := range tests {
		if got := len(collectCofaces(g, test.cell)); got != test.want {
			t.Errorf("%s: %d cofaces, want %d", test.name, got, test.want)
		}
	}
}

func TestCofaceOrderAndBirths(t *testing.T) {
	// 3×3 grid; the cofaces of the center vertex must come out in table
	// order (y before x within the plane, positive side first) with the
	// max-of-corners birth.
	g := testGrid(t, []int{3, 3}, []float64{
		0, 1, 2,
		3, 4, 5,
		6, 7, 8,
	}, math.Inf(1))
	center := Cube{4, g.Index(1, 1, 0, 0), 0}
	got := collectCofaces(g, center)
	want := []Cube{
		{7, g.Index(1, 1, 0, 1), 1}, // up: max(4,7)
		{4, g.Index(1, 0, 0, 1), 1}, // down: max(1,4)
		{5, g.Index(1, 1, 0, 0), 1}, // right: max(4,5)
		{4, g.Index(0, 1, 0, 0), 1}, // left: max(3,4)
	}
	if len(got) != len(want) {
		t.Fatalf("%d cofaces, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("coface %d: got %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestCofaceThresholdFilter(t *testing.T) {
	// The upper edge of the path is born at 5 and must be dropped below a
	// threshold of 4.
	g := testGrid(t, []int{3}, []float64{0, 1, 5}, 4)
	v := Cube{1, g.Index(1, 0, 0, 0), 0}
	got := collectCofaces(g, v)
	if len(got) != 1 {
		t.Fatalf("%d cofaces, want 1", len(got))
	}
	if got[0].Birth != 1 || got[0].Index != g.Index(0, 0, 0, 0) {
		t.Errorf("surviving coface = %+v, want the edge born at 1", got[0])
	}
}

func TestCofaceDimension(t *testing.T) {
	g := testGrid(t, []int{2, 2}, make([]float64, 4), math.Inf(1))
	edge := Cube{0, g.Index(0, 0, 0, 0), 1}
	for _, c := range collectCofaces(g, edge) {
		if c.Dim != 2 {
			t.Errorf("coface of an edge has dimension %d", c.Dim)
		}
	}
}
