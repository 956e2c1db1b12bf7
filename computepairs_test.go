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
	"math/rand"
	"sort"
	"testing"
)

// runMethod computes the diagram of g with the given method.
func runMethod(t *testing.T, g *Grid, method Method, maxdim, minCacheSize int) *Diagram {
	t.Helper()
	cfg := &Config{
		Threshold:    g.Threshold,
		MaxDim:       maxdim,
		Method:       method,
		MinCacheSize: minCacheSize,
	}
	d, err := cfg.Run(g)
	if err != nil {
		t.Fatal(err)
	}
	return d
}

// pairsInDim extracts the (birth, death) intervals of one dimension,
// sorted.
func pairsInDim(d *Diagram, dim uint8) [][2]float64 {
	var out [][2]float64
	for _, p := range d.Pairs {
		if p.Dim == dim {
			out = append(out, [2]float64{p.Birth, p.Death})
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i][0] != out[j][0] {
			return out[i][0] < out[j][0]
		}
		return out[i][1] < out[j][1]
	})
	return out
}

func TestAnnulusLoop(t *testing.T) {
	// A ring of zeros around a higher center: the loop is born when the
	// ring closes and dies when the center fills it in.
	g := testGrid(t, []int{3, 3}, []float64{
		0, 0, 0,
		0, 1, 0,
		0, 0, 0,
	}, math.Inf(1))
	for _, method := range []Method{LinkFind, ReduceAll} {
		d := runMethod(t, g, method, 1, 0)
		got := pairsInDim(d, 1)
		if len(got) != 1 || got[0] != [2]float64{0, 1} {
			t.Errorf("method %v: dim-1 pairs = %v, want [[0 1]]", method, got)
		}
	}
}

func TestSquareNoLoop(t *testing.T) {
	// No loop closes strictly before its square fills in: every dim-1
	// column is an apparent pair.
	g := testGrid(t, []int{2, 2}, []float64{0, 1, 1, 2}, math.Inf(1))
	d := runMethod(t, g, LinkFind, 1, 0)
	if got := pairsInDim(d, 1); len(got) != 0 {
		t.Errorf("dim-1 pairs = %v, want none", got)
	}
	if got := pairsInDim(d, 0); len(got) != 1 || got[0] != [2]float64{0, math.Inf(1)} {
		t.Errorf("dim-0 pairs = %v, want one essential pair", got)
	}
}

func TestHollowCubeVoid(t *testing.T) {
	// A shell of zeros around a higher center: the enclosed void is a
	// single dim-2 feature dying when the center voxel fills.
	values := make([]float64, 27)
	values[13] = 1 // center of the 3×3×3 grid
	g := testGrid(t, []int{3, 3, 3}, values, math.Inf(1))
	d := runMethod(t, g, LinkFind, 2, 0)
	if got := pairsInDim(d, 2); len(got) != 1 || got[0] != [2]float64{0, 1} {
		t.Errorf("dim-2 pairs = %v, want [[0 1]]", got)
	}
	if got := pairsInDim(d, 1); len(got) != 0 {
		t.Errorf("dim-1 pairs = %v, want none", got)
	}
	if got := pairsInDim(d, 0); len(got) != 1 || got[0] != [2]float64{0, math.Inf(1)} {
		t.Errorf("dim-0 pairs = %v, want one essential pair", got)
	}
}

func TestLinkFindMatchesReduceAll(t *testing.T) {
	// The union-find sweep and the matrix reduction must agree on the
	// dim-0 intervals (locations may differ).
	rng := rand.New(rand.NewSource(1))
	values := make([]float64, 5*5)
	for i := range values {
		values[i] = float64(rng.Intn(8))
	}
	g := testGrid(t, []int{5, 5}, values, math.Inf(1))

	lf := pairsInDim(runMethod(t, g, LinkFind, 1, 0), 0)
	ra := pairsInDim(runMethod(t, g, ReduceAll, 1, 0), 0)
	if len(lf) != len(ra) {
		t.Fatalf("link_find found %d dim-0 pairs, compute_pairs %d", len(lf), len(ra))
	}
	for i := range lf {
		if lf[i] != ra[i] {
			t.Errorf("pair %d: link_find %v, compute_pairs %v", i, lf[i], ra[i])
		}
	}
	// The two methods must also agree in dimension 1.
	lf1 := pairsInDim(runMethod(t, g, LinkFind, 1, 0), 1)
	ra1 := pairsInDim(runMethod(t, g, ReduceAll, 1, 0), 1)
	if len(lf1) != len(ra1) {
		t.Fatalf("link_find found %d dim-1 pairs, compute_pairs %d", len(lf1), len(ra1))
	}
	for i := range lf1 {
		if lf1[i] != ra1[i] {
			t.Errorf("dim-1 pair %d: link_find %v, compute_pairs %v", i, lf1[i], ra1[i])
		}
	}
}

func TestConstantVolume(t *testing.T) {
	// Every feature of a constant grid is born and dies at the same
	// value; only the essential component survives.
	g := testGrid(t, []int{4, 4, 4}, make([]float64, 64), 1)
	d := runMethod(t, g, LinkFind, 2, 0)
	if len(d.Pairs) != 1 {
		t.Fatalf("%d pairs, want 1", len(d.Pairs))
	}
	p := d.Pairs[0]
	if p.Dim != 0 || p.Birth != 0 || p.Death != 1 {
		t.Errorf("pair = %+v, want (0, 0, 1)", p)
	}
}

func TestThresholdBelowMinimum(t *testing.T) {
	g := testGrid(t, []int{2, 2}, []float64{1, 2, 3, 4}, 0.5)
	for _, method := range []Method{LinkFind, ReduceAll, TopDim} {
		d := runMethod(t, g, method, 1, 0)
		if len(d.Pairs) != 0 {
			t.Errorf("method %v: %d pairs below an empty threshold", method, len(d.Pairs))
		}
	}
}

func TestMinCacheSizeInvariance(t *testing.T) {
	// Disabling the recorded-column cache trades time for memory but must
	// not change the diagram.
	rng := rand.New(rand.NewSource(7))
	values := make([]float64, 4*4*4)
	for i := range values {
		values[i] = float64(rng.Intn(5))
	}
	g := testGrid(t, []int{4, 4, 4}, values, math.Inf(1))
	cached := runMethod(t, g, LinkFind, 2, 0)
	uncached := runMethod(t, g, LinkFind, 2, 1<<20)
	if len(cached.Pairs) != len(uncached.Pairs) {
		t.Fatalf("cached run found %d pairs, uncached %d", len(cached.Pairs), len(uncached.Pairs))
	}
	for i := range cached.Pairs {
		if cached.Pairs[i] != uncached.Pairs[i] {
			t.Errorf("pair %d: cached %+v, uncached %+v", i, cached.Pairs[i], uncached.Pairs[i])
		}
	}
}

func TestApparentPairShortcut(t *testing.T) {
	// On a constant grid every reducible column pairs through the
	// apparent-pair shortcut without touching a working coboundary.
	g := testGrid(t, []int{4, 4}, make([]float64, 16), math.Inf(1))
	d := NewDiagram(g)
	jp := NewJointPairs(g, d)
	columns := jp.Sweep(jp.EnumEdges(axisEdgeSlots(g.Dim)), 0)
	cp := NewComputePairs(g, d, 0)
	cp.Reduce(columns)
	if cp.apparentPairs != len(columns) {
		t.Errorf("%d of %d columns used the apparent-pair shortcut", cp.apparentPairs, len(columns))
	}
}

func TestDeathCellUniqueness(t *testing.T) {
	// No two pairs may share a death cell.
	rng := rand.New(rand.NewSource(3))
	values := make([]float64, 6*6)
	for i := range values {
		values[i] = rng.Float64()
	}
	g := testGrid(t, []int{6, 6}, values, math.Inf(1))
	d := runMethod(t, g, LinkFind, 1, 0)
	seen := make(map[int64]bool)
	for _, p := range d.Pairs {
		if p.deathCell.isNone() {
			continue
		}
		if seen[p.deathCell.Index] {
			t.Errorf("death cell %d used twice", p.deathCell.Index)
		}
		seen[p.deathCell.Index] = true
		if p.Birth > p.Death {
			t.Errorf("pair %+v dies before it is born", p)
		}
	}
}
