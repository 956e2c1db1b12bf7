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

// Package cubical computes the persistent homology of cubical complexes
// built from 1-, 2- and 3-dimensional scalar grids such as grayscale
// images and volumetric data. Given the birth value sampled at each grid
// vertex and a threshold, it reports the connected components, loops and
// voids of the growing sublevel sets as a persistence diagram.
package cubical

import (
	"fmt"
	"io"

	"github.com/sirupsen/logrus"
)

// Version is the version of this software.
const Version = "1.0.0"

// A Method selects how the persistence diagram is computed.
type Method int

const (
	// LinkFind computes dimension 0 with the union-find sweep and higher
	// dimensions with the matrix reduction. This is the default.
	LinkFind Method = iota
	// ReduceAll computes every dimension, including 0, with the matrix
	// reduction.
	ReduceAll
	// TopDim computes only the top dimension, as a union-find sweep over
	// the dual edge sets (Alexander duality).
	TopDim
)

// ParseMethod converts the command-line spelling of a method.
func ParseMethod(s string) (Method, error) {
	switch s {
	case "link_find":
		return LinkFind, nil
	case "compute_pairs":
		return ReduceAll, nil
	case "top_dim":
		return TopDim, nil
	}
	return 0, fmt.Errorf("cubical: invalid method %q (options are link_find, compute_pairs, and top_dim)", s)
}

// A Location selects which cell's coordinates are reported for each pair.
type Location int

const (
	// LocBirth reports the anchor of the cell that created the feature.
	LocBirth Location = iota
	// LocDeath reports the anchor of the cell that killed the feature.
	LocDeath
	// LocNone omits locations from the output.
	LocNone
)

// ParseLocation converts the command-line spelling of a location choice.
func ParseLocation(s string) (Location, error) {
	switch s {
	case "birth":
		return LocBirth, nil
	case "death":
		return LocDeath, nil
	case "none":
		return LocNone, nil
	}
	return 0, fmt.Errorf("cubical: invalid location %q (options are birth, death, and none)", s)
}

// A Config specifies one computation.
type Config struct {
	// Threshold is the filtration cutoff; cells born at or above it are
	// ignored. Set it to +Inf to include everything.
	Threshold float64

	// MaxDim is the highest homology dimension to compute, at most 2. It
	// is clamped to the grid dimension minus one.
	MaxDim int

	// Method selects the algorithm (see Method).
	Method Method

	// MinCacheSize is the smallest working coboundary the reduction will
	// cache; 0 caches everything.
	MinCacheSize int

	// Location selects the reported pair coordinates.
	Location Location

	// Print, if non-nil, receives a line per pair as pairs are found.
	Print io.Writer
}

// Run computes the persistence diagram of g according to c.
func (c *Config) Run(g *Grid) (*Diagram, error) {
	maxdim := c.MaxDim
	if maxdim > g.Dim-1 {
		maxdim = g.Dim - 1
	}
	diagram := NewDiagram(g)
	diagram.Echo = c.Print

	logrus.WithFields(logrus.Fields{
		"extents":   []int{g.AX, g.AY, g.AZ},
		"threshold": g.Threshold,
		"maxdim":    maxdim,
	}).Info("computing persistence")

	var counted int
	count := func(dim int) {
		n := len(diagram.Pairs) - counted
		counted = len(diagram.Pairs)
		logrus.Infof("the number of pairs in dim %d: %d", dim, n)
	}

	switch c.Method {
	case LinkFind:
		jp := NewJointPairs(g, diagram)
		columns := jp.Sweep(jp.EnumEdges(axisEdgeSlots(g.Dim)), 0)
		count(0)
		if maxdim > 0 {
			cp := NewComputePairs(g, diagram, c.MinCacheSize)
			cp.Reduce(columns)
			count(1)
			if maxdim > 1 {
				cp.Reduce(cp.AssembleColumns(2))
				count(2)
			}
		}

	case ReduceAll:
		cp := NewComputePairs(g, diagram, c.MinCacheSize)
		for dim := 0; dim <= maxdim; dim++ {
			cp.Reduce(cp.AssembleColumns(uint8(dim)))
			count(dim)
		}

	case TopDim:
		jp := NewJointPairs(g, diagram)
		ms, emitDim := dualEdgeSlots(g.Dim)
		jp.Sweep(jp.EnumEdges(ms), emitDim)
		count(int(emitDim))

	default:
		return nil, fmt.Errorf("cubical: unknown method %d", c.Method)
	}

	logrus.Infof("the number of total pairs: %d", len(diagram.Pairs))
	return diagram, nil
}

// axisEdgeSlots returns the edge type slots of a dim-dimensional grid.
func axisEdgeSlots(dim int) []int {
	switch dim {
	case 1:
		return []int{0}
	case 2:
		return []int{0, 1}
	default:
		return []int{0, 1, 2}
	}
}

// dualEdgeSlots returns the edge type slots of the dual graph of a
// dim-dimensional grid along with the dimension the resulting pairs belong
// to: 8-connectivity in 2D and 26-connectivity in 3D.
func dualEdgeSlots(dim int) ([]int, uint8) {
	switch dim {
	case 1:
		return []int{0}, 0
	case 2:
		return []int{0, 1, 3, 4}, 1
	default:
		return []int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12}, 2
	}
}
