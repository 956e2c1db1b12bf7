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
	"io"
)

// A PersistencePair is one interval of the persistence diagram. It keeps
// the cells that created and killed the feature so that either location
// can be reported. The death cell is noneCube for essential (infinite)
// features.
type PersistencePair struct {
	Dim          uint8
	Birth, Death float64

	birthCell, deathCell Cube
}

// Location returns the grid coordinates of the pair according to loc:
// the anchor of the birth cell or of the death cell. An essential pair has
// no death cell, so its birth location is reported either way.
func (p *PersistencePair) Location(g *Grid, loc Location) (x, y, z int) {
	c := p.birthCell
	if loc == LocDeath && !p.deathCell.isNone() {
		c = p.deathCell
	}
	return g.CellXYZ(c.Index)
}

// A Diagram is the append-only sink for persistence pairs. If Echo is set,
// pairs are written to it as they are recorded.
type Diagram struct {
	Pairs []PersistencePair
	Echo  io.Writer

	g *Grid
}

// NewDiagram returns an empty diagram for pairs computed on g.
func NewDiagram(g *Grid) *Diagram { return &Diagram{g: g} }

// Grid returns the grid the diagram was computed on.
func (d *Diagram) Grid() *Grid { return d.g }

// Add records one pair. Trivial pairs, which are born and die at the same
// value, are suppressed.
func (d *Diagram) Add(dim uint8, birth, death float64, birthCell, deathCell Cube) {
	if birth == death {
		return
	}
	d.Pairs = append(d.Pairs, PersistencePair{
		Dim: dim, Birth: birth, Death: death,
		birthCell: birthCell, deathCell: deathCell,
	})
	if d.Echo != nil {
		x, y, z := d.g.CellXYZ(birthCell.Index)
		fmt.Fprintf(d.Echo, "[%d] %v %v (%d,%d,%d)\n", dim, birth, death, x, y, z)
	}
}
