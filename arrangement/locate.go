// seehuhn.de/go/vmap - planar map algebra for scenery generation
// Copyright (C) 2026  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package arrangement

import (
	"seehuhn.de/go/geom/vec"
	"seehuhn.de/go/vmap/kernel"
)

// Locate returns the face containing p.  The point must not lie on an
// edge or a vertex of the arrangement.
//
// The face is found by shooting a ray from p downwards: the first edge
// hit determines the face.  Every edge covers the half-open x-range from
// its left-most end point (inclusive) to its right-most end point
// (exclusive), and vertical edges are ignored.
func (m *Arrangement) Locate(p vec.Vec2) FaceID {
	best := NoHalfedge
	var bestY, bestSlope float64
	for i := range m.halfedges {
		he := &m.halfedges[i]
		if !he.alive {
			continue
		}
		a := m.vertices[m.halfedges[he.twin].target].pt
		b := m.vertices[he.target].pt
		if !(a.X < b.X) { // keep only half-edges running to the right
			continue
		}
		if p.X < a.X || p.X >= b.X {
			continue
		}
		if kernel.Orient(a, b, p) <= 0 {
			continue
		}

		var y float64
		if p.X == a.X {
			y = a.Y
		} else {
			y = a.Y + (p.X-a.X)*(b.Y-a.Y)/(b.X-a.X)
		}
		slope := (b.Y - a.Y) / (b.X - a.X)
		if best == NoHalfedge || y > bestY || (y == bestY && slope > bestSlope) {
			best = HalfedgeID(i)
			bestY = y
			bestSlope = slope
		}
	}
	if best == NoHalfedge {
		return m.unbounded
	}
	return m.halfedges[best].face
}
