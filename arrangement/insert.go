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
	"iter"

	"seehuhn.de/go/geom/vec"
	"seehuhn.de/go/vmap/kernel"
)

// CCB iterates over the connected boundary component containing h,
// starting at h.
func (m *Arrangement) CCB(h HalfedgeID) iter.Seq[HalfedgeID] {
	return func(yield func(HalfedgeID) bool) {
		e := h
		for {
			if !yield(e) {
				return
			}
			e = m.halfedges[e].next
			if e == h {
				return
			}
		}
	}
}

// CCBPoints returns the target points of the half-edges of the boundary
// component starting at h.  The last point is the source of h.
func (m *Arrangement) CCBPoints(h HalfedgeID) []vec.Vec2 {
	var pts []vec.Vec2
	for e := range m.CCB(h) {
		pts = append(pts, m.TargetPoint(e))
	}
	return pts
}

// ccbArea returns the signed area enclosed by the boundary component of h.
// Antennas contribute nothing.
func (m *Arrangement) ccbArea(h HalfedgeID) float64 {
	var sum float64
	p0 := m.SourcePoint(h)
	for e := range m.CCB(h) {
		a := m.SourcePoint(e).Sub(p0)
		b := m.TargetPoint(e).Sub(p0)
		sum += a.X*b.Y - a.Y*b.X
	}
	return sum / 2
}

const outerEntry = -1

// ccbEntry finds the boundary component of f containing h.  The result is
// outerEntry for the outer boundary, or the index into the hole list.
func (m *Arrangement) ccbEntry(f FaceID, h HalfedgeID) int {
	fc := &m.faces[f]
	holes := make(map[HalfedgeID]int, len(fc.holes))
	for i, e := range fc.holes {
		holes[e] = i
	}
	for e := range m.CCB(h) {
		if e == fc.outer {
			return outerEntry
		}
		if i, ok := holes[e]; ok {
			return i
		}
	}
	panic("arrangement: boundary component not registered with its face")
}

func (m *Arrangement) setCCBFace(h HalfedgeID, f FaceID) {
	for e := range m.CCB(h) {
		m.halfedges[e].face = f
	}
}

func (m *Arrangement) removeHole(f FaceID, i int) {
	holes := m.faces[f].holes
	last := len(holes) - 1
	holes[i] = holes[last]
	m.faces[f].holes = holes[:last]
}

// moveHolesInside moves those holes of f which lie inside the outer
// boundary of g over to g.
func (m *Arrangement) moveHolesInside(f, g FaceID) {
	ring := m.CCBPoints(m.faces[g].outer)
	holes := m.faces[f].holes
	kept := holes[:0]
	for _, h := range holes {
		if m.holeInside(h, ring) {
			m.setCCBFace(h, g)
			m.faces[g].holes = append(m.faces[g].holes, h)
		} else {
			kept = append(kept, h)
		}
	}
	m.faces[f].holes = kept
}

// holeInside reports whether the boundary component of h lies inside the
// ring.  Since components never cross, the first vertex which is not on
// the ring decides.
func (m *Arrangement) holeInside(h HalfedgeID, ring []vec.Vec2) bool {
	for e := range m.CCB(h) {
		switch kernel.BoundedSide(ring, m.TargetPoint(e)) {
		case kernel.Inside:
			return true
		case kernel.Outside:
			return false
		}
	}
	// all vertices on the ring: decide by some edge midpoint
	for e := range m.CCB(h) {
		mid := m.SourcePoint(e).Add(m.TargetPoint(e)).Mul(0.5)
		switch kernel.BoundedSide(ring, mid) {
		case kernel.Inside:
			return true
		case kernel.Outside:
			return false
		}
	}
	return false
}

// predAround returns the half-edge with target v after which a new
// outgoing half-edge from v towards q must be linked.
func (m *Arrangement) predAround(v VertexID, q vec.Vec2) HalfedgeID {
	c := m.vertices[v].pt
	start := m.vertices[v].halfedge
	h := start
	for {
		he := &m.halfedges[h]
		from := m.TargetPoint(he.next)
		to := m.SourcePoint(h)
		if inSweep(c, from, q, to) {
			return h
		}
		h = m.halfedges[he.next].twin
		if h == start {
			break
		}
	}
	panic("arrangement: new edge overlaps an existing edge")
}

// inSweep reports whether the direction from c to x lies strictly inside
// the counter-clockwise sweep from direction c->from to direction c->to.
// If from and to point in the same direction, the sweep is a full turn.
func inSweep(c, from, x, to vec.Vec2) bool {
	if kernel.CompareAround(c, x, from) == 0 {
		return false
	}
	if kernel.CompareAround(c, from, to) == 0 {
		return true
	}
	if kernel.CompareAround(c, x, to) == 0 {
		return false
	}
	return ccwBefore(c, from, x, to)
}

// ccwBefore reports whether x comes before y when sweeping
// counter-clockwise from base.  Neither direction may equal base.
func ccwBefore(c, base, x, y vec.Vec2) bool {
	xa := kernel.CompareAround(c, x, base) > 0
	ya := kernel.CompareAround(c, y, base) > 0
	if xa != ya {
		return xa
	}
	return kernel.CompareAround(c, x, y) < 0
}

// EdgeBetween returns the half-edge from u to v, or NoHalfedge if the two
// vertices are not connected by an edge.
func (m *Arrangement) EdgeBetween(u, v VertexID) HalfedgeID {
	if m.vertices[v].halfedge == NoHalfedge {
		return NoHalfedge
	}
	for h := range m.IncomingHalfedges(v) {
		if m.Source(h) == u {
			return h
		}
	}
	return NoHalfedge
}

// InsertInFace adds an isolated edge from p to q inside face f.  Neither
// end point may coincide with an existing vertex, and the new edge must
// not meet any existing edge.  The result is the half-edge from p to q.
func (m *Arrangement) InsertInFace(f FaceID, p, q vec.Vec2) HalfedgeID {
	u := m.newVertex(p)
	w := m.newVertex(q)
	h, t := m.newEdge()
	m.halfedges[h].target = w
	m.halfedges[t].target = u
	m.link(h, t)
	m.link(t, h)
	m.halfedges[h].face = f
	m.halfedges[t].face = f
	m.vertices[u].halfedge = t
	m.vertices[u].degree = 1
	m.vertices[w].halfedge = h
	m.vertices[w].degree = 1
	m.faces[f].holes = append(m.faces[f].holes, h)
	return h
}

// InsertInOpenRegion is like InsertInFace, but finds the containing face
// itself.
func (m *Arrangement) InsertInOpenRegion(p, q vec.Vec2) HalfedgeID {
	mid := p.Add(q).Mul(0.5)
	return m.InsertInFace(m.Locate(mid), p, q)
}

// InsertFromVertex adds an edge from the existing vertex v to the new
// point q.  The new edge must not meet any existing edge except at v.
// The result is the half-edge from v to q.
func (m *Arrangement) InsertFromVertex(v VertexID, q vec.Vec2) HalfedgeID {
	if m.vertices[v].halfedge == NoHalfedge {
		panic("arrangement: isolated vertex")
	}
	pred := m.predAround(v, q)
	f := m.halfedges[pred].face
	w := m.newVertex(q)
	h, t := m.newEdge()
	m.halfedges[h].target = w
	m.halfedges[t].target = v
	nxt := m.halfedges[pred].next
	m.link(pred, h)
	m.link(h, t)
	m.link(t, nxt)
	m.halfedges[h].face = f
	m.halfedges[t].face = f
	m.vertices[w].halfedge = h
	m.vertices[w].degree = 1
	m.vertices[v].degree++
	return h
}

// InsertBetween adds an edge between the existing vertices u and v.  The
// new edge must not meet any existing edge except at its end points.  If
// the new edge closes a cycle, a face is split into two.  The result is
// the half-edge from u to v.
func (m *Arrangement) InsertBetween(u, v VertexID) HalfedgeID {
	pu := m.predAround(u, m.vertices[v].pt)
	pv := m.predAround(v, m.vertices[u].pt)
	f := m.halfedges[pu].face
	if m.halfedges[pv].face != f {
		panic("arrangement: new edge crosses an existing edge")
	}

	eu := m.ccbEntry(f, pu)
	ev := m.ccbEntry(f, pv)

	h, t := m.newEdge()
	m.halfedges[h].target = v
	m.halfedges[t].target = u
	m.halfedges[h].face = f
	m.halfedges[t].face = f
	nu := m.halfedges[pu].next
	nv := m.halfedges[pv].next
	m.link(pu, h)
	m.link(h, nv)
	m.link(pv, t)
	m.link(t, nu)
	m.vertices[u].degree++
	m.vertices[v].degree++

	if eu != ev {
		// two components join into one
		switch {
		case eu == outerEntry:
			m.removeHole(f, ev)
		case ev == outerEntry:
			m.removeHole(f, eu)
		default:
			m.removeHole(f, ev)
		}
		return h
	}

	// one component splits into two
	g := m.newFace()
	m.faces[g].data = m.faces[f].data
	if eu == outerEntry {
		m.faces[f].outer = h
		m.faces[g].outer = t
		m.setCCBFace(t, g)
	} else {
		inner, rest := h, t
		if m.ccbArea(t) > m.ccbArea(h) {
			inner, rest = t, h
		}
		m.faces[f].holes[eu] = rest
		m.faces[g].outer = inner
		m.setCCBFace(inner, g)
	}
	m.moveHolesInside(f, g)
	return h
}
