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
)

// SplitEdge splits the edge containing h at the point p, which must lie
// in the interior of the edge and must not coincide with an existing
// vertex.
//
// After the split, h runs from its old source to the new vertex and the
// returned half-edge runs from the new vertex to the old target of h.
// Both parts inherit the dominance and the attributes of the original
// edge.
func (m *Arrangement) SplitEdge(h HalfedgeID, p vec.Vec2) HalfedgeID {
	t := m.halfedges[h].twin
	tgt := m.halfedges[h].target
	src := m.halfedges[t].target

	w := m.newVertex(p)
	h2 := m.newHalfedge()
	t2 := m.newHalfedge()

	he := &m.halfedges[h]
	te := &m.halfedges[t]
	h2e := &m.halfedges[h2]
	t2e := &m.halfedges[t2]

	// h: src->w, h2: w->tgt, t: tgt->w, t2: w->src
	h2e.target = tgt
	h2e.face = he.face
	h2e.dominant = he.dominant
	h2e.data = he.data.Clone()
	t2e.target = src
	t2e.face = te.face
	t2e.dominant = te.dominant
	t2e.data = te.data.Clone()

	he.target = w
	te.target = w

	he.twin = t2
	t2e.twin = h
	h2e.twin = t
	te.twin = h2

	hNext := he.next
	tNext := te.next
	m.link(h, h2)
	m.link(h2, hNext)
	m.link(t, t2)
	m.link(t2, tNext)

	if m.vertices[tgt].halfedge == h {
		m.vertices[tgt].halfedge = h2
	}
	if m.vertices[src].halfedge == t {
		m.vertices[src].halfedge = t2
	}
	m.vertices[w].halfedge = h
	m.vertices[w].degree = 2
	return h2
}

// RemoveEdge deletes the edge containing h.  End points which are left
// without incident edges are deleted as well.  If the two sides of the
// edge belong to different faces, the faces are merged.  The attributes of
// the surviving face are kept.
func (m *Arrangement) RemoveEdge(h HalfedgeID) {
	t := m.halfedges[h].twin
	u := m.halfedges[t].target
	v := m.halfedges[h].target
	hp := m.halfedges[h].prev
	tp := m.halfedges[t].prev
	fh, ft := m.halfedges[h].face, m.halfedges[t].face

	if fh != ft {
		m.removeBetweenFaces(h, t, fh, ft)
	} else {
		m.removeInFace(h, t, fh)
	}

	for _, x := range []struct {
		v    VertexID
		in   HalfedgeID
		repl HalfedgeID
	}{{u, t, hp}, {v, h, tp}} {
		vx := &m.vertices[x.v]
		vx.degree--
		if vx.degree == 0 {
			m.freeVertex(x.v)
			continue
		}
		if vx.halfedge == x.in {
			vx.halfedge = x.repl
		}
	}
	m.freeHalfedge(h)
	m.freeHalfedge(t)
}

func (m *Arrangement) removeBetweenFaces(h, t HalfedgeID, fh, ft FaceID) {
	hp, hn := m.halfedges[h].prev, m.halfedges[h].next
	tp, tn := m.halfedges[t].prev, m.halfedges[t].next
	eh := m.ccbEntry(fh, h)
	et := m.ccbEntry(ft, t)

	keep, dead := fh, ft
	keepEntry, deadEntry := eh, et
	switch {
	case fh == m.unbounded:
	case ft == m.unbounded:
		keep, dead, keepEntry, deadEntry = ft, fh, et, eh
	case eh != outerEntry:
	case et != outerEntry:
		keep, dead, keepEntry, deadEntry = ft, fh, et, eh
	}

	m.link(hp, tn)
	m.link(tp, hn)
	rep := hn
	m.setCCBFace(rep, keep)

	if keepEntry == outerEntry {
		m.faces[keep].outer = rep
	} else {
		m.faces[keep].holes[keepEntry] = rep
	}
	for i, hole := range m.faces[dead].holes {
		if i == deadEntry {
			continue
		}
		m.setCCBFace(hole, keep)
		m.faces[keep].holes = append(m.faces[keep].holes, hole)
	}
	m.freeFace(dead)
}

func (m *Arrangement) removeInFace(h, t HalfedgeID, f FaceID) {
	hp, hn := m.halfedges[h].prev, m.halfedges[h].next
	tp, tn := m.halfedges[t].prev, m.halfedges[t].next
	e := m.ccbEntry(f, h)
	fc := &m.faces[f]

	setEntry := func(rep HalfedgeID) {
		if e == outerEntry {
			fc.outer = rep
		} else {
			fc.holes[e] = rep
		}
	}

	switch {
	case hn == t && tn == h:
		// isolated edge
		if e == outerEntry {
			panic("arrangement: isolated edge as outer boundary")
		}
		m.removeHole(f, e)
	case hn == t:
		m.link(hp, tn)
		setEntry(tn)
	case tn == h:
		m.link(tp, hn)
		setEntry(hn)
	default:
		m.link(hp, tn)
		m.link(tp, hn)
		a, b := hn, tn
		if e == outerEntry && m.ccbArea(b) > m.ccbArea(a) {
			a, b = b, a
		}
		setEntry(a)
		fc.holes = append(fc.holes, b)
	}
}
