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
	"fmt"

	"seehuhn.de/go/vmap/kernel"
)

// Validate checks the internal consistency of the arrangement.
// It returns an error describing the first problem found.
func (m *Arrangement) Validate() error {
	if err := m.ValidateDominance(); err != nil {
		return err
	}

	degree := make(map[VertexID]int)
	for h := range m.Halfedges() {
		he := &m.halfedges[h]
		if he.twin < 0 || int(he.twin) >= len(m.halfedges) || !m.halfedges[he.twin].alive {
			return fmt.Errorf("half-edge %d: dangling twin", h)
		}
		if m.halfedges[he.twin].twin != h {
			return fmt.Errorf("half-edge %d: twin of twin is %d", h, m.halfedges[he.twin].twin)
		}
		if he.twin == h {
			return fmt.Errorf("half-edge %d: is its own twin", h)
		}
		if !m.halfedges[he.next].alive || !m.halfedges[he.prev].alive {
			return fmt.Errorf("half-edge %d: dangling next or prev", h)
		}
		if m.halfedges[he.next].prev != h {
			return fmt.Errorf("half-edge %d: next.prev is %d", h, m.halfedges[he.next].prev)
		}
		if m.Source(he.next) != he.target {
			return fmt.Errorf("half-edge %d: next does not start at the target", h)
		}
		if m.halfedges[he.next].face != he.face {
			return fmt.Errorf("half-edge %d: next lies in face %d, not %d", h, m.halfedges[he.next].face, he.face)
		}
		if he.face < 0 || !m.faces[he.face].alive {
			return fmt.Errorf("half-edge %d: dangling face", h)
		}
		if !m.vertices[he.target].alive {
			return fmt.Errorf("half-edge %d: dangling target", h)
		}
		if m.SourcePoint(h) == m.TargetPoint(h) {
			return fmt.Errorf("half-edge %d: zero length", h)
		}
		degree[he.target]++
	}

	for v := range m.Vertices() {
		vx := &m.vertices[v]
		if vx.halfedge == NoHalfedge {
			return fmt.Errorf("vertex %d: isolated", v)
		}
		if !m.halfedges[vx.halfedge].alive || m.halfedges[vx.halfedge].target != v {
			return fmt.Errorf("vertex %d: incident half-edge does not end here", v)
		}
		if vx.degree != degree[v] {
			return fmt.Errorf("vertex %d: degree %d, counted %d", v, vx.degree, degree[v])
		}
		if w, ok := m.index[vx.pt]; !ok || w != v {
			return fmt.Errorf("vertex %d: missing from the index", v)
		}
		n := 0
		for range m.IncomingHalfedges(v) {
			n++
			if n > vx.degree {
				break
			}
		}
		if n != vx.degree {
			return fmt.Errorf("vertex %d: rotation has %d edges, want %d", v, n, vx.degree)
		}
	}
	if len(m.index) != m.numV {
		return fmt.Errorf("index has %d entries for %d vertices", len(m.index), m.numV)
	}

	covered := make(map[HalfedgeID]bool)
	components := 0
	for f := range m.Faces() {
		fc := &m.faces[f]
		if (f == m.unbounded) != (fc.outer == NoHalfedge) {
			return fmt.Errorf("face %d: wrong outer boundary", f)
		}
		entries := fc.holes
		if fc.outer != NoHalfedge {
			entries = append([]HalfedgeID{fc.outer}, fc.holes...)
		}
		for i, start := range entries {
			if !m.halfedges[start].alive {
				return fmt.Errorf("face %d: dangling boundary", f)
			}
			for h := range m.CCB(start) {
				if covered[h] {
					return fmt.Errorf("face %d: half-edge %d on two boundaries", f, h)
				}
				covered[h] = true
				if m.halfedges[h].face != f {
					return fmt.Errorf("face %d: boundary half-edge %d has face %d", f, h, m.halfedges[h].face)
				}
			}
			isOuter := fc.outer != NoHalfedge && i == 0
			tree := m.ccbIsTree(start)
			area := m.ccbArea(start)
			if isOuter && (tree || area <= 0) {
				return fmt.Errorf("face %d: outer boundary has area %g", f, area)
			}
			if !isOuter && !tree && area > 0 {
				return fmt.Errorf("face %d: hole has area %g", f, area)
			}
			if !isOuter {
				components++
			}
		}
	}
	if len(covered) != m.numH {
		return fmt.Errorf("%d of %d half-edges are not on a face boundary", m.numH-len(covered), m.numH)
	}

	// Euler's formula for a plane graph with the given number of
	// connected components (every hole of the unbounded face and of the
	// bounded faces starts a component)
	if euler := m.numV - m.NumEdges() + m.numF; euler != 1+components {
		return fmt.Errorf("Euler characteristic %d, want %d", euler, 1+components)
	}
	return nil
}

// ValidateDominance checks that exactly one half-edge of every edge is
// dominant, and that only dominant half-edges carry attributes.
func (m *Arrangement) ValidateDominance() error {
	for h := range m.Halfedges() {
		he := &m.halfedges[h]
		tw := &m.halfedges[he.twin]
		if he.dominant == tw.dominant {
			return fmt.Errorf("half-edge %d: dominance equals twin dominance", h)
		}
		if !he.dominant && !he.data.IsEmpty() {
			return fmt.Errorf("half-edge %d: attributes on the non-dominant half", h)
		}
	}
	return nil
}

// ccbIsTree reports whether the boundary component of h encloses no area,
// i.e. whether every half-edge on it has its twin on the same component.
func (m *Arrangement) ccbIsTree(h HalfedgeID) bool {
	on := make(map[HalfedgeID]bool)
	for e := range m.CCB(h) {
		on[e] = true
	}
	for e := range on {
		if !on[m.halfedges[e].twin] {
			return false
		}
	}
	return true
}

// ValidatePlanar checks that the edges of the arrangement meet only at
// common end points, and that no vertex lies on an edge which does not end
// there.  The check compares all pairs of edges and is meant for tests.
func (m *Arrangement) ValidatePlanar() error {
	type seg struct {
		h    HalfedgeID
		a, b VertexID
	}
	var segs []seg
	for h := range m.Edges() {
		segs = append(segs, seg{h, m.Source(h), m.Target(h)})
	}
	for i, s := range segs {
		a0, a1 := m.Point(s.a), m.Point(s.b)
		for _, t := range segs[i+1:] {
			b0, b1 := m.Point(t.a), m.Point(t.b)
			kind, p, _ := kernel.Intersect(a0, a1, b0, b1)
			switch kind {
			case kernel.Disjoint:
				continue
			case kernel.Overlap:
				return fmt.Errorf("edges %v-%v and %v-%v overlap", a0, a1, b0, b1)
			}
			shared := (s.a == t.a || s.a == t.b) && p == a0 ||
				(s.b == t.a || s.b == t.b) && p == a1
			if !shared {
				return fmt.Errorf("edges %v-%v and %v-%v meet at %v", a0, a1, b0, b1, p)
			}
		}
	}
	return nil
}
