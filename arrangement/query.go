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
	"maps"
	"math"
	"slices"

	"seehuhn.de/go/geom/rect"
)

// FaceSet is a set of faces.
type FaceSet map[FaceID]bool

// Sorted returns the members of s in increasing handle order.
func (s FaceSet) Sorted() []FaceID {
	return slices.Sorted(maps.Keys(s))
}

// Sorted returns the members of s in increasing handle order.
func (s EdgeSet) Sorted() []HalfedgeID {
	return slices.Sorted(maps.Keys(s))
}

// EdgesForFace returns all half-edges with face f, from the outer
// boundary and from all holes.
func (m *Arrangement) EdgesForFace(f FaceID) []HalfedgeID {
	var res []HalfedgeID
	fc := &m.faces[f]
	if fc.outer != NoHalfedge {
		res = slices.AppendSeq(res, m.CCB(fc.outer))
	}
	for _, h := range fc.holes {
		res = slices.AppendSeq(res, m.CCB(h))
	}
	return res
}

// FacesForEdgeSet returns the faces reached by a flood fill which starts
// with the faces to the left of the half-edges in edges and which does not
// cross any half-edge in edges.
func (m *Arrangement) FacesForEdgeSet(edges EdgeSet) FaceSet {
	res := make(FaceSet)
	var todo []FaceID
	for _, h := range edges.Sorted() {
		f := m.halfedges[h].face
		if !res[f] {
			res[f] = true
			todo = append(todo, f)
		}
	}
	for len(todo) > 0 {
		f := todo[len(todo)-1]
		todo = todo[:len(todo)-1]
		for _, h := range m.EdgesForFace(f) {
			if edges[h] {
				continue
			}
			g := m.halfedges[m.halfedges[h].twin].face
			if !res[g] {
				res[g] = true
				todo = append(todo, g)
			}
		}
	}
	return res
}

// BoundingBox returns the smallest rectangle containing all vertices.
// The result is the zero rectangle for an empty arrangement.
func (m *Arrangement) BoundingBox() rect.Rect {
	if m.numV == 0 {
		return rect.Rect{}
	}
	box := rect.Rect{
		LLx: math.Inf(1), LLy: math.Inf(1),
		URx: math.Inf(-1), URy: math.Inf(-1),
	}
	for v := range m.Vertices() {
		p := m.vertices[v].pt
		box.LLx = min(box.LLx, p.X)
		box.LLy = min(box.LLy, p.Y)
		box.URx = max(box.URx, p.X)
		box.URy = max(box.URy, p.Y)
	}
	return box
}

// Clone returns a deep copy of m.  All handles remain valid in the copy.
func (m *Arrangement) Clone() *Arrangement {
	c := &Arrangement{
		vertices:  slices.Clone(m.vertices),
		halfedges: slices.Clone(m.halfedges),
		faces:     slices.Clone(m.faces),
		freeV:     slices.Clone(m.freeV),
		freeH:     slices.Clone(m.freeH),
		freeF:     slices.Clone(m.freeF),
		numV:      m.numV,
		numH:      m.numH,
		numF:      m.numF,
		index:     maps.Clone(m.index),
		unbounded: m.unbounded,
	}
	for i := range c.halfedges {
		c.halfedges[i].data = c.halfedges[i].data.Clone()
	}
	for i := range c.faces {
		c.faces[i].holes = slices.Clone(c.faces[i].holes)
	}
	return c
}
