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

// Package arrangement implements a planar subdivision induced by straight
// line segments, stored as a doubly connected edge list.
//
// Vertices, half-edges and faces live in arenas inside an [Arrangement]
// and are referred to by small integer handles.  Every edge is stored as a
// pair of twin half-edges.  The face of a half-edge lies to its left, so
// the outer boundary of a bounded face runs counter-clockwise and the
// boundaries of its holes run clockwise.  Every arrangement has exactly one
// unbounded face, which has no outer boundary.
//
// Handles stay valid until the entity they refer to is removed.  Slots of
// removed entities are reused by later insertions.
package arrangement

import (
	"iter"

	"seehuhn.de/go/geom/vec"
)

// VertexID identifies a vertex of an arrangement.
type VertexID int32

// HalfedgeID identifies a half-edge of an arrangement.
type HalfedgeID int32

// FaceID identifies a face of an arrangement.
type FaceID int32

// Sentinel values for missing handles.
const (
	NoVertex   VertexID   = -1
	NoHalfedge HalfedgeID = -1
	NoFace     FaceID     = -1
)

type vertex struct {
	pt       vec.Vec2
	halfedge HalfedgeID // some half-edge with this vertex as target
	degree   int
	alive    bool
}

type halfedge struct {
	target   VertexID
	twin     HalfedgeID
	next     HalfedgeID
	prev     HalfedgeID
	face     FaceID
	dominant bool
	alive    bool
	data     EdgeData
}

type face struct {
	outer HalfedgeID // NoHalfedge for the unbounded face
	holes []HalfedgeID
	alive bool
	data  FaceData
}

// Arrangement is a planar map.
//
// The zero value is not usable; use [New] to create an empty arrangement.
type Arrangement struct {
	vertices  []vertex
	halfedges []halfedge
	faces     []face

	freeV []VertexID
	freeH []HalfedgeID
	freeF []FaceID

	numV, numH, numF int

	index     map[vec.Vec2]VertexID
	unbounded FaceID
}

// New returns an arrangement which consists of the unbounded face only.
func New() *Arrangement {
	m := &Arrangement{
		index: make(map[vec.Vec2]VertexID),
	}
	m.unbounded = m.newFace()
	return m
}

// Unbounded returns the unbounded face.
func (m *Arrangement) Unbounded() FaceID {
	return m.unbounded
}

// NumVertices returns the number of vertices.
func (m *Arrangement) NumVertices() int { return m.numV }

// NumHalfedges returns the number of half-edges.
func (m *Arrangement) NumHalfedges() int { return m.numH }

// NumEdges returns the number of edges, i.e. half the number of half-edges.
func (m *Arrangement) NumEdges() int { return m.numH / 2 }

// NumFaces returns the number of faces, including the unbounded face.
func (m *Arrangement) NumFaces() int { return m.numF }

// IsEmpty reports whether the arrangement has no vertices.
func (m *Arrangement) IsEmpty() bool { return m.numV == 0 }

// Vertices iterates over all vertices in handle order.
func (m *Arrangement) Vertices() iter.Seq[VertexID] {
	return func(yield func(VertexID) bool) {
		for i := range m.vertices {
			if m.vertices[i].alive && !yield(VertexID(i)) {
				return
			}
		}
	}
}

// Halfedges iterates over all half-edges in handle order.
func (m *Arrangement) Halfedges() iter.Seq[HalfedgeID] {
	return func(yield func(HalfedgeID) bool) {
		for i := range m.halfedges {
			if m.halfedges[i].alive && !yield(HalfedgeID(i)) {
				return
			}
		}
	}
}

// Edges iterates over the dominant half-edge of every edge.
func (m *Arrangement) Edges() iter.Seq[HalfedgeID] {
	return func(yield func(HalfedgeID) bool) {
		for i := range m.halfedges {
			h := &m.halfedges[i]
			if h.alive && h.dominant && !yield(HalfedgeID(i)) {
				return
			}
		}
	}
}

// Faces iterates over all faces in handle order.
func (m *Arrangement) Faces() iter.Seq[FaceID] {
	return func(yield func(FaceID) bool) {
		for i := range m.faces {
			if m.faces[i].alive && !yield(FaceID(i)) {
				return
			}
		}
	}
}

// Point returns the location of a vertex.
func (m *Arrangement) Point(v VertexID) vec.Vec2 {
	return m.vertices[v].pt
}

// Degree returns the number of edges incident to v.
func (m *Arrangement) Degree(v VertexID) int {
	return m.vertices[v].degree
}

// Incident returns a half-edge with target v.
func (m *Arrangement) Incident(v VertexID) HalfedgeID {
	return m.vertices[v].halfedge
}

// IncomingHalfedges iterates over the half-edges with target v in
// clockwise order.
func (m *Arrangement) IncomingHalfedges(v VertexID) iter.Seq[HalfedgeID] {
	return func(yield func(HalfedgeID) bool) {
		start := m.vertices[v].halfedge
		h := start
		for {
			if !yield(h) {
				return
			}
			h = m.halfedges[m.halfedges[h].next].twin
			if h == start {
				return
			}
		}
	}
}

// Target returns the vertex a half-edge points to.
func (m *Arrangement) Target(h HalfedgeID) VertexID { return m.halfedges[h].target }

// Source returns the vertex a half-edge starts from.
func (m *Arrangement) Source(h HalfedgeID) VertexID {
	return m.halfedges[m.halfedges[h].twin].target
}

// Twin returns the oppositely directed half-edge of the same edge.
func (m *Arrangement) Twin(h HalfedgeID) HalfedgeID { return m.halfedges[h].twin }

// Next returns the successor of h along the boundary of its face.
func (m *Arrangement) Next(h HalfedgeID) HalfedgeID { return m.halfedges[h].next }

// Prev returns the predecessor of h along the boundary of its face.
func (m *Arrangement) Prev(h HalfedgeID) HalfedgeID { return m.halfedges[h].prev }

// Face returns the face to the left of h.
func (m *Arrangement) Face(h HalfedgeID) FaceID { return m.halfedges[h].face }

// IsDominant reports whether h is the dominant half of its edge.
// Edge attributes are stored on the dominant half-edge.
func (m *Arrangement) IsDominant(h HalfedgeID) bool { return m.halfedges[h].dominant }

// Dominant returns the dominant half of the edge containing h.
func (m *Arrangement) Dominant(h HalfedgeID) HalfedgeID {
	if m.halfedges[h].dominant {
		return h
	}
	return m.halfedges[h].twin
}

// MakeDominant makes h the dominant half of its edge.  The edge
// attributes move along with the dominance flag.
func (m *Arrangement) MakeDominant(h HalfedgeID) {
	he := &m.halfedges[h]
	if he.dominant {
		return
	}
	tw := &m.halfedges[he.twin]
	he.dominant, tw.dominant = true, false
	he.data, tw.data = tw.data, EdgeData{}
}

// SourcePoint returns the location of the source vertex of h.
func (m *Arrangement) SourcePoint(h HalfedgeID) vec.Vec2 {
	return m.vertices[m.Source(h)].pt
}

// TargetPoint returns the location of the target vertex of h.
func (m *Arrangement) TargetPoint(h HalfedgeID) vec.Vec2 {
	return m.vertices[m.halfedges[h].target].pt
}

// IsUnbounded reports whether f is the unbounded face.
func (m *Arrangement) IsUnbounded(f FaceID) bool { return f == m.unbounded }

// OuterCCB returns a half-edge on the outer boundary of f, or NoHalfedge
// for the unbounded face.
func (m *Arrangement) OuterCCB(f FaceID) HalfedgeID { return m.faces[f].outer }

// Holes returns one half-edge on the boundary of each hole of f.
// The returned slice must not be modified.
func (m *Arrangement) Holes(f FaceID) []HalfedgeID { return m.faces[f].holes }

// FaceData returns the attributes of f.
func (m *Arrangement) FaceData(f FaceID) FaceData { return m.faces[f].data }

// SetFaceData replaces the attributes of f.
func (m *Arrangement) SetFaceData(f FaceID, d FaceData) { m.faces[f].data = d }

// EdgeData returns the attributes of the edge containing h.
// The result points into the arrangement and is invalidated by the next
// insertion.
func (m *Arrangement) EdgeData(h HalfedgeID) *EdgeData {
	return &m.halfedges[m.Dominant(h)].data
}

// SetEdgeData replaces the attributes of the edge containing h.
func (m *Arrangement) SetEdgeData(h HalfedgeID, d EdgeData) {
	m.halfedges[m.Dominant(h)].data = d
}

func (m *Arrangement) newVertex(p vec.Vec2) VertexID {
	var v VertexID
	if n := len(m.freeV); n > 0 {
		v = m.freeV[n-1]
		m.freeV = m.freeV[:n-1]
	} else {
		v = VertexID(len(m.vertices))
		m.vertices = append(m.vertices, vertex{})
	}
	m.vertices[v] = vertex{pt: p, halfedge: NoHalfedge, alive: true}
	m.numV++
	m.index[p] = v
	return v
}

func (m *Arrangement) newHalfedge() HalfedgeID {
	var h HalfedgeID
	if n := len(m.freeH); n > 0 {
		h = m.freeH[n-1]
		m.freeH = m.freeH[:n-1]
	} else {
		h = HalfedgeID(len(m.halfedges))
		m.halfedges = append(m.halfedges, halfedge{})
	}
	m.halfedges[h] = halfedge{
		target: NoVertex,
		twin:   NoHalfedge,
		next:   NoHalfedge,
		prev:   NoHalfedge,
		face:   NoFace,
		alive:  true,
	}
	m.numH++
	return h
}

// newEdge allocates a pair of twin half-edges.  The first one is dominant.
func (m *Arrangement) newEdge() (HalfedgeID, HalfedgeID) {
	h := m.newHalfedge()
	t := m.newHalfedge()
	m.halfedges[h].twin = t
	m.halfedges[h].dominant = true
	m.halfedges[t].twin = h
	return h, t
}

func (m *Arrangement) newFace() FaceID {
	var f FaceID
	if n := len(m.freeF); n > 0 {
		f = m.freeF[n-1]
		m.freeF = m.freeF[:n-1]
	} else {
		f = FaceID(len(m.faces))
		m.faces = append(m.faces, face{})
	}
	m.faces[f] = face{outer: NoHalfedge, alive: true}
	m.numF++
	return f
}

func (m *Arrangement) freeVertex(v VertexID) {
	m.UnindexVertex(v)
	m.vertices[v] = vertex{}
	m.freeV = append(m.freeV, v)
	m.numV--
}

func (m *Arrangement) freeHalfedge(h HalfedgeID) {
	m.halfedges[h] = halfedge{}
	m.freeH = append(m.freeH, h)
	m.numH--
}

func (m *Arrangement) freeFace(f FaceID) {
	m.faces[f] = face{}
	m.freeF = append(m.freeF, f)
	m.numF--
}

func (m *Arrangement) link(a, b HalfedgeID) {
	m.halfedges[a].next = b
	m.halfedges[b].prev = a
}
