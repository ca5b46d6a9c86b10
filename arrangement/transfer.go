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
	"errors"
	"fmt"
)

// ErrRingMismatch is returned by [SwapInteriors] when the two rings do not
// describe the same closed curve.
var ErrRingMismatch = errors.New("arrangement: rings do not match")

// A Transfer moves vertices, half-edges and faces from one arrangement
// into another.
//
// Entities are registered with the Move* methods, which reserve slots in
// the destination.  References from moved records to entities which stay
// behind must be redirected with the Alias* methods.  Commit then copies
// all moved records into the destination, rewrites their references and
// releases the source slots.  Records which stay behind are not changed;
// any references they hold to moved entities must be fixed by the caller,
// using the handles returned by the Move* methods.
type Transfer struct {
	src, dst *Arrangement

	vertices  map[VertexID]VertexID
	halfedges map[HalfedgeID]HalfedgeID
	faces     map[FaceID]FaceID

	vOrder []VertexID
	hOrder []HalfedgeID
	fOrder []FaceID
}

// NewTransfer starts a transfer of entities from src to dst.
func NewTransfer(src, dst *Arrangement) *Transfer {
	return &Transfer{
		src:       src,
		dst:       dst,
		vertices:  make(map[VertexID]VertexID),
		halfedges: make(map[HalfedgeID]HalfedgeID),
		faces:     make(map[FaceID]FaceID),
	}
}

// MoveVertex registers v for the transfer and returns its handle in the
// destination.  The vertex is removed from the location index of the
// source immediately.
func (t *Transfer) MoveVertex(v VertexID) VertexID {
	if w, ok := t.vertices[v]; ok {
		return w
	}
	t.src.UnindexVertex(v)
	w := t.dst.reserveVertex()
	t.vertices[v] = w
	t.vOrder = append(t.vOrder, v)
	return w
}

// MoveHalfedge registers h for the transfer and returns its handle in the
// destination.
func (t *Transfer) MoveHalfedge(h HalfedgeID) HalfedgeID {
	if g, ok := t.halfedges[h]; ok {
		return g
	}
	g := t.dst.newHalfedge()
	t.halfedges[h] = g
	t.hOrder = append(t.hOrder, h)
	return g
}

// MoveFace registers f for the transfer and returns its handle in the
// destination.  The unbounded face cannot be moved.
func (t *Transfer) MoveFace(f FaceID) FaceID {
	if f == t.src.unbounded {
		panic("arrangement: cannot move the unbounded face")
	}
	if g, ok := t.faces[f]; ok {
		return g
	}
	g := t.dst.newFace()
	t.faces[f] = g
	t.fOrder = append(t.fOrder, f)
	return g
}

// AliasVertex redirects references to the source vertex v to the
// destination vertex w.
func (t *Transfer) AliasVertex(v, w VertexID) {
	t.vertices[v] = w
}

// AliasHalfedge redirects references to the source half-edge h to the
// destination half-edge g.
func (t *Transfer) AliasHalfedge(h, g HalfedgeID) {
	t.halfedges[h] = g
}

func (t *Transfer) vertex(v VertexID) VertexID {
	w, ok := t.vertices[v]
	if !ok {
		panic(fmt.Sprintf("arrangement: transfer leaves vertex %d behind", v))
	}
	return w
}

func (t *Transfer) halfedge(h HalfedgeID) HalfedgeID {
	g, ok := t.halfedges[h]
	if !ok {
		panic(fmt.Sprintf("arrangement: transfer leaves half-edge %d behind", h))
	}
	return g
}

func (t *Transfer) face(f FaceID) FaceID {
	g, ok := t.faces[f]
	if !ok {
		panic(fmt.Sprintf("arrangement: transfer leaves face %d behind", f))
	}
	return g
}

// Commit performs the transfer.
func (t *Transfer) Commit() {
	src, dst := t.src, t.dst
	for _, h := range t.hOrder {
		he := src.halfedges[h]
		he.target = t.vertex(he.target)
		he.twin = t.halfedge(he.twin)
		he.next = t.halfedge(he.next)
		he.prev = t.halfedge(he.prev)
		he.face = t.face(he.face)
		dst.halfedges[t.halfedges[h]] = he
	}
	for _, v := range t.vOrder {
		vx := src.vertices[v]
		vx.halfedge = t.halfedge(vx.halfedge)
		w := t.vertices[v]
		dst.vertices[w] = vx
		dst.IndexVertex(w)
	}
	for _, f := range t.fOrder {
		fc := src.faces[f]
		if fc.outer != NoHalfedge {
			fc.outer = t.halfedge(fc.outer)
		}
		holes := make([]HalfedgeID, len(fc.holes))
		for i, h := range fc.holes {
			holes[i] = t.halfedge(h)
		}
		fc.holes = holes
		dst.faces[t.faces[f]] = fc
	}

	for _, h := range t.hOrder {
		src.freeHalfedge(h)
	}
	for _, v := range t.vOrder {
		src.vertices[v] = vertex{}
		src.freeV = append(src.freeV, v)
		src.numV--
	}
	for _, f := range t.fOrder {
		src.freeFace(f)
	}
}

func (m *Arrangement) reserveVertex() VertexID {
	var v VertexID
	if n := len(m.freeV); n > 0 {
		v = m.freeV[n-1]
		m.freeV = m.freeV[:n-1]
	} else {
		v = VertexID(len(m.vertices))
		m.vertices = append(m.vertices, vertex{})
	}
	m.vertices[v] = vertex{halfedge: NoHalfedge, alive: true}
	m.numV++
	return v
}

// SwapInteriors exchanges the contents of two regions in two
// arrangements.
//
// The region in a is bounded by the ring of half-edges ringA, the region
// in b by ringB.  Both rings must have the region on their left, must
// trace the same closed curve with ringA[i] and ringB[i] connecting the
// same points, and must separate their region from the rest of the map.
// After the swap, a contains everything b had inside the ring and b
// contains everything a had inside the ring.  The rings themselves stay in
// place.  Attributes of the ring edges stay with their arrangement.
func SwapInteriors(a, b *Arrangement, ringA, ringB []HalfedgeID) error {
	if len(ringA) != len(ringB) || len(ringA) < 3 {
		return fmt.Errorf("%w: lengths %d and %d", ErrRingMismatch, len(ringA), len(ringB))
	}
	for i := range ringA {
		ha, hb := ringA[i], ringB[i]
		if a.SourcePoint(ha) != b.SourcePoint(hb) || a.TargetPoint(ha) != b.TargetPoint(hb) {
			return fmt.Errorf("%w: segment %d has different end points", ErrRingMismatch, i)
		}
		if a.Face(ha) == a.Face(a.Twin(ha)) || b.Face(hb) == b.Face(b.Twin(hb)) {
			return fmt.Errorf("%w: segment %d does not separate two faces", ErrRingMismatch, i)
		}
	}

	setA, setB := make(EdgeSet), make(EdgeSet)
	for i := range ringA {
		setA[ringA[i]] = true
		setB[ringB[i]] = true
	}
	facesA := a.FacesForEdgeSet(setA)
	facesB := b.FacesForEdgeSet(setB)
	if facesA[a.unbounded] || facesB[b.unbounded] {
		return fmt.Errorf("%w: ring does not enclose a bounded region", ErrRingMismatch)
	}

	// the ring edges keep their attributes in their own arrangement
	for i := range ringA {
		a.MakeDominant(a.Twin(ringA[i]))
		b.MakeDominant(b.Twin(ringB[i]))
	}

	tA := NewTransfer(a, b)
	tB := NewTransfer(b, a)
	registerInterior(tA, a, facesA, ringA, b, ringB)
	registerInterior(tB, b, facesB, ringB, a, ringA)

	tA.Commit()
	tB.Commit()

	var ringVA, ringVB []VertexID
	for i := range ringA {
		ha, hb := tA.halfedges[ringA[i]], tB.halfedges[ringB[i]]
		// ha now lives in b, hb in a
		va, vb := a.halfedges[hb].target, b.halfedges[ha].target
		b.halfedges[b.halfedges[ha].twin].twin = ha
		a.halfedges[a.halfedges[hb].twin].twin = hb
		b.vertices[vb].halfedge = ha
		a.vertices[va].halfedge = hb
		ringVA = append(ringVA, va)
		ringVB = append(ringVB, vb)
	}
	for i := range ringVA {
		a.recountDegree(ringVA[i])
		b.recountDegree(ringVB[i])
	}
	return nil
}

func (m *Arrangement) recountDegree(v VertexID) {
	n := 0
	for range m.IncomingHalfedges(v) {
		n++
	}
	m.vertices[v].degree = n
}

// registerInterior registers everything inside the ring of src for the
// transfer t.  Ring vertices and the outer halves of the ring edges stay
// behind and are aliased to their counterparts in dst.
func registerInterior(t *Transfer, src *Arrangement, faces FaceSet, ring []HalfedgeID, dst *Arrangement, dstRing []HalfedgeID) {
	onRing := make(map[VertexID]bool, len(ring))
	for i, h := range ring {
		v := src.Target(h)
		onRing[v] = true
		t.AliasVertex(v, dst.Target(dstRing[i]))
		t.AliasHalfedge(src.Twin(h), dst.Twin(dstRing[i]))
	}
	for _, f := range faces.Sorted() {
		t.MoveFace(f)
		for _, h := range src.EdgesForFace(f) {
			t.MoveHalfedge(h)
			tw := src.Twin(h)
			if faces[src.Face(tw)] {
				t.MoveHalfedge(tw)
			}
			if v := src.Target(h); !onRing[v] {
				t.MoveVertex(v)
			}
		}
	}
}
