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
	"math/rand/v2"
	"testing"

	"seehuhn.de/go/geom/vec"
)

func pt(x, y float64) vec.Vec2 { return vec.Vec2{X: x, Y: y} }

func square(x0, y0, x1, y1 float64) []vec.Vec2 {
	return []vec.Vec2{pt(x0, y0), pt(x1, y0), pt(x1, y1), pt(x0, y1)}
}

func mustValidate(t *testing.T, m *Arrangement) {
	t.Helper()
	if err := m.Validate(); err != nil {
		t.Fatal(err)
	}
	if err := m.ValidatePlanar(); err != nil {
		t.Fatal(err)
	}
}

func checkCounts(t *testing.T, m *Arrangement, v, e, f int) {
	t.Helper()
	if m.NumVertices() != v || m.NumEdges() != e || m.NumFaces() != f {
		t.Errorf("got %d vertices, %d edges, %d faces; want %d, %d, %d",
			m.NumVertices(), m.NumEdges(), m.NumFaces(), v, e, f)
	}
}

func TestEmpty(t *testing.T) {
	m := New()
	mustValidate(t, m)
	checkCounts(t, m, 0, 0, 1)
	if !m.IsEmpty() {
		t.Error("new arrangement not empty")
	}
	if f := m.Locate(pt(1, 2)); f != m.Unbounded() {
		t.Errorf("Locate = %d, want unbounded face", f)
	}
}

func TestSquare(t *testing.T) {
	m := New()
	faces, boundary, err := m.InsertPolygon(square(10, 10, 20, 20))
	if err != nil {
		t.Fatal(err)
	}
	mustValidate(t, m)
	checkCounts(t, m, 4, 4, 2)

	if len(faces) != 1 || faces[m.Unbounded()] {
		t.Fatalf("interior faces %v", faces)
	}
	if len(boundary) != 4 {
		t.Errorf("%d boundary half-edges, want 4", len(boundary))
	}
	inner := faces.Sorted()[0]
	if got := m.Locate(pt(15, 15)); got != inner {
		t.Errorf("Locate(15, 15) = %d, want %d", got, inner)
	}
	for _, p := range []vec.Vec2{pt(0, 0), pt(15, 25), pt(15, 5), pt(25, 15), pt(5, 15)} {
		if got := m.Locate(p); got != m.Unbounded() {
			t.Errorf("Locate(%v) = %d, want unbounded", p, got)
		}
	}
	if n := len(m.Holes(m.Unbounded())); n != 1 {
		t.Errorf("unbounded face has %d holes, want 1", n)
	}
	if area := m.ccbArea(m.OuterCCB(inner)); area != 100 {
		t.Errorf("area = %g, want 100", area)
	}
}

func TestClockwiseRing(t *testing.T) {
	m := New()
	ring := square(0, 0, 4, 4)
	ring[1], ring[3] = ring[3], ring[1]
	faces, _, err := m.InsertPolygon(ring)
	if err != nil {
		t.Fatal(err)
	}
	if len(faces) != 1 || faces[m.Unbounded()] {
		t.Errorf("interior faces %v", faces)
	}
}

func TestNonSimplePolygon(t *testing.T) {
	m := New()
	_, _, err := m.InsertPolygon([]vec.Vec2{pt(0, 0), pt(1, 1), pt(1, 0), pt(0, 1)})
	if !errors.Is(err, ErrSelfIntersecting) {
		t.Errorf("got %v, want ErrSelfIntersecting", err)
	}
	checkCounts(t, m, 0, 0, 1)
}

func TestDegenerateSegment(t *testing.T) {
	m := New()
	_, err := m.InsertSegment(pt(1, 1), pt(1, 1))
	if !errors.Is(err, ErrDegenerate) {
		t.Errorf("got %v, want ErrDegenerate", err)
	}
}

func TestCrossingSegments(t *testing.T) {
	m := New()
	if _, err := m.InsertSegment(pt(0, 0), pt(2, 2)); err != nil {
		t.Fatal(err)
	}
	ev, err := m.InsertSegment(pt(0, 2), pt(2, 0))
	if err != nil {
		t.Fatal(err)
	}
	mustValidate(t, m)
	checkCounts(t, m, 5, 4, 1)

	kinds := map[EventKind]int{}
	for _, e := range ev {
		kinds[e.Kind]++
	}
	if kinds[EdgeSplit] != 1 || kinds[EdgeCreated] != 2 || kinds[EdgeReused] != 0 {
		t.Errorf("events %v", kinds)
	}
	frags := Fragments(ev)
	if m.SourcePoint(frags[0]) != pt(0, 2) || m.TargetPoint(frags[1]) != pt(2, 0) {
		t.Error("fragments not oriented along the segment")
	}
	if _, ok := m.VertexAt(pt(1, 1)); !ok {
		t.Error("no vertex at the crossing")
	}
}

func TestOverlappingSegments(t *testing.T) {
	m := New()
	if _, err := m.InsertSegment(pt(0, 0), pt(4, 0)); err != nil {
		t.Fatal(err)
	}
	ev, err := m.InsertSegment(pt(6, 0), pt(2, 0))
	if err != nil {
		t.Fatal(err)
	}
	mustValidate(t, m)
	checkCounts(t, m, 4, 3, 1)

	var got []EventKind
	for _, e := range ev {
		got = append(got, e.Kind)
	}
	want := []EventKind{EdgeSplit, EdgeCreated, EdgeReused}
	if len(got) != len(want) {
		t.Fatalf("events %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("events %v, want %v", got, want)
		}
	}
	reused := ev[2].Edge
	if m.SourcePoint(reused) != pt(4, 0) || m.TargetPoint(reused) != pt(2, 0) {
		t.Errorf("reused edge %v -> %v", m.SourcePoint(reused), m.TargetPoint(reused))
	}

	// inserting the same segment again only reuses edges
	ev, err = m.InsertSegment(pt(0, 0), pt(6, 0))
	if err != nil {
		t.Fatal(err)
	}
	for _, e := range ev {
		if e.Kind != EdgeReused {
			t.Errorf("unexpected %s event", e.Kind)
		}
	}
	checkCounts(t, m, 4, 3, 1)
}

func TestDiagonalSplitsFace(t *testing.T) {
	m := New()
	faces, _, err := m.InsertPolygon(square(0, 0, 4, 4))
	if err != nil {
		t.Fatal(err)
	}
	f := faces.Sorted()[0]
	m.SetFaceData(f, FaceData{Terrain: 7})

	if _, err := m.InsertSegment(pt(0, 0), pt(4, 4)); err != nil {
		t.Fatal(err)
	}
	mustValidate(t, m)
	checkCounts(t, m, 4, 5, 3)

	a, b := m.Locate(pt(3, 1)), m.Locate(pt(1, 3))
	if a == b || a == m.Unbounded() || b == m.Unbounded() {
		t.Fatalf("faces %d and %d", a, b)
	}
	if m.FaceData(a).Terrain != 7 || m.FaceData(b).Terrain != 7 {
		t.Error("face attributes not copied on split")
	}

	h, _ := m.VertexAt(pt(0, 0))
	w, _ := m.VertexAt(pt(4, 4))
	e := m.EdgeBetween(h, w)
	if e == NoHalfedge {
		t.Fatal("diagonal not found")
	}
	m.RemoveEdge(e)
	mustValidate(t, m)
	checkCounts(t, m, 4, 4, 2)
}

func TestNestedSquares(t *testing.T) {
	m := New()
	if _, _, err := m.InsertPolygon(square(0, 0, 10, 10)); err != nil {
		t.Fatal(err)
	}
	faces, _, err := m.InsertPolygon(square(3, 3, 6, 6))
	if err != nil {
		t.Fatal(err)
	}
	mustValidate(t, m)
	checkCounts(t, m, 8, 8, 3)

	inner := faces.Sorted()[0]
	ring := m.Locate(pt(1, 1))
	if ring == inner || ring == m.Unbounded() {
		t.Fatal("wrong ring face")
	}
	if n := len(m.Holes(ring)); n != 1 {
		t.Errorf("ring face has %d holes, want 1", n)
	}
	if got := m.Locate(pt(4, 4)); got != inner {
		t.Errorf("Locate(4, 4) = %d, want %d", got, inner)
	}

	// connecting the two boundaries joins the hole to the outer boundary
	a, _ := m.VertexAt(pt(0, 0))
	b, _ := m.VertexAt(pt(3, 3))
	m.InsertBetween(a, b)
	mustValidate(t, m)
	checkCounts(t, m, 8, 9, 3)
	if n := len(m.Holes(ring)); n != 0 {
		t.Errorf("ring face has %d holes, want 0", n)
	}

	m.RemoveEdge(m.EdgeBetween(a, b))
	mustValidate(t, m)
	if n := len(m.Holes(m.Locate(pt(1, 1)))); n != 1 {
		t.Errorf("ring face has %d holes after removal, want 1", n)
	}
}

func TestHoleInsideNewFace(t *testing.T) {
	// a small square is inserted first, then a bigger one around it,
	// so the small square must move into the new face
	m := New()
	if _, _, err := m.InsertPolygon(square(3, 3, 6, 6)); err != nil {
		t.Fatal(err)
	}
	if _, _, err := m.InsertPolygon(square(0, 0, 10, 10)); err != nil {
		t.Fatal(err)
	}
	mustValidate(t, m)
	ring := m.Locate(pt(1, 1))
	if n := len(m.Holes(ring)); n != 1 {
		t.Errorf("ring face has %d holes, want 1", n)
	}
	if n := len(m.Holes(m.Unbounded())); n != 1 {
		t.Errorf("unbounded face has %d holes, want 1", n)
	}
}

func TestAntenna(t *testing.T) {
	m := New()
	faces, _, err := m.InsertPolygon(square(0, 0, 4, 4))
	if err != nil {
		t.Fatal(err)
	}
	f := faces.Sorted()[0]
	ev, err := m.InsertSegment(pt(0, 0), pt(2, 1))
	if err != nil {
		t.Fatal(err)
	}
	mustValidate(t, m)
	checkCounts(t, m, 5, 5, 2)
	h := ev[0].Edge
	if m.Face(h) != f || m.Face(m.Twin(h)) != f {
		t.Error("antenna not inside the square")
	}

	// an isolated segment inside the square
	if _, err := m.InsertSegment(pt(1, 3), pt(3, 3)); err != nil {
		t.Fatal(err)
	}
	mustValidate(t, m)
	if n := len(m.Holes(f)); n != 1 {
		t.Errorf("%d holes, want 1", n)
	}

	m.RemoveEdge(h)
	mustValidate(t, m)
	checkCounts(t, m, 6, 5, 2)
	if _, ok := m.VertexAt(pt(2, 1)); ok {
		t.Error("dangling vertex not removed")
	}
}

func TestSplitEdge(t *testing.T) {
	m := New()
	ev, err := m.InsertSegment(pt(0, 0), pt(4, 0))
	if err != nil {
		t.Fatal(err)
	}
	h := ev[0].Edge
	m.SetEdgeData(h, EdgeData{
		Segments: []RoadSegment{{Feature: 1, RepType: 2}},
		Params:   map[int]float64{3: 1.5},
	})
	part := m.SplitEdge(h, pt(1, 0))
	mustValidate(t, m)
	checkCounts(t, m, 3, 2, 1)

	if m.TargetPoint(h) != pt(1, 0) || m.SourcePoint(part) != pt(1, 0) || m.TargetPoint(part) != pt(4, 0) {
		t.Error("wrong geometry after split")
	}
	if m.IsDominant(h) != m.IsDominant(part) {
		t.Error("dominance not inherited")
	}
	d1, d2 := m.EdgeData(h), m.EdgeData(part)
	if len(d1.Segments) != 1 || len(d2.Segments) != 1 || d2.Params[3] != 1.5 {
		t.Error("attributes not copied")
	}
	d2.Params[3] = 2
	if m.EdgeData(h).Params[3] != 1.5 {
		t.Error("split parts share attribute storage")
	}
}

func TestInsertRing(t *testing.T) {
	m := New()
	pts := square(1, 1, 3, 2)
	ring := m.InsertRing(pts)
	mustValidate(t, m)
	checkCounts(t, m, 4, 4, 2)
	inner := m.Face(ring[0])
	for i, h := range ring {
		if m.TargetPoint(h) != pts[i] {
			t.Errorf("ring[%d] ends at %v, want %v", i, m.TargetPoint(h), pts[i])
		}
		if m.Face(h) != inner || inner == m.Unbounded() {
			t.Errorf("ring[%d] has the wrong face", i)
		}
	}
}

func TestClone(t *testing.T) {
	m := New()
	if _, _, err := m.InsertPolygon(square(0, 0, 2, 2)); err != nil {
		t.Fatal(err)
	}
	c := m.Clone()
	if _, err := c.InsertSegment(pt(0, 0), pt(2, 2)); err != nil {
		t.Fatal(err)
	}
	mustValidate(t, m)
	mustValidate(t, c)
	checkCounts(t, m, 4, 4, 2)
	checkCounts(t, c, 4, 5, 3)
}

func TestSwapInteriors(t *testing.T) {
	a := New()
	pts := square(0, 0, 4, 4)
	if _, _, err := a.InsertPolygon(pts); err != nil {
		t.Fatal(err)
	}
	if _, err := a.InsertSegment(pt(0, 0), pt(4, 4)); err != nil {
		t.Fatal(err)
	}
	if _, err := a.InsertSegment(pt(1, 3), pt(1, 2)); err != nil {
		t.Fatal(err)
	}
	if _, _, err := a.InsertPolygon(square(10, 0, 12, 2)); err != nil {
		t.Fatal(err)
	}
	mustValidate(t, a)
	checkCounts(t, a, 10, 10, 4)

	var ringA []HalfedgeID
	for i := range pts {
		u, _ := a.VertexAt(pts[(i+len(pts)-1)%len(pts)])
		v, _ := a.VertexAt(pts[i])
		ringA = append(ringA, a.EdgeBetween(u, v))
	}

	b := New()
	ringB := b.InsertRing(pts)
	b.SetFaceData(b.Face(ringB[0]), FaceData{Terrain: 3})

	if err := SwapInteriors(a, b, ringA, ringB); err != nil {
		t.Fatal(err)
	}
	mustValidate(t, a)
	mustValidate(t, b)
	checkCounts(t, a, 8, 8, 3)
	checkCounts(t, b, 6, 6, 3)

	if got := a.FaceData(a.Locate(pt(2, 1))).Terrain; got != 3 {
		t.Errorf("terrain %d, want 3", got)
	}
	if b.Locate(pt(3, 1)) == b.Locate(pt(1, 3)) {
		t.Error("diagonal did not move")
	}
	if _, ok := b.VertexAt(pt(1, 2)); !ok {
		t.Error("interior vertex did not move")
	}
	if _, ok := a.VertexAt(pt(1, 2)); ok {
		t.Error("interior vertex still in source")
	}
}

func TestSwapRingMismatch(t *testing.T) {
	a := New()
	ringA := a.InsertRing(square(0, 0, 1, 1))
	b := New()
	ringB := b.InsertRing(square(0, 0, 2, 2))
	err := SwapInteriors(a, b, ringA, ringB)
	if !errors.Is(err, ErrRingMismatch) {
		t.Errorf("got %v, want ErrRingMismatch", err)
	}
}

func TestRandomGrid(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	m := New()
	for i := range 60 {
		c := float64(rng.IntN(20))
		lo := float64(rng.IntN(19))
		hi := lo + 1 + float64(rng.IntN(int(20-lo)))
		var p, q vec.Vec2
		if i%2 == 0 {
			p, q = pt(lo, c), pt(hi, c)
		} else {
			p, q = pt(c, lo), pt(c, hi)
		}
		if _, err := m.InsertSegment(p, q); err != nil {
			t.Fatal(err)
		}
		if err := m.Validate(); err != nil {
			t.Fatalf("after segment %d (%v, %v): %v", i, p, q, err)
		}
	}

	for m.NumEdges() > 0 {
		var edges []HalfedgeID
		for h := range m.Edges() {
			edges = append(edges, h)
		}
		m.RemoveEdge(edges[rng.IntN(len(edges))])
		if err := m.Validate(); err != nil {
			t.Fatalf("after removal: %v", err)
		}
	}
	checkCounts(t, m, 0, 0, 1)
}

func TestRandomSegments(t *testing.T) {
	for seed := range uint64(200) {
		rng := rand.New(rand.NewPCG(seed, 7))
		m := New()
		for i := range 25 {
			p := pt(float64(rng.IntN(21)), float64(rng.IntN(21)))
			q := pt(float64(rng.IntN(21)), float64(rng.IntN(21)))
			if p == q {
				continue
			}
			if _, err := m.InsertSegment(p, q); err != nil {
				t.Fatalf("seed %d, segment %d (%v, %v): %v", seed, i, p, q, err)
			}
		}
		if err := m.Validate(); err != nil {
			t.Fatalf("seed %d: %v", seed, err)
		}
		if err := m.ValidatePlanar(); err != nil {
			t.Fatalf("seed %d: %v", seed, err)
		}
	}
}

func TestConcurrentSegments(t *testing.T) {
	// three segments through the common point (10/3, 10/3), which has no
	// exact float64 representation
	m := New()
	segs := [][2]vec.Vec2{
		{pt(0, 0), pt(5, 5)},
		{pt(0, 5), pt(5, 2.5)},
		{pt(10.0/3, 0), pt(10.0/3, 5)},
	}
	for _, s := range segs {
		if _, err := m.InsertSegment(s[0], s[1]); err != nil {
			t.Fatal(err)
		}
	}
	mustValidate(t, m)
	checkCounts(t, m, 7, 6, 1)
}

func TestSnapEndToEdge(t *testing.T) {
	m := New()
	if _, err := m.InsertSegment(pt(0, 0), pt(3, 1)); err != nil {
		t.Fatal(err)
	}
	// (1.5, 0.5) is the midpoint, rounded
	ev, err := m.InsertSegment(pt(1.5, 0.5+1e-13), pt(1.5, 4))
	if err != nil {
		t.Fatal(err)
	}
	mustValidate(t, m)
	checkCounts(t, m, 4, 3, 1)
	if ev[0].Kind != EdgeSplit {
		t.Errorf("first event is %s, want split", ev[0].Kind)
	}
}

func TestTreeHole(t *testing.T) {
	m := New()
	segs := [][2]vec.Vec2{
		{pt(18, 13), pt(13, 14)},
		{pt(19, 4), pt(11, 11)},
		{pt(14, 3), pt(15, 14)},
	}
	for _, s := range segs {
		if _, err := m.InsertSegment(s[0], s[1]); err != nil {
			t.Fatal(err)
		}
	}
	mustValidate(t, m)
	checkCounts(t, m, 8, 7, 1)
}

func TestValidatePlanar(t *testing.T) {
	m := New()
	m.InsertInFace(m.Unbounded(), pt(0, 0), pt(2, 2))
	m.InsertInFace(m.Unbounded(), pt(0, 2), pt(2, 0))
	if err := m.Validate(); err != nil {
		t.Fatal(err)
	}
	if err := m.ValidatePlanar(); err == nil {
		t.Error("crossing edges not detected")
	}

	m = New()
	m.InsertInFace(m.Unbounded(), pt(0, 0), pt(4, 0))
	m.InsertInFace(m.Unbounded(), pt(2, 0), pt(2, 3))
	if err := m.ValidatePlanar(); err == nil {
		t.Error("vertex on edge not detected")
	}
}
