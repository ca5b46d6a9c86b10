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
	"math"

	"seehuhn.de/go/geom/vec"
	"seehuhn.de/go/vmap/kernel"
)

var (
	// ErrDegenerate is returned when a segment of zero length is inserted.
	ErrDegenerate = errors.New("arrangement: degenerate segment")

	// ErrSelfIntersecting is returned when a polygon ring is not simple.
	ErrSelfIntersecting = errors.New("arrangement: ring is not simple")
)

// EventKind describes what happened to an edge during an insertion.
type EventKind uint8

// These are the possible event kinds.
const (
	// EdgeCreated reports a new edge along the inserted segment.
	EdgeCreated EventKind = iota + 1

	// EdgeReused reports an existing edge which covers part of the
	// inserted segment.
	EdgeReused

	// EdgeSplit reports that an existing edge was split into two.
	EdgeSplit
)

func (k EventKind) String() string {
	switch k {
	case EdgeCreated:
		return "created"
	case EdgeReused:
		return "reused"
	case EdgeSplit:
		return "split"
	default:
		return "invalid"
	}
}

// Event describes one change made by an insertion.
//
// For EdgeCreated and EdgeReused, Edge is the half-edge which runs in the
// direction of the inserted segment.
//
// For EdgeSplit, Edge is the first part of the split edge, which keeps the
// handle of the original half-edge, and Part is the second part.  Twin(Part)
// keeps the handle of the original twin, and Twin(Edge) is new.
type Event struct {
	Kind EventKind
	Edge HalfedgeID
	Part HalfedgeID
}

// EdgeSet is a set of half-edges.
type EdgeSet map[HalfedgeID]bool

// Track updates s with the events of an insertion.  New and reused
// fragments are added to the set.  When an edge in the set is split, both
// parts are kept in the set, with the same orientation.
func (s EdgeSet) Track(m *Arrangement, events []Event) {
	for _, ev := range events {
		switch ev.Kind {
		case EdgeCreated, EdgeReused:
			s[ev.Edge] = true
		case EdgeSplit:
			if s[ev.Edge] {
				s[ev.Part] = true
			}
			if s[m.Twin(ev.Part)] {
				s[m.Twin(ev.Edge)] = true
			}
		}
	}
}

// Fragments returns the half-edges of all EdgeCreated and EdgeReused
// events, in order.
func Fragments(events []Event) []HalfedgeID {
	var res []HalfedgeID
	for _, ev := range events {
		if ev.Kind == EdgeCreated || ev.Kind == EdgeReused {
			res = append(res, ev.Edge)
		}
	}
	return res
}

// SnapTolerance is the relative distance below which insertion treats two
// points as coincident.  The absolute tolerance for a segment is
// SnapTolerance times the largest absolute coordinate of its end points,
// but at least SnapTolerance.
const SnapTolerance = 1e-9

func snapTolerance(p, q vec.Vec2) float64 {
	return SnapTolerance * max(1, math.Abs(p.X), math.Abs(p.Y), math.Abs(q.X), math.Abs(q.Y))
}

// InsertSegment inserts the segment from p to q.
//
// Existing edges which cross the segment are split at the crossing point,
// and existing edges which overlap the segment are reused.  The segment is
// routed through every existing vertex closer to it than the snap
// tolerance.  End points within the tolerance of an existing vertex are
// moved onto that vertex, and end points within the tolerance of an edge
// split the edge.  Since crossing points are rounded, this is what keeps
// the map planar.
//
// The events are listed in the order in which the changes are made.  The
// fragments of the new segment appear in order from p to q, and every
// split comes before the fragment which ends at the new vertex.
func (m *Arrangement) InsertSegment(p, q vec.Vec2) ([]Event, error) {
	tol := snapTolerance(p, q)
	if p.Sub(q).Length() <= 2*tol {
		return nil, ErrDegenerate
	}

	var events []Event
	p, events = m.snapEnd(p, tol, events)
	q, events = m.snapEnd(q, tol, events)

	limit := m.numV + m.NumEdges() + 2
	cur := p
	for step := 0; cur != q; step++ {
		if step > limit {
			panic("arrangement: segment insertion does not terminate")
		}
		next, split := m.nextStop(cur, q, tol)
		if split != nil {
			events = append(events, *split)
		}
		events = append(events, m.insertPiece(cur, next))
		cur = next
	}
	return events, nil
}

// snapEnd moves the end point p of a new segment onto a nearby vertex, or
// splits a nearby edge at p.
func (m *Arrangement) snapEnd(p vec.Vec2, tol float64, events []Event) (vec.Vec2, []Event) {
	if _, ok := m.index[p]; ok {
		return p, events
	}

	best := tol
	found := false
	var snapped vec.Vec2
	for v := range m.Vertices() {
		x := m.vertices[v].pt
		if d := x.Sub(p).Length(); d <= best {
			best, snapped, found = d, x, true
		}
	}
	if found {
		return snapped, events
	}

	// No vertex is close, so the closest point of a close edge is interior.
	best = tol
	closest := NoHalfedge
	for h := range m.Edges() {
		if d := kernel.SegmentDistance(m.SourcePoint(h), m.TargetPoint(h), p); d <= best {
			best, closest = d, h
		}
	}
	if closest != NoHalfedge {
		part := m.SplitEdge(closest, p)
		events = append(events, Event{Kind: EdgeSplit, Edge: closest, Part: part})
	}
	return p, events
}

// nextStop finds the first point after cur where the segment from cur to
// q meets the map.  This is either an existing vertex near the segment, or
// a new vertex where an edge crosses the segment.  In the second case the
// edge is split and the split is returned.  If the segment meets nothing
// before q, the result is q.
func (m *Arrangement) nextStop(cur, q vec.Vec2, tol float64) (vec.Vec2, *Event) {
	d := q.Sub(cur)
	l2 := d.Dot(d)

	stop, stopT := q, 1.0
	for v := range m.Vertices() {
		x := m.vertices[v].pt
		if x == cur || x == q {
			continue
		}
		t := x.Sub(cur).Dot(d) / l2
		if t <= 0 || t >= stopT {
			continue
		}
		if kernel.LineDistance(cur, q, x) <= tol {
			stop, stopT = x, t
		}
	}

	cross := NoHalfedge
	for h := range m.Edges() {
		a, b := m.SourcePoint(h), m.TargetPoint(h)
		if a == cur || b == cur || a == q || b == q {
			continue
		}
		if !kernel.ProperCrossing(cur, q, a, b) {
			continue
		}

		x := kernel.LineIntersection(cur, q, a, b)
		onVertex := false
		switch {
		case x.Sub(a).Length() <= tol:
			x, onVertex = a, true
		case x.Sub(b).Length() <= tol:
			x, onVertex = b, true
		default:
			_, onVertex = m.index[x]
		}
		t := x.Sub(cur).Dot(d) / l2
		if t <= 0 || t >= stopT {
			continue
		}
		if x.Sub(cur).Length() <= tol || x.Sub(q).Length() <= tol {
			continue
		}
		stop, stopT = x, t
		cross = h
		if onVertex {
			cross = NoHalfedge
		}
	}

	if cross == NoHalfedge {
		return stop, nil
	}
	part := m.SplitEdge(cross, stop)
	return stop, &Event{Kind: EdgeSplit, Edge: cross, Part: part}
}

// insertPiece inserts a segment which meets the map at most at its end
// points.
func (m *Arrangement) insertPiece(a, b vec.Vec2) Event {
	va, okA := m.VertexAt(a)
	vb, okB := m.VertexAt(b)
	switch {
	case okA && okB:
		if e := m.EdgeBetween(va, vb); e != NoHalfedge {
			return Event{Kind: EdgeReused, Edge: e}
		}
		return Event{Kind: EdgeCreated, Edge: m.InsertBetween(va, vb)}
	case okA:
		return Event{Kind: EdgeCreated, Edge: m.InsertFromVertex(va, b)}
	case okB:
		h := m.InsertFromVertex(vb, a)
		return Event{Kind: EdgeCreated, Edge: m.Twin(h)}
	default:
		return Event{Kind: EdgeCreated, Edge: m.InsertInOpenRegion(a, b)}
	}
}

// InsertPolyline inserts the segments between consecutive points.
// Repeated consecutive points are skipped.
func (m *Arrangement) InsertPolyline(pts []vec.Vec2) ([]Event, error) {
	var events []Event
	for i := 1; i < len(pts); i++ {
		if pts[i] == pts[i-1] {
			continue
		}
		ev, err := m.InsertSegment(pts[i-1], pts[i])
		if err != nil {
			return events, err
		}
		events = append(events, ev...)
	}
	return events, nil
}

// InsertPolygon inserts the boundary of a simple polygon and returns the
// faces which make up the polygon interior, together with the half-edges
// along the boundary, oriented counter-clockwise.
func (m *Arrangement) InsertPolygon(ring []vec.Vec2) (FaceSet, EdgeSet, error) {
	if !kernel.IsSimple(ring) {
		return nil, nil, ErrSelfIntersecting
	}
	ring = kernel.CCW(ring)
	boundary := make(EdgeSet)
	n := len(ring)
	for i := range n {
		ev, err := m.InsertSegment(ring[i], ring[(i+1)%n])
		if err != nil {
			return nil, nil, err
		}
		boundary.Track(m, ev)
	}
	return m.FacesForEdgeSet(boundary), boundary, nil
}

// InsertRing inserts a closed ring into an empty part of the plane.  No
// point of the ring may coincide with an existing vertex and no edge of
// the ring may meet an existing edge.  The ring must be oriented
// counter-clockwise.
//
// The result holds one half-edge per ring segment, such that the i-th
// half-edge ends at pts[i] and has the ring interior on its left.
func (m *Arrangement) InsertRing(pts []vec.Vec2) []HalfedgeID {
	n := len(pts)
	if n < 3 {
		panic("arrangement: ring with fewer than three points")
	}
	res := make([]HalfedgeID, n)
	res[0] = m.InsertInOpenRegion(pts[n-1], pts[0])
	for i := 1; i < n-1; i++ {
		res[i] = m.InsertFromVertex(m.Target(res[i-1]), pts[i])
	}
	res[n-1] = m.InsertBetween(m.Target(res[n-2]), m.Source(res[0]))
	return res
}
