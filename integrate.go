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

package vmap

import (
	"cmp"
	"slices"

	"github.com/golang/geo/r2"
	"seehuhn.de/go/geom/vec"
	"seehuhn.de/go/vmap/arrangement"
	"seehuhn.de/go/vmap/kernel"
)

// IntegrateConfig holds the tolerances used by [TopoIntegrate].
type IntegrateConfig struct {
	// BBoxSlop is the margin added to all edge bounding boxes.
	BBoxSlop float64

	// SmallSegCutoff separates edges with a small vertical extent from
	// large ones.  The two groups are searched separately.
	SmallSegCutoff float64

	// NearColinear is the largest squared distance between a point and a
	// segment for which the point is taken to lie on the segment.
	NearColinear float64
}

// DefaultIntegrateConfig returns the tolerances for maps in degrees.
func DefaultIntegrateConfig() IntegrateConfig {
	return IntegrateConfig{
		BBoxSlop:       1e-5,
		SmallSegCutoff: 0.005,
		NearColinear:   7.7e-12,
	}
}

type boxedEdge struct {
	h   arrangement.HalfedgeID
	box r2.Rect
}

// edgeBucket holds edges sorted by the lower y value of their boxes.
type edgeBucket struct {
	edges  []boxedEdge
	yRange float64
}

func (b *edgeBucket) add(e boxedEdge) {
	b.edges = append(b.edges, e)
	b.yRange = max(b.yRange, e.box.Y.Length())
}

func (b *edgeBucket) sort() {
	slices.SortStableFunc(b.edges, func(x, y boxedEdge) int {
		return cmp.Compare(x.box.Y.Lo, y.box.Y.Lo)
	})
}

// candidates returns all edges whose boxes may overlap box.
func (b *edgeBucket) candidates(box r2.Rect) []boxedEdge {
	lo, _ := slices.BinarySearchFunc(b.edges, box.Y.Lo-b.yRange, func(e boxedEdge, y float64) int {
		return cmp.Compare(e.box.Y.Lo, y)
	})
	hi, _ := slices.BinarySearchFunc(b.edges, box.Y.Hi, func(e boxedEdge, y float64) int {
		if e.box.Y.Lo <= y {
			return -1
		}
		return 1
	})
	return b.edges[lo:hi]
}

func edgeBox(m *arrangement.Arrangement, h arrangement.HalfedgeID, slop float64) r2.Rect {
	p, q := m.SourcePoint(h), m.TargetPoint(h)
	return r2.RectFromPoints(r2.Point{X: p.X, Y: p.Y}, r2.Point{X: q.X, Y: q.Y}).ExpandedByMargin(slop)
}

type splitPlan map[arrangement.HalfedgeID][]vec.Vec2

// TopoIntegrate prepares two maps for merging.  Wherever an edge of a
// crosses an edge of b, both edges are split at the same crossing point.
// Where an end point of one edge lies almost on an edge of the other map,
// that edge is split at the end point.  Afterwards, the maps can be merged
// without computing any new intersections.
//
// The return values give the number of splits applied to each map.
func TopoIntegrate(a, b *arrangement.Arrangement, cfg IntegrateConfig) (splitsA, splitsB int) {
	log := Logger()

	var small, big edgeBucket
	for h := range b.Edges() {
		if b.SourcePoint(h) == b.TargetPoint(h) {
			continue
		}
		e := boxedEdge{h: h, box: edgeBox(b, h, cfg.BBoxSlop)}
		if e.box.Y.Length() > cfg.SmallSegCutoff {
			big.add(e)
		} else {
			small.add(e)
		}
	}
	small.sort()
	big.sort()

	planA := make(splitPlan)
	planB := make(splitPlan)
	schedule := func(plan splitPlan, name string, m *arrangement.Arrangement, h arrangement.HalfedgeID, p vec.Vec2, why string) {
		plan[h] = append(plan[h], p)
		log.Debug("schedule split",
			"map", name,
			"from", m.SourcePoint(h),
			"to", m.TargetPoint(h),
			"at", p,
			"reason", why)
	}

	for ha := range a.Edges() {
		a0, a1 := a.SourcePoint(ha), a.TargetPoint(ha)
		if a0 == a1 {
			continue
		}
		boxA := edgeBox(a, ha, cfg.BBoxSlop)
		for _, bucket := range []*edgeBucket{&big, &small} {
			for _, e := range bucket.candidates(boxA) {
				if !boxA.Intersects(e.box) {
					continue
				}
				hb := e.h
				b0, b1 := b.SourcePoint(hb), b.TargetPoint(hb)

				colinear := false
				if sameAxisClass(a0, a1, b0, b1) {
					for _, p := range []vec.Vec2{b0, b1} {
						if kernel.NearCollinear(a0, a1, p, cfg.NearColinear) {
							colinear = true
							schedule(planA, "A", a, ha, p, "near colinear")
						}
					}
					for _, p := range []vec.Vec2{a0, a1} {
						if kernel.NearCollinear(b0, b1, p, cfg.NearColinear) {
							colinear = true
							schedule(planB, "B", b, hb, p, "near colinear")
						}
					}
				}
				if colinear {
					continue
				}

				kind, p, _ := kernel.Intersect(a0, a1, b0, b1)
				if kind != kernel.Crossing {
					continue
				}
				if p != a0 && p != a1 {
					schedule(planA, "A", a, ha, p, "crossing")
				}
				if p != b0 && p != b1 {
					schedule(planB, "B", b, hb, p, "crossing")
				}
			}
		}
	}

	splitsA = applySplits(a, planA)
	splitsB = applySplits(b, planB)
	log.Debug("topology integrated",
		"edgesA", a.NumEdges(),
		"edgesB", b.NumEdges(),
		"splitsA", splitsA,
		"splitsB", splitsB)
	return splitsA, splitsB
}

// sameAxisClass reports whether both segments are horizontal, both are
// vertical, or neither is either.
func sameAxisClass(a0, a1, b0, b1 vec.Vec2) bool {
	return (a0.Y == a1.Y) == (b0.Y == b1.Y) && (a0.X == a1.X) == (b0.X == b1.X)
}

// applySplits splits every edge of the plan at its points, in order of
// increasing distance from the source.
func applySplits(m *arrangement.Arrangement, plan splitPlan) int {
	keys := make([]arrangement.HalfedgeID, 0, len(plan))
	for h := range plan {
		keys = append(keys, h)
	}
	slices.Sort(keys)

	n := 0
	for _, h := range keys {
		src := m.SourcePoint(h)
		pts := plan[h]
		slices.SortFunc(pts, func(p, q vec.Vec2) int {
			dp, dq := p.Sub(src), q.Sub(src)
			return cmp.Compare(dp.Dot(dp), dq.Dot(dq))
		})
		pts = slices.Compact(pts)
		for _, p := range pts {
			if p == m.SourcePoint(h) || p == m.TargetPoint(h) {
				continue
			}
			if _, ok := m.VertexAt(p); ok {
				continue
			}
			h = m.SplitEdge(h, p)
			n++
		}
	}
	return n
}
