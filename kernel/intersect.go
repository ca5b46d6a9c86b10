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

package kernel

import (
	"math"

	"github.com/twpayne/go-geom/bigxy"
	"seehuhn.de/go/geom/vec"
)

// IntersectionKind describes how two segments meet.
type IntersectionKind int

// These are the possible results of [Intersect].
const (
	Disjoint IntersectionKind = iota
	Crossing                  // the segments share exactly one point
	Overlap                   // the segments share a sub-segment of positive length
)

func (k IntersectionKind) String() string {
	switch k {
	case Disjoint:
		return "disjoint"
	case Crossing:
		return "crossing"
	case Overlap:
		return "overlap"
	default:
		return "invalid"
	}
}

// Intersect computes the intersection of the closed segments a0-a1 and
// b0-b1.
//
// For [Crossing] the common point is returned in p.  If the common point is
// an end point of one of the segments, that end point is returned exactly.
// Otherwise p is the rounded intersection of the two supporting lines,
// clamped to the bounding boxes of both segments.
//
// For [Overlap] the shared sub-segment runs from p to q.
func Intersect(a0, a1, b0, b1 vec.Vec2) (kind IntersectionKind, p, q vec.Vec2) {
	if !boxesMeet(a0, a1, b0, b1) {
		return Disjoint, p, q
	}

	o1 := Orient(a0, a1, b0)
	o2 := Orient(a0, a1, b1)
	if o1 == 0 && o2 == 0 {
		return collinearOverlap(a0, a1, b0, b1)
	}
	if o1*o2 > 0 {
		return Disjoint, p, q
	}
	o3 := Orient(b0, b1, a0)
	o4 := Orient(b0, b1, a1)
	if o3*o4 > 0 {
		return Disjoint, p, q
	}

	switch {
	case o1 == 0:
		return Crossing, b0, q
	case o2 == 0:
		return Crossing, b1, q
	case o3 == 0:
		return Crossing, a0, q
	case o4 == 0:
		return Crossing, a1, q
	}
	return Crossing, LineIntersection(a0, a1, b0, b1), q
}

func boxesMeet(a0, a1, b0, b1 vec.Vec2) bool {
	return max(a0.X, a1.X) >= min(b0.X, b1.X) &&
		max(b0.X, b1.X) >= min(a0.X, a1.X) &&
		max(a0.Y, a1.Y) >= min(b0.Y, b1.Y) &&
		max(b0.Y, b1.Y) >= min(a0.Y, a1.Y)
}

// collinearOverlap handles two segments on a common line.
func collinearOverlap(a0, a1, b0, b1 vec.Vec2) (IntersectionKind, vec.Vec2, vec.Vec2) {
	if Less(a1, a0) {
		a0, a1 = a1, a0
	}
	if Less(b1, b0) {
		b0, b1 = b1, b0
	}
	lo := a0
	if Less(lo, b0) {
		lo = b0
	}
	hi := a1
	if Less(b1, hi) {
		hi = b1
	}
	switch Compare(lo, hi) {
	case 0:
		return Crossing, lo, vec.Vec2{}
	case -1:
		return Overlap, lo, hi
	default:
		return Disjoint, vec.Vec2{}, vec.Vec2{}
	}
}

// LineIntersection returns the intersection point of the lines through
// a0-a1 and b0-b1, rounded to float64 and clamped to the bounding boxes of
// both segments.  The lines must not be parallel.
func LineIntersection(a0, a1, b0, b1 vec.Vec2) vec.Vec2 {
	c := bigxy.Intersection(coord(a0), coord(a1), coord(b0), coord(b1))
	p := vec.Vec2{X: c[0], Y: c[1]}

	// rounding may move p slightly outside the segments
	p.X = clamp(p.X, max(min(a0.X, a1.X), min(b0.X, b1.X)), min(max(a0.X, a1.X), max(b0.X, b1.X)))
	p.Y = clamp(p.Y, max(min(a0.Y, a1.Y), min(b0.Y, b1.Y)), min(max(a0.Y, a1.Y), max(b0.Y, b1.Y)))
	return p
}

// ProperCrossing reports whether the segments a0-a1 and b0-b1 meet in a
// single point which lies in the interior of both segments.
func ProperCrossing(a0, a1, b0, b1 vec.Vec2) bool {
	if !boxesMeet(a0, a1, b0, b1) {
		return false
	}
	if Orient(a0, a1, b0)*Orient(a0, a1, b1) >= 0 {
		return false
	}
	return Orient(b0, b1, a0)*Orient(b0, b1, a1) < 0
}

// SegmentDistance returns the distance between p and the closed segment
// from a to b.
func SegmentDistance(a, b, p vec.Vec2) float64 {
	d := b.Sub(a)
	l2 := d.Dot(d)
	if l2 == 0 {
		return p.Sub(a).Length()
	}
	t := p.Sub(a).Dot(d) / l2
	t = clamp(t, 0, 1)
	return p.Sub(a.Add(d.Mul(t))).Length()
}

// LineDistance returns the distance between p and the line through a and
// b, where a and b are distinct.
func LineDistance(a, b, p vec.Vec2) float64 {
	d := b.Sub(a)
	w := p.Sub(a)
	return math.Abs(d.X*w.Y-d.Y*w.X) / d.Length()
}

func clamp(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}

// NearCollinear reports whether p lies so close to the interior of the
// segment s0-s1 that the segment should be split at p.
//
// Horizontal and vertical segments only accept points which lie exactly on
// the segment.  For all other segments, the squared distance between p and
// the supporting line must be below eps, p must lie strictly inside the
// bounding box of the segment, and the projection of p must fall strictly
// between the end points.
func NearCollinear(s0, s1, p vec.Vec2, eps float64) bool {
	if p == s0 || p == s1 {
		return false
	}
	if s0.Y == s1.Y {
		return p.Y == s0.Y && strictlyBetween(s0.X, p.X, s1.X)
	}
	if s0.X == s1.X {
		return p.X == s0.X && strictlyBetween(s0.Y, p.Y, s1.Y)
	}

	d := s1.Sub(s0)
	t := p.Sub(s0).Dot(d) / d.Dot(d)
	proj := s0.Add(d.Mul(t))
	off := p.Sub(proj)
	if off.Dot(off) >= eps {
		return false
	}
	if !strictlyBetween(s0.X, p.X, s1.X) || !strictlyBetween(s0.Y, p.Y, s1.Y) {
		return false
	}
	return p.Sub(s0).Dot(d) > 0 && s1.Sub(p).Dot(d) > 0
}

func strictlyBetween(a, x, b float64) bool {
	if a > b {
		a, b = b, a
	}
	return a < x && x < b
}
