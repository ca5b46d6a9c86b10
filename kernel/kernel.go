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

// Package kernel provides the geometric predicates used by the planar map
// code.
//
// All predicates work on [vec.Vec2] values.  Orientation is decided by a
// floating point filter first; when its result cannot be trusted, the
// extended precision predicates of go-geom's bigxy package take over.
package kernel

import (
	"math"

	"github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/bigxy"
	"github.com/twpayne/go-geom/xy/orientation"
	"seehuhn.de/go/geom/vec"
)

// orientErrBound bounds the relative rounding error of the floating point
// orientation determinant.
const orientErrBound = (3.0 + 16.0*epsilon) * epsilon

const epsilon = 1.0 / (1 << 53)

// Orient returns the orientation of the point triple (a, b, c).
// The result is +1 if c lies to the left of the directed line from a to b,
// -1 if c lies to the right, and 0 if the three points are collinear.
func Orient(a, b, c vec.Vec2) int {
	l := (b.X - a.X) * (c.Y - a.Y)
	r := (b.Y - a.Y) * (c.X - a.X)
	det := l - r
	bound := orientErrBound * (math.Abs(l) + math.Abs(r))
	if det > bound {
		return 1
	} else if -det > bound {
		return -1
	}
	return orientRobust(a, b, c)
}

func orientRobust(a, b, c vec.Vec2) int {
	switch bigxy.OrientationIndex(coord(a), coord(b), coord(c)) {
	case orientation.CounterClockwise:
		return 1
	case orientation.Clockwise:
		return -1
	default:
		return 0
	}
}

func coord(p vec.Vec2) geom.Coord {
	return geom.Coord{p.X, p.Y}
}

// Less orders points lexicographically, first by X and then by Y.
func Less(a, b vec.Vec2) bool {
	if a.X != b.X {
		return a.X < b.X
	}
	return a.Y < b.Y
}

// Compare is the three-way version of [Less].
func Compare(a, b vec.Vec2) int {
	switch {
	case Less(a, b):
		return -1
	case Less(b, a):
		return 1
	default:
		return 0
	}
}

// CompareAround compares the directions from c to p and from c to q by
// their counter-clockwise angle, measured from the positive x-axis.
// The result is negative if p comes first, positive if q comes first, and
// zero if both points lie in the same direction.
// Neither p nor q may coincide with c.
func CompareAround(c, p, q vec.Vec2) int {
	hp, hq := halfPlane(c, p), halfPlane(c, q)
	if hp != hq {
		return hp - hq
	}
	return -Orient(c, p, q)
}

// halfPlane returns 0 for directions with angle in [0, pi) and 1 for
// directions in [pi, 2pi).
func halfPlane(c, p vec.Vec2) int {
	if p.Y > c.Y || (p.Y == c.Y && p.X > c.X) {
		return 0
	}
	return 1
}

// InBox reports whether p lies in the closed bounding box of a and b.
func InBox(a, b, p vec.Vec2) bool {
	return p.X >= min(a.X, b.X) && p.X <= max(a.X, b.X) &&
		p.Y >= min(a.Y, b.Y) && p.Y <= max(a.Y, b.Y)
}

// OnSegment reports whether p lies on the closed segment from a to b.
func OnSegment(a, b, p vec.Vec2) bool {
	return InBox(a, b, p) && Orient(a, b, p) == 0
}

// InSegmentInterior reports whether p lies on the segment from a to b,
// but is different from both end points.
func InSegmentInterior(a, b, p vec.Vec2) bool {
	return p != a && p != b && OnSegment(a, b, p)
}
