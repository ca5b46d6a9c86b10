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
	"slices"

	"seehuhn.de/go/geom/vec"
)

// Side describes the location of a point relative to a closed polygon.
type Side int

// These are the possible results of [BoundedSide].
const (
	Outside Side = iota
	OnBoundary
	Inside
)

func (s Side) String() string {
	switch s {
	case Outside:
		return "outside"
	case OnBoundary:
		return "boundary"
	case Inside:
		return "inside"
	default:
		return "invalid"
	}
}

// BoundedSide locates p relative to the polygon with the given vertices.
// The ring is implicitly closed and must not repeat its first vertex at
// the end.  The result is exact.
func BoundedSide(ring []vec.Vec2, p vec.Vec2) Side {
	n := len(ring)
	wind := 0
	for i := range n {
		a := ring[i]
		b := ring[(i+1)%n]
		if OnSegment(a, b, p) {
			return OnBoundary
		}
		if a.Y <= p.Y {
			if b.Y > p.Y && Orient(a, b, p) > 0 {
				wind++
			}
		} else if b.Y <= p.Y && Orient(a, b, p) < 0 {
			wind--
		}
	}
	if wind != 0 {
		return Inside
	}
	return Outside
}

// SignedArea returns the area enclosed by the ring.  The result is
// positive for counter-clockwise rings and negative for clockwise rings.
func SignedArea(ring []vec.Vec2) float64 {
	n := len(ring)
	if n < 3 {
		return 0
	}
	var sum float64
	p0 := ring[0]
	for i := 1; i < n-1; i++ {
		a := ring[i].Sub(p0)
		b := ring[i+1].Sub(p0)
		sum += a.X*b.Y - a.Y*b.X
	}
	return sum / 2
}

// IsCCW reports whether the ring is oriented counter-clockwise.
func IsCCW(ring []vec.Vec2) bool {
	return SignedArea(ring) > 0
}

// CCW returns the ring in counter-clockwise order.
// A clockwise ring is reversed into a new slice; otherwise the ring is
// returned unchanged.
func CCW(ring []vec.Vec2) []vec.Vec2 {
	if IsCCW(ring) {
		return ring
	}
	res := slices.Clone(ring)
	slices.Reverse(res)
	return res
}

// IsSimple reports whether the ring describes a simple polygon: at least
// three distinct vertices, no repeated vertex, non-zero area, and no two
// edges meeting anywhere other than at their shared end point.
func IsSimple(ring []vec.Vec2) bool {
	n := len(ring)
	if n < 3 {
		return false
	}
	seen := make(map[vec.Vec2]bool, n)
	for _, p := range ring {
		if seen[p] {
			return false
		}
		seen[p] = true
	}
	if SignedArea(ring) == 0 {
		return false
	}

	for i := range n {
		a0, a1 := ring[i], ring[(i+1)%n]
		for j := i + 1; j < n; j++ {
			b0, b1 := ring[j], ring[(j+1)%n]
			kind, p, _ := Intersect(a0, a1, b0, b1)
			switch {
			case kind == Disjoint:
				continue
			case kind == Overlap:
				return false
			case j == i+1 && p == a1:
				continue
			case i == 0 && j == n-1 && p == a0:
				continue
			default:
				return false
			}
		}
	}
	return true
}
