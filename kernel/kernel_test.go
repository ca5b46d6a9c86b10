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
	"testing"

	"seehuhn.de/go/geom/vec"
)

func TestOrient(t *testing.T) {
	cases := []struct {
		a, b, c vec.Vec2
		want    int
	}{
		{vec.Vec2{X: 0, Y: 0}, vec.Vec2{X: 1, Y: 0}, vec.Vec2{X: 0, Y: 1}, 1},
		{vec.Vec2{X: 0, Y: 0}, vec.Vec2{X: 1, Y: 0}, vec.Vec2{X: 0, Y: -1}, -1},
		{vec.Vec2{X: 0, Y: 0}, vec.Vec2{X: 1, Y: 1}, vec.Vec2{X: 3, Y: 3}, 0},
		// the float filter cannot decide these
		{vec.Vec2{X: 0.5, Y: 0.5}, vec.Vec2{X: 12, Y: 12}, vec.Vec2{X: 24, Y: 24}, 0},
		{vec.Vec2{X: 1, Y: 2}, vec.Vec2{X: 3, Y: 6}, vec.Vec2{X: -2, Y: -4}, 0},
	}
	for i, c := range cases {
		got := Orient(c.a, c.b, c.c)
		if got != c.want {
			t.Errorf("%d: Orient(%v, %v, %v) = %d, want %d", i, c.a, c.b, c.c, got, c.want)
		}
		// orientation is antisymmetric
		if back := Orient(c.b, c.a, c.c); back != -got {
			t.Errorf("%d: swapped orientation %d, want %d", i, back, -got)
		}
	}
}

func TestOrientNearlyCollinear(t *testing.T) {
	// points on the line y = x, perturbed by one ulp
	a := vec.Vec2{X: 0.5, Y: 0.5}
	b := vec.Vec2{X: 12, Y: 12}
	c := vec.Vec2{X: 24, Y: 24}
	if got := Orient(a, b, c); got != 0 {
		t.Errorf("collinear: got %d", got)
	}
	c.Y = 24.000000000000004
	if got := Orient(a, b, c); got != 1 {
		t.Errorf("above: got %d", got)
	}
	c.Y = 23.999999999999996
	if got := Orient(a, b, c); got != -1 {
		t.Errorf("below: got %d", got)
	}
}

func TestCompareAround(t *testing.T) {
	c := vec.Vec2{}
	dirs := []vec.Vec2{
		{X: 1, Y: 0},
		{X: 1, Y: 1},
		{X: 0, Y: 1},
		{X: -1, Y: 0.5},
		{X: -1, Y: 0},
		{X: -1, Y: -1},
		{X: 0, Y: -1},
		{X: 2, Y: -0.1},
	}
	for i := range dirs {
		for j := range dirs {
			got := CompareAround(c, dirs[i], dirs[j])
			want := 0
			if i < j {
				want = -1
			} else if i > j {
				want = 1
			}
			if sign(got) != want {
				t.Errorf("CompareAround(%v, %v) = %d, want %d", dirs[i], dirs[j], got, want)
			}
		}
	}
	if got := CompareAround(c, vec.Vec2{X: 1, Y: 1}, vec.Vec2{X: 5, Y: 5}); got != 0 {
		t.Errorf("same direction: got %d", got)
	}
}

func sign(x int) int {
	switch {
	case x < 0:
		return -1
	case x > 0:
		return 1
	}
	return 0
}

func TestIntersect(t *testing.T) {
	v := func(x, y float64) vec.Vec2 { return vec.Vec2{X: x, Y: y} }
	cases := []struct {
		name           string
		a0, a1, b0, b1 vec.Vec2
		kind           IntersectionKind
		p, q           vec.Vec2
	}{
		{"cross", v(0, 0), v(2, 2), v(0, 2), v(2, 0), Crossing, v(1, 1), v(0, 0)},
		{"disjoint", v(0, 0), v(1, 0), v(0, 1), v(1, 1), Disjoint, v(0, 0), v(0, 0)},
		{"touch end", v(0, 0), v(2, 0), v(1, 0), v(1, 5), Crossing, v(1, 0), v(0, 0)},
		{"shared vertex", v(0, 0), v(2, 0), v(2, 0), v(3, 4), Crossing, v(2, 0), v(0, 0)},
		{"overlap", v(0, 0), v(4, 0), v(3, 0), v(1, 0), Overlap, v(1, 0), v(3, 0)},
		{"collinear touch", v(0, 0), v(1, 1), v(1, 1), v(2, 2), Crossing, v(1, 1), v(0, 0)},
		{"collinear apart", v(0, 0), v(1, 1), v(2, 2), v(3, 3), Disjoint, v(0, 0), v(0, 0)},
		{"parallel", v(0, 0), v(4, 0), v(0, 1), v(4, 1), Disjoint, v(0, 0), v(0, 0)},
		{"miss", v(0, 0), v(1, 1), v(3, 0), v(2, 1.5), Disjoint, v(0, 0), v(0, 0)},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			kind, p, q := Intersect(c.a0, c.a1, c.b0, c.b1)
			if kind != c.kind {
				t.Fatalf("kind = %s, want %s", kind, c.kind)
			}
			if kind == Disjoint {
				return
			}
			if p != c.p {
				t.Errorf("p = %v, want %v", p, c.p)
			}
			if kind == Overlap && q != c.q {
				t.Errorf("q = %v, want %v", q, c.q)
			}
		})
	}
}

func TestIntersectClamped(t *testing.T) {
	a0 := vec.Vec2{X: 0, Y: 0}
	a1 := vec.Vec2{X: 1, Y: 1e-9}
	b0 := vec.Vec2{X: 0.3, Y: -1}
	b1 := vec.Vec2{X: 0.3000000001, Y: 1}
	kind, p, _ := Intersect(a0, a1, b0, b1)
	if kind != Crossing {
		t.Fatalf("kind = %s", kind)
	}
	if !InBox(a0, a1, p) || !InBox(b0, b1, p) {
		t.Errorf("%v outside the segment boxes", p)
	}
}

func TestNearCollinear(t *testing.T) {
	v := func(x, y float64) vec.Vec2 { return vec.Vec2{X: x, Y: y} }
	const eps = 7.7e-12
	cases := []struct {
		name   string
		s0, s1 vec.Vec2
		p      vec.Vec2
		want   bool
	}{
		{"end point", v(0, 0), v(1, 1), v(1, 1), false},
		{"horizontal inside", v(0, 2), v(4, 2), v(1, 2), true},
		{"horizontal reversed", v(4, 2), v(0, 2), v(1, 2), true},
		{"horizontal off", v(0, 2), v(4, 2), v(1, 2.0000001), false},
		{"horizontal beyond", v(0, 2), v(4, 2), v(5, 2), false},
		{"vertical inside", v(3, 0), v(3, -4), v(3, -1), true},
		{"diagonal close", v(0, 0), v(1, 1), v(0.5, 0.5+1e-7), true},
		{"diagonal far", v(0, 0), v(1, 1), v(0.5, 0.51), false},
		{"diagonal descending", v(0, 1), v(1, 0), v(0.5, 0.5+1e-7), true},
		{"diagonal beyond", v(0, 0), v(1, 1), v(1+1e-7, 1+1e-7), false},
	}
	for _, c := range cases {
		if got := NearCollinear(c.s0, c.s1, c.p, eps); got != c.want {
			t.Errorf("%s: got %t, want %t", c.name, got, c.want)
		}
	}
}

func TestBoundedSide(t *testing.T) {
	square := []vec.Vec2{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}, {X: 0, Y: 10}}
	cases := []struct {
		p    vec.Vec2
		want Side
	}{
		{vec.Vec2{X: 5, Y: 5}, Inside},
		{vec.Vec2{X: 0, Y: 5}, OnBoundary},
		{vec.Vec2{X: 10, Y: 10}, OnBoundary},
		{vec.Vec2{X: 11, Y: 5}, Outside},
		{vec.Vec2{X: -1, Y: 0}, Outside},
		{vec.Vec2{X: 5, Y: 10.000000001}, Outside},
	}
	for _, c := range cases {
		if got := BoundedSide(square, c.p); got != c.want {
			t.Errorf("BoundedSide(%v) = %s, want %s", c.p, got, c.want)
		}
		cw := []vec.Vec2{square[3], square[2], square[1], square[0]}
		if got := BoundedSide(cw, c.p); got != c.want {
			t.Errorf("reversed: BoundedSide(%v) = %s, want %s", c.p, got, c.want)
		}
	}
}

func TestSignedArea(t *testing.T) {
	ring := []vec.Vec2{{X: 10, Y: 10}, {X: 20, Y: 10}, {X: 20, Y: 20}, {X: 10, Y: 20}}
	if a := SignedArea(ring); a != 100 {
		t.Errorf("area = %g, want 100", a)
	}
	rev := []vec.Vec2{ring[3], ring[2], ring[1], ring[0]}
	if a := SignedArea(rev); a != -100 {
		t.Errorf("area = %g, want -100", a)
	}
	if got := CCW(rev); !IsCCW(got) {
		t.Error("CCW did not reverse a clockwise ring")
	}
}

func TestIsSimple(t *testing.T) {
	v := func(x, y float64) vec.Vec2 { return vec.Vec2{X: x, Y: y} }
	cases := []struct {
		name string
		ring []vec.Vec2
		want bool
	}{
		{"triangle", []vec.Vec2{v(0, 0), v(1, 0), v(0, 1)}, true},
		{"square", []vec.Vec2{v(0, 0), v(1, 0), v(1, 1), v(0, 1)}, true},
		{"bowtie", []vec.Vec2{v(0, 0), v(1, 1), v(1, 0), v(0, 1)}, false},
		{"too short", []vec.Vec2{v(0, 0), v(1, 0)}, false},
		{"repeated", []vec.Vec2{v(0, 0), v(1, 0), v(1, 1), v(1, 0)}, false},
		{"flat", []vec.Vec2{v(0, 0), v(1, 0), v(2, 0)}, false},
		{"spike", []vec.Vec2{v(0, 0), v(2, 0), v(2, 2), v(1, 0), v(0, 2)}, false},
		{"concave", []vec.Vec2{v(0, 0), v(4, 0), v(4, 4), v(2, 1), v(0, 4)}, true},
	}
	for _, c := range cases {
		if got := IsSimple(c.ring); got != c.want {
			t.Errorf("%s: IsSimple = %t, want %t", c.name, got, c.want)
		}
	}
}
