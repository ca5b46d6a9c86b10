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

package dem

import (
	"bytes"
	"math"
	"testing"

	"seehuhn.de/go/geom/rect"
)

func testGrid() *Grid {
	// 5x3 posts over one degree by half a degree
	g := New(5, 3, rect.Rect{LLx: 10, LLy: 50, URx: 11, URy: 50.5})
	for y := range g.Height {
		for x := range g.Width {
			g.Set(x, y, float32(10*y+x))
		}
	}
	return g
}

func TestCoordinates(t *testing.T) {
	g := testGrid()
	if x := g.LonToX(10); x != 0 {
		t.Errorf("LonToX(west) = %g", x)
	}
	if x := g.LonToX(11); x != 4 {
		t.Errorf("LonToX(east) = %g", x)
	}
	if y := g.LatToY(50.25); y != 1 {
		t.Errorf("LatToY(50.25) = %g", y)
	}
	if lon := g.XToLon(2); lon != 10.5 {
		t.Errorf("XToLon(2) = %g", lon)
	}
	if lat := g.YToLat(2); lat != 50.5 {
		t.Errorf("YToLat(2) = %g", lat)
	}

	M := g.Transform()
	for _, c := range []struct{ lon, lat float64 }{{10, 50}, {10.25, 50.1}, {11, 50.5}} {
		x := M[0]*c.lon + M[2]*c.lat + M[4]
		y := M[1]*c.lon + M[3]*c.lat + M[5]
		if math.Abs(x-g.LonToX(c.lon)) > 1e-9 || math.Abs(y-g.LatToY(c.lat)) > 1e-9 {
			t.Errorf("Transform(%g, %g) = (%g, %g)", c.lon, c.lat, x, y)
		}
	}
}

func TestGetOutside(t *testing.T) {
	g := testGrid()
	for _, p := range [][2]int{{-1, 0}, {0, -1}, {5, 0}, {0, 3}} {
		if v := g.Get(p[0], p[1]); v != NoData {
			t.Errorf("Get(%d, %d) = %g, want NoData", p[0], p[1], v)
		}
	}
	g.Set(7, 7, 1) // ignored
	if v := g.Get(4, 2); v != 24 {
		t.Errorf("Get(4, 2) = %g", v)
	}
}

func TestValueLinear(t *testing.T) {
	g := testGrid()
	if v := g.ValueLinear(10.5, 50.25); v != 12 {
		t.Errorf("post value %g, want 12", v)
	}
	// halfway between (1, 0) and (2, 1)
	if v := g.ValueLinear(10.375, 50.125); math.Abs(float64(v)-6.5) > 1e-5 {
		t.Errorf("interpolated value %g, want 6.5", v)
	}
	if v := g.XYNearest(10.3, 50.2); v != 11 {
		t.Errorf("nearest value %g, want 11", v)
	}

	g.Set(2, 1, NoData)
	v := g.ValueLinear(10.375, 50.125)
	// the three remaining samples 1, 2 and 11 have equal weight
	if math.Abs(float64(v)-14.0/3) > 1e-5 {
		t.Errorf("value without centre %g, want %g", v, 14.0/3)
	}

	empty := New(2, 2, rect.Rect{URx: 1, URy: 1})
	if v := empty.ValueLinear(0.5, 0.5); v != NoData {
		t.Errorf("empty grid gave %g", v)
	}
}

func TestDownsample(t *testing.T) {
	g := New(5, 5, rect.Rect{URx: 1, URy: 1})
	for i := range g.Data {
		g.Data[i] = 2
	}
	g.Set(0, 0, 6)
	g.Set(1, 1, NoData)
	d := g.Downsample(2)
	if d.Width != 3 || d.Height != 3 {
		t.Fatalf("size %dx%d, want 3x3", d.Width, d.Height)
	}
	if v := d.Get(0, 0); math.Abs(float64(v)-10.0/3) > 1e-6 {
		t.Errorf("block average %g, want %g", v, 10.0/3)
	}
	if v := d.Get(2, 2); v != 2 {
		t.Errorf("corner %g, want 2", v)
	}
}

func TestSpread(t *testing.T) {
	g := New(5, 1, rect.Rect{URx: 1, URy: 1})
	g.Set(0, 0, 4)
	g.Set(4, 0, 8)
	g.Spread(5)
	want := []float32{4, 4, 6, 8, 8}
	for x, w := range want {
		if v := g.Get(x, 0); v != w {
			t.Errorf("x=%d: %g, want %g", x, v, w)
		}
	}

	limited := New(6, 1, rect.Rect{URx: 1, URy: 1})
	limited.Set(0, 0, 1)
	limited.Spread(2)
	if v := limited.Get(5, 0); v != NoData {
		t.Errorf("sample beyond the limit was filled with %g", v)
	}
}

func TestTIFF(t *testing.T) {
	g := testGrid()
	g.Set(3, 1, NoData)
	buf := &bytes.Buffer{}
	if err := WriteTIFF(buf, g, DefaultEncoding); err != nil {
		t.Fatal(err)
	}
	h, err := ReadTIFF(buf, g.Bounds, DefaultEncoding)
	if err != nil {
		t.Fatal(err)
	}
	if h.Width != g.Width || h.Height != g.Height {
		t.Fatalf("size %dx%d", h.Width, h.Height)
	}
	for i := range g.Data {
		if h.Data[i] != g.Data[i] {
			t.Errorf("sample %d: %g, want %g", i, h.Data[i], g.Data[i])
		}
	}
}
