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

package scanline

import (
	"image"
	"image/color"
	"math"
	"testing"

	"golang.org/x/image/vector"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"
)

// TestTriangleCoverage checks exact coverage values for the triangle
// (0,0)->(10,0)->(10,1), whose diagonal edge is y = x/10.  Pixel X
// should have coverage (2X+1)/20.
func TestTriangleCoverage(t *testing.T) {
	triangle := (&path.Data{}).
		MoveTo(vec.Vec2{X: 0, Y: 0}).
		LineTo(vec.Vec2{X: 10, Y: 0}).
		LineTo(vec.Vec2{X: 10, Y: 1}).
		Close()

	r := NewRasteriser(rect.Rect{LLx: 0, LLy: 0, URx: 10, URy: 1})
	coverage := make([]float32, 10)
	r.FillNonZero(triangle, func(y, xMin int, cov []float32) {
		if y == 0 {
			copy(coverage[xMin:], cov)
		}
	})

	const epsilon = 1e-6
	for x := range 10 {
		expected := float32(2*x+1) / 20
		if math.Abs(float64(coverage[x]-expected)) > epsilon {
			t.Errorf("pixel %d: expected coverage %.4f, got %.4f", x, expected, coverage[x])
		}
	}
}

// TestCoverageArea checks that the coverage of a polygon sums up to its
// area, also when the polygon is given in transformed coordinates.
func TestCoverageArea(t *testing.T) {
	quad := (&path.Data{}).
		MoveTo(vec.Vec2{X: 0.3, Y: 0.2}).
		LineTo(vec.Vec2{X: 4.1, Y: 0.7}).
		LineTo(vec.Vec2{X: 3.2, Y: 3.4}).
		LineTo(vec.Vec2{X: 0.9, Y: 2.6}).
		Close()
	area := 0.0
	pts := quad.Coords
	for i := range pts {
		a, b := pts[i], pts[(i+1)%len(pts)]
		area += a.X*b.Y - a.Y*b.X
	}
	area = math.Abs(area / 2)

	for _, scale := range []float64{1, 2.5} {
		r := NewRasteriser(rect.Rect{LLx: 0, LLy: 0, URx: 20, URy: 20})
		r.CTM = matrix.Scale(scale, scale).Translate(1, 1)
		var sum float64
		r.FillEvenOdd(quad, func(y, xMin int, cov []float32) {
			for _, c := range cov {
				sum += float64(c)
			}
		})
		want := area * scale * scale
		if math.Abs(sum-want) > 1e-4*want {
			t.Errorf("scale %g: total coverage %g, want %g", scale, sum, want)
		}
	}
}

// TestAgainstVector compares the coverage values with the rasterizer from
// golang.org/x/image/vector.
func TestAgainstVector(t *testing.T) {
	const size = 32
	poly := []vec.Vec2{
		{X: 2.5, Y: 1.25}, {X: 29, Y: 4}, {X: 20.75, Y: 17}, {X: 30, Y: 30.5}, {X: 3, Y: 20},
	}

	p := &path.Data{}
	p.MoveTo(poly[0])
	for _, q := range poly[1:] {
		p.LineTo(q)
	}
	p.Close()

	got := image.NewAlpha(image.Rect(0, 0, size, size))
	r := NewRasteriser(rect.Rect{URx: size, URy: size})
	r.FillNonZero(p, func(y, xMin int, cov []float32) {
		row := got.Pix[y*got.Stride+xMin:]
		for i, c := range cov {
			row[i] = uint8(math.Round(float64(c) * 255))
		}
	})

	z := vector.NewRasterizer(size, size)
	z.MoveTo(float32(poly[0].X), float32(poly[0].Y))
	for _, q := range poly[1:] {
		z.LineTo(float32(q.X), float32(q.Y))
	}
	z.ClosePath()
	want := image.NewAlpha(image.Rect(0, 0, size, size))
	z.Draw(want, want.Bounds(), image.NewUniform(color.Alpha{255}), image.Point{})

	for i := range got.Pix {
		d := int(got.Pix[i]) - int(want.Pix[i])
		if d < -2 || d > 2 {
			t.Errorf("pixel (%d, %d): %d, want %d", i%size, i/size, got.Pix[i], want.Pix[i])
		}
	}
}

func TestCurveFlattening(t *testing.T) {
	// a quarter disc of radius 10 drawn with a cubic approximation
	const k = 0.5522847498
	p := (&path.Data{}).
		MoveTo(vec.Vec2{X: 0, Y: 0}).
		LineTo(vec.Vec2{X: 10, Y: 0}).
		CubeTo(vec.Vec2{X: 10, Y: 10 * k}, vec.Vec2{X: 10 * k, Y: 10}, vec.Vec2{X: 0, Y: 10}).
		Close()
	r := NewRasteriser(rect.Rect{URx: 16, URy: 16})
	r.Flatness = 0.001
	var sum float64
	r.FillNonZero(p, func(y, xMin int, cov []float32) {
		for _, c := range cov {
			sum += float64(c)
		}
	})
	want := math.Pi * 100 / 4
	if math.Abs(sum-want) > 0.1 {
		t.Errorf("area %g, want %g", sum, want)
	}
}

func BenchmarkCoverage(b *testing.B) {
	p := (&path.Data{}).
		MoveTo(vec.Vec2{X: 10, Y: 10}).
		LineTo(vec.Vec2{X: 990, Y: 40}).
		LineTo(vec.Vec2{X: 500, Y: 990}).
		Close()
	r := NewRasteriser(rect.Rect{URx: 1000, URy: 1000})
	emit := func(y, xMin int, coverage []float32) {}
	for b.Loop() {
		r.FillNonZero(p, emit)
	}
}

func BenchmarkPolyRasterizer(b *testing.B) {
	r := &PolyRasterizer{}
	addPolygon(r, [2]float64{10, 10}, [2]float64{990, 40}, [2]float64{500, 990})
	r.SortMasters()
	for b.Loop() {
		r.Walk(1000, 1000, func(y, x1, x2 int) {})
	}
}
