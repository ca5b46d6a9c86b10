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
	"gonum.org/v1/gonum/floats"
	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"
	"seehuhn.de/go/vmap/arrangement"
	"seehuhn.de/go/vmap/dem"
	"seehuhn.de/go/vmap/scanline"
)

// SetupRasterizerForFace adds the boundary of face f to r, in the grid
// coordinates of g.  The face must be bounded.  Edges with f on both
// sides are left out.  The caller
// must call SortMasters before scanning.
func SetupRasterizerForFace(r *scanline.PolyRasterizer, g *dem.Grid, m *arrangement.Arrangement, f arrangement.FaceID) {
	for _, h := range m.EdgesForFace(f) {
		if m.Face(m.Twin(h)) == f {
			continue
		}
		addEdge(r, g, m, h)
	}
}

// SetupRasterizerForFaceSet adds the boundary of the region covered by
// faces to r.  Edges between two faces of the set are left out.
func SetupRasterizerForFaceSet(r *scanline.PolyRasterizer, g *dem.Grid, m *arrangement.Arrangement, faces arrangement.FaceSet) {
	for _, f := range faces.Sorted() {
		for _, h := range m.EdgesForFace(f) {
			if faces[m.Face(m.Twin(h))] {
				continue
			}
			addEdge(r, g, m, h)
		}
	}
}

// SetupRasterizerForEdges adds the given half-edges to r.
func SetupRasterizerForEdges(r *scanline.PolyRasterizer, g *dem.Grid, m *arrangement.Arrangement, edges arrangement.EdgeSet) {
	for _, h := range edges.Sorted() {
		addEdge(r, g, m, h)
	}
}

func addEdge(r *scanline.PolyRasterizer, g *dem.Grid, m *arrangement.Arrangement, h arrangement.HalfedgeID) {
	p, q := m.SourcePoint(h), m.TargetPoint(h)
	r.AddSegment(g.LonToX(p.X), g.LatToY(p.Y), g.LonToX(q.X), g.LatToY(q.Y))
}

// facePosts calls fn for every run of grid posts inside face f.
func facePosts(g *dem.Grid, m *arrangement.Arrangement, f arrangement.FaceID, fn func(y, x1, x2 int)) {
	var r scanline.PolyRasterizer
	SetupRasterizerForFace(&r, g, m, f)
	r.SortMasters()
	r.Walk(g.Width, g.Height, fn)
}

// faceSamples returns the valid samples of all grid posts inside f.
func faceSamples(g *dem.Grid, m *arrangement.Arrangement, f arrangement.FaceID) []float64 {
	var res []float64
	facePosts(g, m, f, func(y, x1, x2 int) {
		for x := x1; x < x2; x++ {
			if v := g.Get(x, y); v != dem.NoData {
				res = append(res, float64(v))
			}
		}
	})
	return res
}

// ParamAverage returns the mean, minimum and maximum of the grid samples
// inside face f.  If the face covers no grid post with a value, the grid
// is interpolated at the vertices of the outer boundary instead.  All
// results are [dem.NoData] if no value can be found either way.
func ParamAverage(g *dem.Grid, m *arrangement.Arrangement, f arrangement.FaceID) (avg, lo, hi float32) {
	samples := faceSamples(g, m, f)
	if len(samples) == 0 && !m.IsUnbounded(f) {
		for _, p := range m.CCBPoints(m.OuterCCB(f)) {
			if v := g.ValueLinear(p.X, p.Y); v != dem.NoData {
				samples = append(samples, float64(v))
			}
		}
	}
	if len(samples) == 0 {
		return dem.NoData, dem.NoData, dem.NoData
	}
	avg = float32(floats.Sum(samples) / float64(len(samples)))
	return avg, float32(floats.Min(samples)), float32(floats.Max(samples))
}

// ParamHistogram counts how often every value occurs among the grid
// samples inside face f.  If the face covers no grid post with a value,
// the samples nearest to the vertices of the outer boundary are used.
// The second result is the total number of samples counted.
func ParamHistogram(g *dem.Grid, m *arrangement.Arrangement, f arrangement.FaceID) (map[float32]int, int) {
	hist := make(map[float32]int)
	n := 0
	facePosts(g, m, f, func(y, x1, x2 int) {
		for x := x1; x < x2; x++ {
			if v := g.Get(x, y); v != dem.NoData {
				hist[v]++
				n++
			}
		}
	})
	if n == 0 && !m.IsUnbounded(f) {
		for _, p := range m.CCBPoints(m.OuterCCB(f)) {
			if v := g.XYNearest(p.X, p.Y); v != dem.NoData {
				hist[v]++
				n++
			}
		}
	}
	return hist, n
}

// ClipDEMToFaceSet copies the samples of src at all grid posts inside the
// region covered by faces into dst, which must have the same size as src.
// Posts where src has no data keep their value in dst.
// The result is the smallest rectangle of posts containing all copied
// samples, with exclusive upper bounds.  The result is empty if no post
// was copied.
func ClipDEMToFaceSet(dst, src *dem.Grid, m *arrangement.Arrangement, faces arrangement.FaceSet) (x1, y1, x2, y2 int) {
	var r scanline.PolyRasterizer
	SetupRasterizerForFaceSet(&r, src, m, faces)
	r.SortMasters()

	x1, y1 = src.Width, src.Height
	r.Walk(src.Width, src.Height, func(y, xa, xb int) {
		for x := xa; x < xb; x++ {
			v := src.Get(x, y)
			if v == dem.NoData {
				continue
			}
			dst.Set(x, y, v)
			x1 = min(x1, x)
			x2 = max(x2, x+1)
			y1 = min(y1, y)
			y2 = max(y2, y+1)
		}
	})
	if x1 >= x2 {
		return 0, 0, 0, 0
	}
	return x1, y1, x2, y2
}

// RasterizeFace sets all grid posts inside face f to v and returns the
// number of posts changed.
func RasterizeFace(g *dem.Grid, m *arrangement.Arrangement, f arrangement.FaceID, v float32) int {
	n := 0
	facePosts(g, m, f, func(y, x1, x2 int) {
		for x := x1; x < x2; x++ {
			g.Set(x, y, v)
		}
		n += x2 - x1
	})
	return n
}

// FacePath returns the boundary of face f, outer boundary and holes, as a
// path.
func FacePath(m *arrangement.Arrangement, f arrangement.FaceID) *path.Data {
	p := &path.Data{}
	addRing := func(pts []vec.Vec2) {
		if len(pts) < 3 {
			return
		}
		p.MoveTo(pts[0])
		for _, q := range pts[1:] {
			p.LineTo(q)
		}
		p.Close()
	}
	if !m.IsUnbounded(f) {
		addRing(m.CCBPoints(m.OuterCCB(f)))
	}
	for _, h := range m.Holes(f) {
		addRing(m.CCBPoints(h))
	}
	return p
}

// FaceCoverage calls fn for every grid post whose cell is partly covered
// by face f.  The cell of post (x, y) is the square of side one, in grid
// units, centred on the post.  The weight passed to fn is the covered
// fraction of the cell.
func FaceCoverage(g *dem.Grid, m *arrangement.Arrangement, f arrangement.FaceID, fn func(x, y int, w float32)) {
	r := scanline.NewRasteriser(rect.Rect{URx: float64(g.Width), URy: float64(g.Height)})
	r.CTM = g.Transform().Translate(0.5, 0.5)
	r.FillEvenOdd(FacePath(m, f), func(y, xMin int, coverage []float32) {
		for i, w := range coverage {
			if w > 0 {
				fn(xMin+i, y, w)
			}
		}
	})
}

// ParamWeightedAverage returns the average of the grid samples under face
// f, weighted by the covered fraction of every post cell.  The result is
// [dem.NoData] if no covered post has a value.
func ParamWeightedAverage(g *dem.Grid, m *arrangement.Arrangement, f arrangement.FaceID) float32 {
	var sum, weight float64
	FaceCoverage(g, m, f, func(x, y int, w float32) {
		v := g.Get(x, y)
		if v == dem.NoData {
			return
		}
		sum += float64(v) * float64(w)
		weight += float64(w)
	})
	if weight == 0 {
		return dem.NoData
	}
	return float32(sum / weight)
}
