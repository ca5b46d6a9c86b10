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

// Package dem implements regular grids of elevation and parameter
// samples over a geographic rectangle.
//
// Samples are posts: the sample (0, 0) sits exactly on the south-west
// corner of the grid bounds and the sample (Width-1, Height-1) sits on the
// north-east corner.  Row 0 is the southern-most row.
package dem

import (
	"math"
	"slices"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/rect"
)

// NoData marks samples without a value.
const NoData float32 = -32768.0

// Grid is a DEM.
type Grid struct {
	Width, Height int

	// Bounds gives the geographic extent: LLx is the western longitude,
	// LLy the southern latitude, URx the eastern longitude and URy the
	// northern latitude.
	Bounds rect.Rect

	// Data holds the samples in row-major order, starting with the
	// southern-most row.
	Data []float32
}

// New allocates a grid where all samples are set to NoData.
func New(width, height int, bounds rect.Rect) *Grid {
	g := &Grid{
		Width:  width,
		Height: height,
		Bounds: bounds,
		Data:   make([]float32, width*height),
	}
	g.Fill(NoData)
	return g
}

// Fill sets all samples to v.
func (g *Grid) Fill(v float32) {
	for i := range g.Data {
		g.Data[i] = v
	}
}

// Clone returns a copy of g.
func (g *Grid) Clone() *Grid {
	c := *g
	c.Data = slices.Clone(g.Data)
	return &c
}

// Get returns the sample at (x, y), or NoData if the position lies outside
// the grid.
func (g *Grid) Get(x, y int) float32 {
	if x < 0 || y < 0 || x >= g.Width || y >= g.Height {
		return NoData
	}
	return g.Data[y*g.Width+x]
}

// Set changes the sample at (x, y).  Positions outside the grid are
// ignored.
func (g *Grid) Set(x, y int, v float32) {
	if x < 0 || y < 0 || x >= g.Width || y >= g.Height {
		return
	}
	g.Data[y*g.Width+x] = v
}

// LonToX converts a longitude into a fractional column index.
func (g *Grid) LonToX(lon float64) float64 {
	return (lon - g.Bounds.LLx) * float64(g.Width-1) / (g.Bounds.URx - g.Bounds.LLx)
}

// LatToY converts a latitude into a fractional row index.
func (g *Grid) LatToY(lat float64) float64 {
	return (lat - g.Bounds.LLy) * float64(g.Height-1) / (g.Bounds.URy - g.Bounds.LLy)
}

// XToLon converts a column index into a longitude.
func (g *Grid) XToLon(x float64) float64 {
	return g.Bounds.LLx + x*(g.Bounds.URx-g.Bounds.LLx)/float64(g.Width-1)
}

// YToLat converts a row index into a latitude.
func (g *Grid) YToLat(y float64) float64 {
	return g.Bounds.LLy + y*(g.Bounds.URy-g.Bounds.LLy)/float64(g.Height-1)
}

// Transform returns the affine map from geographic coordinates to grid
// coordinates.
func (g *Grid) Transform() matrix.Matrix {
	sx := float64(g.Width-1) / (g.Bounds.URx - g.Bounds.LLx)
	sy := float64(g.Height-1) / (g.Bounds.URy - g.Bounds.LLy)
	return matrix.Matrix{sx, 0, 0, sy, -g.Bounds.LLx * sx, -g.Bounds.LLy * sy}
}

// XYNearest returns the sample closest to the given location.
func (g *Grid) XYNearest(lon, lat float64) float32 {
	x := int(math.Round(g.LonToX(lon)))
	y := int(math.Round(g.LatToY(lat)))
	return g.Get(x, y)
}

// ValueLinear interpolates bilinearly between the four samples around the
// given location.  Samples with NoData are left out and the weights of the
// remaining samples are renormalised.  The result is NoData if no sample
// around the location has a value.
func (g *Grid) ValueLinear(lon, lat float64) float32 {
	fx := g.LonToX(lon)
	fy := g.LatToY(lat)
	x0 := int(math.Floor(fx))
	y0 := int(math.Floor(fy))
	dx := fx - float64(x0)
	dy := fy - float64(y0)

	var sum, weight float64
	for _, c := range [4]struct {
		x, y int
		w    float64
	}{
		{x0, y0, (1 - dx) * (1 - dy)},
		{x0 + 1, y0, dx * (1 - dy)},
		{x0, y0 + 1, (1 - dx) * dy},
		{x0 + 1, y0 + 1, dx * dy},
	} {
		if c.w <= 0 {
			continue
		}
		v := g.Get(c.x, c.y)
		if v == NoData {
			continue
		}
		sum += float64(v) * c.w
		weight += c.w
	}
	if weight == 0 {
		return NoData
	}
	return float32(sum / weight)
}

// Downsample returns a grid which is smaller by the given integer factor.
// Every output sample is the average of the valid input samples in a
// ratio x ratio block.  The output keeps the geographic bounds.
func (g *Grid) Downsample(ratio int) *Grid {
	if ratio <= 1 {
		return g.Clone()
	}
	w := (g.Width-1)/ratio + 1
	h := (g.Height-1)/ratio + 1
	res := New(w, h, g.Bounds)
	for y := range h {
		for x := range w {
			var sum float64
			n := 0
			for yy := y * ratio; yy < (y+1)*ratio && yy < g.Height; yy++ {
				for xx := x * ratio; xx < (x+1)*ratio && xx < g.Width; xx++ {
					if v := g.Data[yy*g.Width+xx]; v != NoData {
						sum += float64(v)
						n++
					}
				}
			}
			if n > 0 {
				res.Data[y*w+x] = float32(sum / float64(n))
			}
		}
	}
	return res
}

// Spread fills NoData samples from their neighbourhood.  In every pass,
// each empty sample which has a valid neighbour in one of the eight
// directions, at distance up to the pass number, is set to the average
// of the closest such neighbours.  Spreading stops when the grid is full
// or after maxDist passes.
func (g *Grid) Spread(maxDist int) {
	dirs := [8][2]int{{1, 0}, {-1, 0}, {0, 1}, {0, -1}, {1, 1}, {-1, -1}, {1, -1}, {-1, 1}}
	next := slices.Clone(g.Data)
	for dist := 1; dist <= maxDist; dist++ {
		empty := false
		for y := range g.Height {
			for x := range g.Width {
				if g.Data[y*g.Width+x] != NoData {
					continue
				}
				empty = true
				var sum float64
				n := 0
				for d := 1; d <= dist && n == 0; d++ {
					for _, dir := range dirs {
						if v := g.Get(x+d*dir[0], y+d*dir[1]); v != NoData {
							sum += float64(v)
							n++
						}
					}
				}
				if n > 0 {
					next[y*g.Width+x] = float32(sum / float64(n))
				}
			}
		}
		copy(g.Data, next)
		if !empty {
			return
		}
	}
}
