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
	"cmp"
	"math"
	"slices"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"
)

// edge is a line segment in device coordinates, stored with y0 < y1.
type edge struct {
	x0, y0 float64
	x1, y1 float64
	dxdy   float64 // (x1-x0)/(y1-y0)
	dir    float32 // +1 if the edge points towards larger y
}

// Rasteriser computes the exact area coverage of a path for every pixel
// of a region.  Pixel (x, y) is the unit square [x, x+1) x [y, y+1) in
// device coordinates.
//
// A Rasteriser can be reused for many paths.  Its buffers grow as
// needed, but never shrink.
type Rasteriser struct {
	// CTM maps path coordinates to device coordinates.
	CTM matrix.Matrix

	// Clip is the output region in device coordinates.  The coordinates
	// must be integers.
	Clip rect.Rect

	// Flatness is the tolerance for approximating curves by straight
	// segments, in device pixels.
	Flatness float64

	cover     []float32 // change of winding per pixel
	area      []float32 // partial coverage inside the pixel
	edges     []edge
	active    []int
	crossings []float64

	bboxFirst        bool
	devXMin, devXMax float64
	devYMin, devYMax float64
	rowLo, rowHi     int
}

// NewRasteriser creates a Rasteriser for the given clip rectangle.
func NewRasteriser(clip rect.Rect) *Rasteriser {
	r := &Rasteriser{}
	r.Reset(clip)
	return r
}

// Reset restores the default settings, keeping the buffers.
func (r *Rasteriser) Reset(clip rect.Rect) {
	r.CTM = matrix.Identity
	r.Clip = clip
	r.Flatness = defaultFlatness
	r.edges = r.edges[:0]
	r.active = r.active[:0]
}

// FillNonZero rasterises p with the nonzero winding rule.
// Coverage values are delivered row by row; the slice passed to emit is
// only valid during the call.
func (r *Rasteriser) FillNonZero(p *path.Data, emit func(y, xMin int, coverage []float32)) {
	r.Fill(p, NonZero, emit)
}

// FillEvenOdd rasterises p with the even-odd rule.
func (r *Rasteriser) FillEvenOdd(p *path.Data, emit func(y, xMin int, coverage []float32)) {
	r.Fill(p, EvenOdd, emit)
}

// Fill rasterises p with the given fill rule.
func (r *Rasteriser) Fill(p *path.Data, rule FillRule, emit func(y, xMin int, coverage []float32)) {
	if !r.collect(p) {
		return
	}

	xMin := max(int(math.Floor(r.devXMin)), int(r.Clip.LLx))
	xMax := min(int(math.Floor(r.devXMax))+1, int(r.Clip.URx))
	yMin := max(int(math.Floor(r.devYMin)), int(r.Clip.LLy))
	yMax := min(int(math.Floor(r.devYMax))+1, int(r.Clip.URy))
	if xMin >= xMax || yMin >= yMax {
		return
	}
	width := xMax - xMin
	r.cover = slices.Grow(r.cover[:0], width)[:width]
	r.area = slices.Grow(r.area[:0], width)[:width]

	slices.SortFunc(r.edges, func(a, b edge) int {
		return cmp.Compare(a.y0, b.y0)
	})

	r.active = r.active[:0]
	next := 0
	for y := yMin; y < yMax; y++ {
		top := float64(y)
		for next < len(r.edges) && r.edges[next].y0 < top+1 {
			r.active = append(r.active, next)
			next++
		}
		kept := r.active[:0]
		for _, i := range r.active {
			if r.edges[i].y1 > top {
				kept = append(kept, i)
			}
		}
		r.active = kept
		if len(r.active) == 0 {
			continue
		}

		clear(r.cover)
		clear(r.area)
		r.rowLo, r.rowHi = width, -1
		for _, i := range r.active {
			r.accumulate(&r.edges[i], y, xMin, xMax)
		}
		if r.rowHi < 0 {
			continue
		}

		integrate(r.cover, r.area, rule)
		if row, offset := trimZeros(r.cover); row != nil {
			emit(y, xMin+offset, row)
		}
	}
}

// collect transforms the path into the edge list and records its
// bounding box in device space.
func (r *Rasteriser) collect(p *path.Data) bool {
	r.edges = r.edges[:0]
	r.bboxFirst = true

	var cur, start vec.Vec2
	k := 0
	for _, cmd := range p.Cmds {
		switch cmd {
		case path.CmdMoveTo:
			cur = p.Coords[k]
			start = cur
			k++
		case path.CmdLineTo:
			r.addEdge(cur, p.Coords[k])
			cur = p.Coords[k]
			k++
		case path.CmdQuadTo:
			r.flatten([]vec.Vec2{cur, p.Coords[k], p.Coords[k+1]})
			cur = p.Coords[k+1]
			k += 2
		case path.CmdCubeTo:
			r.flatten([]vec.Vec2{cur, p.Coords[k], p.Coords[k+1], p.Coords[k+2]})
			cur = p.Coords[k+2]
			k += 3
		case path.CmdClose:
			if cur != start {
				r.addEdge(cur, start)
			}
			cur = start
		}
	}
	return len(r.edges) > 0
}

// flatten approximates a Bézier curve with the given control points by
// line segments.
func (r *Rasteriser) flatten(ctrl []vec.Vec2) {
	// the deviation from the chord is bounded by the second differences
	// of the control polygon
	var dev float64
	for i := 2; i < len(ctrl); i++ {
		d := ctrl[i].Sub(ctrl[i-1].Mul(2)).Add(ctrl[i-2])
		d = vec.Vec2{X: r.CTM[0]*d.X + r.CTM[2]*d.Y, Y: r.CTM[1]*d.X + r.CTM[3]*d.Y}
		dev = max(dev, d.Length())
	}
	n := 1
	if dev > r.Flatness {
		n = int(math.Ceil(math.Sqrt(float64(len(ctrl)-1) * dev / (4 * r.Flatness))))
	}

	work := make([]vec.Vec2, len(ctrl))
	prev := ctrl[0]
	for i := 1; i <= n; i++ {
		t := float64(i) / float64(n)
		copy(work, ctrl)
		for m := len(work) - 1; m > 0; m-- {
			for j := range m {
				work[j] = work[j].Mul(1 - t).Add(work[j+1].Mul(t))
			}
		}
		r.addEdge(prev, work[0])
		prev = work[0]
	}
}

func (r *Rasteriser) addEdge(p0, p1 vec.Vec2) {
	x0 := r.CTM[0]*p0.X + r.CTM[2]*p0.Y + r.CTM[4]
	y0 := r.CTM[1]*p0.X + r.CTM[3]*p0.Y + r.CTM[5]
	x1 := r.CTM[0]*p1.X + r.CTM[2]*p1.Y + r.CTM[4]
	y1 := r.CTM[1]*p1.X + r.CTM[3]*p1.Y + r.CTM[5]

	if math.Abs(y1-y0) < horizontalEdgeThreshold {
		return
	}
	dir := float32(1)
	if y1 < y0 {
		x0, y0, x1, y1 = x1, y1, x0, y0
		dir = -1
	}
	r.edges = append(r.edges, edge{
		x0: x0, y0: y0, x1: x1, y1: y1,
		dxdy: (x1 - x0) / (y1 - y0),
		dir:  dir,
	})

	if r.bboxFirst {
		r.devXMin, r.devXMax = min(x0, x1), max(x0, x1)
		r.devYMin, r.devYMax = y0, y1
		r.bboxFirst = false
	} else {
		r.devXMin = min(r.devXMin, x0, x1)
		r.devXMax = max(r.devXMax, x0, x1)
		r.devYMin = min(r.devYMin, y0)
		r.devYMax = max(r.devYMax, y1)
	}
}

// accumulate adds the part of e inside row y to the cover and area
// buffers.  Index 0 of the buffers corresponds to column xMin; parts of
// the edge left of xMin are folded into column xMin.
func (r *Rasteriser) accumulate(e *edge, y, xMin, xMax int) {
	top := max(float64(y), e.y0)
	bot := min(float64(y+1), e.y1)
	if bot <= top {
		return
	}

	xTop := e.x0 + e.dxdy*(top-e.y0)
	xBot := e.x0 + e.dxdy*(bot-e.y0)
	left, right := min(xTop, xBot), max(xTop, xBot)
	colLeft := int(math.Floor(left))
	colRight := int(math.Floor(right))

	if colLeft >= xMax {
		return
	}

	// split the edge where it crosses column boundaries
	r.crossings = append(r.crossings[:0], top, bot)
	for x := colLeft + 1; x <= colRight; x++ {
		yy := e.y0 + (float64(x)-e.x0)/e.dxdy
		if yy > top && yy < bot {
			r.crossings = append(r.crossings, yy)
		}
	}
	slices.Sort(r.crossings)

	for i := 1; i < len(r.crossings); i++ {
		a, b := r.crossings[i-1], r.crossings[i]
		if b <= a {
			continue
		}
		c := e.dir * float32(b-a)
		xm := e.x0 + e.dxdy*((a+b)/2-e.y0)
		col := int(math.Floor(xm))
		switch {
		case col < xMin:
			r.cover[0] += c
			r.area[0] += c
			r.touch(0)
		case col < xMax:
			idx := col - xMin
			r.cover[idx] += c
			r.area[idx] += c * float32(1-(xm-float64(col)))
			r.touch(idx)
		}
	}
}

func (r *Rasteriser) touch(idx int) {
	r.rowLo = min(r.rowLo, idx)
	r.rowHi = max(r.rowHi, idx)
}

// integrate turns the accumulated cover and area values of one row into
// coverage values, in place.
func integrate(cover, area []float32, rule FillRule) {
	var acc float32
	for i := range cover {
		raw := acc + area[i]
		acc += cover[i]
		if raw < 0 {
			raw = -raw
		}
		if rule == NonZero {
			cover[i] = min(raw, 1)
			continue
		}
		m := raw - 2*float32(math.Floor(float64(raw/2)))
		if m > 1 {
			m = 2 - m
		}
		cover[i] = m
	}
}

// trimZeros returns the part of the row between the first and the last
// non-zero value.
func trimZeros(row []float32) ([]float32, int) {
	lo := 0
	for lo < len(row) && row[lo] == 0 {
		lo++
	}
	if lo == len(row) {
		return nil, 0
	}
	hi := len(row)
	for row[hi-1] == 0 {
		hi--
	}
	return row[lo:hi], lo
}

const (
	defaultFlatness = 0.25

	// edges with a smaller vertical extent do not contribute coverage
	horizontalEdgeThreshold = 1e-10
)
