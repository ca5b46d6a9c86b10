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

// Package scanline converts polygons into runs of grid cells.
//
// [PolyRasterizer] enumerates, row by row, the integer positions inside a
// set of polygon edges.  This is the form needed for sampling regular
// grids such as DEMs.  [Rasteriser] computes anti-aliased area coverage
// for every cell touched by a path.
package scanline

import (
	"cmp"
	"math"
	"slices"
)

// FillRule selects how overlapping polygon parts are treated.
type FillRule int

// These are the supported fill rules.
const (
	EvenOdd FillRule = iota
	NonZero
)

// Segment is one polygon edge, stored with Y1 < Y2.
type Segment struct {
	X1, Y1 float64
	X2, Y2 float64

	// Dir is +1 if the edge was added pointing upwards (towards larger y)
	// and -1 otherwise.
	Dir int
}

func (s *Segment) xAt(y float64) float64 {
	return s.X1 + (y-s.Y1)*(s.X2-s.X1)/(s.Y2-s.Y1)
}

type crossing struct {
	x   float64
	dir int
}

// PolyRasterizer enumerates the integer points inside a polygon.
//
// Usage: add all edges with AddSegment, call SortMasters, then call
// StartScanline for the first row and AdvanceScanline for each following
// row.  After each of these calls, GetRange returns the runs of the
// current row.
//
// A segment takes part in row y if Y1 <= y < Y2.  A run [x1, x2) in row y
// contains all integers x with xa <= x < xb, where xa and xb are
// consecutive crossings of the row with the active segments.
type PolyRasterizer struct {
	Rule    FillRule
	Masters []Segment

	actives   []int
	crossings []crossing
	next      int
	y         int
	pos       int
	winding   int
}

// AddSegment adds a polygon edge.  Horizontal edges are ignored.
func (r *PolyRasterizer) AddSegment(x1, y1, x2, y2 float64) {
	switch {
	case y1 < y2:
		r.Masters = append(r.Masters, Segment{X1: x1, Y1: y1, X2: x2, Y2: y2, Dir: 1})
	case y1 > y2:
		r.Masters = append(r.Masters, Segment{X1: x2, Y1: y2, X2: x1, Y2: y1, Dir: -1})
	}
}

// SortMasters orders the segments by their lower end.  It must be called
// after the last AddSegment and before the first StartScanline.
func (r *PolyRasterizer) SortMasters() {
	slices.SortStableFunc(r.Masters, func(a, b Segment) int {
		if c := cmp.Compare(a.Y1, b.Y1); c != 0 {
			return c
		}
		return cmp.Compare(a.X1, b.X1)
	})
}

// FirstRow returns the lowest row touched by any segment, or 0 if there
// are no segments.
func (r *PolyRasterizer) FirstRow() int {
	if len(r.Masters) == 0 {
		return 0
	}
	return int(math.Floor(r.Masters[0].Y1))
}

// Reset removes all segments.
func (r *PolyRasterizer) Reset() {
	r.Masters = r.Masters[:0]
	r.actives = r.actives[:0]
	r.crossings = r.crossings[:0]
	r.next = 0
	r.pos = 0
}

// StartScanline begins a new pass over the polygon at row y.
func (r *PolyRasterizer) StartScanline(y int) {
	r.actives = r.actives[:0]
	r.next = 0
	r.AdvanceScanline(y)
}

// AdvanceScanline moves to row y, which must not be below the current
// row.
func (r *PolyRasterizer) AdvanceScanline(y int) {
	r.y = y
	yf := float64(y)

	// drop finished segments
	kept := r.actives[:0]
	for _, i := range r.actives {
		if r.Masters[i].Y2 > yf {
			kept = append(kept, i)
		}
	}
	r.actives = kept

	for r.next < len(r.Masters) && r.Masters[r.next].Y1 <= yf {
		if r.Masters[r.next].Y2 > yf {
			r.actives = append(r.actives, r.next)
		}
		r.next++
	}

	r.crossings = r.crossings[:0]
	for _, i := range r.actives {
		s := &r.Masters[i]
		r.crossings = append(r.crossings, crossing{x: s.xAt(yf), dir: s.Dir})
	}
	slices.SortFunc(r.crossings, func(a, b crossing) int {
		return cmp.Compare(a.x, b.x)
	})
	r.pos = 0
	r.winding = 0
}

// GetRange returns the next non-empty run [x1, x2) of the current row.
// The last result is false when the row has no more runs.
func (r *PolyRasterizer) GetRange() (x1, x2 int, ok bool) {
	for r.pos+1 < len(r.crossings) {
		var xa, xb float64
		if r.Rule == NonZero {
			// skip to the start of a region with non-zero winding
			for r.pos < len(r.crossings) && r.winding == 0 {
				r.winding += r.crossings[r.pos].dir
				r.pos++
			}
			if r.pos >= len(r.crossings) {
				return 0, 0, false
			}
			xa = r.crossings[r.pos-1].x
			for r.pos < len(r.crossings) && r.winding != 0 {
				r.winding += r.crossings[r.pos].dir
				r.pos++
			}
			xb = r.crossings[r.pos-1].x
		} else {
			xa = r.crossings[r.pos].x
			xb = r.crossings[r.pos+1].x
			r.pos += 2
		}
		x1 = int(math.Ceil(xa))
		x2 = int(math.Ceil(xb))
		if x1 < x2 {
			return x1, x2, true
		}
	}
	return 0, 0, false
}

// DoneScan reports whether no segment is active and no segment is left
// to become active.
func (r *PolyRasterizer) DoneScan() bool {
	return len(r.actives) == 0 && r.next >= len(r.Masters)
}

// Walk calls fn for every run of every row in [0, height), with the run
// clipped to [0, width).  SortMasters must have been called.
func (r *PolyRasterizer) Walk(width, height int, fn func(y, x1, x2 int)) {
	y := max(r.FirstRow(), 0)
	r.StartScanline(y)
	for !r.DoneScan() && y < height {
		for {
			x1, x2, ok := r.GetRange()
			if !ok {
				break
			}
			x1 = max(x1, 0)
			x2 = min(x2, width)
			if x1 < x2 {
				fn(y, x1, x2)
			}
		}
		y++
		r.AdvanceScanline(y)
	}
}
