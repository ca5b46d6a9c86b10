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

// Package mapview draws maps into PDF files, for debugging.
//
// Faces are filled with a grey level chosen by their terrain, edges are
// stroked in black, and edges carrying road segments are drawn thicker.
package mapview

import (
	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/pdf"
	"seehuhn.de/go/pdf/document"
	"seehuhn.de/go/pdf/graphics"
	"seehuhn.de/go/pdf/graphics/color"
	"seehuhn.de/go/vmap"
	"seehuhn.de/go/vmap/arrangement"
)

// Options controls the appearance of a plot.
type Options struct {
	// Width is the page width in PDF points.  The page height follows
	// from the aspect ratio of the map.
	Width float64

	// Margin is the space around the map, in PDF points.
	Margin float64

	// LineWidth is the width of plain edges, in PDF points.  Road edges
	// are drawn three times as wide.
	LineWidth float64
}

var defaultOptions = Options{
	Width:     400,
	Margin:    10,
	LineWidth: 0.5,
}

// Layout computes the page size and the map-to-page transformation for a
// map with the given bounding box.
func Layout(box rect.Rect, width, margin float64) (*pdf.Rectangle, matrix.Matrix) {
	dx := box.URx - box.LLx
	dy := box.URy - box.LLy
	inner := width - 2*margin
	if dx <= 0 && dy <= 0 {
		paper := &pdf.Rectangle{URx: width, URy: width}
		return paper, matrix.Matrix{1, 0, 0, 1, width/2 - box.LLx, width/2 - box.LLy}
	}
	s := inner / max(dx, dy)
	paper := &pdf.Rectangle{
		URx: dx*s + 2*margin,
		URy: dy*s + 2*margin,
	}
	M := matrix.Matrix{s, 0, 0, s, margin - box.LLx*s, margin - box.LLy*s}
	return paper, M
}

// TerrainGray returns the grey level used for faces with terrain t.
// Natural terrain is white.
func TerrainGray(t arrangement.Terrain) float64 {
	if t == arrangement.TerrainNatural {
		return 1
	}
	k := int(t) % 6
	if k < 0 {
		k += 6
	}
	return 0.85 - 0.1*float64(k)
}

// WritePDF writes a plot of m to a single-page PDF file.  If opt is nil,
// default options are used.
func WritePDF(fname string, m *arrangement.Arrangement, opt *Options) error {
	if opt == nil {
		opt = &defaultOptions
	}

	paper, M := Layout(m.BoundingBox(), opt.Width, opt.Margin)
	page, err := document.CreateSinglePage(fname, paper, pdf.V1_7, nil)
	if err != nil {
		return err
	}
	scale := M[0]
	page.Transform(M)

	for f := range m.Faces() {
		if m.IsUnbounded(f) {
			continue
		}
		page.SetFillColor(color.DeviceGray(TerrainGray(m.FaceData(f).Terrain)))
		for cmd, pts := range vmap.FacePath(m, f).Iter() {
			switch cmd {
			case path.CmdMoveTo:
				page.MoveTo(pts[0].X, pts[0].Y)
			case path.CmdLineTo:
				page.LineTo(pts[0].X, pts[0].Y)
			case path.CmdClose:
				page.ClosePath()
			}
		}
		page.FillEvenOdd()
	}

	page.SetStrokeColor(color.DeviceGray(0))
	page.SetLineCap(graphics.LineCapRound)
	page.SetLineJoin(graphics.LineJoinRound)
	for _, road := range []bool{false, true} {
		w := opt.LineWidth
		if road {
			w *= 3
		}
		page.SetLineWidth(w / scale)
		n := 0
		for h := range m.Edges() {
			if (len(m.EdgeData(h).Segments) > 0) != road {
				continue
			}
			p, q := m.SourcePoint(h), m.TargetPoint(h)
			page.MoveTo(p.X, p.Y)
			page.LineTo(q.X, q.Y)
			n++
		}
		if n > 0 {
			page.Stroke()
		}
	}

	return page.Close()
}
