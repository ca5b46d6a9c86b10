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
	"errors"
	"image"
	"image/color"
	"io"
	"math"

	"golang.org/x/image/tiff"
	"seehuhn.de/go/geom/rect"
)

// Encoding describes how samples are stored as 16 bit grey values.
// The stored value 0 is reserved for NoData; any other stored value s
// represents the sample Offset + Scale*(s-1).
type Encoding struct {
	Offset float64
	Scale  float64
}

// DefaultEncoding covers elevations from -1000m to about 64500m in steps
// of one metre.
var DefaultEncoding = Encoding{Offset: -1000, Scale: 1}

var errEmptyGrid = errors.New("dem: empty grid")

// WriteTIFF writes g as a 16 bit greyscale TIFF image with the northern
// row at the top.
func WriteTIFF(w io.Writer, g *Grid, enc Encoding) error {
	if g.Width <= 0 || g.Height <= 0 {
		return errEmptyGrid
	}
	img := image.NewGray16(image.Rect(0, 0, g.Width, g.Height))
	for y := range g.Height {
		row := g.Height - 1 - y
		for x := range g.Width {
			img.SetGray16(x, row, color.Gray16{Y: enc.encode(g.Data[y*g.Width+x])})
		}
	}
	return tiff.Encode(w, img, &tiff.Options{Compression: tiff.Deflate, Predictor: true})
}

// ReadTIFF reads a greyscale TIFF image written by [WriteTIFF].
// Images with other color models are converted to 16 bit grey first.
func ReadTIFF(r io.Reader, bounds rect.Rect, enc Encoding) (*Grid, error) {
	img, err := tiff.Decode(r)
	if err != nil {
		return nil, err
	}
	b := img.Bounds()
	g := New(b.Dx(), b.Dy(), bounds)
	for row := b.Min.Y; row < b.Max.Y; row++ {
		y := b.Max.Y - 1 - row
		for col := b.Min.X; col < b.Max.X; col++ {
			c := color.Gray16Model.Convert(img.At(col, row)).(color.Gray16)
			g.Data[y*g.Width+(col-b.Min.X)] = enc.decode(c.Y)
		}
	}
	return g, nil
}

func (enc Encoding) encode(v float32) uint16 {
	if v == NoData {
		return 0
	}
	s := math.Round((float64(v)-enc.Offset)/enc.Scale) + 1
	return uint16(min(max(s, 1), math.MaxUint16))
}

func (enc Encoding) decode(s uint16) float32 {
	if s == 0 {
		return NoData
	}
	return float32(enc.Offset + enc.Scale*float64(s-1))
}
