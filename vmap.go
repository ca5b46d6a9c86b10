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

// Package vmap implements map algebra on planar subdivisions, as needed
// for building scenery from vector data.
//
// Maps are [arrangement.Arrangement] values.  The operations in this
// package cut maps along polygons ([Crop], [CropRect], [CropSwap]),
// make two maps share vertices where they touch ([TopoIntegrate]),
// overlay one map onto another ([Merge]), exchange regions between maps
// ([SwapMaps], [SwapFace]), and sample DEM grids over map faces
// ([ParamAverage], [ParamHistogram], [ClipDEMToFaceSet] and friends).
package vmap

import (
	"errors"
)

var (
	// ErrNonSimple is returned when a cut polygon is not simple.
	ErrNonSimple = errors.New("vmap: boundary ring is not simple")

	// ErrBoundaryMismatch is returned by the swap operations when the two
	// boundaries do not describe the same ring.
	ErrBoundaryMismatch = errors.New("vmap: boundaries do not match")

	// ErrSpanningEdge is returned by the cut operations when an edge runs
	// from inside the cut polygon to the outside.  This indicates that the
	// boundary was not fully inserted into the map.
	ErrSpanningEdge = errors.New("vmap: edge spans the cut boundary")
)

// ProgressFunc receives progress reports from long running operations.
// Phase counts from 0 to phases-1, and frac runs from 0 to 1 within each
// phase.
type ProgressFunc func(phase, phases int, msg string, frac float64)

func (p ProgressFunc) report(phase, phases int, msg string, frac float64) {
	if p != nil {
		p(phase, phases, msg, frac)
	}
}

// progressStep limits how often progress is reported inside loops.
const progressStep = 1000
