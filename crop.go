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
	"fmt"

	"seehuhn.de/go/geom/vec"
	"seehuhn.de/go/vmap/arrangement"
	"seehuhn.de/go/vmap/kernel"
)

// CropOptions controls the cut operations.
type CropOptions struct {
	// KeepOutside selects which side of the polygon survives.  By default
	// everything outside the polygon is removed.
	KeepOutside bool

	// Progress, if set, receives progress reports.
	Progress ProgressFunc
}

// Crop cuts m along the boundary of a simple polygon and removes all
// edges on one side of it.  The polygon boundary itself is kept.
//
// The side of an edge is decided by the faces next to it: the faces
// inside the polygon are those enclosed by the edges of the inserted
// boundary.
//
// The ring must not repeat its first point at the end.  It may have
// either orientation.
func Crop(m *arrangement.Arrangement, ring []vec.Vec2, opt CropOptions) error {
	if !kernel.IsSimple(ring) {
		return ErrNonSimple
	}
	ring = kernel.CCW(ring)
	log := Logger()

	n := len(ring)
	boundary := make(arrangement.EdgeSet)
	for i := range n {
		opt.Progress.report(0, 2, "Cutting map...", float64(i)/float64(n))
		ev, err := m.InsertSegment(ring[i], ring[(i+1)%n])
		if err != nil {
			return err
		}
		boundary.Track(m, ev)
	}
	opt.Progress.report(0, 2, "Cutting map...", 1)

	// the boundary must enclose a region without leaks
	interior := m.FacesForEdgeSet(boundary)
	if interior[m.Unbounded()] {
		panic("vmap: cut boundary does not enclose a region")
	}
	inner := make(arrangement.EdgeSet)
	for _, f := range interior.Sorted() {
		for _, h := range m.EdgesForFace(f) {
			inner[h] = true
		}
	}
	for h := range boundary {
		if !inner[h] {
			panic("vmap: cut boundary edge outside the enclosed region")
		}
	}

	// Vertices on the cut are classified by the topology.  Their rounded
	// coordinates may lie on either side of the ring.
	onCut := make(map[arrangement.VertexID]bool)
	for h := range boundary {
		onCut[m.Source(h)] = true
		onCut[m.Target(h)] = true
	}
	side := func(v arrangement.VertexID) kernel.Side {
		if onCut[v] {
			return kernel.OnBoundary
		}
		return kernel.BoundedSide(ring, m.Point(v))
	}

	var kill []arrangement.HalfedgeID
	total := m.NumEdges()
	i := 0
	for h := range m.Edges() {
		if i%progressStep == 0 {
			opt.Progress.report(1, 2, "Removing edges...", float64(i)/float64(total))
		}
		i++

		sp, sq := side(m.Source(h)), side(m.Target(h))
		if sp != kernel.OnBoundary && sq != kernel.OnBoundary && sp != sq {
			return fmt.Errorf("%w: %v -> %v", ErrSpanningEdge, m.SourcePoint(h), m.TargetPoint(h))
		}

		if boundary[h] || boundary[m.Twin(h)] {
			continue
		}
		inside := interior[m.Face(h)]
		if inside != interior[m.Face(m.Twin(h))] {
			panic("vmap: edge separates the cut region but is not on the cut")
		}
		if inside == opt.KeepOutside {
			kill = append(kill, h)
		}
	}
	for _, h := range kill {
		m.RemoveEdge(h)
	}
	opt.Progress.report(1, 2, "Removing edges...", 1)

	log.Debug("crop",
		"points", n,
		"boundary", len(boundary),
		"removed", len(kill),
		"keepOutside", opt.KeepOutside)
	return nil
}

// CropRect crops m to the rectangle with the given bounds.
func CropRect(m *arrangement.Arrangement, west, south, east, north float64, opt CropOptions) error {
	ring := []vec.Vec2{
		{X: west, Y: south},
		{X: east, Y: south},
		{X: east, Y: north},
		{X: west, Y: north},
	}
	return Crop(m, ring, opt)
}

// CropComplement splits m along the polygon.  Afterwards, m holds the part
// outside the polygon and the returned map holds the part inside.
func CropComplement(m *arrangement.Arrangement, ring []vec.Vec2, progress ProgressFunc) (*arrangement.Arrangement, error) {
	if !kernel.IsSimple(ring) {
		return nil, ErrNonSimple
	}
	inside := m.Clone()
	if err := Crop(inside, ring, CropOptions{Progress: progress}); err != nil {
		return nil, err
	}
	if err := Crop(m, ring, CropOptions{KeepOutside: true, Progress: progress}); err != nil {
		return nil, err
	}
	return inside, nil
}

// CropSwap splits m along the polygon by exchanging the polygon interior
// with an empty region.  Afterwards, m holds the part outside the polygon
// together with a single empty face inside the polygon, and the returned
// map holds the part inside.
//
// Unlike [CropComplement], no edges are deleted or copied and all handles
// of entities outside the polygon remain valid.
func CropSwap(m *arrangement.Arrangement, ring []vec.Vec2) (*arrangement.Arrangement, error) {
	if !kernel.IsSimple(ring) {
		return nil, ErrNonSimple
	}
	ring = kernel.CCW(ring)

	n := len(ring)
	var fragments []arrangement.HalfedgeID
	for i := range n {
		ev, err := m.InsertSegment(ring[i], ring[(i+1)%n])
		if err != nil {
			return nil, err
		}
		fragments = append(fragments, arrangement.Fragments(ev)...)
	}

	pts := make([]vec.Vec2, len(fragments))
	for i, h := range fragments {
		pts[i] = m.TargetPoint(h)
	}
	cutout := arrangement.New()
	inner := cutout.InsertRing(pts)
	if err := SwapMaps(m, cutout, fragments, inner); err != nil {
		return nil, err
	}
	return cutout, nil
}

// RemoveAntennas deletes all edges which have face f on both sides.
func RemoveAntennas(m *arrangement.Arrangement, f arrangement.FaceID) int {
	var kill []arrangement.HalfedgeID
	for _, h := range m.EdgesForFace(f) {
		if m.IsDominant(h) && m.Face(m.Twin(h)) == f {
			kill = append(kill, h)
		}
	}
	for _, h := range kill {
		m.RemoveEdge(h)
	}
	return len(kill)
}
