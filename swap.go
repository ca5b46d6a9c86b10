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
	"errors"
	"fmt"

	"seehuhn.de/go/vmap/arrangement"
)

// SwapMaps exchanges the interiors of two maps.  ringA and ringB must trace
// the same closed curve, with the i-th half-edges connecting the same
// points and with the region to swap on their left.
func SwapMaps(a, b *arrangement.Arrangement, ringA, ringB []arrangement.HalfedgeID) error {
	err := arrangement.SwapInteriors(a, b, ringA, ringB)
	if errors.Is(err, arrangement.ErrRingMismatch) {
		Logger().Warn("swap rejected", "ring", len(ringA), "err", err)
		return fmt.Errorf("%w: %w", ErrBoundaryMismatch, err)
	} else if err != nil {
		return err
	}
	Logger().Debug("swap",
		"ring", len(ringA),
		"facesA", a.NumFaces(),
		"facesB", b.NumFaces())
	return nil
}

// SwapFace exchanges the region enclosed by the outer boundary of face f
// in master with the same region in slave.  Holes of f, together with
// everything inside them, travel with the region.
//
// Antennas inside f are removed first.  The outer boundary of f is then
// inserted into slave, and master edges are split where slave already had
// vertices along the boundary, so that both maps carry the same ring.
func SwapFace(master, slave *arrangement.Arrangement, f arrangement.FaceID) error {
	if master.IsUnbounded(f) {
		return fmt.Errorf("%w: cannot swap the unbounded face", ErrBoundaryMismatch)
	}
	RemoveAntennas(master, f)

	outer := master.OuterCCB(f)
	var ring []arrangement.HalfedgeID
	for h := range master.CCB(outer) {
		ring = append(ring, h)
	}

	var ringM, ringS []arrangement.HalfedgeID
	for _, h := range ring {
		ev, err := slave.InsertSegment(master.SourcePoint(h), master.TargetPoint(h))
		if err != nil {
			return err
		}
		for _, g := range arrangement.Fragments(ev) {
			q := slave.TargetPoint(g)
			if q != master.TargetPoint(h) {
				next := master.SplitEdge(h, q)
				ringM = append(ringM, h)
				h = next
			} else {
				ringM = append(ringM, h)
			}
			ringS = append(ringS, g)
		}
	}
	return SwapMaps(master, slave, ringM, ringS)
}
