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
	"math"

	"github.com/golang/geo/s2"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
	"seehuhn.de/go/vmap/arrangement"
)

// DegToMeterLat is the length of one degree of latitude, in meters.
const DegToMeterLat = 60 * 1852.0

// FaceAreaMeters returns the area of face f in square meters.  The map
// coordinates are longitude and latitude in degrees.  The face is
// projected to a local plane through the centre of its bounding box.  The
// area of holes is subtracted.  The result is -1 for the unbounded face.
func FaceAreaMeters(m *arrangement.Arrangement, f arrangement.FaceID) float64 {
	if m.IsUnbounded(f) {
		return -1
	}
	poly := FaceToPolygon(m, f)
	b := poly.Bound()
	center := b.Center()
	sx := DegToMeterLat * math.Cos(center[1]*math.Pi/180)
	for _, ring := range poly {
		for i, p := range ring {
			ring[i] = orb.Point{(p[0] - center[0]) * sx, (p[1] - center[1]) * DegToMeterLat}
		}
	}
	return planar.Area(poly)
}

// EdgeLengthMeters returns the great-circle length of the edge h, in
// meters.
func EdgeLengthMeters(m *arrangement.Arrangement, h arrangement.HalfedgeID) float64 {
	p, q := m.SourcePoint(h), m.TargetPoint(h)
	a := s2.LatLngFromDegrees(p.Y, p.X)
	b := s2.LatLngFromDegrees(q.Y, q.X)
	return a.Distance(b).Degrees() * DegToMeterLat
}
