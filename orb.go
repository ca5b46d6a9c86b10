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

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"seehuhn.de/go/geom/vec"
	"seehuhn.de/go/vmap/arrangement"
	"seehuhn.de/go/vmap/kernel"
)

// GeoJSON property names for face attributes.
const (
	PropTerrain = "terrain"
	PropFeature = "feature"
)

func ringToOrb(pts []vec.Vec2) orb.Ring {
	ring := make(orb.Ring, 0, len(pts)+1)
	for _, p := range pts {
		ring = append(ring, orb.Point{p.X, p.Y})
	}
	if len(pts) > 0 {
		ring = append(ring, ring[0])
	}
	return ring
}

func ringFromOrb(ring orb.Ring) []vec.Vec2 {
	pts := make([]vec.Vec2, 0, len(ring))
	for _, p := range ring {
		pts = append(pts, vec.Vec2{X: p[0], Y: p[1]})
	}
	if len(pts) > 1 && pts[0] == pts[len(pts)-1] {
		pts = pts[:len(pts)-1]
	}
	return pts
}

// FaceToPolygon returns the boundary of the bounded face f as a polygon.
// The outer ring runs counter-clockwise, holes run clockwise.  All rings
// are closed.
func FaceToPolygon(m *arrangement.Arrangement, f arrangement.FaceID) orb.Polygon {
	poly := orb.Polygon{ringToOrb(m.CCBPoints(m.OuterCCB(f)))}
	for _, h := range m.Holes(f) {
		poly = append(poly, ringToOrb(m.CCBPoints(h)))
	}
	return poly
}

// InsertOrbPolygon inserts the rings of poly into m and sets the attributes
// of all faces inside the polygon to data.  The result lists these faces.
func InsertOrbPolygon(m *arrangement.Arrangement, poly orb.Polygon, data arrangement.FaceData) (arrangement.FaceSet, error) {
	boundary := make(arrangement.EdgeSet)
	for i, r := range poly {
		ring := ringFromOrb(r)
		if !kernel.IsSimple(ring) {
			return nil, fmt.Errorf("%w: ring %d", ErrNonSimple, i)
		}
		ring = kernel.CCW(ring)
		n := len(ring)
		for k := range n {
			p, q := ring[k], ring[(k+1)%n]
			if i > 0 {
				// holes have the polygon interior on their right
				p, q = q, p
			}
			ev, err := m.InsertSegment(p, q)
			if err != nil {
				return nil, err
			}
			boundary.Track(m, ev)
		}
	}
	faces := m.FacesForEdgeSet(boundary)
	delete(faces, m.Unbounded())
	for f := range faces {
		m.SetFaceData(f, data)
	}
	return faces, nil
}

// ToFeatureCollection converts all bounded faces of m into polygon
// features.  Face attributes are stored as properties.
func ToFeatureCollection(m *arrangement.Arrangement) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()
	for f := range m.Faces() {
		if m.IsUnbounded(f) {
			continue
		}
		feat := geojson.NewFeature(FaceToPolygon(m, f))
		d := m.FaceData(f)
		feat.Properties[PropTerrain] = int(d.Terrain)
		feat.Properties[PropFeature] = int(d.Feature)
		fc.Append(feat)
	}
	return fc
}

// FromFeatureCollection builds a map from the polygons and line strings in
// fc.  Polygon features set the attributes of the faces they cover, in
// order, so that later features override earlier ones.  Other geometry
// types are ignored.
func FromFeatureCollection(fc *geojson.FeatureCollection) (*arrangement.Arrangement, error) {
	m := arrangement.New()
	for i, feat := range fc.Features {
		data := arrangement.FaceData{
			Terrain: arrangement.Terrain(feat.Properties.MustInt(PropTerrain, 0)),
			Feature: arrangement.AreaFeature(feat.Properties.MustInt(PropFeature, 0)),
		}
		var err error
		switch g := feat.Geometry.(type) {
		case orb.Polygon:
			_, err = InsertOrbPolygon(m, g, data)
		case orb.MultiPolygon:
			for _, poly := range g {
				if _, err = InsertOrbPolygon(m, poly, data); err != nil {
					break
				}
			}
		case orb.LineString:
			_, err = m.InsertPolyline(lineFromOrb(g))
		}
		if err != nil {
			return nil, fmt.Errorf("feature %d: %w", i, err)
		}
	}
	return m, nil
}

func lineFromOrb(ls orb.LineString) []vec.Vec2 {
	pts := make([]vec.Vec2, len(ls))
	for i, p := range ls {
		pts[i] = vec.Vec2{X: p[0], Y: p[1]}
	}
	return pts
}
