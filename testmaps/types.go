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

// Package testmaps provides small maps for tests, benchmarks and plots.
package testmaps

import (
	"seehuhn.de/go/geom/vec"
	"seehuhn.de/go/vmap/arrangement"
)

// Fixture describes one test map together with its expected size.
type Fixture struct {
	Name     string    // lowercase a-z and _ only
	Polygons []Polygon // inserted first, in order
	Roads    []Road    // inserted after the polygons

	// expected counts after building
	Vertices, Edges, Faces int
}

// Polygon is a simple polygon whose interior gets the given terrain.
type Polygon struct {
	Ring    []vec.Vec2
	Terrain arrangement.Terrain
}

// Road is a polyline.  All edges along it carry one road segment.
type Road struct {
	Points  []vec.Vec2
	Feature int
}

// Build constructs the map.
func (fx Fixture) Build() (*arrangement.Arrangement, error) {
	m := arrangement.New()
	for _, poly := range fx.Polygons {
		faces, _, err := m.InsertPolygon(poly.Ring)
		if err != nil {
			return nil, err
		}
		for f := range faces {
			m.SetFaceData(f, arrangement.FaceData{Terrain: poly.Terrain})
		}
	}
	for _, road := range fx.Roads {
		seg := arrangement.RoadSegment{Feature: road.Feature}
		for i := 1; i < len(road.Points); i++ {
			ev, err := m.InsertSegment(road.Points[i-1], road.Points[i])
			if err != nil {
				return nil, err
			}
			// splits copy the edge data, so later insertions keep it
			for _, h := range arrangement.Fragments(ev) {
				d := m.EdgeData(h)
				d.Segments = append(d.Segments, seg)
			}
		}
	}
	return m, nil
}

func pt(x, y float64) vec.Vec2 {
	return vec.Vec2{X: x, Y: y}
}

func square(x0, y0, x1, y1 float64) []vec.Vec2 {
	return []vec.Vec2{pt(x0, y0), pt(x1, y0), pt(x1, y1), pt(x0, y1)}
}
