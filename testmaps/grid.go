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

package testmaps

import (
	"fmt"

	"seehuhn.de/go/geom/vec"
	"seehuhn.de/go/vmap/arrangement"
)

var gridMaps = []Fixture{
	checkerboard(3),
	checkerboard(8),
}

// checkerboard returns an n x n grid of unit squares with alternating
// terrain.
func checkerboard(n int) Fixture {
	fx := Fixture{
		Name:     fmt.Sprintf("checkerboard_%d", n),
		Vertices: (n + 1) * (n + 1),
		Edges:    2 * n * (n + 1),
		Faces:    n*n + 1,
	}
	for i := range n {
		for j := range n {
			x, y := float64(i), float64(j)
			fx.Polygons = append(fx.Polygons, Polygon{
				Ring:    square(x, y, x+1, y+1),
				Terrain: arrangement.Terrain(1 + (i+j)%2),
			})
		}
	}
	return fx
}

var roadMaps = []Fixture{
	{
		Name:     "crossing_roads",
		Polygons: []Polygon{{square(0, 0, 10, 10), 1}},
		Roads: []Road{
			{[]vec.Vec2{pt(-2, 5), pt(12, 5)}, 1},
			{[]vec.Vec2{pt(5, -2), pt(5, 12)}, 2},
		},
		Vertices: 13, Edges: 16, Faces: 5,
	},
	{
		Name:     "bent_road",
		Polygons: []Polygon{{square(0, 0, 10, 10), 1}},
		Roads: []Road{
			{[]vec.Vec2{pt(-1, 2), pt(5, 2), pt(5, 12)}, 1},
		},
		Vertices: 9, Edges: 10, Faces: 3,
	},
}
