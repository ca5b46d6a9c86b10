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

import "seehuhn.de/go/geom/vec"

var basicMaps = []Fixture{
	{
		Name:     "square",
		Polygons: []Polygon{{square(10, 10, 20, 20), 1}},
		Vertices: 4, Edges: 4, Faces: 2,
	},
	{
		Name: "two_squares",
		Polygons: []Polygon{
			{square(0, 0, 4, 4), 1},
			{square(6, 0, 10, 4), 2},
		},
		Vertices: 8, Edges: 8, Faces: 3,
	},
	{
		Name: "corner_touch",
		Polygons: []Polygon{
			{square(0, 0, 4, 4), 1},
			{square(4, 4, 8, 8), 2},
		},
		Vertices: 7, Edges: 8, Faces: 3,
	},
	{
		Name: "shared_edge",
		Polygons: []Polygon{
			{square(0, 0, 4, 4), 1},
			{square(4, 0, 8, 4), 2},
		},
		Vertices: 6, Edges: 7, Faces: 3,
	},
	{
		Name: "triangle",
		Polygons: []Polygon{
			{[]vec.Vec2{pt(0, 0), pt(6, 1), pt(2, 5)}, 3},
		},
		Vertices: 3, Edges: 3, Faces: 2,
	},
}

var nestedMaps = []Fixture{
	{
		Name: "hole",
		Polygons: []Polygon{
			{square(0, 0, 10, 10), 1},
			{square(3, 3, 7, 7), 2},
		},
		Vertices: 8, Edges: 8, Faces: 3,
	},
	{
		Name: "overlap",
		Polygons: []Polygon{
			{square(0, 0, 4, 4), 1},
			{square(2, 2, 6, 6), 2},
		},
		Vertices: 10, Edges: 12, Faces: 4,
	},
	{
		Name: "islands",
		Polygons: []Polygon{
			{square(0, 0, 12, 12), 1},
			{square(2, 2, 4, 4), 2},
			{square(8, 8, 10, 10), 2},
			{square(8, 2, 10, 4), 3},
		},
		Vertices: 16, Edges: 16, Faces: 5,
	},
}
