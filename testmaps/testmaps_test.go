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
	"maps"
	"slices"
	"testing"
)

func TestFixtures(t *testing.T) {
	for _, category := range slices.Sorted(maps.Keys(All)) {
		for _, fx := range All[category] {
			t.Run(category+"_"+fx.Name, func(t *testing.T) {
				m, err := fx.Build()
				if err != nil {
					t.Fatal(err)
				}
				if err := m.Validate(); err != nil {
					t.Fatal(err)
				}
				if m.NumVertices() != fx.Vertices || m.NumEdges() != fx.Edges || m.NumFaces() != fx.Faces {
					t.Errorf("got %d vertices, %d edges, %d faces; want %d, %d, %d",
						m.NumVertices(), m.NumEdges(), m.NumFaces(),
						fx.Vertices, fx.Edges, fx.Faces)
				}
			})
		}
	}
}

func TestRoadData(t *testing.T) {
	m, err := roadMaps[0].Build()
	if err != nil {
		t.Fatal(err)
	}
	count := map[int]int{}
	for h := range m.Edges() {
		segs := m.EdgeData(h).Segments
		if len(segs) > 1 {
			t.Errorf("edge %d carries %d segments", h, len(segs))
		}
		for _, s := range segs {
			count[s.Feature]++
		}
	}
	if count[1] != 4 || count[2] != 4 {
		t.Errorf("road edges per feature: %v", count)
	}
}

func BenchmarkBuild(b *testing.B) {
	fx := checkerboard(8)
	for b.Loop() {
		if _, err := fx.Build(); err != nil {
			b.Fatal(err)
		}
	}
}
