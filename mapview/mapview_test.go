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

package mapview

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"
	"seehuhn.de/go/vmap/arrangement"
)

func TestLayout(t *testing.T) {
	box := rect.Rect{LLx: 0, LLy: 0, URx: 10, URy: 5}
	paper, M := Layout(box, 400, 10)
	if paper.URx != 400 || paper.URy != 210 {
		t.Errorf("paper %v, want 400x210", paper)
	}
	x := M[0]*10 + M[2]*5 + M[4]
	y := M[1]*10 + M[3]*5 + M[5]
	if x != 390 || y != 200 {
		t.Errorf("upper right corner maps to (%g, %g), want (390, 200)", x, y)
	}
}

func TestTerrainGray(t *testing.T) {
	if g := TerrainGray(arrangement.TerrainNatural); g != 1 {
		t.Errorf("natural terrain has grey %g, want 1", g)
	}
	for terrain := arrangement.Terrain(-3); terrain < 20; terrain++ {
		g := TerrainGray(terrain)
		if g < 0 || g > 1 {
			t.Errorf("terrain %d has grey %g", terrain, g)
		}
	}
}

func TestWritePDF(t *testing.T) {
	m := arrangement.New()
	ring := []vec.Vec2{{X: 0, Y: 0}, {X: 4, Y: 0}, {X: 4, Y: 3}, {X: 0, Y: 3}}
	faces, _, err := m.InsertPolygon(ring)
	if err != nil {
		t.Fatal(err)
	}
	for f := range faces {
		m.SetFaceData(f, arrangement.FaceData{Terrain: 2})
	}
	ev, err := m.InsertSegment(vec.Vec2{X: -1, Y: 1}, vec.Vec2{X: 5, Y: 1})
	if err != nil {
		t.Fatal(err)
	}
	for _, h := range arrangement.Fragments(ev) {
		m.EdgeData(h).Segments = []arrangement.RoadSegment{{Feature: 1}}
	}

	fname := filepath.Join(t.TempDir(), "map.pdf")
	if err := WritePDF(fname, m, nil); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(fname)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF-")) {
		t.Errorf("output does not start with a PDF header")
	}
}
