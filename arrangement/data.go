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

package arrangement

import (
	"maps"
	"slices"

	"seehuhn.de/go/geom/vec"
)

// Terrain is a land-use classification of a face.
type Terrain int

// TerrainNatural is the default terrain.  Faces with natural terrain are
// treated as unclassified by the merge operations.
const TerrainNatural Terrain = 0

// AreaFeature marks a face as covered by an area feature, for example a
// park or an airport.
type AreaFeature int

// NoFeature is the default area feature.
const NoFeature AreaFeature = 0

// FaceData holds the attributes of a face.
type FaceData struct {
	Terrain Terrain
	Feature AreaFeature
}

// IsDefault reports whether the face carries no classification.
func (d FaceData) IsDefault() bool {
	return d.Terrain == TerrainNatural && d.Feature == NoFeature
}

// RoadSegment describes one network feature running along an edge.
type RoadSegment struct {
	Feature int
	RepType int
}

// EdgeData holds the attributes of an edge.
type EdgeData struct {
	Segments []RoadSegment
	Params   map[int]float64
}

// IsEmpty reports whether the edge carries no attributes.
func (d *EdgeData) IsEmpty() bool {
	return len(d.Segments) == 0 && len(d.Params) == 0
}

// Clone returns a deep copy of d.
func (d EdgeData) Clone() EdgeData {
	return EdgeData{
		Segments: slices.Clone(d.Segments),
		Params:   maps.Clone(d.Params),
	}
}

// Merge adds the attributes of other to d.  Segments are appended.
// Parameters already present in d keep their value.
func (d *EdgeData) Merge(other *EdgeData) {
	d.Segments = append(d.Segments, other.Segments...)
	for k, v := range other.Params {
		if d.Params == nil {
			d.Params = make(map[int]float64, len(other.Params))
		}
		if _, ok := d.Params[k]; !ok {
			d.Params[k] = v
		}
	}
}

// VertexAt returns the vertex at location p, if the index contains one.
func (m *Arrangement) VertexAt(p vec.Vec2) (VertexID, bool) {
	v, ok := m.index[p]
	return v, ok
}

// IndexVertex adds v to the location index, replacing any other vertex
// stored for the same location.
func (m *Arrangement) IndexVertex(v VertexID) {
	m.index[m.vertices[v].pt] = v
}

// UnindexVertex removes v from the location index.
func (m *Arrangement) UnindexVertex(v VertexID) {
	p := m.vertices[v].pt
	if w, ok := m.index[p]; ok && w == v {
		delete(m.index, p)
	}
}
