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

	"seehuhn.de/go/geom/vec"
	"seehuhn.de/go/vmap/arrangement"
)

// MergeOptions controls [Merge].
type MergeOptions struct {
	// ForceProps makes source face attributes overwrite existing
	// attributes of destination faces.  By default, only destination
	// faces with default attributes are changed.
	ForceProps bool

	// PreIntegrated declares that no edge of the source crosses an edge of
	// the destination, and that no source vertex lies in the interior of a
	// destination edge, for example after [TopoIntegrate].  Edges are
	// then inserted without any intersection tests.
	PreIntegrated bool

	// Progress, if set, receives progress reports.
	Progress ProgressFunc
}

// provenance maps source edges to the destination half-edges covering
// them.  The destination half-edges run in the direction of the source
// edge.
type provenance struct {
	fragments map[arrangement.HalfedgeID][]arrangement.HalfedgeID
	owners    map[arrangement.HalfedgeID][]arrangement.HalfedgeID
}

func newProvenance() *provenance {
	return &provenance{
		fragments: make(map[arrangement.HalfedgeID][]arrangement.HalfedgeID),
		owners:    make(map[arrangement.HalfedgeID][]arrangement.HalfedgeID),
	}
}

func (p *provenance) add(src, dst arrangement.HalfedgeID) {
	p.fragments[src] = append(p.fragments[src], dst)
	p.owners[dst] = append(p.owners[dst], src)
}

// split records that dst edge ev.Edge was split and that ev.Part now
// covers part of it.
func (p *provenance) split(m *arrangement.Arrangement, ev arrangement.Event) {
	for _, src := range p.owners[ev.Edge] {
		p.add(src, ev.Part)
	}
	for _, src := range p.owners[m.Twin(ev.Part)] {
		p.add(src, m.Twin(ev.Edge))
	}
}

// Merge inserts all edges of src into dst, copies the edge attributes, and
// transfers face attributes from src faces to the dst faces covering them.
// src is not modified.
//
// The result holds the destination faces covered by source faces with
// non-default attributes.
func Merge(dst, src *arrangement.Arrangement, opt MergeOptions) arrangement.FaceSet {
	log := Logger()
	prov := newProvenance()

	numEdges := src.NumEdges()
	i := 0
	for hs := range src.Edges() {
		if i%progressStep == 0 {
			opt.Progress.report(0, 2, "Merging edges into map...", float64(i)/float64(numEdges))
		}
		i++

		p, q := src.SourcePoint(hs), src.TargetPoint(hs)
		if opt.PreIntegrated {
			hd := insertIntegrated(dst, p, q)
			prov.add(hs, hd)
		} else {
			events, err := dst.InsertSegment(p, q)
			if errors.Is(err, arrangement.ErrDegenerate) {
				// shorter than the snap tolerance
				continue
			} else if err != nil {
				panic(err)
			}
			for _, ev := range events {
				switch ev.Kind {
				case arrangement.EdgeSplit:
					prov.split(dst, ev)
				default:
					prov.add(hs, ev.Edge)
				}
			}
		}

		data := src.EdgeData(hs)
		if !data.IsEmpty() {
			for _, hd := range prov.fragments[hs] {
				dst.EdgeData(hd).Merge(data)
			}
		}
	}
	opt.Progress.report(0, 2, "Merging edges into map...", 1)

	touched := make(arrangement.FaceSet)
	numFaces := src.NumFaces()
	i = 0
	copied := 0
	for f := range src.Faces() {
		if i%progressStep == 0 {
			opt.Progress.report(1, 2, "Copying face metadata...", float64(i)/float64(numFaces))
		}
		i++

		attr := src.FaceData(f)
		if src.IsUnbounded(f) || attr.IsDefault() {
			continue
		}
		boundary := make(arrangement.EdgeSet)
		for _, h := range src.EdgesForFace(f) {
			if src.IsDominant(h) {
				for _, hd := range prov.fragments[h] {
					boundary[hd] = true
				}
			} else {
				for _, hd := range prov.fragments[src.Twin(h)] {
					boundary[dst.Twin(hd)] = true
				}
			}
		}
		faces := dst.FacesForEdgeSet(boundary)
		if faces[dst.Unbounded()] {
			log.Warn("source face leaks into the unbounded face", "face", f)
			delete(faces, dst.Unbounded())
		}
		for g := range faces {
			touched[g] = true
			if opt.ForceProps || dst.FaceData(g).IsDefault() {
				dst.SetFaceData(g, attr)
				copied++
			}
		}
	}
	opt.Progress.report(1, 2, "Copying face metadata...", 1)

	log.Debug("merge",
		"preIntegrated", opt.PreIntegrated,
		"edges", numEdges,
		"touched", len(touched),
		"copied", copied)
	return touched
}

// insertIntegrated inserts the segment from p to q into m, which must not
// have any edge crossing the segment.  The result is the half-edge from p
// to q.
//
// Only a segment with two new end points needs a geometric search: it
// starts a new connected component, and the face containing it is found
// by point location.
func insertIntegrated(m *arrangement.Arrangement, p, q vec.Vec2) arrangement.HalfedgeID {
	u, okU := m.VertexAt(p)
	v, okV := m.VertexAt(q)
	switch {
	case okU && okV:
		if h := m.EdgeBetween(u, v); h != arrangement.NoHalfedge {
			return h
		}
		return m.InsertBetween(u, v)
	case okU:
		return m.InsertFromVertex(u, q)
	case okV:
		return m.Twin(m.InsertFromVertex(v, p))
	default:
		return m.InsertInOpenRegion(p, q)
	}
}
