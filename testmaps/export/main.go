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

// Command export writes all test maps as GeoJSON files.
package main

import (
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"slices"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"seehuhn.de/go/vmap"
	"seehuhn.de/go/vmap/testmaps"
)

const outDir = "testdata/geojson"

func main() {
	if err := os.MkdirAll(outDir, 0755); err != nil {
		panic(err)
	}

	for _, category := range slices.Sorted(maps.Keys(testmaps.All)) {
		for _, fx := range testmaps.All[category] {
			name := category + "_" + fx.Name
			if err := export(fx, filepath.Join(outDir, name+".geojson")); err != nil {
				panic(fmt.Errorf("%s: %w", name, err))
			}
		}
	}
}

func export(fx testmaps.Fixture, fname string) error {
	m, err := fx.Build()
	if err != nil {
		return err
	}
	fc := vmap.ToFeatureCollection(m)
	for _, road := range fx.Roads {
		line := make(orb.LineString, len(road.Points))
		for i, p := range road.Points {
			line[i] = orb.Point{p.X, p.Y}
		}
		feat := geojson.NewFeature(line)
		feat.Properties["road"] = road.Feature
		fc.Append(feat)
	}

	data, err := fc.MarshalJSON()
	if err != nil {
		return err
	}
	return os.WriteFile(fname, data, 0644)
}
