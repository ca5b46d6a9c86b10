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

// Command genpdf plots all test maps into PDF files.
package main

import (
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"slices"

	"seehuhn.de/go/vmap/mapview"
	"seehuhn.de/go/vmap/testmaps"
)

const outDir = "testdata/plots"

func main() {
	if err := os.MkdirAll(outDir, 0755); err != nil {
		panic(err)
	}

	opt := &mapview.Options{Width: 300, Margin: 12, LineWidth: 0.75}
	for _, category := range slices.Sorted(maps.Keys(testmaps.All)) {
		for _, fx := range testmaps.All[category] {
			name := category + "_" + fx.Name
			m, err := fx.Build()
			if err != nil {
				panic(fmt.Errorf("%s: %w", name, err))
			}
			if err := mapview.WritePDF(filepath.Join(outDir, name+".pdf"), m, opt); err != nil {
				panic(fmt.Errorf("%s: %w", name, err))
			}
		}
	}
}
