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

// Command vmaptool applies map operations to GeoJSON polygon layers.
//
// Usage:
//
//	vmaptool crop -bounds W,S,E,N [-outside] -out OUT IN
//	vmaptool merge [-force] [-integrate] -out OUT DST SRC
//	vmaptool integrate A B
//	vmaptool stats -dem FILE.tif -bounds W,S,E,N IN
//	vmaptool plot -out OUT.pdf IN
//
// Polygon features carry their face attributes in the integer properties
// "terrain" and "feature".
package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/paulmach/orb/geojson"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/vmap"
	"seehuhn.de/go/vmap/arrangement"
	"seehuhn.de/go/vmap/dem"
	"seehuhn.de/go/vmap/mapview"
)

var commands = map[string]func(args []string) error{
	"crop":      cropCmd,
	"merge":     mergeCmd,
	"integrate": integrateCmd,
	"stats":     statsCmd,
	"plot":      plotCmd,
}

func main() {
	verbose := flag.Bool("v", false, "log debug output to stderr")
	flag.Usage = func() {
		fmt.Fprintln(flag.CommandLine.Output(), "usage: vmaptool [-v] crop|merge|integrate|stats|plot [options] files...")
		flag.PrintDefaults()
	}
	flag.Parse()
	if flag.NArg() < 1 {
		flag.Usage()
		os.Exit(2)
	}
	if *verbose {
		h := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})
		vmap.SetLogger(slog.New(h))
	}

	name := flag.Arg(0)
	cmd, ok := commands[name]
	if !ok {
		flag.Usage()
		os.Exit(2)
	}
	if err := cmd(flag.Args()[1:]); err != nil {
		log.Fatalf("%s: %v", name, err)
	}
}

func cropCmd(args []string) error {
	fs := flag.NewFlagSet("crop", flag.ExitOnError)
	bounds := fs.String("bounds", "", "crop rectangle `W,S,E,N`")
	outside := fs.Bool("outside", false, "keep the part outside the rectangle")
	out := fs.String("out", "", "output GeoJSON file")
	fs.Parse(args)
	if fs.NArg() != 1 || *out == "" {
		return errors.New("need one input file and -out")
	}
	box, err := parseBounds(*bounds)
	if err != nil {
		return err
	}

	m, err := readMap(fs.Arg(0))
	if err != nil {
		return err
	}
	opt := vmap.CropOptions{KeepOutside: *outside, Progress: progress}
	if err := vmap.CropRect(m, box.LLx, box.LLy, box.URx, box.URy, opt); err != nil {
		return err
	}
	return writeMap(*out, m)
}

func mergeCmd(args []string) error {
	fs := flag.NewFlagSet("merge", flag.ExitOnError)
	force := fs.Bool("force", false, "overwrite existing face attributes")
	integrate := fs.Bool("integrate", false, "integrate the topology before merging")
	out := fs.String("out", "", "output GeoJSON file")
	fs.Parse(args)
	if fs.NArg() != 2 || *out == "" {
		return errors.New("need two input files and -out")
	}

	dst, err := readMap(fs.Arg(0))
	if err != nil {
		return err
	}
	src, err := readMap(fs.Arg(1))
	if err != nil {
		return err
	}
	if *integrate {
		nA, nB := vmap.TopoIntegrate(dst, src, vmap.DefaultIntegrateConfig())
		log.Printf("integration: %d + %d splits", nA, nB)
	}
	touched := vmap.Merge(dst, src, vmap.MergeOptions{
		ForceProps:    *force,
		PreIntegrated: *integrate,
		Progress:      progress,
	})
	log.Printf("merged, %d faces touched", len(touched))
	return writeMap(*out, dst)
}

func integrateCmd(args []string) error {
	fs := flag.NewFlagSet("integrate", flag.ExitOnError)
	fs.Parse(args)
	if fs.NArg() != 2 {
		return errors.New("need two input files")
	}
	a, err := readMap(fs.Arg(0))
	if err != nil {
		return err
	}
	b, err := readMap(fs.Arg(1))
	if err != nil {
		return err
	}
	nA, nB := vmap.TopoIntegrate(a, b, vmap.DefaultIntegrateConfig())
	fmt.Printf("%s: %d splits\n%s: %d splits\n", fs.Arg(0), nA, fs.Arg(1), nB)
	return nil
}

func statsCmd(args []string) error {
	fs := flag.NewFlagSet("stats", flag.ExitOnError)
	demFile := fs.String("dem", "", "DEM in TIFF format")
	bounds := fs.String("bounds", "", "geographic extent of the DEM `W,S,E,N`")
	fs.Parse(args)
	if fs.NArg() != 1 || *demFile == "" {
		return errors.New("need one input file and -dem")
	}
	box, err := parseBounds(*bounds)
	if err != nil {
		return err
	}

	r, err := os.Open(*demFile)
	if err != nil {
		return err
	}
	g, err := dem.ReadTIFF(r, box, dem.DefaultEncoding)
	r.Close()
	if err != nil {
		return err
	}
	m, err := readMap(fs.Arg(0))
	if err != nil {
		return err
	}

	fmt.Println("face\tterrain\tarea_m2\tavg\tmin\tmax")
	for f := range m.Faces() {
		if m.IsUnbounded(f) {
			continue
		}
		avg, lo, hi := vmap.ParamAverage(g, m, f)
		fmt.Printf("%d\t%d\t%.0f\t%s\t%s\t%s\n",
			f, m.FaceData(f).Terrain, vmap.FaceAreaMeters(m, f),
			formatSample(avg), formatSample(lo), formatSample(hi))
	}
	return nil
}

func plotCmd(args []string) error {
	fs := flag.NewFlagSet("plot", flag.ExitOnError)
	out := fs.String("out", "map.pdf", "output PDF file")
	width := fs.Float64("width", 400, "page width in points")
	fs.Parse(args)
	if fs.NArg() != 1 {
		return errors.New("need one input file")
	}
	m, err := readMap(fs.Arg(0))
	if err != nil {
		return err
	}
	return mapview.WritePDF(*out, m, &mapview.Options{Width: *width, Margin: 10, LineWidth: 0.5})
}

func formatSample(v float32) string {
	if v == dem.NoData {
		return "-"
	}
	return strconv.FormatFloat(float64(v), 'f', 1, 32)
}

func parseBounds(s string) (rect.Rect, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 4 {
		return rect.Rect{}, fmt.Errorf("invalid bounds %q", s)
	}
	var v [4]float64
	for i, p := range parts {
		x, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return rect.Rect{}, fmt.Errorf("invalid bounds %q: %w", s, err)
		}
		v[i] = x
	}
	if v[0] >= v[2] || v[1] >= v[3] {
		return rect.Rect{}, fmt.Errorf("empty bounds %q", s)
	}
	return rect.Rect{LLx: v[0], LLy: v[1], URx: v[2], URy: v[3]}, nil
}

func readMap(fname string) (*arrangement.Arrangement, error) {
	data, err := os.ReadFile(fname)
	if err != nil {
		return nil, err
	}
	fc, err := geojson.UnmarshalFeatureCollection(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", fname, err)
	}
	m, err := vmap.FromFeatureCollection(fc)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", fname, err)
	}
	return m, nil
}

func writeMap(fname string, m *arrangement.Arrangement) error {
	data, err := vmap.ToFeatureCollection(m).MarshalJSON()
	if err != nil {
		return err
	}
	return os.WriteFile(fname, data, 0644)
}

func progress(phase, phases int, msg string, frac float64) {
	fmt.Fprintf(os.Stderr, "\r[%d/%d] %-30s %3.0f%%", phase+1, phases, msg, 100*frac)
	if phase == phases-1 && frac >= 1 {
		fmt.Fprintln(os.Stderr)
	}
}
