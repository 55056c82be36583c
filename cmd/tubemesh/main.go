/*
Tubemesh sweeps a tube along a path and writes the resulting mesh.

The tube is either read from a JSON or YAML record (-in), or built along a
Catmull-Rom path through the points given with -points:

	tubemesh -in tube.yaml -out tube.stl
	tubemesh -points "0,0,0 1,1,0 2,0,1" -radius 0.2,0.4 -closed -out ring.obj
	tubemesh -points "0,0,0 4,0,0" -set tube.radialsegments=16 -footprint xy

Settings given with -set apply to tubes built from -points.

BSD License

Copyright (c) Norbert Pillmayer

All rights reserved.

Please refer to the license file for more information.
*/
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/npillmayer/schuko"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"
	"github.com/npillmayer/tubegeom"
	"github.com/npillmayer/tubegeom/curve"
	"github.com/npillmayer/tubegeom/polygon"
	"github.com/npillmayer/tubegeom/tube"
	"gonum.org/v1/gonum/spatial/r3"
)

// options collects the command line.
type options struct {
	in, out    string
	format     string
	points     string
	radius     string
	closed     bool
	footprint  string
	traceLevel string
	settings   settingsFlag
}

// settingsFlag collects repeated -set key=value flags. It doubles as the
// configuration tube parameters are read from.
type settingsFlag map[string]string

var _ schuko.Configuration = settingsFlag{}

func (s settingsFlag) String() string {
	return fmt.Sprintf("%v", map[string]string(s))
}

func (s settingsFlag) Set(kv string) error {
	k, v, ok := strings.Cut(kv, "=")
	if !ok || k == "" {
		return fmt.Errorf("setting %q is not of form key=value", kv)
	}
	s[strings.ToLower(k)] = v
	return nil
}

// InitDefaults is a no-op, settings are complete after flag parsing.
func (s settingsFlag) InitDefaults() {}

// IsSet is true for keys given on the command line.
func (s settingsFlag) IsSet(key string) bool {
	_, ok := s[strings.ToLower(key)]
	return ok
}

// GetString returns the value of key, or "".
func (s settingsFlag) GetString(key string) string {
	return s[strings.ToLower(key)]
}

// GetInt returns the value of key as an integer, 0 if not set or malformed.
func (s settingsFlag) GetInt(key string) int {
	n, err := strconv.Atoi(s.GetString(key))
	if err != nil {
		return 0
	}
	return n
}

// GetBool returns the value of key as a boolean, false if not set or malformed.
func (s settingsFlag) GetBool(key string) bool {
	b, _ := strconv.ParseBool(s.GetString(key))
	return b
}

// IsInteractive is false, tubemesh is a batch tool.
func (s settingsFlag) IsInteractive() bool { return false }

func main() {
	opts := options{settings: settingsFlag{}}
	flag.StringVar(&opts.in, "in", "", "tube record to read (.json, .yaml or .yml)")
	flag.StringVar(&opts.out, "out", "", "mesh file to write (default stdout)")
	flag.StringVar(&opts.format, "format", "", "mesh format, obj or stl (default from -out, else obj)")
	flag.StringVar(&opts.points, "points", "", "path points \"x,y,z x,y,z ...\"")
	flag.StringVar(&opts.radius, "radius", "", "radius profile \"r0,r1,...\"")
	flag.BoolVar(&opts.closed, "closed", false, "close the path and the tube")
	flag.StringVar(&opts.footprint, "footprint", "", "report the footprint area on plane xy, xz or yz")
	flag.StringVar(&opts.traceLevel, "trace", "Error", "trace level (Debug, Info, Error)")
	flag.Var(opts.settings, "set", "configuration key=value, may be repeated")
	flag.Parse()
	tracing.RegisterTraceAdapter("go", gologadapter.GetAdapter(), true)
	if err := run(opts, os.Stdout); err != nil {
		log.Fatal(err)
	}
}

func run(opts options, stdout io.Writer) error {
	setTraceLevel(opts.traceLevel)
	tb, err := loadTube(opts)
	if err != nil {
		return err
	}
	tracing.Select("tubegeom.tube").Infof("tube has %d vertices, %d triangles",
		tb.Mesh.VertexCount(), tb.Mesh.TriangleCount())
	if opts.footprint != "" {
		pr, err := projection(opts.footprint)
		if err != nil {
			return err
		}
		area, err := polygon.FootprintArea(tb, pr)
		if err != nil {
			return err
		}
		fmt.Fprintf(stdout, "footprint %s: %.6g\n", pr, area)
		if opts.out == "" {
			return nil
		}
	}
	return writeMesh(tb, opts, stdout)
}

func loadTube(opts options) (*tube.Tube, error) {
	switch {
	case opts.in != "" && opts.points != "":
		return nil, errors.New("flags -in and -points are mutually exclusive")
	case opts.in != "":
		data, err := os.ReadFile(opts.in)
		if err != nil {
			return nil, err
		}
		switch strings.ToLower(filepath.Ext(opts.in)) {
		case ".yaml", ".yml":
			return tube.FromYAML(data, nil)
		}
		return tube.FromJSON(data, nil)
	case opts.points != "":
		pts, err := parsePoints(opts.points)
		if err != nil {
			return nil, err
		}
		conf := opts.settings
		params := tube.ParamsFrom(conf)
		params.Closed = opts.closed
		if opts.radius != "" {
			if params.Radius, err = parseFloats(opts.radius); err != nil {
				return nil, err
			}
		}
		path := curve.NewPathWithSettings(curve.NewCatmullRom(pts, opts.closed), tubegeom.SettingsFrom(conf))
		return tube.NewWithParams(path, params)
	}
	return nil, errors.New("either -in or -points is required")
}

func writeMesh(tb *tube.Tube, opts options, stdout io.Writer) error {
	format := strings.ToLower(opts.format)
	if format == "" {
		format = strings.TrimPrefix(strings.ToLower(filepath.Ext(opts.out)), ".")
	}
	w := stdout
	if opts.out != "" {
		f, err := os.Create(opts.out)
		if err != nil {
			return err
		}
		defer f.Close()
		w = f
	}
	switch format {
	case "", "obj":
		return tb.Mesh.WriteOBJ(w)
	case "stl":
		return tb.Mesh.WriteSTL(w)
	}
	return fmt.Errorf("unknown mesh format %q", format)
}

func parsePoints(s string) ([]r3.Vec, error) {
	var pts []r3.Vec
	for _, field := range strings.Fields(s) {
		c, err := parseFloats(field)
		if err != nil {
			return nil, err
		}
		if len(c) != 3 {
			return nil, fmt.Errorf("point %q does not have 3 coordinates", field)
		}
		pts = append(pts, tubegeom.V(c[0], c[1], c[2]))
	}
	return pts, nil
}

func parseFloats(s string) ([]float64, error) {
	var fs []float64
	for _, f := range strings.Split(s, ",") {
		x, err := strconv.ParseFloat(strings.TrimSpace(f), 64)
		if err != nil {
			return nil, err
		}
		fs = append(fs, x)
	}
	return fs, nil
}

func projection(s string) (polygon.Projection, error) {
	switch strings.ToUpper(s) {
	case "XY":
		return polygon.XY, nil
	case "XZ":
		return polygon.XZ, nil
	case "YZ":
		return polygon.YZ, nil
	}
	return 0, fmt.Errorf("%w: %q", polygon.ErrUnknownProjection, s)
}

func setTraceLevel(level string) {
	l := tracing.LevelError
	switch strings.ToLower(level) {
	case "debug":
		l = tracing.LevelDebug
	case "info":
		l = tracing.LevelInfo
	}
	for _, key := range []string{"tubegeom", "tubegeom.curve", "tubegeom.tube",
		"tubegeom.mesh", "tubegeom.polygon"} {
		tracing.Select(key).SetTraceLevel(l)
	}
}
