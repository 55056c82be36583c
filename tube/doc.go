/*
Package tube sweeps a circular cross-section of varying radius along a 3D
path and produces a triangle mesh.

The path is sampled at T+1 evenly spaced positions (by arc length). At every
sample i a ring of S+1 vertices is placed around the path point, oriented by
the path's rotation-minimizing frame and scaled by radius[i]. The first and
last vertex of a ring coincide in position but carry different texture
coordinates, as do the first and last ring of a closed tube.

	path := curve.NewPath(curve.NewCatmullRom(points, false))
	t, err := tube.New(path,
	    tube.WithTubularSegments(64),
	    tube.WithRadius(profile),
	    tube.WithRadialSegments(12))

Building is synchronous and deterministic. A Tube never changes after
construction; to alter it, build a new one.

Radii are clamped to MaxRadius (default 1) before use. A radius profile
shorter than the number of rings holds its last value.

Tubes whose path wraps one of the registered curve types may be serialized
to JSON or YAML and restored with FromJSON or FromYAML.

BSD License

Copyright (c) Norbert Pillmayer

All rights reserved.

Please refer to the license file for more information.
*/
package tube

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'tubegeom.tube'
func tracer() tracing.Trace {
	return tracing.Select("tubegeom.tube")
}
