/*
Package curve provides parametric 3D curves and the path operations a
sweep needs: sampling at normalized arc length and computing a
rotation-minimizing frame at evenly spaced samples.

A Curve only has to know how to compute a point for a parameter t ∈ [0,1].
Wrapping it in a Path adds an arc-length table, so clients may sample points
which are evenly distributed along the curve:

	path := curve.NewPath(curve.NewCatmullRom(points, false))
	p := path.PointAt(0.5)             // half-way, measured by length
	frames := path.ComputeFrames(64, false)

Frames are computed by parallel transport: the normal of the first sample is
derived from the tangent's smallest component, every subsequent normal is
rotated by the angle between neighbouring tangents. For closed paths the
remaining twist is distributed evenly, so that the frame at the end matches
the frame at the start.

Built-in curves

The package ships a closed set of curve types, each known to the
DefaultRegistry under a type name: LineCurve3, QuadraticBezierCurve3,
CubicBezierCurve3, CatmullRomCurve3 and HobbyCurve. Only registered types
can be restored from their serialized form; see MarshalPath and
UnmarshalPath. Clients may register their own types.

HobbyCurve is a planar spline through a sequence of knots, with control
points found by John Hobby's algorithm (as used by MetaFont/MetaPost),
lifted into 3D space at a given elevation.

BSD License

Copyright (c) Norbert Pillmayer

All rights reserved.

Please refer to the license file for more information.
*/
package curve
