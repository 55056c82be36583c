/*
Package polygon implements planar polygons and the boolean operations needed
to compute the footprint of a tube, i.e. the area its shadow covers when
projected onto a coordinate plane.

Polygons are built like paths, knot by knot, and closed with Cycle():

	pg := NullPolygon().Knot(tubegeom.P(0, 0)).Knot(tubegeom.P(1, 3)).Knot(tubegeom.P(3, 0)).Cycle()

Boolean operations are delegated to polyclip-go (Martinez-Rueda clipping).

BSD License

Copyright (c) Norbert Pillmayer

All rights reserved.

Please refer to the license file for more information.
*/
package polygon

import (
	"fmt"
	"math"
	"math/cmplx"
	"sort"
	"strings"

	"github.com/akavel/polyclip-go"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/tubegeom"
)

// L traces to key 'tubegeom.polygon'.
func L() tracing.Trace {
	return tracing.Select("tubegeom.polygon")
}

// Polygon is a closed sequence of knots. Orientation is not normalized.
type Polygon struct {
	points []tubegeom.Pair
	cycle  bool
}

// NullPolygon creates an empty polygon, to be extended by Knot().
func NullPolygon() *Polygon {
	return &Polygon{}
}

// Knot appends a knot. It panics if the polygon is already closed.
func (pg *Polygon) Knot(p tubegeom.Pair) *Polygon {
	if pg.cycle {
		panic("cannot add knot to closed polygon")
	}
	pg.points = append(pg.points, p)
	return pg
}

// Cycle closes the polygon. It panics for an empty polygon.
func (pg *Polygon) Cycle() *Polygon {
	if len(pg.points) == 0 {
		panic("cannot close empty polygon")
	}
	pg.cycle = true
	return pg
}

// N returns the number of knots.
func (pg *Polygon) N() int {
	return len(pg.points)
}

// Pt returns knot i, wrapping around.
func (pg *Polygon) Pt(i int) tubegeom.Pair {
	n := len(pg.points)
	return pg.points[((i%n)+n)%n]
}

// IsCycle is true for closed polygons.
func (pg *Polygon) IsCycle() bool {
	return pg.cycle
}

// Box creates a rectangle from two opposite corners, counterclockwise,
// starting at the lower left corner.
func Box(a, b tubegeom.Pair) *Polygon {
	x0, x1 := math.Min(a.X(), b.X()), math.Max(a.X(), b.X())
	y0, y1 := math.Min(a.Y(), b.Y()), math.Max(a.Y(), b.Y())
	return NullPolygon().Knot(tubegeom.P(x0, y0)).Knot(tubegeom.P(x1, y0)).
		Knot(tubegeom.P(x1, y1)).Knot(tubegeom.P(x0, y1)).Cycle()
}

// AsString returns a MetaPost-like representation of a polygon.
func AsString(pg *Polygon) string {
	if pg == nil || pg.N() == 0 {
		return "<empty>"
	}
	var b strings.Builder
	for i, p := range pg.points {
		if i > 0 {
			b.WriteString(" -- ")
		}
		fmt.Fprintf(&b, "(%.4g,%.4g)", tubegeom.Round(p.X()), tubegeom.Round(p.Y()))
	}
	if pg.cycle {
		b.WriteString(" -- cycle")
	}
	return b.String()
}

// SignedArea is positive for counterclockwise polygons (shoelace formula).
func (pg *Polygon) SignedArea() float64 {
	a := 0.0
	for i := range pg.points {
		a += pg.Pt(i).Cross(pg.Pt(i + 1))
	}
	return a / 2
}

// Area returns the enclosed area, regardless of orientation.
func (pg *Polygon) Area() float64 {
	return math.Abs(pg.SignedArea())
}

// Contains is true if p lies inside the polygon.
func (pg *Polygon) Contains(p tubegeom.Pair) bool {
	return pg.contour().Contains(polyclip.Point{X: p.X(), Y: p.Y()})
}

// BoundingBox returns the lower left and upper right corner.
func (pg *Polygon) BoundingBox() (min, max tubegeom.Pair) {
	r := pg.contour().BoundingBox()
	return tubegeom.P(r.Min.X, r.Min.Y), tubegeom.P(r.Max.X, r.Max.Y)
}

// ConvexHull returns the convex hull of a point set, counterclockwise
// (Andrew's monotone chain). Collinear and almost collinear points on the
// hull are dropped.
// The hull of fewer than 3 distinct points is degenerate and has area 0.
func ConvexHull(pts []tubegeom.Pair) *Polygon {
	sorted := append([]tubegeom.Pair(nil), pts...)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].X() != sorted[j].X() {
			return sorted[i].X() < sorted[j].X()
		}
		return sorted[i].Y() < sorted[j].Y()
	})
	hull := make([]tubegeom.Pair, 0, len(sorted)+1)
	// left is true for a counterclockwise turn o→a→b, angles below ε count
	// as straight
	left := func(o, a, b tubegeom.Pair) bool {
		oa, ob := a-o, b-o
		return oa.Cross(ob) > tubegeom.Epsilon*cmplx.Abs(oa.C())*cmplx.Abs(ob.C())
	}
	for _, p := range sorted { // lower hull
		for len(hull) >= 2 && !left(hull[len(hull)-2], hull[len(hull)-1], p) {
			hull = hull[:len(hull)-1]
		}
		hull = append(hull, p)
	}
	lower := len(hull) + 1
	for i := len(sorted) - 2; i >= 0; i-- { // upper hull
		p := sorted[i]
		for len(hull) >= lower && !left(hull[len(hull)-2], hull[len(hull)-1], p) {
			hull = hull[:len(hull)-1]
		}
		hull = append(hull, p)
	}
	pg := NullPolygon()
	if len(hull) > 1 {
		hull = hull[:len(hull)-1] // last point repeats the first
	}
	for _, p := range hull {
		pg.Knot(p)
	}
	if pg.N() > 0 {
		pg.Cycle()
	}
	return pg
}

func (pg *Polygon) contour() polyclip.Contour {
	c := make(polyclip.Contour, len(pg.points))
	for i, p := range pg.points {
		c[i] = polyclip.Point{X: p.X(), Y: p.Y()}
	}
	return c
}

func fromContour(c polyclip.Contour) *Polygon {
	pg := NullPolygon()
	for _, p := range c {
		pg.Knot(tubegeom.P(p.X, p.Y))
	}
	if pg.N() > 0 {
		pg.Cycle()
	}
	return pg
}
