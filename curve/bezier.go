package curve

import (
	"github.com/npillmayer/tubegeom"
	"gonum.org/v1/gonum/spatial/r3"
)

// Registered type names of Bézier curves.
const (
	TypeQuadraticBezier = "QuadraticBezierCurve3"
	TypeCubicBezier     = "CubicBezierCurve3"
)

// QuadraticBezier is a Bézier curve from V0 to V2 with control point V1.
type QuadraticBezier struct {
	V0 r3.Vec `json:"v0" yaml:"v0"`
	V1 r3.Vec `json:"v1" yaml:"v1"`
	V2 r3.Vec `json:"v2" yaml:"v2"`
}

// NewQuadraticBezier creates a quadratic Bézier curve.
func NewQuadraticBezier(v0, v1, v2 r3.Vec) *QuadraticBezier {
	return &QuadraticBezier{V0: v0, V1: v1, V2: v2}
}

// Type returns TypeQuadraticBezier.
func (q *QuadraticBezier) Type() string { return TypeQuadraticBezier }

// Point returns the point at t.
func (q *QuadraticBezier) Point(t float64) r3.Vec {
	k := 1 - t
	return r3.Add(r3.Add(r3.Scale(k*k, q.V0), r3.Scale(2*k*t, q.V1)), r3.Scale(t*t, q.V2))
}

// Validate checks for finite points.
func (q *QuadraticBezier) Validate() error {
	return checkFinite(q.V0, q.V1, q.V2)
}

// CubicBezier is a Bézier curve from V0 to V3 with control points V1 and V2.
type CubicBezier struct {
	V0 r3.Vec `json:"v0" yaml:"v0"`
	V1 r3.Vec `json:"v1" yaml:"v1"`
	V2 r3.Vec `json:"v2" yaml:"v2"`
	V3 r3.Vec `json:"v3" yaml:"v3"`
}

// NewCubicBezier creates a cubic Bézier curve.
func NewCubicBezier(v0, v1, v2, v3 r3.Vec) *CubicBezier {
	return &CubicBezier{V0: v0, V1: v1, V2: v2, V3: v3}
}

// Type returns TypeCubicBezier.
func (c *CubicBezier) Type() string { return TypeCubicBezier }

// Point returns the point at t.
func (c *CubicBezier) Point(t float64) r3.Vec {
	return cubicBezier(t, c.V0, c.V1, c.V2, c.V3)
}

// Validate checks for finite points.
func (c *CubicBezier) Validate() error {
	return checkFinite(c.V0, c.V1, c.V2, c.V3)
}

func cubicBezier(t float64, p0, p1, p2, p3 r3.Vec) r3.Vec {
	k := 1 - t
	v := r3.Scale(k*k*k, p0)
	v = r3.Add(v, r3.Scale(3*k*k*t, p1))
	v = r3.Add(v, r3.Scale(3*k*t*t, p2))
	return r3.Add(v, r3.Scale(t*t*t, p3))
}

func checkFinite(pts ...r3.Vec) error {
	for _, p := range pts {
		if !tubegeom.VecIsFinite(p) {
			return ErrInvalidPoint
		}
	}
	return nil
}
