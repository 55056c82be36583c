package curve

import (
	"github.com/npillmayer/tubegeom"
	"gonum.org/v1/gonum/spatial/r3"
)

// TypeLine is the registered type name of Line.
const TypeLine = "LineCurve3"

// Line is a straight line segment from V1 to V2.
type Line struct {
	V1 r3.Vec `json:"v1" yaml:"v1"`
	V2 r3.Vec `json:"v2" yaml:"v2"`
}

// NewLine creates a line segment from v1 to v2.
func NewLine(v1, v2 r3.Vec) *Line {
	return &Line{V1: v1, V2: v2}
}

// Type returns TypeLine.
func (l *Line) Type() string { return TypeLine }

// Point returns the point at t. Point(1) is exactly V2.
func (l *Line) Point(t float64) r3.Vec {
	if t == 1 {
		return l.V2
	}
	return tubegeom.Lerp(l.V1, l.V2, t)
}

// Tangent is constant for lines.
func (l *Line) Tangent(float64) r3.Vec {
	return tubegeom.Normalize(r3.Sub(l.V2, l.V1))
}

// IsArcLengthParameterized is true for lines.
func (l *Line) IsArcLengthParameterized() bool { return true }

// Validate checks for finite end points.
func (l *Line) Validate() error {
	if !tubegeom.VecIsFinite(l.V1) || !tubegeom.VecIsFinite(l.V2) {
		return ErrInvalidPoint
	}
	return nil
}
