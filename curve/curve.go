package curve

import (
	"errors"

	"github.com/npillmayer/schuko/tracing"
	"gonum.org/v1/gonum/spatial/r3"
)

// tracer writes to trace with key 'tubegeom.curve'
func tracer() tracing.Trace {
	return tracing.Select("tubegeom.curve")
}

var (
	// ErrNilCurve indicates a nil curve.
	ErrNilCurve = errors.New("curve must not be nil")
	// ErrTooFewPoints indicates a curve has not enough points to interpolate.
	ErrTooFewPoints = errors.New("curve has too few points")
	// ErrInvalidPoint indicates a point coordinate contains NaN/Inf.
	ErrInvalidPoint = errors.New("curve has invalid point coordinate")
	// ErrUnknownCurveType indicates a type name not known to a registry.
	ErrUnknownCurveType = errors.New("unknown path type")
	// ErrDuplicateCurveType indicates a type name is already registered.
	ErrDuplicateCurveType = errors.New("path type already registered")
	// ErrNotSerializable indicates a curve which does not name its type.
	ErrNotSerializable = errors.New("curve type is not serializable")
)

// Curve is a parametric curve in 3D space. Point is defined for t ∈ [0,1].
type Curve interface {
	Point(t float64) r3.Vec
}

// Tangenter is implemented by curves which know their tangent exactly.
// Others get a tangent by finite differences.
type Tangenter interface {
	Tangent(t float64) r3.Vec
}

// ArcLengthParameterized is implemented by curves whose parameter is
// proportional to arc length already, as is the case for straight lines.
type ArcLengthParameterized interface {
	IsArcLengthParameterized() bool
}

// Typed is implemented by curves which may be serialized.
// Type returns the name the curve type is registered with.
type Typed interface {
	Curve
	Type() string
}

// Validator is implemented by curves which can check their own parameters.
type Validator interface {
	Validate() error
}

// validate checks c if it knows how to.
func validate(c Curve) error {
	if c == nil {
		return ErrNilCurve
	}
	if v, ok := c.(Validator); ok {
		return v.Validate()
	}
	return nil
}
