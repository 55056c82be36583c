package curve

import (
	"sort"
	"sync"

	"github.com/npillmayer/tubegeom"
	"gonum.org/v1/gonum/spatial/r3"
)

// DefaultArcLengthDivisions is the number of samples used to build the
// arc-length table of a path.
const DefaultArcLengthDivisions = 200

// tangentDelta is the step for finite-difference tangents.
const tangentDelta = 0.0001

// Path wraps a curve and adds arc-length parameterization. The arc-length
// table is computed on first use and cached; the wrapped curve must not be
// modified afterwards. A Path must not be copied after first use.
type Path struct {
	curve     Curve
	divisions int
	once      sync.Once
	lengths   []float64 // cumulative lengths at samples 0…divisions
}

// NewPath creates a path for a curve with the default arc-length divisions.
func NewPath(c Curve) *Path {
	return NewPathWithDivisions(c, DefaultArcLengthDivisions)
}

// NewPathWithDivisions creates a path for a curve, sampling it at
// divisions+1 points to approximate arc length. divisions < 1 selects
// the default.
func NewPathWithDivisions(c Curve, divisions int) *Path {
	if divisions < 1 {
		divisions = DefaultArcLengthDivisions
	}
	return &Path{curve: c, divisions: divisions}
}

// NewPathWithSettings creates a path using the arc-length divisions of s.
func NewPathWithSettings(c Curve, s tubegeom.Settings) *Path {
	return NewPathWithDivisions(c, s.ArcLengthDivisions)
}

// Curve returns the wrapped curve.
func (p *Path) Curve() Curve {
	return p.curve
}

// ArcLengthDivisions returns the number of samples of the arc-length table.
func (p *Path) ArcLengthDivisions() int {
	return p.divisions
}

// Validate checks the wrapped curve.
func (p *Path) Validate() error {
	if p == nil {
		return ErrNilCurve
	}
	return validate(p.curve)
}

// Point returns the point for curve parameter t.
func (p *Path) Point(t float64) r3.Vec {
	return p.curve.Point(t)
}

// PointAt returns the point at fraction u ∈ [0,1] of the arc length.
func (p *Path) PointAt(u float64) r3.Vec {
	return p.curve.Point(p.UtoT(u))
}

// Tangent returns the unit tangent for curve parameter t.
func (p *Path) Tangent(t float64) r3.Vec {
	if tg, ok := p.curve.(Tangenter); ok {
		return tubegeom.Normalize(tg.Tangent(t))
	}
	t1, t2 := t-tangentDelta, t+tangentDelta
	if t1 < 0 {
		t1 = 0
	}
	if t2 > 1 {
		t2 = 1
	}
	return tubegeom.Normalize(r3.Sub(p.curve.Point(t2), p.curve.Point(t1)))
}

// TangentAt returns the unit tangent at fraction u of the arc length.
func (p *Path) TangentAt(u float64) r3.Vec {
	return p.Tangent(p.UtoT(u))
}

// Length returns the approximate length of the path.
func (p *Path) Length() float64 {
	l := p.table()
	return l[len(l)-1]
}

// Lengths returns a copy of the cumulative arc-length table.
func (p *Path) Lengths() []float64 {
	l := p.table()
	c := make([]float64, len(l))
	copy(c, l)
	return c
}

// UtoT maps a fraction u of the arc length to a curve parameter t.
// Between samples the table is interpolated linearly.
func (p *Path) UtoT(u float64) float64 {
	if alp, ok := p.curve.(ArcLengthParameterized); ok && alp.IsArcLengthParameterized() {
		return u
	}
	lengths := p.table()
	n := len(lengths)
	target := u * lengths[n-1]
	// largest i with lengths[i] <= target
	i := sort.Search(n, func(k int) bool { return lengths[k] > target }) - 1
	if i < 0 {
		i = 0
	}
	if i >= n-1 || lengths[i] == target {
		return float64(i) / float64(n-1)
	}
	before := lengths[i]
	frac := (target - before) / (lengths[i+1] - before)
	return (float64(i) + frac) / float64(n-1)
}

// Points samples the path at divisions+1 evenly spaced curve parameters.
func (p *Path) Points(divisions int) []r3.Vec {
	if divisions < 1 {
		divisions = 1
	}
	pts := make([]r3.Vec, divisions+1)
	for d := 0; d <= divisions; d++ {
		pts[d] = p.curve.Point(float64(d) / float64(divisions))
	}
	return pts
}

// SpacedPoints samples the path at divisions+1 points evenly spaced by
// arc length.
func (p *Path) SpacedPoints(divisions int) []r3.Vec {
	if divisions < 1 {
		divisions = 1
	}
	pts := make([]r3.Vec, divisions+1)
	for d := 0; d <= divisions; d++ {
		pts[d] = p.PointAt(float64(d) / float64(divisions))
	}
	return pts
}

func (p *Path) table() []float64 {
	p.once.Do(p.computeLengths)
	return p.lengths
}

func (p *Path) computeLengths() {
	lengths := make([]float64, p.divisions+1)
	last := p.curve.Point(0)
	sum := 0.0
	for i := 1; i <= p.divisions; i++ {
		current := p.curve.Point(float64(i) / float64(p.divisions))
		sum += tubegeom.Distance(last, current)
		lengths[i] = sum
		last = current
	}
	p.lengths = lengths
	tracer().Debugf("path length = %.4f over %d samples", sum, p.divisions)
}
