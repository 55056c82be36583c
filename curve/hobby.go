package curve

import (
	"errors"
	"fmt"
	"math"
	"math/cmplx"
	"strings"
	"sync"

	"github.com/npillmayer/tubegeom"
	"gonum.org/v1/gonum/spatial/r3"
)

// TypeHobby is the registered type name of Hobby.
const TypeHobby = "HobbyCurve"

var (
	// ErrTooFewKnots indicates knot count is insufficient for solving.
	ErrTooFewKnots = errors.New("path has too few knots")
	// ErrInvalidKnot indicates a knot coordinate contains NaN/Inf.
	ErrInvalidKnot = errors.New("path has invalid knot coordinate")
	// ErrDegenerateSegment indicates two consecutive knots collapse to one point.
	ErrDegenerateSegment = errors.New("path has degenerate segment")
	// ErrCycleHasDuplicateTerminalKnot indicates a cyclic path redundantly repeats its first knot as last knot.
	ErrCycleHasDuplicateTerminalKnot = errors.New("cycle path must not repeat first knot as terminal knot")
	// ErrInvalidTension indicates a tension below 3/4.
	ErrInvalidTension = errors.New("tension must be at least 3/4")
)

// Hobby is a planar spline through Knots, with control points chosen by
// John Hobby's algorithm for smooth and pleasing curves. The spline lies in
// the plane z = Elevation. Each pair of neighbouring knots spans an equal
// share of the parameter range.
//
// Tension defaults to 1 if unset. Control points are computed on first use;
// fields must not be modified afterwards.
type Hobby struct {
	Knots     []tubegeom.Pair `json:"knots" yaml:"knots"`
	Cycle     bool            `json:"cycle" yaml:"cycle"`
	Tension   float64         `json:"tension,omitempty" yaml:"tension,omitempty"`
	Elevation float64         `json:"elevation,omitempty" yaml:"elevation,omitempty"`

	once     sync.Once
	controls *hobbyControls
	err      error
}

type hobbyControls struct {
	pre  []tubegeom.Pair // control point i-
	post []tubegeom.Pair // control point i+
}

// NewHobby creates a Hobby spline through knots and solves it. It returns
// an error if the knots do not form a solvable path.
func NewHobby(knots []tubegeom.Pair, cycle bool) (*Hobby, error) {
	h := &Hobby{Knots: knots, Cycle: cycle, Tension: 1}
	if err := h.Validate(); err != nil {
		return nil, err
	}
	return h, nil
}

// Type returns TypeHobby.
func (h *Hobby) Type() string { return TypeHobby }

// Validate checks if the knots are solvable by Hobby interpolation.
func (h *Hobby) Validate() error {
	_, err := h.solved()
	return err
}

// Controls returns the pre- and post-control points of every knot. For open
// paths the pre-control of the first and the post-control of the last knot
// are the knots themselves.
func (h *Hobby) Controls() (pre, post []tubegeom.Pair, err error) {
	c, err := h.solved()
	if err != nil {
		return nil, nil, err
	}
	return append([]tubegeom.Pair(nil), c.pre...), append([]tubegeom.Pair(nil), c.post...), nil
}

// Point returns the point at t. For an unsolvable path it returns the origin
// lifted to Elevation.
func (h *Hobby) Point(t float64) r3.Vec {
	c, err := h.solved()
	if err != nil {
		return tubegeom.Lift(tubegeom.Origin, h.Elevation)
	}
	n := len(h.Knots)
	segs := n - 1
	if h.Cycle {
		segs = n
	}
	s := t * float64(segs)
	i := int(math.Floor(s))
	if i >= segs {
		i = segs - 1
	} else if i < 0 {
		i = 0
	}
	j := (i + 1) % n
	pt := bezier2D(s-float64(i), h.Knots[i], c.post[i], c.pre[j], h.Knots[j])
	return tubegeom.Lift(pt, h.Elevation)
}

// String returns the solved path in MetaFont notation.
func (h *Hobby) String() string {
	c, err := h.solved()
	if err != nil {
		return fmt.Sprintf("<invalid hobby path: %v>", err)
	}
	return asString(h.Knots, h.Cycle, c)
}

func asString(knots []tubegeom.Pair, cycle bool, c *hobbyControls) string {
	var b strings.Builder
	n := len(knots)
	for i, z := range knots {
		if i > 0 {
			fmt.Fprintf(&b, " and %s\n  .. ", ptstring(c.pre[i], true))
		}
		b.WriteString(ptstring(z, false))
		if i < n-1 || cycle {
			fmt.Fprintf(&b, " .. controls %s", ptstring(c.post[i], true))
		}
	}
	if cycle {
		fmt.Fprintf(&b, " and %s\n  .. cycle", ptstring(c.pre[0], true))
	}
	return b.String()
}

func (h *Hobby) solved() (*hobbyControls, error) {
	h.once.Do(func() {
		sk := &skeleton{knots: h.Knots, cycle: h.Cycle, tension: h.Tension}
		if sk.tension == 0 {
			sk.tension = 1
		}
		if h.err = sk.validate(); h.err != nil {
			tracer().Errorf("hobby path: %v", h.err)
			return
		}
		h.controls = sk.solve()
		tracer().Infof("hobby path = %s", asString(h.Knots, h.Cycle, h.controls))
	})
	return h.controls, h.err
}

// --- Solver ----------------------------------------------------------------

// skeleton is the input of the solver: knots, cyclicity and a uniform tension.
type skeleton struct {
	knots   []tubegeom.Pair
	cycle   bool
	tension float64
}

func (sk *skeleton) n() int {
	return len(sk.knots)
}

func (sk *skeleton) z(i int) tubegeom.Pair {
	return sk.knots[wrap(i, sk.n())]
}

func (sk *skeleton) delta(i int) tubegeom.Pair {
	return sk.z(i+1) - sk.z(i)
}

func (sk *skeleton) d(i int) float64 {
	return cmplx.Abs(sk.delta(i).C())
}

// Turning angle at z.i.
func (sk *skeleton) psi(i int) float64 {
	psi := 0.0
	if sk.cycle || (i > 0 && i < sk.n()-1) {
		psi = cmplx.Phase(sk.delta(i).C()) - cmplx.Phase(sk.delta(i-1).C())
	}
	return reduceAngle(psi)
}

func (sk *skeleton) validate() error {
	n := sk.n()
	if sk.cycle {
		if n < 3 {
			return fmt.Errorf("%w: cycle needs at least 3 knots, got %d", ErrTooFewKnots, n)
		}
		if cmplx.Abs((sk.knots[0] - sk.knots[n-1]).C()) <= tubegeom.Epsilon {
			return ErrCycleHasDuplicateTerminalKnot
		}
	} else if n < 2 {
		return fmt.Errorf("%w: open path needs at least 2 knots, got %d", ErrTooFewKnots, n)
	}
	for i, z := range sk.knots {
		if !z.IsFinite() {
			return fmt.Errorf("%w at knot %d", ErrInvalidKnot, i)
		}
	}
	if sk.tension < 0.75 || !tubegeom.IsFinite(sk.tension) {
		return fmt.Errorf("%w, is %g", ErrInvalidTension, sk.tension)
	}
	limit := n - 1
	if sk.cycle {
		limit = n
	}
	for i := 0; i < limit; i++ {
		if sk.d(i) <= tubegeom.Epsilon {
			return fmt.Errorf("%w between knots %d and %d", ErrDegenerateSegment, i, wrap(i+1, n))
		}
	}
	return nil
}

// solve finds the direction angles theta at every knot by solving the
// tridiagonal (open) or cyclic system of mock-curvature equations, then
// sets the control points from them.
func (sk *skeleton) solve() *hobbyControls {
	n := sk.n()
	u := make([]float64, n+2)
	v := make([]float64, n+2)
	theta := make([]float64, n+2)
	if sk.cycle {
		w := make([]float64, n+2)
		u[0], v[0], w[0] = 0, 0, 1
		sk.buildEqs(n, u, v, w)
		sk.endCycle(theta, u, v, w)
	} else {
		sk.startOpen(u, v)
		sk.buildEqs(n-2, u, v, nil)
		sk.endOpen(theta, u, v)
	}
	return sk.setControls(theta)
}

// startOpen sets the start conditions for a curl of 1 at the first knot.
func (sk *skeleton) startOpen(u, v []float64) {
	a := 1 / sk.tension
	b := 1 / sk.tension
	c := square(a) / square(b)
	u[0] = ((3-a)*c + b) / (a*c + 3 - b)
	v[0] = -u[0] * sk.psi(1)
	tracer().Debugf("u.0 = %.4g, v.0 = %.4g", u[0], v[0])
}

// endOpen applies a curl of 1 at the last knot and back-substitutes.
func (sk *skeleton) endOpen(theta, u, v []float64) {
	last := sk.n() - 1
	a := 1 / sk.tension
	b := 1 / sk.tension
	c := square(b) / square(a)
	u[last] = (b*c + 3 - a) / ((3-b)*c + a)
	if den := u[last-1] - u[last]; math.Abs(den) > tubegeom.Epsilon {
		theta[last] = v[last-1] / den
	} // else: two knots, straight line
	tracer().Debugf("theta.%d = %.4g", last, rad2deg(theta[last]))
	for i := last - 1; i >= 0; i-- {
		theta[i] = v[i] - u[i]*theta[i+1]
	}
}

func (sk *skeleton) endCycle(theta, u, v, w []float64) {
	n := sk.n()
	var a, b float64 = 0, 1
	for i := n; i > 0; i-- {
		a = v[i] - a*u[i]
		b = w[i] - b*u[i]
	}
	t0 := (v[n] - a*u[n]) / (1 - (w[n] - b*u[n]))
	v[0] = t0
	for i := 1; i <= n; i++ {
		v[i] += w[i] * t0
	}
	theta[0], theta[n] = t0, t0
	for i := n - 1; i > 0; i-- {
		theta[i] = v[i] - u[i]*theta[i+1]
	}
}

// buildEqs eliminates the equations for knots 1…upto.
func (sk *skeleton) buildEqs(upto int, u, v, w []float64) {
	r := 1 / sk.tension
	for i := 1; i <= upto; i++ {
		a0, a1, b1, b2 := r, r, r, r
		A := a0 / (square(b1) * sk.d(i-1))
		B := (3 - a0) / (square(b1) * sk.d(i-1))
		C := (3 - b2) / (square(a1) * sk.d(i))
		D := b2 / (square(a1) * sk.d(i))
		t := B - u[i-1]*A + C
		u[i] = D / t
		v[i] = (-B*sk.psi(i) - D*sk.psi(i+1) - A*v[i-1]) / t
		if w != nil {
			w[i] = -A * w[i-1] / t
		}
		tracer().Debugf("u.%d = %.4g, v.%d = %.4g", i, u[i], i, v[i])
	}
}

func (sk *skeleton) setControls(theta []float64) *hobbyControls {
	n := sk.n()
	c := &hobbyControls{
		pre:  make([]tubegeom.Pair, n),
		post: make([]tubegeom.Pair, n),
	}
	copy(c.pre, sk.knots)
	copy(c.post, sk.knots)
	segs := n - 1
	if sk.cycle {
		segs = n
	}
	r := 1 / sk.tension
	for i := 0; i < segs; i++ {
		phi := -sk.psi(i+1) - theta[i+1]
		p2, p3 := controlPoints(phi, theta[i], r, r, sk.delta(i))
		c.post[i] = sk.z(i) + p2
		c.pre[wrap(i+1, n)] = sk.z(i+1) - p3
	}
	return c
}

func hobbyParamsAlphaBeta(theta, phi float64) (float64, float64) {
	constA := 1.41421356     // sqrt(2) -- empiric constants, as explained by J.Hobby
	constB := 0.0625         // 1/16
	constC := 0.38196601125  // (3 - sqrt(5)) / 2
	constCC := 0.61803398875 // 1 - c
	st, ct := math.Sincos(theta) // in-angle
	sf, cf := math.Sincos(phi)   // out-angle
	alpha := constA * (st - constB*sf) * (sf - constB*st) * (ct - cf)
	beta := 1 + constCC*ct + constC*cf
	return alpha, beta
}

// Calculate control point offsets between z.i and z.[i+1].
func controlPoints(phi, theta, a, b float64, dvec tubegeom.Pair) (tubegeom.Pair, tubegeom.Pair) {
	alpha, beta := hobbyParamsAlphaBeta(theta, phi)
	rho := (2 + alpha) / beta
	sigma := (2 - alpha) / beta
	uv1 := dvec.Rotated(theta)
	uv2 := dvec.Rotated(-phi)
	return uv1.Scaled(a / 3 * rho), uv2.Scaled(b / 3 * sigma)
}

func bezier2D(t float64, z0, c0, c1, z1 tubegeom.Pair) tubegeom.Pair {
	k := 1 - t
	return z0.Scaled(k*k*k) + c0.Scaled(3*k*k*t) + c1.Scaled(3*k*t*t) + z1.Scaled(t*t*t)
}

// Reduce an angle to fit into -pi .. pi.
func reduceAngle(a float64) float64 {
	if math.Abs(a) > math.Pi {
		if a > 0 {
			a -= 2 * math.Pi
		} else {
			a += 2 * math.Pi
		}
	}
	return a
}

func wrap(i, n int) int {
	i %= n
	if i < 0 {
		i += n
	}
	return i
}

func square(a float64) float64 {
	return a * a
}

func rad2deg(a float64) float64 {
	return a * 180 / math.Pi
}

func ptstring(p tubegeom.Pair, iscontrol bool) string {
	if iscontrol {
		return fmt.Sprintf("(%.4f,%.4f)", tubegeom.Round(p.X()), tubegeom.Round(p.Y()))
	}
	return fmt.Sprintf("(%.4g,%.4g)", tubegeom.Round(p.X()), tubegeom.Round(p.Y()))
}
