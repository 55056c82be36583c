package curve

import (
	"fmt"
	"math"

	"github.com/npillmayer/tubegeom"
	"gonum.org/v1/gonum/spatial/r3"
)

// TypeCatmullRom is the registered type name of CatmullRom.
const TypeCatmullRom = "CatmullRomCurve3"

// CatmullRomType selects the parameterization of a Catmull-Rom spline.
type CatmullRomType string

// Catmull-Rom parameterizations.
const (
	Centripetal CatmullRomType = "centripetal"
	Chordal     CatmullRomType = "chordal"
	Uniform     CatmullRomType = "catmullrom" // uses Tension
)

// CatmullRom is a Catmull-Rom spline interpolating Points. An open spline
// extrapolates phantom points beyond its ends.
type CatmullRom struct {
	Points    []r3.Vec       `json:"points" yaml:"points"`
	Closed    bool           `json:"closed" yaml:"closed"`
	CurveType CatmullRomType `json:"curveType" yaml:"curveType"`
	Tension   float64        `json:"tension" yaml:"tension"`
}

// NewCatmullRom creates a centripetal Catmull-Rom spline.
func NewCatmullRom(points []r3.Vec, closed bool) *CatmullRom {
	return &CatmullRom{
		Points:    points,
		Closed:    closed,
		CurveType: Centripetal,
		Tension:   0.5,
	}
}

// Type returns TypeCatmullRom.
func (c *CatmullRom) Type() string { return TypeCatmullRom }

// Validate checks the number of points, their coordinates and the curve type.
func (c *CatmullRom) Validate() error {
	if len(c.Points) < 2 {
		return fmt.Errorf("%w: Catmull-Rom needs 2 points, has %d", ErrTooFewPoints, len(c.Points))
	}
	if err := checkFinite(c.Points...); err != nil {
		return err
	}
	switch c.CurveType {
	case "", Centripetal, Chordal, Uniform:
		return nil
	}
	return fmt.Errorf("unknown Catmull-Rom type %q", c.CurveType)
}

// Point returns the point at t.
func (c *CatmullRom) Point(t float64) r3.Vec {
	l := len(c.Points)
	switch l {
	case 0:
		return r3.Vec{}
	case 1:
		return c.Points[0]
	}
	var p float64
	if c.Closed {
		p = float64(l) * t
	} else {
		p = float64(l-1) * t
	}
	intPoint := int(math.Floor(p))
	weight := p - float64(intPoint)
	if c.Closed {
		if intPoint <= 0 {
			intPoint += (int(math.Floor(math.Abs(float64(intPoint))/float64(l))) + 1) * l
		}
	} else if weight == 0 && intPoint == l-1 {
		intPoint = l - 2
		weight = 1
	} else if intPoint < 0 || intPoint > l-2 { // t outside [0,1]: extend the end segments
		k := max(0, min(intPoint, l-2))
		weight += float64(intPoint - k)
		intPoint = k
	}
	var p0, p3 r3.Vec
	if c.Closed || intPoint > 0 {
		p0 = c.Points[(intPoint-1)%l]
	} else { // extrapolate first point
		p0 = r3.Sub(r3.Scale(2, c.Points[0]), c.Points[1])
	}
	p1 := c.Points[intPoint%l]
	p2 := c.Points[(intPoint+1)%l]
	if c.Closed || intPoint+2 < l {
		p3 = c.Points[(intPoint+2)%l]
	} else { // extrapolate last point
		p3 = r3.Sub(r3.Scale(2, c.Points[l-1]), c.Points[l-2])
	}
	var px, py, pz cubicPoly
	if c.CurveType == Uniform {
		px = catmullRomPoly(p0.X, p1.X, p2.X, p3.X, c.Tension)
		py = catmullRomPoly(p0.Y, p1.Y, p2.Y, p3.Y, c.Tension)
		pz = catmullRomPoly(p0.Z, p1.Z, p2.Z, p3.Z, c.Tension)
	} else {
		pow := 0.25 // centripetal
		if c.CurveType == Chordal {
			pow = 0.5
		}
		dt0 := math.Pow(r3.Norm2(r3.Sub(p0, p1)), pow)
		dt1 := math.Pow(r3.Norm2(r3.Sub(p1, p2)), pow)
		dt2 := math.Pow(r3.Norm2(r3.Sub(p2, p3)), pow)
		// safety check for repeated points
		if dt1 < 1e-4 {
			dt1 = 1.0
		}
		if dt0 < 1e-4 {
			dt0 = dt1
		}
		if dt2 < 1e-4 {
			dt2 = dt1
		}
		px = nonuniformCatmullRomPoly(p0.X, p1.X, p2.X, p3.X, dt0, dt1, dt2)
		py = nonuniformCatmullRomPoly(p0.Y, p1.Y, p2.Y, p3.Y, dt0, dt1, dt2)
		pz = nonuniformCatmullRomPoly(p0.Z, p1.Z, p2.Z, p3.Z, dt0, dt1, dt2)
	}
	return tubegeom.V(px.calc(weight), py.calc(weight), pz.calc(weight))
}

// cubicPoly is a cubic polynomial c0 + c1·t + c2·t² + c3·t³ in one coordinate.
type cubicPoly struct {
	c0, c1, c2, c3 float64
}

// newCubicPoly finds the cubic with p(0)=x0, p(1)=x1, p'(0)=t0, p'(1)=t1.
func newCubicPoly(x0, x1, t0, t1 float64) cubicPoly {
	return cubicPoly{
		c0: x0,
		c1: t0,
		c2: -3*x0 + 3*x1 - 2*t0 - t1,
		c3: 2*x0 - 2*x1 + t0 + t1,
	}
}

func catmullRomPoly(x0, x1, x2, x3, tension float64) cubicPoly {
	return newCubicPoly(x1, x2, tension*(x2-x0), tension*(x3-x1))
}

func nonuniformCatmullRomPoly(x0, x1, x2, x3, dt0, dt1, dt2 float64) cubicPoly {
	// tangents on [x1,x2] for knot spacings dt0, dt1, dt2
	t1 := (x1-x0)/dt0 - (x2-x0)/(dt0+dt1) + (x2-x1)/dt1
	t2 := (x2-x1)/dt1 - (x3-x1)/(dt1+dt2) + (x3-x2)/dt2
	// rescale tangents for parameter range [0,1]
	return newCubicPoly(x1, x2, t1*dt1, t2*dt1)
}

func (p cubicPoly) calc(t float64) float64 {
	t2 := t * t
	return p.c0 + p.c1*t + p.c2*t2 + p.c3*t2*t
}
