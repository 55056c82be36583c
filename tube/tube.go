package tube

import (
	"errors"
	"fmt"

	"github.com/npillmayer/schuko"
	"github.com/npillmayer/tubegeom"
	"github.com/npillmayer/tubegeom/curve"
	"github.com/npillmayer/tubegeom/mesh"
	"gonum.org/v1/gonum/spatial/r3"
)

var (
	// ErrNilPath indicates a missing path.
	ErrNilPath = errors.New("tube path must not be nil")
	// ErrInvalidTubularSegments indicates a non-positive number of longitudinal segments.
	ErrInvalidTubularSegments = errors.New("tubular segments must be positive")
	// ErrInvalidRadialSegments indicates a non-positive number of radial segments.
	ErrInvalidRadialSegments = errors.New("radial segments must be positive")
	// ErrEmptyRadius indicates a radius profile without entries.
	ErrEmptyRadius = errors.New("radius profile is empty")
	// ErrInvalidRadius indicates a negative or non-finite radius.
	ErrInvalidRadius = errors.New("radius must be finite and non-negative")
	// ErrTooFewFrames indicates a path delivering fewer frames than requested.
	ErrTooFewFrames = errors.New("path returned too few frames")
)

// Path is what a tube needs from its path: points at a fraction u ∈ [0,1]
// of the arc length, and segments+1 rotation-minimizing frames.
// *curve.Path implements it.
type Path interface {
	PointAt(u float64) r3.Vec
	ComputeFrames(segments int, closed bool) curve.Frames
}

// Params are the construction parameters of a tube.
type Params struct {
	TubularSegments int       // longitudinal divisions T
	Radius          []float64 // radius per ring
	RadialSegments  int       // divisions around the circumference S
	Closed          bool      // join the last ring to the first one
	MaxRadius       float64   // clamp for radii; < 0 disables, 0 selects the default
}

// DefaultParams returns 10 tubular segments, a radius of 1 for ten rings,
// 8 radial segments, open, clamped at 1.
func DefaultParams() Params {
	return paramsFromSettings(tubegeom.DefaultSettings())
}

// ParamsFrom returns default parameters, overridden by settings found in conf.
func ParamsFrom(conf schuko.Configuration) Params {
	return paramsFromSettings(tubegeom.SettingsFrom(conf))
}

func paramsFromSettings(s tubegeom.Settings) Params {
	radius := make([]float64, 10)
	for i := range radius {
		radius[i] = 1
	}
	return Params{
		TubularSegments: s.TubularSegments,
		Radius:          radius,
		RadialSegments:  s.RadialSegments,
		MaxRadius:       s.MaxRadius,
	}
}

// maxRadius resolves the clamp value; ok is false if clamping is disabled.
func (p Params) maxRadius() (r float64, ok bool) {
	switch {
	case p.MaxRadius < 0:
		return 0, false
	case p.MaxRadius == 0:
		return tubegeom.DefaultSettings().MaxRadius, true
	}
	return p.MaxRadius, true
}

// Option changes construction parameters.
type Option func(*Params)

// WithParams replaces all parameters.
func WithParams(params Params) Option {
	return func(p *Params) { *p = params }
}

// WithTubularSegments sets the number of longitudinal segments.
func WithTubularSegments(n int) Option {
	return func(p *Params) { p.TubularSegments = n }
}

// WithRadius sets the radius profile, one value per ring.
func WithRadius(radius []float64) Option {
	return func(p *Params) { p.Radius = radius }
}

// WithRadialSegments sets the number of segments around the circumference.
func WithRadialSegments(n int) Option {
	return func(p *Params) { p.RadialSegments = n }
}

// Closed selects whether the tube is closed.
func Closed(closed bool) Option {
	return func(p *Params) { p.Closed = closed }
}

// WithMaxRadius sets the radius clamp. r < 0 disables clamping.
func WithMaxRadius(r float64) Option {
	return func(p *Params) { p.MaxRadius = r }
}

// Tube is a mesh swept along a path, together with the frames used to
// orient its rings.
type Tube struct {
	params    Params
	path      Path
	Mesh      *mesh.Mesh
	Tangents  []r3.Vec
	Normals   []r3.Vec
	Binormals []r3.Vec
}

// New builds a tube along path. Options override the defaults.
func New(path Path, opts ...Option) (*Tube, error) {
	params := DefaultParams()
	for _, opt := range opts {
		opt(&params)
	}
	return NewWithParams(path, params)
}

// NewWithParams builds a tube along path.
func NewWithParams(path Path, params Params) (*Tube, error) {
	params.Radius = append([]float64(nil), params.Radius...)
	frames, m, err := build(path, params)
	if err != nil {
		return nil, err
	}
	return &Tube{
		params:    params,
		path:      path,
		Mesh:      m,
		Tangents:  frames.Tangents,
		Normals:   frames.Normals,
		Binormals: frames.Binormals,
	}, nil
}

// Build sweeps a tube along path and returns its mesh, with radii clamped
// at 1.
func Build(path Path, tubularSegments int, radius []float64, radialSegments int, closed bool) (*mesh.Mesh, error) {
	_, m, err := build(path, Params{
		TubularSegments: tubularSegments,
		Radius:          radius,
		RadialSegments:  radialSegments,
		Closed:          closed,
	})
	return m, err
}

// Params returns a copy of the construction parameters.
func (t *Tube) Params() Params {
	p := t.params
	p.Radius = append([]float64(nil), t.params.Radius...)
	return p
}

// Path returns the path the tube was built along.
func (t *Tube) Path() Path {
	return t.path
}

// build validates the parameters and generates frames and mesh.
func build(path Path, p Params) (curve.Frames, *mesh.Mesh, error) {
	if err := validatePath(path); err != nil {
		return curve.Frames{}, nil, err
	}
	if p.TubularSegments <= 0 {
		return curve.Frames{}, nil, fmt.Errorf("%w, is %d", ErrInvalidTubularSegments, p.TubularSegments)
	}
	if p.RadialSegments <= 0 {
		return curve.Frames{}, nil, fmt.Errorf("%w, is %d", ErrInvalidRadialSegments, p.RadialSegments)
	}
	rings := p.TubularSegments + 1
	if p.Closed {
		rings = p.TubularSegments // the last ring repeats the first one
	}
	maxR, clamp := p.maxRadius()
	radii, err := effectiveRadii(p.Radius, rings, maxR, clamp)
	if err != nil {
		return curve.Frames{}, nil, err
	}
	frames := path.ComputeFrames(p.TubularSegments, p.Closed)
	if n := p.TubularSegments + 1; len(frames.Tangents) < n || len(frames.Normals) < n || len(frames.Binormals) < n {
		return curve.Frames{}, nil, fmt.Errorf("%w: need %d, have %d", ErrTooFewFrames, n, frames.Len())
	}
	tracer().Debugf("building tube: T=%d, S=%d, closed=%v", p.TubularSegments, p.RadialSegments, p.Closed)
	positions, normals := generateRings(path, frames, radii, p.TubularSegments, p.RadialSegments, p.Closed)
	m := &mesh.Mesh{
		Positions: positions,
		Normals:   normals,
		UVs:       generateUVs(p.TubularSegments, p.RadialSegments),
		Faces:     generateFaces(p.TubularSegments, p.RadialSegments),
	}
	tracer().Debugf("tube mesh has %d vertices, %d triangles", m.VertexCount(), m.TriangleCount())
	return frames, m, nil
}

func validatePath(path Path) error {
	if path == nil {
		return ErrNilPath
	}
	if cp, ok := path.(*curve.Path); ok {
		if cp == nil {
			return ErrNilPath
		}
		if err := cp.Validate(); err != nil {
			return fmt.Errorf("invalid tube path: %w", err)
		}
	}
	return nil
}
