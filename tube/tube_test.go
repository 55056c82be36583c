package tube

import (
	"errors"
	"math"
	"testing"

	"github.com/npillmayer/schuko/schukonf/testconfig"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/npillmayer/tubegeom"
	"github.com/npillmayer/tubegeom/curve"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"
)

func unitLine() *curve.Path {
	return curve.NewPath(curve.NewLine(tubegeom.V(0, 0, 0), tubegeom.V(1, 0, 0)))
}

func bentPath(closed bool) *curve.Path {
	return curve.NewPath(curve.NewCatmullRom([]r3.Vec{
		tubegeom.V(0, 0, 0), tubegeom.V(2, 1, 0), tubegeom.V(3, 3, 1),
		tubegeom.V(1, 4, 2), tubegeom.V(-1, 2, 1),
	}, closed))
}

func TestStraightLineScenario(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	m, err := Build(unitLine(), 1, []float64{1, 1}, 4, false)
	require.NoError(t, err)
	assert.Equal(t, 10, m.VertexCount())
	assert.Equal(t, 8, m.TriangleCount())
	assert.Len(t, m.Indices(), 24)
	require.NoError(t, m.Validate())
	tangent := tubegeom.V(1, 0, 0)
	for i, n := range m.Normals {
		assert.InDelta(t, 0.0, r3.Dot(n, tangent), 1e-9, "normal %d", i)
	}
	// ring directions start at -N and turn towards B
	assert.True(t, tubegeom.VecEqual(tubegeom.V(0, 0, 1), m.Normals[0]))
	assert.True(t, tubegeom.VecEqual(tubegeom.V(0, 1, 0), m.Normals[1]))
	assert.True(t, tubegeom.VecEqual(tubegeom.V(0, 0, -1), m.Normals[2]))
	assert.True(t, tubegeom.VecEqual(tubegeom.V(1, -1, 0), m.Positions[8]))
	assert.Equal(t, [3]int{0, 5, 1}, [3]int(m.Faces[0]))
	assert.Equal(t, [3]int{5, 6, 1}, [3]int(m.Faces[1]))
}

func TestVertexAndIndexCounts(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	for _, c := range []struct {
		T, S   int
		closed bool
	}{
		{1, 3, false}, {10, 8, false}, {7, 5, true}, {32, 12, true}, {3, 1, false},
	} {
		tb, err := New(bentPath(c.closed), WithTubularSegments(c.T), WithRadialSegments(c.S),
			Closed(c.closed), WithRadius([]float64{0.3}))
		require.NoError(t, err)
		m := tb.Mesh
		assert.Equal(t, (c.T+1)*(c.S+1), m.VertexCount(), "%+v", c)
		assert.Len(t, m.Normals, m.VertexCount())
		assert.Len(t, m.UVs, m.VertexCount())
		assert.Equal(t, 2*c.T*c.S, m.TriangleCount(), "%+v", c)
		assert.Len(t, m.Indices(), 6*c.T*c.S)
		assert.Len(t, tb.Tangents, c.T+1)
		assert.NoError(t, m.Validate())
	}
}

func TestClosedSeam(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	T, S := 16, 6
	tb, err := New(bentPath(true), WithTubularSegments(T), WithRadialSegments(S), Closed(true))
	require.NoError(t, err)
	m := tb.Mesh
	last := T * (S + 1)
	for j := 0; j <= S; j++ {
		assert.True(t, tubegeom.VecEqual(m.Positions[j], m.Positions[last+j]), "vertex %d", j)
		assert.Equal(t, 0.0, m.UVs[j].X())
		assert.Equal(t, 1.0, m.UVs[last+j].X())
		assert.Equal(t, m.UVs[j].Y(), m.UVs[last+j].Y())
	}
}

func TestNormalsAreUnitAndVerticesOnRings(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	T, S := 12, 9
	radius := []float64{0.2, 0.4, 5, 0.6, 0.8, 1, 0.9, 0.7, 0.5, 0.3, 0.1, 0.05, 0.75}
	for _, closed := range []bool{false, true} {
		path := bentPath(closed)
		m, err := Build(path, T, radius, S, closed)
		require.NoError(t, err)
		for i := 0; i <= T; i++ {
			k := i
			if closed && i == T {
				k = 0 // last ring repeats the first one
			}
			p := path.PointAt(float64(k) / float64(T))
			r := math.Min(1, radius[k])
			for j := 0; j <= S; j++ {
				v := i*(S+1) + j
				n := m.Normals[v]
				assert.InDelta(t, 1.0, r3.Norm(n), 1e-5)
				want := r3.Add(p, r3.Scale(r, n))
				assert.True(t, tubegeom.VecEqual(want, m.Positions[v]), "closed=%v, vertex %d/%d", closed, i, j)
				assert.InDelta(t, r, tubegeom.Distance(p, m.Positions[v]), 1e-9)
			}
		}
	}
}

func TestClosedTubeIgnoresLastRadius(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	T, S := 6, 4
	radius := []float64{0.3, 0.5, 0.5, 0.5, 0.5, 0.5, 0.9}
	path := bentPath(true)
	m, err := Build(path, T, radius, S, true)
	require.NoError(t, err)
	start := path.PointAt(0)
	for j := 0; j <= S; j++ {
		v := T*(S+1) + j
		assert.InDelta(t, 0.3, tubegeom.Distance(start, m.Positions[v]), 1e-9, "vertex %d", j)
		assert.True(t, tubegeom.VecEqual(m.Positions[j], m.Positions[v]), "vertex %d", j)
	}
}

func TestRadiusClamp(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	path := unitLine()
	for _, c := range []struct {
		maxR, want float64
	}{
		{0, 1}, {1, 1}, {2.5, 2.5}, {-1, 5},
	} {
		tb, err := New(path, WithTubularSegments(2), WithRadius([]float64{5}), WithMaxRadius(c.maxR))
		require.NoError(t, err)
		for k, pos := range tb.Mesh.Positions {
			axis := tubegeom.V(pos.X, 0, 0)
			assert.InDelta(t, c.want, tubegeom.Distance(axis, pos), 1e-9, "max %g, vertex %d", c.maxR, k)
		}
	}
}

func TestShortProfileHoldsLastValue(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	tb, err := New(unitLine()) // ten radii for eleven rings
	require.NoError(t, err)
	p := tb.Params()
	assert.Equal(t, 10, p.TubularSegments)
	assert.Len(t, p.Radius, 10)
	assert.Equal(t, 11*9, tb.Mesh.VertexCount())
	tb, err = New(unitLine(), WithRadius([]float64{0.25, 0.5}))
	require.NoError(t, err)
	last := tb.Mesh.Positions[len(tb.Mesh.Positions)-1]
	assert.InDelta(t, 0.5, math.Hypot(last.Y, last.Z), 1e-9)
}

type flatPath struct{}

func (flatPath) PointAt(u float64) r3.Vec { return tubegeom.V(u, 0, 0) }
func (flatPath) ComputeFrames(segments int, closed bool) curve.Frames {
	return curve.Frames{Tangents: []r3.Vec{tubegeom.V(1, 0, 0)}}
}

func TestValidation(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	var nilPath *curve.Path
	cases := []struct {
		path Path
		opts []Option
		err  error
	}{
		{nil, nil, ErrNilPath},
		{nilPath, nil, ErrNilPath},
		{unitLine(), []Option{WithTubularSegments(0)}, ErrInvalidTubularSegments},
		{unitLine(), []Option{WithRadialSegments(-2)}, ErrInvalidRadialSegments},
		{unitLine(), []Option{WithRadius(nil)}, ErrEmptyRadius},
		{unitLine(), []Option{WithRadius([]float64{1, math.NaN()})}, ErrInvalidRadius},
		{unitLine(), []Option{WithRadius([]float64{-0.5})}, ErrInvalidRadius},
		{flatPath{}, nil, ErrTooFewFrames},
		{curve.NewPath(curve.NewCatmullRom(nil, false)), nil, curve.ErrTooFewPoints},
	}
	for i, c := range cases {
		_, err := New(c.path, c.opts...)
		if !errors.Is(err, c.err) {
			t.Errorf("case %d: expected %v, got %v", i, c.err, err)
		}
	}
}

func TestParamsFromConfiguration(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	p := ParamsFrom(testconfig.Conf{
		tubegeom.KeyTubularSegments: "20",
		tubegeom.KeyRadialSegments:  "6",
		tubegeom.KeyMaxRadius:       "-1",
	})
	assert.Equal(t, 20, p.TubularSegments)
	assert.Equal(t, 6, p.RadialSegments)
	assert.Equal(t, -1.0, p.MaxRadius)
	assert.Len(t, p.Radius, 10)
	tb, err := New(unitLine(), WithParams(p), WithRadius([]float64{3}))
	require.NoError(t, err)
	assert.Equal(t, 21*7, tb.Mesh.VertexCount())
	assert.InDelta(t, 3.0, math.Hypot(tb.Mesh.Positions[0].Y, tb.Mesh.Positions[0].Z), 1e-9)
	assert.Equal(t, DefaultParams(), ParamsFrom(nil))
}

func TestTubeKeepsItsInputs(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	radius := []float64{0.5, 0.5, 0.5}
	path := unitLine()
	tb, err := New(path, WithTubularSegments(2), WithRadius(radius))
	require.NoError(t, err)
	radius[0] = 0.1
	assert.Equal(t, 0.5, tb.Params().Radius[0])
	assert.Same(t, path, tb.Path())
	assert.Len(t, tb.Normals, 3)
	assert.Len(t, tb.Binormals, 3)
}
