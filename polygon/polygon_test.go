package polygon

import (
	"errors"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/npillmayer/tubegeom"
	"github.com/npillmayer/tubegeom/curve"
	"github.com/npillmayer/tubegeom/tube"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"
)

func TestBuilder(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	pg := NullPolygon().Knot(tubegeom.P(0, 0)).Knot(tubegeom.P(1, 3)).Knot(tubegeom.P(3, 0)).Cycle()
	L().Infof("pg = %s", AsString(pg))
	if pg.N() != 3 {
		t.Fail()
	}
	assert.True(t, pg.IsCycle())
	assert.InDelta(t, 4.5, pg.Area(), 1e-9)
	assert.Less(t, pg.SignedArea(), 0.0) // clockwise
	assert.Equal(t, "(0,0) -- (1,3) -- (3,0) -- cycle", AsString(pg))
	assert.Panics(t, func() { pg.Knot(tubegeom.P(5, 5)) })
}

func TestBox(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	box := Box(tubegeom.P(0, 5), tubegeom.P(4, 1))
	L().Infof("box = %s", AsString(box))
	if box.N() != 4 {
		t.Fail()
	}
	assert.InDelta(t, 16.0, box.SignedArea(), 1e-9)
	lo, hi := box.BoundingBox()
	assert.Equal(t, tubegeom.P(0, 1), lo)
	assert.Equal(t, tubegeom.P(4, 5), hi)
	assert.True(t, box.Contains(tubegeom.P(2, 3)))
	assert.False(t, box.Contains(tubegeom.P(5, 3)))
}

func TestConvexHull(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	hull := ConvexHull([]tubegeom.Pair{
		tubegeom.P(1, 1), tubegeom.P(0, 0), tubegeom.P(2, 0), tubegeom.P(1, 0.5),
		tubegeom.P(2, 2), tubegeom.P(0, 2), tubegeom.P(1, 2), // (1,2) is collinear
	})
	L().Infof("hull = %s", AsString(hull))
	assert.Equal(t, 4, hull.N())
	assert.InDelta(t, 4.0, hull.SignedArea(), 1e-9) // counterclockwise
	assert.Equal(t, tubegeom.P(0, 0), hull.Pt(0))
	line := ConvexHull([]tubegeom.Pair{tubegeom.P(0, 0), tubegeom.P(1, 1), tubegeom.P(2, 2)})
	assert.Equal(t, 2, line.N())
	assert.Equal(t, 0.0, line.Area())
	assert.Equal(t, 0, ConvexHull(nil).N())
}

func TestBooleanOperations(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	a := Box(tubegeom.P(0, 0), tubegeom.P(2, 2))
	b := Box(tubegeom.P(1, 1), tubegeom.P(3, 3))
	u := Union(a, b)
	require.Len(t, u, 1)
	assert.InDelta(t, 7.0, u.Area(), 1e-9)
	assert.InDelta(t, 1.0, Union(a).Intersection(Union(b)).Area(), 1e-9)
	assert.InDelta(t, 3.0, Union(a).Difference(Union(b)).Area(), 1e-9)
	assert.Empty(t, Union())
}

func TestRegionWithHole(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	outer := Union(Box(tubegeom.P(0, 0), tubegeom.P(4, 4)))
	ring := outer.Difference(Union(Box(tubegeom.P(1, 1), tubegeom.P(2, 2))))
	for _, c := range ring {
		L().Infof("contour = %s", AsString(c))
	}
	require.Len(t, ring, 2)
	assert.InDelta(t, 15.0, ring.Area(), 1e-9)
	assert.False(t, ring.Contains(tubegeom.P(1.5, 1.5)))
	assert.True(t, ring.Contains(tubegeom.P(3, 3)))
}

func straightTube(t *testing.T) *tube.Tube {
	path := curve.NewPath(curve.NewLine(tubegeom.V(0, 0, 0), tubegeom.V(1, 0, 0)))
	tb, err := tube.New(path, tube.WithTubularSegments(4), tube.WithRadialSegments(8),
		tube.WithRadius([]float64{0.5}))
	require.NoError(t, err)
	return tb
}

func TestFootprintOfStraightTube(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	tb := straightTube(t)
	for _, pr := range []Projection{XY, XZ} {
		fp, err := Footprint(tb, pr)
		require.NoError(t, err)
		require.Len(t, fp, 1, "%s", pr)
		assert.InDelta(t, 1.0, fp.Area(), 1e-6, "%s", pr) // length 1 x diameter 1
		lo, hi := fp[0].BoundingBox()
		assert.InDelta(t, 0.0, lo.X(), 1e-9)
		assert.InDelta(t, 1.0, hi.X(), 1e-9)
		assert.InDelta(t, -0.5, lo.Y(), 1e-9)
		assert.InDelta(t, 0.5, hi.Y(), 1e-9)
	}
}

func TestFootprintOfBentTube(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	path := curve.NewPath(curve.NewCatmullRom([]r3.Vec{
		tubegeom.V(0, 0, 0), tubegeom.V(2, 1, 0), tubegeom.V(3, 3, 0), tubegeom.V(1, 4, 0),
	}, false))
	tb, err := tube.New(path, tube.WithTubularSegments(16), tube.WithRadialSegments(8),
		tube.WithRadius([]float64{0.25}))
	require.NoError(t, err)
	fp, err := Footprint(tb, XY)
	require.NoError(t, err)
	require.NotEmpty(t, fp)
	for i := 0; i <= 16; i++ {
		p := XY.Project(path.PointAt(float64(i) / 16))
		assert.True(t, fp.Contains(p), "path point %d", i)
	}
	// roughly length x diameter, never more than the sum of the segment hulls
	area := fp.Area()
	length := path.Length()
	assert.Greater(t, area, 0.8*length*0.5)
	assert.Less(t, area, 1.2*length*0.5+0.5)
	a, err := FootprintArea(tb, XY)
	require.NoError(t, err)
	assert.InDelta(t, area, a, 1e-12)
}

func TestFootprintOfClosedTube(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	path := curve.NewPath(curve.NewCatmullRom([]r3.Vec{
		tubegeom.V(2, 0, 0), tubegeom.V(0, 2, 0), tubegeom.V(-2, 0, 0), tubegeom.V(0, -2, 0),
	}, true))
	tb, err := tube.New(path, tube.WithTubularSegments(24), tube.WithRadialSegments(8),
		tube.WithRadius([]float64{0.25}), tube.Closed(true))
	require.NoError(t, err)
	fp, err := Footprint(tb, XY)
	require.NoError(t, err)
	for i := 0; i < 24; i++ {
		p := XY.Project(path.PointAt(float64(i) / 24))
		assert.True(t, fp.Contains(p), "path point %d", i)
	}
	assert.False(t, fp.Contains(tubegeom.P(0, 0)), "center of the ring is uncovered")
	length := path.Length()
	assert.InDelta(t, length*0.5, fp.Area(), 0.15*length*0.5)
}

func TestConvexHullDropsAlmostCollinearPoints(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	hull := ConvexHull([]tubegeom.Pair{
		tubegeom.P(0, 0), tubegeom.P(0.5, -1e-12), tubegeom.P(1, 0),
		tubegeom.P(1, 1), tubegeom.P(0.5, 1+1e-12), tubegeom.P(0, 1),
	})
	assert.Equal(t, 4, hull.N(), "hull = %s", AsString(hull))
	assert.InDelta(t, 1.0, hull.Area(), 1e-9)
}

func TestFootprintErrors(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	_, err := Footprint(nil, XY)
	assert.True(t, errors.Is(err, ErrNoMesh))
	_, err = Footprint(&tube.Tube{}, XY)
	assert.True(t, errors.Is(err, ErrNoMesh))
	_, err = FootprintArea(straightTube(t), Projection(7))
	assert.True(t, errors.Is(err, ErrUnknownProjection))
	assert.Equal(t, "Projection(7)", Projection(7).String())
	assert.Equal(t, tubegeom.P(2, 3), YZ.Project(tubegeom.V(1, 2, 3)))
}
