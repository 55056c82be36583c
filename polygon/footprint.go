package polygon

import (
	"errors"
	"fmt"

	"github.com/npillmayer/tubegeom"
	"github.com/npillmayer/tubegeom/tube"
	"gonum.org/v1/gonum/spatial/r3"
)

// Projection selects the coordinate plane a footprint is projected onto.
type Projection int

// Projections drop the coordinate not named.
const (
	XY Projection = iota
	XZ
	YZ
)

func (pr Projection) String() string {
	switch pr {
	case XY:
		return "XY"
	case XZ:
		return "XZ"
	case YZ:
		return "YZ"
	}
	return fmt.Sprintf("Projection(%d)", int(pr))
}

// Project maps v onto the plane.
func (pr Projection) Project(v r3.Vec) tubegeom.Pair {
	switch pr {
	case XZ:
		return tubegeom.P(v.X, v.Z)
	case YZ:
		return tubegeom.P(v.Y, v.Z)
	}
	return tubegeom.P(v.X, v.Y)
}

// ErrNoMesh is returned for footprints of tubes without geometry.
var ErrNoMesh = errors.New("tube has no mesh")

// ErrUnknownProjection is returned for projections other than XY, XZ or YZ.
var ErrUnknownProjection = errors.New("unknown projection")

// bandOverlap is the fraction of a segment by which neighbouring segment hulls
// overlap. Hulls sharing a ring of vertices make polyclip split edges at
// almost-coincident points.
const bandOverlap = 0.05

// Footprint computes the region covered by the shadow of a tube, projected
// onto a coordinate plane. Every tubular segment of the tube contributes the
// convex hull of its two bounding rings, pushed apart along the segment by
// bandOverlap, so that consecutive hulls overlap instead of touching. The
// end rings of an open tube stay in place. The footprint is the union of
// these hulls. Degenerate hulls, i.e. segments seen exactly end-on, are
// skipped.
func Footprint(t *tube.Tube, pr Projection) (Region, error) {
	if t == nil || t.Mesh == nil || t.Mesh.VertexCount() == 0 {
		return nil, ErrNoMesh
	}
	if pr < XY || pr > YZ {
		return nil, fmt.Errorf("%w: %d", ErrUnknownProjection, int(pr))
	}
	ringSize := t.Params().RadialSegments + 1
	rings := projectedRings(t, pr, ringSize)
	closed := t.Params().Closed
	hulls := make([]*Polygon, 0, len(rings))
	band := make([]tubegeom.Pair, 0, 2*ringSize)
	for i := 0; i+1 < len(rings); i++ {
		d := (ringCenter(rings[i+1]) - ringCenter(rings[i])).Scaled(bandOverlap)
		back, ahead := -d, d
		if i == 0 && !closed {
			back = 0
		}
		if i+2 == len(rings) && !closed {
			ahead = 0
		}
		band = band[:0]
		for _, p := range rings[i] {
			band = append(band, p+back)
		}
		for _, p := range rings[i+1] {
			band = append(band, p+ahead)
		}
		hull := ConvexHull(band)
		if hull.N() < 3 || tubegeom.Is0(hull.Area()) {
			continue
		}
		hulls = append(hulls, hull)
	}
	L().Debugf("footprint %s: %d of %d segments contribute", pr, len(hulls), len(rings)-1)
	fp := Union(hulls...)
	L().Infof("footprint %s: %d contour(s), area %.4f", pr, len(fp), fp.Area())
	return fp, nil
}

// projectedRings splits the tube's vertices into rings and projects them.
func projectedRings(t *tube.Tube, pr Projection, ringSize int) [][]tubegeom.Pair {
	n := t.Mesh.VertexCount() / ringSize
	rings := make([][]tubegeom.Pair, n)
	for i := range rings {
		ring := make([]tubegeom.Pair, ringSize)
		for j, v := range t.Mesh.Positions[i*ringSize : (i+1)*ringSize] {
			ring[j] = pr.Project(v)
		}
		rings[i] = ring
	}
	return rings
}

// ringCenter averages a ring's vertices. The last vertex repeats the first
// one and is left out.
func ringCenter(ring []tubegeom.Pair) tubegeom.Pair {
	n := len(ring) - 1
	if n < 1 {
		return ring[0]
	}
	var c tubegeom.Pair
	for _, p := range ring[:n] {
		c += p
	}
	return c.Scaled(1 / float64(n))
}

// FootprintArea is a shortcut for the area of the footprint of t.
func FootprintArea(t *tube.Tube, pr Projection) (float64, error) {
	fp, err := Footprint(t, pr)
	if err != nil {
		return 0, err
	}
	return fp.Area(), nil
}
