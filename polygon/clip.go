package polygon

import (
	"github.com/akavel/polyclip-go"
	"github.com/npillmayer/tubegeom"
)

// Region is a set of contours, as returned by boolean operations. Contours
// nested an odd number of times inside others are holes.
type Region []*Polygon

// Union merges polygons into a region.
func Union(pgs ...*Polygon) Region {
	var acc polyclip.Polygon
	for _, pg := range pgs {
		if pg == nil || pg.N() < 3 {
			continue
		}
		acc = acc.Construct(polyclip.UNION, polyclip.Polygon{pg.contour()})
	}
	return fromPolyclip(acc)
}

// Intersection returns the area covered by both r and clip.
func (r Region) Intersection(clip Region) Region {
	return fromPolyclip(r.toPolyclip().Construct(polyclip.INTERSECTION, clip.toPolyclip()))
}

// Difference returns the area covered by r but not by clip.
func (r Region) Difference(clip Region) Region {
	return fromPolyclip(r.toPolyclip().Construct(polyclip.DIFFERENCE, clip.toPolyclip()))
}

// Area sums contour areas, subtracting holes.
func (r Region) Area() float64 {
	area := 0.0
	for i, pg := range r {
		if r.depth(i)%2 == 1 {
			area -= pg.Area()
		} else {
			area += pg.Area()
		}
	}
	return area
}

// Contains is true if p is covered by the region (even-odd rule).
func (r Region) Contains(p tubegeom.Pair) bool {
	inside := false
	for _, pg := range r {
		if pg.Contains(p) {
			inside = !inside
		}
	}
	return inside
}

// depth counts the contours enclosing contour i.
func (r Region) depth(i int) int {
	d := 0
	probe := r[i].Pt(0)
	for j, pg := range r {
		if j != i && pg.Contains(probe) {
			d++
		}
	}
	return d
}

func (r Region) toPolyclip() polyclip.Polygon {
	var p polyclip.Polygon
	for _, pg := range r {
		if pg.N() > 0 {
			p.Add(pg.contour())
		}
	}
	return p
}

func fromPolyclip(p polyclip.Polygon) Region {
	r := make(Region, 0, len(p))
	for _, c := range p {
		if len(c) > 0 {
			r = append(r, fromContour(c))
		}
	}
	return r
}
