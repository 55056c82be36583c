package curve

import (
	"math"

	"github.com/npillmayer/tubegeom"
	"gonum.org/v1/gonum/spatial/r3"
)

// machineEpsilon is the difference between 1 and the next float64.
const machineEpsilon = 2.220446049250313e-16

// Frames holds a moving frame sampled along a path. All three slices have
// equal length. Normal and binormal are perpendicular to the tangent.
type Frames struct {
	Tangents  []r3.Vec
	Normals   []r3.Vec
	Binormals []r3.Vec
}

// Len returns the number of samples.
func (f Frames) Len() int {
	return len(f.Tangents)
}

// ComputeFrames computes segments+1 frames at evenly spaced arc-length
// positions i/segments. If closed is set, the twist between the first and
// the last normal is spread evenly across all frames, so the frame at
// the end coincides with the first one. segments < 1 yields no frames.
func (p *Path) ComputeFrames(segments int, closed bool) Frames {
	if segments < 1 {
		return Frames{}
	}
	f := Frames{
		Tangents:  make([]r3.Vec, segments+1),
		Normals:   make([]r3.Vec, segments+1),
		Binormals: make([]r3.Vec, segments+1),
	}
	for i := 0; i <= segments; i++ {
		f.Tangents[i] = p.TangentAt(float64(i) / float64(segments))
	}
	f.Normals[0], f.Binormals[0] = initialNormal(f.Tangents[0])
	for i := 1; i <= segments; i++ {
		normal := f.Normals[i-1]
		axis := r3.Cross(f.Tangents[i-1], f.Tangents[i])
		if r3.Norm(axis) > machineEpsilon {
			theta := math.Acos(tubegeom.Clamp(r3.Dot(f.Tangents[i-1], f.Tangents[i]), -1, 1))
			normal = r3.Rotate(normal, theta, r3.Unit(axis))
		}
		f.Normals[i] = normal
		f.Binormals[i] = r3.Cross(f.Tangents[i], normal)
	}
	if closed {
		theta := math.Acos(tubegeom.Clamp(r3.Dot(f.Normals[0], f.Normals[segments]), -1, 1))
		theta /= float64(segments)
		if r3.Dot(f.Tangents[0], r3.Cross(f.Normals[0], f.Normals[segments])) > 0 {
			theta = -theta
		}
		for i := 1; i <= segments; i++ {
			f.Normals[i] = r3.Rotate(f.Normals[i], theta*float64(i), f.Tangents[i])
			f.Binormals[i] = r3.Cross(f.Tangents[i], f.Normals[i])
		}
	}
	tracer().Debugf("computed %d frames, closed=%v", segments+1, closed)
	return f
}

// initialNormal selects the coordinate axis along the smallest component of
// tangent t and derives normal and binormal from it.
func initialNormal(t r3.Vec) (normal, binormal r3.Vec) {
	min := math.MaxFloat64
	var axis r3.Vec
	tx, ty, tz := math.Abs(t.X), math.Abs(t.Y), math.Abs(t.Z)
	if tx <= min {
		min = tx
		axis = tubegeom.V(1, 0, 0)
	}
	if ty <= min {
		min = ty
		axis = tubegeom.V(0, 1, 0)
	}
	if tz <= min {
		axis = tubegeom.V(0, 0, 1)
	}
	vec := tubegeom.Normalize(r3.Cross(t, axis))
	normal = r3.Cross(t, vec)
	binormal = r3.Cross(t, normal)
	return
}
