package tube

import (
	"fmt"
	"math"

	"github.com/npillmayer/tubegeom"
	"github.com/npillmayer/tubegeom/curve"
	"github.com/npillmayer/tubegeom/mesh"
	"gonum.org/v1/gonum/spatial/r3"
)

// effectiveRadii returns one radius per ring. A short profile holds its last
// value. If clamp is set, radii are capped at maxR.
func effectiveRadii(profile []float64, rings int, maxR float64, clamp bool) ([]float64, error) {
	if len(profile) == 0 {
		return nil, ErrEmptyRadius
	}
	for i, r := range profile {
		if r < 0 || !tubegeom.IsFinite(r) {
			return nil, fmt.Errorf("%w: radius[%d] = %g", ErrInvalidRadius, i, r)
		}
	}
	if len(profile) < rings {
		tracer().Infof("radius profile has %d entries for %d rings, holding last value %g",
			len(profile), rings, profile[len(profile)-1])
	}
	radii := make([]float64, rings)
	for i := range radii {
		r := profile[min(i, len(profile)-1)]
		if clamp && r > maxR {
			r = maxR
		}
		radii[i] = r
	}
	return radii, nil
}

// generateRings places (T+1)·(S+1) vertices, ring after ring. Ring T
// repeats ring 0 for closed tubes.
func generateRings(path Path, frames curve.Frames, radii []float64, T, S int, closed bool) (positions, normals []r3.Vec) {
	positions = make([]r3.Vec, 0, (T+1)*(S+1))
	normals = make([]r3.Vec, 0, (T+1)*(S+1))
	for i := 0; i <= T; i++ {
		k := i
		if i == T && closed {
			k = 0
		}
		p := path.PointAt(float64(k) / float64(T))
		pos, nrm := generateRing(p, frames.Normals[k], frames.Binormals[k], radii[k], S)
		positions = append(positions, pos...)
		normals = append(normals, nrm...)
	}
	return
}

// generateRing places S+1 vertices on a circle of radius r around p, in the
// plane spanned by normal n and binormal b. Vertex 0 and S coincide.
func generateRing(p, n, b r3.Vec, r float64, S int) (positions, normals []r3.Vec) {
	positions = make([]r3.Vec, S+1)
	normals = make([]r3.Vec, S+1)
	for j := 0; j <= S; j++ {
		v := float64(j) / float64(S) * 2 * math.Pi
		sin, cos := math.Sin(v), -math.Cos(v)
		dir := tubegeom.Normalize(r3.Add(r3.Scale(cos, n), r3.Scale(sin, b)))
		normals[j] = dir
		positions[j] = r3.Add(p, r3.Scale(r, dir))
	}
	return
}

// generateUVs returns (i/T, j/S) for every vertex, ring-major.
func generateUVs(T, S int) []tubegeom.Pair {
	uvs := make([]tubegeom.Pair, 0, (T+1)*(S+1))
	for i := 0; i <= T; i++ {
		for j := 0; j <= S; j++ {
			uvs = append(uvs, tubegeom.P(float64(i)/float64(T), float64(j)/float64(S)))
		}
	}
	return uvs
}

// generateFaces stitches neighbouring rings with two triangles per quad.
func generateFaces(T, S int) []mesh.Face {
	faces := make([]mesh.Face, 0, 2*T*S)
	for j := 1; j <= T; j++ {
		for i := 1; i <= S; i++ {
			a := (S+1)*(j-1) + (i - 1)
			b := (S+1)*j + (i - 1)
			c := (S+1)*j + i
			d := (S+1)*(j-1) + i
			faces = append(faces, mesh.Face{a, b, d}, mesh.Face{b, c, d})
		}
	}
	return faces
}
