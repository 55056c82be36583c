/*
Package mesh holds the plain triangle mesh produced by the tube builder.

A Mesh is a data aggregate: parallel slices of positions, normals and UV
coordinates, plus faces indexing into them. It does not know how it was
built and has no behaviour beyond inspection and export. Clients hand it to
whatever geometry store or renderer they use, either directly, as float32
buffers (see Attributes), or as a file (see WriteOBJ and WriteSTL).

BSD License

Copyright (c) Norbert Pillmayer

All rights reserved.

Please refer to the license file for more information.
*/
package mesh

import (
	"errors"
	"fmt"
	"math"

	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/tubegeom"
	"gonum.org/v1/gonum/spatial/r3"
)

// tracer writes to trace with key 'tubegeom.mesh'
func tracer() tracing.Trace {
	return tracing.Select("tubegeom.mesh")
}

var (
	// ErrAttributeMismatch indicates vertex attribute slices of differing length.
	ErrAttributeMismatch = errors.New("mesh attributes differ in length")
	// ErrIndexOutOfRange indicates a face referencing a non-existent vertex.
	ErrIndexOutOfRange = errors.New("mesh face index out of range")
)

// Face is a triangle, given as three indices into the vertex attributes.
type Face [3]int

// Mesh is an indexed triangle mesh. Positions, Normals and UVs are parallel
// slices, one entry per vertex.
type Mesh struct {
	Positions []r3.Vec
	Normals   []r3.Vec
	UVs       []tubegeom.Pair
	Faces     []Face
}

// VertexCount returns the number of vertices.
func (m *Mesh) VertexCount() int {
	return len(m.Positions)
}

// TriangleCount returns the number of faces.
func (m *Mesh) TriangleCount() int {
	return len(m.Faces)
}

// Indices returns the faces as a flat index list, 3 per triangle.
func (m *Mesh) Indices() []int {
	idx := make([]int, 0, 3*len(m.Faces))
	for _, f := range m.Faces {
		idx = append(idx, f[0], f[1], f[2])
	}
	return idx
}

// Triangle returns the vertex positions of face f.
func (m *Mesh) Triangle(f int) r3.Triangle {
	face := m.Faces[f]
	return r3.Triangle{m.Positions[face[0]], m.Positions[face[1]], m.Positions[face[2]]}
}

// Triangles returns the vertex positions of all faces.
func (m *Mesh) Triangles() []r3.Triangle {
	tris := make([]r3.Triangle, len(m.Faces))
	for i := range m.Faces {
		tris[i] = m.Triangle(i)
	}
	return tris
}

// Bounds returns the axis-aligned bounding box of all vertex positions.
// The box of an empty mesh is the zero box.
func (m *Mesh) Bounds() r3.Box {
	if len(m.Positions) == 0 {
		return r3.Box{}
	}
	box := r3.Box{Min: m.Positions[0], Max: m.Positions[0]}
	for _, p := range m.Positions[1:] {
		box.Min.X, box.Max.X = math.Min(box.Min.X, p.X), math.Max(box.Max.X, p.X)
		box.Min.Y, box.Max.Y = math.Min(box.Min.Y, p.Y), math.Max(box.Max.Y, p.Y)
		box.Min.Z, box.Max.Z = math.Min(box.Min.Z, p.Z), math.Max(box.Max.Z, p.Z)
	}
	return box
}

// SurfaceArea sums the areas of all faces.
func (m *Mesh) SurfaceArea() float64 {
	area := 0.0
	for i := range m.Faces {
		area += m.Triangle(i).Area()
	}
	return area
}

// Validate checks that vertex attributes are parallel and that every face
// references existing vertices.
func (m *Mesh) Validate() error {
	n := len(m.Positions)
	if len(m.Normals) != n || len(m.UVs) != n {
		return fmt.Errorf("%w: %d positions, %d normals, %d uvs", ErrAttributeMismatch,
			n, len(m.Normals), len(m.UVs))
	}
	for i, f := range m.Faces {
		for _, v := range f {
			if v < 0 || v >= n {
				return fmt.Errorf("%w: face %d references vertex %d of %d", ErrIndexOutOfRange, i, v, n)
			}
		}
	}
	return nil
}
