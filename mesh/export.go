package mesh

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/npillmayer/tubegeom"
	"gonum.org/v1/gonum/spatial/r3"
)

var byteorder = binary.LittleEndian

// WriteOBJ writes the mesh in Wavefront OBJ format, with texture
// coordinates and vertex normals.
func (m *Mesh) WriteOBJ(w io.Writer) error {
	if err := m.Validate(); err != nil {
		return err
	}
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "# tubegeom mesh: %d vertices, %d faces\n", m.VertexCount(), m.TriangleCount())
	for _, p := range m.Positions {
		fmt.Fprintf(bw, "v %g %g %g\n", p.X, p.Y, p.Z)
	}
	for _, uv := range m.UVs {
		fmt.Fprintf(bw, "vt %g %g\n", uv.X(), uv.Y())
	}
	for _, n := range m.Normals {
		fmt.Fprintf(bw, "vn %g %g %g\n", n.X, n.Y, n.Z)
	}
	for _, f := range m.Faces { // OBJ indices are 1-based
		a, b, c := f[0]+1, f[1]+1, f[2]+1
		fmt.Fprintf(bw, "f %d/%d/%d %d/%d/%d %d/%d/%d\n", a, a, a, b, b, b, c, c, c)
	}
	return bw.Flush()
}

// stlTriangle is the record layout of a binary STL facet.
type stlTriangle struct {
	Normal    [3]float32
	Vertices  [3][3]float32
	Attribute uint16
}

// WriteSTL writes the mesh as binary STL: an 80-byte header, the triangle
// count and one 50-byte record per face, little endian. Facet normals are
// computed from the vertex positions; degenerate faces get a zero normal.
func (m *Mesh) WriteSTL(w io.Writer) error {
	if err := m.Validate(); err != nil {
		return err
	}
	bw := bufio.NewWriter(w)
	var header [80]byte
	copy(header[:], "tubegeom binary STL")
	if err := binary.Write(bw, byteorder, header); err != nil {
		return err
	}
	if err := binary.Write(bw, byteorder, uint32(len(m.Faces))); err != nil {
		return err
	}
	for i := range m.Faces {
		tri := m.Triangle(i)
		rec := stlTriangle{Normal: vec32(tubegeom.Normalize(tri.Normal()))}
		for k, v := range tri {
			rec.Vertices[k] = vec32(v)
		}
		if err := binary.Write(bw, byteorder, rec); err != nil {
			return err
		}
	}
	tracer().Debugf("wrote %d STL facets", len(m.Faces))
	return bw.Flush()
}

func vec32(v r3.Vec) [3]float32 {
	return [3]float32{float32(v.X), float32(v.Y), float32(v.Z)}
}
