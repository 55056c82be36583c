package mesh

import "github.com/go-gl/mathgl/mgl32"

// Vertex attribute types of GPU-ready buffers.
type (
	Position = mgl32.Vec3
	UV       = mgl32.Vec2
	Normal   = mgl32.Vec3
)

// Attributes are the mesh's vertex and index data converted to single
// precision, the layout geometry buffers expect.
type Attributes struct {
	Positions []Position
	Normals   []Normal
	UVs       []UV
	Indices   []uint32
}

// Attributes converts the mesh to float32 buffers.
func (m *Mesh) Attributes() Attributes {
	a := Attributes{
		Positions: make([]Position, len(m.Positions)),
		Normals:   make([]Normal, len(m.Normals)),
		UVs:       make([]UV, len(m.UVs)),
		Indices:   make([]uint32, 0, 3*len(m.Faces)),
	}
	for i, p := range m.Positions {
		a.Positions[i] = Position{float32(p.X), float32(p.Y), float32(p.Z)}
	}
	for i, n := range m.Normals {
		a.Normals[i] = Normal{float32(n.X), float32(n.Y), float32(n.Z)}
	}
	for i, uv := range m.UVs {
		a.UVs[i] = UV{float32(uv.X()), float32(uv.Y())}
	}
	for _, f := range m.Faces {
		a.Indices = append(a.Indices, uint32(f[0]), uint32(f[1]), uint32(f[2]))
	}
	tracer().Debugf("converted %d vertices, %d indices to float32", len(a.Positions), len(a.Indices))
	return a
}

// Interleaved returns position, normal and UV of every vertex packed into
// one slice, 8 floats per vertex. Vertices missing a normal or UV get zeros.
func (a Attributes) Interleaved() []float32 {
	buf := make([]float32, 0, 8*len(a.Positions))
	for i, p := range a.Positions {
		var n Normal
		var uv UV
		if i < len(a.Normals) {
			n = a.Normals[i]
		}
		if i < len(a.UVs) {
			uv = a.UVs[i]
		}
		buf = append(buf, p[0], p[1], p[2], n[0], n[1], n[2], uv[0], uv[1])
	}
	return buf
}
