package mesh

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"errors"
	"strings"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/npillmayer/tubegeom"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"
)

// unit square in the xy-plane, facing +z
func square() *Mesh {
	up := tubegeom.V(0, 0, 1)
	return &Mesh{
		Positions: []r3.Vec{tubegeom.V(0, 0, 0), tubegeom.V(1, 0, 0), tubegeom.V(1, 1, 0), tubegeom.V(0, 1, 0)},
		Normals:   []r3.Vec{up, up, up, up},
		UVs:       []tubegeom.Pair{tubegeom.P(0, 0), tubegeom.P(1, 0), tubegeom.P(1, 1), tubegeom.P(0, 1)},
		Faces:     []Face{{0, 1, 2}, {0, 2, 3}},
	}
}

func TestMeshBasics(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	m := square()
	require.NoError(t, m.Validate())
	assert.Equal(t, 4, m.VertexCount())
	assert.Equal(t, 2, m.TriangleCount())
	assert.Equal(t, []int{0, 1, 2, 0, 2, 3}, m.Indices())
	assert.InDelta(t, 1.0, m.SurfaceArea(), 1e-12)
	tris := m.Triangles()
	require.Len(t, tris, 2)
	assert.True(t, tubegeom.VecEqual(tubegeom.V(0, 0, 1), tubegeom.Normalize(tris[0].Normal())))
	box := m.Bounds()
	assert.Equal(t, tubegeom.V(0, 0, 0), box.Min)
	assert.Equal(t, tubegeom.V(1, 1, 0), box.Max)
	assert.Equal(t, r3.Box{}, (&Mesh{}).Bounds())
}

func TestMeshValidate(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	m := square()
	m.Faces = append(m.Faces, Face{0, 3, 4})
	assert.True(t, errors.Is(m.Validate(), ErrIndexOutOfRange))
	m = square()
	m.UVs = m.UVs[:3]
	assert.True(t, errors.Is(m.Validate(), ErrAttributeMismatch))
	assert.Error(t, m.WriteOBJ(&bytes.Buffer{}))
}

func TestAttributes(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	a := square().Attributes()
	assert.Equal(t, []uint32{0, 1, 2, 0, 2, 3}, a.Indices)
	assert.Equal(t, Position{1, 1, 0}, a.Positions[2])
	assert.Equal(t, UV{0, 1}, a.UVs[3])
	buf := a.Interleaved()
	require.Len(t, buf, 4*8)
	assert.Equal(t, []float32{1, 0, 0, 0, 0, 1, 1, 0}, buf[8:16])
}

func TestWriteOBJ(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	var out bytes.Buffer
	require.NoError(t, square().WriteOBJ(&out))
	obj := out.String()
	counts := map[string]int{}
	sc := bufio.NewScanner(strings.NewReader(obj))
	for sc.Scan() {
		fields := strings.Fields(sc.Text())
		if len(fields) > 0 {
			counts[fields[0]]++
		}
	}
	assert.Equal(t, 4, counts["v"])
	assert.Equal(t, 4, counts["vt"])
	assert.Equal(t, 4, counts["vn"])
	assert.Equal(t, 2, counts["f"])
	assert.Contains(t, obj, "f 1/1/1 3/3/3 4/4/4")
}

func TestWriteSTL(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	var out bytes.Buffer
	require.NoError(t, square().WriteSTL(&out))
	require.Equal(t, 84+2*50, out.Len())
	data := out.Bytes()
	assert.Equal(t, uint32(2), binary.LittleEndian.Uint32(data[80:84]))
	var rec stlTriangle
	require.NoError(t, binary.Read(bytes.NewReader(data[84:134]), binary.LittleEndian, &rec))
	assert.Equal(t, [3]float32{0, 0, 1}, rec.Normal)
	assert.Equal(t, [3]float32{1, 1, 0}, rec.Vertices[2])
}
