package libmesh_test

import (
	"bytes"
	"encoding/binary"
	"os"
	"path/filepath"
	"phong-gl/libmesh"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/pierrec/lz4/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeDecodeShortIndices(t *testing.T) {
	mesh := libmesh.Cube()
	buf := &bytes.Buffer{}
	require.NoError(t, libmesh.EncodeMesh(buf, mesh))

	// header, name, vertices, 36 uint16 indices
	assert.Equal(t, 16+4+24*libmesh.VertexSize+36*2, buf.Len())

	decoded, err := libmesh.DecodeMesh(buf)
	require.NoError(t, err)
	assert.Equal(t, mesh, decoded)
}

func TestEncodeOddIndexPadding(t *testing.T) {
	mesh := &libmesh.Mesh{
		Name:     "tri",
		Vertices: make([]libmesh.Vertex, 3),
		Indices:  []uint32{0, 1, 2},
	}
	buf := &bytes.Buffer{}
	require.NoError(t, libmesh.EncodeMesh(buf, mesh))
	assert.Equal(t, 16+3+3*libmesh.VertexSize+4*2, buf.Len())

	decoded, err := libmesh.DecodeMesh(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	assert.Equal(t, mesh.Indices, decoded.Indices)
}

func TestEncodeDecodeLongIndices(t *testing.T) {
	mesh := &libmesh.Mesh{Name: "big", Vertices: make([]libmesh.Vertex, 70000)}
	for i := 0; i+2 < 70000; i += 3 {
		mesh.Indices = append(mesh.Indices, uint32(i), uint32(i+1), uint32(i+2))
	}
	require.GreaterOrEqual(t, len(mesh.Indices), 0xffff)

	buf := &bytes.Buffer{}
	require.NoError(t, libmesh.EncodeMesh(buf, mesh))
	decoded, err := libmesh.DecodeMesh(buf)
	require.NoError(t, err)
	assert.Equal(t, mesh.Indices, decoded.Indices)
}

func TestDecodeErrors(t *testing.T) {
	_, err := libmesh.DecodeMesh(bytes.NewReader([]byte{1, 2, 3}))
	assert.Error(t, err)

	buf := &bytes.Buffer{}
	require.NoError(t, binary.Write(buf, binary.LittleEndian, [4]uint32{0xdeadbeef, 0, 0, 0}))
	_, err = libmesh.DecodeMesh(buf)
	assert.ErrorContains(t, err, "corrupt")

	mesh := &libmesh.Mesh{Name: "bad", Vertices: make([]libmesh.Vertex, 2), Indices: []uint32{0, 1, 5}}
	buf.Reset()
	require.NoError(t, libmesh.EncodeMesh(buf, mesh))
	_, err = libmesh.DecodeMesh(buf)
	assert.ErrorContains(t, err, "out of range")

	truncated := &bytes.Buffer{}
	require.NoError(t, libmesh.EncodeMesh(truncated, libmesh.Cube()))
	_, err = libmesh.DecodeMesh(bytes.NewReader(truncated.Bytes()[:100]))
	assert.ErrorContains(t, err, "expected 24 mesh vertices")
}

func TestWireIndices(t *testing.T) {
	// two triangles sharing the 0-2 edge
	lines := libmesh.WireIndices([]uint32{0, 1, 2, 0, 2, 3})
	assert.Len(t, lines, 10)

	cube := libmesh.Cube()
	// 6 quads: 4 outer edges and one diagonal each
	assert.Len(t, libmesh.WireIndices(cube.Indices), 6*5*2)
}

func TestShapesAreClosedAndOutward(t *testing.T) {
	shapes := []*libmesh.Mesh{
		libmesh.Cube(),
		libmesh.Cylinder(16),
		libmesh.Torus(12, 8),
		libmesh.UvSphere(12, 8),
	}
	for _, mesh := range shapes {
		require.Zero(t, len(mesh.Indices)%3, mesh.Name)
		for i := 0; i < len(mesh.Indices); i += 3 {
			v0 := mesh.Vertices[mesh.Indices[i]]
			v1 := mesh.Vertices[mesh.Indices[i+1]]
			v2 := mesh.Vertices[mesh.Indices[i+2]]
			face := v1.Position.Sub(v0.Position).Cross(v2.Position.Sub(v0.Position))
			if face.Len() < 1e-6 {
				// pole triangles of the sphere collapse
				continue
			}
			normal := v0.Normal.Add(v1.Normal).Add(v2.Normal)
			assert.Greater(t, face.Dot(normal), float32(0), "%s triangle %d winds inward", mesh.Name, i/3)
		}
		for _, v := range mesh.Vertices {
			assert.InDelta(t, 1, v.Normal.Len(), 1e-5, mesh.Name)
		}
	}
}

func TestShapeBounds(t *testing.T) {
	bounds := func(m *libmesh.Mesh) (lo, hi mgl32.Vec3) {
		lo, hi = m.Vertices[0].Position, m.Vertices[0].Position
		for _, v := range m.Vertices {
			for i := 0; i < 3; i++ {
				if v.Position[i] < lo[i] {
					lo[i] = v.Position[i]
				}
				if v.Position[i] > hi[i] {
					hi[i] = v.Position[i]
				}
			}
		}
		return lo, hi
	}

	lo, hi := bounds(libmesh.Cube())
	assert.Equal(t, mgl32.Vec3{-0.5, -0.5, -0.5}, lo)
	assert.Equal(t, mgl32.Vec3{0.5, 0.5, 0.5}, hi)

	lo, hi = bounds(libmesh.Torus(48, 24))
	assert.InDelta(t, -0.2, lo[1], 1e-5)
	assert.InDelta(t, 0.7, hi[0], 1e-5)
}

func TestPackLoadsCompressed(t *testing.T) {
	dir := t.TempDir()
	torus := libmesh.Torus(8, 6)
	torus.Name = "bunny"
	require.NoError(t, libmesh.SaveMeshFile(filepath.Join(dir, "bunny.geo.lz4"), torus, lz4.Fast))
	require.NoError(t, libmesh.SaveMeshFile(filepath.Join(dir, "plain.geo"), libmesh.Cube(), lz4.Fast))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644))

	pack := &libmesh.DirPack{}
	require.NoError(t, pack.AddDir(dir))
	assert.Len(t, pack.MeshIndex, 2)

	mesh, builtin, err := pack.LoadOrBuiltin("bunny")
	require.NoError(t, err)
	assert.False(t, builtin)
	assert.Equal(t, torus, mesh)

	mesh, err = pack.LoadMesh("plain")
	require.NoError(t, err)
	assert.Equal(t, "cube", mesh.Name)

	mesh, builtin, err = pack.LoadOrBuiltin("cylinder")
	require.NoError(t, err)
	assert.True(t, builtin)
	assert.Equal(t, "cylinder", mesh.Name)

	_, _, err = pack.LoadOrBuiltin("teapot")
	assert.Error(t, err)
}

func TestPackBrokenFileDoesNotFallBack(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "cube.geo"), []byte("garbage"), 0o644))

	pack := &libmesh.DirPack{}
	require.NoError(t, pack.AddDir(dir))
	_, _, err := pack.LoadOrBuiltin("cube")
	assert.Error(t, err)
}
