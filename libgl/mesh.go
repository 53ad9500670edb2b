package libgl

import (
	"fmt"
	"phong-gl/libmesh"
	"phong-gl/libscn"
	"unsafe"

	"github.com/go-gl/gl/v4.5-core/gl"
)

// Vertex attribute locations shared by the scene shaders.
const (
	AttribPosition = 0
	AttribNormal   = 1
	AttribUv       = 2
)

// GpuMesh holds one mesh on the GPU, with a triangle and an edge index
// buffer sharing the same vertices.
type GpuMesh struct {
	Name       string
	vao        UnboundVertexArray
	vbo        UnboundBuffer
	triangles  UnboundBuffer
	edges      UnboundBuffer
	nTriangles int32
	nEdges     int32
}

func UploadMesh(mesh *libmesh.Mesh) (*GpuMesh, error) {
	if len(mesh.Vertices) == 0 || len(mesh.Indices) == 0 {
		return nil, fmt.Errorf("mesh %q is empty", mesh.Name)
	}
	wire := libmesh.WireIndices(mesh.Indices)

	gm := &GpuMesh{
		Name:       mesh.Name,
		vao:        NewVertexArray(),
		vbo:        NewBuffer(),
		triangles:  NewBuffer(),
		edges:      NewBuffer(),
		nTriangles: int32(len(mesh.Indices)),
		nEdges:     int32(len(wire)),
	}
	gm.vao.SetDebugLabel(mesh.Name)
	gm.vbo.SetDebugLabel(mesh.Name + " vertices")
	gm.triangles.SetDebugLabel(mesh.Name + " triangles")
	gm.edges.SetDebugLabel(mesh.Name + " edges")

	gm.vbo.Allocate(mesh.Vertices, 0)
	gm.triangles.Allocate(mesh.Indices, 0)
	gm.edges.Allocate(wire, 0)

	vertex := libmesh.Vertex{}
	gm.vao.Layout(0, AttribPosition, 3, gl.FLOAT, false, int(unsafe.Offsetof(vertex.Position)))
	gm.vao.Layout(0, AttribNormal, 3, gl.FLOAT, false, int(unsafe.Offsetof(vertex.Normal)))
	gm.vao.Layout(0, AttribUv, 2, gl.FLOAT, false, int(unsafe.Offsetof(vertex.Uv)))
	gm.vao.BindBuffer(0, gm.vbo, 0, libmesh.VertexSize)

	return gm, nil
}

// Draw issues one indexed draw with the pipeline and uniforms that are
// currently bound.
func (gm *GpuMesh) Draw(mode libscn.PrimitiveMode) error {
	if gm.vao.Id() == 0 {
		return fmt.Errorf("mesh %q was deleted", gm.Name)
	}
	gm.vao.Bind()
	switch mode {
	case libscn.Triangles:
		gm.vao.BindElementBuffer(gm.triangles)
		gl.DrawElements(gl.TRIANGLES, gm.nTriangles, gl.UNSIGNED_INT, nil)
	case libscn.Lines:
		gm.vao.BindElementBuffer(gm.edges)
		gl.DrawElements(gl.LINES, gm.nEdges, gl.UNSIGNED_INT, nil)
	default:
		return fmt.Errorf("unsupported primitive mode %d", mode)
	}
	return nil
}

func (gm *GpuMesh) Delete() {
	gm.vao.Delete()
	gm.vbo.Delete()
	gm.triangles.Delete()
	gm.edges.Delete()
}
