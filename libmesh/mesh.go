package libmesh

import (
	"fmt"
	"io"
	"phong-gl/libio"
	"unsafe"

	"github.com/go-gl/mathgl/mgl32"
)

const MagicNumberGEO = 0xc9dae18c

type Mesh struct {
	Name     string
	Vertices []Vertex
	// triangle list
	Indices []uint32
}

type Vertex struct {
	Position mgl32.Vec3
	Normal   mgl32.Vec3
	Uv       mgl32.Vec2
}

const ElementIndexSize = int(unsafe.Sizeof(uint32(0)))
const VertexSize = int(unsafe.Sizeof(Vertex{}))

type geoHeader struct {
	Check       uint32
	NameLength  uint32
	VertexCount uint32
	IndexCount  uint32
}

// Index lists shorter than this are stored as uint16.
const shortIndexLimit = 0xffff

func DecodeMesh(r io.Reader) (mesh *Mesh, err error) {
	var br *libio.BinaryReader
	var ok bool

	if br, ok = r.(*libio.BinaryReader); !ok {
		br = libio.NewReader(r)

		defer func() {
			if br.Err != nil {
				if err == nil {
					err = br.Err
				} else {
					err = fmt.Errorf("%v: %w", err, br.Err)
				}
			}
		}()
	}

	header := geoHeader{}
	if !br.ReadRef(&header) {
		return nil, fmt.Errorf("expected mesh header; byte 0x%08x", br.LastIndex)
	}

	if header.Check != MagicNumberGEO {
		return nil, fmt.Errorf("mesh header is corrupt; byte 0x%08x", br.LastIndex)
	}
	if header.IndexCount%3 != 0 {
		return nil, fmt.Errorf("mesh index count %d is not a triangle list; byte 0x%08x", header.IndexCount, br.LastIndex)
	}

	name := make([]byte, header.NameLength)
	if !br.ReadRef(&name) {
		return nil, fmt.Errorf("expected %d bytes for object name; byte 0x%08x", header.NameLength, br.LastIndex)
	}

	vertices := make([]Vertex, header.VertexCount)
	if !br.ReadRef(&vertices) {
		return nil, fmt.Errorf("expected %d mesh vertices; name %q, byte 0x%08x", header.VertexCount, name, br.LastIndex)
	}

	var indices []uint32
	if header.IndexCount < shortIndexLimit {
		shorts := make([]uint16, header.IndexCount)
		if !br.ReadRef(&shorts) {
			return nil, fmt.Errorf("expected %d mesh indices; name %q, byte 0x%08x", header.IndexCount, name, br.LastIndex)
		}
		if header.IndexCount%2 == 1 && !br.ReadBytes(2) {
			return nil, fmt.Errorf("expected index padding; name %q, byte 0x%08x", name, br.LastIndex)
		}
		indices = make([]uint32, header.IndexCount)
		for i, v := range shorts {
			indices[i] = uint32(v)
		}
	} else {
		indices = make([]uint32, header.IndexCount)
		if !br.ReadRef(&indices) {
			return nil, fmt.Errorf("expected %d mesh indices; name %q, byte 0x%08x", header.IndexCount, name, br.LastIndex)
		}
	}

	for i, idx := range indices {
		if idx >= header.VertexCount {
			return nil, fmt.Errorf("index %d at %d is out of range for %d vertices; name %q", idx, i, header.VertexCount, name)
		}
	}

	return &Mesh{
		Name:     string(name),
		Vertices: vertices,
		Indices:  indices,
	}, nil
}

func EncodeMesh(w io.Writer, mesh *Mesh) error {
	bw := libio.NewWriter(w)

	header := geoHeader{
		Check:       MagicNumberGEO,
		NameLength:  uint32(len(mesh.Name)),
		VertexCount: uint32(len(mesh.Vertices)),
		IndexCount:  uint32(len(mesh.Indices)),
	}
	bw.WriteRef(header)
	bw.WriteBytes([]byte(mesh.Name))
	bw.WriteRef(mesh.Vertices)

	if header.IndexCount < shortIndexLimit {
		shorts := make([]uint16, len(mesh.Indices), len(mesh.Indices)+1)
		for i, v := range mesh.Indices {
			shorts[i] = uint16(v)
		}
		if len(shorts)%2 == 1 {
			shorts = append(shorts, 0)
		}
		bw.WriteRef(shorts)
	} else {
		bw.WriteRef(mesh.Indices)
	}

	if bw.Err != nil {
		return fmt.Errorf("could not encode mesh %q: %w", mesh.Name, bw.Err)
	}
	return nil
}

// WireIndices turns a triangle list into a line list with every shared
// edge drawn once.
func WireIndices(triangles []uint32) []uint32 {
	type edge [2]uint32
	seen := make(map[edge]struct{}, len(triangles))
	lines := make([]uint32, 0, len(triangles)*2)
	for i := 0; i+2 < len(triangles); i += 3 {
		tri := [3]uint32{triangles[i], triangles[i+1], triangles[i+2]}
		for j := 0; j < 3; j++ {
			a, b := tri[j], tri[(j+1)%3]
			if a > b {
				a, b = b, a
			}
			if _, ok := seen[edge{a, b}]; ok {
				continue
			}
			seen[edge{a, b}] = struct{}{}
			lines = append(lines, a, b)
		}
	}
	return lines
}
