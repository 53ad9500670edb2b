package libmesh

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// Primitive dimensions. All shapes are centered on the origin.
const (
	CubeSize       = float32(1)
	CylinderRadius = float32(0.5)
	CylinderHeight = float32(1)
	TorusRadius    = float32(0.5)
	TorusTube      = float32(0.2)
	SphereRadius   = float32(0.5)
)

// Cube returns a unit cube with one flat shaded quad per face.
func Cube() *Mesh {
	faces := []struct {
		normal, u, v mgl32.Vec3
	}{
		{mgl32.Vec3{1, 0, 0}, mgl32.Vec3{0, 0, -1}, mgl32.Vec3{0, 1, 0}},
		{mgl32.Vec3{-1, 0, 0}, mgl32.Vec3{0, 0, 1}, mgl32.Vec3{0, 1, 0}},
		{mgl32.Vec3{0, 1, 0}, mgl32.Vec3{1, 0, 0}, mgl32.Vec3{0, 0, -1}},
		{mgl32.Vec3{0, -1, 0}, mgl32.Vec3{1, 0, 0}, mgl32.Vec3{0, 0, 1}},
		{mgl32.Vec3{0, 0, 1}, mgl32.Vec3{1, 0, 0}, mgl32.Vec3{0, 1, 0}},
		{mgl32.Vec3{0, 0, -1}, mgl32.Vec3{-1, 0, 0}, mgl32.Vec3{0, 1, 0}},
	}
	corners := [4]mgl32.Vec2{{0, 0}, {1, 0}, {1, 1}, {0, 1}}

	mesh := &Mesh{Name: "cube"}
	h := CubeSize / 2
	for _, f := range faces {
		base := uint32(len(mesh.Vertices))
		for _, c := range corners {
			pos := f.normal.Mul(h).
				Add(f.u.Mul((c[0]*2 - 1) * h)).
				Add(f.v.Mul((c[1]*2 - 1) * h))
			mesh.Vertices = append(mesh.Vertices, Vertex{Position: pos, Normal: f.normal, Uv: c})
		}
		mesh.Indices = append(mesh.Indices, base, base+1, base+2, base, base+2, base+3)
	}
	return mesh
}

// Cylinder returns a capped cylinder along the y axis.
func Cylinder(slices int) *Mesh {
	if slices < 3 {
		slices = 3
	}
	mesh := &Mesh{Name: "cylinder"}
	r, h := CylinderRadius, CylinderHeight/2

	// side, the seam column is duplicated for the uv wrap
	for i := 0; i <= slices; i++ {
		u := float32(i) / float32(slices)
		a := u * 2 * math32.Pi
		n := mgl32.Vec3{math32.Cos(a), 0, -math32.Sin(a)}
		mesh.Vertices = append(mesh.Vertices,
			Vertex{Position: mgl32.Vec3{n[0] * r, -h, n[2] * r}, Normal: n, Uv: mgl32.Vec2{u, 0}},
			Vertex{Position: mgl32.Vec3{n[0] * r, h, n[2] * r}, Normal: n, Uv: mgl32.Vec2{u, 1}},
		)
	}
	for i := 0; i < slices; i++ {
		b := uint32(i * 2)
		mesh.Indices = append(mesh.Indices, b, b+2, b+3, b, b+3, b+1)
	}

	for _, y := range []float32{-h, h} {
		n := mgl32.Vec3{0, math32.Copysign(1, y), 0}
		center := uint32(len(mesh.Vertices))
		mesh.Vertices = append(mesh.Vertices, Vertex{Position: mgl32.Vec3{0, y, 0}, Normal: n, Uv: mgl32.Vec2{0.5, 0.5}})
		for i := 0; i < slices; i++ {
			a := float32(i) / float32(slices) * 2 * math32.Pi
			c, s := math32.Cos(a), -math32.Sin(a)
			mesh.Vertices = append(mesh.Vertices, Vertex{
				Position: mgl32.Vec3{c * r, y, s * r},
				Normal:   n,
				Uv:       mgl32.Vec2{0.5 + c/2, 0.5 + s/2},
			})
		}
		for i := 0; i < slices; i++ {
			a := center + 1 + uint32(i)
			b := center + 1 + uint32((i+1)%slices)
			if y > 0 {
				mesh.Indices = append(mesh.Indices, center, a, b)
			} else {
				mesh.Indices = append(mesh.Indices, center, b, a)
			}
		}
	}
	return mesh
}

// Torus returns a torus lying in the xz plane.
func Torus(rings, sides int) *Mesh {
	if rings < 3 {
		rings = 3
	}
	if sides < 3 {
		sides = 3
	}
	mesh := &Mesh{Name: "torus"}
	for i := 0; i <= rings; i++ {
		u := float32(i) / float32(rings)
		a := u * 2 * math32.Pi
		ring := mgl32.Vec3{math32.Cos(a), 0, -math32.Sin(a)}
		for j := 0; j <= sides; j++ {
			v := float32(j) / float32(sides)
			b := v * 2 * math32.Pi
			n := ring.Mul(math32.Cos(b)).Add(mgl32.Vec3{0, math32.Sin(b), 0})
			pos := ring.Mul(TorusRadius).Add(n.Mul(TorusTube))
			mesh.Vertices = append(mesh.Vertices, Vertex{Position: pos, Normal: n, Uv: mgl32.Vec2{u, v}})
		}
	}
	mesh.Indices = gridIndices(rings, sides)
	return mesh
}

// UvSphere returns a sphere with stacks latitude bands.
func UvSphere(slices, stacks int) *Mesh {
	if slices < 3 {
		slices = 3
	}
	if stacks < 2 {
		stacks = 2
	}
	mesh := &Mesh{Name: "sphere"}
	for i := 0; i <= slices; i++ {
		u := float32(i) / float32(slices)
		a := u * 2 * math32.Pi
		for j := 0; j <= stacks; j++ {
			v := float32(j) / float32(stacks)
			b := v * math32.Pi
			n := mgl32.Vec3{
				math32.Cos(a) * math32.Sin(b),
				-math32.Cos(b),
				-math32.Sin(a) * math32.Sin(b),
			}
			mesh.Vertices = append(mesh.Vertices, Vertex{Position: n.Mul(SphereRadius), Normal: n, Uv: mgl32.Vec2{u, v}})
		}
	}
	mesh.Indices = gridIndices(slices, stacks)
	return mesh
}

// gridIndices triangulates a (cols+1) x (rows+1) vertex grid stored
// column by column.
func gridIndices(cols, rows int) []uint32 {
	indices := make([]uint32, 0, cols*rows*6)
	stride := uint32(rows + 1)
	for i := 0; i < cols; i++ {
		for j := 0; j < rows; j++ {
			a := uint32(i)*stride + uint32(j)
			b := a + stride
			indices = append(indices, a, b, b+1, a, b+1, a+1)
		}
	}
	return indices
}

// Builtin returns the procedural primitive called name.
func Builtin(name string) (*Mesh, bool) {
	switch name {
	case "cube":
		return Cube(), true
	case "cylinder":
		return Cylinder(32), true
	case "torus":
		return Torus(48, 24), true
	case "sphere", "bunny":
		m := UvSphere(32, 16)
		m.Name = name
		return m, true
	}
	return nil, false
}

var BuiltinNames = []string{"cube", "cylinder", "torus", "sphere"}
