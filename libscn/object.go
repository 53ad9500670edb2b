package libscn

import (
	"github.com/go-gl/mathgl/mgl32"
)

type Rotation struct {
	// degrees
	Angle float32
	Axis  mgl32.Vec3
}

// Object is a placed drawable with optional children placed relative to it.
type Object struct {
	Name     string
	Drawable Drawable
	// nil draws with DefaultMaterial
	Material    *Material
	Translation mgl32.Vec3
	// A zero Scale is treated as unit scale.
	Scale    mgl32.Vec3
	Rotation Rotation
	Children []*Object
}

// Place composes translation, rotation and scale onto the top of stack.
func (o *Object) Place(stack *TransformStack) {
	stack.MultTranslation(o.Translation)
	if o.Rotation.Angle != 0 {
		stack.MultRotation(o.Rotation.Angle, o.Rotation.Axis)
	}
	scale := o.Scale
	if scale == (mgl32.Vec3{}) {
		scale = mgl32.Vec3{1, 1, 1}
	}
	stack.MultScale(scale)
}

// DefaultScene lays out the ground plane and the four primitives.
// meshes is keyed by mesh name (cube, torus, cylinder, bunny); objects
// whose mesh is missing are left out. materials is keyed by object name,
// missing entries get a fresh copy of the built in material.
func DefaultScene(meshes map[string]Drawable, materials map[string]*Material) []*Object {
	layout := []struct {
		name, mesh  string
		translation mgl32.Vec3
		scale       mgl32.Vec3
	}{
		{"base", "cube", mgl32.Vec3{0, -0.5, 0}, mgl32.Vec3{10, 0.5, 10}},
		{"torus", "torus", mgl32.Vec3{-2, 0.16, 2}, mgl32.Vec3{2, 2, 2}},
		{"cylinder", "cylinder", mgl32.Vec3{2, 0.74, -2}, mgl32.Vec3{2, 2, 2}},
		{"cube", "cube", mgl32.Vec3{-2, 0.74, -2}, mgl32.Vec3{2, 2, 2}},
		{"bunny", "bunny", mgl32.Vec3{2, 0.74, 2}, mgl32.Vec3{2, 2, 2}},
	}

	objects := make([]*Object, 0, len(layout))
	for _, l := range layout {
		drawable, ok := meshes[l.mesh]
		if !ok || drawable == nil {
			continue
		}
		mat := materials[l.name]
		if mat == nil {
			m := Materials[l.name]
			mat = &m
		}
		objects = append(objects, &Object{
			Name:        l.name,
			Drawable:    drawable,
			Material:    mat,
			Translation: l.translation,
			Scale:       l.scale,
		})
	}
	return objects
}
