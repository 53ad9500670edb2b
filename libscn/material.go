package libscn

import (
	"github.com/go-gl/mathgl/mgl32"

	"phong-gl/libutil"
)

const (
	MinShininess = float32(1)
	MaxShininess = float32(500)
)

// Material reflectances are 0-255 per channel.
type Material struct {
	Ka, Kd, Ks mgl32.Vec3
	Shininess  float32
}

func (m *Material) Normalize() {
	m.Ka = clampColor(m.Ka)
	m.Kd = clampColor(m.Kd)
	m.Ks = clampColor(m.Ks)
	m.Shininess = libutil.Clamp(m.Shininess, MinShininess, MaxShininess)
}

func gray(v float32) mgl32.Vec3 {
	return mgl32.Vec3{v, v, v}
}

var DefaultMaterial = Material{Ka: gray(50), Kd: gray(200), Ks: gray(100), Shininess: 32}

// Built in materials, keyed the way presets name them.
var Materials = map[string]Material{
	"bunny":    {Ka: mgl32.Vec3{55, 45, 45}, Kd: mgl32.Vec3{220, 180, 180}, Ks: gray(255), Shininess: 150},
	"base":     {Ka: mgl32.Vec3{191, 169, 81}, Kd: mgl32.Vec3{180, 140, 100}, Ks: gray(50), Shininess: 10},
	"torus":    {Ka: mgl32.Vec3{10, 40, 10}, Kd: mgl32.Vec3{50, 200, 50}, Ks: gray(255), Shininess: 100},
	"cylinder": {Ka: mgl32.Vec3{128, 0, 128}, Kd: mgl32.Vec3{40, 120, 100}, Ks: gray(150), Shininess: 80},
	"cube":     {Ka: mgl32.Vec3{50, 20, 20}, Kd: mgl32.Vec3{200, 80, 80}, Ks: gray(200), Shininess: 60},
}
