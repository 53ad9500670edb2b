package libscn_test

import (
	"phong-gl/libscn"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
)

func TestMaterialNormalize(t *testing.T) {
	m := libscn.Material{
		Ka:        mgl32.Vec3{-5, 100, 300},
		Kd:        mgl32.Vec3{0, 255, 256},
		Ks:        mgl32.Vec3{10, 20, 30},
		Shininess: 0,
	}
	m.Normalize()
	assert.Equal(t, mgl32.Vec3{0, 100, 255}, m.Ka)
	assert.Equal(t, mgl32.Vec3{0, 255, 255}, m.Kd)
	assert.Equal(t, mgl32.Vec3{10, 20, 30}, m.Ks)
	assert.Equal(t, libscn.MinShininess, m.Shininess)

	m.Shininess = 10000
	m.Normalize()
	assert.Equal(t, libscn.MaxShininess, m.Shininess)
}

func TestBuiltinMaterialsInRange(t *testing.T) {
	for name, m := range libscn.Materials {
		normalized := m
		normalized.Normalize()
		assert.Equal(t, m, normalized, name)
	}
}
