package libscn_test

import (
	"phong-gl/libscn"
	"strings"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/pelletier/go-toml/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmptyPresetIsDefault(t *testing.T) {
	p, err := libscn.LoadPreset(strings.NewReader(""))
	require.NoError(t, err)
	assert.Equal(t, libscn.DefaultPreset(), p)
}

func TestPresetOverrides(t *testing.T) {
	const src = `
[camera]
eye = [0, 3, 8]
fovy = 45

[[lights]]
kind = "point"
position = [1, 2, 3]

[[lights]]
kind = "directional"
active = false
diffuse = [300, 10, 10]

[materials.bunny]
shininess = 20

[materials.teapot]
kd = [10, 20, 30]

[options]
wireframe = true
shading = "gouraud"
`
	p, err := libscn.LoadPreset(strings.NewReader(src))
	require.NoError(t, err)

	assert.Equal(t, mgl32.Vec3{0, 3, 8}, p.Home.Eye)
	assert.Equal(t, libscn.DefaultCameraHome.At, p.Home.At)
	assert.Equal(t, float32(45), p.Home.Fovy)
	assert.Equal(t, float32(20), p.Home.Far)

	require.Len(t, p.Lights, 2)
	assert.Equal(t, libscn.PointLight, p.Lights[0].Kind)
	assert.Equal(t, mgl32.Vec3{1, 2, 3}, p.Lights[0].Position)
	assert.Equal(t, libscn.DefaultLight().Diffuse, p.Lights[0].Diffuse)
	assert.False(t, p.Lights[1].Active)
	assert.Equal(t, mgl32.Vec3{255, 10, 10}, p.Lights[1].Diffuse)

	bunny := p.Material("bunny")
	assert.Equal(t, float32(20), bunny.Shininess)
	assert.Equal(t, libscn.Materials["bunny"].Kd, bunny.Kd)
	assert.Equal(t, mgl32.Vec3{10, 20, 30}, p.Material("teapot").Kd)

	opts := p.Options()
	assert.True(t, opts.Wireframe)
	assert.True(t, opts.DepthTest)
	assert.Equal(t, libscn.Gouraud, opts.Shading)

	cam := p.Camera()
	assert.Equal(t, mgl32.Vec3{0, 3, 8}, cam.Eye)
	assert.Equal(t, 2, p.LightSet().Len())
}

func TestPresetMaterialIsCopy(t *testing.T) {
	p := libscn.DefaultPreset()
	m := p.Material("bunny")
	m.Shininess = 1
	assert.Equal(t, float32(150), p.Material("bunny").Shininess)
}

func TestPresetRejects(t *testing.T) {
	cases := map[string]string{
		"unknown key":    "[camera]\nzoom = 2\n",
		"unknown kind":   "[[lights]]\nkind = \"area\"\n",
		"spot no axis":   "[[lights]]\nkind = \"spot\"\naxis = [0, 0, 0]\n",
		"shading":        "[options]\nshading = \"flat\"\n",
		"degenerate":     "[camera]\neye = [0, 0, 0]\n",
		"too many":       strings.Repeat("[[lights]]\n", 4),
		"malformed toml": "[camera\n",
	}
	for name, src := range cases {
		_, err := libscn.LoadPreset(strings.NewReader(src))
		assert.Error(t, err, name)
	}

	_, err := libscn.LoadPreset(strings.NewReader("[camera]\nnear = nan\n"))
	assert.ErrorIs(t, err, libscn.ErrDegenerateCamera)
	_, err = libscn.LoadPreset(strings.NewReader("[camera]\nfovy = -inf\n"))
	assert.ErrorIs(t, err, libscn.ErrDegenerateCamera)
	_, err = libscn.LoadPreset(strings.NewReader("[materials.bunny]\nshininess = nan\n"))
	assert.ErrorIs(t, err, libscn.ErrMalformedMaterial)
	_, err = libscn.LoadPreset(strings.NewReader("[materials.base]\nkd = [1, -inf, 3]\n"))
	assert.ErrorIs(t, err, libscn.ErrMalformedMaterial)

	_, err = libscn.LoadPreset(strings.NewReader("[camera]\nzoom = 2\n"))
	var strict *toml.StrictMissingError
	assert.ErrorAs(t, err, &strict)
}
