package libgl_test

import (
	"phong-gl/libgl"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/go-gl/gl/v4.5-core/gl"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testVertexSource = `#version 450 core
//meta:name test_vs
#define MAX_LIGHTS 3
// #define DEBUG_NORMALS

void main() {}
`

func TestNewShaderRequiresVersion(t *testing.T) {
	_, err := libgl.NewShader("void main() {}", gl.VERTEX_SHADER)
	assert.Error(t, err)
}

func TestShaderMeta(t *testing.T) {
	prog, err := libgl.NewShader(testVertexSource, gl.VERTEX_SHADER)
	require.NoError(t, err)
	assert.Equal(t, "test_vs", prog.Name())
	assert.Equal(t, gl.VERTEX_SHADER, prog.Stage())
}

func TestExpandKeepsDefaults(t *testing.T) {
	prog, err := libgl.NewShader(testVertexSource, gl.VERTEX_SHADER)
	require.NoError(t, err)

	source := prog.Expand(nil)
	assert.Contains(t, source, "#define MAX_LIGHTS 3")
	assert.Contains(t, source, "// #define DEBUG_NORMALS")
	assert.NotContains(t, source, "$def_")
	assert.True(t, strings.HasPrefix(source, "#version 450 core"))
}

func TestExpandOverrides(t *testing.T) {
	prog, err := libgl.NewShader(testVertexSource, gl.VERTEX_SHADER)
	require.NoError(t, err)

	source := prog.Expand(map[string]string{
		"max_lights":    "5",
		"DEBUG_NORMALS": "true",
		"EXTRA":         "1",
	})
	assert.Contains(t, source, "#define MAX_LIGHTS 5")
	assert.NotContains(t, source, "#define MAX_LIGHTS 3")
	assert.Contains(t, source, "\n#define DEBUG_NORMALS\n")
	assert.True(t, strings.HasPrefix(source, "#version 450 core\n#define EXTRA 1\n"))

	source = prog.Expand(map[string]string{"DEBUG_NORMALS": "false"})
	assert.Contains(t, source, "// #define DEBUG_NORMALS")
}

func TestExpandIncludes(t *testing.T) {
	fsys := fstest.MapFS{
		"shaders/main.vert":       {Data: []byte("#version 450 core\n#include \"lib/light.glsl\"\nvoid main() {}\n")},
		"shaders/lib/light.glsl":  {Data: []byte("#include \"common.glsl\"\nfloat light;\n")},
		"shaders/lib/common.glsl": {Data: []byte("float common;")},
		"shaders/loop.glsl":       {Data: []byte("#include \"loop.glsl\"\n")},
	}

	prog, err := libgl.LoadShader(fsys, "shaders/main.vert", gl.VERTEX_SHADER)
	require.NoError(t, err)
	source := prog.Expand(nil)
	assert.Contains(t, source, "float common;\nfloat light;")
	assert.NotContains(t, source, "#include")

	_, err = libgl.ExpandIncludes(fsys, "shaders", `#include "missing.glsl"`)
	assert.ErrorContains(t, err, "missing.glsl")

	_, err = libgl.ExpandIncludes(fsys, "shaders", `#include "loop.glsl"`)
	assert.ErrorContains(t, err, "nested")
}
