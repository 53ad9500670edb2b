package libutil_test

import (
	"testing"

	"phong-gl/libutil"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
)

func TestUnitAndBytes(t *testing.T) {
	c := mgl32.Vec3{255, 0, 127.5}
	u := libutil.Unit(c)
	assert.InDelta(t, 1, u[0], 1e-6)
	assert.InDelta(t, 0, u[1], 1e-6)
	assert.InDelta(t, 0.5, u[2], 1e-6)

	b := libutil.Bytes(mgl32.Vec3{2, -1, 0.5})
	assert.Equal(t, mgl32.Vec3{255, 0, 127.5}, b)
}

func TestPerpendicular(t *testing.T) {
	for _, v := range []mgl32.Vec3{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}, {1, 2, 3}, {-4, 0.5, 0}} {
		p := libutil.Perpendicular(v)
		assert.InDelta(t, 0, p.Dot(v), 1e-5, "perpendicular of %v", v)
		assert.Greater(t, p.Len(), float32(0))
	}
}

func TestSafeNormalize(t *testing.T) {
	n, ok := libutil.SafeNormalize(mgl32.Vec3{})
	assert.False(t, ok)
	assert.Equal(t, mgl32.Vec3{}, n)

	n, ok = libutil.SafeNormalize(mgl32.Vec3{0, 3, 4})
	assert.True(t, ok)
	assert.InDelta(t, 1, n.Len(), 1e-6)

	_, ok = libutil.SafeNormalize(mgl32.Vec3{math32.NaN(), 0, 1})
	assert.False(t, ok)
}

func TestIsFinite3(t *testing.T) {
	assert.True(t, libutil.IsFinite3(mgl32.Vec3{1, 2, 3}))
	assert.False(t, libutil.IsFinite3(mgl32.Vec3{math32.Inf(1), 2, 3}))
}

func TestClamp(t *testing.T) {
	assert.Equal(t, float32(1), libutil.Clamp(5, 0, 1))
	assert.Equal(t, float32(0), libutil.Clamp(-5, 0, 1))
	assert.Equal(t, float32(0.5), libutil.Clamp(0.5, 0, 1))
	assert.Equal(t, float32(2), libutil.Clamp(math32.NaN(), 2, 3))
	assert.False(t, libutil.IsFinite(math32.NaN()))
	assert.False(t, libutil.IsFinite(math32.Inf(-1)))
	assert.True(t, libutil.IsFinite(0))
}
