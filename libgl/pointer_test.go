package libgl_test

import (
	"testing"
	"unsafe"

	"phong-gl/libgl"

	"github.com/stretchr/testify/assert"
)

func TestPointer(t *testing.T) {
	data := []float32{1, 2, 3}
	assert.Equal(t, unsafe.Pointer(&data[0]), libgl.Pointer(data))
	assert.Nil(t, libgl.Pointer([]float32{}))
	assert.Nil(t, libgl.Pointer(nil))

	v := int32(7)
	assert.Equal(t, unsafe.Pointer(&v), libgl.Pointer(&v))
	assert.Equal(t, unsafe.Pointer(uintptr(16)), libgl.Pointer(uintptr(16)))

	assert.Panics(t, func() { libgl.Pointer(3) })
}
