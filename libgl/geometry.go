package libgl

import (
	"encoding/binary"
	"fmt"
	"log"

	"github.com/go-gl/gl/v4.5-core/gl"
)

type buffer struct {
	glId      uint32
	size      int
	flags     uint32
	immutable bool
}

type UnboundBuffer interface {
	LabeledGlObject
	Id() uint32
	Allocate(data any, flags int)
	AllocateEmptyMutable(size int, usage int)
	Grow(size int) bool
	Write(offset int, data any)
	WriteRange(offset int, size int, data any)
	Size() int
	Bind(target uint32) BoundBuffer
	Delete()
}

type BoundBuffer interface {
	UnboundBuffer
}

func NewBuffer() UnboundBuffer {
	var id uint32
	gl.CreateBuffers(1, &id)
	return &buffer{
		glId: id,
	}
}

func (vbo *buffer) Id() uint32 {
	return vbo.glId
}

func (vbo *buffer) SetDebugLabel(label string) {
	setObjectLabel(gl.BUFFER, vbo.glId, label)
}

func (vbo *buffer) Bind(target uint32) BoundBuffer {
	State.BindBuffer(target, vbo.glId)
	return BoundBuffer(vbo)
}

func (vbo *buffer) Size() int {
	return vbo.size
}

// Allocate creates immutable storage holding data.
func (vbo *buffer) Allocate(data any, flags int) {
	if vbo.immutable {
		log.Panicf("buffer %d is immutable", vbo.glId)
	}
	size := binary.Size(data)
	if size == -1 {
		log.Panicf("%T does not have a fixed size", data)
	}
	if vbo.warnAllocationSizeZero(size) {
		return
	}
	gl.NamedBufferStorage(vbo.glId, size, Pointer(data), uint32(flags))
	vbo.size = size
	vbo.flags = uint32(flags)
	vbo.immutable = true
}

func (vbo *buffer) AllocateEmptyMutable(size int, usage int) {
	if vbo.immutable {
		log.Panicf("buffer %d is immutable", vbo.glId)
	}
	if vbo.warnAllocationSizeZero(size) {
		return
	}
	gl.NamedBufferData(vbo.glId, size, nil, uint32(usage))
	vbo.flags = uint32(usage)
	vbo.size = size
}

func (vbo *buffer) warnAllocationSizeZero(size int) bool {
	if size != 0 {
		return false
	}
	msg := "Zero size buffer allocation\x00"
	gl.DebugMessageInsert(gl.DEBUG_SOURCE_APPLICATION, gl.DEBUG_TYPE_ERROR, 1, gl.DEBUG_SEVERITY_MEDIUM, -1, gl.Str(msg))
	return true
}

// Grow reallocates a mutable buffer so it holds at least size bytes.
// The old contents are discarded. It reports whether storage changed.
func (vbo *buffer) Grow(size int) bool {
	if vbo.immutable {
		log.Panicf("buffer %d is immutable", vbo.glId)
	}
	if size <= vbo.size {
		return false
	}
	newSize := vbo.size * 2
	if newSize < size {
		newSize = size
	}
	usage := vbo.flags
	if usage == 0 {
		usage = gl.DYNAMIC_DRAW
	}
	gl.NamedBufferData(vbo.glId, newSize, nil, usage)
	vbo.flags = usage
	vbo.size = newSize
	return true
}

func (vbo *buffer) Write(offset int, data any) {
	size := binary.Size(data)
	if size == -1 {
		log.Panicf("%T does not have a fixed size", data)
	}
	gl.NamedBufferSubData(vbo.glId, offset, size, Pointer(data))
}

func (vbo *buffer) WriteRange(offset int, size int, data any) {
	if offset+size > vbo.size {
		panic(fmt.Errorf("write of %d bytes at %d overflows buffer of %d bytes", size, offset, vbo.size))
	}
	gl.NamedBufferSubData(vbo.glId, offset, size, Pointer(data))
}

func (vbo *buffer) Delete() {
	gl.DeleteBuffers(1, &vbo.glId)
	vbo.glId = 0
}

type vertexArray struct {
	glId uint32
}

type UnboundVertexArray interface {
	LabeledGlObject
	Layout(bufferIndex int, attributeIndex int, size int, dataType int, normalized bool, offset int)
	BindBuffer(bufferIndex int, vbo UnboundBuffer, offset int, stride int)
	BindElementBuffer(ebo UnboundBuffer)
	Id() uint32
	Bind() BoundVertexArray
	Delete()
}

type BoundVertexArray interface {
	UnboundVertexArray
}

func NewVertexArray() UnboundVertexArray {
	var id uint32
	gl.CreateVertexArrays(1, &id)
	return &vertexArray{
		glId: id,
	}
}

func (vao *vertexArray) Bind() BoundVertexArray {
	State.BindVertexArray(vao.glId)
	return BoundVertexArray(vao)
}

func (vao *vertexArray) Id() uint32 {
	return vao.glId
}

func (vao *vertexArray) SetDebugLabel(label string) {
	setObjectLabel(gl.VERTEX_ARRAY, vao.glId, label)
}

func (vao *vertexArray) Layout(bufferIndex int, attributeIndex int, size int, dataType int, normalized bool, offset int) {
	gl.EnableVertexArrayAttrib(vao.glId, uint32(attributeIndex))
	gl.VertexArrayAttribFormat(vao.glId, uint32(attributeIndex), int32(size), uint32(dataType), normalized, uint32(offset))
	gl.VertexArrayAttribBinding(vao.glId, uint32(attributeIndex), uint32(bufferIndex))
}

func (vao *vertexArray) BindBuffer(bufferIndex int, vbo UnboundBuffer, offset int, stride int) {
	gl.VertexArrayVertexBuffer(vao.glId, uint32(bufferIndex), vbo.Id(), offset, int32(stride))
}

func (vao *vertexArray) BindElementBuffer(ebo UnboundBuffer) {
	gl.VertexArrayElementBuffer(vao.glId, ebo.Id())
}

func (vao *vertexArray) Delete() {
	gl.DeleteVertexArrays(1, &vao.glId)
	vao.glId = 0
}
