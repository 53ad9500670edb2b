package libscn_test

import (
	"bytes"
	"log"
	"phong-gl/libscn"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMovement(t *testing.T) {
	var in libscn.InputState
	assert.Equal(t, mgl32.Vec3{}, in.Movement())

	in.Held.Set(libscn.MoveForward, true)
	in.Held.Set(libscn.MoveLeft, true)
	in.Held.Set(libscn.MoveUp, true)
	assert.Equal(t, mgl32.Vec3{-1, 1, 1}, in.Movement())

	in.Held.Set(libscn.MoveBackward, true)
	in.Held.Set(libscn.MoveLeft, false)
	assert.Equal(t, mgl32.Vec3{0, 1, 0}, in.Movement())
	assert.True(t, in.Held.Has(libscn.MoveForward))
	assert.False(t, in.Held.Has(libscn.MoveLeft))
}

func newTestCamera(t *testing.T) *libscn.Camera {
	t.Helper()
	cam := libscn.NewCamera(libscn.DefaultCameraHome)
	require.NoError(t, cam.SetPose(mgl32.Vec3{0, 0, 10}, mgl32.Vec3{}, mgl32.Vec3{0, 1, 0}))
	return cam
}

func TestControllerScroll(t *testing.T) {
	cc := &libscn.CameraController{}

	cam := newTestCamera(t)
	cc.Apply(cam, libscn.InputState{Scroll: 100})
	assert.InDelta(t, 55*0.9, cam.Fovy, 1e-4)
	assert.Equal(t, mgl32.Vec3{0, 0, 10}, cam.Eye)

	cam = newTestCamera(t)
	cc.Apply(cam, libscn.InputState{Scroll: 500, Modifiers: libscn.ModDolly})
	assert.InDelta(t, 9.5, cam.Eye[2], 1e-5)
	assert.Equal(t, mgl32.Vec3{}, cam.At)
	assert.Equal(t, float32(55), cam.Fovy)

	cam = newTestCamera(t)
	cc.Apply(cam, libscn.InputState{Scroll: 500, Modifiers: libscn.ModDolly | libscn.ModTruck})
	assert.InDelta(t, 9.5, cam.Eye[2], 1e-5)
	assert.InDelta(t, -0.5, cam.At[2], 1e-5)
}

func TestControllerOrbitOnlyWhileDragging(t *testing.T) {
	cc := &libscn.CameraController{}
	cam := newTestCamera(t)

	cc.Apply(cam, libscn.InputState{CursorDelta: mgl32.Vec2{30, 0}})
	assert.Equal(t, mgl32.Vec3{0, 0, 10}, cam.Eye)

	cc.Apply(cam, libscn.InputState{Dragging: true, CursorDelta: mgl32.Vec2{30, 0}})
	assert.NotEqual(t, mgl32.Vec3{0, 0, 10}, cam.Eye)
	assert.InDelta(t, 10, cam.Eye.Len(), 1e-4)
}

func TestControllerFly(t *testing.T) {
	cc := &libscn.CameraController{FlySpeed: 2}
	cam := newTestCamera(t)

	var in libscn.InputState
	in.Held.Set(libscn.MoveForward, true)
	in.TimeDelta = 0.5
	cc.Apply(cam, in)
	assert.InDelta(t, 9, cam.Eye[2], 1e-5)
	assert.Equal(t, mgl32.Vec3{}, cam.At)

	cc.FlyMovesTarget = true
	cc.Apply(cam, in)
	assert.InDelta(t, 8, cam.Eye[2], 1e-5)
	assert.InDelta(t, -1, cam.At[2], 1e-5)
}

func TestControllerLogsRejectedMoves(t *testing.T) {
	buf := &bytes.Buffer{}
	cc := &libscn.CameraController{FlySpeed: 1, Logger: log.New(buf, "", 0)}
	cam := newTestCamera(t)

	cc.Apply(cam, libscn.InputState{Scroll: 20000, Modifiers: libscn.ModDolly})
	assert.Equal(t, mgl32.Vec3{0, 0, 10}, cam.Eye)
	assert.Contains(t, buf.String(), "dolly rejected")
}
