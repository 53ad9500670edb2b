package libscn

import (
	"log"

	"github.com/go-gl/mathgl/mgl32"
)

type Action uint8

const (
	MoveForward Action = iota
	MoveBackward
	MoveLeft
	MoveRight
	MoveUp
	MoveDown
)

type ActionSet uint8

func (s ActionSet) Has(a Action) bool {
	return s&(1<<a) != 0
}

func (s *ActionSet) Set(a Action, held bool) {
	if held {
		*s |= 1 << a
	} else {
		*s &^= 1 << a
	}
}

type Modifier uint8

const (
	// Scroll moves the eye instead of zooming.
	ModDolly Modifier = 1 << iota
	// Scroll moves eye and at together.
	ModTruck
)

// InputState is one snapshot of the user's input, sampled once per tick.
type InputState struct {
	Held ActionSet
	// A pointer drag is in progress.
	Dragging    bool
	CursorDelta mgl32.Vec2
	// Wheel units, about 100 per notch, positive when scrolling down.
	Scroll    float32
	Modifiers Modifier
	// seconds
	TimeDelta float32
}

// Movement returns the held fly direction as (right, up, forward) axes.
func (in InputState) Movement() mgl32.Vec3 {
	var x, y, z float32
	if in.Held.Has(MoveForward) {
		z += 1
	}
	if in.Held.Has(MoveBackward) {
		z -= 1
	}
	if in.Held.Has(MoveLeft) {
		x -= 1
	}
	if in.Held.Has(MoveRight) {
		x += 1
	}
	if in.Held.Has(MoveUp) {
		y += 1
	}
	if in.Held.Has(MoveDown) {
		y -= 1
	}
	return mgl32.Vec3{x, y, z}
}

// CameraController maps input snapshots to camera moves.
type CameraController struct {
	// world units per second
	FlySpeed       float32
	FlyMovesTarget bool
	Logger         *log.Logger
}

const DefaultFlySpeed = float32(4)

func (cc *CameraController) logger() *log.Logger {
	if cc.Logger == nil {
		return log.Default()
	}
	return cc.Logger
}

// Apply runs one tick of camera control. Rejected moves are logged and
// leave the camera as it was.
func (cc *CameraController) Apply(cam *Camera, in InputState) {
	if in.Dragging && in.CursorDelta.LenSqr() > 0 {
		if err := cam.Orbit(in.CursorDelta[0], in.CursorDelta[1]); err != nil {
			cc.logger().Printf("orbit rejected: %v", err)
		}
	}

	if in.Scroll != 0 {
		var err error
		switch {
		case in.Modifiers&ModTruck != 0:
			err = cam.Dolly(in.Scroll, true)
		case in.Modifiers&ModDolly != 0:
			err = cam.Dolly(in.Scroll, false)
		default:
			cam.Zoom(in.Scroll)
		}
		if err != nil {
			cc.logger().Printf("dolly rejected: %v", err)
		}
	}

	axes := in.Movement()
	if axes.LenSqr() > 0 && in.TimeDelta > 0 {
		speed := cc.FlySpeed
		if speed <= 0 {
			speed = DefaultFlySpeed
		}
		if err := cam.Fly(axes, speed*in.TimeDelta, cc.FlyMovesTarget); err != nil {
			cc.logger().Printf("fly rejected: %v", err)
		}
	}
}
