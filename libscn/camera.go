package libscn

import (
	"fmt"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"

	"phong-gl/libutil"
)

const (
	// Minimum distance kept between the near and far planes.
	ClipEpsilon = float32(0.5)
	MinNear     = float32(0.01)
	MinFovy     = float32(1)
	MaxFovy     = float32(100)

	// Degrees of orbit per pixel of drag.
	OrbitSensitivity = float32(0.5)
	// Scroll units are browser style wheel deltas, about 100 per notch.
	ZoomRate  = float32(1. / 1000.)
	DollyRate = float32(1. / 1000.)
)

var WorldUp = mgl32.Vec3{0, 1, 0}

type CameraPose struct {
	Eye, At, Up mgl32.Vec3
}

// CameraHome is what Reset restores.
type CameraHome struct {
	CameraPose
	Fovy      float32
	Near, Far float32
}

var DefaultCameraHome = CameraHome{
	CameraPose: CameraPose{
		Eye: mgl32.Vec3{2, 4, 11},
		At:  mgl32.Vec3{0, 0, 0},
		Up:  mgl32.Vec3{0, 1, 0},
	},
	Fovy: 55,
	Near: 0.1,
	Far:  20,
}

// Camera is a look-at camera with a perspective frustum.
// Eye, At and Up must be written as a whole, see SetPose.
type Camera struct {
	Eye, At, Up mgl32.Vec3
	// in degrees
	Fovy float32
	// Derived from the viewport, see Resize.
	Aspect    float32
	Near, Far float32

	home     CameraHome
	lastGood mgl32.Mat4
}

func NewCamera(home CameraHome) *Camera {
	cam := &Camera{Aspect: 1, home: home}
	cam.Reset()
	cam.lastGood = mgl32.LookAtV(DefaultCameraHome.Eye, DefaultCameraHome.At, DefaultCameraHome.Up)
	if view, err := cam.lookAt(cam.Pose()); err == nil {
		cam.lastGood = view
	}
	return cam
}

// Reset restores the home pose and frustum. The aspect ratio is kept.
func (cam *Camera) Reset() {
	cam.Eye, cam.At, cam.Up = cam.home.Eye, cam.home.At, cam.home.Up
	cam.Fovy = cam.home.Fovy
	cam.Near, cam.Far = cam.home.Near, cam.home.Far
	cam.SetFovy(cam.Fovy)
	cam.SetFar(cam.Far)
	cam.SetNear(cam.Near)
}

func (cam *Camera) Pose() CameraPose {
	return CameraPose{Eye: cam.Eye, At: cam.At, Up: cam.Up}
}

// SetPose writes eye, at and up as one update. A degenerate pose is
// rejected and the previous one kept.
func (cam *Camera) SetPose(eye, at, up mgl32.Vec3) error {
	return cam.commit(CameraPose{Eye: eye, At: at, Up: up})
}

func (cam *Camera) commit(pose CameraPose) error {
	if err := validatePose(pose); err != nil {
		return err
	}
	cam.Eye, cam.At, cam.Up = pose.Eye, pose.At, pose.Up
	return nil
}

func (cam *Camera) Resize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	cam.Aspect = float32(width) / float32(height)
}

func (cam *Camera) SetFovy(v float32) {
	cam.Fovy = libutil.Clamp(v, MinFovy, MaxFovy)
}

// SetNear moves the near plane, pushing the far plane out when needed.
// Non-finite values are ignored.
func (cam *Camera) SetNear(v float32) {
	if !libutil.IsFinite(v) {
		return
	}
	v = math32.Max(v, MinNear)
	cam.Near = v
	if cam.Far-v < ClipEpsilon {
		cam.Far = v + ClipEpsilon
	}
}

// SetFar moves the far plane, pulling the near plane in when needed.
// Non-finite values are ignored.
func (cam *Camera) SetFar(v float32) {
	if !libutil.IsFinite(v) {
		return
	}
	v = math32.Max(v, MinNear+ClipEpsilon)
	cam.Far = v
	if v-cam.Near < ClipEpsilon {
		cam.Near = v - ClipEpsilon
	}
}

func validatePose(p CameraPose) error {
	if !libutil.IsFinite3(p.Eye) || !libutil.IsFinite3(p.At) || !libutil.IsFinite3(p.Up) {
		return fmt.Errorf("%w: non-finite pose", ErrDegenerateCamera)
	}
	forward, ok := libutil.SafeNormalize(p.At.Sub(p.Eye))
	if !ok {
		return fmt.Errorf("%w: eye and at coincide at %v", ErrDegenerateCamera, p.Eye)
	}
	up, ok := libutil.SafeNormalize(p.Up)
	if !ok {
		return fmt.Errorf("%w: zero up vector", ErrDegenerateCamera)
	}
	if forward.Cross(up).Len() < 1e-4 {
		return fmt.Errorf("%w: up %v is parallel to the view direction", ErrDegenerateCamera, p.Up)
	}
	return nil
}

func (cam *Camera) lookAt(p CameraPose) (mgl32.Mat4, error) {
	if err := validatePose(p); err != nil {
		return cam.lastGood, err
	}
	return mgl32.LookAtV(p.Eye, p.At, p.Up), nil
}

// ViewMatrix returns look-at(eye, at, up). For a degenerate pose the last
// good view matrix is returned together with ErrDegenerateCamera.
func (cam *Camera) ViewMatrix() (mgl32.Mat4, error) {
	view, err := cam.lookAt(cam.Pose())
	if err != nil {
		return view, err
	}
	cam.lastGood = view
	return view, nil
}

func (cam *Camera) ProjectionMatrix() mgl32.Mat4 {
	aspect := cam.Aspect
	if !(aspect > 0) {
		aspect = 1
	}
	return mgl32.Perspective(cam.Fovy*libutil.Deg2Rad, aspect, cam.Near, cam.Far)
}

// Orbit revolves the eye around at for a pointer drag of (dx, dy) pixels.
// The rotation axis (-dy, -dx, 0) is in camera space, so it is conjugated
// with the view matrix before it is applied to the world space vectors.
func (cam *Camera) Orbit(dx, dy float32) error {
	if dx == 0 && dy == 0 {
		return nil
	}
	view, err := cam.ViewMatrix()
	if err != nil {
		return err
	}
	axis, ok := libutil.SafeNormalize(mgl32.Vec3{-dy, -dx, 0})
	if !ok {
		return nil
	}
	angle := OrbitSensitivity * math32.Sqrt(dx*dx+dy*dy) * libutil.Deg2Rad
	rotation := mgl32.HomogRotate3D(angle, axis)
	inCamera := view.Inv().Mul4(rotation).Mul4(view)

	eyeAt := inCamera.Mul4x1(cam.Eye.Sub(cam.At).Vec4(0)).Vec3()
	up := inCamera.Mul4x1(cam.Up.Vec4(0)).Vec3()
	return cam.commit(CameraPose{Eye: cam.At.Add(eyeAt), At: cam.At, Up: up})
}

// Zoom scales the field of view; positive deltas narrow it.
func (cam *Camera) Zoom(delta float32) {
	cam.SetFovy(cam.Fovy * (1 - delta*ZoomRate))
}

// Dolly moves the eye along the view direction, and at too when moveAt is
// set. Moving the eye onto at is rejected.
func (cam *Camera) Dolly(delta float32, moveAt bool) error {
	dir, ok := libutil.SafeNormalize(cam.At.Sub(cam.Eye))
	if !ok {
		return fmt.Errorf("%w: eye and at coincide at %v", ErrDegenerateCamera, cam.Eye)
	}
	offset := dir.Mul(delta * DollyRate)
	pose := cam.Pose()
	pose.Eye = pose.Eye.Add(offset)
	if moveAt {
		pose.At = pose.At.Add(offset)
	}
	if !moveAt && pose.At.Sub(pose.Eye).Dot(dir) <= 0 {
		return fmt.Errorf("%w: dolly would pass the target", ErrDegenerateCamera)
	}
	return cam.commit(pose)
}

// FlyAxes returns the right, up and forward axes used by Fly.
// Right is taken from the horizontal part of forward so strafing stays level.
func (cam *Camera) FlyAxes() (right, up, forward mgl32.Vec3, err error) {
	forward, ok := libutil.SafeNormalize(cam.At.Sub(cam.Eye))
	if !ok {
		return right, up, forward, fmt.Errorf("%w: eye and at coincide at %v", ErrDegenerateCamera, cam.Eye)
	}
	up, ok = libutil.SafeNormalize(cam.Up)
	if !ok {
		up = WorldUp
	}
	right, ok = libutil.SafeNormalize(mgl32.Vec3{forward[0], 0, forward[2]}.Cross(WorldUp))
	if !ok {
		// looking straight up or down
		right, ok = libutil.SafeNormalize(forward.Cross(up))
		if !ok {
			right = libutil.Perpendicular(forward).Normalize()
		}
	}
	return right, up, forward, nil
}

// Fly translates the eye by distance along axes = (right, up, forward).
// At stays fixed unless moveAt is set, so by default the camera keeps
// looking at the same point while it moves.
func (cam *Camera) Fly(axes mgl32.Vec3, distance float32, moveAt bool) error {
	if axes.LenSqr() == 0 || distance == 0 {
		return nil
	}
	right, up, forward, err := cam.FlyAxes()
	if err != nil {
		return err
	}
	move := right.Mul(axes[0]).Add(up.Mul(axes[1])).Add(forward.Mul(axes[2])).Mul(distance)
	pose := cam.Pose()
	pose.Eye = pose.Eye.Add(move)
	if moveAt {
		pose.At = pose.At.Add(move)
	}
	return cam.commit(pose)
}
