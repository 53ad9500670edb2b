package libutil

import (
	"math"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

const (
	Rad2Deg = float32(180 / math.Pi)
	Deg2Rad = float32(math.Pi / 180)
)

// Channel values are stored in the 0-255 range and uploaded as 0-1.
const ColorScale = float32(255)

// Clamp maps NaN to lo.
func Clamp(v, lo, hi float32) float32 {
	if math32.IsNaN(v) {
		return lo
	}
	return math32.Max(lo, math32.Min(hi, v))
}

// Unit maps a 0-255 color to 0-1.
func Unit(c mgl32.Vec3) mgl32.Vec3 {
	return c.Mul(1 / ColorScale)
}

// Bytes maps a 0-1 color to 0-255, clamping each channel.
func Bytes(c mgl32.Vec3) mgl32.Vec3 {
	return mgl32.Vec3{
		Clamp(c[0]*ColorScale, 0, ColorScale),
		Clamp(c[1]*ColorScale, 0, ColorScale),
		Clamp(c[2]*ColorScale, 0, ColorScale),
	}
}

func IsFinite(v float32) bool {
	return !math32.IsNaN(v) && !math32.IsInf(v, 0)
}

func IsFinite3(v mgl32.Vec3) bool {
	for _, c := range v {
		if !IsFinite(c) {
			return false
		}
	}
	return true
}

// https://math.stackexchange.com/a/1681815/1014081
func Perpendicular(v mgl32.Vec3) mgl32.Vec3 {
	lx := v[0] * v[0]
	ly := v[1] * v[1]
	lz := v[2] * v[2]

	smallest := lx
	index := 0
	if smallest > ly {
		smallest = ly
		index = 1
	}
	if smallest > lz {
		index = 2
	}
	e := mgl32.Vec3{}
	e[index] = 1
	return v.Cross(e)
}

// SafeNormalize returns the zero vector instead of NaNs for near zero input.
func SafeNormalize(v mgl32.Vec3) (mgl32.Vec3, bool) {
	l := v.Len()
	if l < 1e-6 || math32.IsNaN(l) || math32.IsInf(l, 0) {
		return mgl32.Vec3{}, false
	}
	return v.Mul(1 / l), true
}
