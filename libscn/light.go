package libscn

import (
	"errors"
	"fmt"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"golang.org/x/exp/slices"

	"phong-gl/libutil"
)

const MaxLights = 3

type LightKind int

const (
	PointLight LightKind = iota
	DirectionalLight
	SpotLight
)

var LightKinds = []LightKind{PointLight, DirectionalLight, SpotLight}

func (k LightKind) String() string {
	switch k {
	case PointLight:
		return "Point"
	case DirectionalLight:
		return "Directional"
	case SpotLight:
		return "Spot"
	}
	return fmt.Sprintf("LightKind(%d)", int(k))
}

func ParseLightKind(s string) (LightKind, error) {
	for _, k := range LightKinds {
		if k.String() == s {
			return k, nil
		}
	}
	switch s {
	case "point":
		return PointLight, nil
	case "directional":
		return DirectionalLight, nil
	case "spot":
		return SpotLight, nil
	}
	return PointLight, fmt.Errorf("unknown light kind %q", s)
}

// Spot only means something for SpotLight.
type Spot struct {
	// Cone half-angle in degrees, [0, 180].
	Aperture float32
	// Angular falloff exponent, [0, 100]. Passed to the shader as is.
	Cutoff float32
}

var DefaultSpot = Spot{Aperture: 14, Cutoff: 25}

// FullSphere is what point and directional lights report.
var FullSphere = Spot{Aperture: 180, Cutoff: 0}

// Light colours are 0-255 per channel.
type Light struct {
	Kind   LightKind
	Active bool
	// For DirectionalLight this is the direction towards the light.
	Position mgl32.Vec3
	Axis     mgl32.Vec3
	Ambient  mgl32.Vec3
	Diffuse  mgl32.Vec3
	Specular mgl32.Vec3
	Spot     Spot
}

func DefaultLight() Light {
	return Light{
		Kind:     SpotLight,
		Active:   true,
		Position: mgl32.Vec3{0, 5, 10},
		Axis:     mgl32.Vec3{0, -1, -1.7},
		Ambient:  mgl32.Vec3{120, 120, 120},
		Diffuse:  mgl32.Vec3{255, 255, 255},
		Specular: mgl32.Vec3{200, 200, 200},
		Spot:     DefaultSpot,
	}
}

// SetKind switches the variant. Becoming a spot without usable cone
// parameters restores the default cone and axis.
func (l *Light) SetKind(k LightKind) {
	l.Kind = k
	if k != SpotLight {
		return
	}
	if l.Spot == (Spot{}) || l.Spot == FullSphere {
		l.Spot = DefaultSpot
	}
	if _, ok := libutil.SafeNormalize(l.Axis); !ok {
		l.Axis = DefaultLight().Axis
	}
}

// Normalize clamps colours and cone parameters into range.
func (l *Light) Normalize() {
	l.Ambient = clampColor(l.Ambient)
	l.Diffuse = clampColor(l.Diffuse)
	l.Specular = clampColor(l.Specular)
	l.Spot.Aperture = libutil.Clamp(l.Spot.Aperture, 0, 180)
	l.Spot.Cutoff = libutil.Clamp(l.Spot.Cutoff, 0, 100)
}

func clampColor(c mgl32.Vec3) mgl32.Vec3 {
	for i := range c {
		c[i] = libutil.Clamp(c[i], 0, libutil.ColorScale)
	}
	return c
}

func (l *Light) validate() error {
	if !libutil.IsFinite3(l.Position) || !libutil.IsFinite3(l.Axis) ||
		!libutil.IsFinite3(l.Ambient) || !libutil.IsFinite3(l.Diffuse) || !libutil.IsFinite3(l.Specular) {
		return errors.New("non-finite field")
	}
	if l.Kind < PointLight || l.Kind > SpotLight {
		return fmt.Errorf("invalid kind %v", l.Kind)
	}
	if l.Kind == SpotLight {
		if _, ok := libutil.SafeNormalize(l.Axis); !ok {
			return errors.New("spot light without axis")
		}
		if math32.IsNaN(l.Spot.Aperture) || math32.IsNaN(l.Spot.Cutoff) {
			return errors.New("non-finite spot parameters")
		}
	}
	return nil
}

// ProjectedLight is a light in view space with shader ready values.
type ProjectedLight struct {
	Kind      LightKind
	Position  mgl32.Vec4
	Direction mgl32.Vec3
	// 0-1 per channel, zero when inactive.
	Ambient, Diffuse, Specular mgl32.Vec3
	Cutoff                     float32
	// cos of the aperture angle
	Aperture float32
}

func darkLight(kind LightKind) ProjectedLight {
	return ProjectedLight{Kind: kind, Aperture: -1}
}

// Project transforms l into the space of view.
func (l Light) Project(view mgl32.Mat4) (ProjectedLight, error) {
	if err := l.validate(); err != nil {
		return darkLight(l.Kind), err
	}
	l.Normalize()

	w := float32(1)
	if l.Kind == DirectionalLight {
		w = 0
	}
	p := ProjectedLight{
		Kind:     l.Kind,
		Position: view.Mul4x1(l.Position.Vec4(w)),
	}
	p.Direction, _ = libutil.SafeNormalize(view.Mul4x1(l.Axis.Vec4(0)).Vec3())

	if l.Active {
		p.Ambient = libutil.Unit(l.Ambient)
		p.Diffuse = libutil.Unit(l.Diffuse)
		p.Specular = libutil.Unit(l.Specular)
	}

	spot := FullSphere
	if l.Kind == SpotLight {
		spot = l.Spot
	}
	p.Cutoff = spot.Cutoff
	p.Aperture = math32.Cos(spot.Aperture * libutil.Deg2Rad)
	return p, nil
}

// LightSet holds between 1 and MaxLights lights in insertion order.
type LightSet struct {
	lights []Light
}

// NewLightSet keeps at most MaxLights of lights and falls back to a
// single DefaultLight when none are given.
func NewLightSet(lights ...Light) *LightSet {
	if len(lights) > MaxLights {
		lights = lights[:MaxLights]
	}
	ls := &LightSet{lights: make([]Light, 0, MaxLights)}
	for _, l := range lights {
		l.Normalize()
		ls.lights = append(ls.lights, l)
	}
	if len(ls.lights) == 0 {
		ls.lights = append(ls.lights, DefaultLight())
	}
	return ls
}

func (ls *LightSet) Len() int {
	return len(ls.lights)
}

// At returns the light at index i for in place edits. Indices are only
// stable until the next Add or Remove.
func (ls *LightSet) At(i int) *Light {
	return &ls.lights[i]
}

func (ls *LightSet) Lights() []Light {
	return slices.Clone(ls.lights)
}

func (ls *LightSet) Add(l Light) error {
	if len(ls.lights) >= MaxLights {
		return fmt.Errorf("%w: maximum of %d lights reached", ErrCapacityExceeded, MaxLights)
	}
	l.Normalize()
	ls.lights = append(ls.lights, l)
	return nil
}

// Remove drops the last light.
func (ls *LightSet) Remove() error {
	n := len(ls.lights)
	if n <= 1 {
		return ErrUnderflow
	}
	ls.lights = slices.Delete(ls.lights, n-1, n)
	return nil
}

// Project converts every light into the space of view. A malformed light
// still occupies its index as a dark entry; the returned error joins one
// ErrMalformedLight per such light.
func (ls *LightSet) Project(view mgl32.Mat4) ([]ProjectedLight, error) {
	out := make([]ProjectedLight, len(ls.lights))
	var errs []error
	for i, l := range ls.lights {
		p, err := l.Project(view)
		if err != nil {
			errs = append(errs, fmt.Errorf("light %d: %w: %v", i, ErrMalformedLight, err))
		}
		out[i] = p
	}
	return out, errors.Join(errs...)
}
