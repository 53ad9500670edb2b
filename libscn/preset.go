package libscn

import (
	"fmt"
	"io"
	"os"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/pelletier/go-toml/v2"

	"phong-gl/libutil"
)

// Preset is the startup configuration of the scene. It is only read.
type Preset struct {
	Home      CameraHome
	Lights    []Light
	Materials map[string]Material
	Opts      Options
}

func DefaultPreset() *Preset {
	materials := make(map[string]Material, len(Materials))
	for name, m := range Materials {
		materials[name] = m
	}
	return &Preset{
		Home:      DefaultCameraHome,
		Lights:    []Light{DefaultLight()},
		Materials: materials,
		Opts:      DefaultOptions,
	}
}

func (p *Preset) Camera() *Camera {
	return NewCamera(p.Home)
}

func (p *Preset) LightSet() *LightSet {
	return NewLightSet(p.Lights...)
}

// Material returns a fresh copy of the named material, or of
// DefaultMaterial when the preset has no such entry.
func (p *Preset) Material(name string) *Material {
	m, ok := p.Materials[name]
	if !ok {
		m = DefaultMaterial
	}
	m.Normalize()
	return &m
}

func (p *Preset) Options() Options {
	return p.Opts
}

// Every field is optional; absent ones keep the default.
type presetFile struct {
	Camera    cameraFile              `toml:"camera"`
	Lights    []lightFile             `toml:"lights"`
	Materials map[string]materialFile `toml:"materials"`
	Options   optionsFile             `toml:"options"`
}

type cameraFile struct {
	Eye  *[3]float32 `toml:"eye"`
	At   *[3]float32 `toml:"at"`
	Up   *[3]float32 `toml:"up"`
	Fovy *float32    `toml:"fovy"`
	Near *float32    `toml:"near"`
	Far  *float32    `toml:"far"`
}

type lightFile struct {
	Kind     *string     `toml:"kind"`
	Active   *bool       `toml:"active"`
	Position *[3]float32 `toml:"position"`
	Axis     *[3]float32 `toml:"axis"`
	Ambient  *[3]float32 `toml:"ambient"`
	Diffuse  *[3]float32 `toml:"diffuse"`
	Specular *[3]float32 `toml:"specular"`
	Aperture *float32    `toml:"aperture"`
	Cutoff   *float32    `toml:"cutoff"`
}

type materialFile struct {
	Ka        *[3]float32 `toml:"ka"`
	Kd        *[3]float32 `toml:"kd"`
	Ks        *[3]float32 `toml:"ks"`
	Shininess *float32    `toml:"shininess"`
}

type optionsFile struct {
	Wireframe       *bool   `toml:"wireframe"`
	BackfaceCulling *bool   `toml:"backface_culling"`
	DepthTest       *bool   `toml:"depth_test"`
	Shading         *string `toml:"shading"`
}

func setVec3(dst *mgl32.Vec3, src *[3]float32) {
	if src != nil {
		*dst = mgl32.Vec3(*src)
	}
}

func setFloat(dst *float32, src *float32) {
	if src != nil {
		*dst = *src
	}
}

func setBool(dst *bool, src *bool) {
	if src != nil {
		*dst = *src
	}
}

func ParseShadingMode(s string) (ShadingMode, error) {
	switch s {
	case "phong", "Phong":
		return Phong, nil
	case "gouraud", "Gouraud":
		return Gouraud, nil
	}
	return Phong, fmt.Errorf("unknown shading mode %q", s)
}

// LoadPreset decodes a TOML preset over DefaultPreset. Unknown keys are
// an error. A [[lights]] list replaces the default lights, each entry
// starting from DefaultLight.
func LoadPreset(r io.Reader) (*Preset, error) {
	var file presetFile
	dec := toml.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&file); err != nil {
		return nil, fmt.Errorf("decode preset: %w", err)
	}

	p := DefaultPreset()

	cam := file.Camera
	setVec3(&p.Home.Eye, cam.Eye)
	setVec3(&p.Home.At, cam.At)
	setVec3(&p.Home.Up, cam.Up)
	setFloat(&p.Home.Fovy, cam.Fovy)
	setFloat(&p.Home.Near, cam.Near)
	setFloat(&p.Home.Far, cam.Far)
	if err := validatePose(p.Home.CameraPose); err != nil {
		return nil, fmt.Errorf("preset camera: %w", err)
	}
	if !libutil.IsFinite(p.Home.Fovy) || !libutil.IsFinite(p.Home.Near) || !libutil.IsFinite(p.Home.Far) {
		return nil, fmt.Errorf("preset camera: %w: non-finite frustum", ErrDegenerateCamera)
	}

	if len(file.Lights) > MaxLights {
		return nil, fmt.Errorf("preset has %d lights: %w", len(file.Lights), ErrCapacityExceeded)
	}
	if len(file.Lights) > 0 {
		p.Lights = p.Lights[:0]
	}
	for i, lf := range file.Lights {
		l := DefaultLight()
		if lf.Kind != nil {
			kind, err := ParseLightKind(*lf.Kind)
			if err != nil {
				return nil, fmt.Errorf("preset light %d: %w", i, err)
			}
			l.SetKind(kind)
		}
		setBool(&l.Active, lf.Active)
		setVec3(&l.Position, lf.Position)
		setVec3(&l.Axis, lf.Axis)
		setVec3(&l.Ambient, lf.Ambient)
		setVec3(&l.Diffuse, lf.Diffuse)
		setVec3(&l.Specular, lf.Specular)
		setFloat(&l.Spot.Aperture, lf.Aperture)
		setFloat(&l.Spot.Cutoff, lf.Cutoff)
		if err := l.validate(); err != nil {
			return nil, fmt.Errorf("preset light %d: %w: %v", i, ErrMalformedLight, err)
		}
		l.Normalize()
		p.Lights = append(p.Lights, l)
	}

	for name, mf := range file.Materials {
		m, ok := p.Materials[name]
		if !ok {
			m = DefaultMaterial
		}
		setVec3(&m.Ka, mf.Ka)
		setVec3(&m.Kd, mf.Kd)
		setVec3(&m.Ks, mf.Ks)
		setFloat(&m.Shininess, mf.Shininess)
		if !libutil.IsFinite3(m.Ka) || !libutil.IsFinite3(m.Kd) || !libutil.IsFinite3(m.Ks) || !libutil.IsFinite(m.Shininess) {
			return nil, fmt.Errorf("preset material %q: %w", name, ErrMalformedMaterial)
		}
		m.Normalize()
		p.Materials[name] = m
	}

	opts := file.Options
	setBool(&p.Opts.Wireframe, opts.Wireframe)
	setBool(&p.Opts.BackfaceCulling, opts.BackfaceCulling)
	setBool(&p.Opts.DepthTest, opts.DepthTest)
	if opts.Shading != nil {
		mode, err := ParseShadingMode(*opts.Shading)
		if err != nil {
			return nil, fmt.Errorf("preset options: %w", err)
		}
		p.Opts.Shading = mode
	}

	return p, nil
}

func LoadPresetFile(path string) (*Preset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return LoadPreset(f)
}
