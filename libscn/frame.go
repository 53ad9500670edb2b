package libscn

import (
	"errors"
	"fmt"
	"log"

	"github.com/go-gl/mathgl/mgl32"

	"phong-gl/libutil"
)

type ShadingMode int32

const (
	// per fragment
	Phong ShadingMode = iota
	// per vertex
	Gouraud
)

func (m ShadingMode) String() string {
	switch m {
	case Phong:
		return "Phong"
	case Gouraud:
		return "Gouraud"
	}
	return fmt.Sprintf("ShadingMode(%d)", int32(m))
}

type PrimitiveMode int

const (
	Triangles PrimitiveMode = iota
	Lines
)

type Options struct {
	Wireframe       bool
	BackfaceCulling bool
	DepthTest       bool
	Shading         ShadingMode
}

var DefaultOptions = Options{
	BackfaceCulling: true,
	DepthTest:       true,
	Shading:         Phong,
}

// UniformSink receives named uniform values. Values are mgl32.Mat4,
// mgl32.Vec4, mgl32.Vec3, float32 or int32.
type UniformSink interface {
	SetUniform(name string, value any)
}

type Drawable interface {
	Draw(mode PrimitiveMode) error
}

const (
	UniformModelView   = "u_model_view"
	UniformProjection  = "u_projection"
	UniformNormals     = "u_normals"
	UniformNLights     = "u_n_lights"
	UniformShadingMode = "u_shading_mode"

	UniformMaterialKa        = "u_material.Ka"
	UniformMaterialKd        = "u_material.Kd"
	UniformMaterialKs        = "u_material.Ks"
	UniformMaterialShininess = "u_material.shininess"
)

type lightUniforms struct {
	Ambient, Diffuse, Specular, Position, Direction, Cutoff, Aperture string
}

var lightUniformNames [MaxLights]lightUniforms

func init() {
	for i := range lightUniformNames {
		prefix := fmt.Sprintf("u_lights[%d].", i)
		lightUniformNames[i] = lightUniforms{
			Ambient:   prefix + "ambient",
			Diffuse:   prefix + "diffuse",
			Specular:  prefix + "specular",
			Position:  prefix + "position",
			Direction: prefix + "direction",
			Cutoff:    prefix + "cutoff",
			Aperture:  prefix + "aperture",
		}
	}
}

// FrameContext is the per frame snapshot every draw reads from.
type FrameContext struct {
	View       mgl32.Mat4
	Projection mgl32.Mat4
	Lights     []ProjectedLight
	Options    Options
	Stack      *TransformStack
	logger     *log.Logger
}

type FrameBuilder struct {
	Camera  *Camera
	Lights  *LightSet
	Options *Options
	// Reused across frames; created on first use when nil.
	Stack  *TransformStack
	Logger *log.Logger
}

// Begin snapshots camera, lights and options and seeds the stack with the
// view matrix. The returned context is always usable: a degenerate camera
// or malformed lights are reported through the error while the frame falls
// back to the last good view and dark light entries.
func (fb *FrameBuilder) Begin() (*FrameContext, error) {
	if fb.Stack == nil {
		fb.Stack = NewTransformStack()
	}
	logger := fb.Logger
	if logger == nil {
		logger = log.Default()
	}
	opts := DefaultOptions
	if fb.Options != nil {
		opts = *fb.Options
	}

	view, viewErr := fb.Camera.ViewMatrix()
	lights, lightErr := fb.Lights.Project(view)
	fb.Stack.LoadMatrix(view)

	return &FrameContext{
		View:       view,
		Projection: fb.Camera.ProjectionMatrix(),
		Lights:     lights,
		Options:    opts,
		Stack:      fb.Stack,
		logger:     logger,
	}, errors.Join(viewErr, lightErr)
}

// Frame runs Begin and Render. Begin errors are logged, not returned.
func (fb *FrameBuilder) Frame(sink UniformSink, objects []*Object) error {
	ctx, err := fb.Begin()
	if err != nil {
		ctx.logger.Printf("frame: %v", err)
	}
	return ctx.Render(sink, objects)
}

// Render draws objects in order. A failing object is logged and skipped;
// stack underflow aborts the frame.
func (ctx *FrameContext) Render(sink UniformSink, objects []*Object) error {
	depth := ctx.Stack.Depth()
	for _, obj := range objects {
		if err := ctx.renderObject(sink, obj); err != nil {
			return fmt.Errorf("render %q: %w", obj.Name, err)
		}
	}
	if after := ctx.Stack.Depth(); after != depth {
		return fmt.Errorf("%w: depth %d before frame, %d after", ErrUnbalancedStack, depth, after)
	}
	return nil
}

func (ctx *FrameContext) renderObject(sink UniformSink, obj *Object) error {
	return ctx.Stack.Scoped(func() error {
		obj.Place(ctx.Stack)

		modelView := ctx.Stack.ModelView()
		normals, err := NormalMatrix(modelView)
		if err != nil {
			ctx.logger.Printf("skipping %q: %v", obj.Name, err)
			return nil
		}

		if obj.Drawable != nil {
			sink.SetUniform(UniformModelView, modelView)
			sink.SetUniform(UniformNormals, normals)
			ctx.emitMaterial(sink, obj.Material)
			ctx.emitGlobals(sink)
			if err := obj.Drawable.Draw(ctx.PrimitiveMode()); err != nil {
				ctx.logger.Printf("draw %q: %v", obj.Name, err)
			}
		}

		for _, child := range obj.Children {
			if err := ctx.renderObject(sink, child); err != nil {
				return err
			}
		}
		return nil
	})
}

func (ctx *FrameContext) PrimitiveMode() PrimitiveMode {
	if ctx.Options.Wireframe {
		return Lines
	}
	return Triangles
}

func (ctx *FrameContext) emitMaterial(sink UniformSink, mat *Material) {
	m := DefaultMaterial
	if mat != nil {
		m = *mat
	}
	m.Normalize()
	sink.SetUniform(UniformMaterialKa, libutil.Unit(m.Ka))
	sink.SetUniform(UniformMaterialKd, libutil.Unit(m.Kd))
	sink.SetUniform(UniformMaterialKs, libutil.Unit(m.Ks))
	sink.SetUniform(UniformMaterialShininess, m.Shininess)
}

func (ctx *FrameContext) emitGlobals(sink UniformSink) {
	sink.SetUniform(UniformProjection, ctx.Projection)
	sink.SetUniform(UniformNLights, int32(len(ctx.Lights)))
	sink.SetUniform(UniformShadingMode, int32(ctx.Options.Shading))
	for i, l := range ctx.Lights {
		names := lightUniformNames[i]
		sink.SetUniform(names.Ambient, l.Ambient)
		sink.SetUniform(names.Diffuse, l.Diffuse)
		sink.SetUniform(names.Specular, l.Specular)
		sink.SetUniform(names.Position, l.Position)
		sink.SetUniform(names.Direction, l.Direction)
		sink.SetUniform(names.Cutoff, l.Cutoff)
		sink.SetUniform(names.Aperture, l.Aperture)
	}
}
