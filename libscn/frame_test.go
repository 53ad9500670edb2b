package libscn_test

import (
	"bytes"
	"errors"
	"log"
	"phong-gl/libscn"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingSink struct {
	values map[string]any
	// uniform snapshots taken at every draw
	draws []map[string]any
}

func newRecordingSink() *recordingSink {
	return &recordingSink{values: map[string]any{}}
}

func (s *recordingSink) SetUniform(name string, value any) {
	s.values[name] = value
}

func (s *recordingSink) snapshot() {
	snap := make(map[string]any, len(s.values))
	for k, v := range s.values {
		snap[k] = v
	}
	s.draws = append(s.draws, snap)
}

type recordingDrawable struct {
	sink  *recordingSink
	modes []libscn.PrimitiveMode
	err   error
	// runs during Draw, used to break the stack
	hook func()
}

func (d *recordingDrawable) Draw(mode libscn.PrimitiveMode) error {
	d.modes = append(d.modes, mode)
	if d.sink != nil {
		d.sink.snapshot()
	}
	if d.hook != nil {
		d.hook()
	}
	return d.err
}

func newBuilder(t *testing.T) (*libscn.FrameBuilder, *bytes.Buffer) {
	t.Helper()
	buf := &bytes.Buffer{}
	opts := libscn.DefaultOptions
	return &libscn.FrameBuilder{
		Camera:  libscn.NewCamera(libscn.DefaultCameraHome),
		Lights:  libscn.NewLightSet(),
		Options: &opts,
		Logger:  log.New(buf, "", 0),
	}, buf
}

func TestFrameEmitsPerDraw(t *testing.T) {
	fb, _ := newBuilder(t)
	sink := newRecordingSink()
	mesh := &recordingDrawable{sink: sink}
	objects := libscn.DefaultScene(map[string]libscn.Drawable{
		"cube": mesh, "torus": mesh, "cylinder": mesh, "bunny": mesh,
	}, nil)
	require.Len(t, objects, 5)

	ctx, err := fb.Begin()
	require.NoError(t, err)
	require.NoError(t, ctx.Render(sink, objects))
	require.Len(t, sink.draws, 5)

	for i, draw := range sink.draws {
		assert.Equal(t, int32(1), draw[libscn.UniformNLights])
		assert.Equal(t, int32(libscn.Phong), draw[libscn.UniformShadingMode])
		assert.Equal(t, ctx.Projection, draw[libscn.UniformProjection])
		assert.Contains(t, draw, "u_lights[0].aperture")
		assert.NotContains(t, draw, "u_lights[1].aperture")

		mv := draw[libscn.UniformModelView].(mgl32.Mat4)
		origin := mv.Mul4x1(mgl32.Vec4{0, 0, 0, 1})
		expected := ctx.View.Mul4x1(objects[i].Translation.Vec4(1))
		assert.True(t, origin.ApproxEqualThreshold(expected, 1e-4), "object %s placed at %v", objects[i].Name, origin)
	}

	base := sink.draws[0]
	assert.InDelta(t, 191./255., base[libscn.UniformMaterialKa].(mgl32.Vec3)[0], 1e-6)
	assert.Equal(t, float32(10), base[libscn.UniformMaterialShininess])
	bunny := sink.draws[4]
	assert.Equal(t, float32(150), bunny[libscn.UniformMaterialShininess])

	assert.Equal(t, 0, ctx.Stack.Depth())
	assert.Equal(t, ctx.View, ctx.Stack.ModelView())
}

func TestFrameNormalsUseModelView(t *testing.T) {
	fb, _ := newBuilder(t)
	sink := newRecordingSink()
	mesh := &recordingDrawable{sink: sink}
	obj := &libscn.Object{Name: "plate", Drawable: mesh, Scale: mgl32.Vec3{10, 0.5, 10}}

	ctx, err := fb.Begin()
	require.NoError(t, err)
	require.NoError(t, ctx.Render(sink, []*libscn.Object{obj}))

	mv := sink.draws[0][libscn.UniformModelView].(mgl32.Mat4)
	expected, err := libscn.NormalMatrix(mv)
	require.NoError(t, err)
	assert.Equal(t, expected, sink.draws[0][libscn.UniformNormals])
}

func TestFrameWireframe(t *testing.T) {
	fb, _ := newBuilder(t)
	fb.Options.Wireframe = true
	fb.Options.Shading = libscn.Gouraud
	sink := newRecordingSink()
	mesh := &recordingDrawable{sink: sink}

	require.NoError(t, fb.Frame(sink, []*libscn.Object{{Name: "a", Drawable: mesh}}))
	assert.Equal(t, []libscn.PrimitiveMode{libscn.Lines}, mesh.modes)
	assert.Equal(t, int32(libscn.Gouraud), sink.values[libscn.UniformShadingMode])
}

func TestFrameLightBundle(t *testing.T) {
	fb, _ := newBuilder(t)
	require.NoError(t, fb.Lights.Add(libscn.DefaultLight()))
	fb.Lights.At(1).Kind = libscn.DirectionalLight
	fb.Lights.At(1).Active = false
	sink := newRecordingSink()

	require.NoError(t, fb.Frame(sink, []*libscn.Object{{Name: "a", Drawable: &recordingDrawable{}}}))
	assert.Equal(t, int32(2), sink.values[libscn.UniformNLights])
	assert.Equal(t, float32(0), sink.values["u_lights[1].position"].(mgl32.Vec4)[3])
	assert.Equal(t, float32(1), sink.values["u_lights[0].position"].(mgl32.Vec4)[3])
	assert.Equal(t, mgl32.Vec3{}, sink.values["u_lights[1].diffuse"])
	assert.Equal(t, float32(0), sink.values["u_lights[1].cutoff"])
	assert.Equal(t, float32(25), sink.values["u_lights[0].cutoff"])
}

func TestFrameChildren(t *testing.T) {
	fb, _ := newBuilder(t)
	sink := newRecordingSink()
	mesh := &recordingDrawable{sink: sink}
	parent := &libscn.Object{
		Name:        "parent",
		Drawable:    mesh,
		Translation: mgl32.Vec3{1, 0, 0},
		Scale:       mgl32.Vec3{2, 2, 2},
		Children: []*libscn.Object{
			{Name: "child", Drawable: mesh, Translation: mgl32.Vec3{0, 1, 0}},
		},
	}

	ctx, err := fb.Begin()
	require.NoError(t, err)
	require.NoError(t, ctx.Render(sink, []*libscn.Object{parent}))
	require.Len(t, sink.draws, 2)

	mv := sink.draws[1][libscn.UniformModelView].(mgl32.Mat4)
	origin := mv.Mul4x1(mgl32.Vec4{0, 0, 0, 1})
	// child offset is scaled by the parent
	expected := ctx.View.Mul4x1(mgl32.Vec4{1, 2, 0, 1})
	assert.True(t, origin.ApproxEqualThreshold(expected, 1e-4), "child placed at %v", origin)
}

func TestFrameSkipsFailingObjects(t *testing.T) {
	fb, logs := newBuilder(t)
	sink := newRecordingSink()
	broken := &recordingDrawable{err: errors.New("no buffers")}
	flat := &recordingDrawable{}
	good := &recordingDrawable{}

	objects := []*libscn.Object{
		{Name: "broken", Drawable: broken},
		{Name: "flat", Drawable: flat, Scale: mgl32.Vec3{1, 0, 1}},
		{Name: "good", Drawable: good},
	}
	require.NoError(t, fb.Frame(sink, objects))

	assert.Len(t, broken.modes, 1)
	assert.Empty(t, flat.modes, "singular normal matrix skips the draw")
	assert.Len(t, good.modes, 1)
	assert.Contains(t, logs.String(), "no buffers")
	assert.Contains(t, logs.String(), "flat")
}

func TestFrameUnbalancedStack(t *testing.T) {
	fb, _ := newBuilder(t)
	sink := newRecordingSink()
	ctx, err := fb.Begin()
	require.NoError(t, err)

	leaky := &recordingDrawable{hook: func() { ctx.Stack.PushMatrix() }}
	err = ctx.Render(sink, []*libscn.Object{{Name: "leaky", Drawable: leaky}})
	assert.ErrorIs(t, err, libscn.ErrUnbalancedStack)
}

func TestFrameStackUnderflowAborts(t *testing.T) {
	fb, _ := newBuilder(t)
	sink := newRecordingSink()
	ctx, err := fb.Begin()
	require.NoError(t, err)

	greedy := &recordingDrawable{hook: func() {
		_ = ctx.Stack.PopMatrix()
		_ = ctx.Stack.PopMatrix()
	}}
	after := &recordingDrawable{}
	err = ctx.Render(sink, []*libscn.Object{
		{Name: "greedy", Drawable: greedy},
		{Name: "after", Drawable: after},
	})
	assert.ErrorIs(t, err, libscn.ErrStackUnderflow)
	assert.Empty(t, after.modes, "frame is aborted")
}

func TestFrameDegenerateCamera(t *testing.T) {
	fb, logs := newBuilder(t)
	good, err := fb.Camera.ViewMatrix()
	require.NoError(t, err)
	fb.Camera.At = fb.Camera.Eye

	ctx, err := fb.Begin()
	assert.ErrorIs(t, err, libscn.ErrDegenerateCamera)
	assert.Equal(t, good, ctx.View)

	mesh := &recordingDrawable{}
	require.NoError(t, fb.Frame(newRecordingSink(), []*libscn.Object{{Name: "a", Drawable: mesh}}))
	assert.Len(t, mesh.modes, 1, "frame still renders")
	assert.Contains(t, logs.String(), "degenerate camera")
}

func TestFrameMalformedLight(t *testing.T) {
	fb, _ := newBuilder(t)
	fb.Lights.At(0).Axis = mgl32.Vec3{}

	ctx, err := fb.Begin()
	assert.ErrorIs(t, err, libscn.ErrMalformedLight)
	require.Len(t, ctx.Lights, 1)
	assert.Equal(t, mgl32.Vec3{}, ctx.Lights[0].Diffuse)
}
