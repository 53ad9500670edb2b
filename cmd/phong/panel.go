package main

import (
	"errors"
	"fmt"
	"phong-gl/libscn"
	"phong-gl/libutil"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/inkyblackness/imgui-go/v4"
)

// seconds a notice stays visible
const noticeDuration = 3

// Panel is the parameter store: every widget edits the live scene state
// through the same setters the input controller uses.
type Panel struct {
	notice      string
	noticeUntil float64
	// Bumped after add/remove so the light widgets get fresh ids.
	generation int
}

func (p *Panel) Notify(msg string) {
	p.notice = msg
	p.noticeUntil = glfw.GetTime() + noticeDuration
}

func (p *Panel) Draw(app *App) {
	imgui.SetNextWindowPosV(imgui.Vec2{X: 10, Y: 10}, imgui.ConditionFirstUseEver, imgui.Vec2{})
	imgui.Begin("Parameters")
	defer imgui.End()

	if p.notice != "" && glfw.GetTime() < p.noticeUntil {
		imgui.PushStyleColor(imgui.StyleColorText, imgui.Vec4{X: 1, Y: 0.4, Z: 0.4, W: 1})
		imgui.Text(p.notice)
		imgui.PopStyleColor()
		imgui.Separator()
	}

	p.drawOptions(&app.options)
	p.drawCamera(app.camera)
	p.drawLights(app.lights)
	if bunny := app.materials["bunny"]; bunny != nil {
		p.drawMaterial("Material (bunny)", bunny)
	}
}

func (p *Panel) drawOptions(opts *libscn.Options) {
	if !imgui.CollapsingHeader("Options") {
		return
	}
	imgui.PushID("options")
	defer imgui.PopID()

	imgui.Checkbox("Wireframe", &opts.Wireframe)
	imgui.Checkbox("Backface culling", &opts.BackfaceCulling)
	imgui.Checkbox("Depth test", &opts.DepthTest)
	for _, mode := range []libscn.ShadingMode{libscn.Phong, libscn.Gouraud} {
		if imgui.RadioButton(mode.String(), opts.Shading == mode) {
			opts.Shading = mode
		}
		imgui.SameLine()
	}
	imgui.NewLine()
}

func (p *Panel) drawCamera(cam *libscn.Camera) {
	if !imgui.CollapsingHeader("Camera") {
		return
	}
	imgui.PushID("camera")
	defer imgui.PopID()

	fovy := cam.Fovy
	if imgui.SliderFloat("fovy", &fovy, libscn.MinFovy, libscn.MaxFovy) {
		cam.SetFovy(fovy)
	}
	imgui.Text(fmt.Sprintf("aspect %.3f", cam.Aspect))
	near, far := cam.Near, cam.Far
	if imgui.DragFloatV("near", &near, 0.01, libscn.MinNear, 1000, "%.3f", imgui.SliderFlagsNone) {
		cam.SetNear(near)
	}
	if imgui.DragFloatV("far", &far, 0.1, libscn.MinNear, 1000, "%.3f", imgui.SliderFlagsNone) {
		cam.SetFar(far)
	}

	pose := cam.Pose()
	eye, at, up := [3]float32(pose.Eye), [3]float32(pose.At), [3]float32(pose.Up)
	changed := imgui.DragFloat3("eye", &eye)
	changed = imgui.DragFloat3("at", &at) || changed
	changed = imgui.DragFloat3("up", &up) || changed
	if changed {
		if err := cam.SetPose(mgl32.Vec3(eye), mgl32.Vec3(at), mgl32.Vec3(up)); err != nil {
			p.Notify(err.Error())
		}
	}

	if imgui.Button("Reset camera") {
		cam.Reset()
	}
}

func (p *Panel) drawLights(lights *libscn.LightSet) {
	if !imgui.CollapsingHeader("Lights") {
		return
	}
	imgui.PushID("lights")
	defer imgui.PopID()

	if imgui.Button("Add light") {
		if err := lights.Add(libscn.DefaultLight()); err != nil {
			if errors.Is(err, libscn.ErrCapacityExceeded) {
				p.Notify(fmt.Sprintf("Maximum of %d lights reached!", libscn.MaxLights))
			} else {
				p.Notify(err.Error())
			}
		}
		p.generation++
	}
	imgui.SameLine()
	if imgui.Button("Remove light") {
		if err := lights.Remove(); err != nil {
			p.Notify("No light to remove")
		}
		p.generation++
	}

	for i := 0; i < lights.Len(); i++ {
		imgui.PushID(fmt.Sprintf("%d/%d", p.generation, i))
		if imgui.TreeNodef("Light %d", i) {
			p.drawLight(lights.At(i))
			imgui.TreePop()
		}
		imgui.PopID()
	}
}

func (p *Panel) drawLight(l *libscn.Light) {
	for _, kind := range libscn.LightKinds {
		if imgui.RadioButton(kind.String(), l.Kind == kind) && l.Kind != kind {
			l.SetKind(kind)
		}
		imgui.SameLine()
	}
	imgui.NewLine()
	imgui.Checkbox("active", &l.Active)

	label := "position"
	if l.Kind == libscn.DirectionalLight {
		label = "direction"
	}
	position := [3]float32(l.Position)
	if imgui.DragFloat3(label, &position) {
		l.Position = mgl32.Vec3(position)
	}

	colorEdit("ambient", &l.Ambient)
	colorEdit("diffuse", &l.Diffuse)
	colorEdit("specular", &l.Specular)

	if l.Kind == libscn.SpotLight {
		axis := [3]float32(l.Axis)
		if imgui.DragFloat3("axis", &axis) && mgl32.Vec3(axis).LenSqr() > 0 {
			l.Axis = mgl32.Vec3(axis)
		}
		imgui.SliderFloat("aperture", &l.Spot.Aperture, 0, 180)
		imgui.SliderFloat("cutoff", &l.Spot.Cutoff, 0, 100)
	}
	l.Normalize()
}

func (p *Panel) drawMaterial(title string, m *libscn.Material) {
	if !imgui.CollapsingHeader(title) {
		return
	}
	imgui.PushID(title)
	defer imgui.PopID()

	colorEdit("Ka", &m.Ka)
	colorEdit("Kd", &m.Kd)
	colorEdit("Ks", &m.Ks)
	imgui.SliderFloat("shininess", &m.Shininess, libscn.MinShininess, libscn.MaxShininess)
	m.Normalize()
}

// colorEdit edits a 0-255 colour with the 0-1 colour picker.
func colorEdit(label string, c *mgl32.Vec3) {
	unit := [3]float32(libutil.Unit(*c))
	if imgui.ColorEdit3(label, &unit) {
		*c = libutil.Bytes(mgl32.Vec3(unit))
	}
}
