package main

import (
	"bytes"
	"fmt"
	"io/fs"
	"log"
	"os"
	"phong-gl/libgl"
	"phong-gl/libmesh"
	"phong-gl/libscn"
	"strconv"

	"github.com/go-gl/gl/v4.5-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/inkyblackness/imgui-go/v4"
	"github.com/mitchellh/go-homedir"
)

// Meshes the default scene draws, by mesh name.
var sceneMeshes = []string{"cube", "cylinder", "torus", "bunny"}

var clearColorIdle = [4]float32{0, 0, 0, 1}
var clearColorDrag = [4]float32{0.2, 0, 0, 1}

// App owns all scene state. It is only touched from the render thread.
type App struct {
	window *glfw.Window

	camera     *libscn.Camera
	lights     *libscn.LightSet
	options    libscn.Options
	materials  map[string]*libscn.Material
	objects    []*libscn.Object
	frame      *libscn.FrameBuilder
	controller *libscn.CameraController

	meshes  map[string]*libgl.GpuMesh
	shaders fs.FS
	scene   libgl.UnboundShaderPipeline
	stages  map[int]libgl.ShaderProgram
	watcher *ShaderWatcher

	input *input
	gui   *ImGui
	panel *Panel
}

func expandPath(path string) (string, error) {
	if path == "" {
		return "", nil
	}
	return homedir.Expand(path)
}

func loadPreset(path string) (*libscn.Preset, error) {
	path, err := expandPath(path)
	if err != nil {
		return nil, err
	}
	if path == "" {
		return libscn.LoadPreset(bytes.NewReader(Res_DefaultPreset))
	}
	return libscn.LoadPresetFile(path)
}

func NewApp(ctx *glfw.Window) (*App, error) {
	preset, err := loadPreset(Arguments.Preset)
	if err != nil {
		return nil, fmt.Errorf("load preset: %w", err)
	}

	app := &App{
		window:  ctx,
		camera:  preset.Camera(),
		lights:  preset.LightSet(),
		options: preset.Options(),
		controller: &libscn.CameraController{
			FlySpeed:       float32(Arguments.FlySpeed),
			FlyMovesTarget: Arguments.FlyMovesTarget,
		},
		materials: map[string]*libscn.Material{},
		meshes:    map[string]*libgl.GpuMesh{},
		stages:    map[int]libgl.ShaderProgram{},
		panel:     &Panel{},
	}
	for name := range libscn.Materials {
		app.materials[name] = preset.Material(name)
	}
	app.frame = &libscn.FrameBuilder{
		Camera:  app.camera,
		Lights:  app.lights,
		Options: &app.options,
	}

	if err := app.loadMeshes(); err != nil {
		return nil, err
	}
	drawables := make(map[string]libscn.Drawable, len(app.meshes))
	for name, mesh := range app.meshes {
		drawables[name] = mesh
	}
	app.objects = libscn.DefaultScene(drawables, app.materials)

	if err := app.loadShaders(); err != nil {
		return nil, err
	}

	// the gui chains onto the input callbacks, so input goes first
	app.input = NewInputManager(ctx)
	// the gui shaders are not meant to be edited, always use the embedded ones
	guiShader, err := loadPipeline(embeddedShaders(), "imgui.vert", "imgui.frag")
	if err != nil {
		return nil, err
	}
	app.gui = NewImGui(ctx, guiShader)

	return app, nil
}

func (app *App) loadMeshes() error {
	pack := &libmesh.DirPack{}
	dir, err := expandPath(Arguments.MeshDir)
	if err != nil {
		return err
	}
	if dir != "" {
		if err := pack.AddDir(dir); err != nil {
			return fmt.Errorf("index mesh dir: %w", err)
		}
	}
	for _, name := range sceneMeshes {
		mesh, builtin, err := pack.LoadOrBuiltin(name)
		if err != nil {
			return err
		}
		if builtin && dir != "" {
			log.Printf("mesh %q not in %v, using the builtin shape\n", name, dir)
		}
		gpuMesh, err := libgl.UploadMesh(mesh)
		if err != nil {
			return err
		}
		app.meshes[name] = gpuMesh
	}
	return nil
}

func (app *App) loadShaders() error {
	dir, err := expandPath(Arguments.ShaderDir)
	if err != nil {
		return err
	}
	if dir == "" {
		app.shaders = embeddedShaders()
	} else {
		app.shaders = os.DirFS(dir)
		app.watcher, err = NewShaderWatcher(dir)
		if err != nil {
			log.Printf("shader hot reload disabled: %v\n", err)
		}
	}

	app.scene = libgl.NewPipeline()
	app.scene.SetDebugLabel("phong")
	return app.compileScene()
}

func sceneDefines() map[string]string {
	return map[string]string{"MAX_LIGHTS": strconv.Itoa(libscn.MaxLights)}
}

func compileProgram(fsys fs.FS, name string, stage int, defs map[string]string) (libgl.ShaderProgram, error) {
	prog, err := libgl.LoadShader(fsys, name, stage)
	if err != nil {
		return nil, err
	}
	if err := prog.CompileWith(defs); err != nil {
		return nil, err
	}
	return prog, nil
}

// compileScene builds both scene stages and swaps them in only when both
// compiled.
func (app *App) compileScene() error {
	vert, err := compileProgram(app.shaders, "phong.vert", gl.VERTEX_SHADER, sceneDefines())
	if err != nil {
		return err
	}
	frag, err := compileProgram(app.shaders, "phong.frag", gl.FRAGMENT_SHADER, sceneDefines())
	if err != nil {
		vert.Destroy()
		return err
	}

	app.scene.Attach(vert, gl.VERTEX_SHADER_BIT)
	app.scene.Attach(frag, gl.FRAGMENT_SHADER_BIT)
	for stage, prog := range map[int]libgl.ShaderProgram{gl.VERTEX_SHADER: vert, gl.FRAGMENT_SHADER: frag} {
		if old := app.stages[stage]; old != nil {
			old.Destroy()
		}
		app.stages[stage] = prog
	}
	return nil
}

func loadPipeline(fsys fs.FS, vertName, fragName string) (libgl.UnboundShaderPipeline, error) {
	vert, err := compileProgram(fsys, vertName, gl.VERTEX_SHADER, nil)
	if err != nil {
		return nil, err
	}
	frag, err := compileProgram(fsys, fragName, gl.FRAGMENT_SHADER, nil)
	if err != nil {
		return nil, err
	}
	pipeline := libgl.NewPipeline()
	pipeline.Attach(vert, gl.VERTEX_SHADER_BIT)
	pipeline.Attach(frag, gl.FRAGMENT_SHADER_BIT)
	return pipeline, nil
}

// Update applies one tick of input and pending shader reloads.
func (app *App) Update() {
	app.input.Update(app.window)
	in := app.input.Snapshot(app.gui.IO.WantCaptureMouse(), app.gui.IO.WantCaptureKeyboard())
	app.controller.Apply(app.camera, in)

	if name, ok := app.watcher.Pending(); ok {
		if err := app.compileScene(); err != nil {
			log.Printf("reload after %v changed: %v\n", name, err)
			app.panel.Notify("shader reload failed, see log")
		} else {
			log.Printf("reloaded scene shaders after %v changed\n", name)
		}
	}
}

func (app *App) Draw() {
	fbWidth, fbHeight := app.window.GetFramebufferSize()
	// minimized
	if fbWidth <= 0 || fbHeight <= 0 {
		return
	}
	app.camera.Resize(fbWidth, fbHeight)
	libgl.State.Viewport(0, 0, fbWidth, fbHeight)

	color := clearColorIdle
	if app.input.Dragging() {
		color = clearColorDrag
	}
	libgl.State.ClearColor(color[0], color[1], color[2], color[3])
	libgl.State.DepthMask(true)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)

	app.drawScene()

	imgui.NewFrame()
	app.panel.Draw(app)
	app.gui.Draw(app.window)
}

func (app *App) drawScene() {
	defer libgl.PushDebugGroup("Draw scene")()

	caps := []libgl.GlCapability{}
	if app.options.DepthTest {
		caps = append(caps, libgl.DepthTest)
	}
	if app.options.BackfaceCulling {
		caps = append(caps, libgl.CullFace)
	}
	libgl.State.SetEnabled(caps...)
	libgl.State.CullBack()
	libgl.State.DepthFunc(libgl.DepthFuncLess)
	libgl.State.PolygonMode(gl.FRONT_AND_BACK, gl.FILL)

	app.scene.Bind()
	if err := app.frame.Frame(app.scene, app.objects); err != nil {
		log.Printf("frame: %v\n", err)
	}
}

func (app *App) Delete() {
	if err := app.watcher.Close(); err != nil {
		log.Printf("close shader watcher: %v\n", err)
	}
	for _, mesh := range app.meshes {
		mesh.Delete()
	}
	for _, prog := range app.stages {
		prog.Destroy()
	}
	app.scene.Delete()
	app.gui.Delete()
}
