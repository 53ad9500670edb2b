package main

import (
	"embed"
	"flag"
	"io/fs"
	"log"
	"runtime"
	"strings"
	"unsafe"

	"phong-gl/libgl"
	"phong-gl/libscn"

	"github.com/go-gl/gl/v4.5-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
)

//go:embed assets/shaders
var Res_Shaders embed.FS

//go:embed assets/presets/default.toml
var Res_DefaultPreset []byte

func embeddedShaders() fs.FS {
	sub, err := fs.Sub(Res_Shaders, "assets/shaders")
	check(err)
	return sub
}

var Arguments = struct {
	Width, Height              int
	Preset                     string
	ShaderDir                  string
	MeshDir                    string
	FlySpeed                   float64
	FlyMovesTarget             bool
	EnableCompatibilityProfile bool
	Vsync                      bool
}{
	Width:    1280,
	Height:   720,
	FlySpeed: float64(libscn.DefaultFlySpeed),
	Vsync:    true,
}

func main() {
	flag.IntVar(&Arguments.Width, "width", Arguments.Width, "initial window width")
	flag.IntVar(&Arguments.Height, "height", Arguments.Height, "initial window height")
	flag.StringVar(&Arguments.Preset, "preset", Arguments.Preset, "TOML scene preset; the embedded default when empty")
	flag.StringVar(&Arguments.ShaderDir, "shader-dir", Arguments.ShaderDir, "load scene shaders from this directory and reload them on change")
	flag.StringVar(&Arguments.MeshDir, "mesh-dir", Arguments.MeshDir, "directory of .geo/.geo.lz4 meshes overriding the builtin shapes")
	flag.Float64Var(&Arguments.FlySpeed, "fly-speed", Arguments.FlySpeed, "fly speed in world units per second")
	flag.BoolVar(&Arguments.FlyMovesTarget, "fly-moves-target", Arguments.FlyMovesTarget, "flying moves the look-at point along with the eye")
	flag.BoolVar(&Arguments.EnableCompatibilityProfile, "enable-compatibility-profile", Arguments.EnableCompatibilityProfile, "")
	flag.BoolVar(&Arguments.Vsync, "vsync", Arguments.Vsync, "")
	flag.Parse()

	ctx, err := initGLFW()
	check(err)
	defer glfw.Terminate()
	check(initGL())

	libgl.State = libgl.NewGlStateManager()
	app, err := NewApp(ctx)
	check(err)
	defer app.Delete()

	ctx.Show()
	for !ctx.ShouldClose() {
		glfw.PollEvents()
		app.Update()
		app.Draw()
		ctx.SwapBuffers()
	}
}

func initGLFW() (*glfw.Window, error) {
	runtime.LockOSThread()

	if err := glfw.Init(); err != nil {
		return nil, err
	}

	glfw.DefaultWindowHints()
	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 5)
	if Arguments.EnableCompatibilityProfile {
		glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCompatProfile)
	} else {
		glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	}
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.OpenGLDebugContext, glfw.True)
	glfw.WindowHint(glfw.Visible, glfw.False)

	ctx, err := glfw.CreateWindow(Arguments.Width, Arguments.Height, "Phong", nil, nil)
	if err != nil {
		return nil, err
	}
	ctx.MakeContextCurrent()
	if Arguments.Vsync {
		glfw.SwapInterval(1)
	} else {
		glfw.SwapInterval(0)
	}

	return ctx, nil
}

var vendorSuffixes = []string{"3DFX", "PGI", "SGIX", "SGIS", "SGI", "IBM", "HP", "NV", "NVX", "INGR", "ARB", "EXT", "AMD", "ATI", "MESA", "KHR", "INTEL", "GREMEDY", "APPLE", "OES", "SUN", "SUNX"}

func initGL() error {
	err := gl.InitWithProcAddrFunc(func(name string) unsafe.Pointer {
		addr := glfw.GetProcAddress(name)
		if addr == nil {
			vendorSuffix := false
			for _, suffix := range vendorSuffixes {
				if strings.HasSuffix(name, suffix) {
					vendorSuffix = true
					break
				}
			}
			if !vendorSuffix {
				log.Printf("Proc missing: %v\n", name)
			}
			return unsafe.Pointer(uintptr(0xffff_ffff_ffff_ffff))
		}
		return addr
	})
	if err != nil {
		return err
	}
	libgl.InitDebugOutput(nil)
	return nil
}

func check(err error) {
	if err != nil {
		log.Panic(err)
	}
}
