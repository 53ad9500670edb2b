package main

import (
	"phong-gl/libgl"

	"github.com/go-gl/gl/v4.5-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/inkyblackness/imgui-go/v4"
)

type ImGui struct {
	Context   *imgui.Context
	IO        imgui.IO
	FrameTime float32
	vao       libgl.UnboundVertexArray
	vbo       libgl.UnboundBuffer
	ebo       libgl.UnboundBuffer
	atlas     uint32
	shader    libgl.UnboundShaderPipeline
}

// NewImGui installs its callbacks on win, chaining to the ones set before.
func NewImGui(win *glfw.Window, shader libgl.UnboundShaderPipeline) *ImGui {
	context := imgui.CreateContext(nil)

	io := imgui.CurrentIO()
	dispWidth, dispHeight := win.GetSize()
	io.SetDisplaySize(imgui.Vec2{X: float32(dispWidth), Y: float32(dispHeight)})
	imgui.StyleColorsDark()

	vertexSize, vertexOffsetPos, vertexOffsetUv, vertexOffsetCol := imgui.VertexBufferLayout()
	vao := libgl.NewVertexArray()
	vao.SetDebugLabel("imgui")
	vao.Layout(0, 0, 2, gl.FLOAT, false, vertexOffsetPos)
	vao.Layout(0, 1, 2, gl.FLOAT, false, vertexOffsetUv)
	vao.Layout(0, 2, 4, gl.UNSIGNED_BYTE, true, vertexOffsetCol)

	vbo := libgl.NewBuffer()
	vbo.AllocateEmptyMutable(1<<16, gl.DYNAMIC_DRAW)
	vao.BindBuffer(0, vbo, 0, vertexSize)
	ebo := libgl.NewBuffer()
	ebo.AllocateEmptyMutable(1<<15, gl.DYNAMIC_DRAW)
	vao.BindElementBuffer(ebo)

	image := io.Fonts().TextureDataRGBA32()
	var atlas uint32
	gl.CreateTextures(gl.TEXTURE_2D, 1, &atlas)
	gl.TextureStorage2D(atlas, 1, gl.RGBA8, int32(image.Width), int32(image.Height))
	gl.TextureSubImage2D(atlas, 0, 0, 0, int32(image.Width), int32(image.Height), gl.RGBA, gl.UNSIGNED_BYTE, image.Pixels)
	gl.TextureParameteri(atlas, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	gl.TextureParameteri(atlas, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	io.Fonts().SetTextureID(imgui.TextureID(atlas))

	var prevCursor glfw.CursorPosCallback
	prevCursor = win.SetCursorPosCallback(func(w *glfw.Window, mx, my float64) {
		io.SetMousePosition(imgui.Vec2{X: float32(mx), Y: float32(my)})
		if prevCursor != nil {
			prevCursor(w, mx, my)
		}
	})
	var prevButton glfw.MouseButtonCallback
	prevButton = win.SetMouseButtonCallback(func(w *glfw.Window, button glfw.MouseButton, action glfw.Action, mods glfw.ModifierKey) {
		io.SetMouseButtonDown(int(button), action == glfw.Press)
		if prevButton != nil {
			prevButton(w, button, action, mods)
		}
	})
	var prevScroll glfw.ScrollCallback
	prevScroll = win.SetScrollCallback(func(w *glfw.Window, x, y float64) {
		io.AddMouseWheelDelta(float32(x), float32(y))
		if prevScroll != nil {
			prevScroll(w, x, y)
		}
	})
	win.SetCharCallback(func(w *glfw.Window, char rune) {
		io.AddInputCharacters(string(char))
	})
	win.SetKeyCallback(func(w *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
		if action == glfw.Press {
			io.KeyPress(int(key))
		}
		if action == glfw.Release {
			io.KeyRelease(int(key))
		}

		// Modifiers are not reliable across systems
		io.KeyCtrl(int(glfw.KeyLeftControl), int(glfw.KeyRightControl))
		io.KeyShift(int(glfw.KeyLeftShift), int(glfw.KeyRightShift))
		io.KeyAlt(int(glfw.KeyLeftAlt), int(glfw.KeyRightAlt))
		io.KeySuper(int(glfw.KeyLeftSuper), int(glfw.KeyRightSuper))
	})

	keys := map[int]glfw.Key{
		imgui.KeyTab:        glfw.KeyTab,
		imgui.KeyLeftArrow:  glfw.KeyLeft,
		imgui.KeyRightArrow: glfw.KeyRight,
		imgui.KeyUpArrow:    glfw.KeyUp,
		imgui.KeyDownArrow:  glfw.KeyDown,
		imgui.KeyPageUp:     glfw.KeyPageUp,
		imgui.KeyPageDown:   glfw.KeyPageDown,
		imgui.KeyHome:       glfw.KeyHome,
		imgui.KeyEnd:        glfw.KeyEnd,
		imgui.KeyInsert:     glfw.KeyInsert,
		imgui.KeyDelete:     glfw.KeyDelete,
		imgui.KeyBackspace:  glfw.KeyBackspace,
		imgui.KeySpace:      glfw.KeySpace,
		imgui.KeyEnter:      glfw.KeyEnter,
		imgui.KeyEscape:     glfw.KeyEscape,
		imgui.KeyA:          glfw.KeyA,
		imgui.KeyC:          glfw.KeyC,
		imgui.KeyV:          glfw.KeyV,
		imgui.KeyX:          glfw.KeyX,
		imgui.KeyY:          glfw.KeyY,
		imgui.KeyZ:          glfw.KeyZ,
	}
	for imKey, glfwKey := range keys {
		io.KeyMap(imKey, int(glfwKey))
	}

	return &ImGui{
		Context:   context,
		IO:        io,
		FrameTime: float32(glfw.GetTime()),
		vao:       vao,
		vbo:       vbo,
		ebo:       ebo,
		atlas:     atlas,
		shader:    shader,
	}
}

func (gui *ImGui) Draw(win *glfw.Window) {
	defer libgl.PushDebugGroup("Draw ImGui")()

	dispWidth, dispHeight := win.GetSize()
	fbWidth, fbHeight := win.GetFramebufferSize()
	if dispWidth <= 0 || dispHeight <= 0 {
		imgui.Render()
		return
	}
	libgl.State.Viewport(0, 0, fbWidth, fbHeight)
	gui.IO.SetDisplaySize(imgui.Vec2{X: float32(dispWidth), Y: float32(dispHeight)})
	ortho := mgl32.Ortho2D(0, float32(dispWidth), float32(dispHeight), 0)

	time := float32(glfw.GetTime())
	gui.IO.SetDeltaTime(time - gui.FrameTime)
	gui.FrameTime = time

	gui.vao.Bind()
	gui.shader.Bind()
	gui.shader.SetUniform("u_proj_mat", ortho)

	libgl.State.SetEnabled(libgl.Blend, libgl.ScissorTest)
	libgl.State.BlendEquation(libgl.BlendFuncAdd)
	libgl.State.BlendFunc(libgl.BlendSrcAlpha, libgl.BlendOneMinusSrcAlpha)
	libgl.State.PolygonMode(gl.FRONT_AND_BACK, gl.FILL)

	imgui.Render()
	drawData := imgui.RenderedDrawData()
	drawData.ScaleClipRects(imgui.Vec2{
		X: float32(fbWidth) / float32(dispWidth),
		Y: float32(fbHeight) / float32(dispHeight),
	})

	var indexType uint32
	indexSize := imgui.IndexBufferLayout()
	switch indexSize {
	case 1:
		indexType = gl.UNSIGNED_BYTE
	case 2:
		indexType = gl.UNSIGNED_SHORT
	case 4:
		indexType = gl.UNSIGNED_INT
	}

	for _, list := range drawData.CommandLists() {
		vertexBuffer, vertexBufferSize := list.VertexBuffer()
		gui.vbo.Grow(vertexBufferSize)
		if vertexBufferSize > 0 {
			gui.vbo.WriteRange(0, vertexBufferSize, vertexBuffer)
		}

		indexBuffer, indexBufferSize := list.IndexBuffer()
		gui.ebo.Grow(indexBufferSize)
		if indexBufferSize > 0 {
			gui.ebo.WriteRange(0, indexBufferSize, indexBuffer)
		}

		for _, cmd := range list.Commands() {
			if cmd.HasUserCallback() {
				cmd.CallUserCallback(list)
				continue
			}
			libgl.State.BindTextureUnit(0, uint32(cmd.TextureID()))
			clipRect := cmd.ClipRect()
			x, y := int(clipRect.X), fbHeight-int(clipRect.W)
			if y <= 0 {
				y = 0
			}
			libgl.State.Scissor(x, y, int(clipRect.Z-clipRect.X), int(clipRect.W-clipRect.Y))
			gl.DrawElementsBaseVertexWithOffset(gl.TRIANGLES, int32(cmd.ElementCount()), indexType, uintptr(cmd.IndexOffset()*indexSize), int32(cmd.VertexOffset()))
		}
	}
}

func (gui *ImGui) Delete() {
	gui.vao.Delete()
	gui.vbo.Delete()
	gui.ebo.Delete()
	gl.DeleteTextures(1, &gui.atlas)
	gui.Context.Destroy()
}
