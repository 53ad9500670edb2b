package main

import (
	"phong-gl/libscn"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/go-gl/mathgl/mgl32"
)

// Wheel units per scroll notch; a notch zooms by 10%.
const scrollNotch = 100

var movementKeys = map[libscn.Action]glfw.Key{
	libscn.MoveForward:  glfw.KeyW,
	libscn.MoveBackward: glfw.KeyS,
	libscn.MoveLeft:     glfw.KeyA,
	libscn.MoveRight:    glfw.KeyD,
	libscn.MoveUp:       glfw.KeyE,
	libscn.MoveDown:     glfw.KeyQ,
}

type inputState struct {
	time         float32
	cursorPos    mgl32.Vec2
	keys         []bool
	mousebuttons []bool
}

// input polls the window once per tick and turns it into a
// libscn.InputState snapshot.
type input struct {
	curr     inputState
	prev     inputState
	scroll   float32
	dragging bool
}

func NewInputManager(ctx *glfw.Window) *input {
	i := &input{
		curr: inputState{
			keys:         make([]bool, glfw.KeyLast+1),
			mousebuttons: make([]bool, glfw.MouseButtonLast+1),
		},
		prev: inputState{
			keys:         make([]bool, glfw.KeyLast+1),
			mousebuttons: make([]bool, glfw.MouseButtonLast+1),
		},
	}

	// must be installed before the gui chains onto it
	ctx.SetScrollCallback(func(w *glfw.Window, x, y float64) {
		i.scroll -= float32(y) * scrollNotch
	})

	i.Update(ctx)
	i.prev.cursorPos = i.curr.cursorPos
	// Make sure dTime != 0 to avoid possible errors
	i.prev.time = i.curr.time - 1./60.
	copy(i.prev.keys, i.curr.keys)
	copy(i.prev.mousebuttons, i.curr.mousebuttons)

	return i
}

func (i *input) Update(ctx *glfw.Window) {
	keys := i.prev.keys
	mousebuttons := i.prev.mousebuttons
	i.prev = i.curr
	cursorX, cursorY := ctx.GetCursorPos()

	for key := int(glfw.KeySpace); key <= int(glfw.KeyLast); key++ {
		keys[key] = ctx.GetKey(glfw.Key(key)) != glfw.Release
	}

	for button := 0; button <= int(glfw.MouseButtonLast); button++ {
		mousebuttons[button] = ctx.GetMouseButton(glfw.MouseButton(button)) != glfw.Release
	}

	i.curr = inputState{
		time:         float32(glfw.GetTime()),
		cursorPos:    mgl32.Vec2{float32(cursorX), float32(cursorY)},
		keys:         keys,
		mousebuttons: mousebuttons,
	}
}

func (i *input) IsKeyDown(key glfw.Key) bool {
	return i.curr.keys[key]
}

func (i *input) IsMouseDown(button glfw.MouseButton) bool {
	return i.curr.mousebuttons[button]
}

func (i *input) IsMouseTap(button glfw.MouseButton) bool {
	return i.curr.mousebuttons[button] && !i.prev.mousebuttons[button]
}

func (i *input) Dragging() bool {
	return i.dragging
}

// Snapshot consumes the accumulated scroll. A drag only starts when the
// gui does not want the mouse; once started it lasts until release.
func (i *input) Snapshot(guiMouse, guiKeyboard bool) libscn.InputState {
	if !i.IsMouseDown(glfw.MouseButtonLeft) {
		i.dragging = false
	} else if i.IsMouseTap(glfw.MouseButtonLeft) && !guiMouse {
		i.dragging = true
	}

	state := libscn.InputState{
		Dragging:  i.dragging,
		TimeDelta: i.curr.time - i.prev.time,
	}
	if i.dragging {
		state.CursorDelta = i.curr.cursorPos.Sub(i.prev.cursorPos)
	}
	if !guiMouse {
		state.Scroll = i.scroll
	}
	i.scroll = 0

	if !guiKeyboard {
		for action, key := range movementKeys {
			state.Held.Set(action, i.IsKeyDown(key))
		}
	}
	if i.IsKeyDown(glfw.KeyLeftControl) || i.IsKeyDown(glfw.KeyRightControl) {
		state.Modifiers |= libscn.ModTruck
	} else if i.IsKeyDown(glfw.KeyLeftSuper) || i.IsKeyDown(glfw.KeyRightSuper) ||
		i.IsKeyDown(glfw.KeyLeftShift) || i.IsKeyDown(glfw.KeyRightShift) {
		state.Modifiers |= libscn.ModDolly
	}
	return state
}
