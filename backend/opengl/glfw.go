package opengl

import (
	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/go-theft-auto/inspector/imgui"
)

// GLFWInputAdapter feeds GLFW window events into an imgui.InputState.
type GLFWInputAdapter struct {
	window *glfw.Window
	input  *imgui.InputState
}

// NewGLFWInputAdapter installs input callbacks on window.
func NewGLFWInputAdapter(window *glfw.Window) *GLFWInputAdapter {
	adapter := &GLFWInputAdapter{
		window: window,
		input:  imgui.NewInputState(),
	}

	window.SetKeyCallback(adapter.keyCallback)
	window.SetCharCallback(adapter.charCallback)
	window.SetMouseButtonCallback(adapter.mouseButtonCallback)
	window.SetScrollCallback(adapter.scrollCallback)
	window.SetCursorPosCallback(adapter.cursorPosCallback)

	return adapter
}

// BeginFrame clears last frame's events. Call it before glfw.PollEvents.
func (a *GLFWInputAdapter) BeginFrame() {
	a.input.Reset()
}

// Update samples the cursor and modifiers after events were polled and
// returns the frame's input.
func (a *GLFWInputAdapter) Update() *imgui.InputState {
	x, y := a.window.GetCursorPos()
	a.input.SetMousePos(float32(x), float32(y))

	a.input.ModCtrl = a.pressed(glfw.KeyLeftControl, glfw.KeyRightControl, glfw.KeyLeftSuper, glfw.KeyRightSuper)
	a.input.ModShift = a.pressed(glfw.KeyLeftShift, glfw.KeyRightShift)
	a.input.ModAlt = a.pressed(glfw.KeyLeftAlt, glfw.KeyRightAlt)

	return a.input
}

// Input returns the current input state.
func (a *GLFWInputAdapter) Input() *imgui.InputState {
	return a.input
}

func (a *GLFWInputAdapter) pressed(keys ...glfw.Key) bool {
	for _, k := range keys {
		if a.window.GetKey(k) == glfw.Press {
			return true
		}
	}
	return false
}

func (a *GLFWInputAdapter) keyCallback(w *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
	k := glfwKey(key)
	if k == imgui.KeyNone {
		return
	}
	switch action {
	case glfw.Press, glfw.Repeat:
		a.input.SetKey(k, true)
	case glfw.Release:
		a.input.SetKey(k, false)
	}
}

func (a *GLFWInputAdapter) charCallback(w *glfw.Window, char rune) {
	a.input.AddInputChar(char)
}

func (a *GLFWInputAdapter) mouseButtonCallback(w *glfw.Window, button glfw.MouseButton, action glfw.Action, mods glfw.ModifierKey) {
	b := glfwMouseButton(button)
	if b < 0 {
		return
	}
	a.input.SetMouseButton(b, action == glfw.Press)
}

func (a *GLFWInputAdapter) scrollCallback(w *glfw.Window, xoff, yoff float64) {
	a.input.SetMouseWheel(a.input.MouseWheelY + float32(yoff))
}

func (a *GLFWInputAdapter) cursorPosCallback(w *glfw.Window, xpos, ypos float64) {
	a.input.SetMousePos(float32(xpos), float32(ypos))
}

var glfwKeys = map[glfw.Key]imgui.Key{
	glfw.KeyTab:       imgui.KeyTab,
	glfw.KeyLeft:      imgui.KeyLeft,
	glfw.KeyRight:     imgui.KeyRight,
	glfw.KeyUp:        imgui.KeyUp,
	glfw.KeyDown:      imgui.KeyDown,
	glfw.KeyHome:      imgui.KeyHome,
	glfw.KeyEnd:       imgui.KeyEnd,
	glfw.KeyDelete:    imgui.KeyDelete,
	glfw.KeyBackspace: imgui.KeyBackspace,
	glfw.KeyEnter:     imgui.KeyEnter,
	glfw.KeyKPEnter:   imgui.KeyEnter,
	glfw.KeyEscape:    imgui.KeyEscape,
	glfw.KeyA:         imgui.KeyA,
	glfw.KeyC:         imgui.KeyC,
	glfw.KeyV:         imgui.KeyV,
	glfw.KeyX:         imgui.KeyX,
}

func glfwKey(key glfw.Key) imgui.Key {
	if k, ok := glfwKeys[key]; ok {
		return k
	}
	return imgui.KeyNone
}

func glfwMouseButton(button glfw.MouseButton) imgui.MouseButton {
	switch button {
	case glfw.MouseButtonLeft:
		return imgui.MouseButtonLeft
	case glfw.MouseButtonRight:
		return imgui.MouseButtonRight
	case glfw.MouseButtonMiddle:
		return imgui.MouseButtonMiddle
	default:
		return -1
	}
}

// Clipboard implements imgui.ClipboardProvider with the GLFW clipboard.
type Clipboard struct {
	Window *glfw.Window
}

// GetText implements imgui.ClipboardProvider.
func (c Clipboard) GetText() string {
	return c.Window.GetClipboardString()
}

// SetText implements imgui.ClipboardProvider.
func (c Clipboard) SetText(text string) {
	c.Window.SetClipboardString(text)
}
