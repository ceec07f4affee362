package imgui

// ClipboardProvider abstracts system clipboard access.
//
// For GLFW:
//
//	type glfwClipboard struct{ window *glfw.Window }
//
//	func (c glfwClipboard) GetText() string      { return c.window.GetClipboardString() }
//	func (c glfwClipboard) SetText(text string) { c.window.SetClipboardString(text) }
type ClipboardProvider interface {
	// GetText returns the clipboard text, or "" when it holds none.
	GetText() string
	SetText(text string)
}

// SetClipboard sets the clipboard used by text inputs for Ctrl+C,
// Ctrl+X and Ctrl+V. Nil disables those shortcuts.
func (ctx *Context) SetClipboard(cp ClipboardProvider) {
	ctx.clipboard = cp
}

func (ctx *Context) clipboardText() string {
	if ctx.clipboard == nil {
		return ""
	}
	return ctx.clipboard.GetText()
}

func (ctx *Context) setClipboardText(text string) {
	if ctx.clipboard != nil {
		ctx.clipboard.SetText(text)
	}
}
