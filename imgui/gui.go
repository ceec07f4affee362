// Package imgui is a small immediate-mode GUI. Its Context implements the
// widget set the property inspector draws into: tables, tree nodes,
// inputs, combos and popup menus. A backend renders the DrawList.
package imgui

import "fmt"

// Renderer is implemented by rendering backends.
type Renderer interface {
	// Render draws the DrawList.
	Render(dl *DrawList) error
	// FontTextureID returns the texture holding DefaultAtlas.
	FontTextureID() uint32
	// Resize updates the viewport size.
	Resize(width, height int)
}

// GUI ties a Context to a Renderer and owns the per-frame draw lists.
type GUI struct {
	renderer Renderer
	ctx      *Context
}

// GUIOption configures a GUI.
type GUIOption func(*GUI)

// WithStyle sets the initial style.
func WithStyle(style Style) GUIOption {
	return func(g *GUI) {
		g.ctx.SetStyle(style)
	}
}

// WithClipboard sets the clipboard used by text inputs.
func WithClipboard(cp ClipboardProvider) GUIOption {
	return func(g *GUI) {
		g.ctx.SetClipboard(cp)
	}
}

// New creates a GUI drawing with renderer.
func New(renderer Renderer, opts ...GUIOption) *GUI {
	g := &GUI{renderer: renderer, ctx: NewContext()}
	atlas := DefaultAtlas()
	atlas.SetTextureID(renderer.FontTextureID())
	g.ctx.SetFont(atlas)
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Context returns the GUI's context.
func (g *GUI) Context() *Context {
	return g.ctx
}

// Begin starts a frame and returns the context to draw widgets with.
func (g *GUI) Begin(input *InputState, displaySize Vec2, deltaTime float32) *Context {
	if input != nil {
		input.UpdateKeyRepeat(deltaTime)
	}
	g.ctx.DrawList = AcquireDrawList()
	g.ctx.ForegroundDrawList = AcquireDrawList()
	g.ctx.NewFrame(input, displaySize, deltaTime)
	return g.ctx
}

// End finishes the frame and renders it.
func (g *GUI) End() error {
	ctx := g.ctx
	ctx.EndFrame()
	ctx.DrawList.Append(ctx.ForegroundDrawList)
	err := g.renderer.Render(ctx.DrawList)
	ReleaseDrawList(ctx.ForegroundDrawList)
	ReleaseDrawList(ctx.DrawList)
	ctx.DrawList, ctx.ForegroundDrawList = nil, nil
	if err != nil {
		return fmt.Errorf("imgui: render: %w", err)
	}
	return nil
}

// Resize forwards a framebuffer size change to the renderer.
func (g *GUI) Resize(width, height int) {
	g.renderer.Resize(width, height)
}
