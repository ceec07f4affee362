package imgui

// Context holds all state for UI rendering.
// This is NOT context.Context; it is a dedicated GUI context type that
// lives across frames and is reset at the start of each one.
type Context struct {
	// Drawing output
	DrawList           *DrawList
	ForegroundDrawList *DrawList // Popups and tooltips, drawn on top

	// Input (read-only during frame)
	Input *InputState

	DisplaySize Vec2
	FrameCount  uint64
	DeltaTime   float32

	// WantCaptureMouse is set when the mouse is over a widget or popup.
	WantCaptureMouse bool
	// WantCaptureKeyboard is set while a text input is being edited.
	WantCaptureKeyboard bool

	style     Style
	font      Font
	clipboard ClipboardProvider
	stores    []cleanable
	glyphs    []GlyphQuad

	idStack []ID

	layout    layoutState
	tables    []*tableState
	treeDepth int
	panels    []panelFrame

	disabledStack []bool
	disabledDepth int

	// Text editing. At most one input edits at a time; activeID names it.
	activeID   ID
	activeSeen bool
	edits      *FrameStore[textEdit]

	// Popups. openPopup survives frames; popupRect is where it was drawn
	// last frame, used to keep clicks from falling through.
	popups        []popupFrame
	openPopup     ID
	popupSeen     bool
	popupRect     Rect
	popupRectNext Rect
	popupHeights  *FrameStore[float32]
	popupScroll   *FrameStore[float32]

	treeOpen    *FrameStore[bool]
	panelScroll *FrameStore[float32]

	tooltip string
}

// layoutState is the flow cursor. Items go left to right after SameLine
// and top to bottom otherwise.
type layoutState struct {
	cursor   Vec2    // Top-left of the next line
	lineX    float32 // x where new lines start
	right    float32 // Right edge of the region
	lastItem Rect
	sameLine bool
}

// NewContext creates a context using the built-in font atlas.
func NewContext() *Context {
	ctx := &Context{
		style:         DefaultStyle(),
		font:          DefaultAtlas(),
		idStack:       make([]ID, 0, 32),
		glyphs:        make([]GlyphQuad, 0, 256),
		disabledStack: make([]bool, 0, 8),
	}
	ctx.edits = NewFrameStore[textEdit](ctx)
	ctx.popupHeights = NewFrameStore[float32](ctx)
	ctx.popupScroll = NewFrameStore[float32](ctx)
	ctx.treeOpen = NewFrameStore[bool](ctx)
	ctx.panelScroll = NewFrameStore[float32](ctx)
	return ctx
}

// Style returns the current style.
func (ctx *Context) Style() Style {
	return ctx.style
}

// SetStyle sets the style.
func (ctx *Context) SetStyle(style Style) {
	ctx.style = style
}

// SetFont replaces the font used for measuring and drawing text.
func (ctx *Context) SetFont(f Font) {
	if f != nil {
		ctx.font = f
	}
}

// NewFrame prepares the context for a frame of the given size. GUI.Begin
// calls it; use it directly when drawing without a backend.
func (ctx *Context) NewFrame(input *InputState, displaySize Vec2, deltaTime float32) {
	if input == nil {
		input = NewInputState()
	}
	ctx.Input = input
	ctx.DisplaySize = displaySize
	ctx.DeltaTime = deltaTime
	ctx.FrameCount++
	for _, s := range ctx.stores {
		s.cleanup(ctx.FrameCount)
	}
	if ctx.DrawList == nil {
		ctx.DrawList = &DrawList{}
	}
	if ctx.ForegroundDrawList == nil {
		ctx.ForegroundDrawList = &DrawList{}
	}
	ctx.DrawList.Clear()
	ctx.ForegroundDrawList.Clear()

	pad := ctx.style.ItemSpacing
	ctx.layout = layoutState{
		cursor: Vec2{X: pad, Y: pad},
		lineX:  pad,
		right:  displaySize.X - pad,
	}
	ctx.idStack = ctx.idStack[:0]
	ctx.tables = ctx.tables[:0]
	ctx.panels = ctx.panels[:0]
	ctx.popups = ctx.popups[:0]
	ctx.treeDepth = 0
	ctx.disabledStack = ctx.disabledStack[:0]
	ctx.disabledDepth = 0
	ctx.tooltip = ""
	ctx.WantCaptureMouse = false
	ctx.WantCaptureKeyboard = false

	if ctx.openPopup != 0 && !ctx.popupSeen {
		guiLogger.Debug("imgui: closing orphaned popup", "id", ctx.openPopup)
		ctx.openPopup = 0
		ctx.popupRectNext = Rect{}
	}
	ctx.popupSeen = false
	ctx.popupRect = ctx.popupRectNext
	ctx.popupRectNext = Rect{}

	if ctx.activeID != 0 && !ctx.activeSeen {
		ctx.activeID = 0
	}
	ctx.activeSeen = false
}

// EndFrame draws the pending tooltip and checks stack balance.
func (ctx *Context) EndFrame() {
	if ctx.tooltip != "" && ctx.Input != nil {
		size := ctx.MeasureText(ctx.tooltip)
		pad := ctx.style.FramePadding * 2
		x := minf(ctx.Input.MouseX+12, ctx.DisplaySize.X-size.X-pad*2)
		y := minf(ctx.Input.MouseY+16, ctx.DisplaySize.Y-size.Y-pad*2)
		dl := ctx.ForegroundDrawList
		dl.AddRect(x, y, size.X+pad*2, size.Y+pad*2, ctx.style.TooltipBgColor)
		dl.AddRectOutline(x, y, size.X+pad*2, size.Y+pad*2, ctx.style.InputBorderColor, 1)
		ctx.addTextTo(dl, x+pad, y+pad, ctx.tooltip, ctx.style.TextColor)
	}
	if len(ctx.idStack) != 0 || len(ctx.tables) != 0 || len(ctx.popups) != 0 || len(ctx.panels) != 0 || ctx.disabledDepth != 0 {
		guiLogger.Warn("imgui: unbalanced frame",
			"ids", len(ctx.idStack),
			"tables", len(ctx.tables),
			"popups", len(ctx.popups),
			"panels", len(ctx.panels),
			"disabled", ctx.disabledDepth)
	}
}

// LastItemRect returns the rectangle of the most recent widget.
func (ctx *Context) LastItemRect() Rect {
	return ctx.layout.lastItem
}

// Cursor returns where the next line starts.
func (ctx *Context) Cursor() Vec2 {
	return ctx.layout.cursor
}

// LineHeight returns the height of a single line of text.
func (ctx *Context) LineHeight() float32 {
	return ctx.font.LineHeight(ctx.style.FontScale)
}

func (ctx *Context) frameHeight() float32 {
	return ctx.LineHeight() + ctx.style.FramePadding*2
}

// MeasureText returns the size of rendered text.
func (ctx *Context) MeasureText(text string) Vec2 {
	return ctx.font.MeasureText(text, ctx.style.FontScale)
}

// dl returns the draw list for the current layer.
func (ctx *Context) dl() *DrawList {
	if len(ctx.popups) > 0 {
		return ctx.ForegroundDrawList
	}
	return ctx.DrawList
}

func (ctx *Context) addText(x, y float32, text string, color uint32) {
	ctx.addTextTo(ctx.dl(), x, y, text, color)
}

func (ctx *Context) addTextTo(dl *DrawList, x, y float32, text string, color uint32) {
	if text == "" {
		return
	}
	ctx.glyphs = ctx.font.GlyphQuads(ctx.glyphs[:0], text, x, y, ctx.style.FontScale)
	dl.AddGlyphQuads(ctx.font.TextureID(), ctx.glyphs, color)
}

// placeItem reserves a w by h rectangle in the flow and returns it.
func (ctx *Context) placeItem(w, h float32) Rect {
	l := &ctx.layout
	var pos Vec2
	if l.sameLine {
		pos = Vec2{X: l.lastItem.X + l.lastItem.W + ctx.style.ItemSpacing, Y: l.lastItem.Y}
		l.sameLine = false
	} else {
		pos = Vec2{X: l.lineX, Y: l.cursor.Y}
	}
	r := Rect{X: pos.X, Y: pos.Y, W: w, H: h}
	l.cursor.Y = maxf(l.cursor.Y, pos.Y+h+ctx.style.ItemSpacing)
	l.lastItem = r
	return r
}

// nextItemX is where placeItem would put the next item.
func (ctx *Context) nextItemX() float32 {
	l := &ctx.layout
	if l.sameLine {
		return l.lastItem.X + l.lastItem.W + ctx.style.ItemSpacing
	}
	return l.lineX
}

// itemWidth is the default width of inputs and combos: the rest of the
// line, minus room for one trailing small button.
func (ctx *Context) itemWidth() float32 {
	reserve := ctx.frameHeight() + ctx.style.ItemSpacing
	return maxf(ctx.layout.right-ctx.nextItemX()-reserve, 40)
}

// SameLine places the next item to the right of the previous one.
func (ctx *Context) SameLine() {
	ctx.layout.sameLine = true
}

// Spacing adds vertical space.
func (ctx *Context) Spacing(pixels float32) {
	ctx.layout.sameLine = false
	ctx.layout.cursor.Y += pixels
}

// Indent shifts the start of following lines.
func (ctx *Context) Indent(pixels float32) {
	ctx.layout.lineX += pixels
}

// BeginDisabled starts a block whose widgets draw dimmed and ignore
// input when disabled is true. Blocks nest; every call needs EndDisabled.
func (ctx *Context) BeginDisabled(disabled bool) {
	ctx.disabledStack = append(ctx.disabledStack, disabled)
	if disabled {
		ctx.disabledDepth++
	}
}

// EndDisabled closes the innermost BeginDisabled.
func (ctx *Context) EndDisabled() {
	n := len(ctx.disabledStack)
	if n == 0 {
		return
	}
	if ctx.disabledStack[n-1] {
		ctx.disabledDepth--
	}
	ctx.disabledStack = ctx.disabledStack[:n-1]
}

// Disabled reports whether widgets currently ignore input.
func (ctx *Context) Disabled() bool {
	return ctx.disabledDepth > 0
}

// hoverable reports whether the mouse is over r on the current layer
// and inside the active clip.
func (ctx *Context) hoverable(r Rect) bool {
	if ctx.Input == nil {
		return false
	}
	m := ctx.Input.Mouse()
	if !r.Contains(m) {
		return false
	}
	c := ctx.dl().ClipRect()
	if m.X < c[0] || m.Y < c[1] || m.X >= c[2] || m.Y >= c[3] {
		return false
	}
	if len(ctx.popups) == 0 && ctx.popupRect.Contains(m) {
		return false
	}
	ctx.WantCaptureMouse = true
	return true
}

func (ctx *Context) clicked(r Rect) bool {
	return !ctx.Disabled() && ctx.hoverable(r) && ctx.Input.MouseClicked(MouseButtonLeft)
}

// IsItemHovered reports whether the mouse is over the last widget.
func (ctx *Context) IsItemHovered() bool {
	return ctx.hoverable(ctx.layout.lastItem)
}

// Tooltip shows text next to the mouse at the end of the frame. The last
// call in a frame wins.
func (ctx *Context) Tooltip(text string) {
	ctx.tooltip = text
}

func (ctx *Context) textColor() uint32 {
	if ctx.Disabled() {
		return ctx.style.TextDisabledColor
	}
	return ctx.style.TextColor
}
