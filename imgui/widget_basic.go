package imgui

// Text draws text at the cursor.
func (ctx *Context) Text(text string) {
	size := ctx.MeasureText(text)
	r := ctx.placeItem(size.X, maxf(size.Y, ctx.LineHeight()))
	ctx.addText(r.X, r.Y, text, ctx.textColor())
}

// TextColored draws text with a specific color.
func (ctx *Context) TextColored(text string, color uint32) {
	size := ctx.MeasureText(text)
	r := ctx.placeItem(size.X, maxf(size.Y, ctx.LineHeight()))
	ctx.addText(r.X, r.Y, text, color)
}

// TextDisabled draws text with the disabled color.
func (ctx *Context) TextDisabled(text string) {
	ctx.TextColored(text, ctx.style.TextDisabledColor)
}

// Button draws a button and returns true if clicked.
func (ctx *Context) Button(label string) bool {
	return ctx.button(label, ctx.style.FramePadding)
}

// SmallButton draws a button with minimal padding.
func (ctx *Context) SmallButton(label string) bool {
	return ctx.button(label, 1)
}

func (ctx *Context) button(label string, pad float32) bool {
	text := displayText(label)
	size := ctx.MeasureText(text)
	r := ctx.placeItem(size.X+pad*2+2, ctx.LineHeight()+pad*2)

	bg := ctx.style.ButtonColor
	if !ctx.Disabled() && ctx.hoverable(r) {
		bg = ctx.style.ButtonHoveredColor
		if ctx.Input.MouseDown(MouseButtonLeft) {
			bg = ctx.style.ButtonActiveColor
		}
	}
	ctx.dl().AddRect(r.X, r.Y, r.W, r.H, bg)
	ctx.addText(r.X+(r.W-size.X)/2, r.Y+pad, text, ctx.textColor())
	return ctx.clicked(r)
}

// Checkbox toggles *v when clicked and reports the change.
func (ctx *Context) Checkbox(label string, v *bool) bool {
	h := ctx.frameHeight()
	text := displayText(label)
	w := h
	if text != "" {
		w += ctx.style.ItemSpacing + ctx.MeasureText(text).X
	}
	r := ctx.placeItem(w, h)
	box := Rect{X: r.X, Y: r.Y, W: h, H: h}

	bg := ctx.style.InputBgColor
	if !ctx.Disabled() && ctx.hoverable(r) {
		bg = ctx.style.InputFocusedBgColor
	}
	dl := ctx.dl()
	dl.AddRect(box.X, box.Y, box.W, box.H, bg)
	dl.AddRectOutline(box.X, box.Y, box.W, box.H, ctx.style.InputBorderColor, 1)
	if *v {
		inset := h / 4
		mark := ctx.style.CheckMarkColor
		if ctx.Disabled() {
			mark = ctx.style.TextDisabledColor
		}
		dl.AddRect(box.X+inset, box.Y+inset, box.W-inset*2, box.H-inset*2, mark)
	}
	if text != "" {
		ctx.addText(box.X+h+ctx.style.ItemSpacing, r.Y+ctx.style.FramePadding, text, ctx.textColor())
	}
	if ctx.clicked(r) {
		*v = !*v
		return true
	}
	return false
}

// Selectable draws a full-width row that highlights when selected and
// returns true when clicked. Inside a combo or menu a click also closes
// the popup.
func (ctx *Context) Selectable(label string, selected bool) bool {
	text := displayText(label)
	x := ctx.nextItemX()
	r := ctx.placeItem(maxf(ctx.layout.right-x, ctx.MeasureText(text).X), ctx.LineHeight()+2)

	dl := ctx.dl()
	switch {
	case selected:
		dl.AddRect(r.X, r.Y, r.W, r.H, ctx.style.SelectedBgColor)
	case !ctx.Disabled() && ctx.hoverable(r):
		dl.AddRect(r.X, r.Y, r.W, r.H, ctx.style.HoveredBgColor)
	}
	ctx.addText(r.X+2, r.Y+1, text, ctx.textColor())
	if !ctx.clicked(r) {
		return false
	}
	if len(ctx.popups) > 0 {
		ctx.closePopup()
	}
	return true
}

// Separator draws a horizontal line across the region.
func (ctx *Context) Separator() {
	x := ctx.layout.lineX
	r := ctx.placeItem(ctx.layout.right-x, 1)
	ctx.dl().AddRect(r.X, r.Y, r.W, 1, ctx.style.BorderColor)
}

// Panel draws a titled, clipped, wheel-scrollable region at r and runs
// body inside it.
//
//	ctx.Panel("Details", imgui.Rect{X: 10, Y: 10, W: 400, H: 600})(func() {
//	    ctx.Text("Hello")
//	})
func (ctx *Context) Panel(title string, r Rect) func(func()) {
	return func(body func()) {
		id := ctx.GetID(title)
		dl := ctx.dl()
		dl.AddRect(r.X, r.Y, r.W, r.H, ctx.style.DropdownBgColor)
		dl.AddRectOutline(r.X, r.Y, r.W, r.H, ctx.style.BorderColor, 1)
		header := ctx.frameHeight()
		dl.AddRect(r.X, r.Y, r.W, header, ctx.style.ButtonColor)
		ctx.addText(r.X+ctx.style.FramePadding, r.Y+ctx.style.FramePadding, title, ctx.style.TextColor)

		pad := ctx.style.ItemSpacing
		body0 := Rect{X: r.X, Y: r.Y + header, W: r.W, H: r.H - header}
		scroll := ctx.panelScroll.Get(id, 0)
		if ctx.hoverable(body0) && ctx.Input.MouseWheelY != 0 {
			*scroll = maxf(0, *scroll-ctx.Input.MouseWheelY*ctx.LineHeight()*3)
		}

		ctx.panels = append(ctx.panels, panelFrame{saved: ctx.layout})
		ctx.layout = layoutState{
			cursor: Vec2{X: r.X + pad, Y: body0.Y + pad - *scroll},
			lineX:  r.X + pad,
			right:  r.X + r.W - pad,
		}
		top := ctx.layout.cursor.Y
		dl.PushClipRect(body0.X, body0.Y, body0.X+body0.W, body0.Y+body0.H)
		body()
		dl.PopClipRect()

		content := ctx.layout.cursor.Y - top
		*scroll = minf(*scroll, maxf(0, content-body0.H+pad))
		p := ctx.panels[len(ctx.panels)-1]
		ctx.panels = ctx.panels[:len(ctx.panels)-1]
		ctx.layout = p.saved
		ctx.layout.lastItem = r
	}
}

type panelFrame struct {
	saved layoutState
}
