package imgui

// popupFrame is an open combo or menu being drawn this frame.
type popupFrame struct {
	id     ID
	rect   Rect
	top    float32 // y of the first row, scroll included
	scroll *float32
	saved  layoutState
}

// BeginCombo draws a combo header showing preview and returns true while
// its popup is open. Items go between BeginCombo and EndCombo; EndCombo is
// only called when BeginCombo returned true.
func (ctx *Context) BeginCombo(label, preview string) bool {
	id := ctx.GetID(label)
	r := ctx.placeItem(ctx.itemWidth(), ctx.frameHeight())

	dl := ctx.dl()
	bg := ctx.style.ButtonColor
	if ctx.openPopup == id || (!ctx.Disabled() && ctx.hoverable(r)) {
		bg = ctx.style.ButtonHoveredColor
	}
	dl.AddRect(r.X, r.Y, r.W, r.H, bg)
	dl.AddRectOutline(r.X, r.Y, r.W, r.H, ctx.style.InputBorderColor, 1)
	pad := ctx.style.FramePadding
	arrow := ctx.LineHeight()
	ctx.addText(r.X+pad, r.Y+pad, TruncateText(ctx, preview, r.W-arrow-pad*3), ctx.textColor())
	ctx.drawArrow(r.X+r.W-arrow-pad, r.Y+pad, arrow)

	if ctx.Disabled() {
		if ctx.openPopup == id {
			ctx.closePopup()
		}
		return false
	}
	if ctx.clicked(r) {
		if ctx.openPopup == id {
			ctx.closePopup()
			return false
		}
		ctx.openPopupAt(id)
	} else if ctx.openPopup == id && ctx.clickedOutsidePopup(r) {
		ctx.closePopup()
	}
	if ctx.openPopup != id {
		return false
	}
	ctx.beginPopup(id, Vec2{X: r.X, Y: r.Y + r.H}, r.W)
	return true
}

// ComboFilter draws a search line at the top of an open combo. It takes
// typing without being clicked and reports whether the text changed.
func (ctx *Context) ComboFilter(v *string) bool {
	p := ctx.popup()
	if p == nil {
		return false
	}
	next, _ := ctx.editText(*v, graphemeCount(*v), false)
	changed := next != *v
	*v = next
	if ctx.Input.KeyPressed(KeyEscape) {
		ctx.closePopup()
	}
	ctx.WantCaptureKeyboard = true

	x := ctx.layout.lineX
	r := ctx.placeItem(ctx.layout.right-x, ctx.frameHeight())
	dl := ctx.dl()
	dl.AddRect(r.X, r.Y, r.W, r.H, ctx.style.InputFocusedBgColor)
	dl.AddRectOutline(r.X, r.Y, r.W, r.H, ctx.style.InputBorderColor, 1)
	pad := ctx.style.FramePadding
	if *v == "" {
		ctx.addText(r.X+pad, r.Y+pad, "Search...", ctx.style.TextDisabledColor)
	} else {
		ctx.addText(r.X+pad, r.Y+pad, *v, ctx.style.TextColor)
	}
	cx := r.X + pad + ctx.MeasureText(*v).X
	dl.AddRect(cx, r.Y+pad, 1, ctx.LineHeight(), ctx.style.TextColor)
	return changed
}

// EndCombo closes a combo opened by BeginCombo.
func (ctx *Context) EndCombo() {
	ctx.endPopup()
}

// BeginPopupMenu draws a small arrow button that toggles a popup menu and
// returns true while the menu is open. EndPopupMenu must follow a true
// result.
func (ctx *Context) BeginPopupMenu(id string) bool {
	pid := ctx.GetID(id)
	h := ctx.LineHeight() + 2
	r := ctx.placeItem(h, h)
	bg := ctx.style.ButtonColor
	if ctx.openPopup == pid || (!ctx.Disabled() && ctx.hoverable(r)) {
		bg = ctx.style.ButtonHoveredColor
	}
	ctx.dl().AddRect(r.X, r.Y, r.W, r.H, bg)
	ctx.drawArrow(r.X+1, r.Y+1, h-2)

	if ctx.Disabled() {
		if ctx.openPopup == pid {
			ctx.closePopup()
		}
		return false
	}
	if ctx.clicked(r) {
		if ctx.openPopup == pid {
			ctx.closePopup()
			return false
		}
		ctx.openPopupAt(pid)
	} else if ctx.openPopup == pid && ctx.clickedOutsidePopup(r) {
		ctx.closePopup()
	}
	if ctx.openPopup != pid {
		return false
	}
	ctx.beginPopup(pid, Vec2{X: r.X, Y: r.Y + r.H}, 16*ctx.MeasureText("M").X)
	return true
}

// MenuItem draws a menu entry and returns true when it is chosen, which
// also closes the menu.
func (ctx *Context) MenuItem(label string) bool {
	return ctx.Selectable(label, false)
}

// EndPopupMenu closes a menu opened by BeginPopupMenu.
func (ctx *Context) EndPopupMenu() {
	ctx.endPopup()
}

// IsPopupOpen reports whether any combo or menu is open.
func (ctx *Context) IsPopupOpen() bool {
	return ctx.openPopup != 0
}

func (ctx *Context) drawArrow(x, y, size float32) {
	s := size * 0.3
	cx, cy := x+size/2, y+size/2
	ctx.dl().AddTriangle(cx-s, cy-s/2, cx+s, cy-s/2, cx, cy+s, ctx.style.ComboArrowColor)
}

func (ctx *Context) popup() *popupFrame {
	if len(ctx.popups) == 0 {
		return nil
	}
	return &ctx.popups[len(ctx.popups)-1]
}

func (ctx *Context) openPopupAt(id ID) {
	guiLogger.Debug("imgui: popup open", "id", id)
	ctx.openPopup = id
	*ctx.popupScroll.Get(id, 0) = 0
}

func (ctx *Context) closePopup() {
	guiLogger.Debug("imgui: popup close", "id", ctx.openPopup)
	ctx.openPopup = 0
}

// clickedOutsidePopup reports a click that hit neither the popup drawn
// last frame nor its anchor.
func (ctx *Context) clickedOutsidePopup(anchor Rect) bool {
	if ctx.Input == nil || !ctx.Input.MouseClicked(MouseButtonLeft) {
		return false
	}
	m := ctx.Input.Mouse()
	return !anchor.Contains(m) && !ctx.popupRect.Contains(m)
}

// beginPopup switches drawing to the foreground layer below origin. The
// height is the content height measured last frame, capped at
// Style.MaxPopupItems rows and scrolled with the wheel beyond that.
func (ctx *Context) beginPopup(id ID, origin Vec2, width float32) {
	ctx.popupSeen = true
	pad := ctx.style.FramePadding
	content := *ctx.popupHeights.Get(id, 0)
	row := ctx.LineHeight() + 2 + ctx.style.ItemSpacing
	visible := minf(content, row*float32(max(ctx.style.MaxPopupItems, 1)))
	rect := Rect{X: origin.X, Y: origin.Y, W: width, H: visible + pad*2}
	if ctx.DisplaySize.Y > 0 && rect.Y+rect.H > ctx.DisplaySize.Y && origin.Y-rect.H > 0 {
		rect.Y = origin.Y - rect.H - ctx.frameHeight()
	}

	scroll := ctx.popupScroll.Get(id, 0)
	if ctx.Input != nil && rect.Contains(ctx.Input.Mouse()) && ctx.Input.MouseWheelY != 0 {
		*scroll -= ctx.Input.MouseWheelY * row
	}
	*scroll = clampf(*scroll, 0, maxf(content-visible, 0))

	fg := ctx.ForegroundDrawList
	fg.AddRect(rect.X, rect.Y, rect.W, rect.H, ctx.style.DropdownBgColor)
	fg.AddRectOutline(rect.X, rect.Y, rect.W, rect.H, ctx.style.InputBorderColor, 1)
	fg.PushClipRect(rect.X, rect.Y+pad, rect.X+rect.W, rect.Y+rect.H-pad)

	p := popupFrame{id: id, rect: rect, scroll: scroll, saved: ctx.layout}
	p.top = rect.Y + pad - *scroll
	ctx.popups = append(ctx.popups, p)
	ctx.layout = layoutState{
		cursor: Vec2{X: rect.X + pad, Y: p.top},
		lineX:  rect.X + pad,
		right:  rect.X + rect.W - pad,
	}
	ctx.popupRectNext = rect
	if ctx.Input != nil && rect.Contains(ctx.Input.Mouse()) {
		ctx.WantCaptureMouse = true
	}
}

func (ctx *Context) endPopup() {
	p := ctx.popup()
	if p == nil {
		return
	}
	*ctx.popupHeights.Get(p.id, 0) = ctx.layout.cursor.Y - p.top
	ctx.ForegroundDrawList.PopClipRect()
	ctx.layout = p.saved
	ctx.popups = ctx.popups[:len(ctx.popups)-1]
}
