package imgui

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// textEdit is the state of a text input while it is being edited.
// Cursor counts grapheme clusters.
type textEdit struct {
	editing bool
	buf     string
	initial string
	cursor  int
}

// InputText edits a single line. The change is committed, and true
// returned, when the input loses focus (Enter, Tab or a click elsewhere)
// with a different text. Escape cancels.
func (ctx *Context) InputText(label string, v *string) bool {
	r := ctx.placeItem(ctx.itemWidth(), ctx.frameHeight())
	return ctx.editBox(label, r, v, false)
}

// InputTextMultiline edits text with line breaks. Enter inserts a line;
// Ctrl+Enter, Tab or a click elsewhere commits.
func (ctx *Context) InputTextMultiline(label string, v *string) bool {
	lines := max(strings.Count(*v, "\n")+1, 3)
	h := float32(lines)*ctx.LineHeight() + ctx.style.FramePadding*2
	r := ctx.placeItem(ctx.itemWidth(), h)
	return ctx.editBox(label, r, v, true)
}

// InputInt edits an integer as text. Text that does not parse is dropped.
func (ctx *Context) InputInt(label string, v *int64) bool {
	r := ctx.placeItem(ctx.itemWidth(), ctx.frameHeight())
	return ctx.intBox(label, r, v)
}

// InputFloat edits a float shown with format. Text that does not parse is
// dropped.
func (ctx *Context) InputFloat(label string, v *float64, format string) bool {
	r := ctx.placeItem(ctx.itemWidth(), ctx.frameHeight())
	return ctx.floatBox(label, r, v, format)
}

// InputFloatN edits len(v) floats side by side.
func (ctx *Context) InputFloatN(label string, v []float64, format string) bool {
	return ctx.multiBox(label, len(v), 0, func(i int, r Rect) bool {
		return ctx.floatBox("##"+strconv.Itoa(i), r, &v[i], format)
	})
}

// InputIntN edits len(v) integers side by side.
func (ctx *Context) InputIntN(label string, v []int64) bool {
	return ctx.multiBox(label, len(v), 0, func(i int, r Rect) bool {
		return ctx.intBox("##"+strconv.Itoa(i), r, &v[i])
	})
}

// ColorEdit4 edits an RGBA color as four 0-255 channels followed by a
// swatch. Hovering the swatch shows the hex code.
func (ctx *Context) ColorEdit4(label string, rgba *[4]float32) bool {
	swatch := ctx.frameHeight()
	changed := ctx.multiBox(label, 4, swatch+ctx.style.ItemSpacing, func(i int, r Rect) bool {
		n := int64(math.Round(float64(clampf(rgba[i], 0, 1)) * 255))
		if !ctx.intBox("##"+strconv.Itoa(i), r, &n) {
			return false
		}
		rgba[i] = float32(min(max(n, 0), 255)) / 255
		return true
	})
	row := ctx.layout.lastItem
	sw := Rect{X: row.X + row.W - swatch, Y: row.Y, W: swatch, H: swatch}
	c := RGBAf(rgba[0], rgba[1], rgba[2], 1)
	ctx.dl().AddRect(sw.X, sw.Y, sw.W, sw.H, c)
	ctx.dl().AddRectOutline(sw.X, sw.Y, sw.W, sw.H, ctx.style.InputBorderColor, 1)
	if ctx.hoverable(sw) {
		ctx.Tooltip(fmt.Sprintf("%s  alpha %.0f%%", Hex(c), rgba[3]*100))
	}
	return changed
}

// multiBox splits one line into n boxes, leaving trailing pixels free,
// and runs draw for each. The whole line is the resulting last item.
func (ctx *Context) multiBox(label string, n int, trailing float32, draw func(i int, r Rect) bool) bool {
	if n == 0 {
		ctx.placeItem(0, ctx.frameHeight())
		return false
	}
	total := ctx.itemWidth()
	row := ctx.placeItem(total, ctx.frameHeight())
	gap := ctx.style.ItemSpacing
	w := (total - trailing - gap*float32(n-1)) / float32(n)
	ctx.PushIDString(label)
	changed := false
	for i := 0; i < n; i++ {
		r := Rect{X: row.X + float32(i)*(w+gap), Y: row.Y, W: w, H: row.H}
		if draw(i, r) {
			changed = true
		}
	}
	ctx.PopID()
	ctx.layout.lastItem = row
	return changed
}

func (ctx *Context) intBox(label string, r Rect, v *int64) bool {
	text := strconv.FormatInt(*v, 10)
	if !ctx.editBox(label, r, &text, false) {
		return false
	}
	n, err := strconv.ParseInt(strings.TrimSpace(text), 10, 64)
	if err != nil {
		guiLogger.Debug("imgui: dropped integer input", "text", text, "err", err)
		return false
	}
	*v = n
	return true
}

func (ctx *Context) floatBox(label string, r Rect, v *float64, format string) bool {
	text := fmt.Sprintf(format, *v)
	if !ctx.editBox(label, r, &text, false) {
		return false
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(text), 64)
	if err != nil {
		guiLogger.Debug("imgui: dropped float input", "text", text, "err", err)
		return false
	}
	*v = f
	return true
}

// editBox draws a text box at r and runs its editing state machine.
func (ctx *Context) editBox(label string, r Rect, v *string, multiline bool) bool {
	id := ctx.GetID(label)
	st, _ := ctx.edits.Lookup(id)
	committed := false

	// Another input took focus since last frame: commit what we had.
	if st != nil && st.editing && ctx.activeID != id {
		committed = ctx.finishEdit(st, v)
	}

	if !ctx.Disabled() && (st == nil || !st.editing) && ctx.clicked(r) {
		st = ctx.edits.Get(id, textEdit{})
		*st = textEdit{editing: true, buf: *v, initial: *v, cursor: graphemeCount(*v)}
		ctx.activeID = id
		guiLogger.Debug("imgui: edit start", "id", id)
	}

	text := *v
	editing := st != nil && st.editing && ctx.activeID == id && !ctx.Disabled()
	if editing {
		ctx.edits.Get(id, textEdit{})
		ctx.activeSeen = true
		ctx.WantCaptureKeyboard = true
		in := ctx.Input
		st.buf, st.cursor = ctx.editText(st.buf, st.cursor, multiline)
		switch {
		case in.KeyPressed(KeyEscape):
			st.editing = false
			ctx.activeID = 0
		case in.KeyPressed(KeyTab),
			in.KeyPressed(KeyEnter) && (!multiline || in.ModCtrl),
			in.MouseClicked(MouseButtonLeft) && !r.Contains(in.Mouse()):
			committed = ctx.finishEdit(st, v) || committed
			ctx.activeID = 0
		}
		if st.editing {
			text = st.buf
		}
	}

	dl := ctx.dl()
	bg := ctx.style.InputBgColor
	if editing {
		bg = ctx.style.InputFocusedBgColor
	}
	dl.AddRect(r.X, r.Y, r.W, r.H, bg)
	dl.AddRectOutline(r.X, r.Y, r.W, r.H, ctx.style.InputBorderColor, 1)
	pad := ctx.style.FramePadding
	dl.PushClipRect(r.X+1, r.Y+1, r.X+r.W-1, r.Y+r.H-1)
	ctx.addText(r.X+pad, r.Y+pad, text, ctx.textColor())
	if editing && st.editing {
		before := st.buf[:graphemeSplit(st.buf, st.cursor)]
		line := before[strings.LastIndexByte(before, '\n')+1:]
		cx := r.X + pad + ctx.MeasureText(line).X
		cy := r.Y + pad + float32(strings.Count(before, "\n"))*ctx.LineHeight()
		dl.AddRect(cx, cy, 1, ctx.LineHeight(), ctx.style.TextColor)
	}
	dl.PopClipRect()
	return committed
}

func (ctx *Context) finishEdit(st *textEdit, v *string) bool {
	st.editing = false
	if st.buf == st.initial {
		return false
	}
	*v = st.buf
	guiLogger.Debug("imgui: edit commit", "text", st.buf)
	return true
}

// editText applies this frame's typing to s with the cursor at grapheme
// index cur.
func (ctx *Context) editText(s string, cur int, multiline bool) (string, int) {
	in := ctx.Input
	n := graphemeCount(s)
	cur = min(max(cur, 0), n)
	insert := func(t string) {
		at := graphemeSplit(s, cur)
		s = s[:at] + t + s[at:]
		cur += graphemeCount(t)
		n = graphemeCount(s)
	}

	if in.ModCtrl {
		switch {
		case in.KeyPressed(KeyA):
			cur = n
		case in.KeyPressed(KeyC):
			ctx.setClipboardText(s)
		case in.KeyPressed(KeyX):
			ctx.setClipboardText(s)
			return "", 0
		case in.KeyPressed(KeyV):
			t := ctx.clipboardText()
			if !multiline {
				t = strings.ReplaceAll(t, "\n", " ")
			}
			insert(t)
		}
	} else if len(in.InputChars) > 0 {
		insert(string(in.InputChars))
	}

	switch {
	case in.KeyRepeated(KeyBackspace) && cur > 0:
		from, to := graphemeSplit(s, cur-1), graphemeSplit(s, cur)
		s = s[:from] + s[to:]
		cur--
	case in.KeyRepeated(KeyDelete) && cur < n:
		from, to := graphemeSplit(s, cur), graphemeSplit(s, cur+1)
		s = s[:from] + s[to:]
	case in.KeyRepeated(KeyLeft) && cur > 0:
		cur--
	case in.KeyRepeated(KeyRight) && cur < n:
		cur++
	case in.KeyPressed(KeyHome):
		cur = 0
	case in.KeyPressed(KeyEnd):
		cur = n
	case multiline && in.KeyPressed(KeyEnter) && !in.ModCtrl:
		insert("\n")
	}
	return s, cur
}
