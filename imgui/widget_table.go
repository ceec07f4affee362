package imgui

// tableState is one open table. Column 0 takes Style.NameColumn of the
// width and the other columns share the rest.
type tableState struct {
	id        ID
	x, width  float32
	colX      []float32
	colW      []float32
	top       float32
	rowTop    float32
	rowBottom float32
	row       int
	column    int
	clipped   bool
	treeDepth int
	saved     layoutState
}

// BeginTable starts a table filling the rest of the region. It returns
// false when columns is not positive; otherwise EndTable must follow.
func (ctx *Context) BeginTable(id string, columns int) bool {
	if columns <= 0 {
		return false
	}
	ctx.PushIDString(id)
	x := ctx.nextItemX()
	width := maxf(ctx.layout.right-x, 1)
	top := ctx.layout.cursor.Y
	if ctx.layout.sameLine {
		top = ctx.layout.lastItem.Y
	}
	t := &tableState{
		id:        ctx.CurrentID(),
		x:         x,
		width:     width,
		colX:      make([]float32, columns),
		colW:      make([]float32, columns),
		top:       top,
		rowTop:    top,
		rowBottom: top,
		row:       -1,
		saved:     ctx.layout,
	}
	first := width
	if columns > 1 {
		first = width * ctx.style.NameColumn
	}
	t.colX[0], t.colW[0] = x, first
	if columns > 1 {
		rest := (width - first) / float32(columns-1)
		for c := 1; c < columns; c++ {
			t.colX[c] = x + first + rest*float32(c-1)
			t.colW[c] = rest
		}
	}
	ctx.layout.sameLine = false
	ctx.tables = append(ctx.tables, t)
	return true
}

func (ctx *Context) table() *tableState {
	if len(ctx.tables) == 0 {
		return nil
	}
	return ctx.tables[len(ctx.tables)-1]
}

// TableNextRow starts a new row below the tallest cell of the last one.
func (ctx *Context) TableNextRow() {
	t := ctx.table()
	if t == nil {
		return
	}
	if t.row >= 0 {
		t.rowBottom = maxf(t.rowBottom, ctx.layout.cursor.Y)
	}
	t.row++
	t.rowTop = t.rowBottom
	if t.row > 0 {
		ctx.dl().AddRect(t.x, t.rowTop-1, t.width, 1, ctx.style.BorderColor)
	}
	t.column = -1
	ctx.TableSetColumnIndex(0)
}

// TableSetColumnIndex moves the cursor to the top of a cell of the current
// row. Column 0 is indented by the open tree depth.
func (ctx *Context) TableSetColumnIndex(column int) {
	t := ctx.table()
	if t == nil || column < 0 || column >= len(t.colX) {
		return
	}
	if t.row < 0 {
		t.row = 0
	}
	if t.column >= 0 {
		t.rowBottom = maxf(t.rowBottom, ctx.layout.cursor.Y)
	}
	t.column = column
	pad := ctx.style.FramePadding
	x := t.colX[column] + pad
	if column == 0 {
		x += float32(t.treeDepth) * ctx.style.IndentSpacing
	}
	ctx.layout.lineX = x
	ctx.layout.right = t.colX[column] + t.colW[column] - pad
	ctx.layout.cursor = Vec2{X: x, Y: t.rowTop + 1}
	ctx.layout.sameLine = false

	dl := ctx.dl()
	if t.clipped {
		dl.PopClipRect()
	}
	dl.PushClipRect(t.colX[column], -1e9, t.colX[column]+t.colW[column], 1e9)
	t.clipped = true
}

// EndTable closes the table and moves the cursor below it.
func (ctx *Context) EndTable() {
	t := ctx.table()
	if t == nil {
		return
	}
	if t.column >= 0 {
		t.rowBottom = maxf(t.rowBottom, ctx.layout.cursor.Y)
	}
	if t.clipped {
		ctx.dl().PopClipRect()
	}
	ctx.tables = ctx.tables[:len(ctx.tables)-1]
	ctx.layout = t.saved
	ctx.layout.sameLine = false
	ctx.layout.lastItem = Rect{X: t.x, Y: t.top, W: t.width, H: t.rowBottom - t.top}
	ctx.layout.cursor.Y = maxf(ctx.layout.cursor.Y, t.rowBottom+ctx.style.ItemSpacing)
	ctx.PopID()
}

// TreeNode draws an expandable row label and reports whether it is open.
// Clicking the label toggles it. An open node indents later rows of the
// enclosing table and must be closed with TreePop; leaf nodes never open.
func (ctx *Context) TreeNode(label string, leaf bool) bool {
	id := ctx.GetID(label)
	text := displayText(label)
	arrow := ctx.LineHeight()
	size := ctx.MeasureText(text)
	r := ctx.placeItem(arrow+size.X, ctx.LineHeight())

	open := ctx.treeOpen.Get(id, false)
	if !leaf && ctx.hoverable(Rect{X: r.X, Y: r.Y, W: maxf(r.W, ctx.layout.right-r.X), H: r.H}) &&
		ctx.Input.MouseClicked(MouseButtonLeft) {
		*open = !*open
	}

	dl := ctx.dl()
	if !leaf {
		c := ctx.style.ComboArrowColor
		s := arrow * 0.3
		cx, cy := r.X+arrow/2, r.Y+arrow/2
		if *open {
			dl.AddTriangle(cx-s, cy-s/2, cx+s, cy-s/2, cx, cy+s, c)
		} else {
			dl.AddTriangle(cx-s/2, cy-s, cx+s, cy, cx-s/2, cy+s, c)
		}
	}
	ctx.addText(r.X+arrow, r.Y, text, ctx.style.TextColor)

	if leaf || !*open {
		return false
	}
	ctx.idStack = append(ctx.idStack, id)
	if t := ctx.table(); t != nil {
		t.treeDepth++
	} else {
		ctx.treeDepth++
		ctx.layout.lineX += ctx.style.IndentSpacing
	}
	return true
}

// TreePop closes a node opened by TreeNode.
func (ctx *Context) TreePop() {
	if t := ctx.table(); t != nil && t.treeDepth > 0 {
		t.treeDepth--
	} else if ctx.treeDepth > 0 {
		ctx.treeDepth--
		ctx.layout.lineX -= ctx.style.IndentSpacing
	}
	ctx.PopID()
}

// SetTreeNodeOpen forces the open state of the node labeled label under
// the current ID stack.
func (ctx *Context) SetTreeNodeOpen(label string, open bool) {
	*ctx.treeOpen.Get(ctx.GetID(label), open) = open
}
