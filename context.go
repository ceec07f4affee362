package inspector

import (
	"fmt"
	"strconv"
	"unsafe"
)

// RenderContext is the state threaded through one DrawTable call. Every
// change made while descending is undone on the way back up.
type RenderContext struct {
	engine *Engine
	r      Renderer

	// depth starts at -1 and grows by one per table and nested struct level.
	depth int
	// index is the element index while drawing container elements, else -1.
	index int
	// outers are the objects owning the instances currently drawn.
	outers []Object

	filter     *Filter
	visibility visibilityCache
	onChanged  func(*Field)
	// entries holds the detached set and map entries read during the
	// current table, so rows keep the same addresses for the whole draw.
	entries map[entriesKey]entrySnapshot

	disabled     bool
	disableCount int

	visiting map[unsafe.Pointer]struct{}

	// writeBacks flush detached set/map entry copies before notification.
	writeBacks []func()

	row IdentityToken
	// anchor replaces instance addresses in identity tokens below detached
	// entry copies, whose addresses change every frame.
	anchor unsafe.Pointer
}

func newRenderContext(e *Engine, r Renderer) *RenderContext {
	return &RenderContext{
		engine:   e,
		r:        r,
		depth:    -1,
		index:    -1,
		visiting: make(map[unsafe.Pointer]struct{}),
	}
}

func (ctx *RenderContext) Renderer() Renderer { return ctx.r }

func (ctx *RenderContext) Engine() *Engine { return ctx.engine }

func (ctx *RenderContext) Provider() ReflectionProvider { return ctx.engine.provider }

func (ctx *RenderContext) Registry() *Registry { return ctx.engine.registry }

// Containers returns the provider's container access, if it has one.
func (ctx *RenderContext) Containers() (ContainerProvider, bool) {
	cp, ok := ctx.engine.provider.(ContainerProvider)
	return cp, ok
}

func (ctx *RenderContext) Depth() int { return ctx.depth }

func (ctx *RenderContext) Index() int { return ctx.index }

func (ctx *RenderContext) Outers() []Object { return ctx.outers }

// Row is the identity token of the row being drawn.
func (ctx *RenderContext) Row() IdentityToken { return ctx.row }

// IsShown reports whether f belongs in the inspector at all.
func (ctx *RenderContext) IsShown(f *Field) bool {
	if ctx.engine.displayAll {
		return true
	}
	return f.Has(FlagEdit) && !f.HasAny(FlagHidden)
}

// Identical reports whether f holds equal values in every instance,
// comparing each instance with the one before it. A single instance is
// always identical; a nil address never is.
func (ctx *RenderContext) Identical(f *Field, vals Instances) bool {
	for i := 1; i < len(vals); i++ {
		if vals[i-1] == nil || vals[i] == nil {
			return false
		}
		if !ctx.engine.provider.Identical(f, vals[i-1], vals[i]) {
			return false
		}
	}
	return len(vals) > 0 && vals[0] != nil
}

// Notify reports a committed edit of f. Pending entry copies are written
// back first so the callback observes the final state.
func (ctx *RenderContext) Notify(f *Field) {
	for i := len(ctx.writeBacks) - 1; i >= 0; i-- {
		ctx.writeBacks[i]()
	}
	clear(ctx.entries)
	clear(ctx.visibility)
	if ctx.onChanged != nil {
		ctx.onChanged(f)
	}
}

// SetAll stages v once, writes it into every instance and notifies once.
func (ctx *RenderContext) SetAll(f *Field, vals Instances, v any) {
	p := ctx.engine.provider
	for _, ptr := range vals {
		if ptr != nil {
			p.SetValue(f, ptr, v)
		}
	}
	ctx.Notify(f)
}

// Commit runs apply on every instance and notifies once.
func (ctx *RenderContext) Commit(f *Field, vals Instances, apply func(i int, p unsafe.Pointer)) {
	for i, ptr := range vals {
		if ptr != nil {
			apply(i, ptr)
		}
	}
	ctx.Notify(f)
}

// DisableScope disables the renderer for a read-only field until the
// returned function is called.
func (ctx *RenderContext) DisableScope(f *Field) (end func()) {
	disable := !ctx.engine.editVisible && (f.HasAny(FlagReadOnly) || !f.Has(FlagEdit))
	return ctx.disableIf(disable)
}

func (ctx *RenderContext) disableIf(disable bool) (end func()) {
	if !disable {
		return func() {}
	}
	if !ctx.disabled {
		ctx.disabled = true
		ctx.r.BeginDisabled(true)
	}
	ctx.disableCount++
	return func() {
		ctx.disableCount--
		if ctx.disableCount == 0 && ctx.disabled {
			ctx.disabled = false
			ctx.r.EndDisabled()
		}
	}
}

// EnableScope lifts any active disable scope until the returned function is
// called, so that name cells of disabled subtrees can still be expanded.
func (ctx *RenderContext) EnableScope() (end func()) {
	saved := ctx.disableCount
	if saved == 0 {
		return func() {}
	}
	ctx.disableCount = 0
	if ctx.disabled {
		ctx.disabled = false
		ctx.r.EndDisabled()
	}
	return func() {
		ctx.disableCount = saved
		if !ctx.disabled {
			ctx.disabled = true
			ctx.r.BeginDisabled(true)
		}
	}
}

// NameWidget draws a row's name cell: a tree node when the row has
// children, a leaf otherwise, with the field tooltip on hover.
func (ctx *RenderContext) NameWidget(f *Field, name string, hasChildren bool) (open bool) {
	end := ctx.EnableScope()
	open = ctx.r.TreeNode(name, !hasChildren)
	if ctx.r.IsItemHovered() {
		ctx.r.Tooltip(f.TooltipText())
	}
	end()
	return open && hasChildren
}

// Resolve returns the customizers for f: the per-kind customizer and, for
// struct and object fields, a registered struct override.
func (ctx *RenderContext) Resolve(f *Field) (FieldCustomizer, StructCustomizer) {
	reg := ctx.engine.registry
	fc := reg.ResolveFieldCustomizer(f)
	var sc StructCustomizer
	switch {
	case f.Kind == KindStruct && f.Struct != nil:
		sc = reg.ResolveStructCustomizer(f.Struct)
	case f.Kind == KindObjectRef && f.Class != nil:
		sc = reg.ResolveStructCustomizer(f.Class)
	}
	return fc, sc
}

// FieldVisible resolves f and reports whether it passes the filter.
func (ctx *RenderContext) FieldVisible(f *Field, vals Instances) bool {
	if !ctx.filter.Enabled() {
		return true
	}
	fc, sc := ctx.Resolve(f)
	if fc == nil || vals.HasNil() {
		return false
	}
	return ctx.IsVisible(f, vals, ctx.Identical(f, vals), fc, sc)
}

// DrawStruct draws every shown field of t, most-derived first, one nesting
// level below the current one. base holds the struct addresses.
func (ctx *RenderContext) DrawStruct(t *Type, base Instances) {
	if !ctx.enterLevel() {
		return
	}
	defer ctx.leaveLevel()
	for _, f := range t.AllFields() {
		if !ctx.IsShown(f) {
			continue
		}
		ctx.DrawField(f, base.Offset(f.Offset))
	}
}

// DrawField draws the row for f; vals hold the field addresses.
func (ctx *RenderContext) DrawField(f *Field, vals Instances) {
	if f.ArrayDim > 1 {
		ctx.drawFixedArray(f, vals)
		return
	}
	ctx.drawRow(f, vals, f.Name, nil, nil)
}

// DrawElement draws one container element row named by its index. extend
// runs after the value cell, typically to add the element menu.
func (ctx *RenderContext) DrawElement(f *Field, vals Instances, index int, extend func(identical bool)) {
	saved := ctx.index
	ctx.index = index
	defer func() { ctx.index = saved }()
	ctx.drawRow(f, vals, strconv.Itoa(index), nil, extend)
}

// DrawEntry draws one map pair: the key, read-only, beside the index in the
// name cell and the value in the value cell.
func (ctx *RenderContext) DrawEntry(key *Field, keys Instances, f *Field, vals Instances, index int, extend func(identical bool)) {
	saved := ctx.index
	ctx.index = index
	defer func() { ctx.index = saved }()
	ctx.drawRow(f, vals, strconv.Itoa(index), func(bool) {
		ctx.r.SameLine()
		end := ctx.disableIf(true)
		ctx.inlineValue(key, keys)
		end()
	}, extend)
}

// inlineValue draws only the value widget of f, without a row.
func (ctx *RenderContext) inlineValue(f *Field, vals Instances) {
	fc, sc := ctx.Resolve(f)
	if fc == nil || vals.HasNil() {
		return
	}
	identical := ctx.Identical(f, vals)
	if sc != nil {
		sc.ValueWidget(ctx, f, vals, identical)
		return
	}
	fc.ValueWidget(ctx, f, vals, identical)
}

func (ctx *RenderContext) drawRow(f *Field, vals Instances, name string, after, extend func(identical bool)) {
	fc, sc := ctx.Resolve(f)
	if fc == nil {
		logSkip(ErrUnresolvedCustomizer, f, ctx.depth)
		return
	}
	if vals.HasNil() {
		logSkip(ErrNullInstance, f, ctx.depth)
		return
	}
	identical := ctx.Identical(f, vals)
	if !ctx.IsVisible(f, vals, identical, fc, sc) {
		return
	}

	r := ctx.r
	savedRow := ctx.row
	ctx.row = MakeIdentity(ctx.identityBase(vals), name, ctx.depth, ctx.index)
	r.PushID(uint64(ctx.row))
	defer func() {
		r.PopID()
		ctx.row = savedRow
	}()

	r.TableNextRow()
	r.TableSetColumnIndex(0)
	var open bool
	switch {
	case sc != nil && extend == nil:
		open = sc.NameWidget(ctx, f, vals, identical)
	case sc != nil:
		open = ctx.NameWidget(f, name, sc.HasChildren(ctx, f, vals, identical))
	default:
		open = ctx.NameWidget(f, name, fc.HasChildren(ctx, f, vals, identical))
	}
	if after != nil {
		after(identical)
	}

	r.TableSetColumnIndex(1)
	end := ctx.DisableScope(f)
	defer end()
	if sc != nil {
		sc.ValueWidget(ctx, f, vals, identical)
	} else {
		fc.ValueWidget(ctx, f, vals, identical)
	}
	if extend != nil {
		extend(identical)
	}

	if open {
		if sc != nil {
			sc.ChildrenWidget(ctx, f, vals, identical)
		} else {
			fc.ChildrenWidget(ctx, f, vals, identical)
		}
		r.TreePop()
	}
}

// drawFixedArray draws an inline array field as a parent row with one child
// row per element.
func (ctx *RenderContext) drawFixedArray(f *Field, vals Instances) {
	fc, _ := ctx.Resolve(f)
	if fc == nil {
		logSkip(ErrUnresolvedCustomizer, f, ctx.depth)
		return
	}
	if vals.HasNil() {
		logSkip(ErrNullInstance, f, ctx.depth)
		return
	}
	elems := make([]Instances, f.ArrayDim)
	identical := true
	for i := range elems {
		elems[i] = vals.Offset(uintptr(i) * f.Size)
		if identical && !ctx.Identical(f, elems[i]) {
			identical = false
		}
	}
	if ctx.filter.Enabled() && !ctx.filter.Matches(f.Name) {
		visible := false
		for i := range elems {
			if ctx.IsVisible(f, elems[i], ctx.Identical(f, elems[i]), fc, nil) {
				visible = true
				break
			}
		}
		if !visible {
			return
		}
	}

	r := ctx.r
	savedRow := ctx.row
	ctx.row = MakeIdentity(ctx.identityBase(vals), f.Name, ctx.depth, ctx.index)
	r.PushID(uint64(ctx.row))
	defer func() {
		r.PopID()
		ctx.row = savedRow
	}()

	r.TableNextRow()
	r.TableSetColumnIndex(0)
	open := ctx.NameWidget(f, f.Name, true)
	r.TableSetColumnIndex(1)
	r.Text(fmt.Sprintf("%d Elements%s", f.ArrayDim, divergentMarker(identical)))
	if !open {
		return
	}
	for i := range elems {
		ctx.DrawElement(f, elems[i], i, nil)
	}
	r.TreePop()
}

// DrawClass draws the fields of class t over objects, grouped into one
// expandable category per declaring class unless collapse is set.
func (ctx *RenderContext) DrawClass(t *Type, objects []Object, collapse bool) {
	if cc := ctx.engine.registry.ResolveClassCustomizer(t); cc != nil {
		cc.ClassDetails(ctx, t, objects)
		return
	}
	ctx.DrawClassDefault(t, objects, collapse)
}

// DrawClassDefault is DrawClass without the class customizer lookup, for
// use by class customizers that extend the default layout.
func (ctx *RenderContext) DrawClassDefault(t *Type, objects []Object, collapse bool) {
	if !ctx.enterLevel() {
		return
	}
	defer ctx.leaveLevel()

	savedOuters := ctx.outers
	ctx.outers = objects
	defer func() { ctx.outers = savedOuters }()

	base := make(Instances, len(objects))
	for i, o := range objects {
		base[i] = o.Ptr
	}
	if base.HasNil() {
		logSkip(ErrNullInstance, nil, ctx.depth)
		return
	}

	collapse = collapse || t.Has(TypeCollapseCategories)
	p := ctx.engine.provider
	for c := t; c != nil; c = p.SuperType(c) {
		var fields []*Field
		for _, f := range p.Fields(c) {
			if ctx.IsShown(f) && p.DeclaringType(f) == c {
				fields = append(fields, f)
			}
		}
		if len(fields) == 0 {
			continue
		}
		if collapse {
			for _, f := range fields {
				ctx.DrawField(f, base.Offset(f.Offset))
			}
			continue
		}
		ctx.drawCategory(c, fields, base)
	}
}

func (ctx *RenderContext) drawCategory(c *Type, fields []*Field, base Instances) {
	if ctx.filter.Enabled() {
		visible := false
		for _, f := range fields {
			if ctx.FieldVisible(f, base.Offset(f.Offset)) {
				visible = true
				break
			}
		}
		if !visible {
			return
		}
	}

	r := ctx.r
	savedRow := ctx.row
	ctx.row = MakeIdentity(ctx.identityBase(base), c.Name, ctx.depth, ctx.index)
	r.PushID(uint64(ctx.row))
	defer func() {
		r.PopID()
		ctx.row = savedRow
	}()

	r.TableNextRow()
	r.TableSetColumnIndex(0)
	end := ctx.EnableScope()
	open := r.TreeNode(c.Name, false)
	if r.IsItemHovered() {
		tip := c.Tooltip
		if tip == "" {
			tip = c.Name
		}
		r.Tooltip(tip)
	}
	end()
	if !open {
		return
	}
	for _, f := range fields {
		ctx.DrawField(f, base.Offset(f.Offset))
	}
	r.TreePop()
}

func (ctx *RenderContext) identityBase(vals Instances) unsafe.Pointer {
	if ctx.anchor != nil {
		return ctx.anchor
	}
	return vals.First()
}

func (ctx *RenderContext) enterLevel() bool {
	if ctx.depth+1 >= ctx.engine.maxDepth {
		logSkip(ErrDepthLimit, nil, ctx.depth)
		return false
	}
	ctx.depth++
	return true
}

func (ctx *RenderContext) leaveLevel() { ctx.depth-- }

// Visiting reports whether any of objects is already being drawn further up
// the current path.
func (ctx *RenderContext) Visiting(objects []Object) bool {
	for _, o := range objects {
		if _, ok := ctx.visiting[o.Ptr]; ok {
			return true
		}
	}
	return false
}

// Visit marks objects as being drawn until the returned function is called.
func (ctx *RenderContext) Visit(objects []Object) (leave func()) {
	var added []unsafe.Pointer
	for _, o := range objects {
		if _, ok := ctx.visiting[o.Ptr]; !ok {
			ctx.visiting[o.Ptr] = struct{}{}
			added = append(added, o.Ptr)
		}
	}
	return func() {
		for _, p := range added {
			delete(ctx.visiting, p)
		}
	}
}

// pushWriteBack registers fn to flush a detached entry copy before any
// notification raised while drawing it.
func (ctx *RenderContext) pushWriteBack(fn func()) (pop func()) {
	ctx.writeBacks = append(ctx.writeBacks, fn)
	n := len(ctx.writeBacks)
	return func() { ctx.writeBacks = ctx.writeBacks[:n-1] }
}
