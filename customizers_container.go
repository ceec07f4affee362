package inspector

import (
	"fmt"
	"unsafe"
)

// Element menu actions.
const (
	menuID     = "##element"
	menuInsert = "Insert"
	menuDelete = "Delete"
)

type elementAction int

const (
	actionNone elementAction = iota
	actionInsert
	actionDelete
)

// containerLen returns the element count shared by every instance, or
// ok == false when the counts differ.
func containerLen(cp ContainerProvider, f *Field, vals Instances) (n int, ok bool) {
	for i, p := range vals {
		l := cp.Len(f, p)
		if i == 0 {
			n = l
		} else if l != n {
			return 0, false
		}
	}
	return n, true
}

// drawContainerHeader draws the element count with the add and clear
// buttons. Add is offered only when every instance has the same count; add
// returns whether it changed an instance.
func drawContainerHeader(ctx *RenderContext, f *Field, vals Instances, identical bool, add func(p unsafe.Pointer) bool) {
	r := ctx.r
	cp, ok := ctx.Containers()
	if !ok {
		logSkip(ErrNoContainerAccess, f, ctx.depth)
		r.TextDisabled(f.Kind.String())
		return
	}
	n, same := containerLen(cp, f, vals)
	if same {
		r.Text(fmt.Sprintf("%d Elements%s", n, divergentMarker(identical)))
	} else {
		r.Text("Different Elements *")
	}
	r.SameLine()
	if same && r.SmallButton("+") {
		changed := false
		for _, p := range vals {
			if add(p) {
				changed = true
			}
		}
		if changed {
			ctx.Notify(f)
		}
	}
	r.SameLine()
	if r.SmallButton("x") {
		ctx.Commit(f, vals, func(_ int, p unsafe.Pointer) { cp.Clear(f, p) })
	}
}

// elementMenu draws the per-element popup and returns the chosen action.
func elementMenu(ctx *RenderContext, insert bool) elementAction {
	r := ctx.r
	r.SameLine()
	if !r.BeginPopupMenu(menuID) {
		return actionNone
	}
	defer r.EndPopupMenu()
	if insert && r.MenuItem(menuInsert) {
		return actionInsert
	}
	if r.MenuItem(menuDelete) {
		return actionDelete
	}
	return actionNone
}

// containerVisible reports whether the field name or any element passes
// the filter.
func containerVisible(ctx *RenderContext, f *Field, vals Instances, elem *Field, elems func(i int) Instances) bool {
	if ctx.Filter().Matches(f.Name) {
		return true
	}
	cp, ok := ctx.Containers()
	if !ok || elem == nil {
		return false
	}
	n, same := containerLen(cp, f, vals)
	if !same {
		return false
	}
	for i := 0; i < n; i++ {
		if ctx.FieldVisible(elem, elems(i)) {
			return true
		}
	}
	return false
}

func containerHasChildren(ctx *RenderContext, f *Field, vals Instances) bool {
	cp, ok := ctx.Containers()
	if !ok {
		return false
	}
	n, same := containerLen(cp, f, vals)
	return same && n > 0
}

// ArrayCustomizer edits dynamic arrays in place. Each element row has a
// menu to insert before it or delete it.
type ArrayCustomizer struct{ Base }

func arrayElems(ctx *RenderContext, f *Field, vals Instances, i int) Instances {
	cp, _ := ctx.Containers()
	out := make(Instances, len(vals))
	for k, p := range vals {
		out[k] = cp.Index(f, p, i)
	}
	return out
}

func (ArrayCustomizer) IsVisible(ctx *RenderContext, f *Field, vals Instances, _ bool) bool {
	return containerVisible(ctx, f, vals, f.Elem, func(i int) Instances { return arrayElems(ctx, f, vals, i) })
}

func (ArrayCustomizer) HasChildren(ctx *RenderContext, f *Field, vals Instances, _ bool) bool {
	return f.Elem != nil && containerHasChildren(ctx, f, vals)
}

func (ArrayCustomizer) ValueWidget(ctx *RenderContext, f *Field, vals Instances, identical bool) {
	cp, _ := ctx.Containers()
	drawContainerHeader(ctx, f, vals, identical, func(p unsafe.Pointer) bool {
		cp.Insert(f, p, cp.Len(f, p))
		return true
	})
}

func (ArrayCustomizer) ChildrenWidget(ctx *RenderContext, f *Field, vals Instances, _ bool) {
	cp, _ := ctx.Containers()
	n, _ := containerLen(cp, f, vals)
	for i := 0; i < n; i++ {
		action := actionNone
		ctx.DrawElement(f.Elem, arrayElems(ctx, f, vals, i), i, func(bool) {
			action = elementMenu(ctx, true)
		})
		switch action {
		case actionInsert:
			ctx.Commit(f, vals, func(_ int, p unsafe.Pointer) { cp.Insert(f, p, i) })
			return
		case actionDelete:
			ctx.Commit(f, vals, func(_ int, p unsafe.Pointer) { cp.Remove(f, p, i) })
			return
		}
	}
}

type entriesKey struct {
	addr  unsafe.Pointer
	field *Field
	n     int
}

type entrySnapshot struct {
	all [][]Entry
	n   int
	ok  bool
}

// entries reads the entries of every instance once per table. ok is false
// when the counts differ. The snapshot is dropped on every commit.
func entries(ctx *RenderContext, f *Field, vals Instances) (all [][]Entry, n int, ok bool) {
	key := entriesKey{addr: vals.First(), field: f, n: len(vals)}
	if s, hit := ctx.entries[key]; hit {
		return s.all, s.n, s.ok
	}
	all, n, ok = readEntries(ctx, f, vals)
	if ctx.entries != nil {
		ctx.entries[key] = entrySnapshot{all: all, n: n, ok: ok}
	}
	return all, n, ok
}

func readEntries(ctx *RenderContext, f *Field, vals Instances) (all [][]Entry, n int, ok bool) {
	cp, has := ctx.Containers()
	if !has {
		return nil, 0, false
	}
	all = make([][]Entry, len(vals))
	for k, p := range vals {
		all[k] = cp.Entries(f, p)
		if k == 0 {
			n = len(all[k])
		} else if len(all[k]) != n {
			return nil, 0, false
		}
	}
	return all, n, true
}

func entryColumn(all [][]Entry, i int, value bool) Instances {
	out := make(Instances, len(all))
	for k := range all {
		if value {
			out[k] = all[k][i].Value
		} else {
			out[k] = all[k][i].Key
		}
	}
	return out
}

// drawEntries draws one row per entry through draw. Edits are made on
// detached copies, written back before any change notification.
func drawEntries(ctx *RenderContext, f *Field, vals Instances, draw func(all [][]Entry, i int, extend func(bool))) {
	cp, _ := ctx.Containers()
	all, n, ok := entries(ctx, f, vals)
	if !ok {
		return
	}
	if ctx.anchor == nil {
		ctx.anchor = vals.First()
		defer func() { ctx.anchor = nil }()
	}
	for i := 0; i < n; i++ {
		pop := ctx.pushWriteBack(func() {
			for k, p := range vals {
				cp.StoreEntry(f, p, all[k][i])
			}
		})
		del := false
		draw(all, i, func(bool) {
			del = elementMenu(ctx, false) == actionDelete
		})
		pop()
		if del {
			ctx.Commit(f, vals, func(k int, p unsafe.Pointer) { cp.Delete(f, p, all[k][i]) })
			return
		}
	}
}

// SetCustomizer edits sets. Elements are edited as detached copies.
type SetCustomizer struct{ Base }

func (SetCustomizer) IsVisible(ctx *RenderContext, f *Field, vals Instances, _ bool) bool {
	all, _, ok := entries(ctx, f, vals)
	if !ok {
		return ctx.Filter().Matches(f.Name)
	}
	return containerVisible(ctx, f, vals, f.Elem, func(i int) Instances { return entryColumn(all, i, false) })
}

func (SetCustomizer) HasChildren(ctx *RenderContext, f *Field, vals Instances, _ bool) bool {
	return f.Elem != nil && containerHasChildren(ctx, f, vals)
}

func (SetCustomizer) ValueWidget(ctx *RenderContext, f *Field, vals Instances, identical bool) {
	cp, _ := ctx.Containers()
	drawContainerHeader(ctx, f, vals, identical, func(p unsafe.Pointer) bool { return cp.AddDefault(f, p) })
}

func (SetCustomizer) ChildrenWidget(ctx *RenderContext, f *Field, vals Instances, _ bool) {
	drawEntries(ctx, f, vals, func(all [][]Entry, i int, extend func(bool)) {
		ctx.DrawElement(f.Elem, entryColumn(all, i, false), i, extend)
	})
}

// MapCustomizer edits maps. Keys are shown read-only next to the index;
// values are edited as detached copies.
type MapCustomizer struct{ Base }

func (MapCustomizer) IsVisible(ctx *RenderContext, f *Field, vals Instances, _ bool) bool {
	all, _, ok := entries(ctx, f, vals)
	if !ok {
		return ctx.Filter().Matches(f.Name)
	}
	return containerVisible(ctx, f, vals, f.Value, func(i int) Instances { return entryColumn(all, i, true) })
}

func (MapCustomizer) HasChildren(ctx *RenderContext, f *Field, vals Instances, _ bool) bool {
	return f.Key != nil && f.Value != nil && containerHasChildren(ctx, f, vals)
}

func (MapCustomizer) ValueWidget(ctx *RenderContext, f *Field, vals Instances, identical bool) {
	cp, _ := ctx.Containers()
	drawContainerHeader(ctx, f, vals, identical, func(p unsafe.Pointer) bool { return cp.AddDefault(f, p) })
}

func (MapCustomizer) ChildrenWidget(ctx *RenderContext, f *Field, vals Instances, _ bool) {
	drawEntries(ctx, f, vals, func(all [][]Entry, i int, extend func(bool)) {
		ctx.DrawEntry(f.Key, entryColumn(all, i, false), f.Value, entryColumn(all, i, true), i, extend)
	})
}

// StructFieldCustomizer draws a struct field as an expandable row of its
// member fields.
type StructFieldCustomizer struct{ Base }

func (StructFieldCustomizer) IsVisible(ctx *RenderContext, f *Field, vals Instances, _ bool) bool {
	if ctx.Filter().Matches(f.Name) {
		return true
	}
	if f.Struct == nil {
		return false
	}
	for _, sf := range f.Struct.AllFields() {
		if ctx.IsShown(sf) && ctx.FieldVisible(sf, vals.Offset(sf.Offset)) {
			return true
		}
	}
	return false
}

func (StructFieldCustomizer) HasChildren(ctx *RenderContext, f *Field, _ Instances, _ bool) bool {
	if f.Struct == nil {
		return false
	}
	for _, sf := range f.Struct.AllFields() {
		if ctx.IsShown(sf) {
			return true
		}
	}
	return false
}

func (StructFieldCustomizer) ValueWidget(ctx *RenderContext, f *Field, _ Instances, identical bool) {
	n := 0
	if f.Struct != nil {
		for _, sf := range f.Struct.AllFields() {
			if ctx.IsShown(sf) {
				n++
			}
		}
	}
	ctx.r.TextDisabled(fmt.Sprintf("%d Fields%s", n, divergentMarker(identical)))
}

func (StructFieldCustomizer) ChildrenWidget(ctx *RenderContext, f *Field, vals Instances, _ bool) {
	ctx.DrawStruct(f.Struct, vals)
}
