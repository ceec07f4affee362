package inspector

import "unsafe"

// objects reads the object reference f from every instance.
func objects(ctx *RenderContext, f *Field, vals Instances) []Object {
	p := ctx.Provider()
	out := make([]Object, len(vals))
	for i, ptr := range vals {
		out[i], _ = p.Value(f, ptr).(Object)
	}
	return out
}

func (ctx *RenderContext) outerAt(i int) Object {
	if i < len(ctx.outers) {
		return ctx.outers[i]
	}
	return Object{}
}

// ObjectCustomizer edits hard object references. Instanced references pick
// a class and construct a new owned object; the others pick an asset.
// Instanced targets expand into their class fields.
type ObjectCustomizer struct{ Base }

func (c ObjectCustomizer) IsVisible(ctx *RenderContext, f *Field, vals Instances, identical bool) bool {
	if ctx.Filter().Matches(f.Name) {
		return true
	}
	if !c.HasChildren(ctx, f, vals, identical) {
		return false
	}
	objs := objects(ctx, f, vals)
	defer ctx.Visit(objs)()
	return ctx.classVisible(TopClass(objs), objs)
}

func (ObjectCustomizer) HasChildren(ctx *RenderContext, f *Field, vals Instances, _ bool) bool {
	if !f.Has(FlagInstanced) {
		return false
	}
	objs := objects(ctx, f, vals)
	if TopClass(objs) == nil {
		return false
	}
	if ctx.Visiting(objs) {
		logSkip(ErrCycle, f, ctx.depth)
		return false
	}
	return true
}

func (ObjectCustomizer) ValueWidget(ctx *RenderContext, f *Field, vals Instances, identical bool) {
	objs := objects(ctx, f, vals)
	preview := MultipleValues
	if identical {
		preview = objs[0].DisplayName()
	}
	label := ValueLabel(f, identical)

	if f.Has(FlagInstanced) {
		item, ok := ctx.pick(label, preview, pickerKey{kind: KindClassRef, class: f.Class}, func() []pickItem {
			return ctx.classCandidates(f.Class)
		})
		pathTooltip(ctx, objs[0], identical)
		if !ok {
			return
		}
		if item.Type == nil {
			ctx.SetAll(f, vals, Object{})
			return
		}
		factory := ctx.engine.factory
		if factory == nil {
			logSkip(ErrNoObjectFactory, f, ctx.depth)
			return
		}
		p := ctx.Provider()
		ctx.Commit(f, vals, func(i int, ptr unsafe.Pointer) {
			p.SetValue(f, ptr, factory.NewObject(item.Type, ctx.outerAt(i)))
		})
		return
	}

	item, ok := ctx.pick(label, preview, pickerKey{kind: KindObjectRef, class: f.Class}, func() []pickItem {
		return ctx.assetCandidates(f.Class)
	})
	pathTooltip(ctx, objs[0], identical)
	if ok {
		ctx.SetAll(f, vals, item.Asset.Object)
	}
}

func (ObjectCustomizer) ChildrenWidget(ctx *RenderContext, f *Field, vals Instances, _ bool) {
	objs := objects(ctx, f, vals)
	top := TopClass(objs)
	if top == nil {
		return
	}
	defer ctx.Visit(objs)()
	ctx.DrawClass(top, objs, true)
}

func pathTooltip(ctx *RenderContext, o Object, identical bool) {
	if identical && o.Path != "" && ctx.r.IsItemHovered() {
		ctx.r.Tooltip(o.Path)
	}
}

// classVisible reports whether any shown field of t passes the filter.
func (ctx *RenderContext) classVisible(t *Type, objs []Object) bool {
	if t == nil || !ctx.enterLevel() {
		return false
	}
	defer ctx.leaveLevel()
	base := make(Instances, len(objs))
	for i, o := range objs {
		base[i] = o.Ptr
	}
	p := ctx.Provider()
	for c := t; c != nil; c = p.SuperType(c) {
		for _, f := range p.Fields(c) {
			if ctx.IsShown(f) && p.DeclaringType(f) == c && ctx.FieldVisible(f, base.Offset(f.Offset)) {
				return true
			}
		}
	}
	return false
}

// SoftObjectCustomizer edits lazily resolved object paths.
type SoftObjectCustomizer struct{ Base }

func (SoftObjectCustomizer) ValueWidget(ctx *RenderContext, f *Field, vals Instances, identical bool) {
	preview := MultipleValues
	if identical {
		preview = softPreview(ctx.Provider().Value(f, vals.First()))
	}
	item, ok := ctx.pick(ValueLabel(f, identical), preview, pickerKey{kind: KindObjectRef, class: f.Class}, func() []pickItem {
		return ctx.assetCandidates(f.Class)
	})
	if ok {
		ctx.SetAll(f, vals, item.Asset.Path)
	}
}

// ClassRefCustomizer edits references to a type deriving from the field's
// meta class.
type ClassRefCustomizer struct{ Base }

func (ClassRefCustomizer) ValueWidget(ctx *RenderContext, f *Field, vals Instances, identical bool) {
	preview := MultipleValues
	if identical {
		t, _ := ctx.Provider().Value(f, vals.First()).(*Type)
		preview = t.String()
	}
	item, ok := ctx.pick(ValueLabel(f, identical), preview, pickerKey{kind: KindClassRef, class: f.Class}, func() []pickItem {
		return ctx.classCandidates(f.Class)
	})
	if ok {
		ctx.SetAll(f, vals, item.Type)
	}
}

// SoftClassCustomizer edits lazily resolved class paths. The path of a type
// is its name.
type SoftClassCustomizer struct{ Base }

func (SoftClassCustomizer) ValueWidget(ctx *RenderContext, f *Field, vals Instances, identical bool) {
	preview := MultipleValues
	if identical {
		preview = softPreview(ctx.Provider().Value(f, vals.First()))
	}
	item, ok := ctx.pick(ValueLabel(f, identical), preview, pickerKey{kind: KindClassRef, class: f.Class}, func() []pickItem {
		return ctx.classCandidates(f.Class)
	})
	if !ok {
		return
	}
	var path SoftPath
	if item.Type != nil {
		path = SoftPath(item.Type.Name)
	}
	ctx.SetAll(f, vals, path)
}

func softPreview(v any) string {
	if s := asString(v); s != "" {
		return s
	}
	return None
}
