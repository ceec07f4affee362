package inspector

import (
	"unsafe"

	"github.com/dboslee/lru"
)

// DefaultMaxDepth bounds struct and instanced-object nesting.
const DefaultMaxDepth = 16

// Engine draws property tables. One engine is normally shared by every
// inspector panel of an application.
type Engine struct {
	provider ReflectionProvider
	registry *Registry
	assets   AssetIndex
	factory  ObjectFactory

	displayAll  bool
	editVisible bool
	maxDepth    int

	pickers       pickerCache
	pickerFilters map[IdentityToken]string
	hideAbstract  bool
}

// Option configures an Engine.
type Option func(*Engine)

// WithRegistry replaces the default customizer registry.
func WithRegistry(r *Registry) Option {
	return func(e *Engine) { e.registry = r }
}

// WithAssets sets the asset index used by object pickers.
func WithAssets(a AssetIndex) Option {
	return func(e *Engine) { e.assets = a }
}

// WithObjectFactory sets the constructor for instanced references. By
// default the provider is used when it implements ObjectFactory.
func WithObjectFactory(f ObjectFactory) Option {
	return func(e *Engine) { e.factory = f }
}

// WithDisplayAll shows fields that are hidden or not marked editable.
func WithDisplayAll(v bool) Option {
	return func(e *Engine) { e.displayAll = v }
}

// WithEditVisible makes every shown field editable, read-only ones included.
func WithEditVisible(v bool) Option {
	return func(e *Engine) { e.editVisible = v }
}

// WithMaxDepth bounds the nesting depth of struct and object rows.
func WithMaxDepth(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.maxDepth = n
		}
	}
}

// WithAbstractClasses lists abstract and deprecated classes in class pickers.
func WithAbstractClasses(v bool) Option {
	return func(e *Engine) { e.hideAbstract = !v }
}

// New creates an engine over provider.
func New(provider ReflectionProvider, opts ...Option) *Engine {
	e := &Engine{
		provider:      provider,
		registry:      DefaultRegistry(),
		maxDepth:      DefaultMaxDepth,
		pickers:       lru.New[pickerKey, []pickItem](),
		pickerFilters: make(map[IdentityToken]string),
		hideAbstract:  true,
	}
	if a, ok := provider.(AssetIndex); ok {
		e.assets = a
	}
	if f, ok := provider.(ObjectFactory); ok {
		e.factory = f
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func (e *Engine) Registry() *Registry { return e.registry }

func (e *Engine) Provider() ReflectionProvider { return e.provider }

// SetDisplayAll toggles display of hidden fields at run time.
func (e *Engine) SetDisplayAll(v bool) { e.displayAll = v }

// SetEditVisible toggles editing of read-only fields at run time.
func (e *Engine) SetEditVisible(v bool) { e.editVisible = v }

// InvalidatePickers drops cached picker candidates, for example after the
// asset index changed.
func (e *Engine) InvalidatePickers() {
	e.pickers = lru.New[pickerKey, []pickItem]()
}

// DrawOption configures one table draw.
type DrawOption func(*drawOptions)

type drawOptions struct {
	filter    *Filter
	onChanged func(*Field)
	collapse  bool
}

// WithFilter restricts rows to fields whose name, or a descendant's name,
// contains the filter text.
func WithFilter(f *Filter) DrawOption {
	return func(o *drawOptions) { o.filter = f }
}

// OnFieldChanged registers the callback invoked once per committed edit.
func OnFieldChanged(fn func(f *Field)) DrawOption {
	return func(o *drawOptions) { o.onChanged = fn }
}

// CollapseCategories draws class fields without per-class category rows.
func CollapseCategories() DrawOption {
	return func(o *drawOptions) { o.collapse = true }
}

func applyDrawOptions(opts []DrawOption) drawOptions {
	var o drawOptions
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// DrawTable draws a two-column table of t's fields over instances, which
// point at values of type t.
func (e *Engine) DrawTable(r Renderer, id string, t *Type, instances []unsafe.Pointer, opts ...DrawOption) {
	newRenderContext(e, r).DrawTable(id, t, instances, opts...)
}

// DrawClassTable draws a class table over objects of class t, grouping
// fields into one category per declaring class.
func (e *Engine) DrawClassTable(r Renderer, id string, t *Type, objects []Object, opts ...DrawOption) {
	newRenderContext(e, r).DrawClassTable(id, t, objects, opts...)
}

// DrawObjects draws a class table for the common class of objects. Nothing
// is drawn when an object is None or the objects share no class.
func (e *Engine) DrawObjects(r Renderer, id string, objects []Object, opts ...DrawOption) {
	top := TopClass(objects)
	if top == nil {
		err := ErrIncompatibleInstances
		for _, o := range objects {
			if o.IsNone() {
				err = ErrNullInstance
			}
		}
		logSkip(err, nil, -1)
		return
	}
	e.DrawClassTable(r, id, top, objects, opts...)
}

// tableScope saves the per-table state and installs a fresh one. Pending
// entry write-backs stay in place so edits in a nested table still reach
// the enclosing containers.
func (ctx *RenderContext) tableScope(o drawOptions) (restore func()) {
	savedFilter, savedCache, savedCb, savedEntries := ctx.filter, ctx.visibility, ctx.onChanged, ctx.entries
	ctx.filter = o.filter
	ctx.visibility = make(visibilityCache)
	ctx.onChanged = o.onChanged
	ctx.entries = make(map[entriesKey]entrySnapshot)
	return func() {
		ctx.filter, ctx.visibility, ctx.onChanged, ctx.entries = savedFilter, savedCache, savedCb, savedEntries
	}
}

// DrawTable draws a struct table from within another draw, for customizers
// that embed a nested inspector. The nested table gets its own filter,
// callback and visibility cache; the enclosing ones are restored after.
func (ctx *RenderContext) DrawTable(id string, t *Type, instances []unsafe.Pointer, opts ...DrawOption) {
	if t == nil {
		return
	}
	if Instances(instances).HasNil() {
		logSkip(ErrNullInstance, nil, ctx.depth)
		return
	}
	if !ctx.r.BeginTable(id, 2) {
		return
	}
	defer ctx.r.EndTable()
	defer ctx.tableScope(applyDrawOptions(opts))()
	ctx.DrawStruct(t, Instances(instances))
}

// DrawClassTable is DrawTable for class tables.
func (ctx *RenderContext) DrawClassTable(id string, t *Type, objects []Object, opts ...DrawOption) {
	if t == nil || len(objects) == 0 {
		return
	}
	for _, o := range objects {
		if o.IsNone() {
			logSkip(ErrNullInstance, nil, ctx.depth)
			return
		}
		if !o.Type.IsChildOf(t) {
			logSkip(ErrIncompatibleInstances, nil, ctx.depth)
			return
		}
	}
	if !ctx.r.BeginTable(id, 2) {
		return
	}
	defer ctx.r.EndTable()
	o := applyDrawOptions(opts)
	defer ctx.tableScope(o)()
	defer ctx.Visit(objects)()
	ctx.DrawClass(t, objects, o.collapse)
}
