package inspector

import "sync"

// Registry maps field kinds, struct types and classes to customizers.
// Keys are unique; registering a key twice replaces the earlier entry.
type Registry struct {
	mu      sync.RWMutex
	fields  map[Kind]FieldCustomizer
	structs map[*Type]StructCustomizer
	classes map[*Type]ClassCustomizer
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		fields:  make(map[Kind]FieldCustomizer),
		structs: make(map[*Type]StructCustomizer),
		classes: make(map[*Type]ClassCustomizer),
	}
}

// DefaultRegistry returns a registry holding the built-in customizer for
// every kind.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.RegisterFieldCustomizer(KindBool, BoolCustomizer{})
	r.RegisterFieldCustomizer(KindNumeric, NumericCustomizer{})
	r.RegisterFieldCustomizer(KindString, StringCustomizer{})
	r.RegisterFieldCustomizer(KindName, NameCustomizer{})
	r.RegisterFieldCustomizer(KindText, TextCustomizer{})
	r.RegisterFieldCustomizer(KindEnum, EnumCustomizer{})
	r.RegisterFieldCustomizer(KindObjectRef, ObjectCustomizer{})
	r.RegisterFieldCustomizer(KindSoftObjectRef, SoftObjectCustomizer{})
	r.RegisterFieldCustomizer(KindClassRef, ClassRefCustomizer{})
	r.RegisterFieldCustomizer(KindSoftClassRef, SoftClassCustomizer{})
	r.RegisterFieldCustomizer(KindArray, ArrayCustomizer{})
	r.RegisterFieldCustomizer(KindSet, SetCustomizer{})
	r.RegisterFieldCustomizer(KindMap, MapCustomizer{})
	r.RegisterFieldCustomizer(KindStruct, StructFieldCustomizer{})
	return r
}

// RegisterFieldCustomizer stores c for kind. The last registration wins.
func (r *Registry) RegisterFieldCustomizer(kind Kind, c FieldCustomizer) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.fields[kind] = c
}

// RegisterStructCustomizer stores c for the concrete struct or class t.
func (r *Registry) RegisterStructCustomizer(t *Type, c StructCustomizer) {
	if t == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.structs[t] = c
}

// RegisterClassCustomizer stores a whole-table override for class t.
func (r *Registry) RegisterClassCustomizer(t *Type, c ClassCustomizer) {
	if t == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.classes[t] = c
}

// ResolveFieldCustomizer walks the field's kind chain and returns the first
// registered customizer, or nil.
func (r *Registry) ResolveFieldCustomizer(f *Field) FieldCustomizer {
	if f == nil {
		return nil
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	for k := f.Kind; k != KindInvalid; k = k.Parent() {
		if c, ok := r.fields[k]; ok {
			return c
		}
	}
	return nil
}

// ResolveStructCustomizer walks t's super chain, most-derived first, and
// returns the first registered override, or nil.
func (r *Registry) ResolveStructCustomizer(t *Type) StructCustomizer {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for c := t; c != nil; c = c.Super {
		if sc, ok := r.structs[c]; ok {
			return sc
		}
	}
	return nil
}

// ResolveClassCustomizer is ResolveStructCustomizer for class tables.
func (r *Registry) ResolveClassCustomizer(t *Type) ClassCustomizer {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for c := t; c != nil; c = c.Super {
		if cc, ok := r.classes[c]; ok {
			return cc
		}
	}
	return nil
}

// ScopedFieldCustomizer installs c for kind until restore is called, which
// puts back the previous registration (or removes the entry if none).
func (r *Registry) ScopedFieldCustomizer(kind Kind, c FieldCustomizer) (restore func()) {
	r.mu.Lock()
	prev, had := r.fields[kind]
	r.fields[kind] = c
	r.mu.Unlock()
	return func() {
		r.mu.Lock()
		defer r.mu.Unlock()
		if had {
			r.fields[kind] = prev
		} else {
			delete(r.fields, kind)
		}
	}
}

// ScopedStructCustomizer is ScopedFieldCustomizer for struct overrides.
func (r *Registry) ScopedStructCustomizer(t *Type, c StructCustomizer) (restore func()) {
	r.mu.Lock()
	prev, had := r.structs[t]
	r.structs[t] = c
	r.mu.Unlock()
	return func() {
		r.mu.Lock()
		defer r.mu.Unlock()
		if had {
			r.structs[t] = prev
		} else {
			delete(r.structs, t)
		}
	}
}

// ScopedClassCustomizer is ScopedFieldCustomizer for class overrides.
func (r *Registry) ScopedClassCustomizer(t *Type, c ClassCustomizer) (restore func()) {
	r.mu.Lock()
	prev, had := r.classes[t]
	r.classes[t] = c
	r.mu.Unlock()
	return func() {
		r.mu.Lock()
		defer r.mu.Unlock()
		if had {
			r.classes[t] = prev
		} else {
			delete(r.classes, t)
		}
	}
}
