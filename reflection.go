package inspector

import "unsafe"

// ReflectionProvider supplies field layouts and value access for the types
// the inspector draws.
//
// Value and SetValue exchange values in a small set of staging types:
//
//	Bool                        bool
//	Uint64                      uint64
//	other integer kinds, Enum   int64
//	Float kinds                 float64
//	String, Name, Text          string
//	ObjectRef                   Object
//	ClassRef                    *Type
//	SoftObjectRef, SoftClassRef SoftPath
type ReflectionProvider interface {
	// Fields returns the fields declared by t, in declaration order.
	Fields(t *Type) []*Field
	SuperType(t *Type) *Type
	IsChildOf(t, base *Type) bool
	DeclaringType(f *Field) *Type

	// Identical compares the values of f stored at a and b.
	Identical(f *Field, a, b unsafe.Pointer) bool
	Value(f *Field, p unsafe.Pointer) any
	SetValue(f *Field, p unsafe.Pointer, v any)

	// Types lists every known type, used to populate class pickers.
	Types() []*Type
}

// ContainerProvider gives element access to Array, Set and Map values.
// Array elements are addressable in place. Set and map entries are detached
// copies written back with StoreEntry.
type ContainerProvider interface {
	Len(f *Field, p unsafe.Pointer) int

	Index(f *Field, p unsafe.Pointer, i int) unsafe.Pointer
	// Insert places a default element at i; i == Len appends.
	Insert(f *Field, p unsafe.Pointer, i int)
	Remove(f *Field, p unsafe.Pointer, i int)
	Clear(f *Field, p unsafe.Pointer)

	// Entries returns set elements or map pairs in a stable order.
	Entries(f *Field, p unsafe.Pointer) []Entry
	// StoreEntry writes an edited entry back. For sets the original element
	// is removed and the edited one inserted.
	StoreEntry(f *Field, p unsafe.Pointer, e Entry)
	// AddDefault inserts a default element (set) or default pair (map).
	// A map that already holds the default key is left untouched and
	// AddDefault returns false.
	AddDefault(f *Field, p unsafe.Pointer) bool
	Delete(f *Field, p unsafe.Pointer, e Entry)
}

// ObjectFactory constructs owned objects for instanced references.
type ObjectFactory interface {
	NewObject(t *Type, outer Object) Object
}

// AssetIndex lists the assets an object picker can choose from.
type AssetIndex interface {
	Assets(class *Type) []Asset
}

// TopClass returns the most-derived type shared by every object, or nil when
// the set is empty, holds None, or has no common ancestor.
func TopClass(objects []Object) *Type {
	if len(objects) == 0 || objects[0].IsNone() {
		return nil
	}
	top := objects[0].Type
	for _, o := range objects[1:] {
		if o.IsNone() {
			return nil
		}
		for top != nil && !o.Type.IsChildOf(top) {
			top = top.Super
		}
		if top == nil {
			return nil
		}
	}
	return top
}
