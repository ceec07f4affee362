package inspector

import (
	"strings"
	"unsafe"
)

// FieldFlags describe how a field is presented.
type FieldFlags uint32

const (
	// FlagEdit marks a field that appears in the inspector.
	FlagEdit FieldFlags = 1 << iota
	// FlagReadOnly shows the field but disables its value widget.
	FlagReadOnly
	// FlagHidden keeps the field out of the inspector unless display-all is on.
	FlagHidden
	// FlagInstanced marks an object reference that owns its target.
	FlagInstanced
)

// Field describes one field of a type, as supplied by a ReflectionProvider.
// Fields are immutable once built.
type Field struct {
	Name     string
	Kind     Kind
	Offset   uintptr
	Size     uintptr
	ArrayDim int
	Flags    FieldFlags
	Tooltip  string

	// Owner is the type that declares the field.
	Owner *Type

	Enum   *Enum
	Struct *Type
	Class  *Type

	Elem  *Field
	Key   *Field
	Value *Field

	// Native is reserved for the provider that built the field.
	Native any
}

func (f *Field) Has(flags FieldFlags) bool { return f.Flags&flags == flags }

func (f *Field) HasAny(flags FieldFlags) bool { return f.Flags&flags != 0 }

// TooltipText is the tooltip shown when hovering the field's name.
func (f *Field) TooltipText() string {
	if f.Tooltip != "" {
		return f.Tooltip
	}
	return f.Name
}

// TypeFlags describe class-level behavior.
type TypeFlags uint32

const (
	TypeAbstract TypeFlags = 1 << iota
	TypeDeprecated
	TypeCollapseCategories
)

// Type is a struct or class layout: its declared fields and its super type.
type Type struct {
	Name    string
	Super   *Type
	Fields  []*Field
	Size    uintptr
	Flags   TypeFlags
	Tooltip string

	Native any
}

func (t *Type) String() string {
	if t == nil {
		return "None"
	}
	return t.Name
}

func (t *Type) Has(flags TypeFlags) bool { return t != nil && t.Flags&flags == flags }

// IsChildOf reports whether t is base or inherits from it.
func (t *Type) IsChildOf(base *Type) bool {
	for c := t; c != nil; c = c.Super {
		if c == base {
			return true
		}
	}
	return false
}

// AllFields returns the fields of t and its supers, most-derived first.
func (t *Type) AllFields() []*Field {
	var out []*Field
	for c := t; c != nil; c = c.Super {
		out = append(out, c.Fields...)
	}
	return out
}

// EnumEntry is one named enum value.
type EnumEntry struct {
	Name  string
	Value int64
}

// Enum is an enum definition. When HasMax is set the last entry is an
// implicit "max" sentinel that is never offered for selection.
type Enum struct {
	Name    string
	Entries []EnumEntry
	HasMax  bool
}

// Values returns the selectable entries.
func (e *Enum) Values() []EnumEntry {
	if e.HasMax && len(e.Entries) > 0 {
		return e.Entries[:len(e.Entries)-1]
	}
	return e.Entries
}

// NameOf returns the short display name for v, or "" when v is not an entry.
func (e *Enum) NameOf(v int64) string {
	for _, entry := range e.Entries {
		if entry.Value == v {
			return shortEnumName(entry.Name)
		}
	}
	return ""
}

func shortEnumName(name string) string {
	if i := strings.LastIndex(name, "::"); i >= 0 {
		return name[i+2:]
	}
	return name
}

// Name is an identifier-like string. Names compare case-insensitively.
type Name string

// Text is user-facing, possibly multi-line, display text.
type Text string

// SoftPath is a lazily resolved object path held by soft object references.
type SoftPath string

// SoftClassPath is a lazily resolved type path held by soft class references.
type SoftClassPath string

// Object is a live object referenced by an object reference field.
// The zero Object is "None".
type Object struct {
	Type *Type
	Ptr  unsafe.Pointer
	Name string
	Path string
}

func (o Object) IsNone() bool { return o.Ptr == nil }

// DisplayName is the label shown in pickers and value cells.
func (o Object) DisplayName() string {
	switch {
	case o.IsNone():
		return None
	case o.Name != "":
		return o.Name
	default:
		return o.Type.String()
	}
}

// Asset is an entry of an AssetIndex.
type Asset struct {
	Name   string
	Path   SoftPath
	Object Object
}

// Entry is a detached copy of one set element or map pair. Key points at the
// element for sets. Customizers edit the copy and store it back.
type Entry struct {
	Key   unsafe.Pointer
	Value unsafe.Pointer
	Index int

	// Orig is the provider's handle to the original element.
	Orig any
}

// Instances holds, for every edited object, the address of the value being
// drawn. A nil entry means the value could not be reached.
type Instances []unsafe.Pointer

// Offset advances every non-nil address by off bytes.
func (in Instances) Offset(off uintptr) Instances {
	out := make(Instances, len(in))
	for i, p := range in {
		if p != nil {
			out[i] = unsafe.Add(p, off)
		}
	}
	return out
}

// HasNil reports whether any address is nil.
func (in Instances) HasNil() bool {
	for _, p := range in {
		if p == nil {
			return true
		}
	}
	return len(in) == 0
}

// First returns the first address or nil.
func (in Instances) First() unsafe.Pointer {
	if len(in) == 0 {
		return nil
	}
	return in[0]
}
