// Package goreflect implements inspector.ReflectionProvider over ordinary Go
// structs using the reflect package.
//
// A struct type is described once and cached. Its first field, when it is an
// embedded struct, is its super type; the remaining fields are read from the
// "inspect" struct tag. Pointers to structs are object references,
// *inspector.Type is a class reference, slices are arrays, map[K]struct{} is
// a set and other maps are maps.
package goreflect

import (
	"fmt"
	"log/slog"
	"reflect"
	"strings"
	"sync"
	"unsafe"

	"github.com/go-theft-auto/inspector"
)

var (
	typeOfName          = reflect.TypeFor[inspector.Name]()
	typeOfText          = reflect.TypeFor[inspector.Text]()
	typeOfSoftPath      = reflect.TypeFor[inspector.SoftPath]()
	typeOfSoftClassPath = reflect.TypeFor[inspector.SoftClassPath]()
	typeOfTypePtr       = reflect.TypeFor[*inspector.Type]()
)

// Provider describes Go types for the inspector and tracks the live objects
// and assets that reference fields can point at.
type Provider struct {
	mu sync.RWMutex

	types   map[reflect.Type]*inspector.Type
	goTypes map[*inspector.Type]reflect.Type
	byName  map[string]*inspector.Type
	order   []*inspector.Type
	enums   map[reflect.Type]*inspector.Enum
	pending map[string][]*inspector.Field

	objects map[unsafe.Pointer]*objectInfo
	assets  []inspector.Asset
	serial  map[*inspector.Type]int

	logger *slog.Logger
}

type objectInfo struct {
	typ  *inspector.Type
	name string
	path string
}

// Option configures a Provider.
type Option func(*Provider)

// WithLogger sets the logger for type description warnings.
func WithLogger(l *slog.Logger) Option {
	return func(p *Provider) { p.logger = l }
}

// New returns an empty provider.
func New(opts ...Option) *Provider {
	p := &Provider{
		types:   make(map[reflect.Type]*inspector.Type),
		goTypes: make(map[*inspector.Type]reflect.Type),
		byName:  make(map[string]*inspector.Type),
		enums:   make(map[reflect.Type]*inspector.Enum),
		pending: make(map[string][]*inspector.Field),
		objects: make(map[unsafe.Pointer]*objectInfo),
		serial:  make(map[*inspector.Type]int),
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// TypeOf describes the struct type of v, which may be a struct value or a
// pointer to one.
func (p *Provider) TypeOf(v any) *inspector.Type {
	rt := reflect.TypeOf(v)
	for rt != nil && rt.Kind() == reflect.Pointer {
		rt = rt.Elem()
	}
	if rt == nil || rt.Kind() != reflect.Struct {
		return nil
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.describe(rt)
}

// RegisterClass describes the struct type of v and sets its class flags.
func (p *Provider) RegisterClass(v any, flags inspector.TypeFlags, tooltip string) *inspector.Type {
	t := p.TypeOf(v)
	if t == nil {
		return nil
	}
	p.mu.Lock()
	t.Flags |= flags
	t.Tooltip = tooltip
	p.mu.Unlock()
	return t
}

// TypeByName returns a described type by its Go name.
func (p *Provider) TypeByName(name string) *inspector.Type {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.byName[name]
}

// GoType returns the Go type behind t.
func (p *Provider) GoType(t *inspector.Type) reflect.Type {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.goTypes[t]
}

type integer interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 | ~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64
}

// RegisterEnum makes fields of type T enum fields. Names are given in value
// order starting at zero. With hasMax the last name is a count sentinel that
// is never offered for selection.
func RegisterEnum[T integer](p *Provider, hasMax bool, names ...string) *inspector.Enum {
	rt := reflect.TypeFor[T]()
	e := &inspector.Enum{Name: rt.Name(), HasMax: hasMax}
	for i, n := range names {
		e.Entries = append(e.Entries, inspector.EnumEntry{Name: n, Value: int64(i)})
	}
	p.mu.Lock()
	p.enums[rt] = e
	p.mu.Unlock()
	return e
}

// describe builds and caches the description of struct type rt. Callers hold
// p.mu. The type is cached before its fields are built so self-referencing
// types terminate.
func (p *Provider) describe(rt reflect.Type) *inspector.Type {
	if t, ok := p.types[rt]; ok {
		return t
	}
	t := &inspector.Type{Name: rt.Name(), Size: rt.Size(), Native: rt}
	if t.Name == "" {
		t.Name = rt.String()
	}
	p.types[rt] = t
	p.goTypes[t] = rt
	p.byName[t.Name] = t
	p.order = append(p.order, t)
	for _, f := range p.pending[t.Name] {
		f.Class = t
	}
	delete(p.pending, t.Name)

	for i := 0; i < rt.NumField(); i++ {
		sf := rt.Field(i)
		if i == 0 && sf.Anonymous && sf.Offset == 0 && sf.Type.Kind() == reflect.Struct {
			t.Super = p.describe(sf.Type)
			continue
		}
		if !sf.IsExported() {
			continue
		}
		tag := parseTag(sf.Tag.Get(TagKey))
		f := &inspector.Field{
			Name:    sf.Name,
			Offset:  sf.Offset,
			Flags:   tag.flags,
			Tooltip: tag.tooltip,
			Owner:   t,
		}
		if tag.name != "" {
			f.Name = tag.name
		}
		ft := sf.Type
		if ft.Kind() == reflect.Array {
			f.ArrayDim = ft.Len()
			ft = ft.Elem()
		}
		p.fillField(f, ft, tag)
		if f.Kind == inspector.KindInvalid {
			p.logger.Debug("goreflect: unsupported field type", "type", t.Name, "field", sf.Name, "go_type", sf.Type)
		}
		t.Fields = append(t.Fields, f)
	}
	return t
}

// fillField sets the kind and the kind-specific links of f for values of
// Go type rt.
func (p *Provider) fillField(f *inspector.Field, rt reflect.Type, tag fieldTag) {
	f.Size = rt.Size()
	f.Native = rt
	if e, ok := p.enums[rt]; ok {
		f.Kind = inspector.KindEnum
		f.Enum = e
		return
	}
	switch rt {
	case typeOfName:
		f.Kind = inspector.KindName
		return
	case typeOfText:
		f.Kind = inspector.KindText
		return
	case typeOfSoftPath:
		f.Kind = inspector.KindSoftObjectRef
		p.linkClass(f, tag.class)
		return
	case typeOfSoftClassPath:
		f.Kind = inspector.KindSoftClassRef
		p.linkClass(f, tag.class)
		return
	case typeOfTypePtr:
		f.Kind = inspector.KindClassRef
		p.linkClass(f, tag.class)
		return
	}

	switch rt.Kind() {
	case reflect.Bool:
		f.Kind = inspector.KindBool
	case reflect.Int8:
		f.Kind = inspector.KindInt8
	case reflect.Int16:
		f.Kind = inspector.KindInt16
	case reflect.Int32:
		f.Kind = inspector.KindInt32
	case reflect.Int, reflect.Int64:
		f.Kind = inspector.KindInt64
	case reflect.Uint8:
		f.Kind = inspector.KindUint8
	case reflect.Uint16:
		f.Kind = inspector.KindUint16
	case reflect.Uint32:
		f.Kind = inspector.KindUint32
	case reflect.Uint, reflect.Uint64:
		f.Kind = inspector.KindUint64
	case reflect.Float32:
		f.Kind = inspector.KindFloat32
	case reflect.Float64:
		f.Kind = inspector.KindFloat64
	case reflect.String:
		f.Kind = inspector.KindString
	case reflect.Struct:
		f.Kind = inspector.KindStruct
		f.Struct = p.describe(rt)
	case reflect.Pointer:
		if rt.Elem().Kind() == reflect.Struct {
			f.Kind = inspector.KindObjectRef
			f.Class = p.describe(rt.Elem())
		}
	case reflect.Slice:
		f.Kind = inspector.KindArray
		f.Elem = p.elemField(f, f.Name, rt.Elem(), tag)
	case reflect.Map:
		if rt.Elem().Kind() == reflect.Struct && rt.Elem().Size() == 0 {
			f.Kind = inspector.KindSet
			f.Elem = p.elemField(f, f.Name, rt.Key(), tag)
			return
		}
		f.Kind = inspector.KindMap
		f.Key = p.elemField(f, f.Name+"_Key", rt.Key(), tag)
		f.Value = p.elemField(f, f.Name, rt.Elem(), tag)
	}
	if tag.enum != "" && f.Kind.IsInteger() {
		f.Enum = p.enumNamed(tag.enum)
		if f.Enum == nil {
			p.logger.Debug("goreflect: unknown enum", "field", f.Name, "enum", tag.enum)
		}
	}
}

// enumNamed finds a registered enum by name. Callers hold p.mu.
func (p *Provider) enumNamed(name string) *inspector.Enum {
	for _, e := range p.enums {
		if e.Name == name {
			return e
		}
	}
	return nil
}

// linkClass points f at the class called name, now or once that class is
// described.
func (p *Provider) linkClass(f *inspector.Field, name string) {
	if name == "" {
		return
	}
	if t, ok := p.byName[name]; ok {
		f.Class = t
		return
	}
	p.pending[name] = append(p.pending[name], f)
}

// elemField describes the element, key or value of a container field. It
// inherits the container's flags. Elements and values carry the container's
// name so a filter matching the container matches its rows too.
func (p *Provider) elemField(parent *inspector.Field, name string, rt reflect.Type, tag fieldTag) *inspector.Field {
	f := &inspector.Field{
		Name:    name,
		Flags:   parent.Flags,
		Tooltip: parent.Tooltip,
		Owner:   parent.Owner,
	}
	p.fillField(f, rt, tag)
	return f
}

func (p *Provider) Fields(t *inspector.Type) []*inspector.Field {
	if t == nil {
		return nil
	}
	return t.Fields
}

func (p *Provider) SuperType(t *inspector.Type) *inspector.Type {
	if t == nil {
		return nil
	}
	return t.Super
}

func (p *Provider) IsChildOf(t, base *inspector.Type) bool { return t.IsChildOf(base) }

func (p *Provider) DeclaringType(f *inspector.Field) *inspector.Type { return f.Owner }

// Types returns every described type in description order.
func (p *Provider) Types() []*inspector.Type {
	p.mu.RLock()
	defer p.mu.RUnlock()
	out := make([]*inspector.Type, len(p.order))
	copy(out, p.order)
	return out
}

func valueAt(f *inspector.Field, ptr unsafe.Pointer) reflect.Value {
	return reflect.NewAt(f.Native.(reflect.Type), ptr).Elem()
}

// Identical compares two field values. Names compare case-insensitively and
// object references by address.
func (p *Provider) Identical(f *inspector.Field, a, b unsafe.Pointer) bool {
	if a == b {
		return true
	}
	va, vb := valueAt(f, a), valueAt(f, b)
	switch f.Kind {
	case inspector.KindName:
		return strings.EqualFold(va.String(), vb.String())
	case inspector.KindObjectRef:
		return va.UnsafePointer() == vb.UnsafePointer()
	case inspector.KindClassRef:
		return va.Pointer() == vb.Pointer()
	}
	return reflect.DeepEqual(va.Interface(), vb.Interface())
}

// Value reads the field at ptr in its staging type.
func (p *Provider) Value(f *inspector.Field, ptr unsafe.Pointer) any {
	v := valueAt(f, ptr)
	switch {
	case f.Kind == inspector.KindBool:
		return v.Bool()
	case f.Kind == inspector.KindUint64:
		return v.Uint()
	case f.Kind == inspector.KindEnum, f.Kind.IsInteger():
		if v.CanInt() {
			return v.Int()
		}
		return int64(v.Uint())
	case f.Kind.IsFloat():
		return v.Float()
	case f.Kind == inspector.KindString, f.Kind == inspector.KindName, f.Kind == inspector.KindText:
		return v.String()
	case f.Kind == inspector.KindSoftObjectRef, f.Kind == inspector.KindSoftClassRef:
		return inspector.SoftPath(v.String())
	case f.Kind == inspector.KindClassRef:
		t, _ := v.Interface().(*inspector.Type)
		return t
	case f.Kind == inspector.KindObjectRef:
		return p.objectAt(v.UnsafePointer(), f.Class)
	}
	return v.Interface()
}

// SetValue writes a staged value into the field at ptr.
func (p *Provider) SetValue(f *inspector.Field, ptr unsafe.Pointer, val any) {
	v := valueAt(f, ptr)
	switch x := val.(type) {
	case bool:
		v.SetBool(x)
	case int64:
		if v.CanInt() {
			v.SetInt(x)
		} else if v.CanUint() {
			v.SetUint(uint64(x))
		}
	case uint64:
		v.SetUint(x)
	case float64:
		v.SetFloat(x)
	case string:
		v.SetString(x)
	case inspector.SoftPath:
		v.SetString(string(x))
	case *inspector.Type:
		v.Set(reflect.ValueOf(x))
	case inspector.Object:
		if x.IsNone() {
			v.SetZero()
			return
		}
		v.Set(reflect.NewAt(v.Type().Elem(), x.Ptr))
	default:
		rv := reflect.ValueOf(val)
		if rv.IsValid() && rv.Type().AssignableTo(v.Type()) {
			v.Set(rv)
			return
		}
		p.logger.Warn("goreflect: cannot store value", "field", f.Name, "value", fmt.Sprintf("%T", val))
	}
}
