// Package persist stores inspected values as JSON documents and reloads them
// when the file changes on disk.
//
// Documents mirror the field tree: struct fields become objects keyed by
// field name, arrays and fixed arrays become JSON arrays, class references
// hold the class name, asset references hold the asset path and instanced
// objects are nested objects carrying their class under "$class". Hidden
// fields, sets and maps are not stored.
package persist

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unsafe"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"

	"github.com/go-theft-auto/inspector"
)

// ClassKey holds the class name of an instanced object.
const ClassKey = "$class"

var ErrInvalidDocument = errors.New("persist: invalid JSON document")

// pathResolver is implemented by providers that can look up assets by path.
type pathResolver interface {
	ResolvePath(path inspector.SoftPath) (inspector.Object, bool)
}

// FieldPath joins field names into a document path, escaping the
// characters the path syntax reserves.
func FieldPath(names ...string) string {
	parts := make([]string, len(names))
	for i, n := range names {
		parts[i] = escape(n)
	}
	return strings.Join(parts, ".")
}

func escape(name string) string {
	if !strings.ContainsAny(name, `.*?\|#@!=<>%`) {
		return name
	}
	var b strings.Builder
	for _, r := range name {
		if strings.ContainsRune(`.*?\|#@!=<>%`, r) {
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}

func join(path, name string) string {
	if path == "" {
		return name
	}
	return path + "." + name
}

// stored reports whether f is written to documents.
func stored(f *inspector.Field) bool {
	return !f.HasAny(inspector.FlagHidden) && f.Kind != inspector.KindInvalid
}

// Snapshot writes the fields of the value of type t at ptr into a new
// document.
func Snapshot(p inspector.ReflectionProvider, t *inspector.Type, ptr unsafe.Pointer) ([]byte, error) {
	if t == nil || ptr == nil {
		return nil, fmt.Errorf("persist: snapshot: %w", inspector.ErrNullInstance)
	}
	w := &writer{p: p, doc: []byte("{}"), visiting: make(map[unsafe.Pointer]bool)}
	w.visiting[ptr] = true
	if err := w.structure("", t, ptr); err != nil {
		return nil, fmt.Errorf("persist: snapshot %s: %w", t.Name, err)
	}
	return w.doc, nil
}

type writer struct {
	p        inspector.ReflectionProvider
	doc      []byte
	visiting map[unsafe.Pointer]bool
}

func (w *writer) set(path string, v any) (err error) {
	w.doc, err = sjson.SetBytes(w.doc, path, v)
	return err
}

func (w *writer) setRaw(path, raw string) (err error) {
	w.doc, err = sjson.SetRawBytes(w.doc, path, []byte(raw))
	return err
}

func (w *writer) structure(path string, t *inspector.Type, base unsafe.Pointer) error {
	for c := t; c != nil; c = w.p.SuperType(c) {
		for _, f := range w.p.Fields(c) {
			if !stored(f) {
				continue
			}
			if err := w.field(join(path, escape(f.Name)), f, unsafe.Add(base, f.Offset)); err != nil {
				return err
			}
		}
	}
	return nil
}

func (w *writer) field(path string, f *inspector.Field, ptr unsafe.Pointer) error {
	if f.ArrayDim <= 1 {
		return w.value(path, f, ptr)
	}
	if err := w.setRaw(path, "[]"); err != nil {
		return err
	}
	for i := 0; i < f.ArrayDim; i++ {
		if err := w.value(join(path, strconv.Itoa(i)), f, unsafe.Add(ptr, uintptr(i)*f.Size)); err != nil {
			return err
		}
	}
	return nil
}

func (w *writer) value(path string, f *inspector.Field, ptr unsafe.Pointer) error {
	switch f.Kind {
	case inspector.KindStruct:
		if f.Struct == nil {
			return nil
		}
		if err := w.setRaw(path, "{}"); err != nil {
			return err
		}
		return w.structure(path, f.Struct, ptr)
	case inspector.KindArray:
		cp, ok := w.p.(inspector.ContainerProvider)
		if !ok || f.Elem == nil {
			return nil
		}
		if err := w.setRaw(path, "[]"); err != nil {
			return err
		}
		for i, n := 0, cp.Len(f, ptr); i < n; i++ {
			if err := w.value(join(path, strconv.Itoa(i)), f.Elem, cp.Index(f, ptr, i)); err != nil {
				return err
			}
		}
		return nil
	case inspector.KindSet, inspector.KindMap:
		return nil
	case inspector.KindObjectRef:
		return w.object(path, f, ptr)
	case inspector.KindClassRef:
		t, _ := w.p.Value(f, ptr).(*inspector.Type)
		if t == nil {
			return w.set(path, nil)
		}
		return w.set(path, t.Name)
	}
	switch v := w.p.Value(f, ptr).(type) {
	case bool, int64, uint64, float64, string:
		return w.set(path, v)
	case inspector.SoftPath:
		return w.set(path, string(v))
	}
	return nil
}

func (w *writer) object(path string, f *inspector.Field, ptr unsafe.Pointer) error {
	obj, _ := w.p.Value(f, ptr).(inspector.Object)
	switch {
	case obj.IsNone():
		return w.set(path, nil)
	case !f.Has(inspector.FlagInstanced):
		if obj.Path == "" {
			return w.set(path, nil)
		}
		return w.set(path, obj.Path)
	case w.visiting[obj.Ptr]:
		return nil
	}
	w.visiting[obj.Ptr] = true
	defer delete(w.visiting, obj.Ptr)
	if err := w.setRaw(path, "{}"); err != nil {
		return err
	}
	if err := w.set(join(path, escape(ClassKey)), obj.Type.Name); err != nil {
		return err
	}
	return w.structure(path, obj.Type, obj.Ptr)
}

// Restore reads doc into the value of type t at ptr. Paths missing from doc
// and values of the wrong JSON type leave the field unchanged.
func Restore(p inspector.ReflectionProvider, t *inspector.Type, ptr unsafe.Pointer, doc []byte) error {
	if t == nil || ptr == nil {
		return fmt.Errorf("persist: restore: %w", inspector.ErrNullInstance)
	}
	if !gjson.ValidBytes(doc) {
		return fmt.Errorf("persist: restore %s: %w", t.Name, ErrInvalidDocument)
	}
	root := gjson.ParseBytes(doc)
	if !root.IsObject() {
		return fmt.Errorf("persist: restore %s: %w", t.Name, ErrInvalidDocument)
	}
	r := &reader{p: p, types: make(map[string]*inspector.Type)}
	for _, typ := range p.Types() {
		r.types[typ.Name] = typ
	}
	r.structure(root, t, ptr)
	return nil
}

type reader struct {
	p     inspector.ReflectionProvider
	types map[string]*inspector.Type
}

func (r *reader) structure(res gjson.Result, t *inspector.Type, base unsafe.Pointer) {
	for c := t; c != nil; c = r.p.SuperType(c) {
		for _, f := range r.p.Fields(c) {
			if !stored(f) {
				continue
			}
			v := res.Get(escape(f.Name))
			if !v.Exists() {
				continue
			}
			r.field(v, f, unsafe.Add(base, f.Offset))
		}
	}
}

func (r *reader) field(res gjson.Result, f *inspector.Field, ptr unsafe.Pointer) {
	if f.ArrayDim <= 1 {
		r.value(res, f, ptr)
		return
	}
	for i, item := range res.Array() {
		if i >= f.ArrayDim {
			break
		}
		r.value(item, f, unsafe.Add(ptr, uintptr(i)*f.Size))
	}
}

func (r *reader) value(res gjson.Result, f *inspector.Field, ptr unsafe.Pointer) {
	p := r.p
	switch {
	case f.Kind == inspector.KindStruct:
		if f.Struct != nil && res.IsObject() {
			r.structure(res, f.Struct, ptr)
		}
	case f.Kind == inspector.KindArray:
		r.array(res, f, ptr)
	case f.Kind == inspector.KindObjectRef:
		r.object(res, f, ptr)
	case f.Kind == inspector.KindClassRef:
		switch res.Type {
		case gjson.Null:
			p.SetValue(f, ptr, (*inspector.Type)(nil))
		case gjson.String:
			if t, ok := r.types[res.String()]; ok && (f.Class == nil || p.IsChildOf(t, f.Class)) {
				p.SetValue(f, ptr, t)
			} else {
				persistLogger.Debug("persist: unknown class", "field", f.Name, "class", res.String())
			}
		}
	case f.Kind == inspector.KindBool:
		if res.Type == gjson.True || res.Type == gjson.False {
			p.SetValue(f, ptr, res.Bool())
		}
	case f.Kind == inspector.KindUint64:
		if res.Type == gjson.Number {
			p.SetValue(f, ptr, res.Uint())
		}
	case f.Kind == inspector.KindEnum, f.Kind.IsInteger():
		if res.Type == gjson.Number {
			p.SetValue(f, ptr, res.Int())
		}
	case f.Kind.IsFloat():
		if res.Type == gjson.Number {
			p.SetValue(f, ptr, res.Float())
		}
	case f.Kind == inspector.KindString, f.Kind == inspector.KindName, f.Kind == inspector.KindText:
		if res.Type == gjson.String {
			p.SetValue(f, ptr, res.String())
		}
	case f.Kind.IsA(inspector.KindSoftObjectRef):
		if res.Type == gjson.String {
			p.SetValue(f, ptr, inspector.SoftPath(res.String()))
		}
	}
}

// array resizes the array at ptr to the document's length and reads every
// element.
func (r *reader) array(res gjson.Result, f *inspector.Field, ptr unsafe.Pointer) {
	cp, ok := r.p.(inspector.ContainerProvider)
	if !ok || f.Elem == nil || !res.IsArray() {
		return
	}
	items := res.Array()
	for cp.Len(f, ptr) > len(items) {
		cp.Remove(f, ptr, cp.Len(f, ptr)-1)
	}
	for cp.Len(f, ptr) < len(items) {
		cp.Insert(f, ptr, cp.Len(f, ptr))
	}
	for i, item := range items {
		if elem := cp.Index(f, ptr, i); elem != nil {
			r.value(item, f.Elem, elem)
		}
	}
}

func (r *reader) object(res gjson.Result, f *inspector.Field, ptr unsafe.Pointer) {
	p := r.p
	if res.Type == gjson.Null {
		p.SetValue(f, ptr, inspector.Object{})
		return
	}
	if !f.Has(inspector.FlagInstanced) {
		resolver, ok := p.(pathResolver)
		if !ok || res.Type != gjson.String {
			return
		}
		if obj, found := resolver.ResolvePath(inspector.SoftPath(res.String())); found {
			p.SetValue(f, ptr, obj)
		} else {
			persistLogger.Debug("persist: unknown asset", "field", f.Name, "path", res.String())
		}
		return
	}
	if !res.IsObject() {
		return
	}
	class, ok := r.types[res.Get(escape(ClassKey)).String()]
	if !ok || (f.Class != nil && !p.IsChildOf(class, f.Class)) {
		persistLogger.Debug("persist: unknown class", "field", f.Name, "class", res.Get(escape(ClassKey)).String())
		return
	}
	cur, _ := p.Value(f, ptr).(inspector.Object)
	if cur.IsNone() || cur.Type != class {
		factory, ok := p.(inspector.ObjectFactory)
		if !ok {
			return
		}
		cur = factory.NewObject(class, inspector.Object{})
		if cur.IsNone() {
			return
		}
		p.SetValue(f, ptr, cur)
	}
	r.structure(res, cur.Type, cur.Ptr)
}

// SetField patches one value into doc. v is a staged value as passed to
// ReflectionProvider.SetValue; references are stored the way Snapshot
// stores them.
func SetField(doc []byte, path string, f *inspector.Field, v any) ([]byte, error) {
	switch x := v.(type) {
	case inspector.SoftPath:
		v = string(x)
	case *inspector.Type:
		if x == nil {
			v = nil
		} else {
			v = x.Name
		}
	case inspector.Object:
		switch {
		case x.IsNone():
			v = nil
		case f != nil && f.Has(inspector.FlagInstanced):
			return nil, fmt.Errorf("persist: set %s: instanced objects need a full snapshot", path)
		default:
			v = x.Path
		}
	}
	out, err := sjson.SetBytes(doc, path, v)
	if err != nil {
		return nil, fmt.Errorf("persist: set %s: %w", path, err)
	}
	return out, nil
}
