package goreflect

import (
	"fmt"
	"reflect"
	"sort"
	"unsafe"

	"github.com/go-theft-auto/inspector"
)

func (p *Provider) Len(f *inspector.Field, ptr unsafe.Pointer) int {
	return valueAt(f, ptr).Len()
}

func (p *Provider) Index(f *inspector.Field, ptr unsafe.Pointer, i int) unsafe.Pointer {
	v := valueAt(f, ptr)
	if f.Kind != inspector.KindArray || i < 0 || i >= v.Len() {
		return nil
	}
	return v.Index(i).Addr().UnsafePointer()
}

// Insert places a zero element at i, shifting the rest up.
func (p *Provider) Insert(f *inspector.Field, ptr unsafe.Pointer, i int) {
	v := valueAt(f, ptr)
	n := v.Len()
	if i < 0 || i > n {
		return
	}
	out := reflect.MakeSlice(v.Type(), n+1, n+1)
	reflect.Copy(out.Slice(0, i), v.Slice(0, i))
	reflect.Copy(out.Slice(i+1, n+1), v.Slice(i, n))
	v.Set(out)
}

func (p *Provider) Remove(f *inspector.Field, ptr unsafe.Pointer, i int) {
	v := valueAt(f, ptr)
	n := v.Len()
	if i < 0 || i >= n {
		return
	}
	out := reflect.MakeSlice(v.Type(), n-1, n-1)
	reflect.Copy(out.Slice(0, i), v.Slice(0, i))
	reflect.Copy(out.Slice(i, n-1), v.Slice(i+1, n))
	v.Set(out)
}

func (p *Provider) Clear(f *inspector.Field, ptr unsafe.Pointer) {
	v := valueAt(f, ptr)
	switch v.Kind() {
	case reflect.Slice:
		v.Set(reflect.MakeSlice(v.Type(), 0, 0))
	case reflect.Map:
		v.Clear()
	}
}

// Entries copies the set elements or map pairs at ptr, sorted by key.
func (p *Provider) Entries(f *inspector.Field, ptr unsafe.Pointer) []inspector.Entry {
	v := valueAt(f, ptr)
	if v.Kind() != reflect.Map {
		return nil
	}
	keys := v.MapKeys()
	sort.Slice(keys, func(i, j int) bool { return lessValue(keys[i], keys[j]) })
	out := make([]inspector.Entry, len(keys))
	for i, k := range keys {
		kc := reflect.New(k.Type())
		kc.Elem().Set(k)
		e := inspector.Entry{Key: kc.UnsafePointer(), Index: i, Orig: k}
		if f.Kind == inspector.KindMap {
			vc := reflect.New(v.Type().Elem())
			vc.Elem().Set(v.MapIndex(k))
			e.Value = vc.UnsafePointer()
		}
		out[i] = e
	}
	return out
}

// StoreEntry writes an edited copy back. An edited set element replaces
// the original one, unless the edited key is already present: the write is
// then dropped so two entries never merge.
func (p *Provider) StoreEntry(f *inspector.Field, ptr unsafe.Pointer, e inspector.Entry) {
	v := valueAt(f, ptr)
	if v.Kind() != reflect.Map || e.Key == nil {
		return
	}
	if v.IsNil() {
		v.Set(reflect.MakeMap(v.Type()))
	}
	key := reflect.NewAt(v.Type().Key(), e.Key).Elem()
	if orig, ok := e.Orig.(reflect.Value); ok && orig.IsValid() && !reflect.DeepEqual(orig.Interface(), key.Interface()) {
		if v.MapIndex(key).IsValid() {
			return
		}
		v.SetMapIndex(orig, reflect.Value{})
	}
	if f.Kind == inspector.KindSet {
		v.SetMapIndex(key, reflect.Zero(v.Type().Elem()))
		return
	}
	if e.Value != nil {
		v.SetMapIndex(key, reflect.NewAt(v.Type().Elem(), e.Value).Elem())
	}
}

// AddDefault adds the zero element or zero pair. A map that already holds
// the zero key is left unchanged.
func (p *Provider) AddDefault(f *inspector.Field, ptr unsafe.Pointer) bool {
	v := valueAt(f, ptr)
	if v.Kind() != reflect.Map {
		return false
	}
	if v.IsNil() {
		v.Set(reflect.MakeMap(v.Type()))
	}
	zero := reflect.Zero(v.Type().Key())
	if v.MapIndex(zero).IsValid() {
		return false
	}
	v.SetMapIndex(zero, reflect.Zero(v.Type().Elem()))
	return true
}

func (p *Provider) Delete(f *inspector.Field, ptr unsafe.Pointer, e inspector.Entry) {
	v := valueAt(f, ptr)
	if v.Kind() != reflect.Map || v.IsNil() {
		return
	}
	if orig, ok := e.Orig.(reflect.Value); ok && orig.IsValid() {
		v.SetMapIndex(orig, reflect.Value{})
	}
}

// lessValue orders map keys of the same type.
func lessValue(a, b reflect.Value) bool {
	switch a.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return a.Int() < b.Int()
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return a.Uint() < b.Uint()
	case reflect.Float32, reflect.Float64:
		return a.Float() < b.Float()
	case reflect.String:
		return a.String() < b.String()
	case reflect.Bool:
		return !a.Bool() && b.Bool()
	}
	return fmt.Sprint(a.Interface()) < fmt.Sprint(b.Interface())
}
