package goreflect

import (
	"fmt"
	"reflect"
	"sort"
	"unsafe"

	"github.com/go-theft-auto/inspector"
)

// Object registers ptr, a pointer to a struct, as a live object and returns
// its inspector handle. The dynamic type of ptr becomes the object's class.
func (p *Provider) Object(ptr any, name string) inspector.Object {
	rv := reflect.ValueOf(ptr)
	if !rv.IsValid() || rv.Kind() != reflect.Pointer || rv.IsNil() {
		return inspector.Object{}
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	t := p.describe(rv.Type().Elem())
	addr := rv.UnsafePointer()
	info, ok := p.objects[addr]
	if !ok {
		info = &objectInfo{typ: t, name: name, path: name}
		p.objects[addr] = info
	} else if name != "" {
		info.name, info.path = name, name
	}
	return inspector.Object{Type: info.typ, Ptr: addr, Name: info.name, Path: info.path}
}

// Objects registers every pointer and returns their handles.
func (p *Provider) Objects(ptrs ...any) []inspector.Object {
	out := make([]inspector.Object, len(ptrs))
	for i, ptr := range ptrs {
		out[i] = p.Object(ptr, "")
	}
	return out
}

// Forget drops a registered object, for example after it was destroyed.
func (p *Provider) Forget(ptr any) {
	rv := reflect.ValueOf(ptr)
	if !rv.IsValid() || rv.Kind() != reflect.Pointer {
		return
	}
	p.mu.Lock()
	delete(p.objects, rv.UnsafePointer())
	p.mu.Unlock()
}

// objectAt returns the handle for addr. Unregistered addresses take the
// static class of the field.
func (p *Provider) objectAt(addr unsafe.Pointer, class *inspector.Type) inspector.Object {
	if addr == nil {
		return inspector.Object{}
	}
	p.mu.RLock()
	info, ok := p.objects[addr]
	p.mu.RUnlock()
	if !ok {
		return inspector.Object{Type: class, Ptr: addr}
	}
	return inspector.Object{Type: info.typ, Ptr: addr, Name: info.name, Path: info.path}
}

// NewObject allocates a zero value of t owned by outer. The object is named
// after its class with a per-class serial number and registered.
func (p *Provider) NewObject(t *inspector.Type, outer inspector.Object) inspector.Object {
	p.mu.Lock()
	defer p.mu.Unlock()
	rt, ok := p.goTypes[t]
	if !ok {
		return inspector.Object{}
	}
	rv := reflect.New(rt)
	name := fmt.Sprintf("%s_%d", t.Name, p.serial[t])
	p.serial[t]++
	path := name
	if !outer.IsNone() && outer.Path != "" {
		path = outer.Path + "." + name
	}
	addr := rv.UnsafePointer()
	p.objects[addr] = &objectInfo{typ: t, name: name, path: path}
	return inspector.Object{Type: t, Ptr: addr, Name: name, Path: path}
}

// AddAsset registers ptr as a pickable asset under name. The asset path is
// the name.
func (p *Provider) AddAsset(name string, ptr any) inspector.Asset {
	obj := p.Object(ptr, name)
	a := inspector.Asset{Name: name, Path: inspector.SoftPath(name), Object: obj}
	p.mu.Lock()
	p.assets = append(p.assets, a)
	p.mu.Unlock()
	return a
}

// Assets lists the assets whose class derives from class, sorted by name.
func (p *Provider) Assets(class *inspector.Type) []inspector.Asset {
	p.mu.RLock()
	defer p.mu.RUnlock()
	var out []inspector.Asset
	for _, a := range p.assets {
		if class == nil || a.Object.Type.IsChildOf(class) {
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// ResolvePath returns the asset registered under path.
func (p *Provider) ResolvePath(path inspector.SoftPath) (inspector.Object, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	for _, a := range p.assets {
		if a.Path == path {
			return a.Object, true
		}
	}
	return inspector.Object{}, false
}

// Instances returns the addresses of ptrs, each a pointer to a struct, for
// use with Engine.DrawTable.
func Instances(ptrs ...any) []unsafe.Pointer {
	out := make([]unsafe.Pointer, len(ptrs))
	for i, ptr := range ptrs {
		rv := reflect.ValueOf(ptr)
		if rv.IsValid() && rv.Kind() == reflect.Pointer {
			out[i] = rv.UnsafePointer()
		}
	}
	return out
}

var (
	_ inspector.ReflectionProvider = (*Provider)(nil)
	_ inspector.ContainerProvider  = (*Provider)(nil)
	_ inspector.ObjectFactory      = (*Provider)(nil)
	_ inspector.AssetIndex         = (*Provider)(nil)
)
