package goreflect

import (
	"github.com/go-theft-auto/inspector"
	"github.com/go-theft-auto/inspector/geom"
)

// DefaultRegistry returns inspector.DefaultRegistry plus the struct
// customizers for the geom value types.
func DefaultRegistry(p *Provider) *inspector.Registry {
	r := inspector.DefaultRegistry()
	RegisterGeom(p, r)
	return r
}

// RegisterGeom adds the geom struct customizers to r.
func RegisterGeom(p *Provider, r *inspector.Registry) {
	r.RegisterStructCustomizer(p.TypeOf(geom.Vector{}), inspector.FloatsCustomizer{N: 3})
	r.RegisterStructCustomizer(p.TypeOf(geom.Vector2D{}), inspector.FloatsCustomizer{N: 2})
	r.RegisterStructCustomizer(p.TypeOf(geom.Vector4{}), inspector.FloatsCustomizer{N: 4})
	r.RegisterStructCustomizer(p.TypeOf(geom.Rotator{}), inspector.FloatsCustomizer{N: 3})
	r.RegisterStructCustomizer(p.TypeOf(geom.IntVector{}), inspector.IntVectorCustomizer{})
	r.RegisterStructCustomizer(p.TypeOf(geom.Quat{}), inspector.QuatCustomizer{})
	r.RegisterStructCustomizer(p.TypeOf(geom.LinearColor{}), inspector.LinearColorCustomizer{})
	r.RegisterStructCustomizer(p.TypeOf(geom.Color{}), inspector.ColorCustomizer{})
}
