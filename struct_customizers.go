package inspector

import (
	"unsafe"

	"github.com/go-theft-auto/inspector/geom"
)

// FloatsCustomizer edits a struct made of N consecutive float64 fields, such
// as geom.Vector or geom.Rotator, as one multi-component input. Divergent
// instances show the first instance's components.
type FloatsCustomizer struct {
	BaseStruct
	N int
}

func (c FloatsCustomizer) ValueWidget(ctx *RenderContext, f *Field, vals Instances, identical bool) {
	v := make([]float64, c.N)
	copy(v, unsafe.Slice((*float64)(vals.First()), c.N))
	if !ctx.r.InputFloatN(ValueLabel(f, identical), v, FloatFormat) {
		return
	}
	ctx.Commit(f, vals, func(_ int, p unsafe.Pointer) {
		copy(unsafe.Slice((*float64)(p), c.N), v)
	})
}

// IntVectorCustomizer edits geom.IntVector.
type IntVectorCustomizer struct{ BaseStruct }

func (IntVectorCustomizer) ValueWidget(ctx *RenderContext, f *Field, vals Instances, identical bool) {
	iv := (*geom.IntVector)(vals.First())
	v := []int64{int64(iv.X), int64(iv.Y), int64(iv.Z)}
	if !ctx.r.InputIntN(ValueLabel(f, identical), v) {
		return
	}
	for i := range v {
		v[i] = clampInt(KindInt32, v[i])
	}
	ctx.Commit(f, vals, func(_ int, p unsafe.Pointer) {
		*(*geom.IntVector)(p) = geom.IntVector{X: int32(v[0]), Y: int32(v[1]), Z: int32(v[2])}
	})
}

// QuatCustomizer edits geom.Quat as pitch, yaw and roll in degrees.
type QuatCustomizer struct{ BaseStruct }

func (QuatCustomizer) ValueWidget(ctx *RenderContext, f *Field, vals Instances, identical bool) {
	rot := (*geom.Quat)(vals.First()).Rotator()
	v := []float64{rot.Pitch, rot.Yaw, rot.Roll}
	if !ctx.r.InputFloatN(ValueLabel(f, identical), v, FloatFormat) {
		return
	}
	q := geom.Rotator{Pitch: v[0], Yaw: v[1], Roll: v[2]}.Quaternion()
	ctx.Commit(f, vals, func(_ int, p unsafe.Pointer) {
		*(*geom.Quat)(p) = q
	})
}

// LinearColorCustomizer edits geom.LinearColor with a color editor.
type LinearColorCustomizer struct{ BaseStruct }

func (LinearColorCustomizer) ValueWidget(ctx *RenderContext, f *Field, vals Instances, identical bool) {
	rgba := (*geom.LinearColor)(vals.First()).RGBA()
	if !ctx.r.ColorEdit4(ValueLabel(f, identical), &rgba) {
		return
	}
	c := geom.LinearColorFromRGBA(rgba)
	ctx.Commit(f, vals, func(_ int, p unsafe.Pointer) {
		*(*geom.LinearColor)(p) = c
	})
}

// ColorCustomizer edits an sRGB geom.Color in linear space.
type ColorCustomizer struct{ BaseStruct }

func (ColorCustomizer) ValueWidget(ctx *RenderContext, f *Field, vals Instances, identical bool) {
	rgba := (*geom.Color)(vals.First()).Linear().RGBA()
	if !ctx.r.ColorEdit4(ValueLabel(f, identical), &rgba) {
		return
	}
	c := geom.LinearColorFromRGBA(rgba).Color()
	ctx.Commit(f, vals, func(_ int, p unsafe.Pointer) {
		*(*geom.Color)(p) = c
	})
}
