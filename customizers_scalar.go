package inspector

import (
	"math"
	"strconv"
	"strings"
)

// Staging conversions. Providers may hand back any of the staging types; a
// mismatch reads as the zero value.

func asBool(v any) bool {
	b, _ := v.(bool)
	return b
}

func asInt64(v any) int64 {
	switch n := v.(type) {
	case int64:
		return n
	case int:
		return int64(n)
	case uint64:
		return int64(n)
	case float64:
		return int64(n)
	}
	return 0
}

func asUint64(v any) uint64 {
	switch n := v.(type) {
	case uint64:
		return n
	case int64:
		return uint64(max(n, 0))
	}
	return 0
}

func asFloat64(v any) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case float32:
		return float64(n)
	case int64:
		return float64(n)
	}
	return 0
}

func asString(v any) string {
	switch s := v.(type) {
	case string:
		return s
	case Name:
		return string(s)
	case Text:
		return string(s)
	case SoftPath:
		return string(s)
	}
	return ""
}

// clampInt limits v to the range of an integer kind.
func clampInt(k Kind, v int64) int64 {
	var lo, hi int64
	switch k {
	case KindInt8:
		lo, hi = math.MinInt8, math.MaxInt8
	case KindInt16:
		lo, hi = math.MinInt16, math.MaxInt16
	case KindInt32:
		lo, hi = math.MinInt32, math.MaxInt32
	case KindUint8:
		lo, hi = 0, math.MaxUint8
	case KindUint16:
		lo, hi = 0, math.MaxUint16
	case KindUint32:
		lo, hi = 0, math.MaxUint32
	case KindUint64:
		lo, hi = 0, math.MaxInt64
	default:
		return v
	}
	return min(max(v, lo), hi)
}

type BoolCustomizer struct{ Base }

func (BoolCustomizer) ValueWidget(ctx *RenderContext, f *Field, vals Instances, identical bool) {
	var v bool
	if identical {
		v = asBool(ctx.Provider().Value(f, vals.First()))
	}
	if ctx.r.Checkbox(ValueLabel(f, identical), &v) {
		ctx.SetAll(f, vals, v)
	}
}

// NumericCustomizer edits integer and float fields. Integer fields carrying
// an enum are drawn as a combo instead.
type NumericCustomizer struct{ Base }

// FloatFormat is the display format of float fields.
const FloatFormat = "%.3f"

func (NumericCustomizer) ValueWidget(ctx *RenderContext, f *Field, vals Instances, identical bool) {
	if f.Enum != nil && f.Kind.IsInteger() {
		drawEnumCombo(ctx, f, vals, identical)
		return
	}
	if !identical {
		drawDivergentNumber(ctx, f, vals)
		return
	}
	p := ctx.Provider()
	label := ValueLabel(f, identical)
	if f.Kind.IsFloat() {
		v := asFloat64(p.Value(f, vals.First()))
		if ctx.r.InputFloat(label, &v, FloatFormat) {
			ctx.SetAll(f, vals, v)
		}
		return
	}
	if f.Kind == KindUint64 {
		drawUint64(ctx, f, vals, label)
		return
	}
	v := asInt64(p.Value(f, vals.First()))
	if ctx.r.InputInt(label, &v) {
		ctx.SetAll(f, vals, clampInt(f.Kind, v))
	}
}

// drawUint64 edits the full uint64 range as text, since InputInt stages
// through int64.
func drawUint64(ctx *RenderContext, f *Field, vals Instances, label string) {
	text := strconv.FormatUint(asUint64(ctx.Provider().Value(f, vals.First())), 10)
	if !ctx.r.InputText(label, &text) {
		return
	}
	v, err := strconv.ParseUint(strings.TrimSpace(text), 10, 64)
	if err != nil {
		return
	}
	ctx.SetAll(f, vals, v)
}

// drawDivergentNumber shows a text input holding MultipleValues. Typing a
// number and committing writes it to every instance.
func drawDivergentNumber(ctx *RenderContext, f *Field, vals Instances) {
	text := MultipleValues
	if !ctx.r.InputText(ValueLabel(f, false), &text) {
		return
	}
	text = strings.TrimSpace(text)
	if f.Kind.IsFloat() {
		v, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return
		}
		ctx.SetAll(f, vals, v)
		return
	}
	if f.Kind == KindUint64 {
		v, err := strconv.ParseUint(text, 10, 64)
		if err != nil {
			return
		}
		ctx.SetAll(f, vals, v)
		return
	}
	v, err := strconv.ParseInt(text, 10, 64)
	if err != nil {
		return
	}
	ctx.SetAll(f, vals, clampInt(f.Kind, v))
}

type StringCustomizer struct{ Base }

func (StringCustomizer) ValueWidget(ctx *RenderContext, f *Field, vals Instances, identical bool) {
	drawTextInput(ctx, f, vals, identical, false, func(s string) any { return s })
}

// NameCustomizer edits Name fields. Surrounding whitespace is dropped.
type NameCustomizer struct{ Base }

func (NameCustomizer) ValueWidget(ctx *RenderContext, f *Field, vals Instances, identical bool) {
	drawTextInput(ctx, f, vals, identical, false, func(s string) any { return strings.TrimSpace(s) })
}

// TextCustomizer edits display text in a multi-line input.
type TextCustomizer struct{ Base }

func (TextCustomizer) ValueWidget(ctx *RenderContext, f *Field, vals Instances, identical bool) {
	drawTextInput(ctx, f, vals, identical, true, func(s string) any { return s })
}

func drawTextInput(ctx *RenderContext, f *Field, vals Instances, identical, multiline bool, stage func(string) any) {
	text := MultipleValues
	if identical {
		text = asString(ctx.Provider().Value(f, vals.First()))
	}
	label := ValueLabel(f, identical)
	var committed bool
	if multiline {
		committed = ctx.r.InputTextMultiline(label, &text)
	} else {
		committed = ctx.r.InputText(label, &text)
	}
	if !committed || (!identical && text == MultipleValues) {
		return
	}
	ctx.SetAll(f, vals, stage(text))
}

type EnumCustomizer struct{ Base }

func (EnumCustomizer) ValueWidget(ctx *RenderContext, f *Field, vals Instances, identical bool) {
	drawEnumCombo(ctx, f, vals, identical)
}

func drawEnumCombo(ctx *RenderContext, f *Field, vals Instances, identical bool) {
	if f.Enum == nil {
		ctx.r.TextDisabled(f.Kind.String())
		return
	}
	var current int64
	preview := MultipleValues
	if identical {
		current = asInt64(ctx.Provider().Value(f, vals.First()))
		preview = f.Enum.NameOf(current)
		if preview == "" {
			preview = strconv.FormatInt(current, 10)
		}
	}
	r := ctx.r
	if !r.BeginCombo(ValueLabel(f, identical), preview) {
		return
	}
	defer r.EndCombo()
	for _, e := range f.Enum.Values() {
		if r.Selectable(shortEnumName(e.Name), identical && e.Value == current) {
			ctx.SetAll(f, vals, e.Value)
			return
		}
	}
}
