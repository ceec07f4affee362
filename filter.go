package inspector

import (
	"strings"
	"unsafe"

	"golang.org/x/text/cases"
)

// Filter is a case-insensitive substring filter over field names.
// The zero Filter matches everything.
type Filter struct {
	Text string

	caser      cases.Caser
	ready      bool
	foldedFrom string
	folded     string
}

// NewFilter returns a filter for text.
func NewFilter(text string) *Filter {
	return &Filter{Text: text}
}

// Enabled reports whether the filter restricts anything.
func (f *Filter) Enabled() bool {
	return f != nil && strings.TrimSpace(f.Text) != ""
}

// Matches reports whether name contains the filter text, ignoring case.
func (f *Filter) Matches(name string) bool {
	if !f.Enabled() {
		return true
	}
	if !f.ready {
		f.caser = cases.Fold()
		f.ready = true
	}
	if f.foldedFrom != f.Text {
		f.folded = f.caser.String(strings.TrimSpace(f.Text))
		f.foldedFrom = f.Text
	}
	return strings.Contains(f.caser.String(name), f.folded)
}

// visibilityKey identifies one memoized visibility decision.
type visibilityKey struct {
	addr  unsafe.Pointer
	field *Field
}

// visibilityCache memoizes subtree visibility for one DrawTable call.
type visibilityCache map[visibilityKey]bool

// IsVisible reports whether f, or any field below it, matches the active
// filter. Results are cached per (first instance address, field) for the
// lifetime of the current table.
func (ctx *RenderContext) IsVisible(f *Field, vals Instances, identical bool, fc FieldCustomizer, sc StructCustomizer) bool {
	if !ctx.filter.Enabled() {
		return true
	}
	key := visibilityKey{addr: vals.First(), field: f}
	if v, ok := ctx.visibility[key]; ok {
		return v
	}
	var visible bool
	if sc != nil {
		visible = sc.IsVisible(ctx, f, vals, identical)
	} else {
		visible = fc.IsVisible(ctx, f, vals, identical)
	}
	ctx.visibility[key] = visible
	return visible
}

// Filter returns the filter of the current table, possibly nil.
func (ctx *RenderContext) Filter() *Filter { return ctx.filter }
