package inspector

// MultipleValues is shown in place of a value that differs across instances.
const MultipleValues = "Multiple Values"

// None is shown for empty references.
const None = "None"

// FieldCustomizer renders and edits one kind of field. vals holds the
// address of the field value in every edited instance; identical reports
// whether those values are all equal.
type FieldCustomizer interface {
	// IsVisible reports whether the field, or any field below it, passes
	// the current filter.
	IsVisible(ctx *RenderContext, f *Field, vals Instances, identical bool) bool
	// HasChildren reports whether the row expands into child rows.
	HasChildren(ctx *RenderContext, f *Field, vals Instances, identical bool) bool
	// ValueWidget draws the value cell and commits edits to every instance.
	ValueWidget(ctx *RenderContext, f *Field, vals Instances, identical bool)
	// ChildrenWidget draws the child rows of an expanded row.
	ChildrenWidget(ctx *RenderContext, f *Field, vals Instances, identical bool)
}

// StructCustomizer overrides the whole row of a field whose struct or class
// it is registered for.
type StructCustomizer interface {
	FieldCustomizer
	NameWidget(ctx *RenderContext, f *Field, vals Instances, identical bool) (open bool)
}

// ClassCustomizer replaces the default details of a class table.
type ClassCustomizer interface {
	ClassDetails(ctx *RenderContext, t *Type, objects []Object)
}

// Base provides the default FieldCustomizer behavior. Embed it and override
// what differs.
type Base struct{}

func (Base) IsVisible(ctx *RenderContext, f *Field, _ Instances, _ bool) bool {
	return ctx.Filter().Matches(f.Name)
}

func (Base) HasChildren(*RenderContext, *Field, Instances, bool) bool { return false }

func (Base) ChildrenWidget(*RenderContext, *Field, Instances, bool) {}

// BaseStruct is Base plus the default name cell for struct overrides: a
// non-expandable row.
type BaseStruct struct{ Base }

func (BaseStruct) NameWidget(ctx *RenderContext, f *Field, vals Instances, identical bool) bool {
	return ctx.NameWidget(f, f.Name, false)
}

// ValueLabel returns the widget label for f's value cell: "##name" when the
// value is shared, "*##name" when it diverges.
func ValueLabel(f *Field, identical bool) string {
	if identical {
		return "##" + f.Name
	}
	return "*##" + f.Name
}

func divergentMarker(identical bool) string {
	if identical {
		return ""
	}
	return " *"
}
