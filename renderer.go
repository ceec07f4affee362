package inspector

// Renderer is the immediate-mode GUI the inspector draws into.
//
// Labels follow the "visible##id" convention: text after "##" only feeds the
// widget ID. Input widgets return true when an edit is committed, which for
// text and numeric inputs means the widget was deactivated after an edit.
// Methods use only builtin types so GUI packages can satisfy the interface
// without importing this package.
type Renderer interface {
	PushID(id uint64)
	PopID()

	BeginTable(id string, columns int) bool
	EndTable()
	TableNextRow()
	TableSetColumnIndex(column int)

	// TreeNode draws an expandable row label and reports whether it is open.
	// An open node must be closed with TreePop. Leaf nodes never push.
	TreeNode(label string, leaf bool) bool
	TreePop()

	IsItemHovered() bool
	Tooltip(text string)

	Text(text string)
	TextDisabled(text string)
	SameLine()
	SmallButton(label string) bool

	Checkbox(label string, v *bool) bool
	InputInt(label string, v *int64) bool
	InputFloat(label string, v *float64, format string) bool
	InputFloatN(label string, v []float64, format string) bool
	InputIntN(label string, v []int64) bool
	InputText(label string, v *string) bool
	InputTextMultiline(label string, v *string) bool
	ColorEdit4(label string, rgba *[4]float32) bool

	BeginCombo(label, preview string) bool
	// ComboFilter draws a search line inside an open combo and reports
	// whether the text changed this frame.
	ComboFilter(v *string) bool
	Selectable(label string, selected bool) bool
	EndCombo()

	// BeginPopupMenu draws a small arrow button that toggles a popup menu.
	BeginPopupMenu(id string) bool
	MenuItem(label string) bool
	EndPopupMenu()

	BeginDisabled(disabled bool)
	EndDisabled()
}
