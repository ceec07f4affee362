// Package inspectortest provides a scripted inspector.Renderer for tests.
//
// The renderer records every widget call as an Event and answers input
// widgets from one-shot scripts keyed by widget label, so a test can draw a
// table, commit an edit, and draw again to observe the result.
package inspectortest

import (
	"fmt"
	"strings"

	"github.com/go-theft-auto/inspector"
)

var _ inspector.Renderer = (*Renderer)(nil)

// Event is one recorded widget call.
type Event struct {
	Widget   string
	Label    string
	Value    string
	Disabled bool
	Column   int
	Depth    int
}

// Renderer implements inspector.Renderer without drawing anything.
type Renderer struct {
	Events []Event

	// OpenAll makes every non-leaf tree node report open, unless Closed
	// lists its label.
	OpenAll bool
	Closed  map[string]bool

	commits  map[string]any
	clicks   map[string]bool
	combos   map[string]string
	filters  map[string]string
	menus    map[string]string
	tooltips []string

	ids      []uint64
	tree     int
	column   int
	disabled int
	combo    string
	menuRow  string
	lastRow  string
	hovered  bool
}

// New returns a renderer that opens every tree node.
func New() *Renderer {
	return &Renderer{
		OpenAll: true,
		Closed:  make(map[string]bool),
		commits: make(map[string]any),
		clicks:  make(map[string]bool),
		combos:  make(map[string]string),
		filters: make(map[string]string),
		menus:   make(map[string]string),
	}
}

// Commit scripts the next input widget labeled label to commit v. The value
// type must match the widget: bool, int64, float64, string, []float64,
// []int64 or [4]float32.
func (r *Renderer) Commit(label string, v any) { r.commits[label] = v }

// Click scripts the button labeled button on the row named row to report
// a click.
func (r *Renderer) Click(row, button string) { r.clicks[row+"/"+button] = true }

// Select scripts the combo labeled label to open and pick item.
func (r *Renderer) Select(label, item string) { r.combos[label] = item }

// OpenCombo scripts the combo labeled label to open for one frame without
// picking. A non-empty filter is typed into the search line.
func (r *Renderer) OpenCombo(label, filter string) {
	r.combos[label] = ""
	if filter != "" {
		r.filters[label] = filter
	}
}

// Menu scripts the element menu of the row named row to choose item.
func (r *Renderer) Menu(row, item string) { r.menus[row] = item }

// Hover makes every item report hovered, which shows tooltips.
func (r *Renderer) Hover(v bool) { r.hovered = v }

// Reset drops the recorded events and the table cursor, keeping unused
// scripts.
func (r *Renderer) Reset() {
	r.Events = nil
	r.tooltips = nil
	r.column = 0
}

// Find returns the first event with label.
func (r *Renderer) Find(label string) (Event, bool) {
	for _, e := range r.Events {
		if e.Label == label {
			return e, true
		}
	}
	return Event{}, false
}

// Rows returns the labels of the tree nodes drawn, in order.
func (r *Renderer) Rows() []string {
	var out []string
	for _, e := range r.Events {
		if e.Widget == "TreeNode" {
			out = append(out, e.Label)
		}
	}
	return out
}

// Widgets returns the events of one widget kind.
func (r *Renderer) Widgets(widget string) []Event {
	var out []Event
	for _, e := range r.Events {
		if e.Widget == widget {
			out = append(out, e)
		}
	}
	return out
}

// Tooltips returns the tooltips shown since the last Reset.
func (r *Renderer) Tooltips() []string { return r.tooltips }

// Pending reports scripts that were never consumed.
func (r *Renderer) Pending() []string {
	var out []string
	for k := range r.commits {
		out = append(out, "commit "+k)
	}
	for k := range r.clicks {
		out = append(out, "click "+k)
	}
	for k := range r.menus {
		out = append(out, "menu "+k)
	}
	return out
}

func (r *Renderer) record(widget, label, value string) {
	r.Events = append(r.Events, Event{
		Widget:   widget,
		Label:    label,
		Value:    value,
		Disabled: r.disabled > 0,
		Column:   r.column,
		Depth:    r.tree,
	})
}

func (r *Renderer) take(label string) (any, bool) {
	if r.disabled > 0 {
		return nil, false
	}
	v, ok := r.commits[label]
	if ok {
		delete(r.commits, label)
	}
	return v, ok
}

func (r *Renderer) PushID(id uint64) { r.ids = append(r.ids, id) }

func (r *Renderer) PopID() {
	if len(r.ids) == 0 {
		panic("inspectortest: PopID without PushID")
	}
	r.ids = r.ids[:len(r.ids)-1]
}

// IDDepth is the number of pushed IDs; zero after a balanced draw.
func (r *Renderer) IDDepth() int { return len(r.ids) }

// TreeDepth is the number of open tree nodes; zero after a balanced draw.
func (r *Renderer) TreeDepth() int { return r.tree }

// DisabledDepth is the disable nesting; zero after a balanced draw.
func (r *Renderer) DisabledDepth() int { return r.disabled }

// CurrentID returns the innermost pushed ID.
func (r *Renderer) CurrentID() uint64 {
	if len(r.ids) == 0 {
		return 0
	}
	return r.ids[len(r.ids)-1]
}

func (r *Renderer) BeginTable(id string, columns int) bool {
	r.column = 0
	r.record("BeginTable", id, fmt.Sprint(columns))
	return true
}

func (r *Renderer) EndTable() { r.record("EndTable", "", "") }

func (r *Renderer) TableNextRow() { r.column = 0 }

func (r *Renderer) TableSetColumnIndex(column int) { r.column = column }

func (r *Renderer) TreeNode(label string, leaf bool) bool {
	r.record("TreeNode", label, fmt.Sprint(leaf))
	r.lastRow = label
	if leaf || !r.OpenAll || r.Closed[label] {
		return false
	}
	r.tree++
	return true
}

func (r *Renderer) TreePop() {
	if r.tree == 0 {
		panic("inspectortest: TreePop without open node")
	}
	r.tree--
}

func (r *Renderer) IsItemHovered() bool { return r.hovered }

func (r *Renderer) Tooltip(text string) { r.tooltips = append(r.tooltips, text) }

func (r *Renderer) Text(text string) { r.record("Text", text, text) }

func (r *Renderer) TextDisabled(text string) { r.record("TextDisabled", text, text) }

func (r *Renderer) SameLine() {}

func (r *Renderer) SmallButton(label string) bool {
	r.record("SmallButton", label, "")
	key := r.lastRow + "/" + label
	if r.disabled == 0 && r.clicks[key] {
		delete(r.clicks, key)
		return true
	}
	return false
}

func (r *Renderer) Checkbox(label string, v *bool) bool {
	r.record("Checkbox", label, fmt.Sprint(*v))
	if x, ok := r.take(label); ok {
		*v = x.(bool)
		return true
	}
	return false
}

func (r *Renderer) InputInt(label string, v *int64) bool {
	r.record("InputInt", label, fmt.Sprint(*v))
	if x, ok := r.take(label); ok {
		*v = x.(int64)
		return true
	}
	return false
}

func (r *Renderer) InputFloat(label string, v *float64, format string) bool {
	r.record("InputFloat", label, fmt.Sprintf(format, *v))
	if x, ok := r.take(label); ok {
		*v = x.(float64)
		return true
	}
	return false
}

func (r *Renderer) InputFloatN(label string, v []float64, format string) bool {
	parts := make([]string, len(v))
	for i, x := range v {
		parts[i] = fmt.Sprintf(format, x)
	}
	r.record("InputFloatN", label, strings.Join(parts, " "))
	if x, ok := r.take(label); ok {
		copy(v, x.([]float64))
		return true
	}
	return false
}

func (r *Renderer) InputIntN(label string, v []int64) bool {
	r.record("InputIntN", label, fmt.Sprint(v))
	if x, ok := r.take(label); ok {
		copy(v, x.([]int64))
		return true
	}
	return false
}

func (r *Renderer) InputText(label string, v *string) bool {
	r.record("InputText", label, *v)
	if x, ok := r.take(label); ok {
		*v = x.(string)
		return true
	}
	return false
}

func (r *Renderer) InputTextMultiline(label string, v *string) bool {
	r.record("InputTextMultiline", label, *v)
	if x, ok := r.take(label); ok {
		*v = x.(string)
		return true
	}
	return false
}

func (r *Renderer) ColorEdit4(label string, rgba *[4]float32) bool {
	r.record("ColorEdit4", label, fmt.Sprint(*rgba))
	if x, ok := r.take(label); ok {
		*rgba = x.([4]float32)
		return true
	}
	return false
}

func (r *Renderer) BeginCombo(label, preview string) bool {
	r.record("BeginCombo", label, preview)
	if r.disabled > 0 {
		return false
	}
	if _, ok := r.combos[label]; !ok {
		return false
	}
	r.combo = label
	return true
}

func (r *Renderer) ComboFilter(v *string) bool {
	text, ok := r.filters[r.combo]
	if !ok {
		return false
	}
	delete(r.filters, r.combo)
	*v = text
	return true
}

func (r *Renderer) Selectable(label string, selected bool) bool {
	r.record("Selectable", label, fmt.Sprint(selected))
	if item, ok := r.combos[r.combo]; ok && item != "" && item == label {
		delete(r.combos, r.combo)
		return true
	}
	return false
}

func (r *Renderer) EndCombo() {
	if item := r.combos[r.combo]; item == "" {
		delete(r.combos, r.combo)
	}
	r.combo = ""
}

func (r *Renderer) BeginPopupMenu(id string) bool {
	r.record("BeginPopupMenu", id, r.lastRow)
	if r.disabled > 0 {
		return false
	}
	if _, ok := r.menus[r.lastRow]; !ok {
		return false
	}
	r.menuRow = r.lastRow
	return true
}

func (r *Renderer) MenuItem(label string) bool {
	r.record("MenuItem", label, "")
	if r.menus[r.menuRow] == label {
		delete(r.menus, r.menuRow)
		return true
	}
	return false
}

func (r *Renderer) EndPopupMenu() { r.menuRow = "" }

func (r *Renderer) BeginDisabled(disabled bool) {
	if disabled {
		r.disabled++
	}
	r.record("BeginDisabled", "", fmt.Sprint(disabled))
}

func (r *Renderer) EndDisabled() {
	if r.disabled == 0 {
		panic("inspectortest: EndDisabled without BeginDisabled")
	}
	r.disabled--
	r.record("EndDisabled", "", "")
}
