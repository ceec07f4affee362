package inspector

import (
	"sort"
	"strings"
)

// ClearLabel is the picker entry that resets a reference to None.
const ClearLabel = "Clear"

type pickerCache interface {
	Get(key pickerKey) ([]pickItem, bool)
	Set(key pickerKey, items []pickItem)
}

// pickerKey identifies one filtered candidate list.
type pickerKey struct {
	kind         Kind
	class        *Type
	filter       string
	hideAbstract bool
}

type pickItem struct {
	Name  string
	Type  *Type
	Asset Asset
}

// pick draws a filterable combo over the candidates produced by list. It
// returns the chosen item; a zero item with ok set means Clear was chosen.
func (ctx *RenderContext) pick(label, preview string, key pickerKey, list func() []pickItem) (item pickItem, ok bool) {
	r := ctx.r
	if !r.BeginCombo(label, preview) {
		return pickItem{}, false
	}
	defer r.EndCombo()

	e := ctx.engine
	text := e.pickerFilters[ctx.row]
	if r.ComboFilter(&text) {
		if text == "" {
			delete(e.pickerFilters, ctx.row)
		} else {
			e.pickerFilters[ctx.row] = text
		}
	}
	key.filter = strings.TrimSpace(text)
	key.hideAbstract = e.hideAbstract

	items, cached := e.pickers.Get(key)
	if !cached {
		items = filterItems(list(), key.filter)
		e.pickers.Set(key, items)
	}

	if r.Selectable(ClearLabel, false) {
		return pickItem{}, true
	}
	for _, it := range items {
		if r.Selectable(it.Name, it.Name == preview) {
			return it, true
		}
	}
	return pickItem{}, false
}

func filterItems(all []pickItem, text string) []pickItem {
	f := NewFilter(text)
	out := make([]pickItem, 0, len(all))
	for _, it := range all {
		if f.Matches(it.Name) {
			out = append(out, it)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return strings.ToLower(out[i].Name) < strings.ToLower(out[j].Name)
	})
	return out
}

// classCandidates lists the types deriving from meta. Abstract and
// deprecated types are left out unless the engine shows them.
func (ctx *RenderContext) classCandidates(meta *Type) []pickItem {
	p := ctx.engine.provider
	var out []pickItem
	for _, t := range p.Types() {
		if meta != nil && !p.IsChildOf(t, meta) {
			continue
		}
		if ctx.engine.hideAbstract && (t.Has(TypeAbstract) || t.Has(TypeDeprecated)) {
			continue
		}
		out = append(out, pickItem{Name: t.Name, Type: t})
	}
	return out
}

func (ctx *RenderContext) assetCandidates(class *Type) []pickItem {
	if ctx.engine.assets == nil {
		return nil
	}
	assets := ctx.engine.assets.Assets(class)
	out := make([]pickItem, 0, len(assets))
	for _, a := range assets {
		name := a.Name
		if name == "" {
			name = string(a.Path)
		}
		out = append(out, pickItem{Name: name, Type: a.Object.Type, Asset: a})
	}
	return out
}
