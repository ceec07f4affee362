package inspector_test

import (
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-theft-auto/inspector"
	"github.com/go-theft-auto/inspector/geom"
	"github.com/go-theft-auto/inspector/goreflect"
	"github.com/go-theft-auto/inspector/inspectortest"
)

type Garage struct {
	Front Wheel  `inspect:"edit"`
	Label string `inspect:"edit"`
}

type Stats struct {
	Values map[string]int32 `inspect:"edit"`
}

type Bag struct {
	Labels map[inspector.Name]struct{} `inspect:"edit"`
}

type Rig struct {
	Motor *Wheel `inspect:"edit,instanced"`
}

type Outer struct {
	In Mid `inspect:"edit"`
}

type Mid struct {
	In Inner `inspect:"edit"`
}

type Inner struct {
	V int32 `inspect:"edit"`
}

type Odd struct {
	Fn func() `inspect:"edit"`
	N  int32  `inspect:"edit"`
}

func TestEndToEndScenario(t *testing.T) {
	fx := newFixture(t)
	a := Tagged{Name: "x", Count: 5, Tags: []inspector.Name{"a"}}
	b := Tagged{Name: "x", Count: 7, Tags: []inspector.Name{"a"}}

	fx.draw(t, "", &a, &b)
	name := fx.event(t, "##Name")
	assert.Equal(t, "InputText", name.Widget)
	assert.Equal(t, "x", name.Value)
	count := fx.event(t, "*##Count")
	assert.Equal(t, inspector.MultipleValues, count.Value)
	fx.event(t, "1 Elements")
	assert.Equal(t, "a", fx.event(t, "##Tags").Value)
	assert.Equal(t, []string{"Name", "Count", "Tags", "0"}, fx.r.Rows())
	assert.Empty(t, fx.changed)

	fx.r.Commit("##Name", "y")
	fx.draw(t, "", &a, &b)
	assert.Equal(t, inspector.Name("y"), a.Name)
	assert.Equal(t, inspector.Name("y"), b.Name)
	assert.Equal(t, []string{"Name"}, fx.changed)
	assert.Equal(t, int32(5), a.Count)
	assert.Equal(t, int32(7), b.Count)
}

func TestSingleNotificationAcrossInstances(t *testing.T) {
	fx := newFixture(t)
	a, b, c := Tagged{Count: 4}, Tagged{Count: 4}, Tagged{Count: 4}

	fx.r.Commit("##Count", int64(9))
	fx.draw(t, "", &a, &b, &c)

	assert.Equal(t, []string{"Count"}, fx.changed)
	for _, v := range []Tagged{a, b, c} {
		assert.Equal(t, int32(9), v.Count)
	}
}

func TestDivergentNumberCommitParsesText(t *testing.T) {
	fx := newFixture(t)
	a, b := Tagged{Count: 1}, Tagged{Count: 2}

	fx.r.Commit("*##Count", " 12 ")
	fx.draw(t, "", &a, &b)
	assert.Equal(t, int32(12), a.Count)
	assert.Equal(t, int32(12), b.Count)
	assert.Equal(t, []string{"Count"}, fx.changed)

	a.Count = 3
	fx.changed = nil
	fx.r.Commit("*##Count", "not a number")
	fx.draw(t, "", &a, &b)
	assert.Equal(t, int32(3), a.Count)
	assert.Empty(t, fx.changed)
}

func TestIdenticalIsPairwiseAdjacent(t *testing.T) {
	cases := []struct {
		name   string
		counts []int32
		label  string
	}{
		{"single", []int32{3}, "##Count"},
		{"all equal", []int32{1, 1, 1}, "##Count"},
		{"last differs", []int32{1, 1, 2}, "*##Count"},
		{"middle differs", []int32{1, 2, 1}, "*##Count"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			fx := newFixture(t)
			ptrs := make([]any, len(tc.counts))
			for i, c := range tc.counts {
				ptrs[i] = &Tagged{Count: c}
			}
			fx.draw(t, "", ptrs...)
			fx.event(t, tc.label)
		})
	}
}

func TestNilInstanceDrawsNothing(t *testing.T) {
	fx := newFixture(t)
	a := Tagged{}
	fx.draw(t, "", &a, (*Tagged)(nil))
	assert.Empty(t, fx.r.Events)
	assert.Empty(t, fx.changed)
}

func TestFilterPropagatesToAncestors(t *testing.T) {
	fx := newFixture(t)
	g := Garage{}

	fx.draw(t, "", &g)
	assert.Equal(t, []string{"Front", "Radius", "Weight", "Label"}, fx.r.Rows())

	fx.draw(t, "RAD", &g)
	assert.Equal(t, []string{"Front", "Radius"}, fx.r.Rows())

	fx.draw(t, "lab", &g)
	assert.Equal(t, []string{"Label"}, fx.r.Rows())

	fx.draw(t, "nothing matches", &g)
	assert.Empty(t, fx.r.Rows())
}

func TestCategoryRowsFollowFilter(t *testing.T) {
	fx := newFixture(t)
	w := Wheel{}
	top := fx.p.TypeOf(w)
	objs := fx.p.Objects(&w)

	fx.r.Reset()
	fx.e.DrawClassTable(fx.r, "props", top, objs)
	assert.Equal(t, []string{"Wheel", "Radius", "Part", "Weight"}, fx.r.Rows())

	fx.r.Reset()
	fx.e.DrawClassTable(fx.r, "props", top, objs, inspector.WithFilter(inspector.NewFilter("weight")))
	assert.Equal(t, []string{"Part", "Weight"}, fx.r.Rows())

	fx.r.Reset()
	fx.e.DrawClassTable(fx.r, "props", top, objs, inspector.CollapseCategories())
	assert.Equal(t, []string{"Radius", "Weight"}, fx.r.Rows())
	fx.requireBalanced(t)
}

type Labelled struct {
	Title string `inspect:"edit"`
}

type Box struct {
	Inner Labelled `inspect:"edit"`
}

type countingString struct {
	inspector.StringCustomizer
	calls *int
}

func (c countingString) IsVisible(ctx *inspector.RenderContext, f *inspector.Field, vals inspector.Instances, identical bool) bool {
	*c.calls++
	return c.StringCustomizer.IsVisible(ctx, f, vals, identical)
}

func TestVisibilityComputedOncePerDraw(t *testing.T) {
	fx := newFixture(t)
	calls := 0
	defer fx.e.Registry().ScopedFieldCustomizer(inspector.KindString, countingString{calls: &calls})()
	box := Box{}

	fx.draw(t, "tit", &box)
	first := fx.r.Events
	assert.Equal(t, 1, calls)
	assert.Equal(t, []string{"Inner", "Title"}, fx.r.Rows())

	fx.draw(t, "tit", &box)
	assert.Equal(t, 2, calls)
	assert.Equal(t, first, fx.r.Events)
}

func TestEmptyFilterSkipsVisibilityChecks(t *testing.T) {
	fx := newFixture(t)
	calls := 0
	defer fx.e.Registry().ScopedFieldCustomizer(inspector.KindString, countingString{calls: &calls})()
	box := Box{}

	fx.draw(t, "", &box)
	assert.Zero(t, calls)
	assert.Equal(t, []string{"Inner", "Title"}, fx.r.Rows())
}

func TestArrayAppendPerInstance(t *testing.T) {
	fx := newFixture(t)
	a := Tagged{Tags: []inspector.Name{"a"}}
	b := Tagged{Tags: []inspector.Name{"b"}}

	fx.r.Click("Tags", "+")
	fx.draw(t, "", &a, &b)

	require.Len(t, a.Tags, 2)
	require.Len(t, b.Tags, 2)
	assert.Equal(t, inspector.Name(""), a.Tags[1])
	assert.Equal(t, inspector.Name(""), b.Tags[1])
	a.Tags[1] = "changed"
	assert.Equal(t, inspector.Name(""), b.Tags[1])
	assert.Equal(t, []string{"Tags"}, fx.changed)
}

func TestArrayAddHiddenWhenCountsDiffer(t *testing.T) {
	fx := newFixture(t)
	a := Tagged{Tags: []inspector.Name{"a"}}
	b := Tagged{}

	fx.draw(t, "", &a, &b)
	fx.event(t, "Different Elements *")
	var buttons []string
	for _, e := range fx.r.Widgets("SmallButton") {
		buttons = append(buttons, e.Label)
	}
	assert.Equal(t, []string{"x"}, buttons)

	fx.r.Click("Tags", "x")
	fx.draw(t, "", &a, &b)
	assert.Empty(t, a.Tags)
	assert.Empty(t, b.Tags)
	assert.Equal(t, []string{"Tags"}, fx.changed)
}

func TestArrayElementMenu(t *testing.T) {
	fx := newFixture(t)
	v := Tagged{Tags: []inspector.Name{"a", "b", "c"}}

	fx.r.Menu("1", "Delete")
	fx.draw(t, "", &v)
	assert.Equal(t, []inspector.Name{"a", "c"}, v.Tags)

	fx.r.Menu("0", "Insert")
	fx.draw(t, "", &v)
	assert.Equal(t, []inspector.Name{"", "a", "c"}, v.Tags)
	assert.Equal(t, []string{"Tags", "Tags"}, fx.changed)
}

func TestMapInsertIsNonDestructive(t *testing.T) {
	fx := newFixture(t)
	a := Stats{Values: map[string]int32{"": 5}}
	b := Stats{Values: map[string]int32{"k": 1}}

	fx.r.Click("Values", "+")
	fx.draw(t, "", &a, &b)

	assert.Equal(t, map[string]int32{"": 5}, a.Values)
	assert.Equal(t, map[string]int32{"": 0, "k": 1}, b.Values)
	assert.Equal(t, []string{"Values"}, fx.changed)
}

func TestMapInsertWithoutChangeDoesNotNotify(t *testing.T) {
	fx := newFixture(t)
	a := Stats{Values: map[string]int32{"": 5}}

	fx.r.Click("Values", "+")
	fx.draw(t, "", &a)

	assert.Empty(t, fx.r.Pending())
	assert.Equal(t, map[string]int32{"": 5}, a.Values)
	assert.Empty(t, fx.changed)
}

func TestMapValueEditWritesBack(t *testing.T) {
	fx := newFixture(t)
	s := Stats{Values: map[string]int32{"hp": 5}}

	fx.draw(t, "", &s)
	key := fx.event(t, "##Values_Key")
	assert.Equal(t, "hp", key.Value)
	assert.True(t, key.Disabled)
	assert.False(t, fx.event(t, "##Values").Disabled)

	fx.r.Commit("##Values", int64(7))
	fx.draw(t, "", &s)
	assert.Equal(t, map[string]int32{"hp": 7}, s.Values)
	assert.Equal(t, []string{"Values"}, fx.changed)
}

func TestMapEntryDelete(t *testing.T) {
	fx := newFixture(t)
	s := Stats{Values: map[string]int32{"a": 1, "b": 2}}

	fx.r.Menu("0", "Delete")
	fx.draw(t, "", &s)
	assert.Equal(t, map[string]int32{"b": 2}, s.Values)
	assert.Equal(t, []string{"Values"}, fx.changed)
}

func TestSetElementEditWritesBack(t *testing.T) {
	fx := newFixture(t)
	bag := Bag{Labels: map[inspector.Name]struct{}{"a": {}}}

	fx.r.Commit("##Labels", "z")
	fx.draw(t, "", &bag)

	assert.Equal(t, map[inspector.Name]struct{}{"z": {}}, bag.Labels)
	assert.Equal(t, []string{"Labels"}, fx.changed)
}

func TestSetAddDefault(t *testing.T) {
	fx := newFixture(t)
	bag := Bag{}

	fx.r.Click("Labels", "+")
	fx.draw(t, "", &bag)
	assert.Equal(t, map[inspector.Name]struct{}{"": {}}, bag.Labels)
	assert.Equal(t, []string{"Labels"}, fx.changed)
}

func TestReadOnlyDisablesValuesNotNames(t *testing.T) {
	fx := newFixture(t)
	v := Vehicle{Serial: "S-1"}

	fx.draw(t, "", &v)
	assert.True(t, fx.event(t, "##Serial").Disabled)
	assert.False(t, fx.event(t, "##Label").Disabled)

	var radius []bool
	for _, e := range fx.r.Widgets("InputFloat") {
		if e.Label == "##Radius" {
			radius = append(radius, e.Disabled)
		}
	}
	assert.Equal(t, []bool{false, true}, radius)
	for _, e := range fx.r.Widgets("TreeNode") {
		assert.False(t, e.Disabled, "name cell %q", e.Label)
	}

	fx.r.Commit("##Serial", "hacked")
	fx.draw(t, "", &v)
	assert.Equal(t, "S-1", v.Serial)
	assert.Contains(t, fx.r.Pending(), "commit ##Serial")
}

func TestHiddenFieldsAndDisplayAll(t *testing.T) {
	fx := newFixture(t)
	v := Vehicle{}
	fx.draw(t, "", &v)
	_, ok := fx.r.Find("##Secret")
	assert.False(t, ok)
	_, ok = fx.r.Find("##Internal")
	assert.False(t, ok)

	all := newFixture(t, inspector.WithDisplayAll(true))
	all.draw(t, "", &v)
	assert.False(t, all.event(t, "##Secret").Disabled)
	assert.True(t, all.event(t, "##Internal").Disabled)

	all.e.SetEditVisible(true)
	all.draw(t, "", &v)
	assert.False(t, all.event(t, "##Internal").Disabled)
	assert.False(t, all.event(t, "##Serial").Disabled)
}

func TestTooltips(t *testing.T) {
	fx := newFixture(t)
	fx.r.Hover(true)
	fx.draw(t, "", &Vehicle{})
	assert.Contains(t, fx.r.Tooltips(), "Shown in the garage list")
	assert.Contains(t, fx.r.Tooltips(), "Armored")
}

func TestFixedArrayRows(t *testing.T) {
	fx := newFixture(t)
	v := Vehicle{Wheels: [2]float32{1, 2}}

	fx.draw(t, "", &v)
	fx.event(t, "2 Elements")
	var values []string
	for _, e := range fx.r.Widgets("InputFloat") {
		if e.Label == "##Wheels" {
			values = append(values, e.Value)
		}
	}
	assert.Equal(t, []string{"1.000", "2.000"}, values)

	fx.r.Commit("##Wheels", 9.5)
	fx.draw(t, "", &v)
	assert.Equal(t, [2]float32{9.5, 2}, v.Wheels)
	assert.Equal(t, []string{"Wheels"}, fx.changed)
}

func TestEnumCombo(t *testing.T) {
	fx := newFixture(t)
	v := Vehicle{Gear: GearPark}

	fx.r.OpenCombo("##Gear", "")
	fx.draw(t, "", &v)
	assert.Equal(t, "Park", fx.event(t, "##Gear").Value)
	var items []string
	for _, e := range fx.r.Widgets("Selectable") {
		items = append(items, e.Label)
	}
	assert.Equal(t, []string{"Park", "Drive", "Reverse"}, items)

	fx.r.Select("##Gear", "Reverse")
	fx.draw(t, "", &v)
	assert.Equal(t, GearReverse, v.Gear)
	assert.Equal(t, []string{"Gear"}, fx.changed)
}

func TestDivergentBool(t *testing.T) {
	fx := newFixture(t)
	a, b := Vehicle{Armored: true}, Vehicle{}

	fx.draw(t, "", &a, &b)
	assert.Equal(t, "false", fx.event(t, "*##Armored").Value)

	fx.r.Commit("*##Armored", true)
	fx.draw(t, "", &a, &b)
	assert.True(t, a.Armored)
	assert.True(t, b.Armored)
	assert.Equal(t, []string{"Armored"}, fx.changed)
}

func TestTextUsesMultilineInput(t *testing.T) {
	fx := newFixture(t)
	v := Vehicle{Notes: "line one\nline two"}

	fx.draw(t, "", &v)
	notes := fx.event(t, "##Notes")
	assert.Equal(t, "InputTextMultiline", notes.Widget)
	assert.Equal(t, "line one\nline two", notes.Value)
}

func TestClassPickerHidesAbstractClasses(t *testing.T) {
	fx := newFixture(t)
	v := Vehicle{}

	fx.r.OpenCombo("##Kind", "")
	fx.draw(t, "", &v)
	assert.Equal(t, inspector.None, fx.event(t, "##Kind").Value)
	var items []string
	for _, e := range fx.r.Widgets("Selectable") {
		items = append(items, e.Label)
	}
	assert.Equal(t, []string{inspector.ClearLabel, "Wheel"}, items)

	fx.r.Select("##Kind", "Wheel")
	fx.draw(t, "", &v)
	assert.Same(t, fx.p.TypeOf(Wheel{}), v.Kind)
	assert.Equal(t, []string{"Kind"}, fx.changed)

	fx.r.Select("##Kind", inspector.ClearLabel)
	fx.draw(t, "", &v)
	assert.Nil(t, v.Kind)
}

func TestClassPickerWithAbstractClasses(t *testing.T) {
	fx := newFixture(t, inspector.WithAbstractClasses(true))
	fx.r.OpenCombo("##Kind", "")
	fx.draw(t, "", &Vehicle{})
	var items []string
	for _, e := range fx.r.Widgets("Selectable") {
		items = append(items, e.Label)
	}
	assert.Equal(t, []string{inspector.ClearLabel, "Part", "Wheel"}, items)
}

func TestAssetPickerFilterPersistsPerRow(t *testing.T) {
	fx := newFixture(t)
	fx.p.AddAsset("RallyWheel", &Wheel{})
	fx.p.AddAsset("SlickWheel", &Wheel{})
	fx.p.AddAsset("Bolt", &Part{})
	v := Vehicle{}

	fx.r.OpenCombo("##Skin", "wheel")
	fx.draw(t, "", &v)
	var items []string
	for _, e := range fx.r.Widgets("Selectable") {
		items = append(items, e.Label)
	}
	assert.Equal(t, []string{inspector.ClearLabel, "RallyWheel", "SlickWheel"}, items)

	fx.r.Select("##Skin", "SlickWheel")
	fx.draw(t, "", &v)
	assert.Equal(t, inspector.SoftPath("SlickWheel"), v.Skin)
	fx.draw(t, "", &v)
	assert.Equal(t, "SlickWheel", fx.event(t, "##Skin").Value)

	fx.r.Select("##Skin", inspector.ClearLabel)
	fx.draw(t, "", &v)
	assert.Equal(t, inspector.SoftPath(""), v.Skin)
	assert.Equal(t, []string{"Skin", "Skin"}, fx.changed)
}

func TestInstancedObjectPerInstance(t *testing.T) {
	fx := newFixture(t)
	a, b := Rig{}, Rig{}

	fx.r.Select("##Motor", "Wheel")
	fx.draw(t, "", &a, &b)
	require.NotNil(t, a.Motor)
	require.NotNil(t, b.Motor)
	assert.NotSame(t, a.Motor, b.Motor)
	assert.Equal(t, []string{"Motor"}, fx.changed)

	fx.draw(t, "", &a, &b)
	assert.Equal(t, inspector.MultipleValues, fx.event(t, "*##Motor").Value)
	assert.Equal(t, []string{"Motor", "Radius", "Weight"}, fx.r.Rows())

	fx.r.Commit("##Radius", 3.0)
	fx.draw(t, "", &a, &b)
	assert.Equal(t, float32(3), a.Motor.Radius)
	assert.Equal(t, float32(3), b.Motor.Radius)
	assert.Equal(t, []string{"Motor", "Radius"}, fx.changed)
}

func TestInstancedFilterLooksIntoTarget(t *testing.T) {
	fx := newFixture(t)
	r := Rig{Motor: &Wheel{}}

	fx.draw(t, "weight", &r)
	assert.Equal(t, []string{"Motor", "Weight"}, fx.r.Rows())
}

func TestCyclicInstancedObjectsStop(t *testing.T) {
	fx := newFixture(t)
	self := &Node{Name: "self"}
	self.Child = self
	fx.drawObjects(t, self)
	assert.Equal(t, []string{"Node", "Name", "Child"}, fx.r.Rows())

	a, b := &Node{Name: "a"}, &Node{Name: "b"}
	a.Child, b.Child = b, a
	fx.drawObjects(t, a)
	assert.Equal(t, []string{"Node", "Name", "Child", "Name", "Child"}, fx.r.Rows())
}

func TestDepthLimit(t *testing.T) {
	fx := newFixture(t)
	fx.draw(t, "", &Outer{})
	assert.Equal(t, []string{"In", "In", "V"}, fx.r.Rows())

	limited := newFixture(t, inspector.WithMaxDepth(2))
	limited.draw(t, "", &Outer{})
	assert.Equal(t, []string{"In", "In"}, limited.r.Rows())
}

type nestedWheel struct {
	inspector.BaseStruct
	changed *[]string
}

func (nestedWheel) HasChildren(*inspector.RenderContext, *inspector.Field, inspector.Instances, bool) bool {
	return true
}

func (nestedWheel) NameWidget(ctx *inspector.RenderContext, f *inspector.Field, _ inspector.Instances, _ bool) bool {
	return ctx.NameWidget(f, f.Name, true)
}

func (nestedWheel) ValueWidget(*inspector.RenderContext, *inspector.Field, inspector.Instances, bool) {
}

func (c nestedWheel) ChildrenWidget(ctx *inspector.RenderContext, f *inspector.Field, vals inspector.Instances, _ bool) {
	ctx.DrawTable("nested", f.Struct, vals, inspector.OnFieldChanged(func(f *inspector.Field) {
		*c.changed = append(*c.changed, f.Name)
	}))
}

func TestNestedTableIsIsolated(t *testing.T) {
	fx := newFixture(t)
	var inner []string
	defer fx.e.Registry().ScopedStructCustomizer(fx.p.TypeOf(Wheel{}), nestedWheel{changed: &inner})()
	g := Garage{}

	fx.r.Commit("##Radius", 2.5)
	fx.draw(t, "", &g)

	assert.Equal(t, float32(2.5), g.Front.Radius)
	assert.Equal(t, []string{"Radius"}, inner)
	assert.Empty(t, fx.changed)
	fx.event(t, "nested")
	fx.event(t, "##Label")

	fx.r.Commit("##Label", "outer")
	fx.draw(t, "", &g)
	assert.Equal(t, []string{"Label"}, fx.changed)
	assert.Equal(t, []string{"Radius"}, inner)
}

func TestStructDivergenceIsPerField(t *testing.T) {
	fx := newFixture(t)
	a := Garage{Front: Wheel{Radius: 1}}
	b := Garage{Front: Wheel{Radius: 2}}

	fx.draw(t, "", &a, &b)
	fx.event(t, "2 Fields *")
	fx.event(t, "*##Radius")
	fx.event(t, "##Weight")
}

func TestVectorStructCustomizer(t *testing.T) {
	fx := newFixture(t)
	v := Vehicle{Pos: geom.Vector{X: 1, Y: 2, Z: 3}}

	fx.draw(t, "", &v)
	pos := fx.event(t, "##Pos")
	assert.Equal(t, "InputFloatN", pos.Widget)
	assert.Equal(t, "1.000 2.000 3.000", pos.Value)
	assert.Equal(t, "true", fx.event(t, "Pos").Value, "Pos is a leaf row")

	fx.r.Commit("##Pos", []float64{4, 5, 6})
	fx.draw(t, "", &v)
	assert.Equal(t, geom.Vector{X: 4, Y: 5, Z: 6}, v.Pos)
	assert.Equal(t, []string{"Pos"}, fx.changed)
}

func TestUnsupportedFieldIsSkipped(t *testing.T) {
	fx := newFixture(t)
	fx.draw(t, "", &Odd{})
	assert.Equal(t, []string{"N"}, fx.r.Rows())
}

func TestDrawObjectsRequiresCommonClass(t *testing.T) {
	fx := newFixture(t)
	fx.drawObjects(t, &Node{}, &Wheel{})
	assert.Empty(t, fx.r.Events)

	fx.r.Reset()
	fx.e.DrawObjects(fx.r, "props", []inspector.Object{{}})
	assert.Empty(t, fx.r.Events)

	fx.drawObjects(t, &Wheel{}, &Part{})
	assert.Equal(t, []string{"Part", "Weight"}, fx.r.Rows())
}

func TestRowIdentitiesAreUniqueWithinTable(t *testing.T) {
	fx := newFixture(t)
	v := Vehicle{
		Parts: []Wheel{{}, {}},
		Stats: map[string]int32{"a": 1},
		Extra: map[string]map[string]struct{}{"x": {"y": {}}},
	}
	rec := &idRecorder{Renderer: fx.r, ids: make(map[string]string)}
	fx.r.Reset()
	fx.e.DrawTable(rec, "props", fx.p.TypeOf(v), goreflect.Instances(&v))
	fx.requireBalanced(t)
	assert.Empty(t, rec.dups)
	assert.Len(t, rec.ids, len(fx.r.Rows()))
}

// idRecorder records the ID path under which each row is drawn.
type idRecorder struct {
	*inspectortest.Renderer
	stack []uint64
	ids   map[string]string
	dups  []string
}

func (r *idRecorder) PushID(id uint64) {
	r.stack = append(r.stack, id)
	r.Renderer.PushID(id)
}

func (r *idRecorder) PopID() {
	r.stack = r.stack[:len(r.stack)-1]
	r.Renderer.PopID()
}

func (r *idRecorder) TreeNode(label string, leaf bool) bool {
	path := fmt.Sprint(r.stack)
	if prev, ok := r.ids[path]; ok {
		r.dups = append(r.dups, prev+" / "+label)
	}
	r.ids[path] = label
	return r.Renderer.TreeNode(label, leaf)
}

func TestContainerElementsMatchContainerName(t *testing.T) {
	fx := newFixture(t)
	tg := Tagged{Tags: []inspector.Name{"a", "b"}}

	fx.draw(t, "tags", &tg)
	assert.Equal(t, []string{"Tags", "0", "1"}, fx.r.Rows())

	fx.draw(t, "elem", &tg)
	assert.Empty(t, fx.r.Rows())

	s := Stats{Values: map[string]int32{"a": 1}}
	fx.draw(t, "values", &s)
	assert.Equal(t, []string{"Values", "0"}, fx.r.Rows())

	fx.draw(t, "key", &s)
	assert.Empty(t, fx.r.Rows())
}

type Catalog struct {
	Items map[string]Labelled `inspect:"edit"`
}

func TestMapEntryVisibilityComputedOncePerDraw(t *testing.T) {
	fx := newFixture(t)
	calls := 0
	defer fx.e.Registry().ScopedFieldCustomizer(inspector.KindString, countingString{calls: &calls})()
	c := Catalog{Items: map[string]Labelled{"a": {Title: "x"}}}

	fx.draw(t, "tit", &c)
	assert.Equal(t, 1, calls)
	assert.Equal(t, []string{"Items", "0", "Title"}, fx.r.Rows())
}

type Meter struct {
	Ticks uint64 `inspect:"edit"`
	Phase uint8  `inspect:"edit,enum=Gear"`
}

func TestUint64KeepsFullRange(t *testing.T) {
	fx := newFixture(t)
	a, b := Meter{Ticks: math.MaxUint64 - 1}, Meter{Ticks: math.MaxUint64 - 1}

	fx.draw(t, "", &a, &b)
	assert.Equal(t, "18446744073709551614", fx.event(t, "##Ticks").Value)

	fx.r.Commit("##Ticks", "18446744073709551615")
	fx.draw(t, "", &a, &b)
	assert.Equal(t, uint64(math.MaxUint64), a.Ticks)
	assert.Equal(t, uint64(math.MaxUint64), b.Ticks)
	assert.Equal(t, []string{"Ticks"}, fx.changed)

	b.Ticks = 3
	fx.changed = nil
	fx.r.Commit("*##Ticks", " 9223372036854775808 ")
	fx.draw(t, "", &a, &b)
	assert.Equal(t, uint64(1)<<63, a.Ticks)
	assert.Equal(t, uint64(1)<<63, b.Ticks)
	assert.Equal(t, []string{"Ticks"}, fx.changed)
}

func TestEnumTaggedInteger(t *testing.T) {
	fx := newFixture(t)
	a, b := Meter{Phase: 1}, Meter{Phase: 1}

	fx.r.OpenCombo("##Phase", "")
	fx.draw(t, "", &a, &b)
	assert.Equal(t, "Drive", fx.event(t, "##Phase").Value)
	var items []string
	for _, e := range fx.r.Widgets("Selectable") {
		items = append(items, e.Label)
	}
	assert.Equal(t, []string{"Park", "Drive", "Reverse"}, items)

	fx.r.Select("##Phase", "Reverse")
	fx.draw(t, "", &a, &b)
	assert.Equal(t, uint8(2), a.Phase)
	assert.Equal(t, uint8(2), b.Phase)
	assert.Equal(t, []string{"Phase"}, fx.changed)
}

type Transform struct {
	Cell  geom.IntVector   `inspect:"edit"`
	Spin  geom.Quat        `inspect:"edit"`
	Glow  geom.LinearColor `inspect:"edit"`
	Paint geom.Color       `inspect:"edit"`
}

func TestGeomStructEditsAcrossInstances(t *testing.T) {
	fx := newFixture(t)
	a := Transform{Cell: geom.IntVector{X: 1, Y: 2, Z: 3}, Spin: geom.IdentityQuat}
	b := a

	fx.draw(t, "", &a, &b)
	assert.Equal(t, "[1 2 3]", fx.event(t, "##Cell").Value)
	assert.Equal(t, "InputFloatN", fx.event(t, "##Spin").Widget)
	assert.Equal(t, "ColorEdit4", fx.event(t, "##Glow").Widget)
	assert.Equal(t, "ColorEdit4", fx.event(t, "##Paint").Widget)
	assert.Equal(t, []string{"Cell", "Spin", "Glow", "Paint"}, fx.r.Rows())

	fx.r.Commit("##Cell", []int64{4, -5, 1 << 40})
	fx.r.Commit("##Spin", []float64{0, 90, 0})
	fx.r.Commit("##Glow", [4]float32{0.5, 0.25, 1, 1})
	fx.r.Commit("##Paint", [4]float32{1, 0, 0, 1})
	fx.draw(t, "", &a, &b)

	wantSpin := geom.Rotator{Yaw: 90}.Quaternion()
	for _, tr := range []Transform{a, b} {
		assert.Equal(t, geom.IntVector{X: 4, Y: -5, Z: math.MaxInt32}, tr.Cell)
		assert.Equal(t, wantSpin, tr.Spin)
		assert.InDelta(t, 90, tr.Spin.Rotator().Yaw, 1e-9)
		assert.Equal(t, geom.LinearColor{R: 0.5, G: 0.25, B: 1, A: 1}, tr.Glow)
		assert.Equal(t, geom.Color{R: 255, A: 255}, tr.Paint)
	}
	assert.Equal(t, []string{"Cell", "Spin", "Glow", "Paint"}, fx.changed)
}
