package inspector_test

import (
	"testing"

	"github.com/go-theft-auto/inspector"
	"github.com/go-theft-auto/inspector/geom"
	"github.com/go-theft-auto/inspector/goreflect"
	"github.com/go-theft-auto/inspector/inspectortest"
	"github.com/stretchr/testify/require"
)

type Gear uint8

const (
	GearPark Gear = iota
	GearDrive
	GearReverse
)

type Part struct {
	Weight float64 `inspect:"edit"`
}

type Wheel struct {
	Part
	Radius float32 `inspect:"edit"`
}

type Tagged struct {
	Name  inspector.Name   `inspect:"edit"`
	Count int32            `inspect:"edit"`
	Tags  []inspector.Name `inspect:"edit"`
}

type Vehicle struct {
	Label    string                         `inspect:"edit,tooltip=Shown in the garage list"`
	Armored  bool                           `inspect:"edit"`
	Serial   string                         `inspect:"readonly"`
	Secret   int64                          `inspect:"edit,hidden"`
	Gear     Gear                           `inspect:"edit"`
	Wheels   [2]float32                     `inspect:"edit"`
	Front    Wheel                          `inspect:"edit"`
	Spare    Wheel                          `inspect:"readonly"`
	Pos      geom.Vector                    `inspect:"edit"`
	Kind     *inspector.Type                `inspect:"edit,class=Part"`
	Motor    *Wheel                         `inspect:"edit,instanced"`
	Stats    map[string]int32               `inspect:"edit"`
	Labels   map[inspector.Name]struct{}    `inspect:"edit"`
	Notes    inspector.Text                 `inspect:"edit"`
	Skin     inspector.SoftPath             `inspect:"edit,class=Part"`
	Parts    []Wheel                        `inspect:"edit"`
	Extra    map[string]map[string]struct{} `inspect:"edit"`
	Internal int64
}

type Node struct {
	Name  string `inspect:"edit"`
	Child *Node  `inspect:"edit,instanced"`
}

// fixture bundles a provider, an engine and a scripted renderer.
type fixture struct {
	p       *goreflect.Provider
	e       *inspector.Engine
	r       *inspectortest.Renderer
	changed []string
}

func newFixture(t *testing.T, opts ...inspector.Option) *fixture {
	t.Helper()
	p := goreflect.New()
	goreflect.RegisterEnum[Gear](p, true, "Gear::Park", "Gear::Drive", "Gear::Reverse", "Gear::Max")
	p.RegisterClass(Part{}, inspector.TypeAbstract, "Base of every part")
	p.TypeOf(Wheel{})
	opts = append([]inspector.Option{inspector.WithRegistry(goreflect.DefaultRegistry(p))}, opts...)
	return &fixture{p: p, e: inspector.New(p, opts...), r: inspectortest.New()}
}

func (fx *fixture) onChanged(f *inspector.Field) { fx.changed = append(fx.changed, f.Name) }

// draw draws one frame of a table over ptrs, which all point at values of
// the same struct type.
func (fx *fixture) draw(t *testing.T, filter string, ptrs ...any) {
	t.Helper()
	fx.r.Reset()
	typ := fx.p.TypeOf(ptrs[0])
	require.NotNil(t, typ)
	fx.e.DrawTable(fx.r, "props", typ, goreflect.Instances(ptrs...),
		inspector.WithFilter(inspector.NewFilter(filter)),
		inspector.OnFieldChanged(fx.onChanged))
	fx.requireBalanced(t)
}

func (fx *fixture) drawObjects(t *testing.T, ptrs ...any) {
	t.Helper()
	fx.r.Reset()
	fx.e.DrawObjects(fx.r, "props", fx.p.Objects(ptrs...), inspector.OnFieldChanged(fx.onChanged))
	fx.requireBalanced(t)
}

func (fx *fixture) requireBalanced(t *testing.T) {
	t.Helper()
	require.Zero(t, fx.r.IDDepth(), "unbalanced PushID")
	require.Zero(t, fx.r.TreeDepth(), "unbalanced TreeNode")
	require.Zero(t, fx.r.DisabledDepth(), "unbalanced BeginDisabled")
}

func (fx *fixture) event(t *testing.T, label string) inspectortest.Event {
	t.Helper()
	e, ok := fx.r.Find(label)
	require.True(t, ok, "no widget labeled %q", label)
	return e
}
