package imgui_test

import (
	"testing"

	"github.com/go-theft-auto/inspector"
	"github.com/go-theft-auto/inspector/goreflect"
	"github.com/go-theft-auto/inspector/imgui"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var _ inspector.Renderer = (*imgui.Context)(nil)

// mockRenderer records what it was asked to draw.
type mockRenderer struct {
	renderCalls int
	vertices    int
	commands    int
}

func (m *mockRenderer) Render(dl *imgui.DrawList) error {
	m.renderCalls++
	m.vertices = len(dl.VtxBuffer)
	m.commands = len(dl.CmdBuffer)
	return nil
}

func (m *mockRenderer) FontTextureID() uint32 { return 1 }

func (m *mockRenderer) Resize(width, height int) {}

type memClipboard struct{ text string }

func (c *memClipboard) GetText() string     { return c.text }
func (c *memClipboard) SetText(text string) { c.text = text }

// harness drives frames with scripted input.
type harness struct {
	t  *testing.T
	r  *mockRenderer
	ui *imgui.GUI
	in *imgui.InputState
}

func newHarness(t *testing.T, opts ...imgui.GUIOption) *harness {
	t.Helper()
	r := &mockRenderer{}
	return &harness{t: t, r: r, ui: imgui.New(r, opts...), in: imgui.NewInputState()}
}

// frame draws one frame, then clears per-frame events and releases the
// mouse button.
func (h *harness) frame(draw func(ctx *imgui.Context)) {
	h.t.Helper()
	ctx := h.ui.Begin(h.in, imgui.Vec2{X: 800, Y: 600}, 0.016)
	draw(ctx)
	require.Zero(h.t, ctx.CurrentID(), "unbalanced ID stack")
	require.NoError(h.t, h.ui.End())
	h.in.Reset()
	h.in.SetMouseButton(imgui.MouseButtonLeft, false)
	for k := imgui.KeyNone + 1; k < imgui.KeyCount; k++ {
		h.in.SetKey(k, false)
	}
	h.in.Reset()
}

func (h *harness) click(r imgui.Rect) {
	h.in.SetMousePos(r.X+r.W/2, r.Y+r.H/2)
	h.in.SetMouseButton(imgui.MouseButtonLeft, true)
}

func (h *harness) typeText(s string) {
	for _, ch := range s {
		h.in.AddInputChar(ch)
	}
}

func TestGUIRendersFrame(t *testing.T) {
	h := newHarness(t, imgui.WithStyle(imgui.GTAStyle()))
	h.frame(func(ctx *imgui.Context) {
		ctx.Text("Hello World")
		ctx.TextColored("Colored", imgui.ColorYellow)
		ctx.Separator()
	})
	assert.Equal(t, 1, h.r.renderCalls)
	assert.NotZero(t, h.r.vertices)
	assert.NotZero(t, h.r.commands)
}

func TestIDs(t *testing.T) {
	h := newHarness(t)
	h.frame(func(ctx *imgui.Context) {
		a, b := ctx.GetID("a"), ctx.GetID("b")
		assert.NotEqual(t, a, b)
		assert.Equal(t, a, ctx.GetID("a"))
		assert.Equal(t, ctx.GetID("##Speed"), ctx.GetID("*##Speed"))

		ctx.PushID(1)
		inner := ctx.GetID("a")
		ctx.PopID()
		ctx.PushID(2)
		other := ctx.GetID("a")
		ctx.PopID()
		assert.NotEqual(t, a, inner)
		assert.NotEqual(t, inner, other)
		assert.Equal(t, a, ctx.GetID("a"))
	})
}

func TestCheckboxToggles(t *testing.T) {
	h := newHarness(t)
	v := false
	var box imgui.Rect
	h.frame(func(ctx *imgui.Context) {
		assert.False(t, ctx.Checkbox("Armored", &v))
		box = ctx.LastItemRect()
	})
	h.click(box)
	h.frame(func(ctx *imgui.Context) {
		assert.True(t, ctx.Checkbox("Armored", &v))
	})
	assert.True(t, v)
	h.frame(func(ctx *imgui.Context) {
		assert.False(t, ctx.Checkbox("Armored", &v))
	})
	assert.True(t, v)
}

func TestDisabledIgnoresClicks(t *testing.T) {
	h := newHarness(t)
	v := false
	var box imgui.Rect
	draw := func(ctx *imgui.Context) bool {
		ctx.BeginDisabled(true)
		defer ctx.EndDisabled()
		assert.True(t, ctx.Disabled())
		changed := ctx.Checkbox("Armored", &v)
		box = ctx.LastItemRect()
		return changed
	}
	h.frame(func(ctx *imgui.Context) { draw(ctx) })
	h.click(box)
	h.frame(func(ctx *imgui.Context) {
		assert.False(t, ctx.Disabled())
		assert.False(t, draw(ctx))
		assert.False(t, ctx.Disabled())
	})
	assert.False(t, v)
}

func TestInputTextCommitsOnce(t *testing.T) {
	h := newHarness(t)
	v := "abc"
	var field imgui.Rect
	draw := func(ctx *imgui.Context) bool {
		changed := ctx.InputText("##Label", &v)
		field = ctx.LastItemRect()
		return changed
	}
	h.frame(func(ctx *imgui.Context) { assert.False(t, draw(ctx)) })

	h.click(field)
	h.frame(func(ctx *imgui.Context) {
		assert.False(t, draw(ctx))
		assert.True(t, ctx.WantCaptureKeyboard)
	})

	h.typeText("de")
	h.frame(func(ctx *imgui.Context) { assert.False(t, draw(ctx)) })
	assert.Equal(t, "abc", v, "typing alone does not commit")

	h.in.SetKey(imgui.KeyEnter, true)
	h.frame(func(ctx *imgui.Context) { assert.True(t, draw(ctx)) })
	assert.Equal(t, "abcde", v)

	h.frame(func(ctx *imgui.Context) {
		assert.False(t, draw(ctx))
		assert.False(t, ctx.WantCaptureKeyboard)
	})
}

func TestInputTextEscapeCancels(t *testing.T) {
	h := newHarness(t)
	v := "abc"
	var field imgui.Rect
	draw := func(ctx *imgui.Context) bool {
		changed := ctx.InputText("##Label", &v)
		field = ctx.LastItemRect()
		return changed
	}
	h.frame(func(ctx *imgui.Context) { draw(ctx) })
	h.click(field)
	h.frame(func(ctx *imgui.Context) { draw(ctx) })
	h.typeText("zz")
	h.frame(func(ctx *imgui.Context) { draw(ctx) })
	h.in.SetKey(imgui.KeyEscape, true)
	h.frame(func(ctx *imgui.Context) { assert.False(t, draw(ctx)) })
	h.in.SetKey(imgui.KeyEnter, true)
	h.frame(func(ctx *imgui.Context) { assert.False(t, draw(ctx)) })
	assert.Equal(t, "abc", v)
}

func TestInputTextUnchangedDoesNotCommit(t *testing.T) {
	h := newHarness(t)
	v := "abc"
	var field imgui.Rect
	draw := func(ctx *imgui.Context) bool {
		changed := ctx.InputText("##Label", &v)
		field = ctx.LastItemRect()
		return changed
	}
	h.frame(func(ctx *imgui.Context) { draw(ctx) })
	h.click(field)
	h.frame(func(ctx *imgui.Context) { draw(ctx) })
	h.in.SetKey(imgui.KeyEnter, true)
	h.frame(func(ctx *imgui.Context) { assert.False(t, draw(ctx)) })
}

func TestInputTextClipboard(t *testing.T) {
	cb := &memClipboard{text: "xy"}
	h := newHarness(t, imgui.WithClipboard(cb))
	v := "a"
	var field imgui.Rect
	draw := func(ctx *imgui.Context) bool {
		changed := ctx.InputText("##Label", &v)
		field = ctx.LastItemRect()
		return changed
	}
	h.frame(func(ctx *imgui.Context) { draw(ctx) })
	h.click(field)
	h.frame(func(ctx *imgui.Context) { draw(ctx) })
	h.in.ModCtrl = true
	h.in.SetKey(imgui.KeyV, true)
	h.frame(func(ctx *imgui.Context) { draw(ctx) })
	h.in.ModCtrl = false
	h.in.SetKey(imgui.KeyTab, true)
	h.frame(func(ctx *imgui.Context) { assert.True(t, draw(ctx)) })
	assert.Equal(t, "axy", v)
}

func TestInputIntDropsBadText(t *testing.T) {
	h := newHarness(t)
	v := int64(5)
	var field imgui.Rect
	draw := func(ctx *imgui.Context) bool {
		changed := ctx.InputInt("##Count", &v)
		field = ctx.LastItemRect()
		return changed
	}
	h.frame(func(ctx *imgui.Context) { draw(ctx) })
	h.click(field)
	h.frame(func(ctx *imgui.Context) { draw(ctx) })
	h.typeText("x")
	h.frame(func(ctx *imgui.Context) { draw(ctx) })
	h.in.SetKey(imgui.KeyEnter, true)
	h.frame(func(ctx *imgui.Context) { assert.False(t, draw(ctx)) })
	assert.Equal(t, int64(5), v)

	h.click(field)
	h.frame(func(ctx *imgui.Context) { draw(ctx) })
	h.typeText("2")
	h.frame(func(ctx *imgui.Context) { draw(ctx) })
	h.in.SetKey(imgui.KeyEnter, true)
	h.frame(func(ctx *imgui.Context) { assert.True(t, draw(ctx)) })
	assert.Equal(t, int64(52), v)
}

func TestComboOpensAndSelects(t *testing.T) {
	h := newHarness(t)
	items := []string{"Park", "Drive", "Reverse"}
	selected := 0
	var header, second imgui.Rect
	draw := func(ctx *imgui.Context) bool {
		open := ctx.BeginCombo("##Gear", items[selected])
		header = ctx.LastItemRect()
		if !open {
			return false
		}
		for i, it := range items {
			if ctx.Selectable(it, i == selected) {
				selected = i
			}
			if i == 1 {
				second = ctx.LastItemRect()
			}
		}
		ctx.EndCombo()
		return true
	}

	h.frame(func(ctx *imgui.Context) { assert.False(t, draw(ctx)) })
	h.click(header)
	h.frame(func(ctx *imgui.Context) {
		assert.True(t, draw(ctx))
		assert.True(t, ctx.IsPopupOpen())
	})
	h.frame(func(ctx *imgui.Context) { assert.True(t, draw(ctx)) })

	h.click(second)
	h.frame(func(ctx *imgui.Context) { assert.True(t, draw(ctx)) })
	assert.Equal(t, 1, selected)
	h.frame(func(ctx *imgui.Context) {
		assert.False(t, draw(ctx))
		assert.False(t, ctx.IsPopupOpen())
	})
}

func TestComboClosesWhenNotDrawn(t *testing.T) {
	h := newHarness(t)
	var header imgui.Rect
	h.frame(func(ctx *imgui.Context) {
		ctx.BeginCombo("##Gear", "Park")
		header = ctx.LastItemRect()
	})
	h.click(header)
	h.frame(func(ctx *imgui.Context) {
		require.True(t, ctx.BeginCombo("##Gear", "Park"))
		ctx.EndCombo()
	})
	h.frame(func(ctx *imgui.Context) {})
	h.frame(func(ctx *imgui.Context) { assert.False(t, ctx.IsPopupOpen()) })
}

func TestPopupMenu(t *testing.T) {
	h := newHarness(t)
	var button, item imgui.Rect
	chosen := ""
	draw := func(ctx *imgui.Context) {
		open := ctx.BeginPopupMenu("##row")
		button = ctx.LastItemRect()
		if !open {
			return
		}
		for _, it := range []string{"Reset to default", "Copy"} {
			if ctx.MenuItem(it) {
				chosen = it
			}
			if it == "Reset to default" {
				item = ctx.LastItemRect()
			}
		}
		ctx.EndPopupMenu()
	}
	h.frame(draw)
	h.click(button)
	h.frame(draw)
	h.frame(draw)
	h.click(item)
	h.frame(draw)
	assert.Equal(t, "Reset to default", chosen)
	h.frame(func(ctx *imgui.Context) {
		draw(ctx)
		assert.False(t, ctx.IsPopupOpen())
	})
}

func TestTreeNodeToggles(t *testing.T) {
	h := newHarness(t)
	var node imgui.Rect
	var childID, rootID imgui.ID
	draw := func(ctx *imgui.Context) bool {
		rootID = ctx.GetID("child")
		open := ctx.TreeNode("Front", false)
		node = ctx.LastItemRect()
		if open {
			childID = ctx.GetID("child")
			ctx.Text("child")
			ctx.TreePop()
		}
		return open
	}
	h.frame(func(ctx *imgui.Context) { assert.False(t, draw(ctx)) })
	h.click(node)
	h.frame(func(ctx *imgui.Context) { assert.True(t, draw(ctx)) })
	assert.NotEqual(t, rootID, childID)
	h.frame(func(ctx *imgui.Context) { assert.True(t, draw(ctx)) })
	h.click(node)
	h.frame(func(ctx *imgui.Context) { assert.False(t, draw(ctx)) })
}

func TestLeafTreeNodeNeverOpens(t *testing.T) {
	h := newHarness(t)
	var node imgui.Rect
	h.frame(func(ctx *imgui.Context) {
		assert.False(t, ctx.TreeNode("Speed", true))
		node = ctx.LastItemRect()
	})
	h.click(node)
	h.frame(func(ctx *imgui.Context) { assert.False(t, ctx.TreeNode("Speed", true)) })
}

func TestTableLayout(t *testing.T) {
	h := newHarness(t)
	var name, value imgui.Rect
	h.frame(func(ctx *imgui.Context) {
		require.True(t, ctx.BeginTable("props", 2))
		ctx.TableNextRow()
		ctx.TableSetColumnIndex(0)
		ctx.Text("Speed")
		name = ctx.LastItemRect()
		ctx.TableSetColumnIndex(1)
		ctx.Text("42")
		value = ctx.LastItemRect()
		ctx.EndTable()
		assert.False(t, ctx.BeginTable("empty", 0))
	})
	assert.Equal(t, name.Y, value.Y)
	assert.Greater(t, value.X, name.X+name.W)
}

func TestFrameStoreDropsUnusedEntries(t *testing.T) {
	h := newHarness(t)
	store := imgui.NewFrameStore[int](h.ui.Context())
	h.frame(func(ctx *imgui.Context) { *store.Get(7, 0) = 3 })
	h.frame(func(ctx *imgui.Context) {
		v, ok := store.Lookup(7)
		require.True(t, ok)
		assert.Equal(t, 3, *v)
	})
	h.frame(func(ctx *imgui.Context) {})
	assert.Zero(t, store.Len())
}

func TestAtlasMeasure(t *testing.T) {
	a := imgui.DefaultAtlas()
	one := a.MeasureText("a", 1)
	assert.Equal(t, 2*one.X, a.MeasureText("ab", 1).X)
	assert.Equal(t, 2*one.X, a.MeasureText("世", 1).X)
	assert.Equal(t, one.X, a.MeasureText("é", 1).X)
	assert.Equal(t, 2*one.Y, a.MeasureText("a\nb", 1).Y)
	assert.Equal(t, a.Width*a.Height, len(a.Pix))
}

func TestTruncateText(t *testing.T) {
	ctx := imgui.NewContext()
	long := "The quick brown fox jumps over the lazy dog"
	width := ctx.MeasureText("The quick").X
	cut := imgui.TruncateText(ctx, long, width)
	assert.LessOrEqual(t, ctx.MeasureText(cut).X, width)
	assert.Contains(t, cut, "..")
	assert.Equal(t, "short", imgui.TruncateText(ctx, "short", 1000))
	assert.Empty(t, imgui.TruncateText(ctx, long, 0))
}

func TestColors(t *testing.T) {
	assert.Equal(t, imgui.ColorBlack, imgui.Blend(imgui.ColorBlack, imgui.ColorWhite, 0))
	assert.Equal(t, imgui.ColorWhite, imgui.Blend(imgui.ColorBlack, imgui.ColorWhite, 1))
	assert.Equal(t, "#ff0000", imgui.Hex(imgui.RGBA(255, 0, 0, 255)))
	r, g, b, a := imgui.UnpackRGBA(imgui.RGBA(1, 2, 3, 4))
	assert.Equal(t, []uint8{1, 2, 3, 4}, []uint8{r, g, b, a})
}

type Car struct {
	Name   string     `inspect:"edit"`
	Speed  float64    `inspect:"edit"`
	Lights bool       `inspect:"edit"`
	Gears  []int32    `inspect:"edit"`
	Tint   [3]float32 `inspect:"edit"`
}

func TestDrawsInspectorTable(t *testing.T) {
	h := newHarness(t)
	p := goreflect.New()
	e := inspector.New(p, inspector.WithRegistry(goreflect.DefaultRegistry(p)))
	a := &Car{Name: "Infernus", Speed: 240, Gears: []int32{1, 2}}
	b := &Car{Name: "Banshee", Speed: 240, Lights: true}
	changes := 0
	for range 3 {
		h.frame(func(ctx *imgui.Context) {
			ctx.Panel("Details", imgui.Rect{X: 10, Y: 10, W: 500, H: 400})(func() {
				e.DrawTable(ctx, "props", p.TypeOf(a), goreflect.Instances(a, b),
					inspector.OnFieldChanged(func(*inspector.Field) { changes++ }))
			})
		})
		assert.NotZero(t, h.r.vertices)
	}
	assert.Zero(t, changes)
	assert.Equal(t, "Infernus", a.Name)
}
