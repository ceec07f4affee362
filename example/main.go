// Example opens a window with a garage of vehicles and a property inspector.
// Select one or more vehicles on the left to edit them side by side; rows
// whose values differ between the selected vehicles show as divergent.
//
// Prerequisites:
//
//	Install devbox: https://www.jetify.com/devbox
//	devbox shell              # enter the dev environment (provides Go + OpenGL/X11 headers)
//	go run ./example/ -data garage.json
//
// With -data the garage is loaded from the file, saved after every edit and
// reloaded when the file changes on disk.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"runtime"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/go-theft-auto/inspector"
	"github.com/go-theft-auto/inspector/backend/opengl"
	"github.com/go-theft-auto/inspector/geom"
	"github.com/go-theft-auto/inspector/goreflect"
	"github.com/go-theft-auto/inspector/imgui"
	"github.com/go-theft-auto/inspector/persist"
)

const (
	windowWidth  = 1100
	windowHeight = 700
	windowTitle  = "inspector example"
)

type Gear uint8

const (
	GearPark Gear = iota
	GearDrive
	GearReverse
)

type Engine struct {
	Horsepower int32   `inspect:"edit,tooltip=Peak output"`
	Turbo      bool    `inspect:"edit"`
	Redline    float32 `inspect:"edit"`
}

type Vehicle struct {
	Name     string           `inspect:"edit"`
	Model    inspector.Name   `inspect:"edit"`
	Notes    inspector.Text   `inspect:"edit"`
	Gear     Gear             `inspect:"edit"`
	Armored  bool             `inspect:"edit"`
	TopSpeed float64          `inspect:"edit,tooltip=Top speed in km/h"`
	Position geom.Vector      `inspect:"edit"`
	Rotation geom.Rotator     `inspect:"edit"`
	Paint    geom.Color       `inspect:"edit"`
	Tires    [4]float32       `inspect:"edit,tooltip=Tire pressure per wheel"`
	Mods     []string         `inspect:"edit"`
	Stats    map[string]int32 `inspect:"edit"`
	Engine   *Engine          `inspect:"edit,instanced,class=Engine"`
	Plate    string           `inspect:"readonly"`
}

type Garage struct {
	Vehicles []Vehicle `inspect:"edit"`
}

func defaultGarage() Garage {
	return Garage{Vehicles: []Vehicle{
		{
			Name: "Infernus", Model: "infernus", TopSpeed: 240, Gear: GearPark,
			Paint: geom.Color{R: 220, G: 30, B: 30, A: 255}, Tires: [4]float32{2.2, 2.2, 2.4, 2.4},
			Mods: []string{"nitro"}, Stats: map[string]int32{"races": 12},
			Engine: &Engine{Horsepower: 560, Turbo: true, Redline: 8200}, Plate: "GTA 001",
		},
		{
			Name: "Banshee", Model: "banshee", TopSpeed: 240, Gear: GearDrive,
			Paint: geom.Color{R: 30, G: 30, B: 200, A: 255}, Tires: [4]float32{2.2, 2.2, 2.2, 2.2},
			Engine: &Engine{Horsepower: 480, Redline: 7600}, Plate: "GTA 002",
		},
		{
			Name: "Rhino", Model: "rhino", TopSpeed: 60, Armored: true,
			Paint: geom.Color{R: 70, G: 90, B: 60, A: 255}, Plate: "ARMY 01",
		},
	}}
}

func init() {
	// GLFW must run on the main thread.
	runtime.LockOSThread()
}

func main() {
	dataPath := flag.String("data", "", "JSON file to load, save and watch")
	verbose := flag.Bool("verbose", false, "log skipped rows and reloads")
	flag.Parse()

	if err := run(*dataPath, *verbose); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// scene is the inspected data and the selection.
type scene struct {
	p        *goreflect.Provider
	engine   *inspector.Engine
	garage   Garage
	typ      *inspector.Type
	selected map[int]bool
	filter   *inspector.Filter
	dirty    bool
}

func newScene() *scene {
	p := goreflect.New()
	goreflect.RegisterEnum[Gear](p, true, "Gear::Park", "Gear::Drive", "Gear::Reverse", "Gear::Max")
	p.RegisterClass(Engine{}, 0, "Power unit")
	s := &scene{
		p:        p,
		engine:   inspector.New(p, inspector.WithRegistry(goreflect.DefaultRegistry(p))),
		garage:   defaultGarage(),
		selected: map[int]bool{0: true},
		filter:   inspector.NewFilter(""),
	}
	s.typ = p.TypeOf(&s.garage)
	return s
}

func (s *scene) ptr() unsafe.Pointer { return unsafe.Pointer(&s.garage) }

func (s *scene) instances() []unsafe.Pointer {
	var out []unsafe.Pointer
	for i := range s.garage.Vehicles {
		if s.selected[i] {
			out = append(out, unsafe.Pointer(&s.garage.Vehicles[i]))
		}
	}
	return out
}

func run(dataPath string, verbose bool) error {
	inspector.SetVerbose(verbose)
	persist.SetVerbose(verbose)
	imgui.SetVerbose(verbose)

	s := newScene()
	reloads := make(chan []byte, 1)
	if dataPath != "" {
		err := persist.Load(dataPath, s.p, s.typ, s.ptr())
		switch {
		case errors.Is(err, fs.ErrNotExist):
			if err := persist.Save(dataPath, s.p, s.typ, s.ptr()); err != nil {
				return err
			}
		case err != nil:
			return err
		}

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		go func() {
			err := persist.Watch(ctx, dataPath, func(doc []byte) {
				select {
				case reloads <- doc:
				default:
				}
			})
			if err != nil {
				slog.Warn("watch stopped", "err", err)
			}
		}()
	}

	if err := glfw.Init(); err != nil {
		return fmt.Errorf("glfw init: %w", err)
	}
	defer glfw.Terminate()

	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)

	window, err := glfw.CreateWindow(windowWidth, windowHeight, windowTitle, nil, nil)
	if err != nil {
		return fmt.Errorf("create window: %w", err)
	}
	window.MakeContextCurrent()
	glfw.SwapInterval(1)

	if err := gl.Init(); err != nil {
		return fmt.Errorf("gl init: %w", err)
	}

	renderer, err := opengl.NewRenderer(windowWidth, windowHeight)
	if err != nil {
		return fmt.Errorf("gui renderer: %w", err)
	}
	defer renderer.Delete()

	inputAdapter := opengl.NewGLFWInputAdapter(window)
	ui := imgui.New(renderer,
		imgui.WithStyle(imgui.GTAStyle()),
		imgui.WithClipboard(opengl.Clipboard{Window: window}))

	last := glfw.GetTime()
	for !window.ShouldClose() {
		inputAdapter.BeginFrame()
		glfw.PollEvents()
		input := inputAdapter.Update()

		select {
		case doc := <-reloads:
			if err := persist.Restore(s.p, s.typ, s.ptr(), doc); err != nil {
				slog.Warn("reload failed", "path", dataPath, "err", err)
			}
		default:
		}

		w, h := window.GetFramebufferSize()
		ui.Resize(w, h)
		gl.Viewport(0, 0, int32(w), int32(h))
		gl.ClearColor(0.12, 0.12, 0.14, 1.0)
		gl.Clear(gl.COLOR_BUFFER_BIT)

		now := glfw.GetTime()
		ctx := ui.Begin(input, imgui.Vec2{X: float32(w), Y: float32(h)}, float32(now-last))
		last = now
		s.draw(ctx, float32(w), float32(h))
		if err := ui.End(); err != nil {
			return fmt.Errorf("gui render: %w", err)
		}
		window.SwapBuffers()

		if s.dirty && dataPath != "" {
			if err := persist.Save(dataPath, s.p, s.typ, s.ptr()); err != nil {
				slog.Warn("save failed", "path", dataPath, "err", err)
			}
		}
		s.dirty = false
	}
	return nil
}

func (s *scene) draw(ctx *imgui.Context, w, h float32) {
	const gap = 10
	list := imgui.Rect{X: gap, Y: gap, W: 240, H: h - 2*gap}
	ctx.Panel("Garage", list)(func() {
		for i := range s.garage.Vehicles {
			sel := s.selected[i]
			if ctx.Checkbox(fmt.Sprintf("%s##%d", s.garage.Vehicles[i].Name, i), &sel) {
				s.selected[i] = sel
			}
		}
	})

	details := imgui.Rect{X: list.X + list.W + gap, Y: gap, W: w - list.W - 3*gap, H: h - 2*gap}
	ctx.Panel("Details", details)(func() {
		ctx.Text("Filter")
		ctx.SameLine()
		ctx.InputText("##filter", &s.filter.Text)

		vehicle := s.p.TypeOf(Vehicle{})
		instances := s.instances()
		if len(instances) == 0 {
			ctx.TextDisabled("Nothing selected")
			return
		}
		s.engine.DrawTable(ctx, "vehicle", vehicle, instances,
			inspector.WithFilter(s.filter),
			inspector.OnFieldChanged(func(f *inspector.Field) {
				slog.Info("field changed", "field", f.Name, "vehicles", len(instances))
				s.dirty = true
			}))
	})
}
