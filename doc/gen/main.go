// Command gen draws the inspector over sample data in a hidden window,
// captures the framebuffer and saves JPEG screenshots to doc/imgs/.
//
// Usage:
//
//	devbox shell
//	go run ./doc/gen/
package main

import (
	"fmt"
	"image"
	"image/jpeg"
	"os"
	"path/filepath"
	"runtime"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/go-theft-auto/inspector"
	"github.com/go-theft-auto/inspector/backend/opengl"
	"github.com/go-theft-auto/inspector/geom"
	"github.com/go-theft-auto/inspector/goreflect"
	"github.com/go-theft-auto/inspector/imgui"
)

func init() {
	runtime.LockOSThread()
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// screenshot is one capture.
type screenshot struct {
	name   string                   // filename without extension
	width  int                      // viewport width
	height int                      // viewport height
	draw   func(ctx *imgui.Context) // drawing function
	frames int                      // frames to render (0 = default 2)
}

func run() error {
	if err := glfw.Init(); err != nil {
		return fmt.Errorf("glfw init: %w", err)
	}
	defer glfw.Terminate()

	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.Visible, glfw.False)

	window, err := glfw.CreateWindow(800, 600, "screenshot-gen", nil, nil)
	if err != nil {
		return fmt.Errorf("create window: %w", err)
	}
	window.MakeContextCurrent()

	if err := gl.Init(); err != nil {
		return fmt.Errorf("gl init: %w", err)
	}

	renderer, err := opengl.NewRenderer(800, 600)
	if err != nil {
		return fmt.Errorf("gui renderer: %w", err)
	}
	defer renderer.Delete()

	outDir := filepath.Join("doc", "imgs")
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return fmt.Errorf("mkdir: %w", err)
	}

	shots := buildScreenshots()
	for _, s := range shots {
		if err := capture(renderer, s, outDir); err != nil {
			return fmt.Errorf("capture %s: %w", s.name, err)
		}
		fmt.Printf("  %s.jpg (%dx%d)\n", s.name, s.width, s.height)
	}

	fmt.Printf("\nGenerated %d screenshots in %s/\n", len(shots), outDir)
	return nil
}

func capture(renderer *opengl.Renderer, s screenshot, outDir string) error {
	// The hidden window stays at 800x600, larger than every screenshot; only
	// the projection changes. GLFW resizes asynchronously.
	renderer.Resize(s.width, s.height)

	// Fresh GUI per screenshot.
	ui := imgui.New(renderer, imgui.WithStyle(imgui.GTAStyle()))

	frames := 2
	if s.frames > 0 {
		frames = s.frames
	}

	for i := 0; i < frames; i++ {
		gl.Viewport(0, 0, int32(s.width), int32(s.height))
		gl.ClearColor(0.12, 0.12, 0.14, 1.0)
		gl.Clear(gl.COLOR_BUFFER_BIT)

		displaySize := imgui.Vec2{X: float32(s.width), Y: float32(s.height)}
		ctx := ui.Begin(imgui.NewInputState(), displaySize, 1.0/60.0)
		s.draw(ctx)
		if err := ui.End(); err != nil {
			return err
		}
	}

	// Read pixels
	pixels := make([]byte, s.width*s.height*4)
	gl.ReadPixels(0, 0, int32(s.width), int32(s.height), gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(pixels))

	// Flip vertically (OpenGL origin is bottom-left)
	rowLen := s.width * 4
	tmp := make([]byte, rowLen)
	for y := 0; y < s.height/2; y++ {
		top := y * rowLen
		bot := (s.height - 1 - y) * rowLen
		copy(tmp, pixels[top:top+rowLen])
		copy(pixels[top:top+rowLen], pixels[bot:bot+rowLen])
		copy(pixels[bot:bot+rowLen], tmp)
	}

	// Create image
	img := image.NewRGBA(image.Rect(0, 0, s.width, s.height))
	copy(img.Pix, pixels)

	// Encode JPEG
	path := filepath.Join(outDir, s.name+".jpg")
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return jpeg.Encode(f, img, &jpeg.Options{Quality: 90})
}

type Wheel struct {
	Radius   float32 `inspect:"edit"`
	Pressure float32 `inspect:"edit,tooltip=Bar"`
}

type Car struct {
	Name    string           `inspect:"edit"`
	Model   inspector.Name   `inspect:"edit"`
	Armored bool             `inspect:"edit"`
	Speed   float64          `inspect:"edit"`
	Seats   int32            `inspect:"edit"`
	Pos     geom.Vector      `inspect:"edit"`
	Rot     geom.Rotator     `inspect:"edit"`
	Paint   geom.LinearColor `inspect:"edit"`
	Wheels  [2]Wheel         `inspect:"edit"`
	Mods    []string         `inspect:"edit"`
	Plate   string           `inspect:"readonly"`
}

// buildScreenshots returns every screenshot to generate.
func buildScreenshots() []screenshot {
	p := goreflect.New()
	engine := inspector.New(p, inspector.WithRegistry(goreflect.DefaultRegistry(p)))
	car := p.TypeOf(Car{})

	a := &Car{
		Name: "Infernus", Model: "infernus", Speed: 240, Seats: 2,
		Pos: geom.Vector{X: 1, Y: 2, Z: 0.5}, Paint: geom.LinearColor{R: 0.8, G: 0.1, B: 0.1, A: 1},
		Wheels: [2]Wheel{{Radius: 0.35, Pressure: 2.2}, {Radius: 0.35, Pressure: 2.4}},
		Mods:   []string{"nitro", "hydraulics"}, Plate: "GTA 001",
	}
	b := &Car{
		Name: "Banshee", Model: "banshee", Speed: 240, Seats: 2, Armored: true,
		Pos: geom.Vector{X: 4, Y: 2, Z: 0.5}, Paint: geom.LinearColor{R: 0.1, G: 0.1, B: 0.8, A: 1},
		Wheels: [2]Wheel{{Radius: 0.35, Pressure: 2.2}, {Radius: 0.4, Pressure: 2.2}},
		Plate:  "GTA 002",
	}

	table := func(filter string, ptrs ...*Car) func(ctx *imgui.Context) {
		instances := make([]unsafe.Pointer, len(ptrs))
		for i, c := range ptrs {
			instances[i] = unsafe.Pointer(c)
		}
		return func(ctx *imgui.Context) {
			ctx.Panel("Details", imgui.Rect{X: 8, Y: 8, W: 484, H: 384})(func() {
				engine.DrawTable(ctx, "car", car, instances, inspector.WithFilter(inspector.NewFilter(filter)))
			})
		}
	}

	return []screenshot{
		{name: "inspector_single", width: 500, height: 400, draw: table("", a)},
		{name: "inspector_multi", width: 500, height: 400, draw: table("", a, b)},
		{name: "inspector_filter", width: 500, height: 400, draw: table("pres", a, b)},
	}
}
