package geom

import (
	"fmt"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// LinearColor is a color in linear space with float components in 0..1.
type LinearColor struct {
	R, G, B, A float32
}

func (c LinearColor) String() string {
	return fmt.Sprintf("R=%.3f G=%.3f B=%.3f A=%.3f", c.R, c.G, c.B, c.A)
}

// RGBA returns the components as an array.
func (c LinearColor) RGBA() [4]float32 {
	return [4]float32{c.R, c.G, c.B, c.A}
}

// LinearColorFromRGBA is the inverse of LinearColor.RGBA.
func LinearColorFromRGBA(v [4]float32) LinearColor {
	return LinearColor{R: v[0], G: v[1], B: v[2], A: v[3]}
}

// Color converts c to an 8-bit sRGB color.
func (c LinearColor) Color() Color {
	r, g, b := colorful.LinearRgb(float64(c.R), float64(c.G), float64(c.B)).Clamped().RGB255()
	return Color{R: r, G: g, B: b, A: unitToByte(c.A)}
}

// Color is an 8-bit sRGB color.
type Color struct {
	R, G, B, A uint8
}

func (c Color) String() string {
	return fmt.Sprintf("#%02X%02X%02X%02X", c.R, c.G, c.B, c.A)
}

// Linear converts c to linear space.
func (c Color) Linear() LinearColor {
	srgb := colorful.Color{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255}
	r, g, b := srgb.LinearRgb()
	return LinearColor{R: float32(r), G: float32(g), B: float32(b), A: float32(c.A) / 255}
}

func unitToByte(v float32) uint8 {
	return uint8(min(max(v, 0), 1)*255 + 0.5)
}
