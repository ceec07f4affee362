package imgui

import (
	"image"
	"sync"

	"github.com/rivo/uniseg"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// Font measures text and lays out glyph quads from a texture atlas.
type Font interface {
	// TextureID is the backend texture holding the atlas.
	TextureID() uint32
	MeasureText(text string, scale float32) Vec2
	GlyphQuads(dst []GlyphQuad, text string, x, y, scale float32) []GlyphQuad
	LineHeight(scale float32) float32
}

// Atlas is a single-channel glyph atlas rasterized from a fixed-size
// face. Pix holds one coverage byte per pixel, row-major, Width*Height
// bytes.
type Atlas struct {
	Pix           []byte
	Width, Height int

	face    *basicfont.Face
	cols    int
	cellW   int
	cellH   int
	advance int
	glyphs  map[rune]int
	texture uint32
}

const atlasColumns = 16

var (
	defaultAtlas     *Atlas
	defaultAtlasOnce sync.Once
)

// DefaultAtlas returns the built-in 7x13 atlas covering printable ASCII
// and the replacement character.
func DefaultAtlas() *Atlas {
	defaultAtlasOnce.Do(func() {
		defaultAtlas = NewAtlas(basicfont.Face7x13)
	})
	return defaultAtlas
}

// NewAtlas rasterizes every rune covered by face into a grid of cells.
func NewAtlas(face *basicfont.Face) *Atlas {
	var runes []rune
	for _, rg := range face.Ranges {
		for r := rg.Low; r < rg.High; r++ {
			runes = append(runes, r)
		}
	}
	a := &Atlas{
		face:    face,
		cols:    atlasColumns,
		cellW:   face.Advance,
		cellH:   face.Ascent + face.Descent,
		advance: face.Advance,
		glyphs:  make(map[rune]int, len(runes)),
	}
	rows := (len(runes) + a.cols - 1) / a.cols
	a.Width = a.cols * a.cellW
	a.Height = rows * a.cellH
	dst := image.NewAlpha(image.Rect(0, 0, a.Width, a.Height))
	d := font.Drawer{Dst: dst, Src: image.Opaque, Face: face}
	for i, r := range runes {
		a.glyphs[r] = i
		x, y := (i%a.cols)*a.cellW, (i/a.cols)*a.cellH
		d.Dot = fixed.P(x, y+face.Ascent)
		d.DrawString(string(r))
	}
	a.Pix = dst.Pix
	return a
}

// SetTextureID records the backend texture the atlas was uploaded to.
func (a *Atlas) SetTextureID(id uint32) { a.texture = id }

// TextureID implements Font.
func (a *Atlas) TextureID() uint32 { return a.texture }

// LineHeight implements Font.
func (a *Atlas) LineHeight(scale float32) float32 {
	return float32(a.cellH) * scale
}

// MeasureText implements Font. Widths follow grapheme clusters, so wide
// East Asian characters take two cells and combining marks take none.
func (a *Atlas) MeasureText(text string, scale float32) Vec2 {
	lines := 1
	widest, cur := 0, 0
	g := uniseg.NewGraphemes(text)
	for g.Next() {
		if g.Str() == "\n" {
			lines++
			cur = 0
			continue
		}
		cur += g.Width()
		if cur > widest {
			widest = cur
		}
	}
	return Vec2{
		X: float32(widest*a.advance) * scale,
		Y: float32(lines*a.cellH) * scale,
	}
}

// GlyphQuads implements Font. Characters outside the atlas render as the
// replacement glyph.
func (a *Atlas) GlyphQuads(dst []GlyphQuad, text string, x, y, scale float32) []GlyphQuad {
	penX, penY := x, y
	cw, ch := float32(a.cellW)*scale, float32(a.cellH)*scale
	g := uniseg.NewGraphemes(text)
	for g.Next() {
		runes := g.Runes()
		if len(runes) == 1 && runes[0] == '\n' {
			penX = x
			penY += ch
			continue
		}
		w := g.Width()
		if w == 0 {
			continue
		}
		if runes[0] != ' ' {
			i, ok := a.glyphs[runes[0]]
			if !ok {
				i = a.glyphs['\ufffd']
			}
			col, row := i%a.cols, i/a.cols
			dst = append(dst, GlyphQuad{
				X0: penX, Y0: penY, X1: penX + cw, Y1: penY + ch,
				U0: float32(col*a.cellW) / float32(a.Width),
				V0: float32(row*a.cellH) / float32(a.Height),
				U1: float32((col+1)*a.cellW) / float32(a.Width),
				V1: float32((row+1)*a.cellH) / float32(a.Height),
			})
		}
		penX += float32(w*a.advance) * scale
	}
	return dst
}
