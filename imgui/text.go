package imgui

import (
	"strings"

	"github.com/rivo/uniseg"
)

// TruncateText shortens text with a ".." suffix so it fits maxWidth.
// Cuts fall on grapheme boundaries.
func TruncateText(ctx *Context, text string, maxWidth float32) string {
	if maxWidth <= 0 {
		return ""
	}
	if ctx.MeasureText(text).X <= maxWidth {
		return text
	}
	const suffix = ".."
	budget := maxWidth - ctx.MeasureText(suffix).X
	var b strings.Builder
	g := uniseg.NewGraphemes(text)
	for g.Next() {
		next := b.String() + g.Str()
		if ctx.MeasureText(next).X > budget {
			break
		}
		b.WriteString(g.Str())
	}
	return b.String() + suffix
}

// graphemeCount returns the number of user-perceived characters.
func graphemeCount(s string) int {
	return uniseg.GraphemeClusterCount(s)
}

// graphemeSplit returns the byte offset of the n-th grapheme boundary.
func graphemeSplit(s string, n int) int {
	if n <= 0 {
		return 0
	}
	g := uniseg.NewGraphemes(s)
	for i := 0; g.Next(); i++ {
		if i == n-1 {
			_, to := g.Positions()
			return to
		}
	}
	return len(s)
}
