package imgui

import (
	"encoding/binary"
	"strings"

	"github.com/cespare/xxhash/v2"
)

// ID uniquely identifies a widget for state persistence.
// IDs are stable across frames for the same label under the same ID stack.
type ID uint64

// GetID hashes label under the current ID stack. Only the part after "##"
// is hashed when the label contains one, so "*##Speed" and "##Speed" name
// the same widget.
func (ctx *Context) GetID(label string) ID {
	if i := strings.Index(label, "##"); i >= 0 {
		label = label[i+2:]
	}
	var seed [8]byte
	binary.LittleEndian.PutUint64(seed[:], uint64(ctx.CurrentID()))
	d := xxhash.New()
	_, _ = d.Write(seed[:])
	_, _ = d.WriteString(label)
	return ID(d.Sum64())
}

// PushID pushes a numeric ID onto the stack. All GetID calls are relative
// to it until the matching PopID.
func (ctx *Context) PushID(n uint64) {
	var buf [16]byte
	binary.LittleEndian.PutUint64(buf[:8], uint64(ctx.CurrentID()))
	binary.LittleEndian.PutUint64(buf[8:], n)
	ctx.idStack = append(ctx.idStack, ID(xxhash.Sum64(buf[:])))
}

// PushIDString pushes a label-derived ID onto the stack.
func (ctx *Context) PushIDString(label string) {
	ctx.idStack = append(ctx.idStack, ctx.GetID(label))
}

// PopID removes the last ID from the stack.
func (ctx *Context) PopID() {
	if len(ctx.idStack) > 0 {
		ctx.idStack = ctx.idStack[:len(ctx.idStack)-1]
	}
}

// CurrentID returns the current parent ID (top of stack).
func (ctx *Context) CurrentID() ID {
	if len(ctx.idStack) > 0 {
		return ctx.idStack[len(ctx.idStack)-1]
	}
	return 0
}

// displayText returns the visible part of a "visible##id" label.
func displayText(label string) string {
	if i := strings.Index(label, "##"); i >= 0 {
		return label[:i]
	}
	return label
}
