package imgui

import (
	"math"
	"sync"
)

var drawListPool = sync.Pool{
	New: func() any {
		return &DrawList{
			VtxBuffer: make([]Vertex, 0, 1024),
			IdxBuffer: make([]uint16, 0, 2048),
			CmdBuffer: make([]DrawCmd, 0, 16),
			clipStack: make([][4]float32, 0, 8),
		}
	},
}

// AcquireDrawList gets a cleared DrawList from the pool.
// Call ReleaseDrawList when done to return it.
func AcquireDrawList() *DrawList {
	dl := drawListPool.Get().(*DrawList)
	dl.Clear()
	return dl
}

// ReleaseDrawList returns a DrawList to the pool for reuse.
func ReleaseDrawList(dl *DrawList) {
	if dl != nil {
		drawListPool.Put(dl)
	}
}

// DrawList accumulates draw commands for a frame.
// It batches primitives by texture and clip rectangle.
type DrawList struct {
	CmdBuffer []DrawCmd
	VtxBuffer []Vertex
	IdxBuffer []uint16

	clipStack    [][4]float32
	currentClip  [4]float32
	textureID    uint32
	cmdOffset    uint32
	idxCmdOffset uint32
}

// Clear resets the DrawList for a new frame, retaining capacity.
func (dl *DrawList) Clear() {
	dl.CmdBuffer = dl.CmdBuffer[:0]
	dl.VtxBuffer = dl.VtxBuffer[:0]
	dl.IdxBuffer = dl.IdxBuffer[:0]
	dl.clipStack = dl.clipStack[:0]
	dl.currentClip = [4]float32{-1e9, -1e9, 1e9, 1e9}
	dl.textureID = 0
	dl.cmdOffset = 0
	dl.idxCmdOffset = 0
}

// PushClipRect narrows the clip rectangle to its intersection with
// (x1, y1)-(x2, y2) until the matching PopClipRect.
func (dl *DrawList) PushClipRect(x1, y1, x2, y2 float32) {
	dl.clipStack = append(dl.clipStack, dl.currentClip)
	c := dl.currentClip
	dl.currentClip = [4]float32{maxf(c[0], x1), maxf(c[1], y1), minf(c[2], x2), minf(c[3], y2)}
	dl.splitDraw()
}

// PopClipRect pops the clip rectangle stack.
func (dl *DrawList) PopClipRect() {
	n := len(dl.clipStack)
	if n > 0 {
		dl.currentClip = dl.clipStack[n-1]
		dl.clipStack = dl.clipStack[:n-1]
		dl.splitDraw()
	}
}

// ClipRect returns the active clip rectangle.
func (dl *DrawList) ClipRect() [4]float32 {
	return dl.currentClip
}

// SetTexture sets the texture for subsequent primitives. Zero draws
// untextured geometry.
func (dl *DrawList) SetTexture(textureID uint32) {
	if dl.textureID != textureID {
		dl.textureID = textureID
		dl.splitDraw()
	}
}

func (dl *DrawList) splitDraw() {
	if len(dl.CmdBuffer) > 0 {
		last := &dl.CmdBuffer[len(dl.CmdBuffer)-1]
		last.ElemCount = uint32(len(dl.IdxBuffer)) - dl.idxCmdOffset
	}
	dl.CmdBuffer = append(dl.CmdBuffer, DrawCmd{
		ClipRect:     dl.currentClip,
		TextureID:    dl.textureID,
		VertexOffset: uint32(len(dl.VtxBuffer)),
		IndexOffset:  uint32(len(dl.IdxBuffer)),
	})
	dl.cmdOffset = uint32(len(dl.VtxBuffer))
	dl.idxCmdOffset = uint32(len(dl.IdxBuffer))
}

// addQuad appends a textured quad, starting a new command when the
// 16-bit index range of the current one would overflow.
func (dl *DrawList) addQuad(x0, y0, x1, y1, u0, v0, u1, v1 float32, color uint32) {
	if len(dl.CmdBuffer) == 0 || uint32(len(dl.VtxBuffer))-dl.cmdOffset > math.MaxUint16-4 {
		dl.splitDraw()
	}
	idx := uint16(uint32(len(dl.VtxBuffer)) - dl.cmdOffset)
	dl.VtxBuffer = append(dl.VtxBuffer,
		Vertex{Pos: [2]float32{x0, y0}, TexCoord: [2]float32{u0, v0}, Color: color},
		Vertex{Pos: [2]float32{x1, y0}, TexCoord: [2]float32{u1, v0}, Color: color},
		Vertex{Pos: [2]float32{x1, y1}, TexCoord: [2]float32{u1, v1}, Color: color},
		Vertex{Pos: [2]float32{x0, y1}, TexCoord: [2]float32{u0, v1}, Color: color},
	)
	dl.IdxBuffer = append(dl.IdxBuffer, idx, idx+1, idx+2, idx, idx+2, idx+3)
}

// AddRect draws a filled rectangle.
func (dl *DrawList) AddRect(x, y, w, h float32, color uint32) {
	if color&0xFF000000 == 0 {
		return
	}
	dl.SetTexture(0)
	dl.addQuad(x, y, x+w, y+h, 0, 0, 0, 0, color)
}

// AddRectOutline draws a rectangle outline.
func (dl *DrawList) AddRectOutline(x, y, w, h float32, color uint32, thickness float32) {
	dl.AddRect(x, y, w, thickness, color)
	dl.AddRect(x, y+h-thickness, w, thickness, color)
	dl.AddRect(x, y+thickness, thickness, h-2*thickness, color)
	dl.AddRect(x+w-thickness, y+thickness, thickness, h-2*thickness, color)
}

// AddTriangle draws a filled triangle.
func (dl *DrawList) AddTriangle(x1, y1, x2, y2, x3, y3 float32, color uint32) {
	if color&0xFF000000 == 0 {
		return
	}
	dl.SetTexture(0)
	if len(dl.CmdBuffer) == 0 || uint32(len(dl.VtxBuffer))-dl.cmdOffset > math.MaxUint16-3 {
		dl.splitDraw()
	}
	idx := uint16(uint32(len(dl.VtxBuffer)) - dl.cmdOffset)
	dl.VtxBuffer = append(dl.VtxBuffer,
		Vertex{Pos: [2]float32{x1, y1}, Color: color},
		Vertex{Pos: [2]float32{x2, y2}, Color: color},
		Vertex{Pos: [2]float32{x3, y3}, Color: color},
	)
	dl.IdxBuffer = append(dl.IdxBuffer, idx, idx+1, idx+2)
}

// GlyphQuad is one glyph's screen and atlas rectangles.
type GlyphQuad struct {
	X0, Y0 float32
	X1, Y1 float32
	U0, V0 float32
	U1, V1 float32
}

// AddGlyphQuads draws glyphs sampled from the texture tex.
func (dl *DrawList) AddGlyphQuads(tex uint32, quads []GlyphQuad, color uint32) {
	if color&0xFF000000 == 0 || len(quads) == 0 {
		return
	}
	dl.SetTexture(tex)
	for _, q := range quads {
		dl.addQuad(q.X0, q.Y0, q.X1, q.Y1, q.U0, q.V0, q.U1, q.V1, color)
	}
}

// Append copies the commands of other after the ones of dl. Used to stack
// the foreground layer above the main one.
func (dl *DrawList) Append(other *DrawList) {
	if other == nil || len(other.IdxBuffer) == 0 {
		return
	}
	other.Finalize()
	dl.Finalize()
	vtxBase := uint32(len(dl.VtxBuffer))
	idxBase := uint32(len(dl.IdxBuffer))
	dl.VtxBuffer = append(dl.VtxBuffer, other.VtxBuffer...)
	dl.IdxBuffer = append(dl.IdxBuffer, other.IdxBuffer...)
	for _, cmd := range other.CmdBuffer {
		cmd.VertexOffset += vtxBase
		cmd.IndexOffset += idxBase
		dl.CmdBuffer = append(dl.CmdBuffer, cmd)
	}
	dl.cmdOffset = uint32(len(dl.VtxBuffer))
	dl.idxCmdOffset = uint32(len(dl.IdxBuffer))
	dl.textureID = ^uint32(0)
}

// Finalize closes the last command and drops empty ones.
// Must be called after all primitives are added.
func (dl *DrawList) Finalize() {
	if len(dl.CmdBuffer) > 0 {
		last := &dl.CmdBuffer[len(dl.CmdBuffer)-1]
		if last.ElemCount == 0 {
			last.ElemCount = uint32(len(dl.IdxBuffer)) - dl.idxCmdOffset
		}
	}
	filtered := dl.CmdBuffer[:0]
	for _, cmd := range dl.CmdBuffer {
		if cmd.ElemCount > 0 {
			filtered = append(filtered, cmd)
		}
	}
	dl.CmdBuffer = filtered
}
