package render

import (
	"github.com/lucasb-eyer/go-colorful"
)

// Framebuffer is a pixel grid with two pixels per terminal cell, stacked vertically
// Depth stores 1/w of the nearest surface; 0 means nothing was drawn
type Framebuffer struct {
	Width  int
	Height int
	Color  []colorful.Color
	Depth  []float32
}

// NewFramebuffer allocates a framebuffer for a cols x rows terminal area
func NewFramebuffer(cols, rows int) *Framebuffer {
	fb := &Framebuffer{}
	fb.Resize(cols, rows)
	return fb
}

// Resize reallocates for a new terminal size; contents are undefined afterwards
func (fb *Framebuffer) Resize(cols, rows int) {
	w, h := max(cols, 0), max(rows, 0)*2
	if w == fb.Width && h == fb.Height {
		return
	}
	fb.Width, fb.Height = w, h
	fb.Color = make([]colorful.Color, w*h)
	fb.Depth = make([]float32, w*h)
}

// Clear fills every pixel with c and resets depth
func (fb *Framebuffer) Clear(c colorful.Color) {
	for i := range fb.Color {
		fb.Color[i] = c
		fb.Depth[i] = 0
	}
}

// At returns the pixel color, or black outside the buffer
func (fb *Framebuffer) At(x, y int) colorful.Color {
	if x < 0 || y < 0 || x >= fb.Width || y >= fb.Height {
		return colorful.Color{}
	}
	return fb.Color[y*fb.Width+x]
}

// Covered reports whether geometry was drawn at the pixel
func (fb *Framebuffer) Covered(x, y int) bool {
	if x < 0 || y < 0 || x >= fb.Width || y >= fb.Height {
		return false
	}
	return fb.Depth[y*fb.Width+x] > 0
}

// plot writes c if invW is nearer than the stored depth scaled by bias
func (fb *Framebuffer) plot(x, y int, invW float32, bias float32, c colorful.Color) bool {
	if x < 0 || y < 0 || x >= fb.Width || y >= fb.Height || invW <= 0 {
		return false
	}
	i := y*fb.Width + x
	if invW*(1+bias) < fb.Depth[i] {
		return false
	}
	if invW > fb.Depth[i] {
		fb.Depth[i] = invW
	}
	fb.Color[i] = c
	return true
}
