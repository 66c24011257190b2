package render

import (
	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/mattn/go-runewidth"
)

// Screen is the part of tcell.Screen the renderer writes to
type Screen interface {
	Size() (width, height int)
	SetContent(x, y int, primary rune, combining []rune, style tcell.Style)
	Show()
	Sync()
}

// halfBlock paints the top pixel as foreground and the bottom pixel as background
const halfBlock = '▀'

// toTcell converts to a 24-bit terminal color
func toTcell(c colorful.Color) tcell.Color {
	r, g, b := c.Clamped().RGB255()
	return tcell.NewRGBColor(int32(r), int32(g), int32(b))
}

// flush writes the framebuffer to the screen, one cell per vertical pixel pair
func flush(screen Screen, fb *Framebuffer) {
	rows := fb.Height / 2
	for row := 0; row < rows; row++ {
		for col := 0; col < fb.Width; col++ {
			style := tcell.StyleDefault.
				Foreground(toTcell(fb.At(col, row*2))).
				Background(toTcell(fb.At(col, row*2+1)))
			screen.SetContent(col, row, halfBlock, nil, style)
		}
	}
}

// drawText lays out value from (left, top); newlines return to left
// Background is the darkened average of the two pixels under each cell
func drawText(screen Screen, fb *Framebuffer, left, top int, value string, fg colorful.Color) {
	cols, rows := fb.Width, fb.Height/2
	x, y := left, top
	for _, r := range value {
		if r == '\n' {
			x, y = left, y+1
			continue
		}
		if y >= rows {
			return
		}
		w := runewidth.RuneWidth(r)
		if w == 0 || x < 0 || y < 0 || x+w > cols {
			x += w
			continue
		}
		under := fb.At(x, y*2).BlendRgb(fb.At(x, y*2+1), 0.5)
		bg := colorful.Color{R: under.R * 0.35, G: under.G * 0.35, B: under.B * 0.35}
		style := tcell.StyleDefault.Foreground(toTcell(fg)).Background(toTcell(bg))
		screen.SetContent(x, y, r, nil, style)
		x += w
	}
}
