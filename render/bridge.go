package render

import (
	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/sirup/core"
)

// Background is the terminal background color (Tokyo Night)
var Background = core.RGBA{R: 26.0 / 255, G: 27.0 / 255, B: 38.0 / 255, A: 1}

// RGBAToTcell composites c over bg and converts the result to a tcell color
func RGBAToTcell(c, bg core.RGBA) tcell.Color {
	r, g, b := core.Over(bg, c, c.A).RGB8()
	return tcell.NewRGBColor(int32(r), int32(g), int32(b))
}

// TcellToRGBA converts a tcell color to an opaque color
// ColorDefault maps to the background
func TcellToRGBA(c tcell.Color) core.RGBA {
	if c == tcell.ColorDefault {
		return Background
	}
	r, g, b := c.RGB()
	return core.RGBA{R: float64(r) / 255, G: float64(g) / 255, B: float64(b) / 255, A: 1}
}
