package fluid

import (
	"slices"

	"github.com/lixenwraith/sirup/core"
)

// Composition counts units per color, no entry is ever <= 0
type Composition map[core.RGBA]int

// Total returns the summed unit count
func (c Composition) Total() int {
	n := 0
	for _, count := range c {
		n += count
	}
	return n
}

// Clone returns an independent copy
func (c Composition) Clone() Composition {
	out := make(Composition, len(c))
	for color, count := range c {
		out[color] = count
	}
	return out
}

// Colors returns the keys in mixing order
func (c Composition) Colors() []core.RGBA {
	colors := make([]core.RGBA, 0, len(c))
	for color := range c {
		colors = append(colors, color)
	}
	slices.SortFunc(colors, core.RGBA.Compare)
	return colors
}
