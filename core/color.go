package core

import (
	"fmt"
	"math"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// RGBA is a straight (non-premultiplied) color with float channels in [0, 1]
// Comparable, used directly as composition key
type RGBA struct {
	R, G, B, A float64
}

// Predefined colors
var (
	Transparent = RGBA{0, 0, 0, 0}
	Red         = RGBA{1, 0, 0, 1}
	Green       = RGBA{0, 1, 0, 1}
	Blue        = RGBA{0, 0, 1, 1}
)

// Over composites src with weight srcAlpha over dst using the Porter-Duff "over" operator
// resultAlpha = 1 - (1-srcAlpha)(1-dstAlpha)
// channel = (src*srcAlpha + dst*dstAlpha*(1-srcAlpha)) / resultAlpha
func Over(dst, src RGBA, srcAlpha float64) RGBA {
	a := 1 - (1-srcAlpha)*(1-dst.A)
	if a <= 0 {
		return Transparent
	}
	inv := dst.A * (1 - srcAlpha)
	return RGBA{
		R: (src.R*srcAlpha + dst.R*inv) / a,
		G: (src.G*srcAlpha + dst.G*inv) / a,
		B: (src.B*srcAlpha + dst.B*inv) / a,
		A: a,
	}
}

// Less orders colors by R, G, B then A
// Fixed traversal order for deterministic mixing
func (c RGBA) Less(o RGBA) bool {
	if c.R != o.R {
		return c.R < o.R
	}
	if c.G != o.G {
		return c.G < o.G
	}
	if c.B != o.B {
		return c.B < o.B
	}
	return c.A < o.A
}

// Compare returns -1, 0 or 1 following Less, for slices.SortFunc
func (c RGBA) Compare(o RGBA) int {
	switch {
	case c.Less(o):
		return -1
	case o.Less(c):
		return 1
	}
	return 0
}

// ApproxEqual reports channel-wise equality within eps
func (c RGBA) ApproxEqual(o RGBA, eps float64) bool {
	return abs(c.R-o.R) <= eps && abs(c.G-o.G) <= eps && abs(c.B-o.B) <= eps && abs(c.A-o.A) <= eps
}

// Colorful drops alpha and returns the go-colorful representation
func (c RGBA) Colorful() colorful.Color {
	return colorful.Color{R: c.R, G: c.G, B: c.B}.Clamped()
}

// Hex returns the #rrggbb form, alpha ignored
func (c RGBA) Hex() string {
	return c.Colorful().Hex()
}

// HexA returns the #rrggbbaa form accepted by ParseHex
func (c RGBA) HexA() string {
	a := math.Round(math.Max(0, math.Min(1, c.A)) * 255)
	return fmt.Sprintf("%s%02x", c.Hex(), uint8(a))
}

// RGB8 returns clamped 8-bit channels, alpha ignored
func (c RGBA) RGB8() (r, g, b uint8) {
	return c.Colorful().RGB255()
}

// ParseHex parses #rrggbb or #rrggbbaa
func ParseHex(s string) (RGBA, error) {
	if len(s) == 9 {
		base, err := colorful.Hex(s[:7])
		if err != nil {
			return RGBA{}, err
		}
		alpha, err := colorful.Hex("#" + s[7:9] + "0000")
		if err != nil {
			return RGBA{}, err
		}
		return RGBA{R: base.R, G: base.G, B: base.B, A: alpha.R}, nil
	}
	base, err := colorful.Hex(s)
	if err != nil {
		return RGBA{}, err
	}
	return RGBA{R: base.R, G: base.G, B: base.B, A: 1}, nil
}

func abs(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}
