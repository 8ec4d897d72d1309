package fluid

import (
	"math"

	"github.com/lixenwraith/sirup/parameter"
)

// Equalize proportionally shrinks comp so it represents target instead of level units
// Returns comp unchanged and false when the overhead is within EqualizeEpsilon
// Every count becomes floor(count - count*overhead/level), counts below 1 are evicted
// The input map is never modified
func Equalize(comp Composition, level, target float64) (Composition, bool) {
	overhead := level - target
	if overhead <= parameter.EqualizeEpsilon || level <= 0 {
		return comp, false
	}

	modifier := overhead / level
	out := make(Composition, len(comp))
	for color, count := range comp {
		n := math.Floor(float64(count) - float64(count)*modifier)
		if n < 1 {
			continue
		}
		out[color] = int(n)
	}
	return out, true
}
