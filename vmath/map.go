package vmath

// Map linearly remaps x from [inMin, inMax] to [outMin, outMax] without clamping
// Degenerate input range maps to outMin
func Map(x, inMin, inMax, outMin, outMax float64) float64 {
	span := inMax - inMin
	if span == 0 {
		return outMin
	}
	return (x-inMin)*(outMax-outMin)/span + outMin
}

// Clamp bounds v to [lo, hi]
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
