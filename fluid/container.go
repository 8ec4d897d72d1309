package fluid

import (
	"math"

	"github.com/lixenwraith/sirup/core"
	"github.com/lixenwraith/sirup/parameter"
)

// Container is a capacity-bounded composition of colored units
// Level may exceed capacity only inside AddParticle, before equalization runs
type Container struct {
	capacity    float64
	level       float64
	composition Composition
	dirty       bool

	// Derived state, valid while dirty is false
	fillRatio float64
	mixed     core.RGBA
	hasMixed  bool

	emitter   *Emitter
	sinks     []ColorSink
	overflows int
}

// NewContainer creates an empty container, a nil emitter gets a detached one
func NewContainer(capacity float64, emitter *Emitter) *Container {
	if emitter == nil {
		emitter = &Emitter{}
	}
	return &Container{
		capacity:    capacity,
		composition: make(Composition),
		dirty:       true,
		emitter:     emitter,
	}
}

// AttachSink adds a receiver for the mixed color, e.g. a material
func (c *Container) AttachSink(s ColorSink) {
	c.sinks = append(c.sinks, s)
}

// AddParticle absorbs one unit of color
// Overflow shrinks the composition to capacity - OvershootMargin and restarts the emitter slowly
// Returns true when the addition overflowed
func (c *Container) AddParticle(color core.RGBA) bool {
	c.level++
	c.composition[color]++
	c.dirty = true

	if c.level > c.capacity {
		c.Equalize(c.capacity - parameter.OvershootMargin)
		c.emitter.Speed = parameter.OverflowRestartSpeed
		c.overflows++
		return true
	}
	return false
}

// Equalize shrinks the composition toward target and sets the level to target exactly
// The level is not resynced from the rounded counts
// Returns false when the overhead is within epsilon and nothing changed
func (c *Container) Equalize(target float64) bool {
	next, applied := Equalize(c.composition, c.level, target)
	if !applied {
		return false
	}
	c.composition = next
	c.level = target
	c.dirty = true
	return true
}

// Reset empties the container
func (c *Container) Reset() {
	clear(c.composition)
	c.level = 0
	c.dirty = true
}

// MarkDirty forces derived state recomputation on next Refresh
func (c *Container) MarkDirty() {
	c.dirty = true
}

// Refresh recomputes fill ratio and mixed color if dirty
// The mixed color reaches the emitter and sinks only above MixedColorMinAlpha
// Returns true if anything was recomputed
func (c *Container) Refresh() bool {
	if !c.dirty {
		return false
	}

	c.fillRatio = 0
	if c.capacity > 0 {
		c.fillRatio = math.Min(1, c.level/c.capacity)
	}

	c.mixed, c.hasMixed = c.computeMixedColor()
	if c.hasMixed && c.mixed.A > parameter.MixedColorMinAlpha {
		c.emitter.SetColor(c.mixed)
		for _, s := range c.sinks {
			s.SetColor(c.mixed)
		}
	}

	c.dirty = false
	return true
}

// computeMixedColor layers every color over a transparent accumulator in fixed order
// Each layer weighs color.A * count/level
func (c *Container) computeMixedColor() (core.RGBA, bool) {
	if len(c.composition) == 0 || c.level <= 0 {
		return core.Transparent, false
	}
	acc := core.Transparent
	for _, color := range c.composition.Colors() {
		weight := color.A * (float64(c.composition[color]) / c.level)
		acc = core.Over(acc, color, weight)
	}
	return acc, true
}

// Capacity returns the unit capacity
func (c *Container) Capacity() float64 { return c.capacity }

// Level returns the current level
func (c *Container) Level() float64 { return c.level }

// Total returns the summed composition count, may lag Level after overflow rounding
func (c *Container) Total() int { return c.composition.Total() }

// Composition returns a copy of the composition
func (c *Container) Composition() Composition { return c.composition.Clone() }

// Dirty reports whether derived state is stale
func (c *Container) Dirty() bool { return c.dirty }

// Emitter returns the container's own emitter
func (c *Container) Emitter() *Emitter { return c.emitter }

// Overflows returns the number of overflowing additions since creation
func (c *Container) Overflows() int { return c.overflows }

// FillRatio returns min(1, level/capacity), refreshing if stale
func (c *Container) FillRatio() float64 {
	c.Refresh()
	return c.fillRatio
}

// MixedColor returns the composited color, false when the container is empty
func (c *Container) MixedColor() (core.RGBA, bool) {
	c.Refresh()
	return c.mixed, c.hasMixed
}
