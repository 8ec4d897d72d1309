package fluid

import (
	"github.com/lixenwraith/sirup/core"
	"github.com/lixenwraith/sirup/physics"
)

// ColorSink receives the mixed color when it is strong enough to show
type ColorSink interface {
	SetColor(c core.RGBA)
}

// Emitter is the domain side of a solver particle source
// Speed is recomputed every tick and pushed to the solver, never persisted
type Emitter struct {
	Source physics.SourceID
	Owner  string
	Speed  float64

	color    core.RGBA
	hasColor bool
}

// NewEmitter creates an emitter without a color, its particles route nowhere until one is set
func NewEmitter(src physics.SourceID, owner string) *Emitter {
	return &Emitter{Source: src, Owner: owner}
}

// NewColoredEmitter creates an emitter with a fixed initial color
func NewColoredEmitter(src physics.SourceID, owner string, c core.RGBA) *Emitter {
	return &Emitter{Source: src, Owner: owner, color: c, hasColor: true}
}

// SetColor implements ColorSink
func (e *Emitter) SetColor(c core.RGBA) {
	e.color = c
	e.hasColor = true
}

// Color returns the particle color, false if none was ever set
func (e *Emitter) Color() (core.RGBA, bool) {
	return e.color, e.hasColor
}
