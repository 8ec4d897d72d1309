package pour

import (
	"github.com/lixenwraith/sirup/fluid"
	"github.com/lixenwraith/sirup/parameter"
	"github.com/lixenwraith/sirup/vmath"
)

// BottleTuning is the default tuning for bottles, no decay since speed is set every tick
var BottleTuning = Tuning{
	Bias:     parameter.BottleTiltBias,
	MaxSpeed: parameter.BottleMaxPourSpeed,
}

// Bottle is an inexhaustible colored source poured by tilt alone
type Bottle struct {
	emitter    *fluid.Emitter
	top, floor Marker
	maxTilt    float64
	tuning     Tuning
}

// NewBottle calibrates a bottle, the emitter carries the bottle's fixed color
func NewBottle(name string, emitter *fluid.Emitter, top, floor Marker, tuning Tuning) (*Bottle, error) {
	maxTilt, err := calibrate(name, top, floor)
	if err != nil {
		return nil, err
	}
	return &Bottle{emitter: emitter, top: top, floor: floor, maxTilt: maxTilt, tuning: tuning}, nil
}

// Emitter returns the bottle's emitter
func (b *Bottle) Emitter() *fluid.Emitter {
	return b.emitter
}

// Tick sets emission speed to Map(tilt, 0, maxTilt, 0, MaxSpeed)
func (b *Bottle) Tick() float64 {
	b.emitter.Speed = vmath.Map(tilt(b.top, b.floor, b.tuning.Bias), 0, b.maxTilt, 0, b.tuning.MaxSpeed)
	return b.emitter.Speed
}
