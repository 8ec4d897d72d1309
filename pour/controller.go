// Package pour converts vessel tilt into emission speed
package pour

import (
	"math"

	"github.com/lixenwraith/sirup/core"
	"github.com/lixenwraith/sirup/fluid"
	"github.com/lixenwraith/sirup/parameter"
	"github.com/lixenwraith/sirup/vmath"
)

// Marker is a world-space calibration point sampled every tick
type Marker interface {
	Position() vmath.Vec3F
}

// Tuning holds the per-vessel pour constants
type Tuning struct {
	Bias     float64 // Added to floor-top height difference
	MaxSpeed float64 // Emission speed at full tilt
	Decay    float64 // Subtracted from emission speed every tick
}

// CupTuning is the default tuning for containers
var CupTuning = Tuning{
	Bias:     parameter.CupTiltBias,
	MaxSpeed: parameter.CupMaxPourSpeed,
	Decay:    parameter.EmissionDecay,
}

// Controller drains a container through its emitter when tilted
type Controller struct {
	top, floor Marker
	maxTilt    float64
	tuning     Tuning
}

// NewController samples the marker distance once as the full-tilt reference
// Missing markers or coincident markers are configuration errors
func NewController(name string, top, floor Marker, tuning Tuning) (*Controller, error) {
	maxTilt, err := calibrate(name, top, floor)
	if err != nil {
		return nil, err
	}
	return &Controller{top: top, floor: floor, maxTilt: maxTilt, tuning: tuning}, nil
}

func calibrate(name string, top, floor Marker) (float64, error) {
	if top == nil {
		return 0, core.NewConfigError(name, "missing top marker")
	}
	if floor == nil {
		return 0, core.NewConfigError(name, "missing floor marker")
	}
	d := vmath.V3FDist(top.Position(), floor.Position())
	if d <= 0 {
		return 0, core.NewConfigError(name, "top and floor markers coincide")
	}
	return d, nil
}

// Tilt returns max(0, floorY - topY + bias)
func (c *Controller) Tilt() float64 {
	return tilt(c.top, c.floor, c.tuning.Bias)
}

func tilt(top, floor Marker, bias float64) float64 {
	return math.Max(0, floor.Position().Y-top.Position().Y+bias)
}

// MaxTilt returns the calibrated full-tilt distance
func (c *Controller) MaxTilt() float64 {
	return c.maxTilt
}

// PourSpeed maps tilt to speed, scaled down as the container empties
// An empty container never pours
func (c *Controller) PourSpeed(level, capacity float64) float64 {
	if level <= 0 {
		return 0
	}
	fill := capacity / level
	return vmath.Map(c.Tilt(), 0, c.maxTilt*fill, 0, c.tuning.MaxSpeed)
}

// Tick drains the container by the pour speed and sets its emitter speed
// The emitter only ramps up when the drain actually applied, then decays linearly every tick
// Returns the resulting emission speed
func (c *Controller) Tick(ct *fluid.Container) float64 {
	em := ct.Emitter()
	level := ct.Level()

	speed := c.PourSpeed(level, ct.Capacity())
	if speed > 0 && level > 0 {
		if ct.Equalize(math.Max(0, level-speed)) {
			em.Speed = speed
		}
		ct.MarkDirty()
	}

	em.Speed = math.Max(0, em.Speed-c.tuning.Decay)
	return em.Speed
}
