package systems

import (
	"github.com/lixenwraith/sirup/engine"
	"github.com/lixenwraith/sirup/parameter"
	"github.com/lixenwraith/sirup/status"
)

// PourSystem converts each vessel's tilt into emission speed and hands it to the solver
// Runs after the contact batch so pouring sees this tick's additions
type PourSystem struct {
	engine.SystemBase
}

func NewPourSystem(world *engine.World) *PourSystem {
	return &PourSystem{SystemBase: engine.NewSystemBase(world)}
}

func (s *PourSystem) Priority() int {
	return parameter.PriorityPour
}

func (s *PourSystem) Update() {
	gauges := s.World.Status.Gauges
	for _, v := range s.World.Vessels() {
		speed := v.Tick()
		s.World.Solver.SetEmissionSpeed(v.Emitter.Source, speed)
		gauges.Get(status.PourSpeed(v.Name)).Store(speed)
	}
}
