package systems

import (
	"sync/atomic"

	"github.com/lixenwraith/sirup/engine"
	"github.com/lixenwraith/sirup/parameter"
	"github.com/lixenwraith/sirup/status"
)

// RefreshSystem recomputes derived container state once per tick
// Clean containers are skipped
type RefreshSystem struct {
	engine.SystemBase

	statParticles *atomic.Int64
}

func NewRefreshSystem(world *engine.World) *RefreshSystem {
	return &RefreshSystem{
		SystemBase:    engine.NewSystemBase(world),
		statParticles: world.Status.Ints.Get(status.Particles),
	}
}

func (s *RefreshSystem) Priority() int {
	return parameter.PriorityRefresh
}

func (s *RefreshSystem) Update() {
	for _, v := range s.World.Vessels() {
		if v.Container != nil {
			v.Container.Refresh()
		}
	}
	s.statParticles.Store(int64(s.World.Registry.ParticleCount()))
}
