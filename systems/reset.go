package systems

import (
	"sync/atomic"

	"github.com/lixenwraith/sirup/engine"
	"github.com/lixenwraith/sirup/event"
	"github.com/lixenwraith/sirup/parameter"
	"github.com/lixenwraith/sirup/status"
)

// ResetSystem empties containers and restores vessel poses
// Vessels that fall below the death zone are scheduled for a delayed reset
type ResetSystem struct {
	engine.SystemBase

	deathZoneY float64
	delayTicks int64

	// Vessel name to due tick
	pending map[string]int64

	statResets *atomic.Int64
}

func NewResetSystem(world *engine.World) *ResetSystem {
	return &ResetSystem{
		SystemBase: engine.NewSystemBase(world),
		deathZoneY: parameter.DeathZoneY,
		delayTicks: parameter.ResetDelayTicks,
		pending:    make(map[string]int64),
		statResets: world.Status.Ints.Get(status.Resets),
	}
}

// SetDeathZone overrides the death zone height and reset delay
func (s *ResetSystem) SetDeathZone(y float64, delayTicks int64) {
	s.deathZoneY = y
	s.delayTicks = max(0, delayTicks)
}

func (s *ResetSystem) Priority() int {
	return parameter.PriorityReset
}

func (s *ResetSystem) EventTypes() []event.EventType {
	return []event.EventType{event.EventContainerReset, event.EventRoundReset}
}

func (s *ResetSystem) HandleEvent(w *engine.World, ev event.GameEvent) {
	switch ev.Type {
	case event.EventContainerReset:
		p, ok := ev.Payload.(*event.ContainerResetPayload)
		if !ok {
			return
		}
		if _, ok := w.Vessel(p.Vessel); !ok {
			w.Log.Warn("reset for unknown vessel", "vessel", p.Vessel)
			return
		}
		s.schedule(p.Vessel, w.CurrentTick()+max(0, p.DelayTicks))

	case event.EventRoundReset:
		clear(s.pending)
		for _, v := range w.Vessels() {
			s.reset(v)
		}
		w.Log.Info("round reset", "tick", w.CurrentTick())
	}
}

// Pending reports whether a reset is scheduled for the vessel and when
func (s *ResetSystem) Pending(name string) (int64, bool) {
	due, ok := s.pending[name]
	return due, ok
}

func (s *ResetSystem) Update() {
	w := s.World
	now := w.CurrentTick()

	for _, v := range w.Vessels() {
		if due, ok := s.pending[v.Name]; ok {
			if now >= due {
				delete(s.pending, v.Name)
				s.reset(v)
				w.Log.Debug("vessel reset", "vessel", v.Name, "tick", now)
			}
			continue
		}

		if v.Body != nil && v.Body.Position.Y < s.deathZoneY {
			s.schedule(v.Name, now+s.delayTicks)
			w.Log.Info("vessel entered death zone", "vessel", v.Name, "y", v.Body.Position.Y)
		}
	}
}

// schedule keeps the earliest due tick when a reset is already pending
func (s *ResetSystem) schedule(name string, due int64) {
	if cur, ok := s.pending[name]; ok && cur <= due {
		return
	}
	s.pending[name] = due
}

func (s *ResetSystem) reset(v *engine.Vessel) {
	if v.Container != nil {
		v.Container.Reset()
	}
	if v.Body != nil {
		v.Body.Restore()
	}
	v.Emitter.Speed = 0
	s.World.Solver.SetEmissionSpeed(v.Emitter.Source, 0)
	s.statResets.Add(1)
}
