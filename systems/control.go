package systems

import (
	"github.com/lixenwraith/sirup/engine"
	"github.com/lixenwraith/sirup/event"
)

// ControlSystem applies queued tilt and move requests to vessel bodies
type ControlSystem struct {
	engine.SystemBase
}

func NewControlSystem(world *engine.World) *ControlSystem {
	return &ControlSystem{SystemBase: engine.NewSystemBase(world)}
}

func (s *ControlSystem) EventTypes() []event.EventType {
	return []event.EventType{event.EventTiltRequest}
}

func (s *ControlSystem) HandleEvent(w *engine.World, ev event.GameEvent) {
	p, ok := ev.Payload.(*event.TiltRequestPayload)
	if !ok {
		return
	}
	v, ok := w.Vessel(p.Vessel)
	if !ok || v.Body == nil {
		w.Log.Warn("tilt for unknown vessel", "vessel", p.Vessel)
		return
	}

	v.Body.Angle += p.Angle
	v.Body.Position.X += p.DX
	v.Body.Position.Y += p.DY
}
