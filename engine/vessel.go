package engine

import (
	"github.com/lixenwraith/sirup/fluid"
	"github.com/lixenwraith/sirup/physics"
	"github.com/lixenwraith/sirup/pour"
)

// VesselKind distinguishes finite containers from inexhaustible sources
type VesselKind uint8

const (
	VesselCup VesselKind = iota
	VesselBottle
)

func (k VesselKind) String() string {
	switch k {
	case VesselCup:
		return "cup"
	case VesselBottle:
		return "bottle"
	}
	return "unknown"
}

// Vessel is a scene node owning a body, an emitter and, for cups, a container
// Name is the node owner used for sibling resolution and the self-routing guard
type Vessel struct {
	Name    string
	Kind    VesselKind
	Body    *physics.Body
	Emitter *fluid.Emitter

	// Cup only
	Container *fluid.Container
	Pour      *pour.Controller
	Sink      physics.ColliderID

	// Bottle only
	Bottle *pour.Bottle
}

// Tick runs the vessel's pour logic and returns the resulting emission speed
func (v *Vessel) Tick() float64 {
	switch v.Kind {
	case VesselCup:
		return v.Pour.Tick(v.Container)
	case VesselBottle:
		return v.Bottle.Tick()
	}
	return 0
}
