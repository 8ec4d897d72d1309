package engine

import (
	"io"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/lixenwraith/sirup/core"
	"github.com/lixenwraith/sirup/event"
	"github.com/lixenwraith/sirup/fluid"
	"github.com/lixenwraith/sirup/parameter"
	"github.com/lixenwraith/sirup/physics"
	"github.com/lixenwraith/sirup/status"
)

// World owns the vessels, the solver handle and shared resources of one simulation
// All mutation happens on the simulation goroutine under the update mutex
type World struct {
	Log      *log.Logger
	Solver   physics.Solver
	Registry *physics.Registry
	Status   *status.Registry
	Events   *event.EventQueue

	tick int64

	vessels []*Vessel
	byName  map[string]*Vessel
	sources map[physics.SourceID]*fluid.Emitter

	systems     []System
	updateMutex sync.Mutex
}

// NewWorld creates a world around a solver and its registry
// A nil logger discards output
func NewWorld(solver physics.Solver, registry *physics.Registry, logger *log.Logger) *World {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &World{
		Log:      logger,
		Solver:   solver,
		Registry: registry,
		Status:   status.NewRegistry(),
		Events:   event.NewEventQueue(),
		byName:   make(map[string]*Vessel),
		sources:  make(map[physics.SourceID]*fluid.Emitter),
	}
}

// AddVessel registers a vessel and its emitter
// Duplicate names and emitter ids are configuration errors
func (w *World) AddVessel(v *Vessel) error {
	if v.Name == "" {
		return core.NewConfigError("vessel", "empty name")
	}
	if _, ok := w.byName[v.Name]; ok {
		return core.NewConfigError(v.Name, "duplicate vessel name")
	}
	if v.Emitter == nil {
		return core.NewConfigError(v.Name, "missing emitter")
	}
	if _, ok := w.sources[v.Emitter.Source]; ok {
		return core.NewConfigError(v.Name, "duplicate emitter source %d", v.Emitter.Source)
	}
	if v.Kind == VesselCup && (v.Container == nil || v.Pour == nil) {
		return core.NewConfigError(v.Name, "cup without container or pour controller")
	}
	if v.Kind == VesselBottle && v.Bottle == nil {
		return core.NewConfigError(v.Name, "bottle without pour source")
	}

	w.vessels = append(w.vessels, v)
	w.byName[v.Name] = v
	w.sources[v.Emitter.Source] = v.Emitter
	return nil
}

// Vessel returns a vessel by name
func (w *World) Vessel(name string) (*Vessel, bool) {
	v, ok := w.byName[name]
	return v, ok
}

// Vessels returns vessels in registration order, the slice must not be modified
func (w *World) Vessels() []*Vessel {
	return w.vessels
}

// Child resolves a named child node of owner to its container
// Only the container node of a cup resolves
func (w *World) Child(owner, node string) (*fluid.Container, bool) {
	if node != parameter.ContainerNodeName {
		return nil, false
	}
	v, ok := w.byName[owner]
	if !ok || v.Container == nil {
		return nil, false
	}
	return v.Container, true
}

// Emitter resolves a solver source to its domain emitter
func (w *World) Emitter(src physics.SourceID) (*fluid.Emitter, bool) {
	e, ok := w.sources[src]
	return e, ok
}

// CurrentTick returns the number of completed ticks
func (w *World) CurrentTick() int64 {
	return w.tick
}

// AddSystem adds a system and keeps the list sorted by priority
func (w *World) AddSystem(system System) {
	w.systems = append(w.systems, system)

	// Insertion sort, stable for equal priorities
	for i := len(w.systems) - 1; i > 0 && w.systems[i-1].Priority() > w.systems[i].Priority(); i-- {
		w.systems[i-1], w.systems[i] = w.systems[i], w.systems[i-1]
	}
}

// Systems returns a copy of all registered systems
func (w *World) Systems() []System {
	result := make([]System, len(w.systems))
	copy(result, w.systems)
	return result
}

// RunSafe executes a function while holding the world's update lock
func (w *World) RunSafe(fn func()) {
	w.updateMutex.Lock()
	defer w.updateMutex.Unlock()
	fn()
}

// UpdateLocked runs all systems assuming the caller already holds the update lock
func (w *World) UpdateLocked() {
	for _, system := range w.systems {
		system.Update()
	}
}
