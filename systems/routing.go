package systems

import (
	"sync/atomic"

	"github.com/lixenwraith/sirup/engine"
	"github.com/lixenwraith/sirup/parameter"
	"github.com/lixenwraith/sirup/physics"
	"github.com/lixenwraith/sirup/status"
)

// RoutingSystem turns solver contacts against sink colliders into container additions
// It runs inside the solver's contact callback, not in the system update pass
type RoutingSystem struct {
	engine.SystemBase

	killerTag   string
	maxDistance float64
	unsubscribe func()

	statContacts  *atomic.Int64
	statHits      *atomic.Int64
	statMisses    *atomic.Int64
	statSelf      *atomic.Int64
	statOverflows *atomic.Int64
}

// NewRoutingSystem creates a detector matching colliders tagged killerTag
// An empty tag uses the default sink tag
func NewRoutingSystem(world *engine.World, killerTag string) *RoutingSystem {
	if killerTag == "" {
		killerTag = parameter.KillerTag
	}
	ints := world.Status.Ints
	return &RoutingSystem{
		SystemBase:  engine.NewSystemBase(world),
		killerTag:   killerTag,
		maxDistance: parameter.ContactDistanceMax,

		statContacts:  ints.Get(status.RouteContacts),
		statHits:      ints.Get(status.RouteHits),
		statMisses:    ints.Get(status.RouteMisses),
		statSelf:      ints.Get(status.RouteSelf),
		statOverflows: ints.Get(status.Overflows),
	}
}

// Attach subscribes to the solver contact stream, repeated calls are no-ops
func (s *RoutingSystem) Attach() {
	if s.unsubscribe != nil {
		return
	}
	s.unsubscribe = s.World.Solver.Subscribe(s.HandleContacts)
}

// Detach unsubscribes from the solver
func (s *RoutingSystem) Detach() {
	if s.unsubscribe == nil {
		return
	}
	s.unsubscribe()
	s.unsubscribe = nil
}

// Attached reports whether the detector is subscribed
func (s *RoutingSystem) Attached() bool {
	return s.unsubscribe != nil
}

// HandleContacts processes one contact batch in order
// Duplicate contacts for one particle are each processed
func (s *RoutingSystem) HandleContacts(contacts []physics.Contact) {
	for _, c := range contacts {
		s.statContacts.Add(1)
		s.route(c)
	}
}

func (s *RoutingSystem) route(c physics.Contact) {
	w := s.World

	// Speculative contacts are reported before touching
	if c.Distance >= s.maxDistance {
		return
	}

	collider, ok := w.Registry.Collider(c.Collider)
	if !ok {
		s.miss("unregistered collider", "collider", c.Collider)
		return
	}
	if collider.Tag != s.killerTag {
		return
	}

	// The particle has reached a sink whether or not it can be attributed
	w.Solver.DestroyParticle(c.Particle)

	src, ok := w.Registry.Source(c.Particle)
	if !ok {
		s.miss("unknown particle", "particle", c.Particle)
		return
	}
	emitter, ok := w.Emitter(src)
	if !ok {
		s.miss("unknown emitter", "source", src)
		return
	}

	target, ok := w.Child(collider.Owner, parameter.ContainerNodeName)
	if !ok {
		s.miss("sink without container", "owner", collider.Owner)
		return
	}

	if emitter.Owner == collider.Owner {
		s.statSelf.Add(1)
		return
	}

	color, ok := emitter.Color()
	if !ok {
		s.miss("emitter has no color", "owner", emitter.Owner)
		return
	}

	if target.AddParticle(color) {
		s.statOverflows.Add(1)
		w.Log.Debug("container overflow", "owner", collider.Owner, "level", target.Level())
	}
	s.statHits.Add(1)
}

func (s *RoutingSystem) miss(reason string, keyvals ...any) {
	s.statMisses.Add(1)
	s.World.Log.Debug("routing miss", append([]any{"reason", reason}, keyvals...)...)
}
