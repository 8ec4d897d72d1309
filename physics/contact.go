package physics

// ParticleID identifies a particle inside the solver
type ParticleID uint64

// ColliderID identifies a collider registered with the solver
type ColliderID uint64

// SourceID identifies a particle emitter
type SourceID uint64

// Contact is a near-touch between a particle and a collider within one step
// Distance is signed, negative when penetrating
type Contact struct {
	Particle ParticleID
	Collider ColliderID
	Distance float64
}

// ContactHandler receives the full contact batch of one solver step
// The slice is only valid for the duration of the call
type ContactHandler func(contacts []Contact)

// Solver is the particle engine as seen by the fluid core
// All calls happen on the simulation goroutine
type Solver interface {
	// Step advances the particle world one tick and publishes the contact batch to subscribers
	Step()

	// Subscribe registers a contact handler, the returned func removes it
	Subscribe(h ContactHandler) (unsubscribe func())

	// DestroyParticle zeroes the remaining lifespan, removal takes effect on the next step
	DestroyParticle(id ParticleID)

	// SetEmissionSpeed commands the emitter rate, negative values are treated as zero
	SetEmissionSpeed(src SourceID, speed float64)
}

// Hooks receive the solver's create/destroy notifications
// Registry implements Hooks to keep its reverse lookups aligned with particle lifetime
type Hooks interface {
	ParticleCreated(id ParticleID, src SourceID)
	ParticleDestroyed(id ParticleID)
}
