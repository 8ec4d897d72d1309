package physics

// Collider is the solver-side metadata of a collider
// Owner names the scene node the collider is attached to
type Collider struct {
	Owner string
	Tag   string
}

// Registry maps solver-scoped ids back to scene metadata
// Particle entries follow solver create/destroy hooks, collider entries follow Add/RemoveCollider
type Registry struct {
	colliders map[ColliderID]Collider
	particles map[ParticleID]SourceID
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{
		colliders: make(map[ColliderID]Collider),
		particles: make(map[ParticleID]SourceID),
	}
}

// AddCollider records collider metadata
func (r *Registry) AddCollider(id ColliderID, c Collider) {
	r.colliders[id] = c
}

// RemoveCollider forgets a collider
func (r *Registry) RemoveCollider(id ColliderID) {
	delete(r.colliders, id)
}

// Collider resolves a collider id
func (r *Registry) Collider(id ColliderID) (Collider, bool) {
	c, ok := r.colliders[id]
	return c, ok
}

// Source resolves the emitter that produced a live particle
func (r *Registry) Source(id ParticleID) (SourceID, bool) {
	src, ok := r.particles[id]
	return src, ok
}

// ParticleCreated implements Hooks
func (r *Registry) ParticleCreated(id ParticleID, src SourceID) {
	r.particles[id] = src
}

// ParticleDestroyed implements Hooks
func (r *Registry) ParticleDestroyed(id ParticleID) {
	delete(r.particles, id)
}

// ParticleCount returns the number of tracked live particles
func (r *Registry) ParticleCount() int {
	return len(r.particles)
}
