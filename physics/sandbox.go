package physics

import (
	"math"

	"github.com/lixenwraith/sirup/parameter"
	"github.com/lixenwraith/sirup/vmath"
)

// Anchor is anything with a world position
type Anchor interface {
	Position() vmath.Vec3F
}

// Shape reports signed distance from a world point, negative inside
type Shape interface {
	Distance(p vmath.Vec3F) float64
}

// Box is an axis-aligned box centered on an anchor
type Box struct {
	Center Anchor
	Offset vmath.Vec3F
	HalfW  float64
	HalfH  float64
}

// Distance implements Shape
func (b Box) Distance(p vmath.Vec3F) float64 {
	c := vmath.V3FAdd(b.Center.Position(), b.Offset)
	dx := math.Abs(p.X-c.X) - b.HalfW
	dy := math.Abs(p.Y-c.Y) - b.HalfH
	outside := math.Hypot(math.Max(dx, 0), math.Max(dy, 0))
	inside := math.Min(math.Max(dx, dy), 0)
	return outside + inside
}

type sandboxEmitter struct {
	id    SourceID
	mouth Anchor
	dir   func() vmath.Vec3F
	speed float64
	accum float64
}

type sandboxCollider struct {
	id    ColliderID
	shape Shape
}

type sandboxParticle struct {
	id   ParticleID
	src  SourceID
	pos  vmath.Vec3F
	vel  vmath.Vec3F
	life int
}

type subscription struct {
	id int
	h  ContactHandler
}

// Sandbox is a minimal 2D particle world implementing Solver
// Emitters spawn speed*EmitRate particles per step, particles fall under gravity,
// contacts within ContactOffset of any collider are published once per step
type Sandbox struct {
	hooks Hooks
	rng   *vmath.FastRand

	emitters  []*sandboxEmitter
	colliders []sandboxCollider
	particles []*sandboxParticle

	subs    []subscription
	nextSub int

	nextParticle ParticleID
	steps        int64
	contacts     []Contact
}

// NewSandbox creates an empty sandbox, hooks may be nil
func NewSandbox(hooks Hooks, seed uint64) *Sandbox {
	return &Sandbox{
		hooks: hooks,
		rng:   vmath.NewFastRand(seed),
	}
}

// AddEmitter registers a particle source at mouth shooting along dir
func (s *Sandbox) AddEmitter(id SourceID, mouth Anchor, dir func() vmath.Vec3F) {
	s.emitters = append(s.emitters, &sandboxEmitter{id: id, mouth: mouth, dir: dir})
}

// AddCollider registers a collider shape
func (s *Sandbox) AddCollider(id ColliderID, shape Shape) {
	s.colliders = append(s.colliders, sandboxCollider{id: id, shape: shape})
}

// Subscribe implements Solver
func (s *Sandbox) Subscribe(h ContactHandler) func() {
	s.nextSub++
	id := s.nextSub
	s.subs = append(s.subs, subscription{id: id, h: h})
	return func() {
		for i, sub := range s.subs {
			if sub.id == id {
				s.subs = append(s.subs[:i:i], s.subs[i+1:]...)
				return
			}
		}
	}
}

// DestroyParticle implements Solver
func (s *Sandbox) DestroyParticle(id ParticleID) {
	for _, p := range s.particles {
		if p.id == id {
			p.life = 0
			return
		}
	}
}

// SetEmissionSpeed implements Solver
func (s *Sandbox) SetEmissionSpeed(src SourceID, speed float64) {
	for _, e := range s.emitters {
		if e.id == src {
			e.speed = math.Max(0, speed)
			return
		}
	}
}

// EmissionSpeed returns the last commanded speed of src
func (s *Sandbox) EmissionSpeed(src SourceID) float64 {
	for _, e := range s.emitters {
		if e.id == src {
			return e.speed
		}
	}
	return 0
}

// SpawnParticle injects a particle directly, used by scripted scenarios
func (s *Sandbox) SpawnParticle(src SourceID, pos, vel vmath.Vec3F) ParticleID {
	s.nextParticle++
	p := &sandboxParticle{
		id:   s.nextParticle,
		src:  src,
		pos:  pos,
		vel:  vel,
		life: parameter.ParticleLifeTicks,
	}
	s.particles = append(s.particles, p)
	if s.hooks != nil {
		s.hooks.ParticleCreated(p.id, src)
	}
	return p.id
}

// Step implements Solver
func (s *Sandbox) Step() {
	s.retire()
	s.emit()
	s.integrate()
	s.collect()

	subs := append([]subscription(nil), s.subs...)
	for _, sub := range subs {
		sub.h(s.contacts)
	}
	s.steps++
}

// Steps returns the number of completed steps
func (s *Sandbox) Steps() int64 {
	return s.steps
}

// ParticleCount returns the number of live particles
func (s *Sandbox) ParticleCount() int {
	return len(s.particles)
}

// EachParticle visits live particles in spawn order
func (s *Sandbox) EachParticle(fn func(id ParticleID, src SourceID, pos vmath.Vec3F)) {
	for _, p := range s.particles {
		fn(p.id, p.src, p.pos)
	}
}

// retire removes particles whose lifespan ran out or that left the world
func (s *Sandbox) retire() {
	live := s.particles[:0]
	for _, p := range s.particles {
		if p.life <= 0 || p.pos.Y < parameter.KillPlaneY {
			if s.hooks != nil {
				s.hooks.ParticleDestroyed(p.id)
			}
			continue
		}
		live = append(live, p)
	}
	for i := len(live); i < len(s.particles); i++ {
		s.particles[i] = nil
	}
	s.particles = live
}

func (s *Sandbox) emit() {
	for _, e := range s.emitters {
		if e.speed <= 0 {
			e.accum = 0
			continue
		}
		e.accum += e.speed * parameter.EmitRate
		n := int(e.accum)
		e.accum -= float64(n)

		origin := e.mouth.Position()
		dir := e.dir()
		for i := 0; i < n; i++ {
			vel := vmath.V3FScale(dir, parameter.EjectSpeed)
			vel.X += s.rng.Spread(parameter.EjectSpread)
			vel.Y += s.rng.Spread(parameter.EjectSpread)
			s.SpawnParticle(e.id, origin, vel)
		}
	}
}

func (s *Sandbox) integrate() {
	dt := parameter.SandboxStep
	for _, p := range s.particles {
		p.vel.Y -= parameter.Gravity * dt
		p.pos = vmath.V3FAdd(p.pos, vmath.V3FScale(p.vel, dt))
		p.life--
	}
}

func (s *Sandbox) collect() {
	s.contacts = s.contacts[:0]
	for _, p := range s.particles {
		if p.life <= 0 {
			continue
		}
		for _, c := range s.colliders {
			d := c.shape.Distance(p.pos)
			if d < parameter.ContactOffset {
				s.contacts = append(s.contacts, Contact{Particle: p.id, Collider: c.id, Distance: d})
			}
		}
	}
}
