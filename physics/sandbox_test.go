package physics

import (
	"math"
	"testing"

	"github.com/lixenwraith/sirup/vmath"
)

type fixedAnchor vmath.Vec3F

func (a fixedAnchor) Position() vmath.Vec3F { return vmath.Vec3F(a) }

func down() vmath.Vec3F { return vmath.Vec3F{Y: -1} }

func TestBoxDistance(t *testing.T) {
	box := Box{Center: fixedAnchor{}, HalfW: 1, HalfH: 1}
	tests := []struct {
		name string
		p    vmath.Vec3F
		want float64
	}{
		{"center", vmath.Vec3F{}, -1},
		{"on edge", vmath.Vec3F{X: 1}, 0},
		{"outside right", vmath.Vec3F{X: 3}, 2},
		{"outside corner", vmath.Vec3F{X: 4, Y: 5}, 5},
		{"inside near top", vmath.Vec3F{Y: 0.9}, -0.1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := box.Distance(tt.p); math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("Distance() = %f, want %f", got, tt.want)
			}
		})
	}
}

func TestSandboxEmissionRate(t *testing.T) {
	reg := NewRegistry()
	s := NewSandbox(reg, 1)
	s.AddEmitter(7, fixedAnchor{Y: 100}, down)

	s.SetEmissionSpeed(7, 2.5)
	s.Step()
	s.Step()

	if got := s.ParticleCount(); got != 5 {
		t.Errorf("Expected 5 particles after two steps at speed 2.5, got %d", got)
	}
	if reg.ParticleCount() != 5 {
		t.Errorf("Expected registry to track 5 particles, got %d", reg.ParticleCount())
	}

	s.SetEmissionSpeed(7, -3)
	if s.EmissionSpeed(7) != 0 {
		t.Errorf("Expected negative speed clamped to 0, got %f", s.EmissionSpeed(7))
	}
}

func TestSandboxContactsAndDestroy(t *testing.T) {
	reg := NewRegistry()
	s := NewSandbox(reg, 1)
	s.AddCollider(3, Box{Center: fixedAnchor{}, HalfW: 1, HalfH: 1})

	id := s.SpawnParticle(9, vmath.Vec3F{}, vmath.Vec3F{})
	if src, ok := reg.Source(id); !ok || src != 9 {
		t.Fatalf("Expected particle to resolve to source 9, got %d, %v", src, ok)
	}

	var batches [][]Contact
	unsubscribe := s.Subscribe(func(contacts []Contact) {
		batches = append(batches, append([]Contact(nil), contacts...))
	})

	s.Step()
	if len(batches) != 1 || len(batches[0]) != 1 {
		t.Fatalf("Expected one batch with one contact, got %v", batches)
	}
	c := batches[0][0]
	if c.Particle != id || c.Collider != 3 || c.Distance >= 0 {
		t.Errorf("Unexpected contact %+v", c)
	}

	s.DestroyParticle(id)
	s.Step()
	if s.ParticleCount() != 0 {
		t.Errorf("Expected particle removed on step after destroy, got %d live", s.ParticleCount())
	}
	if _, ok := reg.Source(id); ok {
		t.Error("Expected registry entry removed with the particle")
	}

	unsubscribe()
	s.Step()
	if len(batches) != 2 {
		t.Errorf("Expected no delivery after unsubscribe, got %d batches", len(batches))
	}
}

func TestSandboxRetiresFallenParticles(t *testing.T) {
	s := NewSandbox(nil, 1)
	s.SpawnParticle(1, vmath.Vec3F{Y: -10}, vmath.Vec3F{})
	s.Step()
	if s.ParticleCount() != 0 {
		t.Errorf("Expected particle below kill plane retired, got %d", s.ParticleCount())
	}
}

func TestBodyMarkersFollowTilt(t *testing.T) {
	b := NewBody(vmath.Vec3F{X: 2}, 0, 1, 0.5)
	top, floor := b.Top(), b.Floor()

	if got := top.Position(); math.Abs(got.Y-1) > 1e-9 || math.Abs(got.X-2) > 1e-9 {
		t.Errorf("Expected upright top at (2, 1), got %+v", got)
	}

	b.Angle = math.Pi
	if got := top.Position(); math.Abs(got.Y+1) > 1e-9 {
		t.Errorf("Expected inverted top at y=-1, got %+v", got)
	}
	if floor.Position().Y <= top.Position().Y {
		t.Error("Expected floor above top when inverted")
	}

	b.Position = vmath.Vec3F{X: 9, Y: 9}
	b.Restore()
	if b.Position != (vmath.Vec3F{X: 2}) || b.Angle != 0 {
		t.Errorf("Expected rest pose restored, got %+v angle %f", b.Position, b.Angle)
	}
}
