package parameter

// Sandbox solver
const (
	// Gravity is downward acceleration in world units per second squared
	Gravity = 9.81

	// SandboxStep is the integration step in seconds, one per simulation tick
	SandboxStep = 0.02

	// EmitRate converts emission speed into particles per tick
	// One particle per speed unit matches the unit drained by a pour
	EmitRate = 1.0

	// EjectSpeed is the initial particle speed along the emitter direction
	EjectSpeed = 1.5

	// EjectSpread is the random lateral velocity jitter at spawn
	EjectSpread = 0.15

	// ParticleLifeTicks is the particle lifespan before the solver retires it
	ParticleLifeTicks = 400

	// ContactOffset is the speculative contact distance reported by the solver
	ContactOffset = 0.05

	// KillPlaneY retires particles that fall below it
	KillPlaneY = -5.0

	// DeathZoneY resets vessels whose body falls below it
	DeathZoneY = -1.0

	// SinkHalfHeight is half the height of a cup's killer collider below the rim
	SinkHalfHeight = 0.15

	// MouthOffset places the emitter past the rim, outside the cup's own sink
	MouthOffset = 0.4
)
