package parameter

import "time"

// Game Loop & Engine Timing
const (
	// FrameUpdateInterval is the rendering frame rate interval (~60 FPS)
	FrameUpdateInterval = 16 * time.Millisecond

	// GameUpdateInterval is the simulation tick interval
	GameUpdateInterval = 20 * time.Millisecond

	// TicksPerSecond is derived from GameUpdateInterval
	TicksPerSecond = int(time.Second / GameUpdateInterval)
)

// ECS & Resources Limits
const (
	// EventQueueSize is the fixed capacity of the event ring buffer
	EventQueueSize = 256

	// EventBufferMask is the bitmask for fast modulo operations (256 - 1)
	EventBufferMask = 255
)

// Reset
const (
	// ResetDelay is the wait before a vessel that fell into the death zone is restored
	ResetDelay = 2 * time.Second

	// ResetDelayTicks is ResetDelay expressed in simulation ticks
	ResetDelayTicks = int64(ResetDelay / GameUpdateInterval)
)
