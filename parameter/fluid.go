package parameter

// Container composition
const (
	// ContainerCapacity is the default unit capacity of a cup
	ContainerCapacity = 100

	// OvershootMargin is subtracted from capacity when an addition overflows
	// Equalization shrinks to capacity - OvershootMargin so the next few additions fit
	OvershootMargin = 3.0

	// EqualizeEpsilon is the minimum overhead for an equalization pass to apply
	EqualizeEpsilon = 0.1

	// OverflowRestartSpeed is the emission speed forced after an overflow
	OverflowRestartSpeed = 1.0

	// MixedColorMinAlpha gates pushing the mixed color to emitter and renderer
	// Washed-out tints never overwrite the last visible color
	MixedColorMinAlpha = 0.1
)

// Pouring
const (
	// CupTiltBias is added to floor-top height difference for cups
	CupTiltBias = 0.1

	// CupMaxPourSpeed is the emission speed at full tilt for a full cup
	CupMaxPourSpeed = 8.0

	// BottleTiltBias is added to floor-top height difference for bottles
	BottleTiltBias = 0.05

	// BottleMaxPourSpeed is the emission speed of a bottle at full tilt
	BottleMaxPourSpeed = 5.0

	// EmissionDecay is subtracted from every emitter speed each tick
	EmissionDecay = 0.1
)

// Routing
const (
	// ContactDistanceMax filters speculative contacts, only near-penetrating ones route
	ContactDistanceMax = 0.01

	// KillerTag marks colliders that absorb particles into the sibling container
	KillerTag = "Spongebob"

	// ContainerNodeName is the sibling node name resolved from a killer collider owner
	ContainerNodeName = "sirup"
)
