package event

// ContainerResetPayload names the vessel to reset
// DelayTicks postpones the reset, 0 resets on the next dispatch
type ContainerResetPayload struct {
	Vessel     string `toml:"vessel" yaml:"vessel"`
	DelayTicks int64  `toml:"delay_ticks" yaml:"delay_ticks"`
}

// TiltRequestPayload adjusts a vessel pose by deltas
type TiltRequestPayload struct {
	Vessel string  `toml:"vessel" yaml:"vessel"`
	Angle  float64 `toml:"angle" yaml:"angle"` // Radians, counter-clockwise
	DX     float64 `toml:"dx" yaml:"dx"`
	DY     float64 `toml:"dy" yaml:"dy"`
}
