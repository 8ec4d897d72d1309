// Package config loads scene descriptions from TOML or YAML files
package config

import (
	"math"
	"strings"

	"github.com/lixenwraith/sirup/core"
	"github.com/lixenwraith/sirup/parameter"
)

// Scene describes the vessels of one simulation and its tuning
type Scene struct {
	Tuning  Tuning       `toml:"tuning" yaml:"tuning"`
	Floor   Floor        `toml:"floor" yaml:"floor"`
	Cups    []CupSpec    `toml:"cups" yaml:"cups"`
	Bottles []BottleSpec `toml:"bottles" yaml:"bottles"`
}

// Tuning overrides pour and routing constants
// Files are decoded over DefaultTuning, so omitted keys keep the defaults and explicit zeros stay zero
type Tuning struct {
	KillerTag      string  `toml:"killer_tag" yaml:"killer_tag"`
	CupBias        float64 `toml:"cup_bias" yaml:"cup_bias"`
	CupMaxSpeed    float64 `toml:"cup_max_speed" yaml:"cup_max_speed"`
	Decay          float64 `toml:"decay" yaml:"decay"`
	BottleBias     float64 `toml:"bottle_bias" yaml:"bottle_bias"`
	BottleMaxSpeed float64 `toml:"bottle_max_speed" yaml:"bottle_max_speed"`
	Seed           uint64  `toml:"seed" yaml:"seed"`
}

// Floor is the death zone below which vessels are reset
type Floor struct {
	DeathZoneY      float64 `toml:"death_zone_y" yaml:"death_zone_y"`
	ResetDelayTicks int64   `toml:"reset_delay_ticks" yaml:"reset_delay_ticks"`
}

// CupSpec places a capacity-bounded container
type CupSpec struct {
	Name     string  `toml:"name" yaml:"name"`
	Capacity float64 `toml:"capacity" yaml:"capacity"`
	X        float64 `toml:"x" yaml:"x"`
	Y        float64 `toml:"y" yaml:"y"`
	Height   float64 `toml:"height" yaml:"height"`
	Width    float64 `toml:"width" yaml:"width"`
	Angle    float64 `toml:"angle" yaml:"angle"`
}

// BottleSpec places an inexhaustible source of one color
type BottleSpec struct {
	Name   string  `toml:"name" yaml:"name"`
	Color  string  `toml:"color" yaml:"color"` // #rrggbb or #rrggbbaa
	X      float64 `toml:"x" yaml:"x"`
	Y      float64 `toml:"y" yaml:"y"`
	Height float64 `toml:"height" yaml:"height"`
	Width  float64 `toml:"width" yaml:"width"`
	Angle  float64 `toml:"angle" yaml:"angle"`
}

const (
	defaultCupHeight    = 0.5
	defaultCupWidth     = 0.5
	defaultBottleHeight = 0.6
	defaultBottleWidth  = 0.2
)

// DefaultTuning returns the built-in tuning
func DefaultTuning() Tuning {
	return Tuning{
		KillerTag:      parameter.KillerTag,
		CupBias:        parameter.CupTiltBias,
		CupMaxSpeed:    parameter.CupMaxPourSpeed,
		Decay:          parameter.EmissionDecay,
		BottleBias:     parameter.BottleTiltBias,
		BottleMaxSpeed: parameter.BottleMaxPourSpeed,
		Seed:           1,
	}
}

// DefaultFloor returns the built-in death zone
func DefaultFloor() Floor {
	return Floor{
		DeathZoneY:      parameter.DeathZoneY,
		ResetDelayTicks: parameter.ResetDelayTicks,
	}
}

// Default returns the bar scene: two bottles held over two cups
func Default() Scene {
	return Scene{
		Tuning: DefaultTuning(),
		Floor:  DefaultFloor(),
		Cups: []CupSpec{
			{Name: "left", Capacity: parameter.ContainerCapacity, X: -1, Height: defaultCupHeight, Width: defaultCupWidth},
			{Name: "right", Capacity: parameter.ContainerCapacity, X: 1, Height: defaultCupHeight, Width: defaultCupWidth},
		},
		Bottles: []BottleSpec{
			{Name: "grenadine", Color: "#d0104c", X: -1, Y: 2, Height: defaultBottleHeight, Width: defaultBottleWidth},
			{Name: "curacao", Color: "#1f6fd0", X: 1, Y: 2, Height: defaultBottleHeight, Width: defaultBottleWidth},
		},
	}
}

// Normalize trims names and fills omitted geometry
// Zero is a valid tuning value, only an empty killer tag falls back to the default
func (s *Scene) Normalize() {
	t := &s.Tuning
	t.KillerTag = strings.TrimSpace(t.KillerTag)
	if t.KillerTag == "" {
		t.KillerTag = parameter.KillerTag
	}

	for i := range s.Cups {
		c := &s.Cups[i]
		c.Name = strings.TrimSpace(c.Name)
		fill(&c.Height, defaultCupHeight)
		fill(&c.Width, defaultCupWidth)
	}
	for i := range s.Bottles {
		b := &s.Bottles[i]
		b.Name = strings.TrimSpace(b.Name)
		b.Color = strings.TrimSpace(b.Color)
		fill(&b.Height, defaultBottleHeight)
		fill(&b.Width, defaultBottleWidth)
	}
}

func fill(v *float64, def float64) {
	if *v == 0 {
		*v = def
	}
}

// Validate reports the first configuration problem as a *core.ConfigError
func (s *Scene) Validate() error {
	if len(s.Cups)+len(s.Bottles) == 0 {
		return core.NewConfigError("scene", "no vessels")
	}
	if s.Tuning.Decay < 0 || s.Tuning.CupMaxSpeed < 0 || s.Tuning.BottleMaxSpeed < 0 {
		return core.NewConfigError("tuning", "negative speed or decay")
	}
	if s.Floor.ResetDelayTicks < 0 {
		return core.NewConfigError("floor", "negative reset delay %d", s.Floor.ResetDelayTicks)
	}

	seen := make(map[string]bool, len(s.Cups)+len(s.Bottles))
	name := func(kind, n string) error {
		if n == "" {
			return core.NewConfigError(kind, "empty name")
		}
		if n == parameter.ContainerNodeName {
			return core.NewConfigError(n, "name is reserved")
		}
		if seen[n] {
			return core.NewConfigError(n, "duplicate vessel name")
		}
		seen[n] = true
		return nil
	}

	for _, c := range s.Cups {
		if err := name("cup", c.Name); err != nil {
			return err
		}
		if !(c.Capacity > 0) || math.IsInf(c.Capacity, 0) {
			return core.NewConfigError(c.Name, "capacity must be positive, got %v", c.Capacity)
		}
		if c.Height <= 0 || c.Width <= 0 {
			return core.NewConfigError(c.Name, "non-positive size")
		}
		if c.Y < s.Floor.DeathZoneY {
			return core.NewConfigError(c.Name, "rests at y=%v below death zone %v", c.Y, s.Floor.DeathZoneY)
		}
	}
	for _, b := range s.Bottles {
		if err := name("bottle", b.Name); err != nil {
			return err
		}
		if _, err := core.ParseHex(b.Color); err != nil {
			return core.NewConfigError(b.Name, "bad color %q", b.Color)
		}
		if b.Height <= 0 || b.Width <= 0 {
			return core.NewConfigError(b.Name, "non-positive size")
		}
		if b.Y < s.Floor.DeathZoneY {
			return core.NewConfigError(b.Name, "rests at y=%v below death zone %v", b.Y, s.Floor.DeathZoneY)
		}
	}
	return nil
}
