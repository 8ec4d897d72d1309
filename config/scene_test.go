package config

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/lixenwraith/sirup/core"
	"github.com/lixenwraith/sirup/parameter"
)

func TestDefaultSceneIsValid(t *testing.T) {
	scene := Default()
	if err := scene.Validate(); err != nil {
		t.Fatalf("Expected default scene valid, got %v", err)
	}
	if len(scene.Cups) != 2 || len(scene.Bottles) != 2 {
		t.Errorf("Expected 2 cups and 2 bottles, got %d and %d", len(scene.Cups), len(scene.Bottles))
	}
}

func TestEncodeDecodeFormats(t *testing.T) {
	for _, format := range []Format{FormatTOML, FormatYAML} {
		var buf bytes.Buffer
		if err := Encode(&buf, Default(), format); err != nil {
			t.Fatalf("%s: Encode failed: %v", format, err)
		}
		scene, err := Decode(buf.Bytes(), format)
		if err != nil {
			t.Fatalf("%s: Decode failed: %v", format, err)
		}
		if scene.Bottles[0].Color != "#d0104c" {
			t.Errorf("%s: Expected bottle color #d0104c, got %q", format, scene.Bottles[0].Color)
		}
		if scene.Cups[1].X != 1 {
			t.Errorf("%s: Expected right cup at x=1, got %v", format, scene.Cups[1].X)
		}
	}
}

func TestDecodeFillsDefaults(t *testing.T) {
	src := `
[[cups]]
name = "solo"
capacity = 40
`
	scene, err := Decode([]byte(src), FormatTOML)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if scene.Tuning.KillerTag != parameter.KillerTag {
		t.Errorf("Expected default killer tag, got %q", scene.Tuning.KillerTag)
	}
	if scene.Cups[0].Height != defaultCupHeight {
		t.Errorf("Expected default cup height, got %v", scene.Cups[0].Height)
	}
	if scene.Floor.ResetDelayTicks != parameter.ResetDelayTicks {
		t.Errorf("Expected default reset delay, got %d", scene.Floor.ResetDelayTicks)
	}
}

func TestDecodeKeepsExplicitZeroTuning(t *testing.T) {
	src := `
[tuning]
decay = 0.0
cup_bias = 0.0
bottle_bias = 0.0

[[cups]]
name = "solo"
capacity = 40
`
	scene, err := Decode([]byte(src), FormatTOML)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	tn := scene.Tuning
	if tn.Decay != 0 || tn.CupBias != 0 || tn.BottleBias != 0 {
		t.Errorf("Expected explicit zeros kept, got decay=%v cup_bias=%v bottle_bias=%v", tn.Decay, tn.CupBias, tn.BottleBias)
	}
	if tn.CupMaxSpeed != parameter.CupMaxPourSpeed {
		t.Errorf("Expected omitted cup_max_speed to keep default, got %v", tn.CupMaxSpeed)
	}

	y, err := Decode([]byte("tuning: {decay: 0}\ncups: [{name: solo, capacity: 40}]"), FormatYAML)
	if err != nil {
		t.Fatalf("Decode YAML failed: %v", err)
	}
	if y.Tuning.Decay != 0 {
		t.Errorf("Expected YAML decay 0, got %v", y.Tuning.Decay)
	}
	if y.Tuning.BottleBias != parameter.BottleTiltBias {
		t.Errorf("Expected omitted bottle_bias to keep default, got %v", y.Tuning.BottleBias)
	}
}

func TestValidateRejects(t *testing.T) {
	tests := []struct {
		name   string
		yaml   string
		target string
	}{
		{"no vessels", "floor: {death_zone_y: -2}", "scene"},
		{"zero capacity", "cups: [{name: a}]", "a"},
		{"negative capacity", "cups: [{name: a, capacity: -5}]", "a"},
		{"duplicate", "cups: [{name: a, capacity: 1}]\nbottles: [{name: a, color: '#ff0000'}]", "a"},
		{"bad color", "bottles: [{name: b, color: red}]", "b"},
		{"reserved", "cups: [{name: sirup, capacity: 1}]", "sirup"},
		{"cup below death zone", "floor: {death_zone_y: -1}\ncups: [{name: low, capacity: 1, y: -2}]", "low"},
		{"bottle below death zone", "floor: {death_zone_y: 0.5}\nbottles: [{name: deep, color: '#ff0000', y: 0}]", "deep"},
	}

	for _, tt := range tests {
		_, err := Decode([]byte(tt.yaml), FormatYAML)
		var cfgErr *core.ConfigError
		if !errors.As(err, &cfgErr) {
			t.Errorf("%s: Expected ConfigError, got %v", tt.name, err)
			continue
		}
		if cfgErr.Component != tt.target {
			t.Errorf("%s: Expected component %q, got %q", tt.name, tt.target, cfgErr.Component)
		}
	}
}

func TestLoadByExtension(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bar.yml")
	data := "bottles:\n  - name: lime\n    color: '#32cd32'\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	scene, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(scene.Bottles) != 1 || scene.Bottles[0].Name != "lime" {
		t.Errorf("Expected one bottle named lime, got %+v", scene.Bottles)
	}

	if _, err := Load(filepath.Join(dir, "bar.ini")); err == nil {
		t.Error("Expected error for unknown extension")
	}

	bad := filepath.Join(dir, "bad.toml")
	if err := os.WriteFile(bad, []byte("[[cups]]\nname = \"x\"\ncapacity = 0\n"), 0o644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
	_, err = Load(bad)
	var cfgErr *core.ConfigError
	if !errors.As(err, &cfgErr) {
		t.Errorf("Expected wrapped ConfigError, got %v", err)
	}
}

func TestLoadEmptyPathReturnsDefault(t *testing.T) {
	scene, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(scene.Cups) != len(Default().Cups) {
		t.Errorf("Expected default cups, got %d", len(scene.Cups))
	}
}
