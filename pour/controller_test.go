package pour

import (
	"errors"
	"math"
	"testing"

	"github.com/lixenwraith/sirup/core"
	"github.com/lixenwraith/sirup/fluid"
	"github.com/lixenwraith/sirup/vmath"
)

type stubMarker struct {
	y float64
}

func (m *stubMarker) Position() vmath.Vec3F { return vmath.Vec3F{Y: m.y} }

// newRig returns a controller calibrated upright with unit height
func newRig(t *testing.T) (*Controller, *stubMarker, *stubMarker) {
	t.Helper()
	top, floor := &stubMarker{y: 1}, &stubMarker{y: 0}
	c, err := NewController("cup", top, floor, CupTuning)
	if err != nil {
		t.Fatalf("NewController failed: %v", err)
	}
	return c, top, floor
}

func fill(ct *fluid.Container, n int) {
	for i := 0; i < n; i++ {
		ct.AddParticle(core.Red)
	}
}

func TestNewControllerMissingMarker(t *testing.T) {
	_, err := NewController("cup", nil, &stubMarker{}, CupTuning)
	var cfgErr *core.ConfigError
	if !errors.As(err, &cfgErr) {
		t.Fatalf("Expected ConfigError, got %v", err)
	}
	if cfgErr.Component != "cup" {
		t.Errorf("Expected component cup, got %s", cfgErr.Component)
	}

	if _, err := NewController("cup", &stubMarker{}, &stubMarker{}, CupTuning); err == nil {
		t.Error("Expected error for coincident markers")
	}
}

func TestUprightCupDoesNotPour(t *testing.T) {
	c, _, _ := newRig(t)
	ct := fluid.NewContainer(100, nil)
	fill(ct, 100)
	ct.Emitter().Speed = 0.5

	got := c.Tick(ct)
	if math.Abs(got-0.4) > 1e-9 {
		t.Errorf("Expected decayed speed 0.4, got %f", got)
	}
	if ct.Level() != 100 {
		t.Errorf("Expected level untouched, got %f", ct.Level())
	}
}

func TestEmptyContainerGuard(t *testing.T) {
	c, top, floor := newRig(t)
	top.y, floor.y = 0, 1

	ct := fluid.NewContainer(100, nil)
	if s := c.PourSpeed(0, 100); s != 0 {
		t.Errorf("Expected 0 pour speed for empty container, got %f", s)
	}
	got := c.Tick(ct)
	if got != 0 || math.IsNaN(got) {
		t.Errorf("Expected emission 0, got %f", got)
	}
}

func TestInvertedFullCupPours(t *testing.T) {
	c, top, floor := newRig(t)
	top.y, floor.y = 0, 1

	ct := fluid.NewContainer(100, nil)
	fill(ct, 100)
	ct.Refresh()

	// tilt 1.1 over maxTilt 1 at fill factor 1 maps to 8.8
	got := c.Tick(ct)
	if math.Abs(got-8.7) > 1e-9 {
		t.Errorf("Expected ramp to 8.8 then decay to 8.7, got %f", got)
	}
	if math.Abs(ct.Level()-91.2) > 1e-9 {
		t.Errorf("Expected level 91.2, got %f", ct.Level())
	}
	if !ct.Dirty() {
		t.Error("Expected pour to mark container dirty")
	}
}

func TestFillFactorSlowsEmptyingCup(t *testing.T) {
	c, top, floor := newRig(t)
	top.y, floor.y = 0, 1

	full := c.PourSpeed(100, 100)
	half := c.PourSpeed(50, 100)
	if math.Abs(half-full/2) > 1e-9 {
		t.Errorf("Expected half-full cup to pour at half speed, got %f vs %f", half, full)
	}
}

func TestSkippedEqualizationOnlyDecays(t *testing.T) {
	c, top, floor := newRig(t)
	top.y, floor.y = 0.5, 0.405

	ct := fluid.NewContainer(100, nil)
	fill(ct, 100)
	ct.Refresh()
	ct.Emitter().Speed = 0.05

	speed := c.PourSpeed(ct.Level(), ct.Capacity())
	if speed <= 0 || speed > 0.1 {
		t.Fatalf("Expected tiny positive pour speed, got %f", speed)
	}

	got := c.Tick(ct)
	if got != 0 {
		t.Errorf("Expected speed to decay to 0 without ramp, got %f", got)
	}
	if ct.Level() != 100 {
		t.Errorf("Expected level untouched, got %f", ct.Level())
	}
	if !ct.Dirty() {
		t.Error("Expected pour branch to mark dirty even when skipped")
	}
}

func TestRepeatedPourSettlesAtEpsilon(t *testing.T) {
	c, top, floor := newRig(t)
	top.y, floor.y = 0, 1

	ct := fluid.NewContainer(100, nil)
	fill(ct, 100)

	// Pour speed shrinks with the level, draining stops once it falls within epsilon
	for i := 0; i < 1000; i++ {
		c.Tick(ct)
	}
	if ct.Level() <= 0 {
		t.Fatalf("Expected a residue, got level %f", ct.Level())
	}
	if residual := c.PourSpeed(ct.Level(), ct.Capacity()); residual > 0.1 {
		t.Errorf("Expected residual pour speed within epsilon, got %f", residual)
	}
	if float64(ct.Total()) > ct.Level() {
		t.Errorf("Composition total %d exceeds level %f", ct.Total(), ct.Level())
	}
	if ct.Emitter().Speed != 0 {
		t.Errorf("Expected emitter decayed to 0, got %f", ct.Emitter().Speed)
	}
}

func TestBottleSpeedFollowsTilt(t *testing.T) {
	top, floor := &stubMarker{y: 1}, &stubMarker{y: 0}
	b, err := NewBottle("bottle", fluid.NewColoredEmitter(1, "bottle", core.Red), top, floor, BottleTuning)
	if err != nil {
		t.Fatalf("NewBottle failed: %v", err)
	}

	if got := b.Tick(); got != 0 {
		t.Errorf("Expected upright bottle speed 0, got %f", got)
	}

	top.y, floor.y = 0, 1
	if got := b.Tick(); math.Abs(got-5.25) > 1e-9 {
		t.Errorf("Expected 5.25, got %f", got)
	}
	if b.Emitter().Speed != b.Tick() {
		t.Error("Expected emitter speed to mirror Tick result")
	}
}
