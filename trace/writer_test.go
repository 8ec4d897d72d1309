package trace

import (
	"bytes"
	"context"
	"math"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/lixenwraith/sirup/config"
	"github.com/lixenwraith/sirup/core"
	"github.com/lixenwraith/sirup/scene"
)

func TestTraceRecordsEveryTick(t *testing.T) {
	sim, err := scene.Build(config.Default(), nil, 0)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	defer sim.Close()
	bottle, _ := sim.World.Vessel("curacao")
	bottle.Body.Angle = math.Pi

	path := filepath.Join(t.TempDir(), "run", "trace.jsonl.zst")
	runID := uuid.New()
	tw, err := Create(path, runID, 20*time.Millisecond)
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	sim.Scheduler.Observe(tw.Observer())

	if err := sim.Scheduler.RunTicks(context.Background(), 60); err != nil {
		t.Fatalf("RunTicks failed: %v", err)
	}
	if err := tw.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer f.Close()

	header, ticks, err := ReadAll(f)
	if err != nil {
		t.Fatalf("ReadAll failed: %v", err)
	}
	if header.RunID != runID.String() {
		t.Errorf("Expected run id %s, got %s", runID, header.RunID)
	}
	if header.Interval != "20ms" {
		t.Errorf("Expected interval 20ms, got %s", header.Interval)
	}
	if len(ticks) != 60 {
		t.Fatalf("Expected 60 tick records, got %d", len(ticks))
	}
	for i, rec := range ticks {
		if rec.Tick != int64(i+1) {
			t.Fatalf("Expected tick %d at line %d, got %d", i+1, i+2, rec.Tick)
		}
	}

	last := ticks[len(ticks)-1]
	if len(last.Vessels) != 4 {
		t.Fatalf("Expected 4 vessels, got %d", len(last.Vessels))
	}
	var right *VesselState
	for i := range last.Vessels {
		if last.Vessels[i].Name == "right" {
			right = &last.Vessels[i]
		}
	}
	if right == nil || right.Level <= 0 {
		t.Fatalf("Expected the right cup filled by curacao, got %+v", right)
	}
	if len(right.Composition) == 0 || right.Composition[0].Hex != "#1f6fd0ff" || right.Composition[0].Count == 0 {
		t.Errorf("Expected curacao units in composition, got %+v", right.Composition)
	}
	if last.Metrics["route.hits"] == 0 {
		t.Errorf("Expected route.hits in metrics, got %v", last.Metrics)
	}
}

func TestWriterRejectsAfterClose(t *testing.T) {
	var buf bytes.Buffer
	tw, err := NewWriter(&buf, uuid.New(), time.Second)
	if err != nil {
		t.Fatalf("NewWriter failed: %v", err)
	}
	if err := tw.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}
	if err := tw.Write(map[string]int{"x": 1}); err == nil {
		t.Error("Expected error writing to closed trace")
	}

	header, ticks, err := ReadAll(bytes.NewReader(buf.Bytes()))
	if err != nil {
		t.Fatalf("ReadAll failed: %v", err)
	}
	if header.Type != TypeHeader || len(ticks) != 0 {
		t.Errorf("Expected header only, got %+v and %d ticks", header, len(ticks))
	}
}

func TestSnapshotKeepsColorsSharingHex(t *testing.T) {
	cfg := config.Default()
	sim, err := scene.Build(cfg, nil, time.Millisecond)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	defer sim.Close()

	left, ok := sim.World.Vessel("left")
	if !ok {
		t.Fatal("Expected left cup")
	}
	a := core.RGBA{R: 1, A: 1}
	b := core.RGBA{R: 0.999, A: 1}
	if a.HexA() != b.HexA() {
		t.Fatalf("Expected colors to share a hex, got %s and %s", a.HexA(), b.HexA())
	}
	left.Container.AddParticle(a)
	left.Container.AddParticle(b)
	left.Container.AddParticle(b)

	var st *VesselState
	rec := Snapshot(sim.World)
	for i := range rec.Vessels {
		if rec.Vessels[i].Name == "left" {
			st = &rec.Vessels[i]
		}
	}
	if st == nil || len(st.Composition) != 2 {
		t.Fatalf("Expected 2 distinct colors, got %+v", st)
	}
	// Colors are ordered R ascending
	if st.Composition[0].RGBA[0] != 0.999 || st.Composition[0].Count != 2 {
		t.Errorf("Expected 0.999 red x2 first, got %+v", st.Composition[0])
	}
	if st.Composition[1].RGBA[0] != 1 || st.Composition[1].Count != 1 {
		t.Errorf("Expected full red x1 second, got %+v", st.Composition[1])
	}
}
