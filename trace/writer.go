// Package trace records per-tick vessel state as zstd-compressed JSON lines
package trace

import (
	"bufio"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/klauspost/compress/zstd"
	"github.com/pkg/errors"

	"github.com/lixenwraith/sirup/engine"
)

// Record types
const (
	TypeHeader = "header"
	TypeTick   = "tick"
)

// Header is the first line of every trace
type Header struct {
	Type     string    `json:"type"`
	RunID    string    `json:"run_id"`
	Started  time.Time `json:"started"`
	Interval string    `json:"interval"`
}

// VesselState is one vessel at the end of a tick
type VesselState struct {
	Name        string         `json:"name"`
	Kind        string         `json:"kind"`
	Speed       float64        `json:"speed"`
	Level       float64        `json:"level,omitempty"`
	FillRatio   float64        `json:"fill_ratio,omitempty"`
	Color       string         `json:"color,omitempty"`
	Composition []Units        `json:"composition,omitempty"`
}

// Units counts one exact color in a container
// Hex is for reading, RGBA keeps colors apart that share an 8-bit hex
type Units struct {
	Hex   string     `json:"hex"`
	RGBA  [4]float64 `json:"rgba"`
	Count int        `json:"count"`
}

// TickRecord is one line per simulation tick
type TickRecord struct {
	Type      string           `json:"type"`
	Tick      int64            `json:"tick"`
	Particles int              `json:"particles"`
	Metrics   map[string]int64 `json:"metrics,omitempty"`
	Vessels   []VesselState    `json:"vessels"`
}

// Writer appends JSON lines to a zstd stream
type Writer struct {
	mu     sync.Mutex
	closer io.Closer
	enc    *zstd.Encoder
	w      *bufio.Writer

	// First write error seen by the observer, reported by Close
	err error
}

// Create opens path for writing and emits the header
func Create(path string, runID uuid.UUID, interval time.Duration) (*Writer, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, errors.Wrap(err, "create trace dir")
		}
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return nil, errors.Wrap(err, "open trace")
	}
	w, err := NewWriter(f, runID, interval)
	if err != nil {
		_ = f.Close()
		return nil, err
	}
	w.closer = f
	return w, nil
}

// NewWriter wraps dst and emits the header, dst is not closed by Close
func NewWriter(dst io.Writer, runID uuid.UUID, interval time.Duration) (*Writer, error) {
	enc, err := zstd.NewWriter(dst, zstd.WithEncoderLevel(zstd.SpeedFastest))
	if err != nil {
		return nil, errors.Wrap(err, "zstd writer")
	}
	w := &Writer{
		enc: enc,
		w:   bufio.NewWriterSize(enc, 128*1024),
	}
	header := Header{
		Type:     TypeHeader,
		RunID:    runID.String(),
		Started:  time.Now().UTC(),
		Interval: interval.String(),
	}
	if err := w.Write(header); err != nil {
		_ = enc.Close()
		return nil, err
	}
	return w, nil
}

// Write appends one JSON line
func (w *Writer) Write(v any) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.w == nil {
		return errors.New("trace writer closed")
	}
	b, err := json.Marshal(v)
	if err != nil {
		return errors.Wrap(err, "marshal trace record")
	}
	if _, err := w.w.Write(b); err != nil {
		return err
	}
	if err := w.w.WriteByte('\n'); err != nil {
		return err
	}
	return w.w.Flush()
}

// WriteTick snapshots the world, call under the world's update lock
func (w *Writer) WriteTick(world *engine.World) error {
	return w.Write(Snapshot(world))
}

// Observer returns a scheduler observer that keeps the first write error for Close
func (w *Writer) Observer() func(*engine.World) {
	return func(world *engine.World) {
		if err := w.WriteTick(world); err != nil {
			w.mu.Lock()
			if w.err == nil {
				w.err = err
			}
			w.mu.Unlock()
		}
	}
}

// Close flushes the stream and closes the file when the writer owns it
func (w *Writer) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	err := w.err
	if w.w != nil {
		if ferr := w.w.Flush(); err == nil {
			err = ferr
		}
		w.w = nil
	}
	if w.enc != nil {
		if cerr := w.enc.Close(); err == nil {
			err = cerr
		}
		w.enc = nil
	}
	if w.closer != nil {
		if cerr := w.closer.Close(); err == nil {
			err = cerr
		}
		w.closer = nil
	}
	return err
}

// Snapshot builds the tick record of the world's current state
func Snapshot(world *engine.World) TickRecord {
	rec := TickRecord{
		Type:      TypeTick,
		Tick:      world.CurrentTick(),
		Particles: world.Registry.ParticleCount(),
		Metrics:   world.Status.Snapshot(),
		Vessels:   make([]VesselState, 0, len(world.Vessels())),
	}
	for _, v := range world.Vessels() {
		st := VesselState{
			Name:  v.Name,
			Kind:  v.Kind.String(),
			Speed: v.Emitter.Speed,
		}
		if ct := v.Container; ct != nil {
			st.Level = ct.Level()
			st.FillRatio = ct.FillRatio()
			if c, ok := ct.MixedColor(); ok {
				st.Color = c.HexA()
			}
			comp := ct.Composition()
			for _, color := range comp.Colors() {
				st.Composition = append(st.Composition, Units{
					Hex:   color.HexA(),
					RGBA:  [4]float64{color.R, color.G, color.B, color.A},
					Count: comp[color],
				})
			}
		} else if c, ok := v.Emitter.Color(); ok {
			st.Color = c.HexA()
		}
		rec.Vessels = append(rec.Vessels, st)
	}
	return rec
}
