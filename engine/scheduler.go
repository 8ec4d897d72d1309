package engine

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/pkg/errors"

	"github.com/lixenwraith/sirup/event"
	"github.com/lixenwraith/sirup/status"
)

// ErrSchedulerRunning is returned when Run is called twice concurrently
var ErrSchedulerRunning = errors.New("scheduler already running")

// Scheduler drives the world on a fixed tick
//
// Tick order:
//  1. Queued events (resets, tilt requests) are dispatched
//  2. The solver steps and publishes its contact batch, routing mutates containers synchronously
//  3. Systems update in priority order (reset timers, pour, refresh)
//  4. Tick observers run (trace, front end snapshot)
type Scheduler struct {
	world    *World
	router   *event.Router[*World]
	interval time.Duration

	observers []func(w *World)
	running   atomic.Bool
	statTicks *atomic.Int64
}

// NewScheduler creates a scheduler for world with the given tick interval
func NewScheduler(world *World, interval time.Duration) *Scheduler {
	return &Scheduler{
		world:     world,
		router:    event.NewRouter[*World](),
		interval:  interval,
		statTicks: world.Status.Ints.Get(status.Ticks),
	}
}

// RegisterEventHandler adds an event handler to the router, must be called before Run
func (s *Scheduler) RegisterEventHandler(handler event.Handler[*World]) {
	s.router.Register(handler)
}

// Observe adds a callback invoked at the end of every tick under the update lock
func (s *Scheduler) Observe(fn func(w *World)) {
	s.observers = append(s.observers, fn)
}

// Tick runs one complete simulation pass
func (s *Scheduler) Tick() {
	s.world.RunSafe(func() {
		w := s.world
		w.tick++

		s.router.Dispatch(w, w.Events.Consume())
		w.Solver.Step()
		w.UpdateLocked()

		for _, fn := range s.observers {
			fn(w)
		}
		s.statTicks.Add(1)
	})
}

// Run ticks until ctx is cancelled, correcting drift against a deadline
// Falling more than two intervals behind drops the missed ticks
func (s *Scheduler) Run(ctx context.Context) error {
	if !s.running.CompareAndSwap(false, true) {
		return ErrSchedulerRunning
	}
	defer s.running.Store(false)

	timer := time.NewTimer(s.interval)
	defer timer.Stop()
	deadline := time.Now().Add(s.interval)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-timer.C:
		}

		s.Tick()

		now := time.Now()
		deadline = deadline.Add(s.interval)
		if now.Sub(deadline) > 2*s.interval {
			deadline = now.Add(s.interval)
		}
		timer.Reset(max(0, deadline.Sub(now)))
	}
}

// RunTicks runs n ticks back to back, for headless simulation
func (s *Scheduler) RunTicks(ctx context.Context, n int) error {
	for i := 0; i < n; i++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		s.Tick()
	}
	return nil
}
