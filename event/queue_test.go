package event

import (
	"sync"
	"testing"

	"github.com/lixenwraith/sirup/parameter"
)

func TestEventQueueFIFO(t *testing.T) {
	eq := NewEventQueue()
	eq.Emit(EventContainerReset, &ContainerResetPayload{Vessel: "a"}, 1)
	eq.Emit(EventRoundReset, nil, 2)
	eq.Emit(EventTiltRequest, &TiltRequestPayload{Vessel: "b", Angle: 0.1}, 3)

	if eq.Len() != 3 {
		t.Errorf("Expected 3 pending, got %d", eq.Len())
	}

	events := eq.Consume()
	if len(events) != 3 {
		t.Fatalf("Expected 3 events, got %d", len(events))
	}
	if events[0].Type != EventContainerReset || events[1].Type != EventRoundReset || events[2].Type != EventTiltRequest {
		t.Errorf("Events out of order: %+v", events)
	}
	if events[2].Tick != 3 {
		t.Errorf("Expected tick 3, got %d", events[2].Tick)
	}

	if again := eq.Consume(); len(again) != 0 {
		t.Errorf("Expected empty second consume, got %d", len(again))
	}
}

func TestEventQueueConcurrentProducers(t *testing.T) {
	eq := NewEventQueue()
	const producers, perProducer = 8, 10

	var wg sync.WaitGroup
	wg.Add(producers)
	for i := 0; i < producers; i++ {
		go func() {
			defer wg.Done()
			for j := 0; j < perProducer; j++ {
				eq.Emit(EventRoundReset, nil, int64(j))
			}
		}()
	}
	wg.Wait()

	if got := len(eq.Consume()); got != producers*perProducer {
		t.Errorf("Expected %d events, got %d", producers*perProducer, got)
	}
}

func TestEventQueueOverwritesOldest(t *testing.T) {
	eq := NewEventQueue()
	total := parameter.EventQueueSize + 10
	for i := 0; i < total; i++ {
		eq.Emit(EventRoundReset, nil, int64(i))
	}

	events := eq.Consume()
	if len(events) != parameter.EventQueueSize {
		t.Fatalf("Expected %d events, got %d", parameter.EventQueueSize, len(events))
	}
	if events[0].Tick != 10 {
		t.Errorf("Expected oldest surviving tick 10, got %d", events[0].Tick)
	}
}

func TestEventQueueReusesSlotsAcrossTicks(t *testing.T) {
	eq := NewEventQueue()
	tick := int64(0)
	for round := 0; round < 5; round++ {
		for i := 0; i < parameter.EventQueueSize/2+7; i++ {
			tick++
			eq.Emit(EventTiltRequest, nil, tick)
		}
		events := eq.Consume()
		if len(events) != parameter.EventQueueSize/2+7 {
			t.Fatalf("round %d: Expected %d events, got %d", round, parameter.EventQueueSize/2+7, len(events))
		}
		if events[len(events)-1].Tick != tick {
			t.Errorf("round %d: Expected last tick %d, got %d", round, tick, events[len(events)-1].Tick)
		}
		if eq.Len() != 0 {
			t.Errorf("round %d: Expected empty queue, got %d", round, eq.Len())
		}
	}
}

type countingHandler struct {
	seen []GameEvent
}

func (h *countingHandler) HandleEvent(ctx *int, ev GameEvent) {
	*ctx++
	h.seen = append(h.seen, ev)
}

func (h *countingHandler) EventTypes() []EventType {
	return []EventType{EventContainerReset, EventRoundReset}
}

func TestRouterDispatch(t *testing.T) {
	eq := NewEventQueue()
	r := NewRouter[*int]()
	h1, h2 := &countingHandler{}, &countingHandler{}
	r.Register(h1)
	r.Register(h2)

	eq.Emit(EventRoundReset, nil, 1)
	eq.Emit(EventTiltRequest, nil, 1)

	calls := 0
	if n := r.Dispatch(&calls, eq.Consume()); n != 1 {
		t.Errorf("Expected 1 handled event, got %d", n)
	}
	if calls != 2 {
		t.Errorf("Expected 2 handler calls, got %d", calls)
	}
	if len(h1.seen) != 1 || h1.seen[0].Type != EventRoundReset {
		t.Errorf("Unexpected events for first handler: %+v", h1.seen)
	}
	if eq.Len() != 0 {
		t.Errorf("Expected drained queue, got %d pending", eq.Len())
	}
}

func TestEventTypeString(t *testing.T) {
	tests := []struct {
		et   EventType
		want string
	}{
		{EventContainerReset, "container_reset"},
		{EventRoundReset, "round_reset"},
		{EventTiltRequest, "tilt_request"},
		{EventType(999), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.et.String(); got != tt.want {
			t.Errorf("Expected %q, got %q", tt.want, got)
		}
	}
}
