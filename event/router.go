package event

// Handler receives the events it declares, with a shared context such as *engine.World
type Handler[T any] interface {
	HandleEvent(ctx T, ev GameEvent)
	EventTypes() []EventType
}

// Router fans consumed events out to handlers by type
// Handlers for one type run in registration order, all on the caller's goroutine
type Router[T any] struct {
	handlers map[EventType][]Handler[T]
}

func NewRouter[T any]() *Router[T] {
	return &Router[T]{handlers: make(map[EventType][]Handler[T])}
}

func (r *Router[T]) Register(h Handler[T]) {
	for _, t := range h.EventTypes() {
		r.handlers[t] = append(r.handlers[t], h)
	}
}

// Dispatch delivers events in order and returns how many had at least one handler
func (r *Router[T]) Dispatch(ctx T, events []GameEvent) int {
	handled := 0
	for _, ev := range events {
		hs := r.handlers[ev.Type]
		if len(hs) > 0 {
			handled++
		}
		for _, h := range hs {
			h.HandleEvent(ctx, ev)
		}
	}
	return handled
}
