package event

import (
	"sync/atomic"

	"github.com/lixenwraith/sirup/parameter"
)

// slot holds one event and whether its writer has finished
type slot struct {
	ev    GameEvent
	ready atomic.Bool
}

// EventQueue carries tilt and reset requests into the simulation
// Any goroutine may Emit: the tcell input loop, the CLI's initial tilts, tests
// Only the scheduler consumes, at the start of each tick
// A full ring drops its oldest requests
type EventQueue struct {
	slots [parameter.EventQueueSize]slot
	read  atomic.Uint64
	write atomic.Uint64
}

func NewEventQueue() *EventQueue {
	return &EventQueue{}
}

// Push claims the next write position and publishes ev into it
func (q *EventQueue) Push(ev GameEvent) {
	pos := q.write.Add(1) - 1
	s := &q.slots[pos&parameter.EventBufferMask]
	s.ev = ev
	s.ready.Store(true)

	// Lapped the reader: advance it past the overwritten request
	for {
		read := q.read.Load()
		end := pos + 1
		if end-read <= parameter.EventQueueSize || q.read.CompareAndSwap(read, end-parameter.EventQueueSize) {
			return
		}
	}
}

// Emit queues a request of type t raised on tick
func (q *EventQueue) Emit(t EventType, payload any, tick int64) {
	q.Push(GameEvent{Type: t, Payload: payload, Tick: tick})
}

// Consume drains ready requests in emission order
// A slot whose writer is still mid-Push ends the batch, it is picked up next tick
func (q *EventQueue) Consume() []GameEvent {
	for {
		head := q.read.Load()
		read := head
		pending := q.write.Load() - read
		if pending == 0 {
			return nil
		}
		if pending > parameter.EventQueueSize {
			read += pending - parameter.EventQueueSize
			pending = parameter.EventQueueSize
		}

		batch := make([]GameEvent, 0, pending)
		for pos := read; pos < read+pending; pos++ {
			s := &q.slots[pos&parameter.EventBufferMask]
			if !s.ready.Load() {
				break
			}
			batch = append(batch, s.ev)
		}

		if !q.read.CompareAndSwap(head, read+uint64(len(batch))) {
			continue
		}
		for pos := read; pos < read+uint64(len(batch)); pos++ {
			q.slots[pos&parameter.EventBufferMask].ready.Store(false)
		}
		if len(batch) == 0 {
			return nil
		}
		return batch
	}
}

// Len returns the approximate number of queued requests
func (q *EventQueue) Len() int {
	w, r := q.write.Load(), q.read.Load()
	if w <= r {
		return 0
	}
	return int(min(w-r, parameter.EventQueueSize))
}
