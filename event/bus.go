package event

import (
	"github.com/google/uuid"

	"github.com/lixenwraith/knot-runner/parameter"
)

// Emitter is the producer side of the bus, injected into components that raise events
type Emitter interface {
	Emit(et EventType, piece uuid.UUID, payload any)
}

// Bus couples a queue with a router
// Producers Emit during the tick; the host calls DispatchAll once per frame
type Bus struct {
	queue  *EventQueue
	router *Router
	frame  int64
}

// NewBus creates a bus with the given handlers registered up front
func NewBus(handlers ...Handler) *Bus {
	b := &Bus{
		queue:  NewEventQueue(),
		router: NewRouter(),
	}
	for _, h := range handlers {
		b.router.Register(h)
	}
	return b
}

// Register adds a handler; intended for construction time only
func (b *Bus) Register(h Handler) {
	b.router.Register(h)
}

// Subscribe registers a closure for the given event types, or every type when none are given
func (b *Bus) Subscribe(fn func(ev GameEvent), types ...EventType) {
	if len(types) == 0 {
		types = AllTypes()
	}
	b.router.Register(HandlerFunc{Types: types, Fn: fn})
}

// Emit queues an event stamped with the current frame
func (b *Bus) Emit(et EventType, piece uuid.UUID, payload any) {
	b.queue.Push(GameEvent{
		Type:    et,
		Piece:   piece,
		Payload: payload,
		Frame:   b.frame,
	})
}

// DispatchAll routes pending events in FIFO order
// Events emitted by handlers are dispatched in the same call, bounded by
// EventDispatchIterations to cut off feedback loops
// Returns the number of events dispatched
func (b *Bus) DispatchAll() int {
	total := 0
	for i := 0; i < parameter.EventDispatchIterations; i++ {
		events := b.queue.Consume()
		if len(events) == 0 {
			break
		}
		b.router.Dispatch(events)
		total += len(events)
	}
	b.frame++
	return total
}

// Drain returns pending events without dispatching them
func (b *Bus) Drain() []GameEvent {
	return b.queue.Consume()
}

// Pending returns queued event count
func (b *Bus) Pending() int {
	return b.queue.Len()
}

// Frame returns the dispatch frame counter
func (b *Bus) Frame() int64 {
	return b.frame
}

// Dropped returns the number of events lost to queue overflow
func (b *Bus) Dropped() uint64 {
	return b.queue.Dropped()
}
