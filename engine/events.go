package engine

import "sync"

type eventInstance[T any] struct {
	id    uint64
	event T
}

// Events is a double-buffered event channel
// An event stays readable for the frame it was sent in and the following one,
// so readers running before or after the sender in a frame both observe it
type Events[T any] struct {
	mu      sync.Mutex
	prev    []eventInstance[T]
	curr    []eventInstance[T]
	nextID  uint64
	startID uint64 // Oldest id still buffered
}

// NewEvents creates an empty event channel
func NewEvents[T any]() *Events[T] {
	return &Events[T]{}
}

// Send appends an event to the current frame buffer
func (e *Events[T]) Send(ev T) {
	e.mu.Lock()
	e.curr = append(e.curr, eventInstance[T]{id: e.nextID, event: ev})
	e.nextID++
	e.mu.Unlock()
}

// Update swaps buffers, dropping events older than one frame
// Called once per frame in the First stage
func (e *Events[T]) Update() {
	e.mu.Lock()
	defer e.mu.Unlock()

	dropped := e.prev
	e.prev = e.curr
	e.curr = dropped[:0]

	if len(e.prev) > 0 {
		e.startID = e.prev[0].id
	} else {
		e.startID = e.nextID
	}
}

// Len returns the number of buffered events
func (e *Events[T]) Len() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.prev) + len(e.curr)
}

// Reader creates a reader that observes every event still buffered
func (e *Events[T]) Reader() *EventReader[T] {
	e.mu.Lock()
	defer e.mu.Unlock()
	return &EventReader[T]{events: e, next: e.startID}
}

// EventReader tracks which events a single consumer has already seen
type EventReader[T any] struct {
	events *Events[T]
	next   uint64
}

// Read returns unseen events in send order and marks them seen
func (r *EventReader[T]) Read() []T {
	e := r.events
	e.mu.Lock()
	defer e.mu.Unlock()

	var out []T
	for _, buf := range [][]eventInstance[T]{e.prev, e.curr} {
		for _, inst := range buf {
			if inst.id >= r.next {
				out = append(out, inst.event)
			}
		}
	}
	r.next = e.nextID
	return out
}

// Clear marks all buffered events as seen
func (r *EventReader[T]) Clear() {
	e := r.events
	e.mu.Lock()
	r.next = e.nextID
	e.mu.Unlock()
}
