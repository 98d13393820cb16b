package ecs

import "reflect"

// ContactEvent is published when two colliders start touching.
type ContactEvent struct {
	A, B Entity
	// Speed is the closing speed along the contact normal.
	Speed float64
}

// eventBus holds the events published during the current tick, bucketed by
// payload type.
type eventBus struct {
	byType map[reflect.Type][]any
	count  int
}

// Publish queues evt for systems that run later in the same tick.
func Publish[T any](w *World, evt T) {
	if w == nil {
		return
	}
	if w.events.byType == nil {
		w.events.byType = make(map[reflect.Type][]any)
	}
	key := reflect.TypeFor[T]()
	w.events.byType[key] = append(w.events.byType[key], evt)
	w.events.count++
}

// EventsOf returns the events of type T published so far this tick.
// Readers don't consume; every system sees the same events.
func EventsOf[T any](w *World) []T {
	if w == nil {
		return nil
	}
	raw := w.events.byType[reflect.TypeFor[T]()]
	if len(raw) == 0 {
		return nil
	}
	out := make([]T, len(raw))
	for i, v := range raw {
		out[i] = v.(T)
	}
	return out
}

// PendingEvents counts the events of every type waiting in w.
func PendingEvents(w *World) int {
	if w == nil {
		return 0
	}
	return w.events.count
}

func (b *eventBus) reset() {
	clear(b.byType)
	b.count = 0
}
