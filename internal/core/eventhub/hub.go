// Package eventhub provides a small typed publish/subscribe primitive.
//
// Handlers run synchronously on the goroutine that calls Raise, in the
// order they subscribed. A panicking handler is recovered and reported to
// the hub's diagnostic sink; the remaining handlers still run.
package eventhub

import (
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
)

// Handler receives a raised payload.
type Handler[T any] func(T)

// Subscription identifies a single registration on a hub.
type Subscription uint64

// ListenerError wraps a value recovered from a panicking handler.
type ListenerError struct {
	Kind  string
	Value any
}

func (e *ListenerError) Error() string {
	return fmt.Sprintf("%s listener panicked: %v", e.Kind, e.Value)
}

// Diagnostics receives handler failures.
type Diagnostics func(kind string, err error)

// Option configures a Hub.
type Option func(*options)

type options struct {
	diagnostics Diagnostics
}

// WithDiagnostics sets the sink for handler failures.
func WithDiagnostics(sink Diagnostics) Option {
	return func(o *options) { o.diagnostics = sink }
}

type subscriber[T any] struct {
	id      Subscription
	handler Handler[T]
	active  atomic.Bool
}

// Hub fans a payload out to its subscribers.
type Hub[T any] struct {
	mu          sync.Mutex
	kind        string
	nextID      Subscription
	subscribers []*subscriber[T]
	diagnostics Diagnostics
}

// New creates a hub for the named notification kind.
func New[T any](kind string, opts ...Option) *Hub[T] {
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}
	if o.diagnostics == nil {
		o.diagnostics = func(kind string, err error) {
			slog.Error("event listener failed", slog.String("kind", kind), slog.String("error", err.Error()))
		}
	}
	return &Hub[T]{kind: kind, diagnostics: o.diagnostics}
}

// Kind returns the notification kind the hub was created for.
func (hub *Hub[T]) Kind() string { return hub.kind }

// Subscribe appends handler and returns its registration token.
// The same handler may be subscribed more than once.
func (hub *Hub[T]) Subscribe(handler Handler[T]) Subscription {
	hub.mu.Lock()
	defer hub.mu.Unlock()
	hub.nextID++
	sub := &subscriber[T]{id: hub.nextID, handler: handler}
	sub.active.Store(true)
	hub.subscribers = append(hub.subscribers, sub)
	return sub.id
}

// Unsubscribe removes the registration. Unknown or already removed
// tokens are ignored and report false.
func (hub *Hub[T]) Unsubscribe(id Subscription) bool {
	hub.mu.Lock()
	defer hub.mu.Unlock()
	for i, sub := range hub.subscribers {
		if sub.id != id {
			continue
		}
		sub.active.Store(false)
		// Copy rather than shift in place: Raise may hold the old slice.
		next := make([]*subscriber[T], 0, len(hub.subscribers)-1)
		next = append(next, hub.subscribers[:i]...)
		hub.subscribers = append(next, hub.subscribers[i+1:]...)
		return true
	}
	return false
}

// Len returns the number of current subscribers.
func (hub *Hub[T]) Len() int {
	hub.mu.Lock()
	defer hub.mu.Unlock()
	return len(hub.subscribers)
}

// Raise calls every current subscriber with payload.
func (hub *Hub[T]) Raise(payload T) {
	hub.mu.Lock()
	snapshot := hub.subscribers
	hub.mu.Unlock()

	for _, sub := range snapshot {
		if !sub.active.Load() {
			continue
		}
		hub.invoke(sub, payload)
	}
}

func (hub *Hub[T]) invoke(sub *subscriber[T], payload T) {
	defer func() {
		if recovered := recover(); recovered != nil {
			hub.diagnostics(hub.kind, &ListenerError{Kind: hub.kind, Value: recovered})
		}
	}()
	sub.handler(payload)
}
