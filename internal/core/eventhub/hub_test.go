package eventhub

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHub_RaiseInSubscriptionOrder(t *testing.T) {
	hub := New[int]("tick")
	var got []string

	hub.Subscribe(func(v int) { got = append(got, "a") })
	hub.Subscribe(func(v int) { got = append(got, "b") })
	hub.Subscribe(func(v int) { got = append(got, "c") })

	hub.Raise(1)
	assert.Equal(t, []string{"a", "b", "c"}, got)
	assert.Equal(t, 3, hub.Len())
	assert.Equal(t, "tick", hub.Kind())
}

func TestHub_SameHandlerTwice(t *testing.T) {
	hub := New[int]("tick")
	calls := 0
	handler := func(int) { calls++ }

	first := hub.Subscribe(handler)
	second := hub.Subscribe(handler)
	require.NotEqual(t, first, second)

	hub.Raise(0)
	assert.Equal(t, 2, calls)

	assert.True(t, hub.Unsubscribe(first))
	hub.Raise(0)
	assert.Equal(t, 3, calls)

	assert.False(t, hub.Unsubscribe(first), "second removal of the same token is a no-op")
	assert.True(t, hub.Unsubscribe(second))
	hub.Raise(0)
	assert.Equal(t, 3, calls)
}

func TestHub_UnsubscribeUnknown(t *testing.T) {
	hub := New[string]("ended")
	assert.False(t, hub.Unsubscribe(Subscription(42)))
	hub.Raise("nobody listening")
}

func TestHub_UnsubscribeSelfDuringDispatch(t *testing.T) {
	hub := New[int]("tick")
	var got []string
	var self Subscription

	hub.Subscribe(func(int) { got = append(got, "before") })
	self = hub.Subscribe(func(int) {
		got = append(got, "self")
		hub.Unsubscribe(self)
	})
	hub.Subscribe(func(int) { got = append(got, "after") })

	hub.Raise(1)
	assert.Equal(t, []string{"before", "self", "after"}, got)

	got = nil
	hub.Raise(2)
	assert.Equal(t, []string{"before", "after"}, got)
}

func TestHub_SubscribeDuringDispatch(t *testing.T) {
	hub := New[int]("tick")
	late := 0
	hub.Subscribe(func(int) {
		hub.Subscribe(func(int) { late++ })
	})

	hub.Raise(1)
	assert.Equal(t, 0, late, "a handler added mid-dispatch waits for the next raise")

	hub.Raise(2)
	assert.Equal(t, 1, late)
}

func TestHub_PanicIsolated(t *testing.T) {
	var reported []error
	hub := New[int]("tick", WithDiagnostics(func(kind string, err error) {
		assert.Equal(t, "tick", kind)
		reported = append(reported, err)
	}))

	after := 0
	hub.Subscribe(func(int) { panic("boom") })
	hub.Subscribe(func(int) { after++ })

	require.NotPanics(t, func() { hub.Raise(1) })
	assert.Equal(t, 1, after)
	require.Len(t, reported, 1)

	var listenerErr *ListenerError
	require.True(t, errors.As(reported[0], &listenerErr))
	assert.Equal(t, "boom", listenerErr.Value)
	assert.Contains(t, listenerErr.Error(), "tick")
}

func TestHub_ConcurrentMutation(t *testing.T) {
	hub := New[int]("tick")
	var mu sync.Mutex
	stable := 0
	hub.Subscribe(func(int) {
		mu.Lock()
		stable++
		mu.Unlock()
	})

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		for i := 0; i < 200; i++ {
			id := hub.Subscribe(func(int) {})
			hub.Unsubscribe(id)
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < 200; i++ {
			hub.Raise(i)
		}
	}()
	wg.Wait()

	assert.Equal(t, 200, stable)
	assert.Equal(t, 1, hub.Len())
}
