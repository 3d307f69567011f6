package realtime

import (
	"sync"
	"testing"
	"time"

	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestHub_SubscribeUnsubscribe(t *testing.T) {
	h := NewHub()

	id, ch := h.Subscribe()
	if h.SubscriberCount() != 1 {
		t.Errorf("expected 1 subscriber, got %d", h.SubscriberCount())
	}

	h.Unsubscribe(id)
	if h.SubscriberCount() != 0 {
		t.Errorf("expected 0 subscribers, got %d", h.SubscriberCount())
	}

	// Channel should be closed
	select {
	case _, ok := <-ch:
		if ok {
			t.Error("expected channel to be closed")
		}
	default:
		t.Error("channel should be closed and readable")
	}
}

func TestHub_Publish(t *testing.T) {
	h := NewHub()

	id, ch := h.Subscribe()
	defer h.Unsubscribe(id)

	type payload struct{ ID string }
	h.Publish(EventNewDisaster, payload{ID: "d-1"})

	select {
	case ev := <-ch:
		if ev.Name != EventNewDisaster {
			t.Errorf("expected event %q, got %q", EventNewDisaster, ev.Name)
		}
		if p, ok := ev.Payload.(payload); !ok || p.ID != "d-1" {
			t.Errorf("unexpected payload: %#v", ev.Payload)
		}
	case <-time.After(100 * time.Millisecond):
		t.Error("timeout waiting for event")
	}
}

func TestHub_LateSubscriberMissesEvents(t *testing.T) {
	h := NewHub()

	h.Publish(EventNewAlert, "before-anyone-joined")

	id, ch := h.Subscribe()
	defer h.Unsubscribe(id)

	select {
	case ev := <-ch:
		t.Errorf("late subscriber must not receive prior events, got %v", ev)
	default:
	}
}

func TestHub_ConcurrentSubscribeUnsubscribe(t *testing.T) {
	h := NewHub()
	var wg sync.WaitGroup

	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			id, _ := h.Subscribe()
			time.Sleep(time.Millisecond)
			h.Unsubscribe(id)
		}()
	}

	wg.Wait()

	if h.SubscriberCount() != 0 {
		t.Errorf("expected 0 subscribers after cleanup, got %d", h.SubscriberCount())
	}
}

func TestHub_ConcurrentPublish(t *testing.T) {
	h := NewHub()
	var wg sync.WaitGroup

	numSubscribers := 10
	ids := make([]uint64, numSubscribers)
	for i := 0; i < numSubscribers; i++ {
		ids[i], _ = h.Subscribe()
	}

	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			h.Publish(EventNewDisaster, n)
		}(i)
	}

	wg.Wait()

	for i := 0; i < numSubscribers; i++ {
		h.Unsubscribe(ids[i])
	}
}

func TestHub_Close(t *testing.T) {
	h := NewHub()

	var channels []chan Event
	for i := 0; i < 5; i++ {
		_, ch := h.Subscribe()
		channels = append(channels, ch)
	}

	if h.SubscriberCount() != 5 {
		t.Errorf("expected 5 subscribers, got %d", h.SubscriberCount())
	}

	h.Close()

	if h.SubscriberCount() != 0 {
		t.Errorf("expected 0 subscribers after close, got %d", h.SubscriberCount())
	}

	for i, ch := range channels {
		select {
		case _, ok := <-ch:
			if ok {
				t.Errorf("channel %d should be closed", i)
			}
		default:
			t.Errorf("channel %d should be closed and readable", i)
		}
	}
}

func TestHub_SlowSubscriber(t *testing.T) {
	h := NewHub()

	id, ch := h.Subscribe()
	defer h.Unsubscribe(id)

	// Fill the buffer (100) + 1 more
	for i := 0; i < 101; i++ {
		h.Publish(EventNewAlert, i)
	}

	// Should not block - the 101st event is dropped
	count := 0
	for {
		select {
		case <-ch:
			count++
		default:
			goto done
		}
	}
done:

	if count != 100 {
		t.Errorf("expected 100 buffered events, got %d", count)
	}
}
