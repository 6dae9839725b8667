package stream

import (
	"context"
	"testing"
	"time"
)

func TestSubscribeDeliversSeed(t *testing.T) {
	h := NewHub[int]()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch := h.Subscribe(ctx, 42)
	select {
	case got := <-ch:
		if got != 42 {
			t.Errorf("seed: got %d, want 42", got)
		}
	case <-time.After(time.Second):
		t.Fatal("no seed emission")
	}
}

func TestPublishReplacesUndeliveredValue(t *testing.T) {
	h := NewHub[int]()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch := h.Subscribe(ctx, 1)

	// Subscriber has not consumed anything yet; only the newest value
	// must be observed.
	h.Publish(2)
	h.Publish(3)

	select {
	case got := <-ch:
		if got != 3 {
			t.Errorf("got %d, want latest value 3", got)
		}
	case <-time.After(time.Second):
		t.Fatal("no emission")
	}
}

func TestCancelClosesChannel(t *testing.T) {
	h := NewHub[int]()
	ctx, cancel := context.WithCancel(context.Background())

	ch := h.Subscribe(ctx, 1)
	<-ch
	cancel()

	select {
	case _, ok := <-ch:
		if ok {
			t.Fatal("expected closed channel, got a value")
		}
	case <-time.After(time.Second):
		t.Fatal("channel not closed after cancel")
	}

	// Publishing after unsubscribe must not panic.
	h.Publish(2)
}

func TestPublishReachesAllSubscribers(t *testing.T) {
	h := NewHub[string]()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	a := h.Subscribe(ctx, "seed")
	b := h.Subscribe(ctx, "seed")
	<-a
	<-b

	h.Publish("update")
	for name, ch := range map[string]<-chan string{"a": a, "b": b} {
		select {
		case got := <-ch:
			if got != "update" {
				t.Errorf("subscriber %s: got %q, want %q", name, got, "update")
			}
		case <-time.After(time.Second):
			t.Fatalf("subscriber %s: no emission", name)
		}
	}
}
