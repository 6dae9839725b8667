// Package stream provides a minimal in-process fan-out primitive used to
// push live query results and projections to consumers.
package stream

import (
	"context"
	"sync"
)

// Hub fans a live value out to subscribers. Each subscriber channel is
// buffered with a single slot and a newer value replaces an undelivered
// one, so slow consumers always observe the latest emission rather than a
// backlog.
type Hub[T any] struct {
	mu   sync.Mutex
	next int
	subs map[int]chan T
}

func NewHub[T any]() *Hub[T] {
	return &Hub[T]{subs: make(map[int]chan T)}
}

// Subscribe registers a listener that receives seed immediately and every
// later publish until ctx is cancelled, at which point the channel closes.
func (h *Hub[T]) Subscribe(ctx context.Context, seed T) <-chan T {
	ch := make(chan T, 1)
	ch <- seed

	h.mu.Lock()
	id := h.next
	h.next++
	h.subs[id] = ch
	h.mu.Unlock()

	go func() {
		<-ctx.Done()
		h.mu.Lock()
		defer h.mu.Unlock()
		delete(h.subs, id)
		close(ch)
	}()

	return ch
}

// Publish delivers v to every subscriber, replacing any value they have
// not consumed yet.
func (h *Hub[T]) Publish(v T) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, ch := range h.subs {
		select {
		case <-ch:
		default:
		}
		select {
		case ch <- v:
		default:
		}
	}
}
