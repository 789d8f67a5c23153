package eventbus

import "sync"

// TypedBus is a type-safe publish/subscribe bus for events of type T. Unlike
// Bus, delivery failures are not silent: a subscriber whose buffer is full at
// publish time is pruned from the active set and its channel closed, so one
// stalled consumer can never stall the publisher or starve the others.
type TypedBus[T any] struct {
	mu     sync.Mutex
	subs   []chan T
	closed bool
}

// NewTyped creates a new TypedBus.
func NewTyped[T any]() *TypedBus[T] { return &TypedBus[T]{} }

// Publish sends the event to all subscribers without blocking. Subscribers
// that cannot accept the event are removed and closed.
func (b *TypedBus[T]) Publish(e T) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return
	}
	kept := b.subs[:0]
	for _, ch := range b.subs {
		select {
		case ch <- e:
			kept = append(kept, ch)
		default:
			close(ch)
		}
	}
	b.subs = kept
}

// Subscribe registers a subscriber and returns its channel. A subscriber
// only sees events published after it connects; there is no replay.
func (b *TypedBus[T]) Subscribe() <-chan T {
	ch := make(chan T, 8)
	b.mu.Lock()
	if b.closed {
		close(ch)
	} else {
		b.subs = append(b.subs, ch)
	}
	b.mu.Unlock()
	return ch
}

// Unsubscribe removes the subscriber and closes its channel.
func (b *TypedBus[T]) Unsubscribe(sub <-chan T) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for i, ch := range b.subs {
		if ch == sub {
			b.subs = append(b.subs[:i], b.subs[i+1:]...)
			if !b.closed {
				close(ch)
			}
			return
		}
	}
}

// Len reports the number of active subscribers.
func (b *TypedBus[T]) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.subs)
}

// Close closes the bus and all subscriber channels.
func (b *TypedBus[T]) Close() {
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return
	}
	b.closed = true
	for _, ch := range b.subs {
		close(ch)
	}
	b.subs = nil
	b.mu.Unlock()
}
