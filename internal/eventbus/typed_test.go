package eventbus

import "testing"

func TestTypedPublishSubscribe(t *testing.T) {
	b := NewTyped[int]()
	sub := b.Subscribe()
	b.Publish(42)
	select {
	case got := <-sub:
		if got != 42 {
			t.Fatalf("unexpected event %v", got)
		}
	default:
		t.Fatal("no event delivered")
	}
}

func TestTypedPrunesStalledSubscriber(t *testing.T) {
	b := NewTyped[int]()
	stalled := b.Subscribe()
	healthy := b.Subscribe()

	// fill the stalled subscriber's buffer
	for i := 0; i < 8; i++ {
		b.Publish(i)
	}
	if b.Len() != 2 {
		t.Fatalf("expected 2 subscribers, got %d", b.Len())
	}
	// drain only the healthy one
	for i := 0; i < 8; i++ {
		<-healthy
	}
	// the next publish cannot be delivered to the stalled subscriber; it
	// must be pruned without blocking
	b.Publish(99)
	if b.Len() != 1 {
		t.Fatalf("stalled subscriber not pruned, %d remain", b.Len())
	}
	if got := <-healthy; got != 99 {
		t.Fatalf("healthy subscriber missed event, got %v", got)
	}
	// pruned channel is drained then closed
	for i := 0; i < 8; i++ {
		<-stalled
	}
	if _, ok := <-stalled; ok {
		t.Fatal("pruned channel should be closed")
	}
}

func TestTypedNoReplay(t *testing.T) {
	b := NewTyped[string]()
	b.Publish("before")
	sub := b.Subscribe()
	select {
	case got := <-sub:
		t.Fatalf("late subscriber must not see earlier events, got %v", got)
	default:
	}
}

func TestTypedUnsubscribe(t *testing.T) {
	b := NewTyped[int]()
	sub := b.Subscribe()
	b.Unsubscribe(sub)
	if b.Len() != 0 {
		t.Fatalf("expected no subscribers, got %d", b.Len())
	}
	if _, ok := <-sub; ok {
		t.Fatal("channel should be closed")
	}
}
