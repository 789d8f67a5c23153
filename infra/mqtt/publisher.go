package mqtt

import (
	"context"
	"sync"

	"github.com/gowriprasath-v/train-traffic/core/twin"
	"github.com/gowriprasath-v/train-traffic/infra/logger"
)

// Publisher broadcasts schedule updates to station displays and downstream
// consumers.
type Publisher interface {
	// PublishSchedule sends the full update on the schedule topic.
	PublishSchedule(up twin.Update) error
	// Disconnect gracefully closes the connection.
	Disconnect()
}

// StartSchedulePublisher subscribes to the twin and forwards every update to
// the publisher until the context is canceled.
func StartSchedulePublisher(ctx context.Context, tw *twin.Twin, pub Publisher, log logger.Logger) {
	if tw == nil || pub == nil {
		return
	}
	sub := tw.Subscribe()
	go func() {
		defer tw.Unsubscribe(sub)
		for {
			select {
			case <-ctx.Done():
				return
			case up, ok := <-sub:
				if !ok {
					return
				}
				if err := pub.PublishSchedule(up); err != nil {
					log.Errorf("publish schedule update: %v", err)
				}
			}
		}
	}()
}

// MockPublisher is a simple publisher used in tests.
type MockPublisher struct {
	Updates []twin.Update
	FailAll bool
	mu      sync.Mutex
}

// NewMockPublisher creates a new MockPublisher.
func NewMockPublisher() *MockPublisher {
	return &MockPublisher{}
}

// PublishSchedule records the update or fails if configured to.
func (m *MockPublisher) PublishSchedule(up twin.Update) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailAll {
		return errPublishFailed
	}
	m.Updates = append(m.Updates, up)
	return nil
}

// Disconnect is a no-op.
func (m *MockPublisher) Disconnect() {}

// Published returns a copy of the recorded updates.
func (m *MockPublisher) Published() []twin.Update {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]twin.Update(nil), m.Updates...)
}
