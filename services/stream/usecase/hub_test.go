package usecase

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeSubscriber records delivered events for assertions
type fakeSubscriber struct {
	id      string
	mu      sync.Mutex
	events  []string
	payload []interface{}
	sendErr error
}

func newFakeSubscriber(id string) *fakeSubscriber {
	return &fakeSubscriber{id: id}
}

func (s *fakeSubscriber) ID() string { return s.id }

func (s *fakeSubscriber) Send(event string, payload interface{}) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.sendErr != nil {
		return s.sendErr
	}
	s.events = append(s.events, event)
	s.payload = append(s.payload, payload)
	return nil
}

func (s *fakeSubscriber) received() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.events...)
}

func TestHubPublishReachesSubscribers(t *testing.T) {
	hub := NewHub()
	a := newFakeSubscriber("a")
	b := newFakeSubscriber("b")

	hub.Subscribe(a, "driver-1")
	hub.Subscribe(b, "driver-1")

	hub.Publish("driver-1", "position", "payload")

	assert.Equal(t, []string{"position"}, a.received())
	assert.Equal(t, []string{"position"}, b.received())
}

func TestHubPublishToEmptyTopic(t *testing.T) {
	hub := NewHub()
	// no subscribers: publish is a no-op, not a panic
	hub.Publish("driver-1", "position", "payload")
}

func TestHubSubscribeIdempotent(t *testing.T) {
	hub := NewHub()
	a := newFakeSubscriber("a")

	hub.Subscribe(a, "driver-1")
	hub.Subscribe(a, "driver-1")

	require.Equal(t, 1, hub.SubscriberCount("driver-1"))

	hub.Publish("driver-1", "position", nil)
	assert.Len(t, a.received(), 1)
}

func TestHubUnsubscribe(t *testing.T) {
	hub := NewHub()
	a := newFakeSubscriber("a")

	hub.Subscribe(a, "driver-1")
	hub.Unsubscribe("a", "driver-1")

	hub.Publish("driver-1", "position", nil)
	assert.Empty(t, a.received())

	// unknown pairs are tolerated
	hub.Unsubscribe("a", "driver-1")
	hub.Unsubscribe("ghost", "driver-9")
}

func TestHubDropSubscriberLeavesEveryTopic(t *testing.T) {
	hub := NewHub()
	a := newFakeSubscriber("a")
	b := newFakeSubscriber("b")

	hub.Subscribe(a, "driver-1")
	hub.Subscribe(a, "driver-2")
	hub.Subscribe(a, "admin")
	hub.Subscribe(b, "driver-1")

	hub.DropSubscriber("a")

	hub.Publish("driver-1", "position", nil)
	hub.Publish("driver-2", "position", nil)
	hub.Publish("admin", "position", nil)

	assert.Empty(t, a.received())
	assert.Equal(t, []string{"position"}, b.received())
}

func TestHubFailedSendDoesNotBlockOthers(t *testing.T) {
	hub := NewHub()
	failing := newFakeSubscriber("failing")
	failing.sendErr = errors.New("connection gone")
	healthy := newFakeSubscriber("healthy")

	hub.Subscribe(failing, "driver-1")
	hub.Subscribe(healthy, "driver-1")

	hub.Publish("driver-1", "position", nil)

	assert.Equal(t, []string{"position"}, healthy.received())
}
