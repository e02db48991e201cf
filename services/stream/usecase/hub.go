package usecase

import (
	"sync"

	"github.com/tawseel/dispatch/internal/pkg/logger"
	"github.com/tawseel/dispatch/services/stream"
)

// Hub routes published payloads to topic subscribers. It keeps a reverse
// index so a disconnecting client can be removed from every topic it joined
// without scanning the whole map.
type Hub struct {
	mu     sync.RWMutex
	topics map[string]map[string]stream.Subscriber
	// subscriber id -> set of topics it belongs to
	reverse map[string]map[string]struct{}
	bySubID map[string]stream.Subscriber
}

func NewHub() *Hub {
	return &Hub{
		topics:  make(map[string]map[string]stream.Subscriber),
		reverse: make(map[string]map[string]struct{}),
		bySubID: make(map[string]stream.Subscriber),
	}
}

// Subscribe adds sub to topic. Subscribing twice is a no-op.
func (h *Hub) Subscribe(sub stream.Subscriber, topic string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	set, ok := h.topics[topic]
	if !ok {
		set = make(map[string]stream.Subscriber)
		h.topics[topic] = set
	}
	set[sub.ID()] = sub

	topics, ok := h.reverse[sub.ID()]
	if !ok {
		topics = make(map[string]struct{})
		h.reverse[sub.ID()] = topics
	}
	topics[topic] = struct{}{}
	h.bySubID[sub.ID()] = sub
}

// Unsubscribe removes the subscriber from one topic. Unknown pairs are a
// no-op.
func (h *Hub) Unsubscribe(subID, topic string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.removeLocked(subID, topic)
}

// DropSubscriber removes the subscriber from every topic it joined.
func (h *Hub) DropSubscriber(subID string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for topic := range h.reverse[subID] {
		h.removeLocked(subID, topic)
	}
}

func (h *Hub) removeLocked(subID, topic string) {
	if set, ok := h.topics[topic]; ok {
		delete(set, subID)
		if len(set) == 0 {
			delete(h.topics, topic)
		}
	}
	if topics, ok := h.reverse[subID]; ok {
		delete(topics, topic)
		if len(topics) == 0 {
			delete(h.reverse, subID)
			delete(h.bySubID, subID)
		}
	}
}

// Publish delivers the payload to every current subscriber of topic. Send
// errors are logged and do not affect the other subscribers.
func (h *Hub) Publish(topic, event string, payload interface{}) {
	h.mu.RLock()
	subs := make([]stream.Subscriber, 0, len(h.topics[topic]))
	for _, sub := range h.topics[topic] {
		subs = append(subs, sub)
	}
	h.mu.RUnlock()

	for _, sub := range subs {
		if err := sub.Send(event, payload); err != nil {
			logger.Debug("dropping failed send",
				logger.String("topic", topic),
				logger.String("subscriber_id", sub.ID()),
				logger.Err(err))
		}
	}
}

// SubscriberCount reports the current size of a topic. Used by tests and the
// health endpoint.
func (h *Hub) SubscriberCount(topic string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.topics[topic])
}
