// Package fanout delivers committed seat transitions to live viewers of an event.
//
// Hub is the process-local registry of viewers. Dispatcher sits between the reservation
// service and a SeatEventPublisher and releases messages in commit order. The Redis and
// AMQP publishers carry messages between instances; their relays feed them into the Hub.
package fanout

import (
	"context"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"seatreservation/internal/domain"
)

// Hub keeps per-event subscribers and pushes messages to them without blocking.
// A subscriber whose buffer is full misses the message. There is no backlog for late joiners.
type Hub struct {
	mu     sync.RWMutex
	subs   map[string]map[string]*subscription
	buffer int
	logger *slog.Logger
}

func NewHub(buffer int, logger *slog.Logger) *Hub {
	if buffer <= 0 {
		buffer = 16
	}
	return &Hub{
		subs:   make(map[string]map[string]*subscription),
		buffer: buffer,
		logger: logger,
	}
}

// Subscribe registers a new viewer of eventID.
func (h *Hub) Subscribe(eventID string) domain.Subscription {
	s := &subscription{
		id:      uuid.NewString(),
		eventID: eventID,
		ch:      make(chan domain.SeatStatusMessage, h.buffer),
		hub:     h,
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.subs[eventID] == nil {
		h.subs[eventID] = make(map[string]*subscription)
	}
	h.subs[eventID][s.id] = s
	return s
}

// Publish hands msg to every current subscriber of msg.EventID. It never blocks and never fails.
func (h *Hub) Publish(ctx context.Context, msg domain.SeatStatusMessage) error {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, s := range h.subs[msg.EventID] {
		select {
		case s.ch <- msg:
		default:
			h.logger.Debug("dropping seat message for slow subscriber",
				"event_id", msg.EventID, "seat_id", msg.SeatID, "subscriber_id", s.id)
		}
	}
	return nil
}

// SubscriberCount returns the number of live subscribers of eventID.
func (h *Hub) SubscriberCount(eventID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs[eventID])
}

func (h *Hub) remove(s *subscription) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if subs, ok := h.subs[s.eventID]; ok {
		delete(subs, s.id)
		if len(subs) == 0 {
			delete(h.subs, s.eventID)
		}
	}
	close(s.ch)
}

type subscription struct {
	id      string
	eventID string
	ch      chan domain.SeatStatusMessage
	hub     *Hub
	once    sync.Once
}

func (s *subscription) ID() string { return s.id }

func (s *subscription) Messages() <-chan domain.SeatStatusMessage { return s.ch }

// Close unregisters the subscriber and closes its channel. Safe to call more than once.
func (s *subscription) Close() {
	s.once.Do(func() { s.hub.remove(s) })
}
