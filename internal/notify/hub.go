// Package notify fans low-stock events out to connected subscribers and,
// when configured, mirrors them onto a Kafka topic.
package notify

import (
	"sync"

	"github.com/dani2c/integracion-plataformas/internal/domain"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// subscriberBuffer is per-subscriber; a subscriber that falls this far
// behind starts losing events rather than blocking the publisher.
const subscriberBuffer = 16

// Sink receives every published event in addition to in-process
// subscribers. Used to bridge events onto Kafka.
type Sink interface {
	Send(event domain.LowStockEvent) error
}

// Hub is an in-process broadcast of low-stock events. Publish never blocks:
// slow subscribers drop events instead of stalling the confirmation
// pipeline.
type Hub struct {
	mu   sync.Mutex
	subs map[string]chan domain.LowStockEvent
	sink Sink
	log  *zap.Logger
}

// NewHub creates a hub. Sink may be nil.
func NewHub(sink Sink, logger *zap.Logger) *Hub {
	return &Hub{
		subs: make(map[string]chan domain.LowStockEvent),
		sink: sink,
		log:  logger,
	}
}

// Subscribe registers a new subscriber and returns its id and channel. The
// channel is closed by Unsubscribe.
func (h *Hub) Subscribe() (string, <-chan domain.LowStockEvent) {
	id := uuid.New().String()
	ch := make(chan domain.LowStockEvent, subscriberBuffer)

	h.mu.Lock()
	h.subs[id] = ch
	count := len(h.subs)
	h.mu.Unlock()

	h.log.Info("Subscriber registered",
		zap.String("subscriber_id", id),
		zap.Int("subscribers", count),
	)
	return id, ch
}

// Unsubscribe removes a subscriber and closes its channel. Unknown ids are
// ignored.
func (h *Hub) Unsubscribe(id string) {
	h.mu.Lock()
	ch, ok := h.subs[id]
	if ok {
		delete(h.subs, id)
	}
	count := len(h.subs)
	h.mu.Unlock()

	if ok {
		close(ch)
		h.log.Info("Subscriber removed",
			zap.String("subscriber_id", id),
			zap.Int("subscribers", count),
		)
	}
}

// Publish delivers the event to every subscriber, dropping it for any
// subscriber whose buffer is full, and forwards it to the sink.
func (h *Hub) Publish(event domain.LowStockEvent) {
	h.mu.Lock()
	for id, ch := range h.subs {
		select {
		case ch <- event:
		default:
			h.log.Warn("Subscriber buffer full, dropping event",
				zap.String("subscriber_id", id),
				zap.String("location", event.LocationID),
			)
		}
	}
	h.mu.Unlock()

	if h.sink != nil {
		if err := h.sink.Send(event); err != nil {
			h.log.Warn("Failed to forward event to sink",
				zap.String("location", event.LocationID),
				zap.Error(err),
			)
		}
	}
}

// SubscriberCount reports the number of connected subscribers.
func (h *Hub) SubscriberCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs)
}
