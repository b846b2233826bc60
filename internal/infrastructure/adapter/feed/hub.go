// Package feed fans committed request events out to live subscribers such
// as websocket connections.
package feed

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/amirhossein-jamali/hotfinet-ledger/internal/domain/entity"
	coreport "github.com/amirhossein-jamali/hotfinet-ledger/internal/domain/port/core"
	"github.com/amirhossein-jamali/hotfinet-ledger/internal/domain/port/messaging"
)

// Filter selects the events a subscription receives
type Filter func(entity.RequestEvent) bool

// ForUser matches events about requests the user is a party to
func ForUser(userID string) Filter {
	return func(e entity.RequestEvent) bool {
		return e.Concerns(userID)
	}
}

// ForRequest narrows f to one request
func (f Filter) ForRequest(requestID string) Filter {
	return func(e entity.RequestEvent) bool {
		return e.Request.ID == requestID && f(e)
	}
}

// Subscription receives matching events until it is cancelled. A subscriber
// that falls behind loses events rather than blocking the publisher.
type Subscription struct {
	hub     *Hub
	id      uint64
	filter  Filter
	events  chan entity.RequestEvent
	done    chan struct{}
	dropped atomic.Uint64
	once    sync.Once
}

// Events is closed when the subscription ends
func (s *Subscription) Events() <-chan entity.RequestEvent {
	return s.events
}

// Done is closed when the subscription ends
func (s *Subscription) Done() <-chan struct{} {
	return s.done
}

// Dropped counts events lost because the buffer was full
func (s *Subscription) Dropped() uint64 {
	return s.dropped.Load()
}

// Unsubscribe ends the subscription. It is safe to call more than once.
func (s *Subscription) Unsubscribe() {
	s.hub.remove(s)
}

func (s *Subscription) end() {
	s.once.Do(func() {
		close(s.done)
		close(s.events)
	})
}

// Hub is an in-process publish/subscribe point
type Hub struct {
	mu     sync.RWMutex
	nextID uint64
	subs   map[uint64]*Subscription
	buffer int
	closed bool
	logger coreport.Logger
}

// NewHub creates a hub whose subscriptions buffer up to buffer events
func NewHub(buffer int, logger coreport.Logger) *Hub {
	if buffer <= 0 {
		buffer = 16
	}
	return &Hub{
		subs:   make(map[uint64]*Subscription),
		buffer: buffer,
		logger: logger,
	}
}

var _ messaging.EventPublisher = (*Hub)(nil)

// Subscribe registers filter until ctx is done or Unsubscribe is called.
// After Shutdown it returns an already ended subscription.
func (h *Hub) Subscribe(ctx context.Context, filter Filter) *Subscription {
	sub := &Subscription{
		hub:    h,
		filter: filter,
		events: make(chan entity.RequestEvent, h.buffer),
		done:   make(chan struct{}),
	}

	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		sub.end()
		return sub
	}
	h.nextID++
	sub.id = h.nextID
	h.subs[sub.id] = sub
	h.mu.Unlock()

	go func() {
		select {
		case <-ctx.Done():
			sub.Unsubscribe()
		case <-sub.done:
		}
	}()
	return sub
}

// Publish delivers event to every matching subscriber without blocking
func (h *Hub) Publish(event entity.RequestEvent) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for _, sub := range h.subs {
		if !sub.filter(event) {
			continue
		}
		select {
		case sub.events <- event:
		default:
			dropped := sub.dropped.Add(1)
			h.logger.Warn("Feed subscriber is behind, dropping event", map[string]any{
				"requestId": event.Request.ID,
				"event":     event.Type,
				"dropped":   dropped,
			})
		}
	}
}

// Subscribers returns the number of open subscriptions
func (h *Hub) Subscribers() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs)
}

// Shutdown ends every subscription
func (h *Hub) Shutdown() {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.closed = true
	for id, sub := range h.subs {
		delete(h.subs, id)
		sub.end()
	}
}

func (h *Hub) remove(sub *Subscription) {
	h.mu.Lock()
	defer h.mu.Unlock()

	delete(h.subs, sub.id)
	sub.end()
}
