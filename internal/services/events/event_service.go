// Package events provides the in-process pub/sub bus used to push extraction
// results and alerts to the dashboard.
package events

import (
	"context"
	"sync"

	"github.com/ternarybob/arbor"

	"github.com/Nandheswara/stock-analysis-sub000/internal/interfaces"
)

// Service implements EventService with a simple pub/sub pattern
type Service struct {
	subscribers map[interfaces.EventType][]interfaces.EventHandler
	mu          sync.RWMutex
	logger      arbor.ILogger
}

// NewService creates a new event service
func NewService(logger arbor.ILogger) *Service {
	return &Service{
		subscribers: make(map[interfaces.EventType][]interfaces.EventHandler),
		logger:      logger,
	}
}

// Subscribe registers a handler for an event type
func (s *Service) Subscribe(eventType interfaces.EventType, handler interfaces.EventHandler) {
	if handler == nil {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.subscribers[eventType] = append(s.subscribers[eventType], handler)

	s.logger.Debug().
		Str("event_type", string(eventType)).
		Int("subscriber_count", len(s.subscribers[eventType])).
		Msg("Event handler subscribed")
}

// Publish sends an event to all subscribers. Handlers run synchronously in
// registration order; a slow websocket write must not reorder alerts relative
// to the record updates that caused them.
func (s *Service) Publish(ctx context.Context, event interfaces.Event) {
	s.mu.RLock()
	handlers := make([]interfaces.EventHandler, len(s.subscribers[event.Type]))
	copy(handlers, s.subscribers[event.Type])
	s.mu.RUnlock()

	if len(handlers) == 0 {
		s.logger.Debug().
			Str("event_type", string(event.Type)).
			Msg("No subscribers for event")
		return
	}

	for _, handler := range handlers {
		handler(ctx, event)
	}
}

// Close drops all subscriptions
func (s *Service) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.subscribers = make(map[interfaces.EventType][]interfaces.EventHandler)
}

var _ interfaces.EventService = (*Service)(nil)
