package interfaces

import "context"

// EventType identifies a published event category.
type EventType string

const (
	// EventStockUpdated fires after an extraction wrote fields to a record.
	EventStockUpdated EventType = "stock_updated"
	// EventRefreshProgress fires per symbol during a batch refresh sweep.
	EventRefreshProgress EventType = "refresh_progress"
	// EventAlert carries a user-facing message (the dashboard's alert bar).
	EventAlert EventType = "alert"
)

// AlertLevel grades user-facing alert events.
type AlertLevel string

const (
	AlertInfo    AlertLevel = "info"
	AlertSuccess AlertLevel = "success"
	AlertWarning AlertLevel = "warning"
	AlertError   AlertLevel = "error"
)

// Event is a single published event with an arbitrary JSON-serializable
// payload.
type Event struct {
	Type    EventType              `json:"type"`
	Payload map[string]interface{} `json:"payload,omitempty"`
}

// EventHandler processes one published event.
type EventHandler func(ctx context.Context, event Event)

// EventService is the in-process pub/sub bus. The websocket handler subscribes
// to push refresh/alert events to the browser, replacing the injected
// renderTable/showAlert callbacks of the original UI.
type EventService interface {
	Subscribe(eventType EventType, handler EventHandler)
	Publish(ctx context.Context, event Event)
}

// AlertEvent builds an alert Event with the standard payload shape.
func AlertEvent(level AlertLevel, message string) Event {
	return Event{
		Type: EventAlert,
		Payload: map[string]interface{}{
			"level":   string(level),
			"message": message,
		},
	}
}
