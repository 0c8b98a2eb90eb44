package events

import "time"

// Event is one activity notification raised by a workspace.
type Event interface {
	// EventType returns the unique code for this event (e.g. "PDF_UPLOADED").
	EventType() string

	// Owner is the workspace the event belongs to.
	Owner() string

	// Payload returns the data associated with the event.
	Payload() map[string]interface{}

	// Timestamp returns when the event occurred.
	Timestamp() time.Time
}

type BaseEvent struct {
	Type       string
	UserId     string
	Data       map[string]interface{}
	OccurredAt time.Time
}

func New(eventType, owner string, data map[string]interface{}) BaseEvent {
	return BaseEvent{
		Type:       eventType,
		UserId:     owner,
		Data:       data,
		OccurredAt: time.Now(),
	}
}

func (e BaseEvent) EventType() string {
	return e.Type
}

func (e BaseEvent) Owner() string {
	return e.UserId
}

func (e BaseEvent) Payload() map[string]interface{} {
	return e.Data
}

func (e BaseEvent) Timestamp() time.Time {
	return e.OccurredAt
}
