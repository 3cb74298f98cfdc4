// Package pubsub fans controller snapshots and log lines out to listeners.
package pubsub

import "time"

// EventType says what caused an event.
type EventType string

const (
	// CreatedEvent marks append-only streams such as log entries.
	CreatedEvent EventType = "created"
	// LoadedEvent follows a fetch that replaced the local overrides.
	LoadedEvent EventType = "loaded"
	// EditedEvent follows a local edit.
	EditedEvent EventType = "edited"
	// StatusEvent follows a change to status fields only: persist
	// completions, runtime actions and failures.
	StatusEvent EventType = "status"
)

// Event carries one published value.
type Event[T any] struct {
	Type      EventType
	Payload   T
	Timestamp time.Time
}
