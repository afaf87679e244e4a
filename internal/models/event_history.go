package models

import "time"

// EventSlotCount is the fixed number of event columns per history row
const EventSlotCount = 5

// EventSlot is one (timestamp, status, event type, location) tuple.
// Any field may be empty; a nil Timestamp means the slot is unused.
type EventSlot struct {
	Timestamp *time.Time
	Status    string
	EventType string
	Location  string
}

// EventHistoryRecord is one container's event timeline as extracted.
// Slots are in column order, not chronological order.
type EventHistoryRecord struct {
	ContainerID string
	CreatedDate *time.Time
	Slots       [EventSlotCount]EventSlot
	Latest      LatestEvent
}

// LatestEvent is the most recent slot of a history record. All fields come
// from the same slot; the zero value means no slot had a timestamp.
type LatestEvent struct {
	Timestamp *time.Time
	Status    string
	EventType string
	Location  string
}

// IsZero reports whether no event is present
func (e LatestEvent) IsZero() bool {
	return e.Timestamp == nil && e.Status == "" && e.EventType == "" && e.Location == ""
}
