package sync

import "time"

// StoreEvent types.
const (
	LocationCreated = "location.created"
	LocationUpdated = "location.updated"
	LocationDeleted = "location.deleted"
	EventsAdded     = "events.added"
	EventUpdated    = "event.updated"
	EventDeleted    = "event.deleted"
	DataImported    = "data.imported"
)

// StoreEvent announces a mutation of the events document.
type StoreEvent struct {
	Type       string    `json:"type"`
	LocationID string    `json:"location_id,omitempty"`
	EventID    string    `json:"event_id,omitempty"`
	Count      int       `json:"count,omitempty"`
	At         time.Time `json:"at"`
}
