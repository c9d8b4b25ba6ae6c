package models

// HistoricalEvent is a single dated event attached to a location.
type HistoricalEvent struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Date        string   `json:"date"` // ISO 8601: "1869-05-10", "1869-05" or "1869"
	ImageURL    string   `json:"imageUrl,omitempty"`
	Tags        []string `json:"tags,omitempty"`
	Source      string   `json:"source,omitempty"`
}

// Coordinates is a [longitude, latitude] pair, in that order.
type Coordinates [2]float64

// HistoricalLocation groups events under one map pin.
// Invariant: Events contains no two entries with the same ID.
type HistoricalLocation struct {
	ID          string            `json:"id"`
	Name        string            `json:"name"`
	Coordinates Coordinates       `json:"coordinates"`
	Events      []HistoricalEvent `json:"events"`
}

// HistoricalEventsData is the whole persisted document. It is read and
// written as one blob on every mutation; there are no partial updates.
type HistoricalEventsData struct {
	Version     string               `json:"version"`
	LastUpdated string               `json:"lastUpdated"`
	Locations   []HistoricalLocation `json:"locations"`
}
