package store

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"regexp"
	"strconv"
	"strings"
	"time"

	"chronomap/pkg/models"
)

const (
	// StorageKey is the single key the whole document lives under.
	StorageKey = "historical-events"

	// DataVersion is informational only; it is neither enforced nor
	// migrated.
	DataVersion = "1.0.0"
)

var nonSlug = regexp.MustCompile(`[^a-z0-9]+`)

// Store owns the HistoricalEventsData document. Every operation is a
// read-modify-write of the whole blob; concurrent writers race with
// last-write-wins semantics, which is accepted for a single-owner
// dataset.
type Store struct {
	storage Storage
	key     string
}

func New(storage Storage) *Store {
	return &Store{storage: storage, key: StorageKey}
}

func defaultData() models.HistoricalEventsData {
	return models.HistoricalEventsData{
		Version:     DataVersion,
		LastUpdated: time.Now().UTC().Format(time.RFC3339),
		Locations:   []models.HistoricalLocation{},
	}
}

// GetAll returns the persisted document, or the default empty document
// when nothing is stored yet. A blob that fails to parse is treated as
// absent, logged, and never surfaced as an error.
func (s *Store) GetAll(ctx context.Context) (models.HistoricalEventsData, error) {
	raw, ok, err := s.storage.Get(ctx, s.key)
	if err != nil {
		return defaultData(), fmt.Errorf("load events data: %w", err)
	}
	if !ok {
		return defaultData(), nil
	}

	var data models.HistoricalEventsData
	if err := json.Unmarshal(raw, &data); err != nil {
		log.Printf("[store] corrupt events document, starting empty: %v", err)
		return defaultData(), nil
	}
	if data.Locations == nil {
		data.Locations = []models.HistoricalLocation{}
	}
	return data, nil
}

// Save stamps lastUpdated and persists the whole document.
func (s *Store) Save(ctx context.Context, data models.HistoricalEventsData) error {
	data.LastUpdated = time.Now().UTC().Format(time.RFC3339)
	raw, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("marshal events data: %w", err)
	}
	if err := s.storage.Set(ctx, s.key, raw); err != nil {
		return fmt.Errorf("save events data: %w", err)
	}
	return nil
}

// Locations returns all locations.
func (s *Store) Locations(ctx context.Context) ([]models.HistoricalLocation, error) {
	data, err := s.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	return data.Locations, nil
}

// Location returns one location by id, or nil when it does not exist.
func (s *Store) Location(ctx context.Context, locationID string) (*models.HistoricalLocation, error) {
	data, err := s.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	for i := range data.Locations {
		if data.Locations[i].ID == locationID {
			return &data.Locations[i], nil
		}
	}
	return nil, nil
}

// SaveLocation inserts or replaces a location by id.
func (s *Store) SaveLocation(ctx context.Context, loc models.HistoricalLocation) error {
	data, err := s.GetAll(ctx)
	if err != nil {
		return err
	}

	replaced := false
	for i := range data.Locations {
		if data.Locations[i].ID == loc.ID {
			data.Locations[i] = loc
			replaced = true
			break
		}
	}
	if !replaced {
		data.Locations = append(data.Locations, loc)
	}
	return s.Save(ctx, data)
}

// CreateLocation derives a unique id from the name and persists a new
// location holding the given events.
func (s *Store) CreateLocation(ctx context.Context, name string, coordinates models.Coordinates, events []models.HistoricalEvent) (models.HistoricalLocation, error) {
	if events == nil {
		events = []models.HistoricalEvent{}
	}
	loc := models.HistoricalLocation{
		ID:          GenerateLocationID(name),
		Name:        name,
		Coordinates: coordinates,
		Events:      events,
	}
	if err := s.SaveLocation(ctx, loc); err != nil {
		return models.HistoricalLocation{}, err
	}
	return loc, nil
}

// AddEventsToLocation merges events into a location by id. Incoming
// events whose id already exists on the location are silently dropped, so
// the call is idempotent. Returns false (not an error) when the location
// does not exist.
func (s *Store) AddEventsToLocation(ctx context.Context, locationID string, events []models.HistoricalEvent) (bool, error) {
	data, err := s.GetAll(ctx)
	if err != nil {
		return false, err
	}

	for i := range data.Locations {
		if data.Locations[i].ID != locationID {
			continue
		}

		existing := make(map[string]bool, len(data.Locations[i].Events))
		for _, ev := range data.Locations[i].Events {
			existing[ev.ID] = true
		}
		for _, ev := range events {
			if !existing[ev.ID] {
				data.Locations[i].Events = append(data.Locations[i].Events, ev)
			}
		}
		return true, s.Save(ctx, data)
	}
	return false, nil
}

// UpdateEvent replaces an event in place. Returns false when the location
// or event is not found.
func (s *Store) UpdateEvent(ctx context.Context, locationID string, event models.HistoricalEvent) (bool, error) {
	data, err := s.GetAll(ctx)
	if err != nil {
		return false, err
	}

	for i := range data.Locations {
		if data.Locations[i].ID != locationID {
			continue
		}
		for j := range data.Locations[i].Events {
			if data.Locations[i].Events[j].ID == event.ID {
				data.Locations[i].Events[j] = event
				return true, s.Save(ctx, data)
			}
		}
		return false, nil
	}
	return false, nil
}

// DeleteEvent removes an event from a location. Returns false when the
// location or event is not found.
func (s *Store) DeleteEvent(ctx context.Context, locationID, eventID string) (bool, error) {
	data, err := s.GetAll(ctx)
	if err != nil {
		return false, err
	}

	for i := range data.Locations {
		if data.Locations[i].ID != locationID {
			continue
		}
		events := data.Locations[i].Events
		for j := range events {
			if events[j].ID == eventID {
				data.Locations[i].Events = append(events[:j:j], events[j+1:]...)
				return true, s.Save(ctx, data)
			}
		}
		return false, nil
	}
	return false, nil
}

// DeleteLocation removes a location and its events. Returns false when
// the location is not found.
func (s *Store) DeleteLocation(ctx context.Context, locationID string) (bool, error) {
	data, err := s.GetAll(ctx)
	if err != nil {
		return false, err
	}

	for i := range data.Locations {
		if data.Locations[i].ID == locationID {
			data.Locations = append(data.Locations[:i:i], data.Locations[i+1:]...)
			return true, s.Save(ctx, data)
		}
	}
	return false, nil
}

// ExportJSON serializes the whole document for download/backup.
func (s *Store) ExportJSON(ctx context.Context) ([]byte, error) {
	data, err := s.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	raw, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("export events data: %w", err)
	}
	return raw, nil
}

// ImportJSON replaces the document with an exported one. The blob must
// carry a version and a locations array; otherwise the import fails and
// the existing data is left untouched.
func (s *Store) ImportJSON(ctx context.Context, raw []byte) error {
	var data models.HistoricalEventsData
	if err := json.Unmarshal(raw, &data); err != nil {
		return fmt.Errorf("import events data: %w", err)
	}
	if data.Version == "" || data.Locations == nil {
		return fmt.Errorf("import events data: invalid data format")
	}
	return s.Save(ctx, data)
}

// Clear removes the persisted document entirely.
func (s *Store) Clear(ctx context.Context) error {
	return s.storage.Remove(ctx, s.key)
}

// GenerateLocationID turns a display name into a URL-safe id with a
// base-36 timestamp suffix for uniqueness.
func GenerateLocationID(name string) string {
	base := strings.Trim(nonSlug.ReplaceAllString(strings.ToLower(name), "-"), "-")
	suffix := strconv.FormatInt(time.Now().UnixMilli(), 36)
	if len(suffix) > 4 {
		suffix = suffix[len(suffix)-4:]
	}
	return base + "-" + suffix
}
