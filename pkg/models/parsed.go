package models

// ParsedEvent is a candidate event produced by a parser strategy. It is
// never persisted directly; once the user accepts it, it becomes a
// HistoricalEvent (confidence is dropped, SourceText becomes Source).
type ParsedEvent struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Date        string  `json:"date"`
	Confidence  float64 `json:"confidence"` // 0-1, parse quality
	SourceText  string  `json:"sourceText"` // original text snippet
}

// ToHistorical converts an accepted candidate into its stored form.
func (p ParsedEvent) ToHistorical() HistoricalEvent {
	return HistoricalEvent{
		ID:          p.ID,
		Title:       p.Title,
		Description: p.Description,
		Date:        p.Date,
		Source:      p.SourceText,
	}
}
