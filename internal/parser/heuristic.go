package parser

import (
	"github.com/google/uuid"

	"chronomap/internal/dates"
	"chronomap/pkg/models"
)

// minConfidence filters out the weakest date matches (bare years and the
// like) before they become events.
const minConfidence = 0.5

// sentenceKeyLen is how much of a sentence is compared when deduplicating
// events extracted from the same sentence.
const sentenceKeyLen = 100

// Heuristic extracts events from unstructured prose: it finds dates,
// pulls the surrounding sentence as the description, and derives a title
// from that sentence.
type Heuristic struct{}

func NewHeuristic() *Heuristic { return &Heuristic{} }

func (*Heuristic) Name() string { return "regex" }

func (*Heuristic) Description() string {
	return "Extract events by finding dates in text and their surrounding sentences"
}

func (*Heuristic) Parse(text string) []models.ParsedEvent {
	matches := dates.FindDates(text)
	events := make([]models.ParsedEvent, 0, len(matches))

	// One sentence can mention several dates; keep only the first so a
	// single sentence does not produce near-identical events.
	seenSentences := make(map[string]bool)

	for _, m := range matches {
		if m.Confidence < minConfidence {
			continue
		}

		sentence := dates.ExtractSentence(text, m.Index)

		key := sentence
		if len(key) > sentenceKeyLen {
			key = key[:sentenceKeyLen]
		}
		if seenSentences[key] {
			continue
		}
		seenSentences[key] = true

		events = append(events, models.ParsedEvent{
			ID:          uuid.NewString(),
			Title:       dates.GenerateTitle(sentence, m),
			Description: sentence,
			Date:        m.Normalized,
			Confidence:  m.Confidence,
			SourceText:  sentence,
		})
	}

	dates.SortByDate(events, func(e models.ParsedEvent) string { return e.Date })
	return events
}
