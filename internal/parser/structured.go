package parser

import (
	"strings"

	"github.com/google/uuid"

	"chronomap/internal/dates"
	"chronomap/pkg/models"
)

// Structured parses the explicit labeled block format:
//
//	EVENT: Golden Spike Ceremony
//	DATE: May 10, 1869
//	DESCRIPTION: The First Transcontinental Railroad was completed.
//
// or the single-line pipe-delimited variant:
//
//	EVENT: Golden Spike | DATE: 1869-05-10 | DESCRIPTION: Railroad completed
//
// Structured input is treated as authoritative, so every emitted event
// carries confidence 1.0.
type Structured struct{}

func NewStructured() *Structured { return &Structured{} }

func (*Structured) Name() string { return "structured" }

func (*Structured) Description() string {
	return "Parse structured EVENT:/DATE:/DESCRIPTION: format"
}

func (*Structured) Parse(text string) []models.ParsedEvent {
	events := parseMultiLine(text)

	// Single-line results are merged in by title; a multi-line block wins
	// when both passes produced the same title.
	for _, ev := range parseSingleLine(text) {
		dup := false
		for _, existing := range events {
			if existing.Title == ev.Title {
				dup = true
				break
			}
		}
		if !dup {
			events = append(events, ev)
		}
	}

	dates.SortByDate(events, func(e models.ParsedEvent) string { return e.Date })
	return events
}

// parseMultiLine scans for EVENT:/DATE: blocks. A block ends at a blank
// line, the next EVENT: label, or end of input. Blocks missing a title or
// an unparseable date are skipped, never fatal.
func parseMultiLine(text string) []models.ParsedEvent {
	var events []models.ParsedEvent
	lines := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")

	for i := 0; i < len(lines); i++ {
		title, ok := labelValue(lines[i], "EVENT:")
		if !ok {
			continue
		}
		// Single-line pipe entries start with EVENT: too; those belong to
		// the other pass. A pipe alone is not enough: a block title may
		// legitimately contain one.
		if strings.Contains(lines[i], "|") && strings.Contains(lines[i], "DATE:") {
			continue
		}

		if i+1 >= len(lines) {
			break
		}
		dateStr, ok := labelValue(lines[i+1], "DATE:")
		if !ok {
			continue
		}

		var descLines []string
		end := i + 2
		for ; end < len(lines); end++ {
			line := lines[end]
			if strings.TrimSpace(line) == "" {
				break
			}
			if _, isEvent := labelValue(line, "EVENT:"); isEvent {
				break
			}
			if v, isDesc := labelValue(line, "DESCRIPTION:"); isDesc && len(descLines) == 0 {
				descLines = append(descLines, v)
				continue
			}
			descLines = append(descLines, line)
		}

		block := strings.TrimSpace(strings.Join(lines[i:end], "\n"))
		i = end - 1

		if title == "" || dateStr == "" {
			continue
		}
		normalized, ok := dates.ParseToISO(dateStr)
		if !ok {
			continue
		}

		description := strings.TrimSpace(strings.Join(descLines, "\n"))
		if description == "" {
			description = title
		}

		events = append(events, models.ParsedEvent{
			ID:          uuid.NewString(),
			Title:       title,
			Description: description,
			Date:        normalized,
			Confidence:  1.0,
			SourceText:  block,
		})
	}

	return events
}

// parseSingleLine handles pipe-delimited one-liners. The line must carry
// both an EVENT: and a DATE: segment; segment labels are matched
// case-insensitively.
func parseSingleLine(text string) []models.ParsedEvent {
	var events []models.ParsedEvent

	for _, line := range strings.Split(text, "\n") {
		if !strings.Contains(line, "EVENT:") || !strings.Contains(line, "DATE:") {
			continue
		}
		if !strings.Contains(line, "|") {
			continue
		}

		var title, dateStr, description string
		for _, part := range strings.Split(line, "|") {
			part = strings.TrimSpace(part)
			if v, ok := labelValue(part, "EVENT:"); ok {
				title = v
			} else if v, ok := labelValue(part, "DATE:"); ok {
				dateStr = v
			} else if v, ok := labelValue(part, "DESCRIPTION:"); ok {
				description = v
			}
		}

		if title == "" || dateStr == "" {
			continue
		}
		normalized, ok := dates.ParseToISO(dateStr)
		if !ok {
			continue
		}
		if description == "" {
			description = title
		}

		events = append(events, models.ParsedEvent{
			ID:          uuid.NewString(),
			Title:       title,
			Description: description,
			Date:        normalized,
			Confidence:  1.0,
			SourceText:  strings.TrimSpace(line),
		})
	}

	return events
}

// labelValue matches a "LABEL: value" line, label case-insensitive,
// leading whitespace allowed. Returns the trimmed value.
func labelValue(line, label string) (string, bool) {
	trimmed := strings.TrimSpace(line)
	if len(trimmed) < len(label) || !strings.EqualFold(trimmed[:len(label)], label) {
		return "", false
	}
	return strings.TrimSpace(trimmed[len(label):]), true
}
