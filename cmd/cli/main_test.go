package main

import (
	"strings"
	"testing"

	"chronomap/pkg/models"
)

func TestRenderParsedEvents(t *testing.T) {
	events := []models.ParsedEvent{
		{Title: "Golden Spike", Date: "1869-05-10", Confidence: 0.95},
		{Title: "Survey Begins", Date: "1869-01", Confidence: 0.7},
		{Title: "Mine Closes", Date: "1920-01-02", Confidence: 0.95},
	}

	out := renderParsedEvents(events)

	for _, want := range []string{"1869\n", "1920\n", "May 10, 1869", "January 1869", "January 2, 1920", "Golden Spike"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	if strings.Index(out, "1869\n") > strings.Index(out, "1920\n") {
		t.Errorf("years not in order:\n%s", out)
	}
}

func TestRenderParsedEventsEmpty(t *testing.T) {
	if out := renderParsedEvents(nil); !strings.Contains(out, "no events") {
		t.Errorf("output = %q", out)
	}
}

func TestRenderLocation(t *testing.T) {
	loc := models.HistoricalLocation{
		ID:          "promontory-summit-abcd",
		Name:        "Promontory Summit",
		Coordinates: models.Coordinates{-112.54, 41.62},
		Events: []models.HistoricalEvent{
			{Title: "Golden Spike", Date: "1869-05-10"},
		},
	}

	out := renderLocation(loc)
	for _, want := range []string{"Promontory Summit", "promontory-summit-abcd", "-112.5400", "May 10, 1869", "Golden Spike"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestLocationSummary(t *testing.T) {
	loc := models.HistoricalLocation{
		ID:   "promontory-summit-abcd",
		Name: "Promontory Summit",
		Events: []models.HistoricalEvent{
			{Title: "Later", Date: "1920-01-02"},
			{Title: "Earlier", Date: "1869-05-10"},
		},
	}

	got := locationSummary(loc)
	if !strings.Contains(got, "2 events") {
		t.Errorf("summary = %q", got)
	}
	if !strings.Contains(got, "May 1869 to Jan 1920") {
		t.Errorf("summary = %q, want short date span", got)
	}

	empty := locationSummary(models.HistoricalLocation{ID: "x", Name: "X"})
	if !strings.Contains(empty, "no events") {
		t.Errorf("summary = %q", empty)
	}
}

func TestAcceptedEventsConversion(t *testing.T) {
	parsed := models.ParsedEvent{
		ID:          "p-1",
		Title:       "Golden Spike",
		Description: "Railroad completed.",
		Date:        "1869-05-10",
		Confidence:  0.95,
		SourceText:  "The ceremony occurred on May 10, 1869.",
	}

	got := parsed.ToHistorical()
	if got.ID != "p-1" || got.Title != "Golden Spike" || got.Date != "1869-05-10" {
		t.Errorf("converted = %+v", got)
	}
	if got.Source != parsed.SourceText {
		t.Errorf("source = %q, want the original snippet", got.Source)
	}
}
