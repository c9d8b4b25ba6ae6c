package parser

import (
	"testing"
)

func TestStructuredMultiLine(t *testing.T) {
	s := NewStructured()
	events := s.Parse("EVENT: Golden Spike\nDATE: 1869-05-10\nDESCRIPTION: Railroad completed.")

	if len(events) != 1 {
		t.Fatalf("got %d events, want 1: %+v", len(events), events)
	}
	ev := events[0]
	if ev.Title != "Golden Spike" {
		t.Errorf("title = %q, want Golden Spike", ev.Title)
	}
	if ev.Date != "1869-05-10" {
		t.Errorf("date = %q, want 1869-05-10", ev.Date)
	}
	if ev.Confidence != 1.0 {
		t.Errorf("confidence = %v, want 1.0", ev.Confidence)
	}
	if ev.Description != "Railroad completed." {
		t.Errorf("description = %q", ev.Description)
	}
}

func TestStructuredMultiLineVariants(t *testing.T) {
	tests := []struct {
		name string
		text string
		want int
	}{
		{
			name: "several blocks separated by blank lines",
			text: "EVENT: Golden Spike\nDATE: May 10, 1869\nDESCRIPTION: Railroad completed.\n\n" +
				"EVENT: Statue Dedication\nDATE: Oct. 28, 1886\nDESCRIPTION: Dedicated in the harbor.",
			want: 2,
		},
		{
			name: "block without description label",
			text: "EVENT: Golden Spike\nDATE: 1869-05-10",
			want: 1,
		},
		{
			name: "multi line description",
			text: "EVENT: Golden Spike\nDATE: 1869-05-10\nDESCRIPTION: The two lines met.\nA golden spike was driven.",
			want: 1,
		},
		{
			name: "unparseable date skips the block",
			text: "EVENT: Bad Block\nDATE: sometime later\n\nEVENT: Good Block\nDATE: 1869-05-10",
			want: 1,
		},
		{
			name: "event without date line is skipped",
			text: "EVENT: Orphan\nNot a date line at all.",
			want: 0,
		},
		{
			name: "case insensitive labels",
			text: "event: Golden Spike\ndate: 1869-05-10",
			want: 1,
		},
	}

	s := NewStructured()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			events := s.Parse(tt.text)
			if len(events) != tt.want {
				t.Fatalf("got %d events, want %d: %+v", len(events), tt.want, events)
			}
		})
	}
}

func TestStructuredMultiLineTitleWithPipe(t *testing.T) {
	s := NewStructured()
	events := s.Parse("EVENT: Golden Spike | East Meets West\nDATE: 1869-05-10")

	if len(events) != 1 {
		t.Fatalf("got %d events, want 1: %+v", len(events), events)
	}
	if events[0].Title != "Golden Spike | East Meets West" {
		t.Errorf("title = %q, want the pipe preserved", events[0].Title)
	}
	if events[0].Date != "1869-05-10" {
		t.Errorf("date = %q", events[0].Date)
	}
}

func TestStructuredMultiLineDescriptionFallback(t *testing.T) {
	s := NewStructured()
	events := s.Parse("EVENT: Golden Spike\nDATE: 1869-05-10")

	if len(events) != 1 {
		t.Fatalf("got %d events, want 1", len(events))
	}
	if events[0].Description != "Golden Spike" {
		t.Errorf("description = %q, want the title as fallback", events[0].Description)
	}
}

func TestStructuredSingleLine(t *testing.T) {
	s := NewStructured()
	events := s.Parse("EVENT: Golden Spike | DATE: 1869-05-10 | DESCRIPTION: Railroad completed")

	if len(events) != 1 {
		t.Fatalf("got %d events, want 1: %+v", len(events), events)
	}
	ev := events[0]
	if ev.Title != "Golden Spike" {
		t.Errorf("title = %q", ev.Title)
	}
	if ev.Date != "1869-05-10" {
		t.Errorf("date = %q", ev.Date)
	}
	if ev.Description != "Railroad completed" {
		t.Errorf("description = %q", ev.Description)
	}
	if ev.Confidence != 1.0 {
		t.Errorf("confidence = %v, want 1.0", ev.Confidence)
	}
}

func TestStructuredTitleCollisionMultiLineWins(t *testing.T) {
	text := "EVENT: Golden Spike\nDATE: 1869-05-10\nDESCRIPTION: From the block.\n\n" +
		"EVENT: Golden Spike | DATE: 1869-05-11 | DESCRIPTION: From the one-liner"

	s := NewStructured()
	events := s.Parse(text)

	if len(events) != 1 {
		t.Fatalf("got %d events, want 1: %+v", len(events), events)
	}
	if events[0].Description != "From the block." {
		t.Errorf("description = %q, want the multi-line block to win", events[0].Description)
	}
	if events[0].Date != "1869-05-10" {
		t.Errorf("date = %q, want 1869-05-10", events[0].Date)
	}
}

func TestStructuredMergedResultsSorted(t *testing.T) {
	text := "EVENT: Later\nDATE: 1920-01-02\n\n" +
		"EVENT: Earlier | DATE: 1869-05-10"

	s := NewStructured()
	events := s.Parse(text)

	if len(events) != 2 {
		t.Fatalf("got %d events, want 2: %+v", len(events), events)
	}
	if events[0].Title != "Earlier" || events[1].Title != "Later" {
		t.Errorf("order = [%s, %s], want [Earlier, Later]", events[0].Title, events[1].Title)
	}
}

func TestStructuredIgnoresProse(t *testing.T) {
	s := NewStructured()
	if events := s.Parse("The ceremony occurred on May 10, 1869 at Promontory."); len(events) != 0 {
		t.Errorf("got %d events for unlabeled prose", len(events))
	}
}
