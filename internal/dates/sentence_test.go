package dates

import (
	"strings"
	"testing"
)

func TestExtractSentence(t *testing.T) {
	text := "First part. The spike was driven on May 10, 1869 at Promontory Summit. Crowds cheered."

	tests := []struct {
		name      string
		text      string
		dateIndex int
		want      string
	}{
		{
			name:      "middle sentence",
			text:      text,
			dateIndex: strings.Index(text, "May"),
			want:      "The spike was driven on May 10, 1869 at Promontory Summit.",
		},
		{
			name:      "first sentence",
			text:      text,
			dateIndex: strings.Index(text, "First"),
			want:      "First part.",
		},
		{
			name:      "no terminator before",
			text:      "Completed May 10, 1869. And celebrated.",
			dateIndex: strings.Index("Completed May 10, 1869. And celebrated.", "May"),
			want:      "Completed May 10, 1869.",
		},
		{
			name:      "no terminator after",
			text:      "It all ended in 1869",
			dateIndex: strings.Index("It all ended in 1869", "in"),
			want:      "It all ended in 1869",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExtractSentence(tt.text, tt.dateIndex); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestExtractSentenceLongFallback(t *testing.T) {
	// A terminator-free run longer than the sentence cap falls back to a
	// window around the date, marked with an ellipsis.
	text := strings.Repeat("x", 150) + " May 10, 1869 " + strings.Repeat("y", 250)
	dateIndex := strings.Index(text, "May")

	got := ExtractSentence(text, dateIndex)
	if !strings.HasSuffix(got, "...") {
		t.Fatalf("expected ellipsis suffix, got %q", got)
	}
	if len(got) > maxSentenceLen+3 {
		t.Errorf("window too long: %d bytes", len(got))
	}
	if !strings.Contains(got, "May 10, 1869") {
		t.Errorf("window lost the date: %q", got)
	}
}

func TestGenerateTitle(t *testing.T) {
	tests := []struct {
		name     string
		sentence string
		raw      string
		want     string
	}{
		{
			name:     "first eight words",
			sentence: "The spike was driven at Promontory Summit in Utah on May 10, 1869.",
			raw:      "May 10, 1869",
			want:     "The spike was driven at Promontory Summit in",
		},
		{
			name:     "leading punctuation stripped",
			sentence: "1869-05-10 - the railroad was completed.",
			raw:      "1869-05-10",
			want:     "The railroad was completed.",
		},
		{
			name:     "first letter capitalized",
			sentence: "on May 10, 1869 the crews met.",
			raw:      "May 10, 1869",
			want:     "On the crews met.",
		},
		{
			name:     "nothing left after date removal",
			sentence: "May 10, 1869",
			raw:      "May 10, 1869",
			want:     DefaultTitle,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := GenerateTitle(tt.sentence, DateMatch{Raw: tt.raw})
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestGenerateTitleTruncation(t *testing.T) {
	words := strings.TrimSpace(strings.Repeat("Abcdefghij ", 8))
	sentence := words + " 1869-05-10"

	got := GenerateTitle(sentence, DateMatch{Raw: "1869-05-10"})
	if !strings.HasSuffix(got, "...") {
		t.Fatalf("expected ellipsis suffix, got %q", got)
	}
	if n := len([]rune(got)); n != maxTitleLen {
		t.Errorf("title length = %d runes, want %d", n, maxTitleLen)
	}
}
