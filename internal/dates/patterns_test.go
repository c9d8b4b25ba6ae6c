package dates

import (
	"sort"
	"strings"
	"testing"
)

func TestFindDates(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []DateMatch
	}{
		{
			name: "iso format",
			text: "Work finished on 1869-05-10.",
			want: []DateMatch{
				{Raw: "1869-05-10", Normalized: "1869-05-10", Confidence: 1.0},
			},
		},
		{
			name: "full month name",
			text: "The ceremony occurred on May 10, 1869 at Promontory.",
			want: []DateMatch{
				{Raw: "May 10, 1869", Normalized: "1869-05-10", Confidence: 0.95},
				{Raw: "1869", Normalized: "1869", Confidence: 0.3},
			},
		},
		{
			name: "abbreviated month with period",
			text: "Signed Oct. 28, 1886 in the harbor.",
			want: []DateMatch{
				{Raw: "Oct. 28, 1886", Normalized: "1886-10-28", Confidence: 0.9},
				{Raw: "1886", Normalized: "1886", Confidence: 0.3},
			},
		},
		{
			name: "us slash format",
			text: "On 5/10/1869 the rail lines met.",
			want: []DateMatch{
				{Raw: "5/10/1869", Normalized: "1869-05-10", Confidence: 0.85},
				{Raw: "1869", Normalized: "1869", Confidence: 0.3},
			},
		},
		{
			name: "european day first",
			text: "Dated 10-5-1869 in the ledger.",
			want: []DateMatch{
				{Raw: "10-5-1869", Normalized: "1869-05-10", Confidence: 0.8},
				{Raw: "1869", Normalized: "1869", Confidence: 0.3},
			},
		},
		{
			name: "month and year only",
			text: "Construction began May 1869 and lasted months.",
			want: []DateMatch{
				{Raw: "May 1869", Normalized: "1869-05", Confidence: 0.7},
				{Raw: "1869", Normalized: "1869", Confidence: 0.3},
			},
		},
		{
			name: "contextual year",
			text: "The town boomed in 1869 before the bust.",
			want: []DateMatch{
				{Raw: "in 1869", Normalized: "1869", Confidence: 0.5},
				{Raw: "1869", Normalized: "1869", Confidence: 0.3},
			},
		},
		{
			name: "standalone year",
			text: "The 1848 gold rush changed everything.",
			want: []DateMatch{
				{Raw: "1848", Normalized: "1848", Confidence: 0.3},
			},
		},
		{
			name: "no dates",
			text: "Nothing date-like appears in this sentence.",
			want: nil,
		},
		{
			name: "year out of range",
			text: "Scheduled for 2045 maybe.",
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FindDates(tt.text)
			if len(got) != len(tt.want) {
				t.Fatalf("got %d matches, want %d: %+v", len(got), len(tt.want), got)
			}
			for i, w := range tt.want {
				if got[i].Raw != w.Raw {
					t.Errorf("match %d raw = %q, want %q", i, got[i].Raw, w.Raw)
				}
				if got[i].Normalized != w.Normalized {
					t.Errorf("match %d normalized = %q, want %q", i, got[i].Normalized, w.Normalized)
				}
				if got[i].Confidence != w.Confidence {
					t.Errorf("match %d confidence = %v, want %v", i, got[i].Confidence, w.Confidence)
				}
			}
		})
	}
}

func TestFindDatesOffsetDedup(t *testing.T) {
	// The standalone-year rule also matches the leading "1869" of the ISO
	// date, at the same byte offset; the higher-confidence rule must win.
	got := FindDates("Work finished on 1869-05-10.")
	if len(got) != 1 {
		t.Fatalf("got %d matches, want 1: %+v", len(got), got)
	}
	if got[0].Confidence != 1.0 {
		t.Errorf("confidence = %v, want 1.0", got[0].Confidence)
	}
	if want := strings.Index("Work finished on 1869-05-10.", "1869"); got[0].Index != want {
		t.Errorf("index = %d, want %d", got[0].Index, want)
	}
}

func TestFindDatesOrdering(t *testing.T) {
	text := "In 1920 the mine closed, long after the May 10, 1869 ceremony " +
		"and the panic of 1873. The charter of 1850-01-15 still applied."
	got := FindDates(text)
	if len(got) == 0 {
		t.Fatal("expected matches")
	}

	if !sort.SliceIsSorted(got, func(i, j int) bool { return got[i].Index < got[j].Index }) {
		t.Errorf("matches not sorted by index: %+v", got)
	}

	seen := make(map[int]bool)
	for _, m := range got {
		if seen[m.Index] {
			t.Errorf("duplicate index %d: %+v", m.Index, got)
		}
		seen[m.Index] = true
	}

	for _, m := range got {
		if text[m.Index:m.Index+len(m.Raw)] != m.Raw {
			t.Errorf("index %d does not point at raw %q", m.Index, m.Raw)
		}
	}
}
