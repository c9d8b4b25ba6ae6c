package dates

import (
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// DateMatch is a date-like substring recognized in free text. Index is a
// byte offset into the source text.
type DateMatch struct {
	Raw        string  `json:"raw"`
	Normalized string  `json:"normalized"` // ISO 8601: YYYY[-MM[-DD]]
	Confidence float64 `json:"confidence"` // 0-1
	Index      int     `json:"index"`
}

// patternRule pairs a regex with a fixed confidence weight and a
// normalizer. The normalizer returns "" to drop an invalid candidate.
type patternRule struct {
	re         *regexp.Regexp
	confidence float64
	normalize  func(groups []string) string
}

var monthNumbers = map[string]string{
	"january": "01", "february": "02", "march": "03", "april": "04",
	"may": "05", "june": "06", "july": "07", "august": "08",
	"september": "09", "october": "10", "november": "11", "december": "12",
}

var monthAbbrevNumbers = map[string]string{
	"jan": "01", "feb": "02", "mar": "03", "apr": "04",
	"may": "05", "jun": "06", "jul": "07", "aug": "08",
	"sep": "09", "oct": "10", "nov": "11", "dec": "12",
}

// datePatterns is evaluated in order; earlier rules carry higher
// confidence and claim their character offset first.
var datePatterns = []patternRule{
	// ISO format: "1869-05-10"
	{
		re:         regexp.MustCompile(`(\d{4})-(\d{2})-(\d{2})`),
		confidence: 1.0,
		normalize:  func(g []string) string { return g[0] },
	},

	// Full month name: "May 10, 1869"
	{
		re:         regexp.MustCompile(`(?i)(January|February|March|April|May|June|July|August|September|October|November|December)\s+(\d{1,2}),?\s+(\d{4})`),
		confidence: 0.95,
		normalize: func(g []string) string {
			month := monthNumbers[strings.ToLower(g[1])]
			if month == "" {
				return ""
			}
			return g[3] + "-" + month + "-" + pad2(g[2])
		},
	},

	// Abbreviated month: "May. 10, 1869" or "May 10, 1869"
	{
		re:         regexp.MustCompile(`(?i)(Jan|Feb|Mar|Apr|May|Jun|Jul|Aug|Sep|Oct|Nov|Dec)\.?\s+(\d{1,2}),?\s+(\d{4})`),
		confidence: 0.9,
		normalize: func(g []string) string {
			month := monthAbbrevNumbers[strings.ToLower(g[1])]
			if month == "" {
				return ""
			}
			return g[3] + "-" + month + "-" + pad2(g[2])
		},
	},

	// US format: "5/10/1869" or "05/10/1869"
	{
		re:         regexp.MustCompile(`(\d{1,2})/(\d{1,2})/(\d{4})`),
		confidence: 0.85,
		normalize: func(g []string) string {
			return g[3] + "-" + pad2(g[1]) + "-" + pad2(g[2])
		},
	},

	// European format, interpreted day-first: "10-5-1869" or "10.5.1869".
	// Genuinely ambiguous with the US rule for inputs like 3-4-1869.
	{
		re:         regexp.MustCompile(`(\d{1,2})[-.](\d{1,2})[-.](\d{4})`),
		confidence: 0.8,
		normalize: func(g []string) string {
			return g[3] + "-" + pad2(g[2]) + "-" + pad2(g[1])
		},
	},

	// Month and year: "May 1869"
	{
		re:         regexp.MustCompile(`(?i)(January|February|March|April|May|June|July|August|September|October|November|December)\s+(\d{4})`),
		confidence: 0.7,
		normalize: func(g []string) string {
			month := monthNumbers[strings.ToLower(g[1])]
			if month == "" {
				return ""
			}
			return g[2] + "-" + month
		},
	},

	// Year in context: "in 1869", "circa 1869"
	{
		re:         regexp.MustCompile(`(?i)(?:in|during|around|circa|c\.)\s+(\d{4})`),
		confidence: 0.5,
		normalize:  func(g []string) string { return g[1] },
	},

	// Standalone 4-digit year, bounded to a plausible range.
	{
		re:         regexp.MustCompile(`\b(1[0-9]{3}|20[0-2][0-9])\b`),
		confidence: 0.3,
		normalize: func(g []string) string {
			year, err := strconv.Atoi(g[1])
			if err != nil || year < 1000 || year > 2030 {
				return ""
			}
			return g[1]
		},
	},
}

// FindDates returns every recognized date in text, ordered by ascending
// byte offset. When two rules match at the identical offset, the earlier
// (higher-confidence) rule wins and the later match is discarded; matches
// at distinct offsets are all retained.
func FindDates(text string) []DateMatch {
	var matches []DateMatch
	seen := make(map[int]bool)

	for _, rule := range datePatterns {
		for _, loc := range rule.re.FindAllStringSubmatchIndex(text, -1) {
			index := loc[0]
			if seen[index] {
				continue
			}

			groups := make([]string, len(loc)/2)
			for i := range groups {
				if loc[2*i] >= 0 {
					groups[i] = text[loc[2*i]:loc[2*i+1]]
				}
			}

			normalized := rule.normalize(groups)
			if normalized == "" {
				continue
			}

			matches = append(matches, DateMatch{
				Raw:        groups[0],
				Normalized: normalized,
				Confidence: rule.confidence,
				Index:      index,
			})
			seen[index] = true
		}
	}

	sort.Slice(matches, func(i, j int) bool { return matches[i].Index < matches[j].Index })
	return matches
}

func pad2(s string) string {
	if len(s) == 1 {
		return "0" + s
	}
	return s
}
