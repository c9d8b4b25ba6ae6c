package dates

import (
	"regexp"
	"sort"
	"strconv"
	"strings"
)

var monthNames = []string{
	"January", "February", "March", "April", "May", "June",
	"July", "August", "September", "October", "November", "December",
}

var monthAbbrevs = []string{
	"Jan", "Feb", "Mar", "Apr", "May", "Jun",
	"Jul", "Aug", "Sep", "Oct", "Nov", "Dec",
}

var (
	isoRe    = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	yearRe   = regexp.MustCompile(`^\d{4}$`)
	mdyRe    = regexp.MustCompile(`^(\w+)\s+(\d{1,2}),?\s+(\d{4})$`)
	abbrevRe = regexp.MustCompile(`^(\w{3})\.?\s+(\d{1,2}),?\s+(\d{4})$`)
	usRe     = regexp.MustCompile(`^(\d{1,2})/(\d{1,2})/(\d{4})$`)
)

// ParseToISO normalizes a whole date string to ISO 8601. It accepts a
// deliberately stricter format set than the pattern matcher in
// patterns.go: ISO dates, bare years, "Month D, YYYY" with a full or
// 3-letter month (optional period after the abbreviation), and M/D/YYYY.
// The two implementations are intentionally kept separate; see DESIGN.md.
func ParseToISO(dateStr string) (string, bool) {
	if isoRe.MatchString(dateStr) || yearRe.MatchString(dateStr) {
		return dateStr, true
	}

	if g := mdyRe.FindStringSubmatch(dateStr); g != nil {
		if month, ok := monthIndex(monthNames, g[1]); ok {
			return g[3] + "-" + month + "-" + pad2(g[2]), true
		}
	}

	if g := abbrevRe.FindStringSubmatch(dateStr); g != nil {
		if month, ok := monthIndex(monthAbbrevs, g[1]); ok {
			return g[3] + "-" + month + "-" + pad2(g[2]), true
		}
	}

	if g := usRe.FindStringSubmatch(dateStr); g != nil {
		return g[3] + "-" + pad2(g[1]) + "-" + pad2(g[2]), true
	}

	return "", false
}

func monthIndex(names []string, s string) (string, bool) {
	for i, name := range names {
		if strings.EqualFold(name, s) {
			return pad2(strconv.Itoa(i + 1)), true
		}
	}
	return "", false
}

// FormatDate renders an ISO date for display: "May 10, 1869",
// "May 1869" or "1869" depending on precision.
func FormatDate(isoDate string) string {
	parts := strings.Split(isoDate, "-")
	if parts[0] == "" {
		return isoDate
	}
	year := parts[0]
	if len(parts) == 1 {
		return year
	}

	name := monthName(monthNames, parts[1])
	if len(parts) == 2 {
		return name + " " + year
	}

	day, err := strconv.Atoi(parts[2])
	if err != nil {
		return name + " " + year
	}
	return name + " " + strconv.Itoa(day) + ", " + year
}

// FormatDateShort renders an ISO date as "May 1869".
func FormatDateShort(isoDate string) string {
	parts := strings.Split(isoDate, "-")
	if parts[0] == "" {
		return isoDate
	}
	if len(parts) == 1 {
		return parts[0]
	}
	return monthName(monthAbbrevs, parts[1]) + " " + parts[0]
}

func monthName(names []string, monthPart string) string {
	i, err := strconv.Atoi(monthPart)
	if err != nil || i < 1 || i > 12 {
		return monthPart
	}
	return names[i-1]
}

// Year returns the year component of an ISO date string.
func Year(isoDate string) string {
	if i := strings.IndexByte(isoDate, '-'); i >= 0 {
		return isoDate[:i]
	}
	return isoDate
}

// SortByDate stable-sorts events chronologically, earliest first.
// Normalized ISO strings order lexicographically, so a plain string
// compare is a chronological compare.
func SortByDate[T any](events []T, date func(T) string) {
	sort.SliceStable(events, func(i, j int) bool {
		return date(events[i]) < date(events[j])
	})
}

// GroupByYear buckets events by their year component.
func GroupByYear[T any](events []T, date func(T) string) map[string][]T {
	groups := make(map[string][]T)
	for _, ev := range events {
		y := Year(date(ev))
		groups[y] = append(groups[y], ev)
	}
	return groups
}
