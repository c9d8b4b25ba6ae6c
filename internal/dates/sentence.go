package dates

import (
	"regexp"
	"strings"
	"unicode"
)

const (
	// maxSentenceLen bounds event descriptions; longer sentences fall
	// back to a fixed window around the date.
	maxSentenceLen = 300

	windowBefore = 100
	windowAfter  = 200

	maxTitleLen = 60

	// DefaultTitle is used when nothing usable remains after stripping
	// the date from the sentence.
	DefaultTitle = "Historical Event"
)

var (
	leadingPunct  = regexp.MustCompile(`^[,\-:]+\s*`)
	trailingPunct = regexp.MustCompile(`[,\-:]+\s*$`)
)

// ExtractSentence returns the sentence around the date at dateIndex: the
// span between the nearest preceding sentence terminator (. ! ?) and the
// next one, inclusive. Overlong spans are replaced by a bounded window
// around the date, suffixed with an ellipsis.
func ExtractSentence(text string, dateIndex int) string {
	start := 0
	end := len(text)

	for i := 0; i < len(text); i++ {
		c := text[i]
		if c != '.' && c != '!' && c != '?' {
			continue
		}
		if i < dateIndex {
			start = i + 1
			continue
		}
		end = i + 1
		break
	}

	sentence := strings.TrimSpace(text[start:end])
	if len(sentence) > maxSentenceLen {
		ws := dateIndex - windowBefore
		if ws < 0 {
			ws = 0
		}
		we := dateIndex + windowAfter
		if we > len(text) {
			we = len(text)
		}
		return strings.TrimSpace(text[ws:we]) + "..."
	}

	return sentence
}

// GenerateTitle derives a short label from the sentence with the matched
// date removed: first 8 words, punctuation trimmed, first rune
// capitalized, truncated to 60 runes.
func GenerateTitle(sentence string, match DateMatch) string {
	withoutDate := strings.TrimSpace(strings.Replace(sentence, match.Raw, "", 1))

	words := strings.Fields(withoutDate)
	if len(words) > 8 {
		words = words[:8]
	}
	title := strings.Join(words, " ")

	title = leadingPunct.ReplaceAllString(title, "")
	title = trailingPunct.ReplaceAllString(title, "")

	if r := []rune(title); len(r) > 0 {
		r[0] = unicode.ToUpper(r[0])
		if len(r) > maxTitleLen {
			r = r[:maxTitleLen-3]
			title = string(r) + "..."
		} else {
			title = string(r)
		}
	}

	if title == "" {
		return DefaultTitle
	}
	return title
}
