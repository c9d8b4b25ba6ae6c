package importer

import (
	"regexp"
	"strings"

	"golang.org/x/net/html"
)

// Tags whose content never contains readable text.
var skipTags = map[string]bool{
	"script":   true,
	"style":    true,
	"noscript": true,
}

// Elements that imply a structural break in the extracted text.
var blockTags = map[string]bool{
	"p": true, "div": true, "br": true,
	"h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
	"li": true, "tr": true, "td": true, "th": true,
	"blockquote": true, "article": true, "section": true,
	"header": true, "footer": true, "nav": true, "aside": true,
}

var (
	horizontalWS  = regexp.MustCompile(`[ \t]+`)
	lineEdgeWS    = regexp.MustCompile(`[ \t]*\n[ \t]*`)
	multiNewlines = regexp.MustCompile(`\n{3,}`)
)

// ExtractTextFromHTML strips markup and returns readable text. The HTML
// parser decodes entities; block elements become line breaks so paragraph
// structure survives, and whitespace is collapsed.
func ExtractTextFromHTML(htmlContent string) string {
	doc, err := html.Parse(strings.NewReader(htmlContent))
	if err != nil {
		return ""
	}

	var sb strings.Builder
	var extract func(*html.Node)
	extract = func(n *html.Node) {
		if n.Type == html.ElementNode && skipTags[n.Data] {
			return
		}

		if n.Type == html.TextNode {
			if text := strings.TrimSpace(n.Data); text != "" {
				sb.WriteString(text)
				sb.WriteString(" ")
			}
		}

		for c := n.FirstChild; c != nil; c = c.NextSibling {
			extract(c)
		}

		if n.Type == html.ElementNode && blockTags[n.Data] {
			sb.WriteString("\n")
		}
	}
	extract(doc)

	text := sb.String()
	text = horizontalWS.ReplaceAllString(text, " ")
	text = lineEdgeWS.ReplaceAllString(text, "\n")
	text = multiNewlines.ReplaceAllString(text, "\n\n")
	return strings.TrimSpace(text)
}
