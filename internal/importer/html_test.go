package importer

import (
	"strings"
	"testing"
)

func TestExtractTextFromHTML(t *testing.T) {
	tests := []struct {
		name string
		html string
		want string
	}{
		{
			name: "plain paragraphs",
			html: "<html><body><p>First paragraph.</p><p>Second paragraph.</p></body></html>",
			want: "First paragraph.\nSecond paragraph.",
		},
		{
			name: "script and style stripped",
			html: "<body><script>alert(1)</script><style>p{color:red}</style><p>Visible text.</p></body>",
			want: "Visible text.",
		},
		{
			name: "entities decoded",
			html: "<p>Lewis &amp; Clark, 1804&ndash;1806</p>",
			want: "Lewis & Clark, 1804–1806",
		},
		{
			name: "inline markup joined",
			html: "<p>The <b>golden</b> spike was driven.</p>",
			want: "The golden spike was driven.",
		},
		{
			name: "headings break lines",
			html: "<h1>Timeline</h1><div>It began in 1869.</div>",
			want: "Timeline\nIt began in 1869.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExtractTextFromHTML(tt.html); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestExtractTextFromHTMLCollapsesBlankRuns(t *testing.T) {
	html := "<div>one</div><div></div><div></div><div></div><div>two</div>"
	got := ExtractTextFromHTML(html)
	if strings.Contains(got, "\n\n\n") {
		t.Errorf("blank lines not collapsed: %q", got)
	}
	if !strings.Contains(got, "one") || !strings.Contains(got, "two") {
		t.Errorf("lost content: %q", got)
	}
}
