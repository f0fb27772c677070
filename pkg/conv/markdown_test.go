package conv

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMarkdownToTelegramHTML(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "empty input", input: "", expected: ""},
		{name: "plain text", input: "Hello world", expected: "Hello world"},
		{name: "bengali with emoji", input: "আমি ভালো আছি 😊", expected: "আমি ভালো আছি 😊"},
		{name: "bold text", input: "**bold**", expected: "<strong>bold</strong>"},
		{name: "italic text", input: "*italic*", expected: "<em>italic</em>"},
		{name: "strikethrough", input: "~~gone~~", expected: "<del>gone</del>"},
		{name: "inline code", input: "`2+2`", expected: "<code>2+2</code>"},
		{
			name:     "code block with language",
			input:    "```go\nfunc main() {}\n```",
			expected: "<pre><code class=\"language-go\">func main() {}\n</code></pre>",
		},
		{name: "blockquote", input: "> quote", expected: "<blockquote>\nquote\n</blockquote>"},
		{name: "link target stripped", input: "[link](https://example.com)", expected: "<a href=\"https://example.com\">link</a>"},
		{name: "header tags stripped", input: "# Info", expected: "Info"},
		{name: "script tags sanitized", input: "<script>alert('xss')</script>", expected: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, MarkdownToTelegramHTML(tt.input))
		})
	}
}

func TestHTMLToText(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "plain text untouched", input: "  2 < 3 and 5 > 4 ", want: "2 < 3 and 5 > 4"},
		{name: "paragraph", input: "<p>Hello <span>world</span></p>", want: "Hello world"},
		{name: "link text only", input: `<a href="https://example.com">site</a>`, want: "site"},
		{name: "empty", input: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HTMLToText(tt.input))
		})
	}
}
