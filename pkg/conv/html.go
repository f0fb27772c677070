package conv

import (
	"regexp"
	"strings"

	"github.com/inbucket/html2text"
)

var htmlTag = regexp.MustCompile(`</?[a-zA-Z][^>]*>`)

// LooksLikeHTML reports whether s contains at least one markup tag.
func LooksLikeHTML(s string) bool {
	return htmlTag.MatchString(s)
}

// HTMLToText flattens markup into readable plain text. Text without tags is
// returned trimmed but otherwise untouched.
func HTMLToText(s string) string {
	s = strings.TrimSpace(s)
	if !LooksLikeHTML(s) {
		return s
	}
	text, err := html2text.FromString(s, html2text.Options{OmitLinks: true})
	if err != nil {
		return s
	}
	return strings.TrimSpace(text)
}
