package textnorm

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

// stripped is the deny-list of punctuation removed from user input.
// Arithmetic glyphs and brackets are not listed: the expression evaluator
// reads the normalized text.
var stripped = map[rune]bool{
	'!': true, '?': true, ',': true, ';': true, ':': true,
	'"': true, '`': true,
	'“': true, '”': true, '«': true, '»': true,
	'…': true, '¡': true, '¿': true,
	'।': true, // Bengali danda
	'॥': true, // double danda
}

// elided marks are dropped without a space so contractions stay one token:
// "what's" becomes "whats".
var elided = map[rune]bool{
	'\'': true, '‘': true, '’': true,
}

// Normalize canonicalizes raw input for matching: NFC composition, case
// folding, punctuation removal and whitespace collapsing.
// Normalize(Normalize(s)) == Normalize(s).
func Normalize(text string) string {
	text = norm.NFC.String(text)
	// a Caser keeps state between calls and must not be shared
	text = cases.Fold().String(text)
	// folding may leave combining sequences uncomposed
	text = norm.NFC.String(text)

	runes := []rune(text)
	var b strings.Builder
	b.Grow(len(text))
	for i, r := range runes {
		if elided[r] {
			continue
		}
		if stripped[r] {
			b.WriteRune(' ')
			continue
		}
		if r == '.' && !(i+1 < len(runes) && unicode.IsDigit(runes[i+1])) {
			b.WriteRune(' ')
			continue
		}
		b.WriteRune(r)
	}

	return strings.Join(strings.Fields(b.String()), " ")
}

// Tokens splits normalized text into whitespace separated tokens.
func Tokens(normalized string) []string {
	return strings.Fields(normalized)
}

// HasPhrase reports whether phrase occurs in text on token boundaries.
// Both arguments are expected to be normalized.
func HasPhrase(text, phrase string) bool {
	if phrase == "" {
		return false
	}
	return strings.Contains(" "+text+" ", " "+phrase+" ")
}
