package intent

import (
	"math/rand/v2"
	"strings"
	"unicode/utf8"

	"github.com/sandevgo/redwan/internal/core"
	"github.com/sandevgo/redwan/pkg/similarity"
	"github.com/sandevgo/redwan/pkg/textnorm"
)

const (
	DefaultThreshold = 0.65
	// DefaultGuard is the rune length both sides must exceed before
	// containment counts, so "hi" does not match inside "this".
	DefaultGuard = 3
)

type Match struct {
	Intent  core.Intent
	Pattern string
	Score   float64
	Exact   bool
}

type Classifier struct {
	Threshold float64
	Guard     int
}

func NewClassifier(threshold float64, guard int) Classifier {
	if threshold <= 0 {
		threshold = DefaultThreshold
	}
	if guard < 0 {
		guard = DefaultGuard
	}
	return Classifier{Threshold: threshold, Guard: guard}
}

// Classify scans every pattern of db in order. An exact match ends the scan;
// otherwise the best containment or similarity score wins if it is above
// the threshold. Ties go to the pattern seen first.
func (c Classifier) Classify(input string, db *Database) (Match, bool) {
	input = textnorm.Normalize(input)
	if input == "" || db.Len() == 0 {
		return Match{}, false
	}

	var best Match
	found := false
	for _, e := range db.entries {
		for _, p := range e.patterns {
			if p == input {
				return Match{Intent: e.intent, Pattern: p, Score: 1, Exact: true}, true
			}
			if s := c.score(input, p); !found || s > best.Score {
				best = Match{Intent: e.intent, Pattern: p, Score: s}
				found = true
			}
		}
	}

	if !found || best.Score <= c.Threshold {
		return Match{}, false
	}
	return best, true
}

func (c Classifier) score(input, pattern string) float64 {
	li, lp := utf8.RuneCountInString(input), utf8.RuneCountInString(pattern)
	if li > c.Guard && lp > c.Guard && (strings.Contains(input, pattern) || strings.Contains(pattern, input)) {
		shorter, longer := min(li, lp), max(li, lp)
		return 0.8 + 0.2*float64(shorter)/float64(longer)
	}
	return similarity.Score(input, pattern)
}

// Chooser returns an index in [0, n).
type Chooser func(n int) int

// RandomChooser picks uniformly. It is safe for concurrent use.
func RandomChooser(n int) int {
	return rand.IntN(n)
}

// PickResponse selects one of in's responses. A nil chooser picks at random.
func PickResponse(in core.Intent, choose Chooser) string {
	if len(in.Responses) == 0 {
		return ""
	}
	if choose == nil {
		choose = RandomChooser
	}
	i := choose(len(in.Responses))
	if i < 0 || i >= len(in.Responses) {
		i = 0
	}
	return in.Responses[i]
}
