package lexicon

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/sandevgo/redwan/internal/core"
	"github.com/sandevgo/redwan/pkg/similarity"
	"github.com/sandevgo/redwan/pkg/textnorm"
)

const DefaultThreshold = 0.70

// patterns capture the term of a "meaning of X" question. They run against
// normalized text, so they are lowercase and punctuation free. More specific
// forms come first: "x er mane ki" must not capture "x er".
var patterns = []*regexp.Regexp{
	regexp.MustCompile(`^(?:what is |whats )?(?:the )?meaning of (.+)$`),
	regexp.MustCompile(`^what does (.+) mean$`),
	regexp.MustCompile(`^translate (.+)$`),
	regexp.MustCompile(`^(.+?) (?:er|এর) (?:mane|mani|মানে) (?:ki|কি|কী)$`),
	regexp.MustCompile(`^(.+?) (?:mane|mani|মানে) (?:ki|কি|কী)$`),
	regexp.MustCompile(`^(.+?) শব্দের (?:অর্থ|মানে) (?:কি|কী)$`),
	regexp.MustCompile(`^(.+?) (?:ortho|অর্থ) (?:ki|কি|কী)$`),
	regexp.MustCompile(`^(.+?) (?:means|meaning)$`),
}

// Translation is a resolved dictionary hit.
type Translation struct {
	Entry core.LexiconEntry
	// Reverse is set when the user typed the target term.
	Reverse bool
	// Fuzzy is set when the hit came from the similarity scan.
	Fuzzy bool
	Score float64
}

func (t Translation) String() string {
	if t.Reverse {
		return fmt.Sprintf("\"%s\" এর ইংরেজি অর্থ: %s", t.Entry.Target, t.Entry.Source)
	}
	if t.Fuzzy {
		return fmt.Sprintf("আপনি কি \"%s\" বোঝাতে চেয়েছেন? এর বাংলা অর্থ: %s", t.Entry.Source, t.Entry.Target)
	}
	return fmt.Sprintf("\"%s\" এর বাংলা অর্থ: %s", t.Entry.Source, t.Entry.Target)
}

type Resolver struct {
	// Threshold is the similarity a fuzzy hit must strictly exceed.
	Threshold float64
}

func NewResolver(threshold float64) Resolver {
	if threshold <= 0 {
		threshold = DefaultThreshold
	}
	return Resolver{Threshold: threshold}
}

// Lookup resolves text against dict with the default threshold.
func Lookup(text string, dict *Dictionary) (Translation, bool) {
	return NewResolver(DefaultThreshold).Lookup(text, dict)
}

// Lookup extracts a candidate term from normalized text and resolves it:
// exact source match, exact target match, then the best fuzzy source match.
func (r Resolver) Lookup(text string, dict *Dictionary) (Translation, bool) {
	if dict.Len() == 0 {
		return Translation{}, false
	}

	term, ok := Candidate(text)
	if !ok {
		return Translation{}, false
	}

	if e, ok := dict.source(term); ok {
		return Translation{Entry: e, Score: 1}, true
	}
	if e, ok := dict.target(term); ok {
		return Translation{Entry: e, Reverse: true, Score: 1}, true
	}

	best, bestScore := -1, 0.0
	for i, key := range dict.keys {
		if s := similarity.Score(term, key); s > bestScore {
			best, bestScore = i, s
		}
	}
	if best < 0 || bestScore <= r.Threshold {
		return Translation{}, false
	}

	return Translation{Entry: dict.entries[best], Fuzzy: true, Score: bestScore}, true
}

// Candidate returns the term a lexicon query asks about. A single-token
// input is its own candidate.
func Candidate(text string) (string, bool) {
	text = textnorm.Normalize(text)
	if text == "" {
		return "", false
	}

	for _, p := range patterns {
		if m := p.FindStringSubmatch(text); m != nil {
			term := strings.TrimSpace(m[1])
			if term != "" {
				return term, true
			}
		}
	}

	if len(textnorm.Tokens(text)) == 1 {
		return text, true
	}
	return "", false
}
