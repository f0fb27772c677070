package intent

import (
	"errors"
	"fmt"
	"strings"

	"github.com/sandevgo/redwan/internal/core"
	"github.com/sandevgo/redwan/pkg/textnorm"
)

var ErrInvalidIntent = errors.New("invalid intent")

type entry struct {
	intent   core.Intent
	patterns []string
}

// Database is the ordered, immutable set of intents the classifier scans.
// Order is significant: earlier intents win ties.
type Database struct {
	entries []entry
}

// NewDatabase validates intents and precomputes their normalized patterns.
// Duplicate tags are kept as separate intents.
func NewDatabase(intents []core.Intent) (*Database, error) {
	db := &Database{entries: make([]entry, 0, len(intents))}

	for i, in := range intents {
		if err := Validate(in); err != nil {
			return nil, fmt.Errorf("intent #%d: %w", i, err)
		}

		e := entry{intent: in, patterns: make([]string, 0, len(in.Patterns))}
		for _, p := range in.Patterns {
			if n := textnorm.Normalize(p); n != "" {
				e.patterns = append(e.patterns, n)
			}
		}
		if len(e.patterns) == 0 {
			return nil, fmt.Errorf("intent #%d %q: %w: no pattern survives normalization", i, in.Tag, ErrInvalidIntent)
		}

		db.entries = append(db.entries, e)
	}

	return db, nil
}

// Validate reports an intent that has no patterns or no responses.
func Validate(in core.Intent) error {
	tag := strings.TrimSpace(in.Tag)
	switch {
	case tag == "":
		return fmt.Errorf("%w: empty tag", ErrInvalidIntent)
	case len(in.Patterns) == 0:
		return fmt.Errorf("%q: %w: no patterns", tag, ErrInvalidIntent)
	case len(in.Responses) == 0:
		return fmt.Errorf("%q: %w: no responses", tag, ErrInvalidIntent)
	}
	for _, r := range in.Responses {
		if strings.TrimSpace(r) == "" {
			return fmt.Errorf("%q: %w: blank response", tag, ErrInvalidIntent)
		}
	}
	return nil
}

func (d *Database) Len() int {
	if d == nil {
		return 0
	}
	return len(d.entries)
}

func (d *Database) Intents() []core.Intent {
	if d == nil {
		return nil
	}
	out := make([]core.Intent, len(d.entries))
	for i, e := range d.entries {
		out[i] = e.intent
	}
	return out
}

// PatternCount is the number of normalized patterns across all intents.
func (d *Database) PatternCount() int {
	if d == nil {
		return 0
	}
	n := 0
	for _, e := range d.entries {
		n += len(e.patterns)
	}
	return n
}
