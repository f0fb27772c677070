package similarity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLevenshtein(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"", "", 0},
		{"", "abc", 3},
		{"abc", "", 3},
		{"abc", "abc", 0},
		{"kitten", "sitting", 3},
		{"flaw", "lawn", 2},
		{"প্রেম", "প্রেমে", 1},
	}

	for _, tt := range tests {
		t.Run(tt.a+"_"+tt.b, func(t *testing.T) {
			assert.Equal(t, tt.want, Levenshtein(tt.a, tt.b))
		})
	}
}

func TestScore(t *testing.T) {
	assert.Equal(t, 1.0, Score("", ""))
	assert.Equal(t, 0.0, Score("", "abc"))
	assert.InDelta(t, 1-3.0/7.0, Score("kitten", "sitting"), 1e-9)
	assert.InDelta(t, 0.75, Score("lov", "love"), 1e-9)

	for _, s := range []string{"a", "hello", "আমার নাম", "😊"} {
		assert.Equal(t, 1.0, Score(s, s), "identity for %q", s)
	}
}

func TestScore_Symmetric(t *testing.T) {
	pairs := [][2]string{
		{"kitten", "sitting"},
		{"hello", "hallo world"},
		{"ভালো", "ভাল"},
		{"", "x"},
	}

	for _, p := range pairs {
		assert.Equal(t, Score(p[0], p[1]), Score(p[1], p[0]), "%q vs %q", p[0], p[1])
	}
}

func TestScore_CountsRunes(t *testing.T) {
	// one substituted code point out of four, not one byte out of twelve
	assert.InDelta(t, 0.75, Score("ভালো", "ভালে"), 1e-9)
}
