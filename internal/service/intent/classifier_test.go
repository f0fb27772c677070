package intent

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sandevgo/redwan/internal/core"
)

func testDatabase(t *testing.T) *Database {
	t.Helper()

	db, err := NewDatabase([]core.Intent{
		{Tag: "greeting", Patterns: []string{"hi", "hello", "assalamualaikum"}, Responses: []string{"Hello!", "Hi there!"}},
		{Tag: "identity", Patterns: []string{"who are you", "তোমার পরিচয় কি?"}, Responses: []string{"I am Redwan-Intel."}},
		{Tag: "joke", Patterns: []string{"tell me a joke", "একটি জোকস বলো"}, Responses: []string{"joke one", "joke two", "joke three"}},
		{Tag: "greeting", Patterns: []string{"hello"}, Responses: []string{"shadowed"}},
	})
	require.NoError(t, err)
	return db
}

func TestClassify_Exact(t *testing.T) {
	c := NewClassifier(DefaultThreshold, DefaultGuard)
	db := testDatabase(t)

	m, ok := c.Classify("Hello!", db)
	require.True(t, ok)
	assert.True(t, m.Exact)
	assert.Equal(t, 1.0, m.Score)
	assert.Equal(t, "greeting", m.Intent.Tag)
	assert.Equal(t, []string{"Hello!", "Hi there!"}, m.Intent.Responses, "earlier source wins ties")

	m, ok = c.Classify("তোমার পরিচয় কি", db)
	require.True(t, ok)
	assert.Equal(t, "identity", m.Intent.Tag)
}

func TestClassify_Containment(t *testing.T) {
	c := NewClassifier(DefaultThreshold, DefaultGuard)
	db := testDatabase(t)

	m, ok := c.Classify("please tell me a joke", db)
	require.True(t, ok)
	assert.Equal(t, "joke", m.Intent.Tag)
	assert.False(t, m.Exact)
	assert.InDelta(t, 0.8+0.2*14.0/21.0, m.Score, 1e-9)
}

func TestClassify_ShortPatternGuard(t *testing.T) {
	c := NewClassifier(DefaultThreshold, DefaultGuard)
	db, err := NewDatabase([]core.Intent{
		{Tag: "greeting", Patterns: []string{"hi"}, Responses: []string{"Hello!"}},
	})
	require.NoError(t, err)

	_, ok := c.Classify("this is something else", db)
	assert.False(t, ok, "a two letter pattern must not match inside a word")

	_, ok = c.Classify("hi", db)
	assert.True(t, ok)
}

func TestClassify_Fuzzy(t *testing.T) {
	c := NewClassifier(DefaultThreshold, DefaultGuard)
	db := testDatabase(t)

	m, ok := c.Classify("who are yu", db)
	require.True(t, ok)
	assert.Equal(t, "identity", m.Intent.Tag)
	assert.InDelta(t, 1-1.0/11.0, m.Score, 1e-9)

	_, ok = c.Classify("quantum chromodynamics", db)
	assert.False(t, ok)
}

func TestClassify_ThresholdIsStrict(t *testing.T) {
	db, err := NewDatabase([]core.Intent{
		{Tag: "x", Patterns: []string{"abcd"}, Responses: []string{"x"}},
	})
	require.NoError(t, err)

	// one edit in four scores 0.75
	_, ok := NewClassifier(0.75, DefaultGuard).Classify("abce", db)
	assert.False(t, ok)

	_, ok = NewClassifier(0.74, DefaultGuard).Classify("abce", db)
	assert.True(t, ok)
}

func TestClassify_TieGoesToFirst(t *testing.T) {
	db, err := NewDatabase([]core.Intent{
		{Tag: "first", Patterns: []string{"abcx"}, Responses: []string{"1"}},
		{Tag: "second", Patterns: []string{"abcy"}, Responses: []string{"2"}},
	})
	require.NoError(t, err)

	m, ok := NewClassifier(0.5, DefaultGuard).Classify("abcz", db)
	require.True(t, ok)
	assert.Equal(t, "first", m.Intent.Tag)
}

func TestClassify_Empty(t *testing.T) {
	c := NewClassifier(DefaultThreshold, DefaultGuard)

	_, ok := c.Classify("", testDatabase(t))
	assert.False(t, ok)

	_, ok = c.Classify("   ?! ", testDatabase(t))
	assert.False(t, ok)

	_, ok = c.Classify("hello", nil)
	assert.False(t, ok)
}

func TestNewDatabase_Validation(t *testing.T) {
	tests := []struct {
		name   string
		intent core.Intent
	}{
		{"no tag", core.Intent{Patterns: []string{"a"}, Responses: []string{"b"}}},
		{"no patterns", core.Intent{Tag: "t", Responses: []string{"b"}}},
		{"no responses", core.Intent{Tag: "t", Patterns: []string{"a"}}},
		{"blank response", core.Intent{Tag: "t", Patterns: []string{"a"}, Responses: []string{" "}}},
		{"punctuation only patterns", core.Intent{Tag: "t", Patterns: []string{"?!", "..."}, Responses: []string{"b"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewDatabase([]core.Intent{tt.intent})
			assert.ErrorIs(t, err, ErrInvalidIntent)
		})
	}
}

func TestDatabase_Counts(t *testing.T) {
	db := testDatabase(t)

	assert.Equal(t, 4, db.Len())
	assert.Equal(t, 8, db.PatternCount())
	assert.Len(t, db.Intents(), 4)

	var empty *Database
	assert.Equal(t, 0, empty.Len())
}

func TestPickResponse(t *testing.T) {
	in := core.Intent{Tag: "joke", Responses: []string{"a", "b", "c"}}

	assert.Equal(t, "c", PickResponse(in, func(n int) int { return n - 1 }))
	assert.Equal(t, "a", PickResponse(in, func(int) int { return 99 }), "out of range falls back to the first")
	assert.Contains(t, in.Responses, PickResponse(in, nil))
	assert.Empty(t, PickResponse(core.Intent{}, nil))
}
