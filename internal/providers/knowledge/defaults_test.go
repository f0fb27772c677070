package knowledge

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sandevgo/redwan/configs"
	"github.com/sandevgo/redwan/internal/core"
	"github.com/sandevgo/redwan/internal/service/intent"
	"github.com/sandevgo/redwan/internal/service/lexicon"
)

var defaultIntentSources = []string{
	"general", "social", "identity", "emoji", "knowledge", "history", "science", "creative", "abuse",
}

func loadDefaults(t *testing.T) *Snapshot {
	t.Helper()

	cfg := stubConfig{intents: defaultIntentSources, lexicon: []string{"dictionary"}}
	snap, err := NewLoader(cfg, configs.FS).Load(context.Background())
	require.NoError(t, err)
	require.Empty(t, snap.Failed())
	return snap
}

func TestDefaults_LoadCleanly(t *testing.T) {
	snap := loadDefaults(t)

	total := 0
	for _, r := range snap.Reports {
		assert.True(t, r.Embedded, r.Name)
		if r.Kind == KindIntents {
			assert.Positive(t, r.Count, r.Name)
			total += r.Count
		}
	}
	assert.Equal(t, total, snap.Intents.Len())
	assert.Positive(t, snap.Lexicon.Len())
}

func TestDefaults_QuickRepliesResolve(t *testing.T) {
	snap := loadDefaults(t)
	c := intent.NewClassifier(intent.DefaultThreshold, intent.DefaultGuard)

	for _, q := range core.QuickReplies {
		_, lex := lexicon.Lookup(q, snap.Lexicon)
		_, in := c.Classify(q, snap.Intents)
		assert.True(t, lex || in, "quick reply %q", q)
	}
}

func TestDefaults_ChatTokensMissDictionary(t *testing.T) {
	snap := loadDefaults(t)

	tokens := []string{
		"hi", "hello", "hey", "ok", "okay", "hmm", "how", "why", "bye", "and", "then",
		"good", "fine", "yes", "no", "thanks", "boring", "cool", "nice", "sure", "right",
		"nope", "joke", "real", "bhalo", "valo", "dhur", "haha", "sorry", "help", "great",
		"ভালো", "আচ্ছা", "হুম", "আর", "তারপর", "কেন", "হাই", "বিদায়", "ধন্যবাদ",
	}
	for _, tok := range tokens {
		tr, ok := lexicon.Lookup(tok, snap.Lexicon)
		assert.False(t, ok, "%q resolved to %v", tok, tr.Entry)
	}
}

func TestDefaults_DivisionByZeroFallsThrough(t *testing.T) {
	snap := loadDefaults(t)

	_, ok := intent.NewClassifier(intent.DefaultThreshold, intent.DefaultGuard).Classify("what is 12/0", snap.Intents)
	assert.False(t, ok)
}
