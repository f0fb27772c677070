package responder

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sandevgo/redwan/internal/core"
	"github.com/sandevgo/redwan/internal/providers/knowledge"
	"github.com/sandevgo/redwan/internal/service/intent"
	"github.com/sandevgo/redwan/internal/service/lexicon"
	"github.com/sandevgo/redwan/internal/service/situational"
	"github.com/sandevgo/redwan/internal/service/state"
)

func testKnowledge(t *testing.T) Knowledge {
	t.Helper()

	db, err := intent.NewDatabase([]core.Intent{
		{Tag: "greeting", Patterns: []string{"hi", "hello"}, Responses: []string{"Hello!", "Hi there!"}},
		{Tag: "farewell", Patterns: []string{"bye", "goodbye"}, Responses: []string{"Goodbye!"}},
		{Tag: "joke", Patterns: []string{"tell me a joke"}, Responses: []string{"one", "two", "three"}},
	})
	require.NoError(t, err)

	return state.NewStaticState(&knowledge.Snapshot{
		Intents: db,
		Lexicon: lexicon.NewDictionary([]core.LexiconEntry{{Source: "love", Target: "প্রেম"}}),
	})
}

func turn(input string, earlier ...core.Message) []core.Message {
	h := append([]core.Message(nil), earlier...)
	return append(h, core.Message{Text: input, Sender: core.SenderUser})
}

func TestResolve_Pipeline(t *testing.T) {
	r := New(testKnowledge(t), WithChooser(func(int) int { return 0 }))
	ctx := context.Background()

	tests := []struct {
		name     string
		input    string
		source   core.Source
		response string
	}{
		{name: "expression", input: "2+3*4", source: core.SourceExpression, response: "14"},
		{name: "expression with glyph", input: "10 ÷ 4", source: core.SourceExpression, response: "2.5"},
		{name: "lexicon", input: "meaning of love", source: core.SourceLexicon, response: "\"love\" এর বাংলা অর্থ: প্রেম"},
		{name: "lexicon banglish", input: "love mane ki?", source: core.SourceLexicon, response: "\"love\" এর বাংলা অর্থ: প্রেম"},
		{name: "intent", input: "Tell me a joke!", source: core.SourceIntent, response: "one"},
		{name: "fallback", input: "quantum chromodynamics", source: core.SourceFallback, response: FallbackMessage},
		{name: "division by zero falls through", input: "what is 12/0", source: core.SourceFallback, response: FallbackMessage},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := r.Resolve(ctx, tt.input, turn(tt.input))
			assert.Equal(t, tt.source, res.Source)
			assert.Equal(t, tt.response, res.Response)
		})
	}
}

func TestResolve_IntentTag(t *testing.T) {
	r := New(testKnowledge(t), WithChooser(func(n int) int { return n - 1 }))

	res := r.Resolve(context.Background(), "hello", turn("hello"))
	assert.Equal(t, core.SourceIntent, res.Source)
	assert.Equal(t, "greeting", res.Tag)
	assert.Equal(t, "Hi there!", res.Response)
}

func TestResolve_EmptyInputShortCircuits(t *testing.T) {
	called := false
	spy := situational.NewEngine(situational.Rule{Name: "spy", Match: func(string, []core.Message) (string, bool) {
		called = true
		return "", false
	}})
	r := New(testKnowledge(t), WithEngine(spy))

	for _, in := range []string{"", "   ", "\n\t"} {
		res := r.Resolve(context.Background(), in, nil)
		assert.Equal(t, core.SourcePrompt, res.Source)
		assert.Equal(t, PromptMessage, res.Response)
	}
	assert.False(t, called)
}

func TestResolve_EarlyFarewellBeatsClassifier(t *testing.T) {
	r := New(testKnowledge(t))

	history := turn("bye", core.Message{Text: "Hello!", Sender: core.SenderAssistant})
	res := r.Resolve(context.Background(), "bye", history)

	assert.Equal(t, core.SourceSituational, res.Source)
	assert.NotEqual(t, "Goodbye!", res.Response)

	// later in the conversation the classifier answers
	history = turn("bye",
		core.Message{Text: "Hello!", Sender: core.SenderAssistant},
		core.Message{Text: "tell me a joke", Sender: core.SenderUser},
		core.Message{Text: "one", Sender: core.SenderAssistant},
	)
	res = r.Resolve(context.Background(), "bye", history)
	assert.Equal(t, core.SourceIntent, res.Source)
	assert.Equal(t, "Goodbye!", res.Response)
}

func TestResolve_PanickingStageIsSkipped(t *testing.T) {
	boom := situational.NewEngine(situational.Rule{Name: "boom", Match: func(string, []core.Message) (string, bool) {
		panic("boom")
	}})
	r := New(testKnowledge(t), WithEngine(boom), WithChooser(func(int) int { return 0 }))

	var res core.MatchResult
	require.NotPanics(t, func() {
		res = r.Resolve(context.Background(), "hello", turn("hello"))
	})
	assert.Equal(t, core.SourceIntent, res.Source)
	assert.Equal(t, "Hello!", res.Response)
}

func TestResolve_WithoutKnowledge(t *testing.T) {
	r := New(state.NewStaticState(nil))

	res := r.Resolve(context.Background(), "hello", turn("hello"))
	assert.Equal(t, core.SourceFallback, res.Source)

	res = r.Resolve(context.Background(), "1+1", turn("1+1"))
	assert.Equal(t, "2", res.Response)

	res = New(nil).Resolve(context.Background(), "why", nil)
	assert.Equal(t, core.SourceSituational, res.Source)
}

type stubGenerator struct {
	reply string
	err   error
	delay time.Duration
	panic bool
	calls int
}

func (g *stubGenerator) Generate(ctx context.Context, _ string) (string, error) {
	g.calls++
	if g.panic {
		panic("generator exploded")
	}
	if g.delay > 0 {
		select {
		case <-time.After(g.delay):
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
	return g.reply, g.err
}

func (g *stubGenerator) Summarize(context.Context, []core.Message) (string, error) {
	return "", errors.New("not implemented")
}

func TestResolveWithFallback(t *testing.T) {
	ctx := context.Background()
	unknown := "quantum chromodynamics"

	t.Run("generator answers", func(t *testing.T) {
		g := &stubGenerator{reply: "  QCD is the theory of the strong interaction.  "}
		r := New(testKnowledge(t), WithGenerator(g, time.Second))

		res := r.ResolveWithFallback(ctx, unknown, turn(unknown))
		assert.Equal(t, core.SourceGenerator, res.Source)
		assert.Equal(t, "QCD is the theory of the strong interaction.", res.Response)
	})

	t.Run("not consulted when a matcher answers", func(t *testing.T) {
		g := &stubGenerator{reply: "x"}
		r := New(testKnowledge(t), WithGenerator(g, time.Second))

		res := r.ResolveWithFallback(ctx, "2+2", turn("2+2"))
		assert.Equal(t, core.SourceExpression, res.Source)
		assert.Zero(t, g.calls)
	})

	failures := map[string]*stubGenerator{
		"error":   {err: errors.New("upstream down")},
		"timeout": {reply: "late", delay: time.Second},
		"empty":   {reply: "   "},
		"panic":   {panic: true},
	}
	for name, g := range failures {
		t.Run(name, func(t *testing.T) {
			r := New(testKnowledge(t), WithGenerator(g, 20*time.Millisecond))

			res := r.ResolveWithFallback(ctx, unknown, turn(unknown))
			assert.Equal(t, core.SourceFallback, res.Source)
			assert.Equal(t, FallbackMessage, res.Response)
			assert.Equal(t, 1, g.calls)
		})
	}

	t.Run("no generator", func(t *testing.T) {
		res := New(testKnowledge(t)).ResolveWithFallback(ctx, unknown, turn(unknown))
		assert.Equal(t, core.SourceFallback, res.Source)
	})
}
