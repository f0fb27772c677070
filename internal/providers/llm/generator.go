package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/sandevgo/redwan/internal/core"
	"github.com/sandevgo/redwan/pkg/conv"
	"github.com/sandevgo/redwan/pkg/log"
	"github.com/sandevgo/redwan/pkg/retry"
)

const (
	generateSystemPrompt = "You are " + core.BotName + ", a friendly bilingual (Bengali and English) assistant. " +
		"Answer briefly in the language the user wrote in."
	summarizeSystemPrompt = "Summarize the following chat history in a concise way. " +
		"Keep names, open questions and decisions."

	// DefaultSummaryBudget bounds the transcript sent for summarization.
	DefaultSummaryBudget = 3000
)

var (
	ErrEmptyReply   = errors.New("generator returned an empty reply")
	ErrNothingToSum = errors.New("no messages to summarize")
)

// Generator adapts a provider API to core.Generator. Calls are rate limited
// and transient failures are retried.
type Generator struct {
	api     chatter
	limiter *rate.Limiter
	retrier *retry.Retrier
	count   TokenCounter
	budget  int
}

type GeneratorOption func(*Generator)

func WithTokenCounter(fn TokenCounter) GeneratorOption {
	return func(g *Generator) { g.count = fn }
}

func WithSummaryBudget(tokens int) GeneratorOption {
	return func(g *Generator) { g.budget = tokens }
}

func WithRetry(cfg *retry.Config) GeneratorOption {
	return func(g *Generator) { g.retrier = retry.NewRetrier(cfg) }
}

// newGenerator allows perMinute calls per minute with a burst of one;
// perMinute <= 0 disables limiting.
func newGenerator(api chatter, perMinute int, opts ...GeneratorOption) *Generator {
	limit := rate.Inf
	if perMinute > 0 {
		limit = rate.Every(time.Minute / time.Duration(perMinute))
	}
	g := &Generator{
		api:     api,
		limiter: rate.NewLimiter(limit, 1),
		retrier: retry.NewDefaultRetrier(),
		count:   CountTokens,
		budget:  DefaultSummaryBudget,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

func (g *Generator) Generate(ctx context.Context, message string) (string, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return "", ErrEmptyReply
	}
	return g.call(ctx, generateSystemPrompt, []chatMessage{{Role: "user", Content: message}})
}

// Summarize sends the newest messages that fit the token budget, oldest first.
func (g *Generator) Summarize(ctx context.Context, history []core.Message) (string, error) {
	transcript := g.transcript(history)
	if transcript == "" {
		return "", ErrNothingToSum
	}
	return g.call(ctx, summarizeSystemPrompt, []chatMessage{{Role: "user", Content: transcript}})
}

func (g *Generator) transcript(history []core.Message) string {
	var lines []string
	used := 0
	for i := len(history) - 1; i >= 0; i-- {
		m := history[i]
		text := strings.TrimSpace(m.Text)
		if text == "" {
			continue
		}
		line := fmt.Sprintf("%s: %s", m.Sender, text)
		cost := g.count(line)
		if used+cost > g.budget && len(lines) > 0 {
			break
		}
		used += cost
		lines = append(lines, line)
	}

	for i, j := 0, len(lines)-1; i < j; i, j = i+1, j-1 {
		lines[i], lines[j] = lines[j], lines[i]
	}
	return strings.Join(lines, "\n")
}

func (g *Generator) call(ctx context.Context, system string, messages []chatMessage) (string, error) {
	logger := log.FromCtx(ctx)

	if err := g.limiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("rate limit: %w", err)
	}

	var reply string
	err := g.retrier.Do(ctx, func() error {
		var err error
		reply, err = g.api.complete(ctx, system, messages)
		if err != nil {
			logger.Debug().Err(err).Msg("generator call failed")
		}
		return err
	})
	if err != nil {
		return "", err
	}

	// some models answer in HTML
	reply = conv.HTMLToText(reply)
	if reply == "" {
		return "", ErrEmptyReply
	}
	return reply, nil
}
