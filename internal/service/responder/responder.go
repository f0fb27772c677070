package responder

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sandevgo/redwan/internal/core"
	"github.com/sandevgo/redwan/internal/providers/knowledge"
	"github.com/sandevgo/redwan/internal/service/intent"
	"github.com/sandevgo/redwan/internal/service/lexicon"
	"github.com/sandevgo/redwan/internal/service/situational"
	"github.com/sandevgo/redwan/pkg/log"
	"github.com/sandevgo/redwan/pkg/mathexpr"
	"github.com/sandevgo/redwan/pkg/textnorm"
)

const (
	PromptMessage   = "অনুগ্রহ করে কিছু লিখুন। 🙂"
	FallbackMessage = "দুঃখিত, আমি আপনার কথাটি বুঝতে পারিনি। অনুগ্রহ করে অন্যভাবে বলুন।"

	DefaultGeneratorTimeout = 20 * time.Second
)

type Knowledge interface {
	Snapshot() *knowledge.Snapshot
}

type Option func(*Responder)

func WithChooser(c intent.Chooser) Option {
	return func(r *Responder) { r.choose = c }
}

func WithEngine(e *situational.Engine) Option {
	return func(r *Responder) { r.engine = e }
}

func WithClassifier(c intent.Classifier) Option {
	return func(r *Responder) { r.classifier = c }
}

func WithLexicon(l lexicon.Resolver) Option {
	return func(r *Responder) { r.lexicon = l }
}

// WithGenerator enables the generative fallback. A nil generator leaves it
// disabled.
func WithGenerator(g core.Generator, timeout time.Duration) Option {
	return func(r *Responder) {
		r.generator = g
		if timeout > 0 {
			r.generatorTimeout = timeout
		}
	}
}

// Responder runs the matchers in priority order: expression, lexicon,
// situational rules, intents. A matcher that panics is skipped.
type Responder struct {
	knowledge        Knowledge
	engine           *situational.Engine
	classifier       intent.Classifier
	lexicon          lexicon.Resolver
	choose           intent.Chooser
	generator        core.Generator
	generatorTimeout time.Duration
}

func New(k Knowledge, opts ...Option) *Responder {
	r := &Responder{
		knowledge:        k,
		engine:           situational.NewEngine(),
		classifier:       intent.NewClassifier(intent.DefaultThreshold, intent.DefaultGuard),
		lexicon:          lexicon.NewResolver(lexicon.DefaultThreshold),
		choose:           intent.RandomChooser,
		generatorTimeout: DefaultGeneratorTimeout,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

type stage struct {
	name string
	run  func(normalized string, history []core.Message, snap *knowledge.Snapshot) (core.MatchResult, bool)
}

func (r *Responder) stages() []stage {
	return []stage{
		{name: "expression", run: r.expression},
		{name: "lexicon", run: r.lookup},
		{name: "situational", run: r.situational},
		{name: "intent", run: r.intent},
	}
}

// Resolve answers one user turn. history holds the recent window with the
// current turn last.
func (r *Responder) Resolve(ctx context.Context, input string, history []core.Message) core.MatchResult {
	if strings.TrimSpace(input) == "" {
		return core.MatchResult{Response: PromptMessage, Source: core.SourcePrompt}
	}

	normalized := textnorm.Normalize(input)
	var snap *knowledge.Snapshot
	if r.knowledge != nil {
		snap = r.knowledge.Snapshot()
	}

	for _, s := range r.stages() {
		if res, ok := r.guard(ctx, s, normalized, history, snap); ok {
			log.FromCtx(ctx).Debug().Str("source", string(res.Source)).Str("tag", res.Tag).Msg("resolved")
			return res
		}
	}

	return core.MatchResult{Response: FallbackMessage, Source: core.SourceFallback}
}

// ResolveWithFallback is Resolve, but hands the static fallback case to the
// generator when one is configured. Generator failures yield the fallback.
func (r *Responder) ResolveWithFallback(ctx context.Context, input string, history []core.Message) core.MatchResult {
	res := r.Resolve(ctx, input, history)
	if res.Source != core.SourceFallback || r.generator == nil {
		return res
	}

	logger := log.FromCtx(ctx)

	gctx, cancel := context.WithTimeout(ctx, r.generatorTimeout)
	defer cancel()

	reply, err := r.generate(gctx, input)
	if err != nil {
		logger.Warn().Err(err).Msg("generator failed, using fallback")
		return res
	}
	reply = strings.TrimSpace(reply)
	if reply == "" {
		return res
	}

	return core.MatchResult{Response: reply, Source: core.SourceGenerator}
}

func (r *Responder) generate(ctx context.Context, input string) (reply string, err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("generator panic: %v", p)
		}
	}()
	return r.generator.Generate(ctx, input)
}

func (r *Responder) guard(
	ctx context.Context,
	s stage,
	normalized string,
	history []core.Message,
	snap *knowledge.Snapshot,
) (res core.MatchResult, ok bool) {
	defer func() {
		if p := recover(); p != nil {
			log.FromCtx(ctx).Error().Str("stage", s.name).Interface("panic", p).Msg("matcher failed, skipping")
			res, ok = core.MatchResult{}, false
		}
	}()
	return s.run(normalized, history, snap)
}

func (r *Responder) expression(normalized string, _ []core.Message, _ *knowledge.Snapshot) (core.MatchResult, bool) {
	v, ok := mathexpr.Evaluate(normalized)
	if !ok {
		return core.MatchResult{}, false
	}
	return core.MatchResult{Response: mathexpr.Format(v), Source: core.SourceExpression}, true
}

func (r *Responder) lookup(normalized string, _ []core.Message, snap *knowledge.Snapshot) (core.MatchResult, bool) {
	if snap == nil {
		return core.MatchResult{}, false
	}
	tr, ok := r.lexicon.Lookup(normalized, snap.Lexicon)
	if !ok {
		return core.MatchResult{}, false
	}
	return core.MatchResult{Response: tr.String(), Source: core.SourceLexicon}, true
}

func (r *Responder) situational(normalized string, history []core.Message, _ *knowledge.Snapshot) (core.MatchResult, bool) {
	resp, ok := r.engine.Resolve(normalized, history)
	if !ok {
		return core.MatchResult{}, false
	}
	return core.MatchResult{Response: resp, Source: core.SourceSituational}, true
}

func (r *Responder) intent(normalized string, _ []core.Message, snap *knowledge.Snapshot) (core.MatchResult, bool) {
	if snap == nil {
		return core.MatchResult{}, false
	}
	m, ok := r.classifier.Classify(normalized, snap.Intents)
	if !ok {
		return core.MatchResult{}, false
	}
	return core.MatchResult{
		Response: intent.PickResponse(m.Intent, r.choose),
		Source:   core.SourceIntent,
		Tag:      m.Intent.Tag,
	}, true
}
