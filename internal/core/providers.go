package core

import "context"

// Generator is the optional generative collaborator consulted only after the
// rule pipeline has nothing better than its fallback.
type Generator interface {
	Generate(ctx context.Context, message string) (string, error)
	Summarize(ctx context.Context, history []Message) (string, error)
}

// Responder resolves one user turn against the rule pipeline.
type Responder interface {
	Resolve(ctx context.Context, input string, history []Message) MatchResult
	ResolveWithFallback(ctx context.Context, input string, history []Message) MatchResult
}

// ModelSwitcher changes the generator model of a running process.
type ModelSwitcher interface {
	GetModel() string
	SetModel(ctx context.Context, model string) error
}
