package llm

import (
	"context"
	"errors"
	"fmt"

	"github.com/sandevgo/redwan/internal/config"
	"github.com/sandevgo/redwan/pkg/log"
)

var (
	ErrGeneratorDisabled = errors.New("generator is disabled")
	ErrUnknownProvider   = errors.New("unknown generator provider")
)

// NewGenerator creates the Generator for the configured provider.
func NewGenerator(ctx context.Context, cfg *config.GeneratorConfig, opts ...GeneratorOption) (*Generator, error) {
	if !cfg.IsEnabled() {
		return nil, ErrGeneratorDisabled
	}

	model := cfg.GetModel()
	log.FromCtx(ctx).Info().
		Str("provider", cfg.Provider).
		Str("model", model).
		Msg("starting generator")

	var api chatter
	switch cfg.Provider {
	case "openai":
		api = NewOpenAI(cfg.OpenAIAPIKey, model)
	case "anthropic":
		api = NewAnthropic(cfg.AnthropicAPIKey, model)
	case "openrouter":
		api = NewOpenRouter(cfg.OpenRouterAPIKey, model)
	case "ollama":
		api = NewOllama(cfg.OllamaBaseURL, cfg.OllamaAPIKey, model)
	case "custom":
		api = NewCustomOpenAI(cfg.CustomOpenAIBaseURL, cfg.CustomOpenAIAPIKey, model)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownProvider, cfg.Provider)
	}

	return newGenerator(api, cfg.PerMinute, opts...), nil
}
