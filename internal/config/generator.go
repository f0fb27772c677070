package config

import (
	"context"
	"sync"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/sandevgo/redwan/pkg/log"
)

const ProviderNone = "none"

type GeneratorConfig struct {
	Provider string `env:"REDWAN_GENERATOR" envDefault:"none"`
	Model    string `env:"REDWAN_GENERATOR_MODEL"`

	OpenAIAPIKey        string `env:"REDWAN_OPENAI_API_KEY"`
	OpenRouterAPIKey    string `env:"REDWAN_OPENROUTER_API_KEY"`
	AnthropicAPIKey     string `env:"REDWAN_ANTHROPIC_API_KEY"`
	OllamaBaseURL       string `env:"REDWAN_OLLAMA_BASE_URL" envDefault:"http://localhost:11434"`
	OllamaAPIKey        string `env:"REDWAN_OLLAMA_API_KEY"`
	CustomOpenAIBaseURL string `env:"REDWAN_CUSTOM_BASE_URL"`
	CustomOpenAIAPIKey  string `env:"REDWAN_CUSTOM_API_KEY"`

	Timeout   time.Duration `env:"REDWAN_GENERATOR_TIMEOUT" envDefault:"20s"`
	PerMinute int           `env:"REDWAN_GENERATOR_PER_MINUTE" envDefault:"6"`

	mu sync.RWMutex
}

func NewGeneratorConfig(ctx context.Context) *GeneratorConfig {
	c := &GeneratorConfig{}
	if err := env.Parse(c); err != nil {
		log.FromCtx(ctx).Fatal().Err(err).Msg("failed to parse Generator config")
	}
	return c
}

func (c *GeneratorConfig) GetProvider() string {
	return c.Provider
}

func (c *GeneratorConfig) IsEnabled() bool {
	return c.Provider != "" && c.Provider != ProviderNone
}

func (c *GeneratorConfig) GetModel() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.Model
}

// SetModel changes the model for the running process only.
func (c *GeneratorConfig) SetModel(model string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.Model = model
}
