package config

import (
	"context"
	"path/filepath"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/sandevgo/redwan/pkg/log"
)

type AppConfig struct {
	RuntimePath string `env:"REDWAN_RUNTIME_PATH" envDefault:".redwan"`

	// Transport Flags
	EnableTelegram bool `env:"REDWAN_ENABLE_TELEGRAM" envDefault:"false"`
	EnableCLI      bool `env:"REDWAN_ENABLE_CLI" envDefault:"true"`

	// ContextWindowSize is how many recent messages, the current one
	// included, the responder sees. The repeated identity rule needs more
	// than 5, so it stays silent at the default.
	ContextWindowSize int           `env:"REDWAN_CONTEXT_WINDOW_SIZE" envDefault:"5"`
	ReplyDelay        time.Duration `env:"REDWAN_REPLY_DELAY" envDefault:"0s"`
}

func NewAppConfig(ctx context.Context) *AppConfig {
	c := &AppConfig{}
	if err := env.Parse(c); err != nil {
		log.FromCtx(ctx).Fatal().Err(err).Msg("failed to parse App config")
	}
	c.RuntimePath = resolvePath(c.RuntimePath)
	if c.ContextWindowSize < 1 {
		c.ContextWindowSize = 1
	}
	return c
}

func (c AppConfig) GetRuntimePath() string {
	return c.RuntimePath
}

func (c AppConfig) GetDatabasePath() string {
	return filepath.Join(c.RuntimePath, "redwan.db")
}

func (c AppConfig) GetEnvPath() string {
	return filepath.Join(c.RuntimePath, ".env")
}

func (c AppConfig) GetInputHistoryPath() string {
	return filepath.Join(c.RuntimePath, "input_history")
}

func (c AppConfig) GetContextWindowSize() int {
	return c.ContextWindowSize
}

func (c AppConfig) GetReplyDelay() time.Duration {
	return c.ReplyDelay
}

func (c AppConfig) IsTelegramSelected() bool {
	return c.EnableTelegram
}

func (c AppConfig) IsCLISelected() bool {
	return c.EnableCLI
}
