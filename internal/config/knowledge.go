package config

import (
	"context"
	"path/filepath"

	"github.com/caarlos0/env/v11"

	"github.com/sandevgo/redwan/pkg/log"
)

// DefaultIntentSources is the merge order of the bundled intent sources.
// Earlier sources win classifier ties.
var DefaultIntentSources = []string{
	"general", "social", "identity", "emoji", "knowledge", "history", "science", "creative", "abuse",
}

type KnowledgeConfig struct {
	DataPath       string   `env:"REDWAN_DATA_PATH"`
	IntentSources  []string `env:"REDWAN_INTENT_SOURCES" envDefault:"general,social,identity,emoji,knowledge,history,science,creative,abuse" envSeparator:","`
	LexiconSources []string `env:"REDWAN_LEXICON_SOURCES" envDefault:"dictionary" envSeparator:","`
	Watch          bool     `env:"REDWAN_WATCH_DATA" envDefault:"true"`
}

func NewKnowledgeConfig(ctx context.Context, runtimePath string) *KnowledgeConfig {
	c := &KnowledgeConfig{}
	if err := env.Parse(c); err != nil {
		log.FromCtx(ctx).Fatal().Err(err).Msg("failed to parse Knowledge config")
	}
	if c.DataPath == "" {
		c.DataPath = filepath.Join(runtimePath, "data")
	}
	c.DataPath = resolvePath(c.DataPath)
	return c
}

func (c KnowledgeConfig) GetDataPath() string {
	return c.DataPath
}

func (c KnowledgeConfig) GetIntentSources() []string {
	return c.IntentSources
}

func (c KnowledgeConfig) GetLexiconSources() []string {
	return c.LexiconSources
}

func (c KnowledgeConfig) IsWatchEnabled() bool {
	return c.Watch
}
