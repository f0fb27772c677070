package config

import (
	"context"

	"github.com/caarlos0/env/v11"

	"github.com/sandevgo/redwan/pkg/log"
)

type MatchConfig struct {
	IntentThreshold  float64 `env:"REDWAN_INTENT_THRESHOLD" envDefault:"0.65"`
	LexiconThreshold float64 `env:"REDWAN_LEXICON_THRESHOLD" envDefault:"0.70"`
	SubstringGuard   int     `env:"REDWAN_SUBSTRING_GUARD" envDefault:"3"`
}

func NewMatchConfig(ctx context.Context) *MatchConfig {
	c := &MatchConfig{}
	if err := env.Parse(c); err != nil {
		log.FromCtx(ctx).Fatal().Err(err).Msg("failed to parse Match config")
	}
	return c
}

func (c MatchConfig) GetIntentThreshold() float64 {
	return c.IntentThreshold
}

func (c MatchConfig) GetLexiconThreshold() float64 {
	return c.LexiconThreshold
}

func (c MatchConfig) GetSubstringGuard() int {
	return c.SubstringGuard
}
