package core

import "time"

type AppConfig interface {
	GetRuntimePath() string
	GetDatabasePath() string
	GetContextWindowSize() int
	GetReplyDelay() time.Duration
	IsTelegramSelected() bool
	IsCLISelected() bool
}

type KnowledgeConfig interface {
	GetDataPath() string
	GetIntentSources() []string
	GetLexiconSources() []string
	IsWatchEnabled() bool
}

type MatchConfig interface {
	GetIntentThreshold() float64
	GetLexiconThreshold() float64
	GetSubstringGuard() int
}

type GeneratorConfig interface {
	GetProvider() string
	GetModel() string
	IsEnabled() bool
}

type TelegramConfig interface {
	GetTelegramToken() string
	GetTelegramOwnerID() int64
}
