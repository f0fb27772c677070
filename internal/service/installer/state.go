package installer

import (
	"github.com/sandevgo/redwan/internal/config"
)

// InstallState collects the answers of the wizard.
type InstallState struct {
	RuntimePath string

	App       config.AppConfig
	Generator *config.GeneratorConfig
	Telegram  config.TelegramConfig

	// channel is one of the channel* constants
	channel string
}

func NewInstallState(runtimePath string) *InstallState {
	return &InstallState{
		RuntimePath: runtimePath,
		App: config.AppConfig{
			EnableCLI:         true,
			ContextWindowSize: 5,
		},
		Generator: &config.GeneratorConfig{
			Provider: config.ProviderNone,
		},
	}
}

func (s *InstallState) provider() string {
	return s.Generator.Provider
}

func (s *InstallState) wantsTelegram() bool {
	return s.channel == channelTelegram || s.channel == channelBoth
}
