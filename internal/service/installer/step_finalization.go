package installer

import (
	tea "github.com/charmbracelet/bubbletea"
)

// FinalizationStep derives the transport switches from the answers.
type FinalizationStep struct{}

func NewFinalizationStep() Step {
	return &FinalizationStep{}
}

func (s *FinalizationStep) Init() tea.Cmd {
	return nil
}

func (s *FinalizationStep) Update(msg tea.Msg, state *InstallState, width, height int) (Step, tea.Cmd) {
	state.App.EnableTelegram = state.wantsTelegram() && state.Telegram.Token != ""
	state.App.EnableCLI = state.channel != channelTelegram || !state.App.EnableTelegram
	return nil, nil
}

func (s *FinalizationStep) View(state *InstallState) string {
	return "Finalizing configuration...\n"
}
