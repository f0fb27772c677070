package installer

import (
	tea "github.com/charmbracelet/bubbletea"
)

const (
	channelTerminal = "Terminal"
	channelTelegram = "Telegram"
	channelBoth     = "Terminal and Telegram"
)

// ChannelStep allows selection of the chat channel/transport
type ChannelStep struct {
	choices []string
	cursor  int
}

func NewChannelStep() Step {
	return &ChannelStep{
		choices: []string{channelTerminal, channelTelegram, channelBoth},
	}
}

func (s *ChannelStep) Init() tea.Cmd {
	return nil
}

func (s *ChannelStep) Update(msg tea.Msg, state *InstallState, width, height int) (Step, tea.Cmd) {
	if moveCursor(msg, &s.cursor, len(s.choices)) {
		state.channel = s.choices[s.cursor]
		return nil, nil
	}
	return s, nil
}

func (s *ChannelStep) View(state *InstallState) string {
	return choiceView("Where do you want to chat?", s.choices, s.cursor)
}
