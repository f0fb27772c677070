package installer

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandevgo/redwan/internal/config"
)

type providerChoice struct {
	id    string
	label string
}

var providerChoices = []providerChoice{
	{config.ProviderNone, "None (rules only)"},
	{"openai", "OpenAI"},
	{"anthropic", "Anthropic"},
	{"openrouter", "OpenRouter"},
	{"ollama", "Ollama"},
	{"custom", "Custom OpenAI-compatible"},
}

// ProviderStep selects the optional generator used when no rule matches.
type ProviderStep struct {
	cursor int
}

func NewProviderStep() Step {
	return &ProviderStep{}
}

func (s *ProviderStep) Init() tea.Cmd {
	return nil
}

func (s *ProviderStep) Update(msg tea.Msg, state *InstallState, width, height int) (Step, tea.Cmd) {
	if moveCursor(msg, &s.cursor, len(providerChoices)) {
		state.Generator.Provider = providerChoices[s.cursor].id
		return nil, nil
	}
	return s, nil
}

func (s *ProviderStep) View(state *InstallState) string {
	labels := make([]string, len(providerChoices))
	for i, c := range providerChoices {
		labels[i] = c.label
	}
	return choiceView("Select a generator for questions the rules cannot answer:", labels, s.cursor)
}
