package installer

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// BaseURLStep asks for the server address of Ollama and custom providers.
type BaseURLStep struct {
	input    textinput.Model
	provider string
}

func NewBaseURLStep() Step {
	ti := textinput.New()
	ti.Focus()
	ti.Width = 50
	return &BaseURLStep{input: ti}
}

func (s *BaseURLStep) Init() tea.Cmd {
	return textinput.Blink
}

func (s *BaseURLStep) Update(msg tea.Msg, state *InstallState, width, height int) (Step, tea.Cmd) {
	if s.provider == "" {
		s.provider = state.provider()
		switch s.provider {
		case "ollama":
			s.input.Placeholder = "http://127.0.0.1:11434"
		case "custom":
			s.input.Placeholder = "https://api.example.com"
		default:
			return nil, nil
		}
	}

	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)

	if key, ok := msg.(tea.KeyMsg); ok && key.String() == "enter" {
		val := strings.TrimSpace(s.input.Value())
		switch {
		case val == "" && s.provider == "ollama":
			val = s.input.Placeholder
		case val == "":
			return s, cmd
		}

		if s.provider == "ollama" {
			state.Generator.OllamaBaseURL = val
		} else {
			state.Generator.CustomOpenAIBaseURL = val
		}
		return nil, nil
	}
	return s, cmd
}

func (s *BaseURLStep) View(state *InstallState) string {
	title := "Enter the Ollama server URL"
	if s.provider == "custom" {
		title = "Enter the base URL of your OpenAI-compatible server"
	}
	return title + ":\n\n" + s.input.View() + "\n\n(press enter to confirm)\n"
}
