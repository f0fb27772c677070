package installer

import (
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// suggestedModels are offered per provider; other providers get a free
// text field.
var suggestedModels = map[string][]item{
	"openai": {
		{id: "gpt-4o-mini", title: "GPT-4o mini", desc: "fast and cheap"},
		{id: "gpt-4o", title: "GPT-4o", desc: "stronger answers"},
	},
	"anthropic": {
		{id: "claude-3-5-haiku-latest", title: "Claude 3.5 Haiku", desc: "fast and cheap"},
		{id: "claude-sonnet-4-0", title: "Claude Sonnet 4", desc: "stronger answers"},
	},
	"openrouter": {
		{id: "openai/gpt-4o-mini", title: "OpenAI GPT-4o mini", desc: "openai/gpt-4o-mini"},
		{id: "anthropic/claude-3.5-haiku", title: "Claude 3.5 Haiku", desc: "anthropic/claude-3.5-haiku"},
		{id: "meta-llama/llama-3.1-8b-instruct", title: "Llama 3.1 8B", desc: "meta-llama/llama-3.1-8b-instruct"},
	},
}

// ModelStep picks the generator model from a list, or asks for its name.
type ModelStep struct {
	list     list.Model
	input    textinput.Model
	provider string
	freeText bool
}

func NewModelStep() Step {
	return &ModelStep{}
}

func (s *ModelStep) Init() tea.Cmd {
	return nil
}

func (s *ModelStep) setup(state *InstallState) bool {
	s.provider = state.provider()
	if !state.Generator.IsEnabled() {
		return false
	}

	if models, ok := suggestedModels[s.provider]; ok {
		items := make([]list.Item, len(models))
		for i, m := range models {
			items[i] = m
		}
		s.list = list.New(items, list.NewDefaultDelegate(), 0, 0)
		s.list.Title = "Select a model"
		s.list.SetFilteringEnabled(true)
		s.list.Styles.Title = titleStyle
		return true
	}

	s.freeText = true
	s.input = textinput.New()
	s.input.Focus()
	s.input.Width = 40
	s.input.Placeholder = "llama3.2"
	return true
}

func (s *ModelStep) Update(msg tea.Msg, state *InstallState, width, height int) (Step, tea.Cmd) {
	if s.provider == "" {
		if !s.setup(state) {
			return nil, nil
		}
	}

	var cmd tea.Cmd
	if s.freeText {
		s.input, cmd = s.input.Update(msg)
		if key, ok := msg.(tea.KeyMsg); ok && key.String() == "enter" {
			val := strings.TrimSpace(s.input.Value())
			if val == "" {
				val = s.input.Placeholder
			}
			state.Generator.Model = val
			return nil, nil
		}
		return s, cmd
	}

	s.list.SetSize(width, height-4)

	if key, ok := msg.(tea.KeyMsg); ok && key.String() == "enter" {
		wasFiltering := s.list.FilterState() == list.Filtering
		s.list, cmd = s.list.Update(msg)
		if wasFiltering || s.list.FilterState() == list.Filtering {
			return s, cmd
		}
		if i, ok := s.list.SelectedItem().(item); ok {
			state.Generator.Model = i.id
			return nil, nil
		}
		return s, cmd
	}

	s.list, cmd = s.list.Update(msg)
	return s, cmd
}

func (s *ModelStep) View(state *InstallState) string {
	if s.provider == "" {
		return "Loading...\n"
	}
	if s.freeText {
		return "Enter the model name:\n\n" + s.input.View() + "\n\n(press enter to confirm)\n"
	}
	return s.list.View()
}
