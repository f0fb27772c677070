package command

import (
	"github.com/sandevgo/redwan/internal/core"
)

// NewCommands builds the slash commands. generator and switcher may be nil.
func NewCommands(
	repo core.MessagesRepository,
	state KnowledgeState,
	cfg core.GeneratorConfig,
	generator core.Generator,
	switcher core.ModelSwitcher,
) []core.Command {
	return []core.Command{
		NewClearCommand(repo),
		NewHistoryCommand(repo),
		NewStatsCommand(state),
		NewReloadCommand(state),
		NewSummaryCommand(repo, generator),
		NewModelCommand(cfg, switcher),
	}
}
