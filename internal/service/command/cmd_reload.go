package command

import (
	"context"
	"fmt"
)

type ReloadCommand struct {
	state     KnowledgeState
	formatter *ResponseFormatter
}

func NewReloadCommand(state KnowledgeState) *ReloadCommand {
	return &ReloadCommand{
		state:     state,
		formatter: NewResponseFormatter(),
	}
}

func (c *ReloadCommand) Name() string {
	return "reload"
}

func (c *ReloadCommand) Description() string {
	return "Reload intents and dictionary from disk"
}

func (c *ReloadCommand) Execute(ctx context.Context, _ string, _ []string) (string, error) {
	if err := c.state.Reload(ctx); err != nil {
		return "", fmt.Errorf("reload failed, keeping previous data: %w", err)
	}

	snap := c.state.Snapshot()
	msg := c.formatter.Success(fmt.Sprintf("Loaded %d intents and %d dictionary entries",
		snap.Intents.Len(), snap.Lexicon.Len()))
	if n := len(snap.Failed()); n > 0 {
		msg += c.formatter.Tip(fmt.Sprintf("%d sources were skipped, see `/stats`", n))
	}
	return msg, nil
}
