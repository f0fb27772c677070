package command

import (
	"context"
	"fmt"

	"github.com/sandevgo/redwan/internal/core"
)

type ClearCommand struct {
	repo      core.MessagesRepository
	formatter *ResponseFormatter
}

func NewClearCommand(repo core.MessagesRepository) *ClearCommand {
	return &ClearCommand{
		repo:      repo,
		formatter: NewResponseFormatter(),
	}
}

func (c *ClearCommand) Name() string {
	return "clear"
}

func (c *ClearCommand) Description() string {
	return "Forget this conversation"
}

func (c *ClearCommand) Execute(ctx context.Context, sessionID string, _ []string) (string, error) {
	n, err := c.repo.ClearMessages(ctx, sessionID)
	if err != nil {
		return "", fmt.Errorf("failed to clear history: %w", err)
	}
	return c.formatter.Success(fmt.Sprintf("Cleared %d messages", n)), nil
}
