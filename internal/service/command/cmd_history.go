package command

import (
	"context"
	"fmt"
	"strconv"

	"github.com/sandevgo/redwan/internal/core"
)

const (
	defaultHistoryLimit = 10
	maxHistoryLimit     = 50
)

type HistoryCommand struct {
	repo      core.MessagesRepository
	formatter *ResponseFormatter
}

func NewHistoryCommand(repo core.MessagesRepository) *HistoryCommand {
	return &HistoryCommand{
		repo:      repo,
		formatter: NewResponseFormatter(),
	}
}

func (c *HistoryCommand) Name() string {
	return "history"
}

func (c *HistoryCommand) Description() string {
	return "Show recent messages"
}

func (c *HistoryCommand) Execute(ctx context.Context, sessionID string, args []string) (string, error) {
	limit := defaultHistoryLimit
	if len(args) > 0 {
		n, err := strconv.Atoi(args[0])
		if err != nil || n < 1 {
			return c.formatter.Usage("/history [count]"), nil
		}
		limit = min(n, maxHistoryLimit)
	}

	msgs, err := c.repo.GetMessages(ctx, sessionID, limit)
	if err != nil {
		return "", fmt.Errorf("failed to read history: %w", err)
	}
	if len(msgs) == 0 {
		return c.formatter.Info("No messages yet"), nil
	}

	lines := make([]string, 0, len(msgs))
	for _, m := range msgs {
		who := "🙂"
		if m.FromAssistant() {
			who = "🤖"
		}
		lines = append(lines, fmt.Sprintf("%s %s", who, m.Text))
	}

	return c.formatter.Section("🕘", fmt.Sprintf("Last %d messages", len(msgs)), c.formatter.List(lines)), nil
}
