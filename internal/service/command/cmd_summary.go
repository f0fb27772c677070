package command

import (
	"context"
	"fmt"

	"github.com/sandevgo/redwan/internal/core"
)

const summaryWindow = 50

type SummaryCommand struct {
	repo      core.MessagesRepository
	generator core.Generator
	formatter *ResponseFormatter
}

// NewSummaryCommand accepts a nil generator; the command then explains how
// to enable one.
func NewSummaryCommand(repo core.MessagesRepository, generator core.Generator) *SummaryCommand {
	return &SummaryCommand{
		repo:      repo,
		generator: generator,
		formatter: NewResponseFormatter(),
	}
}

func (c *SummaryCommand) Name() string {
	return "summary"
}

func (c *SummaryCommand) Description() string {
	return "Summarize this conversation"
}

func (c *SummaryCommand) Execute(ctx context.Context, sessionID string, _ []string) (string, error) {
	if c.generator == nil {
		return c.formatter.Combine(
			c.formatter.Info("Summaries need a generator"),
			c.formatter.Tip("set `REDWAN_GENERATOR` or run `redwan install`"),
		), nil
	}

	msgs, err := c.repo.GetMessages(ctx, sessionID, summaryWindow)
	if err != nil {
		return "", fmt.Errorf("failed to read history: %w", err)
	}
	if len(msgs) == 0 {
		return c.formatter.Info("Nothing to summarize yet"), nil
	}

	summary, err := c.generator.Summarize(ctx, msgs)
	if err != nil {
		return "", fmt.Errorf("failed to summarize: %w", err)
	}
	return c.formatter.Section("📝", "Summary", summary), nil
}
