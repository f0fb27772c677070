package command

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/sandevgo/redwan/internal/providers/knowledge"
)

// KnowledgeState is the live knowledge handle the data commands work on.
type KnowledgeState interface {
	Snapshot() *knowledge.Snapshot
	Reload(ctx context.Context) error
	Reloads() int64
}

type StatsCommand struct {
	state     KnowledgeState
	formatter *ResponseFormatter
}

func NewStatsCommand(state KnowledgeState) *StatsCommand {
	return &StatsCommand{
		state:     state,
		formatter: NewResponseFormatter(),
	}
}

func (c *StatsCommand) Name() string {
	return "stats"
}

func (c *StatsCommand) Description() string {
	return "Show loaded intents and dictionary size"
}

func (c *StatsCommand) Execute(_ context.Context, _ string, _ []string) (string, error) {
	snap := c.state.Snapshot()
	if snap == nil {
		return "", fmt.Errorf("knowledge is not loaded")
	}

	out := c.formatter.Combine(
		c.formatter.Info("Knowledge"),
		c.formatter.Label("Intents", strconv.Itoa(snap.Intents.Len()))+
			c.formatter.Label("Patterns", strconv.Itoa(snap.Intents.PatternCount()))+
			c.formatter.Label("Dictionary", strconv.Itoa(snap.Lexicon.Len()))+
			c.formatter.Label("Loaded", snap.LoadedAt.Format(time.DateTime))+
			c.formatter.Label("Loads", strconv.FormatInt(c.state.Reloads(), 10)),
	)

	if failed := snap.Failed(); len(failed) > 0 {
		items := make([]string, 0, len(failed))
		for _, r := range failed {
			items = append(items, fmt.Sprintf("%s/%s: %v", r.Kind, r.Name, r.Err))
		}
		out = c.formatter.Combine(out, c.formatter.Section("⚠️", "Skipped sources", c.formatter.List(items)))
	}
	return out, nil
}
