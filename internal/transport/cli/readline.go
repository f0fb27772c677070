package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/chzyer/readline"

	"github.com/sandevgo/redwan/internal/core"
	"github.com/sandevgo/redwan/internal/service/agent"
	"github.com/sandevgo/redwan/internal/service/ui"
	"github.com/sandevgo/redwan/pkg/log"
)

const defaultSessionID = "cli-local"

// Runner answers one chat turn.
type Runner interface {
	Greet(ctx context.Context, sessionID string) string
	Run(ctx context.Context, sessionID string, input string) (agent.Reply, error)
}

type ReadLine struct {
	runner Runner
	rl     *readline.Instance
}

func NewReadLine(runner Runner, historyPath string) (*ReadLine, error) {
	if err := os.MkdirAll(filepath.Dir(historyPath), 0755); err != nil {
		return nil, fmt.Errorf("failed to create runtime directory: %w", err)
	}

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          ui.PromptStyle.Render("you › "),
		HistoryFile:     historyPath,
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		return nil, err
	}

	return &ReadLine{
		runner: runner,
		rl:     rl,
	}, nil
}

func (r *ReadLine) Start(ctx context.Context) error {
	logger := log.FromCtx(ctx)
	logger.Info().Msg("ReadLine chat started. Type 'exit' to quit.")

	out := r.rl.Stdout()
	fmt.Fprintln(out, formatReply(agent.Reply{Text: r.runner.Greet(ctx, defaultSessionID)}))
	fmt.Fprintln(out, ui.DescStyle.Render("try: "+strings.Join(core.QuickReplies, " · ")))

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		line, err := r.rl.Readline()
		if err != nil {
			if errors.Is(err, readline.ErrInterrupt) {
				if len(line) == 0 {
					return nil
				}
				continue
			} else if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}

		line = strings.TrimSpace(line)
		if line == "exit" {
			return nil
		}
		if line == "" {
			continue
		}

		reply, err := r.runner.Run(ctx, defaultSessionID, line)
		if err != nil {
			logger.Error().Err(err).Msg("agent run failed")
			fmt.Fprintln(out, ui.ErrorStyle.Render("Error: "+err.Error()))
			continue
		}
		fmt.Fprintln(out, formatReply(reply))
	}
}

func (r *ReadLine) Shutdown(ctx context.Context) error {
	if r.rl != nil {
		return r.rl.Close()
	}
	return nil
}

// formatReply renders command output as markdown and chat replies as text.
func formatReply(reply agent.Reply) string {
	if reply.Command {
		return ui.RenderMarkdown(reply.Text)
	}
	return ui.BotNameStyle.Render(core.BotName+" ›") + " " + reply.Text
}
