package agent

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/sandevgo/redwan/internal/core"
	"github.com/sandevgo/redwan/pkg/log"
)

const defaultWindowSize = 5

// Reply is the agent's answer to one input.
type Reply struct {
	Text   string
	Source core.Source
	// Command is set when the input was a slash command.
	Command bool
}

type Agent struct {
	windowSize int
	responder  core.Responder
	router     core.CmdRouter
	repo       core.MessagesRepository
	now        func() time.Time
}

func NewAgent(
	appCfg core.AppConfig,
	responder core.Responder,
	router core.CmdRouter,
	repo core.MessagesRepository,
) *Agent {
	size := appCfg.GetContextWindowSize()
	if size < 1 {
		size = defaultWindowSize
	}
	return &Agent{
		windowSize: size,
		responder:  responder,
		router:     router,
		repo:       repo,
		now:        time.Now,
	}
}

// Greet seeds the welcome message into an empty session and returns it.
func (a *Agent) Greet(ctx context.Context, sessionID string) string {
	logger := log.FromCtx(ctx)

	msgs, err := a.repo.GetMessages(ctx, sessionID, 1)
	if err != nil {
		logger.Error().Err(err).Str("session", sessionID).Msg("failed to read history")
		return core.WelcomeMessage
	}
	if len(msgs) == 0 {
		a.save(ctx, sessionID, core.SenderAssistant, core.WelcomeMessage)
	}
	return core.WelcomeMessage
}

// Run answers one user input. History persistence failures are logged and
// the turn is still answered from what is known.
func (a *Agent) Run(ctx context.Context, sessionID string, input string) (Reply, error) {
	logger := log.FromCtx(ctx)

	if err := ctx.Err(); err != nil {
		return Reply{}, err
	}

	if a.router != nil {
		if out, ok := a.router.Execute(ctx, sessionID, input); ok {
			return Reply{Text: out, Command: true}, nil
		}
	}

	if strings.TrimSpace(input) == "" {
		res := a.responder.Resolve(ctx, input, nil)
		return Reply{Text: res.Response, Source: res.Source}, nil
	}

	a.Greet(ctx, sessionID)

	userMsg := a.save(ctx, sessionID, core.SenderUser, input)
	window := a.window(ctx, sessionID, userMsg)

	res := a.responder.ResolveWithFallback(ctx, input, window)

	logger.Debug().
		Str("session", sessionID).
		Str("source", string(res.Source)).
		Str("tag", res.Tag).
		Int("window", len(window)).
		Msg("turn resolved")

	a.save(ctx, sessionID, core.SenderAssistant, res.Response)

	return Reply{Text: res.Response, Source: res.Source}, nil
}

// window loads the rolling history ending with current.
func (a *Agent) window(ctx context.Context, sessionID string, current core.Message) []core.Message {
	msgs, err := a.repo.GetMessages(ctx, sessionID, a.windowSize)
	if err != nil {
		log.FromCtx(ctx).Error().Err(err).Str("session", sessionID).Msg("failed to fetch history")
		msgs = nil
	}

	msgs = sanitizeWindow(ctx, msgs)
	if n := len(msgs); n == 0 || msgs[n-1].ID != current.ID {
		msgs = append(msgs, current)
	}
	if len(msgs) > a.windowSize {
		msgs = msgs[len(msgs)-a.windowSize:]
	}
	return msgs
}

func (a *Agent) save(ctx context.Context, sessionID string, sender core.Sender, text string) core.Message {
	msg := core.Message{
		ID:        uuid.NewString(),
		Text:      text,
		Sender:    sender,
		CreatedAt: a.now(),
	}
	if err := a.repo.AddMessage(ctx, sessionID, msg); err != nil {
		log.FromCtx(ctx).Error().Err(err).
			Str("session", sessionID).
			Str("sender", string(sender)).
			Msg("failed to save message")
	}
	return msg
}
