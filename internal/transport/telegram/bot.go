package telegram

import (
	"context"
	"fmt"
	"time"

	tele "gopkg.in/telebot.v3"

	"github.com/sandevgo/redwan/internal/config"
	"github.com/sandevgo/redwan/internal/core"
	"github.com/sandevgo/redwan/internal/service/agent"
	"github.com/sandevgo/redwan/pkg/log"
)

const baseContextKey = "base_context"

// Runner answers one chat turn.
type Runner interface {
	Greet(ctx context.Context, sessionID string) string
	Run(ctx context.Context, sessionID string, input string) (agent.Reply, error)
}

type Bot struct {
	bot        *tele.Bot
	runner     Runner
	sender     *sender
	ownerID    int64
	replyDelay time.Duration
	keyboard   *tele.ReplyMarkup
}

func NewBot(
	ctx context.Context,
	cfg *config.TelegramConfig,
	appCfg core.AppConfig,
	runner Runner,
) (*Bot, error) {
	pref := tele.Settings{
		Token:  cfg.GetTelegramToken(),
		Poller: &tele.LongPoller{Timeout: 10 * time.Second},
	}

	b, err := tele.NewBot(pref)
	if err != nil {
		return nil, fmt.Errorf("failed to create telegram bot: %w", err)
	}

	bot := &Bot{
		bot:        b,
		runner:     runner,
		sender:     newSender(b),
		ownerID:    cfg.GetTelegramOwnerID(),
		replyDelay: appCfg.GetReplyDelay(),
		keyboard:   quickReplyKeyboard(core.QuickReplies),
	}

	// Use context from Signal with logger
	b.Use(func(next tele.HandlerFunc) tele.HandlerFunc {
		return func(c tele.Context) error {
			c.Set(baseContextKey, ctx)
			return next(c)
		}
	})

	b.Use(func(next tele.HandlerFunc) tele.HandlerFunc {
		return func(c tele.Context) error {
			if c.Sender() == nil || !allowed(bot.ownerID, c.Sender().ID) {
				return nil // Ignore unauthorized users
			}
			return next(c)
		}
	})

	b.Handle("/start", bot.handleStart)
	b.Handle(tele.OnText, bot.handleMessage)

	return bot, nil
}

func (b *Bot) Start(ctx context.Context) error {
	log.FromCtx(ctx).Info().Msg("starting telegram bot")
	b.bot.Start()
	return nil
}

func (b *Bot) Shutdown(ctx context.Context) error {
	b.bot.Stop()
	return nil
}

// allowed reports whether userID may talk to the bot. ownerID 0 admits
// everyone.
func allowed(ownerID, userID int64) bool {
	return ownerID == 0 || ownerID == userID
}

func sessionID(chatID int64) string {
	return fmt.Sprintf("telegram-%d", chatID)
}

func quickReplyKeyboard(replies []string) *tele.ReplyMarkup {
	markup := &tele.ReplyMarkup{ResizeKeyboard: true}

	var rows []tele.Row
	for i := 0; i < len(replies); i += 2 {
		btns := []tele.Btn{markup.Text(replies[i])}
		if i+1 < len(replies) {
			btns = append(btns, markup.Text(replies[i+1]))
		}
		rows = append(rows, markup.Row(btns...))
	}
	markup.Reply(rows...)
	return markup
}

func baseContext(c tele.Context) context.Context {
	if ctx, ok := c.Get(baseContextKey).(context.Context); ok {
		return ctx
	}
	return context.Background()
}

func (b *Bot) handleStart(c tele.Context) error {
	ctx := baseContext(c)
	welcome := b.runner.Greet(ctx, sessionID(c.Chat().ID))
	return b.sender.sendText(ctx, c.Recipient(), welcome, b.keyboard)
}

func (b *Bot) handleMessage(c tele.Context) error {
	ctx := baseContext(c)
	logger := log.FromCtx(ctx)

	_ = c.Notify(tele.Typing)

	reply, err := b.runner.Run(ctx, sessionID(c.Chat().ID), c.Text())
	if err != nil {
		logger.Error().Err(err).Msg("agent run failed")
		return c.Send(fmt.Sprintf("error: %v", err))
	}

	if reply.Command {
		return b.sender.sendMarkdown(ctx, c.Recipient(), reply.Text)
	}

	if err := wait(ctx, b.replyDelay); err != nil {
		return nil
	}
	return b.sender.sendText(ctx, c.Recipient(), reply.Text, b.keyboard)
}

// wait pauses for d while the typing indicator is shown.
func wait(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
