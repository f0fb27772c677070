package telegram

import (
	"context"
	"html"
	"strings"
	"unicode/utf8"

	tele "gopkg.in/telebot.v3"

	"github.com/sandevgo/redwan/pkg/conv"
	"github.com/sandevgo/redwan/pkg/log"
)

const maxTelegramMsgLen = 4000 // Safety margin below 4096

type sender struct {
	bot *tele.Bot
}

func newSender(bot *tele.Bot) *sender {
	return &sender{bot: bot}
}

// sendMarkdown converts Markdown to Telegram HTML and sends it in chunks if needed.
func (s *sender) sendMarkdown(ctx context.Context, to tele.Recipient, md string, opts ...any) error {
	return s.sendHTML(ctx, to, conv.MarkdownToTelegramHTML(md), opts...)
}

// sendText sends plain text; markup characters are shown as typed.
func (s *sender) sendText(ctx context.Context, to tele.Recipient, text string, opts ...any) error {
	return s.sendHTML(ctx, to, html.EscapeString(text), opts...)
}

// sendHTML attaches opts (e.g. a keyboard) to the last chunk.
func (s *sender) sendHTML(ctx context.Context, to tele.Recipient, body string, opts ...any) error {
	logger := log.FromCtx(ctx)

	body = strings.TrimSpace(body)
	if body == "" {
		return nil
	}

	chunks := splitHTML(body, maxTelegramMsgLen)
	for i, chunk := range chunks {
		sendOpts := []any{tele.ModeHTML}
		if i == len(chunks)-1 {
			sendOpts = append(sendOpts, opts...)
		}

		if _, err := s.bot.Send(to, chunk, sendOpts...); err != nil {
			logger.Error().Err(err).Int("chunk", i).Int("len", len(chunk)).Msg("failed to send telegram chunk")
			return err
		}
	}
	return nil
}

// splitHTML splits text into chunks respecting Telegram's limit.
// It tries to split at newlines and never cuts a UTF-8 sequence.
func splitHTML(text string, maxLen int) []string {
	if len(text) <= maxLen {
		return []string{text}
	}

	var chunks []string
	for len(text) > 0 {
		if len(text) <= maxLen {
			chunks = append(chunks, text)
			break
		}

		cut := maxLen
		if idx := strings.LastIndex(text[:maxLen], "\n"); idx > maxLen/3 {
			cut = idx
		}
		for cut > 0 && !utf8.RuneStart(text[cut]) {
			cut--
		}

		chunks = append(chunks, text[:cut])
		text = strings.TrimSpace(text[cut:])
	}
	return chunks
}
