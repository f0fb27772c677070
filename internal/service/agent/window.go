package agent

import (
	"context"
	"strings"

	"github.com/sandevgo/redwan/internal/core"
	"github.com/sandevgo/redwan/pkg/log"
)

// sanitizeWindow drops stored rows the rules cannot reason about: blank
// text or an unknown sender.
func sanitizeWindow(ctx context.Context, msgs []core.Message) []core.Message {
	logger := log.FromCtx(ctx)

	var out []core.Message
	for _, m := range msgs {
		if !m.FromUser() && !m.FromAssistant() {
			logger.Warn().Str("id", m.ID).Str("sender", string(m.Sender)).Msg("dropping message with unknown sender")
			continue
		}
		if strings.TrimSpace(m.Text) == "" {
			logger.Debug().Str("id", m.ID).Msg("dropping blank message")
			continue
		}
		out = append(out, m)
	}
	return out
}
