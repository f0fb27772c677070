package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sandevgo/redwan/internal/core"
	"github.com/sandevgo/redwan/internal/service/agent"
)

func TestFormatReply(t *testing.T) {
	chat := formatReply(agent.Reply{Text: "2+3*4 = 14", Source: core.SourceExpression})
	assert.Contains(t, chat, core.BotName)
	assert.Contains(t, chat, "2+3*4 = 14")

	cmd := formatReply(agent.Reply{Text: "✅ **Cleared 2 messages**", Command: true})
	assert.Contains(t, cmd, "Cleared 2 messages")
	assert.NotContains(t, cmd, core.BotName)
}
