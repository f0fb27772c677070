package telegram

import (
	"context"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sandevgo/redwan/internal/core"
)

func TestAllowed(t *testing.T) {
	assert.True(t, allowed(0, 42))
	assert.True(t, allowed(42, 42))
	assert.False(t, allowed(42, 7))
}

func TestQuickReplyKeyboard(t *testing.T) {
	kb := quickReplyKeyboard(core.QuickReplies)
	require.Len(t, kb.ReplyKeyboard, 2)
	assert.True(t, kb.ResizeKeyboard)

	var labels []string
	for _, row := range kb.ReplyKeyboard {
		for _, btn := range row {
			labels = append(labels, btn.Text)
		}
	}
	assert.Equal(t, core.QuickReplies, labels)

	odd := quickReplyKeyboard([]string{"a", "b", "c"})
	require.Len(t, odd.ReplyKeyboard, 2)
	assert.Len(t, odd.ReplyKeyboard[1], 1)
}

func TestSplitHTML(t *testing.T) {
	assert.Equal(t, []string{"short"}, splitHTML("short", 10))

	lines := strings.Repeat("line of text\n", 10)
	chunks := splitHTML(lines, 40)
	for _, c := range chunks {
		assert.LessOrEqual(t, len(c), 40)
		assert.False(t, strings.HasPrefix(c, "\n"))
	}
	assert.Equal(t, strings.TrimSpace(strings.ReplaceAll(lines, "\n", "")),
		strings.ReplaceAll(strings.Join(chunks, ""), "\n", ""))
}

func TestSplitHTML_KeepsRunesWhole(t *testing.T) {
	// every Bengali letter is three bytes
	text := strings.Repeat("প্রেম", 50)
	for _, c := range splitHTML(text, 100) {
		assert.True(t, utf8.ValidString(c))
		assert.LessOrEqual(t, len(c), 100)
	}
}

func TestWait(t *testing.T) {
	assert.NoError(t, wait(context.Background(), 0))
	assert.NoError(t, wait(context.Background(), time.Millisecond))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, wait(ctx, time.Hour), context.Canceled)
}

func TestSessionID(t *testing.T) {
	assert.Equal(t, "telegram-123", sessionID(123))
}
