package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sandevgo/redwan/internal/config"
	"github.com/sandevgo/redwan/internal/core"
	"github.com/sandevgo/redwan/pkg/retry"
)

func fastRetry() GeneratorOption {
	return WithRetry(&retry.Config{
		MaxRetries:    2,
		BackoffFactor: 1,
		InitialDelay:  time.Millisecond,
		MaxDelay:      time.Millisecond,
	})
}

type chatRequest struct {
	Model    string        `json:"model"`
	System   string        `json:"system"`
	Messages []chatMessage `json:"messages"`
}

func openAIServer(t *testing.T, handler func(w http.ResponseWriter, req chatRequest)) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/chat/completions", r.URL.Path)
		assert.Equal(t, core.BotUserAgent, r.Header.Get("User-Agent"))
		var req chatRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		handler(w, req)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func writeChoice(w http.ResponseWriter, content string) {
	w.Header().Set("Content-Type", "application/json")
	fmt.Fprintf(w, `{"choices":[{"message":{"role":"assistant","content":%q}}]}`, content)
}

func TestGenerator_Generate(t *testing.T) {
	srv := openAIServer(t, func(w http.ResponseWriter, req chatRequest) {
		assert.Equal(t, "test-model", req.Model)
		require.Len(t, req.Messages, 2)
		assert.Equal(t, "system", req.Messages[0].Role)
		assert.Contains(t, req.Messages[0].Content, core.BotName)
		assert.Equal(t, "hello there", req.Messages[1].Content)
		writeChoice(w, "  General Kenobi  ")
	})

	g := newGenerator(NewCustomOpenAI(srv.URL, "key", "test-model"), 0, fastRetry())
	reply, err := g.Generate(context.Background(), "hello there")
	require.NoError(t, err)
	assert.Equal(t, "General Kenobi", reply)
}

func TestGenerator_StripsHTML(t *testing.T) {
	srv := openAIServer(t, func(w http.ResponseWriter, _ chatRequest) {
		writeChoice(w, "<p>Hello <span>world</span></p>")
	})

	g := newGenerator(NewCustomOpenAI(srv.URL, "", "m"), 0, fastRetry())
	reply, err := g.Generate(context.Background(), "hi")
	require.NoError(t, err)
	assert.Equal(t, "Hello world", reply)
}

func TestGenerator_RetriesServerErrors(t *testing.T) {
	var calls atomic.Int32
	srv := openAIServer(t, func(w http.ResponseWriter, _ chatRequest) {
		if calls.Add(1) < 3 {
			http.Error(w, "busy", http.StatusServiceUnavailable)
			return
		}
		writeChoice(w, "finally")
	})

	g := newGenerator(NewCustomOpenAI(srv.URL, "", "m"), 0, fastRetry())
	reply, err := g.Generate(context.Background(), "hi")
	require.NoError(t, err)
	assert.Equal(t, "finally", reply)
	assert.Equal(t, int32(3), calls.Load())
}

func TestGenerator_ClientErrorIsNotRetried(t *testing.T) {
	var calls atomic.Int32
	srv := openAIServer(t, func(w http.ResponseWriter, _ chatRequest) {
		calls.Add(1)
		http.Error(w, "bad key", http.StatusUnauthorized)
	})

	g := newGenerator(NewCustomOpenAI(srv.URL, "", "m"), 0, fastRetry())
	_, err := g.Generate(context.Background(), "hi")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "http 401")
	assert.Equal(t, int32(1), calls.Load())
}

func TestGenerator_EmptyReply(t *testing.T) {
	srv := openAIServer(t, func(w http.ResponseWriter, _ chatRequest) {
		writeChoice(w, "   ")
	})

	g := newGenerator(NewCustomOpenAI(srv.URL, "", "m"), 0, fastRetry())
	_, err := g.Generate(context.Background(), "hi")
	assert.ErrorIs(t, err, ErrEmptyReply)
}

func TestGenerator_RateLimitHonoursContext(t *testing.T) {
	srv := openAIServer(t, func(w http.ResponseWriter, _ chatRequest) {
		writeChoice(w, "ok")
	})

	g := newGenerator(NewCustomOpenAI(srv.URL, "", "m"), 1, fastRetry())
	_, err := g.Generate(context.Background(), "first")
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	_, err = g.Generate(ctx, "second")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "rate limit")
}

func TestGenerator_Summarize(t *testing.T) {
	var got atomic.Value
	srv := openAIServer(t, func(w http.ResponseWriter, req chatRequest) {
		assert.Contains(t, req.Messages[0].Content, "Summarize")
		got.Store(req.Messages[1].Content)
		writeChoice(w, "a short summary")
	})

	words := func(text string) int { return len(strings.Fields(text)) }
	g := newGenerator(NewCustomOpenAI(srv.URL, "", "m"), 0,
		fastRetry(), WithTokenCounter(words), WithSummaryBudget(6))

	history := []core.Message{
		{Sender: core.SenderUser, Text: "this oldest line is dropped"},
		{Sender: core.SenderAssistant, Text: "kept one"},
		{Sender: core.SenderUser, Text: "   "},
		{Sender: core.SenderUser, Text: "kept two"},
	}

	summary, err := g.Summarize(context.Background(), history)
	require.NoError(t, err)
	assert.Equal(t, "a short summary", summary)
	assert.Equal(t, "assistant: kept one\nuser: kept two", got.Load())
}

func TestGenerator_SummarizeNothing(t *testing.T) {
	g := newGenerator(NewCustomOpenAI("http://127.0.0.1:0", "", "m"), 0)
	_, err := g.Summarize(context.Background(), []core.Message{{Sender: core.SenderUser, Text: " "}})
	assert.ErrorIs(t, err, ErrNothingToSum)
}

func TestAnthropic_SystemField(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/messages", r.URL.Path)
		assert.Equal(t, "secret", r.Header.Get("x-api-key"))
		assert.Equal(t, anthropicVersion, r.Header.Get("anthropic-version"))

		var req chatRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Contains(t, req.System, core.BotName)
		require.Len(t, req.Messages, 1)
		assert.Equal(t, "user", req.Messages[0].Role)

		fmt.Fprint(w, `{"content":[{"type":"text","text":"Hi "},{"type":"text","text":"there"}]}`)
	}))
	t.Cleanup(srv.Close)

	g := newGenerator(newAnthropicAt(srv.URL, "secret", "claude"), 0, fastRetry())
	reply, err := g.Generate(context.Background(), "hello")
	require.NoError(t, err)
	assert.Equal(t, "Hi there", reply)
}

func TestOpenRouter_Headers(t *testing.T) {
	p := NewOpenRouter("key", "m")
	assert.Equal(t, core.BotRepositoryURL, p.extraHeaders["HTTP-Referer"])
	assert.Equal(t, core.BotName, p.extraHeaders["X-Title"])
}

func TestNewGenerator(t *testing.T) {
	ctx := context.Background()

	_, err := NewGenerator(ctx, &config.GeneratorConfig{Provider: config.ProviderNone})
	assert.ErrorIs(t, err, ErrGeneratorDisabled)

	_, err = NewGenerator(ctx, &config.GeneratorConfig{Provider: "carrier-pigeon"})
	assert.ErrorIs(t, err, ErrUnknownProvider)

	for _, p := range []string{"openai", "anthropic", "openrouter", "ollama", "custom"} {
		g, err := NewGenerator(ctx, &config.GeneratorConfig{Provider: p, Model: "m"})
		require.NoError(t, err, p)
		assert.NotNil(t, g)
	}
}

func TestDynamicGenerator_SetModel(t *testing.T) {
	var model atomic.Value
	srv := openAIServer(t, func(w http.ResponseWriter, req chatRequest) {
		model.Store(req.Model)
		writeChoice(w, "ok")
	})

	cfg := &config.GeneratorConfig{Provider: "custom", Model: "first", CustomOpenAIBaseURL: srv.URL}
	d, err := NewDynamicGenerator(context.Background(), cfg, fastRetry())
	require.NoError(t, err)

	_, err = d.Generate(context.Background(), "hi")
	require.NoError(t, err)
	assert.Equal(t, "first", model.Load())

	require.NoError(t, d.SetModel(context.Background(), "second"))
	assert.Equal(t, "second", d.GetModel())

	_, err = d.Generate(context.Background(), "hi")
	require.NoError(t, err)
	assert.Equal(t, "second", model.Load())

	assert.Error(t, d.SetModel(context.Background(), "  "))
	assert.Equal(t, "second", d.GetModel())
}

func TestCountTokens_Estimate(t *testing.T) {
	assert.Equal(t, 0, CountTokens(""))
	assert.Equal(t, 1, estimateTokens("abc"))
	assert.Equal(t, 2, estimateTokens("প্রেমের"))
}
