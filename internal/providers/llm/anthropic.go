package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/sandevgo/redwan/pkg/retry"
)

const anthropicVersion = "2023-06-01"

type Anthropic struct {
	baseProvider
}

func NewAnthropic(apiKey, model string) *Anthropic {
	return newAnthropicAt("https://api.anthropic.com", apiKey, model)
}

func newAnthropicAt(baseURL, apiKey, model string) *Anthropic {
	return &Anthropic{
		baseProvider: newBaseProvider(baseURL, apiKey, model),
	}
}

func (a *Anthropic) complete(ctx context.Context, system string, messages []chatMessage) (string, error) {
	var turns []chatMessage
	for _, m := range messages {
		if m.Role == "system" {
			continue
		}
		turns = append(turns, m)
	}

	payload := map[string]any{
		"model":      a.model,
		"max_tokens": maxReplyTokens,
		"messages":   turns,
	}
	if system != "" {
		payload["system"] = system
	}

	headers := map[string]string{
		"x-api-key":         a.apiKey,
		"anthropic-version": anthropicVersion,
	}

	resp, err := a.doRequest(ctx, http.MethodPost, "/v1/messages", payload, headers)
	if err != nil {
		return "", err
	}

	data, err := readBody(resp)
	if err != nil {
		return "", err
	}

	var result struct {
		Content []struct {
			Type string `json:"type"`
			Text string `json:"text"`
		} `json:"content"`
	}
	if err := json.Unmarshal(data, &result); err != nil {
		return "", retry.Permanent(fmt.Errorf("decode: %w", err))
	}

	var text strings.Builder
	for _, c := range result.Content {
		if c.Type == "text" {
			text.WriteString(c.Text)
		}
	}
	return text.String(), nil
}
