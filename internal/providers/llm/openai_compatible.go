package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/sandevgo/redwan/pkg/retry"
)

type OpenAICompatible struct {
	baseProvider
	authHeader   string
	authPrefix   string
	extraHeaders map[string]string
}

type OpenAICompatibleConfig struct {
	BaseURL      string
	APIKey       string
	Model        string
	AuthHeader   string // e.g., "Authorization"
	AuthPrefix   string // e.g., "Bearer "
	ExtraHeaders map[string]string
}

func NewOpenAICompatible(cfg OpenAICompatibleConfig) *OpenAICompatible {
	return &OpenAICompatible{
		baseProvider: newBaseProvider(cfg.BaseURL, cfg.APIKey, cfg.Model),
		authHeader:   cfg.AuthHeader,
		authPrefix:   cfg.AuthPrefix,
		extraHeaders: cfg.ExtraHeaders,
	}
}

func (o *OpenAICompatible) complete(ctx context.Context, system string, messages []chatMessage) (string, error) {
	all := make([]chatMessage, 0, len(messages)+1)
	if system != "" {
		all = append(all, chatMessage{Role: "system", Content: system})
	}
	all = append(all, messages...)

	payload := map[string]any{
		"model":      o.model,
		"messages":   all,
		"max_tokens": maxReplyTokens,
	}

	headers := make(map[string]string)
	if o.authHeader != "" && o.apiKey != "" {
		headers[o.authHeader] = o.authPrefix + o.apiKey
	}
	for k, v := range o.extraHeaders {
		headers[k] = v
	}

	resp, err := o.doRequest(ctx, http.MethodPost, "/v1/chat/completions", payload, headers)
	if err != nil {
		return "", err
	}

	data, err := readBody(resp)
	if err != nil {
		return "", err
	}
	return parseOpenAIResponse(data)
}

func parseOpenAIResponse(data []byte) (string, error) {
	var result struct {
		Choices []struct {
			Message chatMessage `json:"message"`
		} `json:"choices"`
	}
	if err := json.Unmarshal(data, &result); err != nil {
		return "", retry.Permanent(fmt.Errorf("decode: %w", err))
	}
	if len(result.Choices) == 0 {
		return "", fmt.Errorf("empty choices: %s", truncate(string(data), 300))
	}
	return result.Choices[0].Message.Content, nil
}
