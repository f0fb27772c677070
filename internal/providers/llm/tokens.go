package llm

import (
	"sync"
	"unicode/utf8"

	"github.com/pkoukk/tiktoken-go"
)

// TokenCounter estimates how many model tokens a text costs.
type TokenCounter func(text string) int

var (
	tkOnce sync.Once
	tk     *tiktoken.Tiktoken
	tkErr  error
)

// CountTokens uses the cl100k_base encoding when it can be loaded and a
// four-runes-per-token estimate otherwise.
func CountTokens(text string) int {
	if text == "" {
		return 0
	}
	if enc, err := getTokenizer(); err == nil {
		return len(enc.Encode(text, nil, nil))
	}
	return estimateTokens(text)
}

func estimateTokens(text string) int {
	n := utf8.RuneCountInString(text)
	return (n + 3) / 4
}

// getTokenizer may need network access on first use to fetch the BPE ranks.
func getTokenizer() (*tiktoken.Tiktoken, error) {
	tkOnce.Do(func() {
		tk, tkErr = tiktoken.GetEncoding("cl100k_base")
	})
	return tk, tkErr
}
