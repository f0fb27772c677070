package core

import "time"

const (
	BotName          = "Redwan-Intel"
	BotUserAgent     = "Redwan-Bot/0.1"
	BotRepositoryURL = "https://github.com/sandevgo/redwan"
	BotVersion       = "0.1.0"
)

type Sender string

const (
	SenderUser      Sender = "user"
	SenderAssistant Sender = "assistant"
)

// Message is one chat turn. History slices are ordered oldest first.
type Message struct {
	ID        string    `json:"id"`
	Text      string    `json:"text"`
	Sender    Sender    `json:"sender"`
	CreatedAt time.Time `json:"created_at,omitempty"`
}

func (m Message) FromUser() bool {
	return m.Sender == SenderUser
}

func (m Message) FromAssistant() bool {
	return m.Sender == SenderAssistant
}

// Intent is a named cluster of trigger patterns and candidate replies.
type Intent struct {
	Tag       string   `json:"tag" yaml:"tag"`
	Patterns  []string `json:"patterns" yaml:"patterns"`
	Responses []string `json:"responses" yaml:"responses"`
}

// LexiconEntry pairs an English term with its translation.
type LexiconEntry struct {
	Source string `json:"source" yaml:"source"`
	Target string `json:"target" yaml:"target"`
}

// Source names the pipeline stage that produced a response.
type Source string

const (
	SourcePrompt      Source = "prompt"
	SourceExpression  Source = "expression"
	SourceLexicon     Source = "lexicon"
	SourceSituational Source = "situational"
	SourceIntent      Source = "intent"
	SourceFallback    Source = "fallback"
	SourceGenerator   Source = "generator"
)

type MatchResult struct {
	Response string `json:"response"`
	Source   Source `json:"source"`
	// Tag is set when Source is SourceIntent.
	Tag string `json:"tag,omitempty"`
}

// WelcomeMessage opens every new conversation.
const WelcomeMessage = "Hello! I am Redwan-Intel. How can I help you today?"

// QuickReplies are suggested first messages offered by the transports.
var QuickReplies = []string{
	"তোমার পরিচয় কি?",
	"একটি জোকস বলো",
	"কেমন আছো?",
	"Love মানে কি?",
}
