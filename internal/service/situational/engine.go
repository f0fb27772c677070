package situational

import (
	"github.com/sandevgo/redwan/internal/core"
)

// Rule inspects the normalized input and the recent history. It must not
// modify history.
type Rule struct {
	Name  string
	Match func(input string, history []core.Message) (string, bool)
}

// Engine evaluates rules in order and answers with the first that fires.
type Engine struct {
	rules []Rule
}

// NewEngine builds an engine over rules, or over DefaultRules when none are
// given.
func NewEngine(rules ...Rule) *Engine {
	if len(rules) == 0 {
		rules = DefaultRules()
	}
	return &Engine{rules: rules}
}

// Resolve answers with the first rule that fires.
func (e *Engine) Resolve(input string, history []core.Message) (string, bool) {
	for _, r := range e.rules {
		if resp, ok := r.Match(input, history); ok {
			return resp, true
		}
	}
	return "", false
}

// Fired returns the name of the rule that answers input, if any.
func (e *Engine) Fired(input string, history []core.Message) (string, bool) {
	for _, r := range e.rules {
		if _, ok := r.Match(input, history); ok {
			return r.Name, true
		}
	}
	return "", false
}

// Rules returns a copy of the rules in evaluation order.
func (e *Engine) Rules() []Rule {
	out := make([]Rule, len(e.rules))
	copy(out, e.rules)
	return out
}

// previous is the message before the current turn.
func previous(history []core.Message) (core.Message, bool) {
	if len(history) < 2 {
		return core.Message{}, false
	}
	return history[len(history)-2], true
}

// previousUser is the user's own turn before the current one.
func previousUser(history []core.Message) (core.Message, bool) {
	for i := len(history) - 2; i >= 0; i-- {
		if history[i].FromUser() {
			return history[i], true
		}
	}
	return core.Message{}, false
}

func lastAssistant(history []core.Message) (core.Message, bool) {
	for i := len(history) - 1; i >= 0; i-- {
		if history[i].FromAssistant() {
			return history[i], true
		}
	}
	return core.Message{}, false
}
