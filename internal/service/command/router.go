package command

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/sahilm/fuzzy"

	"github.com/sandevgo/redwan/internal/core"
)

type Router struct {
	commands  map[string]core.Command
	formatter *ResponseFormatter
}

// New registers commands and a built-in /help listing them.
func New(commands []core.Command) *Router {
	c := &Router{
		commands:  make(map[string]core.Command),
		formatter: NewResponseFormatter(),
	}

	for _, cmd := range commands {
		c.commands[cmd.Name()] = cmd
	}
	if _, ok := c.commands["help"]; !ok {
		c.commands["help"] = newHelpCommand(c)
	}
	return c
}

func (c *Router) Execute(ctx context.Context, sessionID, input string) (string, bool) {
	input = strings.TrimSpace(input)
	if !strings.HasPrefix(input, "/") {
		return "", false
	}

	parts := strings.Fields(input)
	name := strings.ToLower(strings.TrimPrefix(parts[0], "/"))
	// telegram appends the bot name in groups: /help@redwan_bot
	name, _, _ = strings.Cut(name, "@")
	args := parts[1:]

	cmd, ok := c.commands[name]
	if !ok {
		return c.unknown(name), true
	}

	result, err := cmd.Execute(ctx, sessionID, args)
	if err != nil {
		return c.formatter.Error(name, err), true
	}
	return result, true
}

func (c *Router) unknown(name string) string {
	msg := fmt.Sprintf("Unknown command: `/%s`\n", name)
	if s := c.Suggest(name); s != "" {
		msg += c.formatter.Tip(fmt.Sprintf("did you mean `/%s`?", s))
	} else {
		msg += c.formatter.Tip("send `/help` to see all commands")
	}
	return msg
}

// Suggest returns the registered command name closest to name, or "".
func (c *Router) Suggest(name string) string {
	if name == "" {
		return ""
	}
	names := c.names()
	matches := fuzzy.Find(name, names)
	if len(matches) > 0 {
		return matches[0].Str
	}
	// fuzzy.Find needs the pattern as a subsequence; try a typo the other way
	for _, n := range names {
		if fuzzy.Find(n, []string{name}).Len() > 0 {
			return n
		}
	}
	return ""
}

func (c *Router) names() []string {
	names := make([]string, 0, len(c.commands))
	for name := range c.commands {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ListCommands returns the commands sorted by name.
func (c *Router) ListCommands() []core.Command {
	res := make([]core.Command, 0, len(c.commands))
	for _, name := range c.names() {
		res = append(res, c.commands[name])
	}
	return res
}
