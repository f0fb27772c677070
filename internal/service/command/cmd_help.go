package command

import (
	"context"
	"fmt"

	"github.com/sandevgo/redwan/internal/core"
)

type lister interface {
	ListCommands() []core.Command
}

type HelpCommand struct {
	router    lister
	formatter *ResponseFormatter
}

func newHelpCommand(router lister) *HelpCommand {
	return &HelpCommand{
		router:    router,
		formatter: NewResponseFormatter(),
	}
}

func (c *HelpCommand) Name() string {
	return "help"
}

func (c *HelpCommand) Description() string {
	return "List commands and suggested questions"
}

func (c *HelpCommand) Execute(_ context.Context, _ string, _ []string) (string, error) {
	var commands []string
	for _, cmd := range c.router.ListCommands() {
		commands = append(commands, fmt.Sprintf("`/%s` %s", cmd.Name(), cmd.Description()))
	}

	return c.formatter.Combine(
		c.formatter.Section("⚙️", "Commands", c.formatter.List(commands)),
		c.formatter.Section("💬", "Try asking", c.formatter.List(core.QuickReplies)),
	), nil
}
