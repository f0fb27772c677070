package core

import "context"

// CmdRouter handles slash input. ok is false when input is not a command.
type CmdRouter interface {
	Execute(ctx context.Context, sessionID, input string) (reply string, ok bool)
	ListCommands() []Command
}

// Command is one slash command. args are the whitespace separated words
// after the name.
type Command interface {
	Name() string
	Description() string
	Execute(ctx context.Context, sessionID string, args []string) (string, error)
}
