package command

import (
	"context"
	"fmt"

	"github.com/sandevgo/redwan/internal/core"
)

type ModelCommand struct {
	cfg       core.GeneratorConfig
	switcher  core.ModelSwitcher
	formatter *ResponseFormatter
}

// NewModelCommand accepts a nil switcher when no generator is running.
func NewModelCommand(cfg core.GeneratorConfig, switcher core.ModelSwitcher) *ModelCommand {
	return &ModelCommand{
		cfg:       cfg,
		switcher:  switcher,
		formatter: NewResponseFormatter(),
	}
}

func (c *ModelCommand) Name() string {
	return "model"
}

func (c *ModelCommand) Description() string {
	return "Show or change the generator model"
}

func (c *ModelCommand) Execute(ctx context.Context, _ string, args []string) (string, error) {
	if c.switcher == nil {
		return c.formatter.Combine(
			c.formatter.Info("Generator is disabled"),
			c.formatter.Tip("set `REDWAN_GENERATOR` or run `redwan install`"),
		), nil
	}

	if len(args) == 0 {
		return c.formatter.Combine(
			c.formatter.Info("Current Model"),
			c.formatter.Label("Provider", c.cfg.GetProvider())+
				c.formatter.Label("Model", c.switcher.GetModel()),
			c.formatter.Usage("/model [model]"),
		), nil
	}

	if err := c.switcher.SetModel(ctx, args[0]); err != nil {
		return "", fmt.Errorf("failed to set model: %w", err)
	}

	return c.formatter.Success(fmt.Sprintf("Model changed to: `%s/%s`", c.cfg.GetProvider(), c.switcher.GetModel())), nil
}
