package llm

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/sandevgo/redwan/internal/config"
	"github.com/sandevgo/redwan/internal/core"
)

// DynamicGenerator lets the model be swapped while the bot is running.
type DynamicGenerator struct {
	config  *config.GeneratorConfig
	opts    []GeneratorOption
	current atomic.Pointer[Generator]
	mu      sync.Mutex
}

func NewDynamicGenerator(ctx context.Context, cfg *config.GeneratorConfig, opts ...GeneratorOption) (*DynamicGenerator, error) {
	d := &DynamicGenerator{
		config: cfg,
		opts:   opts,
	}

	g, err := NewGenerator(ctx, cfg, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create initial generator: %w", err)
	}

	d.current.Store(g)
	return d, nil
}

func (d *DynamicGenerator) Generate(ctx context.Context, message string) (string, error) {
	return d.current.Load().Generate(ctx, message)
}

func (d *DynamicGenerator) Summarize(ctx context.Context, history []core.Message) (string, error) {
	return d.current.Load().Summarize(ctx, history)
}

func (d *DynamicGenerator) GetModel() string {
	return d.config.GetModel()
}

// SetModel rebuilds the generator for model. The previous model is kept when
// the rebuild fails.
func (d *DynamicGenerator) SetModel(ctx context.Context, model string) error {
	model = strings.TrimSpace(model)
	if model == "" {
		return fmt.Errorf("model name is empty")
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	previous := d.config.GetModel()
	d.config.SetModel(model)

	g, err := NewGenerator(ctx, d.config, d.opts...)
	if err != nil {
		d.config.SetModel(previous)
		return fmt.Errorf("failed to create generator: %w", err)
	}

	d.current.Store(g)
	return nil
}
