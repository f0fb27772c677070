package knowledge

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/sandevgo/redwan/pkg/log"
)

const DefaultDebounce = 500 * time.Millisecond

type Reloader interface {
	Reload(ctx context.Context) error
}

// Watcher reloads knowledge when source files under the data directory
// change. Bursts of events within the debounce window trigger one reload.
type Watcher struct {
	dir      string
	reloader Reloader
	debounce time.Duration
	fsw      *fsnotify.Watcher

	started  atomic.Bool
	stopOnce sync.Once
	stopCh   chan struct{}
	doneCh   chan struct{}
}

func NewWatcher(dir string, reloader Reloader, debounce time.Duration) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create fs watcher: %w", err)
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	return &Watcher{
		dir:      dir,
		reloader: reloader,
		debounce: debounce,
		fsw:      fsw,
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}, nil
}

// Start blocks until ctx is done or Shutdown is called.
func (w *Watcher) Start(ctx context.Context) error {
	logger := log.FromCtx(ctx)

	for _, kind := range []Kind{KindIntents, KindLexicon} {
		d := filepath.Join(w.dir, string(kind))
		if err := os.MkdirAll(d, 0o755); err != nil {
			return fmt.Errorf("failed to create data directory: %w", err)
		}
		if err := w.fsw.Add(d); err != nil {
			return fmt.Errorf("failed to watch %s: %w", d, err)
		}
	}

	w.started.Store(true)
	defer close(w.doneCh)

	logger.Info().Str("dir", w.dir).Msg("watching knowledge sources")

	var (
		timer *time.Timer
		fire  <-chan time.Time
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-w.stopCh:
			return nil

		case ev, ok := <-w.fsw.Events:
			if !ok {
				return nil
			}
			if !relevant(ev) {
				continue
			}
			logger.Debug().Str("file", ev.Name).Str("op", ev.Op.String()).Msg("knowledge source changed")
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			fire = timer.C

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return nil
			}
			logger.Warn().Err(err).Msg("knowledge watcher error")

		case <-fire:
			fire = nil
			if err := w.reloader.Reload(ctx); err != nil {
				logger.Error().Err(err).Msg("knowledge reload failed, keeping previous data")
				continue
			}
			logger.Info().Msg("knowledge reloaded")
		}
	}
}

func (w *Watcher) Shutdown(ctx context.Context) error {
	w.stopOnce.Do(func() {
		close(w.stopCh)
	})
	if w.started.Load() {
		select {
		case <-w.doneCh:
		case <-ctx.Done():
		}
	}
	return w.fsw.Close()
}

func relevant(ev fsnotify.Event) bool {
	if !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Remove) && !ev.Has(fsnotify.Rename) {
		return false
	}
	return slices.Contains(extensions, strings.ToLower(filepath.Ext(ev.Name)))
}
