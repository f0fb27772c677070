package state

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"

	"github.com/sandevgo/redwan/internal/providers/knowledge"
	"github.com/sandevgo/redwan/pkg/log"
)

var ErrNotLoaded = errors.New("knowledge is not loaded")

type loader interface {
	Load(ctx context.Context) (*knowledge.Snapshot, error)
}

// GlobalState holds the process-wide knowledge snapshot. Readers get an
// immutable snapshot; Reload replaces it as a whole.
type GlobalState struct {
	loader   loader
	snapshot atomic.Pointer[knowledge.Snapshot]
	// reloads are serialized so a slow load cannot overwrite a newer one
	mu      sync.Mutex
	reloads atomic.Int64
}

func NewGlobalState(loader loader) *GlobalState {
	return &GlobalState{
		loader: loader,
	}
}

// NewStaticState serves a fixed snapshot and cannot reload.
func NewStaticState(snap *knowledge.Snapshot) *GlobalState {
	s := &GlobalState{}
	s.snapshot.Store(snap)
	return s
}

// Snapshot returns the current knowledge, or nil before the first load.
func (s *GlobalState) Snapshot() *knowledge.Snapshot {
	return s.snapshot.Load()
}

// Reload builds a new snapshot and swaps it in. On failure the current
// snapshot stays in place.
func (s *GlobalState) Reload(ctx context.Context) error {
	if s.loader == nil {
		return ErrNotLoaded
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	snap, err := s.loader.Load(ctx)
	if err != nil {
		return err
	}

	s.snapshot.Store(snap)
	s.reloads.Add(1)

	log.FromCtx(ctx).Debug().
		Int("intents", snap.Intents.Len()).
		Int("lexicon", snap.Lexicon.Len()).
		Int("skipped", len(snap.Failed())).
		Msg("knowledge snapshot swapped")

	return nil
}

// Reloads counts successful loads, the first one included.
func (s *GlobalState) Reloads() int64 {
	return s.reloads.Load()
}
