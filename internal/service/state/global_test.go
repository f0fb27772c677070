package state

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sandevgo/redwan/internal/core"
	"github.com/sandevgo/redwan/internal/providers/knowledge"
	"github.com/sandevgo/redwan/internal/service/intent"
	"github.com/sandevgo/redwan/internal/service/lexicon"
)

type fakeLoader struct {
	snaps []*knowledge.Snapshot
	err   error
	calls int
}

func (f *fakeLoader) Load(context.Context) (*knowledge.Snapshot, error) {
	defer func() { f.calls++ }()
	if f.err != nil && f.calls > 0 {
		return nil, f.err
	}
	return f.snaps[f.calls%len(f.snaps)], nil
}

func snapshot(t *testing.T, tag string) *knowledge.Snapshot {
	t.Helper()
	db, err := intent.NewDatabase([]core.Intent{{Tag: tag, Patterns: []string{tag}, Responses: []string{tag}}})
	require.NoError(t, err)
	return &knowledge.Snapshot{Intents: db, Lexicon: lexicon.NewDictionary(nil)}
}

func TestGlobalState_Reload(t *testing.T) {
	first, second := snapshot(t, "first"), snapshot(t, "second")
	s := NewGlobalState(&fakeLoader{snaps: []*knowledge.Snapshot{first, second}})

	assert.Nil(t, s.Snapshot())

	require.NoError(t, s.Reload(context.Background()))
	assert.Same(t, first, s.Snapshot())

	require.NoError(t, s.Reload(context.Background()))
	assert.Same(t, second, s.Snapshot())
	assert.EqualValues(t, 2, s.Reloads())
}

func TestGlobalState_FailedReloadKeepsSnapshot(t *testing.T) {
	first := snapshot(t, "first")
	loadErr := errors.New("boom")
	s := NewGlobalState(&fakeLoader{snaps: []*knowledge.Snapshot{first}, err: loadErr})

	require.NoError(t, s.Reload(context.Background()))

	err := s.Reload(context.Background())
	assert.ErrorIs(t, err, loadErr)
	assert.Same(t, first, s.Snapshot())
	assert.EqualValues(t, 1, s.Reloads())
}

func TestStaticState(t *testing.T) {
	snap := snapshot(t, "x")
	s := NewStaticState(snap)

	assert.Same(t, snap, s.Snapshot())
	assert.ErrorIs(t, s.Reload(context.Background()), ErrNotLoaded)
}
