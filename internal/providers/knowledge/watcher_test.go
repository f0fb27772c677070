package knowledge

import (
	"context"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

type countingReloader struct {
	n atomic.Int32
}

func (r *countingReloader) Reload(context.Context) error {
	r.n.Add(1)
	return nil
}

func TestWatcher_ReloadsOnChange(t *testing.T) {
	defer goleak.VerifyNone(t)

	dir := t.TempDir()
	reloader := &countingReloader{}
	w, err := NewWatcher(dir, reloader, 20*time.Millisecond)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan error, 1)
	go func() { done <- w.Start(ctx) }()

	src := filepath.Join(dir, "intents", "general.json")
	require.Eventually(t, func() bool {
		_ = os.WriteFile(src, []byte(`{"intents":[]}`), 0o644)
		return reloader.n.Load() > 0
	}, 5*time.Second, 100*time.Millisecond)

	// let the last debounced reload settle
	time.Sleep(100 * time.Millisecond)
	before := reloader.n.Load()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "intents", "notes.txt"), []byte("x"), 0o644))
	time.Sleep(200 * time.Millisecond)
	assert.Equal(t, before, reloader.n.Load(), "non-source files are ignored")

	require.NoError(t, w.Shutdown(context.Background()))
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("watcher did not stop")
	}
}

func TestWatcher_ShutdownWithoutStart(t *testing.T) {
	defer goleak.VerifyNone(t)

	w, err := NewWatcher(t.TempDir(), &countingReloader{}, 0)
	require.NoError(t, err)
	assert.NoError(t, w.Shutdown(context.Background()))
}
