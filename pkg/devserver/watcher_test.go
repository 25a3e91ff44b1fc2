package devserver_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/emailkit/pkg/devserver"
)

func startWatcher(t *testing.T, w *devserver.Watcher) {
	t.Helper()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	t.Cleanup(func() {
		cancel()
		select {
		case err := <-done:
			assert.NoError(t, err)
		case <-time.After(2 * time.Second):
			t.Error("watcher did not stop")
		}
	})

	// Give the watcher time to register its directories.
	time.Sleep(100 * time.Millisecond)
}

func TestWatcher_RebuildsOnChange(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	nested := filepath.Join(dir, "welcome", "locales")
	require.NoError(t, os.MkdirAll(nested, 0755))

	rebuilt := make(chan struct{}, 10)
	w := devserver.NewWatcher(func(context.Context) error {
		rebuilt <- struct{}{}
		return nil
	}, []string{dir, filepath.Join(dir, "missing")}, devserver.WithDebounce(20*time.Millisecond))
	startWatcher(t, w)

	require.NoError(t, os.WriteFile(filepath.Join(nested, "en.json"), []byte(`{"a":"b"}`), 0644))

	select {
	case <-rebuilt:
	case <-time.After(2 * time.Second):
		require.Fail(t, "no rebuild after change")
	}
}

func TestWatcher_DebouncesBursts(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	var calls atomic.Int32
	w := devserver.NewWatcher(func(context.Context) error {
		calls.Add(1)
		return nil
	}, []string{dir}, devserver.WithDebounce(200*time.Millisecond))
	startWatcher(t, w)

	for i := range 5 {
		require.NoError(t, os.WriteFile(filepath.Join(dir, "en.json"), []byte{byte('0' + i)}, 0644))
	}

	assert.Eventually(t, func() bool { return calls.Load() == 1 }, 2*time.Second, 20*time.Millisecond)
	time.Sleep(300 * time.Millisecond)
	assert.Equal(t, int32(1), calls.Load())
}

func TestWatcher_ContinuesAfterFailure(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	var calls atomic.Int32
	w := devserver.NewWatcher(func(context.Context) error {
		if calls.Add(1) == 1 {
			return errors.New("broken template")
		}
		return nil
	}, []string{dir}, devserver.WithDebounce(20*time.Millisecond))
	startWatcher(t, w)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.json"), []byte("{}"), 0644))
	require.Eventually(t, func() bool { return calls.Load() >= 1 }, 2*time.Second, 10*time.Millisecond)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.json"), []byte("{}"), 0644))
	assert.Eventually(t, func() bool { return calls.Load() >= 2 }, 2*time.Second, 10*time.Millisecond)
}
