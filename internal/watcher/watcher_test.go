package watcher_test

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phoenixcorp/lightdesk/internal/overrides"
	"github.com/phoenixcorp/lightdesk/internal/watcher"
)

func startWatcher(t *testing.T, path string) <-chan struct{} {
	t.Helper()
	w, err := watcher.New(watcher.Config{Path: path, Debounce: 50 * time.Millisecond})
	require.NoError(t, err)
	t.Cleanup(func() { _ = w.Stop() })

	onChange, err := w.Start()
	require.NoError(t, err)
	return onChange
}

func TestWatcher_DebounceMultipleWrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "overrides.yaml")
	require.NoError(t, os.WriteFile(path, []byte("hpRow: 0\n"), 0o600))

	onChange := startWatcher(t, path)

	for i := 0; i < 10; i++ {
		require.NoError(t, os.WriteFile(path, []byte(fmt.Sprintf("hpRow: %d\n", i)), 0o600))
		time.Sleep(10 * time.Millisecond)
	}

	select {
	case <-onChange:
	case <-time.After(500 * time.Millisecond):
		t.Fatal("expected notification but got timeout")
	}

	select {
	case <-onChange:
		t.Fatal("unexpected second notification")
	case <-time.After(150 * time.Millisecond):
	}
}

func TestWatcher_IgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "overrides.yaml")
	other := filepath.Join(dir, "notes.txt")
	require.NoError(t, os.WriteFile(path, []byte("{}"), 0o600))
	require.NoError(t, os.WriteFile(other, []byte("initial"), 0o600))

	onChange := startWatcher(t, path)

	require.NoError(t, os.WriteFile(other, []byte("changed"), 0o600))

	select {
	case <-onChange:
		t.Fatal("should not notify for unrelated files")
	case <-time.After(150 * time.Millisecond):
	}
}

func TestWatcher_SeesAtomicSave(t *testing.T) {
	path := filepath.Join(t.TempDir(), "overrides.yaml")
	require.NoError(t, overrides.WriteFile(path, overrides.Defaults()))

	onChange := startWatcher(t, path)

	// WriteFile saves through a temp file and a rename.
	require.NoError(t, overrides.WriteFile(path, overrides.WithColor(overrides.FieldHP, "#000000")(overrides.Defaults())))

	select {
	case <-onChange:
	case <-time.After(500 * time.Millisecond):
		t.Fatal("expected notification for rename onto the watched file")
	}
}

func TestWatcher_FileCreatedLater(t *testing.T) {
	path := filepath.Join(t.TempDir(), "overrides.yaml")
	onChange := startWatcher(t, path)

	require.NoError(t, os.WriteFile(path, []byte("{}"), 0o600))

	select {
	case <-onChange:
	case <-time.After(500 * time.Millisecond):
		t.Fatal("expected notification when the file appears")
	}
}

func TestWatcher_Stop(t *testing.T) {
	path := filepath.Join(t.TempDir(), "overrides.yaml")
	w, err := watcher.New(watcher.DefaultConfig(path))
	require.NoError(t, err)
	_, err = w.Start()
	require.NoError(t, err)

	done := make(chan struct{})
	go func() {
		assert.NoError(t, w.Stop())
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Stop() timed out - possible deadlock")
	}
}

func TestWatcher_MissingDirectory(t *testing.T) {
	w, err := watcher.New(watcher.DefaultConfig(filepath.Join(t.TempDir(), "missing", "overrides.yaml")))
	require.NoError(t, err)
	defer func() { _ = w.Stop() }()

	_, err = w.Start()
	require.ErrorContains(t, err, "watching directory")
}

func TestDefaultConfig(t *testing.T) {
	cfg := watcher.DefaultConfig("/tmp/overrides.yaml")
	assert.Equal(t, "/tmp/overrides.yaml", cfg.Path)
	assert.Equal(t, watcher.DefaultDebounce, cfg.Debounce)
}
