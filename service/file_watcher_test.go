package service

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

type changeRecorder struct {
	mu      sync.Mutex
	batches [][]string
}

func (r *changeRecorder) record(files []string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.batches = append(r.batches, files)
}

func (r *changeRecorder) all() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []string
	for _, b := range r.batches {
		out = append(out, b...)
	}
	return out
}

func jsOnly(path string) bool {
	return strings.HasSuffix(path, ".js")
}

func TestFileWatcher_ReportsChangedFiles(t *testing.T) {
	defer goleak.VerifyNone(t)

	dir := t.TempDir()
	fw, err := NewFileWatcher(nil, []string{dir}, jsOnly, 20*time.Millisecond)
	require.NoError(t, err)

	rec := &changeRecorder{}
	fw.Start(context.Background(), rec.record)

	target := filepath.Join(dir, "a.js")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644))
	require.NoError(t, os.WriteFile(target, []byte("function a() {}"), 0o644))

	assert.Eventually(t, func() bool {
		for _, f := range rec.all() {
			if f == target {
				return true
			}
		}
		return false
	}, 2*time.Second, 10*time.Millisecond)

	require.NoError(t, fw.Stop())
	assert.NotContains(t, rec.all(), filepath.Join(dir, "notes.txt"))
}

func TestFileWatcher_WatchesNewDirectories(t *testing.T) {
	defer goleak.VerifyNone(t)

	dir := t.TempDir()
	fw, err := NewFileWatcher(nil, []string{dir}, jsOnly, 20*time.Millisecond)
	require.NoError(t, err)

	rec := &changeRecorder{}
	fw.Start(context.Background(), rec.record)
	defer fw.Stop()

	sub := filepath.Join(dir, "lib")
	require.NoError(t, os.Mkdir(sub, 0o755))
	target := filepath.Join(sub, "b.js")

	// the directory is added asynchronously, keep touching the file until seen
	assert.Eventually(t, func() bool {
		_ = os.WriteFile(target, []byte("function b() {}"), 0o644)
		for _, f := range rec.all() {
			if f == target {
				return true
			}
		}
		return false
	}, 3*time.Second, 50*time.Millisecond)
}

func TestFileWatcher_StopIsIdempotent(t *testing.T) {
	defer goleak.VerifyNone(t)

	fw, err := NewFileWatcher(nil, []string{t.TempDir()}, nil, 0)
	require.NoError(t, err)

	fw.Start(context.Background(), func([]string) {})
	assert.NoError(t, fw.Stop())
	assert.NoError(t, fw.Stop())
}

func TestFileWatcher_StopsWithContext(t *testing.T) {
	defer goleak.VerifyNone(t)

	fw, err := NewFileWatcher(nil, []string{t.TempDir()}, nil, 0)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	fw.Start(ctx, func([]string) {})
	cancel()

	select {
	case <-fw.doneCh:
	case <-time.After(2 * time.Second):
		t.Fatal("watcher did not stop after cancellation")
	}
	assert.NoError(t, fw.Stop())
}

func TestNewFileWatcher_MissingDirectory(t *testing.T) {
	_, err := NewFileWatcher(nil, []string{filepath.Join(t.TempDir(), "missing")}, nil, 0)
	assert.Error(t, err)
}
