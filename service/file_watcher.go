package service

import (
	"context"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/ludo-technologies/jsplit/internal/logging"
)

// DefaultDebounce is the quiet period before a batch of changes is reported
const DefaultDebounce = 300 * time.Millisecond

// skippedDirs are never watched
var skippedDirs = map[string]bool{
	".git":         true,
	"node_modules": true,
}

// FileWatcher reports batches of changed source files below a set of
// directories. New subdirectories are picked up while watching.
type FileWatcher struct {
	watcher  *fsnotify.Watcher
	logger   *slog.Logger
	accept   func(path string) bool
	debounce time.Duration

	cancel   context.CancelFunc
	doneCh   chan struct{}
	stopOnce sync.Once
}

// NewFileWatcher watches dirs recursively. accept filters the files worth
// reporting; a nil accept reports everything.
func NewFileWatcher(logger *slog.Logger, dirs []string, accept func(path string) bool, debounce time.Duration) (*FileWatcher, error) {
	if logger == nil {
		logger = logging.NewDiscardLogger()
	}
	if accept == nil {
		accept = func(string) bool { return true }
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	fw := &FileWatcher{
		watcher:  watcher,
		logger:   logger,
		accept:   accept,
		debounce: debounce,
		doneCh:   make(chan struct{}),
	}

	for _, dir := range dirs {
		if err := fw.addRecursive(dir); err != nil {
			_ = watcher.Close()
			return nil, err
		}
	}

	return fw, nil
}

// Start delivers changed files to callback until ctx is done or Stop is
// called. The callback runs on the watcher goroutine.
func (fw *FileWatcher) Start(ctx context.Context, callback func(files []string)) {
	ctx, fw.cancel = context.WithCancel(ctx)
	go fw.loop(ctx, callback)
}

// Stop ends watching and releases the underlying watcher. Safe to call
// more than once.
func (fw *FileWatcher) Stop() error {
	var err error
	fw.stopOnce.Do(func() {
		if fw.cancel != nil {
			fw.cancel()
			<-fw.doneCh
		}
		err = fw.watcher.Close()
	})
	return err
}

func (fw *FileWatcher) loop(ctx context.Context, callback func([]string)) {
	defer close(fw.doneCh)

	pending := make(map[string]bool)
	var timer *time.Timer
	var fire <-chan time.Time
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-fw.watcher.Events:
			if !ok {
				return
			}
			if event.Has(fsnotify.Create) {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					if err := fw.addRecursive(event.Name); err != nil {
						fw.logger.Warn("failed to watch new directory", "path", event.Name, "error", err)
					}
					continue
				}
			}
			if !fw.relevant(event) {
				continue
			}

			pending[event.Name] = true
			if timer == nil {
				timer = time.NewTimer(fw.debounce)
			} else {
				timer.Reset(fw.debounce)
			}
			fire = timer.C

		case <-fire:
			fire = nil
			if len(pending) == 0 {
				continue
			}
			files := make([]string, 0, len(pending))
			for f := range pending {
				files = append(files, f)
			}
			sort.Strings(files)
			pending = make(map[string]bool)

			fw.logger.Debug("files changed", "count", len(files))
			callback(files)

		case err, ok := <-fw.watcher.Errors:
			if !ok {
				return
			}
			fw.logger.Warn("file watcher error", "error", err)
		}
	}
}

func (fw *FileWatcher) relevant(event fsnotify.Event) bool {
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) &&
		!event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
		return false
	}
	return fw.accept(event.Name)
}

func (fw *FileWatcher) addRecursive(root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == root {
				return err
			}
			fw.logger.Debug("skipping unreadable path", "path", path, "error", err)
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		if path != root && skippedDirs[d.Name()] {
			return filepath.SkipDir
		}
		if err := fw.watcher.Add(path); err != nil {
			fw.logger.Warn("failed to watch directory", "path", path, "error", err)
		}
		return nil
	})
}
