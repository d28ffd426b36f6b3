package server

import (
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/c360studio/chatmode/config"
)

// reloadDebounce is how long to wait for more changes before reloading.
// Editors often write a config file several times in quick succession.
const reloadDebounce = 500 * time.Millisecond

// ConfigWatcher watches a project config file and invokes a callback with
// the reloaded configuration after changes settle.
type ConfigWatcher struct {
	path    string
	watcher *fsnotify.Watcher
	logger  *slog.Logger
	apply   func(*config.Config)

	mu      sync.Mutex
	pending *time.Timer
	done    chan struct{}
}

// NewConfigWatcher creates a watcher for the config file at path.
func NewConfigWatcher(path string, logger *slog.Logger, apply func(*config.Config)) (*ConfigWatcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	// Watch the directory rather than the file: editors replace files
	// on save, which would drop a file-level watch.
	if err := fsw.Add(filepath.Dir(path)); err != nil {
		fsw.Close()
		return nil, err
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &ConfigWatcher{
		path:    path,
		watcher: fsw,
		logger:  logger,
		apply:   apply,
		done:    make(chan struct{}),
	}, nil
}

// Start begins processing file events.
func (w *ConfigWatcher) Start() {
	go w.processEvents()
	w.logger.Info("Watching configuration", slog.String("path", w.path))
}

// Stop stops the watcher. A reload scheduled but not yet fired is
// cancelled, so apply is never invoked after Stop returns.
func (w *ConfigWatcher) Stop() {
	close(w.done)

	w.mu.Lock()
	if w.pending != nil {
		w.pending.Stop()
		w.pending = nil
	}
	w.mu.Unlock()

	if err := w.watcher.Close(); err != nil {
		w.logger.Warn("Config watcher close failed", slog.String("error", err.Error()))
	}
}

func (w *ConfigWatcher) processEvents() {
	for {
		select {
		case <-w.done:
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != filepath.Clean(w.path) {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			w.scheduleReload()
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Warn("Config watch error", slog.String("error", err.Error()))
		}
	}
}

func (w *ConfigWatcher) scheduleReload() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.pending != nil {
		w.pending.Stop()
	}
	w.pending = time.AfterFunc(reloadDebounce, w.reload)
}

func (w *ConfigWatcher) reload() {
	select {
	case <-w.done:
		return
	default:
	}

	cfg, err := config.LoadFromFile(w.path)
	if err != nil {
		w.logger.Warn("Config reload failed",
			slog.String("path", w.path),
			slog.String("error", err.Error()))
		return
	}

	w.logger.Info("Configuration file changed", slog.String("path", w.path))
	w.apply(cfg)
}
