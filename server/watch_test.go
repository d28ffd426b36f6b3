package server

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/c360studio/chatmode/config"
)

func TestConfigWatcherReload(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, config.ProjectConfigFile)
	if err := os.WriteFile(path, []byte("generate:\n  user_name: First\n"), 0644); err != nil {
		t.Fatal(err)
	}

	reloaded := make(chan *config.Config, 1)
	watcher, err := NewConfigWatcher(path, discardLogger(), func(cfg *config.Config) {
		reloaded <- cfg
	})
	if err != nil {
		t.Fatalf("NewConfigWatcher() error = %v", err)
	}
	defer watcher.Stop()
	watcher.Start()

	if err := os.WriteFile(path, []byte("generate:\n  user_name: Second\n"), 0644); err != nil {
		t.Fatal(err)
	}

	select {
	case cfg := <-reloaded:
		if cfg.Generate.UserName != "Second" {
			t.Errorf("UserName = %q, want Second", cfg.Generate.UserName)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for reload")
	}
}

func TestConfigWatcherStopCancelsPendingReload(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, config.ProjectConfigFile)
	if err := os.WriteFile(path, []byte("generate:\n  user_name: First\n"), 0644); err != nil {
		t.Fatal(err)
	}

	reloaded := make(chan *config.Config, 1)
	watcher, err := NewConfigWatcher(path, discardLogger(), func(cfg *config.Config) {
		reloaded <- cfg
	})
	if err != nil {
		t.Fatalf("NewConfigWatcher() error = %v", err)
	}
	watcher.Start()

	// Schedule a reload, then stop before the debounce window elapses.
	if err := os.WriteFile(path, []byte("generate:\n  user_name: Second\n"), 0644); err != nil {
		t.Fatal(err)
	}
	watcher.scheduleReload()
	watcher.Stop()

	select {
	case <-reloaded:
		t.Fatal("apply fired after Stop")
	case <-time.After(2 * reloadDebounce):
	}
}

func TestConfigWatcherIgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, config.ProjectConfigFile)
	if err := os.WriteFile(path, []byte("generate:\n  user_name: First\n"), 0644); err != nil {
		t.Fatal(err)
	}

	reloaded := make(chan *config.Config, 1)
	watcher, err := NewConfigWatcher(path, discardLogger(), func(cfg *config.Config) {
		reloaded <- cfg
	})
	if err != nil {
		t.Fatalf("NewConfigWatcher() error = %v", err)
	}
	defer watcher.Stop()
	watcher.Start()

	if err := os.WriteFile(filepath.Join(dir, "notes.md"), []byte("unrelated"), 0644); err != nil {
		t.Fatal(err)
	}

	select {
	case <-reloaded:
		t.Fatal("unexpected reload for unrelated file")
	case <-time.After(2 * reloadDebounce):
	}
}
