package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoad_MissingFileReturnsDefaults(t *testing.T) {
	m := NewManagerWithPath(filepath.Join(t.TempDir(), "config.yaml"))

	cfg, err := m.Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.SaveDebounceMs != 300 {
		t.Errorf("SaveDebounceMs = %d, want 300", cfg.SaveDebounceMs)
	}
	if cfg.InitialLoadCount != 30 {
		t.Errorf("InitialLoadCount = %d, want 30", cfg.InitialLoadCount)
	}
	if cfg.ImageCacheMaxSize != 50 {
		t.Errorf("ImageCacheMaxSize = %d, want 50", cfg.ImageCacheMaxSize)
	}
	if cfg.ProtectPinnedItems {
		t.Error("ProtectPinnedItems = true, want false")
	}
}

func TestLoad_MalformedFileFallsBackToDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("save_debounce_ms: [not an int"), 0644); err != nil {
		t.Fatalf("WriteFile() error: %v", err)
	}
	m := NewManagerWithPath(path)

	cfg, err := m.Load()
	if err == nil {
		t.Error("Load() on malformed file returned nil error, want parse error")
	}
	if cfg == nil {
		t.Fatal("Load() returned nil config, want defaults")
	}
	if cfg.SaveDebounceMs != 300 {
		t.Errorf("SaveDebounceMs = %d, want default 300", cfg.SaveDebounceMs)
	}
}

func TestLoad_PartialFileKeepsDefaultsForMissingFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := "save_debounce_ms: 100\nprotect_pinned_items: true\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("WriteFile() error: %v", err)
	}

	cfg, err := NewManagerWithPath(path).Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.SaveDebounceMs != 100 {
		t.Errorf("SaveDebounceMs = %d, want 100", cfg.SaveDebounceMs)
	}
	if !cfg.ProtectPinnedItems {
		t.Error("ProtectPinnedItems = false, want true")
	}
	if cfg.SearchDebounceMs != 250 {
		t.Errorf("SearchDebounceMs = %d, want default 250", cfg.SearchDebounceMs)
	}
}

func TestLoad_OutOfRangeValuesFallBackPerField(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := "initial_load_count: -5\nload_threshold_factor: 3.0\nload_batch_size: 10\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("WriteFile() error: %v", err)
	}

	cfg, err := NewManagerWithPath(path).Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.InitialLoadCount != 30 {
		t.Errorf("InitialLoadCount = %d, want default 30", cfg.InitialLoadCount)
	}
	if cfg.LoadThresholdFactor != 0.95 {
		t.Errorf("LoadThresholdFactor = %v, want default 0.95", cfg.LoadThresholdFactor)
	}
	if cfg.LoadBatchSize != 10 {
		t.Errorf("LoadBatchSize = %d, want 10 (valid values survive)", cfg.LoadBatchSize)
	}
}

func TestSaveAndReload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	m := NewManagerWithPath(path)

	cfg := DefaultConfig()
	cfg.SaveDebounceMs = 500
	cfg.HistoryFile = "/var/lib/clipse/history.json"
	if err := m.Save(cfg); err != nil {
		t.Fatalf("Save() error: %v", err)
	}

	loaded, err := m.Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if loaded.SaveDebounceMs != 500 {
		t.Errorf("SaveDebounceMs = %d, want 500", loaded.SaveDebounceMs)
	}
	if loaded.SaveDebounce() != 500*time.Millisecond {
		t.Errorf("SaveDebounce() = %v, want 500ms", loaded.SaveDebounce())
	}
	if loaded.HistoryFile != "/var/lib/clipse/history.json" {
		t.Errorf("HistoryFile = %q", loaded.HistoryFile)
	}
}

func TestHistoryFilePath_ExpandsTilde(t *testing.T) {
	cfg := DefaultConfig()
	cfg.HistoryFile = "~/custom/history.json"

	path, err := cfg.HistoryFilePath()
	if err != nil {
		t.Fatalf("HistoryFilePath() error: %v", err)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		t.Fatalf("UserHomeDir() error: %v", err)
	}
	if want := filepath.Join(home, "custom", "history.json"); path != want {
		t.Errorf("HistoryFilePath() = %q, want %q", path, want)
	}
}
