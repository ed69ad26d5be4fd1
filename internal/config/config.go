// Package config loads the clipview configuration. The rest of the program
// receives a resolved Config value and never re-reads files itself.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the resolved clipview configuration.
type Config struct {
	// HistoryFile is the path to the daemon's JSON history file.
	// Empty means the default clipse location.
	HistoryFile string `yaml:"history_file,omitempty"`

	SaveDebounceMs      int     `yaml:"save_debounce_ms"`
	SearchDebounceMs    int     `yaml:"search_debounce_ms"`
	InitialLoadCount    int     `yaml:"initial_load_count"`
	LoadBatchSize       int     `yaml:"load_batch_size"`
	LoadThresholdFactor float64 `yaml:"load_threshold_factor"`
	ImageCacheMaxSize   int     `yaml:"image_cache_max_size"`
	ProtectPinnedItems  bool    `yaml:"protect_pinned_items"`
	EnterToPaste        bool    `yaml:"enter_to_paste"`

	PasteSimulationDelayMs    int    `yaml:"paste_simulation_delay_ms"`
	CopyToolCmd               string `yaml:"copy_tool_cmd"`
	X11CopyToolCmd            string `yaml:"x11_copy_tool_cmd"`
	PasteSimulationCmdWayland string `yaml:"paste_simulation_cmd_wayland"`
	PasteSimulationCmdX11     string `yaml:"paste_simulation_cmd_x11"`
}

// DefaultConfig returns the documented defaults. The tool commands match
// what the clipse daemon itself ships with.
func DefaultConfig() *Config {
	return &Config{
		SaveDebounceMs:            300,
		SearchDebounceMs:          250,
		InitialLoadCount:          30,
		LoadBatchSize:             20,
		LoadThresholdFactor:       0.95,
		ImageCacheMaxSize:         50,
		ProtectPinnedItems:        false,
		EnterToPaste:              false,
		PasteSimulationDelayMs:    150,
		CopyToolCmd:               "wl-copy",
		X11CopyToolCmd:            "xclip -i -selection clipboard",
		PasteSimulationCmdWayland: "wtype -M ctrl -P v -p v -m ctrl",
		PasteSimulationCmdX11:     "xdotool key --clearmodifiers ctrl+v",
	}
}

// SaveDebounce returns the persistence debounce as a duration.
func (c *Config) SaveDebounce() time.Duration {
	return time.Duration(c.SaveDebounceMs) * time.Millisecond
}

// SearchDebounce returns the search input debounce as a duration.
func (c *Config) SearchDebounce() time.Duration {
	return time.Duration(c.SearchDebounceMs) * time.Millisecond
}

// PasteSimulationDelay returns the pause before simulating a paste, giving
// the window manager time to refocus the previous window.
func (c *Config) PasteSimulationDelay() time.Duration {
	return time.Duration(c.PasteSimulationDelayMs) * time.Millisecond
}

// HistoryFilePath resolves the history file location, expanding a leading
// "~" and falling back to the default clipse path.
func (c *Config) HistoryFilePath() (string, error) {
	path := c.HistoryFile
	if path == "" {
		path = "~/.config/clipse/clipboard_history.json"
	}
	if strings.HasPrefix(path, "~") {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get user home directory: %w", err)
		}
		path = filepath.Join(homeDir, strings.TrimPrefix(path, "~"))
	}
	return path, nil
}

// Manager loads and saves the configuration file.
type Manager struct {
	configPath string
}

// NewManager creates a manager for the default config location,
// ~/.config/clipview/config.yaml.
func NewManager() (*Manager, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("failed to get user home directory: %w", err)
	}
	return &Manager{
		configPath: filepath.Join(homeDir, ".config", "clipview", "config.yaml"),
	}, nil
}

// NewManagerWithPath creates a manager with a custom config path.
func NewManagerWithPath(configPath string) *Manager {
	return &Manager{configPath: configPath}
}

// Load reads the configuration. A missing file yields the defaults. A
// malformed file also yields the defaults along with the parse error, so
// the application stays usable and can surface the problem as a
// notification instead of refusing to start.
func (m *Manager) Load() (*Config, error) {
	if _, err := os.Stat(m.configPath); os.IsNotExist(err) {
		return DefaultConfig(), nil
	}

	data, err := os.ReadFile(m.configPath)
	if err != nil {
		return DefaultConfig(), fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return DefaultConfig(), fmt.Errorf("failed to parse config file: %w", err)
	}

	config.applyBounds()
	return config, nil
}

// Save writes the configuration to file.
func (m *Manager) Save(config *Config) error {
	if err := os.MkdirAll(filepath.Dir(m.configPath), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(m.configPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// GetConfigPath returns the path to the config file.
func (m *Manager) GetConfigPath() string {
	return m.configPath
}

// applyBounds replaces out-of-range values with their defaults rather than
// failing the whole load. A bad setting degrades one knob, not the app.
func (c *Config) applyBounds() {
	defaults := DefaultConfig()
	if c.SaveDebounceMs <= 0 {
		c.SaveDebounceMs = defaults.SaveDebounceMs
	}
	if c.SearchDebounceMs <= 0 {
		c.SearchDebounceMs = defaults.SearchDebounceMs
	}
	if c.InitialLoadCount <= 0 {
		c.InitialLoadCount = defaults.InitialLoadCount
	}
	if c.LoadBatchSize <= 0 {
		c.LoadBatchSize = defaults.LoadBatchSize
	}
	if c.LoadThresholdFactor <= 0 || c.LoadThresholdFactor > 1 {
		c.LoadThresholdFactor = defaults.LoadThresholdFactor
	}
	if c.ImageCacheMaxSize <= 0 {
		c.ImageCacheMaxSize = defaults.ImageCacheMaxSize
	}
	if c.PasteSimulationDelayMs < 0 {
		c.PasteSimulationDelayMs = defaults.PasteSimulationDelayMs
	}
}
