// Package cli wires the configuration, history store, and clipboard
// together and dispatches subcommands. The default command opens the
// interactive browser.
package cli

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"clipview/internal/clipboard"
	"clipview/internal/clipboard/cmdboard"
	"clipview/internal/clipboard/sysboard"
	"clipview/internal/config"
	"clipview/internal/history"
	"clipview/internal/tui"
)

// CLI handles the command-line interface.
type CLI struct {
	cfg       *config.Config
	store     *history.Store
	clipboard clipboard.Clipboard
}

// New creates a new CLI instance with default configuration.
func New() (*CLI, error) {
	return NewWithArgs(nil)
}

// NewWithArgs creates a CLI instance honoring --config and --history-file
// overrides. Configuration problems are reported on stderr but never
// prevent startup; the defaults take over.
func NewWithArgs(args *Args) (*CLI, error) {
	var manager *config.Manager
	if args != nil && args.ConfigFile != nil {
		manager = config.NewManagerWithPath(*args.ConfigFile)
	} else {
		var err error
		manager, err = config.NewManager()
		if err != nil {
			return nil, err
		}
	}

	cfg, err := manager.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v (using defaults)\n", err)
	}

	var histPath string
	if args != nil && args.HistoryFile != nil {
		histPath = *args.HistoryFile
	} else {
		histPath, err = cfg.HistoryFilePath()
		if err != nil {
			return nil, err
		}
	}

	store := history.NewStore(histPath, history.Options{
		SaveDebounce:  cfg.SaveDebounce(),
		ProtectPinned: cfg.ProtectPinnedItems,
	})

	return &CLI{
		cfg:       cfg,
		store:     store,
		clipboard: buildClipboard(cfg),
	}, nil
}

// buildClipboard picks the configured external tool for the running
// session type, falling back to the in-process clipboard when the tool is
// not installed.
func buildClipboard(cfg *config.Config) clipboard.Clipboard {
	copyCmd, pasteCmd := cfg.CopyToolCmd, cfg.PasteSimulationCmdWayland
	if !cmdboard.IsWayland() {
		copyCmd, pasteCmd = cfg.X11CopyToolCmd, cfg.PasteSimulationCmdX11
	}
	cmd := cmdboard.New(copyCmd, pasteCmd, cfg.PasteSimulationDelay())
	if cmd.IsSupported() {
		return cmd
	}
	return sysboard.New()
}

// Execute runs the CLI command based on parsed arguments.
func (c *CLI) Execute(args *Args) error {
	if err := args.Validate(); err != nil {
		return err
	}

	switch {
	case args.List != nil:
		return c.executeList(args.List)
	case args.Copy != nil:
		return c.executeCopy(args.Copy)
	case args.Pin != nil:
		return c.executeSetPinned(args.Pin.Index, true)
	case args.Unpin != nil:
		return c.executeSetPinned(args.Unpin.Index, false)
	case args.Delete != nil:
		return c.executeDelete(args.Delete)
	default:
		return c.launchTUI()
	}
}

// load reads the history for one-shot commands, where a broken file is a
// hard error (there is no previous good collection to fall back to).
func (c *CLI) load() error {
	if err := c.store.Load(); err != nil {
		return fmt.Errorf("failed to load history: %w", err)
	}
	return nil
}

// entryAt resolves a list index (0 = newest) to an entry.
func (c *CLI) entryAt(index int) (*history.Entry, error) {
	items := c.store.Items()
	if index < 0 || index >= len(items) {
		return nil, fmt.Errorf("index %d out of range (0-%d)", index, len(items)-1)
	}
	return items[index], nil
}

func (c *CLI) executeList(cmd *ListCmd) error {
	if err := c.load(); err != nil {
		return err
	}

	items := history.Filter(c.store.Items(), cmd.Query, cmd.Pinned)
	if cmd.Limit > 0 && len(items) > cmd.Limit {
		items = items[:cmd.Limit]
	}

	for i, e := range items {
		mark := " "
		if e.Pinned {
			mark = "★"
		}
		label := e.Label()
		if e.Kind() == history.ImageKind {
			label = "🖼 " + label
		}
		fmt.Printf("%3d %s %s\n", i, mark, label)
	}
	return nil
}

func (c *CLI) executeCopy(cmd *CopyCmd) error {
	if err := c.load(); err != nil {
		return err
	}
	e, err := c.entryAt(cmd.Index)
	if err != nil {
		return err
	}

	if e.Kind() == history.ImageKind {
		err = c.clipboard.CopyImage(e.FilePath)
	} else {
		err = c.clipboard.CopyText(e.Value)
	}
	if err != nil {
		return fmt.Errorf("failed to copy: %w", err)
	}
	fmt.Println("Copied to clipboard")
	return nil
}

func (c *CLI) executeSetPinned(index int, pinned bool) error {
	if err := c.load(); err != nil {
		return err
	}
	e, err := c.entryAt(index)
	if err != nil {
		return err
	}
	if err := c.store.SetPinned(e.ID, pinned); err != nil {
		return err
	}
	// One-shot command: skip the debounce and write immediately.
	if err := c.store.FlushNow(); err != nil {
		return fmt.Errorf("failed to save history: %w", err)
	}
	if pinned {
		fmt.Println("Pinned")
	} else {
		fmt.Println("Unpinned")
	}
	return nil
}

func (c *CLI) executeDelete(cmd *DeleteCmd) error {
	if err := c.load(); err != nil {
		return err
	}
	e, err := c.entryAt(cmd.Index)
	if err != nil {
		return err
	}
	if err := c.store.Delete(e.ID); err != nil {
		return err
	}
	if err := c.store.FlushNow(); err != nil {
		return fmt.Errorf("failed to save history: %w", err)
	}
	fmt.Println("Deleted")
	return nil
}

// launchTUI opens the interactive browser. A load failure is reported but
// the browser still opens (empty), matching the always-usable policy.
func (c *CLI) launchTUI() error {
	if err := c.store.Load(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
	}

	model := tui.NewModel(c.store, c.clipboard, c.cfg)
	program := tea.NewProgram(model, tea.WithAltScreen())
	final, err := program.Run()
	if err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}

	// Edits are flushed by the model on quit; this is the belt-and-braces
	// flush for abnormal exits.
	if err := c.store.FlushNow(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to save history: %v\n", err)
	}

	// Paste simulation happens only after the terminal is restored and
	// focus has returned to the previous window.
	if m, ok := final.(*tui.Model); ok && m.PasteRequested {
		if err := c.clipboard.SimulatePaste(); err != nil {
			return fmt.Errorf("paste simulation failed: %w", err)
		}
	}
	return nil
}
