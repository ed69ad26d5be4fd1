// Package tui implements the interactive history browser: a searchable,
// incrementally revealed list over the history store, with pin/delete
// editing and copy/paste-simulation requests.
package tui

import (
	"errors"
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"clipview/internal/clipboard"
	"clipview/internal/config"
	"clipview/internal/history"
	"clipview/internal/thumbcache"
)

// UIMode represents the current modal state of the application.
type UIMode int

const (
	NormalMode UIMode = iota
	SearchMode
	ConfirmDeleteMode
	HelpMode
)

// reloadPollInterval is how often the backing file's mtime is checked for
// external daemon writes.
const reloadPollInterval = 2 * time.Second

type flashExpiredMsg struct{}

// searchDebounceMsg fires after the search input has been quiet for the
// configured delay. Seq guards against stale timers from superseded input.
type searchDebounceMsg struct {
	Seq int
}

type reloadTickMsg time.Time

// Model is the bubbletea model for the history browser.
type Model struct {
	store  *history.Store
	clip   clipboard.Clipboard
	cfg    *config.Config
	view   *history.View
	thumbs *thumbcache.Cache[ImageInfo]

	filtered   []*history.Entry
	query      string // committed (debounced) query
	input      string // live search input
	pinnedOnly bool
	cursor     int
	mode       UIMode

	width  int
	height int

	searchSeq    int
	histMtime    time.Time
	flashMessage string
	flashExpiry  time.Time

	// PasteRequested is set when the user asked for copy-and-paste; the
	// caller simulates the paste after the terminal is restored.
	PasteRequested bool
}

// NewModel builds the browser over an already-loaded store.
func NewModel(store *history.Store, clip clipboard.Clipboard, cfg *config.Config) *Model {
	m := &Model{
		store:  store,
		clip:   clip,
		cfg:    cfg,
		view:   history.NewView(cfg.InitialLoadCount, cfg.LoadBatchSize, cfg.LoadThresholdFactor),
		thumbs: thumbcache.New[ImageInfo](cfg.ImageCacheMaxSize),
		width:  80,
		height: 24,
	}
	if info, err := os.Stat(store.Path()); err == nil {
		m.histMtime = info.ModTime()
	}
	m.applyFilter()
	return m
}

// Init starts the external-change poll.
func (m *Model) Init() tea.Cmd {
	return m.reloadTick()
}

// Update handles all messages, mode-first for key presses.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case tea.KeyMsg:
		return m.handleKey(msg)
	case flashExpiredMsg:
		if time.Now().After(m.flashExpiry) {
			m.flashMessage = ""
		}
		return m, nil
	case searchDebounceMsg:
		if msg.Seq == m.searchSeq && m.query != m.input {
			m.query = m.input
			m.applyFilter()
		}
		return m, nil
	case reloadTickMsg:
		return m, tea.Batch(m.checkExternalChange(), m.reloadTick())
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.mode {
	case SearchMode:
		return m.handleSearchKey(msg)
	case ConfirmDeleteMode:
		return m.handleConfirmDeleteKey(msg)
	case HelpMode:
		return m.handleHelpKey(msg)
	default:
		return m.handleNormalKey(msg)
	}
}

func (m *Model) handleNormalKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q", "esc":
		return m, m.quit()
	case "?":
		m.mode = HelpMode
		return m, nil
	case "/":
		m.mode = SearchMode
		m.input = m.query
		return m, nil
	case "j", "down":
		m.moveCursor(1)
		return m, nil
	case "k", "up":
		m.moveCursor(-1)
		return m, nil
	case "ctrl+d", "pgdown":
		m.moveCursor(m.pageSize())
		return m, nil
	case "ctrl+u", "pgup":
		m.moveCursor(-m.pageSize())
		return m, nil
	case "g", "home":
		m.cursor = 0
		return m, nil
	case "G", "end":
		m.moveCursor(m.view.Total())
		return m, nil
	case "tab", "f":
		m.pinnedOnly = !m.pinnedOnly
		m.applyFilter()
		return m, nil
	case "p":
		return m, m.togglePin()
	case "d", "x", "backspace":
		if m.selected() != nil {
			m.mode = ConfirmDeleteMode
		}
		return m, nil
	case "c":
		return m, m.copySelected()
	case "r":
		return m, m.reloadNow()
	case "enter":
		cmd := m.copySelected()
		if m.cfg.EnterToPaste && m.selected() != nil {
			m.PasteRequested = true
			return m, tea.Sequence(cmd, m.quit())
		}
		return m, cmd
	}
	return m, nil
}

func (m *Model) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, m.quit()
	case "esc":
		// Cancel: drop the live input, keep the committed query.
		m.mode = NormalMode
		m.input = m.query
		return m, nil
	case "enter":
		m.mode = NormalMode
		if m.query != m.input {
			m.query = m.input
			m.applyFilter()
		}
		return m, nil
	case "backspace", "ctrl+h":
		if len(m.input) > 0 {
			m.input = m.input[:len(m.input)-1]
			return m, m.scheduleSearch()
		}
		return m, nil
	default:
		if msg.Type == tea.KeyRunes {
			m.input += string(msg.Runes)
			return m, m.scheduleSearch()
		}
		if msg.String() == " " {
			m.input += " "
			return m, m.scheduleSearch()
		}
		return m, nil
	}
}

func (m *Model) handleConfirmDeleteKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, m.quit()
	case "y", "Y":
		m.mode = NormalMode
		return m, m.deleteSelected()
	default:
		m.mode = NormalMode
		return m, nil
	}
}

func (m *Model) handleHelpKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, m.quit()
	default:
		m.mode = NormalMode
		return m, nil
	}
}

// applyFilter recomputes the derived view from the store and resets the
// reveal window. Called on every query, pin-filter, or collection change.
func (m *Model) applyFilter() {
	m.filtered = history.Filter(m.store.Items(), m.query, m.pinnedOnly)
	m.view.Reset(m.filtered)
	if m.cursor >= m.view.Revealed() {
		m.cursor = max(m.view.Revealed()-1, 0)
	}
}

// moveCursor shifts the selection and grows the reveal window when the
// cursor crosses the load threshold near the bottom.
func (m *Model) moveCursor(delta int) {
	m.cursor += delta
	if m.cursor < 0 {
		m.cursor = 0
	}
	for m.cursor >= m.view.Revealed() && m.view.LoadMore() {
	}
	if m.cursor >= m.view.Revealed() {
		m.cursor = max(m.view.Revealed()-1, 0)
	}
	if m.view.ShouldLoadMore(float64(m.cursor+1), float64(m.view.Revealed())) {
		m.view.LoadMore()
	}
}

func (m *Model) pageSize() int {
	return max(m.listHeight(), 1)
}

// selected returns the entry under the cursor, or nil.
func (m *Model) selected() *history.Entry {
	visible := m.view.Visible()
	if m.cursor < 0 || m.cursor >= len(visible) {
		return nil
	}
	return visible[m.cursor]
}

func (m *Model) togglePin() tea.Cmd {
	e := m.selected()
	if e == nil {
		return nil
	}
	newState := !e.Pinned
	if err := m.store.SetPinned(e.ID, newState); err != nil && !errors.Is(err, history.ErrNotFound) {
		return m.flash(fmt.Sprintf("Save failed: %v", err))
	}
	var cmd tea.Cmd
	if newState {
		cmd = m.flash("Item pinned")
	} else {
		cmd = m.flash("Item unpinned")
	}
	// Unpinning under the pinned filter removes the row from view.
	if m.pinnedOnly {
		m.applyFilter()
	}
	return cmd
}

func (m *Model) deleteSelected() tea.Cmd {
	e := m.selected()
	if e == nil {
		return nil
	}
	err := m.store.Delete(e.ID)
	switch {
	case errors.Is(err, history.ErrProtectedItem):
		return m.flash("Item is pinned (deletion protected)")
	case errors.Is(err, history.ErrNotFound):
		// Collection changed underneath us; refresh the view.
	case err != nil:
		m.applyFilter()
		return m.flash(fmt.Sprintf("Save failed: %v", err))
	}
	if e.Kind() == history.ImageKind {
		m.thumbs.Invalidate(e.FilePath)
	}
	m.applyFilter()
	return m.flash("Item deleted")
}

func (m *Model) copySelected() tea.Cmd {
	e := m.selected()
	if e == nil {
		return m.flash("No item selected")
	}
	var err error
	if e.Kind() == history.ImageKind {
		err = m.clip.CopyImage(e.FilePath)
	} else {
		err = m.clip.CopyText(e.Value)
	}
	if err != nil {
		return m.flash(fmt.Sprintf("Copy failed: %v", err))
	}
	return m.flash("Copied to clipboard")
}

// scheduleSearch re-arms the search input debounce; superseded timers are
// recognized by their stale sequence number.
func (m *Model) scheduleSearch() tea.Cmd {
	m.searchSeq++
	seq := m.searchSeq
	return tea.Tick(m.cfg.SearchDebounce(), func(time.Time) tea.Msg {
		return searchDebounceMsg{Seq: seq}
	})
}

func (m *Model) reloadTick() tea.Cmd {
	return tea.Tick(reloadPollInterval, func(t time.Time) tea.Msg {
		return reloadTickMsg(t)
	})
}

// checkExternalChange reloads the store when the daemon has rewritten the
// history file since we last looked.
func (m *Model) checkExternalChange() tea.Cmd {
	info, err := os.Stat(m.store.Path())
	if err != nil || !info.ModTime().After(m.histMtime) {
		return nil
	}
	m.histMtime = info.ModTime()
	return m.reloadNow()
}

func (m *Model) reloadNow() tea.Cmd {
	if err := m.store.Reload(); err != nil {
		// Keep showing the previous good collection.
		return m.flash(fmt.Sprintf("Reload failed: %v", err))
	}
	m.applyFilter()
	return nil
}

func (m *Model) flash(message string) tea.Cmd {
	m.flashMessage = message
	m.flashExpiry = time.Now().Add(2 * time.Second)
	return tea.Tick(2*time.Second, func(time.Time) tea.Msg {
		return flashExpiredMsg{}
	})
}

// quit flushes pending edits before stopping the program so no debounced
// save is lost.
func (m *Model) quit() tea.Cmd {
	if err := m.store.FlushNow(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to save history: %v\n", err)
	}
	return tea.Quit
}
