package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"clipview/internal/history"
)

var (
	titleStyle    = lipgloss.NewStyle().Bold(true)
	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("0")).
			Background(lipgloss.Color("12"))
	pinMarkStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	timestampStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	imageStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("14"))
	statusStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	flashStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	helpBoxStyle   = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			Padding(1, 2)
)

// View renders the full screen.
func (m *Model) View() string {
	if m.mode == HelpMode {
		return m.renderHelp()
	}

	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	b.WriteString(m.renderList())
	b.WriteString("\n")
	b.WriteString(m.renderStatus())
	return b.String()
}

func (m *Model) renderHeader() string {
	header := titleStyle.Render("clipview")
	if m.pinnedOnly {
		header += pinMarkStyle.Render("  [pinned only]")
	}
	switch {
	case m.mode == SearchMode:
		header += fmt.Sprintf("  /%s█", m.input)
	case m.query != "":
		header += fmt.Sprintf("  /%s", m.query)
	}
	return header
}

// listHeight is the number of rows available for entries.
func (m *Model) listHeight() int {
	return max(m.height-3, 1)
}

func (m *Model) renderList() string {
	visible := m.view.Visible()
	if len(visible) == 0 {
		return statusStyle.Render("  (no matching items)")
	}

	// Keep the cursor inside the viewport.
	height := m.listHeight()
	top := 0
	if m.cursor >= height {
		top = m.cursor - height + 1
	}
	end := min(top+height, len(visible))

	var rows []string
	for i := top; i < end; i++ {
		rows = append(rows, m.renderRow(visible[i], i == m.cursor))
	}
	return strings.Join(rows, "\n")
}

func (m *Model) renderRow(e *history.Entry, selected bool) string {
	// Truncate the plain text before any styling so ANSI sequences are
	// never cut mid-escape.
	label := firstLine(e.Label())
	annotation := ""
	if e.Kind() == history.ImageKind {
		label = "🖼 " + label
		annotation = m.imageInfo(e.FilePath).Describe()
	}
	stamp := ""
	if t := e.Time(); !t.IsZero() {
		stamp = t.Format("Jan _2 15:04")
	}

	budget := max(m.width-2-2-len(annotation)-len(stamp)-4, 10)
	label = truncate(label, budget)

	if selected {
		mark := "  "
		if e.Pinned {
			mark = "★ "
		}
		row := "> " + mark + label
		if annotation != "" {
			row += "  " + annotation
		}
		if stamp != "" {
			row += "  " + stamp
		}
		return selectedStyle.Render(row)
	}

	row := "  " + pinMark(e)
	if e.Kind() == history.ImageKind {
		row += imageStyle.Render(label)
	} else {
		row += label
	}
	if annotation != "" {
		row += "  " + statusStyle.Render(annotation)
	}
	if stamp != "" {
		row += "  " + timestampStyle.Render(stamp)
	}
	return row
}

func pinMark(e *history.Entry) string {
	if e.Pinned {
		return pinMarkStyle.Render("★ ")
	}
	return "  "
}

func (m *Model) renderStatus() string {
	if m.mode == ConfirmDeleteMode {
		return "Delete selected item? (y/N)"
	}
	if m.flashMessage != "" && time.Now().Before(m.flashExpiry) {
		return flashStyle.Render(m.flashMessage)
	}

	status := fmt.Sprintf("%d/%d items", m.view.Revealed(), m.view.Total())
	if !m.view.Exhausted() {
		status += " (scroll for more)"
	}
	return statusStyle.Render(status + " · /search · p pin · d delete · enter copy · ? help")
}

func (m *Model) renderHelp() string {
	help := `clipview — clipse history browser

  j/k, arrows   move selection
  g/G           first / last item
  /             search (case-insensitive substring)
  tab, f        toggle pinned-only filter
  p             pin / unpin item
  d, x          delete item (y to confirm)
  c             copy item to clipboard
  enter         copy (and paste, if enter_to_paste)
  r             reload history file
  q, esc        quit

Press any key to return.`
	return helpBoxStyle.Render(help)
}

func firstLine(s string) string {
	if i := strings.IndexAny(s, "\r\n"); i >= 0 {
		s = s[:i] + " …"
	}
	return s
}

func truncate(s string, width int) string {
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	return string(runes[:width-1]) + "…"
}
