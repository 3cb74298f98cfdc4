// Package logoverlay provides the debug log viewer shown over the editor.
// It is fed by log.LogEvent messages and keeps the most recent entries.
package logoverlay

import (
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/phoenixcorp/lightdesk/internal/log"
	"github.com/phoenixcorp/lightdesk/internal/ui/overlay"
	"github.com/phoenixcorp/lightdesk/internal/ui/styles"
)

const (
	// MaxEntries bounds the in-memory history.
	MaxEntries = 500

	viewportMaxHeight = 20
	viewportMinHeight = 5
	boxMaxWidth       = 140
	boxMinWidth       = 40
)

// CloseMsg is sent when the overlay closes itself.
type CloseMsg struct{}

// Model is the log overlay state.
type Model struct {
	visible  bool
	minLevel log.Level
	entries  []string
	width    int
	height   int
	viewport viewport.Model
}

// New creates a hidden log overlay.
func New() Model {
	return Model{minLevel: log.LevelDebug}
}

// Append records a log entry, dropping the oldest past MaxEntries.
func (m *Model) Append(entry string) {
	m.entries = append(m.entries, strings.TrimSuffix(entry, "\n"))
	if over := len(m.entries) - MaxEntries; over > 0 {
		m.entries = append([]string(nil), m.entries[over:]...)
	}
	if m.visible {
		m.refreshViewport()
		m.viewport.GotoBottom()
	}
}

// Entries returns the recorded entries, oldest first.
func (m Model) Entries() []string {
	return m.entries
}

// Update handles keys while visible.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if !m.visible {
		return m, nil
	}

	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch keyMsg.String() {
	case "c":
		m.entries = nil
	case "d":
		m.minLevel = log.LevelDebug
	case "i":
		m.minLevel = log.LevelInfo
	case "w":
		m.minLevel = log.LevelWarn
	case "e":
		m.minLevel = log.LevelError
	case "j", "down":
		m.viewport.ScrollDown(1)
		return m, nil
	case "k", "up":
		m.viewport.ScrollUp(1)
		return m, nil
	case "g":
		m.viewport.GotoTop()
		return m, nil
	case "G":
		m.viewport.GotoBottom()
		return m, nil
	case "ctrl+c":
		return m, tea.Quit
	case "ctrl+l", "esc":
		m.visible = false
		return m, func() tea.Msg { return CloseMsg{} }
	default:
		return m, nil
	}
	m.refreshViewport()
	return m, nil
}

// View renders the overlay box.
func (m Model) View() string {
	if !m.visible {
		return ""
	}

	width := m.boxWidth()
	divider := lipgloss.NewStyle().Foreground(styles.OverlayBorderColor).Render(strings.Repeat("─", width))
	title := lipgloss.NewStyle().Bold(true).Foreground(styles.OverlayTitleColor).PaddingLeft(1).Render("Logs")

	body := strings.Join([]string{title, divider, m.viewport.View(), divider, m.filterHint()}, "\n")

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(styles.OverlayBorderColor).
		Width(width).
		Render(body)
}

// Overlay renders the log box centered over bg.
func (m Model) Overlay(bg string) string {
	if !m.visible {
		return bg
	}
	return overlay.Place(overlay.Config{
		Width:    m.width,
		Height:   m.height,
		Position: overlay.Center,
	}, m.View(), bg)
}

// Visible returns whether the overlay is showing.
func (m Model) Visible() bool {
	return m.visible
}

// Toggle shows or hides the overlay.
func (m *Model) Toggle() {
	m.visible = !m.visible
	if m.visible {
		m.refreshViewport()
		m.viewport.GotoBottom()
	}
}

// SetSize records the screen size.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.refreshViewport()
}

func (m Model) boxWidth() int {
	return max(min(m.width-4, boxMaxWidth), boxMinWidth)
}

func (m *Model) refreshViewport() {
	if m.width == 0 || m.height == 0 {
		return
	}
	contentWidth := m.boxWidth() - 2
	// title, two dividers, hint and the border take 6 lines
	height := max(min(viewportMaxHeight, m.height-6), viewportMinHeight)

	offset := m.viewport.YOffset
	m.viewport = viewport.New(contentWidth, height)
	m.viewport.SetContent(m.content(contentWidth))
	m.viewport.SetYOffset(offset)
}

func (m Model) content(width int) string {
	var lines []string
	for _, entry := range m.entries {
		if levelOf(entry) >= m.minLevel {
			lines = append(lines, colorize(entry, width))
		}
	}
	if len(lines) == 0 {
		return lipgloss.NewStyle().Foreground(styles.TextMutedColor).Italic(true).Render("No logs to display")
	}
	return strings.Join(lines, "\n")
}

// levelOf reads the level tag written by the logger. Untagged lines count as
// errors so they are never filtered out.
func levelOf(entry string) log.Level {
	for _, l := range []log.Level{log.LevelDebug, log.LevelInfo, log.LevelWarn, log.LevelError} {
		if strings.Contains(entry, "["+l.String()+"]") {
			return l
		}
	}
	return log.LevelError
}

func colorize(entry string, width int) string {
	if ansi.StringWidth(entry) > width {
		entry = ansi.Truncate(entry, width-3, "...")
	}

	var fg lipgloss.TerminalColor
	switch levelOf(entry) {
	case log.LevelDebug:
		fg = styles.TextMutedColor
	case log.LevelInfo:
		fg = styles.ToastBorderInfoColor
	case log.LevelWarn:
		fg = styles.StatusWarningColor
	default:
		fg = styles.StatusErrorColor
	}
	return lipgloss.NewStyle().Foreground(fg).Render(entry)
}

func (m Model) filterHint() string {
	hint := lipgloss.NewStyle().Foreground(styles.TextMutedColor)
	active := lipgloss.NewStyle().Foreground(styles.TextPrimaryColor).Bold(true)

	parts := []string{hint.Render("[c] Clear")}
	for _, f := range []struct {
		level log.Level
		label string
	}{
		{log.LevelDebug, "[d] Debug"},
		{log.LevelInfo, "[i] Info"},
		{log.LevelWarn, "[w] Warn"},
		{log.LevelError, "[e] Error"},
	} {
		if f.level == m.minLevel {
			parts = append(parts, active.Render(f.label))
		} else {
			parts = append(parts, hint.Render(f.label))
		}
	}
	return strings.Join(parts, "  ")
}
