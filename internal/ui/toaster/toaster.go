// Package toaster provides the notification toast shown over the editor.
package toaster

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/phoenixcorp/lightdesk/internal/ui/overlay"
	"github.com/phoenixcorp/lightdesk/internal/ui/styles"
)

// DefaultDuration is how long a toast stays up when shown with ShowTimed.
const DefaultDuration = 3 * time.Second

// Style determines the visual appearance of the toast.
type Style int

const (
	// StyleSuccess shows ✅ with a green border.
	StyleSuccess Style = iota
	// StyleError shows ❌ with a red border.
	StyleError
	// StyleInfo shows ℹ️ with a blue border.
	StyleInfo
)

// Model holds the toaster state.
type Model struct {
	message string
	style   Style
	visible bool
	id      int // bumped on every Show so stale dismissals are ignored
}

// New creates a new toaster model.
func New() Model {
	return Model{}
}

// Show displays a toast with the given message and style, replacing any
// toast already showing.
func (m Model) Show(message string, style Style) Model {
	m.id++
	m.message = message
	m.style = style
	m.visible = true
	return m
}

// ShowTimed shows the toast and returns the command that dismisses it after d.
func (m Model) ShowTimed(message string, style Style, d time.Duration) (Model, tea.Cmd) {
	m = m.Show(message, style)
	return m, ScheduleDismiss(m.id, d)
}

// Hide dismisses the toast.
func (m Model) Hide() Model {
	m.visible = false
	m.message = ""
	return m
}

// Dismiss hides the toast only if msg was scheduled for the toast currently
// showing.
func (m Model) Dismiss(msg DismissMsg) Model {
	if msg.ID != m.id {
		return m
	}
	return m.Hide()
}

// Visible returns whether the toast is currently showing.
func (m Model) Visible() bool {
	return m.visible
}

// View renders the toast box.
func (m Model) View() string {
	if !m.visible || m.message == "" {
		return ""
	}

	style := lipgloss.NewStyle().
		Padding(0, 1).
		Border(lipgloss.RoundedBorder())

	var content string
	switch m.style {
	case StyleError:
		style = style.BorderForeground(styles.ToastBorderErrorColor)
		content = "❌ " + m.message
	case StyleInfo:
		style = style.BorderForeground(styles.ToastBorderInfoColor)
		content = "ℹ️ " + m.message
	default:
		style = style.BorderForeground(styles.ToastBorderSuccessColor)
		content = "✅ " + m.message
	}

	return style.Render(content)
}

// Overlay renders the toast at the bottom center of bg.
func (m Model) Overlay(bg string, width, height int) string {
	if !m.visible || m.message == "" {
		return bg
	}

	return overlay.Place(overlay.Config{
		Width:    width,
		Height:   height,
		Position: overlay.Bottom,
		PadY:     1,
	}, m.View(), bg)
}

// DismissMsg signals that the toast with ID should be dismissed.
type DismissMsg struct {
	ID int
}

// ScheduleDismiss returns a command that dismisses toast id after a duration.
func ScheduleDismiss(id int, d time.Duration) tea.Cmd {
	return tea.Tick(d, func(_ time.Time) tea.Msg {
		return DismissMsg{ID: id}
	})
}
