package logoverlay

import (
	"fmt"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"

	"github.com/phoenixcorp/lightdesk/internal/log"
)

const (
	debugEntry = "2026-10-19T10:00:00 [DEBUG] [cache] cache hit key=overrides\n"
	infoEntry  = "2026-10-19T10:00:01 [INFO] [sync] Overrides loaded revision=1\n"
	errorEntry = "2026-10-19T10:00:02 [ERROR] [api] persist failed error=connection refused\n"
)

func visible(t *testing.T) Model {
	t.Helper()
	m := New()
	m.SetSize(120, 40)
	m.Toggle()
	require.True(t, m.Visible())
	return m
}

func key(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestNew_Hidden(t *testing.T) {
	m := New()
	require.False(t, m.Visible())
	require.Empty(t, m.View())
	require.Equal(t, "bg", m.Overlay("bg"))
}

func TestAppend_TrimsNewlineAndBounds(t *testing.T) {
	m := New()
	for i := range MaxEntries + 10 {
		m.Append(fmt.Sprintf("[INFO] entry %d\n", i))
	}

	entries := m.Entries()
	require.Len(t, entries, MaxEntries)
	require.Equal(t, "[INFO] entry 10", entries[0])
	require.Equal(t, fmt.Sprintf("[INFO] entry %d", MaxEntries+9), entries[len(entries)-1])
}

func TestView_ShowsEntries(t *testing.T) {
	m := visible(t)
	m.Append(infoEntry)
	m.Append(errorEntry)

	view := m.View()
	require.Contains(t, view, "Logs")
	require.Contains(t, view, "Overrides loaded")
	require.Contains(t, view, "persist failed")
	require.Contains(t, view, "[e] Error")
}

func TestView_Empty(t *testing.T) {
	require.Contains(t, visible(t).View(), "No logs to display")
}

func TestUpdate_LevelFilter(t *testing.T) {
	m := visible(t)
	m.Append(debugEntry)
	m.Append(infoEntry)
	m.Append(errorEntry)

	m, _ = m.Update(key("w"))
	view := m.View()
	require.NotContains(t, view, "cache hit")
	require.NotContains(t, view, "Overrides loaded")
	require.Contains(t, view, "persist failed")

	m, _ = m.Update(key("d"))
	require.Contains(t, m.View(), "cache hit")
}

func TestUpdate_Clear(t *testing.T) {
	m := visible(t)
	m.Append(infoEntry)

	m, _ = m.Update(key("c"))
	require.Empty(t, m.Entries())
}

func TestUpdate_Close(t *testing.T) {
	m := visible(t)

	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	require.False(t, m.Visible())
	require.NotNil(t, cmd)
	require.Equal(t, CloseMsg{}, cmd())
}

func TestUpdate_IgnoredWhenHidden(t *testing.T) {
	m := New()
	m.Append(infoEntry)

	m, cmd := m.Update(key("c"))
	require.Nil(t, cmd)
	require.Len(t, m.Entries(), 1)
}

func TestLevelOf(t *testing.T) {
	require.Equal(t, log.LevelDebug, levelOf(debugEntry))
	require.Equal(t, log.LevelInfo, levelOf(infoEntry))
	require.Equal(t, log.LevelError, levelOf(errorEntry))
	require.Equal(t, log.LevelWarn, levelOf("x [WARN] y"))
	require.Equal(t, log.LevelError, levelOf("untagged"))
}

func TestColorize_Truncates(t *testing.T) {
	got := colorize(strings.Repeat("x", 100), 20)
	require.Contains(t, got, "...")
	require.NotContains(t, got, strings.Repeat("x", 18))
}

func TestOverlay_Visible(t *testing.T) {
	m := visible(t)
	bg := strings.TrimSuffix(strings.Repeat(strings.Repeat(" ", 120)+"\n", 40), "\n")

	got := m.Overlay(bg)
	require.Contains(t, got, "Logs")
	require.Len(t, strings.Split(got, "\n"), 40)
}
