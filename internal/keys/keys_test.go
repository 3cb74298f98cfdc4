package keys

import (
	"testing"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"
)

func TestDefaultKeyMap_Assignments(t *testing.T) {
	k := DefaultKeyMap()

	tests := []struct {
		name    string
		binding key.Binding
		keys    []string
	}{
		{"Edit", k.Edit, []string{"enter", "e"}},
		{"Preset", k.Preset, []string{"p"}},
		{"Reset", k.Reset, []string{"R"}},
		{"Reload", k.Reload, []string{"ctrl+r"}},
		{"Start", k.Start, []string{"s"}},
		{"Stop", k.Stop, []string{"x"}},
		{"DefineArea", k.DefineArea, []string{"a"}},
		{"Quit", k.Quit, []string{"q", "ctrl+c"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.keys, tt.binding.Keys())
			require.NotEmpty(t, tt.binding.Help().Desc)
		})
	}
}

func TestDefaultKeyMap_Matches(t *testing.T) {
	k := DefaultKeyMap()

	require.True(t, key.Matches(tea.KeyMsg{Type: tea.KeyEnter}, k.Edit))
	require.True(t, key.Matches(tea.KeyMsg{Type: tea.KeyCtrlR}, k.Reload))
	require.True(t, key.Matches(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'+'}}, k.SliderUp))
	require.True(t, key.Matches(tea.KeyMsg{Type: tea.KeyLeft}, k.SliderDown))
	require.False(t, key.Matches(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'r'}}, k.Reset))
}

func TestDefaultKeyMap_NoConflicts(t *testing.T) {
	k := DefaultKeyMap()
	seen := map[string]string{}

	for name, b := range map[string]key.Binding{
		"Up": k.Up, "Down": k.Down, "Edit": k.Edit, "Preset": k.Preset,
		"Reset": k.Reset, "Reload": k.Reload, "SliderFocus": k.SliderFocus,
		"SliderDown": k.SliderDown, "SliderUp": k.SliderUp, "Keyboard": k.Keyboard,
		"Start": k.Start, "Stop": k.Stop, "DefineArea": k.DefineArea,
		"Help": k.Help, "Logs": k.Logs, "Escape": k.Escape, "Quit": k.Quit,
	} {
		for _, kk := range b.Keys() {
			other, dup := seen[kk]
			require.False(t, dup, "%q bound to both %s and %s", kk, name, other)
			seen[kk] = name
		}
	}
}

func TestHelp(t *testing.T) {
	k := DefaultKeyMap()

	require.Contains(t, k.ShortHelp(), k.Quit)

	total := 0
	for _, group := range k.FullHelp() {
		require.NotEmpty(t, group)
		total += len(group)
	}
	require.Equal(t, 17, total)
}
