// Package keys contains keybinding definitions.
package keys

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the keybindings of the overrides editor.
type KeyMap struct {
	// Navigation
	Up   key.Binding
	Down key.Binding

	// Editing
	Edit   key.Binding
	Preset key.Binding
	Reset  key.Binding
	Reload key.Binding

	// Preview sliders
	SliderFocus key.Binding
	SliderDown  key.Binding
	SliderUp    key.Binding
	Keyboard    key.Binding

	// Lighting service
	Start      key.Binding
	Stop       key.Binding
	DefineArea key.Binding

	// General
	Help   key.Binding
	Logs   key.Binding
	Escape key.Binding
	Quit   key.Binding
}

// DefaultKeyMap returns the default keybindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		// Navigation
		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/↑", "move up"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/↓", "move down"),
		),

		// Editing
		Edit: key.NewBinding(
			key.WithKeys("enter", "e"),
			key.WithHelp("enter", "edit color"),
		),
		Preset: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "apply WoW preset"),
		),
		Reset: key.NewBinding(
			key.WithKeys("R"),
			key.WithHelp("R", "reset colors"),
		),
		Reload: key.NewBinding(
			key.WithKeys("ctrl+r"),
			key.WithHelp("ctrl+r", "reload overrides"),
		),

		// Preview sliders
		SliderFocus: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "switch slider"),
		),
		SliderDown: key.NewBinding(
			key.WithKeys("h", "left", "-"),
			key.WithHelp("h/←", "decrease"),
		),
		SliderUp: key.NewBinding(
			key.WithKeys("l", "right", "+"),
			key.WithHelp("l/→", "increase"),
		),
		Keyboard: key.NewBinding(
			key.WithKeys("v"),
			key.WithHelp("v", "toggle keyboard view"),
		),

		// Lighting service
		Start: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "start lighting"),
		),
		Stop: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "stop lighting"),
		),
		DefineArea: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "define capture area"),
		),

		// General
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "toggle help"),
		),
		Logs: key.NewBinding(
			key.WithKeys("ctrl+l"),
			key.WithHelp("ctrl+l", "toggle logs (debug)"),
		),
		Escape: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "close"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ShortHelp returns keybindings for the short help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Edit, k.Start, k.Stop, k.Help, k.Quit}
}

// FullHelp returns keybindings for the full help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Edit},                                // Navigation
		{k.Preset, k.Reset, k.Reload},                         // Editing
		{k.SliderFocus, k.SliderDown, k.SliderUp, k.Keyboard}, // Preview
		{k.Start, k.Stop, k.DefineArea},                       // Lighting
		{k.Help, k.Logs, k.Escape, k.Quit},                    // General
	}
}
