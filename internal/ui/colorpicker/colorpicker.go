// Package colorpicker provides the palette overlay used to pick a lighting color.
package colorpicker

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/phoenixcorp/lightdesk/internal/color"
	"github.com/phoenixcorp/lightdesk/internal/ui/overlay"
	"github.com/phoenixcorp/lightdesk/internal/ui/styles"
)

// PresetColor is a named palette entry.
type PresetColor struct {
	Name  string
	Color color.Canonical
}

// BarPresets are the saturated colors game bars are usually drawn in.
var BarPresets = []PresetColor{
	{Name: "Green", Color: "#00FF00"},
	{Name: "Red", Color: "#FF0000"},
	{Name: "Blue", Color: "#0000FF"},
	{Name: "Yellow", Color: "#FFFF00"},
	{Name: "Orange", Color: "#FFA500"},
	{Name: "Magenta", Color: "#FF00FF"},
	{Name: "Cyan", Color: "#00FFFF"},
	{Name: "Purple", Color: "#8000FF"},
	{Name: "Pink", Color: "#FF69B4"},
	{Name: "Lime", Color: "#80FF00"},
}

// WarmPresets are reds, oranges and golds.
var WarmPresets = []PresetColor{
	{Name: "Crimson", Color: "#DC143C"},
	{Name: "Tomato", Color: "#FF6347"},
	{Name: "Coral", Color: "#FF7F50"},
	{Name: "Amber", Color: "#FFBF00"},
	{Name: "Gold", Color: "#FFD700"},
	{Name: "Salmon", Color: "#FA8072"},
	{Name: "Rose", Color: "#FF007F"},
	{Name: "Rust", Color: "#B7410E"},
	{Name: "Brown", Color: "#8B4513"},
	{Name: "Maroon", Color: "#800000"},
}

// CoolPresets are blues, teals and violets.
var CoolPresets = []PresetColor{
	{Name: "Navy", Color: "#102040"},
	{Name: "Azure", Color: "#007FFF"},
	{Name: "Sky", Color: "#38BDF8"},
	{Name: "Teal", Color: "#008080"},
	{Name: "Aqua", Color: "#7FFFD4"},
	{Name: "Emerald", Color: "#34D399"},
	{Name: "Indigo", Color: "#4B0082"},
	{Name: "Violet", Color: "#8F00FF"},
	{Name: "Frost", Color: "#A0E0FF"},
	{Name: "Ice", Color: "#E0FFFF"},
}

// GrayscalePresets run from white to off.
var GrayscalePresets = []PresetColor{
	{Name: "White", Color: "#FFFFFF"},
	{Name: "Gray 1", Color: "#E5E5E5"},
	{Name: "Gray 2", Color: "#CCCCCC"},
	{Name: "Gray 3", Color: "#B3B3B3"},
	{Name: "Gray 4", Color: "#999999"},
	{Name: "Gray 5", Color: "#808080"},
	{Name: "Gray 6", Color: "#666666"},
	{Name: "Gray 7", Color: "#4D4D4D"},
	{Name: "Gray 8", Color: "#333333"},
	{Name: "Off", Color: "#000000"},
}

// Custom mode focus fields.
const (
	customFocusInput = iota
	customFocusSave
	customFocusCancel
)

const columnWidth = 16

// Model holds the color picker state.
type Model struct {
	title           string
	columns         [][]PresetColor
	column          int
	selected        int
	customInput     textinput.Model
	inCustomMode    bool
	customFocus     int
	showCustomError bool // set after Save with unparseable input
	viewportWidth   int
	viewportHeight  int
	boxWidth        int
}

// SelectMsg is sent when a color is chosen.
type SelectMsg struct {
	Color color.Canonical
}

// CancelMsg is sent when the picker is closed without a choice.
type CancelMsg struct{}

// New creates a color picker over the built-in palette.
func New() Model {
	ti := textinput.New()
	ti.Placeholder = "#RRGGBB"
	ti.CharLimit = 10 // "16777215" and "0xRRGGBB" fit
	ti.Width = 10
	ti.Prompt = ""

	columns := [][]PresetColor{BarPresets, WarmPresets, CoolPresets, GrayscalePresets}
	return Model{
		title:       "Select Color",
		columns:     columns,
		customInput: ti,
		boxWidth:    len(columns) * columnWidth,
	}
}

// SetSize sets the viewport dimensions for overlay rendering.
func (m Model) SetSize(width, height int) Model {
	m.viewportWidth = width
	m.viewportHeight = height
	return m
}

// SetTitle sets the heading, typically the name of the field being edited.
func (m Model) SetTitle(title string) Model {
	m.title = title
	return m
}

// SetSelected leaves custom mode and moves the cursor to c. When c is not in
// the palette the cursor goes to the first entry and the custom input is
// prefilled with c.
func (m Model) SetSelected(c color.Canonical) Model {
	m.inCustomMode = false
	m.customFocus = customFocusInput
	m.showCustomError = false
	m.customInput.Blur()
	m.customInput.SetValue("")

	for col, presets := range m.columns {
		for row, preset := range presets {
			if preset.Color == c {
				m.column = col
				m.selected = row
				return m
			}
		}
	}
	m.column = 0
	m.selected = 0
	m.customInput.SetValue(string(c))
	return m
}

// Selected returns the palette entry under the cursor.
func (m Model) Selected() PresetColor {
	if m.column >= 0 && m.column < len(m.columns) {
		presets := m.columns[m.column]
		if m.selected >= 0 && m.selected < len(presets) {
			return presets[m.selected]
		}
	}
	return PresetColor{}
}

// InCustomMode returns whether the picker is in custom entry mode.
func (m Model) InCustomMode() bool {
	return m.inCustomMode
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if m.inCustomMode {
		return m.updateCustomMode(msg)
	}
	return m.updateNormalMode(msg)
}

func (m Model) updateNormalMode(msg tea.Msg) (Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	currentColumn := m.columns[m.column]
	switch keyMsg.String() {
	case "j", "down", "ctrl+n":
		if m.selected < len(currentColumn)-1 {
			m.selected++
		}
	case "k", "up", "ctrl+p":
		if m.selected > 0 {
			m.selected--
		}
	case "h", "left":
		if m.column > 0 {
			m.column--
			m.selected = min(m.selected, len(m.columns[m.column])-1)
		}
	case "l", "right":
		if m.column < len(m.columns)-1 {
			m.column++
			m.selected = min(m.selected, len(m.columns[m.column])-1)
		}
	case "enter":
		return m, selectCmd(currentColumn[m.selected].Color)
	case "esc":
		return m, cancelCmd()
	case "c":
		m.inCustomMode = true
		m.customFocus = customFocusInput
		m.customInput.Focus()
		return m, textinput.Blink
	}
	return m, nil
}

func (m Model) updateCustomMode(msg tea.Msg) (Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		key := keyMsg.String()
		onInput := m.customFocus == customFocusInput

		switch {
		case key == "enter":
			return m.submitCustom()
		case key == "esc":
			return m.leaveCustomMode(), nil
		case key == "tab" || key == "down" || key == "ctrl+n" || (key == "j" && !onInput):
			return m.moveCustomFocus(1)
		case key == "shift+tab" || key == "up" || key == "ctrl+p" || (key == "k" && !onInput):
			return m.moveCustomFocus(-1)
		case (key == "h" || key == "left") && !onInput:
			if m.customFocus == customFocusCancel {
				m.customFocus = customFocusSave
			}
			return m, nil
		case (key == "l" || key == "right") && !onInput:
			if m.customFocus == customFocusSave {
				m.customFocus = customFocusCancel
			}
			return m, nil
		}
	}

	if m.customFocus != customFocusInput {
		return m, nil
	}
	var cmd tea.Cmd
	m.customInput, cmd = m.customInput.Update(msg)
	if m.showCustomError {
		if _, ok := color.Parse(m.customInput.Value()); ok {
			m.showCustomError = false
		}
	}
	return m, cmd
}

func (m Model) submitCustom() (Model, tea.Cmd) {
	switch m.customFocus {
	case customFocusInput:
		m.customFocus = customFocusSave
		m.customInput.Blur()
		return m, nil
	case customFocusSave:
		c, ok := color.Parse(m.customInput.Value())
		if !ok {
			m.showCustomError = true
			return m, nil
		}
		return m, selectCmd(c)
	default:
		return m.leaveCustomMode(), nil
	}
}

func (m Model) leaveCustomMode() Model {
	m.inCustomMode = false
	m.customFocus = customFocusInput
	m.showCustomError = false
	m.customInput.Blur()
	return m
}

// moveCustomFocus cycles input, Save and Cancel.
func (m Model) moveCustomFocus(delta int) (Model, tea.Cmd) {
	m.customFocus = (m.customFocus + delta + 3) % 3
	if m.customFocus == customFocusInput {
		m.customInput.Focus()
		return m, textinput.Blink
	}
	m.customInput.Blur()
	return m, nil
}

// View renders the picker box.
func (m Model) View() string {
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(styles.OverlayTitleColor).
		PaddingLeft(1)
	rule := lipgloss.NewStyle().Foreground(styles.OverlayBorderColor).Render(strings.Repeat("─", m.boxWidth))

	var content strings.Builder
	if m.inCustomMode {
		content.WriteString(titleStyle.Render(m.title + " · Custom"))
		content.WriteString("\n" + rule + "\n")
		content.WriteString(m.customView())
	} else {
		content.WriteString(titleStyle.Render(m.title))
		content.WriteString("\n" + rule + "\n")
		content.WriteString(m.paletteView())
		content.WriteString("\n")
		content.WriteString(lipgloss.NewStyle().PaddingLeft(1).Foreground(styles.TextMutedColor).Render("'c' custom  h/l column  esc cancel"))
	}

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(styles.OverlayBorderColor).
		Width(m.boxWidth).
		Render(content.String())
}

func (m Model) paletteView() string {
	rows := 0
	for _, col := range m.columns {
		rows = max(rows, len(col))
	}

	columnViews := make([]string, 0, len(m.columns))
	for colIdx, presets := range m.columns {
		var col strings.Builder
		for row := range rows {
			if row >= len(presets) {
				col.WriteString(strings.Repeat(" ", columnWidth) + "\n")
				continue
			}
			preset := presets[row]
			prefix := " "
			if colIdx == m.column && row == m.selected {
				prefix = styles.SelectionIndicatorStyle.Render(">")
			}
			line := prefix + styles.Swatch(string(preset.Color), 2) + " " + preset.Name
			col.WriteString(lipgloss.NewStyle().Width(columnWidth).Render(line) + "\n")
		}
		columnViews = append(columnViews, col.String())
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, columnViews...)
}

func (m Model) customView() string {
	var content strings.Builder
	pad := lipgloss.NewStyle().PaddingLeft(1)

	inputLine := m.customInput.View()
	if c, ok := color.Parse(m.customInput.Value()); ok {
		inputLine += "  " + previewSwatch(c)
	}
	section := styles.RenderFormSection([]string{inputLine}, "Color", "#RRGGBB, 0xRRGGBB or decimal", m.boxWidth-2, m.customFocus == customFocusInput, styles.BorderHighlightFocusColor)
	content.WriteString(pad.Render(section) + "\n")

	if m.showCustomError {
		content.WriteString(pad.Foreground(styles.StatusErrorColor).Render("Not a color") + "\n")
	}

	saveStyle := styles.PrimaryButtonStyle
	if m.customFocus == customFocusSave {
		saveStyle = styles.PrimaryButtonFocusedStyle
	}
	cancelStyle := styles.SecondaryButtonStyle
	if m.customFocus == customFocusCancel {
		cancelStyle = styles.PrimaryButtonFocusedStyle
	}
	content.WriteString("\n" + pad.Render(saveStyle.Render("Save")+"  "+cancelStyle.Render("Cancel")))
	return content.String()
}

// previewSwatch shows the parsed color with its canonical form written on it.
func previewSwatch(c color.Canonical) string {
	fg := lipgloss.Color("#000000")
	if c.IsDark() {
		fg = lipgloss.Color("#FFFFFF")
	}
	return lipgloss.NewStyle().
		Background(lipgloss.Color(string(c))).
		Foreground(fg).
		Padding(0, 1).
		Render(string(c))
}

// Overlay renders the picker centered over background.
func (m Model) Overlay(background string) string {
	box := m.View()
	if background == "" {
		return lipgloss.Place(m.viewportWidth, m.viewportHeight, lipgloss.Center, lipgloss.Center, box)
	}
	return overlay.Place(overlay.Config{
		Width:    m.viewportWidth,
		Height:   m.viewportHeight,
		Position: overlay.Center,
	}, box, background)
}

func selectCmd(c color.Canonical) tea.Cmd {
	return func() tea.Msg {
		return SelectMsg{Color: c}
	}
}

func cancelCmd() tea.Cmd {
	return func() tea.Msg {
		return CancelMsg{}
	}
}
