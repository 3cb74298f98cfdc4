package app

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/phoenixcorp/lightdesk/internal/color"
	"github.com/phoenixcorp/lightdesk/internal/overrides"
	"github.com/phoenixcorp/lightdesk/internal/preview"
	"github.com/phoenixcorp/lightdesk/internal/ui/styles"
)

const (
	panelMinWidth = 48
	labelWidth    = 30
)

// View implements tea.Model.
func (m Model) View() string {
	width := max(m.width, panelMinWidth)

	sections := []string{
		m.headerView(),
		m.colorsView(width),
		m.previewView(width),
		m.statusView(),
	}
	if m.showHelp {
		sections = append(sections, m.help.FullHelpView(m.keys.FullHelp()))
	} else {
		sections = append(sections, m.help.ShortHelpView(m.keys.ShortHelp()))
	}
	view := strings.Join(sections, "\n")

	if m.pickerOpen {
		view = m.picker.Overlay(view)
	}
	if m.toaster.Visible() {
		view = m.toaster.Overlay(view, m.width, m.height)
	}
	if m.debugMode && m.logOverlay.Visible() {
		view = m.logOverlay.Overlay(view)
	}
	return view
}

func (m Model) headerView() string {
	title := styles.TitleStyle.Render("lightdesk")

	state := lipgloss.NewStyle().Foreground(styles.StoppedColor).Render("○ stopped")
	if m.snapshot.Running {
		state = lipgloss.NewStyle().Foreground(styles.RunningColor).Render("● running")
	}

	parts := []string{title, state}
	if m.snapshot.Loading {
		parts = append(parts, styles.HintStyle.Render("loading…"))
	}
	if m.snapshot.Saving {
		parts = append(parts, lipgloss.NewStyle().Foreground(styles.SavingColor).Render("saving…"))
	}
	return " " + strings.Join(parts, "  ")
}

func (m Model) colorsView(width int) string {
	s := m.snapshot.State
	lines := make([]string, 0, len(m.rows)+1)
	for i, row := range m.rows {
		if i == len(overrides.ColorFields()) {
			lines = append(lines, styles.HintStyle.Render("  Per-resource colors"))
		}
		lines = append(lines, m.colorLine(row, row.value(s), i == m.cursor))
	}
	return styles.RenderFormSection(lines, "Colors", "enter to edit", width, !m.pickerOpen, styles.BorderHighlightFocusColor)
}

func (m Model) colorLine(row fieldRow, c color.Canonical, selected bool) string {
	prefix := "  "
	if selected {
		prefix = styles.SelectionIndicatorStyle.Render(">") + " "
	}
	label := lipgloss.NewStyle().Width(labelWidth).Render(styles.LabelStyle.Render(row.label()))
	return prefix + label + styles.Swatch(string(c), 4) + " " + string(c)
}

func (m Model) previewView(width int) string {
	s := m.snapshot.State
	hpZone, resZone := s.Zone(overrides.ZoneHP), s.Zone(overrides.ZoneResource)

	var lines []string
	if m.keyboardView {
		matrix := preview.Keyboard(s, m.hpPercent, m.resourcePercent)
		lines = strings.Split(preview.RenderMatrix(matrix), "\n")
	} else {
		lines = []string{
			m.sliderLine("HP", sliderHP, m.hpPercent, s.HPColor, s.BackgroundColor),
			m.sliderLine("Resource", sliderResource, m.resourcePercent, s.ResourceColor, s.BackgroundColor),
		}
	}
	lines = append(lines, "",
		styles.HintStyle.Render(fmt.Sprintf("  HP zone: row %d, keys %d-%d   Resource zone: row %d, keys %d-%d",
			hpZone.Row, hpZone.FirstCol, hpZone.LastCol, resZone.Row, resZone.FirstCol, resZone.LastCol)))

	hint := "tab slider, h/l adjust, v keyboard"
	return styles.RenderFormSection(lines, "Preview", hint, width, false, styles.BorderHighlightFocusColor)
}

func (m Model) sliderLine(name string, slider int, percent float64, active, bg color.Canonical) string {
	prefix := "  "
	if m.slider == slider {
		prefix = styles.SelectionIndicatorStyle.Render(">") + " "
	}
	label := lipgloss.NewStyle().Width(10).Render(name)
	pct := lipgloss.NewStyle().Width(6).Render(fmt.Sprintf("%.0f%%", percent))
	return prefix + label + pct + preview.RenderStrip(preview.Strip(percent, m.previewWidth, active, bg))
}

func (m Model) statusView() string {
	status := m.snapshot.Status
	if status == "" {
		return ""
	}
	return styles.StatusBarStyle.Render(status)
}
