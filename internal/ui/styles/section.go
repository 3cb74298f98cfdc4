package styles

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Rounded border pieces drawn by RenderFormSection.
const (
	borderTopLeft     = "╭"
	borderTopRight    = "╮"
	borderBottomLeft  = "╰"
	borderBottomRight = "╯"
	borderHorizontal  = "─"
	borderVertical    = "│"
)

// RenderFormSection renders content inside a rounded border with the title
// and optional hint inlined in the top edge:
//
//	╭─ Title (hint) ─────╮
//	│content             │
//	╰────────────────────╯
//
// The border takes focusedBorderColor when focused and BorderDefaultColor
// otherwise. Used by the color picker and the editor panels.
func RenderFormSection(content []string, title, hint string, width int, focused bool, focusedBorderColor lipgloss.TerminalColor) string {
	var borderColor lipgloss.TerminalColor = BorderDefaultColor
	if focused {
		borderColor = focusedBorderColor
	}
	borderStyle := lipgloss.NewStyle().Foreground(borderColor)

	innerWidth := max(width-2, 1)

	lines := make([]string, 0, len(content)+2)
	lines = append(lines, sectionTop(title, hint, innerWidth, borderStyle, borderColor))
	for _, row := range content {
		padding := strings.Repeat(" ", max(innerWidth-lipgloss.Width(row), 0))
		lines = append(lines, borderStyle.Render(borderVertical)+row+padding+borderStyle.Render(borderVertical))
	}
	lines = append(lines, borderStyle.Render(borderBottomLeft+strings.Repeat(borderHorizontal, innerWidth)+borderBottomRight))

	return strings.Join(lines, "\n")
}

func sectionTop(title, hint string, innerWidth int, borderStyle lipgloss.Style, titleColor lipgloss.TerminalColor) string {
	if title == "" {
		return borderStyle.Render(borderTopLeft + strings.Repeat(borderHorizontal, innerWidth) + borderTopRight)
	}

	label := title
	if hint != "" {
		label = title + " (" + hint + ")"
	}
	// "─ " before the label and " " after it
	dashes := max(innerWidth-lipgloss.Width(label)-3, 0)

	top := borderStyle.Render(borderTopLeft+borderHorizontal+" ") +
		lipgloss.NewStyle().Bold(true).Foreground(titleColor).Render(title)
	if hint != "" {
		top += " " + HintStyle.Render("("+hint+")")
	}
	return top + borderStyle.Render(" "+strings.Repeat(borderHorizontal, dashes)+borderTopRight)
}
