package preview

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/phoenixcorp/lightdesk/internal/color"
)

const cell = "  "

// RenderStrip draws cells as a row of colored blocks.
func RenderStrip(cells []color.Canonical) string {
	var b strings.Builder
	for _, c := range cells {
		b.WriteString(renderCell(c))
	}
	return b.String()
}

// RenderMatrix draws the keyboard, one line per row, with a one-space gap
// between keys.
func RenderMatrix(m Matrix) string {
	lines := make([]string, 0, Rows)
	for _, row := range m {
		keys := make([]string, 0, Columns)
		for _, c := range row {
			keys = append(keys, renderCell(c))
		}
		lines = append(lines, strings.Join(keys, " "))
	}
	return strings.Join(lines, "\n")
}

func renderCell(c color.Canonical) string {
	return lipgloss.NewStyle().Background(lipgloss.Color(c.String())).Render(cell)
}
