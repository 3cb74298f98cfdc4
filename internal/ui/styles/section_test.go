package styles

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/require"
)

func TestRenderFormSection(t *testing.T) {
	focusColor := lipgloss.Color("#54A0FF")

	tests := []struct {
		name           string
		content        []string
		title          string
		hint           string
		width          int
		wantContains   []string
		wantNotContain []string
	}{
		{
			name:         "title",
			content:      []string{"  #00FF00"},
			title:        "HP",
			width:        30,
			wantContains: []string{"╭─ HP", "│", "#00FF00", "╰"},
		},
		{
			name:         "title and hint",
			content:      []string{"  input"},
			title:        "Hex",
			hint:         "#RRGGBB",
			width:        40,
			wantContains: []string{"╭─ Hex", "(#RRGGBB)", "input"},
		},
		{
			name:           "no title",
			content:        []string{"Content"},
			width:          20,
			wantContains:   []string{"╭", "╮", "Content", "╰", "╯"},
			wantNotContain: []string{"╭─ "},
		},
		{
			name:         "multiple lines",
			content:      []string{"MANA", "RAGE", "ENERGY"},
			title:        "Resources",
			width:        25,
			wantContains: []string{"MANA", "RAGE", "ENERGY"},
		},
		{
			name:         "narrow",
			content:      []string{"X"},
			title:        "T",
			width:        3,
			wantContains: []string{"╭", "╮", "X", "╰", "╯"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := RenderFormSection(tt.content, tt.title, tt.hint, tt.width, false, focusColor)
			for _, want := range tt.wantContains {
				require.Contains(t, got, want)
			}
			for _, notWant := range tt.wantNotContain {
				require.NotContains(t, got, notWant)
			}
		})
	}
}

func TestRenderFormSection_LinesShareWidth(t *testing.T) {
	got := RenderFormSection([]string{"short", "a longer line"}, "Colors", "enter", 30, false, BorderHighlightFocusColor)

	lines := strings.Split(got, "\n")
	require.Len(t, lines, 4)
	for _, line := range lines {
		require.Equal(t, 30, ansi.StringWidth(line), "line %q", line)
	}
}

func TestRenderFormSection_EmptyContent(t *testing.T) {
	got := RenderFormSection(nil, "Title", "", 30, false, BorderHighlightFocusColor)
	require.Len(t, strings.Split(got, "\n"), 2)
}

func TestRenderFormSection_FocusChangesColor(t *testing.T) {
	lipgloss.SetColorProfile(termenv.ANSI256)
	t.Cleanup(func() { lipgloss.SetColorProfile(termenv.Ascii) })

	focusColor := lipgloss.Color("#54A0FF")
	unfocused := RenderFormSection([]string{"Content"}, "Test", "", 30, false, focusColor)
	focused := RenderFormSection([]string{"Content"}, "Test", "", 30, true, focusColor)

	require.NotEqual(t, unfocused, focused)
	require.Equal(t, ansi.Strip(unfocused), ansi.Strip(focused))
}

func TestSwatch(t *testing.T) {
	require.Equal(t, "    ", Swatch("", 4))
	require.Equal(t, "", Swatch("#FF0000", 0))
	require.Equal(t, 3, ansi.StringWidth(Swatch("#FF0000", 3)))
}
