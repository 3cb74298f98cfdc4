// Package preview simulates how the keyboard bars light up for a given HP and
// resource percentage, without talking to the lighting service.
package preview

import (
	"math"

	"github.com/phoenixcorp/lightdesk/internal/color"
	"github.com/phoenixcorp/lightdesk/internal/overrides"
)

// Keyboard grid of the lighting backend.
const (
	Rows    = 6
	Columns = 22
)

// FillCount returns how many of width cells are lit at percent.
// percent is clamped to [0, 100]; halves round up.
func FillCount(percent float64, width int) int {
	if width <= 0 || math.IsNaN(percent) {
		return 0
	}
	percent = min(max(percent, 0), 100)
	return int(math.Floor(percent/100*float64(width) + 0.5))
}

// Strip returns width cells: the first FillCount(percent, width) in active,
// the rest in background.
func Strip(percent float64, width int, active, background color.Canonical) []color.Canonical {
	if width <= 0 {
		return nil
	}
	fill := FillCount(percent, width)
	cells := make([]color.Canonical, width)
	for i := range cells {
		if i < fill {
			cells[i] = active
		} else {
			cells[i] = background
		}
	}
	return cells
}

// Matrix is a Rows x Columns grid of key colors.
type Matrix [Rows][Columns]color.Canonical

// Keyboard lays out the whole keyboard for s: every key in the background
// color, then the HP and resource bars on their zones. Zones on rows outside
// the grid are skipped and columns are clamped to it. The resource bar is
// drawn last, so it wins where the zones overlap.
func Keyboard(s overrides.State, hpPercent, resourcePercent float64) Matrix {
	var m Matrix
	for r := range m {
		for c := range m[r] {
			m[r][c] = s.BackgroundColor
		}
	}
	drawBar(&m, s.Zone(overrides.ZoneHP), hpPercent, s.HPColor, s.BackgroundColor)
	drawBar(&m, s.Zone(overrides.ZoneResource), resourcePercent, s.ResourceColor, s.BackgroundColor)
	return m
}

func drawBar(m *Matrix, zone overrides.Range, percent float64, active, background color.Canonical) {
	if zone.Row < 0 || zone.Row >= Rows {
		return
	}
	zone.FirstCol = max(zone.FirstCol, 0)
	zone.LastCol = min(zone.LastCol, Columns-1)
	width := zone.Width()
	if width == 0 {
		return
	}
	for i, cell := range Strip(percent, width, active, background) {
		m[zone.Row][zone.FirstCol+i] = cell
	}
}
