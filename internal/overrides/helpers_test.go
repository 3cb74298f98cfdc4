package overrides

import (
	"pgregory.net/rapid"

	"github.com/phoenixcorp/lightdesk/internal/color"
	"github.com/phoenixcorp/lightdesk/internal/resource"
)

// stateGen draws arbitrary valid states.
func stateGen() *rapid.Generator[State] {
	return rapid.Custom(func(t *rapid.T) State {
		col := func(label string) color.Canonical {
			return color.FromInt(int64(rapid.IntRange(0, color.Max).Draw(t, label)))
		}
		cell := func(label string) int {
			return rapid.IntRange(-64, 64).Draw(t, label)
		}
		colors := make(map[resource.Type]color.Canonical, resource.Count)
		for _, r := range resource.All() {
			colors[r] = col(string(r))
		}
		return State{
			HPRow:            cell("hpRow"),
			HPFirstCol:       cell("hpFirstCol"),
			HPLastCol:        cell("hpLastCol"),
			ResourceRow:      cell("resourceRow"),
			ResourceFirstCol: cell("resourceFirstCol"),
			ResourceLastCol:  cell("resourceLastCol"),
			HPColor:          col("hpColor"),
			ResourceColor:    col("resourceColor"),
			BackgroundColor:  col("backgroundColor"),
			ResourceColors:   colors,
		}
	})
}
