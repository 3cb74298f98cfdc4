package overrides

import (
	"github.com/phoenixcorp/lightdesk/internal/color"
)

// Serialize maps a State back to the numeric wire payload.
// Normalize(Serialize(s)) equals s for every valid s.
func Serialize(s State) Payload {
	return encode(s, func(c color.Canonical) RawColor { return color.Encode(c) })
}

// encode builds a fully populated payload, rendering colors with fn.
func encode(s State, fn func(color.Canonical) RawColor) Payload {
	colors := make(map[string]RawColor, len(s.ResourceColors))
	for t, c := range s.ResourceColors {
		colors[string(t)] = fn(c)
	}
	return Payload{
		HPRow:            intPtr(s.HPRow),
		HPFirstCol:       intPtr(s.HPFirstCol),
		HPLastCol:        intPtr(s.HPLastCol),
		ResourceRow:      intPtr(s.ResourceRow),
		ResourceFirstCol: intPtr(s.ResourceFirstCol),
		ResourceLastCol:  intPtr(s.ResourceLastCol),
		HPColor:          fn(s.HPColor),
		ResourceColor:    fn(s.ResourceColor),
		BackgroundColor:  fn(s.BackgroundColor),
		ResourceColors:   colors,
	}
}
