package overrides

import (
	"github.com/phoenixcorp/lightdesk/internal/color"
	"github.com/phoenixcorp/lightdesk/internal/resource"
)

// Mutator computes the next state from the current one. Mutators never
// write through to the map of the state they receive.
type Mutator func(State) State

// WithColor sets one top-level color.
func WithColor(f ColorField, c color.Canonical) Mutator {
	return func(s State) State {
		switch f {
		case FieldHP:
			s.HPColor = c
		case FieldResource:
			s.ResourceColor = c
		case FieldBackground:
			s.BackgroundColor = c
		}
		return s
	}
}

// WithResourceColor sets the color of one resource type. Unknown types are
// ignored so the key set never grows.
func WithResourceColor(t resource.Type, c color.Canonical) Mutator {
	return func(s State) State {
		if !t.Valid() {
			return s
		}
		s = s.Clone()
		s.ResourceColors[t] = c
		return s
	}
}

// WithZone replaces the row and column range of a zone.
func WithZone(z Zone, r Range) Mutator {
	return func(s State) State {
		switch z {
		case ZoneHP:
			s.HPRow, s.HPFirstCol, s.HPLastCol = r.Row, r.FirstCol, r.LastCol
		case ZoneResource:
			s.ResourceRow, s.ResourceFirstCol, s.ResourceLastCol = r.Row, r.FirstCol, r.LastCol
		}
		return s
	}
}

// ResetColors restores every color to its default and keeps the six ranges.
func ResetColors(s State) State {
	next := Normalize(Payload{})
	next.HPRow, next.HPFirstCol, next.HPLastCol = s.HPRow, s.HPFirstCol, s.HPLastCol
	next.ResourceRow, next.ResourceFirstCol, next.ResourceLastCol = s.ResourceRow, s.ResourceFirstCol, s.ResourceLastCol
	return next
}

// Replace discards the current state in favor of the normalized payload.
func Replace(p Payload) Mutator {
	return func(State) State {
		return Normalize(p)
	}
}
