// Package overrides holds the lighting override model: the complete in-memory
// State, the tolerant wire Payload, and the conversions between them.
//
// Normalize is the only place untrusted payloads become State. Everything past
// it can rely on State being fully populated with canonical colors.
package overrides

import (
	"errors"
	"fmt"
	"maps"

	"github.com/phoenixcorp/lightdesk/internal/color"
	"github.com/phoenixcorp/lightdesk/internal/resource"
)

// PreviewColumns is the width of the key strip the default zones span.
const PreviewColumns = 22

// State is the complete, normalized set of overrides.
// Treat it as a value: edits go through Clone and whole-object replacement.
type State struct {
	HPRow      int
	HPFirstCol int
	HPLastCol  int

	ResourceRow      int
	ResourceFirstCol int
	ResourceLastCol  int

	HPColor         color.Canonical
	ResourceColor   color.Canonical
	BackgroundColor color.Canonical

	// ResourceColors always holds exactly the resource.All() keys.
	ResourceColors map[resource.Type]color.Canonical
}

// Built-in default colors.
const (
	DefaultHPColor         color.Canonical = "#00FF00"
	DefaultResourceColor   color.Canonical = "#FFA500"
	DefaultBackgroundColor color.Canonical = "#102040"
)

// DefaultResourceColors returns a fresh map of the per-resource defaults.
func DefaultResourceColors() map[resource.Type]color.Canonical {
	return map[resource.Type]color.Canonical{
		resource.Mana:       "#0000FF",
		resource.Rage:       "#FF0000",
		resource.Energy:     "#FFA500",
		resource.Focus:      "#FFFF00",
		resource.Fury:       "#FF00FF",
		resource.Insanity:   "#00FFFF",
		resource.Maelstrom:  "#808080",
		resource.RunicPower: "#00FFFF",
	}
}

// Defaults returns the built-in overrides: HP on row 0 and the resource bar on
// row 1, both spanning the full preview strip.
func Defaults() State {
	return State{
		HPRow:            0,
		HPFirstCol:       0,
		HPLastCol:        PreviewColumns - 1,
		ResourceRow:      1,
		ResourceFirstCol: 0,
		ResourceLastCol:  PreviewColumns - 1,
		HPColor:          DefaultHPColor,
		ResourceColor:    DefaultResourceColor,
		BackgroundColor:  DefaultBackgroundColor,
		ResourceColors:   DefaultResourceColors(),
	}
}

// Clone returns a deep copy of s.
func (s State) Clone() State {
	out := s
	out.ResourceColors = maps.Clone(s.ResourceColors)
	return out
}

// Equal reports whether two states hold the same values.
func (s State) Equal(o State) bool {
	return s.Zone(ZoneHP) == o.Zone(ZoneHP) &&
		s.Zone(ZoneResource) == o.Zone(ZoneResource) &&
		s.HPColor == o.HPColor &&
		s.ResourceColor == o.ResourceColor &&
		s.BackgroundColor == o.BackgroundColor &&
		maps.Equal(s.ResourceColors, o.ResourceColors)
}

// Validate reports every way s breaks the State invariants: a color that is
// not canonical, or ResourceColors not holding exactly the resource.All() keys.
func (s State) Validate() error {
	var errs []error
	for _, f := range ColorFields() {
		if c := s.Color(f); !color.Valid(string(c)) {
			errs = append(errs, fmt.Errorf("%s: non-canonical color %q", f, string(c)))
		}
	}
	for _, t := range resource.All() {
		c, ok := s.ResourceColors[t]
		switch {
		case !ok:
			errs = append(errs, fmt.Errorf("resourceColors: missing %s", t))
		case !color.Valid(string(c)):
			errs = append(errs, fmt.Errorf("resourceColors.%s: non-canonical color %q", t, string(c)))
		}
	}
	for t := range s.ResourceColors {
		if !t.Valid() {
			errs = append(errs, fmt.Errorf("resourceColors: unknown key %q", string(t)))
		}
	}
	return errors.Join(errs...)
}

// Color returns the value of one of the three top-level color fields.
func (s State) Color(f ColorField) color.Canonical {
	switch f {
	case FieldHP:
		return s.HPColor
	case FieldResource:
		return s.ResourceColor
	case FieldBackground:
		return s.BackgroundColor
	}
	return ""
}

// Zone returns the cell range of a zone.
func (s State) Zone(z Zone) Range {
	switch z {
	case ZoneHP:
		return Range{Row: s.HPRow, FirstCol: s.HPFirstCol, LastCol: s.HPLastCol}
	case ZoneResource:
		return Range{Row: s.ResourceRow, FirstCol: s.ResourceFirstCol, LastCol: s.ResourceLastCol}
	}
	return Range{}
}
