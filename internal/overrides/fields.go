package overrides

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrUnknownField is returned when a color field name is not recognized.
	ErrUnknownField = errors.New("unknown color field")
	// ErrUnknownZone is returned when a zone name is not recognized.
	ErrUnknownZone = errors.New("unknown zone")
)

// ColorField names one of the three top-level colors.
type ColorField string

const (
	FieldHP         ColorField = "hp"
	FieldResource   ColorField = "resource"
	FieldBackground ColorField = "background"
)

// ColorFields lists the top-level color fields in display order.
func ColorFields() []ColorField {
	return []ColorField{FieldHP, FieldBackground, FieldResource}
}

// Label returns the display name of the field.
func (f ColorField) Label() string {
	switch f {
	case FieldHP:
		return "HP"
	case FieldResource:
		return "Generic resource"
	case FieldBackground:
		return "Keyboard & device background"
	}
	return string(f)
}

// ParseColorField matches a field name case-insensitively.
func ParseColorField(s string) (ColorField, error) {
	switch f := ColorField(strings.ToLower(strings.TrimSpace(s))); f {
	case FieldHP, FieldResource, FieldBackground:
		return f, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownField, s)
}

// Zone names one of the two indicator bars.
type Zone string

const (
	ZoneHP       Zone = "hp"
	ZoneResource Zone = "resource"
)

// ParseZone matches a zone name case-insensitively.
func ParseZone(s string) (Zone, error) {
	switch z := Zone(strings.ToLower(strings.TrimSpace(s))); z {
	case ZoneHP, ZoneResource:
		return z, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownZone, s)
}

// Range is an inclusive run of cells on one keyboard row.
type Range struct {
	Row      int
	FirstCol int
	LastCol  int
}

// Width returns the number of cells in the range, zero when it is inverted.
func (r Range) Width() int {
	return max(r.LastCol-r.FirstCol+1, 0)
}
