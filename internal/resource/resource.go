// Package resource enumerates the game resource types that can carry their own
// lighting color.
package resource

import "strings"

// Type identifies one game resource bar (mana, rage, ...).
type Type string

const (
	Mana       Type = "MANA"
	Rage       Type = "RAGE"
	Energy     Type = "ENERGY"
	Focus      Type = "FOCUS"
	Fury       Type = "FURY"
	Insanity   Type = "INSANITY"
	Maelstrom  Type = "MAELSTROM"
	RunicPower Type = "RUNIC_POWER"
)

// Count is the fixed number of resource types.
const Count = 8

var ordered = [Count]Type{Mana, Rage, Energy, Focus, Fury, Insanity, Maelstrom, RunicPower}

// All returns every resource type in display order.
// The returned slice is a fresh copy.
func All() []Type {
	out := make([]Type, Count)
	copy(out, ordered[:])
	return out
}

// Parse matches a resource name case-insensitively; "runic power",
// "runic-power" and "RUNIC_POWER" all resolve to RunicPower.
func Parse(s string) (Type, bool) {
	key := strings.ToUpper(strings.TrimSpace(s))
	key = strings.NewReplacer(" ", "_", "-", "_").Replace(key)
	for _, t := range ordered {
		if string(t) == key {
			return t, true
		}
	}
	return "", false
}

// Valid reports whether t is one of the enumerated types.
func (t Type) Valid() bool {
	for _, o := range ordered {
		if o == t {
			return true
		}
	}
	return false
}

// Label returns the display name, e.g. "RUNIC POWER".
func (t Type) Label() string {
	return strings.ReplaceAll(string(t), "_", " ")
}

func (t Type) String() string {
	return string(t)
}
