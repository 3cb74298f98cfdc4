package overrides

import (
	"slices"

	"github.com/phoenixcorp/lightdesk/internal/color"
	"github.com/phoenixcorp/lightdesk/internal/resource"
)

// PresetWoW is the World of Warcraft palette.
const PresetWoW = "wow"

// Preset is a named, complete color set. Applying it leaves ranges untouched.
type Preset struct {
	Name            string
	HPColor         color.Canonical
	ResourceColor   color.Canonical
	BackgroundColor color.Canonical
	ResourceColors  map[resource.Type]color.Canonical
}

var presets = map[string]Preset{
	PresetWoW: {
		Name:            PresetWoW,
		HPColor:         "#00FF00",
		ResourceColor:   "#FFA500",
		BackgroundColor: "#102040",
		ResourceColors: map[resource.Type]color.Canonical{
			resource.Mana:       "#0000FF",
			resource.Rage:       "#FF0000",
			resource.Energy:     "#FFA500",
			resource.Focus:      "#FFFF00",
			resource.Fury:       "#FF00FF",
			resource.Insanity:   "#00FFFF",
			resource.Maelstrom:  "#808080",
			resource.RunicPower: "#00FFFF",
		},
	},
}

// LookupPreset returns the preset with the given name.
func LookupPreset(name string) (Preset, bool) {
	p, ok := presets[name]
	return p, ok
}

// PresetNames lists the available presets, sorted.
func PresetNames() []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Apply is a Mutator that sets every color of the preset.
func (p Preset) Apply(s State) State {
	s = s.Clone()
	s.HPColor = p.HPColor
	s.ResourceColor = p.ResourceColor
	s.BackgroundColor = p.BackgroundColor
	for t, c := range p.ResourceColors {
		s.ResourceColors[t] = c
	}
	return s
}
