package overrides

import (
	"github.com/phoenixcorp/lightdesk/internal/color"
	"github.com/phoenixcorp/lightdesk/internal/log"
	"github.com/phoenixcorp/lightdesk/internal/resource"
)

// Normalize merges a possibly partial payload over Defaults.
//
// Missing ranges take the default; colors go through color.Decode with the
// matching default as fallback. Resource colors are read for the fixed
// resource.All() keys only, so unknown keys in the payload never reach State.
func Normalize(p Payload) State {
	def := Defaults()

	colors := make(map[resource.Type]color.Canonical, resource.Count)
	for _, t := range resource.All() {
		var raw RawColor
		if p.ResourceColors != nil {
			raw = p.ResourceColors[string(t)]
		}
		colors[t] = color.Decode(raw, def.ResourceColors[t])
	}
	for key := range p.ResourceColors {
		if t := resource.Type(key); !t.Valid() {
			log.Debug(log.CatSync, "Ignoring unknown resource color", "key", key)
		}
	}

	return State{
		HPRow:            intOr(p.HPRow, def.HPRow),
		HPFirstCol:       intOr(p.HPFirstCol, def.HPFirstCol),
		HPLastCol:        intOr(p.HPLastCol, def.HPLastCol),
		ResourceRow:      intOr(p.ResourceRow, def.ResourceRow),
		ResourceFirstCol: intOr(p.ResourceFirstCol, def.ResourceFirstCol),
		ResourceLastCol:  intOr(p.ResourceLastCol, def.ResourceLastCol),
		HPColor:          color.Decode(p.HPColor, def.HPColor),
		ResourceColor:    color.Decode(p.ResourceColor, def.ResourceColor),
		BackgroundColor:  color.Decode(p.BackgroundColor, def.BackgroundColor),
		ResourceColors:   colors,
	}
}
