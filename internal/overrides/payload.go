package overrides

// RawColor is a color as found on the wire: nil, a number, a string in one of
// the tolerated encodings, or whatever else a decoder produced.
type RawColor = any

// Payload is the wire form exchanged with the lighting service.
// Every field is optional when received; Serialize always fills all of them.
type Payload struct {
	HPRow      *int `json:"hpRow,omitempty" yaml:"hpRow,omitempty"`
	HPFirstCol *int `json:"hpFirstCol,omitempty" yaml:"hpFirstCol,omitempty"`
	HPLastCol  *int `json:"hpLastCol,omitempty" yaml:"hpLastCol,omitempty"`

	ResourceRow      *int `json:"resourceRow,omitempty" yaml:"resourceRow,omitempty"`
	ResourceFirstCol *int `json:"resourceFirstCol,omitempty" yaml:"resourceFirstCol,omitempty"`
	ResourceLastCol  *int `json:"resourceLastCol,omitempty" yaml:"resourceLastCol,omitempty"`

	HPColor         RawColor `json:"hpColor,omitempty" yaml:"hpColor,omitempty"`
	ResourceColor   RawColor `json:"resourceColor,omitempty" yaml:"resourceColor,omitempty"`
	BackgroundColor RawColor `json:"backgroundColor,omitempty" yaml:"backgroundColor,omitempty"`

	ResourceColors map[string]RawColor `json:"resourceColors,omitempty" yaml:"resourceColors,omitempty"`
}

func intPtr(v int) *int {
	return &v
}

func intOr(p *int, def int) int {
	if p == nil {
		return def
	}
	return *p
}
