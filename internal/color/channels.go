package color

import (
	colorful "github.com/lucasb-eyer/go-colorful"
)

// darkThreshold is the CIE L* (0..1) below which a swatch gets light text.
const darkThreshold = 0.6

// String implements fmt.Stringer.
func (c Canonical) String() string {
	return string(c)
}

// RGB splits the color into its channels.
func (c Canonical) RGB() (r, g, b uint8) {
	n := Encode(c)
	return uint8(n >> 16), uint8(n >> 8), uint8(n)
}

// BGR returns the color as 0xBBGGRR, the byte order the keyboard SDK expects.
func (c Canonical) BGR() int {
	r, g, b := c.RGB()
	return int(b)<<16 | int(g)<<8 | int(r)
}

// IsDark reports whether text drawn on this color should be light.
func (c Canonical) IsDark() bool {
	col, err := colorful.Hex(string(c))
	if err != nil {
		return true
	}
	l, _, _ := col.Lab()
	return l < darkThreshold
}
