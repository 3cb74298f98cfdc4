package overrides

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/phoenixcorp/lightdesk/internal/color"
	"github.com/phoenixcorp/lightdesk/internal/resource"
)

func TestNormalize_EmptyPayloadIsDefaults(t *testing.T) {
	got := Normalize(Payload{})
	require.True(t, got.Equal(Defaults()))
	require.Len(t, got.ResourceColors, resource.Count)
	for _, r := range resource.All() {
		require.Contains(t, got.ResourceColors, r)
	}
}

func TestNormalize_DefaultsTable(t *testing.T) {
	got := Normalize(Payload{})

	require.Equal(t, 0, got.HPRow)
	require.Equal(t, 0, got.HPFirstCol)
	require.Equal(t, 21, got.HPLastCol)
	require.Equal(t, 1, got.ResourceRow)
	require.Equal(t, 0, got.ResourceFirstCol)
	require.Equal(t, 21, got.ResourceLastCol)
	require.Equal(t, color.Canonical("#00FF00"), got.HPColor)
	require.Equal(t, color.Canonical("#FFA500"), got.ResourceColor)
	require.Equal(t, color.Canonical("#102040"), got.BackgroundColor)
	require.Equal(t, map[resource.Type]color.Canonical{
		resource.Mana:       "#0000FF",
		resource.Rage:       "#FF0000",
		resource.Energy:     "#FFA500",
		resource.Focus:      "#FFFF00",
		resource.Fury:       "#FF00FF",
		resource.Insanity:   "#00FFFF",
		resource.Maelstrom:  "#808080",
		resource.RunicPower: "#00FFFF",
	}, got.ResourceColors)
}

func TestNormalize_UnknownResourceKeysIgnored(t *testing.T) {
	got := Normalize(Payload{ResourceColors: map[string]RawColor{"FOO": 1, "mana": 2}})

	require.Len(t, got.ResourceColors, resource.Count)
	require.NotContains(t, got.ResourceColors, resource.Type("FOO"))
	// Keys are matched exactly; lowercase "mana" is not MANA.
	require.Equal(t, color.Canonical("#0000FF"), got.ResourceColors[resource.Mana])
}

func TestNormalize_PartialPayload(t *testing.T) {
	row := 3
	got := Normalize(Payload{
		HPRow:   &row,
		HPColor: "0xff0000",
		ResourceColors: map[string]RawColor{
			"RAGE":        float64(0x00FF00),
			"RUNIC_POWER": "#abcdef",
			"FURY":        nil,
		},
	})

	require.Equal(t, 3, got.HPRow)
	require.Equal(t, 21, got.HPLastCol, "missing range keeps default")
	require.Equal(t, color.Canonical("#FF0000"), got.HPColor)
	require.Equal(t, DefaultBackgroundColor, got.BackgroundColor)
	require.Equal(t, color.Canonical("#00FF00"), got.ResourceColors[resource.Rage])
	require.Equal(t, color.Canonical("#ABCDEF"), got.ResourceColors[resource.RunicPower])
	require.Equal(t, color.Canonical("#FF00FF"), got.ResourceColors[resource.Fury])
}

func TestNormalize_ZeroRangesAreKept(t *testing.T) {
	zero := 0
	got := Normalize(Payload{ResourceRow: &zero, HPLastCol: &zero})
	require.Equal(t, 0, got.ResourceRow, "explicit zero is a value, not absence")
	require.Equal(t, 0, got.HPLastCol)
}

func TestNormalize_MalformedColorsFallBack(t *testing.T) {
	got := Normalize(Payload{
		HPColor:         map[string]any{"r": 255},
		ResourceColor:   "orange",
		BackgroundColor: []any{1, 2},
		ResourceColors:  map[string]RawColor{"MANA": true},
	})
	require.True(t, got.Equal(Defaults()))
}
