package overrides

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/phoenixcorp/lightdesk/internal/resource"
)

func TestSerialize_Defaults(t *testing.T) {
	p := Serialize(Defaults())

	require.Equal(t, 21, *p.HPLastCol)
	require.Equal(t, 1, *p.ResourceRow)
	require.Equal(t, 0x00FF00, p.HPColor)
	require.Equal(t, 0xFFA500, p.ResourceColor)
	require.Equal(t, 0x102040, p.BackgroundColor)
	require.Len(t, p.ResourceColors, resource.Count)
	require.Equal(t, 0x0000FF, p.ResourceColors["MANA"])
	require.Equal(t, 0x808080, p.ResourceColors["MAELSTROM"])
}

func TestSerialize_JSONKeys(t *testing.T) {
	data, err := json.Marshal(Serialize(Defaults()))
	require.NoError(t, err)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(data, &raw))
	for _, key := range []string{
		"hpRow", "hpFirstCol", "hpLastCol",
		"resourceRow", "resourceFirstCol", "resourceLastCol",
		"hpColor", "resourceColor", "backgroundColor", "resourceColors",
	} {
		require.Contains(t, raw, key)
	}
	require.Len(t, raw, 10)
	require.Equal(t, float64(0), raw["hpRow"], "zero ranges must still be sent")
}

func TestProperty_RoundTrip(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		s := stateGen().Draw(rt, "state")
		got := Normalize(Serialize(s))
		require.True(rt, got.Equal(s), "normalize(serialize(s)) != s\nwant %+v\ngot  %+v", s, got)
	})
}

func TestProperty_RoundTripThroughJSON(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		s := stateGen().Draw(rt, "state")

		data, err := json.Marshal(Serialize(s))
		require.NoError(rt, err)

		var p Payload
		require.NoError(rt, json.Unmarshal(data, &p))
		require.True(rt, Normalize(p).Equal(s))
	})
}

func TestProperty_SerializeDoesNotMutate(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		s := stateGen().Draw(rt, "state")
		before := s.Clone()
		_ = Serialize(s)
		require.True(rt, before.Equal(s))
	})
}
