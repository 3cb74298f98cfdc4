package overrides

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/phoenixcorp/lightdesk/internal/color"
	"github.com/phoenixcorp/lightdesk/internal/resource"
)

func TestWriteFile_ReadFile_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "overrides.yaml")
	s := WithColor(FieldHP, "#ABCDEF")(Defaults())

	require.NoError(t, WriteFile(path, s))

	p, err := ReadFile(path)
	require.NoError(t, err)
	require.True(t, Normalize(p).Equal(s))
}

func TestMarshalYAML_QuotesColors(t *testing.T) {
	data, err := MarshalYAML(Defaults())
	require.NoError(t, err)

	out := string(data)
	require.Contains(t, out, "# lightdesk overrides")
	require.Contains(t, out, `hpColor: '#00FF00'`)
	require.Contains(t, out, `RUNIC_POWER: '#00FFFF'`)
}

func TestReadFile_TolerantEncodings(t *testing.T) {
	path := filepath.Join(t.TempDir(), "legacy.yaml")
	content := `hpRow: 2
hpColor: 255
resourceColor: "0x00ff00"
backgroundColor: #102040 is a comment, so this is null
resourceColors:
  MANA: "ff0000"
  RAGE: 0x0000FF
  BOGUS: 12
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	p, err := ReadFile(path)
	require.NoError(t, err)
	s := Normalize(p)

	require.Equal(t, 2, s.HPRow)
	require.Equal(t, color.Canonical("#0000FF"), s.HPColor)
	require.Equal(t, color.Canonical("#00FF00"), s.ResourceColor)
	require.Equal(t, DefaultBackgroundColor, s.BackgroundColor)
	require.Equal(t, color.Canonical("#FF0000"), s.ResourceColors[resource.Mana])
	require.Equal(t, color.Canonical("#0000FF"), s.ResourceColors[resource.Rage])
	require.Len(t, s.ResourceColors, resource.Count)
}

func TestReadFile_JSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "overrides.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"hpColor": 65280, "resourceColors": {"FURY": "#000001"}}`), 0o600))

	p, err := ReadFile(path)
	require.NoError(t, err)
	s := Normalize(p)
	require.Equal(t, color.Canonical("#00FF00"), s.HPColor)
	require.Equal(t, color.Canonical("#000001"), s.ResourceColors[resource.Fury])
}

func TestReadFile_Empty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.yaml")
	require.NoError(t, os.WriteFile(path, []byte("\n"), 0o600))

	p, err := ReadFile(path)
	require.NoError(t, err)
	require.True(t, Normalize(p).Equal(Defaults()))
}

func TestReadFile_Errors(t *testing.T) {
	_, err := ReadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)

	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("hpRow: [unclosed"), 0o600))
	_, err = ReadFile(path)
	require.Error(t, err)
	require.Contains(t, err.Error(), "parsing overrides file")
}

func TestProperty_FileRoundTrip(t *testing.T) {
	dir := t.TempDir()
	rapid.Check(t, func(rt *rapid.T) {
		s := stateGen().Draw(rt, "state")
		path := filepath.Join(dir, "overrides.yaml")

		require.NoError(rt, WriteFile(path, s))
		p, err := ReadFile(path)
		require.NoError(rt, err)
		require.True(rt, Normalize(p).Equal(s))
	})
}
