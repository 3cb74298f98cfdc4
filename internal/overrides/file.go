package overrides

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/phoenixcorp/lightdesk/internal/color"
)

const fileHeader = `# lightdesk overrides
#
# Colors accept "#RRGGBB" (keep the quotes, # starts a YAML comment),
# "RRGGBB", 0xRRGGBB or a plain integer. Missing fields use the defaults,
# unknown resourceColors keys are ignored.
`

// Export returns the payload written to override files: every field present,
// colors as "#RRGGBB" strings so the file stays readable.
func Export(s State) Payload {
	return encode(s, func(c color.Canonical) RawColor { return string(c) })
}

// MarshalYAML renders s as an override file.
func MarshalYAML(s State) ([]byte, error) {
	body, err := marshalBody(s)
	if err != nil {
		return nil, err
	}
	return append([]byte(fileHeader), body...), nil
}

func marshalBody(s State) ([]byte, error) {
	var buf bytes.Buffer
	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(2)
	if err := encoder.Encode(Export(s)); err != nil {
		return nil, fmt.Errorf("encoding overrides: %w", err)
	}
	_ = encoder.Close()
	return buf.Bytes(), nil
}

// ReadFile parses an override file. JSON files work too since JSON is YAML.
// The result is a partial payload; run it through Normalize.
func ReadFile(path string) (Payload, error) {
	data, err := os.ReadFile(path) //nolint:gosec // G304: path comes from the command line
	if err != nil {
		return Payload{}, fmt.Errorf("reading overrides file: %w", err)
	}
	var p Payload
	if len(bytes.TrimSpace(data)) == 0 {
		return p, nil
	}
	if err := yaml.Unmarshal(data, &p); err != nil {
		return Payload{}, fmt.Errorf("parsing overrides file %s: %w", path, err)
	}
	return p, nil
}

// WriteFile writes s to path atomically (temp file, then rename).
func WriteFile(path string, s State) error {
	data, err := MarshalYAML(s)
	if err != nil {
		return err
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("creating overrides directory: %w", err)
	}

	temp, err := os.CreateTemp(dir, ".lightdesk-overrides.tmp.*")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tempPath := temp.Name()

	if _, err := temp.Write(data); err != nil {
		_ = temp.Close()
		_ = os.Remove(tempPath)
		return fmt.Errorf("writing temp file: %w", err)
	}
	if err := temp.Close(); err != nil {
		_ = os.Remove(tempPath)
		return fmt.Errorf("closing temp file: %w", err)
	}
	if err := os.Rename(tempPath, path); err != nil {
		_ = os.Remove(tempPath)
		return fmt.Errorf("renaming temp file: %w", err)
	}
	return nil
}
