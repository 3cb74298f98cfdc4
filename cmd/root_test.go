package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/phoenixcorp/lightdesk/internal/color"
	"github.com/phoenixcorp/lightdesk/internal/config"
	"github.com/phoenixcorp/lightdesk/internal/controller"
	"github.com/phoenixcorp/lightdesk/internal/overrides"
	"github.com/phoenixcorp/lightdesk/internal/preview"
	"github.com/phoenixcorp/lightdesk/internal/resource"
)

type fakeService struct {
	mu         sync.Mutex
	payload    overrides.Payload
	fetchErr   error
	persistErr error
	actionErr  error
	persisted  []overrides.Payload
}

func (f *fakeService) FetchOverrides(context.Context) (overrides.Payload, error) {
	return f.payload, f.fetchErr
}

func (f *fakeService) PersistOverrides(_ context.Context, p overrides.Payload) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.persisted = append(f.persisted, p)
	return "", f.persistErr
}

func (f *fakeService) Start(context.Context) (string, error)      { return "OCR running", f.actionErr }
func (f *fakeService) Stop(context.Context) (string, error)       { return "", f.actionErr }
func (f *fakeService) DefineArea(context.Context) (string, error) { return "", f.actionErr }

func (f *fakeService) last(t *testing.T) overrides.State {
	t.Helper()
	f.mu.Lock()
	defer f.mu.Unlock()
	require.NotEmpty(t, f.persisted)
	return overrides.Normalize(f.persisted[len(f.persisted)-1])
}

func loadedController(t *testing.T, f *fakeService) *controller.Controller {
	t.Helper()
	ctrl := controller.New(f)
	t.Cleanup(ctrl.Close)
	require.NoError(t, ctrl.Load(context.Background()))
	return ctrl
}

// execute runs the root command against f with a fresh config file.
func execute(t *testing.T, f *fakeService, args ...string) (string, error) {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, config.WriteDefaultConfig(path))

	if f != nil {
		orig := newTransport
		newTransport = func(config.Config) controller.Transport { return f }
		t.Cleanup(func() { newTransport = orig })
	}

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(append([]string{"--config", path}, args...))
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
		cfgFile = ""
		showJSON = false
		importDryRun = false
		previewKeyboard = false
	})

	err := rootCmd.Execute()
	return out.String(), err
}

func TestInitConfig_FileAndEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("api:\n  base_url: http://lights.local/api\n"), 0o600))
	t.Setenv("LIGHTDESK_PREVIEW_WIDTH", "11")

	cfgFile = path
	t.Cleanup(func() { cfgFile = "" })
	cfg = config.Config{}
	initConfig()

	require.Equal(t, "http://lights.local/api", cfg.API.BaseURL)
	require.Equal(t, 11, cfg.Preview.Width)
	require.Equal(t, config.Defaults().API.Timeout, cfg.API.Timeout)
	require.NoError(t, cfg.Validate())
}

func TestSetColor(t *testing.T) {
	tests := []struct {
		name   string
		target string
		input  string
		check  func(overrides.State) color.Canonical
		want   color.Canonical
	}{
		{"top-level field", "hp", "#123456", func(s overrides.State) color.Canonical { return s.HPColor }, "#123456"},
		{"field case-insensitive", "Background", "0xabcdef", func(s overrides.State) color.Canonical { return s.BackgroundColor }, "#ABCDEF"},
		{"resource type", "mana", "FF00FF", func(s overrides.State) color.Canonical { return s.ResourceColors[resource.Mana] }, "#FF00FF"},
		{"spaced resource name", "runic power", "255", func(s overrides.State) color.Canonical { return s.ResourceColors[resource.RunicPower] }, "#0000FF"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := &fakeService{}
			ctrl := loadedController(t, f)

			var out bytes.Buffer
			err := runEdit(&out, ctrl, func(c *controller.Controller) error {
				return setColor(c, tt.target, tt.input)
			})
			require.NoError(t, err)
			require.Equal(t, controller.StatusSaved+"\n", out.String())
			require.Equal(t, tt.want, tt.check(f.last(t)))
		})
	}
}

func TestSetColor_Rejects(t *testing.T) {
	f := &fakeService{}
	ctrl := loadedController(t, f)

	err := setColor(ctrl, "hp", "not-a-color")
	require.ErrorContains(t, err, "invalid color")

	err = setColor(ctrl, "shield", "#FFFFFF")
	require.ErrorContains(t, err, "unknown color")

	ctrl.Wait()
	require.Empty(t, f.persisted)
}

func TestRunEdit_NoChange(t *testing.T) {
	f := &fakeService{}
	ctrl := loadedController(t, f)

	var out bytes.Buffer
	err := runEdit(&out, ctrl, func(c *controller.Controller) error {
		return setColor(c, "hp", string(overrides.DefaultHPColor))
	})
	require.NoError(t, err)
	require.Equal(t, "No change\n", out.String())
	require.Empty(t, f.persisted)
}

func TestRunEdit_SaveFailure(t *testing.T) {
	f := &fakeService{persistErr: errors.New("service down")}
	ctrl := loadedController(t, f)

	err := runEdit(io.Discard, ctrl, func(c *controller.Controller) error {
		c.ResetToDefaults()
		return nil
	})
	require.ErrorContains(t, err, "service down")
	require.Equal(t, controller.StatusSaveFailed, ctrl.Snapshot().Status)
}

func TestParseZoneArgs(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		want    overrides.Range
		wantErr string
	}{
		{"valid", []string{"resource", "1", "0", "11"}, overrides.Range{Row: 1, FirstCol: 0, LastCol: 11}, ""},
		{"single key", []string{"HP", "5", "21", "21"}, overrides.Range{Row: 5, FirstCol: 21, LastCol: 21}, ""},
		{"unknown zone", []string{"mana", "0", "0", "1"}, overrides.Range{}, "unknown zone"},
		{"not a number", []string{"hp", "x", "0", "1"}, overrides.Range{}, "row must be a number"},
		{"row out of grid", []string{"hp", "6", "0", "1"}, overrides.Range{}, "row must be between"},
		{"column out of grid", []string{"hp", "0", "0", "22"}, overrides.Range{}, "columns must be between"},
		{"reversed", []string{"hp", "0", "5", "2"}, overrides.Range{}, "is after"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, r, err := parseZoneArgs(tt.args)
			if tt.wantErr != "" {
				require.ErrorContains(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.want, r)
		})
	}
}

func TestImportFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "colors.yaml")
	require.NoError(t, os.WriteFile(path, []byte("hpColor: \"#FF0000\"\nhpRow: 2\n"), 0o600))

	f := &fakeService{}
	ctrl := loadedController(t, f)

	var out bytes.Buffer
	require.NoError(t, importFile(&out, ctrl, path, true))
	require.Contains(t, out.String(), "+ hpColor: '#FF0000'")
	require.Equal(t, overrides.DefaultHPColor, ctrl.State().HPColor)
	require.Empty(t, f.persisted)

	out.Reset()
	require.NoError(t, importFile(&out, ctrl, path, false))
	require.True(t, strings.HasSuffix(out.String(), controller.StatusSaved+"\n"))
	got := f.last(t)
	require.Equal(t, color.Canonical("#FF0000"), got.HPColor)
	require.Equal(t, 2, got.HPRow)

	out.Reset()
	require.NoError(t, importFile(&out, ctrl, path, false))
	require.Equal(t, "No change\n", out.String())
}

func TestPrintState(t *testing.T) {
	var out bytes.Buffer
	printState(&out, overrides.Defaults())

	text := out.String()
	require.Contains(t, text, "HP")
	require.Contains(t, text, string(overrides.DefaultBackgroundColor))
	require.Contains(t, text, "RUNIC POWER")
	require.Contains(t, text, "hp zone")
	require.Equal(t, len(overrides.ColorFields())+resource.Count+2+2, strings.Count(text, "\n"))
}

func TestPrintJSON(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, printJSON(&out, overrides.Defaults()))

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(out.Bytes(), &decoded))
	require.InDelta(t, 0x00FF00, decoded["hpColor"], 0)
	require.Len(t, decoded["resourceColors"], resource.Count)
}

func TestRenderPreview(t *testing.T) {
	var out bytes.Buffer
	renderPreview(&out, overrides.Defaults(), config.Defaults().Preview, false)
	require.Equal(t, 2, strings.Count(out.String(), "\n"))
	require.Contains(t, out.String(), "75%")

	out.Reset()
	renderPreview(&out, overrides.Defaults(), config.Defaults().Preview, true)
	require.Equal(t, preview.Rows, strings.Count(out.String(), "\n"))
}

func TestExecute_Show(t *testing.T) {
	f := &fakeService{payload: overrides.Payload{HPColor: "#ABCDEF"}}

	out, err := execute(t, f, "show")
	require.NoError(t, err)
	require.Contains(t, out, "#ABCDEF")
	require.Contains(t, out, "MAELSTROM")
}

func TestExecute_ShowLoadFailure(t *testing.T) {
	f := &fakeService{fetchErr: errors.New("connection refused")}

	_, err := execute(t, f, "show")
	require.ErrorContains(t, err, "loading overrides")
}

func TestExecute_Preset(t *testing.T) {
	f := &fakeService{payload: overrides.Payload{BackgroundColor: "#000000"}}

	out, err := execute(t, f, "preset", "WOW")
	require.NoError(t, err)
	require.Equal(t, controller.StatusSaved+"\n", out)

	preset, ok := overrides.LookupPreset(overrides.PresetWoW)
	require.True(t, ok)
	require.Equal(t, preset.BackgroundColor, f.last(t).BackgroundColor)
}

func TestExecute_UnknownPreset(t *testing.T) {
	_, err := execute(t, &fakeService{}, "preset", "diablo")
	require.ErrorIs(t, err, controller.ErrUnknownPreset)
}

func TestExecute_RuntimeActions(t *testing.T) {
	out, err := execute(t, &fakeService{}, "start")
	require.NoError(t, err)
	require.Equal(t, "OCR running\n", out)

	_, err = execute(t, &fakeService{actionErr: errors.New("no window")}, "define-area")
	require.ErrorContains(t, err, controller.StatusDefineAreaFailed)
}

func TestExecute_Export(t *testing.T) {
	dest := filepath.Join(t.TempDir(), "out", "colors.yaml")

	_, err := execute(t, &fakeService{payload: overrides.Payload{HPColor: float64(0xFF0000)}}, "export", dest)
	require.NoError(t, err)

	p, err := overrides.ReadFile(dest)
	require.NoError(t, err)
	require.Equal(t, color.Canonical("#FF0000"), overrides.Normalize(p).HPColor)
}

func TestExecute_AgainstHTTPService(t *testing.T) {
	var (
		mu  sync.Mutex
		put []byte
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodGet && r.URL.Path == "/api/overrides":
			_, _ = w.Write([]byte(`{"hpColor": 65280, "resourceColors": {"MANA": "0x0000FF"}}`))
		case r.Method == http.MethodPut && r.URL.Path == "/api/overrides":
			body, _ := io.ReadAll(r.Body)
			mu.Lock()
			put = body
			mu.Unlock()
			_, _ = w.Write([]byte(`{"status": "Saved to profile"}`))
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(srv.Close)

	out, err := execute(t, nil, "--api-url", srv.URL+"/api", "set", "rage", "#FF0000")
	require.NoError(t, err)
	require.Equal(t, "Saved to profile\n", out)

	mu.Lock()
	defer mu.Unlock()
	var sent map[string]any
	require.NoError(t, json.Unmarshal(put, &sent))
	colors, ok := sent["resourceColors"].(map[string]any)
	require.True(t, ok)
	require.InDelta(t, 0xFF0000, colors["RAGE"], 0)
	require.InDelta(t, 0x0000FF, colors["MANA"], 0)
}
