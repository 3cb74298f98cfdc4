// Package config provides configuration types, defaults and persistence for lightdesk.
package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/phoenixcorp/lightdesk/internal/api"
	"github.com/phoenixcorp/lightdesk/internal/log"
	"github.com/phoenixcorp/lightdesk/internal/preview"
	"github.com/phoenixcorp/lightdesk/internal/tracing"
)

// Config holds all configuration options for lightdesk.
type Config struct {
	API     APIConfig      `mapstructure:"api"`
	Preview PreviewConfig  `mapstructure:"preview"`
	Watch   WatchConfig    `mapstructure:"watch"`
	Tracing tracing.Config `mapstructure:"tracing"`
}

// APIConfig locates the lighting service.
type APIConfig struct {
	BaseURL string        `mapstructure:"base_url"`
	Timeout time.Duration `mapstructure:"timeout"`
	// CacheTTL keeps fetched overrides this long. 0 disables the cache.
	CacheTTL time.Duration `mapstructure:"cache_ttl"`
}

// PreviewConfig holds the preview strip width and the simulated bar levels.
type PreviewConfig struct {
	Width           int     `mapstructure:"width"`
	HPPercent       float64 `mapstructure:"hp_percent"`
	ResourcePercent float64 `mapstructure:"resource_percent"`
}

// WatchConfig configures `lightdesk watch`.
type WatchConfig struct {
	Debounce time.Duration `mapstructure:"debounce"`
}

// DefaultTracesFilePath returns ~/.config/lightdesk/traces/traces.jsonl, or ""
// when the home directory is unknown.
func DefaultTracesFilePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "lightdesk", "traces", "traces.jsonl")
}

// Defaults returns the built-in configuration.
func Defaults() Config {
	traces := tracing.DefaultConfig()
	traces.FilePath = DefaultTracesFilePath()

	return Config{
		API: APIConfig{
			BaseURL:  api.DefaultBaseURL,
			Timeout:  api.DefaultTimeout,
			CacheTTL: 2 * time.Second,
		},
		Preview: PreviewConfig{
			Width:           preview.Columns,
			HPPercent:       75,
			ResourcePercent: 40,
		},
		Watch: WatchConfig{
			Debounce: 100 * time.Millisecond,
		},
		Tracing: traces,
	}
}

// Validate checks every section.
func (c Config) Validate() error {
	if err := ValidateAPI(c.API); err != nil {
		return err
	}
	if err := ValidatePreview(c.Preview); err != nil {
		return err
	}
	if c.Watch.Debounce < 0 {
		return fmt.Errorf("watch.debounce must not be negative, got %v", c.Watch.Debounce)
	}
	return ValidateTracing(c.Tracing)
}

// ValidateAPI requires an absolute http(s) base URL and non-negative durations.
func ValidateAPI(a APIConfig) error {
	u, err := url.Parse(a.BaseURL)
	if err != nil {
		return fmt.Errorf("api.base_url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("api.base_url must be an http or https URL, got %q", a.BaseURL)
	}
	if u.Host == "" {
		return fmt.Errorf("api.base_url is missing a host: %q", a.BaseURL)
	}
	if a.Timeout < 0 {
		return fmt.Errorf("api.timeout must not be negative, got %v", a.Timeout)
	}
	if a.CacheTTL < 0 {
		return fmt.Errorf("api.cache_ttl must not be negative, got %v", a.CacheTTL)
	}
	return nil
}

// ValidatePreview checks the strip width and that both levels are percentages.
func ValidatePreview(p PreviewConfig) error {
	if p.Width < 1 || p.Width > 2*preview.Columns {
		return fmt.Errorf("preview.width must be between 1 and %d, got %d", 2*preview.Columns, p.Width)
	}
	if p.HPPercent < 0 || p.HPPercent > 100 {
		return fmt.Errorf("preview.hp_percent must be between 0 and 100, got %v", p.HPPercent)
	}
	if p.ResourcePercent < 0 || p.ResourcePercent > 100 {
		return fmt.Errorf("preview.resource_percent must be between 0 and 100, got %v", p.ResourcePercent)
	}
	return nil
}

// ValidateTracing checks the exporter and its required settings.
func ValidateTracing(t tracing.Config) error {
	if t.SampleRate < 0.0 || t.SampleRate > 1.0 {
		return fmt.Errorf("tracing.sample_rate must be between 0.0 and 1.0, got %v", t.SampleRate)
	}

	switch t.Exporter {
	case "", tracing.ExporterNone, tracing.ExporterFile, tracing.ExporterStdout, tracing.ExporterOTLP:
	default:
		return fmt.Errorf("tracing.exporter must be \"none\", \"file\", \"stdout\", or \"otlp\", got %q", t.Exporter)
	}

	if t.Enabled {
		if t.Exporter == tracing.ExporterFile && t.FilePath == "" {
			return fmt.Errorf("tracing.file_path is required when exporter is \"file\"")
		}
		if t.Exporter == tracing.ExporterOTLP && t.OTLPEndpoint == "" {
			return fmt.Errorf("tracing.otlp_endpoint is required when exporter is \"otlp\"")
		}
	}
	return nil
}

// DefaultConfigTemplate returns the commented config written on first run.
func DefaultConfigTemplate() string {
	return `# lightdesk configuration

# Lighting service
api:
  base_url: http://localhost:8080/api   # also LIGHTDESK_API_BASE_URL
  timeout: 10s                          # per request
  cache_ttl: 2s                         # reuse fetched overrides this long, 0 disables

# Preview of the keyboard bars (TUI and 'lightdesk preview')
preview:
  width: 22               # keys in the preview strip
  hp_percent: 75          # simulated HP level, saved when changed in the TUI
  resource_percent: 40    # simulated resource level

# 'lightdesk watch <file>'
watch:
  debounce: 100ms         # wait for writes to settle before pushing

# OpenTelemetry tracing of service calls
tracing:
  enabled: false
  exporter: file          # none, file, stdout or otlp
  # file_path: ~/.config/lightdesk/traces/traces.jsonl
  # otlp_endpoint: localhost:4317
  sample_rate: 1.0
`
}

// WriteDefaultConfig writes the default template to configPath, creating
// parent directories.
func WriteDefaultConfig(configPath string) error {
	log.Debug(log.CatConfig, "Writing default config", "path", configPath)

	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		log.ErrorErr(log.CatConfig, "Failed to create config directory", err, "dir", dir)
		return fmt.Errorf("creating config directory: %w", err)
	}

	if err := os.WriteFile(configPath, []byte(DefaultConfigTemplate()), 0o600); err != nil {
		log.ErrorErr(log.CatConfig, "Failed to write config file", err, "path", configPath)
		return fmt.Errorf("writing config file: %w", err)
	}

	log.Info(log.CatConfig, "Created default config", "path", configPath)
	return nil
}
