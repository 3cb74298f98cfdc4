package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/phoenixcorp/lightdesk/internal/app"
	"github.com/phoenixcorp/lightdesk/internal/config"
)

func init() {
	// Query the terminal background before Bubble Tea owns stdin, otherwise
	// the OSC 11 reply races the input loop and shows up as typed text.
	//
	// See: https://github.com/charmbracelet/bubbletea/issues/1036
	_ = lipgloss.HasDarkBackground()
}

const (
	localConfigPath = ".lightdesk/config.yaml"
	envPrefix       = "LIGHTDESK"
)

var (
	version   = "dev"
	cfgFile   string
	debugFlag bool
	cfg       config.Config
)

var rootCmd = &cobra.Command{
	Use:   "lightdesk",
	Short: "Edit the RGB lighting overrides of a game bar service",
	Long: `lightdesk edits the colors and keyboard zones the lighting service paints
for HP and resource bars. Run without a subcommand for the interactive editor.`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runApp,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "",
		"config file (default: ~/.config/lightdesk/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&debugFlag, "debug", "d", false,
		"write debug logs (also LIGHTDESK_DEBUG)")
	rootCmd.PersistentFlags().String("api-url", "",
		"lighting service base URL (overrides api.base_url)")

	_ = viper.BindPFlag("api.base_url", rootCmd.PersistentFlags().Lookup("api-url"))
}

func setDefaults(v *viper.Viper) {
	d := config.Defaults()
	v.SetDefault("api.base_url", d.API.BaseURL)
	v.SetDefault("api.timeout", d.API.Timeout)
	v.SetDefault("api.cache_ttl", d.API.CacheTTL)
	v.SetDefault("preview.width", d.Preview.Width)
	v.SetDefault("preview.hp_percent", d.Preview.HPPercent)
	v.SetDefault("preview.resource_percent", d.Preview.ResourcePercent)
	v.SetDefault("watch.debounce", d.Watch.Debounce)
	v.SetDefault("tracing.enabled", d.Tracing.Enabled)
	v.SetDefault("tracing.exporter", d.Tracing.Exporter)
	v.SetDefault("tracing.file_path", d.Tracing.FilePath)
	v.SetDefault("tracing.otlp_endpoint", d.Tracing.OTLPEndpoint)
	v.SetDefault("tracing.sample_rate", d.Tracing.SampleRate)
	v.SetDefault("tracing.service_name", d.Tracing.ServiceName)
}

func initConfig() {
	setDefaults(viper.GetViper())

	viper.SetEnvPrefix(envPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		// Config lookup order:
		// 1. .lightdesk/config.yaml (current directory)
		// 2. ~/.config/lightdesk/config.yaml (user config)
		if _, err := os.Stat(localConfigPath); err == nil {
			viper.SetConfigFile(localConfigPath)
		} else {
			home, _ := os.UserHomeDir()
			viper.AddConfigPath(filepath.Join(home, ".config", "lightdesk"))
			viper.SetConfigName("config")
			viper.SetConfigType("yaml")
		}
	}

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			// First run: write the commented defaults next to the user config.
			if path := userConfigPath(); path != "" {
				if writeErr := config.WriteDefaultConfig(path); writeErr == nil {
					viper.SetConfigFile(path)
					_ = viper.ReadInConfig()
				}
			}
		} else {
			fmt.Fprintf(os.Stderr, "lightdesk: reading config: %v\n", err)
		}
	}

	_ = viper.Unmarshal(&cfg)
}

func userConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "lightdesk", "config.yaml")
}

// configFileForSaving is where the TUI writes preview slider changes.
func configFileForSaving() string {
	if used := viper.ConfigFileUsed(); used != "" {
		return used
	}
	if path := userConfigPath(); path != "" {
		return path
	}
	return localConfigPath
}

func runApp(cmd *cobra.Command, _ []string) error {
	sess, err := openSession(cmd.Context())
	if err != nil {
		return err
	}
	defer sess.Close()

	model := app.New(sess.ctrl, app.Options{
		ConfigPath: configFileForSaving(),
		Preview:    cfg.Preview,
		DebugMode:  sess.debug,
	})
	p := tea.NewProgram(model, tea.WithAltScreen())

	_, err = p.Run()
	model.Close()

	if err != nil {
		return fmt.Errorf("running program: %w", err)
	}
	return nil
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// SetVersion sets the version string (called from main with ldflags)
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}
