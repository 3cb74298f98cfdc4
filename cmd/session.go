package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/phoenixcorp/lightdesk/internal/api"
	"github.com/phoenixcorp/lightdesk/internal/config"
	"github.com/phoenixcorp/lightdesk/internal/controller"
	"github.com/phoenixcorp/lightdesk/internal/log"
	"github.com/phoenixcorp/lightdesk/internal/tracing"
)

const tracingShutdownTimeout = 5 * time.Second

// newTransport builds the service transport from the loaded config.
// Tests replace it with an in-memory fake.
var newTransport = func(c config.Config) controller.Transport {
	client := api.NewClient(c.API.BaseURL, api.WithTimeout(c.API.Timeout))
	return api.NewCachingTransport(client, c.API.CacheTTL)
}

// session is everything a command needs to talk to the service: logging,
// tracing and a controller over the configured transport.
type session struct {
	ctrl     *controller.Controller
	debug    bool
	cleanups []func()
}

func openSession(ctx context.Context) (*session, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	s := &session{debug: os.Getenv("LIGHTDESK_DEBUG") != "" || debugFlag}

	if s.debug {
		logPath := os.Getenv("LIGHTDESK_LOG")
		if logPath == "" {
			logPath = "debug.log"
		}
		cleanup, err := log.InitWithTeaLog(logPath, "lightdesk")
		if err != nil {
			return nil, fmt.Errorf("initializing debug log: %w", err)
		}
		s.cleanups = append(s.cleanups, cleanup)
		if lvl := os.Getenv("LIGHTDESK_LOG_LEVEL"); lvl != "" {
			level, err := log.ParseLevel(lvl)
			if err != nil {
				s.Close()
				return nil, err
			}
			log.SetMinLevel(level)
		}
		log.Info(log.CatConfig, "Debug logging enabled", "path", logPath, "config", configFileForSaving())
	}

	provider, err := tracing.NewProvider(cfg.Tracing)
	if err != nil {
		s.Close()
		return nil, fmt.Errorf("initializing tracing: %w", err)
	}
	s.cleanups = append(s.cleanups, func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), tracingShutdownTimeout)
		defer cancel()
		if err := provider.Shutdown(shutdownCtx); err != nil {
			log.ErrorErr(log.CatTrace, "Tracing shutdown failed", err)
		}
	})

	s.ctrl = controller.New(newTransport(cfg), controller.WithContext(ctx))
	s.cleanups = append(s.cleanups, s.ctrl.Close)
	return s, nil
}

// Close releases resources in reverse order of acquisition.
func (s *session) Close() {
	for i := len(s.cleanups) - 1; i >= 0; i-- {
		s.cleanups[i]()
	}
	s.cleanups = nil
}

// load fetches the stored overrides, failing the command when the service
// is unreachable.
func (s *session) load(ctx context.Context) error {
	if err := s.ctrl.Load(ctx); err != nil {
		return fmt.Errorf("loading overrides: %w", err)
	}
	return nil
}
