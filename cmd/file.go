package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/phoenixcorp/lightdesk/internal/controller"
	"github.com/phoenixcorp/lightdesk/internal/log"
	"github.com/phoenixcorp/lightdesk/internal/overrides"
	"github.com/phoenixcorp/lightdesk/internal/watcher"
)

var importDryRun bool

var exportCmd = &cobra.Command{
	Use:   "export <file>",
	Short: "Save the stored overrides to a YAML file",
	Long: `Fetch the overrides and write them to a file with hex colors, so they can
be edited by hand and pushed back with 'lightdesk import'.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		sess, err := openSession(ctx)
		if err != nil {
			return err
		}
		defer sess.Close()

		if err := sess.load(ctx); err != nil {
			return err
		}
		if err := overrides.WriteFile(args[0], sess.ctrl.State()); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", args[0])
		return nil
	},
}

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Push an overrides file to the service",
	Long: `Read a YAML or JSON overrides file, print what would change and send it.
Missing fields take their defaults, unknown colors fall back to their defaults.

Examples:
  lightdesk import colors.yaml --dry-run
  lightdesk import colors.yaml`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		sess, err := openSession(ctx)
		if err != nil {
			return err
		}
		defer sess.Close()

		if err := sess.load(ctx); err != nil {
			return err
		}
		return importFile(cmd.OutOrStdout(), sess.ctrl, args[0], importDryRun)
	},
}

var watchCmd = &cobra.Command{
	Use:   "watch <file>",
	Short: "Push an overrides file every time it changes",
	Long: `Import the file once, then again after every save until interrupted.
Rapid successive writes are coalesced (see watch.debounce).`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		sess, err := openSession(ctx)
		if err != nil {
			return err
		}
		defer sess.Close()

		if err := sess.load(ctx); err != nil {
			return err
		}
		return watchFile(ctx, cmd.OutOrStdout(), sess.ctrl, watcher.Config{
			Path:     args[0],
			Debounce: cfg.Watch.Debounce,
		})
	},
}

func init() {
	importCmd.Flags().BoolVar(&importDryRun, "dry-run", false, "print the diff without sending anything")
	rootCmd.AddCommand(exportCmd, importCmd, watchCmd)
}

// importFile diffs the file against the controller state and, unless
// dryRun, replaces the state with it and waits for the save.
func importFile(w io.Writer, ctrl *controller.Controller, path string, dryRun bool) error {
	payload, err := overrides.ReadFile(path)
	if err != nil {
		return err
	}

	diff, err := overrides.Diff(ctrl.State(), overrides.Normalize(payload))
	if err != nil {
		return err
	}
	if diff == "" {
		fmt.Fprintln(w, "No change")
		return nil
	}
	fmt.Fprint(w, diff)
	if dryRun {
		return nil
	}

	ctrl.Replace(payload)
	if err := ctrl.Flush(); err != nil {
		return err
	}
	fmt.Fprintln(w, ctrl.Snapshot().Status)
	return nil
}

// watchFile imports cfg.Path now and after every settled change, until ctx
// is done. Failed imports are reported and watching continues.
func watchFile(ctx context.Context, w io.Writer, ctrl *controller.Controller, cfg watcher.Config) error {
	wt, err := watcher.New(cfg)
	if err != nil {
		return err
	}
	changes, err := wt.Start()
	if err != nil {
		_ = wt.Stop()
		return err
	}
	defer func() { _ = wt.Stop() }()

	report := func() {
		if err := importFile(w, ctrl, cfg.Path, false); err != nil {
			log.ErrorErr(log.CatWatcher, "Import failed", err, "path", cfg.Path)
			fmt.Fprintf(w, "Import failed: %v\n", err)
		}
	}

	report()
	fmt.Fprintf(w, "Watching %s (ctrl+c to stop)\n", cfg.Path)
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-changes:
			log.Debug(log.CatWatcher, "Overrides file changed", "path", cfg.Path)
			report()
		}
	}
}
