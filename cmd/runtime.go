package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/phoenixcorp/lightdesk/internal/controller"
)

func runtimeCommand(use, short string, action func(*controller.Controller) func(context.Context) error) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			sess, err := openSession(ctx)
			if err != nil {
				return err
			}
			defer sess.Close()

			if err := action(sess.ctrl)(ctx); err != nil {
				return fmt.Errorf("%s: %w", sess.ctrl.Snapshot().Status, err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), sess.ctrl.Snapshot().Status)
			return nil
		},
	}
}

func init() {
	rootCmd.AddCommand(
		runtimeCommand("start", "Start the lighting runtime",
			func(c *controller.Controller) func(context.Context) error { return c.Start }),
		runtimeCommand("stop", "Stop the lighting runtime",
			func(c *controller.Controller) func(context.Context) error { return c.Stop }),
		runtimeCommand("define-area", "Ask the service to prompt for the OCR capture area",
			func(c *controller.Controller) func(context.Context) error { return c.DefineArea }),
	)
}
