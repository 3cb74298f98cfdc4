package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/phoenixcorp/lightdesk/internal/config"
	"github.com/phoenixcorp/lightdesk/internal/overrides"
	"github.com/phoenixcorp/lightdesk/internal/preview"
)

var (
	previewHP       float64
	previewResource float64
	previewKeyboard bool
)

var previewCmd = &cobra.Command{
	Use:   "preview",
	Short: "Draw the HP and resource bars with the stored colors",
	Long: `Render the bars at the given fill levels. Defaults come from the preview
section of the config.

Examples:
  lightdesk preview --hp 30 --resource 90
  lightdesk preview --keyboard`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		p := cfg.Preview
		if cmd.Flags().Changed("hp") {
			p.HPPercent = previewHP
		}
		if cmd.Flags().Changed("resource") {
			p.ResourcePercent = previewResource
		}
		if err := config.ValidatePreview(p); err != nil {
			return err
		}

		ctx := cmd.Context()
		sess, err := openSession(ctx)
		if err != nil {
			return err
		}
		defer sess.Close()

		if err := sess.load(ctx); err != nil {
			return err
		}
		renderPreview(cmd.OutOrStdout(), sess.ctrl.State(), p, previewKeyboard)
		return nil
	},
}

func init() {
	previewCmd.Flags().Float64Var(&previewHP, "hp", 0, "HP fill level in percent")
	previewCmd.Flags().Float64Var(&previewResource, "resource", 0, "resource fill level in percent")
	previewCmd.Flags().BoolVarP(&previewKeyboard, "keyboard", "k", false, "draw the whole keyboard instead of two strips")
	rootCmd.AddCommand(previewCmd)
}

func renderPreview(w io.Writer, s overrides.State, p config.PreviewConfig, keyboard bool) {
	if keyboard {
		fmt.Fprintln(w, preview.RenderMatrix(preview.Keyboard(s, p.HPPercent, p.ResourcePercent)))
		return
	}
	fmt.Fprintf(w, "%-10s %4.0f%% %s\n", "HP", p.HPPercent,
		preview.RenderStrip(preview.Strip(p.HPPercent, p.Width, s.HPColor, s.BackgroundColor)))
	fmt.Fprintf(w, "%-10s %4.0f%% %s\n", "Resource", p.ResourcePercent,
		preview.RenderStrip(preview.Strip(p.ResourcePercent, p.Width, s.ResourceColor, s.BackgroundColor)))
}
