package cmd

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/phoenixcorp/lightdesk/internal/overrides"
	"github.com/phoenixcorp/lightdesk/internal/resource"
)

var showJSON bool

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the stored overrides",
	Long: `Fetch the overrides from the lighting service and print them.

Examples:
  lightdesk show
  lightdesk show --json | jq '.resourceColors.MANA'`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		sess, err := openSession(cmd.Context())
		if err != nil {
			return err
		}
		defer sess.Close()

		if err := sess.load(cmd.Context()); err != nil {
			return err
		}
		if showJSON {
			return printJSON(cmd.OutOrStdout(), sess.ctrl.State())
		}
		printState(cmd.OutOrStdout(), sess.ctrl.State())
		return nil
	},
}

func init() {
	showCmd.Flags().BoolVar(&showJSON, "json", false, "print the service payload as JSON")
	rootCmd.AddCommand(showCmd)
}

// printJSON writes the payload exactly as it would be sent to the service.
func printJSON(w io.Writer, s overrides.State) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(overrides.Serialize(s)); err != nil {
		return fmt.Errorf("encoding overrides: %w", err)
	}
	return nil
}

func printState(w io.Writer, s overrides.State) {
	for _, f := range overrides.ColorFields() {
		fmt.Fprintf(w, "%-30s %s\n", f.Label(), s.Color(f))
	}
	fmt.Fprintln(w)
	for _, t := range resource.All() {
		fmt.Fprintf(w, "%-30s %s\n", t.Label(), s.ResourceColors[t])
	}
	fmt.Fprintln(w)
	for _, z := range []overrides.Zone{overrides.ZoneHP, overrides.ZoneResource} {
		r := s.Zone(z)
		fmt.Fprintf(w, "%-30s row %d, keys %d-%d\n", string(z)+" zone", r.Row, r.FirstCol, r.LastCol)
	}
}
