package cmd

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/phoenixcorp/lightdesk/internal/controller"
	"github.com/phoenixcorp/lightdesk/internal/overrides"
	"github.com/phoenixcorp/lightdesk/internal/preview"
	"github.com/phoenixcorp/lightdesk/internal/resource"
)

var setCmd = &cobra.Command{
	Use:   "set <field|resource> <color>",
	Short: "Set one color",
	Long: `Set a top-level color (hp, background, resource) or the color of one
resource type (MANA, RAGE, ENERGY, FOCUS, FURY, INSANITY, MAELSTROM, RUNIC_POWER).

Colors may be written as #RRGGBB, RRGGBB, 0xRRGGBB or a decimal number.

Examples:
  lightdesk set hp '#00FF00'
  lightdesk set background 0x102040
  lightdesk set "runic power" 00FFFF`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withLoadedSession(cmd, func(ctrl *controller.Controller) error {
			return setColor(ctrl, args[0], args[1])
		})
	},
}

var zoneCmd = &cobra.Command{
	Use:   "zone <hp|resource> <row> <first-col> <last-col>",
	Short: "Move an indicator bar on the keyboard",
	Long: `Place the HP or resource bar on a keyboard row, spanning the inclusive
column range first-col..last-col.

Example:
  lightdesk zone resource 1 0 11`,
	Args: cobra.ExactArgs(4),
	RunE: func(cmd *cobra.Command, args []string) error {
		zone, r, err := parseZoneArgs(args)
		if err != nil {
			return err
		}
		return withLoadedSession(cmd, func(ctrl *controller.Controller) error {
			ctrl.SetZone(zone, r)
			return nil
		})
	},
}

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Restore the default colors, keeping the zones",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return withLoadedSession(cmd, func(ctrl *controller.Controller) error {
			ctrl.ResetToDefaults()
			return nil
		})
	},
}

var presetCmd = &cobra.Command{
	Use:       "preset <name>",
	Short:     "Apply a named color preset",
	Long:      "Apply every color of a preset. Zones are left as they are.\n\nAvailable presets: " + strings.Join(overrides.PresetNames(), ", "),
	Args:      cobra.ExactArgs(1),
	ValidArgs: overrides.PresetNames(),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withLoadedSession(cmd, func(ctrl *controller.Controller) error {
			_, err := ctrl.ApplyPreset(strings.ToLower(args[0]))
			return err
		})
	},
}

func init() {
	rootCmd.AddCommand(setCmd, zoneCmd, resetCmd, presetCmd)
}

// withLoadedSession loads the stored overrides, runs edit, waits for the
// resulting save and prints the final status line.
func withLoadedSession(cmd *cobra.Command, edit func(*controller.Controller) error) error {
	ctx := cmd.Context()
	sess, err := openSession(ctx)
	if err != nil {
		return err
	}
	defer sess.Close()

	if err := sess.load(ctx); err != nil {
		return err
	}
	return runEdit(cmd.OutOrStdout(), sess.ctrl, edit)
}

func runEdit(w io.Writer, ctrl *controller.Controller, edit func(*controller.Controller) error) error {
	revision := ctrl.Snapshot().Revision
	if err := edit(ctrl); err != nil {
		return err
	}
	if err := ctrl.Flush(); err != nil {
		return err
	}

	snap := ctrl.Snapshot()
	if snap.Revision == revision {
		fmt.Fprintln(w, "No change")
		return nil
	}
	fmt.Fprintln(w, snap.Status)
	return nil
}

func setColor(ctrl *controller.Controller, target, input string) error {
	if field, err := overrides.ParseColorField(target); err == nil {
		if _, ok := ctrl.SetColor(field, input); !ok {
			return fmt.Errorf("invalid color %q", input)
		}
		return nil
	}
	if t, ok := resource.Parse(target); ok {
		if _, ok := ctrl.SetResourceColor(t, input); !ok {
			return fmt.Errorf("invalid color %q", input)
		}
		return nil
	}
	return fmt.Errorf("unknown color %q: use hp, background, resource or a resource type", target)
}

func parseZoneArgs(args []string) (overrides.Zone, overrides.Range, error) {
	zone, err := overrides.ParseZone(args[0])
	if err != nil {
		return "", overrides.Range{}, err
	}

	var nums [3]int
	for i, name := range []string{"row", "first-col", "last-col"} {
		n, err := strconv.Atoi(args[i+1])
		if err != nil {
			return "", overrides.Range{}, fmt.Errorf("%s must be a number, got %q", name, args[i+1])
		}
		nums[i] = n
	}
	r := overrides.Range{Row: nums[0], FirstCol: nums[1], LastCol: nums[2]}

	switch {
	case r.Row < 0 || r.Row >= preview.Rows:
		return "", overrides.Range{}, fmt.Errorf("row must be between 0 and %d, got %d", preview.Rows-1, r.Row)
	case r.FirstCol < 0 || r.LastCol >= preview.Columns:
		return "", overrides.Range{}, fmt.Errorf("columns must be between 0 and %d", preview.Columns-1)
	case r.FirstCol > r.LastCol:
		return "", overrides.Range{}, fmt.Errorf("first-col %d is after last-col %d", r.FirstCol, r.LastCol)
	}
	return zone, r, nil
}
