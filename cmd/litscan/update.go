package litscan

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/redactyl/litscan/internal/update"
)

var (
	flagUpdateCheck bool

	// Replaced in tests.
	applyUpdate = update.Apply
	checkUpdate = update.Check
)

func init() {
	cmd := &cobra.Command{
		Use:   "update",
		Short: "Update litscan to the latest release",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()
			current := buildVersion()
			if flagUpdateCheck {
				latest, newer, err := checkUpdate(current, false)
				if err != nil {
					return err
				}
				if newer {
					fmt.Fprintf(out, "new version available: v%s (current v%s)\n", latest, current)
				} else {
					fmt.Fprintf(out, "litscan %s is up to date\n", current)
				}
				return nil
			}
			v, err := applyUpdate(current)
			if err != nil {
				return fmt.Errorf("self-update: %w", err)
			}
			fmt.Fprintf(out, "updated to v%s\n", v)
			return nil
		},
	}
	cmd.Flags().BoolVar(&flagUpdateCheck, "check", false, "only report whether a newer release exists")
	rootCmd.AddCommand(cmd)
}
