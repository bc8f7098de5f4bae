package litscan

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/redactyl/litscan/internal/cache"
	"github.com/redactyl/litscan/internal/engine"
	"github.com/redactyl/litscan/internal/report"
	"github.com/redactyl/litscan/internal/types"
)

var (
	flagBaselinePath     string
	flagBaselineFromLast bool
)

func init() {
	cmd := &cobra.Command{
		Use:   "baseline",
		Short: "Manage baselines",
	}

	update := &cobra.Command{
		Use:   "update",
		Short: "Update baseline from current scan",
		RunE: func(cmd *cobra.Command, _ []string) error {
			abs, _ := filepath.Abs(flagBaselinePath)
			var findings []types.Finding
			if flagBaselineFromLast {
				last, err := cache.LoadResults(abs)
				if err != nil {
					return fmt.Errorf("no previous scan of %s: %w", abs, err)
				}
				findings = last.Findings
			} else {
				lcfg, gcfg, err := fileConfigs(abs)
				if err != nil {
					return err
				}
				// Scan flags keep their defaults here, so the files decide.
				cfg, err := engineConfig(cmd, abs, lcfg, gcfg)
				if err != nil {
					return err
				}
				cfg.DryRun = false
				findings, err = engine.Scan(cmd.Context(), cfg)
				if err != nil {
					return err
				}
			}
			out := filepath.Join(abs, report.DefaultBaselineFile)
			if err := report.SaveBaseline(out, findings); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Baseline updated with %d findings.\n", len(findings))
			return nil
		},
	}
	update.Flags().StringVarP(&flagBaselinePath, "path", "p", ".", "repository root")
	update.Flags().BoolVar(&flagBaselineFromLast, "from-last", false, "use the findings of the last scan instead of scanning again")

	rootCmd.AddCommand(cmd)
	cmd.AddCommand(update)
}
