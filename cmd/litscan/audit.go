package litscan

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/redactyl/litscan/internal/audit"
)

var (
	flagAuditPath  string
	flagAuditLimit int
)

func init() {
	cmd := &cobra.Command{
		Use:   "audit",
		Short: "Show past scans recorded in the audit log",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			abs, _ := filepath.Abs(flagAuditPath)
			log := audit.New(abs)
			recs, err := log.History()
			if err != nil {
				return fmt.Errorf("no scans recorded for %s: %w", abs, err)
			}
			if flagAuditLimit > 0 && len(recs) > flagAuditLimit {
				recs = recs[:flagAuditLimit]
			}
			out := cmd.OutOrStdout()
			if flagJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(recs)
			}
			table := tablewriter.NewWriter(out)
			table.Header("Time", "Findings", "New", "Files", "Skipped", "Duration")
			for _, r := range recs {
				skipped := "-"
				if total := r.RulesRun + r.RulesSkipped; total > 0 {
					skipped = fmt.Sprintf("%.0f%%", float64(r.RulesSkipped)/float64(total)*100)
				}
				if err := table.Append(
					r.Timestamp.Local().Format("2006-01-02 15:04:05"),
					strconv.Itoa(r.TotalFindings),
					strconv.Itoa(r.NewFindings),
					strconv.Itoa(r.FilesScanned),
					skipped,
					r.Duration,
				); err != nil {
					return err
				}
			}
			if err := table.Render(); err != nil {
				return err
			}
			fmt.Fprintf(out, "%d scans in %s\n", len(recs), log.Path())
			return nil
		},
	}
	cmd.Flags().StringVarP(&flagAuditPath, "path", "p", ".", "repository root")
	cmd.Flags().IntVarP(&flagAuditLimit, "limit", "n", 20, "show at most N scans (0 = all)")
	rootCmd.AddCommand(cmd)
}
