package report

import (
	"fmt"
	"io"
	"sort"
	"strconv"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/olekukonko/tablewriter"

	"github.com/redactyl/litscan/internal/types"
)

type PrintOptions struct {
	NoColor      bool
	Duration     time.Duration
	FilesScanned int
	FilesCached  int
	RulesRun     int
	RulesSkipped int
}

var sevStyles = map[types.Severity]lipgloss.Style{
	types.SevHigh: lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
	types.SevMed:  lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
	types.SevLow:  lipgloss.NewStyle().Foreground(lipgloss.Color("14")),
}

// PrintTable writes findings as a table followed by a summary footer.
func PrintTable(w io.Writer, findings []types.Finding, opts PrintOptions) error {
	sort.SliceStable(findings, func(i, j int) bool {
		if findings[i].Path == findings[j].Path {
			return findings[i].Line < findings[j].Line
		}
		return findings[i].Path < findings[j].Path
	})
	if len(findings) == 0 {
		fmt.Fprintln(w, "No secrets found ✅")
	} else {
		table := tablewriter.NewWriter(w)
		table.Header("Severity", "Detector", "Location", "Commit", "Match")
		for _, f := range findings {
			sev := string(f.Severity)
			if !opts.NoColor {
				if st, ok := sevStyles[f.Severity]; ok {
					sev = st.Render(sev)
				}
			}
			loc := f.Path + ":" + strconv.Itoa(f.Line)
			if f.Column > 0 {
				loc += ":" + strconv.Itoa(f.Column)
			}
			if err := table.Append(sev, f.Detector, loc, f.Commit, maskValue(f.Match)); err != nil {
				return err
			}
		}
		if err := table.Render(); err != nil {
			return err
		}
	}

	high, med, low := 0, 0, 0
	for _, f := range findings {
		switch f.Severity {
		case types.SevHigh:
			high++
		case types.SevMed:
			med++
		default:
			low++
		}
	}
	// Summary footer (always show if we have stats)
	if opts.Duration > 0 || opts.FilesScanned > 0 || opts.FilesCached > 0 {
		fmt.Fprintln(w)
		fmt.Fprintf(w, "Findings: %d (high: %d, medium: %d, low: %d)\n", len(findings), high, med, low)
		if opts.Duration > 0 {
			fmt.Fprintf(w, "Scan duration: %.2fs\n", opts.Duration.Seconds())
		}
		if opts.FilesScanned > 0 || opts.FilesCached > 0 {
			fmt.Fprintf(w, "Files scanned: %d (cached: %d)\n", opts.FilesScanned, opts.FilesCached)
		}
		if total := opts.RulesRun + opts.RulesSkipped; total > 0 {
			fmt.Fprintf(w, "Rules run: %d, skipped by prefilter: %d (%.0f%%)\n",
				opts.RulesRun, opts.RulesSkipped, 100*float64(opts.RulesSkipped)/float64(total))
		}
	}
	return nil
}

func maskValue(s string) string {
	if len(s) <= 8 {
		return "********"
	}
	return s[:4] + "…" + s[len(s)-4:]
}
