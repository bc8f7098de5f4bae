package litscan

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/redactyl/litscan/internal/audit"
	"github.com/redactyl/litscan/internal/cache"
	"github.com/redactyl/litscan/internal/config"
	"github.com/redactyl/litscan/internal/engine"
	"github.com/redactyl/litscan/internal/git"
	"github.com/redactyl/litscan/internal/report"
	"github.com/redactyl/litscan/internal/types"
)

var (
	flagPath     string
	flagHistory  int
	flagInclude  string
	flagExclude  string
	flagMaxBytes int64
	flagEnable   string
	flagDisable  string
	flagRules    string
	flagBaseline string
	flagNoAudit  bool
)

func init() {
	cmd := &cobra.Command{
		Use:   "scan",
		Short: "Scan files for secrets",
		RunE:  runScan,
	}
	rootCmd.AddCommand(cmd)

	cmd.Flags().StringVarP(&flagPath, "path", "p", ".", "path to scan")
	cmd.Flags().IntVar(&flagHistory, "history", 0, "scan last N commits (0=off)")
	cmd.Flags().StringVar(&flagInclude, "include", "", "comma-separated include globs")
	cmd.Flags().StringVar(&flagExclude, "exclude", "", "comma-separated exclude globs")
	cmd.Flags().Int64Var(&flagMaxBytes, "max-bytes", 1<<20, "skip files larger than this")
	cmd.Flags().StringVar(&flagEnable, "enable", "", "only run these rules (comma-separated IDs)")
	cmd.Flags().StringVar(&flagDisable, "disable", "", "disable these rules (comma-separated IDs)")
	cmd.Flags().StringVar(&flagRules, "rules", "", "YAML rules file replacing or extending the built-in rules")
	cmd.Flags().StringVar(&flagBaseline, "baseline", "", "baseline file (default <path>/"+report.DefaultBaselineFile+")")
	cmd.Flags().BoolVar(&flagNoAudit, "no-audit", false, "do not record this scan in the audit log")
}

// engineConfig merges flags with the config files: CLI > local > global.
func engineConfig(cmd *cobra.Command, root string, lcfg, gcfg config.FileConfig) (engine.Config, error) {
	b, err := literalBuilder(cliLimits(cmd), lcfg, gcfg)
	if err != nil {
		return engine.Config{}, err
	}
	rules := pickString(flagRules, lcfg.RulesFile, gcfg.RulesFile)
	if rules != "" && !filepath.IsAbs(rules) {
		rules = filepath.Join(root, rules)
	}
	return engine.Config{
		Root:            root,
		IncludeGlobs:    pickString(flagInclude, lcfg.Include, gcfg.Include),
		ExcludeGlobs:    pickString(flagExclude, lcfg.Exclude, gcfg.Exclude),
		MaxBytes:        pickInt64(flagMaxBytes, lcfg.MaxBytes, gcfg.MaxBytes),
		Threads:         pickInt(flagThreads, lcfg.Threads, gcfg.Threads),
		HistoryCommits:  pickInt(flagHistory, lcfg.History, gcfg.History),
		Enable:          pickString(flagEnable, lcfg.Enable, gcfg.Enable),
		Disable:         pickString(flagDisable, lcfg.Disable, gcfg.Disable),
		MinConfidence:   pickFloat(flagMinConfidence, lcfg.MinConfidence, gcfg.MinConfidence),
		DefaultExcludes: pickBoolDefault(changed(cmd, "default-excludes"), flagDefaultExcludes, lcfg.DefaultExcludes, gcfg.DefaultExcludes, true),
		NoCache:         flagNoCache,
		DryRun:          flagDryRun,
		Literals:        b,
		RulesFile:       rules,
	}, nil
}

func runScan(cmd *cobra.Command, _ []string) error {
	abs, _ := filepath.Abs(flagPath)
	lcfg, gcfg, err := fileConfigs(abs)
	if err != nil {
		return err
	}
	cfg, err := engineConfig(cmd, abs, lcfg, gcfg)
	if err != nil {
		return err
	}
	reg, err := engine.Registry(cfg)
	if err != nil {
		return err
	}
	cfg.Registry = reg
	failOn := flagFailOn
	if !changed(cmd, "fail-on") {
		failOn = pickString("", lcfg.FailOn, gcfg.FailOn)
		if failOn == "" {
			failOn = flagFailOn
		}
	}
	noColor := pickBool(flagNoColor, lcfg.NoColor, gcfg.NoColor)
	machine := flagJSON || flagSARIF
	out := cmd.OutOrStdout()

	// Friendly banner before scanning
	if !machine {
		if !flagNoUpdateCheck {
			if latest, newer, _ := checkUpdate(buildVersion(), false); newer && latest != "" {
				fmt.Fprintf(os.Stderr, "(new version available: v%s)  run 'litscan update' to upgrade\n", latest)
			}
		}
		fmt.Fprintf(os.Stderr, "Scanning %s with %d rules...\n", abs, reg.Len())
	}

	// Optional progress bar: simple textual bar
	total := 0
	if !machine && report.IsTerminal(os.Stderr) {
		total, _ = engine.CountTargets(cfg)
	}
	progressed := 0
	if total > 0 {
		cfg.Progress = func() {
			progressed++
			if progressed%10 == 0 || progressed == total {
				pct := float64(progressed) / float64(total) * 100
				fmt.Fprintf(os.Stderr, "\r[%d/%d] %.0f%%", progressed, total, pct)
			}
		}
	}
	res, err := engine.ScanWithStats(cmd.Context(), cfg)
	if err != nil {
		return fmt.Errorf("scan error: %w", err)
	}
	if total > 0 {
		fmt.Fprintln(os.Stderr)
	}

	if cfg.DryRun {
		for _, p := range res.DryRunTargets {
			fmt.Fprintln(out, p)
		}
		fmt.Fprintf(os.Stderr, "%d files would be scanned\n", len(res.DryRunTargets))
		return nil
	}
	_ = cache.SaveResults(abs, res.Findings)

	basePath := flagBaseline
	if basePath == "" {
		basePath = filepath.Join(abs, report.DefaultBaselineFile)
	}
	baseline, err := report.LoadBaseline(basePath)
	if err != nil && !os.IsNotExist(err) {
		fmt.Fprintf(os.Stderr, "warning: %v\n", err)
	}
	newFindings := report.FilterNewFindings(res.Findings, baseline)
	if newFindings == nil {
		newFindings = []types.Finding{}
	} // no `null` in JSON

	if !flagNoAudit {
		rec := audit.NewRecord(abs, res.Findings, newFindings, audit.Stats{
			FilesScanned: res.FilesScanned,
			FilesCached:  res.FilesCached,
			RulesRun:     res.RulesRun,
			RulesSkipped: res.RulesSkipped,
			Duration:     res.Duration,
		}, basePath)
		if err := audit.New(abs).Append(rec); err != nil {
			fmt.Fprintf(os.Stderr, "warning: %v\n", err)
		}
	}

	switch {
	case flagSARIF:
		meta, _ := git.RepoMetadata(abs)
		opts := report.SARIFOptions{
			Version: buildVersion(),
			Meta:    meta,
			Stats: map[string]int{
				"filesScanned": res.FilesScanned,
				"filesCached":  res.FilesCached,
				"rulesRun":     res.RulesRun,
				"rulesSkipped": res.RulesSkipped,
			},
		}
		if err := report.WriteSARIFWithOptions(out, newFindings, opts); err != nil {
			return fmt.Errorf("sarif error: %w", err)
		}
	case flagJSON:
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(newFindings); err != nil {
			return err
		}
	default:
		err := report.PrintTable(out, newFindings, report.PrintOptions{
			NoColor:      noColor || !useColor(out, false),
			Duration:     res.Duration,
			FilesScanned: res.FilesScanned,
			FilesCached:  res.FilesCached,
			RulesRun:     res.RulesRun,
			RulesSkipped: res.RulesSkipped,
		})
		if err != nil {
			return err
		}
		if n := len(res.Findings) - len(newFindings); n > 0 {
			fmt.Fprintf(os.Stderr, "%d findings hidden by baseline %s\n", n, basePath)
		}
	}

	if report.ShouldFail(newFindings, failOn) {
		exit(1)
	}
	return nil
}
