package litscan

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/redactyl/litscan/internal/config"
	"github.com/redactyl/litscan/internal/detectors"
	"github.com/redactyl/litscan/internal/literal"
	"github.com/redactyl/litscan/internal/report"
	"github.com/redactyl/litscan/internal/types"
)

var (
	cfgPreset   string
	cfgOutput   string
	cfgEnable   string
	cfgDisable  string
	cfgMaxBytes int64
	cfgMaxLen   int
	cfgMaxClass int
	cfgForce    bool
)

func init() {
	cfgCmd := &cobra.Command{Use: "config", Short: "Configuration helpers"}
	rootCmd.AddCommand(cfgCmd)

	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Generate a .litscan.yml with selected rules and limits",
		RunE:  runConfigInit,
	}
	initCmd.Flags().StringVar(&cfgPreset, "preset", "standard", "rule preset: minimal | standard")
	initCmd.Flags().StringVar(&cfgOutput, "output", ".litscan.yml", "output file path")
	initCmd.Flags().StringVar(&cfgEnable, "enable", "", "comma-separated rule IDs to enable (overrides preset if set)")
	initCmd.Flags().StringVar(&cfgDisable, "disable", "", "comma-separated rule IDs to disable")
	initCmd.Flags().Int64Var(&cfgMaxBytes, "max-bytes", 1<<20, "skip files larger than this")
	initCmd.Flags().IntVar(&cfgMaxLen, "max-literal-len", 0, "longest literal kept (0 = built-in default)")
	initCmd.Flags().IntVar(&cfgMaxClass, "max-class-size", 0, "most alternatives per literal set (0 = built-in default)")
	initCmd.Flags().BoolVar(&cfgForce, "force", false, "overwrite an existing file")

	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Print the merged configuration of the current directory",
		Args:  cobra.NoArgs,
		RunE:  runConfigShow,
	}
	cfgCmd.AddCommand(initCmd, showCmd)
}

// minimalPreset keeps the high-severity rules.
func minimalPreset() []string {
	var ids []string
	for _, r := range detectors.Builtin() {
		if r.Severity == types.SevHigh {
			ids = append(ids, r.ID)
		}
	}
	return ids
}

func runConfigInit(cmd *cobra.Command, _ []string) error {
	enable := strings.TrimSpace(cfgEnable)
	if enable == "" && strings.EqualFold(cfgPreset, "minimal") {
		enable = strings.Join(minimalPreset(), ",")
	} else if enable == "" && !strings.EqualFold(cfgPreset, "standard") {
		return fmt.Errorf("unknown preset %q", cfgPreset)
	}

	fc := config.FileConfig{
		MaxBytes:        &cfgMaxBytes,
		Enable:          optStrPtr(enable),
		Disable:         optStrPtr(cfgDisable),
		DefaultExcludes: boolPtr(true),
	}
	if cfgMaxLen > 0 || cfgMaxClass > 0 {
		fc.Literals = &config.LiteralsConfig{MaxLiteralLen: intPtr(cfgMaxLen), MaxClassSize: intPtr(cfgMaxClass)}
	}
	if err := fc.Validate(); err != nil {
		return err
	}

	if !cfgForce {
		if _, err := os.Stat(cfgOutput); err == nil {
			return fmt.Errorf("%s exists (use --force to overwrite)", cfgOutput)
		}
	}
	b, err := yaml.Marshal(&fc)
	if err != nil {
		return err
	}
	if err := os.WriteFile(cfgOutput, b, 0o644); err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), "Wrote", cfgOutput)
	return nil
}

func runConfigShow(cmd *cobra.Command, _ []string) error {
	cwd, _ := filepath.Abs(".")
	lcfg, gcfg, err := fileConfigs(cwd)
	if err != nil {
		return err
	}
	cfg, err := engineConfig(cmd, cwd, lcfg, gcfg)
	if err != nil {
		return err
	}
	view := struct {
		Root            string  `yaml:"root"`
		Include         string  `yaml:"include,omitempty"`
		Exclude         string  `yaml:"exclude,omitempty"`
		MaxBytes        int64   `yaml:"max_bytes"`
		Threads         int     `yaml:"threads"`
		History         int     `yaml:"history"`
		Enable          string  `yaml:"enable,omitempty"`
		Disable         string  `yaml:"disable,omitempty"`
		MinConfidence   float64 `yaml:"min_confidence"`
		DefaultExcludes bool    `yaml:"default_excludes"`
		RulesFile       string  `yaml:"rules_file,omitempty"`
		MaxLiteralLen   int     `yaml:"max_literal_len"`
		MaxClassSize    int     `yaml:"max_class_size"`
		MaxDepth        int     `yaml:"max_depth"`
	}{
		Root:            cfg.Root,
		Include:         cfg.IncludeGlobs,
		Exclude:         cfg.ExcludeGlobs,
		MaxBytes:        cfg.MaxBytes,
		Threads:         cfg.Threads,
		History:         cfg.HistoryCommits,
		Enable:          cfg.Enable,
		Disable:         cfg.Disable,
		MinConfidence:   cfg.MinConfidence,
		DefaultExcludes: cfg.DefaultExcludes,
		RulesFile:       cfg.RulesFile,
	}
	lb := cfg.Literals
	if lb == nil {
		lb = literal.NewBuilder()
	}
	view.MaxLiteralLen = lb.Limits().MaxLen
	view.MaxClassSize = lb.Limits().MaxClass
	view.MaxDepth = lb.MaxDepth()

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(view); err != nil {
		return err
	}
	if err := enc.Close(); err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	return report.Highlight(out, buf.String(), "yaml", useColor(out, flagNoColor))
}

func optStrPtr(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

func intPtr(v int) *int {
	if v == 0 {
		return nil
	}
	return &v
}

func boolPtr(v bool) *bool { return &v }
