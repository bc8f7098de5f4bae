package litscan

import (
	"bytes"
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/redactyl/litscan/internal/detectors"
	"github.com/redactyl/litscan/internal/engine"
	"github.com/redactyl/litscan/internal/report"
)

var flagRulesFile string

func init() {
	cmd := &cobra.Command{
		Use:     "rules",
		Aliases: []string{"detectors"},
		Short:   "List rules with their prefilter literals",
		RunE: func(cmd *cobra.Command, _ []string) error {
			reg, err := loadRegistry(cmd)
			if err != nil {
				return err
			}
			docs := report.NewRuleDocs(reg)
			out := cmd.OutOrStdout()
			if flagJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(docs)
			}
			return report.PrintRules(out, docs, report.PrintOptions{NoColor: !useColor(out, flagNoColor)})
		},
	}

	show := &cobra.Command{
		Use:   "show <id>",
		Short: "Show a rule and its literal summary",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			reg, err := loadRegistry(cmd)
			if err != nil {
				return err
			}
			e, ok := reg.Rule(args[0])
			if !ok {
				return fmt.Errorf("unknown rule %q", args[0])
			}
			doc := struct {
				Rule    detectors.Rule    `yaml:"rule"`
				Summary report.SummaryDoc `yaml:"summary"`
			}{
				Rule:    e.Rule,
				Summary: report.NewSummaryDoc(e.Pattern, e.Summary, e.Prefilter),
			}
			var buf bytes.Buffer
			enc := yaml.NewEncoder(&buf)
			enc.SetIndent(2)
			if err := enc.Encode(doc); err != nil {
				return err
			}
			if err := enc.Close(); err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			return report.Highlight(out, buf.String(), "yaml", useColor(out, flagNoColor))
		},
	}

	for _, c := range []*cobra.Command{cmd, show} {
		c.Flags().StringVar(&flagRulesFile, "rules", "", "YAML rules file replacing or extending the built-in rules")
	}
	cmd.AddCommand(show)
	rootCmd.AddCommand(cmd)
}

// loadRegistry compiles the rules the current directory's config selects.
func loadRegistry(cmd *cobra.Command) (*detectors.Registry, error) {
	cwd, _ := filepath.Abs(".")
	lcfg, gcfg, err := fileConfigs(cwd)
	if err != nil {
		return nil, err
	}
	b, err := literalBuilder(cliLimits(cmd), lcfg, gcfg)
	if err != nil {
		return nil, err
	}
	return engine.Registry(engine.Config{
		Literals:  b,
		RulesFile: pickString(flagRulesFile, lcfg.RulesFile, gcfg.RulesFile),
		Enable:    pickString("", lcfg.Enable, gcfg.Enable),
		Disable:   pickString("", lcfg.Disable, gcfg.Disable),
	})
}
