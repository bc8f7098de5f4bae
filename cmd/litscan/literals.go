package litscan

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"regexp/syntax"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"

	"github.com/redactyl/litscan/internal/literal"
	"github.com/redactyl/litscan/internal/prefilter"
	"github.com/redactyl/litscan/internal/report"
)

var (
	flagLitYAML bool
	flagLitFold bool
	flagLitCopy bool
	flagLitFile string
)

// copyToClipboard is replaced in tests.
var copyToClipboard = clipboard.WriteAll

func init() {
	cmd := &cobra.Command{
		Use:   "literals [pattern...]",
		Short: "Show the literal summary and prefilter of regular expressions",
		Example: `  litscan literals 'ghp_[A-Za-z0-9]{36}'
  litscan literals --json 'foo|bar' '(?i)secret'
  litscan literals --file patterns.txt --max-class 4`,
		RunE: runLiterals,
	}
	rootCmd.AddCommand(cmd)

	cmd.Flags().BoolVar(&flagLitYAML, "yaml", false, "emit YAML")
	cmd.Flags().BoolVar(&flagLitFold, "fold", false, "parse patterns case-insensitively")
	cmd.Flags().BoolVar(&flagLitCopy, "copy", false, "copy the prefilter literals to the clipboard")
	cmd.Flags().StringVarP(&flagLitFile, "file", "f", "", "read patterns from a file, one per line")
}

func runLiterals(cmd *cobra.Command, args []string) error {
	patterns := append([]string(nil), args...)
	if flagLitFile != "" {
		more, err := readPatterns(flagLitFile)
		if err != nil {
			return err
		}
		patterns = append(patterns, more...)
	}
	if len(patterns) == 0 {
		return fmt.Errorf("no patterns given")
	}

	cwd, _ := filepath.Abs(".")
	lcfg, gcfg, err := fileConfigs(cwd)
	if err != nil {
		return err
	}
	b, err := literalBuilder(cliLimits(cmd), lcfg, gcfg)
	if err != nil {
		return err
	}
	if b == nil {
		b = literal.NewBuilder()
	}
	flags := syntax.Perl
	if flagLitFold {
		flags |= syntax.FoldCase
	}

	docs := make([]report.SummaryDoc, 0, len(patterns))
	for _, p := range patterns {
		s, err := b.BuildPattern(p, flags)
		if err != nil {
			return fmt.Errorf("parse %q: %w", p, err)
		}
		docs = append(docs, report.NewSummaryDoc(p, s, prefilter.New(s)))
	}

	out := cmd.OutOrStdout()
	switch {
	case flagJSON:
		err = report.WriteSummaryJSON(out, docs)
	case flagLitYAML:
		err = report.WriteSummaryYAML(out, docs)
	default:
		err = report.PrintSummary(out, docs, report.PrintOptions{NoColor: !useColor(out, flagNoColor)})
	}
	if err != nil {
		return err
	}

	if flagLitCopy {
		var lits []string
		for _, d := range docs {
			lits = append(lits, d.Prefilter.Literals...)
		}
		if err := copyToClipboard(strings.Join(lits, "\n")); err != nil {
			fmt.Fprintf(os.Stderr, "warning: copy to clipboard failed: %v\n", err)
		} else {
			fmt.Fprintf(os.Stderr, "copied %d literals to clipboard\n", len(lits))
		}
	}
	return nil
}

// readPatterns reads one pattern per line, skipping blank lines and lines
// starting with '#'.
func readPatterns(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	var out []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := strings.TrimRight(sc.Text(), "\r")
		if strings.TrimSpace(line) == "" || strings.HasPrefix(strings.TrimSpace(line), "#") {
			continue
		}
		out = append(out, line)
	}
	return out, sc.Err()
}
