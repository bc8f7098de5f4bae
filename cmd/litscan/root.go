package litscan

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
)

var (
	flagJSON            bool
	flagSARIF           bool
	flagThreads         int
	flagFailOn          string
	flagNoColor         bool
	flagMinConfidence   float64
	flagDryRun          bool
	flagNoCache         bool
	flagDefaultExcludes bool
	flagNoUpdateCheck   bool
	flagMaxLen          int
	flagMaxClass        int
	flagMaxDepth        int

	version = "0.1.0"

	// exit is replaced in tests.
	exit = os.Exit
)

// rootCmd is the base Cobra command for the litscan CLI.
var rootCmd = &cobra.Command{
	Use:           "litscan",
	Short:         "Extract regex literals and scan for secrets with them",
	Long:          "litscan derives the literal strings every match of a regular expression must contain and uses them to prefilter secret scans of your working tree or history.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the litscan CLI. It should be called by the main package.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		exit(2)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&flagJSON, "json", false, "emit JSON")
	rootCmd.PersistentFlags().BoolVar(&flagSARIF, "sarif", false, "emit SARIF 2.1.0")
	rootCmd.PersistentFlags().IntVar(&flagThreads, "threads", 0, "worker count (0 = GOMAXPROCS)")
	rootCmd.PersistentFlags().StringVar(&flagFailOn, "fail-on", "medium", "fail on low|medium|high")
	rootCmd.PersistentFlags().BoolVar(&flagNoColor, "no-color", false, "disable colorized output")
	rootCmd.PersistentFlags().Float64Var(&flagMinConfidence, "min-confidence", 0.0, "only show findings with confidence >= value (0-1)")
	rootCmd.PersistentFlags().BoolVar(&flagDryRun, "dry-run", false, "show what would be scanned without scanning")
	rootCmd.PersistentFlags().BoolVar(&flagNoCache, "no-cache", false, "disable incremental scan cache")
	rootCmd.PersistentFlags().BoolVar(&flagDefaultExcludes, "default-excludes", true, "apply built-in exclude list (node_modules, dist, images, etc.)")
	rootCmd.PersistentFlags().BoolVar(&flagNoUpdateCheck, "no-update-check", false, "disable update check")
	rootCmd.PersistentFlags().IntVar(&flagMaxLen, "max-len", 0, "longest literal kept, in bytes (0 disables literals)")
	rootCmd.PersistentFlags().IntVar(&flagMaxClass, "max-class", 0, "most alternatives per literal set")
	rootCmd.PersistentFlags().IntVar(&flagMaxDepth, "max-depth", 0, "deepest regex nesting analyzed")
}
