package litscan

import (
	"errors"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/redactyl/litscan/internal/config"
	"github.com/redactyl/litscan/internal/literal"
	"github.com/redactyl/litscan/internal/report"
)

// fileConfigs loads the repo-local and global config files. Missing files
// are not errors; invalid ones are.
func fileConfigs(root string) (local, global config.FileConfig, err error) {
	local, err = config.LoadLocal(root)
	if err != nil && !errors.Is(err, config.ErrNotFound) {
		return local, global, err
	}
	global, err = config.LoadGlobal()
	if err != nil && !errors.Is(err, config.ErrNotFound) {
		return local, global, err
	}
	return local, global, nil
}

// literalBuilder merges literal limits with CLI > local > global precedence.
// Only the CLI fields that are set take part. It returns a nil builder when
// no layer sets a limit.
func literalBuilder(cli config.LiteralsConfig, local, global config.FileConfig) (*literal.Builder, error) {
	l, g := literalsOf(local), literalsOf(global)
	merged := config.FileConfig{Literals: &config.LiteralsConfig{
		MaxLiteralLen: firstInt(cli.MaxLiteralLen, l.MaxLiteralLen, g.MaxLiteralLen),
		MaxClassSize:  firstInt(cli.MaxClassSize, l.MaxClassSize, g.MaxClassSize),
		MaxDepth:      firstInt(cli.MaxDepth, l.MaxDepth, g.MaxDepth),
	}}
	if err := merged.Validate(); err != nil {
		return nil, err
	}
	return merged.Builder(), nil
}

func literalsOf(fc config.FileConfig) config.LiteralsConfig {
	if fc.Literals == nil {
		return config.LiteralsConfig{}
	}
	return *fc.Literals
}

func firstInt(vs ...*int) *int {
	for _, v := range vs {
		if v != nil {
			return v
		}
	}
	return nil
}

// cliLimits returns the literal limits set on the command line.
func cliLimits(cmd *cobra.Command) config.LiteralsConfig {
	var l config.LiteralsConfig
	if changed(cmd, "max-len") {
		l.MaxLiteralLen = &flagMaxLen
	}
	if changed(cmd, "max-class") {
		l.MaxClassSize = &flagMaxClass
	}
	if changed(cmd, "max-depth") {
		l.MaxDepth = &flagMaxDepth
	}
	return l
}

// useColor reports whether output to w should be colorized.
func useColor(w io.Writer, noColor bool) bool {
	if noColor || os.Getenv("NO_COLOR") != "" {
		return false
	}
	f, ok := w.(*os.File)
	return ok && report.IsTerminal(f)
}

// changed reports whether the named flag was set on the command line.
func changed(cmd *cobra.Command, name string) bool {
	f := cmd.Flags().Lookup(name)
	return f != nil && f.Changed
}

func pickString(cli string, local, global *string) string {
	if cli != "" {
		return cli
	}
	if local != nil && *local != "" {
		return *local
	}
	if global != nil && *global != "" {
		return *global
	}
	return ""
}

func pickInt(cli int, local, global *int) int {
	if cli != 0 {
		return cli
	}
	if local != nil && *local != 0 {
		return *local
	}
	if global != nil && *global != 0 {
		return *global
	}
	return 0
}

func pickInt64(cli int64, local, global *int64) int64 {
	if cli != 0 {
		return cli
	}
	if local != nil && *local != 0 {
		return *local
	}
	if global != nil && *global != 0 {
		return *global
	}
	return 0
}

func pickFloat(cli float64, local, global *float64) float64 {
	if cli != 0 {
		return cli
	}
	if local != nil && *local != 0 {
		return *local
	}
	if global != nil && *global != 0 {
		return *global
	}
	return 0
}

func pickBool(cli bool, local, global *bool) bool {
	if cli {
		return true
	}
	if local != nil {
		return *local
	}
	if global != nil {
		return *global
	}
	return false
}

// pickBoolDefault is pickBool for flags that default to true: an explicit
// flag wins, then the files, then def.
func pickBoolDefault(explicit bool, cli bool, local, global *bool, def bool) bool {
	switch {
	case explicit:
		return cli
	case local != nil:
		return *local
	case global != nil:
		return *global
	}
	return def
}
