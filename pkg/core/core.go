package core

import (
	"context"
	"regexp/syntax"

	"github.com/redactyl/litscan/internal/detectors"
	"github.com/redactyl/litscan/internal/engine"
	"github.com/redactyl/litscan/internal/literal"
	"github.com/redactyl/litscan/internal/prefilter"
	"github.com/redactyl/litscan/internal/types"
)

// Re-export selected internal types as a stable public API surface.
type (
	Summary   = literal.Summary
	Set       = literal.Set
	Prefilter = prefilter.Prefilter
	Config    = engine.Config
	Result    = engine.Result
	Finding   = types.Finding
)

// Options bounds literal extraction. Nil limits keep the defaults;
// MaxLiteralLen may be set to 0 to derive no literals at all.
type Options struct {
	MaxLiteralLen *int
	MaxClassSize  *int
	MaxDepth      *int
	FoldCase      bool
}

// Limit returns a pointer to n for use in Options.
func Limit(n int) *int { return &n }

func (o Options) builder() *literal.Builder {
	b := literal.NewBuilder()
	if o.MaxLiteralLen != nil {
		b.LimitLen(*o.MaxLiteralLen)
	}
	if o.MaxClassSize != nil {
		b.LimitClass(*o.MaxClassSize)
	}
	if o.MaxDepth != nil {
		b.LimitDepth(*o.MaxDepth)
	}
	return b
}

// Literals parses pattern with Perl syntax and returns its literal summary.
func Literals(pattern string, opts Options) (Summary, error) {
	flags := syntax.Perl
	if opts.FoldCase {
		flags |= syntax.FoldCase
	}
	return opts.builder().BuildPattern(pattern, flags)
}

// NewPrefilter chooses the cheapest sound prefilter for s.
func NewPrefilter(s Summary) *Prefilter { return prefilter.New(s) }

// Scan is the stable entrypoint for other programs.
func Scan(ctx context.Context, cfg Config) ([]Finding, error) {
	return engine.Scan(ctx, cfg)
}

// ScanWithStats runs a scan and returns findings with timing and prefilter
// statistics.
func ScanWithStats(ctx context.Context, cfg Config) (Result, error) {
	return engine.ScanWithStats(ctx, cfg)
}

// RuleIDs returns the IDs of the built-in rules in declaration order.
func RuleIDs() []string {
	ids := make([]string, 0, len(detectors.Builtin()))
	for _, r := range detectors.Builtin() {
		ids = append(ids, r.ID)
	}
	return ids
}
