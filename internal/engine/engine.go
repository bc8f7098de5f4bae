package engine

import (
	"context"
	"fmt"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"sync"
	"time"

	doublestar "github.com/bmatcuk/doublestar/v4"
	"golang.org/x/sync/errgroup"

	"github.com/redactyl/litscan/internal/cache"
	"github.com/redactyl/litscan/internal/detectors"
	"github.com/redactyl/litscan/internal/git"
	"github.com/redactyl/litscan/internal/ignore"
	"github.com/redactyl/litscan/internal/literal"
	"github.com/redactyl/litscan/internal/types"
)

// Config controls scanning behavior including scope, performance, and filters.
type Config struct {
	Root            string
	IncludeGlobs    string // comma-separated
	ExcludeGlobs    string // comma-separated
	MaxBytes        int64  // 0 means no limit
	Threads         int
	HistoryCommits  int
	Enable          string // comma-separated rule IDs
	Disable         string
	MinConfidence   float64
	DefaultExcludes bool
	NoCache         bool
	DryRun          bool

	// Literals configures prefilter derivation. Nil uses the defaults.
	Literals *literal.Builder
	// RulesFile replaces or extends the built-in rules.
	RulesFile string
	// Registry, when set, is used instead of compiling rules from the
	// fields above; Enable and Disable still apply.
	Registry *detectors.Registry

	// Progress is called once per processed file. Calls are serialized.
	Progress func()
}

// Result contains findings and basic scan statistics.
type Result struct {
	Findings      []types.Finding
	FilesScanned  int
	FilesCached   int
	RulesRun      int
	RulesSkipped  int
	Duration      time.Duration
	DryRunTargets []string // files that would be scanned, DryRun only
}

// Registry compiles the rule set described by cfg.
func Registry(cfg Config) (*detectors.Registry, error) {
	reg := cfg.Registry
	if reg == nil {
		rules := detectors.Builtin()
		if cfg.RulesFile != "" {
			custom, err := detectors.LoadRulesFile(cfg.RulesFile)
			if err != nil {
				return nil, err
			}
			rules = custom
		}
		var err error
		if reg, err = detectors.Compile(rules, cfg.Literals); err != nil {
			return nil, err
		}
	}
	return reg.Select(splitList(cfg.Enable), splitList(cfg.Disable))
}

// Scan runs a scan and returns only findings (without stats).
func Scan(ctx context.Context, cfg Config) ([]types.Finding, error) {
	res, err := ScanWithStats(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return res.Findings, nil
}

// collector gathers worker output under a mutex.
type collector struct {
	mu       sync.Mutex
	cfg      Config
	res      *Result
	findings []types.Finding
	clean    map[string]string
}

// add records a scanned file. A file is clean only when no rule matched at
// all; findings dropped by MinConfidence still keep it out of the cache.
func (c *collector) add(rel, hash string, all []types.Finding, stats detectors.Stats) {
	fs := filterByConfidence(all, c.cfg.MinConfidence)
	c.mu.Lock()
	defer c.mu.Unlock()
	c.res.FilesScanned++
	c.res.RulesRun += stats.RulesRun
	c.res.RulesSkipped += stats.RulesSkipped
	c.findings = append(c.findings, fs...)
	if len(all) == 0 && hash != "" {
		c.clean[rel] = hash
	}
	if c.cfg.Progress != nil {
		c.cfg.Progress()
	}
}

func (c *collector) cached() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.res.FilesCached++
	if c.cfg.Progress != nil {
		c.cfg.Progress()
	}
}

func (c *collector) target(rel string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.res.DryRunTargets = append(c.res.DryRunTargets, rel)
	if c.cfg.Progress != nil {
		c.cfg.Progress()
	}
}

// ScanWithStats runs a scan and returns findings along with timing and counts.
// The working tree is scanned unless HistoryCommits is set, in which case
// the blobs changed by the last HistoryCommits commits are scanned instead.
func ScanWithStats(ctx context.Context, cfg Config) (Result, error) {
	var result Result
	started := time.Now()

	reg, err := Registry(cfg)
	if err != nil {
		return result, fmt.Errorf("load rules: %w", err)
	}
	if cfg.Threads <= 0 {
		cfg.Threads = runtime.GOMAXPROCS(0)
	}

	db := cache.DB{Rules: reg.Fingerprint(), Entries: map[string]string{}}
	if !cfg.NoCache && !cfg.DryRun && cfg.HistoryCommits == 0 {
		db = cache.LoadFor(cfg.Root, reg.Fingerprint())
	}
	col := &collector{cfg: cfg, res: &result, clean: map[string]string{}}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.Threads)

	var ranks map[string]int
	if cfg.HistoryCommits > 0 {
		ranks, err = scanHistory(gctx, cfg, reg, g, col)
	} else {
		err = scanFilesystem(gctx, cfg, reg, db, g, col)
	}
	if werr := g.Wait(); err == nil {
		err = werr
	}
	if err != nil {
		return result, err
	}

	fs := col.findings
	if ranks != nil {
		fs = dedupeNewest(fs, ranks)
	}
	result.Findings = sortFindings(fs)
	sort.Strings(result.DryRunTargets)
	result.Duration = time.Since(started)
	if !cfg.NoCache && !cfg.DryRun && cfg.HistoryCommits == 0 {
		for k, v := range col.clean {
			db.Entries[k] = v
		}
		_ = cache.Save(cfg.Root, db)
	}
	return result, nil
}

func scanFilesystem(ctx context.Context, cfg Config, reg *detectors.Registry, db cache.DB, g *errgroup.Group, col *collector) error {
	ign, _ := ignore.Load(filepath.Join(cfg.Root, ignore.FileName))
	return Walk(ctx, cfg, ign, func(rel string, data []byte) {
		if cfg.DryRun {
			col.target(rel)
			return
		}
		g.Go(func() error {
			h := ""
			if !cfg.NoCache {
				h = cache.Hash(data)
				if db.Entries[rel] == h {
					col.cached()
					return nil
				}
			}
			fs, stats := reg.Scan(rel, data)
			col.add(rel, h, fs, stats)
			return nil
		})
	})
}

// scanHistory queues the blobs of recent commits and returns each short
// commit hash ranked from newest (0).
func scanHistory(ctx context.Context, cfg Config, reg *detectors.Registry, g *errgroup.Group, col *collector) (map[string]int, error) {
	entries, err := git.LastNCommits(cfg.Root, cfg.HistoryCommits)
	if err != nil {
		return nil, fmt.Errorf("read history: %w", err)
	}
	ign, _ := ignore.Load(filepath.Join(cfg.Root, ignore.FileName))
	ranks := make(map[string]int, len(entries))
	for i, e := range entries {
		commit := shortHash(e.Hash)
		ranks[commit] = i
		for p, blob := range e.Files {
			if err := ctx.Err(); err != nil {
				return ranks, err
			}
			if !selectBlob(cfg, ign, p, blob) {
				continue
			}
			if cfg.DryRun {
				col.target(p + "@" + commit)
				continue
			}
			g.Go(func() error {
				fs, stats := reg.Scan(p, blob)
				for i := range fs {
					fs[i].Commit = commit
				}
				col.add(p, "", fs, stats)
				return nil
			})
		}
	}
	return ranks, nil
}

func shortHash(h string) string {
	if len(h) > 12 {
		return h[:12]
	}
	return h
}

// selectBlob applies the walk filters to a file read from history.
func selectBlob(cfg Config, ign ignore.Matcher, p string, blob []byte) bool {
	if !allowedByGlobs(p, cfg) || ign.Match(p) {
		return false
	}
	if cfg.MaxBytes > 0 && int64(len(blob)) > cfg.MaxBytes {
		return false
	}
	if cfg.DefaultExcludes && isDefaultFileExcluded(strings.ToLower(p)) {
		return false
	}
	return !looksBinary(blob) && !detectors.IgnoresFile(blob)
}

func filterByConfidence(fs []types.Finding, min float64) []types.Finding {
	if min <= 0 {
		return fs
	}
	var out []types.Finding
	for _, f := range fs {
		if f.Confidence >= min {
			out = append(out, f)
		}
	}
	return out
}

// dedupeNewest collapses a secret found in several commits into the finding
// from the newest one.
func dedupeNewest(fs []types.Finding, ranks map[string]int) []types.Finding {
	seen := make(map[string]int, len(fs))
	var out []types.Finding
	for _, f := range fs {
		i, ok := seen[f.Key()]
		if !ok {
			seen[f.Key()] = len(out)
			out = append(out, f)
			continue
		}
		if ranks[f.Commit] < ranks[out[i].Commit] {
			out[i] = f
		}
	}
	return out
}

func sortFindings(fs []types.Finding) []types.Finding {
	sort.Slice(fs, func(i, j int) bool {
		a, b := fs[i], fs[j]
		switch {
		case a.Path != b.Path:
			return a.Path < b.Path
		case a.Line != b.Line:
			return a.Line < b.Line
		case a.Column != b.Column:
			return a.Column < b.Column
		}
		return a.Detector < b.Detector
	})
	return fs
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// allowedByGlobs returns true if the given path is allowed by the include/exclude
// glob configuration. Include globs are comma-separated and, if provided, act as
// a positive filter. Exclude globs are subtracted last.
func allowedByGlobs(relPath string, cfg Config) bool {
	rp := strings.ReplaceAll(relPath, "\\", "/")
	includes := parseGlobsList(cfg.IncludeGlobs)
	excludes := parseGlobsList(cfg.ExcludeGlobs)
	if len(includes) > 0 && !matchAnyGlob(rp, includes) {
		return false
	}
	if len(excludes) > 0 && matchAnyGlob(rp, excludes) {
		return false
	}
	return true
}

func parseGlobsList(s string) []string {
	var out []string
	for _, p := range splitList(s) {
		out = append(out, p, trimGlobPrefix(p))
	}
	return out
}

func matchAnyGlob(pathToMatch string, globs []string) bool {
	for _, g := range globs {
		if ok, _ := doublestar.Match(g, pathToMatch); ok {
			return true
		}
		if ok, _ := doublestar.Match(g, filepath.Base(pathToMatch)); ok {
			return true
		}
	}
	return false
}

func trimGlobPrefix(g string) string {
	s := strings.TrimPrefix(g, "./")
	for strings.HasPrefix(s, "**/") {
		s = strings.TrimPrefix(s, "**/")
	}
	return s
}
