package detectors

import (
	"errors"
	"fmt"
	"regexp"
	"regexp/syntax"
	"sort"
	"strconv"

	xxhash "github.com/cespare/xxhash/v2"

	"github.com/redactyl/litscan/internal/literal"
	"github.com/redactyl/litscan/internal/prefilter"
	"github.com/redactyl/litscan/internal/types"
)

// ErrInvalidRule is returned when a rule cannot be compiled.
var ErrInvalidRule = errors.New("invalid rule")

// DefaultConfidence applies to rules that leave Confidence unset.
const DefaultConfidence = 0.8

// Rule is a regex detection rule. When Group is non-zero the reported match
// is that capture group instead of the whole match.
type Rule struct {
	ID         string         `yaml:"id"`
	Pattern    string         `yaml:"pattern"`
	Severity   types.Severity `yaml:"severity"`
	Confidence float64        `yaml:"confidence"`
	Group      int            `yaml:"group"`
}

// Entry is a compiled rule together with its literal summary and the
// prefilter derived from it.
type Entry struct {
	Rule
	Summary   literal.Summary
	Prefilter *prefilter.Prefilter

	re *regexp.Regexp
}

// Registry holds compiled rules in their declaration order. It is immutable
// and safe for concurrent scans.
type Registry struct {
	entries     []*Entry
	byID        map[string]*Entry
	fingerprint string
}

// Compile validates rules and builds a registry. A nil builder uses the
// default literal limits.
func Compile(rules []Rule, b *literal.Builder) (*Registry, error) {
	if b == nil {
		b = literal.NewBuilder()
	}
	reg := &Registry{byID: make(map[string]*Entry, len(rules))}
	h := xxhash.New()
	_, _ = fmt.Fprintf(h, "%d/%d/%d\n", b.Limits().MaxLen, b.Limits().MaxClass, b.MaxDepth())
	for _, r := range rules {
		e, err := compileRule(r, b)
		if err != nil {
			return nil, err
		}
		if _, dup := reg.byID[e.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate id %q", ErrInvalidRule, e.ID)
		}
		reg.entries = append(reg.entries, e)
		reg.byID[e.ID] = e
		_, _ = fmt.Fprintf(h, "%s\x00%s\x00%d\n", e.ID, e.Pattern, e.Group)
	}
	reg.fingerprint = strconv.FormatUint(h.Sum64(), 16)
	return reg, nil
}

func compileRule(r Rule, b *literal.Builder) (*Entry, error) {
	if r.ID == "" {
		return nil, fmt.Errorf("%w: empty id (pattern %q)", ErrInvalidRule, r.Pattern)
	}
	if r.Pattern == "" {
		return nil, fmt.Errorf("%w: %s: empty pattern", ErrInvalidRule, r.ID)
	}
	if r.Severity == "" {
		r.Severity = types.SevMed
	} else if sev, ok := types.ParseSeverity(string(r.Severity)); ok {
		r.Severity = sev
	} else {
		return nil, fmt.Errorf("%w: %s: unknown severity %q", ErrInvalidRule, r.ID, r.Severity)
	}
	if r.Confidence == 0 {
		r.Confidence = DefaultConfidence
	}
	if r.Confidence < 0 || r.Confidence > 1 {
		return nil, fmt.Errorf("%w: %s: confidence %v outside [0,1]", ErrInvalidRule, r.ID, r.Confidence)
	}
	re, err := regexp.Compile(r.Pattern)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidRule, r.ID, err)
	}
	if r.Group < 0 || r.Group > re.NumSubexp() {
		return nil, fmt.Errorf("%w: %s: group %d out of range", ErrInvalidRule, r.ID, r.Group)
	}
	// regexp.Compile parses with syntax.Perl, so this cannot fail here.
	s, err := b.BuildPattern(r.Pattern, syntax.Perl)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidRule, r.ID, err)
	}
	return &Entry{Rule: r, Summary: s, Prefilter: prefilter.New(s), re: re}, nil
}

// Default compiles the built-in rules.
func Default(b *literal.Builder) (*Registry, error) {
	return Compile(Builtin(), b)
}

// Len returns the number of rules.
func (r *Registry) Len() int { return len(r.entries) }

// IDs returns the rule IDs in declaration order.
func (r *Registry) IDs() []string {
	out := make([]string, len(r.entries))
	for i, e := range r.entries {
		out[i] = e.ID
	}
	return out
}

// Rule looks up a compiled rule by ID.
func (r *Registry) Rule(id string) (*Entry, bool) {
	e, ok := r.byID[id]
	return e, ok
}

// Entries returns the compiled rules in declaration order.
func (r *Registry) Entries() []*Entry {
	return append([]*Entry(nil), r.entries...)
}

// Fingerprint changes whenever the rule set or the literal limits change.
// Scan caches use it to invalidate stale entries.
func (r *Registry) Fingerprint() string { return r.fingerprint }

// Select returns a registry restricted to enable (all rules when empty)
// minus disable. Unknown IDs are reported as an error.
func (r *Registry) Select(enable, disable []string) (*Registry, error) {
	if len(enable) == 0 && len(disable) == 0 {
		return r, nil
	}
	var unknown []string
	check := func(ids []string) map[string]bool {
		set := make(map[string]bool, len(ids))
		for _, id := range ids {
			if _, ok := r.byID[id]; !ok {
				unknown = append(unknown, id)
			}
			set[id] = true
		}
		return set
	}
	allowed, blocked := check(enable), check(disable)
	if len(unknown) > 0 {
		sort.Strings(unknown)
		return nil, fmt.Errorf("unknown rule ids: %v", unknown)
	}
	out := &Registry{byID: map[string]*Entry{}}
	h := xxhash.New()
	_, _ = h.WriteString(r.fingerprint)
	for _, e := range r.entries {
		if len(allowed) > 0 && !allowed[e.ID] {
			continue
		}
		if blocked[e.ID] {
			continue
		}
		out.entries = append(out.entries, e)
		out.byID[e.ID] = e
		_, _ = h.WriteString("\x00" + e.ID)
	}
	out.fingerprint = strconv.FormatUint(h.Sum64(), 16)
	return out, nil
}
