// Package prefilter turns a literal summary into a fast byte scan that is
// consulted before running a regular expression.
package prefilter

import (
	"bytes"
	"strings"

	ahocorasick "github.com/petar-dambovaliev/aho-corasick"

	"github.com/redactyl/litscan/internal/literal"
)

// Kind says which part of a summary the prefilter scans for.
type Kind string

const (
	KindAlways Kind = "always" // no usable literal; every input is a candidate
	KindNever  Kind = "never"  // the pattern cannot match anything
	KindExact  Kind = "exact"
	KindPrefix Kind = "prefix"
	KindInner  Kind = "inner"
	KindSuffix Kind = "suffix"
)

// Prefilter reports whether input may contain a match. It never rejects
// input that the pattern it was built from would match. A Prefilter is
// immutable and safe for concurrent use.
type Prefilter struct {
	kind Kind
	lits []string
	ac   *ahocorasick.AhoCorasick // set when there is more than one literal
}

// New builds a prefilter from s.
func New(s literal.Summary) *Prefilter {
	if s.IsExact() {
		set := s.ExactSet()
		switch {
		case set.Len() == 0:
			return &Prefilter{kind: KindNever}
		case set.HasEmpty():
			return &Prefilter{kind: KindAlways}
		}
		return newScan(KindExact, set)
	}
	// Ties go to the anchored positions.
	kind, best := KindPrefix, s.Prefix()
	if suf := s.Suffix(); suf.Stronger(best) {
		kind, best = KindSuffix, suf
	}
	if in := s.Inner(); in.Stronger(best) {
		kind, best = KindInner, in
	}
	if !best.Usable() {
		return &Prefilter{kind: KindAlways}
	}
	if best.Len() == 0 {
		return &Prefilter{kind: KindNever}
	}
	return newScan(kind, best)
}

func newScan(kind Kind, set literal.Set) *Prefilter {
	p := &Prefilter{kind: kind, lits: set.Strings()}
	if len(p.lits) > 1 {
		b := ahocorasick.NewAhoCorasickBuilder(ahocorasick.Opts{
			MatchKind: ahocorasick.LeftMostFirstMatch,
			DFA:       true,
		})
		ac := b.Build(p.lits)
		p.ac = &ac
	}
	return p
}

// Kind returns which summary position the prefilter scans for.
func (p *Prefilter) Kind() Kind { return p.kind }

// Literals returns the literals scanned for, in byte order.
func (p *Prefilter) Literals() []string {
	return append([]string(nil), p.lits...)
}

// Match reports whether data may contain a match.
func (p *Prefilter) Match(data []byte) bool {
	switch p.kind {
	case KindAlways:
		return true
	case KindNever:
		return false
	}
	if len(p.lits) == 1 {
		return bytes.Contains(data, []byte(p.lits[0]))
	}
	return p.IndexString(string(data)) >= 0
}

// MatchString is Match for text already held as a string.
func (p *Prefilter) MatchString(s string) bool {
	switch p.kind {
	case KindAlways:
		return true
	case KindNever:
		return false
	}
	return p.IndexString(s) >= 0
}

// Index returns the offset of the first candidate literal in data, or -1.
// An always-prefilter returns 0.
func (p *Prefilter) Index(data []byte) int {
	if len(p.lits) == 1 && p.kind != KindAlways && p.kind != KindNever {
		return bytes.Index(data, []byte(p.lits[0]))
	}
	return p.IndexString(string(data))
}

// IndexString is Index for a string.
func (p *Prefilter) IndexString(s string) int {
	switch p.kind {
	case KindAlways:
		return 0
	case KindNever:
		return -1
	}
	if p.ac == nil {
		return strings.Index(s, p.lits[0])
	}
	m := p.ac.Iter(s).Next()
	if m == nil {
		return -1
	}
	return m.Start()
}

func (p *Prefilter) String() string {
	switch p.kind {
	case KindAlways, KindNever:
		return string(p.kind)
	}
	return string(p.kind) + "[" + strings.Join(p.Literals(), " | ") + "]"
}
