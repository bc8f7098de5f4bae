package literal

import "fmt"

// Kind distinguishes the two shapes of a Summary.
type Kind int

const (
	// KindExact means the set enumerates the whole matched language.
	KindExact Kind = iota
	// KindInexact means only prefix/inner/suffix requirements are known.
	KindInexact
)

func (k Kind) String() string {
	if k == KindExact {
		return "exact"
	}
	return "inexact"
}

// Summary is the literal information derived from one pattern.
//
// An exact summary's set is precisely the set of strings the pattern
// matches. An inexact summary only bounds the language: every match starts
// with a member of Prefix, ends with a member of Suffix and contains a member
// of Inner. Any of the three may be cut, meaning no constraint.
type Summary struct {
	kind   Kind
	exact  Set
	prefix Set
	inner  Set
	suffix Set
	empty  bool
}

// Exact returns an exact summary over set. A cut set cannot enumerate a
// language, so it yields the fully cut inexact summary instead.
func Exact(set Set) Summary {
	if set.cut {
		return Unconstrained(true)
	}
	return Summary{kind: KindExact, exact: set}
}

// Inexact returns an inexact summary from its parts.
func Inexact(prefix, inner, suffix Set, empty bool) Summary {
	return Summary{kind: KindInexact, prefix: prefix, inner: inner, suffix: suffix, empty: empty}
}

// Unconstrained returns an inexact summary with every position cut.
func Unconstrained(empty bool) Summary {
	return Inexact(Cut(), Cut(), Cut(), empty)
}

// Kind returns the summary's shape.
func (s Summary) Kind() Kind { return s.kind }

// IsExact reports whether the summary enumerates the full language.
func (s Summary) IsExact() bool { return s.kind == KindExact }

// ExactSet returns the enumerated language. It is only meaningful for exact
// summaries; inexact summaries return a cut set.
func (s Summary) ExactSet() Set {
	if s.kind != KindExact {
		return Cut()
	}
	return s.exact
}

// Prefix returns the set of required starting literals.
func (s Summary) Prefix() Set { return s.Promote().prefix }

// Inner returns the set of literals of which at least one occurs in every
// match.
func (s Summary) Inner() Set { return s.Promote().inner }

// Suffix returns the set of required ending literals.
func (s Summary) Suffix() Set { return s.Promote().suffix }

// MatchesEmpty reports whether the pattern may match the empty string.
func (s Summary) MatchesEmpty() bool {
	if s.kind == KindExact {
		return s.exact.HasEmpty()
	}
	return s.empty
}

// Promote widens an exact summary into the equivalent inexact one. An
// inexact summary is returned unchanged.
func (s Summary) Promote() Summary {
	if s.kind == KindInexact {
		return s
	}
	set := s.exact
	return Inexact(set, set, set, set.HasEmpty())
}

// Equal reports whether two summaries carry the same information.
func (s Summary) Equal(o Summary) bool {
	if s.kind != o.kind {
		return false
	}
	if s.kind == KindExact {
		return s.exact.Equal(o.exact)
	}
	return s.empty == o.empty &&
		s.prefix.Equal(o.prefix) &&
		s.inner.Equal(o.inner) &&
		s.suffix.Equal(o.suffix)
}

func (s Summary) String() string {
	if s.kind == KindExact {
		return fmt.Sprintf("Exact(%s)", s.exact)
	}
	return fmt.Sprintf("Inexact{prefix: %s, inner: %s, suffix: %s, empty: %t}",
		s.prefix, s.inner, s.suffix, s.empty)
}

// Alternate combines the summaries of two alternatives.
func (lim Limits) Alternate(a, b Summary) Summary {
	if a.kind == KindExact && b.kind == KindExact {
		if u := lim.Union(a.exact, b.exact); !u.cut {
			return Summary{kind: KindExact, exact: u}
		}
	}
	a, b = a.Promote(), b.Promote()
	return Inexact(
		lim.Union(a.prefix, b.prefix),
		lim.Union(a.inner, b.inner),
		lim.Union(a.suffix, b.suffix),
		a.empty || b.empty,
	)
}
