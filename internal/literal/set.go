package literal

import (
	"sort"
	"strconv"
	"strings"
)

// Literal is one concrete byte sequence. It is a string so it is immutable
// and comparable by value.
type Literal string

// Bytes returns a copy of the literal's bytes.
func (l Literal) Bytes() []byte { return []byte(l) }

// Len returns the literal's length in bytes.
func (l Literal) Len() int { return len(l) }

// Set is a bounded collection of alternative literals at one position.
// A cut set carries no members and means "no usable constraint". It must
// never be read as the empty language.
type Set struct {
	lits []Literal // sorted, deduplicated
	cut  bool
}

// Empty returns a set with no members that is not cut.
func Empty() Set { return Set{} }

// Cut returns the cut sentinel.
func Cut() Set { return Set{cut: true} }

// IsCut reports whether the set exceeded a bound.
func (s Set) IsCut() bool { return s.cut }

// Len returns the number of members; zero for a cut set.
func (s Set) Len() int { return len(s.lits) }

// Literals returns a copy of the members in byte order.
func (s Set) Literals() []Literal {
	if len(s.lits) == 0 {
		return nil
	}
	out := make([]Literal, len(s.lits))
	copy(out, s.lits)
	return out
}

// Strings returns the members as strings in byte order.
func (s Set) Strings() []string {
	out := make([]string, len(s.lits))
	for i, l := range s.lits {
		out[i] = string(l)
	}
	return out
}

// Contains reports whether lit is a member.
func (s Set) Contains(lit Literal) bool {
	i := sort.Search(len(s.lits), func(i int) bool { return s.lits[i] >= lit })
	return i < len(s.lits) && s.lits[i] == lit
}

// HasEmpty reports whether the empty literal is a member. A set holding ""
// constrains nothing even though it is not cut.
func (s Set) HasEmpty() bool { return len(s.lits) > 0 && s.lits[0] == "" }

// MinLen returns the length of the shortest member, or 0 for an empty or cut
// set.
func (s Set) MinLen() int {
	if len(s.lits) == 0 {
		return 0
	}
	m := len(s.lits[0])
	for _, l := range s.lits[1:] {
		if len(l) < m {
			m = len(l)
		}
	}
	return m
}

// Equal reports whether two sets hold the same members and cut state.
func (s Set) Equal(o Set) bool {
	if s.cut != o.cut || len(s.lits) != len(o.lits) {
		return false
	}
	for i := range s.lits {
		if s.lits[i] != o.lits[i] {
			return false
		}
	}
	return true
}

func (s Set) String() string {
	if s.cut {
		return "cut"
	}
	parts := make([]string, len(s.lits))
	for i, l := range s.lits {
		parts[i] = strconv.Quote(string(l))
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

// Limits bounds the size of every set produced during a build.
type Limits struct {
	MaxLen   int // maximum literal length in bytes
	MaxClass int // maximum members per set
}

// Single returns a set holding lit, or a cut set when lit is too long.
func (lim Limits) Single(lit Literal) Set {
	if len(lit) > lim.MaxLen {
		return Cut()
	}
	return Set{lits: []Literal{lit}}
}

// Union returns the alternatives of both sets. The result is cut when
// either side is cut or the distinct member count exceeds MaxClass.
func (lim Limits) Union(a, b Set) Set {
	if a.cut || b.cut {
		return Cut()
	}
	out := make([]Literal, 0, len(a.lits)+len(b.lits))
	i, j := 0, 0
	for i < len(a.lits) || j < len(b.lits) {
		var next Literal
		switch {
		case j >= len(b.lits) || (i < len(a.lits) && a.lits[i] < b.lits[j]):
			next = a.lits[i]
			i++
		case i >= len(a.lits) || b.lits[j] < a.lits[i]:
			next = b.lits[j]
			j++
		default:
			next = a.lits[i]
			i++
			j++
		}
		out = append(out, next)
		if len(out) > lim.MaxClass {
			return Cut()
		}
	}
	return Set{lits: out}
}

// Cross returns every concatenation x+y for x in a and y in b. The result is
// cut when either input is cut or any bound would be exceeded.
func (lim Limits) Cross(a, b Set) Set {
	if a.cut || b.cut {
		return Cut()
	}
	if len(a.lits) == 0 || len(b.lits) == 0 {
		return Empty()
	}
	seen := make(map[Literal]struct{}, len(a.lits)*len(b.lits))
	out := make([]Literal, 0, len(a.lits)*len(b.lits))
	for _, x := range a.lits {
		for _, y := range b.lits {
			if len(x)+len(y) > lim.MaxLen {
				return Cut()
			}
			l := x + y
			if _, ok := seen[l]; ok {
				continue
			}
			seen[l] = struct{}{}
			out = append(out, l)
			if len(out) > lim.MaxClass {
				return Cut()
			}
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return Set{lits: out}
}

// fromLiterals builds a canonical set from arbitrary members.
func (lim Limits) fromLiterals(lits []Literal) Set {
	s := Empty()
	for _, l := range lits {
		s = lim.Union(s, lim.Single(l))
		if s.cut {
			return s
		}
	}
	return s
}
