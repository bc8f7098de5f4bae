package literal

import (
	"regexp/syntax"
	"unicode"
	"unicode/utf8"
)

// Default builder limits.
const (
	DefaultMaxLiteralLen = 250
	DefaultMaxClassSize  = 10
	// DefaultMaxDepth matches the nesting limit of regexp/syntax.
	DefaultMaxDepth = 1000
)

// Builder derives a Summary from a parsed regular expression. Its
// configuration is only read during Build, so one Builder may serve
// concurrent builds.
type Builder struct {
	limitLen   int
	limitClass int
	limitDepth int
}

// NewBuilder returns a Builder with the default limits.
func NewBuilder() *Builder {
	return &Builder{
		limitLen:   DefaultMaxLiteralLen,
		limitClass: DefaultMaxClassSize,
		limitDepth: DefaultMaxDepth,
	}
}

// LimitLen sets the maximum literal length in bytes. Negative values are
// treated as zero.
func (b *Builder) LimitLen(n int) *Builder {
	b.limitLen = max(n, 0)
	return b
}

// LimitClass sets the maximum number of alternatives per set. It is at
// least one so the empty-string set stays representable.
func (b *Builder) LimitClass(n int) *Builder {
	b.limitClass = max(n, 1)
	return b
}

// LimitDepth sets the deepest syntax tree nesting that is analyzed.
// Deeper subtrees are summarized as unconstrained.
func (b *Builder) LimitDepth(n int) *Builder {
	b.limitDepth = max(n, 1)
	return b
}

// Limits returns the set bounds used by Build.
func (b *Builder) Limits() Limits {
	return Limits{MaxLen: b.limitLen, MaxClass: b.limitClass}
}

// MaxDepth returns the configured depth guard.
func (b *Builder) MaxDepth() int { return b.limitDepth }

// Build derives the literal summary of re. It never fails: shapes it cannot
// describe degrade to cut sets.
func (b *Builder) Build(re *syntax.Regexp) Summary {
	if re == nil {
		return Unconstrained(true)
	}
	s, positional := b.build(re, 1)
	if positional {
		// Assertions restrict where a match may occur, which a set of
		// strings cannot express.
		s = s.Promote()
	}
	return s
}

// BuildPattern parses pattern with flags and builds its summary.
func (b *Builder) BuildPattern(pattern string, flags syntax.Flags) (Summary, error) {
	re, err := syntax.Parse(pattern, flags)
	if err != nil {
		return Summary{}, err
	}
	return b.Build(re), nil
}

// build returns the summary of re and whether it contains a zero-width
// assertion.
func (b *Builder) build(re *syntax.Regexp, depth int) (Summary, bool) {
	if depth > b.limitDepth {
		return Unconstrained(true), false
	}
	lim := b.Limits()
	switch re.Op {
	case syntax.OpNoMatch:
		return Exact(Empty()), false
	case syntax.OpEmptyMatch:
		return Exact(lim.Single("")), false
	case syntax.OpLiteral:
		return b.literal(re), false
	case syntax.OpCharClass:
		return b.class(re.Rune), false
	case syntax.OpAnyChar, syntax.OpAnyCharNotNL:
		return Unconstrained(false), false
	case syntax.OpBeginLine, syntax.OpEndLine,
		syntax.OpBeginText, syntax.OpEndText,
		syntax.OpWordBoundary, syntax.OpNoWordBoundary:
		return Exact(lim.Single("")), true
	case syntax.OpCapture:
		if len(re.Sub) != 1 {
			return Unconstrained(true), false
		}
		return b.build(re.Sub[0], depth+1)
	case syntax.OpStar:
		return b.repeat(re, 0, -1, depth)
	case syntax.OpPlus:
		return b.repeat(re, 1, -1, depth)
	case syntax.OpQuest:
		return b.repeat(re, 0, 1, depth)
	case syntax.OpRepeat:
		return b.repeat(re, re.Min, re.Max, depth)
	case syntax.OpConcat:
		if len(re.Sub) == 0 {
			return Exact(lim.Single("")), false
		}
		acc, positional := b.build(re.Sub[0], depth+1)
		for _, sub := range re.Sub[1:] {
			s, p := b.build(sub, depth+1)
			acc = lim.Concat(acc, s)
			positional = positional || p
		}
		return acc, positional
	case syntax.OpAlternate:
		if len(re.Sub) == 0 {
			return Exact(Empty()), false
		}
		acc, positional := b.build(re.Sub[0], depth+1)
		for _, sub := range re.Sub[1:] {
			s, p := b.build(sub, depth+1)
			acc = lim.Alternate(acc, s)
			positional = positional || p
		}
		return acc, positional
	default:
		return Unconstrained(true), false
	}
}

func (b *Builder) repeat(re *syntax.Regexp, min, max, depth int) (Summary, bool) {
	if len(re.Sub) != 1 {
		return Unconstrained(true), false
	}
	unit, positional := b.build(re.Sub[0], depth+1)
	return b.Limits().Repeat(unit, min, max), positional
}

func (b *Builder) literal(re *syntax.Regexp) Summary {
	for _, r := range re.Rune {
		if r == utf8.RuneError {
			// U+FFFD also matches invalid UTF-8 input bytes.
			return Unconstrained(false)
		}
	}
	lim := b.Limits()
	if re.Flags&syntax.FoldCase == 0 {
		set := lim.Single(Literal(string(re.Rune)))
		if set.cut {
			return Unconstrained(false)
		}
		return Exact(set)
	}
	if len(re.Rune) == 0 {
		return Exact(lim.Single(""))
	}
	acc := b.class(foldOrbit(re.Rune[0]))
	for _, r := range re.Rune[1:] {
		acc = lim.Concat(acc, b.class(foldOrbit(r)))
	}
	return acc
}

// class expands a character class given as lo, hi range pairs. Classes
// larger than the class limit are not enumerated.
func (b *Builder) class(ranges []rune) Summary {
	lim := b.Limits()
	n := 0
	for i := 0; i+1 < len(ranges); i += 2 {
		lo, hi := ranges[i], ranges[i+1]
		if lo <= utf8.RuneError && utf8.RuneError <= hi {
			return Unconstrained(false)
		}
		n += int(hi-lo) + 1
		if n > lim.MaxClass {
			return Unconstrained(false)
		}
	}
	lits := make([]Literal, 0, n)
	for i := 0; i+1 < len(ranges); i += 2 {
		for r := ranges[i]; r <= ranges[i+1]; r++ {
			lits = append(lits, Literal(string(r)))
		}
	}
	set := lim.fromLiterals(lits)
	if set.cut {
		return Unconstrained(false)
	}
	return Exact(set)
}

// foldOrbit returns the case-folding equivalents of r as single-rune ranges.
func foldOrbit(r rune) []rune {
	out := []rune{r, r}
	for f := unicode.SimpleFold(r); f != r; f = unicode.SimpleFold(f) {
		out = append(out, f, f)
	}
	return out
}
