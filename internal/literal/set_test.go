package literal

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var defaults = Limits{MaxLen: DefaultMaxLiteralLen, MaxClass: DefaultMaxClassSize}

func setOf(lim Limits, ss ...string) Set {
	out := make([]Literal, len(ss))
	for i, s := range ss {
		out[i] = Literal(s)
	}
	return lim.fromLiterals(out)
}

func TestSet_EmptyIsNotCut(t *testing.T) {
	s := Empty()
	assert.False(t, s.IsCut())
	assert.Equal(t, 0, s.Len())
	assert.False(t, s.HasEmpty())
	assert.Equal(t, "{}", s.String())
	assert.Equal(t, "cut", Cut().String())
}

func TestSet_Single(t *testing.T) {
	lim := Limits{MaxLen: 3, MaxClass: 4}
	assert.Equal(t, []string{"abc"}, lim.Single("abc").Strings())
	assert.True(t, lim.Single("abcd").IsCut())
	assert.True(t, lim.Single("").HasEmpty())
}

func TestSet_UnionDedupAndSorts(t *testing.T) {
	lim := Limits{MaxLen: 10, MaxClass: 3}
	u := lim.Union(setOf(lim, "b", "a"), setOf(lim, "a", "c"))
	require.False(t, u.IsCut())
	assert.Equal(t, []string{"a", "b", "c"}, u.Strings())

	assert.True(t, lim.Union(u, lim.Single("d")).IsCut())
	assert.True(t, lim.Union(Cut(), lim.Single("a")).IsCut())
	assert.True(t, lim.Union(lim.Single("a"), Cut()).IsCut())
}

func TestSet_UnionCommutes(t *testing.T) {
	a := setOf(defaults, "x", "yy", "")
	b := setOf(defaults, "yy", "zzz")
	assert.True(t, defaults.Union(a, b).Equal(defaults.Union(b, a)))
}

func TestSet_Cross(t *testing.T) {
	lim := Limits{MaxLen: 4, MaxClass: 4}
	c := lim.Cross(setOf(lim, "a", "b"), setOf(lim, "x", "y"))
	assert.Equal(t, []string{"ax", "ay", "bx", "by"}, c.Strings())

	// count bound
	assert.True(t, lim.Cross(setOf(lim, "a", "b", "c"), setOf(lim, "x", "y")).IsCut())
	// length bound
	assert.True(t, lim.Cross(setOf(lim, "abc"), setOf(lim, "de")).IsCut())
	// cut inputs
	assert.True(t, lim.Cross(Cut(), setOf(lim, "a")).IsCut())
	assert.True(t, lim.Cross(setOf(lim, "a"), Cut()).IsCut())
	// the empty language annihilates
	assert.Equal(t, 0, lim.Cross(Empty(), setOf(lim, "a")).Len())
	assert.False(t, lim.Cross(Empty(), setOf(lim, "a")).IsCut())
}

func TestSet_CrossCollapsesDuplicates(t *testing.T) {
	lim := Limits{MaxLen: 10, MaxClass: 3}
	// a+bc and ab+c both give abc
	c := lim.Cross(setOf(lim, "a", "ab"), setOf(lim, "bc", "c"))
	require.False(t, c.IsCut())
	assert.Equal(t, []string{"abbc", "abc", "ac"}, c.Strings())
}

func TestSet_Stronger(t *testing.T) {
	long := setOf(defaults, "abcd")
	short := setOf(defaults, "ab")
	many := setOf(defaults, "abcd", "efgh")
	withEmpty := setOf(defaults, "", "abcdef")

	assert.True(t, long.Stronger(short))
	assert.True(t, long.Stronger(many))
	assert.True(t, short.Stronger(withEmpty))
	assert.True(t, short.Stronger(Cut()))
	assert.True(t, Empty().Stronger(long))
	assert.False(t, Cut().Stronger(withEmpty))
	assert.False(t, long.Stronger(long))
}
