// Package literal derives literal prefilter information from parsed regular
// expressions.
//
// A Builder walks a regexp/syntax tree and produces a Summary: either the
// exact, finite set of strings the pattern matches, or the sets of literals
// every match must start with, end with, or contain. Sets are bounded by a
// maximum literal length and a maximum number of alternatives; a set that
// would exceed them is cut, which consumers must read as "anything may occur
// here". The derivation is sound: a string the pattern can match is never
// excluded by the summary.
//
//	b := literal.NewBuilder().LimitClass(16)
//	s, err := b.BuildPattern(`(foo|bar)[0-9]+`, syntax.Perl)
//	if err != nil { /* invalid pattern */ }
//	fmt.Println(s.Prefix()) // {"bar0", ..., "foo9"} or a shorter cut fallback
package literal
