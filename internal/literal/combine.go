package literal

// Concat combines the summaries of two adjacent pieces, a followed by b.
//
// While both sides are exact the result is their cross product. Once that
// is no longer possible the prefix stops growing: it is a's exact set
// extended by b's prefix, or a's frozen prefix. The suffix grows through
// exact pieces and restarts at b's suffix otherwise. Inner keeps the
// strongest substring requirement among the candidates.
func (lim Limits) Concat(a, b Summary) Summary {
	if a.kind == KindExact && b.kind == KindExact {
		if c := lim.Cross(a.exact, b.exact); !c.cut {
			return Summary{kind: KindExact, exact: c}
		}
	}
	pa, pb := a.Promote(), b.Promote()

	prefix := pa.prefix
	if a.kind == KindExact {
		prefix = orElse(lim.Cross(a.exact, pb.prefix), a.exact)
	}

	suffix := pb.suffix
	if b.kind == KindExact {
		suffix = orElse(lim.Cross(pa.suffix, b.exact), b.exact)
	}

	inner := pa.inner
	for _, c := range []Set{pb.inner, lim.Cross(pa.suffix, pb.prefix), prefix, suffix} {
		if c.Stronger(inner) {
			inner = c
		}
	}
	return Inexact(prefix, inner, suffix, pa.empty && pb.empty)
}

// Repeat combines max-min+1 alternatives of the unit repeated min..max
// times. A negative max means no upper bound.
func (lim Limits) Repeat(unit Summary, min, max int) Summary {
	if min < 0 {
		min = 0
	}
	if max < 0 {
		return lim.repeatUnbounded(unit, min)
	}
	if max < min {
		return Exact(Empty())
	}
	pow := Exact(lim.Single(""))
	var acc Summary
	for k := 0; k <= max; k++ {
		switch {
		case k == 1:
			pow = unit
		case k > 1:
			pow = lim.Concat(pow, unit)
		}
		if k < min {
			continue
		}
		if k == min {
			acc = pow
		} else {
			acc = lim.Alternate(acc, pow)
		}
		if acc.saturated() && k < max {
			// Further counts cannot add information; they can only add
			// the possibility of an empty match.
			acc.empty = acc.empty || unit.MatchesEmpty()
			break
		}
	}
	return acc
}

func (lim Limits) repeatUnbounded(unit Summary, min int) Summary {
	pu := unit.Promote()
	if min == 0 {
		none := lim.Single("")
		return Inexact(
			lim.Union(none, pu.prefix),
			lim.Union(none, pu.inner),
			lim.Union(none, pu.suffix),
			true,
		)
	}
	base := lim.Repeat(unit, min, min).Promote()
	inner := base.inner
	for _, c := range []Set{base.prefix, pu.suffix} {
		if c.Stronger(inner) {
			inner = c
		}
	}
	return Inexact(base.prefix, inner, pu.suffix, unit.MatchesEmpty())
}

// saturated reports whether the summary constrains nothing at any position.
func (s Summary) saturated() bool {
	return s.kind == KindInexact && s.prefix.cut && s.inner.cut && s.suffix.cut
}

// Usable reports whether the set is a real filter: not cut and without the
// empty literal, which every string contains.
func (s Set) Usable() bool { return !s.cut && !s.HasEmpty() }

// Stronger reports whether s is a more selective requirement than o. An
// empty, uncut set (nothing can match) is the strongest; otherwise longer
// shortest members win, then fewer members.
func (s Set) Stronger(o Set) bool {
	us, uo := s.Usable(), o.Usable()
	if us != uo {
		return us
	}
	if !us {
		return false
	}
	if (s.Len() == 0) != (o.Len() == 0) {
		return s.Len() == 0
	}
	if s.MinLen() != o.MinLen() {
		return s.MinLen() > o.MinLen()
	}
	return s.Len() < o.Len()
}

func orElse(s, fallback Set) Set {
	if s.cut {
		return fallback
	}
	return s
}
