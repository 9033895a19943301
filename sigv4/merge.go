package sigv4

// =============================================================================
// Sorted Merge
// =============================================================================

// A PairSource yields pairs in ascending key order. It returns false once
// exhausted and must keep returning false on every later call.
type PairSource func() (Pair, bool)

// SlicePairs returns a PairSource over pairs, which must already be in
// ascending key order.
func SlicePairs(pairs []Pair) PairSource {
	i := 0
	return func() (Pair, bool) {
		if i >= len(pairs) {
			return Pair{}, false
		}
		p := pairs[i]
		i++
		return p, true
	}
}

// Merge returns a PairSource yielding the sorted union of a and b. Both
// inputs must already be sorted; the result is then sorted as well, so
// merges compose. When the two sides carry an equal key, a's pair is
// yielded before b's. At most one pair per side is buffered.
func Merge(a, b PairSource) PairSource {
	var abuf, bbuf *Pair
	return func() (Pair, bool) {
		if abuf == nil {
			if p, ok := a(); ok {
				abuf = &p
			}
		}
		if bbuf == nil {
			if p, ok := b(); ok {
				bbuf = &p
			}
		}

		switch {
		case abuf == nil && bbuf == nil:
			return Pair{}, false
		case bbuf == nil, abuf != nil && abuf.Key <= bbuf.Key:
			p := *abuf
			abuf = nil
			return p, true
		default:
			p := *bbuf
			bbuf = nil
			return p, true
		}
	}
}

// MergedPairs materializes the sorted union of two sorted pair slices.
func MergedPairs(a, b []Pair) []Pair {
	out := make([]Pair, 0, len(a)+len(b))
	next := Merge(SlicePairs(a), SlicePairs(b))
	for p, ok := next(); ok; p, ok = next() {
		out = append(out, p)
	}
	return out
}
