package sigv4

import "sort"

// =============================================================================
// Ordered Parameters
// =============================================================================

// Pair is a single key/value element of a query string or header set.
type Pair struct {
	Key   string
	Value string
}

// Params is a small ordered collection of key/value pairs. Pairs are kept
// sorted in ascending byte order of key at all times, which is the order AWS
// v4 canonicalization requires, so iteration never needs a sorting pass.
//
// The zero value is an empty collection ready for use.
type Params struct {
	pairs []Pair
}

// NewParams returns an empty Params with room for n pairs.
func NewParams(n int) *Params {
	return &Params{pairs: make([]Pair, 0, n)}
}

// Len returns the number of stored pairs.
func (p *Params) Len() int {
	return len(p.pairs)
}

// Get returns the value stored under key.
func (p *Params) Get(key string) (string, bool) {
	i := p.search(key)
	if i < len(p.pairs) && p.pairs[i].Key == key {
		return p.pairs[i].Value, true
	}
	return "", false
}

// Insert adds a key/value pair, keeping the collection sorted. Inserting a
// key that is already present merges the two values into a single
// comma-space separated value, matching how HTTP folds repeated fields.
func (p *Params) Insert(key, value string) {
	i := p.search(key)
	if i < len(p.pairs) && p.pairs[i].Key == key {
		p.pairs[i].Value += ", " + value
		return
	}
	p.pairs = append(p.pairs, Pair{})
	copy(p.pairs[i+1:], p.pairs[i:])
	p.pairs[i] = Pair{Key: key, Value: value}
}

// Remove deletes the pair stored under key and returns it.
func (p *Params) Remove(key string) (Pair, bool) {
	i := p.search(key)
	if i >= len(p.pairs) || p.pairs[i].Key != key {
		return Pair{}, false
	}
	pair := p.pairs[i]
	p.pairs = append(p.pairs[:i], p.pairs[i+1:]...)
	return pair, true
}

// Pairs returns the stored pairs in ascending key order. The returned slice
// is the internal storage and must not be mutated by the caller.
func (p *Params) Pairs() []Pair {
	return p.pairs
}

func (p *Params) search(key string) int {
	return sort.Search(len(p.pairs), func(i int) bool {
		return p.pairs[i].Key >= key
	})
}
