package sigv4

import (
	"math/rand"
	"sort"
	"strconv"
	"testing"

	"github.com/stretchr/testify/require"
)

func collect(src PairSource) []Pair {
	var out []Pair
	for p, ok := src(); ok; p, ok = src() {
		out = append(out, p)
	}
	return out
}

func TestMergeInterleaves(t *testing.T) {
	a := []Pair{{"a", "1"}, {"c", "3"}, {"e", "5"}}
	b := []Pair{{"b", "2"}, {"d", "4"}}

	got := MergedPairs(a, b)
	require.Equal(t, []Pair{{"a", "1"}, {"b", "2"}, {"c", "3"}, {"d", "4"}, {"e", "5"}}, got)
}

func TestMergeEmptySides(t *testing.T) {
	a := []Pair{{"a", "1"}}

	require.Equal(t, a, MergedPairs(a, nil))
	require.Equal(t, a, MergedPairs(nil, a))
	require.Empty(t, MergedPairs(nil, nil))
}

func TestMergeEqualKeysFirstSourceWins(t *testing.T) {
	a := []Pair{{"k", "from-a"}}
	b := []Pair{{"k", "from-b"}}

	got := MergedPairs(a, b)
	require.Equal(t, []Pair{{"k", "from-a"}, {"k", "from-b"}}, got)
}

func TestMergeFusedAfterExhaustion(t *testing.T) {
	next := Merge(SlicePairs([]Pair{{"a", "1"}}), SlicePairs(nil))

	_, ok := next()
	require.True(t, ok)
	for i := 0; i < 3; i++ {
		_, ok = next()
		require.False(t, ok)
	}
}

func TestMergeComposes(t *testing.T) {
	a := []Pair{{"a", "1"}, {"d", "4"}}
	b := []Pair{{"b", "2"}}
	c := []Pair{{"c", "3"}, {"e", "5"}}

	got := collect(Merge(Merge(SlicePairs(a), SlicePairs(b)), SlicePairs(c)))
	require.Equal(t, []Pair{{"a", "1"}, {"b", "2"}, {"c", "3"}, {"d", "4"}, {"e", "5"}}, got)
}

func TestMergeRandomized(t *testing.T) {
	rng := rand.New(rand.NewSource(1))

	for trial := 0; trial < 100; trial++ {
		a := randomSortedPairs(rng)
		b := randomSortedPairs(rng)

		got := MergedPairs(a, b)
		require.Len(t, got, len(a)+len(b))
		require.True(t, sort.SliceIsSorted(got, func(i, j int) bool {
			return got[i].Key < got[j].Key
		}))
	}
}

func randomSortedPairs(rng *rand.Rand) []Pair {
	n := rng.Intn(8)
	pairs := make([]Pair, n)
	for i := range pairs {
		pairs[i] = Pair{Key: strconv.Itoa(rng.Intn(20)), Value: strconv.Itoa(i)}
	}
	sort.Slice(pairs, func(i, j int) bool { return pairs[i].Key < pairs[j].Key })
	return pairs
}
