package sigv4

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParamsOrdering(t *testing.T) {
	p := NewParams(4)
	p.Insert("x-amz-storage-class", "STANDARD_IA")
	p.Insert("content-type", "text/plain")
	p.Insert("cache-control", "public, max-age=86400")

	require.Equal(t, 3, p.Len())
	require.Equal(t, []Pair{
		{Key: "cache-control", Value: "public, max-age=86400"},
		{Key: "content-type", Value: "text/plain"},
		{Key: "x-amz-storage-class", Value: "STANDARD_IA"},
	}, p.Pairs())
}

func TestParamsGet(t *testing.T) {
	p := NewParams(2)
	p.Insert("content-type", "text/plain")

	v, ok := p.Get("content-type")
	require.True(t, ok)
	require.Equal(t, "text/plain", v)

	_, ok = p.Get("cache-control")
	require.False(t, ok)
}

func TestParamsInsertMergesDuplicates(t *testing.T) {
	p := NewParams(2)
	p.Insert("cache-control", "public, max-age=86400")
	p.Insert("cache-control", "immutable")

	require.Equal(t, 1, p.Len())
	v, ok := p.Get("cache-control")
	require.True(t, ok)
	require.Equal(t, "public, max-age=86400, immutable", v)
}

func TestParamsRemove(t *testing.T) {
	p := NewParams(3)
	p.Insert("a", "1")
	p.Insert("b", "2")
	p.Insert("c", "3")

	pair, ok := p.Remove("b")
	require.True(t, ok)
	require.Equal(t, Pair{Key: "b", Value: "2"}, pair)
	require.Equal(t, 2, p.Len())

	_, ok = p.Remove("b")
	require.False(t, ok)

	// reinsert lands back in sorted position
	p.Insert("b", "4")
	require.Equal(t, []Pair{{"a", "1"}, {"b", "4"}, {"c", "3"}}, p.Pairs())
}

func TestParamsZeroValue(t *testing.T) {
	var p Params
	require.Equal(t, 0, p.Len())
	p.Insert("k", "v")
	require.Equal(t, 1, p.Len())
}
