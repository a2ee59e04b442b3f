package explore

import (
	"testing"

	"github.com/TheApac/stringcheese/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleResults() []types.Result {
	return []types.Result{
		{Source: "a.bin", View: "stream", Encoding: "base64", Flag: "FLAG{one}", Offset: 10},
		{Source: "a.bin", View: "stream[1::3]", Encoding: "ASCII", Flag: "FLAG{two}", Offset: 1},
		{Source: "b.bin", View: "reversed stream", Encoding: "base64", Flag: "FLAG{three}", Offset: 7},
		{View: "stream", Encoding: "XOR_42", Flag: "FLAG{four}", Offset: 0},
	}
}

func TestViewFamily(t *testing.T) {
	assert.Equal(t, "stream", viewFamily("stream"))
	assert.Equal(t, "stride", viewFamily("stream[0::2]"))
	assert.Equal(t, "stride", viewFamily("stream[31::32]"))
	assert.Equal(t, "reversed", viewFamily("reversed stream"))
}

func TestBuildFacets(t *testing.T) {
	fs := buildFacets(sampleResults())

	counts := func(id facetID) map[string]int {
		out := map[string]int{}
		for _, v := range fs.Values[id] {
			out[v.Value] = v.Count
		}
		return out
	}

	assert.Equal(t, map[string]int{"ASCII": 1, "XOR_42": 1, "base64": 2}, counts(facetEncoding))
	assert.Equal(t, map[string]int{"reversed": 1, "stream": 2, "stride": 1}, counts(facetView))
	assert.Equal(t, map[string]int{"-": 1, "a.bin": 2, "b.bin": 1}, counts(facetSource))

	// sorted by value
	require.Len(t, fs.Values[facetEncoding], 3)
	assert.Equal(t, "ASCII", fs.Values[facetEncoding][0].Value)
}

func selectValue(t *testing.T, fs *facetState, id facetID, value string) {
	t.Helper()
	for _, v := range fs.Values[id] {
		if v.Value == value {
			v.Selected = true
			return
		}
	}
	t.Fatalf("facet value %q not found", value)
}

func TestFacetFilter(t *testing.T) {
	results := sampleResults()
	fs := buildFacets(results)
	assert.False(t, fs.hasActiveFilters())
	assert.Len(t, fs.filter(results), 4)

	// OR within a facet
	selectValue(t, fs, facetEncoding, "base64")
	selectValue(t, fs, facetEncoding, "XOR_42")
	assert.True(t, fs.hasActiveFilters())
	assert.Len(t, fs.filter(results), 3)

	// AND across facets
	selectValue(t, fs, facetSource, "a.bin")
	filtered := fs.filter(results)
	require.Len(t, filtered, 1)
	assert.Equal(t, "FLAG{one}", filtered[0].Flag)

	fs.resetAll()
	assert.False(t, fs.hasActiveFilters())
	assert.Len(t, fs.filter(results), 4)
}
