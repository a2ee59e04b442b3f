package explore

import (
	"sort"
	"strings"

	"github.com/TheApac/stringcheese/pkg/types"
)

// facetID identifies a facet category.
type facetID int

const (
	facetEncoding facetID = iota
	facetView
	facetSource
)

// facetDef defines a facet category.
type facetDef struct {
	ID    facetID
	Label string
}

var facetDefs = []facetDef{
	{facetEncoding, "Encoding"},
	{facetView, "View"},
	{facetSource, "Source"},
}

// facetValue is a single selectable value within a facet.
type facetValue struct {
	FacetID  facetID
	Value    string
	Count    int
	Selected bool
}

// facetState holds the complete filter state.
type facetState struct {
	Values map[facetID][]*facetValue
}

// viewFamily groups the many stride views under one facet value.
func viewFamily(view string) string {
	switch {
	case view == "reversed stream":
		return "reversed"
	case strings.HasPrefix(view, "stream["):
		return "stride"
	default:
		return view
	}
}

func facetKey(id facetID, r types.Result) string {
	switch id {
	case facetEncoding:
		return r.Encoding
	case facetView:
		return viewFamily(r.View)
	case facetSource:
		if r.Source == "" {
			return "-"
		}
		return r.Source
	}
	return ""
}

// buildFacets counts every facet value present in results.
func buildFacets(results []types.Result) *facetState {
	fs := &facetState{Values: make(map[facetID][]*facetValue)}
	for _, def := range facetDefs {
		counts := make(map[string]int)
		for _, r := range results {
			counts[facetKey(def.ID, r)]++
		}
		values := make([]*facetValue, 0, len(counts))
		for v, c := range counts {
			values = append(values, &facetValue{FacetID: def.ID, Value: v, Count: c})
		}
		sort.Slice(values, func(i, j int) bool {
			return values[i].Value < values[j].Value
		})
		fs.Values[def.ID] = values
	}
	return fs
}

// selectedValues returns the set of selected values for a facet.
func (fs *facetState) selectedValues(id facetID) map[string]bool {
	selected := make(map[string]bool)
	for _, v := range fs.Values[id] {
		if v.Selected {
			selected[v.Value] = true
		}
	}
	return selected
}

// hasActiveFilters returns true if any facet has selections.
func (fs *facetState) hasActiveFilters() bool {
	for _, values := range fs.Values {
		for _, v := range values {
			if v.Selected {
				return true
			}
		}
	}
	return false
}

// resetAll deselects all facet values.
func (fs *facetState) resetAll() {
	for _, values := range fs.Values {
		for _, v := range values {
			v.Selected = false
		}
	}
}

// matches returns true if r passes all active filters.
// Within a facet: OR (union). Across facets: AND (intersection).
func (fs *facetState) matches(r types.Result) bool {
	for _, def := range facetDefs {
		selected := fs.selectedValues(def.ID)
		if len(selected) > 0 && !selected[facetKey(def.ID, r)] {
			return false
		}
	}
	return true
}

// filter returns the results passing all active filters, in order.
func (fs *facetState) filter(results []types.Result) []types.Result {
	out := make([]types.Result, 0, len(results))
	for _, r := range results {
		if fs.matches(r) {
			out = append(out, r)
		}
	}
	return out
}
