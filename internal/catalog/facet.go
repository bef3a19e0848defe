package catalog

import (
	"fmt"
	"strings"
)

// FacetName identifies one filterable property of a language.
type FacetName int

// Facets in their declared order. The query encoder emits facets in this
// order, so it must stay stable.
const (
	Paradigm FacetName = iota
	Category
	YearCreated
	MemorySystem
	Dimension
	ComputationalClass
	FileExtension
	TypeSystem
	Dialect

	facetCount
)

var facetDisplayNames = [facetCount]string{
	Paradigm:           "Paradigm",
	Category:           "Category",
	YearCreated:        "Year Created",
	MemorySystem:       "Memory System",
	Dimension:          "Dimension",
	ComputationalClass: "Computational Class",
	FileExtension:      "File Extension",
	TypeSystem:         "Type System",
	Dialect:            "Dialect",
}

// AllFacets returns every facet in declared order.
func AllFacets() []FacetName {
	facets := make([]FacetName, 0, facetCount)
	for f := FacetName(0); f < facetCount; f++ {
		facets = append(facets, f)
	}
	return facets
}

// Valid reports whether f is one of the declared facets.
func (f FacetName) Valid() bool {
	return f >= 0 && f < facetCount
}

// String returns the human readable display name, e.g. "Year Created".
func (f FacetName) String() string {
	if !f.Valid() {
		return fmt.Sprintf("FacetName(%d)", int(f))
	}
	return facetDisplayNames[f]
}

// Endpoint returns the backend path segment, e.g. "year-created".
func (f FacetName) Endpoint() string {
	return ToKebabCase(f.String())
}

// QueryKey returns the search query key, e.g. "year_created".
func (f FacetName) QueryKey() string {
	return ToSnakeCase(f.String())
}

// ParseFacet resolves a facet from its display name, endpoint form or query
// key, case-insensitively. "Year Created", "YearCreated", "year-created" and
// "year_created" all resolve to YearCreated.
func ParseFacet(s string) (FacetName, error) {
	normalized := strings.ReplaceAll(ToKebabCase(s), "_", "-")
	for _, f := range AllFacets() {
		if f.Endpoint() == normalized {
			return f, nil
		}
	}
	return 0, fmt.Errorf("unknown facet: %q", s)
}
