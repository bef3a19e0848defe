package catalog

import (
	"slices"
	"strings"
	"sync"
)

// FilterEntry is one selected facet value.
type FilterEntry struct {
	Facet FacetName
	Value string
}

// Selection holds the chosen facet values and the free-text search term of
// one filter session. Values keep their insertion order within a facet; a
// value appears at most once per facet. Facets never affect each other.
// It is safe for concurrent use.
type Selection struct {
	mu     sync.RWMutex
	values [facetCount][]string
	term   string
}

// NewSelection creates an empty selection.
func NewSelection() *Selection {
	return &Selection{}
}

// Select adds value to facet unless it is already there. The value is kept
// as given, without decoding. Returns true if the selection changed.
func (s *Selection) Select(facet FacetName, value string) bool {
	if !facet.Valid() {
		return false
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if slices.Contains(s.values[facet], value) {
		return false
	}
	s.values[facet] = append(s.values[facet], value)
	return true
}

// Deselect removes value from facet. Removing an absent value is a no-op.
// Returns true if the selection changed.
func (s *Selection) Deselect(facet FacetName, value string) bool {
	if !facet.Valid() {
		return false
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	i := slices.Index(s.values[facet], value)
	if i < 0 {
		return false
	}
	s.values[facet] = slices.Delete(s.values[facet], i, i+1)
	return true
}

// SetSearchTerm replaces the free-text term. Surrounding whitespace is
// trimmed; an empty result means no term.
func (s *Selection) SetSearchTerm(term string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.term = strings.TrimSpace(term)
}

// ClearSearchTerm removes the free-text term.
func (s *Selection) ClearSearchTerm() {
	s.SetSearchTerm("")
}

// Clear removes every facet value and the search term.
func (s *Selection) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values = [facetCount][]string{}
	s.term = ""
}

// SearchTerm returns the current trimmed term.
func (s *Selection) SearchTerm() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.term
}

// Values returns a copy of the values selected for facet, in insertion order.
func (s *Selection) Values(facet FacetName) []string {
	if !facet.Valid() {
		return nil
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.values[facet])
}

// Entries returns every selected value, grouped by facet in declared order.
func (s *Selection) Entries() []FilterEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var entries []FilterEntry
	for _, f := range AllFacets() {
		for _, v := range s.values[f] {
			entries = append(entries, FilterEntry{Facet: f, Value: v})
		}
	}
	return entries
}

// IsEmpty reports whether no facet value and no term are set.
func (s *Selection) IsEmpty() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.term != "" {
		return false
	}
	for _, vals := range s.values {
		if len(vals) > 0 {
			return false
		}
	}
	return true
}
