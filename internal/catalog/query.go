package catalog

import (
	"strings"

	"github.com/Vladimir-SS/ELAn-Esoteric-Language-Explorer/internal/api"
)

// SearchTermKey is the query key of the free-text term.
const SearchTermKey = "search_term"

// EncodeQuery serializes a selection into the backend search query string.
//
// Facets are emitted in declared order and values in insertion order, each
// as snake_case(facet)=percentEncode(value). The search term, when set, is
// the last pair. Identical selections always produce identical strings; an
// empty selection produces "".
//
// Example: Paradigm=imperative, Category=joke, term "brainf ck" ->
// "paradigm=imperative&category=joke&search_term=brainf%20ck"
func EncodeQuery(sel *Selection) string {
	pairs := make([]string, 0)
	for _, entry := range sel.Entries() {
		pairs = append(pairs, entry.Facet.QueryKey()+"="+api.EscapeComponent(entry.Value))
	}

	if term := sel.SearchTerm(); term != "" {
		pairs = append(pairs, SearchTermKey+"="+api.EscapeComponent(term))
	}

	return strings.Join(pairs, "&")
}
