package app

import (
	"github.com/Vladimir-SS/ELAn-Esoteric-Language-Explorer/internal/catalog"
	"github.com/spf13/pflag"
)

// RegisterFlags registers all CLI flags on the given FlagSet
func RegisterFlags(flags *pflag.FlagSet) {
	flags.StringP("transport", "t", "", "Transport type: stdio or sse")
	flags.StringP("host", "H", "", "Host for SSE transport")
	flags.IntP("port", "p", 0, "Port for SSE transport")
	flags.StringP("backend-url", "b", "", "Catalog backend base URL (e.g. http://localhost:8000)")
	flags.Duration("backend-timeout", 0, "Backend request timeout (0 disables it)")
	flags.Int("page-size", 0, "Languages per result page")
	flags.Int("visible-pages", 0, "Width of the page number window")
	flags.Int("compact-width", 0, "Viewport width below which navigation is compact")
	flags.Int("max-parallel-loads", 0, "Maximum facet option loads in flight at startup")
	flags.Bool("preload", true, "Preload every facet's options at startup")
}

// RegisterSearchFlags registers the filter flags of the search command: one
// repeatable flag per facet plus the search term and paging flags.
func RegisterSearchFlags(flags *pflag.FlagSet) {
	for _, f := range catalog.AllFacets() {
		flags.StringSlice(f.Endpoint(), nil, "Filter by "+f.String()+" (repeatable)")
	}
	flags.StringP("term", "q", "", "Free-text search term")
	flags.Int("page", 1, "Result page to show")
	flags.Int("width", 0, "Viewport width used to pick the navigation style")
}

// SearchRequestFromFlags reads the flags registered by RegisterSearchFlags.
func SearchRequestFromFlags(flags *pflag.FlagSet) (SearchRequest, error) {
	req := SearchRequest{Filters: make(map[catalog.FacetName][]string)}

	for _, f := range catalog.AllFacets() {
		values, err := flags.GetStringSlice(f.Endpoint())
		if err != nil {
			return SearchRequest{}, err
		}
		if len(values) > 0 {
			req.Filters[f] = values
		}
	}

	var err error
	if req.Term, err = flags.GetString("term"); err != nil {
		return SearchRequest{}, err
	}
	if req.Page, err = flags.GetInt("page"); err != nil {
		return SearchRequest{}, err
	}
	if req.Width, err = flags.GetInt("width"); err != nil {
		return SearchRequest{}, err
	}
	return req, nil
}
