package app

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/Vladimir-SS/ELAn-Esoteric-Language-Explorer/internal/catalog"
)

// SearchRequest is a one-shot search issued from the command line.
type SearchRequest struct {
	Filters map[catalog.FacetName][]string
	Term    string
	Page    int
	Width   int
}

// RunOptions prints the options of one facet.
func RunOptions(ctx context.Context, svc *catalog.Service, facetName string, w io.Writer) error {
	facet, err := catalog.ParseFacet(facetName)
	if err != nil {
		return err
	}

	options, err := svc.Options(ctx, facet)
	if err != nil {
		return err
	}

	_, _ = fmt.Fprintf(w, "%s (%d options)\n", facet, len(options))
	for _, o := range options {
		_, _ = fmt.Fprintf(w, "- %s (%s)\n", o.Label, o.Value)
	}
	return nil
}

// RunSearch selects the requested filters, runs the search and prints the
// requested page of results.
func RunSearch(ctx context.Context, svc *catalog.Service, req SearchRequest, w io.Writer) error {
	sel := svc.Selection()
	for _, facet := range catalog.AllFacets() {
		for _, input := range req.Filters[facet] {
			opt, _ := svc.ResolveOption(ctx, facet, input)
			sel.Select(facet, opt.Value)
		}
	}
	sel.SetSearchTerm(req.Term)

	outcome, err := svc.Search(ctx)
	if err != nil {
		return err
	}

	query := svc.Query()
	if outcome.Status == catalog.StatusEmpty {
		_, _ = fmt.Fprintf(w, "No results found\nQuery: %s\n", query)
		return nil
	}

	state, page, policy := svc.ResultsPage(req.Page, req.Width)
	_, _ = fmt.Fprintf(w, "Query: %s\n\n", query)
	_, _ = io.WriteString(w, catalog.FormatPage("Search results", page, len(state.IDs), policy))
	return nil
}

// RunCompare prints two languages one after the other.
func RunCompare(ctx context.Context, svc *catalog.Service, names []string, w io.Writer) error {
	cmp := svc.Comparison()
	for _, name := range names {
		cmp.Add(name)
	}

	columns, err := svc.Compare(ctx)
	if errors.Is(err, catalog.ErrNeedTwo) {
		return fmt.Errorf("%w (got %s)", err, formatNames(cmp.IDs()))
	}
	if err != nil {
		return err
	}

	_, _ = io.WriteString(w, catalog.FormatComparison(columns))
	return nil
}

func formatNames(ids []string) string {
	if len(ids) == 0 {
		return "none"
	}
	return fmt.Sprintf("%q", ids)
}
