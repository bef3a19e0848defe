package catalog

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"
)

// DefaultMaxParallelLoads bounds LoadAll when no limit is configured.
const DefaultMaxParallelLoads = 4

// Option is one selectable value of a facet.
type Option struct {
	// Value is the raw string returned by the backend. It is what gets
	// selected and encoded into the search query.
	Value string `json:"value"`

	// Label is the decoded last path segment of Value, for display.
	Label string `json:"label"`
}

// FacetResult is the outcome of loading a single facet.
type FacetResult struct {
	Facet   FacetName
	Options []Option
	Err     error
}

// FacetLoader loads facet options from the backend.
type FacetLoader struct {
	fetcher     OptionsFetcher
	maxParallel int
	logger      *slog.Logger
}

// NewFacetLoader creates a loader. maxParallel <= 0 selects
// DefaultMaxParallelLoads.
func NewFacetLoader(fetcher OptionsFetcher, maxParallel int) *FacetLoader {
	if maxParallel <= 0 {
		maxParallel = DefaultMaxParallelLoads
	}
	return &FacetLoader{
		fetcher:     fetcher,
		maxParallel: maxParallel,
		logger:      slog.Default(),
	}
}

// Load fetches the options of one facet. Every failure, whether a 404, a
// server error, a transport error or an option that cannot be decoded, is
// reported as ErrOptionsNotFound wrapping the cause.
func (l *FacetLoader) Load(ctx context.Context, facet FacetName) ([]Option, error) {
	if !facet.Valid() {
		return nil, fmt.Errorf("%w: %s", ErrOptionsNotFound, facet)
	}

	raw, err := l.fetcher.FacetOptions(ctx, facet.Endpoint())
	if err != nil {
		l.logger.Warn("Failed to load facet options", "facet", facet.Endpoint(), "error", err)
		return nil, fmt.Errorf("%w: %s: %w", ErrOptionsNotFound, facet, err)
	}

	options := make([]Option, 0, len(raw))
	for _, value := range raw {
		label, err := OptionLabel(value)
		if err != nil {
			l.logger.Warn("Undecodable facet option", "facet", facet.Endpoint(), "value", value, "error", err)
			return nil, fmt.Errorf("%w: %s: %w", ErrOptionsNotFound, facet, err)
		}
		options = append(options, Option{Value: value, Label: label})
	}
	return options, nil
}

// LoadAll loads every facet concurrently, at most maxParallel at a time.
// Results are in declared facet order. A failing facet only sets its own
// Err; the other facets keep their options.
func (l *FacetLoader) LoadAll(ctx context.Context) []FacetResult {
	facets := AllFacets()
	results := make([]FacetResult, len(facets))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(l.maxParallel)

	for i, facet := range facets {
		g.Go(func() error {
			options, err := l.Load(gctx, facet)
			results[i] = FacetResult{Facet: facet, Options: options, Err: err}
			return nil
		})
	}
	_ = g.Wait()

	return results
}
