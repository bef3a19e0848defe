package catalog

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/Vladimir-SS/ELAn-Esoteric-Language-Explorer/internal/api"
	"github.com/Vladimir-SS/ELAn-Esoteric-Language-Explorer/internal/config"
	"github.com/Vladimir-SS/ELAn-Esoteric-Language-Explorer/internal/domain"
)

// FakeBackend is an in-memory Backend. Missing entries answer like the
// real backend answers unknown paths: with api.ErrNotFound.
// This is exported for use in other packages' tests.
type FakeBackend struct {
	mu sync.Mutex

	// Options maps a facet endpoint to its raw option strings.
	Options map[string][]string

	// Results maps an encoded query to its identifiers.
	Results map[string][]string

	// All is the unfiltered listing.
	All []string

	// Records maps a decoded name to its language record.
	Records map[string]domain.Language

	// SimilarTo maps a decoded name to similar identifiers.
	SimilarTo map[string][]string

	// Errs maps a route (see api.Route*) to a forced error.
	Errs map[string]error

	// BeforeSearch, when set, runs before a search answers. Tests use it to
	// hold a request in flight.
	BeforeSearch func(query string)

	calls []FakeCall
}

// FakeCall records one backend invocation.
type FakeCall struct {
	Route string
	Arg   string
}

// NewFakeBackend creates an empty fake backend.
func NewFakeBackend() *FakeBackend {
	return &FakeBackend{
		Options:   make(map[string][]string),
		Results:   make(map[string][]string),
		Records:   make(map[string]domain.Language),
		SimilarTo: make(map[string][]string),
		Errs:      make(map[string]error),
	}
}

func (f *FakeBackend) record(route, arg string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, FakeCall{Route: route, Arg: arg})
	return f.Errs[route]
}

func notFound(route string) error {
	return fmt.Errorf("%s: %w", route, api.ErrNotFound)
}

// FacetOptions implements OptionsFetcher.
func (f *FakeBackend) FacetOptions(_ context.Context, endpoint string) ([]string, error) {
	if err := f.record(api.RouteFacetOptions, endpoint); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	options, ok := f.Options[endpoint]
	if !ok {
		return nil, notFound(api.RouteFacetOptions)
	}
	return options, nil
}

// Search implements Searcher.
func (f *FakeBackend) Search(ctx context.Context, query string) ([]string, error) {
	if f.BeforeSearch != nil {
		f.BeforeSearch(query)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := f.record(api.RouteSearch, query); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	ids, ok := f.Results[query]
	if !ok {
		return nil, notFound(api.RouteSearch)
	}
	return ids, nil
}

// Languages returns the unfiltered listing.
func (f *FakeBackend) Languages(_ context.Context) ([]string, error) {
	if err := f.record(api.RouteLanguages, ""); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.All, nil
}

// Language implements LanguageFetcher.
func (f *FakeBackend) Language(_ context.Context, name string) (domain.Language, error) {
	if err := f.record(api.RouteLanguage, name); err != nil {
		return domain.Language{}, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	lang, ok := f.Records[name]
	if !ok {
		return domain.Language{}, notFound(api.RouteLanguage)
	}
	return lang, nil
}

// Similar returns the languages similar to name.
func (f *FakeBackend) Similar(_ context.Context, name string) ([]string, error) {
	if err := f.record(api.RouteSimilar, name); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	ids, ok := f.SimilarTo[name]
	if !ok {
		return nil, notFound(api.RouteSimilar)
	}
	return ids, nil
}

// Calls returns every recorded invocation.
func (f *FakeBackend) Calls() []FakeCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]FakeCall(nil), f.calls...)
}

// CallsTo returns the arguments of every invocation of route.
func (f *FakeBackend) CallsTo(route string) []string {
	var args []string
	for _, c := range f.Calls() {
		if c.Route == route {
			args = append(args, c.Arg)
		}
	}
	return args
}

// MustNewTestService creates a service over backend with default catalog
// settings and preloading disabled. It fails the test on error and closes
// the service on cleanup.
func MustNewTestService(t *testing.T, backend Backend, opts ...ServiceOption) *Service {
	t.Helper()

	settings := DefaultTestSettings()
	svc, err := NewService(settings, backend, opts...)
	if err != nil {
		t.Fatalf("NewService failed: %v", err)
	}
	t.Cleanup(func() {
		if err := svc.Close(); err != nil {
			t.Errorf("Close failed: %v", err)
		}
	})
	return svc
}

// DefaultTestSettings returns catalog settings with the default paging
// values and preloading disabled.
func DefaultTestSettings() *config.CatalogSettings {
	return &config.CatalogSettings{
		PageSize:         DefaultPageSize,
		VisiblePages:     DefaultVisiblePages,
		CompactWidth:     CompactWidth,
		MaxParallelLoads: DefaultMaxParallelLoads,
		Preload:          false,
	}
}
