package catalog

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"sync"

	"github.com/Vladimir-SS/ELAn-Esoteric-Language-Explorer/internal/api"
	"github.com/Vladimir-SS/ELAn-Esoteric-Language-Explorer/internal/config"
	"github.com/Vladimir-SS/ELAn-Esoteric-Language-Explorer/internal/domain"
)

// Service coordinates facet loading, filter selection, search, pagination
// and comparison for one catalog session. Sessions created with NewSession
// share the facet options, the option index and the comparison set; each
// has its own selection and search executor.
type Service struct {
	settings   *config.CatalogSettings
	backend    Backend
	loader     *FacetLoader
	notifier   Notifier
	executor   *SearchExecutor
	selection  *Selection
	comparison *Comparison
	index      *OptionIndex
	store      *optionStore
	owner      bool
}

// optionStore caches loaded facet options across sessions.
type optionStore struct {
	mu      sync.RWMutex
	options map[FacetName][]Option
	ready   bool
}

// ServiceOption configures a Service.
type ServiceOption func(*serviceOptions)

type serviceOptions struct {
	comparison *Comparison
	notifier   Notifier
}

// WithComparison shares an existing comparison set instead of creating one.
func WithComparison(c *Comparison) ServiceOption {
	return func(o *serviceOptions) {
		o.comparison = c
	}
}

// WithNotifier sets the receiver of search notifications.
func WithNotifier(n Notifier) ServiceOption {
	return func(o *serviceOptions) {
		o.notifier = n
	}
}

// NewService creates a catalog service backed by backend.
func NewService(settings *config.CatalogSettings, backend Backend, opts ...ServiceOption) (*Service, error) {
	if settings == nil {
		return nil, fmt.Errorf("settings cannot be nil")
	}
	if backend == nil {
		return nil, fmt.Errorf("backend cannot be nil")
	}

	o := serviceOptions{}
	for _, opt := range opts {
		opt(&o)
	}
	if o.comparison == nil {
		o.comparison = NewComparison()
	}

	index, err := NewOptionIndex()
	if err != nil {
		return nil, err
	}

	return &Service{
		settings:   settings,
		backend:    backend,
		loader:     NewFacetLoader(backend, settings.MaxParallelLoads),
		notifier:   o.notifier,
		executor:   NewSearchExecutor(backend, o.notifier),
		selection:  NewSelection(),
		comparison: o.comparison,
		index:      index,
		store:      &optionStore{options: make(map[FacetName][]Option)},
		owner:      true,
	}, nil
}

// NewSession returns a service for one more client. It shares options,
// readiness, the option index and the comparison set with s, and starts
// with an empty selection and no search results. Closing a session does
// not release the shared index.
func (s *Service) NewSession() *Service {
	return &Service{
		settings:   s.settings,
		backend:    s.backend,
		loader:     s.loader,
		notifier:   s.notifier,
		executor:   NewSearchExecutor(s.backend, s.notifier),
		selection:  NewSelection(),
		comparison: s.comparison,
		index:      s.index,
		store:      s.store,
	}
}

// Initialize preloads the options of every facet when preloading is
// enabled. Facets that fail to load are logged and retried on demand; they
// never fail initialization.
func (s *Service) Initialize(ctx context.Context) error {
	if s.settings.Preload {
		slog.Info("Preloading facet options", "max_parallel_loads", s.settings.MaxParallelLoads)

		loaded := 0
		for _, res := range s.loader.LoadAll(ctx) {
			if res.Err != nil {
				slog.Warn("Facet options unavailable", "facet", res.Facet.Endpoint(), "error", res.Err)
				continue
			}
			if err := s.storeOptions(res.Facet, res.Options); err != nil {
				slog.Error("Failed to index facet options", "facet", res.Facet.Endpoint(), "error", err)
				continue
			}
			loaded++
		}
		slog.Info("Facet options preloaded", "loaded", loaded, "total", len(AllFacets()))
	}

	s.store.mu.Lock()
	s.store.ready = true
	s.store.mu.Unlock()
	return nil
}

// IsReady reports whether Initialize has completed.
func (s *Service) IsReady() bool {
	s.store.mu.RLock()
	defer s.store.mu.RUnlock()
	return s.store.ready
}

// GetSettings returns the catalog settings.
func (s *Service) GetSettings() *config.CatalogSettings {
	return s.settings
}

// Selection returns the session's filter selection.
func (s *Service) Selection() *Selection {
	return s.selection
}

// Comparison returns the shared comparison set.
func (s *Service) Comparison() *Comparison {
	return s.comparison
}

// Executor returns the session's search executor.
func (s *Service) Executor() *SearchExecutor {
	return s.executor
}

// Options returns the options of facet, loading them on first use.
// Successful loads are cached; failures are not.
func (s *Service) Options(ctx context.Context, facet FacetName) ([]Option, error) {
	s.store.mu.RLock()
	cached, ok := s.store.options[facet]
	s.store.mu.RUnlock()
	if ok {
		return slices.Clone(cached), nil
	}

	options, err := s.loader.Load(ctx, facet)
	if err != nil {
		return nil, err
	}
	if err := s.storeOptions(facet, options); err != nil {
		slog.Error("Failed to index facet options", "facet", facet.Endpoint(), "error", err)
	}
	return slices.Clone(options), nil
}

func (s *Service) storeOptions(facet FacetName, options []Option) error {
	s.store.mu.Lock()
	s.store.options[facet] = options
	s.store.mu.Unlock()
	return s.index.Replace(facet, options)
}

// ResolveOption maps user input to an option of facet by exact raw value
// or case-insensitive label. When neither matches, or the options cannot be
// loaded, the input is returned as the raw value and resolved is false.
func (s *Service) ResolveOption(ctx context.Context, facet FacetName, input string) (opt Option, resolved bool) {
	input = strings.TrimSpace(input)
	raw := Option{Value: input, Label: input}

	options, err := s.Options(ctx, facet)
	if err != nil {
		return raw, false
	}

	for _, o := range options {
		if o.Value == input {
			return o, true
		}
	}
	for _, o := range options {
		if strings.EqualFold(o.Label, input) {
			return o, true
		}
	}
	return raw, false
}

// Suggest returns the loaded options of facet whose label is close to text.
// Suggestions are never selected on the caller's behalf.
func (s *Service) Suggest(facet FacetName, text string) ([]Option, error) {
	return s.index.Lookup(facet, strings.TrimSpace(text))
}

// Query returns the encoded query of the current selection.
func (s *Service) Query() string {
	return EncodeQuery(s.selection)
}

// Search runs the current selection against the backend.
func (s *Service) Search(ctx context.Context) (Outcome, error) {
	return s.executor.Execute(ctx, s.Query())
}

// ViewportPolicy returns the navigation policy for a viewport width. A
// width <= 0 means unknown and selects the regular policy.
func (s *Service) ViewportPolicy(width int) NavPolicy {
	if width <= 0 {
		return ViewportPolicy(0, 0, s.settings.VisiblePages)
	}
	return ViewportPolicy(width, s.settings.CompactWidth, s.settings.VisiblePages)
}

// Page paginates ids using the configured page size. page is clamped into
// range first.
func (s *Service) Page(ids []string, page int, policy NavPolicy) Page[string] {
	total := TotalPages(len(ids), s.settings.PageSize)
	return Paginate(ids, ClampPage(page, total), s.settings.PageSize, policy.VisiblePages)
}

// ResultsPage paginates the current search results.
func (s *Service) ResultsPage(page, width int) (State, Page[string], NavPolicy) {
	state := s.executor.Current()
	policy := s.ViewportPolicy(width)
	return state, s.Page(state.IDs, page, policy), policy
}

// AllLanguages returns the unfiltered listing. A 404 is an empty listing.
func (s *Service) AllLanguages(ctx context.Context) ([]string, error) {
	ids, err := s.backend.Languages(ctx)
	if err != nil {
		if api.IsNotFound(err) {
			return []string{}, nil
		}
		return nil, fmt.Errorf("%w: %w", ErrLanguagesNotFound, err)
	}
	return ids, nil
}

// Language returns the record of id, decoding it once first.
func (s *Service) Language(ctx context.Context, id string) (domain.Language, error) {
	return FetchLanguage(ctx, s.backend, DecodeIdentifier(id))
}

// Similar returns the languages similar to id. A 404 means none were found
// and yields an empty list.
func (s *Service) Similar(ctx context.Context, id string) ([]string, error) {
	ids, err := s.backend.Similar(ctx, DecodeIdentifier(id))
	if err != nil {
		if api.IsNotFound(err) {
			return []string{}, nil
		}
		return nil, fmt.Errorf("failed to fetch similar languages: %w", err)
	}
	return ids, nil
}

// Compare fetches both compared languages.
func (s *Service) Compare(ctx context.Context) ([]CompareColumn, error) {
	return CompareView(ctx, s.backend, s.comparison)
}

// Close releases the option index. It is a no-op for sessions.
func (s *Service) Close() error {
	if !s.owner {
		return nil
	}
	return s.index.Close()
}
