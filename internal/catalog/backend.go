package catalog

import (
	"context"

	"github.com/Vladimir-SS/ELAn-Esoteric-Language-Explorer/internal/domain"
)

// OptionsFetcher fetches the raw option strings of a facet endpoint.
type OptionsFetcher interface {
	FacetOptions(ctx context.Context, endpoint string) ([]string, error)
}

// Searcher runs an already encoded search query.
type Searcher interface {
	Search(ctx context.Context, query string) ([]string, error)
}

// LanguageFetcher fetches a single language record by decoded name.
type LanguageFetcher interface {
	Language(ctx context.Context, name string) (domain.Language, error)
}

// Backend is everything the catalog needs from the HTTP backend.
// *api.Client implements it.
type Backend interface {
	OptionsFetcher
	Searcher
	LanguageFetcher
	Languages(ctx context.Context) ([]string, error)
	Similar(ctx context.Context, name string) ([]string, error)
}
