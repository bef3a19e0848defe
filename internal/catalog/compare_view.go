package catalog

import (
	"context"
	"fmt"

	"github.com/Vladimir-SS/ELAn-Esoteric-Language-Explorer/internal/api"
	"github.com/Vladimir-SS/ELAn-Esoteric-Language-Explorer/internal/domain"
	"golang.org/x/sync/errgroup"
)

// CompareColumn is one side of the comparison view. Err is set instead of
// Language when that record could not be fetched.
type CompareColumn struct {
	ID       string
	Language domain.Language
	Err      error
}

// FetchLanguage fetches the record of a decoded language name. The name is
// percent-encoded exactly once by the fetcher. A 404 is reported as
// ErrLanguageNotFound.
func FetchLanguage(ctx context.Context, fetcher LanguageFetcher, name string) (domain.Language, error) {
	lang, err := fetcher.Language(ctx, name)
	if err != nil {
		if api.IsNotFound(err) {
			return domain.Language{}, fmt.Errorf("%w: %s", ErrLanguageNotFound, name)
		}
		return domain.Language{}, fmt.Errorf("failed to fetch %q: %w", name, err)
	}
	return lang, nil
}

// CompareView fetches the records of both compared languages in parallel.
// With fewer than two languages selected nothing is fetched and ErrNeedTwo
// is returned. A failed column does not affect the other one.
func CompareView(ctx context.Context, fetcher LanguageFetcher, cmp *Comparison) ([]CompareColumn, error) {
	ids := cmp.IDs()
	if len(ids) < MaxCompared {
		return nil, ErrNeedTwo
	}

	columns := make([]CompareColumn, len(ids))
	g, gctx := errgroup.WithContext(ctx)
	for i, id := range ids {
		g.Go(func() error {
			lang, err := FetchLanguage(gctx, fetcher, id)
			columns[i] = CompareColumn{ID: id, Language: lang, Err: err}
			return nil
		})
	}
	_ = g.Wait()

	return columns, nil
}
