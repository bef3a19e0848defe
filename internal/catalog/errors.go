package catalog

import "errors"

var (
	// ErrOptionsNotFound is reported when a facet's options cannot be loaded.
	ErrOptionsNotFound = errors.New("Options not found")

	// ErrLanguagesNotFound is reported when a search fails for any reason
	// other than the backend answering 404.
	ErrLanguagesNotFound = errors.New("Languages not found")

	// ErrLanguageNotFound is reported when a single language record is missing.
	ErrLanguageNotFound = errors.New("Language not found")

	// ErrNeedTwo is reported when a comparison is requested with fewer than
	// two languages selected.
	ErrNeedTwo = errors.New("Please select two languages to compare")

	// ErrStaleResponse is reported to a search whose response arrived after
	// a newer search had been issued. Its result is discarded.
	ErrStaleResponse = errors.New("search superseded by a newer request")
)
