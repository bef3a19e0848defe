package api

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates the backend answered 404. Its meaning depends on the
// endpoint: an empty result for search and similar, a missing entity for a
// single language.
var ErrNotFound = errors.New("not found")

// StatusError is returned for any non-2xx answer other than 404.
type StatusError struct {
	Route      string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s: unexpected status %d", e.Route, e.StatusCode)
}

// IsNotFound reports whether err is or wraps ErrNotFound.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
