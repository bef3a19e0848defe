package catalog

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/Vladimir-SS/ELAn-Esoteric-Language-Explorer/internal/api"
)

// Status describes how a search settled.
type Status int

const (
	// StatusIdle means no search has settled yet.
	StatusIdle Status = iota
	// StatusResults means the backend returned at least one identifier.
	StatusResults
	// StatusEmpty means the search is valid but matched nothing, either an
	// empty array or a 404.
	StatusEmpty
	// StatusFailed means the backend could not be queried.
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusResults:
		return "results"
	case StatusEmpty:
		return "empty"
	case StatusFailed:
		return "failed"
	default:
		return fmt.Sprintf("Status(%d)", int(s))
	}
}

// Outcome is the settled result of one search.
type Outcome struct {
	Seq    uint64
	Query  string
	Status Status
	IDs    []string
}

// State is what callers render: the last settled outcome, whether a newer
// search is still pending, and the error of the last failed search, if any.
// A failed search leaves the previous IDs in place.
type State struct {
	Outcome
	InFlight bool
	Err      error
}

// SearchExecutor runs encoded queries against the backend and keeps the
// result list of the latest issued search.
//
// Every Execute call takes a sequence number. Only the response of the most
// recently issued call may settle; responses of older calls are discarded
// with ErrStaleResponse even if they arrive last. Requests are never
// cancelled and never retried.
type SearchExecutor struct {
	searcher Searcher
	notifier Notifier

	mu      sync.Mutex
	issued  uint64
	settled uint64
	current State
}

// NewSearchExecutor creates an executor. A nil notifier selects a
// LogNotifier on slog.Default().
func NewSearchExecutor(searcher Searcher, notifier Notifier) *SearchExecutor {
	if notifier == nil {
		notifier = NewLogNotifier(nil)
	}
	return &SearchExecutor{
		searcher: searcher,
		notifier: notifier,
	}
}

// Execute issues one search request for query, which must already be
// encoded (see EncodeQuery). An empty query matches every language.
//
// A 404 settles as StatusEmpty without error. Any other failure settles as
// StatusFailed and returns an error wrapping ErrLanguagesNotFound.
func (e *SearchExecutor) Execute(ctx context.Context, query string) (Outcome, error) {
	e.mu.Lock()
	e.issued++
	seq := e.issued
	e.mu.Unlock()

	e.notifier.SearchStarted(query)

	ids, err := e.searcher.Search(ctx, query)

	outcome := Outcome{Seq: seq, Query: query}
	var failure error
	switch {
	case err != nil && api.IsNotFound(err):
		outcome.Status = StatusEmpty
	case err != nil:
		outcome.Status = StatusFailed
		failure = fmt.Errorf("%w: %w", ErrLanguagesNotFound, err)
	case len(ids) == 0:
		outcome.Status = StatusEmpty
	default:
		outcome.Status = StatusResults
		outcome.IDs = ids
	}

	if !e.settle(outcome, failure) {
		return Outcome{Seq: seq, Query: query}, ErrStaleResponse
	}

	switch outcome.Status {
	case StatusResults:
		e.notifier.SearchSucceeded(query, len(outcome.IDs))
	case StatusEmpty:
		e.notifier.SearchEmpty(query)
	case StatusFailed:
		e.notifier.SearchFailed(query, failure)
	}

	return outcome, failure
}

// settle publishes outcome if it belongs to the latest issued search.
func (e *SearchExecutor) settle(outcome Outcome, failure error) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	if outcome.Seq != e.issued {
		return false
	}
	e.settled = outcome.Seq

	if failure != nil {
		e.current.Err = failure
		return true
	}
	e.current = State{Outcome: outcome}
	return true
}

// Current returns the last settled state. InFlight is true while the latest
// issued search has not settled yet.
func (e *SearchExecutor) Current() State {
	e.mu.Lock()
	defer e.mu.Unlock()

	state := e.current
	state.IDs = slices.Clone(state.IDs)
	state.InFlight = e.issued != e.settled
	return state
}
