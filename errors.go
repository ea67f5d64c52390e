package neurotab

import (
	"errors"

	"github.com/coregx/neurotab/internal/fetch"
	"github.com/coregx/neurotab/internal/ingest"
	"github.com/coregx/neurotab/internal/sources"
)

// Common errors produced by the extraction pipeline, covering failures at
// or above article level. Failures below article level (a malformed row,
// an invalid activation) are never errors: they are either
// skipped-and-logged under the
// IgnoreBadRows/ExcludeTablesWithMissingLabels config switches, or
// recorded into Activation.Problems and silently discarded by the table
// parser.
//
// Intercepted input pages and unrecognized publishers never abort a Run;
// they surface as Result.Skipped with Reason "invalid_html: ..." and
// "no_source_match" respectively. ErrInvalidHTML and ErrNoSourceMatch are
// the error values for callers that drive the internal pipeline pieces
// directly and want to report those conditions themselves.
var (
	// ErrInvalidHTML indicates an input file that looks like a bot
	// -interception or error page rather than an article.
	ErrInvalidHTML = errors.New("neurotab: invalid html")

	// ErrNoSourceMatch indicates that no publisher dialect recognized an
	// article and DefaultSource was not forced.
	ErrNoSourceMatch = errors.New("neurotab: no source match")

	// ErrMissingIdentifier is returned when an article's PMID cannot be
	// determined by any available means.
	ErrMissingIdentifier = sources.ErrMissingIdentifier

	// ErrFetchFailed is returned when an auxiliary per-table HTML fetch
	// exhausts its retry budget.
	ErrFetchFailed = fetch.ErrFetchFailed

	// ErrPersistence is returned when the caller-supplied Persistence
	// adapter fails; it is surfaced on the affected Result.
	ErrPersistence = ingest.ErrPersistence
)

// IsMissingIdentifier reports whether err indicates an unresolvable PMID.
func IsMissingIdentifier(err error) bool {
	return errors.Is(err, ErrMissingIdentifier)
}

// IsNoSourceMatch reports whether err indicates no dialect recognized the
// article.
func IsNoSourceMatch(err error) bool {
	return errors.Is(err, ErrNoSourceMatch)
}

// IsFetchFailed reports whether err indicates an exhausted fetch.
func IsFetchFailed(err error) bool {
	return errors.Is(err, ErrFetchFailed)
}

// IsPersistence reports whether err came from the persistence adapter.
func IsPersistence(err error) bool {
	return errors.Is(err, ErrPersistence)
}
