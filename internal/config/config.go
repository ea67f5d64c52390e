// Package config holds the ingestion pipeline's tunables as a single
// validated struct instead of scattered globals.
package config

import "github.com/go-playground/validator/v10"

// Config controls the error-tolerance and persistence policy of the
// ingestion pipeline.
type Config struct {
	// CarefulParsing estimates a table's column count from the widest
	// row instead of just the first. Slower, safer. Default true.
	CarefulParsing bool `validate:"-"`

	// IgnoreBadRows skips a row that fails to parse instead of aborting
	// the whole table. Default true.
	IgnoreBadRows bool `validate:"-"`

	// ExcludeTablesWithMissingLabels drops a table outright if any
	// column label could not be identified, rather than parsing it with
	// a blank label. Default false.
	ExcludeTablesWithMissingLabels bool `validate:"-"`

	// SilentErrors suppresses per-row/per-table diagnostic logging.
	// Default false.
	SilentErrors bool `validate:"-"`

	// SaveArticlesWithoutActivations persists an Article even when no
	// table yielded a single valid Activation. Default false.
	SaveArticlesWithoutActivations bool `validate:"-"`

	// OverwriteExistingRows allows persistence to replace rows for an
	// article that was already ingested. Default false.
	OverwriteExistingRows bool `validate:"-"`

	// MaxWorkers bounds the ingest pipeline's worker-pool concurrency.
	// Zero means runtime.GOMAXPROCS.
	MaxWorkers int `validate:"gte=0"`
}

// Default returns the standard pipeline defaults.
func Default() Config {
	return Config{
		CarefulParsing:                 true,
		IgnoreBadRows:                  true,
		ExcludeTablesWithMissingLabels: false,
		SilentErrors:                   false,
		SaveArticlesWithoutActivations: false,
		OverwriteExistingRows:          false,
		MaxWorkers:                     0,
	}
}

var validate = validator.New()

// Validate checks struct tag constraints on c.
func (c Config) Validate() error {
	return validate.Struct(c)
}
