// Package sources implements the publisher-dialect registry: a fixed set
// of stateless Dialect values, each knowing how to locate table nodes and
// article identifiers within its publisher's HTML shape, plus a
// DefaultSource fallback for anything unrecognized. Dialects are values
// implementing one small interface; there is no inheritance chain.
package sources

import (
	"context"

	"github.com/dlclark/regexp2"
	"golang.org/x/net/html"

	"github.com/coregx/neurotab/internal/fetch"
)

// TableMeta is the descriptive metadata a dialect attaches to a
// discovered table.
type TableMeta struct {
	Number  string
	Label   string
	Caption string
	Notes   string
}

// TableCandidate pairs a discovered <table> node with its dialect-sourced
// metadata.
type TableCandidate struct {
	Table *html.Node
	Meta  TableMeta
}

// Dialect is the capability set every publisher-specific source and
// DefaultSource implement. Dialects are stateless: parse-time state lives
// entirely in ParseArticle's local variables, never on
// the Dialect value itself, so a single Dialect instance is safe to reuse
// across a worker pool.
type Dialect interface {
	// Name identifies the dialect for logging and the registry.
	Name() string

	// Identifiers returns the regexes tested against raw HTML during
	// source identification. DefaultSource returns nil — it is never
	// matched by the registry, only selected as an explicit fallback.
	Identifiers() []*regexp2.Regexp

	// Entities returns any dialect-specific HTML-entity overrides, merged
	// over entities.Standard.
	Entities() map[string]string

	// DiscoverTables locates every table this dialect recognizes within
	// doc, fetching linked sub-documents via f when the dialect's table
	// layout requires it (HighWire, Springer).
	DiscoverTables(ctx context.Context, doc *html.Node, f fetch.Fetcher) ([]TableCandidate, error)

	// ExtractPMID returns the article's PMID if this dialect can find it
	// in the DOM.
	ExtractPMID(doc *html.Node) (int, bool)

	// ExtractDOI returns the article's DOI if present in the DOM.
	ExtractDOI(doc *html.Node) (string, bool)
}
