// Package neurotab extracts stereotactic brain-activation coordinates
// (x/y/z triples in a standardized anatomical space) from the HTML full
// text of neuroimaging journal articles.
//
// The root package is a thin adapter over the internal extraction
// pipeline: identify a publisher dialect, parse its HTML into a grid,
// classify columns, detect repeating groups, and build validated
// activations. All real logic lives in internal/... packages, one per
// pipeline stage; Article, Table, and Activation here are the same
// domain types those packages operate on, re-exported for callers who
// only need the public surface.
//
// # Quick Start
//
// Ingest a batch of article HTML files:
//
//	ing := neurotab.NewIngestor(neurotab.DefaultIngestOptions())
//	results, err := ing.Run(context.Background(), paths)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for _, r := range results {
//	    if r.Skipped {
//	        continue
//	    }
//	    fmt.Printf("pmid=%d tables=%d\n", r.Article.PMID, len(r.Article.Tables))
//	}
//
// # Architecture
//
//   - Root package for the public API (neurotab.Ingestor, neurotab.Article,
//     neurotab.Table, neurotab.Activation)
//   - export/ for rendering a Table to CSV/JSON/Excel
//   - internal/... packages for the pipeline itself
//
// # Thread Safety
//
// An Ingestor is safe for concurrent Run calls against disjoint path
// lists; within one Run, stages 1 and 2 are themselves parallelized
// internally (see internal/ingest).
package neurotab

import "github.com/coregx/neurotab/internal/article"

// Version is the current version of the neurotab library.
const Version = "0.1.0"

// Article is the top-level record produced by parsing one HTML document:
// identifiers, coordinate-space tag, and zero or more Tables.
type Article = article.Article

// Table is one logical HTML table's worth of surviving Activations.
type Table = article.Table

// Activation is a single stereotactic coordinate triple plus whatever
// ancillary attributes its source row carried.
type Activation = article.Activation

// CoordSpace identifies the stereotactic reference system (MNI, TAL, or
// UNKNOWN) a set of activation coordinates is expressed in.
type CoordSpace = article.CoordSpace

// Metadata is an article metadata record as returned by a metadata
// resolver.
type Metadata = article.Metadata

// NeuroVaultLink is a cross-reference to a NeuroVault image or collection
// harvested from an article's hyperlinks.
type NeuroVaultLink = article.NeuroVaultLink

const (
	MNI          = article.MNI
	TAL          = article.TAL
	UnknownSpace = article.UnknownSpace
)
