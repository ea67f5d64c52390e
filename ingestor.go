package neurotab

import (
	"context"

	"github.com/coregx/neurotab/internal/config"
	"github.com/coregx/neurotab/internal/fetch"
	"github.com/coregx/neurotab/internal/ingest"
	"github.com/coregx/neurotab/internal/pubmed"
	"github.com/coregx/neurotab/internal/sources"
)

// Persistence is the opaque storage collaborator an Ingestor hands
// surviving Articles to. The library never knows what backs it; no
// implementation ships in this module.
type Persistence = ingest.Persistence

// Result reports what happened to one input file during a Run.
type Result = ingest.Result

// IngestOptions configures an Ingestor.
type IngestOptions struct {
	// Config holds the error-tolerance and persistence-policy tunables.
	Config config.Config

	// Fetcher retrieves auxiliary per-table HTML for dialects that need
	// it (HighWire, Springer) and for DefaultSource's linked-table
	// recovery. A nil Fetcher means those dialects silently discover no
	// tables rather than failing the whole article.
	Fetcher fetch.Fetcher

	// MetadataResolver resolves PMID -> article metadata. Optional.
	MetadataResolver pubmed.MetadataResolver

	// DOIResolver resolves DOI -> PMID for dialects whose pages carry no
	// PMID of their own. Optional.
	DOIResolver pubmed.DOIResolver

	// Persistence receives every surviving Article. Optional: a nil
	// Persistence means Run still populates Result.Article for every
	// surviving input but performs no storage side effect.
	Persistence Persistence

	// ForceDefaultSource selects DefaultSource's heuristic discovery
	// when no publisher dialect matches, instead of skipping the file.
	ForceDefaultSource bool

	// PMIDFromFilename asserts that each input file's basename is the
	// article's PMID.
	PMIDFromFilename bool

	// MaxWorkers bounds ingest concurrency. Zero falls back to
	// Config.MaxWorkers, and to runtime.GOMAXPROCS(0) when that is zero
	// too.
	MaxWorkers int

	// FlushEvery triggers a Persistence.Save every N successful adds.
	FlushEvery int
}

// DefaultIngestOptions returns IngestOptions with the library's default
// Config and no collaborators wired; callers typically override Fetcher,
// MetadataResolver, and Persistence before calling NewIngestor.
func DefaultIngestOptions() IngestOptions {
	return IngestOptions{Config: config.Default()}
}

// Ingestor is the top-level entry point: for each input HTML file, it
// validates, identifies a publisher dialect, parses the article, and
// hands surviving Articles to Persistence.
type Ingestor struct {
	inner *ingest.Ingestor
}

// NewIngestor builds an Ingestor preloaded with the full SourceRegistry of
// publisher dialects.
func NewIngestor(opts IngestOptions) *Ingestor {
	return &Ingestor{inner: ingest.New(ingest.Options{
		Registry:           sources.NewSourceRegistry(),
		Config:             opts.Config,
		Fetcher:            opts.Fetcher,
		MetadataResolver:   opts.MetadataResolver,
		DOIResolver:        opts.DOIResolver,
		Persistence:        opts.Persistence,
		ForceDefaultSource: opts.ForceDefaultSource,
		PMIDFromFilename:   opts.PMIDFromFilename,
		MaxWorkers:         opts.MaxWorkers,
		FlushEvery:         opts.FlushEvery,
	})}
}

// Run ingests every path in paths and returns one Result per input, in
// input order.
func (i *Ingestor) Run(ctx context.Context, paths []string) ([]Result, error) {
	return i.inner.Run(ctx, paths)
}
