// Package ingest implements the top-level batch entry point: for each
// input HTML file, validate it, identify a publisher dialect, parse it
// into an Article, and hand surviving articles to a caller-supplied
// persistence adapter. Validation/identification and parsing each run
// across an errgroup-driven worker pool; persistence stays on the calling
// goroutine.
package ingest

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/coregx/neurotab/internal/article"
	"github.com/coregx/neurotab/internal/config"
	"github.com/coregx/neurotab/internal/fetch"
	"github.com/coregx/neurotab/internal/htmlgrid"
	"github.com/coregx/neurotab/internal/pubmed"
	"github.com/coregx/neurotab/internal/sources"
	"github.com/coregx/neurotab/internal/tableparse"
)

// Persistence is the opaque storage collaborator; the pipeline never
// knows what backs it.
type Persistence interface {
	Exists(pmid int) bool
	Add(art *article.Article) error
	Save() error
}

// ErrPersistence wraps a failure from the caller-supplied Persistence
// adapter. Unlike every other failure kind, which is local to one row,
// table, or article, a persistence failure is surfaced on the affected
// Result for the caller to act on.
var ErrPersistence = errors.New("neurotab: persistence error")

// interceptionMarkers are substrings that indicate the fetched HTML is
// actually a bot-interception or error page rather than an article.
var interceptionMarkers = []string{
	"cloudflare",
	"403 forbidden",
	"access denied",
	"page not available",
	"captcha",
}

// Options configures an Ingestor. Registry and Config are required;
// everything else has a usable zero value.
type Options struct {
	Registry         *sources.SourceRegistry
	Config           config.Config
	Fetcher          fetch.Fetcher
	MetadataResolver pubmed.MetadataResolver
	DOIResolver      pubmed.DOIResolver
	Persistence      Persistence

	// ForceDefaultSource selects DefaultSource when no dialect matches,
	// instead of skipping the file.
	ForceDefaultSource bool

	// PMIDFromFilename asserts that each input file's basename (minus
	// extension) is the article's PMID, bypassing DOM/DOI resolution.
	PMIDFromFilename bool

	// MaxWorkers bounds stage 1/2 concurrency. Zero falls back to
	// Config.MaxWorkers, and to runtime.GOMAXPROCS(0) when that is zero
	// too.
	MaxWorkers int

	// FlushEvery triggers Persistence.Save every N successful adds, and
	// once more at stream end.
	FlushEvery int

	Logger zerolog.Logger
}

// Result reports what happened to one input file.
type Result struct {
	Path    string
	Article *article.Article
	Skipped bool
	Reason  string
	Err     error
}

// Ingestor runs the three-stage pipeline over a batch of HTML files:
// stage 1 (read+validate+identify) and stage 2 (parse) each run across a
// bounded worker pool; stage 3 (persistence) runs sequentially on the
// calling goroutine.
type Ingestor struct {
	opts Options
}

// New returns an Ingestor configured by opts.
func New(opts Options) *Ingestor {
	if opts.MaxWorkers <= 0 {
		opts.MaxWorkers = opts.Config.MaxWorkers
	}
	if opts.MaxWorkers <= 0 {
		opts.MaxWorkers = runtime.GOMAXPROCS(0)
	}
	if opts.FlushEvery <= 0 {
		opts.FlushEvery = 50
	}
	if opts.Config.SilentErrors {
		opts.Logger = opts.Logger.Level(zerolog.ErrorLevel)
	}
	return &Ingestor{opts: opts}
}

// identified is stage 1's output: a file that passed validation and was
// (or was forced to be) matched to a dialect.
type identified struct {
	path    string
	html    string
	dialect sources.Dialect
}

// Run ingests every path in paths and returns one Result per input, in
// input order. Persistence order matches input order too, since stage 2
// preserves the index-to-slot mapping.
func (ing *Ingestor) Run(ctx context.Context, paths []string) ([]Result, error) {
	results := make([]Result, len(paths))
	for i, p := range paths {
		results[i].Path = p
	}

	stage1 := make([]*identified, len(paths))
	if err := ing.runStage(ctx, len(paths), func(i int) error {
		idn, skip, reason, err := ing.stage1(ctx, paths[i])
		if err != nil {
			results[i].Err = err
			return nil
		}
		if skip {
			results[i].Skipped = true
			results[i].Reason = reason
			return nil
		}
		stage1[i] = idn
		return nil
	}); err != nil {
		return results, err
	}

	articles := make([]*article.Article, len(paths))
	if err := ing.runStage(ctx, len(paths), func(i int) error {
		idn := stage1[i]
		if idn == nil {
			return nil
		}
		art, skip, reason, err := ing.stage2(ctx, idn)
		if err != nil {
			results[i].Err = err
			return nil
		}
		if skip {
			results[i].Skipped = true
			results[i].Reason = reason
			return nil
		}
		articles[i] = art
		return nil
	}); err != nil {
		return results, err
	}

	ing.stage3(results, articles)

	return results, nil
}

// runStage executes fn(i) for i in [0,n) across a bounded worker pool via
// errgroup; stages 1 and 2 share no mutable state across items, so each
// index runs independently. fn itself never returns an error that
// should abort the batch — per-item failures are recorded into Result and
// fn returns nil — so the only error runStage itself can return is ctx
// cancellation surfacing from errgroup.
func (ing *Ingestor) runStage(ctx context.Context, n int, fn func(i int) error) error {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(ing.opts.MaxWorkers)
	for i := 0; i < n; i++ {
		i := i
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}
			return fn(i)
		})
	}
	return g.Wait()
}

// stage1 reads, validates, and identifies the dialect for one file.
func (ing *Ingestor) stage1(ctx context.Context, path string) (*identified, bool, string, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, false, "", fmt.Errorf("ingest: read %s: %w", path, err)
	}
	html := string(raw)

	if reason, bad := detectInterception(html); bad {
		ing.opts.Logger.Warn().Str("path", path).Str("reason", reason).Msg("invalid_html")
		return nil, true, "invalid_html: " + reason, nil
	}

	dialect, ok := ing.opts.Registry.Identify(html)
	if !ok {
		if !ing.opts.ForceDefaultSource {
			return nil, true, "no_source_match", nil
		}
		dialect = ing.opts.Registry.Default()
	}

	return &identified{path: path, html: html, dialect: dialect}, false, "", nil
}

// stage2 parses one identified file into an Article.
func (ing *Ingestor) stage2(ctx context.Context, idn *identified) (*article.Article, bool, string, error) {
	var assertedPMID int
	if ing.opts.PMIDFromFilename {
		base := strings.TrimSuffix(filepath.Base(idn.path), filepath.Ext(idn.path))
		if n, err := strconv.Atoi(base); err == nil {
			assertedPMID = n
		}
	}

	if ing.opts.Persistence != nil && assertedPMID > 0 && !ing.opts.Config.OverwriteExistingRows {
		if ing.opts.Persistence.Exists(assertedPMID) {
			return nil, true, "already_exists", nil
		}
	}

	art, err := sources.ParseArticle(ctx, idn.dialect, idn.html, sources.ParseOptions{
		Fetcher:          ing.opts.Fetcher,
		MetadataResolver: ing.opts.MetadataResolver,
		DOIResolver:      ing.opts.DOIResolver,
		AssertedPMID:     assertedPMID,
		TableOptions: tableparse.Options{
			ExcludeTablesWithMissingLabels: ing.opts.Config.ExcludeTablesWithMissingLabels,
			Logger:                         ing.opts.Logger,
		},
		GridOptions: &htmlgrid.Options{
			CarefulParsing: ing.opts.Config.CarefulParsing,
			IgnoreBadRows:  ing.opts.Config.IgnoreBadRows,
			Logger:         ing.opts.Logger,
		},
	})
	if err != nil {
		if errors.Is(err, sources.ErrMissingIdentifier) {
			ing.opts.Logger.Warn().Str("path", idn.path).Msg("missing_identifier")
			return nil, true, "missing_identifier", nil
		}
		return nil, false, "", fmt.Errorf("ingest: parse %s: %w", idn.path, err)
	}

	if ing.opts.Persistence != nil && !ing.opts.Config.OverwriteExistingRows && assertedPMID == 0 {
		if ing.opts.Persistence.Exists(art.PMID) {
			return nil, true, "already_exists", nil
		}
	}

	if len(art.Tables) == 0 && !ing.opts.Config.SaveArticlesWithoutActivations {
		return nil, true, "no_tables", nil
	}

	return art, false, "", nil
}

// stage3 hands every surviving Article to Persistence sequentially,
// flushing every FlushEvery additions and once more at stream end.
func (ing *Ingestor) stage3(results []Result, articles []*article.Article) {
	if ing.opts.Persistence == nil {
		for i, art := range articles {
			results[i].Article = art
		}
		return
	}

	added := 0
	for i, art := range articles {
		if art == nil {
			continue
		}
		if err := ing.opts.Persistence.Add(art); err != nil {
			results[i].Err = fmt.Errorf("%w: %w", ErrPersistence, err)
			continue
		}
		results[i].Article = art
		added++
		if added%ing.opts.FlushEvery == 0 {
			_ = ing.opts.Persistence.Save()
		}
	}
	if added%ing.opts.FlushEvery != 0 {
		_ = ing.opts.Persistence.Save()
	}
}

// detectInterception reports whether html looks like a bot-interception
// or error page rather than an article.
func detectInterception(html string) (string, bool) {
	lower := strings.ToLower(html)
	for _, marker := range interceptionMarkers {
		if strings.Contains(lower, marker) {
			return marker, true
		}
	}
	return "", false
}
