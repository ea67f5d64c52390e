package sources

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dlclark/regexp2"
	"golang.org/x/net/html"

	"github.com/coregx/neurotab/internal/article"
	"github.com/coregx/neurotab/internal/coordspace"
	"github.com/coregx/neurotab/internal/entities"
	"github.com/coregx/neurotab/internal/fetch"
	"github.com/coregx/neurotab/internal/htmlgrid"
	"github.com/coregx/neurotab/internal/pubmed"
	"github.com/coregx/neurotab/internal/tableparse"
)

var reNeuroVaultLink = regexp2.MustCompile(`neurovault\.org/(image|collection)s?/(\d+)`, regexp2.IgnoreCase)

// ErrMissingIdentifier reports that an article's PMID could not be
// determined by any available means: not asserted by the caller, not
// present in the DOM, not resolvable from a DOI. An article without a PMID
// yields no Article at all.
var ErrMissingIdentifier = errors.New("neurotab: missing identifier")

// ParseOptions carries the collaborators ParseArticle needs beyond the raw
// HTML itself: a Fetcher for dialects that must retrieve sub-documents, a
// metadata resolver, an optional DOI resolver for PMID-from-DOI recovery,
// and a caller-asserted PMID when the filename convention already supplied
// one.
type ParseOptions struct {
	Fetcher          fetch.Fetcher
	MetadataResolver pubmed.MetadataResolver
	DOIResolver      pubmed.DOIResolver
	AssertedPMID     int
	TableOptions     tableparse.Options

	// GridOptions overrides grid-construction policy; nil means
	// htmlgrid.DefaultOptions().
	GridOptions *htmlgrid.Options
}

// ParseArticle runs the canonical parse flow shared by every dialect:
// normalize entities, parse the DOM, resolve a PMID, fetch metadata,
// discover tables, parse each into activations, guess the coordinate
// space from the article text, and harvest NeuroVault links.
func ParseArticle(ctx context.Context, d Dialect, rawHTML string, opts ParseOptions) (*article.Article, error) {
	normalized := entities.Decode(rawHTML, entities.Merge(d.Entities()))

	doc, err := html.Parse(strings.NewReader(normalized))
	if err != nil {
		return nil, fmt.Errorf("sources: parse html: %w", err)
	}

	pmid, err := resolvePMID(ctx, d, doc, opts)
	if err != nil {
		return nil, err
	}

	art := article.NewArticle(pmid)

	if doi, ok := d.ExtractDOI(doc); ok {
		art.DOI = doi
	}

	if opts.MetadataResolver != nil {
		if md, err := opts.MetadataResolver.GetMetadata(ctx, pmid); err == nil && md != nil {
			art.Metadata = md
		}
	}

	art.Text = textContent(doc)
	art.CoordSpace = coordspace.Guess(art.Text)

	candidates, err := d.DiscoverTables(ctx, doc, opts.Fetcher)
	if err != nil {
		return nil, fmt.Errorf("sources: discover tables: %w", err)
	}

	gridOpts := htmlgrid.DefaultOptions()
	if opts.GridOptions != nil {
		gridOpts = *opts.GridOptions
	}
	builder := htmlgrid.NewDefaultGridBuilder(gridOpts)
	tableOpts := opts.TableOptions
	for _, cand := range candidates {
		grid, err := builder.Build(cand.Table)
		if err != nil || grid == nil {
			continue
		}
		tbl, err := tableparse.Parse(grid, len(art.Tables)+1, tableOpts)
		if err != nil || tbl == nil {
			continue
		}
		tbl.Number = cand.Meta.Number
		tbl.Label = cand.Meta.Label
		tbl.Caption = cand.Meta.Caption
		tbl.Notes = cand.Meta.Notes
		art.AddTable(tbl)
	}

	art.NeuroVaultLinks = harvestNeuroVaultLinks(doc)

	return art, nil
}

// resolvePMID determines the article's PMID: an asserted value wins, then
// the dialect's own DOM extraction, then DOI resolution. Absence of all
// three fails with ErrMissingIdentifier.
func resolvePMID(ctx context.Context, d Dialect, doc *html.Node, opts ParseOptions) (int, error) {
	if opts.AssertedPMID > 0 {
		return opts.AssertedPMID, nil
	}
	if pmid, ok := d.ExtractPMID(doc); ok && pmid > 0 {
		return pmid, nil
	}
	if opts.DOIResolver != nil {
		if doi, ok := d.ExtractDOI(doc); ok && doi != "" {
			if pmid, err := opts.DOIResolver.ResolveDOI(ctx, doi); err == nil && pmid > 0 {
				return pmid, nil
			}
		}
	}
	return 0, fmt.Errorf("%w: no pmid available for dialect %s", ErrMissingIdentifier, d.Name())
}

// harvestNeuroVaultLinks walks every <a href> for NeuroVault image and
// collection URLs.
func harvestNeuroVaultLinks(doc *html.Node) []article.NeuroVaultLink {
	var out []article.NeuroVaultLink
	for _, a := range findAll(doc, byTag("a")) {
		href, ok := attr(a, "href")
		if !ok {
			continue
		}
		m, err := reNeuroVaultLink.FindStringMatch(href)
		if err != nil || m == nil {
			continue
		}
		groups := m.Groups()
		if len(groups) < 3 {
			continue
		}
		kind := article.NeuroVaultImage
		if strings.EqualFold(groups[1].String(), "collection") {
			kind = article.NeuroVaultCollection
		}
		out = append(out, article.NeuroVaultLink{
			Kind: kind,
			ID:   groups[2].String(),
			URL:  href,
		})
	}
	return out
}
