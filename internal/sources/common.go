package sources

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"golang.org/x/net/html"

	"github.com/coregx/neurotab/internal/fetch"
)

// sleepCtx pauses for d between successive per-table fetches, returning
// early if ctx is canceled.
func sleepCtx(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// citationPMID reads the standard <meta name="citation_pmid"> tag most
// dialects expose.
func citationPMID(doc *html.Node) (int, bool) {
	v, ok := findMeta(doc, "citation_pmid")
	if !ok {
		return 0, false
	}
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return 0, false
	}
	return n, true
}

// citationDOI reads the standard <meta name="citation_doi"> tag.
func citationDOI(doc *html.Node) (string, bool) {
	v, ok := findMeta(doc, "citation_doi")
	if !ok || strings.TrimSpace(v) == "" {
		return "", false
	}
	return strings.TrimSpace(v), true
}

// fetchExpansionTable fetches url, parses it, and returns the <table>
// node found by tableID (an id match) nested under a container
// matching containerClass — the shape shared by HighWire's
// "T{n}.expansion.html" pages and Springer's "/tables/{n}" pages.
func fetchExpansionTable(ctx context.Context, f fetch.Fetcher, url, containerClass, tableID string) (container, table *html.Node, err error) {
	if f == nil {
		return nil, nil, fmt.Errorf("sources: no fetcher configured for %s", url)
	}
	body, err := f.Fetch(ctx, url)
	if err != nil {
		return nil, nil, fmt.Errorf("sources: fetch %s: %w", url, err)
	}
	doc, err := html.Parse(strings.NewReader(body))
	if err != nil {
		return nil, nil, fmt.Errorf("sources: parse %s: %w", url, err)
	}

	container = doc
	if containerClass != "" {
		if c := findFirst(doc, func(n *html.Node) bool { return hasClass(n, containerClass) }); c != nil {
			container = c
		}
	}
	if tableID != "" {
		table = findFirst(container, byTagAndID("table", tableID))
	}
	if table == nil {
		table = firstTable(container)
	}
	return container, table, nil
}
