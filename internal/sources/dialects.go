package sources

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/dlclark/regexp2"
	"golang.org/x/net/html"

	"github.com/coregx/neurotab/internal/fetch"
)

func matchesAny(patterns []*regexp2.Regexp, s string) bool {
	for _, re := range patterns {
		if ok, err := re.MatchString(s); err == nil && ok {
			return true
		}
	}
	return false
}

// --- HighWire / Sage ---------------------------------------------------

// HighWireSource discovers tables by fetching each table's standalone
// "expansion" page, the way highwire-hosted and Sage journals serve
// per-table HTML fragments.
type HighWireSource struct{}

func (HighWireSource) Name() string { return "highwire" }

func (HighWireSource) Identifiers() []*regexp2.Regexp { return identifiersFor("highwire") }

func (HighWireSource) Entities() map[string]string { return entitiesFor("highwire") }

func (HighWireSource) DiscoverTables(ctx context.Context, doc *html.Node, f fetch.Fetcher) ([]TableCandidate, error) {
	contentURL, ok := findMeta(doc, "citation_public_url")
	if !ok {
		return nil, nil
	}
	labels := findAll(doc, byTagAndClass("span", "table-label"))
	n := len(labels)

	var out []TableCandidate
	for i := 1; i <= n; i++ {
		if i > 1 {
			if err := sleepCtx(ctx, delayFor("highwire")); err != nil {
				return out, err
			}
		}
		url := fmt.Sprintf("%s/T%d.expansion.html", strings.TrimRight(contentURL, "/"), i)
		tc, table, err := fetchExpansionTable(ctx, f, url, "table-expansion", fmt.Sprintf("table-%d", i))
		if err != nil || table == nil {
			continue
		}
		meta := genericContainerMeta(tc)
		meta.Number = strconv.Itoa(i)
		if lab := findFirst(tc, byTagAndClass("span", "table-label")); lab != nil {
			meta.Label = textContent(lab)
		}
		if cap := findFirst(tc, byTagAndClass("div", "table-caption")); cap != nil {
			meta.Caption = textContent(cap)
		}
		if notes := findFirst(tc, byTagAndClass("div", "table-footnotes")); notes != nil {
			meta.Notes = textContent(notes)
		}
		out = append(out, TableCandidate{Table: table, Meta: meta})
	}
	return out, nil
}

func (HighWireSource) ExtractPMID(doc *html.Node) (int, bool)   { return citationPMID(doc) }
func (HighWireSource) ExtractDOI(doc *html.Node) (string, bool) { return citationDOI(doc) }

// --- ScienceDirect -------------------------------------------------------

// ScienceDirectSource discovers tables inside "div.tables" containers (or
// the legacy "dl.table" wrapper).
type ScienceDirectSource struct{}

func (ScienceDirectSource) Name() string { return "sciencedirect" }

func (ScienceDirectSource) Identifiers() []*regexp2.Regexp { return identifiersFor("sciencedirect") }

func (ScienceDirectSource) Entities() map[string]string { return entitiesFor("sciencedirect") }

func (ScienceDirectSource) DiscoverTables(ctx context.Context, doc *html.Node, f fetch.Fetcher) ([]TableCandidate, error) {
	containers := findAll(doc, func(n *html.Node) bool {
		return (n.Data == "dl" && hasClass(n, "table")) || (n.Data == "div" && hasClass(n, "tables"))
	})

	var out []TableCandidate
	for _, tc := range containers {
		table := firstTable(tc)
		if table == nil {
			continue
		}
		meta := genericContainerMeta(tc)
		if v, ok := attr(tc, "data-label"); ok {
			meta.Number = lastNumberToken(v)
		}
		out = append(out, TableCandidate{Table: table, Meta: meta})
	}
	return out, nil
}

func (ScienceDirectSource) ExtractPMID(doc *html.Node) (int, bool)   { return citationPMID(doc) }
func (ScienceDirectSource) ExtractDOI(doc *html.Node) (string, bool) { return citationDOI(doc) }

// --- PLoS ------------------------------------------------------------

// PlosSource discovers tables in XML-ish "<table-wrap>" containers.
type PlosSource struct{}

func (PlosSource) Name() string { return "plos" }

func (PlosSource) Identifiers() []*regexp2.Regexp { return identifiersFor("plos") }

func (PlosSource) Entities() map[string]string { return entitiesFor("plos") }

func (PlosSource) DiscoverTables(ctx context.Context, doc *html.Node, f fetch.Fetcher) ([]TableCandidate, error) {
	containers := findAll(doc, byTag("table-wrap"))
	var out []TableCandidate
	for _, tc := range containers {
		table := firstTable(tc)
		if table == nil {
			continue
		}
		meta := genericContainerMeta(tc)
		meta.Number = lastNumberToken(meta.Label)
		out = append(out, TableCandidate{Table: table, Meta: meta})
	}
	return out, nil
}

func (PlosSource) ExtractPMID(doc *html.Node) (int, bool)   { return citationPMID(doc) }
func (PlosSource) ExtractDOI(doc *html.Node) (string, bool) { return citationDOI(doc) }

// --- Frontiers -----------------------------------------------------------

// FrontiersSource discovers tables in "<table-wrap id=T\d+>" containers.
type FrontiersSource struct{}

func (FrontiersSource) Name() string { return "frontiers" }

func (FrontiersSource) Identifiers() []*regexp2.Regexp { return identifiersFor("frontiers") }

func (FrontiersSource) Entities() map[string]string { return entitiesFor("frontiers") }

var frontiersTableID = regexp.MustCompile(`^T\d+$`)

func (FrontiersSource) DiscoverTables(ctx context.Context, doc *html.Node, f fetch.Fetcher) ([]TableCandidate, error) {
	containers := findAll(doc, func(n *html.Node) bool {
		if n.Data != "table-wrap" {
			return false
		}
		id, ok := attr(n, "id")
		return ok && frontiersTableID.MatchString(id)
	})

	var out []TableCandidate
	for _, tc := range containers {
		table := firstTable(tc)
		if table == nil {
			continue
		}
		meta := genericContainerMeta(tc)
		id, _ := attr(tc, "id")
		meta.Number = strings.TrimPrefix(id, "T")
		out = append(out, TableCandidate{Table: table, Meta: meta})
	}
	return out, nil
}

func (FrontiersSource) ExtractPMID(doc *html.Node) (int, bool)   { return citationPMID(doc) }
func (FrontiersSource) ExtractDOI(doc *html.Node) (string, bool) { return citationDOI(doc) }

// --- OUP -------------------------------------------------------------

// OUPSource discovers tables in "div.table-full-width-wrap" containers,
// excluding the "table-modal" popup duplicate OUP renders alongside the
// inline table.
type OUPSource struct{}

func (OUPSource) Name() string { return "oup" }

func (OUPSource) Identifiers() []*regexp2.Regexp { return identifiersFor("oup") }

func (OUPSource) Entities() map[string]string { return entitiesFor("oup") }

func (OUPSource) DiscoverTables(ctx context.Context, doc *html.Node, f fetch.Fetcher) ([]TableCandidate, error) {
	containers := findAll(doc, func(n *html.Node) bool {
		return n.Data == "div" && hasClass(n, "table-full-width-wrap") && !hasClass(n, "table-modal")
	})

	var out []TableCandidate
	for _, tc := range containers {
		table := firstTable(tc)
		if table == nil {
			continue
		}
		meta := genericContainerMeta(tc)
		meta.Number = lastNumberToken(meta.Label)
		out = append(out, TableCandidate{Table: table, Meta: meta})
	}
	return out, nil
}

func (OUPSource) ExtractPMID(doc *html.Node) (int, bool)   { return citationPMID(doc) }
func (OUPSource) ExtractDOI(doc *html.Node) (string, bool) { return citationDOI(doc) }

// --- Wiley -----------------------------------------------------------

// WileySource discovers tables in "div.table" containers whose id looks
// like "tbl1"/"t1", and treats their <tfoot> as footnotes.
type WileySource struct{}

func (WileySource) Name() string { return "wiley" }

func (WileySource) Identifiers() []*regexp2.Regexp { return identifiersFor("wiley") }

func (WileySource) Entities() map[string]string { return entitiesFor("wiley") }

var wileyTableID = regexp.MustCompile(`^t(bl)?\d+$`)

func (WileySource) DiscoverTables(ctx context.Context, doc *html.Node, f fetch.Fetcher) ([]TableCandidate, error) {
	containers := findAll(doc, func(n *html.Node) bool {
		if n.Data != "div" || !hasClass(n, "table") {
			return false
		}
		id, ok := attr(n, "id")
		return ok && wileyTableID.MatchString(strings.ToLower(id))
	})

	var out []TableCandidate
	for _, tc := range containers {
		table := firstTable(tc)
		if table == nil {
			continue
		}
		meta := genericContainerMeta(tc)
		meta.Number = lastNumberToken(meta.Label)
		if notes := findFirst(tc, byTag("tfoot")); notes != nil {
			meta.Notes = textContent(notes)
		}
		out = append(out, TableCandidate{Table: table, Meta: meta})
	}
	return out, nil
}

func (WileySource) ExtractPMID(doc *html.Node) (int, bool)   { return citationPMID(doc) }
func (WileySource) ExtractDOI(doc *html.Node) (string, bool) { return citationDOI(doc) }

// --- Springer ----------------------------------------------------------

// SpringerSource discovers tables by fetching each "Full size table" page
// at "{fulltext_url}/tables/{n}", mirroring Springer's lazy-loaded table
// presentation, the same shape as HighWireSource's expansion pages.
type SpringerSource struct{}

func (SpringerSource) Name() string { return "springer" }

func (SpringerSource) Identifiers() []*regexp2.Regexp { return identifiersFor("springer") }

func (SpringerSource) Entities() map[string]string { return entitiesFor("springer") }

func (SpringerSource) DiscoverTables(ctx context.Context, doc *html.Node, f fetch.Fetcher) ([]TableCandidate, error) {
	fulltextURL, ok := findMeta(doc, "citation_fulltext_html_url")
	if !ok {
		return nil, nil
	}
	// Count the "Full size table" link spans themselves, not every
	// ancestor whose subtree happens to contain one.
	n := len(findAll(doc, func(node *html.Node) bool {
		return node.Data == "span" && strings.TrimSpace(textContent(node)) == "Full size table"
	}))

	var out []TableCandidate
	for i := 1; i <= n; i++ {
		if i > 1 {
			if err := sleepCtx(ctx, delayFor("springer")); err != nil {
				return out, err
			}
		}
		url := fmt.Sprintf("%s/tables/%d", strings.TrimRight(fulltextURL, "/"), i)
		tc, table, err := fetchExpansionTable(ctx, f, url, "", "")
		if err != nil || table == nil {
			continue
		}
		meta := genericContainerMeta(tc)
		meta.Number = strconv.Itoa(i)
		out = append(out, TableCandidate{Table: table, Meta: meta})
	}
	return out, nil
}

func (SpringerSource) ExtractPMID(doc *html.Node) (int, bool)   { return citationPMID(doc) }
func (SpringerSource) ExtractDOI(doc *html.Node) (string, bool) { return citationDOI(doc) }

// --- PMC ---------------------------------------------------------------

// PMCSource discovers tables in PubMed Central's "div.table-wrap"
// containers.
type PMCSource struct{}

func (PMCSource) Name() string { return "pmc" }

func (PMCSource) Identifiers() []*regexp2.Regexp { return identifiersFor("pmc") }

func (PMCSource) Entities() map[string]string { return entitiesFor("pmc") }

func (PMCSource) DiscoverTables(ctx context.Context, doc *html.Node, f fetch.Fetcher) ([]TableCandidate, error) {
	containers := findAll(doc, byTagAndClass("div", "table-wrap"))
	var out []TableCandidate
	for _, tc := range containers {
		table := firstTable(tc)
		if table == nil {
			continue
		}
		meta := genericContainerMeta(tc)
		meta.Number = lastNumberToken(meta.Label)
		out = append(out, TableCandidate{Table: table, Meta: meta})
	}
	return out, nil
}

func (PMCSource) ExtractPMID(doc *html.Node) (int, bool)   { return citationPMID(doc) }
func (PMCSource) ExtractDOI(doc *html.Node) (string, bool) { return citationDOI(doc) }

func lastNumberToken(s string) string {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return ""
	}
	return fields[len(fields)-1]
}
