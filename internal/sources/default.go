package sources

import (
	"context"
	"net/url"
	"strings"

	"github.com/dlclark/regexp2"
	"github.com/rs/zerolog"
	"golang.org/x/net/html"

	"github.com/coregx/neurotab/internal/fetch"
)

// DefaultSource is the fallback dialect used when SourceRegistry.Identify
// finds no publisher match but the caller still wants a best-effort
// extraction. Identify never returns it; Default does. Discovery
// tries four strategies in order — publisher-agnostic container
// selectors, semantic markers (captions, headings, role attributes),
// content heuristics, and finally every table minus navigation chrome —
// then augments the result with linked-table recovery.
type DefaultSource struct{}

func (DefaultSource) Name() string { return "default" }

// Identifiers is empty: DefaultSource is never matched, only selected
// explicitly as a fallback.
func (DefaultSource) Identifiers() []*regexp2.Regexp { return nil }

func (DefaultSource) Entities() map[string]string { return nil }

var defaultSweepSelectors = []func(*html.Node) bool{
	byTagAndClass("div", "tables"),
	func(n *html.Node) bool { return n.Data == "div" && hasClassContaining(n, "table-wrap") },
	func(n *html.Node) bool { return n.Data == "figure" && containsAttrSubstr(n, "id", "table") },
}

var reHeadingTableNum = regexp2.MustCompile(`table\s*\d+`, regexp2.IgnoreCase)

var reXYZTriple = regexp2.MustCompile(`-?\d+\.?\d*[,;\s]+-?\d+\.?\d*[,;\s]+-?\d+\.?\d*`, 0)

var reNeuroVocab = regexp2.MustCompile(`(brain|region|cortex|activation|cluster|peak|coordinate)`, regexp2.IgnoreCase)

var reStatValue = regexp2.MustCompile(`p\s*[<>=]\s*0?\.\d+`, regexp2.IgnoreCase)

var reNavKeyword = regexp2.MustCompile(`(home|menu|navigation|skip to|related articles|advertisement)`, regexp2.IgnoreCase)

var linkedTableTextHints = regexp2.MustCompile(`(full size table|view table|expand table|table\s*\d+)`, regexp2.IgnoreCase)

var linkedTableURLHints = regexp2.MustCompile(`(/T\d+\.expansion\.html|/tables/\d+|[?&]table=\d+|#table\d+|/table\d+\.html)`, regexp2.IgnoreCase)

func containsAttrSubstr(n *html.Node, key, substr string) bool {
	v, ok := attr(n, key)
	return ok && strings.Contains(v, substr)
}

func matchString(re *regexp2.Regexp, s string) bool {
	ok, err := re.MatchString(s)
	return err == nil && ok
}

// DiscoverTables tries each of the four fallback strategies in order,
// returning the first one that yields any candidates, then augments the
// result with linked-table recovery.
func (d DefaultSource) DiscoverTables(ctx context.Context, doc *html.Node, f fetch.Fetcher) ([]TableCandidate, error) {
	var out []TableCandidate

	if cands := d.sweepSelectors(doc); len(cands) > 0 {
		out = cands
	} else if cands := d.semantic(doc); len(cands) > 0 {
		out = cands
	} else if cands := d.contentHeuristics(doc); len(cands) > 0 {
		out = cands
	} else {
		out = d.allTablesMinusNav(doc)
	}

	linked, _ := d.linkedTableRecovery(ctx, doc, f)
	out = append(out, linked...)

	d.logJSGatedTables(ctx, doc)

	return d.validate(out), nil
}

func (d DefaultSource) sweepSelectors(doc *html.Node) []TableCandidate {
	var out []TableCandidate
	for _, sel := range defaultSweepSelectors {
		for _, container := range findAll(doc, sel) {
			table := firstTable(container)
			if table == nil {
				continue
			}
			out = append(out, TableCandidate{Table: table, Meta: containerMetaFallbacks(container)})
		}
	}
	return out
}

func (d DefaultSource) semantic(doc *html.Node) []TableCandidate {
	var out []TableCandidate
	for _, table := range findAll(doc, byTag("table")) {
		hasCaption := findFirst(table, byTag("caption")) != nil
		hasRole := func() bool {
			v, ok := attr(table, "role")
			return ok && v == "table"
		}()
		precededByHeading := false
		for sib := table.PrevSibling; sib != nil; sib = sib.PrevSibling {
			if sib.Type != html.ElementNode {
				continue
			}
			switch sib.Data {
			case "h1", "h2", "h3", "h4", "h5", "h6":
				if matchString(reHeadingTableNum, textContent(sib)) {
					precededByHeading = true
				}
			}
			break
		}
		if hasCaption || hasRole || precededByHeading {
			out = append(out, TableCandidate{Table: table, Meta: containerMetaFallbacks(table)})
		}
	}
	return out
}

func (d DefaultSource) contentHeuristics(doc *html.Node) []TableCandidate {
	var out []TableCandidate
	for _, table := range findAll(doc, byTag("table")) {
		text := textContent(table)
		if matchString(reXYZTriple, text) {
			out = append(out, TableCandidate{Table: table, Meta: containerMetaFallbacks(table)})
			continue
		}
		headerText := ""
		for _, th := range findAll(table, byTag("th")) {
			headerText += " " + textContent(th)
		}
		if matchString(reNeuroVocab, headerText) && matchString(reStatValue, text) {
			out = append(out, TableCandidate{Table: table, Meta: containerMetaFallbacks(table)})
		}
	}
	return out
}

func (d DefaultSource) allTablesMinusNav(doc *html.Node) []TableCandidate {
	var out []TableCandidate
	for _, table := range findAll(doc, byTag("table")) {
		if isNavigationTable(table) {
			continue
		}
		out = append(out, TableCandidate{Table: table, Meta: containerMetaFallbacks(table)})
	}
	return out
}

func isNavigationTable(table *html.Node) bool {
	if hasClassContaining(table, "nav") || hasClassContaining(table, "menu") || hasClassContaining(table, "footer") {
		return true
	}
	links := findAll(table, byTag("a"))
	cells := findAll(table, byTag("td"))
	if len(cells) > 0 && len(links) > 0 && float64(len(links))/float64(len(cells)) > 0.8 {
		return true
	}
	return matchString(reNavKeyword, textContent(table))
}

// linkedTableRecovery scans anchors for text/URL hints that they link to a
// table fragment, resolves the URL against a base read from <meta> tags,
// fetches it, and harvests its <table>.
func (d DefaultSource) linkedTableRecovery(ctx context.Context, doc *html.Node, f fetch.Fetcher) ([]TableCandidate, error) {
	if f == nil {
		return nil, nil
	}

	base := resolveBaseURL(doc)

	var out []TableCandidate
	for _, a := range findAll(doc, byTag("a")) {
		href, ok := attr(a, "href")
		if !ok || href == "" {
			continue
		}
		text := textContent(a)
		if !matchString(linkedTableTextHints, text) && !matchString(linkedTableURLHints, href) {
			continue
		}
		resolved := resolveURL(base, href)
		if resolved == "" {
			continue
		}
		body, err := f.Fetch(ctx, resolved)
		if err != nil {
			continue
		}
		fragDoc, err := html.Parse(strings.NewReader(body))
		if err != nil {
			continue
		}
		table := firstTable(fragDoc)
		if table == nil {
			continue
		}
		out = append(out, TableCandidate{Table: table, Meta: genericContainerMeta(fragDoc)})
	}
	return out, nil
}

func resolveBaseURL(doc *html.Node) string {
	for _, name := range []string{"citation_public_url", "citation_fulltext_html_url", "og:url"} {
		if v, ok := findMeta(doc, name); ok && v != "" {
			return v
		}
	}
	return ""
}

func resolveURL(base, ref string) string {
	if base == "" {
		return ref
	}
	baseURL, err := url.Parse(base)
	if err != nil {
		return ref
	}
	refURL, err := url.Parse(ref)
	if err != nil {
		return ""
	}
	return baseURL.ResolveReference(refURL).String()
}

// logJSGatedTables detects tables whose content is loaded via JavaScript,
// per markers like "table-expand-inline" classes or "data-table-url"
// attributes. Detection only: evaluating the script that would populate
// them is out of scope, so the finding is logged and nothing else.
func (d DefaultSource) logJSGatedTables(ctx context.Context, doc *html.Node) {
	log := zerolog.Ctx(ctx)
	for _, n := range findAll(doc, func(n *html.Node) bool {
		_, hasDataURL := attr(n, "data-table-url")
		return hasClassContaining(n, "table-expand-inline") || hasDataURL
	}) {
		dataURL, _ := attr(n, "data-table-url")
		log.Debug().Str("element", n.Data).Str("data_table_url", dataURL).
			Msg("javascript-gated table detected, not evaluated")
	}
}

// validate drops candidates with fewer than two rows, or whose caption
// marks them as navigation/ads/related-articles panels.
func (d DefaultSource) validate(cands []TableCandidate) []TableCandidate {
	var out []TableCandidate
	for _, c := range cands {
		rows := findAll(c.Table, byTag("tr"))
		if len(rows) < 2 {
			continue
		}
		if matchString(reNavKeyword, c.Meta.Caption) {
			continue
		}
		out = append(out, c)
	}
	return out
}

// ExtractPMID tries the DOM-derived citation_pmid meta; callers fall back
// to DOI resolution when this misses.
func (d DefaultSource) ExtractPMID(doc *html.Node) (int, bool) { return citationPMID(doc) }

func (d DefaultSource) ExtractDOI(doc *html.Node) (string, bool) { return citationDOI(doc) }

// containerMetaFallbacks applies the four DefaultSource metadata
// fallbacks (XML-style, HTML-container style, table-level, context style)
// for a candidate whose genericContainerMeta pass came up empty.
func containerMetaFallbacks(container *html.Node) TableMeta {
	meta := genericContainerMeta(container)
	if meta.Label == "" {
		if n := findFirst(container, byTagAndClass("span", "fn")); n != nil {
			meta.Label = textContent(n)
		}
	}
	if meta.Caption == "" {
		for sib := container.PrevSibling; sib != nil; sib = sib.PrevSibling {
			if sib.Type != html.ElementNode {
				continue
			}
			switch sib.Data {
			case "h1", "h2", "h3", "h4", "h5", "h6", "p":
				if matchString(reHeadingTableNum, textContent(sib)) {
					meta.Caption = textContent(sib)
				}
			}
			break
		}
	}
	return meta
}
