// Package pubmed resolves article metadata against NCBI E-utilities and
// DOI->PMID mappings against CrossRef.
package pubmed

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/buger/jsonparser"

	"github.com/coregx/neurotab/internal/article"
	"github.com/coregx/neurotab/internal/fetch"
)

const eutilsBase = "https://eutils.ncbi.nlm.nih.gov/entrez/eutils"

// MetadataResolver resolves a PMID to an article.Metadata record.
type MetadataResolver interface {
	GetMetadata(ctx context.Context, pmid int) (*article.Metadata, error)
}

// DOIResolver resolves a DOI to a PMID.
type DOIResolver interface {
	ResolveDOI(ctx context.Context, doi string) (int, error)
}

// HTTPResolver implements MetadataResolver against efetch's MEDLINE
// format, with an optional on-disk cache keyed by PMID.
type HTTPResolver struct {
	Fetcher  fetch.Fetcher
	APIKey   string
	CacheDir string
}

// NewHTTPResolver returns an HTTPResolver using f for all requests.
func NewHTTPResolver(f fetch.Fetcher) *HTTPResolver {
	return &HTTPResolver{Fetcher: f}
}

// GetMetadata fetches and parses the MEDLINE record for pmid.
func (r *HTTPResolver) GetMetadata(ctx context.Context, pmid int) (*article.Metadata, error) {
	if r.CacheDir != "" {
		if raw, ok := r.readCache(pmid); ok {
			return parseMedline(raw), nil
		}
	}

	u := fmt.Sprintf("%s/efetch.fcgi?db=pubmed&id=%d&rettype=medline&retmode=text", eutilsBase, pmid)
	if r.APIKey != "" {
		u += "&api_key=" + url.QueryEscape(r.APIKey)
	}

	raw, err := r.Fetcher.Fetch(ctx, u)
	if err != nil {
		return nil, fmt.Errorf("pubmed: fetch metadata for pmid %d: %w", pmid, err)
	}

	if r.CacheDir != "" {
		r.writeCache(pmid, raw)
	}
	return parseMedline(raw), nil
}

func (r *HTTPResolver) cachePath(pmid int) string {
	return filepath.Join(r.CacheDir, strconv.Itoa(pmid)+".medline")
}

func (r *HTTPResolver) readCache(pmid int) (string, bool) {
	b, err := os.ReadFile(r.cachePath(pmid))
	if err != nil {
		return "", false
	}
	return string(b), true
}

func (r *HTTPResolver) writeCache(pmid int, raw string) {
	if err := os.MkdirAll(r.CacheDir, 0o755); err != nil {
		return
	}
	_ = os.WriteFile(r.cachePath(pmid), []byte(raw), 0o644)
}

// parseMedline extracts the handful of fields the pipeline cares about
// from MEDLINE-format text (tag, 2 spaces, dash, space, value; wrapped
// continuation lines begin with 6 spaces).
func parseMedline(raw string) *article.Metadata {
	md := &article.Metadata{}
	var curTag, curVal string
	flush := func() {
		switch curTag {
		case "TI":
			md.Title = curVal
		case "TA", "JT":
			if md.Journal == "" {
				md.Journal = curVal
			}
		case "DP":
			md.Year = firstYear(curVal)
		case "AB":
			md.Abstract = curVal
		case "AU":
			if md.Authors == "" {
				md.Authors = curVal
			} else {
				md.Authors += "; " + curVal
			}
		case "MH":
			if md.MeSH == "" {
				md.MeSH = curVal
			} else {
				md.MeSH += "; " + curVal
			}
		case "PMID":
			md.PMID = curVal
		case "LID":
			if strings.HasSuffix(curVal, "[doi]") {
				md.DOI = strings.TrimSpace(strings.TrimSuffix(curVal, "[doi]"))
			}
		}
	}

	for _, line := range strings.Split(raw, "\n") {
		if strings.HasPrefix(line, "      ") {
			curVal += " " + strings.TrimSpace(line)
			continue
		}
		if idx := strings.Index(line, "- "); idx > 0 && idx <= 5 {
			flush()
			curTag = strings.TrimSpace(line[:idx])
			curVal = strings.TrimSpace(line[idx+2:])
			continue
		}
	}
	flush()

	return md
}

func firstYear(dateStr string) string {
	fields := strings.Fields(dateStr)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}

// NoopDOIResolver never resolves anything; used in tests and as the
// default when DOI->PMID lookup is not configured.
type NoopDOIResolver struct{}

func (NoopDOIResolver) ResolveDOI(ctx context.Context, doi string) (int, error) {
	return 0, fmt.Errorf("pubmed: DOI resolution not configured for %q", doi)
}

// CrossRefResolver resolves a DOI to a PMID via CrossRef's work lookup,
// reading the PMID from "message.PMID" or from a pmid-typed entry of the
// "is-identical-to" relation CrossRef exposes for biomedical works.
type CrossRefResolver struct {
	Fetcher fetch.Fetcher
}

func NewCrossRefResolver(f fetch.Fetcher) *CrossRefResolver {
	return &CrossRefResolver{Fetcher: f}
}

func (r *CrossRefResolver) ResolveDOI(ctx context.Context, doi string) (int, error) {
	u := "https://api.crossref.org/works/" + url.PathEscape(doi)
	body, err := r.Fetcher.Fetch(ctx, u)
	if err != nil {
		return 0, fmt.Errorf("pubmed: resolve doi %q: %w", doi, err)
	}
	pmid, ok := extractPMIDFromJSON([]byte(body))
	if !ok {
		return 0, fmt.Errorf("pubmed: no pmid found for doi %q", doi)
	}
	return pmid, nil
}

// extractPMIDFromJSON pulls a PMID out of a CrossRef work record without
// a typed struct — CrossRef attaches PMID under different paths
// depending on deposit source ("message.PMID", or a
// "message.relation.is-identical-to[].id" entry), so jsonparser's
// path-based Get is a better fit here than unmarshaling into a rigid type.
func extractPMIDFromJSON(body []byte) (int, bool) {
	if v, err := jsonparser.GetString(body, "message", "PMID"); err == nil && v != "" {
		if n, err2 := strconv.Atoi(v); err2 == nil {
			return n, true
		}
	}

	var found int
	_, _ = jsonparser.ArrayEach([]byte(body), func(value []byte, dataType jsonparser.ValueType, offset int, err error) {
		if found != 0 {
			return
		}
		idType, tErr := jsonparser.GetString(value, "id-type")
		if tErr != nil || !strings.EqualFold(idType, "pmid") {
			return
		}
		id, idErr := jsonparser.GetString(value, "id")
		if idErr != nil {
			return
		}
		if n, convErr := strconv.Atoi(id); convErr == nil {
			found = n
		}
	}, "message", "relation", "is-identical-to")

	if found != 0 {
		return found, true
	}
	return 0, false
}
