package article

import "fmt"

// Metadata is an article metadata record as returned by a metadata
// resolver. All fields are strings because that is exactly what comes
// back over the wire; callers that need structured dates/authors parse
// further downstream.
type Metadata struct {
	Title    string
	Journal  string
	Year     string
	Authors  string
	Abstract string
	MeSH     string
	Citation string
	DOI      string
	PMID     string
}

// NeuroVaultLinkKind distinguishes the two NeuroVault reference shapes.
type NeuroVaultLinkKind string

const (
	// NeuroVaultImage references a single statistical map.
	NeuroVaultImage NeuroVaultLinkKind = "image"
	// NeuroVaultCollection references a group of maps.
	NeuroVaultCollection NeuroVaultLinkKind = "collection"
)

// NeuroVaultLink is a cross-reference to a NeuroVault image or collection
// harvested from an article's hyperlinks.
type NeuroVaultLink struct {
	Kind NeuroVaultLinkKind
	ID   string
	URL  string
}

// Article is the top-level record produced by a single parse.
type Article struct {
	PMID       int
	DOI        string
	CoordSpace CoordSpace
	Metadata   *Metadata
	Tables     []*Table

	// Text is the article's visible body text (scripts and styles
	// stripped), kept for downstream persistence and as the input the
	// coordinate-space tag was computed from.
	Text string

	NeuroVaultLinks []NeuroVaultLink
}

// NewArticle returns an Article identified by pmid. A PMID must be
// resolved before an Article is constructed at all; callers that cannot
// resolve one never call this constructor.
func NewArticle(pmid int) *Article {
	return &Article{PMID: pmid, CoordSpace: UnknownSpace}
}

// AddTable appends t and assigns it the next 1-based Position.
func (a *Article) AddTable(t *Table) {
	t.Position = len(a.Tables) + 1
	a.Tables = append(a.Tables, t)
}

// NActivations returns the total number of activations across all tables.
func (a *Article) NActivations() int {
	n := 0
	for _, t := range a.Tables {
		n += len(t.Activations)
	}
	return n
}

// Validate checks the Article-level invariants: a positive PMID and
// unique, gapless 1..N table positions.
func (a *Article) Validate() error {
	if a.PMID <= 0 {
		return fmt.Errorf("article: invalid pmid %d", a.PMID)
	}
	for i, t := range a.Tables {
		if t.Position != i+1 {
			return fmt.Errorf("article: table position gap at index %d: got %d, want %d", i, t.Position, i+1)
		}
		if err := t.Validate(); err != nil {
			return fmt.Errorf("article: table %d: %w", t.Position, err)
		}
	}
	return nil
}
