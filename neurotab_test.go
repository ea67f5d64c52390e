package neurotab_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coregx/neurotab"
	"github.com/coregx/neurotab/export"
)

const plosArticle = `<html><head>
<meta name="citation_pmid" content="22334567">
<meta name="citation_doi" content="10.1371/journal.pone.0012345">
</head><body>
<p>Published in PLoS ONE. All images were preprocessed and analyzed in a standard MNI152 template space using SPM12 as described previously in the methods section above for every participant across groups.</p>
<table-wrap id="pone-0012345-t001">
<label>Table 1</label>
<table>
<caption>Peak activations for the contrast.</caption>
<tr><td>Region</td><td>x</td><td>y</td><td>z</td><td>t</td></tr>
<tr><td>Left IFG</td><td>-24</td><td>30</td><td>8</td><td>4.5</td></tr>
<tr><td>Right IFG</td><td>24</td><td>30</td><td>8</td><td>3.1</td></tr>
</table>
</table-wrap>
</body></html>`

type memoryPersistence struct {
	added []int
}

func (m *memoryPersistence) Exists(pmid int) bool { return false }
func (m *memoryPersistence) Add(art *neurotab.Article) error {
	m.added = append(m.added, art.PMID)
	return nil
}
func (m *memoryPersistence) Save() error { return nil }

func TestIngestor_Run_EndToEnd(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "article.html")
	require.NoError(t, os.WriteFile(path, []byte(plosArticle), 0o644))

	persist := &memoryPersistence{}
	opts := neurotab.DefaultIngestOptions()
	opts.Persistence = persist

	ing := neurotab.NewIngestor(opts)
	results, err := ing.Run(context.Background(), []string{path})
	require.NoError(t, err)
	require.Len(t, results, 1)

	r := results[0]
	require.NoError(t, r.Err)
	require.False(t, r.Skipped)
	require.NotNil(t, r.Article)
	assert.Equal(t, 22334567, r.Article.PMID)
	assert.Equal(t, []int{22334567}, persist.added)
	require.Len(t, r.Article.Tables, 1)
	assert.Equal(t, 2, r.Article.Tables[0].NActivations)

	csv, err := export.NewCSVExporter().ExportToString(r.Article.Tables[0])
	require.NoError(t, err)
	assert.True(t, strings.Contains(csv, "Left IFG"))
	assert.True(t, strings.Contains(csv, "Right IFG"))
}

func TestIngestor_Run_SkipsInterceptedPage(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.html")
	require.NoError(t, os.WriteFile(path, []byte(`<html><body>403 Forbidden</body></html>`), 0o644))

	ing := neurotab.NewIngestor(neurotab.DefaultIngestOptions())
	results, err := ing.Run(context.Background(), []string{path})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.True(t, results[0].Skipped)
}

func TestErrors_Predicates(t *testing.T) {
	assert.True(t, neurotab.IsMissingIdentifier(neurotab.ErrMissingIdentifier))
	assert.True(t, neurotab.IsNoSourceMatch(neurotab.ErrNoSourceMatch))
	assert.False(t, neurotab.IsMissingIdentifier(neurotab.ErrNoSourceMatch))
}
