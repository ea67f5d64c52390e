package ingest

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coregx/neurotab/internal/article"
	"github.com/coregx/neurotab/internal/config"
	"github.com/coregx/neurotab/internal/sources"
)

const validArticle = `<html><head>
<meta name="citation_pmid" content="33445566">
</head><body>
Published in PLoS ONE, see journals.plos.org.
<table-wrap id="t1">
<label>Table 1</label>
<table>
<tr><td>region</td><td>x</td><td>y</td><td>z</td></tr>
<tr><td>Amygdala</td><td>-22</td><td>-4</td><td>-18</td></tr>
</table>
</table-wrap>
</body></html>`

const interceptedPage = `<html><body>403 Forbidden - Access Denied</body></html>`

const unrecognizedPublisher = `<html><body><p>No known publisher markers here.</p></body></html>`

type fakePersistence struct {
	added []int
	saves int
}

func (f *fakePersistence) Exists(pmid int) bool { return false }
func (f *fakePersistence) Add(art *article.Article) error {
	f.added = append(f.added, art.PMID)
	return nil
}
func (f *fakePersistence) Save() error { f.saves++; return nil }

func writeFiles(t *testing.T, contents map[string]string) []string {
	t.Helper()
	dir := t.TempDir()
	var paths []string
	for name, content := range contents {
		p := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
		paths = append(paths, p)
	}
	return paths
}

func TestIngestor_Run_HappyPath(t *testing.T) {
	paths := writeFiles(t, map[string]string{"33445566.html": validArticle})
	persist := &fakePersistence{}

	ing := New(Options{
		Registry:    sources.NewSourceRegistry(),
		Config:      config.Default(),
		Persistence: persist,
	})

	results, err := ing.Run(context.Background(), paths)
	require.NoError(t, err)
	require.Len(t, results, 1)
	require.NoError(t, results[0].Err)
	assert.False(t, results[0].Skipped)
	require.NotNil(t, results[0].Article)
	assert.Equal(t, 33445566, results[0].Article.PMID)
	assert.Equal(t, []int{33445566}, persist.added)
	assert.Equal(t, 1, persist.saves)
}

func TestIngestor_Run_SkipsInterceptedPage(t *testing.T) {
	paths := writeFiles(t, map[string]string{"bad.html": interceptedPage})

	ing := New(Options{
		Registry: sources.NewSourceRegistry(),
		Config:   config.Default(),
	})

	results, err := ing.Run(context.Background(), paths)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.True(t, results[0].Skipped)
	assert.Contains(t, results[0].Reason, "invalid_html")
}

func TestIngestor_Run_SkipsUnmatchedSourceWithoutForce(t *testing.T) {
	paths := writeFiles(t, map[string]string{"unknown.html": unrecognizedPublisher})

	ing := New(Options{
		Registry: sources.NewSourceRegistry(),
		Config:   config.Default(),
	})

	results, err := ing.Run(context.Background(), paths)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.True(t, results[0].Skipped)
	assert.Equal(t, "no_source_match", results[0].Reason)
}

func TestIngestor_Run_ForceDefaultSource(t *testing.T) {
	paths := writeFiles(t, map[string]string{"unknown.html": unrecognizedPublisher})

	ing := New(Options{
		Registry:           sources.NewSourceRegistry(),
		Config:             config.Default(),
		ForceDefaultSource: true,
	})

	results, err := ing.Run(context.Background(), paths)
	require.NoError(t, err)
	require.Len(t, results, 1)
	// DefaultSource has no way to resolve a PMID from this html, so this
	// still ends up skipped -- but for missing_identifier, not no_source_match.
	assert.True(t, results[0].Skipped)
	assert.Equal(t, "missing_identifier", results[0].Reason)
}

func TestIngestor_Run_MultipleFiles(t *testing.T) {
	paths := writeFiles(t, map[string]string{
		"ok.html":  validArticle,
		"bad.html": interceptedPage,
	})
	persist := &fakePersistence{}

	ing := New(Options{
		Registry:    sources.NewSourceRegistry(),
		Config:      config.Default(),
		Persistence: persist,
	})

	results, err := ing.Run(context.Background(), paths)
	require.NoError(t, err)
	require.Len(t, results, 2)

	var okCount, skipCount int
	for _, r := range results {
		if r.Skipped {
			skipCount++
		} else if r.Article != nil {
			okCount++
		}
	}
	assert.Equal(t, 1, okCount)
	assert.Equal(t, 1, skipCount)
}
