package sources

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const frontiersFixture = `<html><head>
<meta name="citation_pmid" content="29366950">
</head><body>
<table-wrap id="T1">
<label>Table 1</label>
<table>
<caption>Regions showing group differences.</caption>
<tr><td>region</td><td>x</td><td>y</td><td>z</td><td>BA</td></tr>
<tr><td>Superior Temporal Gyrus</td><td>-52</td><td>-20</td><td>6</td><td>22</td></tr>
</table>
</table-wrap>
<table-wrap id="T2">
<label>Table 2</label>
<table>
<tr><td>region</td><td>x</td><td>y</td><td>z</td></tr>
<tr><td>Cerebellum</td><td>10</td><td>-62</td><td>-22</td></tr>
<tr><td>Fusiform Gyrus</td><td>-38</td><td>-52</td><td>-18</td></tr>
</table>
</table-wrap>
</body></html>`

func TestParseArticle_Frontiers_MultipleTables(t *testing.T) {
	art, err := ParseArticle(context.Background(), FrontiersSource{}, frontiersFixture, ParseOptions{})
	require.NoError(t, err)
	require.NotNil(t, art)
	assert.Equal(t, 29366950, art.PMID)
	require.Len(t, art.Tables, 2)
	assert.Equal(t, 1, art.Tables[0].NActivations)
	assert.Equal(t, "1", art.Tables[0].Number)
	assert.Equal(t, 2, art.Tables[1].NActivations)
	assert.Equal(t, "2", art.Tables[1].Number)
}

const pmcFixture = `<html><head>
<meta name="citation_pmid" content="11532885">
</head><body>
<div class="table-wrap">
<div class="caption"><p>Table 1. Activations.</p></div>
<table>
<tr><td>region</td><td>x</td><td>y</td><td>z</td><td>t</td></tr>
<tr><td>Insula</td><td>36</td><td>14</td><td>2</td><td>5.2</td></tr>
<tr><td>Putamen</td><td>-24</td><td>6</td><td>4</td><td>4.8</td></tr>
</table>
</div>
</body></html>`

func TestParseArticle_PMC(t *testing.T) {
	art, err := ParseArticle(context.Background(), PMCSource{}, pmcFixture, ParseOptions{})
	require.NoError(t, err)
	require.NotNil(t, art)
	assert.Equal(t, 11532885, art.PMID)
	require.Len(t, art.Tables, 1)
	assert.Equal(t, 2, art.Tables[0].NActivations)
}

func TestParseArticle_MissingIdentifier(t *testing.T) {
	html := `<html><body><table-wrap><table><tr><td>x</td></tr></table></table-wrap></body></html>`
	_, err := ParseArticle(context.Background(), PlosSource{}, html, ParseOptions{})
	assert.Error(t, err)
}
