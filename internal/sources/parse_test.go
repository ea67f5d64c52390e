package sources

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coregx/neurotab/internal/article"
)

const plosFixture = `<html><head>
<meta name="citation_pmid" content="22334567">
<meta name="citation_doi" content="10.1371/journal.pone.0012345">
</head><body>
<p>All functional and anatomical images for every participant in this study were preprocessed using standard realignment coregistration and segmentation procedures implemented in SPM12 prior to second level group statistical analyses of the task contrasts described below in full detail.</p>
<table-wrap id="pone-0012345-t001">
<label>Table 1</label>
<table>
<caption>Peak activations for the contrast.</caption>
<tr><td>Region</td><td>x</td><td>y</td><td>z</td><td>t</td></tr>
<tr><td>Left IFG</td><td>-24</td><td>30</td><td>8</td><td>4.5</td></tr>
<tr><td>Right IFG</td><td>24</td><td>30</td><td>8</td><td>3.1</td></tr>
<tr><td>Thalamus</td><td>2</td><td>-18</td><td>10</td><td>2.9</td></tr>
</table>
<table-wrap-foot><p>Coordinates in MNI space.</p></table-wrap-foot>
</table-wrap>
</body></html>`

func TestParseArticle_PLoS_EndToEnd(t *testing.T) {
	art, err := ParseArticle(context.Background(), PlosSource{}, plosFixture, ParseOptions{})
	require.NoError(t, err)
	require.NotNil(t, art)

	assert.Equal(t, 22334567, art.PMID)
	assert.Equal(t, "10.1371/journal.pone.0012345", art.DOI)
	require.Len(t, art.Tables, 1)

	tbl := art.Tables[0]
	assert.Equal(t, 1, tbl.Position)
	assert.Equal(t, 3, tbl.NActivations)
	assert.NotEmpty(t, tbl.Caption)
	assert.Equal(t, article.MNI, art.CoordSpace)
}
