package pubmed

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubFetcher struct {
	body string
	err  error
}

func (s stubFetcher) Fetch(ctx context.Context, url string) (string, error) {
	return s.body, s.err
}

const medlineSample = `PMID- 12345678
TI  - Functional MRI of the anterior cingulate cortex during working
      memory tasks
TA  - Neuroimage
DP  - 2010 Jan
AB  - This study examines activation patterns observed during working
      memory.
AU  - Smith J
AU  - Doe A
LID - 10.1016/j.neuroimage.2010.01.001 [doi]
`

func TestParseMedline_ExtractsCoreFields(t *testing.T) {
	md := parseMedline(medlineSample)
	assert.Equal(t, "12345678", md.PMID)
	assert.Contains(t, md.Title, "working")
	assert.Equal(t, "Neuroimage", md.Journal)
	assert.Equal(t, "2010", md.Year)
	assert.Equal(t, "Smith J; Doe A", md.Authors)
	assert.Equal(t, "10.1016/j.neuroimage.2010.01.001", md.DOI)
}

func TestHTTPResolver_GetMetadata(t *testing.T) {
	r := NewHTTPResolver(stubFetcher{body: medlineSample})
	md, err := r.GetMetadata(context.Background(), 12345678)
	require.NoError(t, err)
	assert.Equal(t, "Neuroimage", md.Journal)
}

func TestNoopDOIResolver_AlwaysErrors(t *testing.T) {
	_, err := NoopDOIResolver{}.ResolveDOI(context.Background(), "10.1/x")
	assert.Error(t, err)
}

func TestCrossRefResolver_ExtractsPMIDFromMessageField(t *testing.T) {
	body := `{"message":{"PMID":"98765"}}`
	r := NewCrossRefResolver(stubFetcher{body: body})
	pmid, err := r.ResolveDOI(context.Background(), "10.1/y")
	require.NoError(t, err)
	assert.Equal(t, 98765, pmid)
}
