package article

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArticle_AddTable_AssignsGaplessPositions(t *testing.T) {
	a := NewArticle(12345)
	a.AddTable(NewTable(0))
	a.AddTable(NewTable(0))
	a.AddTable(NewTable(0))

	require.Len(t, a.Tables, 3)
	assert.Equal(t, 1, a.Tables[0].Position)
	assert.Equal(t, 2, a.Tables[1].Position)
	assert.Equal(t, 3, a.Tables[2].Position)
	assert.NoError(t, a.Validate())
}

func TestArticle_Validate_RejectsMissingPMID(t *testing.T) {
	a := NewArticle(0)
	assert.Error(t, a.Validate())
}

func TestTable_Finalize(t *testing.T) {
	tbl := NewTable(1)
	tbl.Activations = []*Activation{NewActivation(), NewActivation()}
	tbl.Finalize()
	assert.Equal(t, 2, tbl.NActivations)
	assert.False(t, tbl.IsEmpty())
}
