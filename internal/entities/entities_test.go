package entities

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDecode_ReplacesNbspAndDashes(t *testing.T) {
	in := "Region A&nbsp;− 24"
	out := Decode(in, Standard)
	assert.NotContains(t, out, " ")
	assert.NotContains(t, out, "&nbsp;")
	assert.NotContains(t, out, "−")
}

func TestMerge_ExtraOverridesStandard(t *testing.T) {
	merged := Merge(map[string]string{"&nbsp;": "_"})
	assert.Equal(t, "_", merged["&nbsp;"])
	assert.Equal(t, "-", merged["&minus;"])
}

func TestDecode_EmptyTableIsNoop(t *testing.T) {
	assert.Equal(t, "abc", Decode("abc", nil))
}
