package sources

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry_Identify(t *testing.T) {
	reg := NewSourceRegistry()

	tt := []struct {
		name string
		html string
		want string
	}{
		{"plos", `<html><body>Published in PLoS ONE, see journals.plos.org for details.</body></html>`, "plos"},
		{"frontiers", `<html><body>Hosted at frontiersin.org.</body></html>`, "frontiers"},
		{"wiley", `<html><body>Available at onlinelibrary.wiley.com.</body></html>`, "wiley"},
		{"pmc", `<html><body>Archived at ncbi.nlm.nih.gov/pmc.</body></html>`, "pmc"},
		{"unmatched", `<html><body>Some unrelated publisher.</body></html>`, ""},
	}

	for _, tc := range tt {
		t.Run(tc.name, func(t *testing.T) {
			d, ok := reg.Identify(tc.html)
			if tc.want == "" {
				assert.False(t, ok)
				return
			}
			require.True(t, ok)
			assert.Equal(t, tc.want, d.Name())
		})
	}
}

func TestRegistry_DefaultNeverIdentified(t *testing.T) {
	reg := NewSourceRegistry()
	_, ok := reg.Identify("completely generic html with no publisher markers")
	assert.False(t, ok)
	assert.Equal(t, "default", reg.Default().Name())
}

func TestDialectConfigs_CompiledOncePerDialect(t *testing.T) {
	for _, cfg := range dialectConfigs {
		assert.NotEmpty(t, identifiersFor(cfg.Name), cfg.Name)
	}
	assert.Equal(t, "-", entitiesFor("sciencedirect")["&#8722;"])
	assert.Greater(t, delayFor("springer"), time.Duration(0))
	assert.Zero(t, delayFor("plos"))
}
