package tableparse

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"

	"github.com/coregx/neurotab/internal/htmlgrid"
)

func buildGrid(t *testing.T, fragment string) *htmlgrid.Grid {
	t.Helper()
	doc, err := html.Parse(strings.NewReader(fragment))
	require.NoError(t, err)

	var table *html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "table" {
			table = n
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if table != nil {
				return
			}
			walk(c)
		}
	}
	walk(doc)
	require.NotNil(t, table)

	b := htmlgrid.NewDefaultGridBuilder(htmlgrid.DefaultOptions())
	g, err := b.Build(table)
	require.NoError(t, err)
	require.NotNil(t, g)
	return g
}

func TestParse_SimpleTableWithoutGroups(t *testing.T) {
	g := buildGrid(t, `<table>
		<tr><td>Region</td><td>x</td><td>y</td><td>z</td><td>t</td></tr>
		<tr><td>Left IFG</td><td>-24</td><td>30</td><td>8</td><td>4.5</td></tr>
		<tr><td>Right IFG</td><td>24</td><td>30</td><td>8</td><td>3.1</td></tr>
	</table>`)

	tbl, err := Parse(g, 1, DefaultOptions())
	require.NoError(t, err)
	require.NotNil(t, tbl)
	require.Len(t, tbl.Activations, 2)

	assert.Equal(t, 5, tbl.NColumns)
	assert.Equal(t, "left ifg", strings.ToLower(tbl.Activations[0].Region))
	assert.Equal(t, -24.0, *tbl.Activations[0].X)
}

func TestParse_GroupHeadingRowAttachesToSubsequentActivations(t *testing.T) {
	g := buildGrid(t, `<table>
		<tr><td>Region</td><td>x</td><td>y</td><td>z</td></tr>
		<tr><td>Group A</td><td></td><td></td><td></td></tr>
		<tr><td>Left IFG</td><td>-24</td><td>30</td><td>8</td></tr>
	</table>`)

	tbl, err := Parse(g, 1, DefaultOptions())
	require.NoError(t, err)
	require.NotNil(t, tbl)
	require.Len(t, tbl.Activations, 1)
	assert.Contains(t, tbl.Activations[0].Groups, "Group A")
}

func TestParse_NoActivationsReturnsNilTable(t *testing.T) {
	g := buildGrid(t, `<table><tr><td>Region</td><td>x</td></tr></table>`)

	tbl, err := Parse(g, 1, DefaultOptions())
	require.NoError(t, err)
	assert.Nil(t, tbl)
}

func TestParse_RepeatingGroupColumnsProduceOneActivationPerGroup(t *testing.T) {
	g := buildGrid(t, `<table>
		<tr><td>Region</td><td>x</td><td>y</td><td>z</td><td>x</td><td>y</td><td>z</td></tr>
		<tr><td>Left IFG</td><td>-24</td><td>30</td><td>8</td><td>24</td><td>30</td><td>8</td></tr>
	</table>`)

	tbl, err := Parse(g, 1, DefaultOptions())
	require.NoError(t, err)
	require.NotNil(t, tbl)
	assert.Len(t, tbl.Activations, 2)
}
