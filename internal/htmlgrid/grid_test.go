package htmlgrid

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"
)

func parseTable(t *testing.T, fragment string) *html.Node {
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
	require.NotNil(t, table, "fragment must contain a <table>")
	return table
}

func TestDefaultGridBuilder_SimpleRectangularTable(t *testing.T) {
	table := parseTable(t, `<table><tr><td>A</td><td>B</td></tr><tr><td>1</td><td>2</td></tr></table>`)
	b := NewDefaultGridBuilder(DefaultOptions())

	g, err := b.Build(table)
	require.NoError(t, err)
	require.NotNil(t, g)

	assert.Equal(t, 2, g.NRows)
	assert.Equal(t, 2, g.NCols)
	assert.Equal(t, []string{"A", "B"}, g.Row(0))
	assert.Equal(t, []string{"1", "2"}, g.Row(1))
}

func TestDefaultGridBuilder_ColspanProducesAnchorAndContinuation(t *testing.T) {
	table := parseTable(t, `<table>
		<tr><td colspan="2">Coordinates</td><td>Region</td></tr>
		<tr><td>x</td><td>y</td><td>R1</td></tr>
	</table>`)
	b := NewDefaultGridBuilder(DefaultOptions())

	g, err := b.Build(table)
	require.NoError(t, err)
	require.NotNil(t, g)

	assert.Equal(t, "@@Coordinates@2", g.Row(0)[0])
	assert.Equal(t, "@@Coordinates", g.Row(0)[1])

	text, span, ok := IsAnchorMarker(g.Row(0)[0])
	assert.True(t, ok)
	assert.Equal(t, "Coordinates", text)
	assert.Equal(t, 2, span)

	cont, ok := IsContinuationMarker(g.Row(0)[1])
	assert.True(t, ok)
	assert.Equal(t, "Coordinates", cont)

	assert.Equal(t, "Coordinates", g.MultiColLabels[Span{Start: 0, Length: 2}])
}

func TestDefaultGridBuilder_RowspanFillsSubsequentRow(t *testing.T) {
	table := parseTable(t, `<table>
		<tr><td rowspan="2">Group A</td><td>1</td></tr>
		<tr><td>2</td></tr>
	</table>`)
	b := NewDefaultGridBuilder(DefaultOptions())

	g, err := b.Build(table)
	require.NoError(t, err)
	require.NotNil(t, g)

	assert.Equal(t, 2, g.NCols)
	assert.Equal(t, "Group A", g.Row(0)[0])
	assert.Equal(t, "1", g.Row(0)[1])
	cont, ok := IsContinuationMarker(g.Row(1)[0])
	assert.True(t, ok)
	assert.Equal(t, "Group A", cont)
	assert.Equal(t, "2", g.Row(1)[1])
}

func TestDefaultGridBuilder_UnderfilledRowExtendsLastCellColspan(t *testing.T) {
	table := parseTable(t, `<table>
		<tr><td>A</td><td>B</td><td>C</td><td>D</td></tr>
		<tr><td>1</td><td>rest</td></tr>
	</table>`)
	b := NewDefaultGridBuilder(DefaultOptions())

	g, err := b.Build(table)
	require.NoError(t, err)
	require.NotNil(t, g)

	require.Equal(t, 4, g.NCols)
	text, span, ok := IsAnchorMarker(g.Row(1)[1])
	require.True(t, ok)
	assert.Equal(t, "rest", text)
	assert.Equal(t, 3, span)
	assert.Equal(t, "@@rest", g.Row(1)[2])
	assert.Equal(t, "@@rest", g.Row(1)[3])
}

func TestDefaultGridBuilder_TrailingEmptyRowIsTrimmed(t *testing.T) {
	table := parseTable(t, `<table>
		<tr><td>A</td><td>B</td></tr>
		<tr><td></td><td></td></tr>
	</table>`)
	b := NewDefaultGridBuilder(DefaultOptions())

	g, err := b.Build(table)
	require.NoError(t, err)
	require.NotNil(t, g)
	assert.Equal(t, 1, g.NRows)
}

func TestDefaultGridBuilder_BrTagBecomesNewline(t *testing.T) {
	table := parseTable(t, `<table><tr><td>line1<br>line2</td></tr></table>`)
	b := NewDefaultGridBuilder(DefaultOptions())

	g, err := b.Build(table)
	require.NoError(t, err)
	require.NotNil(t, g)
	assert.Equal(t, "line1\nline2", g.Row(0)[0])
}

func TestDefaultGridBuilder_NoRowsReturnsNilGrid(t *testing.T) {
	table := parseTable(t, `<table></table>`)
	b := NewDefaultGridBuilder(DefaultOptions())

	g, err := b.Build(table)
	require.NoError(t, err)
	assert.Nil(t, g)
}

func TestDefaultGridBuilder_CarefulParsingUsesMaxColumnCount(t *testing.T) {
	table := parseTable(t, `<table>
		<tr><td>A</td></tr>
		<tr><td>1</td><td>2</td><td>3</td></tr>
	</table>`)
	opts := DefaultOptions()
	opts.CarefulParsing = true
	b := NewDefaultGridBuilder(opts)

	g, err := b.Build(table)
	require.NoError(t, err)
	require.NotNil(t, g)
	assert.Equal(t, 3, g.NCols)
}

func TestSpanAttr_NaNTreatedAsOne(t *testing.T) {
	table := parseTable(t, `<table><tr><td colspan="NaN">A</td><td>B</td></tr></table>`)
	b := NewDefaultGridBuilder(DefaultOptions())

	g, err := b.Build(table)
	require.NoError(t, err)
	require.NotNil(t, g)
	assert.Equal(t, 2, g.NCols)
	assert.Equal(t, "A", g.Row(0)[0])
}
