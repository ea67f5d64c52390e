package htmlgrid

import (
	"strconv"
	"strings"

	"golang.org/x/net/html"

	"github.com/rs/zerolog"
)

// Options configures grid construction.
type Options struct {
	// CarefulParsing estimates column count as the max over every row
	// instead of just the first row. Default true; this is the safer,
	// slower policy, defensive against first-row headers that under-count.
	CarefulParsing bool

	// IgnoreBadRows skips a row that fails to parse instead of propagating
	// the error.
	IgnoreBadRows bool

	Logger zerolog.Logger
}

// DefaultOptions returns the default construction policy: careful column
// counting, malformed rows skipped, logging off.
func DefaultOptions() Options {
	return Options{CarefulParsing: true, IgnoreBadRows: true, Logger: zerolog.Nop()}
}

// GridBuilder builds a Grid from an HTML <table> element.
type GridBuilder interface {
	Build(table *html.Node) (*Grid, error)
}

// DefaultGridBuilder is the sole GridBuilder implementation.
type DefaultGridBuilder struct {
	opts Options
}

// NewDefaultGridBuilder creates a DefaultGridBuilder with the given options.
func NewDefaultGridBuilder(opts Options) *DefaultGridBuilder {
	return &DefaultGridBuilder{opts: opts}
}

// Build constructs a Grid from table, or returns (nil, nil) if the table
// has no body/rows at all. That is a skip condition for the caller, not
// an error: structurally empty tables are simply discarded.
func (b *DefaultGridBuilder) Build(table *html.Node) (*Grid, error) {
	rows := findRows(table)
	if len(rows) == 0 {
		return nil, nil
	}

	nCols := b.estimateColumns(rows)
	if nCols == 0 {
		return nil, nil
	}

	g := NewGrid(0, nCols)
	cursor := newPlacementCursor(g)

	for rowIdx, tr := range rows {
		if err := b.placeRow(g, cursor, rowIdx, tr); err != nil {
			if b.opts.IgnoreBadRows {
				b.opts.Logger.Warn().Err(err).Int("row", rowIdx).Msg("skipping malformed row")
				continue
			}
			return nil, err
		}
	}

	g.trimTrailingEmptyRow()
	return g, nil
}

// estimateColumns computes the grid's logical column count: the sum of
// colspans in the first row, or the maximum over all rows under
// CarefulParsing.
func (b *DefaultGridBuilder) estimateColumns(rows []*html.Node) int {
	if !b.opts.CarefulParsing {
		return colsInRow(rows[0])
	}
	max := 0
	for _, r := range rows {
		if n := colsInRow(r); n > max {
			max = n
		}
	}
	return max
}

func colsInRow(tr *html.Node) int {
	total := 0
	for c := tr.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != html.ElementNode || (c.Data != "td" && c.Data != "th") {
			continue
		}
		total += spanAttr(c, "colspan")
	}
	return total
}

// spanAttr reads a rowspan/colspan attribute, defaulting to 1. A literal
// "NaN" (seen in some malformed markup) is treated as 1.
func spanAttr(n *html.Node, name string) int {
	for _, a := range n.Attr {
		if a.Key != name {
			continue
		}
		if strings.EqualFold(strings.TrimSpace(a.Val), "NaN") {
			return 1
		}
		v, err := strconv.Atoi(strings.TrimSpace(a.Val))
		if err != nil || v < 1 {
			return 1
		}
		return v
	}
	return 1
}

// findRows locates the table body (tbody child if present, else the table
// itself) and returns every <tr> descendant in document order.
func findRows(table *html.Node) []*html.Node {
	body := table
	for c := table.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && c.Data == "tbody" {
			body = c
			break
		}
	}
	var rows []*html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if c.Type == html.ElementNode && c.Data == "tr" {
				rows = append(rows, c)
			}
			walk(c)
		}
	}
	walk(body)
	return rows
}

// cellText extracts a cell's trimmed text, normalizing inline <br> line
// breaks to "\n".
func cellText(cell *html.Node) string {
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		switch n.Type {
		case html.TextNode:
			sb.WriteString(n.Data)
		case html.ElementNode:
			if n.Data == "br" {
				sb.WriteString("\n")
				return
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(cell)
	return strings.TrimSpace(sb.String())
}
