package htmlgrid

import (
	"fmt"

	"golang.org/x/net/html"
)

// placementCursor tracks, per grid row, which columns are already occupied
// by a still-active rowspan from an earlier row. It grows the grid's row
// count on demand as spans are placed.
type placementCursor struct {
	grid   *Grid
	filled [][]bool
}

func newPlacementCursor(g *Grid) *placementCursor {
	return &placementCursor{grid: g}
}

func (c *placementCursor) ensureRow(row int) {
	for len(c.filled) <= row {
		c.filled = append(c.filled, make([]bool, c.grid.NCols))
	}
	c.grid.growRows(len(c.filled))
}

// nextUnfilled returns the first column >= from in row that is not yet
// occupied, or grid.NCols if the row is full from `from` onward.
func (c *placementCursor) nextUnfilled(row, from int) int {
	c.ensureRow(row)
	for col := from; col < c.grid.NCols; col++ {
		if !c.filled[row][col] {
			return col
		}
	}
	return c.grid.NCols
}

// countUnfilled counts unfilled columns in row from `from` to the end.
func (c *placementCursor) countUnfilled(row, from int) int {
	c.ensureRow(row)
	n := 0
	for col := from; col < c.grid.NCols; col++ {
		if !c.filled[row][col] {
			n++
		}
	}
	return n
}

// place writes text's span markers across the rRows x cCols region anchored
// at (row, col), marking every covered cell filled. Anchors spanning more
// than one column are also recorded in the grid's multi-column label map,
// which is how the grid and the label map come back to the caller as one
// composite value.
func (c *placementCursor) place(row, col, rRows, cCols int, text string) {
	if cCols > 1 {
		c.grid.MultiColLabels[Span{Start: col, Length: cCols}] = text
	}
	for dr := 0; dr < rRows; dr++ {
		r := row + dr
		c.ensureRow(r)
		for dc := 0; dc < cCols; dc++ {
			cc := col + dc
			if cc >= c.grid.NCols {
				break
			}
			if dr == 0 && dc == 0 {
				if cCols > 1 {
					c.grid.Cells[r][cc] = fmt.Sprintf("@@%s@%d", text, cCols)
				} else {
					c.grid.Cells[r][cc] = text
				}
			} else {
				c.grid.Cells[r][cc] = "@@" + text
			}
			c.filled[r][cc] = true
		}
	}
}

// placeRow places every <td>/<th> child of tr into g at document row
// rowIdx, applying the step-5 colspan repair to the row's final cell. A row
// with more cells than the grid has room for is malformed and reported as
// an error; the builder decides whether to skip or propagate it.
func (b *DefaultGridBuilder) placeRow(g *Grid, cur *placementCursor, rowIdx int, tr *html.Node) error {
	var cells []*html.Node
	for c := tr.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && (c.Data == "td" || c.Data == "th") {
			cells = append(cells, c)
		}
	}
	if len(cells) == 0 {
		cur.ensureRow(rowIdx)
		return nil
	}

	col := cur.nextUnfilled(rowIdx, 0)
	consumed := 0
	for i, cell := range cells {
		if col >= g.NCols {
			return fmt.Errorf("htmlgrid: row %d overflows %d columns at cell %d", rowIdx, g.NCols, i)
		}

		rNum := spanAttr(cell, "rowspan")
		cNum := spanAttr(cell, "colspan")
		text := cellText(cell)

		if i == len(cells)-1 {
			remaining := cur.countUnfilled(rowIdx, col)
			if consumed+cNum < g.NCols && remaining > cNum {
				cNum = g.NCols - col
			}
		}

		cur.place(rowIdx, col, rNum, cNum, text)
		consumed += cNum
		col = cur.nextUnfilled(rowIdx, col+cNum)
	}
	return nil
}
