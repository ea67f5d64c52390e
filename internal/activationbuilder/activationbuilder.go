// Package activationbuilder turns one table row plus its column
// classification into an article.Activation, coercing coordinate values,
// flagging suspect cells, and sniffing for coordinate triples embedded in
// a single cell.
package activationbuilder

import (
	"strconv"
	"strings"

	"github.com/dlclark/regexp2"

	"github.com/coregx/neurotab/internal/article"
	"github.com/coregx/neurotab/internal/classify"
)

var (
	reDashSpace     = regexp2.MustCompile(`^(-)\s+(\d+\.*\d*)$`, 0)
	reValidNumber   = regexp2.MustCompile(`^(-*\d+)\.*\d*$`, 0)
	reHasLetter     = regexp2.MustCompile(`[a-zA-Z]`, 0)
	reMultiCoordSeg = `([\-\.\s]*\d{1,3}\.*\d{0,2})`
	reMultiCoord    = regexp2.MustCompile(reMultiCoordSeg+`[,;\s]+`+reMultiCoordSeg+`[,;\s]+`+reMultiCoordSeg, 0)
	reDashGap       = regexp2.MustCompile(`-\s+`, 0)
)

func find(re *regexp2.Regexp, s string) (*regexp2.Match, bool) {
	m, err := re.FindStringMatch(s)
	return m, err == nil && m != nil
}

// Build constructs a single Activation from one grid row. labels,
// standardCols, and row must be the same length. groups is attached
// verbatim as the activation's group labels.
//
// A malformed x/y/z value terminates the row immediately — later columns
// are never read and the returned activation will fail validation — while
// a malformed region value is recorded as a problem and processing
// continues.
func Build(row []string, labels []string, standardCols []classify.Column, groups []string) *article.Activation {
	act := article.NewActivation()

	for i, raw := range row {
		col := raw
		sc := standardCols[i]

		if sc != classify.ColNone {
			switch {
			case classify.IsCoordinate(sc):
				if m, ok := find(reDashSpace, col); ok {
					col = m.GroupByNumber(1).String() + m.GroupByNumber(2).String()
				}
				if _, ok := find(reValidNumber, col); !ok {
					act.AddProblem("Value in %s column is not valid", sc)
					return act
				}
				f, err := strconv.ParseFloat(col, 64)
				if err != nil {
					act.AddProblem("Value in %s column is not valid", sc)
					return act
				}
				switch sc {
				case classify.ColX:
					act.X = &f
				case classify.ColY:
					act.Y = &f
				case classify.ColZ:
					act.Z = &f
				}
				col = strconv.FormatFloat(f, 'g', -1, 64)

			case sc == classify.ColRegion:
				if _, ok := find(reHasLetter, col); !ok {
					act.AddProblem("Value in region column is not a string")
				}
				act.Region = col

			case sc == classify.ColHemisphere:
				act.Hemisphere = col
			case sc == classify.ColBA:
				act.BA = col
			case sc == classify.ColSize:
				act.Size = col
			case sc == classify.ColStatistic:
				act.Statistic = col
			case sc == classify.ColPValue:
				act.PValue = col
			}
		}

		act.Columns.Set(labels[i], col)

		// Embedded multi-coordinate cells (e.g. "45;12;-12") are sniffed in
		// every column that is not itself an x/y/z column; a hit overrides
		// any per-column coordinate assignment.
		if classify.IsCoordinate(sc) {
			continue
		}
		if m, ok := find(reMultiCoord, strings.TrimSpace(col)); ok {
			x := dedash(m.GroupByNumber(1).String())
			y := dedash(m.GroupByNumber(2).String())
			z := dedash(m.GroupByNumber(3).String())
			xf, errX := strconv.ParseFloat(x, 64)
			yf, errY := strconv.ParseFloat(y, 64)
			zf, errZ := strconv.ParseFloat(z, 64)
			if errX == nil && errY == nil && errZ == nil {
				act.SetCoords(xf, yf, zf)
			}
		}
	}

	act.Groups = groups
	return act
}

func dedash(s string) string {
	out, err := reDashGap.Replace(s, "-", -1, -1)
	if err != nil {
		return strings.TrimSpace(s)
	}
	return strings.TrimSpace(out)
}
