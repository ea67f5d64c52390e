// Package tableparse assembles a htmlgrid.Grid into an article.Table by
// identifying column labels, classifying them, detecting repeating
// column groups, and building one Activation per qualifying data row.
//
// It orchestrates internal/classify, internal/groupdetect, and
// internal/activationbuilder, kept as separate packages so each piece is
// independently testable.
package tableparse

import (
	"strings"

	"github.com/dlclark/regexp2"
	"github.com/rs/zerolog"

	"github.com/coregx/neurotab/internal/activationbuilder"
	"github.com/coregx/neurotab/internal/article"
	"github.com/coregx/neurotab/internal/classify"
	"github.com/coregx/neurotab/internal/groupdetect"
	"github.com/coregx/neurotab/internal/htmlgrid"
)

// Options configures parsing.
type Options struct {
	// ExcludeTablesWithMissingLabels drops a table outright if any column
	// label could not be identified, instead of parsing it with a blank
	// label.
	ExcludeTablesWithMissingLabels bool

	Logger zerolog.Logger
}

// DefaultOptions returns the default parsing policy: tables with missing
// labels are kept, logging off.
func DefaultOptions() Options {
	return Options{ExcludeTablesWithMissingLabels: false, Logger: zerolog.Nop()}
}

var (
	reFoundXYZ      = regexp2.MustCompile(`\d+.*\d+.*\d+`, 0)
	reOrdinateOrXYZ = regexp2.MustCompile(`(ordinate|x.*y.*z)`, regexp2.IgnoreCase)
	reHasLetter     = regexp2.MustCompile(`[a-zA-Z]`, 0)
)

func searchOK(re *regexp2.Regexp, s string) bool {
	m, err := re.FindStringMatch(s)
	return err == nil && m != nil
}

// Parse builds an article.Table at the given table position from g, or
// returns nil if the table yields no valid activations. An empty table is
// a skip, not an error.
func Parse(g *htmlgrid.Grid, position int, opts Options) (*article.Table, error) {
	nCols := g.NCols
	labels := make([]string, nCols)

	for i := 0; i < g.NRows; i++ {
		row := g.Row(i)
		foundXYZ := searchOK(reFoundXYZ, strings.Join(row, "/"))
		for j, raw := range row {
			val := strings.TrimSpace(raw)
			if val == "" || htmlgrid.IsMarker(val) || labels[j] != "" {
				continue
			}
			if j == 0 && (allOthersFound(labels) || foundXYZ) {
				labels[j] = "region"
			} else {
				labels[j] = val
			}
		}
	}

	for i, l := range labels {
		labels[i] = strings.ToLower(l)
	}

	// A single "Coordinates" (or "x...y...z") header spanning 3 letter-free
	// columns really means x/y/z broken across cells. The span-to-text map
	// rides along on the grid itself.
	for span, v := range g.MultiColLabels {
		if !searchOK(reOrdinateOrXYZ, v) {
			continue
		}
		start, end := span.Start, span.Start+span.Length
		if end > nCols {
			continue
		}
		joined := strings.Join(labels[start:end], "")
		if !searchOK(reHasLetter, joined) {
			labels[start] = "x"
			if start+1 < end {
				labels[start+1] = "y"
			}
			if start+2 < end {
				labels[start+2] = "z"
			}
		}
	}

	missing := false
	for _, l := range labels {
		if l == "" {
			missing = true
			break
		}
	}
	if missing {
		opts.Logger.Warn().Strs("labels", labels).Msg("failed to identify at least one column label")
		if opts.ExcludeTablesWithMissingLabels {
			return nil, nil
		}
	}

	standardCols := classify.Identify(labels)
	groupCols := groupdetect.Detect(labels)

	colsInGroup := make([]bool, nCols)
	for _, grp := range groupCols {
		for i := grp.Start; i < grp.Start+grp.Length && i < nCols; i++ {
			colsInGroup[i] = true
		}
	}

	table := article.NewTable(position)
	table.NColumns = nCols
	var groupRow string
	haveGroupRow := false

	for i := 0; i < g.NRows; i++ {
		row := g.Row(i)
		n := len(row)

		matchLab := false
		for j := 0; j < n && j < nCols; j++ {
			if row[j] == labels[j] {
				matchLab = true
				break
			}
		}
		if matchLab {
			continue
		}

		if n > 0 && row[0] != "" && strings.TrimSpace(strings.Join(row[1:], "")) == "" {
			groupRow = strings.TrimSpace(row[0])
			haveGroupRow = true
			continue
		}

		if n > 0 && strings.HasPrefix(row[0], "@@") {
			if text, span, ok := htmlgrid.IsAnchorMarker(row[0]); ok && span == nCols {
				groupRow = strings.TrimSpace(text)
				haveGroupRow = true
				continue
			}
		}

		if n != nCols || containsMarker(row) {
			continue
		}

		groups := currentGroups(haveGroupRow, groupRow)

		if len(groupCols) == 0 {
			act := activationbuilder.Build(row, labels, standardCols, groups)
			if act.Validate() {
				table.Activations = append(table.Activations, act)
			}
			continue
		}

		for _, grp := range groupCols {
			grpLabels := []string{}
			if lab, ok := g.MultiColLabels[htmlgrid.Span{Start: grp.Start, Length: grp.Length}]; ok {
				grpLabels = append(grpLabels, lab)
			}
			if haveGroupRow {
				grpLabels = append(grpLabels, groupRow)
			}

			var actLabels []string
			var actCols []string
			var actSC []classify.Column
			for j := 0; j < nCols; j++ {
				inThisGroup := j >= grp.Start && j < grp.Start+grp.Length
				if !colsInGroup[j] || inThisGroup {
					actLabels = append(actLabels, labels[j])
					actCols = append(actCols, row[j])
					actSC = append(actSC, standardCols[j])
				}
			}
			act := activationbuilder.Build(actCols, actLabels, actSC, grpLabels)
			if act.Validate() {
				table.Activations = append(table.Activations, act)
			}
		}
	}

	table.Finalize()
	if table.IsEmpty() {
		return nil, nil
	}
	return table, nil
}

func allOthersFound(labels []string) bool {
	for i := 1; i < len(labels); i++ {
		if labels[i] == "" {
			return false
		}
	}
	return true
}

func currentGroups(have bool, row string) []string {
	if !have {
		return nil
	}
	return []string{row}
}

func containsMarker(row []string) bool {
	for _, c := range row {
		if htmlgrid.IsMarker(c) {
			return true
		}
	}
	return false
}
