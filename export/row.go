package export

import (
	"fmt"
	"strings"

	"github.com/coregx/neurotab/internal/article"
)

// standardFields is the fixed set of Activation columns every exporter
// renders first, in this order, mirroring the field order of
// internal/article.Activation itself.
var standardFields = []string{
	"x", "y", "z", "region", "hemisphere", "ba", "size", "statistic", "p_value", "groups",
}

// header returns the full column header for tbl: the standard fields,
// followed (if requested) by the union of raw column labels carried by
// the table's activations, in first-seen order.
func header(tbl *article.Table, opts *ExportOptions) []string {
	cols := append([]string(nil), standardFields...)
	if opts.IncludeColumns {
		cols = append(cols, rawColumnLabels(tbl)...)
	}
	return cols
}

// rawColumnLabels collects the union of Activation.Columns keys across
// every activation in tbl, in first-seen order. Publishers rarely vary a
// table's column set row to row, but nothing guarantees it, so this is a
// union rather than "take the first row's keys".
func rawColumnLabels(tbl *article.Table) []string {
	seen := make(map[string]bool)
	var labels []string
	for _, a := range tbl.Activations {
		if a.Columns == nil {
			continue
		}
		for _, k := range a.Columns.Keys() {
			if !seen[k] {
				seen[k] = true
				labels = append(labels, k)
			}
		}
	}
	return labels
}

// row renders one activation as a slice of strings parallel to header's
// output for the same table.
func row(a *article.Activation, rawLabels []string, opts *ExportOptions) []string {
	out := make([]string, 0, len(standardFields)+len(rawLabels))
	out = append(out,
		floatOrEmpty(a.X), floatOrEmpty(a.Y), floatOrEmpty(a.Z),
		a.Region, a.Hemisphere, a.BA, a.Size, a.Statistic, a.PValue,
		strings.Join(a.Groups, ";"),
	)
	if opts.IncludeColumns {
		for _, label := range rawLabels {
			v, _ := a.Columns.Get(label)
			out = append(out, v)
		}
	}
	return out
}

func floatOrEmpty(v *float64) string {
	if v == nil {
		return ""
	}
	return fmt.Sprintf("%g", *v)
}
