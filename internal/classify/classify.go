// Package classify assigns standard semantic roles (x, y, z, region,
// hemisphere, ba, size, statistic, p_value) to a table's column labels by
// pattern-matching their text, so that headers like "Brodmann area" or
// "cluster size (voxels)" land on the right role without exact-name
// matching.
package classify

import (
	"strings"

	"github.com/dlclark/regexp2"
)

// Column names the role a label maps to. An empty Column means "no
// standard role" — the label is still kept, just not specially handled.
type Column string

const (
	ColBA         Column = "ba"
	ColRegion     Column = "region"
	ColHemisphere Column = "hemisphere"
	ColSize       Column = "size"
	ColX          Column = "x"
	ColY          Column = "y"
	ColZ          Column = "z"
	ColStatistic  Column = "statistic"
	ColPValue     Column = "p_value"
	ColNone       Column = ""
)

var (
	reBA         = regexp2.MustCompile(`(^\s*ba$)|brodmann`, regexp2.IgnoreCase)
	reRegion     = regexp2.MustCompile(`region|anatom|location|area`, regexp2.IgnoreCase)
	reHemisphere = regexp2.MustCompile(`sphere|(^\s*h$)|^\s*hem|^\s*side`, regexp2.IgnoreCase)
	reSize       = regexp2.MustCompile(`(^k$)|(mm.*?3)|volume|voxels|size|extent`, regexp2.IgnoreCase)
	reXY         = regexp2.MustCompile(`^\s*[xy]\s*$`, regexp2.IgnoreCase)
	reZ          = regexp2.MustCompile(`^\s*z\s*$`, regexp2.IgnoreCase)
	reOrdinate   = regexp2.MustCompile(`rdinate`, regexp2.IgnoreCase)
	reStatistic  = regexp2.MustCompile(`^(z|t).*(score|value)`, regexp2.IgnoreCase)
	rePValue     = regexp2.MustCompile(`p[\-\s]+.*val`, regexp2.IgnoreCase)
)

func matches(re *regexp2.Regexp, s string) bool {
	ok, err := re.MatchString(s)
	return err == nil && ok
}

// Identify takes column labels (already lower-cased, as produced by the
// grid-to-label step) and returns a parallel slice naming the standard
// column each maps to, or ColNone for unrecognized labels.
//
// A bare "z" is ambiguous between the z coordinate and a z-score. It is
// taken as the coordinate only if an x/y column has already been seen AND
// the immediately preceding label was "y"; otherwise it's a statistic.
// A statistics column would not sit directly after a "y" column in
// practice, which is what makes the lookback reliable.
func Identify(labels []string) []Column {
	out := make([]Column, len(labels))
	foundCoords := false

	for i, raw := range labels {
		lab := raw
		var col Column

		switch {
		case matches(reBA, lab):
			col = ColBA
		case matches(reRegion, lab):
			col = ColRegion
		case matches(reHemisphere, lab):
			col = ColHemisphere
		case matches(reSize, lab):
			col = ColSize
		case matches(reXY, lab):
			foundCoords = true
			col = Column(strings.ToLower(strings.TrimSpace(lab)))
		case matches(reZ, lab):
			if !foundCoords || i == 0 || labels[i-1] != "y" {
				col = ColStatistic
			} else {
				col = ColZ
			}
		case matches(reOrdinate, lab):
			col = ColNone
		case lab == "t" || matches(reStatistic, lab):
			col = ColStatistic
		case matches(rePValue, lab):
			col = ColPValue
		default:
			col = ColNone
		}
		out[i] = col
	}
	return out
}

// IsCoordinate reports whether col is one of the three spatial axes.
func IsCoordinate(col Column) bool {
	return col == ColX || col == ColY || col == ColZ
}
