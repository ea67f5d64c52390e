// Package article provides the domain entities produced by the extraction
// pipeline: Article, Table, and Activation.
//
// These are plain value objects: constructors, a Validate method, and no
// hidden state. Persistence, if any, belongs to a caller-supplied adapter
// and is entirely opaque to this package.
package article

import (
	"fmt"
	"math"
)

// Activation is a single stereotactic coordinate triple plus whatever
// ancillary attributes its source row carried.
type Activation struct {
	X, Y, Z *float64

	Region     string
	Hemisphere string
	BA         string
	Size       string
	Statistic  string
	PValue     string

	// Columns holds the value of every column present in the row this
	// activation was built from, keyed by lowercased label. x/y/z columns
	// hold the parsed number re-rendered as text ("- 24" becomes "-24");
	// every other column holds its cell text unchanged.
	Columns *OrderedMap

	// Groups is the set of group labels (repeating-column group label
	// and/or row-level group heading) attached to this activation.
	Groups []string

	// Problems accumulates diagnostic strings raised while building this
	// activation. A non-empty Problems list does not by itself make the
	// activation invalid; Validate is the sole authority on that.
	Problems []string
}

// NewActivation returns an empty, ready-to-populate Activation.
func NewActivation() *Activation {
	return &Activation{Columns: NewOrderedMap()}
}

// AddProblem appends a diagnostic string.
func (a *Activation) AddProblem(format string, args ...interface{}) {
	a.Problems = append(a.Problems, fmt.Sprintf(format, args...))
}

// SetCoords sets x, y, and z together, overwriting any prior assignment.
// This is how a coordinate triple found embedded in a single cell takes
// precedence over any per-column x/y/z already assigned.
func (a *Activation) SetCoords(x, y, z float64) {
	a.X, a.Y, a.Z = &x, &y, &z
}

// Validate reports whether this activation is acceptable: all three
// coordinates present, each |coordinate| < 100, and at most one of the
// three equal to zero. Two zero coordinates is almost always a parsing
// artifact rather than a real brain location.
func (a *Activation) Validate() bool {
	if a.X == nil || a.Y == nil || a.Z == nil {
		return false
	}
	coords := [3]float64{*a.X, *a.Y, *a.Z}
	zeros := 0
	for _, c := range coords {
		if math.Abs(c) >= 100 {
			return false
		}
		if c == 0 {
			zeros++
		}
	}
	return zeros <= 1
}

// String renders the activation for debugging.
func (a *Activation) String() string {
	x, y, z := "nil", "nil", "nil"
	if a.X != nil {
		x = fmt.Sprintf("%.2f", *a.X)
	}
	if a.Y != nil {
		y = fmt.Sprintf("%.2f", *a.Y)
	}
	if a.Z != nil {
		z = fmt.Sprintf("%.2f", *a.Z)
	}
	return fmt.Sprintf("Activation{x=%s, y=%s, z=%s, region=%q, groups=%v}", x, y, z, a.Region, a.Groups)
}
