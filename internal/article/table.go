package article

import (
	"fmt"
	"strings"
)

// Table is one logical HTML table's worth of surviving activations.
type Table struct {
	Position     int // 1-based, order of discovery within the Article
	Number       string
	Label        string
	Caption      string
	Notes        string
	Activations  []*Activation
	NActivations int
	NColumns     int
}

// NewTable returns an empty Table at the given position.
func NewTable(position int) *Table {
	return &Table{Position: position}
}

// Finalize sets NActivations from the current Activations slice. A Table
// with zero surviving activations is dropped entirely by the caller, not
// by Finalize itself.
func (t *Table) Finalize() {
	t.NActivations = len(t.Activations)
}

// IsEmpty reports whether the table has no surviving activations.
func (t *Table) IsEmpty() bool {
	return len(t.Activations) == 0
}

// Validate checks the invariants of a finalized Table.
func (t *Table) Validate() error {
	if t.Position < 1 {
		return fmt.Errorf("table: invalid position %d", t.Position)
	}
	if t.NActivations != len(t.Activations) {
		return fmt.Errorf("table: n_activations mismatch: have %d, recorded %d", len(t.Activations), t.NActivations)
	}
	return nil
}

// String renders the table for debugging.
func (t *Table) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Table{position=%d, number=%q, activations=%d}", t.Position, t.Number, len(t.Activations))
	return sb.String()
}
