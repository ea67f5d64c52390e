// Package entities replaces the handful of HTML entities and unicode
// characters (non-breaking spaces, unicode dashes, smart quotes) that
// publishers embed in table markup and that would otherwise break the
// numeric/regex-based column parsing downstream.
package entities

import (
	"sort"
	"strings"
)

// Standard is the core entity/unicode replacement table, applied to every
// source before parsing. A dialect may extend it with its own
// publisher-specific entries (see internal/sources).
var Standard = map[string]string{
	"&nbsp;":  " ",
	"&minus;": "-",
	" ":       " ", // non-breaking space
	"−":       "-", // minus sign
	"‒":       "-", // figure dash
	"–":       "-", // en dash
	"—":       "-", // em dash
	"―":       "-", // horizontal bar
	"舑":       "-",
	"Ő":       "-",
	"ŷ":       "",
	"Š":       "",
	"Ņ":       "'",
	"ņ":       "'",
}

// Decode replaces every key of table found in s with its value. Longer
// keys are matched before their prefixes so overlapping entities (e.g. an
// entity whose replacement text happens to contain another entity's
// source string) never partially consume each other's input.
func Decode(s string, table map[string]string) string {
	if len(table) == 0 {
		return s
	}
	// strings.Replacer gives earlier arguments priority, so longer keys go
	// first.
	keys := make([]string, 0, len(table))
	for k := range table {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if len(keys[i]) != len(keys[j]) {
			return len(keys[i]) > len(keys[j])
		}
		return keys[i] < keys[j]
	})
	oldnew := make([]string, 0, len(table)*2)
	for _, k := range keys {
		oldnew = append(oldnew, k, table[k])
	}
	return strings.NewReplacer(oldnew...).Replace(s)
}

// Merge overlays extra on top of Standard, with extra's entries winning on
// key collision, so a source can override individual baseline entries.
func Merge(extra map[string]string) map[string]string {
	out := make(map[string]string, len(Standard)+len(extra))
	for k, v := range Standard {
		out[k] = v
	}
	for k, v := range extra {
		out[k] = v
	}
	return out
}
