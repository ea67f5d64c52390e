// Package coordspace guesses an article's stereotactic coordinate space
// (MNI or Talairach) by counting mentions of the space names and of
// normalization software (SPM, FSL, AFNI, BrainVoyager) in the article
// body, each mention counted only where it has 30-40 characters of
// context on both sides.
package coordspace

import (
	"fmt"
	"strings"

	"github.com/dlclark/regexp2"

	"github.com/coregx/neurotab/internal/article"
)

var targets = []string{"mni", "talairach", "afni", "flirt", "711-2", "spm", "brainvoyager", "fsl"}

var targetRegexes = buildTargetRegexes()

func buildTargetRegexes() []*regexp2.Regexp {
	out := make([]*regexp2.Regexp, len(targets))
	for i, tgt := range targets {
		// Every target is a bare alphanumeric/hyphen string, so it is
		// already regex-literal; no escaping is needed.
		pattern := fmt.Sprintf(`\b(.{30,40}\b%s.{30,40})\b`, tgt)
		out[i] = regexp2.MustCompile(pattern, regexp2.None)
	}
	return out
}

func countMatches(re *regexp2.Regexp, text string) int {
	n := 0
	m, err := re.FindStringMatch(text)
	for err == nil && m != nil {
		n++
		m, err = re.FindNextMatch(m)
	}
	return n
}

// Guess returns the coordinate space implied by text, defaulting to
// article.UnknownSpace when the evidence is ambiguous or absent.
//
// The targets slice order is load-bearing: index 5 is "spm" and index 7
// is "fsl" (both MNI-space tools), index 2 is "afni" and index 6 is
// "brainvoyager" (both Talairach-space tools).
func Guess(text string) article.CoordSpace {
	lower := strings.ToLower(text)
	res := make([]int, len(targets))
	for i, re := range targetRegexes {
		res[i] = countMatches(re, lower)
	}

	mni := res[5] + res[7]
	t88 := res[2] + res[6]
	software := mni + t88

	switch {
	case (mni > 0 && t88 == 0) || (software == 0 && res[0] > 0 && res[1] == 0):
		return article.MNI
	case (t88 > 0 && mni == 0) || (software == 0 && res[1] > 0 && res[0] == 0):
		return article.TAL
	default:
		return article.UnknownSpace
	}
}
