// Package selector generates path-query selectors that identify a single
// element and stay usable across structurally similar pages. Candidates from
// nine independent strategies are validated against the document and ranked
// by strategy confidence, path length and string length.
package selector

import (
	"strings"
)

// A Candidate is a generated, not yet trusted selector paired with the
// confidence of the strategy that produced it. Candidates only live for the
// duration of one generation call.
type Candidate struct {
	Selector string
	Score    int
}

// Strategy confidence scores. Only the relative order carries meaning; the
// gaps are not a calibrated scale.
const (
	ScoreStableID  = 100
	ScoreUniqueTag = 90
	ScoreDirect    = 80
	ScoreAncestor  = 70
	ScoreSibling   = 60
	ScoreClass     = 40
	ScoreAbsolute  = 0
)

// MaxAncestorDepth caps the upward walk of the ancestor strategy.
const MaxAncestorDepth = 50

// Steps returns the number of location steps of the candidate's selector,
// counted as non-empty '/'-delimited segments.
func (c Candidate) Steps() int {
	n := 0
	for _, seg := range strings.Split(c.Selector, "/") {
		if seg != "" {
			n++
		}
	}
	return n
}
