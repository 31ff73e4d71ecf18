package selector

import (
	"cmp"
	"slices"
)

// rank orders validated candidates: higher score first, then fewer path
// steps, then shorter string. The sort is stable so equal candidates keep
// their generation order and repeated calls produce identical results.
func rank(cands []Candidate) {
	slices.SortStableFunc(cands, func(a, b Candidate) int {
		return cmp.Or(
			cmp.Compare(b.Score, a.Score),
			cmp.Compare(a.Steps(), b.Steps()),
			cmp.Compare(len(a.Selector), len(b.Selector)),
		)
	})
}
