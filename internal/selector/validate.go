package selector

import "github.com/jakopako/pinpoint/internal/dom"

// dedupeValidate merges the strategies' raw output, dropping duplicate
// selector strings and everything that does not resolve to exactly the
// target. No candidate is trusted merely because it was built from
// stable-looking input; every one is re-checked against the scope here.
func dedupeValidate(c *scopeCtx, target *dom.Node, cands []Candidate) []Candidate {
	seen := make(map[string]bool, len(cands))
	out := cands[:0]
	for _, cd := range cands {
		if seen[cd.Selector] {
			continue
		}
		seen[cd.Selector] = true
		if c.uniquelyMatches(cd.Selector, target) {
			out = append(out, cd)
		}
	}
	return out
}
