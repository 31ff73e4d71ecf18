package selector

import (
	"fmt"
	"strings"

	"github.com/jakopako/pinpoint/internal/dom"
)

// directAttrNames is the ordered list of attributes the direct strategy
// scans: test/QA hooks first, then the generic identifying attributes.
var directAttrNames = []string{
	"data-testid",
	"data-test-id",
	"data-test",
	"data-cy",
	"data-qa",
	"id",
	"name",
	"role",
	"placeholder",
}

// uniqueTags are semantic/structural tags that typically occur once per
// document, so a bare tag selector is worth trying.
var uniqueTags = map[string]bool{
	"html": true, "head": true, "body": true, "title": true,
	"main": true, "header": true, "footer": true, "nav": true, "aside": true,
	"h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
	"video": true, "audio": true, "canvas": true,
	"table": true, "thead": true, "tbody": true, "tfoot": true, "caption": true,
	"form": true,
}

// scopeCtx bundles the evaluator with the tree scope candidates are checked
// against (the document, or a single shadow root).
type scopeCtx struct {
	eval     Evaluator
	scope    *dom.Node
	attrs    []string
	maxDepth int
}

// isUnique reports whether sel matches exactly one node in the scope.
// Evaluation failures count as non-unique so strategies may try query shapes
// the engine does not support.
func (c *scopeCtx) isUnique(sel string) bool {
	ms, err := c.eval.Evaluate(sel, c.scope)
	return err == nil && len(ms) == 1
}

// uniquelyMatches reports whether sel matches exactly the target and nothing
// else. This is the acceptance test of the dedupe/validate pass.
func (c *scopeCtx) uniquelyMatches(sel string, target *dom.Node) bool {
	ms, err := c.eval.Evaluate(sel, c.scope)
	return err == nil && len(ms) == 1 && ms[0] == target
}

// strategyFunc proposes zero or more candidates for el. Strategies never
// trust their own output; everything is re-validated afterwards.
type strategyFunc func(*scopeCtx, *dom.Node) []Candidate

var strategies = []strategyFunc{
	stableIDCandidates,
	uniqueTagCandidates,
	directCandidates,
	ancestorCandidates,
	siblingCandidates,
	classCandidates,
	absoluteCandidates,
}

// stableIDCandidates anchors on the element's own id when it passes the
// stability check.
func stableIDCandidates(c *scopeCtx, el *dom.Node) []Candidate {
	id := el.ID()
	if !IsStableID(id) {
		return nil
	}
	return []Candidate{{Selector: fmt.Sprintf("//*[@id=%s]", xpathString(id)), Score: ScoreStableID}}
}

// uniqueTagCandidates proposes a bare tag selector for whitelisted tags.
func uniqueTagCandidates(c *scopeCtx, el *dom.Node) []Candidate {
	if el.Namespace != "" || !uniqueTags[el.Data] {
		return nil
	}
	return []Candidate{{Selector: "//" + el.Data, Score: ScoreUniqueTag}}
}

// directCandidates covers the three direct sub-strategies: stable attribute,
// label anchoring and text anchoring.
func directCandidates(c *scopeCtx, el *dom.Node) []Candidate {
	var out []Candidate

	// stable attribute: first attribute whose value is stable and whose
	// predicate selector is unique wins
	for _, name := range c.attrs {
		v, ok := el.Attr(name)
		if !ok || !IsStableID(v) {
			continue
		}
		sel := fmt.Sprintf("//%s[@%s=%s]", NodeTest(el), name, xpathString(v))
		if c.isUnique(sel) {
			out = append(out, Candidate{Selector: sel, Score: ScoreDirect})
			break
		}
	}

	// label anchoring: a preceding sibling with stable text addresses the
	// target as its first following sibling of the target's node test
	if prev := el.PrevElement(); prev != nil {
		if label, ok := stableLabelText(prev.OwnText()); ok {
			labelSel := fmt.Sprintf("//%s[normalize-space(text())=%s]", NodeTest(prev), xpathString(label))
			if c.isUnique(labelSel) {
				out = append(out, Candidate{
					Selector: fmt.Sprintf("%s/following-sibling::%s[1]", labelSel, NodeTest(el)),
					Score:    ScoreDirect,
				})
			}
		}
	}

	// text anchoring on the element's own text; the emitted predicate only
	// sees direct text children, so the check uses the same
	if text := dom.NormalizeSpace(el.OwnText()); HasStableText(text) {
		out = append(out, Candidate{
			Selector: fmt.Sprintf("//%s[normalize-space(text())=%s]", NodeTest(el), xpathString(text)),
			Score:    ScoreDirect,
		})
	}

	return out
}

// anchorSelectors returns selectors that could address n on its own, in
// decreasing preference: unique tag, stable id, stable attribute, stable
// text. Uniqueness is not checked here.
func anchorSelectors(c *scopeCtx, n *dom.Node) []string {
	var out []string
	if n.Namespace == "" && uniqueTags[n.Data] {
		out = append(out, "//"+n.Data)
	}
	if id := n.ID(); IsStableID(id) {
		out = append(out, fmt.Sprintf("//*[@id=%s]", xpathString(id)))
	}
	for _, name := range c.attrs {
		if v, ok := n.Attr(name); ok && IsStableID(v) {
			out = append(out, fmt.Sprintf("//%s[@%s=%s]", NodeTest(n), name, xpathString(v)))
			break
		}
	}
	if text := dom.NormalizeSpace(n.OwnText()); HasStableText(text) {
		out = append(out, fmt.Sprintf("//%s[normalize-space(text())=%s]", NodeTest(n), xpathString(text)))
	}
	return out
}

// ancestorAnchorSelectors additionally tries the stable class combination.
// Class anchors are only admitted for ancestors; the sibling scan must not
// stop at a sibling that has nothing but a stable class going for it.
func ancestorAnchorSelectors(c *scopeCtx, n *dom.Node) []string {
	out := anchorSelectors(c, n)
	if stable := stableClasses(n); len(stable) > 0 {
		out = append(out, "//"+NodeTest(n)+classPredicates(stable))
	}
	return out
}

// ancestorCandidates walks upward accumulating a tag[index] path and emits
// one candidate per ancestor anchor that is unique in the scope. The walk
// stops at the document body and is capped at MaxAncestorDepth levels.
func ancestorCandidates(c *scopeCtx, el *dom.Node) []Candidate {
	var out []Candidate
	rel := indexedNodeTest(el)
	cur := el.ParentElement()
	for depth := 0; cur != nil && depth < c.maxDepth; depth++ {
		if cur.Namespace == "" && cur.Data == "body" {
			break
		}
		for _, anchor := range ancestorAnchorSelectors(c, cur) {
			if c.isUnique(anchor) {
				out = append(out, Candidate{Selector: anchor + "/" + rel, Score: ScoreAncestor})
			}
		}
		rel = indexedNodeTest(cur) + "/" + rel
		cur = cur.ParentElement()
	}
	return out
}

// siblingAnchor returns a unique anchor selector for n, or "". Unlike
// anchorSelectors the uniqueness check happens here because the sibling
// strategy only wants the first qualifying sibling per direction.
func siblingAnchor(c *scopeCtx, n *dom.Node) string {
	for _, anchor := range anchorSelectors(c, n) {
		if c.isUnique(anchor) {
			return anchor
		}
	}
	return ""
}

// siblingCandidates scans the target's siblings outward in both directions
// and addresses the target from the first qualifying anchor per side via a
// sibling axis, positioned by the count of same-tag siblings in between.
func siblingCandidates(c *scopeCtx, el *dom.Node) []Candidate {
	var out []Candidate

	between := 0
	for s := el.PrevElement(); s != nil; s = s.PrevElement() {
		if anchor := siblingAnchor(c, s); anchor != "" {
			out = append(out, Candidate{
				Selector: fmt.Sprintf("%s/following-sibling::%s[%d]", anchor, NodeTest(el), between+1),
				Score:    ScoreSibling,
			})
			break
		}
		if s.Data == el.Data {
			between++
		}
	}

	between = 0
	for s := el.NextElement(); s != nil; s = s.NextElement() {
		if anchor := siblingAnchor(c, s); anchor != "" {
			out = append(out, Candidate{
				Selector: fmt.Sprintf("%s/preceding-sibling::%s[%d]", anchor, NodeTest(el), between+1),
				Score:    ScoreSibling,
			})
			break
		}
		if s.Data == el.Data {
			between++
		}
	}

	return out
}

func stableClasses(n *dom.Node) []string {
	var out []string
	for _, cl := range n.Classes() {
		if IsStableClass(cl) {
			out = append(out, cl)
		}
	}
	return out
}

func classPredicates(classes []string) string {
	var sb strings.Builder
	for _, cl := range classes {
		fmt.Fprintf(&sb, "[contains(concat(' ', normalize-space(@class), ' '), %s)]", xpathString(" "+cl+" "))
	}
	return sb.String()
}

// classCandidates tries the conjunction of all stable classes, then each
// class individually. Non-unique combinations are dropped in validation.
func classCandidates(c *scopeCtx, el *dom.Node) []Candidate {
	stable := stableClasses(el)
	if len(stable) == 0 {
		return nil
	}
	test := NodeTest(el)
	out := []Candidate{{Selector: "//" + test + classPredicates(stable), Score: ScoreClass}}
	if len(stable) > 1 {
		for _, cl := range stable {
			out = append(out, Candidate{Selector: "//" + test + classPredicates([]string{cl}), Score: ScoreClass})
		}
	}
	return out
}

// absoluteCandidates builds the full root-to-target path with a 1-based
// same-tag index at every level. Unique by construction; the guaranteed
// fallback when nothing else validates.
func absoluteCandidates(c *scopeCtx, el *dom.Node) []Candidate {
	return []Candidate{{Selector: AbsolutePath(el), Score: ScoreAbsolute}}
}

// AbsolutePath returns the fully indexed path from the scope root down to el.
func AbsolutePath(el *dom.Node) string {
	var parts []string
	for cur := el; cur != nil && cur.Type == dom.ElementNode; cur = cur.ParentElement() {
		parts = append(parts, indexedNodeTest(cur))
	}
	for i, j := 0, len(parts)-1; i < j; i, j = i+1, j-1 {
		parts[i], parts[j] = parts[j], parts[i]
	}
	return "/" + strings.Join(parts, "/")
}
