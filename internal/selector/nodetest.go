package selector

import (
	"fmt"
	"strings"

	"github.com/jakopako/pinpoint/internal/dom"
)

// NodeTest returns the node test for one path step addressing n. Elements in
// a non-default namespace (svg, math) need a wildcard with a local-name
// predicate: under the evaluator's default namespace binding a plain tag
// test would silently match nothing.
func NodeTest(n *dom.Node) string {
	if n.Namespace != "" {
		return fmt.Sprintf("*[local-name()=%s]", xpathString(n.Data))
	}
	return strings.ToLower(n.Data)
}

// indexedNodeTest returns the node test of n qualified with its 1-based
// position among same-name siblings, eg "div[3]" or "*[local-name()='g'][2]".
func indexedNodeTest(n *dom.Node) string {
	return fmt.Sprintf("%s[%d]", NodeTest(n), dom.SameTagIndex(n))
}

// xpathString quotes s as an XPath string literal. XPath 1.0 has no escape
// syntax, so values containing both quote kinds are assembled with concat().
func xpathString(s string) string {
	if !strings.Contains(s, "'") {
		return "'" + s + "'"
	}
	if !strings.Contains(s, `"`) {
		return `"` + s + `"`
	}
	parts := strings.Split(s, "'")
	quoted := make([]string, 0, len(parts)*2)
	for i, p := range parts {
		if i > 0 {
			quoted = append(quoted, `"'"`)
		}
		if p != "" {
			quoted = append(quoted, "'"+p+"'")
		}
	}
	return "concat(" + strings.Join(quoted, ", ") + ")"
}
