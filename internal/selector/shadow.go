package selector

import (
	"fmt"
	"strings"

	"github.com/jakopako/pinpoint/internal/dom"
)

// CompoundSeparator joins the document selector and the per-shadow-root path
// segments of a compound selector.
const CompoundSeparator = "|"

// shadowPath returns the deterministic absolute path of n within its shadow
// root: one local-name[index] step per ancestor up to, but not including,
// the shadow scope node. Index is the 1-based position among same-local-name
// siblings, so the path is unique by construction.
func shadowPath(n *dom.Node) string {
	var parts []string
	for cur := n; cur != nil && cur.Type == dom.ElementNode; cur = cur.ParentElement() {
		parts = append(parts, fmt.Sprintf("%s[%d]", cur.Data, dom.SameTagIndex(cur)))
	}
	for i, j := 0, len(parts)-1; i < j; i, j = i+1, j-1 {
		parts[i], parts[j] = parts[j], parts[i]
	}
	return "/" + strings.Join(parts, "/")
}
