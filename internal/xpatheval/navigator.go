package xpatheval

import (
	"github.com/antchfx/xpath"
	"github.com/jakopako/pinpoint/internal/dom"
)

// nav implements xpath.NodeNavigator on top of the dom tree. Namespaces are
// deliberately not exposed so that foreign-content elements only match via
// local-name() tests, mirroring how browsers bind the default namespace.
type nav struct {
	root, cur *dom.Node
	attrIx    int
}

func newNav(scope *dom.Node) *nav {
	return &nav{root: dom.ScopeRoot(scope), cur: scope, attrIx: -1}
}

func (n *nav) NodeType() xpath.NodeType {
	if n.attrIx >= 0 {
		return xpath.AttributeNode
	}
	switch n.cur.Type {
	case dom.ElementNode:
		return xpath.ElementNode
	case dom.TextNode:
		return xpath.TextNode
	default:
		return xpath.RootNode
	}
}

func (n *nav) LocalName() string {
	if n.attrIx >= 0 {
		return n.cur.Attrs[n.attrIx].Name
	}
	return n.cur.Data
}

func (n *nav) Prefix() string { return "" }

func (n *nav) Value() string {
	if n.attrIx >= 0 {
		return n.cur.Attrs[n.attrIx].Value
	}
	switch n.cur.Type {
	case dom.TextNode:
		return n.cur.Data
	case dom.ElementNode, dom.DocumentNode:
		return n.cur.InnerText()
	}
	return ""
}

func (n *nav) Copy() xpath.NodeNavigator {
	cp := *n
	return &cp
}

func (n *nav) MoveToRoot() {
	n.cur = n.root
	n.attrIx = -1
}

func (n *nav) MoveToParent() bool {
	if n.attrIx >= 0 {
		n.attrIx = -1
		return true
	}
	if n.cur.Parent == nil {
		return false
	}
	n.cur = n.cur.Parent
	return true
}

func (n *nav) MoveToNext() bool {
	if n.attrIx >= 0 || n.cur.NextSibling == nil {
		return false
	}
	n.cur = n.cur.NextSibling
	return true
}

func (n *nav) MoveToPrevious() bool {
	if n.attrIx >= 0 || n.cur.PrevSibling == nil {
		return false
	}
	n.cur = n.cur.PrevSibling
	return true
}

func (n *nav) MoveToChild() bool {
	if n.attrIx >= 0 || n.cur.FirstChild == nil {
		return false
	}
	n.cur = n.cur.FirstChild
	return true
}

func (n *nav) MoveToFirst() bool {
	if n.attrIx >= 0 {
		return false
	}
	for n.cur.PrevSibling != nil {
		n.cur = n.cur.PrevSibling
	}
	return true
}

func (n *nav) MoveToAttribute(ns, name string) bool {
	if n.cur.Type != dom.ElementNode {
		return false
	}
	for i := range n.cur.Attrs {
		if n.cur.Attrs[i].Name == name {
			n.attrIx = i
			return true
		}
	}
	return false
}

func (n *nav) MoveToNextAttribute() bool {
	if n.attrIx < 0 || n.attrIx+1 >= len(n.cur.Attrs) {
		return false
	}
	n.attrIx++
	return true
}

func (n *nav) MoveToNamespace(prefix string) bool { return false }
func (n *nav) MoveToNextNamespace() bool          { return false }

func (n *nav) MoveTo(other xpath.NodeNavigator) bool {
	o, ok := other.(*nav)
	if !ok {
		return false
	}
	n.cur = o.cur
	n.attrIx = o.attrIx
	return true
}
