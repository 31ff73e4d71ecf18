// Package dom provides a read-only document tree for selector generation.
// It is built from golang.org/x/net/html parse output and additionally
// detaches declarative shadow roots (<template shadowrootmode="...">) into
// separate scopes that ordinary path queries cannot cross.
package dom

import (
	"io"
	"strings"

	"golang.org/x/net/html"
)

// NodeType is the type of a Node.
type NodeType int

const (
	DocumentNode NodeType = iota
	ElementNode
	TextNode
)

// Attribute is a single name/value attribute pair.
type Attribute struct {
	Name  string
	Value string
}

// A Node is a node in the document tree. For elements Data holds the local
// name and Namespace the element's namespace ("" for html, "svg"/"math" for
// foreign content). For text nodes Data holds the text.
type Node struct {
	Type      NodeType
	Data      string
	Namespace string
	Attrs     []Attribute

	Parent      *Node
	FirstChild  *Node
	LastChild   *Node
	PrevSibling *Node
	NextSibling *Node

	// Shadow is set on elements hosting a shadow root.
	Shadow *ShadowRoot
	// Host is set on the scope node of a shadow root and points back to
	// the hosting element. It is the only route out of a shadow tree.
	Host *Node
}

// A ShadowRoot is a tree scope attached to a host element. Its scope node has
// no parent link to the outer document.
type ShadowRoot struct {
	Host   *Node
	Root   *Node
	Closed bool
}

// A Document owns the converted tree and remembers which html.Node each Node
// was built from, so callers that located a target with goquery can translate
// their match into this tree.
type Document struct {
	root   *Node
	byHTML map[*html.Node]*Node
}

// ParseDocument parses HTML from r and converts it into a Document.
func ParseDocument(r io.Reader) (*Document, error) {
	hn, err := html.Parse(r)
	if err != nil {
		return nil, err
	}
	return NewDocument(hn), nil
}

// NewDocument converts an already parsed html tree into a Document.
func NewDocument(root *html.Node) *Document {
	d := &Document{byHTML: map[*html.Node]*Node{}}
	d.root = &Node{Type: DocumentNode}
	d.byHTML[root] = d.root
	for c := root.FirstChild; c != nil; c = c.NextSibling {
		d.convert(c, d.root)
	}
	return d
}

// Root returns the document scope node.
func (d *Document) Root() *Node {
	return d.root
}

// FromHTMLNode returns the Node built from hn, or nil if hn was not part of
// the parsed tree (eg a comment or doctype node).
func (d *Document) FromHTMLNode(hn *html.Node) *Node {
	return d.byHTML[hn]
}

func (d *Document) convert(hn *html.Node, parent *Node) {
	switch hn.Type {
	case html.TextNode:
		appendChild(parent, &Node{Type: TextNode, Data: hn.Data})
	case html.ElementNode:
		if mode, ok := templateShadowMode(hn); ok {
			// declarative shadow root: attach the template contents to
			// the template's parent element as a detached scope
			if parent.Type == ElementNode && parent.Shadow == nil {
				scope := &Node{Type: DocumentNode, Host: parent}
				parent.Shadow = &ShadowRoot{Host: parent, Root: scope, Closed: mode == "closed"}
				d.byHTML[hn] = scope
				for c := hn.FirstChild; c != nil; c = c.NextSibling {
					d.convert(c, scope)
				}
			}
			return
		}
		n := &Node{Type: ElementNode, Data: hn.Data, Namespace: hn.Namespace}
		for _, a := range hn.Attr {
			n.Attrs = append(n.Attrs, Attribute{Name: a.Key, Value: a.Val})
		}
		appendChild(parent, n)
		d.byHTML[hn] = n
		for c := hn.FirstChild; c != nil; c = c.NextSibling {
			d.convert(c, n)
		}
	}
	// comments and doctypes are dropped
}

func templateShadowMode(hn *html.Node) (string, bool) {
	if hn.Data != "template" || hn.Namespace != "" {
		return "", false
	}
	for _, a := range hn.Attr {
		if a.Key == "shadowrootmode" && (a.Val == "open" || a.Val == "closed") {
			return a.Val, true
		}
	}
	return "", false
}

func appendChild(parent, n *Node) {
	n.Parent = parent
	if parent.LastChild != nil {
		parent.LastChild.NextSibling = n
		n.PrevSibling = parent.LastChild
	} else {
		parent.FirstChild = n
	}
	parent.LastChild = n
}

// Attr returns the value of the named attribute.
func (n *Node) Attr(name string) (string, bool) {
	for _, a := range n.Attrs {
		if a.Name == name {
			return a.Value, true
		}
	}
	return "", false
}

// ID returns the element's id attribute, or "".
func (n *Node) ID() string {
	v, _ := n.Attr("id")
	return v
}

// Classes returns the element's class tokens.
func (n *Node) Classes() []string {
	v, ok := n.Attr("class")
	if !ok {
		return nil
	}
	return strings.Fields(v)
}

// ParentElement returns the parent if it is an element, nil otherwise.
func (n *Node) ParentElement() *Node {
	if n.Parent != nil && n.Parent.Type == ElementNode {
		return n.Parent
	}
	return nil
}

// ChildElements returns the element children in document order.
func (n *Node) ChildElements() []*Node {
	var out []*Node
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == ElementNode {
			out = append(out, c)
		}
	}
	return out
}

// PrevElement returns the closest preceding sibling element.
func (n *Node) PrevElement() *Node {
	for s := n.PrevSibling; s != nil; s = s.PrevSibling {
		if s.Type == ElementNode {
			return s
		}
	}
	return nil
}

// NextElement returns the closest following sibling element.
func (n *Node) NextElement() *Node {
	for s := n.NextSibling; s != nil; s = s.NextSibling {
		if s.Type == ElementNode {
			return s
		}
	}
	return nil
}

// InnerText returns the concatenated text of all descendant text nodes.
// Shadow trees of descendant hosts are not included.
func (n *Node) InnerText() string {
	var sb strings.Builder
	var walk func(*Node)
	walk = func(c *Node) {
		if c.Type == TextNode {
			sb.WriteString(c.Data)
			return
		}
		for cc := c.FirstChild; cc != nil; cc = cc.NextSibling {
			walk(cc)
		}
	}
	walk(n)
	return sb.String()
}

// OwnText returns the concatenated text of the direct text children only.
func (n *Node) OwnText() string {
	var sb strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == TextNode {
			sb.WriteString(c.Data)
		}
	}
	return sb.String()
}

// ScopeRoot returns the root of the tree scope n lives in: the document node,
// or the scope node of the innermost shadow root containing n.
func ScopeRoot(n *Node) *Node {
	for n.Parent != nil {
		n = n.Parent
	}
	return n
}

// SameTagIndex returns the 1-based position of n among its sibling elements
// with the same local name.
func SameTagIndex(n *Node) int {
	i := 1
	for s := n.PrevSibling; s != nil; s = s.PrevSibling {
		if s.Type == ElementNode && s.Data == n.Data {
			i++
		}
	}
	return i
}

// NormalizeSpace collapses runs of whitespace into single spaces and trims,
// matching the XPath normalize-space() function.
func NormalizeSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
