package dom

import (
	"strings"
	"testing"

	"golang.org/x/net/html"
)

func parse(t *testing.T, s string) *Document {
	t.Helper()
	doc, err := ParseDocument(strings.NewReader(s))
	if err != nil {
		t.Fatalf("parsing: %v", err)
	}
	return doc
}

func firstElement(n *Node, tag string) *Node {
	if n.Type == ElementNode && n.Data == tag {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if r := firstElement(c, tag); r != nil {
			return r
		}
	}
	return nil
}

func TestParseDocumentBasics(t *testing.T) {
	doc := parse(t, `<html><body><div id="a" class="x  y"><p>hi <b>there</b></p></div></body></html>`)
	div := firstElement(doc.Root(), "div")
	if div == nil {
		t.Fatal("div not found")
	}
	if div.ID() != "a" {
		t.Errorf("ID = %q, want a", div.ID())
	}
	if cls := div.Classes(); len(cls) != 2 || cls[0] != "x" || cls[1] != "y" {
		t.Errorf("Classes = %v, want [x y]", cls)
	}
	p := firstElement(div, "p")
	if got := p.InnerText(); got != "hi there" {
		t.Errorf("InnerText = %q, want %q", got, "hi there")
	}
	if got := p.OwnText(); got != "hi " {
		t.Errorf("OwnText = %q, want %q", got, "hi ")
	}
}

func TestFromHTMLNode(t *testing.T) {
	hn, err := html.Parse(strings.NewReader(`<html><body><span>x</span></body></html>`))
	if err != nil {
		t.Fatal(err)
	}
	doc := NewDocument(hn)
	var hspan *html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "span" {
			hspan = n
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(hn)
	if hspan == nil {
		t.Fatal("span not found in html tree")
	}
	n := doc.FromHTMLNode(hspan)
	if n == nil || n.Data != "span" {
		t.Fatalf("FromHTMLNode did not map the span, got %v", n)
	}
}

func TestDeclarativeShadowRoot(t *testing.T) {
	doc := parse(t, `<html><body>
		<div id="host"><template shadowrootmode="open"><p>inside</p></template><span>outside</span></div>
	</body></html>`)
	host := firstElement(doc.Root(), "div")
	if host.Shadow == nil {
		t.Fatal("expected a shadow root on the host")
	}
	if host.Shadow.Closed {
		t.Error("open shadow root marked closed")
	}
	if firstElement(doc.Root(), "p") != nil {
		t.Error("shadow content must not be reachable from the document tree")
	}
	p := firstElement(host.Shadow.Root, "p")
	if p == nil {
		t.Fatal("shadow content not attached to the shadow scope")
	}
	if ScopeRoot(p) != host.Shadow.Root {
		t.Error("ScopeRoot of shadow content must be the shadow scope node")
	}
	if host.Shadow.Root.Host != host {
		t.Error("scope node must link back to the host")
	}
	// light children of the host stay in the document scope
	if firstElement(doc.Root(), "span") == nil {
		t.Error("light child of the host missing from the document tree")
	}
}

func TestClosedShadowRoot(t *testing.T) {
	doc := parse(t, `<html><body><div><template shadowrootmode="closed"><p>x</p></template></div></body></html>`)
	host := firstElement(doc.Root(), "div")
	if host.Shadow == nil || !host.Shadow.Closed {
		t.Fatal("expected a closed shadow root")
	}
}

func TestFirstShadowTemplateWins(t *testing.T) {
	doc := parse(t, `<html><body><div>
		<template shadowrootmode="open"><p>first</p></template>
		<template shadowrootmode="open"><p>second</p></template>
	</div></body></html>`)
	host := firstElement(doc.Root(), "div")
	if host.Shadow == nil {
		t.Fatal("expected a shadow root")
	}
	p := firstElement(host.Shadow.Root, "p")
	if p == nil || p.InnerText() != "first" {
		t.Error("the first declarative template must win")
	}
}

func TestSameTagIndex(t *testing.T) {
	doc := parse(t, `<html><body><div><span>a</span><b>x</b><span>b</span><span>c</span></div></body></html>`)
	div := firstElement(doc.Root(), "div")
	spans := div.ChildElements()
	if len(spans) != 4 {
		t.Fatalf("expected 4 child elements, got %d", len(spans))
	}
	want := []int{1, 1, 2, 3}
	for i, n := range spans {
		if got := SameTagIndex(n); got != want[i] {
			t.Errorf("SameTagIndex(%s #%d) = %d, want %d", n.Data, i, got, want[i])
		}
	}
}

func TestSiblingNavigation(t *testing.T) {
	doc := parse(t, `<html><body><div><span>a</span> text <b>x</b></div></body></html>`)
	b := firstElement(doc.Root(), "b")
	prev := b.PrevElement()
	if prev == nil || prev.Data != "span" {
		t.Errorf("PrevElement = %v, want span", prev)
	}
	if prev.NextElement() != b {
		t.Error("NextElement must skip text nodes")
	}
	if prev.PrevElement() != nil {
		t.Error("PrevElement at the start must be nil")
	}
}

func TestForeignContentNamespace(t *testing.T) {
	doc := parse(t, `<html><body><svg><g><path d="M0 0"></path></g></svg></body></html>`)
	path := firstElement(doc.Root(), "path")
	if path == nil {
		t.Fatal("path not found")
	}
	if path.Namespace != "svg" {
		t.Errorf("Namespace = %q, want svg", path.Namespace)
	}
	body := firstElement(doc.Root(), "body")
	if body.Namespace != "" {
		t.Errorf("html elements must have an empty namespace, got %q", body.Namespace)
	}
}

func TestNormalizeSpace(t *testing.T) {
	tests := []struct{ in, want string }{
		{"  a  b ", "a b"},
		{"a\n\tb", "a b"},
		{"", ""},
		{"   ", ""},
	}
	for _, tt := range tests {
		if got := NormalizeSpace(tt.in); got != tt.want {
			t.Errorf("NormalizeSpace(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
