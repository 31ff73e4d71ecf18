package selector

import (
	"strings"
	"testing"

	"github.com/jakopako/pinpoint/internal/dom"
	"github.com/jakopako/pinpoint/internal/xpatheval"
)

const (
	productPageA = `
	<html><body>
		<main>
			<div class="product-info">
				<h1 id="product-title">Ergonomic Chair</h1>
				<span class="label">Price:</span>
				<span class="amount">$129.99</span>
			</div>
		</main>
	</body></html>`
	productPageB = `
	<html><body>
		<main>
			<div class="product-info">
				<h1 id="product-title">Standing Desk</h1>
				<span class="label">Price:</span>
				<span class="amount">$349.00</span>
			</div>
		</main>
	</body></html>`
	volatileIDPage = `
	<html><body>
		<div>
			<span id="u_0_9_QM" data-testid="product-title">Some product name here</span>
			<span>other content</span>
		</div>
	</body></html>`
	genericPage = `
	<html><body>
		<div>
			<div><span>a b 1</span><span>c d 2</span></div>
			<div><span>e f 3</span></div>
		</div>
	</body></html>`
	svgPage = `
	<html><body>
		<div>
			<svg viewBox="0 0 10 10"><g><path d="M0 0 L10 10"></path></g></svg>
		</div>
	</body></html>`
)

func mustParse(t *testing.T, htmlStr string) *dom.Document {
	t.Helper()
	doc, err := dom.ParseDocument(strings.NewReader(htmlStr))
	if err != nil {
		t.Fatalf("parsing document: %v", err)
	}
	return doc
}

// findElem walks the whole tree, including shadow roots, and returns the
// first element matching pred.
func findElem(n *dom.Node, pred func(*dom.Node) bool) *dom.Node {
	if n.Type == dom.ElementNode && pred(n) {
		return n
	}
	if n.Shadow != nil {
		if r := findElem(n.Shadow.Root, pred); r != nil {
			return r
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if r := findElem(c, pred); r != nil {
			return r
		}
	}
	return nil
}

func elemByID(t *testing.T, doc *dom.Document, id string) *dom.Node {
	t.Helper()
	n := findElem(doc.Root(), func(e *dom.Node) bool { return e.ID() == id })
	if n == nil {
		t.Fatalf("no element with id %q", id)
	}
	return n
}

func elemByClass(t *testing.T, doc *dom.Document, class string) *dom.Node {
	t.Helper()
	n := findElem(doc.Root(), func(e *dom.Node) bool {
		for _, cl := range e.Classes() {
			if cl == class {
				return true
			}
		}
		return false
	})
	if n == nil {
		t.Fatalf("no element with class %q", class)
	}
	return n
}

func newTestGenerator() *Generator {
	return NewGenerator(xpatheval.NewEngine(), Options{})
}

func TestGenerateStableID(t *testing.T) {
	gen := newTestGenerator()
	for _, page := range []string{productPageA, productPageB} {
		doc := mustParse(t, page)
		target := elemByID(t, doc, "product-title")
		sel, err := gen.Generate(target)
		if err != nil {
			t.Fatalf("generate: %v", err)
		}
		if sel != "//*[@id='product-title']" {
			t.Errorf("expected id selector, got %q", sel)
		}
	}
}

func TestGenerateVolatileIDPrefersTestID(t *testing.T) {
	doc := mustParse(t, volatileIDPage)
	target := elemByID(t, doc, "u_0_9_QM")
	sel, err := newTestGenerator().Generate(target)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if !strings.Contains(sel, "@data-testid='product-title'") {
		t.Errorf("expected data-testid selector, got %q", sel)
	}
	if strings.Contains(sel, "u_0_9_QM") {
		t.Errorf("selector must not reference the volatile id: %q", sel)
	}
}

func TestGenerateLabelAnchoring(t *testing.T) {
	doc := mustParse(t, productPageA)
	target := elemByClass(t, doc, "amount")
	sel, err := newTestGenerator().Generate(target)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	expected := "//span[normalize-space(text())='Price:']/following-sibling::span[1]"
	if sel != expected {
		t.Errorf("expected label anchored selector %q, got %q", expected, sel)
	}
}

func TestGenerateAbsoluteFallback(t *testing.T) {
	doc := mustParse(t, genericPage)
	target := findElem(doc.Root(), func(e *dom.Node) bool {
		return e.Data == "span" && strings.Contains(e.OwnText(), "e f 3")
	})
	if target == nil {
		t.Fatal("target not found")
	}
	sel, err := newTestGenerator().Generate(target)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if sel != "/html[1]/body[1]/div[1]/div[2]/span[1]" {
		t.Errorf("expected absolute path fallback, got %q", sel)
	}
}

func TestGenerateNamespacedNodeTests(t *testing.T) {
	doc := mustParse(t, svgPage)
	target := findElem(doc.Root(), func(e *dom.Node) bool { return e.Data == "path" })
	if target == nil {
		t.Fatal("path element not found")
	}
	eval := xpatheval.NewEngine()
	gen := NewGenerator(eval, Options{})
	sel, err := gen.Generate(target)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	for _, local := range []string{"svg", "g", "path"} {
		if !strings.Contains(sel, "*[local-name()='"+local+"']") {
			t.Errorf("expected local-name node test for %q in %q", local, sel)
		}
	}
	resolved, err := Resolve(eval, doc, sel)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if resolved != target {
		t.Errorf("selector %q did not resolve back to the target", sel)
	}
}

func TestGenerateDeterministic(t *testing.T) {
	doc := mustParse(t, productPageA)
	target := elemByClass(t, doc, "amount")
	gen := newTestGenerator()
	first, err := gen.Generate(target)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	second, err := gen.Generate(target)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if first != second {
		t.Errorf("generation is not deterministic: %q vs %q", first, second)
	}
}

func TestGenerateCrossPageStability(t *testing.T) {
	pageA := strings.ReplaceAll(volatileIDPage, "u_0_9_QM", "u_4_2_ZZ")
	docA := mustParse(t, pageA)
	docB := mustParse(t, volatileIDPage)
	targetA := elemByID(t, docA, "u_4_2_ZZ")
	targetB := elemByID(t, docB, "u_0_9_QM")

	gen := newTestGenerator()
	selA, err := gen.Generate(targetA)
	if err != nil {
		t.Fatalf("generate A: %v", err)
	}
	selB, err := gen.Generate(targetB)
	if err != nil {
		t.Fatalf("generate B: %v", err)
	}
	if selA != selB {
		t.Errorf("selectors differ across structurally equal pages: %q vs %q", selA, selB)
	}

	eval := xpatheval.NewEngine()
	if resolved, err := Resolve(eval, docA, selA); err != nil || resolved != targetA {
		t.Errorf("selector does not resolve on page A: %v", err)
	}
	if resolved, err := Resolve(eval, docB, selB); err != nil || resolved != targetB {
		t.Errorf("selector does not resolve on page B: %v", err)
	}
}

func TestGenerateScoredMatchesTopCandidate(t *testing.T) {
	doc := mustParse(t, productPageA)
	target := elemByClass(t, doc, "amount")
	gen := newTestGenerator()
	sel, score, err := gen.GenerateScored(target)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	cands, err := gen.Candidates(target)
	if err != nil {
		t.Fatalf("candidates: %v", err)
	}
	if sel != cands[0].Selector || score != cands[0].Score {
		t.Errorf("GenerateScored = (%q, %d), want the top candidate (%q, %d)",
			sel, score, cands[0].Selector, cands[0].Score)
	}
}

func TestGenerateInvalidInput(t *testing.T) {
	gen := newTestGenerator()
	if _, err := gen.Generate(nil); err != ErrInvalidInput {
		t.Errorf("expected ErrInvalidInput for nil, got %v", err)
	}
	textNode := &dom.Node{Type: dom.TextNode, Data: "hello"}
	if _, err := gen.Generate(textNode); err != ErrInvalidInput {
		t.Errorf("expected ErrInvalidInput for text node, got %v", err)
	}
}

func TestCandidatesAllValidate(t *testing.T) {
	doc := mustParse(t, productPageA)
	target := elemByClass(t, doc, "amount")
	eval := xpatheval.NewEngine()
	gen := NewGenerator(eval, Options{})
	cands, err := gen.Candidates(target)
	if err != nil {
		t.Fatalf("candidates: %v", err)
	}
	if len(cands) == 0 {
		t.Fatal("expected at least the absolute path candidate")
	}
	for _, c := range cands {
		ms, err := eval.Evaluate(c.Selector, doc.Root())
		if err != nil {
			t.Errorf("candidate %q does not evaluate: %v", c.Selector, err)
			continue
		}
		if len(ms) != 1 || ms[0] != target {
			t.Errorf("candidate %q resolves to %d nodes, want exactly the target", c.Selector, len(ms))
		}
	}
}
