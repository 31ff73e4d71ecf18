// Package xpatheval evaluates XPath expressions against a dom tree. The
// selector engine consumes it through an interface so that tests can inject
// synthetic engines.
package xpatheval

import (
	"fmt"

	"github.com/antchfx/xpath"
	"github.com/jakopako/pinpoint/internal/dom"
)

// An Engine compiles and evaluates XPath queries. Compiled expressions are
// cached; the engine is meant to be used from a single goroutine per call,
// like the generation pipeline itself.
type Engine struct {
	cache map[string]*xpath.Expr
}

func NewEngine() *Engine {
	return &Engine{cache: map[string]*xpath.Expr{}}
}

// Evaluate runs the query with scope as context node and returns all matched
// nodes in document order. Absolute location paths stay confined to scope's
// tree, so a query evaluated against a shadow scope cannot reach the outer
// document. A query the engine cannot compile or run yields an error, never
// a panic.
func (e *Engine) Evaluate(query string, scope *dom.Node) ([]*dom.Node, error) {
	if scope == nil {
		return nil, fmt.Errorf("evaluate %q: nil scope", query)
	}
	expr, ok := e.cache[query]
	if !ok {
		var err error
		expr, err = xpath.Compile(query)
		if err != nil {
			return nil, fmt.Errorf("compile %q: %w", query, err)
		}
		e.cache[query] = expr
	}

	var out []*dom.Node
	err := func() (err error) {
		defer func() {
			if r := recover(); r != nil {
				err = fmt.Errorf("evaluate %q: %v", query, r)
			}
		}()
		iter := expr.Select(newNav(scope))
		for iter.MoveNext() {
			cur := iter.Current().(*nav)
			out = append(out, cur.cur)
		}
		return nil
	}()
	if err != nil {
		return nil, err
	}
	return out, nil
}
