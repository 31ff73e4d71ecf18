package selector

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/jakopako/pinpoint/internal/dom"
)

// ErrInvalidInput is returned when the input is missing or not an element.
var ErrInvalidInput = errors.New("input is missing or not an element")

// An Evaluator evaluates path queries against a tree scope. The generator
// never interprets evaluation errors; a failing query simply makes the
// candidate non-unique.
type Evaluator interface {
	Evaluate(query string, scope *dom.Node) ([]*dom.Node, error)
}

// Options tune the generation pipeline.
type Options struct {
	// MaxDepth caps the ancestor strategy's upward walk. Defaults to
	// MaxAncestorDepth.
	MaxDepth int `yaml:"max_depth" env:"PINPOINT_MAX_DEPTH"`
	// Attributes overrides the ordered attribute list of the direct and
	// anchor strategies.
	Attributes []string `yaml:"attributes"`
}

// A Generator produces selectors for elements of a document. It holds no
// per-call state; all entities live and die within one Generate call.
type Generator struct {
	eval Evaluator
	opts Options
}

func NewGenerator(eval Evaluator, opts Options) *Generator {
	if opts.MaxDepth <= 0 {
		opts.MaxDepth = MaxAncestorDepth
	}
	if len(opts.Attributes) == 0 {
		opts.Attributes = directAttrNames
	}
	return &Generator{eval: eval, opts: opts}
}

// Generate returns a selector that resolves to exactly el. When el lives
// inside one or more shadow trees the result is a compound selector: the
// outer document selector followed by one deterministic absolute path per
// shadow boundary, outermost to innermost, joined with "|".
func (g *Generator) Generate(el *dom.Node) (string, error) {
	sel, _, err := g.GenerateScored(el)
	return sel, err
}

// GenerateScored additionally returns the score of the document-level
// segment's winning candidate. The shadow segments are positional paths
// without a strategy of their own, so the document segment's score is the
// score of the compound selector as a whole.
func (g *Generator) GenerateScored(el *dom.Node) (string, int, error) {
	if el == nil || el.Type != dom.ElementNode {
		return "", 0, ErrInvalidInput
	}

	// walk shadow-host ancestry outward until the true document-level
	// anchor is found
	var shadowSegs []string
	cur := el
	for {
		scope := dom.ScopeRoot(cur)
		if scope.Host == nil {
			cands := g.rankedCandidates(cur, scope)
			best := cands[0]
			slog.Debug("selector generated",
				slog.String("selector", best.Selector),
				slog.Int("candidates", len(cands)),
				slog.Int("shadow_segments", len(shadowSegs)))
			return strings.Join(append([]string{best.Selector}, shadowSegs...), CompoundSeparator), best.Score, nil
		}
		shadowSegs = append([]string{shadowPath(cur)}, shadowSegs...)
		cur = scope.Host
	}
}

// Candidates returns the full ranked list of validated candidates for el
// within its own tree scope. The list is never empty: the absolute path
// validates by construction.
func (g *Generator) Candidates(el *dom.Node) ([]Candidate, error) {
	if el == nil || el.Type != dom.ElementNode {
		return nil, ErrInvalidInput
	}
	return g.rankedCandidates(el, dom.ScopeRoot(el)), nil
}

func (g *Generator) rankedCandidates(el, scope *dom.Node) []Candidate {
	c := &scopeCtx{eval: g.eval, scope: scope, attrs: g.opts.Attributes, maxDepth: g.opts.MaxDepth}

	var raw []Candidate
	for _, strat := range strategies {
		raw = append(raw, strat(c, el)...)
	}
	valid := dedupeValidate(c, el, raw)
	rank(valid)

	if len(valid) == 0 {
		// cannot happen for a well-formed tree since the absolute path
		// fully disambiguates position, but the fallback contract says
		// generation never fails
		slog.Warn("no candidate validated, falling back to absolute path")
		valid = []Candidate{{Selector: AbsolutePath(el), Score: ScoreAbsolute}}
	}
	return valid
}

// String implements a compact debug representation used by logs and the
// candidate table.
func (c Candidate) String() string {
	return fmt.Sprintf("%s (score=%d, steps=%d)", c.Selector, c.Score, c.Steps())
}
