package selector

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/jakopako/pinpoint/internal/dom"
)

var (
	// ErrNotFound is returned when a selector matches nothing.
	ErrNotFound = errors.New("selector matched no element")
	// ErrShadowUnavailable is returned when a shadow segment is required
	// but the current element exposes no accessible shadow root.
	ErrShadowUnavailable = errors.New("no accessible shadow root")
)

var reShadowStep = regexp.MustCompile(`^([A-Za-z][A-Za-z0-9-]*)(?:\[([0-9]+)\])?$`)

// Resolve evaluates a possibly compound selector back to an element. The
// first segment is evaluated against the document; every further segment
// requires the current element to host an open shadow root and is either
// walked by deterministic tag/index steps (segment starts with '/') or
// evaluated as a relative path query with the shadow root as context.
func Resolve(eval Evaluator, doc *dom.Document, compound string) (*dom.Node, error) {
	segs := strings.Split(compound, CompoundSeparator)

	ms, err := eval.Evaluate(segs[0], doc.Root())
	if err != nil {
		return nil, fmt.Errorf("resolving %q: %w", segs[0], err)
	}
	if len(ms) == 0 {
		return nil, ErrNotFound
	}
	cur := ms[0]

	for _, seg := range segs[1:] {
		if cur.Shadow == nil || cur.Shadow.Closed {
			return nil, ErrShadowUnavailable
		}
		scope := cur.Shadow.Root
		if strings.HasPrefix(seg, "/") {
			cur, err = walkShadowSteps(scope, seg)
			if err != nil {
				return nil, err
			}
			continue
		}
		ms, err := eval.Evaluate(seg, scope)
		if err != nil {
			return nil, fmt.Errorf("resolving shadow segment %q: %w", seg, err)
		}
		if len(ms) == 0 {
			return nil, ErrNotFound
		}
		cur = ms[0]
	}
	return cur, nil
}

// walkShadowSteps follows a deterministic /tag[index]/... path from the
// shadow scope node. Steps match on local name, so namespaced elements need
// no special node test inside shadow segments.
func walkShadowSteps(scope *dom.Node, path string) (*dom.Node, error) {
	cur := scope
	for _, step := range strings.Split(strings.TrimPrefix(path, "/"), "/") {
		m := reShadowStep.FindStringSubmatch(step)
		if m == nil {
			return nil, fmt.Errorf("malformed shadow step %q: %w", step, ErrNotFound)
		}
		tag, index := m[1], 1
		if m[2] != "" {
			index, _ = strconv.Atoi(m[2])
		}
		var next *dom.Node
		i := 0
		for c := cur.FirstChild; c != nil; c = c.NextSibling {
			if c.Type == dom.ElementNode && c.Data == tag {
				i++
				if i == index {
					next = c
					break
				}
			}
		}
		if next == nil {
			return nil, ErrNotFound
		}
		cur = next
	}
	return cur, nil
}
