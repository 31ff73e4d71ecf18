package selector

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"github.com/jakopako/pinpoint/internal/dom"
)

// Boundary conditions of the stability heuristics. The classifiers err
// toward rejecting anything that looks machine-generated or volatile.
const (
	hashRunLen       = 10 // minimum hex run length considered hash-shaped
	minifiedTokenLen = 10 // minimum all-alnum token length considered minified
	shortTokenLen    = 3  // maximum length of a framework-generated id token
	trailingDigitLen = 5  // ids ending in this many digits are volatile
	dynamicSuffixMax = 4  // _<1-4 digits> suffixes are volatile

	minTextLen  = 2
	maxTextLen  = 40
	maxLabelLen = 30
)

var (
	reHexRun           = regexp.MustCompile(fmt.Sprintf(`[0-9a-fA-F]{%d,}`, hashRunLen))
	reAlnumToken       = regexp.MustCompile(fmt.Sprintf(`^[A-Za-z0-9]{%d,}$`, minifiedTokenLen))
	reUnderscoreTokens = regexp.MustCompile(fmt.Sprintf(`_[A-Za-z0-9]{1,%d}_[A-Za-z0-9]{1,%d}_`, shortTokenLen, shortTokenLen))
	reTrailingDigits   = regexp.MustCompile(fmt.Sprintf(`[0-9]{%d,}$`, trailingDigitLen))
	reFrameworkPrefix  = regexp.MustCompile(`^(ember|react-|vue-)[0-9]*`)
	reDynamicSuffix    = regexp.MustCompile(fmt.Sprintf(`_[0-9]{1,%d}$`, dynamicSuffixMax))

	reCSSInJS = regexp.MustCompile(`^(css|sc)-[A-Za-z0-9]+$`)

	reLettersSpaces = regexp.MustCompile(`^[A-Za-z ]+$`)
	reNameShaped    = regexp.MustCompile(`^[A-Z][a-z]+( [A-Z][a-z]+){1,2}$`)
	reLowercaseWord = regexp.MustCompile(`^[a-z]+$`)
)

// idRejectRules are applied in order; an identifier matching any of them is
// considered unstable.
var idRejectRules = []*regexp.Regexp{
	reHexRun,           // hash/uuid shaped hex run
	reUnderscoreTokens, // framework token pattern, eg u_0_9_QM
	reTrailingDigits,   // counter suffix
	reFrameworkPrefix,  // ember/react-/vue- generated ids
	reDynamicSuffix,    // _<digits> dynamic suffix
}

// IsStableID reports whether an identifier (or identifier-like attribute
// value) is unlikely to change between page loads.
func IsStableID(id string) bool {
	if id == "" {
		return false
	}
	if reAlnumToken.MatchString(id) && strings.ContainsFunc(id, unicode.IsDigit) {
		return false
	}
	for _, r := range idRejectRules {
		if r.MatchString(id) {
			return false
		}
	}
	return true
}

// IsStableClass reports whether a single class token is usable as a selector
// anchor. Digit-bearing classes are disqualified entirely; this is stricter
// than the id heuristic on purpose.
func IsStableClass(class string) bool {
	if class == "" {
		return false
	}
	if strings.ContainsAny(class, ":[") {
		return false
	}
	if reCSSInJS.MatchString(class) {
		return false
	}
	if len(class) >= minifiedTokenLen && reAlnumToken.MatchString(class) {
		return false
	}
	if strings.ContainsFunc(class, unicode.IsDigit) {
		return false
	}
	return true
}

// HasStableText reports whether a text value can anchor a selector. Person
// names (Two Capitalized Words) and single lowercase words (usernames,
// handles) are rejected since they vary across templated pages.
func HasStableText(text string) bool {
	t := dom.NormalizeSpace(text)
	if len(t) < minTextLen || len(t) > maxTextLen {
		return false
	}
	if !reLettersSpaces.MatchString(t) {
		return false
	}
	if reNameShaped.MatchString(t) {
		return false
	}
	if reLowercaseWord.MatchString(t) {
		return false
	}
	return true
}

// stableLabelText normalizes a candidate label and reports whether it can
// anchor a neighbouring element. Labels commonly end in a colon ("Price:");
// the colon is ignored for the stability check but kept in the selector.
func stableLabelText(text string) (string, bool) {
	t := dom.NormalizeSpace(text)
	if len(t) < minTextLen || len(t) > maxLabelLen {
		return "", false
	}
	if !HasStableText(strings.TrimSuffix(t, ":")) {
		return "", false
	}
	return t, true
}
