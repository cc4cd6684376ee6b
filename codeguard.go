package lukiwiki

import (
	"regexp"
	"strconv"
)

// Rendered code elements and the comment markers that stand in for them.
// The marker is an HTML comment, a form none of the decoration, emphasis,
// or plugin patterns can match, so markers are never re-matched or nested.
var (
	renderedCodeBlock  = regexp.MustCompile(`(?s)<pre[^>]*><code[^>]*>.*?</code></pre>`)
	renderedInlineCode = regexp.MustCompile(`<code[^>]*>[^<]*</code>`)
	codeMarker         = regexp.MustCompile(`<!--(?:CODE_BLOCK|INLINE_CODE)_([0-9]+)-->`)
)

// codeGuard shields already-rendered code from the post-rendering rewrite
// stages by swapping each code element for an indexed comment marker.
type codeGuard struct{}

// guard replaces rendered code blocks and inline code with markers and
// returns the replaced spans for later restoration.
func (codeGuard) guard(html string) (string, []string) {
	var spans []string

	result := renderedCodeBlock.ReplaceAllStringFunc(html, func(m string) string {
		spans = append(spans, m)
		return "<!--CODE_BLOCK_" + strconv.Itoa(len(spans)-1) + "-->"
	})

	result = renderedInlineCode.ReplaceAllStringFunc(result, func(m string) string {
		spans = append(spans, m)
		return "<!--INLINE_CODE_" + strconv.Itoa(len(spans)-1) + "-->"
	})

	return result, spans
}

// unguard restores the guarded spans by direct index lookup. Markers with no
// matching span are dropped rather than leaked.
func (codeGuard) unguard(html string, spans []string) string {
	if len(spans) == 0 {
		return html
	}
	return codeMarker.ReplaceAllStringFunc(html, func(m string) string {
		caps := codeMarker.FindStringSubmatch(m)
		index, err := strconv.Atoi(caps[1])
		if err != nil || index < 0 || index >= len(spans) {
			return ""
		}
		return spans[index]
	})
}
