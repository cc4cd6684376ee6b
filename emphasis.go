package lukiwiki

import "regexp"

// Wiki emphasis markers. The triple form must rewrite first so the double
// form cannot match inside it.
var (
	tripleQuoteEmphasis = regexp.MustCompile(`'''([^']+)'''`)
	doubleQuoteEmphasis = regexp.MustCompile(`''([^']+)''`)
)

// emphasisRewriter converts wiki-style ''bold'' and '''italic''' markers.
// It runs before the decoration engines so their literal line prefixes are
// never disturbed.
type emphasisRewriter struct{}

// apply rewrites wiki emphasis markers to their HTML elements.
func (emphasisRewriter) apply(html string) string {
	result := tripleQuoteEmphasis.ReplaceAllString(html, "<i>$1</i>")
	return doubleQuoteEmphasis.ReplaceAllString(result, "<b>$1</b>")
}
