package lukiwiki

import (
	"regexp"
	"strings"
)

// Markdown ***bold italic*** emphasis, which reads much like the wiki
// '''italic''' marker.
var tripleStarEmphasis = regexp.MustCompile(`\*\*\*([^*]+)\*\*\*`)

// Detect inspects raw input for patterns likely to collide between the wiki
// and Markdown grammars. It is pure and independent of the pipeline: the
// returned warnings are advisory and never gate processing.
func Detect(input string) []string {
	var warnings []string

	if tripleStarEmphasis.MatchString(input) && strings.Contains(input, "'''") {
		warnings = append(warnings,
			"Detected both ***text*** (Markdown) and '''text''' (LukiWiki). "+
				"Consider using **text** for Markdown bold-italic.")
	}

	if strings.Contains(input, "COLOR(") && strings.Contains(input, "\n:") {
		warnings = append(warnings,
			"Detected COLOR() syntax near a Markdown definition list. "+
				"Ensure proper spacing to avoid ambiguity.")
	}

	return warnings
}
