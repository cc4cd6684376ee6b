package lukiwiki

import (
	"encoding/base64"
	"regexp"
	"strconv"
	"strings"
)

// Protection patterns. All payload-carrying plugin fields are base64-encoded
// so the {{ }} : delimiter triad can never appear unescaped inside a token;
// blockquote and decoration payloads are delimiter-free by construction of
// the patterns that produce them.
var (
	// ATX heading line, with optional blockquote markers. Quoted headings
	// still render as <hN>, so they must advance the heading ordinal.
	atxHeading = regexp.MustCompile(`^(?:>\s*)*#{1,6}\s`)

	// Explicit heading anchor: "# Title {#id}".
	headingIDSuffix = regexp.MustCompile(`^((?:>\s*)*#{1,6}\s+.*?)\s*\{#([A-Za-z][\w-]*)\}\s*$`)

	// Setext heading underline. Whether it actually forms a heading depends
	// on the line above it; see isSetextText.
	setextUnderline = regexp.MustCompile(`^(?:=+|-+)\s*$`)

	// Explicit anchor on a setext heading text line.
	setextIDSuffix = regexp.MustCompile(`^(.*?\S)\s*\{#([A-Za-z][\w-]*)\}\s*$`)

	// LukiWiki blockquote: a line that both starts with > and ends with <.
	// A line starting with > without the closing < is a standard Markdown
	// blockquote and is left alone.
	wikiBlockquoteLine = regexp.MustCompile(`^>\s*(.+?)\s*<\s*$`)

	// Any line opening with a block decoration prefix.
	blockDecorationStart = regexp.MustCompile(`^((?:COLOR\([^)]*\)|SIZE\([^)]*\)|TRUNCATE|BASELINE|TEXT-TOP|TEXT-BOTTOM|TOP|MIDDLE|BOTTOM|RIGHT|CENTER|LEFT|JUSTIFY):\s*.+)$`)

	// Inline plugin &name(args){content};. Content may balance exactly one
	// level of nested braces; anything deeper stays unmatched.
	inlinePluginCall = regexp.MustCompile(`&(\w+)\(([^)]*)\)\{((?:[^{}]|\{[^}]*\})*)\};`)

	// Block plugin @name(args){{content}}, non-greedy to the first closing pair.
	blockPluginMulti = regexp.MustCompile(`(?s)@(\w+)\(([^)]*)\)\{\{(.*?)\}\}`)

	// Block plugin @name(args){content}, content up to the first closing
	// brace. Double-brace forms were already consumed by the multi-line pass,
	// so a stray opening brace inside the content is plain content.
	blockPluginSingle = regexp.MustCompile(`@(\w+)\(([^)]*)\)\{([^}]*)\}`)

	// Source-side code regions the protector must not rewrite.
	fencedCodeDelimiter = regexp.MustCompile("^(```|~~~)")
	indentedCodeLine    = regexp.MustCompile(`^(    |\t)`)
	inlineCodeSpan      = regexp.MustCompile("`[^`\n]+`")
)

// reservedInlineNames are the inline decoration functions. They share the
// &name(args){content}; surface with inline plugins but are rewritten by the
// inline decoration engine after rendering, so the protector must not claim
// them.
var reservedInlineNames = map[string]bool{
	"color": true,
	"size":  true,
	"sup":   true,
	"sub":   true,
	"lang":  true,
	"abbr":  true,
}

// conflictResolver rewrites ambiguous wiki syntax into placeholder tokens
// before rendering and consumes them afterwards.
type conflictResolver struct {
	deco *blockDecorator
}

func newConflictResolver(deco *blockDecorator) *conflictResolver {
	return &conflictResolver{deco: deco}
}

// Protect rewrites wiki-specific spans into placeholder tokens that are
// inert with respect to Markdown rewriting, and records explicit heading
// anchors by document ordinal. Fenced, indented, and backtick code spans are
// skipped so their content reaches the renderer untouched. For input
// without wiki syntax Protect is the identity.
func (r *conflictResolver) Protect(input string) (string, HeadingIDs) {
	lines := strings.Split(input, "\n")
	code := classifyCodeLines(lines)
	ids := extractHeadingIDs(lines, code)

	for i, line := range lines {
		if code[i] {
			continue
		}
		if m := wikiBlockquoteLine.FindStringSubmatch(line); m != nil {
			lines[i] = "{{LUKIWIKI_BLOCKQUOTE:" + m[1] + ":LUKIWIKI_BLOCKQUOTE}}"
			continue
		}
		if m := blockDecorationStart.FindStringSubmatch(line); m != nil {
			lines[i] = "{{BLOCK_DECORATION:" + m[1] + ":BLOCK_DECORATION}}"
		}
	}

	// Plugin syntax can span lines, so wrap it over each contiguous run of
	// non-code lines rather than line by line.
	var b strings.Builder
	for start := 0; start < len(lines); {
		end := start
		for end < len(lines) && code[end] == code[start] {
			end++
		}
		run := strings.Join(lines[start:end], "\n")
		if !code[start] {
			run = protectPlugins(run)
		}
		if start > 0 {
			b.WriteString("\n")
		}
		b.WriteString(run)
		start = end
	}

	return b.String(), ids
}

// classifyCodeLines marks lines belonging to fenced or indented code blocks,
// including the fence delimiters themselves.
func classifyCodeLines(lines []string) []bool {
	code := make([]bool, len(lines))
	inFence := false
	for i, line := range lines {
		if fencedCodeDelimiter.MatchString(line) {
			inFence = !inFence
			code[i] = true
			continue
		}
		code[i] = inFence || indentedCodeLine.MatchString(line)
	}
	return code
}

// extractHeadingIDs strips {#id} anchors from heading lines in place and
// records them against the heading's 1-based ordinal. A single counter spans
// all heading levels and must advance for every construct the renderer will
// emit as <hN>: plain and blockquote-quoted ATX headings, and setext
// headings, which the anchor injector counts the same way on the rendered
// side.
func extractHeadingIDs(lines []string, code []bool) HeadingIDs {
	ids := HeadingIDs{}
	ordinal := 0
	for i, line := range lines {
		if code[i] {
			continue
		}
		// A quoted heading that the wiki blockquote tokenizer will claim
		// never reaches the renderer as a heading.
		if atxHeading.MatchString(line) && !wikiBlockquoteLine.MatchString(line) {
			ordinal++
			if m := headingIDSuffix.FindStringSubmatch(line); m != nil {
				ids[ordinal] = m[2]
				lines[i] = m[1]
			}
			continue
		}
		if setextUnderline.MatchString(line) && isSetextText(lines, code, i-1) {
			ordinal++
			if m := setextIDSuffix.FindStringSubmatch(lines[i-1]); m != nil {
				ids[ordinal] = m[2]
				lines[i-1] = m[1]
			}
		}
	}
	return ids
}

// isSetextText reports whether the line above an underline serves as setext
// heading text: a plain paragraph line, not code, not blank (that makes the
// underline a thematic break or a list bullet), not a heading or underline
// itself, and not part of a blockquote.
func isSetextText(lines []string, code []bool, i int) bool {
	if i < 0 || code[i] {
		return false
	}
	line := lines[i]
	if strings.TrimSpace(line) == "" || strings.HasPrefix(line, ">") {
		return false
	}
	return !atxHeading.MatchString(line) && !setextUnderline.MatchString(line)
}

// protectPlugins wraps plugin invocations in one non-code text run. Backtick
// code spans are masked for the duration so plugin syntax inside them stays
// literal.
func protectPlugins(text string) string {
	masked, spans := maskInlineCode(text)

	masked = inlinePluginCall.ReplaceAllStringFunc(masked, func(m string) string {
		caps := inlinePluginCall.FindStringSubmatch(m)
		if reservedInlineNames[caps[1]] {
			return m
		}
		return pluginToken("INLINE_PLUGIN", caps[1], caps[2], caps[3])
	})

	masked = blockPluginMulti.ReplaceAllStringFunc(masked, func(m string) string {
		caps := blockPluginMulti.FindStringSubmatch(m)
		return pluginToken("BLOCK_PLUGIN", caps[1], caps[2], caps[3])
	})

	masked = blockPluginSingle.ReplaceAllStringFunc(masked, func(m string) string {
		caps := blockPluginSingle.FindStringSubmatch(m)
		return pluginToken("BLOCK_PLUGIN", caps[1], caps[2], caps[3])
	})

	return unmaskInlineCode(masked, spans)
}

// maskInlineCode swaps backtick spans for NUL-delimited index markers. The
// markers exist only inside Protect, never in its output.
func maskInlineCode(text string) (string, []string) {
	var spans []string
	masked := inlineCodeSpan.ReplaceAllStringFunc(text, func(m string) string {
		spans = append(spans, m)
		return "\x00" + strconv.Itoa(len(spans)-1) + "\x00"
	})
	return masked, spans
}

var inlineCodeMarker = regexp.MustCompile("\x00([0-9]+)\x00")

// unmaskInlineCode restores masked backtick spans by index.
func unmaskInlineCode(text string, spans []string) string {
	if len(spans) == 0 {
		return text
	}
	return inlineCodeMarker.ReplaceAllStringFunc(text, func(m string) string {
		caps := inlineCodeMarker.FindStringSubmatch(m)
		index, err := strconv.Atoi(caps[1])
		if err != nil || index >= len(spans) {
			return m
		}
		return spans[index]
	})
}

// pluginToken builds a placeholder token with base64 payload fields.
func pluginToken(kind, name, args, content string) string {
	return "{{" + kind + ":" + name + ":" +
		base64.StdEncoding.EncodeToString([]byte(args)) + ":" +
		base64.StdEncoding.EncodeToString([]byte(content)) + ":" + kind + "}}"
}
