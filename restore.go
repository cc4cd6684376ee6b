package lukiwiki

import (
	"fmt"
	"regexp"
)

// Restoration patterns, mirroring the protection order. Plugin payload
// fields match the base64 alphabet only, so a malformed token can never
// swallow surrounding HTML.
var (
	blockPluginToken = regexp.MustCompile(
		`\{\{BLOCK_PLUGIN:(\w+):([A-Za-z0-9+/=]*):([A-Za-z0-9+/=]*):BLOCK_PLUGIN\}\}`)

	inlinePluginToken = regexp.MustCompile(
		`\{\{INLINE_PLUGIN:(\w+):([A-Za-z0-9+/=]*):([A-Za-z0-9+/=]*):INLINE_PLUGIN\}\}`)

	wrappedDecorationToken = regexp.MustCompile(
		`<p>\{\{BLOCK_DECORATION:(.+?):BLOCK_DECORATION\}\}</p>`)

	blockDecorationToken = regexp.MustCompile(
		`\{\{BLOCK_DECORATION:(.+?):BLOCK_DECORATION\}\}`)

	blockquoteToken = regexp.MustCompile(
		`\{\{LUKIWIKI_BLOCKQUOTE:(.+?):LUKIWIKI_BLOCKQUOTE\}\}`)

	// Paragraph wrapper the renderer may add around a block plugin container.
	wrappedPluginDiv = regexp.MustCompile(
		`<p>\s*(<div class="plugin-[^"]+"[^>]*>(?s:.*?)</div>)\s*</p>`)

	// Bare heading open tag, the shape the collaborator contract guarantees.
	headingOpenTag = regexp.MustCompile(`<h([1-6])>`)
)

// Restore consumes the placeholder tokens in rendered HTML and emits the
// final wiki HTML fragments. Token kinds are restored in the mirror of the
// protection order, followed by two renderer-specific fixups: paragraph
// unwrapping around block plugin containers and heading anchor injection.
func (r *conflictResolver) Restore(html string, ids HeadingIDs) string {
	result := blockPluginToken.ReplaceAllStringFunc(html, func(m string) string {
		caps := blockPluginToken.FindStringSubmatch(m)
		return formatPluginContainer("div", caps[1], decodePayload(caps[2]), decodePayload(caps[3]))
	})

	result = inlinePluginToken.ReplaceAllStringFunc(result, func(m string) string {
		caps := inlinePluginToken.FindStringSubmatch(m)
		return formatPluginContainer("span", caps[1], decodePayload(caps[2]), decodePayload(caps[3]))
	})

	// The renderer wraps a lone decoration line in a paragraph of its own;
	// consume that wrapper together with the token. Tokens in any other
	// position are restored bare.
	result = wrappedDecorationToken.ReplaceAllStringFunc(result, func(m string) string {
		caps := wrappedDecorationToken.FindStringSubmatch(m)
		return r.restoreDecoration(caps[1])
	})
	result = blockDecorationToken.ReplaceAllStringFunc(result, func(m string) string {
		caps := blockDecorationToken.FindStringSubmatch(m)
		return r.restoreDecoration(caps[1])
	})

	result = blockquoteToken.ReplaceAllString(result,
		`<blockquote class="lukiwiki">$1</blockquote>`)

	result = wrappedPluginDiv.ReplaceAllString(result, "$1")

	return injectHeadingAnchors(result, ids)
}

// restoreDecoration runs the decoration engine on a protected line,
// failing open to a plain paragraph when the payload no longer parses.
func (r *conflictResolver) restoreDecoration(payload string) string {
	if decorated, ok := r.deco.decorateLine(payload); ok {
		return decorated
	}
	return "<p>" + payload + "</p>"
}

// injectHeadingAnchors prefixes every heading with a named anchor. Headings
// are counted across all levels in document order; headings without a
// recorded id get the positional fallback "heading-N".
func injectHeadingAnchors(html string, ids HeadingIDs) string {
	ordinal := 0
	return headingOpenTag.ReplaceAllStringFunc(html, func(m string) string {
		ordinal++
		id, ok := ids[ordinal]
		if !ok {
			id = fmt.Sprintf("heading-%d", ordinal)
		}
		return fmt.Sprintf(`%s<a href="#%s" aria-hidden="true" class="anchor" id="%s"></a>`, m, id, id)
	})
}
