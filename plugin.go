package lukiwiki

import (
	"encoding/base64"
	"strings"
)

// attributeEscaper escapes a value for a double-quoted HTML attribute.
var attributeEscaper = strings.NewReplacer(
	"&", "&amp;",
	`"`, "&quot;",
	"<", "&lt;",
	">", "&gt;",
)

// contentEscaper neutralizes angle brackets only. Ampersands are preserved
// verbatim so nested &plugin(...){...}; syntax inside the content can be
// reparsed by a downstream executor.
var contentEscaper = strings.NewReplacer(
	"<", "&lt;",
	">", "&gt;",
)

// formatPluginContainer renders a plugin invocation as an inert container
// element for a downstream executor: a div for block forms, a span for the
// inline form. The function name is never validated against a registry;
// unknown names format identically.
func formatPluginContainer(tag, name, args, content string) string {
	var b strings.Builder
	b.WriteString("<")
	b.WriteString(tag)
	b.WriteString(` class="plugin-`)
	b.WriteString(name)
	b.WriteString(`" data-args="`)
	b.WriteString(attributeEscaper.Replace(args))
	b.WriteString(`">`)
	b.WriteString(contentEscaper.Replace(content))
	b.WriteString("</")
	b.WriteString(tag)
	b.WriteString(">")
	return b.String()
}

// decodePayload decodes a base64 token payload. Malformed payloads fall back
// to the raw encoded string instead of failing the document.
func decodePayload(encoded string) string {
	decoded, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return encoded
	}
	return string(decoded)
}
