package lukiwiki

import (
	"regexp"
	"strings"
)

// Block decoration prefixes, each anchored at the start of a line. The
// prefix chain is consumed in a fixed order: size, color, truncate,
// vertical alignment, horizontal alignment. The horizontal alignment prefix
// is stripped last because only it is guaranteed to be followed by free-form
// content. Changing this order changes the observable class order in the
// output, so it must stay in sync with the compound-prefix fixtures.
var (
	sizePrefix     = regexp.MustCompile(`^SIZE\(([^)]*)\):\s*`)
	colorPrefix    = regexp.MustCompile(`^COLOR\(([^,)]*)(?:,([^)]*))?\):\s*`)
	truncatePrefix = regexp.MustCompile(`^TRUNCATE:\s*`)
	valignPrefix   = regexp.MustCompile(`^(BASELINE|TEXT-TOP|TEXT-BOTTOM|TOP|MIDDLE|BOTTOM):\s*`)
	halignPrefix   = regexp.MustCompile(`^(RIGHT|CENTER|LEFT|JUSTIFY):\s*`)
)

// decorationRecord captures at most one of each decoration extracted from a
// single line's prefix chain.
type decorationRecord struct {
	size     string
	fg       string
	bg       string
	truncate bool
	valign   string
	halign   string
}

// blockDecorator maps line-prefix decoration syntax to paragraph attributes.
type blockDecorator struct {
	tables *Tables
}

func newBlockDecorator(tables *Tables) *blockDecorator {
	return &blockDecorator{tables: tables}
}

// decorateLine parses the prefix chain of a single line and renders a
// decorated paragraph. Returns ok=false when the line carries no decoration
// prefix.
func (d *blockDecorator) decorateLine(line string) (string, bool) {
	rec, content, ok := parsePrefixChain(line)
	if !ok {
		return "", false
	}
	return d.renderParagraph(rec, content), true
}

// parsePrefixChain strips recognized prefixes from the start of the line in
// the fixed precedence order, recording at most one of each.
func parsePrefixChain(line string) (decorationRecord, string, bool) {
	var rec decorationRecord
	rest := line
	matched := false

	if m := sizePrefix.FindStringSubmatch(rest); m != nil {
		rec.size = m[1]
		rest = rest[len(m[0]):]
		matched = true
	}
	if m := colorPrefix.FindStringSubmatch(rest); m != nil {
		rec.fg = m[1]
		rec.bg = m[2]
		rest = rest[len(m[0]):]
		matched = true
	}
	if m := truncatePrefix.FindString(rest); m != "" {
		rec.truncate = true
		rest = rest[len(m):]
		matched = true
	}
	if m := valignPrefix.FindStringSubmatch(rest); m != nil {
		rec.valign = m[1]
		rest = rest[len(m[0]):]
		matched = true
	}
	if m := halignPrefix.FindStringSubmatch(rest); m != nil {
		rec.halign = m[1]
		rest = rest[len(m[0]):]
		matched = true
	}

	return rec, rest, matched
}

// renderParagraph emits a paragraph carrying the record's classes and
// styles. Join order for both attributes: alignment, truncate, vertical
// alignment, size, foreground, background.
func (d *blockDecorator) renderParagraph(rec decorationRecord, content string) string {
	var classes, styles []string

	appendAttr := func(class, style string) {
		if class != "" {
			classes = append(classes, class)
		}
		if style != "" {
			styles = append(styles, style)
		}
	}

	if rec.halign != "" {
		appendAttr(d.tables.Align[rec.halign], "")
	}
	if rec.truncate {
		appendAttr(d.tables.TruncateClass, "")
	}
	if rec.valign != "" {
		appendAttr(d.tables.VAlign[rec.valign], "")
	}
	if rec.size != "" {
		appendAttr(d.tables.sizeAttr(rec.size))
	}
	appendAttr(d.tables.foregroundAttr(rec.fg))
	appendAttr(d.tables.backgroundAttr(rec.bg))

	var b strings.Builder
	b.WriteString("<p")
	if len(classes) > 0 {
		b.WriteString(` class="`)
		b.WriteString(strings.Join(classes, " "))
		b.WriteString(`"`)
	}
	if len(styles) > 0 {
		b.WriteString(` style="`)
		b.WriteString(strings.Join(styles, "; "))
		b.WriteString(`"`)
	}
	b.WriteString(">")
	b.WriteString(content)
	b.WriteString("</p>")
	return b.String()
}

// apply decorates any remaining bare prefix lines in the rendered HTML.
// Lines the protector already wrapped arrive here through the restorer
// instead, so this pass only catches lines the renderer left untouched.
func (d *blockDecorator) apply(html string) string {
	lines := strings.Split(html, "\n")
	changed := false
	for i, line := range lines {
		if decorated, ok := d.decorateLine(line); ok {
			lines[i] = decorated
			changed = true
		}
	}
	if !changed {
		return html
	}
	return strings.Join(lines, "\n")
}
