package lukiwiki

import (
	"regexp"
	"strings"
)

// Inline decoration calls, each terminated by a semicolon that is consumed
// with the call. The sigil matches both & and &amp; because these calls are
// rewritten on rendered output, where the renderer has already escaped bare
// ampersands.
var (
	inlineColor = regexp.MustCompile(`&(?:amp;)?color\(([^,)]*)(?:,([^)]*))?\)\{([^{}]*)\};`)
	inlineSize  = regexp.MustCompile(`&(?:amp;)?size\(([^)]+)\)\{([^{}]*)\};`)
	inlineSup   = regexp.MustCompile(`&(?:amp;)?sup\(([^();]+)\);`)
	inlineSub   = regexp.MustCompile(`&(?:amp;)?sub\(([^();]+)\);`)
	inlineLang  = regexp.MustCompile(`&(?:amp;)?lang\(([^)]+)\)\{([^{}]*)\};`)
	inlineAbbr  = regexp.MustCompile(`&(?:amp;)?abbr\(([^)]+)\)\{([^{}]*)\};`)
)

// inlineDecorator rewrites inline decoration calls to their HTML
// equivalents. It runs on rendered output, after plugin restoration and
// inside the code-section guard, so code content never reaches it.
type inlineDecorator struct {
	tables *Tables
}

func newInlineDecorator(tables *Tables) *inlineDecorator {
	return &inlineDecorator{tables: tables}
}

// apply rewrites every recognized inline decoration call in the content.
func (d *inlineDecorator) apply(html string) string {
	result := inlineColor.ReplaceAllStringFunc(html, func(m string) string {
		caps := inlineColor.FindStringSubmatch(m)
		return d.colorSpan(caps[1], caps[2], caps[3])
	})

	result = inlineSize.ReplaceAllStringFunc(result, func(m string) string {
		caps := inlineSize.FindStringSubmatch(m)
		return d.sizeSpan(caps[1], caps[2])
	})

	result = inlineSup.ReplaceAllString(result, "<sup>$1</sup>")
	result = inlineSub.ReplaceAllString(result, "<sub>$1</sub>")
	result = inlineLang.ReplaceAllString(result, `<span lang="$1">$2</span>`)

	result = inlineAbbr.ReplaceAllStringFunc(result, func(m string) string {
		caps := inlineAbbr.FindStringSubmatch(m)
		return `<abbr title="` + attributeEscaper.Replace(caps[2]) + `">` + caps[1] + "</abbr>"
	})

	return result
}

// colorSpan renders &color(fg,bg){text}; following the same inherit/empty
// suppression rule as block decorations: when both components drop out the
// text passes through bare.
func (d *inlineDecorator) colorSpan(fg, bg, text string) string {
	var classes, styles []string
	if c, s := d.tables.foregroundAttr(fg); c != "" {
		classes = append(classes, c)
	} else if s != "" {
		styles = append(styles, s)
	}
	if c, s := d.tables.backgroundAttr(bg); c != "" {
		classes = append(classes, c)
	} else if s != "" {
		styles = append(styles, s)
	}
	return spanWith(classes, styles, text)
}

// sizeSpan renders &size(value){text};.
func (d *inlineDecorator) sizeSpan(value, text string) string {
	var classes, styles []string
	if c, s := d.tables.sizeAttr(value); c != "" {
		classes = append(classes, c)
	} else if s != "" {
		styles = append(styles, s)
	}
	return spanWith(classes, styles, text)
}

// spanWith wraps text in a span carrying the given attributes, or returns
// the text unchanged when there are none.
func spanWith(classes, styles []string, text string) string {
	if len(classes) == 0 && len(styles) == 0 {
		return text
	}
	var b strings.Builder
	b.WriteString("<span")
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
	b.WriteString(text)
	b.WriteString("</span>")
	return b.String()
}
