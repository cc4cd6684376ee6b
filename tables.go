package lukiwiki

import (
	"regexp"
	"strings"
)

// Bare numeric size values get a rem unit appended.
var numericValue = regexp.MustCompile(`^[0-9]+(?:\.[0-9]+)?$`)

// Tables holds the decoration-to-CSS mapping tables. A Tables value is
// constructed once and never mutated afterwards; the same instance may be
// shared by any number of pipelines.
type Tables struct {
	// Align maps horizontal alignment keywords to classes.
	Align map[string]string
	// VAlign maps vertical alignment keywords to classes.
	VAlign map[string]string
	// Sizes maps canonical rem values to discrete font-size classes.
	Sizes map[string]string
	// Palette is the set of color names that map to text-*/bg-* classes.
	// Names may be suffixed with -subtle or -emphasis in markup.
	Palette map[string]bool
	// TruncateClass is emitted for the TRUNCATE prefix.
	TruncateClass string
}

// DefaultTables returns the Bootstrap-oriented mapping tables.
func DefaultTables() *Tables {
	return &Tables{
		Align: map[string]string{
			"RIGHT":   "text-end",
			"CENTER":  "text-center",
			"LEFT":    "text-start",
			"JUSTIFY": "text-justify",
		},
		VAlign: map[string]string{
			"BASELINE":    "align-baseline",
			"TOP":         "align-top",
			"MIDDLE":      "align-middle",
			"BOTTOM":      "align-bottom",
			"TEXT-TOP":    "align-text-top",
			"TEXT-BOTTOM": "align-text-bottom",
		},
		Sizes: map[string]string{
			"2.5":  "fs-1",
			"2":    "fs-2",
			"1.75": "fs-3",
			"1.5":  "fs-4",
			"1.25": "fs-5",
			"1":    "fs-6",
		},
		Palette: map[string]bool{
			"primary":   true,
			"secondary": true,
			"success":   true,
			"danger":    true,
			"warning":   true,
			"info":      true,
			"light":     true,
			"dark":      true,
			"body":      true,
		},
		TruncateClass: "text-truncate",
	}
}

// sizeAttr resolves a SIZE value to either a class or a font-size style.
// Canonical rem values map to discrete classes; any other numeric value
// becomes an inline style with rem appended; values carrying their own unit
// pass through as-is.
func (t *Tables) sizeAttr(value string) (class, style string) {
	value = strings.TrimSpace(value)
	if value == "" {
		return "", ""
	}
	if c, ok := t.Sizes[value]; ok {
		return c, ""
	}
	if numericValue.MatchString(value) {
		return "", "font-size: " + value + "rem"
	}
	return "", "font-size: " + value
}

// colorAttr resolves a color component to either a palette class or an
// inline style. prefix is "text"/"color" for foreground, "bg"/
// "background-color" for background. The literal value inherit and the
// empty string contribute nothing.
func (t *Tables) colorAttr(value, classPrefix, styleProp string) (class, style string) {
	value = strings.TrimSpace(value)
	if value == "" || value == "inherit" {
		return "", ""
	}
	base := strings.TrimSuffix(strings.TrimSuffix(value, "-subtle"), "-emphasis")
	if t.Palette[base] {
		return classPrefix + "-" + value, ""
	}
	return "", styleProp + ": " + value
}

// foregroundAttr resolves a COLOR foreground component.
func (t *Tables) foregroundAttr(value string) (class, style string) {
	return t.colorAttr(value, "text", "color")
}

// backgroundAttr resolves a COLOR background component.
func (t *Tables) backgroundAttr(value string) (class, style string) {
	return t.colorAttr(value, "bg", "background-color")
}
