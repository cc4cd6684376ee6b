package lukiwiki

import (
	"bytes"
	"context"
	"fmt"

	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

// Renderer abstracts the collaborating Markdown renderer invoked between
// the protect and restore halves of the pipeline. Implementations must not
// alter content inside {{...}} placeholder spans, must wrap bare paragraphs
// in <p>, and must render ATX headings as bare <hN>title</hN> elements;
// heading anchor injection depends on that exact shape.
type Renderer interface {
	Render(ctx context.Context, markdown string) (string, error)
}

// goldmarkRenderer renders Markdown to an HTML fragment using goldmark.
type goldmarkRenderer struct {
	md goldmark.Markdown
}

// NewGoldmarkRenderer creates the default renderer with GFM extensions and
// chroma syntax highlighting. A non-empty style selects a chroma style and
// emits highlighted code with inline styles; the empty string keeps
// class-based output for an external stylesheet. Auto heading IDs are
// deliberately not enabled: the restorer injects its own anchors and
// assumes attribute-free headings.
func NewGoldmarkRenderer(style string) Renderer {
	highlightOpts := []highlighting.Option{
		highlighting.WithFormatOptions(
			chromahtml.WithClasses(style == ""), // CSS classes unless a style is requested
		),
	}
	if style != "" {
		highlightOpts = append(highlightOpts, highlighting.WithStyle(style))
	}

	md := goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,      // Tables, strikethrough, autolinks, task lists
			extension.Footnote, // [^1] footnotes
			highlighting.NewHighlighting(highlightOpts...),
		),
		goldmark.WithRendererOptions(
			html.WithXHTML(), // Self-closing tags
		),
	)
	return &goldmarkRenderer{md: md}
}

// newGoldmarkRenderer is the class-based default used by New.
func newGoldmarkRenderer() Renderer {
	return NewGoldmarkRenderer("")
}

// Render converts Markdown to an HTML fragment. Supports context
// cancellation via goroutine + select since goldmark doesn't natively
// support context.
func (r *goldmarkRenderer) Render(ctx context.Context, markdown string) (string, error) {
	// Fast path: check context before starting
	if err := ctx.Err(); err != nil {
		return "", err
	}

	type result struct {
		html string
		err  error
	}

	done := make(chan result, 1)

	go func() {
		var buf bytes.Buffer
		if err := r.md.Convert([]byte(markdown), &buf); err != nil {
			done <- result{err: fmt.Errorf("%w: %v", ErrRender, err)}
			return
		}
		done <- result{html: buf.String()}
	}()

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case res := <-done:
		return res.html, res.err
	}
}
