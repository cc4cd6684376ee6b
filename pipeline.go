package lukiwiki

import (
	"context"
	"fmt"
	"regexp"
)

// Compile-time interface implementation check.
var _ Renderer = (*goldmarkRenderer)(nil)

// Line ending normalization.
var crlfOrCR = regexp.MustCompile(`\r\n?`)

// Pipeline converts LukiWiki-flavored Markdown documents to HTML fragments.
// Create with New, convert with Convert. A Pipeline holds no per-document
// state and is safe for concurrent use.
type Pipeline struct {
	cfg      pipelineConfig
	tables   *Tables
	renderer Renderer
	resolver *conflictResolver
	emphasis emphasisRewriter
	blocks   *blockDecorator
	inlines  *inlineDecorator
	guard    codeGuard
}

// New creates a Pipeline with default configuration: the goldmark renderer
// and the Bootstrap-oriented decoration tables.
func New(opts ...Option) *Pipeline {
	p := &Pipeline{
		cfg: pipelineConfig{
			maxInputSize: defaultMaxInputSize,
			diagnostics:  true,
		},
		tables: DefaultTables(),
	}

	for _, opt := range opts {
		opt(p)
	}

	if p.renderer == nil {
		p.renderer = newGoldmarkRenderer()
	}

	p.blocks = newBlockDecorator(p.tables)
	p.inlines = newInlineDecorator(p.tables)
	p.resolver = newConflictResolver(p.blocks)

	return p
}

// Convert runs the full pipeline on a single document and returns the final
// HTML fragment plus any diagnostics warnings. The context is used for
// cancellation of the rendering stage.
func (p *Pipeline) Convert(ctx context.Context, markdown string) (*Result, error) {
	if markdown == "" {
		return nil, ErrEmptyMarkdown
	}
	if len(markdown) > p.cfg.maxInputSize {
		return nil, fmt.Errorf("%w: %d bytes (max %d)", ErrInputTooLarge, len(markdown), p.cfg.maxInputSize)
	}

	markdown = crlfOrCR.ReplaceAllString(markdown, "\n")

	var warnings []string
	if p.cfg.diagnostics {
		warnings = Detect(markdown)
	}

	protected, ids := p.resolver.Protect(markdown)

	rendered, err := p.renderer.Render(ctx, protected)
	if err != nil {
		return nil, fmt.Errorf("rendering markdown: %w", err)
	}

	return &Result{
		HTML:     p.postprocess(rendered, ids),
		Warnings: warnings,
	}, nil
}

// Protect exposes the pre-rendering half of the conflict resolver: wiki
// syntax is rewritten into placeholder tokens and heading anchors are
// recorded by ordinal. Use it when driving an external renderer directly.
func (p *Pipeline) Protect(input string) (string, HeadingIDs) {
	return p.resolver.Protect(input)
}

// Restore exposes the post-rendering half: placeholder tokens in the
// rendered HTML are consumed and the remaining wiki rewrites applied. It is
// the counterpart of Protect and includes the code-section guard.
func (p *Pipeline) Restore(html string, ids HeadingIDs) string {
	return p.postprocess(html, ids)
}

// postprocess applies the post-rendering stages in order, with rendered
// code sections swapped out for the duration so no stage can rewrite code
// content.
func (p *Pipeline) postprocess(html string, ids HeadingIDs) string {
	guarded, spans := p.guard.guard(html)

	result := p.resolver.Restore(guarded, ids)
	result = p.emphasis.apply(result)
	result = p.blocks.apply(result)
	result = p.inlines.apply(result)

	return p.guard.unguard(result, spans)
}
