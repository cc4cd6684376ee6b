package lukiwiki

// HeadingIDs maps the 1-based document-wide heading ordinal to the
// identifier requested with a {#id} suffix. Headings without an explicit id
// have no entry; the restorer falls back to "heading-N".
type HeadingIDs map[int]string

// Result holds the output of a pipeline run.
type Result struct {
	HTML     string   // Final HTML fragment
	Warnings []string // Advisory diagnostics, never fatal
}

// defaultMaxInputSize bounds a single document to 1 MiB.
const defaultMaxInputSize = 1 << 20

// pipelineConfig holds internal configuration for Pipeline.
type pipelineConfig struct {
	maxInputSize int
	diagnostics  bool
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithRenderer replaces the default goldmark renderer with a custom
// collaborator. The renderer must leave {{...}} placeholder spans untouched
// and render ATX headings as bare <hN>title</hN> elements.
func WithRenderer(r Renderer) Option {
	if r == nil {
		panic("lukiwiki: WithRenderer renderer must not be nil")
	}
	return func(p *Pipeline) {
		p.renderer = r
	}
}

// WithTables replaces the default decoration mapping tables.
// Panics if t is nil (programmer error).
func WithTables(t *Tables) Option {
	if t == nil {
		panic("lukiwiki: WithTables tables must not be nil")
	}
	return func(p *Pipeline) {
		p.tables = t
	}
}

// WithMaxInputSize sets the per-document input size cap in bytes.
// Panics if n <= 0 (programmer error, similar to time.NewTicker).
func WithMaxInputSize(n int) Option {
	if n <= 0 {
		panic("lukiwiki: WithMaxInputSize size must be positive")
	}
	return func(p *Pipeline) {
		p.cfg.maxInputSize = n
	}
}

// WithoutDiagnostics disables the advisory syntax diagnostics.
func WithoutDiagnostics() Option {
	return func(p *Pipeline) {
		p.cfg.diagnostics = false
	}
}
