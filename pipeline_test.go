package lukiwiki

import (
	"context"
	"errors"
	"strings"
	"testing"
)

// nopRenderer passes protected text through unchanged, isolating the
// protect/restore halves from Markdown rewriting.
type nopRenderer struct{}

func (nopRenderer) Render(_ context.Context, markdown string) (string, error) {
	return markdown, nil
}

func TestPipeline_Convert(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		input        string
		wantContains []string
		wantNot      []string
	}{
		{
			name:  "wiki blockquote",
			input: "> wiki quote <",
			wantContains: []string{
				`<blockquote class="lukiwiki">wiki quote</blockquote>`,
			},
		},
		{
			name:  "markdown blockquote untouched",
			input: "> quote\n> more",
			wantContains: []string{
				"<blockquote>",
			},
			wantNot: []string{
				"lukiwiki",
			},
		},
		{
			name:  "heading anchor precedence",
			input: "# First {#first}\n\n## Second",
			wantContains: []string{
				`<h1><a href="#first" aria-hidden="true" class="anchor" id="first"></a>First</h1>`,
				`<h2><a href="#heading-2" aria-hidden="true" class="anchor" id="heading-2"></a>Second</h2>`,
			},
			wantNot: []string{
				"{#first}",
			},
		},
		{
			name:  "setext heading counted before a later anchor",
			input: "Title\n=====\n\n# Second {#second}",
			wantContains: []string{
				`<h1><a href="#heading-1" aria-hidden="true" class="anchor" id="heading-1"></a>Title</h1>`,
				`<h1><a href="#second" aria-hidden="true" class="anchor" id="second"></a>Second</h1>`,
			},
		},
		{
			name:  "quoted heading counted before a later anchor",
			input: "> # Quoted heading\n\n# Real {#real}",
			wantContains: []string{
				`<h1><a href="#heading-1" aria-hidden="true" class="anchor" id="heading-1"></a>Quoted heading</h1>`,
				`<h1><a href="#real" aria-hidden="true" class="anchor" id="real"></a>Real</h1>`,
			},
		},
		{
			name:  "compound decoration order",
			input: "SIZE(1.5): COLOR(primary): CENTER: Styled text",
			wantContains: []string{
				`<p class="text-center fs-4 text-primary">Styled text</p>`,
			},
		},
		{
			name:  "color inherit suppression",
			input: "COLOR(,inherit): text",
			wantContains: []string{
				"<p>text</p>",
			},
			wantNot: []string{
				"class=",
				"style=",
			},
		},
		{
			name:  "inline plugin container",
			input: "&ruby(a){content};",
			wantContains: []string{
				`<span class="plugin-ruby" data-args="a">content</span>`,
			},
		},
		{
			name:  "nested plugin content preserved for the executor",
			input: "&outer(a){text &inner(b){nested}; more};",
			wantContains: []string{
				`class="plugin-outer"`,
				`data-args="a"`,
				"text &inner(b){nested}; more",
			},
			wantNot: []string{
				"&amp;inner",
				"plugin-inner",
			},
		},
		{
			name:  "block plugin unwrapped from paragraph",
			input: "@toc(2){{ outline }}",
			wantContains: []string{
				`<div class="plugin-toc" data-args="2"> outline </div>`,
			},
			wantNot: []string{
				"<p><div",
			},
		},
		{
			name:  "fenced code immunity",
			input: "```\nCOLOR(red): danger\n&ruby(a){b};\n```",
			wantContains: []string{
				"<pre><code>COLOR(red): danger\n&amp;ruby(a){b};\n</code></pre>",
			},
			wantNot: []string{
				"plugin-ruby",
				`style="color: red"`,
			},
		},
		{
			name:  "inline code immunity",
			input: "Use `&ruby(a){b};` here",
			wantContains: []string{
				"<code>&amp;ruby(a){b};</code>",
			},
			wantNot: []string{
				"plugin-ruby",
			},
		},
		{
			name:  "wiki emphasis",
			input: "''bold'' and '''italic'''",
			wantContains: []string{
				"<b>bold</b>",
				"<i>italic</i>",
			},
		},
		{
			name:  "inline decorations after rendering",
			input: "x&sup(2); and &color(red){warm};",
			wantContains: []string{
				"x<sup>2</sup>",
				`<span style="color: red">warm</span>`,
			},
		},
		{
			name:  "crlf input normalized",
			input: "first\r\nCOLOR(blue): tinted\r\n",
			wantContains: []string{
				`style="color: blue"`,
			},
		},
	}

	p := New()
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			result, err := p.Convert(context.Background(), tt.input)
			if err != nil {
				t.Fatalf("Convert() error = %v", err)
			}
			for _, want := range tt.wantContains {
				if !strings.Contains(result.HTML, want) {
					t.Errorf("Convert(%q) = %q, missing %q", tt.input, result.HTML, want)
				}
			}
			for _, not := range tt.wantNot {
				if strings.Contains(result.HTML, not) {
					t.Errorf("Convert(%q) = %q, must not contain %q", tt.input, result.HTML, not)
				}
			}
		})
	}
}

func TestPipeline_NoTokenSurvives(t *testing.T) {
	t.Parallel()

	input := strings.Join([]string{
		"# Title {#title}",
		"",
		"> wiki quote <",
		"",
		"SIZE(1.5): COLOR(primary): CENTER: Styled text",
		"",
		"&ruby(a){content}; and @toc(2){{ outline }}",
		"",
		"@hr(){}",
	}, "\n")

	result, err := New().Convert(context.Background(), input)
	if err != nil {
		t.Fatalf("Convert() error = %v", err)
	}

	for _, kind := range []string{"LUKIWIKI_BLOCKQUOTE", "BLOCK_DECORATION", "INLINE_PLUGIN", "BLOCK_PLUGIN"} {
		if strings.Contains(result.HTML, kind) {
			t.Errorf("final output leaked a %s token: %q", kind, result.HTML)
		}
	}
}

func TestPipeline_IdentityOnPlainMarkdown(t *testing.T) {
	t.Parallel()

	inputs := []string{
		"Just a paragraph.",
		"Several words, no wiki syntax.\n\nAnother paragraph.",
		"- item one\n- item two",
	}

	p := New(WithRenderer(nopRenderer{}))
	for _, input := range inputs {
		result, err := p.Convert(context.Background(), input)
		if err != nil {
			t.Fatalf("Convert(%q) error = %v", input, err)
		}
		if result.HTML != input {
			t.Errorf("Convert(%q) = %q, want identity with no-op renderer", input, result.HTML)
		}
	}
}

func TestPipeline_ProtectRestoreExposed(t *testing.T) {
	t.Parallel()

	p := New()

	protected, ids := p.Protect("# Doc {#doc}\n\n> wiki quote <")
	if strings.Contains(protected, "{#doc}") {
		t.Errorf("Protect() = %q, want heading anchor stripped", protected)
	}
	if ids[1] != "doc" {
		t.Errorf("Protect() ids = %v, want {1: doc}", ids)
	}

	restored := p.Restore("<h1>Doc</h1>\n"+protectedBlockquote("wiki quote"), ids)
	if !strings.Contains(restored, `id="doc"`) {
		t.Errorf("Restore() = %q, want anchor id from Protect", restored)
	}
	if !strings.Contains(restored, `<blockquote class="lukiwiki">wiki quote</blockquote>`) {
		t.Errorf("Restore() = %q, want restored blockquote", restored)
	}
}

// protectedBlockquote builds a blockquote token the way Protect does.
func protectedBlockquote(content string) string {
	return "{{LUKIWIKI_BLOCKQUOTE:" + content + ":LUKIWIKI_BLOCKQUOTE}}"
}

func TestPipeline_Warnings(t *testing.T) {
	t.Parallel()

	input := "***Markdown*** and '''LukiWiki'''"

	result, err := New().Convert(context.Background(), input)
	if err != nil {
		t.Fatalf("Convert() error = %v", err)
	}
	if len(result.Warnings) == 0 {
		t.Error("Convert() warnings empty, want ambiguity warning")
	}

	quiet, err := New(WithoutDiagnostics()).Convert(context.Background(), input)
	if err != nil {
		t.Fatalf("Convert() error = %v", err)
	}
	if len(quiet.Warnings) != 0 {
		t.Errorf("Convert() warnings = %v, want none with diagnostics disabled", quiet.Warnings)
	}
}

func TestPipeline_InputValidation(t *testing.T) {
	t.Parallel()

	if _, err := New().Convert(context.Background(), ""); !errors.Is(err, ErrEmptyMarkdown) {
		t.Errorf("Convert(\"\") error = %v, want ErrEmptyMarkdown", err)
	}

	p := New(WithMaxInputSize(10))
	if _, err := p.Convert(context.Background(), strings.Repeat("a", 11)); !errors.Is(err, ErrInputTooLarge) {
		t.Errorf("Convert(oversized) error = %v, want ErrInputTooLarge", err)
	}
}

func TestPipeline_ContextCancellation(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := New().Convert(ctx, "# doc"); !errors.Is(err, context.Canceled) {
		t.Errorf("Convert() error = %v, want context.Canceled", err)
	}
}

func TestOptionPanics(t *testing.T) {
	t.Parallel()

	assertPanics := func(name string, fn func()) {
		defer func() {
			if recover() == nil {
				t.Errorf("%s did not panic", name)
			}
		}()
		fn()
	}

	assertPanics("WithRenderer(nil)", func() { WithRenderer(nil) })
	assertPanics("WithTables(nil)", func() { WithTables(nil) })
	assertPanics("WithMaxInputSize(0)", func() { WithMaxInputSize(0) })
}
