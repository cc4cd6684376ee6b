// Package lukiwiki renders the LukiWiki markup dialect on top of a generic
// Markdown renderer.
//
// # Quick Start
//
// Create a pipeline and convert a document:
//
//	p := lukiwiki.New()
//	result, err := p.Convert(ctx, "> quoted <\n\nCOLOR(primary): hello")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(result.HTML)
//
// The result contains the final HTML fragment and any advisory warnings
// produced by the syntax diagnostics.
//
// # Pipeline
//
// LukiWiki syntax and Markdown syntax overlap: "> text <" is a wiki
// blockquote while "> text" is a Markdown one, and plugin invocations such
// as @name(args){{content}} contain characters Markdown would rewrite. The
// pipeline keeps the two grammars apart with reversible placeholder tokens:
//
//  1. Heading anchors ({#id}) are stripped and recorded by document ordinal.
//  2. Ambiguous spans (wiki blockquotes, block decorations, plugin
//     invocations) are protected as {{KIND:payload:KIND}} tokens whose
//     payloads are base64-encoded where they may carry arbitrary content.
//  3. The protected text is handed to the Renderer (goldmark by default).
//  4. Tokens are restored from the rendered HTML: blockquote elements,
//     decorated paragraphs, plugin containers, and heading anchors.
//  5. Wiki emphasis (''bold'', '''italic''') and inline decorations
//     (&color(...){...}; etc.) are rewritten on the rendered output.
//
// Already-rendered code blocks and inline code are swapped out for comment
// markers around steps 4-5, so code content is never touched.
//
// # Plugins
//
// Plugin invocations are not executed. They are formatted as stable
// containers (<div class="plugin-name" data-args="...">) for a downstream
// executor; nested plugin syntax inside the content is preserved verbatim.
//
// # Configuration
//
// Use functional options to customize the pipeline:
//
//	p := lukiwiki.New(
//	    lukiwiki.WithRenderer(myRenderer),
//	    lukiwiki.WithTables(myTables),
//	    lukiwiki.WithMaxInputSize(4<<20),
//	)
//
// All stages are pure string transformations; a Pipeline is safe for
// concurrent use across goroutines.
package lukiwiki
