package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/chroma/v2/styles"
	flag "github.com/spf13/pflag"

	lukiwiki "github.com/logue/lukiwiki-md"
)

// Sentinel errors for CLI operations.
var (
	ErrNoInput          = errors.New("no input specified (file path or - for stdin)")
	ErrReadMarkdown     = errors.New("failed to read markdown input")
	ErrWriteOutput      = errors.New("failed to write output")
	ErrInvalidExtension = errors.New("file must have .md or .markdown extension")
	ErrUnknownStyle     = errors.New("unknown highlight style")
)

// filePermissions for written HTML output.
const filePermissions = 0o644

// cliFlags holds all command-line flags.
type cliFlags struct {
	output         string
	config         string
	highlightStyle string
	noDiagnostics  bool
	quiet          bool
	verbose        bool
	version        bool
}

// parseFlags parses command-line flags and returns the remaining positional
// arguments.
func parseFlags(args []string) (*cliFlags, []string, error) {
	flags := &cliFlags{}

	fs := flag.NewFlagSet(args[0], flag.ContinueOnError)
	fs.StringVarP(&flags.output, "output", "o", "", "output HTML path (default: input with .html extension, or stdout for stdin input)")
	fs.StringVarP(&flags.config, "config", "c", "", "YAML config file")
	fs.StringVar(&flags.highlightStyle, "highlight-style", "", "chroma style for inline-styled code highlighting (default: class-based output)")
	fs.BoolVar(&flags.noDiagnostics, "no-diagnostics", false, "suppress syntax collision diagnostics")
	fs.BoolVarP(&flags.quiet, "quiet", "q", false, "suppress warnings")
	fs.BoolVarP(&flags.verbose, "verbose", "v", false, "verbose output")
	fs.BoolVar(&flags.version, "version", false, "print version and exit")
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "Usage: %s [flags] <input.md|-> [output.html]\n\nFlags:\n", filepath.Base(args[0]))
		fs.PrintDefaults()
	}

	if err := fs.Parse(args[1:]); err != nil {
		return nil, nil, err
	}
	return flags, fs.Args(), nil
}

// run parses arguments, reads the input document, converts it, and writes
// the HTML fragment.
func run(args []string, stdout, stderr io.Writer) error {
	flags, positional, err := parseFlags(args)
	if err != nil {
		return err
	}

	if flags.version {
		fmt.Fprintln(stdout, Version)
		return nil
	}

	if len(positional) < 1 {
		return ErrNoInput
	}
	inputPath := positional[0]

	cfg := DefaultConfig()
	if flags.config != "" {
		cfg, err = LoadConfig(flags.config)
		if err != nil {
			return err
		}
	}

	style := cfg.Render.HighlightStyle
	if flags.highlightStyle != "" {
		style = flags.highlightStyle
	}
	if err := validateStyle(style); err != nil {
		return err
	}

	markdown, err := readInput(inputPath)
	if err != nil {
		return err
	}

	opts := []lukiwiki.Option{}
	if style != "" {
		opts = append(opts, lukiwiki.WithRenderer(lukiwiki.NewGoldmarkRenderer(style)))
	}
	if flags.noDiagnostics || !cfg.DiagnosticsEnabled() {
		opts = append(opts, lukiwiki.WithoutDiagnostics())
	}

	result, err := lukiwiki.New(opts...).Convert(context.Background(), markdown)
	if err != nil {
		return err
	}

	if !flags.quiet {
		for _, w := range result.Warnings {
			fmt.Fprintf(stderr, "warning: %s\n", w)
		}
	}

	outputPath := resolveOutputPath(flags, positional, inputPath, cfg)
	if outputPath == "" {
		fmt.Fprint(stdout, result.HTML)
		return nil
	}

	if err := os.WriteFile(outputPath, []byte(result.HTML), filePermissions); err != nil {
		return fmt.Errorf("%w: %v", ErrWriteOutput, err)
	}
	if flags.verbose {
		fmt.Fprintf(stdout, "Created %s\n", outputPath)
	}
	return nil
}

// readInput reads the markdown document from a file or stdin ("-").
func readInput(path string) (string, error) {
	if path == "-" {
		content, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("%w: %v", ErrReadMarkdown, err)
		}
		return string(content), nil
	}

	if err := validateMarkdownExtension(path); err != nil {
		return "", err
	}
	content, err := os.ReadFile(path) // #nosec G304 -- path comes from the user's own argument
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrReadMarkdown, err)
	}
	return string(content), nil
}

// validateMarkdownExtension checks that the file has a .md or .markdown
// extension.
func validateMarkdownExtension(path string) error {
	ext := strings.ToLower(filepath.Ext(path))
	if ext != ".md" && ext != ".markdown" {
		return fmt.Errorf("%w: got %q", ErrInvalidExtension, ext)
	}
	return nil
}

// validateStyle checks a chroma style name against the registry. The empty
// string selects class-based output and is always valid.
func validateStyle(name string) error {
	if name == "" {
		return nil
	}
	if _, ok := styles.Registry[name]; !ok {
		return fmt.Errorf("%w: %q", ErrUnknownStyle, name)
	}
	return nil
}

// resolveOutputPath picks the output destination: the -o flag, the second
// positional argument, or the input name with an .html extension (relocated
// to the configured output dir when set). Stdin input without an explicit
// destination writes to stdout, signalled by an empty path.
func resolveOutputPath(flags *cliFlags, positional []string, inputPath string, cfg *Config) string {
	if flags.output != "" {
		return flags.output
	}
	if len(positional) > 1 {
		return positional[1]
	}
	if inputPath == "-" {
		return ""
	}

	base := strings.TrimSuffix(filepath.Base(inputPath), filepath.Ext(inputPath)) + ".html"
	if cfg.Output.Dir != "" {
		return filepath.Join(cfg.Output.Dir, base)
	}
	return filepath.Join(filepath.Dir(inputPath), base)
}
