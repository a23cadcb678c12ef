// Command vellumfront is a thin diagnostic front end for the Vellum
// lexer and parser: it lexes (and optionally parses) a single file and
// dumps the result as text, for manual inspection during development.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vellum-lang/vellum/ast"
	"github.com/vellum-lang/vellum/diag"
	"github.com/vellum-lang/vellum/intern"
	"github.com/vellum-lang/vellum/lexer"
	"github.com/vellum-lang/vellum/parser"
	"github.com/vellum-lang/vellum/source"
	"github.com/vellum-lang/vellum/token"
)

const (
	exitIOError    = 2
	exitLexOrParse = 3
)

func main() {
	var noDocComments bool

	rootCmd := &cobra.Command{
		Use:           "vellumfront",
		Short:         "Lex and parse Vellum source, dumping tokens or an AST",
		SilenceErrors: true,
		SilenceUsage:  true,
	}

	tokensCmd := &cobra.Command{
		Use:   "tokens <file>",
		Short: "Lex a file and print its token stream",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTokens(args[0], noDocComments)
		},
	}
	tokensCmd.Flags().BoolVar(&noDocComments, "no-doc-comments", false, "classify \"//@\" comments as plain inline comments")

	var strict bool
	astCmd := &cobra.Command{
		Use:   "ast <file>",
		Short: "Lex and parse a file, printing its AST",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAst(args[0], strict)
		},
	}
	astCmd.Flags().BoolVar(&strict, "strict", false, "abort parsing at the first syntax error")

	rootCmd.AddCommand(tokensCmd, astCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(exitLexOrParse)
	}
}

func loadFile(path string) (source.FileRef, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return source.FileRef{}, fmt.Errorf("reading %s: %w", path, err)
	}
	fm := source.NewMemoryFileManager()
	id := fm.Add(path, content)
	file, _ := fm.File(id)
	return file, nil
}

func runTokens(path string, noDocComments bool) error {
	file, err := loadFile(path)
	if err != nil {
		os.Exit(exitIOError)
	}

	collector := diag.NewCollector()
	var opts []lexer.Option
	if noDocComments {
		opts = append(opts, lexer.WithDocComments(false))
	}
	l := lexer.New(file, collector, opts...)

	for {
		t := l.Next()
		fmt.Printf("%-20s %d..%d  %q\n", t.Kind, t.Range.Start, t.Range.End, t.Lexeme(file.Source()))
		if t.Kind == token.Eof {
			break
		}
	}

	printDiagnostics(collector, file)
	if collector.HasErrors() {
		os.Exit(exitLexOrParse)
	}
	return nil
}

func runAst(path string, strict bool) error {
	file, err := loadFile(path)
	if err != nil {
		os.Exit(exitIOError)
	}

	collector := diag.NewCollector()
	l := lexer.New(file, collector)
	tokens := lexer.All(l)

	ts := parser.NewTokenStream(file, tokens)
	tree := ast.NewContext()
	interner := intern.New()

	var popts []parser.Option
	if strict {
		popts = append(popts, parser.Strict())
	}
	p := parser.New(ts, tree, interner, collector, popts...)

	items := p.ParseAll()
	dumper := &astDumper{tree: tree, interner: interner, src: file.Source()}
	for _, id := range items {
		dumper.dump(id, 0)
	}

	printDiagnostics(collector, file)
	if collector.HasErrors() {
		os.Exit(exitLexOrParse)
	}
	return nil
}

func printDiagnostics(c *diag.Collector, file source.FileRef) {
	for _, d := range c.Diagnostics {
		fmt.Fprintf(os.Stderr, "%s: %s: %s (%d..%d)\n", d.Severity, d.ID, d.PrimaryLabel, d.Range.Start, d.Range.End)
		for _, label := range d.ExtraLabels {
			fmt.Fprintf(os.Stderr, "  note: %s (%d..%d)\n", label.Message, label.Range.Start, label.Range.End)
		}
	}
}
