// Package driver holds the external collaborators spec.md describes only at
// the interface level: include-file discovery, and the ROM/symbol/map/JSON
// output stubs a real assembler driver would call once the core has
// tokenized a source file. Linking, section placement, and instruction
// encoding are out of scope here - see parser for the actual lexical core.
package driver

import (
	"fmt"
	"path/filepath"

	"github.com/kestrel-asm/gbasm/parser"
)

// IncludeResolver walks a classified token stream looking for
// Directive("INCLUDE") tokens and resolves the file each one names,
// detecting circular includes along the way. Unlike the ARM dialect this
// package was adapted from, the core never textually preprocesses its
// input before lexing - INCLUDE is resolved after the fact, against an
// already-tokenized stream, so lexing semantics never depend on it.
type IncludeResolver struct {
	baseDir      string
	includeStack []string
}

// NewIncludeResolver creates a resolver rooted at baseDir. An empty baseDir
// resolves includes relative to the current directory.
func NewIncludeResolver(baseDir string) *IncludeResolver {
	if baseDir == "" {
		baseDir = "."
	}
	return &IncludeResolver{baseDir: baseDir}
}

// IncludedFile names a source path pulled in by an INCLUDE directive,
// together with the token stream produced by tokenizing it.
type IncludedFile struct {
	Path   string
	Tokens []parser.Token
}

// Resolve scans tokens for Directive("INCLUDE") entries, and for each one
// reads, tokenizes, and recursively resolves the named file's own includes.
// A directive whose next token isn't a String or whose file can't be
// opened reports a *parser.Error tagged ErrorFileIO/ErrorSyntax rather than
// aborting the whole pass.
func (r *IncludeResolver) Resolve(tokens []parser.Token) ([]IncludedFile, []*parser.Error) {
	var included []IncludedFile
	var errs []*parser.Error

	for i := 0; i < len(tokens); i++ {
		t := tokens[i]
		if t.Kind != parser.TokenDirective || t.Text != "INCLUDE" {
			continue
		}
		if i+1 >= len(tokens) || tokens[i+1].Kind != parser.TokenExpression {
			errs = append(errs, parser.NewError(t.Pos, parser.ErrorSyntax, "INCLUDE requires a file name"))
			continue
		}
		name, ok := stringLiteral(tokens[i+1])
		if !ok {
			errs = append(errs, parser.NewError(t.Pos, parser.ErrorSyntax, "INCLUDE requires a string file name"))
			continue
		}

		files, fileErrs := r.resolveOne(name, t.Pos)
		errs = append(errs, fileErrs...)
		included = append(included, files...)
	}

	return included, errs
}

func stringLiteral(t parser.Token) (string, bool) {
	if t.Expr == nil || t.Expr.Kind != parser.ExprString {
		return "", false
	}
	return t.Expr.Text, true
}

// resolveOne reads and tokenizes the single file name names, then recurses
// into its own INCLUDE directives. The returned slice always has the file
// itself first, followed by whatever it transitively includes.
func (r *IncludeResolver) resolveOne(name string, pos parser.Position) ([]IncludedFile, []*parser.Error) {
	absPath, err := filepath.Abs(filepath.Join(r.baseDir, name))
	if err != nil {
		return nil, []*parser.Error{parser.NewError(pos, parser.ErrorFileIO, err.Error())}
	}

	for _, seen := range r.includeStack {
		if seen == absPath {
			return nil, []*parser.Error{parser.NewError(pos, parser.ErrorCircularInclude,
				fmt.Sprintf("circular include of %s", absPath))}
		}
	}

	tokens, _, err := parser.TokenizeFile(absPath)
	if err != nil {
		return nil, []*parser.Error{parser.NewError(pos, parser.ErrorFileIO,
			fmt.Sprintf("failed to include %s: %v", name, err))}
	}

	r.includeStack = append(r.includeStack, absPath)
	defer func() { r.includeStack = r.includeStack[:len(r.includeStack)-1] }()

	nested, errs := r.Resolve(tokens)
	return append([]IncludedFile{{Path: absPath, Tokens: tokens}}, nested...), errs
}

// Stack returns a copy of the include paths currently being resolved -
// useful for diagnostics, not required by Resolve itself.
func (r *IncludeResolver) Stack() []string {
	stack := make([]string, len(r.includeStack))
	copy(stack, r.includeStack)
	return stack
}
