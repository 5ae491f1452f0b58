package driver

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/kestrel-asm/gbasm/parser"
)

// Assembly is the driver-level view of a tokenized source file: the stream
// the core produced, plus the symbol and macro tables built over it. It is
// what a real linker/encoder stage would consume; here it only feeds the
// stub writers below.
type Assembly struct {
	Path    string
	Tokens  []parser.Token
	Symbols *parser.SymbolTable
	Macros  *parser.MacroTable
}

// ROMWriter emits the assembled ROM image. Linking, section placement, and
// instruction encoding are out of scope for this core, so the only
// implementation below writes a placeholder describing what would have
// been emitted rather than real machine code.
type ROMWriter interface {
	WriteROM(w io.Writer, asm *Assembly) error
}

// SymbolFileWriter emits a symbol file (the `-s` flag) listing every label
// this core's SymbolTable recorded.
type SymbolFileWriter interface {
	WriteSymbolFile(w io.Writer, asm *Assembly) error
}

// MapWriter emits an ASCII map file (the `-m` flag).
type MapWriter interface {
	WriteMap(w io.Writer, asm *Assembly) error
}

// JSONDumper emits a JSON section dump (the `-j` flag).
type JSONDumper interface {
	DumpJSON(w io.Writer, asm *Assembly) error
}

// StubWriter implements ROMWriter, SymbolFileWriter, MapWriter, and
// JSONDumper by writing a minimal, clearly-labeled placeholder for each
// output kind. Real ROM emission needs a linker and instruction encoder
// this core doesn't have; this exists so main.go has something concrete to
// call for every flag in spec.md §6 without pretending to solve linking.
type StubWriter struct{}

func (StubWriter) WriteROM(w io.Writer, asm *Assembly) error {
	_, err := fmt.Fprintf(w, "; gbasm stub ROM for %s\n; %d tokens, no encoding performed\n",
		asm.Path, len(asm.Tokens))
	return err
}

func (StubWriter) WriteSymbolFile(w io.Writer, asm *Assembly) error {
	if asm.Symbols == nil {
		return nil
	}
	for name, sym := range asm.Symbols.All() {
		scope := "global"
		if sym.Local {
			scope = "local"
		}
		state := "defined"
		if !sym.Defined {
			state = "undefined"
		}
		if _, err := fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", name, scope, state, sym.Pos); err != nil {
			return err
		}
	}
	return nil
}

func (StubWriter) WriteMap(w io.Writer, asm *Assembly) error {
	_, err := fmt.Fprintf(w, "; gbasm stub map for %s\n; no section placement performed\n", asm.Path)
	return err
}

// jsonDump is the shape DumpJSON emits - sections is always empty since
// section placement isn't implemented by this core.
type jsonDump struct {
	Path     string   `json:"path"`
	Tokens   int      `json:"tokens"`
	Macros   int      `json:"macros"`
	Sections []string `json:"sections"`
}

func (StubWriter) DumpJSON(w io.Writer, asm *Assembly) error {
	macroCount := 0
	if asm.Macros != nil {
		macroCount = len(asm.Macros.All())
	}
	dump := jsonDump{
		Path:     asm.Path,
		Tokens:   len(asm.Tokens),
		Macros:   macroCount,
		Sections: []string{},
	}
	enc := json.NewEncoder(w)
	return enc.Encode(dump)
}
