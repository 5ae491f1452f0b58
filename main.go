package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/kestrel-asm/gbasm/config"
	"github.com/kestrel-asm/gbasm/driver"
	"github.com/kestrel-asm/gbasm/inspect"
	"github.com/kestrel-asm/gbasm/parser"

	"flag"
)

// Version information - can be overridden at build time with:
// go build -ldflags "-X main.Version=v1.2.3"
var (
	Version = "dev"
	Commit  = "unknown"
	Date    = "unknown"
)

func main() {
	var (
		showVersion = flag.Bool("version", false, "Show version information")
		showHelp    = flag.Bool("help", false, "Show help information")

		outPath = flag.String("o", "", "Output ROM path (default game.gb, or the config file's value; \"stdout\" streams to standard out)")

		optimizeShort = flag.Bool("O", false, "Enable basic peephole optimisation")
		optimizeLong  = flag.Bool("optimize", false, "Enable basic peephole optimisation (alias of -O)")
		optimizeUnsafe = flag.Bool("optimize-unsafe", false, "Allow unsafe optimisations (implies -O)")

		symbolPath = flag.String("s", "", "Emit a symbol file to this path")
		mapPath    = flag.String("m", "", "Emit an ASCII map file to this path")
		jsonPath   = flag.String("j", "", "Emit a JSON section dump to this path")

		silent       = flag.Bool("silent", false, "Suppress non-error diagnostic output")
		verbose      = flag.Bool("verbose", false, "Verbose diagnostic output")
		reportUnused = flag.Bool("report-unused", false, "Report labels that are defined but never referenced")

		inspectMode = flag.Bool("inspect", false, "Open the token/AST inspector TUI for the first source file instead of assembling")
		configPath  = flag.String("config", "", "Path to a gbasm.toml defaults file (default: platform config path)")
	)

	flag.Parse()

	if *showVersion {
		fmt.Printf("gbasm %s\n", Version)
		if Commit != "unknown" {
			fmt.Printf("Commit: %s\n", Commit)
		}
		if Date != "unknown" {
			fmt.Printf("Built: %s\n", Date)
		}
		os.Exit(0)
	}

	if *showHelp || flag.NArg() == 0 {
		printHelp()
		os.Exit(0)
	}

	cfg, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	optimize := *optimizeShort || *optimizeLong || *optimizeUnsafe
	if *outPath != "" {
		cfg.Output.ROMPath = *outPath
	}
	if *symbolPath != "" {
		cfg.Output.SymbolPath = *symbolPath
	}
	if *mapPath != "" {
		cfg.Output.MapPath = *mapPath
	}
	if *jsonPath != "" {
		cfg.Output.JSONPath = *jsonPath
	}
	cfg.Optimize.Enable = cfg.Optimize.Enable || optimize
	cfg.Optimize.AllowUnsafe = cfg.Optimize.AllowUnsafe || *optimizeUnsafe
	cfg.Diagnostics.Silent = cfg.Diagnostics.Silent || *silent
	cfg.Diagnostics.Verbose = cfg.Diagnostics.Verbose || *verbose
	cfg.Diagnostics.ReportUnused = cfg.Diagnostics.ReportUnused || *reportUnused

	sources := flag.Args()
	for _, path := range sources {
		if _, err := os.Stat(path); os.IsNotExist(err) {
			fmt.Fprintf(os.Stderr, "Error: file not found: %s\n", path)
			os.Exit(1)
		}
	}

	if cfg.Diagnostics.Verbose {
		fmt.Printf("Tokenizing %d source file(s)\n", len(sources))
	}

	diagnostics := &parser.ErrorList{}
	assemblies := make([]*driver.Assembly, 0, len(sources))
	for _, path := range sources {
		tokens, classifier, err := parser.TokenizeFile(path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		collectLexErrors(tokens, diagnostics)

		resolver := driver.NewIncludeResolver(cfg.Include.BaseDir)
		included, includeErrs := resolver.Resolve(tokens)
		for _, e := range includeErrs {
			diagnostics.AddError(e)
		}

		symbols := parser.BuildSymbolTable(tokens)
		for _, inc := range included {
			incSymbols := parser.BuildSymbolTable(inc.Tokens)
			for name, sym := range incSymbols.All() {
				if sym.Defined {
					_ = symbols.Define(name, sym.Local, sym.Pos)
				}
			}
		}

		if cfg.Diagnostics.ReportUnused {
			for _, sym := range symbols.Unreferenced() {
				diagnostics.AddWarning(&parser.Warning{
					Pos:     sym.Pos,
					Message: fmt.Sprintf("label %q is never referenced", sym.Name),
				})
			}
		}

		if *inspectMode {
			tui := inspect.NewTUI(tokens)
			if err := tui.Run(); err != nil {
				fmt.Fprintf(os.Stderr, "Inspector error: %v\n", err)
				os.Exit(1)
			}
			return
		}

		assemblies = append(assemblies, &driver.Assembly{
			Path:    path,
			Tokens:  tokens,
			Symbols: symbols,
			Macros:  classifier.Macros(),
		})
	}

	if cfg.Diagnostics.Verbose {
		writeDiagnosticLog(diagnostics)
	}

	if !cfg.Diagnostics.Silent {
		fmt.Fprint(os.Stderr, diagnostics.PrintWarnings())
	}

	if diagnostics.HasErrors() {
		fmt.Fprint(os.Stderr, diagnostics.Error())
		os.Exit(1)
	}

	writer := driver.StubWriter{}
	for _, asm := range assemblies {
		if err := writeOutputs(writer, asm, cfg); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing output: %v\n", err)
			os.Exit(1)
		}
	}

	if cfg.Diagnostics.Verbose {
		fmt.Println("Assembly complete")
	}
	os.Exit(0)
}

// collectLexErrors walks tokens for every Error token the Scanner/Classifier
// produced and folds each into diagnostics, rather than stopping at the
// first one - a source file with several unrelated lexical mistakes reports
// all of them in one pass.
func collectLexErrors(tokens []parser.Token, diagnostics *parser.ErrorList) {
	for _, tok := range tokens {
		if tok.Kind == parser.TokenError {
			diagnostics.AddError(parser.NewError(tok.Pos, tok.ErrKind, tok.Text))
		}
	}
}

// writeDiagnosticLog appends the accumulated errors and warnings to the
// platform diagnostic log directory, the way the teacher's trace/coverage
// dumps default to config.GetLogPath() when the user hasn't named an
// explicit output path for them.
func writeDiagnosticLog(diagnostics *parser.ErrorList) {
	logPath := filepath.Join(config.GetLogPath(), "gbasm.log")
	f, err := os.OpenFile(logPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0600) // #nosec G304 -- fixed filename under the platform log directory
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open diagnostic log %s: %v\n", logPath, err)
		return
	}
	defer func() {
		if cerr := f.Close(); cerr != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to close diagnostic log %s: %v\n", logPath, cerr)
		}
	}()

	fmt.Fprint(f, diagnostics.Error())
	fmt.Fprint(f, diagnostics.PrintWarnings())
}

func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.LoadFrom(path)
	}
	return config.Load()
}

func writeOutputs(writer driver.StubWriter, asm *driver.Assembly, cfg *config.Config) error {
	romPath := cfg.Output.ROMPath
	if romPath == "" {
		romPath = "game.gb"
	}
	if err := writeTo(romPath, func(f *os.File) error { return writer.WriteROM(f, asm) }); err != nil {
		return err
	}
	if cfg.Output.SymbolPath != "" {
		if err := writeTo(cfg.Output.SymbolPath, func(f *os.File) error { return writer.WriteSymbolFile(f, asm) }); err != nil {
			return err
		}
	}
	if cfg.Output.MapPath != "" {
		if err := writeTo(cfg.Output.MapPath, func(f *os.File) error { return writer.WriteMap(f, asm) }); err != nil {
			return err
		}
	}
	if cfg.Output.JSONPath != "" {
		if err := writeTo(cfg.Output.JSONPath, func(f *os.File) error { return writer.DumpJSON(f, asm) }); err != nil {
			return err
		}
	}
	return nil
}

func writeTo(path string, fn func(*os.File) error) error {
	if path == "stdout" {
		return fn(os.Stdout)
	}
	f, err := os.Create(path) // #nosec G304 -- user-specified output path
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to close %s: %v\n", path, cerr)
		}
	}()
	return fn(f)
}

func printHelp() {
	fmt.Printf(`gbasm %s - GameBoy (LR35902) assembler

Usage: gbasm [options] <source-file> [source-file...]

Options:
  -help                Show this help message
  -version             Show version information
  -o PATH              Output ROM path (default game.gb; "stdout" streams to standard out)
  -O, -optimize         Enable basic peephole optimisation
  -optimize-unsafe      Allow unsafe optimisations (implies -O)
  -s PATH              Emit a symbol file
  -m PATH              Emit an ASCII map file
  -j PATH              Emit a JSON section dump
  -silent              Suppress non-error diagnostic output
  -verbose             Verbose diagnostic output
  -report-unused       Report labels defined but never referenced
  -inspect             Open the token/AST inspector TUI instead of assembling
  -config PATH         Load defaults from a gbasm.toml file

Examples:
  gbasm main.asm
  gbasm -o build/game.gb -s build/game.sym main.asm
  gbasm -inspect main.asm
  gbasm -O -report-unused -verbose main.asm

Note: linking, section placement, ROM layout, and instruction encoding are
not implemented by this tool - it performs lexical analysis and expression
parsing only. Output files are placeholders describing what a complete
assembler would emit.
`, Version)
}
