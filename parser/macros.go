package parser

import "fmt"

// Macro is a recognized macro header: a name and its parameter list.
// Macro *expansion* is out of scope here - nothing below ever resolves a
// MacroArg reference against a caller's arguments, and no macro body is
// captured. This exists purely so a driver sitting above the core can
// answer "does this macro exist, and with how many parameters" without
// re-scanning the token stream.
type Macro struct {
	Name       string
	Parameters []string
	Pos        Position
}

// MacroTable records macro headers as the Classifier recognizes them.
type MacroTable struct {
	macros map[string]*Macro
}

// NewMacroTable creates an empty MacroTable.
func NewMacroTable() *MacroTable {
	return &MacroTable{macros: make(map[string]*Macro)}
}

// Define records a macro header. Redefining an existing name is an error;
// the first definition wins and is left in the table.
func (mt *MacroTable) Define(name string, parameters []string, pos Position) error {
	if _, exists := mt.macros[name]; exists {
		return fmt.Errorf("macro %q already defined", name)
	}
	mt.macros[name] = &Macro{Name: name, Parameters: parameters, Pos: pos}
	return nil
}

// Lookup returns the macro registered under name, if any.
func (mt *MacroTable) Lookup(name string) (*Macro, bool) {
	m, exists := mt.macros[name]
	return m, exists
}

// All returns every recorded macro.
func (mt *MacroTable) All() map[string]*Macro {
	return mt.macros
}

// Clear removes every recorded macro.
func (mt *MacroTable) Clear() {
	mt.macros = make(map[string]*Macro)
}
