package parser_test

import (
	"testing"

	"github.com/kestrel-asm/gbasm/parser"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSymbolTable_DefineAndLookup(t *testing.T) {
	st := parser.NewSymbolTable()
	pos := parser.Position{Filename: "a.asm", Line: 1, Column: 1}

	require.NoError(t, st.Define("start", false, pos))

	sym, ok := st.Lookup("start")
	require.True(t, ok)
	assert.True(t, sym.Defined)
	assert.False(t, sym.Local)
}

func TestSymbolTable_DuplicateDefinitionErrors(t *testing.T) {
	st := parser.NewSymbolTable()
	pos := parser.Position{Filename: "a.asm", Line: 1, Column: 1}
	pos2 := parser.Position{Filename: "a.asm", Line: 5, Column: 1}

	require.NoError(t, st.Define("start", false, pos))
	err := st.Define("start", false, pos2)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "already defined")
}

func TestSymbolTable_ReferenceBeforeDefine(t *testing.T) {
	st := parser.NewSymbolTable()
	pos := parser.Position{Filename: "a.asm", Line: 2, Column: 3}

	st.Reference("later", pos)

	sym, ok := st.Lookup("later")
	require.True(t, ok)
	assert.False(t, sym.Defined)
	assert.Len(t, sym.References, 1)
}

func TestSymbolTable_Undefined(t *testing.T) {
	st := parser.NewSymbolTable()
	st.Reference("ghost", parser.Position{})
	require.NoError(t, st.Define("real", false, parser.Position{}))

	undef := st.Undefined()
	require.Len(t, undef, 1)
	assert.Equal(t, "ghost", undef[0].Name)
}

func TestSymbolTable_Unreferenced(t *testing.T) {
	st := parser.NewSymbolTable()
	require.NoError(t, st.Define("unused", false, parser.Position{}))
	require.NoError(t, st.Define("used", false, parser.Position{}))
	st.Reference("used", parser.Position{})

	unused := st.Unreferenced()
	require.Len(t, unused, 1)
	assert.Equal(t, "unused", unused[0].Name)
}

func TestSymbolTable_Clear(t *testing.T) {
	st := parser.NewSymbolTable()
	require.NoError(t, st.Define("a", false, parser.Position{}))
	st.Clear()
	assert.Empty(t, st.All())
}

func TestBuildSymbolTable_ReferencesInsideExpressions(t *testing.T) {
	tokens, _ := parser.TokenizeString("a.asm", "start:\njp start\n")
	st := parser.BuildSymbolTable(tokens)

	sym, ok := st.Lookup("start")
	require.True(t, ok)
	assert.True(t, sym.Defined)
	assert.Len(t, sym.References, 1)
}

func TestBuildSymbolTable_CallCalleeCountsAsReference(t *testing.T) {
	tokens, _ := parser.TokenizeString("a.asm", "helper:\nDB helper(1)\n")
	st := parser.BuildSymbolTable(tokens)

	sym, ok := st.Lookup("helper")
	require.True(t, ok)
	assert.NotEmpty(t, sym.References)
}
