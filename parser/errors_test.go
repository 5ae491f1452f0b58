package parser_test

import (
	"testing"

	"github.com/kestrel-asm/gbasm/parser"
	"github.com/stretchr/testify/assert"
)

func TestPosition_String(t *testing.T) {
	pos := parser.Position{Filename: "a.asm", Line: 3, Column: 7}
	assert.Equal(t, "a.asm:3:7", pos.String())
}

func TestError_StringIncludesContext(t *testing.T) {
	err := parser.NewErrorWithContext(
		parser.Position{Filename: "a.asm", Line: 1, Column: 1},
		parser.ErrorSyntax, "bad byte", "    ld #1",
	)
	s := err.Error()
	assert.Contains(t, s, "a.asm:1:1")
	assert.Contains(t, s, "bad byte")
	assert.Contains(t, s, "ld #1")
}

func TestErrorList_AddAndHasErrors(t *testing.T) {
	el := &parser.ErrorList{}
	assert.False(t, el.HasErrors())

	el.AddError(parser.NewError(parser.Position{}, parser.ErrorSyntax, "oops"))
	assert.True(t, el.HasErrors())
	assert.Contains(t, el.Error(), "oops")
}

func TestErrorList_Warnings(t *testing.T) {
	el := &parser.ErrorList{}
	el.AddWarning(&parser.Warning{Pos: parser.Position{Filename: "a.asm", Line: 1}, Message: "unused label"})
	assert.Contains(t, el.PrintWarnings(), "unused label")
}
