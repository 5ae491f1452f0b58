package parser_test

import (
	"testing"

	"github.com/kestrel-asm/gbasm/parser"
	"github.com/stretchr/testify/assert"
)

func scanAll(src string) []parser.Token {
	s := parser.NewScanner(parser.NewStringCursor("test.asm", src))
	var toks []parser.Token
	for {
		tok := s.NextToken()
		toks = append(toks, tok)
		if tok.Kind == parser.TokenEof {
			break
		}
	}
	return toks
}

func TestScanner_Punctuation(t *testing.T) {
	toks := scanAll("(),[]")
	kinds := []parser.TokenKind{
		parser.TokenLParen, parser.TokenRParen, parser.TokenComma,
		parser.TokenLBrace, parser.TokenRBrace, parser.TokenEof,
	}
	assert.Len(t, toks, len(kinds))
	for i, k := range kinds {
		assert.Equal(t, k, toks[i].Kind, "token %d", i)
	}
}

func TestScanner_DecimalLiteral(t *testing.T) {
	toks := scanAll("12345")
	assert.Equal(t, parser.TokenNumber, toks[0].Kind)
	assert.Equal(t, float32(12345), toks[0].Number)
}

func TestScanner_DecimalDigitCapErrors(t *testing.T) {
	// Exactly 8 digits is fine, a 9th overflows at the instant it arrives.
	ok := scanAll("12345678")
	assert.Equal(t, parser.TokenNumber, ok[0].Kind)

	bad := scanAll("123456789")
	assert.Equal(t, parser.TokenError, bad[0].Kind)
	assert.Equal(t, parser.ErrorNumericTooLong, bad[0].ErrKind)
}

func TestScanner_BinaryLiteral(t *testing.T) {
	toks := scanAll("%1010")
	assert.Equal(t, parser.TokenNumber, toks[0].Kind)
	assert.Equal(t, float32(10), toks[0].Number)
}

func TestScanner_BinaryDigitCapErrors(t *testing.T) {
	bad := scanAll("%111111111")
	assert.Equal(t, parser.TokenError, bad[0].Kind)
}

func TestScanner_HexLiteral(t *testing.T) {
	toks := scanAll("$FF")
	assert.Equal(t, parser.TokenNumber, toks[0].Kind)
	assert.Equal(t, float32(255), toks[0].Number)
}

func TestScanner_HexDigitCapErrors(t *testing.T) {
	bad := scanAll("$12345")
	assert.Equal(t, parser.TokenError, bad[0].Kind)
}

func TestScanner_NegativeDecimal(t *testing.T) {
	toks := scanAll("-5")
	assert.Equal(t, parser.TokenNumber, toks[0].Kind)
	assert.Equal(t, float32(-5), toks[0].Number)
}

func TestScanner_StringLiteral(t *testing.T) {
	toks := scanAll(`"hi\n"`)
	assert.Equal(t, parser.TokenString, toks[0].Kind)
	assert.Equal(t, "hi\n", toks[0].Text)
}

func TestScanner_UnclosedStringErrors(t *testing.T) {
	toks := scanAll(`"hi`)
	assert.Equal(t, parser.TokenError, toks[0].Kind)
	assert.Equal(t, parser.ErrorUnclosedString, toks[0].ErrKind)
}

func TestScanner_UnknownEscapeErrors(t *testing.T) {
	toks := scanAll(`"\q"`)
	assert.Equal(t, parser.TokenError, toks[0].Kind)
	assert.Equal(t, parser.ErrorUnknownEscape, toks[0].ErrKind)
}

func TestScanner_NameVsInstructionVsDirective(t *testing.T) {
	toks := scanAll("ld DB foo")
	assert.Equal(t, parser.TokenInstruction, toks[0].Kind)
	assert.Equal(t, parser.TokenDirective, toks[2].Kind)
	assert.Equal(t, parser.TokenName, toks[4].Kind)
}

func TestScanner_GlobalLabelDef(t *testing.T) {
	toks := scanAll("start:")
	assert.Equal(t, parser.TokenGlobalLabelDef, toks[0].Kind)
	assert.Equal(t, "start", toks[0].Text)
}

func TestScanner_LocalLabel(t *testing.T) {
	def := scanAll(".loop:")
	assert.Equal(t, parser.TokenLocalLabelDef, def[0].Kind)
	assert.Equal(t, ".loop", def[0].Text)

	ref := scanAll(".loop")
	assert.Equal(t, parser.TokenLocalLabelRef, ref[0].Kind)
}

func TestScanner_MacroArgAndOffsetSigils(t *testing.T) {
	toks := scanAll("@foo @+1 @-1")
	assert.Equal(t, parser.TokenMacroArg, toks[0].Kind)
	assert.Equal(t, "foo", toks[0].Text)

	// "@+" and "@-" each scan as their own raw sign token (distinct kinds),
	// followed by the plain Number they apply to.
	assert.Len(t, toks, 8)
	assert.NotEqual(t, parser.TokenError, toks[2].Kind)
	assert.NotEqual(t, parser.TokenMacroArg, toks[2].Kind)
	assert.Equal(t, parser.TokenNumber, toks[3].Kind)
	assert.NotEqual(t, parser.TokenError, toks[5].Kind)
	assert.NotEqual(t, toks[2].Kind, toks[5].Kind)
	assert.Equal(t, parser.TokenNumber, toks[6].Kind)
	assert.Equal(t, float32(1), toks[6].Number)
}

func TestScanner_OperatorMapping(t *testing.T) {
	// spec.md's recommended, un-swapped mapping: '<' -> LessThan, '>' -> GreaterThan.
	lt := scanAll("<")
	assert.Equal(t, parser.OpLessThan, lt[0].Op)

	gt := scanAll(">")
	assert.Equal(t, parser.OpGreaterThan, gt[0].Op)
}

func TestScanner_TwoCharOperators(t *testing.T) {
	cases := map[string]parser.Operator{
		"&&": parser.OpLogicalAnd,
		"||": parser.OpLogicalOr,
		"==": parser.OpEqual,
		"!=": parser.OpNotEqual,
		"<=": parser.OpLessThanEqual,
		">=": parser.OpGreaterThanEqual,
		"<<": parser.OpShiftLeft,
		">>": parser.OpShiftRight,
		"**": parser.OpPower,
		"//": parser.OpIntegerDivide,
	}
	for src, op := range cases {
		toks := scanAll(src)
		assert.Equal(t, op, toks[0].Op, "operator %q", src)
	}
}

func TestScanner_LoneEqualsErrors(t *testing.T) {
	toks := scanAll("=")
	assert.Equal(t, parser.TokenError, toks[0].Kind)
	assert.Equal(t, parser.ErrorInvalidOperator, toks[0].ErrKind)
}

func TestScanner_CommentRunsToEndOfLine(t *testing.T) {
	toks := scanAll("; a comment\nld")
	assert.Equal(t, parser.TokenComment, toks[0].Kind)
	assert.Equal(t, " a comment", toks[0].Text)
	assert.Equal(t, parser.TokenNewline, toks[1].Kind)
}

func TestScanner_UnexpectedByteErrors(t *testing.T) {
	toks := scanAll("#")
	assert.Equal(t, parser.TokenError, toks[0].Kind)
	assert.Equal(t, parser.ErrorSyntax, toks[0].ErrKind)
}
