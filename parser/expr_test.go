package parser_test

import (
	"testing"

	"github.com/kestrel-asm/gbasm/parser"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func exprOf(t *testing.T, src string) *parser.Expr {
	t.Helper()
	toks := classify(src + "\n")
	require.Equal(t, parser.TokenExpression, toks[0].Kind, "source %q did not collapse to a single Expression token", src)
	return toks[0].Expr
}

func TestBuildExpression_Precedence(t *testing.T) {
	e := exprOf(t, "1 + 2 * 3")
	require.Equal(t, parser.ExprBinary, e.Kind)
	assert.Equal(t, parser.OpPlus, e.Op)
	assert.Equal(t, parser.ExprNumber, e.Left.Kind)
	require.Equal(t, parser.ExprBinary, e.Right.Kind)
	assert.Equal(t, parser.OpMultiply, e.Right.Op)
}

func TestBuildExpression_ParenthesesOverridePrecedence(t *testing.T) {
	e := exprOf(t, "(1 + 2) * 3")
	require.Equal(t, parser.ExprBinary, e.Kind)
	assert.Equal(t, parser.OpMultiply, e.Op)
	require.Equal(t, parser.ExprBinary, e.Left.Kind)
	assert.Equal(t, parser.OpPlus, e.Left.Op)
}

func TestBuildExpression_RightAssociativeAcrossTheBoard(t *testing.T) {
	// Source behaviour preserved verbatim: the "strictly greater" drain rule
	// makes every equal-precedence chain right-associative, not just Power.
	e := exprOf(t, "1 - 2 - 3")
	require.Equal(t, parser.ExprBinary, e.Kind)
	assert.Equal(t, parser.OpMinus, e.Op)
	assert.Equal(t, parser.ExprNumber, e.Left.Kind)
	require.Equal(t, parser.ExprBinary, e.Right.Kind, "2-3 should have been grouped first, giving 1-(2-3)")
	assert.Equal(t, parser.OpMinus, e.Right.Op)
}

func TestBuildExpression_PowerIsRightAssociative(t *testing.T) {
	e := exprOf(t, "2 ** 3 ** 2")
	require.Equal(t, parser.ExprBinary, e.Kind)
	assert.Equal(t, parser.OpPower, e.Op)
	require.Equal(t, parser.ExprBinary, e.Right.Kind)
	assert.Equal(t, parser.OpPower, e.Right.Op)
}

func TestBuildExpression_UnaryMinus(t *testing.T) {
	// A '-' directly followed by a digit is scanned as part of a negative
	// Number literal, so this unary minus never becomes a Unary node.
	e := exprOf(t, "-5")
	require.Equal(t, parser.ExprNumber, e.Kind)
	assert.Equal(t, float32(-5), e.Number)
}

func TestBuildExpression_UnaryMinusOnParenExpr(t *testing.T) {
	// An Operator cannot start an expression run at the start of a line,
	// so the unary minus sits inside an outer pair of parentheses.
	e := exprOf(t, "(-(a))")
	require.Equal(t, parser.ExprUnary, e.Kind)
	assert.Equal(t, parser.OpUnaryMinus, e.Op)
	assert.Equal(t, parser.ExprName, e.Left.Kind)
}

func TestBuildExpression_LogicalNot(t *testing.T) {
	e := exprOf(t, "(!a)")
	require.Equal(t, parser.ExprUnary, e.Kind)
	assert.Equal(t, parser.OpUnaryNot, e.Op)
}

func TestBuildExpression_CallWithBareNameArgument(t *testing.T) {
	// Regression guard: an argument that is itself a bare name must not be
	// mistaken for the callee marker during Call resolution.
	e := exprOf(t, "foo(bar, 2)")
	require.Equal(t, parser.ExprCall, e.Kind)
	assert.Equal(t, "foo", e.Text)
	require.Len(t, e.Args, 2)
	assert.Equal(t, parser.ExprName, e.Args[0].Kind)
	assert.Equal(t, "bar", e.Args[0].Text)
	assert.Equal(t, parser.ExprNumber, e.Args[1].Kind)
	assert.Equal(t, float32(2), e.Args[1].Number)
}

func TestBuildExpression_CallWithNoArguments(t *testing.T) {
	e := exprOf(t, "foo()")
	require.Equal(t, parser.ExprCall, e.Kind)
	assert.Empty(t, e.Args)
}

func TestBuildExpression_NestedCalls(t *testing.T) {
	// A Comma directly after ')' ends an expression run, so the nested call
	// is the last argument here.
	e := exprOf(t, "foo(2, bar(1))")
	require.Equal(t, parser.ExprCall, e.Kind)
	require.Len(t, e.Args, 2)
	require.Equal(t, parser.ExprCall, e.Args[1].Kind)
	assert.Equal(t, "bar", e.Args[1].Text)
}

func TestBuildExpression_StringLiteral(t *testing.T) {
	e := exprOf(t, `"hi"`)
	assert.Equal(t, parser.ExprString, e.Kind)
	assert.Equal(t, "hi", e.Text)
}

func TestExpr_StringMethodOnNilIsSafe(t *testing.T) {
	var e *parser.Expr
	assert.Equal(t, "<nil>", e.String())
}
