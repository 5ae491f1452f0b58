package parser

import "fmt"

// TokenKind identifies what a Token carries. It doubles as the "TokenType"
// projection spec'd for the expression-recognition state machine: dropping
// a Token down to its Kind already discards the payload, so no separate
// projection type is needed the way a tagged-union language would require.
type TokenKind int

const (
	TokenNewline TokenKind = iota
	TokenWhitespace
	TokenComment
	TokenString
	TokenNumber
	TokenName
	TokenInstruction
	TokenDirective
	TokenOperator
	TokenGlobalLabelDef
	TokenLocalLabelDef
	TokenLocalLabelRef
	TokenOffset
	TokenMacro
	TokenMacroArg
	TokenMacroEnd
	TokenExpression
	TokenLParen
	TokenRParen
	TokenLBrace
	TokenRBrace
	TokenComma
	TokenError
	TokenEof

	// TokenBegin is synthetic: it never labels a real Token, it only seeds
	// Classifier.lastKind before the first token has been seen.
	TokenBegin

	// Raw-only kinds. The Scanner produces these but the Classifier always
	// fuses them into something else (an Offset, a Macro header, or an
	// Error) before a caller ever sees one.
	tokenPositiveOffsetSign
	tokenNegativeOffsetSign
	tokenMacroDefKeyword
)

var tokenKindNames = map[TokenKind]string{
	TokenNewline:        "Newline",
	TokenWhitespace:     "Whitespace",
	TokenComment:        "Comment",
	TokenString:         "String",
	TokenNumber:         "Number",
	TokenName:           "Name",
	TokenInstruction:    "Instruction",
	TokenDirective:      "Directive",
	TokenOperator:       "Operator",
	TokenGlobalLabelDef: "GlobalLabelDef",
	TokenLocalLabelDef:  "LocalLabelDef",
	TokenLocalLabelRef:  "LocalLabelRef",
	TokenOffset:         "Offset",
	TokenMacro:          "Macro",
	TokenMacroArg:       "MacroArg",
	TokenMacroEnd:       "MacroEnd",
	TokenExpression:     "Expression",
	TokenLParen:         "LParen",
	TokenRParen:         "RParen",
	TokenLBrace:         "LBrace",
	TokenRBrace:         "RBrace",
	TokenComma:          "Comma",
	TokenError:          "Error",
	TokenEof:            "Eof",
	TokenBegin:          "Begin",
}

func (k TokenKind) String() string {
	if name, ok := tokenKindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("TokenKind(%d)", int(k))
}

// Token is the single concrete type produced by both the Scanner and the
// Classifier. Which payload field is meaningful depends on Kind; see the
// field comments. Only one of Text/Number/Op/Offset/Expr is ever set for a
// given Kind.
type Token struct {
	Kind TokenKind
	Pos  Position

	// Text holds the Comment, String, Name, Instruction, Directive,
	// GlobalLabelDef, LocalLabelDef, LocalLabelRef, Macro, MacroArg, or
	// Error payload.
	Text string

	// ErrKind classifies a TokenError - one of the lexical ErrorKind
	// values from errors.go. Unused for every other Kind.
	ErrKind ErrorKind

	// Number holds the Number payload, an IEEE-754 single (spec §3).
	Number float32

	// Op holds the Operator payload.
	Op Operator

	// Offset holds the signed Offset payload (spec §3, @+N / @-N).
	Offset int32

	// Expr holds the Expression payload, built by the shunting-yard pass.
	Expr *Expr
}

func (t Token) String() string {
	switch t.Kind {
	case TokenNumber:
		return fmt.Sprintf("%s(%v) at %s", t.Kind, t.Number, t.Pos)
	case TokenOperator:
		return fmt.Sprintf("%s(%s) at %s", t.Kind, t.Op, t.Pos)
	case TokenOffset:
		return fmt.Sprintf("%s(%d) at %s", t.Kind, t.Offset, t.Pos)
	case TokenExpression:
		return fmt.Sprintf("%s(%s) at %s", t.Kind, t.Expr, t.Pos)
	case TokenComment, TokenString, TokenName, TokenInstruction, TokenDirective,
		TokenGlobalLabelDef, TokenLocalLabelDef, TokenLocalLabelRef,
		TokenMacro, TokenMacroArg, TokenError:
		return fmt.Sprintf("%s(%q) at %s", t.Kind, t.Text, t.Pos)
	default:
		return fmt.Sprintf("%s at %s", t.Kind, t.Pos)
	}
}

// Operator is a closed enum of binary, unary, and sentinel operators. Paren
// and Call only ever live on the shunting-yard operator stack; the Scanner
// never produces them and they must never appear in a built Expr.
type Operator int

const (
	OpParen Operator = iota
	OpCall
	OpLogicalOr
	OpLogicalAnd
	OpBitwiseOr
	OpBitwiseXor
	OpBitwiseAnd
	OpEqual
	OpNotEqual
	OpLessThan
	OpGreaterThan
	OpLessThanEqual
	OpGreaterThanEqual
	OpShiftLeft
	OpShiftRight
	OpPlus
	OpMinus
	OpNegate
	OpMultiply
	OpDivide
	OpModulo
	OpPower
	OpIntegerDivide
	OpUnaryNot
	OpUnaryMinus
)

var operatorNames = map[Operator]string{
	OpParen: "(", OpCall: "call",
	OpLogicalOr: "||", OpLogicalAnd: "&&",
	OpBitwiseOr: "|", OpBitwiseXor: "^", OpBitwiseAnd: "&",
	OpEqual: "==", OpNotEqual: "!=",
	OpLessThan: "<", OpGreaterThan: ">",
	OpLessThanEqual: "<=", OpGreaterThanEqual: ">=",
	OpShiftLeft: "<<", OpShiftRight: ">>",
	OpPlus: "+", OpMinus: "-", OpNegate: "~",
	OpMultiply: "*", OpDivide: "/", OpModulo: "%", OpPower: "**",
	OpIntegerDivide: "//",
	OpUnaryNot:      "!", OpUnaryMinus: "-",
}

func (op Operator) String() string {
	if name, ok := operatorNames[op]; ok {
		return name
	}
	return fmt.Sprintf("Operator(%d)", int(op))
}

// Precedence returns the operator's binding strength; higher binds
// tighter. Paren and Call are sentinels at precedence 0 so the shunting-
// yard drain rule (pop while stack-top precedence is strictly greater)
// applies to them uniformly with no special-casing.
func (op Operator) Precedence() int {
	switch op {
	case OpParen, OpCall:
		return 0
	case OpLogicalOr:
		return 1
	case OpLogicalAnd:
		return 2
	case OpBitwiseOr:
		return 3
	case OpBitwiseXor:
		return 4
	case OpBitwiseAnd:
		return 5
	case OpEqual, OpNotEqual:
		return 6
	case OpLessThan, OpGreaterThan, OpLessThanEqual, OpGreaterThanEqual:
		return 7
	case OpShiftLeft, OpShiftRight:
		return 8
	case OpPlus, OpMinus, OpNegate:
		return 9
	case OpMultiply, OpDivide, OpIntegerDivide, OpModulo:
		return 11
	case OpUnaryNot, OpUnaryMinus:
		return 12
	case OpPower:
		return 13
	default:
		return 0
	}
}
