package parser

import (
	"fmt"
	"strings"
)

// ExprKind identifies the shape of an Expr node.
type ExprKind int

const (
	ExprNumber ExprKind = iota
	ExprString
	ExprName
	ExprUnary
	ExprBinary
	ExprCall
	ExprInvalid
)

// Expr is an expression AST node. Each node owns its children exclusively;
// which fields are meaningful depends on Kind:
//
//   - Number:  Number
//   - String:  Text
//   - Name:    Text
//   - Unary:   Op, Left
//   - Binary:  Op, Left, Right
//   - Call:    Text (callee name), Args
//   - Invalid: Text (failure message)
type Expr struct {
	Kind   ExprKind
	Number float32
	Text   string
	Op     Operator
	Left   *Expr
	Right  *Expr
	Args   []*Expr
}

func (e *Expr) String() string {
	if e == nil {
		return "<nil>"
	}
	switch e.Kind {
	case ExprNumber:
		return fmt.Sprintf("%v", e.Number)
	case ExprString:
		return fmt.Sprintf("%q", e.Text)
	case ExprName:
		return e.Text
	case ExprUnary:
		return fmt.Sprintf("(%s %s)", e.Op, e.Left)
	case ExprBinary:
		return fmt.Sprintf("(%s %s %s)", e.Left, e.Op, e.Right)
	case ExprCall:
		args := make([]string, len(e.Args))
		for i, a := range e.Args {
			args[i] = a.String()
		}
		return fmt.Sprintf("%s(%s)", e.Text, strings.Join(args, ", "))
	case ExprInvalid:
		return fmt.Sprintf("Invalid(%s)", e.Text)
	default:
		return "<?>"
	}
}

// BuildExpression runs the shunting-yard algorithm over tokens, which must
// already be a parenthesis-balanced run produced by the Classifier (a
// leading LParen, the collected run, a trailing RParen). It never panics:
// malformed input yields an Invalid node rather than failing the pass.
func BuildExpression(tokens []Token) *Expr {
	var values []*Expr
	var operators []Operator
	var callMarks []int // len(values) at the moment each pending Call was opened
	validUnary := true
	isCallable := false

	pushValue := func(e *Expr) { values = append(values, e) }
	popValue := func() *Expr {
		n := len(values)
		if n == 0 {
			return &Expr{Kind: ExprInvalid, Text: "expression stack underflow"}
		}
		v := values[n-1]
		values = values[:n-1]
		return v
	}
	pushOp := func(o Operator) { operators = append(operators, o) }
	popOp := func() (Operator, bool) {
		n := len(operators)
		if n == 0 {
			return 0, false
		}
		o := operators[n-1]
		operators = operators[:n-1]
		return o, true
	}
	topOp := func() (Operator, bool) {
		if len(operators) == 0 {
			return 0, false
		}
		return operators[len(operators)-1], true
	}

	applyOperator := func(op Operator) {
		if op == OpUnaryMinus || op == OpUnaryNot {
			if len(values) < 1 {
				pushValue(&Expr{Kind: ExprInvalid, Text: "Invalid unary operator"})
				return
			}
			child := popValue()
			pushValue(&Expr{Kind: ExprUnary, Op: op, Left: child})
			return
		}
		if len(values) < 2 {
			pushValue(&Expr{Kind: ExprInvalid, Text: "Invalid unary operator"})
			return
		}
		right := popValue()
		left := popValue()
		pushValue(&Expr{Kind: ExprBinary, Op: op, Left: left, Right: right})
	}

	// drainAbove pops and applies every operator whose precedence is
	// strictly greater than op's, stopping at a Paren/Call sentinel or an
	// operator of equal-or-lower precedence. Equal precedence is left on
	// the stack, which is what makes same-precedence chains associate
	// right-to-left.
	drainAbove := func(op Operator) {
		for {
			top, ok := topOp()
			if !ok || top == OpParen || top == OpCall {
				return
			}
			if top.Precedence() <= op.Precedence() {
				return
			}
			popOp()
			applyOperator(top)
		}
	}

	// drainToParen pops and applies every operator down to (but not
	// including) the nearest Paren sentinel - used by both RParen and
	// Comma to close out the expression just completed.
	drainToParen := func() {
		for {
			top, ok := topOp()
			if !ok || top == OpParen {
				return
			}
			popOp()
			applyOperator(top)
		}
	}

	for _, tok := range tokens {
		switch tok.Kind {
		case TokenNumber:
			pushValue(&Expr{Kind: ExprNumber, Number: tok.Number})
			isCallable = false
			validUnary = false

		case TokenString:
			pushValue(&Expr{Kind: ExprString, Text: tok.Text})
			isCallable = false
			validUnary = false

		case TokenName, TokenLocalLabelRef, TokenMacroArg:
			pushValue(&Expr{Kind: ExprName, Text: tok.Text})
			isCallable = true
			validUnary = false

		case TokenLParen:
			if isCallable {
				callMarks = append(callMarks, len(values))
				pushOp(OpCall)
			}
			pushOp(OpParen)
			validUnary = true
			isCallable = false

		case TokenOperator:
			o := tok.Op
			unary := false
			if o == OpMinus && validUnary {
				o = OpUnaryMinus
				unary = true
			} else if o == OpUnaryNot {
				unary = true
			}
			if !unary {
				drainAbove(o)
			}
			pushOp(o)
			validUnary = true
			isCallable = false

		case TokenRParen:
			drainToParen()
			if top, ok := topOp(); ok && top == OpParen {
				popOp()
			}
			if top, ok := topOp(); ok && top == OpCall {
				popOp()
				mark := len(values)
				if n := len(callMarks); n > 0 {
					mark = callMarks[n-1]
					callMarks = callMarks[:n-1]
				}
				argCount := len(values) - mark
				if argCount < 0 {
					argCount = 0
				}
				args := make([]*Expr, argCount)
				for i := argCount - 1; i >= 0; i-- {
					args[i] = popValue()
				}
				callee := popValue()
				pushValue(&Expr{Kind: ExprCall, Text: callee.Text, Args: args})
			}
			isCallable = false
			validUnary = false

		case TokenComma:
			drainToParen()
			isCallable = false
			validUnary = false
		}
	}

	if len(values) != 1 {
		return &Expr{Kind: ExprInvalid, Text: "malformed expression"}
	}
	return values[0]
}
