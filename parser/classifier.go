package parser

// Classifier wraps a Scanner, turning its raw token stream into the
// stream real consumers want: whitespace and comments are dropped,
// offset and macro-header sequences are fused into single tokens,
// macro-argument sigils are validated against context, and maximal runs
// of expression-forming tokens are collapsed into a single Expression
// token carrying its AST.
//
// Classifier carries the only mutable state in the core: in_macro_args /
// in_macro_body track where we are relative to a MACRO header and body;
// lastKind feeds the expression-recognition state machine; pending holds
// at most one token of lookahead that a finished expression run couldn't
// consume. None of this lives anywhere but the Classifier value itself.
type Classifier struct {
	scanner *Scanner

	inMacroArgs bool
	inMacroBody bool
	lastKind    TokenKind

	pending *pendingToken

	macros        *MacroTable
	pendingMacro  string
	pendingParams []string
}

// Macros returns the table of macro headers recognized so far. Only
// header name and parameter list are ever recorded - see MacroTable.
func (c *Classifier) Macros() *MacroTable {
	return c.macros
}

type pendingToken struct {
	tok     Token
	bypass  bool
}

// NewClassifier builds a Classifier reading from scanner.
func NewClassifier(scanner *Scanner) *Classifier {
	return &Classifier{scanner: scanner, lastKind: TokenBegin, macros: NewMacroTable()}
}

// Next returns the next classified token.
func (c *Classifier) Next() Token {
	var first Token
	var bypass bool
	if c.pending != nil {
		first, bypass = c.pending.tok, c.pending.bypass
		c.pending = nil
	} else {
		first, bypass = c.classifyOne()
	}

	if bypass {
		c.lastKind = first.Kind
		return first
	}
	return c.collapse(first)
}

// nextRaw pulls the next token straight off the Scanner, silently
// dropping Whitespace and Comment - every layer above this one works
// with a stream that has already forgotten they existed.
func (c *Classifier) nextRaw() Token {
	for {
		t := c.scanner.NextToken()
		if t.Kind == TokenWhitespace || t.Kind == TokenComment {
			continue
		}
		return t
	}
}

// classifyOne applies the macro/offset context rules to one raw token.
// The returned bool reports whether that token must bypass expression-
// run collapsing entirely - true for every token read while building a
// macro's parameter list, since no expression collapsing happens there.
func (c *Classifier) classifyOne() (Token, bool) {
	raw := c.nextRaw()

	switch raw.Kind {
	case tokenPositiveOffsetSign:
		return c.finishOffset(raw.Pos, false), false
	case tokenNegativeOffsetSign:
		return c.finishOffset(raw.Pos, true), false
	case tokenMacroDefKeyword:
		return c.finishMacroDef(raw.Pos), false
	case TokenMacroEnd:
		if !c.inMacroBody {
			return errToken(raw.Pos, ErrorMacroEndContext, "ENDMACRO outside a macro body"), false
		}
		c.inMacroBody = false
		return raw, false
	case TokenMacroArg:
		if !c.inMacroArgs && !c.inMacroBody {
			return errToken(raw.Pos, ErrorMacroArgContext, "MacroArg outside a macro parameter list or body"), false
		}
	}

	if c.inMacroArgs {
		if raw.Kind == TokenMacroArg {
			c.pendingParams = append(c.pendingParams, raw.Text)
		}
		if raw.Kind == TokenRParen {
			c.inMacroArgs = false
			c.inMacroBody = true
			// Best-effort bookkeeping: a redefinition is a recognition-level
			// detail a driver can ask about later, not a reason to fail the
			// token stream here.
			_ = c.macros.Define(c.pendingMacro, c.pendingParams, raw.Pos)
			c.pendingMacro = ""
			c.pendingParams = nil
		}
		return raw, true
	}

	return raw, false
}

func (c *Classifier) finishOffset(pos Position, negative bool) Token {
	t := c.nextRaw()
	if t.Kind != TokenNumber {
		return errToken(pos, ErrorExpectedOffsetNumber, "expected a number after offset sign")
	}
	v := int32(t.Number)
	if negative {
		v = -v
	}
	return Token{Kind: TokenOffset, Pos: pos, Offset: v}
}

func (c *Classifier) finishMacroDef(pos Position) Token {
	if c.inMacroArgs {
		return errToken(pos, ErrorMacroNested, "nested MACRO header before the previous one closed")
	}
	t := c.nextRaw()
	if t.Kind != TokenName {
		return errToken(pos, ErrorEmptyName, "expected a name after MACRO")
	}
	c.inMacroArgs = true
	c.pendingMacro = t.Text
	c.pendingParams = nil
	return Token{Kind: TokenMacro, Pos: pos, Text: t.Text}
}

func errToken(pos Position, kind ErrorKind, msg string) Token {
	return Token{Kind: TokenError, Pos: pos, Text: msg, ErrKind: kind}
}

// collapse implements §4.4's expression-recognition state machine: given
// the first already-contextualized token, it either emits that token
// unchanged or grows a run of tokens wrapped in a synthetic pair of
// parentheses and hands the run to BuildExpression.
func (c *Classifier) collapse(first Token) Token {
	if !isExpression(c.lastKind, first.Kind, 0) {
		c.lastKind = first.Kind
		return first
	}

	buf := []Token{{Kind: TokenLParen}, first}
	depth := parenDelta(0, first.Kind)
	last := first.Kind

	for {
		next, bypass := c.classifyOne()
		if bypass || !isExpression(last, next.Kind, depth) {
			c.pending = &pendingToken{tok: next, bypass: bypass}
			break
		}
		buf = append(buf, next)
		depth = parenDelta(depth, next.Kind)
		last = next.Kind
	}

	buf = append(buf, Token{Kind: TokenRParen})
	result := Token{Kind: TokenExpression, Pos: first.Pos, Expr: BuildExpression(buf)}
	c.lastKind = TokenExpression
	return result
}

func parenDelta(depth int, kind TokenKind) int {
	switch kind {
	case TokenLParen:
		return depth + 1
	case TokenRParen:
		return depth - 1
	default:
		return depth
	}
}

// isExpression is the total relation over (last, next, depth) from §4.4,
// transcribed rule-for-rule: the first matching rule wins.
func isExpression(last, next TokenKind, depth int) bool {
	if depth == 0 && (last == TokenComma || next == TokenComma) {
		return false
	}

	switch last {
	case TokenLParen:
		switch next {
		case TokenName, TokenLocalLabelRef, TokenNumber, TokenString,
			TokenOperator, TokenLParen, TokenRParen, TokenMacroArg:
			return true
		}
		return false

	case TokenRParen:
		switch next {
		case TokenRParen, TokenOperator:
			return true
		}
		return false

	case TokenOperator:
		switch next {
		case TokenLParen, TokenNumber, TokenString, TokenLocalLabelRef,
			TokenName, TokenMacroArg:
			return true
		}
		return false

	case TokenNumber, TokenString, TokenLocalLabelRef, TokenName, TokenMacroArg:
		switch next {
		case TokenRParen, TokenOperator:
			return true
		case TokenLParen:
			return last == TokenName || last == TokenMacroArg
		case TokenComma:
			return depth > 0
		}
		return false

	case TokenComma:
		switch next {
		case TokenLParen, TokenName, TokenString, TokenNumber, TokenMacroArg:
			return true
		}
		return false

	case TokenDirective, TokenInstruction:
		switch next {
		case TokenLParen, TokenName, TokenString, TokenNumber, TokenMacroArg:
			return true
		}
		return false

	case TokenBegin, TokenNewline:
		switch next {
		case TokenLParen, TokenName, TokenString, TokenNumber:
			return true
		}
		return false
	}
	return false
}
