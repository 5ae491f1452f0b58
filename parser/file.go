package parser

// ParseFile opens path and returns a Classifier streaming its classified
// token sequence. The cursor, scanner, and classifier are wired together
// here; callers only ever see Classifier.Next.
func ParseFile(path string) (*Classifier, error) {
	cur, err := NewFileCursor(path)
	if err != nil {
		return nil, err
	}
	return NewClassifier(NewScanner(cur)), nil
}

// ParseString is ParseFile's in-memory counterpart: no file is opened,
// filename only labels positions in diagnostics.
func ParseString(filename, source string) *Classifier {
	return NewClassifier(NewScanner(NewStringCursor(filename, source)))
}

// TokenizeFile drains ParseFile's Classifier into a slice ending with
// (and including) Eof.
func TokenizeFile(path string) ([]Token, *Classifier, error) {
	c, err := ParseFile(path)
	if err != nil {
		return nil, nil, err
	}
	return drain(c), c, nil
}

// TokenizeString is TokenizeFile's in-memory counterpart.
func TokenizeString(filename, source string) ([]Token, *Classifier) {
	c := ParseString(filename, source)
	return drain(c), c
}

func drain(c *Classifier) []Token {
	var tokens []Token
	for {
		t := c.Next()
		tokens = append(tokens, t)
		if t.Kind == TokenEof {
			break
		}
	}
	return tokens
}

// BuildSymbolTable walks an already-classified token stream and records
// every label definition and reference it finds, including references
// buried inside Expression ASTs (a bare name folds into an ExprName node
// rather than staying a standalone token - see BuildExpression).
func BuildSymbolTable(tokens []Token) *SymbolTable {
	st := NewSymbolTable()
	for _, t := range tokens {
		switch t.Kind {
		case TokenGlobalLabelDef:
			_ = st.Define(t.Text, false, t.Pos)
		case TokenLocalLabelDef:
			_ = st.Define(t.Text, true, t.Pos)
		case TokenLocalLabelRef:
			st.Reference(t.Text, t.Pos)
		case TokenExpression:
			collectExprReferences(t.Expr, t.Pos, st)
		}
	}
	return st
}

func collectExprReferences(e *Expr, pos Position, st *SymbolTable) {
	if e == nil {
		return
	}
	switch e.Kind {
	case ExprName:
		st.Reference(e.Text, pos)
	case ExprUnary:
		collectExprReferences(e.Left, pos, st)
	case ExprBinary:
		collectExprReferences(e.Left, pos, st)
		collectExprReferences(e.Right, pos, st)
	case ExprCall:
		st.Reference(e.Text, pos)
		for _, arg := range e.Args {
			collectExprReferences(arg, pos, st)
		}
	}
}
