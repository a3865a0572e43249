package calc

// Expr = atom | '(' Expr ')' | Neg | Assign | Add | Sub | Mul | Div | Pow
// Neg = '-' Expr                    (parsed as Sub with a left operand of 0)
// Assign = atom '=' Expr
// Add = Expr '+' Expr
// Sub = Expr '-' Expr
// Mul = Expr '*' Expr
// Div = Expr '/' Expr
// Pow = Expr '^' Expr

// Expr is a parsed expression that can be evaluated with a context.
type Expr struct {
	// n is the root node of the expression.
	n *node
	// names is the list of variable names read by the expression.
	names []string
}

// negbp is the binding power with which prefix - takes its operand. It is
// above multiplication and below exponentiation, so -2^2 is -(2^2) and
// -5+3 is (-5)+3.
const negbp = 2.5

// BindingPower returns the left and right binding powers of an infix
// operator. A left-associative operator binds slightly tighter on its right;
// a right-associative one binds slightly tighter on its left. Operators
// outside the table produce an *UnknownOperatorError.
func BindingPower(op string) (left, right float64, err error) {
	switch op {
	case "=":
		return 0.2, 0.1, nil
	case "+", "-":
		return 1.0, 1.1, nil
	case "*", "/":
		return 2.0, 2.1, nil
	case "^":
		return 3.1, 3.0, nil
	default:
		return 0, 0, &UnknownOperatorError{Operator: op}
	}
}

// Parse parses a complete line. Tokens left over after the expression produce
// an *UnconsumedInputError.
func Parse(line string, opts ...ParseOption) (*Expr, error) {
	p := newParsectx(opts)
	s, err := tokenize(line, &p)
	if err != nil {
		return nil, err
	}
	n, err := parseexpr(s, 0)
	if err != nil {
		return nil, err
	}
	if err := s.ExpectEOF(); err != nil {
		return nil, err
	}
	return newExpr(n), nil
}

// ParseExpression parses one expression from s, stopping before the first
// operator whose left binding power is below minBP, or before any token that
// cannot continue an expression. Use a minBP of 0 to parse a whole
// expression. Tokens following the expression remain in s.
func ParseExpression(s *TokenStream, minBP float64) (*Expr, error) {
	n, err := parseexpr(s, minBP)
	if err != nil {
		return nil, err
	}
	return newExpr(n), nil
}

func newExpr(n *node) *Expr {
	seen := make(map[string]bool)
	collect(n, seen)
	ex := Expr{n: n, names: make([]string, 0, len(seen))}
	for k := range seen {
		ex.names = append(ex.names, k)
	}
	sortstrs(ex.names)
	return &ex
}

// collect adds the variable names that n reads to seen. Assignment targets
// are written, not read.
func collect(n *node, seen map[string]bool) {
	switch n.kind {
	case nodeAtom:
		if !numeric.MatchString(n.text) {
			seen[n.text] = true
		}
	case nodeBinary:
		if n.text != "=" || !n.left.assignable() {
			collect(n.left, seen)
		}
		collect(n.right, seen)
	}
}

// sortstrs sorts a string slice without using package sort because that has
// reflection and allocation problems.
func sortstrs(names []string) {
	for i := 1; i < len(names); i++ {
		for j := i; j > 0 && names[j] < names[j-1]; j-- {
			names[j], names[j-1] = names[j-1], names[j]
		}
	}
}

// parseexpr parses a primary followed by any infix operations binding at
// least as tightly as minBP.
func parseexpr(s *TokenStream, minBP float64) (*node, error) {
	lhs, err := parseprimary(s)
	if err != nil {
		return nil, err
	}
	for {
		tok := s.Peek()
		switch tok.Kind {
		case TokenAtom:
			return nil, &UnexpectedAtomError{Col: tok.Pos, Atom: tok.Text}
		case TokenOperator:
			// handled below
		default:
			return lhs, nil
		}
		l, r, err := BindingPower(tok.Text)
		if err != nil {
			// Not an infix operator, e.g. a close parenthesis. Whoever called
			// us decides whether it is allowed here.
			return lhs, nil
		}
		if l < minBP {
			return lhs, nil
		}
		s.Next()
		rhs, err := parseexpr(s, r)
		if err != nil {
			return nil, err
		}
		lhs = &node{kind: nodeBinary, text: tok.Text, pos: tok.Pos, left: lhs, right: rhs}
	}
}

// parseprimary parses an atom, a parenthesized expression, or a negation.
func parseprimary(s *TokenStream) (*node, error) {
	tok := s.Next()
	switch {
	case tok.Kind == TokenAtom:
		return &node{kind: nodeAtom, text: tok.Text, pos: tok.Pos}, nil
	case tok.Kind == TokenOperator && tok.Text == "(":
		n, err := parseexpr(s, 0)
		if err != nil {
			return nil, err
		}
		end := s.Next()
		if end.Kind != TokenOperator || end.Text != ")" {
			return nil, &UnmatchedParenthesisError{Col: tok.Pos, End: end.Text}
		}
		n.paren = true
		return n, nil
	case tok.Kind == TokenOperator && tok.Text == "-":
		// -x -> 0 - x
		rhs, err := parseexpr(s, negbp)
		if err != nil {
			return nil, err
		}
		zero := &node{kind: nodeAtom, text: "0", pos: tok.Pos}
		return &node{kind: nodeBinary, text: "-", pos: tok.Pos, left: zero, right: rhs}, nil
	default:
		return nil, &ExpectedPrimaryError{Col: tok.Pos, Found: tok.Text}
	}
}

// Vars returns the variable names the expression reads when evaluated.
func (e *Expr) Vars() []string {
	return append(([]string)(nil), e.names...)
}

// Assignment returns the name the expression assigns to, if the whole
// expression is an assignment to a name.
func (e *Expr) Assignment() (name string, ok bool) {
	if e.n.kind != nodeBinary || e.n.text != "=" || !e.n.left.assignable() {
		return "", false
	}
	return e.n.left.text, true
}

// String creates a prefix representation of the parsed expression, e.g.
// "(+ 1 (* 2 3))" for "1 + 2 * 3".
func (e *Expr) String() string {
	return e.n.String()
}
