package calc

import (
	"math/big"
	"strconv"
	"strings"
)

// EmptyInputError is an error indicating a line with no tokens. It implements
// InputError.
type EmptyInputError struct{}

func (err *EmptyInputError) Error() string {
	return "empty expression"
}

func (err *EmptyInputError) Pos() int {
	return 1
}

// UnknownOperatorError is an error indicating an operator that has no binding
// power. The parser treats such an operator as the end of an expression, so
// this reaches callers of Parse only through BindingPower or when evaluating
// a malformed tree. It implements InputError.
type UnknownOperatorError struct {
	// Col is the position of the operator, or 0 if unknown.
	Col int
	// Operator is the operator text.
	Operator string
}

func (err *UnknownOperatorError) Error() string {
	return errpos(err.Col, "unknown operator "+strconv.Quote(err.Operator))
}

func (err *UnknownOperatorError) Pos() int {
	return err.Col
}

// UnmatchedParenthesisError is an error indicating an open parenthesis with
// no matching close parenthesis. It implements InputError.
type UnmatchedParenthesisError struct {
	// Col is the position of the open parenthesis.
	Col int
	// End is the token found where the close parenthesis should be, or the
	// empty string at the end of input.
	End string
}

func (err *UnmatchedParenthesisError) Error() string {
	if err.End == "" {
		return errpos(err.Col, "unmatched parenthesis")
	}
	return errpos(err.Col, "unmatched parenthesis: found "+strconv.Quote(err.End)+" instead of \")\"")
}

func (err *UnmatchedParenthesisError) Pos() int {
	return err.Col
}

// ExpectedPrimaryError is an error indicating a token that cannot start an
// operand. It implements InputError.
type ExpectedPrimaryError struct {
	// Col is the position of the token.
	Col int
	// Found is the token text, or the empty string at the end of input.
	Found string
}

func (err *ExpectedPrimaryError) Error() string {
	if err.Found == "" {
		return errpos(err.Col, "expected atom or opening parenthesis at end of expression")
	}
	return errpos(err.Col, "expected atom or opening parenthesis, found "+strconv.Quote(err.Found))
}

func (err *ExpectedPrimaryError) Pos() int {
	return err.Col
}

// UnexpectedAtomError is an error indicating an atom directly following a
// complete operand. It implements InputError.
type UnexpectedAtomError struct {
	// Col is the position of the atom.
	Col int
	// Atom is the atom text.
	Atom string
}

func (err *UnexpectedAtomError) Error() string {
	return errpos(err.Col, "unexpected token "+strconv.Quote(err.Atom)+"; expected an operator or end of expression")
}

func (err *UnexpectedAtomError) Pos() int {
	return err.Col
}

// UnconsumedInputError is an error indicating tokens left after a complete
// expression. It implements InputError.
type UnconsumedInputError struct {
	// Col is the position of the first unconsumed token.
	Col int
	// Tokens is the text of each unconsumed token in input order.
	Tokens []string
}

func (err *UnconsumedInputError) Error() string {
	return errpos(err.Col, "unexpected tokens at end of expression: "+strings.Join(err.Tokens, ", "))
}

func (err *UnconsumedInputError) Pos() int {
	return err.Col
}

// errpos is a shortcut to create an error message with a position.
func errpos(pos int, msg string) string {
	if pos <= 0 {
		return msg
	}
	return strconv.Itoa(pos) + ": " + msg
}

// InputError is an error with position information. Every error resulting from
// invalid syntax implements InputError.
type InputError interface {
	error
	// Pos returns the column of the token that caused the error, counting
	// runes from 1.
	Pos() int
}

var (
	_ InputError = (*EmptyInputError)(nil)
	_ InputError = (*UnknownOperatorError)(nil)
	_ InputError = (*UnmatchedParenthesisError)(nil)
	_ InputError = (*ExpectedPrimaryError)(nil)
	_ InputError = (*UnexpectedAtomError)(nil)
	_ InputError = (*UnconsumedInputError)(nil)
)

// UndefinedNameError is an error from a lookup for a variable that is missing
// from the evaluation context.
type UndefinedNameError struct {
	// Name is the name that was missing.
	Name string
}

func (err *UndefinedNameError) Error() string {
	return "name " + strconv.Quote(err.Name) + " is not defined"
}

// InvalidAssignmentTargetError is an error indicating an assignment whose left
// side is not a bare name.
type InvalidAssignmentTargetError struct {
	// Target is the prefix form of the left side.
	Target string
}

func (err *InvalidAssignmentTargetError) Error() string {
	return "cannot assign to " + err.Target + "; try adding more parentheses"
}

// AssignToLiteralError is an error indicating an assignment to a number.
type AssignToLiteralError struct {
	// Literal is the number on the left side.
	Literal string
}

func (err *AssignToLiteralError) Error() string {
	return "cannot assign to literal " + err.Literal
}

// DivisionByZeroError is an error indicating a division with a zero divisor.
type DivisionByZeroError struct {
	// X is the dividend.
	X *big.Float
}

func (err *DivisionByZeroError) Error() string {
	if err.X == nil {
		return "division by zero"
	}
	return "division by zero: " + err.X.Text('g', -1) + " / 0"
}

// DomainError is an error indicating an operation with no real result, such
// as a negative number raised to a fractional power.
type DomainError struct {
	// X is the out-of-domain argument, if known.
	X *big.Float
	// Func names the operation.
	Func string
	// Reason describes the failure when X alone does not.
	Reason string
}

func (err *DomainError) Error() string {
	r := "outside domain"
	if err.X != nil {
		r = err.X.Text('g', -1) + " " + r
	}
	if err.Func != "" {
		r += " of " + err.Func
	}
	if err.Reason != "" {
		r += ": " + err.Reason
	}
	return r
}
