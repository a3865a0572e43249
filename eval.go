package calc

import (
	"math/big"
	"regexp"
	"strconv"

	"github.com/zephyrtronium/bigfloat"
)

// DefaultPrec is the precision of a context created without Prec. It is the
// mantissa width of an IEEE 754 double, so +, -, *, and / round exactly as
// float64 arithmetic does.
const DefaultPrec = 53

// numeric matches atom text which denotes a number rather than a name.
var numeric = regexp.MustCompile(`^-?\d+(\.\d+)?$`)

// IsNumber reports whether atom text denotes a number rather than a variable
// name.
func IsNumber(text string) bool {
	return numeric.MatchString(text)
}

// Context is a context for evaluating expressions. It owns the variables that
// assignments write. It is not safe to use a Context concurrently.
type Context struct {
	stack []*big.Float
	nums  map[string]*big.Float
	names map[string]*big.Float
	// staged holds assignments made by the expression being evaluated. It is
	// nil outside Eval.
	staged map[string]*big.Float
	prec   uint
}

// ContextOption is an option used when creating a context.
type ContextOption interface {
	ctxOption()
}

type (
	varopt struct {
		name string
		val  *big.Float
	}
	varsopt map[string]*big.Float
	precopt uint
)

func (varopt) ctxOption()  {}
func (varsopt) ctxOption() {}
func (precopt) ctxOption() {}

// SetVar sets the value of a variable in the context.
func SetVar(name string, val *big.Float) ContextOption {
	return varopt{name, val}
}

// SetVars sets the values of any number of variables in the context.
func SetVars(vars map[string]*big.Float) ContextOption {
	return varsopt(vars)
}

// Prec sets the precision of calculations in bits. Zero leaves the precision
// unchanged.
func Prec(prec uint) ContextOption {
	return precopt(prec)
}

// NewContext creates a new evaluation context with no variables. If no
// precision is given, the default is DefaultPrec.
func NewContext(opts ...ContextOption) *Context {
	ctx := Context{nums: make(map[string]*big.Float), prec: DefaultPrec}
	return ctx.Clone(opts...)
}

// Clone creates a copy of a context and applies options to it. Variables set
// in the copy do not affect the original.
func (ctx *Context) Clone(opts ...ContextOption) *Context {
	n := Context{
		stack: make([]*big.Float, 0, cap(ctx.stack)),
		nums:  make(map[string]*big.Float, len(ctx.nums)),
		names: make(map[string]*big.Float, len(ctx.names)),
		prec:  ctx.prec,
	}
	// First, check for a precision setting. Loop backward so we apply the last
	// precision.
	for i := len(opts) - 1; i >= 0; i-- {
		if p, ok := opts[i].(precopt); ok && p != 0 {
			n.prec = uint(p)
			break
		}
	}
	// Cached numbers are only reusable at the same precision.
	if n.prec == ctx.prec {
		for k, v := range ctx.nums {
			n.nums[k] = v
		}
	}
	// Stored values are never modified in place, so pointers can be shared
	// when the precision is unchanged.
	if n.prec == ctx.prec {
		for name, val := range ctx.names {
			n.names[name] = val
		}
	} else {
		for name, val := range ctx.names {
			n.names[name] = new(big.Float).SetPrec(n.prec).Set(val)
		}
	}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		switch opt := opt.(type) {
		case varopt:
			n.names[opt.name] = new(big.Float).SetPrec(n.prec).Set(opt.val)
		case varsopt:
			for k, v := range opt {
				n.names[k] = new(big.Float).SetPrec(n.prec).Set(v)
			}
		case precopt:
			// Already done. Do nothing.
		default:
			panic("calc: unknown option type")
		}
	}
	return &n
}

// Prec returns the precision to which values are computed in the context.
func (ctx *Context) Prec() uint {
	return ctx.prec
}

// Eval evaluates an expression and returns the result. Assignments made by
// the expression take effect only if the whole expression evaluates without
// error, so a failed evaluation leaves the context's variables unchanged.
func (ctx *Context) Eval(e *Expr) (r *big.Float, err error) {
	if ctx.staged != nil {
		panic("calc: Eval during Eval")
	}
	ctx.staged = make(map[string]*big.Float)
	ctx.stack = ctx.stack[:0]
	defer func() {
		ctx.staged = nil
		ctx.stack = ctx.stack[:0]
		x := recover()
		if x == nil {
			return
		}
		nan, ok := x.(big.ErrNaN)
		if !ok {
			panic(x)
		}
		r, err = nil, &DomainError{Reason: nan.Error()}
	}()
	if err := e.n.eval(ctx); err != nil {
		return nil, err
	}
	if len(ctx.stack) != 1 {
		panic("calc: inconsistent stack: " + strconv.Itoa(len(ctx.stack)) + " items (bad AST?)")
	}
	ctx.commit()
	return new(big.Float).Copy(ctx.stack[0]), nil
}

// push ensures a settable value on the stack.
func (ctx *Context) push() *big.Float {
	if len(ctx.stack) < cap(ctx.stack) {
		ctx.stack = ctx.stack[:len(ctx.stack)+1]
		if ctx.stack[len(ctx.stack)-1] == nil {
			ctx.stack[len(ctx.stack)-1] = new(big.Float)
		}
		ctx.stack[len(ctx.stack)-1].SetPrec(ctx.prec)
	} else {
		ctx.stack = append(ctx.stack, new(big.Float).SetPrec(ctx.prec))
	}
	return ctx.stack[len(ctx.stack)-1]
}

// pop removes the top from the stack and returns it. The returned value may be
// modified by future node evaluations.
func (ctx *Context) pop() *big.Float {
	r := ctx.stack[len(ctx.stack)-1]
	ctx.stack = ctx.stack[:len(ctx.stack)-1]
	return r
}

// top is a shortcut to get the top element of the stack.
func (ctx *Context) top() *big.Float {
	return ctx.stack[len(ctx.stack)-1]
}

// num gets a possibly cached number from its text, which must match numeric.
func (ctx *Context) num(s string) *big.Float {
	if r := ctx.nums[s]; r != nil {
		return r
	}
	r, _, err := new(big.Float).SetPrec(ctx.prec).Parse(s, 10)
	if err != nil {
		panic("calc: invalid number: " + s + " (" + err.Error() + ")")
	}
	if ctx.nums == nil {
		ctx.nums = make(map[string]*big.Float)
	}
	ctx.nums[s] = r
	return r
}

// eval pushes the node's value to the context's stack.
func (n *node) eval(ctx *Context) error {
	switch n.kind {
	case nodeAtom:
		if numeric.MatchString(n.text) {
			ctx.push().Set(ctx.num(n.text))
			return nil
		}
		v := ctx.lookup(n.text)
		if v == nil {
			return &UndefinedNameError{Name: n.text}
		}
		ctx.push().Set(v)
	case nodeBinary:
		if n.text == "=" {
			return n.assign(ctx)
		}
		if err := n.left.eval(ctx); err != nil {
			return err
		}
		if err := n.right.eval(ctx); err != nil {
			return err
		}
		r := ctx.pop()
		l := ctx.top()
		switch n.text {
		case "+":
			l.Add(l, r)
		case "-":
			l.Sub(l, r)
		case "*":
			l.Mul(l, r)
		case "/":
			if r.Sign() == 0 {
				return &DivisionByZeroError{X: new(big.Float).Copy(l)}
			}
			l.Quo(l, r)
		case "^":
			return pow(l, l, r)
		default:
			return &UnknownOperatorError{Col: n.pos, Operator: n.text}
		}
	default:
		panic("calc: invalid AST node " + n.kind.String())
	}
	return nil
}

// assign evaluates the right side of an assignment and stages its value under
// the name on the left. The value stays on the stack as the result.
func (n *node) assign(ctx *Context) error {
	if !n.left.assignable() {
		t := n.left.String()
		if n.left.kind == nodeAtom {
			t = "(" + t + ")"
		}
		return &InvalidAssignmentTargetError{Target: t}
	}
	name := n.left.text
	if numeric.MatchString(name) {
		return &AssignToLiteralError{Literal: name}
	}
	if err := n.right.eval(ctx); err != nil {
		return err
	}
	ctx.staged[name] = new(big.Float).SetPrec(ctx.prec).Set(ctx.top())
	return nil
}

// pow sets z to x^y. z may alias x. Powers with no real result, and 0 to a
// negative power, are domain errors.
func pow(z, x, y *big.Float) error {
	switch {
	case y.Sign() == 0:
		z.SetInt64(1)
	case x.Sign() == 0:
		if y.Sign() < 0 {
			return &DomainError{X: new(big.Float).Copy(x), Func: "^", Reason: "zero to a negative power"}
		}
		z.SetInt64(0)
	case x.Signbit():
		if !y.IsInt() {
			return &DomainError{X: new(big.Float).Copy(x), Func: "^", Reason: "negative base with non-integer exponent"}
		}
		k, _ := y.Int(nil)
		odd := k.Bit(0) == 1
		b := new(big.Float).SetPrec(z.Prec()).Neg(x)
		z.Set(bigfloat.Pow(new(big.Float).SetPrec(z.Prec()), b, y))
		if odd {
			z.Neg(z)
		}
	default:
		// Pow does not always leave its result in its first argument.
		z.Set(bigfloat.Pow(new(big.Float).SetPrec(z.Prec()), x, y))
	}
	return nil
}

// EvalString is a shortcut to parse and evaluate a string expression with a
// new context.
func EvalString(src string, opts ...ContextOption) (*big.Float, error) {
	a, err := Parse(src)
	if err != nil {
		return nil, err
	}
	return NewContext(opts...).Eval(a)
}
