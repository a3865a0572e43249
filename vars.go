package calc

import (
	"math/big"
	"strings"
)

// Set sets the value of a variable. Returns ctx for chaining. Calling Set
// while the context is being used to evaluate an expression panics.
func (ctx *Context) Set(name string, value *big.Float) *Context {
	if ctx.staged != nil {
		panic("calc: Set on in-use context")
	}
	if ctx.names == nil {
		ctx.names = make(map[string]*big.Float)
	}
	ctx.names[name] = new(big.Float).SetPrec(ctx.prec).Set(value)
	return ctx
}

// Lookup returns a copy of the value of a variable. If there is no such
// variable in the context, then the result is nil.
func (ctx *Context) Lookup(name string) *big.Float {
	v := ctx.names[name]
	if v == nil {
		return nil
	}
	return new(big.Float).Copy(v)
}

// Names returns the names of all variables in the context in sorted order.
func (ctx *Context) Names() []string {
	r := make([]string, 0, len(ctx.names))
	for k := range ctx.names {
		r = append(r, k)
	}
	sortstrs(r)
	return r
}

// Len returns the number of variables in the context.
func (ctx *Context) Len() int {
	return len(ctx.names)
}

// String formats the context's variables like {x: 5, y: 0.5}, sorted by name.
func (ctx *Context) String() string {
	var b strings.Builder
	b.WriteByte('{')
	for i, k := range ctx.Names() {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(k)
		b.WriteString(": ")
		b.WriteString(ctx.names[k].Text('g', -1))
	}
	b.WriteByte('}')
	return b.String()
}

// lookup finds a variable for evaluation. Assignments staged by the
// expression being evaluated shadow committed values.
func (ctx *Context) lookup(name string) *big.Float {
	if v := ctx.staged[name]; v != nil {
		return v
	}
	return ctx.names[name]
}

// commit moves staged assignments into the context's variables.
func (ctx *Context) commit() {
	if len(ctx.staged) == 0 {
		return
	}
	if ctx.names == nil {
		ctx.names = make(map[string]*big.Float, len(ctx.staged))
	}
	for k, v := range ctx.staged {
		ctx.names[k] = v
	}
}
