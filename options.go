package calc

// ParseOption is an option for tokenizing and parsing.
type ParseOption interface {
	parseOption(parsectx) parsectx
}

// parsectx holds options for lexing and parsing.
type parsectx struct {
	// decimal allows . and _ inside atoms after their first rune.
	decimal bool
}

func newParsectx(opts []ParseOption) parsectx {
	var p parsectx
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		p = opt.parseOption(p)
	}
	return p
}

type decimalopt bool

// DecimalAtoms lets atoms continue through '.' and '_' after their first
// rune, so that "1.5" and "rate_2" are single atoms instead of three tokens.
// A leading '.' is still an operator.
func DecimalAtoms() ParseOption {
	return decimalopt(true)
}

func (o decimalopt) parseOption(p parsectx) parsectx {
	p.decimal = bool(o)
	return p
}
