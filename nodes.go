package calc

import (
	"strconv"
	"strings"
)

// node is a node in the syntax tree of an expression.
type node struct {
	kind nodeKind

	// text is the atom text for nodeAtom or the operator for nodeBinary.
	text string
	// pos is the column of the token that created the node.
	pos int
	// paren is set when the node was written inside parentheses.
	paren bool

	left  *node
	right *node
}

type nodeKind int8

const (
	nodeNone nodeKind = iota

	nodeAtom   // push number or lookup(text)
	nodeBinary // evaluate left and right, apply text; = assigns instead
)

func (k nodeKind) String() string {
	switch k {
	case nodeNone:
		return "None"
	case nodeAtom:
		return "Atom"
	case nodeBinary:
		return "Binary"
	default:
		return "nodeKind(" + strconv.Itoa(int(k)) + ")"
	}
}

// String formats the tree in prefix form, e.g. (+ 1 (* 2 3)).
func (n *node) String() string {
	var b strings.Builder
	n.fmt(&b)
	return b.String()
}

func (n *node) fmt(b *strings.Builder) {
	switch n.kind {
	case nodeAtom:
		b.WriteString(n.text)
	case nodeBinary:
		b.WriteByte('(')
		b.WriteString(n.text)
		b.WriteByte(' ')
		n.left.fmt(b)
		b.WriteByte(' ')
		n.right.fmt(b)
		b.WriteByte(')')
	default:
		// Invalid nodes use invalid characters.
		b.WriteString("$" + n.kind.String() + "$")
	}
}

// assignable reports whether n can be the target of an assignment.
func (n *node) assignable() bool {
	return n.kind == nodeAtom && !n.paren
}
