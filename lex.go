package calc

import (
	"strconv"
	"strings"
	"unicode"
)

// Token is a lexical unit of an input line.
type Token struct {
	// Text is the source text of the token. It is empty only for EOF.
	Text string
	// Kind is the kind of the token.
	Kind TokenKind
	// Pos is the column of the token's first rune, counting from 1.
	Pos int
}

func (t Token) String() string {
	return t.Kind.String() + ":" + t.Text + "@" + strconv.Itoa(t.Pos)
}

// TokenKind is the lexical class of a token.
type TokenKind int8

const (
	// TokenEOF indicates the end of the input.
	TokenEOF TokenKind = iota
	// TokenAtom is a run of letters and digits. Whether it is a number or a
	// variable name is decided during evaluation.
	TokenAtom
	// TokenOperator is any single rune which is neither whitespace nor part
	// of an atom, including parentheses.
	TokenOperator
)

func (k TokenKind) String() string {
	switch k {
	case TokenEOF:
		return "EOF"
	case TokenAtom:
		return "Atom"
	case TokenOperator:
		return "Operator"
	default:
		return "TokenKind(" + strconv.Itoa(int(k)) + ")"
	}
}

// TokenStream is the sequence of tokens lexed from one line. Tokens are
// consumed from the front only.
type TokenStream struct {
	toks []Token
	// k is the index of the next token.
	k int
	// end is the column just past the last rune of the line, used as the
	// position of EOF.
	end int
}

// Peek returns the next token without consuming it. Once the stream is
// exhausted, the result is always an EOF token.
func (s *TokenStream) Peek() Token {
	if s.k >= len(s.toks) {
		return Token{Kind: TokenEOF, Pos: s.end}
	}
	return s.toks[s.k]
}

// Next consumes and returns the next token. Once the stream is exhausted, the
// result is always an EOF token.
func (s *TokenStream) Next() Token {
	tok := s.Peek()
	if s.k < len(s.toks) {
		s.k++
	}
	return tok
}

// Len returns the number of unconsumed tokens.
func (s *TokenStream) Len() int {
	return len(s.toks) - s.k
}

// Remaining returns a copy of the unconsumed tokens in input order.
func (s *TokenStream) Remaining() []Token {
	return append([]Token(nil), s.toks[s.k:]...)
}

// ExpectEOF returns an *UnconsumedInputError if any tokens remain.
func (s *TokenStream) ExpectEOF() error {
	if s.Len() == 0 {
		return nil
	}
	rest := s.Remaining()
	err := UnconsumedInputError{Col: rest[0].Pos, Tokens: make([]string, len(rest))}
	for i, tok := range rest {
		err.Tokens[i] = tok.Text
	}
	return &err
}

// String lists the texts of the unconsumed tokens, separated by commas.
func (s *TokenStream) String() string {
	var b strings.Builder
	for i, tok := range s.toks[s.k:] {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(tok.Text)
	}
	return b.String()
}

// Tokenize splits a line into atoms and single-rune operators. Whitespace
// separates tokens and is otherwise discarded. If the line contains nothing
// but whitespace, the error is an *EmptyInputError.
func Tokenize(line string, opts ...ParseOption) (*TokenStream, error) {
	p := newParsectx(opts)
	return tokenize(line, &p)
}

func tokenize(line string, p *parsectx) (*TokenStream, error) {
	if strings.TrimSpace(line) == "" {
		return nil, &EmptyInputError{}
	}
	src := []rune(line)
	s := TokenStream{end: len(src) + 1}
	for i := 0; i < len(src); {
		r := src[i]
		switch {
		case unicode.IsSpace(r):
			i++
		case isAtomRune(r):
			k := i + 1
			for k < len(src) && (isAtomRune(src[k]) || p.decimal && isAtomCont(src[k])) {
				k++
			}
			s.toks = append(s.toks, Token{Text: string(src[i:k]), Kind: TokenAtom, Pos: i + 1})
			i = k
		default:
			s.toks = append(s.toks, Token{Text: string(r), Kind: TokenOperator, Pos: i + 1})
			i++
		}
	}
	return &s, nil
}

func isAtomRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}

// isAtomCont reports whether r continues an atom when decimal atoms are
// enabled. It never starts one.
func isAtomCont(r rune) bool {
	return r == '.' || r == '_'
}
