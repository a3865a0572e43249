package calc

import (
	"errors"
	"reflect"
	"strings"
	"testing"
	"unicode"
)

func TestTokenize(t *testing.T) {
	atom := func(text string, pos int) Token { return Token{Text: text, Kind: TokenAtom, Pos: pos} }
	op := func(text string, pos int) Token { return Token{Text: text, Kind: TokenOperator, Pos: pos} }
	cases := []struct {
		name   string
		src    string
		tokens []Token
	}{
		// atoms
		{"num", "0", []Token{atom("0", 1)}},
		{"bignum", "9876543210", []Token{atom("9876543210", 1)}},
		{"spaced", "1 0", []Token{atom("1", 1), atom("0", 3)}},
		{"ident", "x", []Token{atom("x", 1)}},
		{"alnum", "a1b2", []Token{atom("a1b2", 1)}},
		{"digitfirst", "1a", []Token{atom("1a", 1)}},
		{"unicode", "π*2", []Token{atom("π", 1), op("*", 2), atom("2", 3)}},
		{"whitespace", "\t x \n", []Token{atom("x", 3)}},
		// operators
		{"add", "1+x", []Token{atom("1", 1), op("+", 2), atom("x", 3)}},
		{"neg", "-1", []Token{op("-", 1), atom("1", 2)}},
		{"double", "a--b", []Token{atom("a", 1), op("-", 2), op("-", 3), atom("b", 4)}},
		{"paren", "(1)", []Token{op("(", 1), atom("1", 2), op(")", 3)}},
		{"assign", "x=5", []Token{atom("x", 1), op("=", 2), atom("5", 3)}},
		{"all", "+-*/^=()", []Token{op("+", 1), op("-", 2), op("*", 3), op("/", 4), op("^", 5), op("=", 6), op("(", 7), op(")", 8)}},
		// anything else is a one-rune operator too
		{"dot", "1.5", []Token{atom("1", 1), op(".", 2), atom("5", 3)}},
		{"underscore", "a_b", []Token{atom("a", 1), op("_", 2), atom("b", 3)}},
		{"symbol", "$", []Token{op("$", 1)}},
		{"multirune", "a<=b", []Token{atom("a", 1), op("<", 2), op("=", 3), atom("b", 4)}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			s, err := Tokenize(c.src)
			if err != nil {
				t.Fatalf("tokenizing %q: %v", c.src, err)
			}
			if got := s.Remaining(); !reflect.DeepEqual(got, c.tokens) {
				t.Errorf("tokenizing %q: want %v, got %v", c.src, c.tokens, got)
			}
			for range c.tokens {
				s.Next()
			}
			eof := s.Peek()
			if eof.Kind != TokenEOF || eof.Text != "" {
				t.Errorf("tokenizing %q: want EOF after tokens, got %v", c.src, eof)
			}
			if want := len([]rune(c.src)) + 1; eof.Pos != want {
				t.Errorf("tokenizing %q: want EOF at %d, got %d", c.src, want, eof.Pos)
			}
		})
	}
}

func TestTokenizeDecimal(t *testing.T) {
	cases := []struct {
		src   string
		texts []string
	}{
		{"1.5", []string{"1.5"}},
		{"rate_2 * 3", []string{"rate_2", "*", "3"}},
		{"x_", []string{"x_"}},
		{".5", []string{".", "5"}},
		{"_a", []string{"_", "a"}},
		{"1.2.3", []string{"1.2.3"}},
	}
	for _, c := range cases {
		s, err := Tokenize(c.src, DecimalAtoms())
		if err != nil {
			t.Errorf("tokenizing %q: %v", c.src, err)
			continue
		}
		var got []string
		for _, tok := range s.Remaining() {
			got = append(got, tok.Text)
		}
		if !reflect.DeepEqual(got, c.texts) {
			t.Errorf("tokenizing %q: want %q, got %q", c.src, c.texts, got)
		}
	}
}

func TestTokenizeEmpty(t *testing.T) {
	for _, src := range []string{"", " ", "\t\r\n ", "\u00a0\u2003"} {
		s, err := Tokenize(src)
		if s != nil {
			t.Errorf("tokenizing %q: want nil stream, got %v", src, s)
		}
		var e *EmptyInputError
		if !errors.As(err, &e) {
			t.Errorf("tokenizing %q: want *EmptyInputError, got %v", src, err)
		}
	}
}

func TestTokenStreamEOF(t *testing.T) {
	s, err := Tokenize("a")
	if err != nil {
		t.Fatal(err)
	}
	if tok := s.Next(); tok.Text != "a" {
		t.Fatalf("want a, got %v", tok)
	}
	for i := 0; i < 3; i++ {
		if tok := s.Peek(); tok.Kind != TokenEOF {
			t.Errorf("peek %d: want EOF, got %v", i, tok)
		}
		if tok := s.Next(); tok.Kind != TokenEOF {
			t.Errorf("next %d: want EOF, got %v", i, tok)
		}
	}
	if s.Len() != 0 {
		t.Errorf("want empty stream, have %d tokens", s.Len())
	}
	if err := s.ExpectEOF(); err != nil {
		t.Errorf("unexpected error from exhausted stream: %v", err)
	}
}

func TestTokenStreamString(t *testing.T) {
	s, err := Tokenize("1 + (x")
	if err != nil {
		t.Fatal(err)
	}
	if got, want := s.String(), "1, +, (, x"; got != want {
		t.Errorf("want %q, got %q", want, got)
	}
	s.Next()
	if got, want := s.String(), "+, (, x"; got != want {
		t.Errorf("after next: want %q, got %q", want, got)
	}
	err = s.ExpectEOF()
	var u *UnconsumedInputError
	if !errors.As(err, &u) {
		t.Fatalf("want *UnconsumedInputError, got %v", err)
	}
	if u.Col != 3 || !reflect.DeepEqual(u.Tokens, []string{"+", "(", "x"}) {
		t.Errorf("wrong unconsumed input: %+v", u)
	}
}

func TestTokenizeRoundTrip(t *testing.T) {
	cases := []string{
		"1 + 2 * 3",
		"(a+b)*2",
		"x   =\ty= 3",
		"-(2+3)^ 2",
		"αβγ / 7q $ % ,",
	}
	strip := func(s string) string {
		return strings.Map(func(r rune) rune {
			if unicode.IsSpace(r) {
				return -1
			}
			return r
		}, s)
	}
	for _, src := range cases {
		s, err := Tokenize(src)
		if err != nil {
			t.Errorf("tokenizing %q: %v", src, err)
			continue
		}
		texts := make([]string, 0, s.Len())
		for _, tok := range s.Remaining() {
			if tok.Text == "" {
				t.Errorf("tokenizing %q: empty token %v", src, tok)
			}
			texts = append(texts, tok.Text)
		}
		if got, want := strip(strings.Join(texts, " ")), strip(src); got != want {
			t.Errorf("round trip of %q: want %q, got %q", src, want, got)
		}
	}
}
