// Package repl runs calculator sessions: it reads lines, hands each one to
// the calc package, and prints results, errors, and variables.
package repl

import (
	"bufio"
	"fmt"
	"io"
	"math/big"
	"strings"

	"github.com/rs/zerolog"

	"github.com/zephyrtronium/calc"
	"github.com/zephyrtronium/calc/internal/config"
)

// Banner is printed when an interactive session starts.
const Banner = "Welcome to the expression evaluator! Type 'quit' or 'exit' to stop."

// Session evaluates lines against one set of variables. It is not safe for
// concurrent use.
type Session struct {
	ctx  *calc.Context
	cfg  config.Config
	opts []calc.ParseOption
	out  io.Writer
	log  zerolog.Logger
}

// New creates a session writing to out. The configuration's given variables
// are evaluated immediately.
func New(cfg config.Config, out io.Writer, log zerolog.Logger) (*Session, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	ctx, err := cfg.Context()
	if err != nil {
		return nil, err
	}
	return &Session{
		ctx:  ctx,
		cfg:  cfg,
		opts: cfg.ParseOptions(),
		out:  out,
		log:  log,
	}, nil
}

// Context returns the session's evaluation context.
func (s *Session) Context() *calc.Context {
	return s.ctx
}

// Line processes one line of interactive input. It reports whether the line
// asks to end the session.
func (s *Session) Line(text string) (done bool) {
	line := strings.TrimSpace(text)
	switch {
	case isQuit(line):
		return true
	case line == "":
		return false
	}
	r, e, err := s.eval(line)
	switch {
	case err != nil:
		fmt.Fprintf(s.out, "Error: %v\n", err)
	default:
		if name, ok := e.Assignment(); ok {
			fmt.Fprintf(s.out, "%s = "+s.cfg.Format+"\n", name, r)
		} else {
			fmt.Fprintf(s.out, "Result: "+s.cfg.Format+"\n", r)
		}
	}
	if s.cfg.ShowVars {
		s.vars()
	}
	return false
}

// Run runs an interactive session over in until EOF or a quit command.
func (s *Session) Run(in io.Reader) error {
	fmt.Fprintln(s.out, Banner)
	sc := bufio.NewScanner(in)
	for {
		fmt.Fprint(s.out, s.cfg.Prompt)
		if !sc.Scan() {
			break
		}
		if s.Line(sc.Text()) {
			s.log.Debug().Msg("quit")
			return nil
		}
	}
	// Finish the prompt line at EOF.
	fmt.Fprintln(s.out)
	return sc.Err()
}

// Script runs a script from in. Text after # is a comment, "vars" prints the
// variables, and quit or exit stops early. Only the values of
// non-assignments are printed, followed by the variables at the end.
func (s *Session) Script(in io.Reader) error {
	sc := bufio.NewScanner(in)
	n := 0
	for sc.Scan() {
		n++
		line, _, _ := strings.Cut(sc.Text(), "#")
		line = strings.TrimSpace(line)
		switch {
		case isQuit(line):
			fmt.Fprintln(s.out, "... exiting")
			s.log.Info().Int("line", n).Msg("script quit")
			s.vars()
			return nil
		case line == "vars":
			fmt.Fprintln(s.out, s.ctx)
			continue
		case line == "":
			continue
		}
		r, e, err := s.eval(line)
		if err != nil {
			fmt.Fprintf(s.out, "Error: %v\n", err)
			continue
		}
		if _, ok := e.Assignment(); !ok {
			fmt.Fprintf(s.out, s.cfg.Format+"\n", r)
		}
	}
	if err := sc.Err(); err != nil {
		return fmt.Errorf("reading script: %w", err)
	}
	s.log.Info().Int("lines", n).Msg("script done")
	s.vars()
	return nil
}

// eval parses and evaluates one non-blank line.
func (s *Session) eval(line string) (*big.Float, *calc.Expr, error) {
	toks, err := calc.Tokenize(line, s.opts...)
	if err != nil {
		return nil, nil, err
	}
	s.log.Debug().Str("tokens", toks.String()).Msg("lexed")
	if s.cfg.Echo {
		fmt.Fprintln(s.out, "Tokens:", toks)
	}
	e, err := calc.ParseExpression(toks, 0)
	if err == nil {
		err = toks.ExpectEOF()
	}
	if err != nil {
		s.log.Debug().Err(err).Str("line", line).Msg("parse failed")
		return nil, nil, err
	}
	reads := e.Vars()
	s.log.Debug().Stringer("tree", e).Strs("reads", reads).Msg("parsed")
	if s.cfg.Echo {
		fmt.Fprintln(s.out, "Parsed AST:", e)
		if len(reads) != 0 {
			fmt.Fprintln(s.out, "Reads:", strings.Join(reads, ", "))
		}
	}
	r, err := s.ctx.Eval(e)
	if err != nil {
		s.log.Debug().Err(err).Str("line", line).Msg("evaluation failed")
		return nil, nil, err
	}
	return r, e, nil
}

func (s *Session) vars() {
	fmt.Fprintln(s.out, "Variables:", s.ctx)
}

func isQuit(line string) bool {
	return strings.EqualFold(line, "quit") || strings.EqualFold(line, "exit")
}
