package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/zephyrtronium/calc/internal/config"
	"github.com/zephyrtronium/calc/internal/repl"
)

func main() {
	err := run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
	switch {
	case errors.Is(err, flag.ErrHelp):
		return
	case err != nil:
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// options holds command-line flags. Flags which are not set leave the
// configuration file's values alone.
type options struct {
	confname, inname string
	cfg              config.Config
	given            map[string]string
}

func parseFlags(args []string, stderr io.Writer) (*options, *flag.FlagSet, error) {
	fs := flag.NewFlagSet("calc", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var o options
	o.cfg = config.Default()
	addgiven := func(s string) error {
		name, val, ok := strings.Cut(s, "=")
		if !ok {
			return fmt.Errorf(`variable definitions must be "name=value", not %q`, s)
		}
		if o.given == nil {
			o.given = make(map[string]string)
		}
		o.given[strings.TrimSpace(name)] = strings.TrimSpace(val)
		return nil
	}
	fs.StringVar(&o.confname, "config", "", "YAML configuration file")
	fs.StringVar(&o.inname, "in", "", "script file to run (- for stdin)")
	fs.StringVar(&o.cfg.Format, "fmt", o.cfg.Format, "result formatting string")
	fs.StringVar(&o.cfg.Prompt, "prompt", o.cfg.Prompt, "interactive prompt")
	fs.UintVar(&o.cfg.Prec, "p", o.cfg.Prec, "precision of calculations in bits")
	fs.Func("given", "name=value variable definition (any number of times)", addgiven)
	fs.BoolVar(&o.cfg.Decimal, "decimal", false, "allow . and _ inside names and numbers")
	fs.BoolVar(&o.cfg.ShowVars, "vars", false, "print variables after each line")
	fs.BoolVar(&o.cfg.Echo, "echo", false, "print tokens and parse trees")
	fs.StringVar(&o.cfg.LogLevel, "log-level", o.cfg.LogLevel, "log level")
	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}
	return &o, fs, nil
}

// load reads the configuration file, if any, and applies the flags which were
// set explicitly.
func (o *options) load(fs *flag.FlagSet) (config.Config, error) {
	cfg := config.Default()
	if o.confname != "" {
		c, err := config.Load(o.confname)
		if err != nil {
			return config.Config{}, err
		}
		cfg = c
	}
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "fmt":
			cfg.Format = o.cfg.Format
		case "prompt":
			cfg.Prompt = o.cfg.Prompt
		case "p":
			cfg.Prec = o.cfg.Prec
		case "decimal":
			cfg.Decimal = o.cfg.Decimal
		case "vars":
			cfg.ShowVars = o.cfg.ShowVars
		case "echo":
			cfg.Echo = o.cfg.Echo
		case "log-level":
			cfg.LogLevel = o.cfg.LogLevel
		}
	})
	if len(o.given) != 0 {
		g := make(map[string]string, len(cfg.Given)+len(o.given))
		for k, v := range cfg.Given {
			g[k] = v
		}
		for k, v := range o.given {
			g[k] = v
		}
		cfg.Given = g
	}
	return cfg, cfg.Validate()
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	o, fs, err := parseFlags(args, stderr)
	if err != nil {
		return err
	}
	cfg, err := o.load(fs)
	if err != nil {
		return err
	}
	lvl, err := cfg.Level()
	if err != nil {
		return err
	}
	log := zerolog.New(zerolog.ConsoleWriter{Out: stderr, TimeFormat: time.TimeOnly}).
		Level(lvl).
		With().
		Timestamp().
		Str("session", uuid.New().String()).
		Logger()

	s, err := repl.New(cfg, stdout, log)
	if err != nil {
		return err
	}
	log.Debug().Uint("prec", cfg.Prec).Int("given", len(cfg.Given)).Msg("session started")

	in, err := infile(o.inname, stdin)
	if err != nil {
		return err
	}
	switch {
	case in != nil:
		if c, ok := in.(io.Closer); ok {
			defer c.Close()
		}
		if err := s.Script(in); err != nil {
			return err
		}
	case fs.NArg() == 0:
		return s.Run(stdin)
	}
	for _, arg := range fs.Args() {
		if s.Line(arg) {
			break
		}
	}
	return nil
}

// infile opens the script named by inname. It returns nil if there is no
// script.
func infile(inname string, stdin io.Reader) (io.Reader, error) {
	switch inname {
	case "":
		return nil, nil
	case "-":
		return bufio.NewReader(stdin), nil
	}
	f, err := os.Open(inname)
	if err != nil {
		return nil, fmt.Errorf("opening script: %w", err)
	}
	return f, nil
}
