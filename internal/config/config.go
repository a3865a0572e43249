// Package config holds the settings of a calculator session, loaded from a
// YAML file and overridden by command-line flags.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math/big"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"

	"github.com/zephyrtronium/calc"
)

// Config holds the configuration of one calculator session.
type Config struct {
	Prompt   string `yaml:"prompt"`    // Printed before each interactive line
	Format   string `yaml:"format"`    // fmt verb for results, e.g. "%g"
	Prec     uint   `yaml:"precision"` // Bits of precision; 0 means calc.DefaultPrec
	Decimal  bool   `yaml:"decimal"`   // Allow . and _ inside atoms
	ShowVars bool   `yaml:"show_vars"` // Print the variables after each line
	Echo     bool   `yaml:"echo"`      // Print tokens and parse trees
	LogLevel string `yaml:"log_level"` // zerolog level name
	// Given holds initial variables. Each value is an expression evaluated
	// on its own before the session starts.
	Given map[string]string `yaml:"given"`
}

// Default returns the configuration used when no file or flag says otherwise.
func Default() Config {
	return Config{
		Prompt:   "> ",
		Format:   "%g",
		Prec:     calc.DefaultPrec,
		LogLevel: "warn",
	}
}

// Load reads a YAML configuration file over the defaults.
func Load(path string) (Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return Config{}, fmt.Errorf("opening config: %w", err)
	}
	defer f.Close()
	cfg, err := Read(f)
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Read decodes YAML configuration over the defaults and validates it. An
// empty document yields the defaults.
func Read(r io.Reader) (Config, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return Config{}, fmt.Errorf("reading config: %w", err)
	}
	cfg := Default()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("decoding config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks that the configuration can start a session.
func (c Config) Validate() error {
	if c.Prec > big.MaxPrec {
		return fmt.Errorf("precision %d exceeds maximum %d", c.Prec, uint(big.MaxPrec))
	}
	if strings.Count(c.Format, "%") != 1 {
		return fmt.Errorf("result format %q must contain exactly one verb", c.Format)
	}
	if _, err := c.Level(); err != nil {
		return err
	}
	for name := range c.Given {
		if !c.isVarName(name) {
			return fmt.Errorf("cannot set %q: not a variable name", name)
		}
	}
	return nil
}

// isVarName checks that name lexes to a single atom that is not a number.
func (c Config) isVarName(name string) bool {
	s, err := calc.Tokenize(name, c.ParseOptions()...)
	if err != nil || s.Len() != 1 {
		return false
	}
	tok := s.Next()
	return tok.Kind == calc.TokenAtom && !calc.IsNumber(tok.Text)
}

// Level parses the configured log level.
func (c Config) Level() (zerolog.Level, error) {
	if c.LogLevel == "" {
		return zerolog.WarnLevel, nil
	}
	l, err := zerolog.ParseLevel(strings.ToLower(c.LogLevel))
	if err != nil {
		return zerolog.NoLevel, fmt.Errorf("invalid log level %q: %w", c.LogLevel, err)
	}
	return l, nil
}

// ParseOptions returns the parse options the configuration selects.
func (c Config) ParseOptions() []calc.ParseOption {
	if c.Decimal {
		return []calc.ParseOption{calc.DecimalAtoms()}
	}
	return nil
}

// Context creates the evaluation context for a session, evaluating the given
// variables first.
func (c Config) Context() (*calc.Context, error) {
	opts := []calc.ContextOption{calc.Prec(c.Prec)}
	for name, src := range c.Given {
		a, err := calc.Parse(src, c.ParseOptions()...)
		if err != nil {
			return nil, fmt.Errorf("setting %s: %w", name, err)
		}
		v, err := calc.NewContext(calc.Prec(c.Prec)).Eval(a)
		if err != nil {
			return nil, fmt.Errorf("setting %s: %w", name, err)
		}
		opts = append(opts, calc.SetVar(name, v))
	}
	return calc.NewContext(opts...), nil
}
