package calc_test

import (
	"math/big"
	"testing"

	"github.com/zephyrtronium/calc"
)

func FuzzEval(f *testing.F) {
	f.Add("x")
	f.Add("y = x ^ 0")
	f.Add("2 ^ -3 ^ 2")
	f.Add("(0 - 2) ^ (1 / 2)")
	f.Fuzz(func(t *testing.T, s string) {
		calc.EvalString(s, calc.SetVar("x", new(big.Float)))
	})
}
