package calc_test

import (
	"testing"

	"github.com/zephyrtronium/calc"
)

func FuzzParse(f *testing.F) {
	f.Add("x")
	f.Add("1 + 2 * 3")
	f.Add("x = -(y ^ 2) / 3")
	f.Add("((")
	f.Fuzz(func(t *testing.T, s string) {
		calc.Parse(s)
		calc.Parse(s, calc.DecimalAtoms())
	})
}
