// Package calc implements an interactive arithmetic calculator with
// variables.
//
// A line is split into atoms (runs of letters and digits) and single-rune
// operators, then parsed by binding power into a tree: "=" binds loosest and
// groups to the right, then "+" and "-", then "*" and "/", then "^", which
// also groups to the right. A leading "-" negates the following power, so
// "-2^2" is -4 and "-5+3" is -2. Whether an atom is a number or a variable is
// decided when the tree is evaluated.
//
// A Context holds the variables that "x = ..." assigns. Assignments made by a
// line take effect only if the whole line evaluates, so a failing line never
// leaves a partial update behind.
//
package calc
