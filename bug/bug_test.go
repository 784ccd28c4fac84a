package bug_test

import (
	"testing"

	"grol.io/calc/eval"
	"grol.io/calc/repl"
)

func TestFactorialFunction(t *testing.T) {
	s := `
fact(n) = n!
fact(20)`
	expected := "2432902008176640000\n"
	options := repl.Options{ShowEval: true, Precision: 128}
	if got, errs := repl.EvalStringWithOption(options, s); got != expected || len(errs) > 0 {
		t.Errorf("EvalString() got %v\n---\n%s\n---want---\n%s\n---", errs, got, expected)
	}
}

// Degree mode results of multiples of 90 used to be off by one ulp.
func TestQuarterTurnsExact(t *testing.T) {
	got, errs := repl.EvalStringWithOption(repl.Options{ShowEval: true, Precision: 512, AngleUnit: eval.Degrees}, "cos(90)\nsin(-270)")
	if got != "0\n1\n" || len(errs) > 0 {
		t.Errorf("EvalString() got %v %q", errs, got)
	}
}

// A bar closing an absolute value inside parentheses used to end the outer one.
func TestNestedAbsInGroup(t *testing.T) {
	got, errs := repl.EvalString("|(2|-3|)|-1")
	if got != "5\n" || len(errs) > 0 {
		t.Errorf("EvalString() got %v %q", errs, got)
	}
}
