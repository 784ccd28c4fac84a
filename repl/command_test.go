package repl

import (
	"bytes"
	"strings"
	"testing"

	"grol.io/calc/eval"
)

func TestCommands(t *testing.T) {
	s := eval.NewSession(eval.Radians)
	options := Options{}
	out := &bytes.Buffer{}
	if command(s, "1+1", out, &options) {
		t.Errorf("1+1 is not a command")
	}
	if !command(s, ":deg", out, &options) || s.AngleUnit() != eval.Degrees {
		t.Errorf(":deg should switch to degrees, got %s", s.AngleUnit())
	}
	if !command(s, " :rad ", out, &options) || s.AngleUnit() != eval.Radians {
		t.Errorf(":rad should switch to radians, got %s", s.AngleUnit())
	}
	command(s, ":prec", out, &options)
	if got := out.String(); got != "64\n" {
		t.Errorf(":prec printed %q", got)
	}
	command(s, ":prec 200", out, &options)
	if options.Precision != 200 {
		t.Errorf(":prec 200 set %d", options.Precision)
	}
	command(s, ":prec zero", out, &options)
	if options.Precision != 200 {
		t.Errorf("invalid :prec changed precision to %d", options.Precision)
	}
	if _, err := s.Eval("x = 1", 64); err != nil {
		t.Fatal(err)
	}
	out.Reset()
	command(s, ":names", out, &options)
	if got := out.String(); got != "x\n" {
		t.Errorf(":names printed %q", got)
	}
	out.Reset()
	command(s, ":info", out, &options)
	got := out.String()
	for _, want := range []string{"builtins: abs ", " sqrt ", "keywords: ", "operators: "} {
		if !strings.Contains(got, want) {
			t.Errorf(":info output %q lacks %q", got, want)
		}
	}
	if !command(s, ":nope", out, &options) {
		t.Errorf("unknown commands are still commands")
	}
}
