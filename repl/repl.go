package repl

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"math/big"
	"strconv"
	"strings"

	"fortio.org/log"
	"fortio.org/safecast"
	"fortio.org/sets"
	"fortio.org/terminal"
	"github.com/rivo/uniseg"
	"grol.io/calc/ast"
	"grol.io/calc/eval"
	"grol.io/calc/parser"
	"grol.io/calc/token"
)

const (
	PROMPT = "calc> "
	// DefaultPrecision in bits.
	DefaultPrecision = 64
)

type Options struct {
	ShowParse   bool
	ShowEval    bool
	Precision   uint // bits, DefaultPrecision if 0.
	AngleUnit   eval.AngleUnit
	HistoryFile string
	MaxHistory  int
	MaxDepth    int    // eval.DefaultMaxDepth if 0.
	Definitions string // yaml file loaded before anything else.
}

func (o Options) precision() uint {
	if o.Precision == 0 {
		return DefaultPrecision
	}
	return o.Precision
}

// NewSession creates a session configured by options, including its definitions file.
func NewSession(options Options) (*eval.Session, error) {
	s := eval.NewSession(options.AngleUnit)
	if options.MaxDepth > 0 {
		s.MaxDepth = options.MaxDepth
	}
	if options.Definitions != "" {
		if err := LoadDefinitionsFile(s, options.Definitions, options.precision()); err != nil {
			return s, err
		}
	}
	return s, nil
}

// Format prints v with as many significant decimal digits as prec bits
// allow, minus 2 to hide rounding noise.
func Format(v *big.Float, prec uint) string {
	if v == nil {
		return ""
	}
	digits := safecast.MustConvert[int](uint64(prec) * 30103 / 100000)
	digits = max(1, digits-2)
	return v.Text('g', digits)
}

// EvalString evaluates what, line by line, in a new session and returns
// the printed values.
func EvalString(what string) (string, []error) {
	return EvalStringWithOption(Options{ShowEval: true}, what)
}

func EvalStringWithOption(options Options, what string) (string, []error) {
	s, err := NewSession(options)
	if err != nil {
		return "", []error{err}
	}
	out := &bytes.Buffer{}
	errs := EvalAll(s, strings.NewReader(what), out, options)
	return out.String(), errs
}

// EvalAll evaluates each line of in. Evaluation continues after errors,
// which are logged and returned.
func EvalAll(s *eval.Session, in io.Reader, out io.Writer, options Options) []error {
	var errs []error
	scanner := bufio.NewScanner(in)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}
		if err := EvalOne(s, line, out, options); err != nil {
			if ctx := ErrorContext(line, err); ctx != "" {
				log.Errf("line %d: %v\n%s", lineNum, err, ctx)
			} else {
				log.Errf("line %d: %v", lineNum, err)
			}
			errs = append(errs, fmt.Errorf("line %d: %w", lineNum, err))
		}
	}
	if err := scanner.Err(); err != nil {
		errs = append(errs, err)
	}
	return errs
}

// EvalOne evaluates what and prints its value, if any.
func EvalOne(s *eval.Session, what string, out io.Writer, options Options) error {
	stmts, err := s.Parse(what)
	if err != nil {
		return err
	}
	if options.ShowParse {
		fmt.Fprint(out, "== Parse ==> ")
		fmt.Fprintln(out, ast.Program(stmts))
	}
	res, err := s.Interpret(stmts, options.precision())
	if err != nil {
		return err
	}
	if !options.ShowEval || res == nil {
		return nil
	}
	if options.ShowParse {
		fmt.Fprint(out, "== Eval  ==> ")
	}
	fmt.Fprintln(out, Format(res, options.precision()))
	return nil
}

// ErrorContext returns the line of input containing the position of a
// parse error with a caret under it, or "" for other errors.
func ErrorContext(input string, err error) string {
	var perr *parser.Error
	if !errors.As(err, &perr) {
		return ""
	}
	pos := min(max(perr.Pos(), 0), len(input))
	start := strings.LastIndexByte(input[:pos], '\n') + 1
	end := strings.IndexByte(input[pos:], '\n')
	if end < 0 {
		end = len(input)
	} else {
		end += pos
	}
	line := input[start:end]
	return line + "\n" + strings.Repeat(" ", uniseg.StringWidth(input[start:pos])) + "^"
}

// command handles the repl's own commands, returns false if line isn't one.
func command(s *eval.Session, line string, out io.Writer, options *Options) bool {
	fields := strings.Fields(line)
	if len(fields) == 0 || !strings.HasPrefix(fields[0], ":") {
		return false
	}
	switch fields[0] {
	case ":deg":
		s.SetAngleUnit(eval.Degrees)
	case ":rad":
		s.SetAngleUnit(eval.Radians)
	case ":prec":
		if len(fields) == 1 {
			fmt.Fprintln(out, options.precision())
			break
		}
		p, err := strconv.ParseUint(fields[1], 10, 32)
		if err != nil || p == 0 {
			log.Errf("invalid precision %q", fields[1])
			break
		}
		options.Precision = uint(p)
	case ":names":
		fmt.Fprintln(out, strings.Join(s.Symbols().Names(), " "))
	case ":info":
		info := token.Info()
		fmt.Fprintln(out, "builtins:", strings.Join(eval.BuiltinNames(), " "))
		fmt.Fprintln(out, "keywords:", strings.Join(sets.Sort(info.Keywords), " "))
		fmt.Fprintln(out, "operators:", strings.Join(sets.Sort(info.Symbols), " "))
	default:
		log.Errf("unknown command %q, use :deg, :rad, :prec [bits], :names or :info", fields[0])
	}
	return true
}

// Interactive runs the read eval print loop on the terminal and returns
// the exit code.
func Interactive(options Options) int {
	options.ShowEval = true
	s, err := NewSession(options)
	if err != nil {
		log.Errf("Error loading definitions: %v", err)
	}
	term, err := terminal.Open(context.Background())
	if err != nil {
		return log.FErrf("Error creating terminal: %v", err)
	}
	defer term.Close()
	term.SetPrompt(PROMPT)
	autoComplete := NewCompletion()
	s.RegisterTrie(autoComplete.Trie)
	term.SetAutoCompleteCallback(autoComplete.AutoComplete())
	if options.MaxHistory > 0 {
		term.NewHistory(options.MaxHistory)
		if err := term.SetHistoryFile(options.HistoryFile); err != nil {
			log.Warnf("History file %q: %v", options.HistoryFile, err)
		}
	}
	log.Infof("%s mode, %d bits of precision. :deg, :rad and :prec change them.", s.AngleUnit(), options.precision())
	for {
		line, err := term.ReadLine()
		if errors.Is(err, io.EOF) {
			log.Infof("Exit requested, bye!")
			return 0
		}
		if err != nil {
			return log.FErrf("Error reading line: %v", err)
		}
		if strings.TrimSpace(line) == "" || command(s, line, term.Out, &options) {
			continue
		}
		if err := EvalOne(s, line, term.Out, options); err != nil {
			if ctx := ErrorContext(line, err); ctx != "" {
				fmt.Fprintln(term.Out, ctx)
			}
			fmt.Fprint(term.Out, log.Colors.Red)
			fmt.Fprintln(term.Out, err)
			fmt.Fprint(term.Out, log.ANSIColors.Reset)
		}
	}
}
