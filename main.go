// Calc is an arbitrary precision calculator with implicit multiplication,
// user variables and functions.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"fortio.org/cli"
	"fortio.org/log"
	"fortio.org/safecast"
	"fortio.org/struct2env"
	"fortio.org/terminal"
	"grol.io/calc/eval"
	"grol.io/calc/repl"
)

func main() {
	os.Exit(Main())
}

type Config struct {
	HistoryFile string
	Precision   int
	AngleUnit   string
}

var config = Config{}

// Set when built with profiling support.
var startProfiling func() (stop func() int, ret int)

func EnvHelp(w io.Writer) {
	res, _ := struct2env.StructToEnvVars(config)
	str := struct2env.ToShellWithPrefix("CALC_", res, true)
	fmt.Fprintln(w, "# Calc environment variables:")
	fmt.Fprint(w, str)
}

func Main() int {
	commandFlag := flag.String("c", "", "expression(s) to evaluate instead of interactive mode")
	showParse := flag.Bool("parse", false, "show parse tree")
	showEval := flag.Bool("eval", true, "show eval results")
	cli.EnvHelpFuncs = append(cli.EnvHelpFuncs, EnvHelp)
	errs := struct2env.SetFromEnv("CALC_", &config)
	if len(errs) > 0 {
		log.Errf("Error setting config from env: %v", errs)
	}
	const historyDefault = "~/.calc_history" // replaced by the actual home dir if not changed.
	defaultHistoryFile := historyDefault
	if config.HistoryFile != "" {
		defaultHistoryFile = config.HistoryFile
	}
	defaultPrecision := repl.DefaultPrecision
	if config.Precision > 0 {
		defaultPrecision = config.Precision
	}
	degrees := flag.Bool("deg", false, "use degrees instead of radians for trigonometric functions")
	precision := flag.Int("p", defaultPrecision, "precision in `bits` of the results")
	defs := flag.String("defs", "", "yaml `file` of angle unit and declarations to load first")
	historyFile := flag.String("history", defaultHistoryFile, "history `file` to use")
	maxHistory := flag.Int("max-history", terminal.DefaultHistoryCapacity, "max history `size`, use 0 to disable.")
	maxDepth := flag.Int("max-depth", eval.DefaultMaxDepth, "Maximum nesting of function calls and variables")

	cli.ArgsHelp = "files to evaluate or `-` for stdin without prompt or no arguments for interactive mode..."
	cli.MaxArgs = -1
	cli.Main()
	histFile := *historyFile
	if histFile == historyDefault {
		homeDir, err := os.UserHomeDir()
		histFile = filepath.Join(homeDir, ".calc_history")
		if err != nil {
			log.Warnf("Couldn't get user home dir: %v", err)
			histFile = ""
		}
	}
	prec, err := safecast.Convert[uint](*precision)
	if err != nil || prec == 0 {
		return log.FErrf("Invalid precision %d, must be at least 1 bit", *precision)
	}
	unit := eval.Radians
	if config.AngleUnit != "" {
		if unit, err = eval.ParseAngleUnit(config.AngleUnit); err != nil {
			return log.FErrf("CALC_ANGLE_UNIT: %v", err)
		}
	}
	if *degrees {
		unit = eval.Degrees
	}
	log.Infof("calc %s - welcome!", cli.LongVersion)
	options := repl.Options{
		ShowParse:   *showParse,
		ShowEval:    *showEval,
		Precision:   prec,
		AngleUnit:   unit,
		HistoryFile: histFile,
		MaxHistory:  *maxHistory,
		MaxDepth:    *maxDepth,
		Definitions: *defs,
	}
	stop := func() int { return 0 }
	if startProfiling != nil {
		var ret int
		if stop, ret = startProfiling(); ret != 0 {
			return ret
		}
	}
	ret := run(options, *commandFlag, flag.Args())
	if r := stop(); r != 0 && ret == 0 {
		return r
	}
	return ret
}

func run(options repl.Options, command string, files []string) int {
	if command != "" {
		res, errs := repl.EvalStringWithOption(options, command)
		if len(errs) > 0 {
			log.Errf("Errors: %v", errs)
		}
		fmt.Print(res)
		return len(errs)
	}
	if len(files) == 0 {
		return repl.Interactive(options)
	}
	s, err := repl.NewSession(options)
	if err != nil {
		return log.FErrf("Error loading definitions: %v", err)
	}
	for _, file := range files {
		ret := processOneFile(file, s, options)
		if ret != 0 {
			return ret
		}
	}
	log.Infof("All done")
	return 0
}

func processOneStream(s *eval.Session, in io.Reader, options repl.Options) int {
	errs := repl.EvalAll(s, in, os.Stdout, options)
	if len(errs) > 0 {
		log.Errf("Errors: %v", errs)
	}
	return len(errs)
}

// All files share the same session.
func processOneFile(file string, s *eval.Session, options repl.Options) int {
	if file == "-" {
		log.Infof("Running on stdin")
		return processOneStream(s, os.Stdin, options)
	}
	f, err := os.Open(file)
	if err != nil {
		return log.FErrf("%v", err)
	}
	defer f.Close()
	log.Infof("Running %s", file)
	return processOneStream(s, f, options)
}
