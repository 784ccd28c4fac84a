package repl

import (
	"errors"
	"fmt"
	"io"
	"os"

	"fortio.org/log"
	"grol.io/calc/eval"
	"gopkg.in/yaml.v3"
)

// Definitions is the content of a definitions file, for instance:
//
//	angle_unit: degrees
//	declarations:
//	  - g = 9.81
//	  - f(t) = g t^2 / 2
type Definitions struct {
	AngleUnit    string   `yaml:"angle_unit"`
	Declarations []string `yaml:"declarations"`
}

// LoadDefinitions reads yaml definitions from r into s. Declarations are
// evaluated in order, with prec bits of precision. An empty input is fine.
func LoadDefinitions(s *eval.Session, r io.Reader, prec uint) error {
	var defs Definitions
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)
	if err := decoder.Decode(&defs); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return fmt.Errorf("definitions: parse: %w", err)
	}
	if defs.AngleUnit != "" {
		unit, err := eval.ParseAngleUnit(defs.AngleUnit)
		if err != nil {
			return fmt.Errorf("definitions: %w", err)
		}
		s.SetAngleUnit(unit)
	}
	for i, d := range defs.Declarations {
		log.LogVf("definition %d: %s", i, d)
		if _, err := s.Eval(d, prec); err != nil {
			return fmt.Errorf("definitions: declaration %d %q: %w", i, d, err)
		}
	}
	return nil
}

func LoadDefinitionsFile(s *eval.Session, path string, prec uint) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("definitions: open %s: %w", path, err)
	}
	defer f.Close()
	return LoadDefinitions(s, f, prec)
}
