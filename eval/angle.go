package eval

import (
	"fmt"
	"strings"

	"grol.io/calc/token"
)

// AngleUnit is how trigonometric functions interpret their arguments and
// how inverse ones express their results.
type AngleUnit uint8

const (
	Radians AngleUnit = iota
	Degrees
)

func (u AngleUnit) String() string {
	switch u {
	case Radians:
		return "radians"
	case Degrees:
		return "degrees"
	default:
		return fmt.Sprintf("AngleUnit(%d)", u)
	}
}

// ParseAngleUnit accepts rad, radians, deg and degrees, in any case.
func ParseAngleUnit(s string) (AngleUnit, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "rad", "radian", "radians":
		return Radians, nil
	case "deg", "degree", "degrees":
		return Degrees, nil
	default:
		return Radians, fmt.Errorf("invalid angle unit %q, expected rad or deg", s)
	}
}

func unitOf(t token.Type) AngleUnit {
	if t == token.DEG {
		return Degrees
	}
	return Radians
}
