package stats

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Die is the number of sides on a die, e.g. 8 for d8
type Die int

// diceNotationRegex matches die notation like "d6", "1d8", "D10" or a bare "12"
var diceNotationRegex = regexp.MustCompile(`^(?:1?[dD])?(\d+)$`)

// ParseDie parses a single-die notation and returns its sides.
// Supports formats: "d6", "1d8", "D10", "12"
func ParseDie(notation string) (Die, error) {
	matches := diceNotationRegex.FindStringSubmatch(strings.TrimSpace(notation))
	if matches == nil {
		return 0, fmt.Errorf("invalid die notation %q", notation)
	}
	sides, err := strconv.Atoi(matches[1])
	if err != nil || sides <= 0 {
		return 0, fmt.Errorf("invalid die notation %q", notation)
	}
	return Die(sides), nil
}

// Sides returns the number of sides
func (d Die) Sides() int {
	return int(d)
}

// Average returns the fixed per-level result taken instead of rolling:
// half the die rounded down, plus one.
func (d Die) Average() int {
	return int(d)/2 + 1
}

// String returns the die in "dN" notation
func (d Die) String() string {
	return fmt.Sprintf("d%d", int(d))
}

// UnmarshalYAML accepts either an integer or die notation
func (d *Die) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: die must be a scalar", value.Line)
	}
	parsed, err := ParseDie(value.Value)
	if err != nil {
		return fmt.Errorf("line %d: %w", value.Line, err)
	}
	*d = parsed
	return nil
}
