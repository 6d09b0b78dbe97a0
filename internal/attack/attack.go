// Package attack computes total base attack bonus across every class a
// character holds.
package attack

import (
	"context"
	"math"

	"github.com/lawnchairsociety/heroforge/internal/class"
	"github.com/lawnchairsociety/heroforge/internal/content"
)

// NonheroicTable is the base attack bonus of a nonheroic character, indexed by level-1.
var NonheroicTable = [20]int{0, 1, 2, 3, 3, 4, 5, 6, 6, 7, 8, 9, 9, 10, 11, 12, 12, 13, 14, 15}

// floorEpsilon absorbs binary rounding in sums of decimal fractions such as
// 0.1 so that an exact 3.0 is not floored to 2.
const floorEpsilon = 1e-9

// Result holds the attack bonus values written to the derived record
type Result struct {
	Total      int     `json:"total"`
	Adjustment int     `json:"adjustment"`
	Raw        float64 `json:"-"`
}

// Calculator computes base attack bonus from class content
type Calculator struct {
	repo content.Repository
}

// NewCalculator creates a calculator reading classes from repo
func NewCalculator(repo content.Repository) *Calculator {
	return &Calculator{repo: repo}
}

// Calculate sums every class's contribution at its current level into one
// raw value and floors it once. The adjustment is added after flooring.
// A class that does not resolve or lacks progression data is a
// ConfigurationError.
func (c *Calculator) Calculate(ctx context.Context, entries []class.Entry, adjustment int) (Result, error) {
	raw := 0.0
	for _, e := range entries {
		def, err := content.Resolve(ctx, c.repo, e.ClassID)
		if err != nil {
			return Result{}, err
		}
		contribution, err := Contribution(def, e.Level)
		if err != nil {
			return Result{}, err
		}
		raw += contribution
	}

	total := int(math.Floor(raw+floorEpsilon)) + adjustment
	return Result{Total: total, Adjustment: adjustment, Raw: raw}, nil
}

// Contribution returns the unrounded attack bonus a class grants at level.
func Contribution(def *class.Definition, level int) (float64, error) {
	if level <= 0 {
		return 0, nil
	}

	if def.Nonheroic {
		if level > len(NonheroicTable) {
			return 0, content.NewConfigurationError(def.ID, "nonheroic level %d exceeds the %d-level table", level, len(NonheroicTable))
		}
		return float64(NonheroicTable[level-1]), nil
	}

	if !def.HasProgression() {
		return 0, content.NewConfigurationError(def.ID, "class has no attack bonus progression")
	}
	progression := def.BABProgression

	switch def.BABMode {
	case class.BABCumulative:
		if level > len(progression) {
			return 0, content.NewConfigurationError(def.ID, "attack bonus progression has %d levels, need %d", len(progression), level)
		}
		return progression[level-1], nil

	case class.BABPerLevel, "":
		if len(progression) == 1 {
			return progression[0] * float64(level), nil
		}
		if level > len(progression) {
			return 0, content.NewConfigurationError(def.ID, "attack bonus progression has %d levels, need %d", len(progression), level)
		}
		sum := 0.0
		for _, inc := range progression[:level] {
			sum += inc
		}
		return sum, nil

	default:
		return 0, content.NewConfigurationError(def.ID, "unknown attack bonus mode %q", def.BABMode)
	}
}
