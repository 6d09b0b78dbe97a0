// Package hitpoints computes maximum hit points from the chronological
// sequence of levels a character has taken.
package hitpoints

import (
	"context"

	"github.com/lawnchairsociety/heroforge/internal/class"
	"github.com/lawnchairsociety/heroforge/internal/content"
	"github.com/lawnchairsociety/heroforge/internal/logger"
	"github.com/lawnchairsociety/heroforge/internal/stats"
)

// FirstLevelMultiplier is applied to the hit die of the very first level
// of a character's whole career.
const FirstLevelMultiplier = 3

// Slot is one level taken, in the order it was taken. HitDie is the die
// actually rolled, already fixed to a d4 for nonheroic levels.
type Slot struct {
	ClassID   class.ID
	HitDie    int
	Nonheroic bool
}

// Die returns the die rolled for this slot
func (s Slot) Die() stats.Die {
	return stats.Die(s.HitDie)
}

// Result holds the hit point values written to the derived record
type Result struct {
	Base       int `json:"base"`
	Max        int `json:"max"`
	Value      int `json:"value"`
	Adjustment int `json:"adjustment"`
}

// tally is the fold accumulator. isFirstSlot is true until the first slot
// has been consumed.
type tally struct {
	hp          int
	isFirstSlot bool
}

func (t tally) add(slot Slot, conMod int) tally {
	die := slot.Die()
	if t.isFirstSlot {
		return tally{hp: t.hp + die.Sides()*FirstLevelMultiplier + conMod}
	}
	return tally{hp: t.hp + die.Average() + conMod}
}

// Calculate returns maximum hit points. The first slot gains three times its
// hit die; every later slot gains the die's average. Mechanical characters
// add no Constitution modifier at any level.
func Calculate(slots []Slot, conMod int, mechanical bool, adjustment int) Result {
	if len(slots) == 0 {
		return Result{Base: 1, Max: 1, Value: 1, Adjustment: 0}
	}
	if mechanical {
		conMod = 0
	}

	acc := tally{isFirstSlot: true}
	for _, slot := range slots {
		acc = acc.add(slot, conMod)
	}

	base := acc.hp
	if base < 1 {
		logger.Warning("Invariant violation: base hit points below 1, clamping", "raw", base, "levels", len(slots), "con_mod", conMod)
		base = 1
	}

	final := base + adjustment
	if final < 1 {
		logger.Warning("Invariant violation: adjusted hit points below 1, clamping", "base", base, "adjustment", adjustment)
		final = 1
	}

	return Result{Base: base, Max: final, Value: final, Adjustment: adjustment}
}

// BuildSlots resolves the chronological class sequence into slots.
func BuildSlots(ctx context.Context, repo content.Repository, sequence []class.ID) ([]Slot, error) {
	slots := make([]Slot, 0, len(sequence))
	for _, id := range sequence {
		def, err := content.Resolve(ctx, repo, id)
		if err != nil {
			return nil, err
		}
		die := def.EffectiveHitDie()
		if die <= 0 {
			return nil, content.NewConfigurationError(id, "class has no hit die")
		}
		slots = append(slots, Slot{ClassID: id, HitDie: die, Nonheroic: def.Nonheroic})
	}
	return slots, nil
}
