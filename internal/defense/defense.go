// Package defense computes the Fortitude, Reflex and Will defenses.
package defense

import (
	"context"

	"github.com/lawnchairsociety/heroforge/internal/class"
	"github.com/lawnchairsociety/heroforge/internal/content"
	"github.com/lawnchairsociety/heroforge/internal/logger"
	"github.com/lawnchairsociety/heroforge/internal/stats"
)

// BaseDefense is the flat starting value of every defense
const BaseDefense = 10

// Score is one computed defense
type Score struct {
	Base       int `json:"base"`
	Total      int `json:"total"`
	Adjustment int `json:"adjustment"`
}

// Defenses holds all three computed defenses
type Defenses struct {
	Fortitude Score `json:"fortitude"`
	Reflex    Score `json:"reflex"`
	Will      Score `json:"will"`
}

// Adjustments holds the net modifier for each defense channel
type Adjustments struct {
	Fortitude int
	Reflex    int
	Will      int
}

// Calculator computes defenses from class content
type Calculator struct {
	repo content.Repository
}

// NewCalculator creates a calculator reading classes from repo
func NewCalculator(repo content.Repository) *Calculator {
	return &Calculator{repo: repo}
}

// Calculate returns the three defenses. Each is
// 10 + heroicLevel + best class bonus + ability modifier, then the
// adjustment, with the total clamped to at least 1. heroicLevel must
// exclude nonheroic levels.
func (c *Calculator) Calculate(ctx context.Context, heroicLevel int, mods stats.Modifiers, entries []class.Entry, mechanical bool, adj Adjustments) (Defenses, error) {
	best, err := c.bestClassBonuses(ctx, entries)
	if err != nil {
		return Defenses{}, err
	}

	return Defenses{
		Fortitude: score("fortitude", heroicLevel+best.Fortitude+mods.FortitudeMod(mechanical), adj.Fortitude),
		Reflex:    score("reflex", heroicLevel+best.Reflex+mods.Dex, adj.Reflex),
		Will:      score("will", heroicLevel+best.Will+mods.Wis, adj.Will),
	}, nil
}

// bestClassBonuses takes the highest single class bonus for each defense.
// Bonuses from different classes never add together. Class bonuses are
// never negative, so a defense no class trains stays at 0.
func (c *Calculator) bestClassBonuses(ctx context.Context, entries []class.Entry) (class.Defenses, error) {
	var best class.Defenses
	for _, e := range entries {
		if e.Level <= 0 {
			continue
		}
		def, err := content.Resolve(ctx, c.repo, e.ClassID)
		if err != nil {
			return class.Defenses{}, err
		}
		best.Fortitude = max(best.Fortitude, def.Defenses.Fortitude)
		best.Reflex = max(best.Reflex, def.Defenses.Reflex)
		best.Will = max(best.Will, def.Defenses.Will)
	}
	return best, nil
}

func score(name string, bonus, adjustment int) Score {
	base := BaseDefense + bonus
	total := base + adjustment
	if total < 1 {
		logger.Warning("Invariant violation: defense below 1, clamping", "defense", name, "base", base, "adjustment", adjustment)
		total = 1
	}
	return Score{Base: base, Total: total, Adjustment: adjustment}
}
