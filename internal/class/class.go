// Package class defines class content for heroforge: hit dice, attack bonus
// progression and defense training for each class a character can take.
package class

import (
	"fmt"
	"strings"
)

// ID identifies a class in a content pack, e.g. "soldier" or "nonheroic".
type ID string

// ParseID normalizes a class identifier, case-insensitive
func ParseID(s string) (ID, error) {
	normalized := strings.ToLower(strings.TrimSpace(s))
	if normalized == "" {
		return "", fmt.Errorf("empty class id")
	}
	return ID(normalized), nil
}

// NonheroicHitDie is the hit die every nonheroic class uses, whatever it declares.
const NonheroicHitDie = 4

// BABMode selects how a class's attack bonus progression is read.
type BABMode string

const (
	// BABPerLevel lists the increment gained at each level. A single entry
	// is a constant rate applied at every level.
	BABPerLevel BABMode = "per_level"

	// BABCumulative lists the total attack bonus at each level.
	BABCumulative BABMode = "cumulative"
)

// Defenses holds per-class defense training bonuses
type Defenses struct {
	Fortitude int `yaml:"fortitude" json:"fortitude"`
	Reflex    int `yaml:"reflex" json:"reflex"`
	Will      int `yaml:"will" json:"will"`
}

// Definition contains the static definition for a class
type Definition struct {
	ID          ID
	Name        string
	Description string
	HitDie      int // e.g., 10 for d10
	Nonheroic   bool

	// BABProgression is read according to BABMode. Nonheroic classes ignore
	// it and use the fixed nonheroic table.
	BABProgression []float64
	BABMode        BABMode

	Defenses Defenses
}

// EffectiveHitDie returns the hit die used for hit point rolls
func (d *Definition) EffectiveHitDie() int {
	if d.Nonheroic {
		return NonheroicHitDie
	}
	return d.HitDie
}

// HasProgression reports whether the class carries attack bonus data
func (d *Definition) HasProgression() bool {
	return d.Nonheroic || len(d.BABProgression) > 0
}

// Validate checks a definition for authoring defects. Defense bonuses are
// training bonuses and may not be negative.
func (d *Definition) Validate() error {
	if d.ID == "" {
		return fmt.Errorf("class has no id")
	}
	if d.Defenses.Fortitude < 0 || d.Defenses.Reflex < 0 || d.Defenses.Will < 0 {
		return fmt.Errorf("class %s: defense bonuses must not be negative, got %+v", d.ID, d.Defenses)
	}
	if d.Nonheroic {
		return nil
	}
	if d.HitDie <= 0 {
		return fmt.Errorf("class %s: hit_die must be positive, got %d", d.ID, d.HitDie)
	}
	switch d.BABMode {
	case BABPerLevel, BABCumulative:
	default:
		return fmt.Errorf("class %s: unknown bab_mode %q", d.ID, d.BABMode)
	}
	for i, v := range d.BABProgression {
		if v < 0 {
			return fmt.Errorf("class %s: bab_progression[%d] is negative", d.ID, i)
		}
		if d.BABMode == BABCumulative && i > 0 && v < d.BABProgression[i-1] {
			return fmt.Errorf("class %s: cumulative bab_progression decreases at level %d", d.ID, i+1)
		}
	}
	return nil
}
