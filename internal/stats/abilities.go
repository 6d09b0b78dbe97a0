// Package stats holds ability scores and the modifiers derived from them.
package stats

import "gopkg.in/yaml.v3"

// AbilityScores holds the six core ability scores
type AbilityScores struct {
	Strength     int `yaml:"str" json:"str"`
	Dexterity    int `yaml:"dex" json:"dex"`
	Constitution int `yaml:"con" json:"con"`
	Intelligence int `yaml:"int" json:"int"`
	Wisdom       int `yaml:"wis" json:"wis"`
	Charisma     int `yaml:"cha" json:"cha"`
}

// Modifiers holds the six ability modifiers consumed by the derived
// statistics. They are computed upstream and treated as read-only.
type Modifiers struct {
	Str int `yaml:"str" json:"str"`
	Dex int `yaml:"dex" json:"dex"`
	Con int `yaml:"con" json:"con"`
	Int int `yaml:"int" json:"int"`
	Wis int `yaml:"wis" json:"wis"`
	Cha int `yaml:"cha" json:"cha"`
}

// Modifier calculates the ability modifier using floor division
// Formula: floor((score - 10) / 2)
// Examples: 8=-1, 9=-1, 10=0, 11=0, 12=+1, 14=+2, 16=+3, 18=+4
func Modifier(score int) int {
	diff := score - 10
	if diff >= 0 {
		return diff / 2
	}
	// Floor division for negative numbers
	return (diff - 1) / 2
}

// NewDefaultScores returns ability scores with all values at 10
func NewDefaultScores() *AbilityScores {
	return &AbilityScores{
		Strength:     10,
		Dexterity:    10,
		Constitution: 10,
		Intelligence: 10,
		Wisdom:       10,
		Charisma:     10,
	}
}

// UnmarshalYAML fills scores the document omits with 10
func (a *AbilityScores) UnmarshalYAML(value *yaml.Node) error {
	type plain AbilityScores
	scores := plain(*NewDefaultScores())
	if err := value.Decode(&scores); err != nil {
		return err
	}
	*a = AbilityScores(scores)
	return nil
}

// Modifiers converts every score to its modifier
func (a *AbilityScores) Modifiers() Modifiers {
	return Modifiers{
		Str: Modifier(a.Strength),
		Dex: Modifier(a.Dexterity),
		Con: Modifier(a.Constitution),
		Int: Modifier(a.Intelligence),
		Wis: Modifier(a.Wisdom),
		Cha: Modifier(a.Charisma),
	}
}

// FortitudeMod returns the ability modifier applied to Fortitude. Biological
// characters use the better of STR and CON; mechanical characters have no
// Constitution and use STR alone.
func (m Modifiers) FortitudeMod(mechanical bool) int {
	if mechanical {
		return m.Str
	}
	if m.Con > m.Str {
		return m.Con
	}
	return m.Str
}
