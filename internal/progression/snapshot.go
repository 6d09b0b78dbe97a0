// Package progression reads character progression snapshots and turns them
// into recalculation input.
package progression

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/lawnchairsociety/heroforge/internal/class"
	"github.com/lawnchairsociety/heroforge/internal/derive"
	"github.com/lawnchairsociety/heroforge/internal/modifier"
	"github.com/lawnchairsociety/heroforge/internal/stats"
)

// Snapshot is a character's progression state as authored in a file.
// Abilities may be given as raw scores or as precomputed modifiers, not both.
type Snapshot struct {
	CharacterID      string               `yaml:"character_id"`
	Species          string               `yaml:"species"`
	Droid            *bool                `yaml:"droid"`
	Classes          []class.Entry        `yaml:"classes"`
	History          []string             `yaml:"history"`
	Abilities        *stats.AbilityScores `yaml:"abilities"`
	AbilityModifiers *stats.Modifiers     `yaml:"ability_modifiers"`
	Modifiers        []modifier.Record    `yaml:"modifiers"`
}

// BodyTypes resolves whether a species is mechanical
type BodyTypes interface {
	IsMechanical(id string) (bool, error)
}

// LoadSnapshot reads a snapshot from a YAML or JSON file
func LoadSnapshot(filename string) (*Snapshot, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read snapshot file: %w", err)
	}
	return ParseSnapshot(data)
}

// ParseSnapshot parses snapshot bytes. JSON documents are accepted as YAML.
func ParseSnapshot(data []byte) (*Snapshot, error) {
	var s Snapshot
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("failed to parse snapshot: %w", err)
	}
	return &s, nil
}

// Input converts the snapshot into recalculation input. An explicit droid
// flag decides the body type; otherwise the species is looked up in
// bodyTypes. With a nil bodyTypes the species is not consulted and the
// character is biological.
func (s *Snapshot) Input(bodyTypes BodyTypes) (derive.Input, error) {
	id := strings.TrimSpace(s.CharacterID)
	if id == "" {
		return derive.Input{}, fmt.Errorf("snapshot has no character_id")
	}

	entries := make([]class.Entry, 0, len(s.Classes))
	for _, e := range s.Classes {
		classID, err := class.ParseID(string(e.ClassID))
		if err != nil {
			return derive.Input{}, fmt.Errorf("snapshot %s: %w", id, err)
		}
		entries = append(entries, class.Entry{ClassID: classID, Level: e.Level})
	}

	var history []class.ID
	for _, raw := range s.History {
		classID, err := class.ParseID(raw)
		if err != nil {
			return derive.Input{}, fmt.Errorf("snapshot %s history: %w", id, err)
		}
		history = append(history, classID)
	}

	mods, err := s.abilityModifiers()
	if err != nil {
		return derive.Input{}, fmt.Errorf("snapshot %s: %w", id, err)
	}

	mechanical, err := s.mechanical(bodyTypes)
	if err != nil {
		return derive.Input{}, fmt.Errorf("snapshot %s: %w", id, err)
	}

	return derive.Input{
		CharacterID: id,
		Classes:     entries,
		History:     history,
		Abilities:   mods,
		Mechanical:  mechanical,
		Modifiers:   append([]modifier.Record(nil), s.Modifiers...),
	}, nil
}

func (s *Snapshot) abilityModifiers() (stats.Modifiers, error) {
	switch {
	case s.Abilities != nil && s.AbilityModifiers != nil:
		return stats.Modifiers{}, fmt.Errorf("both abilities and ability_modifiers are set")
	case s.AbilityModifiers != nil:
		return *s.AbilityModifiers, nil
	case s.Abilities != nil:
		return s.Abilities.Modifiers(), nil
	default:
		return stats.NewDefaultScores().Modifiers(), nil
	}
}

func (s *Snapshot) mechanical(bodyTypes BodyTypes) (bool, error) {
	if s.Droid != nil {
		return *s.Droid, nil
	}
	if s.Species == "" || bodyTypes == nil {
		return false, nil
	}
	return bodyTypes.IsMechanical(s.Species)
}
