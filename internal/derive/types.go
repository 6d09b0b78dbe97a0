package derive

import (
	"errors"
	"time"

	"github.com/lawnchairsociety/heroforge/internal/attack"
	"github.com/lawnchairsociety/heroforge/internal/class"
	"github.com/lawnchairsociety/heroforge/internal/defense"
	"github.com/lawnchairsociety/heroforge/internal/hitpoints"
	"github.com/lawnchairsociety/heroforge/internal/leveling"
	"github.com/lawnchairsociety/heroforge/internal/modifier"
	"github.com/lawnchairsociety/heroforge/internal/stats"
)

// ErrStaleGeneration is returned by a pass whose result was discarded because
// a newer pass for the same character was started or already committed.
var ErrStaleGeneration = errors.New("stale recalculation discarded")

// Input is the immutable progression snapshot consumed by one pass.
type Input struct {
	CharacterID string            `json:"character_id"`
	Classes     []class.Entry     `json:"classes"`
	History     []class.ID        `json:"history,omitempty"`
	Abilities   stats.Modifiers   `json:"abilities"`
	Mechanical  bool              `json:"mechanical"`
	Modifiers   []modifier.Record `json:"modifiers,omitempty"`
}

// Result is the derived record consumers read. It is replaced as a whole on
// every committed pass and never partially updated.
type Result struct {
	HP       hitpoints.Result `json:"hp"`
	BAB      attack.Result    `json:"bab"`
	Defenses defense.Defenses `json:"defenses"`
}

// Outcome is everything one pass produced, including the introspection data
// that is not part of the committed record.
type Outcome struct {
	Result    Result
	Levels    leveling.Split
	Modifiers modifier.Result

	// Lookups is the number of distinct class definitions resolved.
	Lookups int
}

// Record is a committed result with the metadata that guards it.
type Record struct {
	CharacterID string
	Generation  uint64
	Fingerprint string
	Result      Result
	CommittedAt time.Time
}
