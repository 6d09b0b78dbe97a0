package main

import (
	"time"

	"github.com/lawnchairsociety/heroforge/internal/attack"
	"github.com/lawnchairsociety/heroforge/internal/defense"
	"github.com/lawnchairsociety/heroforge/internal/derive"
	"github.com/lawnchairsociety/heroforge/internal/hitpoints"
	"github.com/lawnchairsociety/heroforge/internal/modifier"
)

// report is the JSON document printed for one recalculation.
type report struct {
	CharacterID string    `json:"character_id"`
	Generation  uint64    `json:"generation"`
	Fingerprint string    `json:"fingerprint"`
	Persisted   bool      `json:"persisted"`
	CommittedAt time.Time `json:"committed_at"`

	HP       hitpoints.Result `json:"hp"`
	BAB      attack.Result    `json:"bab"`
	Defenses defense.Defenses `json:"defenses"`

	Levels    levels    `json:"levels"`
	Modifiers modifiers `json:"modifiers"`
}

type levels struct {
	Heroic    int `json:"heroic"`
	Nonheroic int `json:"nonheroic"`
	Total     int `json:"total"`
	Half      int `json:"half"`
}

type modifiers struct {
	Net        map[modifier.Channel]int `json:"net"`
	Suppressed []modifier.Record        `json:"suppressed,omitempty"`
	Dropped    []dropped                `json:"dropped,omitempty"`
}

type dropped struct {
	Index   int              `json:"index"`
	Channel modifier.Channel `json:"channel,omitempty"`
	Source  string           `json:"source"`
	Reason  string           `json:"reason"`
}

func newReport(rec derive.Record, out derive.Outcome, persisted bool) *report {
	rep := &report{
		CharacterID: rec.CharacterID,
		Generation:  rec.Generation,
		Fingerprint: rec.Fingerprint,
		Persisted:   persisted,
		CommittedAt: rec.CommittedAt,
		HP:          rec.Result.HP,
		BAB:         rec.Result.BAB,
		Defenses:    rec.Result.Defenses,
		Levels: levels{
			Heroic:    out.Levels.HeroicLevel,
			Nonheroic: out.Levels.NonheroicLevel,
			Total:     out.Levels.TotalLevel,
			Half:      out.Levels.HalfLevel,
		},
		Modifiers: modifiers{
			Net:        out.Modifiers.Net,
			Suppressed: out.Modifiers.Suppressed,
		},
	}
	for _, d := range out.Modifiers.Dropped {
		rep.Modifiers.Dropped = append(rep.Modifiers.Dropped, dropped{
			Index:   d.Index,
			Channel: d.Record.Channel,
			Source:  d.Record.Source.String(),
			Reason:  d.Reason,
		})
	}
	return rep
}
