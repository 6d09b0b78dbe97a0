// Package leveling splits a character's class levels into the heroic and
// nonheroic experience tracks.
package leveling

import "github.com/lawnchairsociety/heroforge/internal/content"

// Split holds the level totals used by the derived statistics
type Split struct {
	HeroicLevel    int
	NonheroicLevel int
	TotalLevel     int
	HalfLevel      int // floor(HeroicLevel/2)
}

// SplitLevels partitions resolved class entries into heroic and nonheroic
// totals. Nonheroic levels never count toward HeroicLevel or HalfLevel.
func SplitLevels(resolved []content.Resolved) Split {
	var s Split
	for _, r := range resolved {
		if r.Definition.Nonheroic {
			s.NonheroicLevel += r.Entry.Level
		} else {
			s.HeroicLevel += r.Entry.Level
		}
	}
	s.TotalLevel = s.HeroicLevel + s.NonheroicLevel
	s.HalfLevel = s.HeroicLevel / 2
	return s
}
