// Package modifier collects modifier records from feats, talents, equipment
// and effects and reduces them to one net adjustment per channel.
package modifier

import (
	"sort"
	"strings"

	"github.com/lawnchairsociety/heroforge/internal/logger"
)

// Channel names the numeric value a modifier adjusts. Channels are opaque
// strings agreed between content authors and calculators.
type Channel string

// Channels consumed by the derived statistics
const (
	ChannelHitPoints Channel = "hp.max"
	ChannelAttack    Channel = "bab.total"
	ChannelFortitude Channel = "defense.fort"
	ChannelReflex    Channel = "defense.ref"
	ChannelWill      Channel = "defense.will"
)

// SourceType represents the kind of content a modifier came from
type SourceType string

const (
	SourceFeat      SourceType = "feat"
	SourceTalent    SourceType = "talent"
	SourceItem      SourceType = "item"
	SourceSpecies   SourceType = "species"
	SourceCondition SourceType = "condition"
	SourceEffect    SourceType = "effect"
)

// Source identifies where a modifier came from
type Source struct {
	Type SourceType `yaml:"type,omitempty" json:"type,omitempty"`
	ID   string     `yaml:"id,omitempty" json:"id,omitempty"`
	Name string     `yaml:"name,omitempty" json:"name,omitempty"`
}

func (s Source) String() string {
	switch {
	case s.Name != "":
		return s.Name
	case s.ID != "":
		return string(s.Type) + ":" + s.ID
	case s.Type != "":
		return string(s.Type)
	default:
		return "unknown"
	}
}

// Record is one modifier targeting a channel. Amount is a pointer so a
// record authored without an amount can be told apart from a zero bonus.
type Record struct {
	Channel       Channel `yaml:"channel" json:"channel"`
	Amount        *int    `yaml:"amount" json:"amount"`
	StackingGroup string  `yaml:"stacking_group,omitempty" json:"stacking_group,omitempty"`
	Source        Source  `yaml:"source,omitempty" json:"source,omitempty"`
}

// New builds a valid record
func New(channel Channel, amount int, group string, source Source) Record {
	return Record{Channel: channel, Amount: &amount, StackingGroup: group, Source: source}
}

// Value returns the record's amount, zero when missing
func (r Record) Value() int {
	if r.Amount == nil {
		return 0
	}
	return *r.Amount
}

// Dropped is a malformed record that was skipped, with the reason
type Dropped struct {
	Index  int
	Record Record
	Reason string
}

// Reasons a record is dropped
const (
	ReasonMissingChannel = "missing channel"
	ReasonMissingAmount  = "missing amount"
)

// Result is the outcome of aggregating a set of records
type Result struct {
	// Net is the summed adjustment per channel, including channels no
	// calculator consumes.
	Net map[Channel]int

	// Applied lists the records that contributed to Net, in input order.
	Applied []Record

	// Suppressed lists grouped records outranked by a larger one in the
	// same stacking group.
	Suppressed []Record

	// Dropped lists malformed records.
	Dropped []Dropped
}

// Get returns the net adjustment for a channel, zero when absent
func (r Result) Get(ch Channel) int {
	return r.Net[ch]
}

// Channels returns every channel present in Net, sorted
func (r Result) Channels() []Channel {
	channels := make([]Channel, 0, len(r.Net))
	for ch := range r.Net {
		channels = append(channels, ch)
	}
	sort.Slice(channels, func(i, j int) bool { return channels[i] < channels[j] })
	return channels
}

type groupKey struct {
	channel Channel
	group   string
}

// Aggregate reduces records to one net adjustment per channel.
//
// Records without a stacking group always add. Records sharing a stacking
// group on the same channel do not add: only the one with the largest
// magnitude applies, and on a tie the earliest record wins. Malformed
// records are dropped with a logged warning and aggregation continues.
func Aggregate(records []Record) Result {
	result := Result{Net: make(map[Channel]int)}

	valid := make([]bool, len(records))
	best := make(map[groupKey]int)
	for i, rec := range records {
		if reason := validate(rec); reason != "" {
			result.Dropped = append(result.Dropped, Dropped{Index: i, Record: rec, Reason: reason})
			logger.Warning("Dropping malformed modifier", "index", i, "channel", rec.Channel, "source", rec.Source.String(), "reason", reason)
			continue
		}
		valid[i] = true

		key, grouped := keyOf(rec)
		if !grouped {
			continue
		}
		if j, ok := best[key]; !ok || abs(rec.Value()) > abs(records[j].Value()) {
			best[key] = i
		}
	}

	for i, rec := range records {
		if !valid[i] {
			continue
		}
		rec.Channel = normalizeChannel(rec.Channel)
		if key, grouped := keyOf(rec); grouped && best[key] != i {
			result.Suppressed = append(result.Suppressed, rec)
			continue
		}
		result.Applied = append(result.Applied, rec)
		result.Net[rec.Channel] += rec.Value()
	}

	return result
}

func validate(rec Record) string {
	if normalizeChannel(rec.Channel) == "" {
		return ReasonMissingChannel
	}
	if rec.Amount == nil {
		return ReasonMissingAmount
	}
	return ""
}

func keyOf(rec Record) (groupKey, bool) {
	group := strings.TrimSpace(rec.StackingGroup)
	if group == "" {
		return groupKey{}, false
	}
	return groupKey{channel: normalizeChannel(rec.Channel), group: group}, true
}

func normalizeChannel(ch Channel) Channel {
	return Channel(strings.TrimSpace(string(ch)))
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
