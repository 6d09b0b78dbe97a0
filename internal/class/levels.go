package class

import "fmt"

// Entry records the levels a character holds in one class
type Entry struct {
	ClassID ID  `yaml:"class" json:"class"`
	Level   int `yaml:"level" json:"level"`
}

// ClassLevels tracks levels in each class for a character, in the order the
// classes were first taken. History, when set, is the exact level-up order.
type ClassLevels struct {
	entries []Entry
	history []ID
}

// NewClassLevels builds ClassLevels from entries in acquisition order.
// Entries for the same class are merged into the first occurrence.
func NewClassLevels(entries []Entry, history []ID) (*ClassLevels, error) {
	cl := &ClassLevels{}
	index := make(map[ID]int)
	for _, e := range entries {
		if e.ClassID == "" {
			return nil, fmt.Errorf("class entry has no class id")
		}
		if e.Level < 0 {
			return nil, fmt.Errorf("class %s: negative level %d", e.ClassID, e.Level)
		}
		if e.Level == 0 {
			continue
		}
		if i, ok := index[e.ClassID]; ok {
			cl.entries[i].Level += e.Level
			continue
		}
		index[e.ClassID] = len(cl.entries)
		cl.entries = append(cl.entries, e)
	}

	if len(history) > 0 {
		counts := make(map[ID]int)
		for _, id := range history {
			if _, ok := index[id]; !ok {
				return nil, fmt.Errorf("history names class %s with no levels", id)
			}
			counts[id]++
		}
		for _, e := range cl.entries {
			if counts[e.ClassID] != e.Level {
				return nil, fmt.Errorf("class %s: history has %d levels, entry has %d", e.ClassID, counts[e.ClassID], e.Level)
			}
		}
		cl.history = append([]ID(nil), history...)
	}

	return cl, nil
}

// Entries returns a copy of the class entries in acquisition order
func (cl *ClassLevels) Entries() []Entry {
	return append([]Entry(nil), cl.entries...)
}

// GetTotalLevel returns the sum of all class levels
func (cl *ClassLevels) GetTotalLevel() int {
	total := 0
	for _, e := range cl.entries {
		total += e.Level
	}
	return total
}

// Slots returns the chronological sequence of levels taken, one class id per
// level. Without an explicit history each entry's levels are taken in turn.
func (cl *ClassLevels) Slots() []ID {
	if len(cl.history) > 0 {
		return append([]ID(nil), cl.history...)
	}
	slots := make([]ID, 0, cl.GetTotalLevel())
	for _, e := range cl.entries {
		for i := 0; i < e.Level; i++ {
			slots = append(slots, e.ClassID)
		}
	}
	return slots
}
