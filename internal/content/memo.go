package content

import (
	"context"
	"sync"

	"github.com/lawnchairsociety/heroforge/internal/class"
)

// Memo remembers every definition resolved during one recalculation pass so
// each class is looked up at most once per pass. Failures are not
// remembered. A Memo is discarded with its pass.
type Memo struct {
	src      Repository
	mu       sync.Mutex
	resolved map[class.ID]*class.Definition
	lookups  int
}

// NewMemo wraps src for the duration of one pass.
func NewMemo(src Repository) *Memo {
	return &Memo{src: src, resolved: make(map[class.ID]*class.Definition)}
}

// Class implements Repository.
func (m *Memo) Class(ctx context.Context, id class.ID) (*class.Definition, error) {
	m.mu.Lock()
	def, ok := m.resolved[id]
	m.mu.Unlock()
	if ok {
		return def, nil
	}

	def, err := m.src.Class(ctx, id)
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	m.resolved[id] = def
	m.lookups++
	m.mu.Unlock()
	return def, nil
}

// Lookups returns how many times the underlying source was consulted successfully
func (m *Memo) Lookups() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.lookups
}
