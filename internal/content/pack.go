package content

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/lawnchairsociety/heroforge/internal/class"
	"github.com/lawnchairsociety/heroforge/internal/logger"
)

// Pack is a Repository backed by one or more classes.yaml files. Later files
// override classes with the same id from earlier ones. Reload swaps the whole
// set atomically and then notifies subscribers.
type Pack struct {
	paths []string

	mu        sync.RWMutex
	classes   map[class.ID]*class.Definition
	version   uint64
	listeners []func()
}

// NewPack creates a pack that loads from the given files. Call Load before use.
func NewPack(paths ...string) *Pack {
	return &Pack{
		paths:   append([]string(nil), paths...),
		classes: make(map[class.ID]*class.Definition),
	}
}

// NewMemoryPack creates a pack holding the given definitions and no files.
func NewMemoryPack(defs ...*class.Definition) *Pack {
	p := NewPack()
	for _, d := range defs {
		p.classes[d.ID] = d
	}
	return p
}

// Paths returns the files the pack loads from
func (p *Pack) Paths() []string {
	return append([]string(nil), p.paths...)
}

// Load reads every file and replaces the pack's contents. On error the
// previous contents are kept.
func (p *Pack) Load() error {
	classes := make(map[class.ID]*class.Definition)
	for _, path := range p.paths {
		config, err := class.LoadClassesFromYAML(path)
		if err != nil {
			return err
		}
		defs, err := config.Definitions()
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		for _, d := range defs {
			classes[d.ID] = d
		}
	}

	p.mu.Lock()
	p.classes = classes
	p.version++
	version := p.version
	p.mu.Unlock()

	logger.Info("Class content loaded", "classes", len(classes), "files", len(p.paths), "version", version)
	return nil
}

// Reload loads the files again and notifies subscribers on success.
func (p *Pack) Reload() error {
	if err := p.Load(); err != nil {
		logger.Error("Class content reload failed, keeping previous content", "error", err)
		return err
	}

	p.mu.RLock()
	listeners := append([]func(){}, p.listeners...)
	p.mu.RUnlock()

	for _, fn := range listeners {
		fn()
	}
	return nil
}

// OnReload registers fn to run after every successful Reload.
func (p *Pack) OnReload(fn func()) {
	p.mu.Lock()
	p.listeners = append(p.listeners, fn)
	p.mu.Unlock()
}

// Class implements Repository.
func (p *Pack) Class(ctx context.Context, id class.ID) (*class.Definition, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	p.mu.RLock()
	def, ok := p.classes[id]
	p.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return def, nil
}

// IDs returns every class id in the pack, sorted
func (p *Pack) IDs() []class.ID {
	p.mu.RLock()
	defer p.mu.RUnlock()
	ids := make([]class.ID, 0, len(p.classes))
	for id := range p.classes {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// Version increases by one on every successful load
func (p *Pack) Version() uint64 {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.version
}

// Count returns the number of loaded classes
func (p *Pack) Count() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return len(p.classes)
}
