// Package derive is the single entry point for recalculating a character's
// derived combat statistics. It sequences the level split, modifier
// aggregation and the three calculators, and is the only writer of
// committed results.
package derive

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/lawnchairsociety/heroforge/internal/attack"
	"github.com/lawnchairsociety/heroforge/internal/class"
	"github.com/lawnchairsociety/heroforge/internal/content"
	"github.com/lawnchairsociety/heroforge/internal/defense"
	"github.com/lawnchairsociety/heroforge/internal/hitpoints"
	"github.com/lawnchairsociety/heroforge/internal/leveling"
	"github.com/lawnchairsociety/heroforge/internal/logger"
	"github.com/lawnchairsociety/heroforge/internal/modifier"
)

const tracerName = "github.com/lawnchairsociety/heroforge/internal/derive"

// Orchestrator runs recalculation passes and commits their results.
// It is safe for concurrent use; passes for different characters are
// independent.
type Orchestrator struct {
	repo   content.Repository
	store  Store
	tracer trace.Tracer
	now    func() time.Time

	// generations holds the last generation issued per character. A
	// character is present once its counter has been seeded from the store.
	mu          sync.Mutex
	generations map[string]uint64
}

// New creates an orchestrator reading class content from repo and committing
// to store. A nil store keeps results in memory.
func New(repo content.Repository, store Store) *Orchestrator {
	if store == nil {
		store = NewMemoryStore()
	}
	return &Orchestrator{
		repo:        repo,
		store:       store,
		tracer:      otel.Tracer(tracerName),
		now:         time.Now,
		generations: make(map[string]uint64),
	}
}

// Pass is one started recalculation. Its generation is fixed when it begins.
type Pass struct {
	o          *Orchestrator
	input      Input
	generation uint64
}

// Generation returns the pass's generation number
func (p *Pass) Generation() uint64 {
	return p.generation
}

// Begin starts a pass for the input's character and assigns it the next
// generation. Any pass begun earlier for the same character becomes stale.
// The first pass for a character continues from the generation already in
// the store, so a new process never issues a generation the store rejects.
func (o *Orchestrator) Begin(ctx context.Context, in Input) (*Pass, error) {
	id := in.CharacterID
	if err := o.seed(ctx, id); err != nil {
		return nil, err
	}

	o.mu.Lock()
	defer o.mu.Unlock()
	o.generations[id]++
	return &Pass{o: o, input: in, generation: o.generations[id]}, nil
}

// seed loads the stored generation the first time a character is seen.
func (o *Orchestrator) seed(ctx context.Context, id string) error {
	o.mu.Lock()
	_, seeded := o.generations[id]
	o.mu.Unlock()
	if seeded {
		return nil
	}

	rec, found, err := o.store.Load(ctx, id)
	if err != nil {
		return fmt.Errorf("load stored generation for %s: %w", id, err)
	}

	o.mu.Lock()
	defer o.mu.Unlock()
	cur := o.generations[id]
	if found && rec.Generation > cur {
		cur = rec.Generation
	}
	o.generations[id] = cur
	return nil
}

// Recalculate begins and runs a pass in one step.
func (o *Orchestrator) Recalculate(ctx context.Context, in Input) (Outcome, error) {
	p, err := o.Begin(ctx, in)
	if err != nil {
		return Outcome{}, err
	}
	return p.Run(ctx)
}

// Current returns the last committed record for a character.
func (o *Orchestrator) Current(ctx context.Context, characterID string) (Record, bool, error) {
	return o.store.Load(ctx, characterID)
}

func (o *Orchestrator) latest(characterID string) uint64 {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.generations[characterID]
}

// Run computes the pass and commits it if it is still the latest generation.
// On any calculator error nothing is committed and the previous record stays
// authoritative. A pass overtaken by a newer one returns its outcome together
// with ErrStaleGeneration.
func (p *Pass) Run(ctx context.Context) (Outcome, error) {
	o := p.o
	id := p.input.CharacterID

	ctx, span := o.tracer.Start(ctx, "derive.Recalculate", trace.WithAttributes(
		attribute.String("character.id", id),
		attribute.Int64("derive.generation", int64(p.generation)),
	))
	defer span.End()

	outcome, err := o.Compute(ctx, p.input)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "recalculation aborted")
		logger.Warning("Recalculation aborted", "character", id, "generation", p.generation, "error", err)
		return Outcome{}, err
	}

	if latest := o.latest(id); latest != p.generation {
		span.SetAttributes(attribute.Bool("derive.stale", true))
		logger.Debug("Discarding stale recalculation", "character", id, "generation", p.generation, "latest", latest)
		return outcome, ErrStaleGeneration
	}

	fingerprint, err := Fingerprint(p.input)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "fingerprint failed")
		return Outcome{}, err
	}

	rec := Record{
		CharacterID: id,
		Generation:  p.generation,
		Fingerprint: fingerprint,
		Result:      outcome.Result,
		CommittedAt: o.now().UTC(),
	}
	committed, err := o.store.Commit(ctx, rec)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "commit failed")
		return Outcome{}, fmt.Errorf("commit derived result for %s: %w", id, err)
	}
	if !committed {
		span.SetAttributes(attribute.Bool("derive.stale", true))
		logger.Debug("Store rejected stale recalculation", "character", id, "generation", p.generation)
		return outcome, ErrStaleGeneration
	}

	logger.Debug("Derived result committed", "character", id, "generation", p.generation,
		"hp", outcome.Result.HP.Max, "bab", outcome.Result.BAB.Total)
	return outcome, nil
}

// Compute derives all statistics for the input without committing
// anything. It is a pure function of the input and the class content.
func (o *Orchestrator) Compute(ctx context.Context, in Input) (Outcome, error) {
	levels, err := class.NewClassLevels(in.Classes, in.History)
	if err != nil {
		return Outcome{}, &content.ConfigurationError{Reason: "invalid progression", Err: err}
	}
	entries := levels.Entries()

	// Every calculator shares one memo so each class resolves once per pass
	memo := content.NewMemo(o.repo)

	resolved, err := content.ResolveEntries(ctx, memo, entries)
	if err != nil {
		return Outcome{}, err
	}
	split := leveling.SplitLevels(resolved)

	mods := modifier.Aggregate(in.Modifiers)

	slots, err := hitpoints.BuildSlots(ctx, memo, levels.Slots())
	if err != nil {
		return Outcome{}, err
	}
	hp := hitpoints.Calculate(slots, in.Abilities.Con, in.Mechanical, mods.Get(modifier.ChannelHitPoints))

	bab, err := attack.NewCalculator(memo).Calculate(ctx, entries, mods.Get(modifier.ChannelAttack))
	if err != nil {
		return Outcome{}, err
	}

	defenses, err := defense.NewCalculator(memo).Calculate(ctx, split.HeroicLevel, in.Abilities, entries, in.Mechanical, defense.Adjustments{
		Fortitude: mods.Get(modifier.ChannelFortitude),
		Reflex:    mods.Get(modifier.ChannelReflex),
		Will:      mods.Get(modifier.ChannelWill),
	})
	if err != nil {
		return Outcome{}, err
	}

	return Outcome{
		Result:    Result{HP: hp, BAB: bab, Defenses: defenses},
		Levels:    split,
		Modifiers: mods,
		Lookups:   memo.Lookups(),
	}, nil
}
