package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/lawnchairsociety/heroforge/internal/config"
	"github.com/lawnchairsociety/heroforge/internal/content"
	"github.com/lawnchairsociety/heroforge/internal/database"
	"github.com/lawnchairsociety/heroforge/internal/derive"
	"github.com/lawnchairsociety/heroforge/internal/logger"
	"github.com/lawnchairsociety/heroforge/internal/progression"
	"github.com/lawnchairsociety/heroforge/internal/species"
	"github.com/lawnchairsociety/heroforge/internal/telemetry"
)

// defaultWatchInterval is used by -watch when the config sets no interval.
const defaultWatchInterval = 2 * time.Second

// engine holds the wired components for one process.
type engine struct {
	pack      *content.Pack
	cache     *content.Cache
	bodyTypes progression.BodyTypes
	orch      *derive.Orchestrator
	db        *database.Database
	persisted bool
}

func newEngine(cfg *config.Config) (*engine, error) {
	pack := content.NewPack(cfg.Content.ClassFiles...)
	if err := pack.Load(); err != nil {
		return nil, fmt.Errorf("load class content: %w", err)
	}

	cache, err := content.NewCache(pack, cfg.Content.CacheSize)
	if err != nil {
		return nil, fmt.Errorf("create class cache: %w", err)
	}
	pack.OnReload(cache.Purge)

	e := &engine{pack: pack, cache: cache}

	if cfg.Content.SpeciesFile != "" {
		registry := species.NewRegistry()
		err := registry.LoadFromYAML(cfg.Content.SpeciesFile)
		switch {
		case errors.Is(err, os.ErrNotExist):
			logger.Warning("Species file not found, species will not set body type", "path", cfg.Content.SpeciesFile)
		case err != nil:
			return nil, fmt.Errorf("load species: %w", err)
		default:
			logger.Info("Species loaded", "count", registry.Count())
			e.bodyTypes = registry
		}
	}

	var store derive.Store
	if cfg.Persist {
		db, err := database.OpenWithConfig(cfg.Database)
		if err != nil {
			return nil, err
		}
		logger.Info("Derived result database initialized", "driver", cfg.Database.Driver)
		e.db = db
		e.persisted = true
		store = database.NewDerivedStore(db)
	}

	e.orch = derive.New(cache, store)
	return e, nil
}

func (e *engine) Close() error {
	if e.db != nil {
		return e.db.Close()
	}
	return nil
}

// recalculate derives the snapshot and returns the committed report.
func (e *engine) recalculate(ctx context.Context, snapshotPath string) (*report, error) {
	snap, err := progression.LoadSnapshot(snapshotPath)
	if err != nil {
		return nil, err
	}
	in, err := snap.Input(e.bodyTypes)
	if err != nil {
		return nil, err
	}

	out, err := e.orch.Recalculate(ctx, in)
	if err != nil {
		return nil, err
	}

	rec, _, err := e.orch.Current(ctx, in.CharacterID)
	if err != nil {
		return nil, err
	}
	return newReport(rec, out, e.persisted), nil
}

func run(ctx context.Context, cfg *config.Config, opts options) error {
	shutdown, err := telemetry.Setup(ctx, cfg.Telemetry)
	if err != nil {
		return err
	}
	defer shutdown(context.Background())

	e, err := newEngine(cfg)
	if err != nil {
		return err
	}
	defer e.Close()

	var mu sync.Mutex
	emit := func() error {
		mu.Lock()
		defer mu.Unlock()

		rep, err := e.recalculate(ctx, opts.snapshot)
		if err != nil {
			return err
		}
		return writeReport(rep, opts.out, os.Stdout)
	}

	if err := emit(); err != nil {
		return err
	}
	if !opts.watch {
		return nil
	}

	interval := cfg.Content.WatchInterval
	if interval <= 0 {
		interval = defaultWatchInterval
	}

	rerun := func() {
		if err := emit(); err != nil {
			if errors.Is(err, derive.ErrStaleGeneration) {
				return
			}
			logger.Error("Recalculation failed, previous result stands", "snapshot", opts.snapshot, "error", err)
		}
	}
	e.pack.OnReload(rerun)

	snapshotWatcher := content.NewWatcher([]string{opts.snapshot}, interval, func(path string) {
		logger.Info("Snapshot changed, recalculating", "path", path)
		rerun()
	})

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		content.WatchPack(e.pack, interval).Run(ctx)
	}()
	go func() {
		defer wg.Done()
		snapshotWatcher.Run(ctx)
	}()

	logger.Info("Watching for changes", "interval", interval, "classes", len(e.pack.Paths()))
	wg.Wait()
	logger.Info("Watch stopped")
	return nil
}

func writeReport(rep *report, outPath string, stdout io.Writer) error {
	data, err := json.MarshalIndent(rep, "", "  ")
	if err != nil {
		return fmt.Errorf("encode result: %w", err)
	}
	data = append(data, '\n')

	if outPath == "" {
		_, err := stdout.Write(data)
		return err
	}
	if err := os.WriteFile(outPath, data, 0644); err != nil {
		return fmt.Errorf("write result: %w", err)
	}
	logger.Info("Result written", "path", outPath, "character", rep.CharacterID, "generation", rep.Generation)
	return nil
}
