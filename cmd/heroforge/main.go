// heroforge derives a character's hit points, base attack bonus and defenses
// from a progression snapshot.
//
// Usage:
//
//	go run ./cmd/heroforge -snapshot data/snapshots/kira.yaml
//	go run ./cmd/heroforge -snapshot kira.yaml -db data/heroforge.db -out kira.json
//	go run ./cmd/heroforge -snapshot kira.yaml -watch
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/lawnchairsociety/heroforge/internal/config"
	"github.com/lawnchairsociety/heroforge/internal/logger"
)

type options struct {
	configPath string
	classes    string
	species    string
	dbPath     string
	snapshot   string
	out        string
	watch      bool
}

func main() {
	// Values from .env never override variables already set
	_ = godotenv.Load()

	var opts options
	flag.StringVar(&opts.configPath, "config", "heroforge.yaml", "Path to engine config YAML file")
	flag.StringVar(&opts.classes, "classes", "", "Comma-separated class content files (overrides config)")
	flag.StringVar(&opts.species, "species", "", "Path to species YAML file (overrides config)")
	flag.StringVar(&opts.dbPath, "db", "", "Commit results to this SQLite database file")
	flag.StringVar(&opts.snapshot, "snapshot", "", "Path to the character progression snapshot (required)")
	flag.StringVar(&opts.out, "out", "", "Write the JSON result to this file instead of stdout")
	flag.BoolVar(&opts.watch, "watch", false, "Keep running and recalculate when content or the snapshot changes")
	flag.Parse()

	if opts.snapshot == "" {
		flag.Usage()
		os.Exit(2)
	}

	// Initialize logger first (before any logging)
	logConfig, err := logger.LoadConfig(opts.configPath)
	if err != nil {
		log.Fatalf("Failed to load logging config: %v", err)
	}
	if err := logger.Initialize(logConfig); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Close()

	cfg, err := config.LoadConfig(opts.configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	applyFlags(cfg, opts)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, opts); err != nil {
		logger.Error("Recalculation failed", "snapshot", opts.snapshot, "error", err)
		logger.Close()
		os.Exit(1)
	}
}

// applyFlags lets command-line flags override the loaded config.
func applyFlags(cfg *config.Config, opts options) {
	if opts.classes != "" {
		var files []string
		for _, f := range strings.Split(opts.classes, ",") {
			if f = strings.TrimSpace(f); f != "" {
				files = append(files, f)
			}
		}
		cfg.Content.ClassFiles = files
	}
	if opts.species != "" {
		cfg.Content.SpeciesFile = opts.species
	}
	if opts.dbPath != "" {
		cfg.Database.Driver = "sqlite"
		cfg.Database.SQLitePath = opts.dbPath
		cfg.Persist = true
	}
}
