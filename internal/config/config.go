package config

import (
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"

	"github.com/lawnchairsociety/heroforge/internal/content"
	"github.com/lawnchairsociety/heroforge/internal/database"
	"github.com/lawnchairsociety/heroforge/internal/telemetry"
)

// EnvPrefix is prepended to every environment override, e.g.
// HEROFORGE_CONTENT_CACHE_SIZE or HEROFORGE_DB_POSTGRES_HOST.
const EnvPrefix = "HEROFORGE_"

// Config holds engine-wide configuration settings.
type Config struct {
	Content   ContentConfig    `yaml:"content" envPrefix:"CONTENT_"`
	Database  database.Config  `yaml:"database" envPrefix:"DB_"`
	Telemetry telemetry.Config `yaml:"telemetry" envPrefix:"OTEL_"`

	// Persist commits derived results to the database. When false results
	// are kept in memory only.
	Persist bool `yaml:"persist" env:"PERSIST"`
}

// ContentConfig holds the authored content sources.
type ContentConfig struct {
	// ClassFiles are loaded in order; later files override earlier ones.
	ClassFiles []string `yaml:"class_files" env:"CLASS_FILES" envSeparator:","`

	// SpeciesFile is optional.
	SpeciesFile string `yaml:"species_file" env:"SPECIES_FILE"`

	// CacheSize bounds the resolved class cache.
	CacheSize int `yaml:"cache_size" env:"CACHE_SIZE"`

	// WatchInterval is how often content files are polled for changes.
	// 0 disables reloading.
	WatchInterval time.Duration `yaml:"watch_interval" env:"WATCH_INTERVAL"`
}

// DefaultConfig returns a Config with working defaults.
func DefaultConfig() *Config {
	return &Config{
		Content: ContentConfig{
			ClassFiles:  []string{"data/classes.yaml"},
			SpeciesFile: "data/species.yaml",
			CacheSize:   content.DefaultCacheSize,
		},
		Database:  database.DefaultConfig("data/heroforge.db"),
		Telemetry: telemetry.DefaultConfig(),
	}
}

// LoadConfig loads configuration from a YAML file and applies HEROFORGE_*
// environment overrides. A missing file yields the defaults.
func LoadConfig(path string) (*Config, error) {
	config := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case os.IsNotExist(err):
			// Use defaults if file doesn't exist
		case err != nil:
			return nil, fmt.Errorf("failed to read config file: %w", err)
		default:
			if err := yaml.Unmarshal(data, config); err != nil {
				return nil, fmt.Errorf("failed to parse config file: %w", err)
			}
		}
	}

	if err := env.ParseWithOptions(config, env.Options{Prefix: EnvPrefix}); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// Validate checks settings that would otherwise fail later at startup.
func (c *Config) Validate() error {
	if len(c.Content.ClassFiles) == 0 {
		return fmt.Errorf("content.class_files must name at least one file")
	}
	if c.Content.CacheSize < 0 {
		return fmt.Errorf("content.cache_size must not be negative, got %d", c.Content.CacheSize)
	}
	if c.Content.WatchInterval < 0 {
		return fmt.Errorf("content.watch_interval must not be negative, got %s", c.Content.WatchInterval)
	}
	switch database.DialectType(c.Database.Driver) {
	case database.DialectSQLite, database.DialectPostgres:
	default:
		return fmt.Errorf("database.driver must be sqlite or postgres, got %q", c.Database.Driver)
	}
	if c.Telemetry.SampleRatio < 0 || c.Telemetry.SampleRatio > 1 {
		return fmt.Errorf("telemetry.sample_ratio must be between 0 and 1, got %g", c.Telemetry.SampleRatio)
	}
	return nil
}
