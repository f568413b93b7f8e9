package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds everything the CLI needs to run an ingestion.
type Config struct {
	Database DatabaseConfig `yaml:"database"`
	GameDay  GameDayConfig  `yaml:"gameday"`
	Ingest   IngestConfig   `yaml:"ingest"`
}

// DatabaseConfig points at the PostgreSQL store.
type DatabaseConfig struct {
	DSN string `yaml:"dsn"`
}

// GameDayConfig points at the GameDay data server.
type GameDayConfig struct {
	BaseURL string        `yaml:"base_url"`
	Timeout time.Duration `yaml:"timeout"`
}

// IngestConfig carries the run-shaping knobs.
type IngestConfig struct {
	Workers        int  `yaml:"workers"`
	SpringTraining bool `yaml:"spring_training"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Database: DatabaseConfig{
			DSN: "postgres://localhost/gameday?sslmode=disable",
		},
		GameDay: GameDayConfig{
			BaseURL: "http://gd2.mlb.com",
			Timeout: 15 * time.Second,
		},
		Ingest: IngestConfig{
			Workers: 4,
		},
	}
}

// Load reads a yaml config file over the defaults. An empty path means
// defaults only. The GAMEDAY_DSN environment variable overrides the file so
// credentials can stay out of version-controlled configs.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if dsn := os.Getenv("GAMEDAY_DSN"); dsn != "" {
		cfg.Database.DSN = dsn
	}

	return cfg, nil
}
