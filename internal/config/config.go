// Package config loads pipeline configuration from a TOML file, with
// defaults that run out of the box and a small set of environment
// overrides for deployment secrets and paths.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

// Config holds all application configuration.
type Config struct {
	Database DatabaseConfig `toml:"database"`
	Pipeline PipelineConfig `toml:"pipeline"`
	NewsData NewsDataConfig `toml:"newsdata"`
	Logging  LoggingConfig  `toml:"logging"`
}

type DatabaseConfig struct {
	Path string `toml:"path"`
}

type PipelineConfig struct {
	InboxDir string `toml:"inbox_dir"`
	Schedule string `toml:"schedule"`
	Timezone string `toml:"timezone"`
}

type NewsDataConfig struct {
	APIKey string `toml:"api_key"`
}

type LoggingConfig struct {
	Level string `toml:"level"`
}

// Default returns a Config with sensible defaults.
func Default() *Config {
	return &Config{
		Database: DatabaseConfig{
			Path: "data/newslake.db",
		},
		Pipeline: PipelineConfig{
			InboxDir: "data/inbox",
			Schedule: "0 * * * *",
			Timezone: "UTC",
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Load reads config from path, layered over defaults. A missing file is
// fine; defaults apply. Environment overrides win last (a .env file in the
// working directory is read if present):
//
//	NEWSLAKE_DB_PATH  -> database.path
//	NEWSLAKE_INBOX    -> pipeline.inbox_dir
//	NEWSDATA_API_KEY  -> newsdata.api_key
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		if _, err := toml.DecodeFile(path, cfg); err != nil {
			if !os.IsNotExist(err) {
				return nil, fmt.Errorf("parsing config %s: %w", path, err)
			}
		}
	}

	godotenv.Load()
	if v := os.Getenv("NEWSLAKE_DB_PATH"); v != "" {
		cfg.Database.Path = v
	}
	if v := os.Getenv("NEWSLAKE_INBOX"); v != "" {
		cfg.Pipeline.InboxDir = v
	}
	if v := os.Getenv("NEWSDATA_API_KEY"); v != "" {
		cfg.NewsData.APIKey = v
	}

	return cfg, nil
}
