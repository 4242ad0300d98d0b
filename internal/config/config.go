// Package config reads process configuration from the environment.
package config

import "github.com/caarlos0/env/v11"

// Config is the environment surface of the CLI and store wiring.
type Config struct {
	// DatabasePath locates the SQLite file; parent directories are
	// created on open.
	DatabasePath string `env:"DATABASE_PATH" envDefault:"./data/quintle.db"`
	// LogLevel is a zerolog level name (debug, info, warn, ...).
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
	// WordsFile optionally overrides the embedded seed corpus.
	WordsFile string `env:"WORDS_FILE"`
}

// Load parses the configuration from environment variables.
func Load() (Config, error) {
	return env.ParseAs[Config]()
}
