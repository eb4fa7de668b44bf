// Package config provides configuration loading for chorewheel.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the complete service configuration.
type Config struct {
	Server ServerConfig `yaml:"server"`
	State  StateConfig  `yaml:"state"`
	Ledger LedgerConfig `yaml:"ledger"`
}

// ServerConfig configures the HTTP listener.
type ServerConfig struct {
	// Listen is the address the API binds to.
	Listen string `yaml:"listen"`
}

// StateConfig configures the fast-path state file.
type StateConfig struct {
	// Path is the JSON state file. Created with seed data if missing.
	Path string `yaml:"path"`
	// Watch re-runs reconciliation when the file changes on disk.
	Watch bool `yaml:"watch"`
}

// LedgerConfig selects and configures the durable ledger backend.
type LedgerConfig struct {
	// Backend is one of "neo4j", "sqlite", "memory".
	Backend string       `yaml:"backend"`
	Neo4j   Neo4jConfig  `yaml:"neo4j"`
	SQLite  SQLiteConfig `yaml:"sqlite"`
}

// Neo4jConfig holds the neo4j connection settings.
type Neo4jConfig struct {
	URI      string `yaml:"uri"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
}

// SQLiteConfig holds the sqlite file path.
type SQLiteConfig struct {
	Path string `yaml:"path"`
}

// DefaultConfig returns a Config with sensible defaults: sqlite ledger next
// to the state file, listening on :8080.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{Listen: ":8080"},
		State:  StateConfig{Path: "chorewheel-state.json", Watch: true},
		Ledger: LedgerConfig{
			Backend: "sqlite",
			Neo4j:   Neo4jConfig{URI: "neo4j://localhost:7687", User: "neo4j", Password: "password"},
			SQLite:  SQLiteConfig{Path: "chorewheel-ledger.db"},
		},
	}
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	if c.Server.Listen == "" {
		return fmt.Errorf("server.listen is required")
	}
	if c.State.Path == "" {
		return fmt.Errorf("state.path is required")
	}
	switch c.Ledger.Backend {
	case "neo4j":
		if c.Ledger.Neo4j.URI == "" {
			return fmt.Errorf("ledger.neo4j.uri is required")
		}
	case "sqlite":
		if c.Ledger.SQLite.Path == "" {
			return fmt.Errorf("ledger.sqlite.path is required")
		}
	case "memory":
	default:
		return fmt.Errorf("ledger.backend must be neo4j, sqlite or memory, got %q", c.Ledger.Backend)
	}
	return nil
}

// LoadFromFile loads configuration from a YAML file, layered over defaults.
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	return config, nil
}
