package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	require.Equal(t, ":8080", cfg.Server.Listen)
	require.Equal(t, "sqlite", cfg.Ledger.Backend)
	require.True(t, cfg.State.Watch)
	require.NoError(t, cfg.Validate())
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*Config)
		wantErr bool
	}{
		{"valid default", func(c *Config) {}, false},
		{"memory backend", func(c *Config) { c.Ledger.Backend = "memory" }, false},
		{"missing listen", func(c *Config) { c.Server.Listen = "" }, true},
		{"missing state path", func(c *Config) { c.State.Path = "" }, true},
		{"unknown backend", func(c *Config) { c.Ledger.Backend = "postgres" }, true},
		{"neo4j without uri", func(c *Config) {
			c.Ledger.Backend = "neo4j"
			c.Ledger.Neo4j.URI = ""
		}, true},
		{"sqlite without path", func(c *Config) {
			c.Ledger.SQLite.Path = ""
		}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.modify(cfg)
			err := cfg.Validate()
			if tt.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "chorewheel.yaml")
	doc := `
server:
  listen: ":9090"
ledger:
  backend: neo4j
  neo4j:
    uri: neo4j://db:7687
    user: svc
    password: secret
`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)
	require.Equal(t, ":9090", cfg.Server.Listen)
	require.Equal(t, "neo4j", cfg.Ledger.Backend)
	require.Equal(t, "neo4j://db:7687", cfg.Ledger.Neo4j.URI)
	// Unspecified sections keep their defaults.
	require.Equal(t, "chorewheel-state.json", cfg.State.Path)
	require.NoError(t, cfg.Validate())
}

func TestLoadFromFileMissing(t *testing.T) {
	_, err := LoadFromFile(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}
