package ledger

import (
	"fmt"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"chorewheel/app/config"
)

// Open builds the Store selected by cfg.Backend.
func Open(cfg config.LedgerConfig) (Store, error) {
	switch cfg.Backend {
	case "neo4j":
		driver, err := neo4j.NewDriverWithContext(cfg.Neo4j.URI,
			neo4j.BasicAuth(cfg.Neo4j.User, cfg.Neo4j.Password, ""))
		if err != nil {
			return nil, fmt.Errorf("create neo4j driver: %w", err)
		}
		return NewNeo4jStore(driver), nil
	case "sqlite":
		return NewSQLiteStore(cfg.SQLite.Path)
	case "memory":
		return NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("unknown ledger backend %q", cfg.Backend)
	}
}
