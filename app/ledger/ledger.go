// Package ledger persists one durable entry per (periodKey, choreID) for
// historical aggregation. Entries are keyed by the composite id
// "<periodKey>|<choreID>" and are upserted, never deleted.
package ledger

import (
	"context"

	"chorewheel/app/models"
)

// Store is the durable ledger store. Get returns (nil, nil) when no entry
// exists for the id; that is the existence check reconciliation relies on.
// No transactions spanning multiple keys are required.
type Store interface {
	// Put upserts an entry under its ID.
	Put(ctx context.Context, entry *models.LedgerEntry) error
	// Get fetches an entry by primary key, nil if absent.
	Get(ctx context.Context, id string) (*models.LedgerEntry, error)
	// All returns every entry in the ledger.
	All(ctx context.Context) ([]models.LedgerEntry, error)
	// ByPeriod returns all entries for one period key.
	ByPeriod(ctx context.Context, periodKey string) ([]models.LedgerEntry, error)
	// Close releases the underlying connection.
	Close(ctx context.Context) error
}
