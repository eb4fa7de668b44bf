package ledger

import (
	"context"
	"fmt"
	"time"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"chorewheel/app/models"
)

const entryReturn = "RETURN e.id AS id, e.periodKey AS periodKey, e.choreId AS choreId, " +
	"e.choreName AS choreName, e.frequency AS frequency, e.assignedMemberId AS assignedMemberId, " +
	"e.createdAt AS createdAt, e.completed AS completed, e.completedAt AS completedAt, " +
	"e.completedByMemberId AS completedByMemberId, e.completedByName AS completedByName"

// Neo4jStore is a Store keeping ledger entries as (:LedgerEntry) nodes.
type Neo4jStore struct {
	driver neo4j.DriverWithContext
}

// NewNeo4jStore creates a ledger store on an existing driver. The store does
// not own the driver; Close closes it.
func NewNeo4jStore(driver neo4j.DriverWithContext) *Neo4jStore {
	return &Neo4jStore{driver: driver}
}

func (s *Neo4jStore) Put(ctx context.Context, entry *models.LedgerEntry) error {
	session := s.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeWrite})
	defer session.Close(ctx)

	_, err := session.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		_, err := tx.Run(ctx,
			"MERGE (e:LedgerEntry {id: $id}) "+
				"SET e.periodKey = $periodKey, e.choreId = $choreId, e.choreName = $choreName, "+
				"e.frequency = $frequency, e.assignedMemberId = $assignedMemberId, "+
				"e.createdAt = $createdAt, e.completed = $completed, e.completedAt = $completedAt, "+
				"e.completedByMemberId = $completedByMemberId, e.completedByName = $completedByName",
			map[string]any{
				"id":                  entry.ID,
				"periodKey":           entry.PeriodKey,
				"choreId":             entry.ChoreID,
				"choreName":           entry.ChoreNameSnapshot,
				"frequency":           string(entry.FrequencySnapshot),
				"assignedMemberId":    anyString(entry.AssignedMemberID),
				"createdAt":           entry.CreatedAt.UnixMilli(),
				"completed":           entry.Completed,
				"completedAt":         anyMillis(entry.CompletedAt),
				"completedByMemberId": anyString(entry.CompletedByMemberID),
				"completedByName":     anyString(entry.CompletedByName),
			},
		)
		return nil, err
	})
	if err != nil {
		return fmt.Errorf("put ledger entry %s: %w", entry.ID, err)
	}
	return nil
}

func (s *Neo4jStore) Get(ctx context.Context, id string) (*models.LedgerEntry, error) {
	entries, err := s.read(ctx,
		"MATCH (e:LedgerEntry {id: $id}) "+entryReturn,
		map[string]any{"id": id})
	if err != nil {
		return nil, fmt.Errorf("get ledger entry %s: %w", id, err)
	}
	if len(entries) == 0 {
		return nil, nil
	}
	return &entries[0], nil
}

func (s *Neo4jStore) All(ctx context.Context) ([]models.LedgerEntry, error) {
	entries, err := s.read(ctx, "MATCH (e:LedgerEntry) "+entryReturn, nil)
	if err != nil {
		return nil, fmt.Errorf("list ledger entries: %w", err)
	}
	return entries, nil
}

func (s *Neo4jStore) ByPeriod(ctx context.Context, periodKey string) ([]models.LedgerEntry, error) {
	entries, err := s.read(ctx,
		"MATCH (e:LedgerEntry {periodKey: $periodKey}) "+entryReturn,
		map[string]any{"periodKey": periodKey})
	if err != nil {
		return nil, fmt.Errorf("list ledger entries for %s: %w", periodKey, err)
	}
	return entries, nil
}

func (s *Neo4jStore) Close(ctx context.Context) error {
	return s.driver.Close(ctx)
}

func (s *Neo4jStore) read(ctx context.Context, query string, params map[string]any) ([]models.LedgerEntry, error) {
	session := s.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeRead})
	defer session.Close(ctx)

	result, err := session.ExecuteRead(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		res, err := tx.Run(ctx, query, params)
		if err != nil {
			return nil, err
		}

		var entries []models.LedgerEntry
		for res.Next(ctx) {
			record := res.Record()
			entry := models.LedgerEntry{
				ID:                record.Values[0].(string),
				PeriodKey:         record.Values[1].(string),
				ChoreID:           record.Values[2].(string),
				FrequencySnapshot: models.Frequency(record.Values[4].(string)),
				CreatedAt:         time.UnixMilli(record.Values[6].(int64)),
				Completed:         record.Values[7].(bool),
			}
			if record.Values[3] != nil {
				entry.ChoreNameSnapshot = record.Values[3].(string)
			}
			if record.Values[5] != nil {
				id := record.Values[5].(string)
				entry.AssignedMemberID = &id
			}
			if record.Values[8] != nil {
				at := time.UnixMilli(record.Values[8].(int64))
				entry.CompletedAt = &at
			}
			if record.Values[9] != nil {
				id := record.Values[9].(string)
				entry.CompletedByMemberID = &id
			}
			if record.Values[10] != nil {
				name := record.Values[10].(string)
				entry.CompletedByName = &name
			}
			entries = append(entries, entry)
		}
		if err := res.Err(); err != nil {
			return nil, err
		}
		return entries, nil
	})
	if err != nil {
		return nil, err
	}
	return result.([]models.LedgerEntry), nil
}

func anyString(s *string) any {
	if s == nil {
		return nil
	}
	return *s
}

func anyMillis(t *time.Time) any {
	if t == nil {
		return nil
	}
	return t.UnixMilli()
}
