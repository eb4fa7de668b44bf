package ledger

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"chorewheel/app/models"
)

// Schema for the ledger_entries table, applied by NewSQLiteStore.
// Timestamps are stored as epoch milliseconds.
const schema = `
CREATE TABLE IF NOT EXISTS ledger_entries (
	id TEXT PRIMARY KEY,
	period_key TEXT NOT NULL,
	chore_id TEXT NOT NULL,
	chore_name TEXT NOT NULL DEFAULT '',
	frequency TEXT NOT NULL,
	assigned_member_id TEXT,
	created_at INTEGER NOT NULL,
	completed INTEGER NOT NULL DEFAULT 0,
	completed_at INTEGER,
	completed_by_member_id TEXT,
	completed_by_name TEXT
);
CREATE INDEX IF NOT EXISTS idx_ledger_period ON ledger_entries(period_key);
CREATE INDEX IF NOT EXISTS idx_ledger_completed_at ON ledger_entries(completed_at);
`

const entryColumns = `id, period_key, chore_id, chore_name, frequency, assigned_member_id,
	created_at, completed, completed_at, completed_by_member_id, completed_by_name`

// SQLiteStore is a Store backed by a local SQLite file. Suits single-binary
// deployments where running a database server is not worth it.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens (creating if needed) the database at path and applies
// the schema.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite ledger: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply ledger schema: %w", err)
	}
	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Put(ctx context.Context, entry *models.LedgerEntry) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO ledger_entries (`+entryColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			chore_name = excluded.chore_name,
			completed = excluded.completed,
			completed_at = excluded.completed_at,
			completed_by_member_id = excluded.completed_by_member_id,
			completed_by_name = excluded.completed_by_name`,
		entry.ID, entry.PeriodKey, entry.ChoreID, entry.ChoreNameSnapshot,
		string(entry.FrequencySnapshot), nullString(entry.AssignedMemberID),
		entry.CreatedAt.UnixMilli(), entry.Completed, nullMillis(entry.CompletedAt),
		nullString(entry.CompletedByMemberID), nullString(entry.CompletedByName),
	)
	if err != nil {
		return fmt.Errorf("put ledger entry %s: %w", entry.ID, err)
	}
	return nil
}

func (s *SQLiteStore) Get(ctx context.Context, id string) (*models.LedgerEntry, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+entryColumns+` FROM ledger_entries WHERE id = ?`, id)
	entry, err := scanEntry(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get ledger entry %s: %w", id, err)
	}
	return entry, nil
}

func (s *SQLiteStore) All(ctx context.Context) ([]models.LedgerEntry, error) {
	return s.query(ctx, `SELECT `+entryColumns+` FROM ledger_entries`)
}

func (s *SQLiteStore) ByPeriod(ctx context.Context, periodKey string) ([]models.LedgerEntry, error) {
	return s.query(ctx,
		`SELECT `+entryColumns+` FROM ledger_entries WHERE period_key = ?`, periodKey)
}

func (s *SQLiteStore) Close(context.Context) error {
	return s.db.Close()
}

func (s *SQLiteStore) query(ctx context.Context, q string, args ...any) ([]models.LedgerEntry, error) {
	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("query ledger: %w", err)
	}
	defer rows.Close()

	var out []models.LedgerEntry
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("scan ledger entry: %w", err)
		}
		out = append(out, *entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate ledger: %w", err)
	}
	return out, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanEntry(row scanner) (*models.LedgerEntry, error) {
	var (
		entry       models.LedgerEntry
		frequency   string
		assigned    sql.NullString
		createdAt   int64
		completedAt sql.NullInt64
		byMember    sql.NullString
		byName      sql.NullString
	)
	err := row.Scan(&entry.ID, &entry.PeriodKey, &entry.ChoreID, &entry.ChoreNameSnapshot,
		&frequency, &assigned, &createdAt, &entry.Completed, &completedAt, &byMember, &byName)
	if err != nil {
		return nil, err
	}
	entry.FrequencySnapshot = models.Frequency(frequency)
	entry.AssignedMemberID = stringPtr(assigned)
	entry.CreatedAt = time.UnixMilli(createdAt)
	entry.CompletedAt = timePtr(completedAt)
	entry.CompletedByMemberID = stringPtr(byMember)
	entry.CompletedByName = stringPtr(byName)
	return &entry, nil
}

func nullString(s *string) any {
	if s == nil {
		return nil
	}
	return *s
}

func nullMillis(t *time.Time) any {
	if t == nil {
		return nil
	}
	return t.UnixMilli()
}

func stringPtr(s sql.NullString) *string {
	if !s.Valid {
		return nil
	}
	return &s.String
}

func timePtr(ms sql.NullInt64) *time.Time {
	if !ms.Valid {
		return nil
	}
	t := time.UnixMilli(ms.Int64)
	return &t
}
