package insightlog

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/rotisserie/eris"
	_ "modernc.org/sqlite"

	"github.com/porkytheunique/ocean-insight/internal/model"
)

// SQLiteStore persists the feed in a local SQLite database. Entries are
// stored one row per entry ordered by position, position 0 being the
// newest.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLite opens (or creates) the database at dsn and configures WAL mode.
func NewSQLite(dsn string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: open")
	}
	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=NORMAL",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, eris.Wrapf(err, "sqlite: exec %s", pragma)
		}
	}

	if _, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS insights (
			position INTEGER PRIMARY KEY,
			entry    TEXT NOT NULL
		)`); err != nil {
		db.Close()
		return nil, eris.Wrap(err, "sqlite: migrate")
	}

	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Load(ctx context.Context) ([]model.InsightEntry, Revision, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT entry FROM insights ORDER BY position`)
	if err != nil {
		return nil, 0, eris.Wrap(err, "sqlite: load insights")
	}
	defer rows.Close() //nolint:errcheck

	var entries []model.InsightEntry
	for rows.Next() {
		var raw string
		if err := rows.Scan(&raw); err != nil {
			return nil, 0, eris.Wrap(err, "sqlite: scan insight row")
		}
		var e model.InsightEntry
		if err := json.Unmarshal([]byte(raw), &e); err != nil {
			return nil, 0, eris.Wrap(err, "sqlite: unmarshal insight entry")
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, eris.Wrap(err, "sqlite: iterate insight rows")
	}
	return entries, Revision(len(entries)), nil
}

func (s *SQLiteStore) Persist(ctx context.Context, entries []model.InsightEntry, rev Revision) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return eris.Wrap(err, "sqlite: begin persist")
	}
	defer tx.Rollback() //nolint:errcheck

	if _, err := tx.ExecContext(ctx, `DELETE FROM insights`); err != nil {
		return eris.Wrap(err, "sqlite: clear insights")
	}
	for i, e := range entries {
		raw, err := json.Marshal(e)
		if err != nil {
			return eris.Wrap(err, "sqlite: marshal insight entry")
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO insights (position, entry) VALUES (?, ?)`,
			i, string(raw),
		); err != nil {
			return eris.Wrap(err, "sqlite: insert insight entry")
		}
	}

	return eris.Wrap(tx.Commit(), "sqlite: commit persist")
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
