package insightlog

import (
	"context"
	"encoding/json"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rotisserie/eris"

	"github.com/porkytheunique/ocean-insight/internal/model"
)

// Pool is the subset of pgxpool.Pool the store needs. pgxmock implements
// it for tests.
type Pool interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// PostgresStore persists the feed in PostgreSQL, one row per entry ordered
// by position (0 = newest). A revision counter is stored alongside so the
// read-modify-write race can be closed later with a compare-and-set; it is
// tracked but not yet enforced.
type PostgresStore struct {
	pool    Pool
	closeFn func()
}

// NewPostgres connects a pool to connString and ensures the schema.
func NewPostgres(ctx context.Context, connString string) (*PostgresStore, error) {
	pool, err := pgxpool.New(ctx, connString)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: connect")
	}
	s := &PostgresStore{pool: pool, closeFn: pool.Close}
	if err := s.migrate(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return s, nil
}

// NewPostgresWithPool wraps an existing pool (used by tests).
func NewPostgresWithPool(pool Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

func (s *PostgresStore) migrate(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS insights (
			position INTEGER PRIMARY KEY,
			entry    JSONB NOT NULL
		);
		CREATE TABLE IF NOT EXISTS insights_meta (
			id       INTEGER PRIMARY KEY CHECK (id = 1),
			revision BIGINT NOT NULL DEFAULT 0
		);
		INSERT INTO insights_meta (id, revision) VALUES (1, 0) ON CONFLICT (id) DO NOTHING;
	`)
	return eris.Wrap(err, "postgres: migrate")
}

func (s *PostgresStore) Load(ctx context.Context) ([]model.InsightEntry, Revision, error) {
	var rev int64
	if err := s.pool.QueryRow(ctx, `SELECT revision FROM insights_meta WHERE id = 1`).Scan(&rev); err != nil {
		return nil, 0, eris.Wrap(err, "postgres: load revision")
	}

	rows, err := s.pool.Query(ctx, `SELECT entry FROM insights ORDER BY position`)
	if err != nil {
		return nil, 0, eris.Wrap(err, "postgres: load insights")
	}
	defer rows.Close()

	var entries []model.InsightEntry
	for rows.Next() {
		var raw []byte
		if err := rows.Scan(&raw); err != nil {
			return nil, 0, eris.Wrap(err, "postgres: scan insight row")
		}
		var e model.InsightEntry
		if err := json.Unmarshal(raw, &e); err != nil {
			return nil, 0, eris.Wrap(err, "postgres: unmarshal insight entry")
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, eris.Wrap(err, "postgres: iterate insight rows")
	}
	return entries, Revision(rev), nil
}

func (s *PostgresStore) Persist(ctx context.Context, entries []model.InsightEntry, rev Revision) error {
	if _, err := s.pool.Exec(ctx, `DELETE FROM insights`); err != nil {
		return eris.Wrap(err, "postgres: clear insights")
	}
	for i, e := range entries {
		raw, err := json.Marshal(e)
		if err != nil {
			return eris.Wrap(err, "postgres: marshal insight entry")
		}
		if _, err := s.pool.Exec(ctx,
			`INSERT INTO insights (position, entry) VALUES ($1, $2)`,
			i, raw,
		); err != nil {
			return eris.Wrap(err, "postgres: insert insight entry")
		}
	}
	if _, err := s.pool.Exec(ctx,
		`UPDATE insights_meta SET revision = $1 WHERE id = 1`,
		int64(rev)+1,
	); err != nil {
		return eris.Wrap(err, "postgres: bump revision")
	}
	return nil
}

func (s *PostgresStore) Close() error {
	if s.closeFn != nil {
		s.closeFn()
	}
	return nil
}
