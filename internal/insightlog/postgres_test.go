package insightlog

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/porkytheunique/ocean-insight/internal/model"
)

func TestPostgresStore_Load(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	entries := sampleEntries()
	rows := pgxmock.NewRows([]string{"entry"})
	for _, e := range entries {
		raw, err := json.Marshal(e)
		require.NoError(t, err)
		rows.AddRow(raw)
	}

	mock.ExpectQuery("SELECT revision FROM insights_meta").
		WillReturnRows(pgxmock.NewRows([]string{"revision"}).AddRow(int64(7)))
	mock.ExpectQuery("SELECT entry FROM insights ORDER BY position").
		WillReturnRows(rows)

	s := NewPostgresWithPool(mock)
	got, rev, err := s.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, entries, got)
	assert.Equal(t, Revision(7), rev)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_LoadEmpty(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectQuery("SELECT revision FROM insights_meta").
		WillReturnRows(pgxmock.NewRows([]string{"revision"}).AddRow(int64(0)))
	mock.ExpectQuery("SELECT entry FROM insights").
		WillReturnRows(pgxmock.NewRows([]string{"entry"}))

	s := NewPostgresWithPool(mock)
	got, rev, err := s.Load(context.Background())
	require.NoError(t, err)
	assert.Empty(t, got)
	assert.Equal(t, Revision(0), rev)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_PersistBumpsRevision(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	entries := []model.InsightEntry{
		{Tag: "hotspot", Date: "2026-08-28", UniqueID: "hotspot-2026-08-28"},
	}

	mock.ExpectExec("DELETE FROM insights").
		WillReturnResult(pgxmock.NewResult("DELETE", 0))
	mock.ExpectExec("INSERT INTO insights").
		WithArgs(pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectExec("UPDATE insights_meta SET revision").
		WithArgs(int64(8)).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	s := NewPostgresWithPool(mock)
	require.NoError(t, s.Persist(context.Background(), entries, Revision(7)))
	assert.NoError(t, mock.ExpectationsWereMet())
}
