package insightlog

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/porkytheunique/ocean-insight/internal/model"
)

func sampleEntries() []model.InsightEntry {
	return []model.InsightEntry{
		{
			Tag:      "hotspot",
			Content:  "Heavy fishing activity clustered off the coast.",
			MapView:  model.MapView{Center: [2]float64{2.5, 2.5}, Zoom: 4, MaxZoom: 10},
			Date:     "2026-08-28",
			UniqueID: "hotspot-2026-08-28",
		},
		{
			Tag:            "headline",
			Content:        "Coral bleaching spreads in the Pacific.",
			Date:           "2026-08-27",
			SourceURL:      "https://example.org/coral",
			SourceHeadline: "Coral bleaching spreads in the Pacific",
		},
	}
}

func TestFileStore_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "insights.json")
	s := NewFileStore(path)
	ctx := context.Background()

	want := sampleEntries()
	require.NoError(t, s.Persist(ctx, want, 0))

	got, _, err := s.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestFileStore_MissingFileIsFirstRun(t *testing.T) {
	s := NewFileStore(filepath.Join(t.TempDir(), "nope.json"))

	entries, rev, err := s.Load(context.Background())
	require.NoError(t, err)
	assert.Empty(t, entries)
	assert.Equal(t, Revision(0), rev)
}

func TestFileStore_MalformedFileIsFirstRun(t *testing.T) {
	path := filepath.Join(t.TempDir(), "insights.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	entries, _, err := NewFileStore(path).Load(context.Background())
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestFileStore_PersistEmptyWritesArray(t *testing.T) {
	path := filepath.Join(t.TempDir(), "insights.json")
	s := NewFileStore(path)

	require.NoError(t, s.Persist(context.Background(), nil, 0))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.JSONEq(t, "[]", string(data))
}

func TestFileStore_PersistCreatesParentDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "feed", "insights.json")
	s := NewFileStore(path)

	require.NoError(t, s.Persist(context.Background(), sampleEntries(), 0))
	_, err := os.Stat(path)
	assert.NoError(t, err)
}

func TestPrepend(t *testing.T) {
	existing := sampleEntries()
	newest := model.InsightEntry{Tag: "focus", Date: "2026-08-29", UniqueID: "focus-2026-08-29"}

	out := Prepend(existing, newest)
	require.Len(t, out, 3)
	assert.Equal(t, newest, out[0])
	assert.Equal(t, existing[0], out[1])
	assert.Equal(t, existing[1], out[2])
}
