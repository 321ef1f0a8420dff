package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "file", cfg.Store.Driver)
	assert.Equal(t, "latest_insight.json", cfg.Store.Path)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, 250, cfg.Analysis.SampleSize)
	assert.Equal(t, 5, cfg.Analysis.NearestK)
	assert.Equal(t, 20, cfg.Analysis.RetryAttempts)
	assert.InDelta(t, 5.0, cfg.Analysis.CellSizeDeg, 1e-12)
	assert.InDelta(t, 0.9, cfg.Analysis.SimilarityThreshold, 1e-12)
	assert.Equal(t, "eez", cfg.Fishing.FocusProperty)
	assert.InDelta(t, 200.0, cfg.OilGas.ThresholdKM, 1e-12)
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("OCEANINSIGHT_STORE_DRIVER", "sqlite")
	t.Setenv("OCEANINSIGHT_LOG_LEVEL", "debug")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "sqlite", cfg.Store.Driver)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestKeywordsFor(t *testing.T) {
	n := NewsConfig{
		WednesdayKeywords: []string{"ocean", "fishing"},
		SundayKeywords:    []string{"coral", "climate"},
	}

	wed := time.Date(2026, 8, 26, 10, 0, 0, 0, time.UTC) // a Wednesday
	sun := time.Date(2026, 8, 30, 10, 0, 0, 0, time.UTC) // a Sunday
	fri := time.Date(2026, 8, 28, 10, 0, 0, 0, time.UTC) // a Friday

	assert.Equal(t, []string{"ocean", "fishing"}, n.KeywordsFor(wed))
	assert.Equal(t, []string{"coral", "climate"}, n.KeywordsFor(sun))
	assert.Nil(t, n.KeywordsFor(fri))
}

func TestInitLogger(t *testing.T) {
	require.NoError(t, InitLogger(LogConfig{Level: "debug", Format: "console"}))
	require.NoError(t, InitLogger(LogConfig{Level: "info", Format: "json"}))
	assert.Error(t, InitLogger(LogConfig{Level: "shout"}))
}
