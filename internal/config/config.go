package config

import (
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds the full application configuration. All environment and
// file lookups happen here, once; the engine receives an explicit struct.
type Config struct {
	Store     StoreConfig     `yaml:"store" mapstructure:"store"`
	Source    SourceConfig    `yaml:"source" mapstructure:"source"`
	Anthropic AnthropicConfig `yaml:"anthropic" mapstructure:"anthropic"`
	Analysis  AnalysisConfig  `yaml:"analysis" mapstructure:"analysis"`
	Fishing   FishingConfig   `yaml:"fishing" mapstructure:"fishing"`
	OilGas    OilGasConfig    `yaml:"oilgas" mapstructure:"oilgas"`
	News      NewsConfig      `yaml:"news" mapstructure:"news"`
	Log       LogConfig       `yaml:"log" mapstructure:"log"`
}

// StoreConfig configures the insight log backend.
type StoreConfig struct {
	Driver      string `yaml:"driver" mapstructure:"driver"` // file | sqlite | postgres
	Path        string `yaml:"path" mapstructure:"path"`
	DatabaseURL string `yaml:"database_url" mapstructure:"database_url"`
}

// SourceConfig configures dataset fetching.
type SourceConfig struct {
	UserAgent      string  `yaml:"user_agent" mapstructure:"user_agent"`
	TimeoutSecs    int     `yaml:"timeout_secs" mapstructure:"timeout_secs"`
	RequestsPerSec float64 `yaml:"requests_per_sec" mapstructure:"requests_per_sec"`
}

// AnthropicConfig holds narrative generation settings.
type AnthropicConfig struct {
	Key       string `yaml:"key" mapstructure:"key"`
	Model     string `yaml:"model" mapstructure:"model"`
	MaxTokens int64  `yaml:"max_tokens" mapstructure:"max_tokens"`
}

// AnalysisConfig tunes the story analyzers and the dedup gate.
type AnalysisConfig struct {
	SampleSize          int     `yaml:"sample_size" mapstructure:"sample_size"`
	NearestK            int     `yaml:"nearest_k" mapstructure:"nearest_k"`
	RetryAttempts       int     `yaml:"retry_attempts" mapstructure:"retry_attempts"`
	CellSizeDeg         float64 `yaml:"cell_size_deg" mapstructure:"cell_size_deg"`
	SimilarityThreshold float64 `yaml:"similarity_threshold" mapstructure:"similarity_threshold"`
	Zoom                int     `yaml:"zoom" mapstructure:"zoom"`
	MaxZoom             int     `yaml:"max_zoom" mapstructure:"max_zoom"`
}

// FishingConfig configures the fishing-activity run.
type FishingConfig struct {
	EventsURL         string `yaml:"events_url" mapstructure:"events_url"`
	ProtectedAreasURL string `yaml:"protected_areas_url" mapstructure:"protected_areas_url"`
	FocusProperty     string `yaml:"focus_property" mapstructure:"focus_property"`
}

// OilGasConfig configures the platform proximity run.
type OilGasConfig struct {
	PlatformsURL string  `yaml:"platforms_url" mapstructure:"platforms_url"`
	CoralURL     string  `yaml:"coral_url" mapstructure:"coral_url"`
	ThresholdKM  float64 `yaml:"threshold_km" mapstructure:"threshold_km"`
}

// NewsConfig configures headline curation keywords by publish day.
type NewsConfig struct {
	FeedURL           string   `yaml:"feed_url" mapstructure:"feed_url"`
	WednesdayKeywords []string `yaml:"wednesday_keywords" mapstructure:"wednesday_keywords"`
	SundayKeywords    []string `yaml:"sunday_keywords" mapstructure:"sunday_keywords"`
}

// KeywordsFor returns the keyword list scheduled for the given day, or nil
// when the day has no news slot. Scheduling itself stays outside the
// engine; this is only the lookup.
func (n NewsConfig) KeywordsFor(t time.Time) []string {
	switch t.UTC().Weekday() {
	case time.Wednesday:
		return n.WednesdayKeywords
	case time.Sunday:
		return n.SundayKeywords
	default:
		return nil
	}
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// Load reads configuration from file and environment.
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("OCEANINSIGHT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("store.driver", "file")
	v.SetDefault("store.path", "latest_insight.json")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("source.timeout_secs", 60)
	v.SetDefault("source.requests_per_sec", 2)
	v.SetDefault("anthropic.model", "claude-haiku-4-5-20251001")
	v.SetDefault("anthropic.max_tokens", 400)
	v.SetDefault("analysis.sample_size", 250)
	v.SetDefault("analysis.nearest_k", 5)
	v.SetDefault("analysis.retry_attempts", 20)
	v.SetDefault("analysis.cell_size_deg", 5.0)
	v.SetDefault("analysis.similarity_threshold", 0.9)
	v.SetDefault("analysis.zoom", 4)
	v.SetDefault("analysis.max_zoom", 10)
	v.SetDefault("fishing.events_url", "https://porkytheunique.github.io/ocean-map-data/fishing_events.geojson")
	v.SetDefault("fishing.protected_areas_url", "https://porkytheunique.github.io/ocean-map-data/WDPA.json")
	v.SetDefault("fishing.focus_property", "eez")
	v.SetDefault("oilgas.threshold_km", 200.0)

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	return &cfg, nil
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
