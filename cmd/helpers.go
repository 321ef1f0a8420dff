package main

import (
	"context"
	"fmt"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/porkytheunique/ocean-insight/internal/engine"
	"github.com/porkytheunique/ocean-insight/internal/insightlog"
	"github.com/porkytheunique/ocean-insight/internal/model"
	"github.com/porkytheunique/ocean-insight/internal/narrative"
	"github.com/porkytheunique/ocean-insight/internal/source"
	"github.com/porkytheunique/ocean-insight/pkg/anthropic"
)

// openStore selects the insight log backend from config.
func openStore(ctx context.Context) (insightlog.Store, error) {
	switch cfg.Store.Driver {
	case "", "file":
		return insightlog.NewFileStore(cfg.Store.Path), nil
	case "sqlite":
		return insightlog.NewSQLite(cfg.Store.Path)
	case "postgres":
		return insightlog.NewPostgres(ctx, cfg.Store.DatabaseURL)
	default:
		return nil, eris.Errorf("unknown store driver %q", cfg.Store.Driver)
	}
}

// buildEngine assembles the pipeline from config. The caller owns the
// returned store and must close it.
func buildEngine(ctx context.Context) (*engine.Engine, insightlog.Store, error) {
	if cfg.Anthropic.Key == "" {
		return nil, nil, eris.New("anthropic key not configured")
	}

	store, err := openStore(ctx)
	if err != nil {
		return nil, nil, err
	}

	gen := narrative.NewAnthropic(
		anthropic.NewClient(cfg.Anthropic.Key),
		narrative.Options{
			Model:     cfg.Anthropic.Model,
			MaxTokens: cfg.Anthropic.MaxTokens,
			Zoom:      cfg.Analysis.Zoom,
			MaxZoom:   cfg.Analysis.MaxZoom,
		},
	)

	eng := &engine.Engine{
		Source:    buildHTTPSource(),
		Store:     store,
		Generator: gen,
		Analysis:  cfg.Analysis,
	}
	return eng, store, nil
}

func buildHTTPSource() *source.HTTPSource {
	return source.NewHTTPSource(source.HTTPOptions{
		UserAgent:      cfg.Source.UserAgent,
		Timeout:        time.Duration(cfg.Source.TimeoutSecs) * time.Second,
		RequestsPerSec: cfg.Source.RequestsPerSec,
	})
}

// reportOutcome prints the run result and maps benign no-output outcomes
// to a zero exit.
func reportOutcome(entry *model.InsightEntry, err error) error {
	if err == nil {
		fmt.Printf("published: %s\n", entry.Tag)
		return nil
	}
	if engine.Benign(err) {
		zap.L().Info("run ended without output", zap.String("reason", err.Error()))
		fmt.Println("no new insight this run")
		return nil
	}
	return err
}
