// Package engine runs one end-to-end feed update: load the log, load the
// datasets, pick an analyzer via the story roulette, gate the candidate
// against what was already published, render it, and persist the grown
// log. The whole pipeline is synchronous; the only suspension points are
// the boundary calls (dataset fetch, log load/persist, narrative
// generation).
package engine

import (
	"context"
	"math/rand/v2"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/porkytheunique/ocean-insight/internal/analysis"
	"github.com/porkytheunique/ocean-insight/internal/config"
	"github.com/porkytheunique/ocean-insight/internal/dedupe"
	"github.com/porkytheunique/ocean-insight/internal/insightlog"
	"github.com/porkytheunique/ocean-insight/internal/model"
	"github.com/porkytheunique/ocean-insight/internal/narrative"
	"github.com/porkytheunique/ocean-insight/internal/source"
	"github.com/porkytheunique/ocean-insight/internal/spatial"
)

// Engine wires the pipeline's collaborators. The random source is
// injected so sampling, the roulette, and bounded-retry draws are
// reproducible under test.
type Engine struct {
	Source    source.DataSource
	Store     insightlog.Store
	Generator narrative.Generator
	RNG       *rand.Rand
	Now       func() time.Time
	Analysis  config.AnalysisConfig
}

// GeoJob describes one geospatial run: a required query dataset, an
// optional auxiliary geometry dataset for proximity, and which analyzers
// the roulette may draw from.
type GeoJob struct {
	Name          string
	QueryURL      string
	IndexURL      string
	FocusProperty string

	// ThresholdKM switches proximity to bounded-retry mode: only pairs at
	// or under the threshold count as a story.
	ThresholdKM float64

	QueryLabel func(model.FeatureRecord) string
	IndexLabel func(model.FeatureRecord) string
}

// HeadlineSource supplies externally sourced headlines. Like the dataset
// source it is a single blocking call owned by a collaborator.
type HeadlineSource interface {
	Headlines(ctx context.Context, keywords []string) ([]model.HeadlineStory, error)
}

func (e *Engine) rng() *rand.Rand {
	if e.RNG != nil {
		return e.RNG
	}
	return rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), 0))
}

func (e *Engine) today() string {
	now := time.Now
	if e.Now != nil {
		now = e.Now
	}
	return now().UTC().Format("2006-01-02")
}

// RunGeo executes one geospatial feed update. It returns the appended
// entry, or one of the package sentinel errors when the run ends without
// output.
func (e *Engine) RunGeo(ctx context.Context, job GeoJob) (*model.InsightEntry, error) {
	log := zap.L().With(
		zap.String("component", "engine"),
		zap.String("job", job.Name),
		zap.String("run_id", uuid.New().String()),
	)
	rng := e.rng()
	date := e.today()

	// Load the existing feed snapshot first; a missing or malformed log is
	// a first run, but a store failure is not.
	entries, rev, err := e.Store.Load(ctx)
	if err != nil {
		return nil, eris.Wrap(err, "engine: load insight log")
	}

	query, err := e.Source.Fetch(ctx, job.QueryURL)
	if err != nil || len(query) == 0 {
		log.Warn("query dataset unavailable", zap.Error(err))
		return nil, eris.Wrap(ErrDataUnavailable, job.Name+" query dataset")
	}

	// The auxiliary dataset only feeds the proximity analyzer. When it
	// fails to load the run degrades: proximity drops out of the roulette
	// and the remaining analyzers stay in.
	var indexed model.Dataset
	var idx *spatial.Index
	if job.IndexURL != "" {
		indexed, err = e.Source.Fetch(ctx, job.IndexURL)
		if err != nil {
			log.Warn("auxiliary dataset unavailable, continuing without proximity", zap.Error(err))
			indexed = nil
		}
	}
	if len(indexed) > 0 {
		idx = spatial.BuildIndex(indexed)
	}

	candidates := e.assemble(rng, job, query, idx, indexed)
	chosen, ok := analysis.Pick(rng, candidates)
	if !ok {
		log.Warn("insufficient data: no analyzer has its inputs")
		return nil, eris.Wrap(ErrDataUnavailable, "no analyzer available")
	}

	story, ok := chosen.Run()
	if !ok {
		return nil, eris.Wrap(ErrNoCandidate, chosen.Name)
	}

	gate := dedupe.NewGate(entries, e.Analysis.SimilarityThreshold)
	if gate.Seen(*story, date) {
		return nil, eris.Wrap(ErrDuplicateCandidate, model.EntryUniqueID(story.Subject, date))
	}

	entry, err := e.Generator.Render(ctx, *story, date)
	if err != nil {
		return nil, eris.Wrap(ErrNarrative, eris.ToString(err, false))
	}

	if err := e.Store.Persist(ctx, insightlog.Prepend(entries, *entry), rev); err != nil {
		return nil, eris.Wrap(err, "engine: persist insight log")
	}

	log.Info("feed updated",
		zap.String("kind", string(story.Kind)),
		zap.String("unique_id", entry.UniqueID),
	)
	return entry, nil
}

// assemble builds the roulette candidate set from analyzers whose inputs
// are actually present. An analyzer with missing data never enters the
// draw.
func (e *Engine) assemble(rng *rand.Rand, job GeoJob, query model.Dataset, idx *spatial.Index, indexed model.Dataset) []analysis.Analyzer {
	var out []analysis.Analyzer

	if idx != nil && idx.Len() > 0 {
		cfg := analysis.ProximityConfig{
			SampleSize:  e.Analysis.SampleSize,
			K:           e.Analysis.NearestK,
			Attempts:    e.Analysis.RetryAttempts,
			ThresholdKM: job.ThresholdKM,
			QueryLabel:  job.QueryLabel,
			IndexLabel:  job.IndexLabel,
		}
		out = append(out, analysis.Analyzer{
			Name: "proximity",
			Run: func() (*model.StoryCandidate, bool) {
				var story *model.ProximityStory
				var ok bool
				if job.ThresholdKM > 0 {
					story, ok = analysis.FirstWithinThreshold(rng, query, idx, indexed, cfg)
				} else {
					story, ok = analysis.ClosestPair(rng, query, idx, indexed, cfg)
				}
				if !ok {
					return nil, false
				}
				return &model.StoryCandidate{
					Kind:      model.StoryProximity,
					Subject:   subjectOr(story.LabelA, job.Name+"-proximity"),
					Proximity: story,
				}, true
			},
		})
	}

	out = append(out, analysis.Analyzer{
		Name: "hotspot",
		Run: func() (*model.StoryCandidate, bool) {
			story, ok := analysis.GridHotspot(query, e.Analysis.CellSizeDeg)
			if !ok {
				return nil, false
			}
			return &model.StoryCandidate{
				Kind:    model.StoryHotspot,
				Subject: job.Name + "-hotspot",
				Hotspot: story,
			}, true
		},
	})

	if job.FocusProperty != "" {
		out = append(out, analysis.Analyzer{
			Name: "focus",
			Run: func() (*model.StoryCandidate, bool) {
				story, ok := analysis.CategoricalFocus(query, job.FocusProperty)
				if !ok {
					return nil, false
				}
				return &model.StoryCandidate{
					Kind:    model.StoryFocus,
					Subject: story.Category,
					Focus:   story,
				}, true
			},
		})
	}

	return out
}

// CurateHeadlines executes one news feed update: the first fetched
// headline that is not already published (by URL or title similarity)
// becomes the entry.
func (e *Engine) CurateHeadlines(ctx context.Context, src HeadlineSource, keywords []string) (*model.InsightEntry, error) {
	log := zap.L().With(
		zap.String("component", "engine"),
		zap.String("job", "news"),
		zap.String("run_id", uuid.New().String()),
	)
	date := e.today()

	entries, rev, err := e.Store.Load(ctx)
	if err != nil {
		return nil, eris.Wrap(err, "engine: load insight log")
	}

	headlines, err := src.Headlines(ctx, keywords)
	if err != nil || len(headlines) == 0 {
		log.Warn("headline feed unavailable", zap.Error(err))
		return nil, eris.Wrap(ErrDataUnavailable, "headline feed")
	}

	gate := dedupe.NewGate(entries, e.Analysis.SimilarityThreshold)
	var fresh *model.HeadlineStory
	for i := range headlines {
		if !gate.SeenHeadline(headlines[i].Title, headlines[i].URL) {
			fresh = &headlines[i]
			break
		}
	}
	if fresh == nil {
		return nil, eris.Wrap(ErrDuplicateCandidate, "all fetched headlines already published")
	}

	candidate := model.StoryCandidate{
		Kind:     model.StoryHeadline,
		Subject:  "news",
		Headline: fresh,
	}
	entry, err := e.Generator.Render(ctx, candidate, date)
	if err != nil {
		return nil, eris.Wrap(ErrNarrative, eris.ToString(err, false))
	}

	if err := e.Store.Persist(ctx, insightlog.Prepend(entries, *entry), rev); err != nil {
		return nil, eris.Wrap(err, "engine: persist insight log")
	}

	log.Info("feed updated", zap.String("source_url", entry.SourceURL))
	return entry, nil
}

func subjectOr(label, fallback string) string {
	if label != "" {
		return label
	}
	return fallback
}
