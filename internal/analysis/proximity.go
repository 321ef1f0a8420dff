// Package analysis holds the story analyzers and the roulette selector.
// Every analyzer returns (story, false) rather than an error when nothing
// notable is found; "no result" is a normal outcome of a run.
package analysis

import (
	"math"
	"math/rand/v2"

	"go.uber.org/zap"

	"github.com/porkytheunique/ocean-insight/internal/model"
	"github.com/porkytheunique/ocean-insight/internal/spatial"
)

const (
	// DefaultSampleSize bounds the exhaustive-sample scan. Only a sample of
	// the query set is scanned, so the result is the closest pair found in
	// the sample, not necessarily the true global closest pair.
	DefaultSampleSize = 250

	// DefaultNearestK is how many box-nearest candidates get an exact
	// distance computation per sampled point.
	DefaultNearestK = 5

	// DefaultRetryAttempts is the draw budget for bounded-retry mode.
	DefaultRetryAttempts = 20
)

// ProximityConfig configures a proximity analysis pass.
type ProximityConfig struct {
	SampleSize int
	K          int
	Attempts   int

	// ThresholdKM is the notability cutoff for bounded-retry mode.
	ThresholdKM float64

	// QueryLabel and IndexLabel render display labels for the two sides of
	// a found pair. Nil labels produce empty strings.
	QueryLabel func(model.FeatureRecord) string
	IndexLabel func(model.FeatureRecord) string
}

func (c ProximityConfig) withDefaults() ProximityConfig {
	if c.SampleSize <= 0 {
		c.SampleSize = DefaultSampleSize
	}
	if c.K <= 0 {
		c.K = DefaultNearestK
	}
	if c.Attempts <= 0 {
		c.Attempts = DefaultRetryAttempts
	}
	return c
}

// ClosestPair runs exhaustive-sample proximity analysis: a uniform random
// sample without replacement from the query set, k box-nearest candidates
// per sampled point, exact distance per candidate, single global minimum
// across the whole sample. Returns false when the query set or index is
// empty, or when every distance computation fails on malformed geometry.
func ClosestPair(rng *rand.Rand, query model.Dataset, idx *spatial.Index, indexed model.Dataset, cfg ProximityConfig) (*model.ProximityStory, bool) {
	cfg = cfg.withDefaults()
	if len(query) == 0 || idx.Len() == 0 {
		return nil, false
	}

	sample := sampleIndices(rng, len(query), cfg.SampleSize)

	best := math.Inf(1)
	var bestStory *model.ProximityStory

	for _, qi := range sample {
		rec := query[qi]
		story, dist, ok := nearestTo(rec, idx, indexed, cfg)
		if !ok {
			continue
		}
		if dist < best {
			best = dist
			bestStory = story
		}
	}

	if bestStory == nil {
		return nil, false
	}
	zap.L().Info("proximity: closest pair found",
		zap.Float64("distance_km", bestStory.DistanceKM),
		zap.Int("sample_size", len(sample)),
	)
	return bestStory, true
}

// sampleIndices draws min(k, n) distinct indices uniformly without
// replacement.
func sampleIndices(rng *rand.Rand, n, k int) []int {
	if k > n {
		k = n
	}
	return rng.Perm(n)[:k]
}

// FirstWithinThreshold runs bounded-retry proximity analysis: single
// uniform draws from the query set, one box-nearest candidate each, accept
// the first pair at or under the threshold. This is rejection sampling,
// not a global search; it trades completeness for bounded latency. The
// attempt budget is spent even when draws repeat features.
func FirstWithinThreshold(rng *rand.Rand, query model.Dataset, idx *spatial.Index, indexed model.Dataset, cfg ProximityConfig) (*model.ProximityStory, bool) {
	cfg = cfg.withDefaults()
	if len(query) == 0 || idx.Len() == 0 || cfg.ThresholdKM <= 0 {
		return nil, false
	}

	single := cfg
	single.K = 1

	for attempt := 0; attempt < cfg.Attempts; attempt++ {
		rec := query[rng.IntN(len(query))]
		story, _, ok := nearestTo(rec, idx, indexed, single)
		if !ok {
			continue
		}
		if story.DistanceKM <= cfg.ThresholdKM {
			zap.L().Info("proximity: qualifying pair found",
				zap.Float64("distance_km", story.DistanceKM),
				zap.Int("attempt", attempt+1),
			)
			return story, true
		}
	}

	zap.L().Info("proximity: attempt budget exhausted", zap.Int("attempts", cfg.Attempts))
	return nil, false
}

// nearestTo finds the exact-nearest indexed geometry among the k
// box-nearest candidates for one query record.
func nearestTo(rec model.FeatureRecord, idx *spatial.Index, indexed model.Dataset, cfg ProximityConfig) (*model.ProximityStory, float64, bool) {
	pt, ok := rec.Point()
	if !ok || !pt.Valid() {
		return nil, 0, false
	}
	box, ok := spatial.BoundsOf(rec.Geometry)
	if !ok || !box.Valid() {
		return nil, 0, false
	}

	best := math.Inf(1)
	bestIdx := -1
	for _, di := range idx.KNearest(box, cfg.K) {
		if di < 0 || di >= len(indexed) {
			continue
		}
		d, ok := spatial.PointToGeometry(pt, indexed[di].Geometry)
		if !ok {
			continue
		}
		if d < best {
			best = d
			bestIdx = di
		}
	}
	if bestIdx < 0 {
		return nil, 0, false
	}

	other := indexed[bestIdx]
	otherPt, _ := other.Point()
	story := &model.ProximityStory{
		DistanceKM: best * spatial.DegToKM,
		CoordsA:    pt,
		CoordsB:    otherPt,
	}
	if cfg.QueryLabel != nil {
		story.LabelA = cfg.QueryLabel(rec)
	}
	if cfg.IndexLabel != nil {
		story.LabelB = cfg.IndexLabel(other)
	}
	return story, best, true
}
