// Package dedupe rejects story candidates already represented in the
// published feed. Rejection is a normal, expected outcome: the run ends
// without output and without touching the log, and the operator sees a
// success.
package dedupe

import (
	"github.com/agext/levenshtein"
	"go.uber.org/zap"

	"github.com/porkytheunique/ocean-insight/internal/model"
)

// DefaultSimilarityThreshold is the title-similarity cutoff above which a
// headline counts as already published.
const DefaultSimilarityThreshold = 0.9

// Gate checks candidates against the loaded feed snapshot.
type Gate struct {
	threshold float64
	ids       map[string]struct{}
	urls      map[string]struct{}
	titles    []string
}

// NewGate builds a gate over the existing log entries. threshold <= 0
// selects the default.
func NewGate(entries []model.InsightEntry, threshold float64) *Gate {
	if threshold <= 0 {
		threshold = DefaultSimilarityThreshold
	}
	g := &Gate{
		threshold: threshold,
		ids:       make(map[string]struct{}, len(entries)),
		urls:      make(map[string]struct{}, len(entries)),
	}
	for _, e := range entries {
		if e.UniqueID != "" {
			g.ids[e.UniqueID] = struct{}{}
		}
		if e.SourceURL != "" {
			g.urls[e.SourceURL] = struct{}{}
		}
		if e.SourceHeadline != "" {
			g.titles = append(g.titles, e.SourceHeadline)
		}
	}
	return g
}

// SeenID reports whether a derived-fact candidate with this unique id has
// already been published.
func (g *Gate) SeenID(uniqueID string) bool {
	_, seen := g.ids[uniqueID]
	if seen {
		zap.L().Info("dedupe: rejected by unique id", zap.String("unique_id", uniqueID))
	}
	return seen
}

// SeenHeadline reports whether a headline candidate duplicates a published
// one. Exact URL membership is checked first (O(1)); only then does the
// O(n) similarity scan over prior titles run. Similarity is a normalized
// edit-distance ratio in [0,1].
func (g *Gate) SeenHeadline(title, url string) bool {
	if url != "" {
		if _, seen := g.urls[url]; seen {
			zap.L().Info("dedupe: rejected by source url", zap.String("url", url))
			return true
		}
	}
	for _, prev := range g.titles {
		if sim := levenshtein.Similarity(title, prev, nil); sim > g.threshold {
			zap.L().Info("dedupe: rejected by title similarity",
				zap.String("title", title),
				zap.Float64("similarity", sim),
			)
			return true
		}
	}
	return false
}

// Seen dispatches on the candidate's natural key: headline stories dedup
// by URL and title similarity, everything else by exact unique id.
func (g *Gate) Seen(c model.StoryCandidate, date string) bool {
	if c.Kind == model.StoryHeadline && c.Headline != nil {
		return g.SeenHeadline(c.Headline.Title, c.Headline.URL)
	}
	return g.SeenID(model.EntryUniqueID(c.Subject, date))
}
