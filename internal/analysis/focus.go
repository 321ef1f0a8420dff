package analysis

import (
	"go.uber.org/zap"

	"github.com/porkytheunique/ocean-insight/internal/model"
)

// CategoricalFocus finds the most frequent value of one categorical
// property across the dataset. Records without a non-empty value are
// excluded from the count entirely rather than bucketed as a null
// category. Ties break to the value first encountered in dataset order,
// and the representative sample is the coordinates of the first record in
// dataset order carrying the winning value.
func CategoricalFocus(ds model.Dataset, property string) (*model.FocusStory, bool) {
	if len(ds) == 0 || property == "" {
		return nil, false
	}

	counts := make(map[string]int)
	order := make([]string, 0, 32)

	for _, rec := range ds {
		v := rec.Properties[property]
		if v == "" {
			continue
		}
		if _, seen := counts[v]; !seen {
			order = append(order, v)
		}
		counts[v]++
	}

	if len(order) == 0 {
		return nil, false
	}

	winner := order[0]
	for _, v := range order[1:] {
		if counts[v] > counts[winner] {
			winner = v
		}
	}

	for _, rec := range ds {
		if rec.Properties[property] != winner {
			continue
		}
		pt, ok := rec.Point()
		if !ok {
			continue
		}
		story := &model.FocusStory{
			Category:   winner,
			EventCount: counts[winner],
			Sample:     pt,
		}
		zap.L().Info("focus: dominant category found",
			zap.String("property", property),
			zap.String("category", winner),
			zap.Int("count", story.EventCount),
		)
		return story, true
	}

	// Winning category exists but no record yields usable coordinates.
	return nil, false
}
