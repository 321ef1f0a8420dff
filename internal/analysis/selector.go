package analysis

import (
	"math/rand/v2"

	"go.uber.org/zap"

	"github.com/porkytheunique/ocean-insight/internal/model"
)

// Analyzer is one entry in the story roulette: a named strategy whose
// required datasets have already been verified present. Strategies with
// missing inputs must be excluded before the draw, never invoked with
// missing data.
type Analyzer struct {
	Name string
	Run  func() (*model.StoryCandidate, bool)
}

// Pick selects one analyzer uniformly at random. ok is false when the
// candidate set is empty, which the engine reports as insufficient data.
func Pick(rng *rand.Rand, available []Analyzer) (Analyzer, bool) {
	if len(available) == 0 {
		return Analyzer{}, false
	}
	chosen := available[rng.IntN(len(available))]
	zap.L().Info("selector: story roulette",
		zap.String("analyzer", chosen.Name),
		zap.Int("candidates", len(available)),
	)
	return chosen, true
}
