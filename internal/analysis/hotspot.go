package analysis

import (
	"math"

	"go.uber.org/zap"

	"github.com/porkytheunique/ocean-insight/internal/model"
)

// DefaultCellSizeDeg is the hotspot grid edge length in degrees.
const DefaultCellSizeDeg = 5.0

type gridCell struct {
	lon, lat float64
}

// GridHotspot partitions the plane into fixed-size cells and returns the
// busiest one. This is a full single-pass scan over the dataset, never a
// sample. Cell origins use floor division, so negative coordinates round
// toward negative infinity: lon -1.6 at cell size 5 lands in cell -5, not 0.
//
// Ties on the maximum count break to the cell first encountered in scan
// order. That policy is implementation-defined but deterministic for a
// fixed dataset order, which is what the feed's reproducibility relies on.
func GridHotspot(ds model.Dataset, cellSize float64) (*model.HotspotStory, bool) {
	if cellSize <= 0 {
		cellSize = DefaultCellSizeDeg
	}
	if len(ds) == 0 {
		return nil, false
	}

	counts := make(map[gridCell]int)
	order := make([]gridCell, 0, 64) // first-seen order, for stable tie-breaks

	for _, rec := range ds {
		pt, ok := rec.Point()
		if !ok || !pt.Valid() {
			continue
		}
		cell := gridCell{
			lon: math.Floor(pt.Lon/cellSize) * cellSize,
			lat: math.Floor(pt.Lat/cellSize) * cellSize,
		}
		if _, seen := counts[cell]; !seen {
			order = append(order, cell)
		}
		counts[cell]++
	}

	if len(order) == 0 {
		return nil, false
	}

	winner := order[0]
	for _, cell := range order[1:] {
		if counts[cell] > counts[winner] {
			winner = cell
		}
	}

	story := &model.HotspotStory{
		Center: model.GeoPoint{
			Lon: winner.lon + cellSize/2,
			Lat: winner.lat + cellSize/2,
		},
		EventCount: counts[winner],
	}
	zap.L().Info("hotspot: busiest cell found",
		zap.Float64("center_lon", story.Center.Lon),
		zap.Float64("center_lat", story.Center.Lat),
		zap.Int("count", story.EventCount),
	)
	return story, true
}
