// Package spatial builds bounding-box indexes over geometry datasets and
// computes exact point-to-shape distances. The index answers "k nearest by
// bounding box" only; box-nearest is not shape-nearest, so callers must
// recompute true distance for every candidate it returns.
package spatial

import (
	"github.com/tidwall/rtree"
	"github.com/twpayne/go-geom"
	"go.uber.org/zap"

	"github.com/porkytheunique/ocean-insight/internal/model"
)

// Box is an axis-aligned bounding box in lon/lat degrees.
type Box struct {
	MinX, MinY, MaxX, MaxY float64
}

// Valid reports whether the box is indexable. Malformed source geometries
// (antimeridian-crossing or empty polygons) can produce inverted boxes that
// would corrupt nearest-neighbor results, so they are filtered out.
func (b Box) Valid() bool {
	return b.MinX <= b.MaxX && b.MinY <= b.MaxY
}

// BoundsOf returns the bounding box of a geometry. ok is false for nil or
// empty geometries.
func BoundsOf(g geom.T) (Box, bool) {
	if g == nil {
		return Box{}, false
	}
	b := g.Bounds()
	if b == nil || b.IsEmpty() {
		return Box{}, false
	}
	return Box{MinX: b.Min(0), MinY: b.Min(1), MaxX: b.Max(0), MaxY: b.Max(1)}, true
}

// Index is an immutable R-tree over the indexable subset of one dataset
// snapshot. It stores dataset indices, not geometry copies: excluded
// entries shift positions, so slots map back to the original dataset.
type Index struct {
	tree rtree.RTreeG[int]
	size int
}

// BuildIndex indexes every geometry in ds whose bounding box is valid.
// Degenerate boxes are skipped and debug-logged, never treated as errors.
// The index is built once per analysis run and must not be mutated after.
func BuildIndex(ds model.Dataset) *Index {
	idx := &Index{}
	skipped := 0
	for i, rec := range ds {
		box, ok := BoundsOf(rec.Geometry)
		if !ok || !box.Valid() {
			skipped++
			zap.L().Debug("spatial: skipping unindexable geometry", zap.Int("dataset_index", i))
			continue
		}
		idx.tree.Insert([2]float64{box.MinX, box.MinY}, [2]float64{box.MaxX, box.MaxY}, i)
		idx.size++
	}
	if skipped > 0 {
		zap.L().Info("spatial: index built with exclusions",
			zap.Int("indexed", idx.size),
			zap.Int("skipped", skipped),
		)
	}
	return idx
}

// Len returns the number of indexed geometries.
func (idx *Index) Len() int { return idx.size }

// KNearest returns the dataset indices of up to k geometries whose bounding
// boxes are nearest to the query box, nearest-first.
func (idx *Index) KNearest(query Box, k int) []int {
	if idx.size == 0 || k <= 0 {
		return nil
	}
	out := make([]int, 0, k)
	idx.tree.Nearby(
		rtree.BoxDist[float64, int](
			[2]float64{query.MinX, query.MinY},
			[2]float64{query.MaxX, query.MaxY},
			nil,
		),
		func(min, max [2]float64, data int, dist float64) bool {
			out = append(out, data)
			return len(out) < k
		},
	)
	return out
}
