package spatial

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/twpayne/go-geom"

	"github.com/porkytheunique/ocean-insight/internal/model"
)

func rectPolygon(minX, minY, maxX, maxY float64) *geom.Polygon {
	poly := geom.NewPolygonFlat(geom.XY, []float64{
		minX, minY,
		maxX, minY,
		maxX, maxY,
		minX, maxY,
		minX, minY,
	}, []int{10})
	return poly
}

func TestBoxValid(t *testing.T) {
	assert.True(t, Box{MinX: -1, MinY: -1, MaxX: 1, MaxY: 1}.Valid())
	assert.True(t, Box{MinX: 0, MinY: 0, MaxX: 0, MaxY: 0}.Valid())
	assert.False(t, Box{MinX: 1, MinY: 0, MaxX: -1, MaxY: 1}.Valid())
	assert.False(t, Box{MinX: 0, MinY: 1, MaxX: 1, MaxY: -1}.Valid())
}

func TestBuildIndex_ExcludesUnindexable(t *testing.T) {
	ds := model.Dataset{
		{Geometry: rectPolygon(0, 0, 1, 1)},
		{Geometry: geom.NewPolygon(geom.XY)}, // empty, no bounds
		{Geometry: geom.NewPointFlat(geom.XY, []float64{5, 5})},
		{Geometry: nil},
	}

	idx := BuildIndex(ds)
	assert.Equal(t, 2, idx.Len())
}

func TestKNearest_OrderAndLimit(t *testing.T) {
	ds := model.Dataset{
		{Geometry: rectPolygon(0, 0, 1, 1)},
		{Geometry: rectPolygon(10, 10, 11, 11)},
		{Geometry: rectPolygon(20, 20, 21, 21)},
	}
	idx := BuildIndex(ds)

	query := Box{MinX: 0.5, MinY: 0.5, MaxX: 0.5, MaxY: 0.5}
	got := idx.KNearest(query, 2)
	require.Len(t, got, 2)
	assert.Equal(t, 0, got[0])
	assert.Equal(t, 1, got[1])

	assert.Len(t, idx.KNearest(query, 10), 3)
	assert.Empty(t, idx.KNearest(query, 0))
}

// With k at least the dataset size, the best exact distance over the
// index results must equal the best exact distance over the whole
// dataset.
func TestKNearest_CompleteAtFullK(t *testing.T) {
	ds := model.Dataset{
		{Geometry: rectPolygon(3, 3, 4, 4)},
		{Geometry: rectPolygon(-8, -2, -6, 0)},
		{Geometry: rectPolygon(50, 50, 60, 60)},
		{Geometry: geom.NewPointFlat(geom.XY, []float64{1, 1})},
	}
	idx := BuildIndex(ds)
	p := model.GeoPoint{Lon: 0, Lat: 0}

	bruteBest := math.Inf(1)
	for _, rec := range ds {
		if d, ok := PointToGeometry(p, rec.Geometry); ok && d < bruteBest {
			bruteBest = d
		}
	}

	indexBest := math.Inf(1)
	for _, di := range idx.KNearest(Box{}, len(ds)) {
		if d, ok := PointToGeometry(p, ds[di].Geometry); ok && d < indexBest {
			indexBest = d
		}
	}

	assert.InDelta(t, bruteBest, indexBest, 1e-12)
}

func TestBoundsOf(t *testing.T) {
	box, ok := BoundsOf(rectPolygon(-3, 1, 2, 5))
	require.True(t, ok)
	assert.Equal(t, Box{MinX: -3, MinY: 1, MaxX: 2, MaxY: 5}, box)

	_, ok = BoundsOf(nil)
	assert.False(t, ok)

	_, ok = BoundsOf(geom.NewPolygon(geom.XY))
	assert.False(t, ok)
}
