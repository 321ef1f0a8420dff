package source

import (
	"path/filepath"
	"testing"

	"github.com/jonas-p/go-shp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/twpayne/go-geom"
)

func TestShapeToGeom_Point(t *testing.T) {
	g := shapeToGeom(&shp.Point{X: -80.19, Y: 25.77})
	pt, ok := g.(*geom.Point)
	require.True(t, ok)
	assert.InDelta(t, -80.19, pt.Coords()[0], 1e-12)
	assert.InDelta(t, 25.77, pt.Coords()[1], 1e-12)
}

func TestShapeToGeom_PolyLine(t *testing.T) {
	pl := &shp.PolyLine{
		NumParts:  2,
		NumPoints: 4,
		Parts:     []int32{0, 2},
		Points: []shp.Point{
			{X: 0, Y: 0}, {X: 1, Y: 1},
			{X: 5, Y: 5}, {X: 6, Y: 6},
		},
	}

	g := shapeToGeom(pl)
	mls, ok := g.(*geom.MultiLineString)
	require.True(t, ok)
	assert.Equal(t, 2, mls.NumLineStrings())
	assert.InDelta(t, 5.0, mls.LineString(1).Coords()[0][0], 1e-12)
}

func TestShapeToGeom_Polygon(t *testing.T) {
	poly := &shp.Polygon{
		NumParts:  1,
		NumPoints: 5,
		Parts:     []int32{0},
		Points: []shp.Point{
			{X: 0, Y: 0}, {X: 4, Y: 0}, {X: 4, Y: 4}, {X: 0, Y: 4}, {X: 0, Y: 0},
		},
	}

	g := shapeToGeom(poly)
	mp, ok := g.(*geom.MultiPolygon)
	require.True(t, ok)
	require.Equal(t, 1, mp.NumPolygons())

	b := mp.Bounds()
	assert.InDelta(t, 0.0, b.Min(0), 1e-12)
	assert.InDelta(t, 4.0, b.Max(0), 1e-12)
}

func TestShapeToGeom_Unsupported(t *testing.T) {
	assert.Nil(t, shapeToGeom(nil))
	assert.Nil(t, shapeToGeom(&shp.MultiPoint{}))
	assert.Nil(t, shapeToGeom(&shp.PolyLine{}))
	assert.Nil(t, shapeToGeom(&shp.Polygon{}))
}

func TestLoadShapefile_MissingFile(t *testing.T) {
	_, err := LoadShapefile(filepath.Join(t.TempDir(), "missing.shp"))
	assert.Error(t, err)
}
