package source

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/twpayne/go-geom"
)

func TestDecode_FeatureCollection(t *testing.T) {
	doc := `{
		"type": "FeatureCollection",
		"features": [
			{
				"type": "Feature",
				"geometry": {"type": "Point", "coordinates": [10.5, -3.2]},
				"properties": {"NAME": "Reserve A", "area_km2": 120.5, "active": true, "depth": 40, "notes": null}
			},
			{
				"type": "Feature",
				"geometry": {"type": "Polygon", "coordinates": [[[0,0],[1,0],[1,1],[0,1],[0,0]]]},
				"properties": {"NAME": "Reserve B"}
			}
		]
	}`

	ds, err := Decode([]byte(doc))
	require.NoError(t, err)
	require.Len(t, ds, 2)

	pt, ok := ds[0].Geometry.(*geom.Point)
	require.True(t, ok)
	assert.InDelta(t, 10.5, pt.Coords()[0], 1e-12)
	assert.Equal(t, "Reserve A", ds[0].Properties["NAME"])
	assert.Equal(t, "120.5", ds[0].Properties["area_km2"])
	assert.Equal(t, "true", ds[0].Properties["active"])
	assert.Equal(t, "40", ds[0].Properties["depth"])
	assert.NotContains(t, ds[0].Properties, "notes")

	_, ok = ds[1].Geometry.(*geom.Polygon)
	assert.True(t, ok)
}

func TestDecode_SkipsMalformedFeatures(t *testing.T) {
	doc := `{
		"features": [
			{"type": "Feature", "geometry": null, "properties": {}},
			{"type": "Feature", "geometry": {"type": "Point", "coordinates": [1, 2]}, "properties": {}}
		]
	}`

	ds, err := Decode([]byte(doc))
	require.NoError(t, err)
	assert.Len(t, ds, 1)
}

func TestDecode_FlatEntries(t *testing.T) {
	doc := `{
		"entries": [
			{"position": {"lon": 5.1, "lat": -2.3}, "regions": {"eez": ["Peru", "Chile"]}},
			{"position": {"lon": 200, "lat": 0}},
			{"position": {"lon": 0, "lat": 0}}
		]
	}`

	ds, err := Decode([]byte(doc))
	require.NoError(t, err)
	require.Len(t, ds, 2, "out-of-range position is skipped")

	assert.Equal(t, "Peru", ds[0].Properties["eez"], "first region wins")
	pt, ok := ds[0].Point()
	require.True(t, ok)
	assert.InDelta(t, 5.1, pt.Lon, 1e-12)
	assert.InDelta(t, -2.3, pt.Lat, 1e-12)

	assert.NotContains(t, ds[1].Properties, "eez")
}

func TestDecode_BareGeometries(t *testing.T) {
	doc := `{
		"geometries": [
			{"type": "Point", "coordinates": [1, 2]},
			{"type": "Polygon", "coordinates": [[[0,0],[1,0],[1,1],[0,1],[0,0]]]},
			{"type": "Bogus"}
		]
	}`

	ds, err := Decode([]byte(doc))
	require.NoError(t, err)
	assert.Len(t, ds, 2, "unparseable geometry is skipped")
}

func TestDecode_UnrecognizedDocument(t *testing.T) {
	_, err := Decode([]byte(`{"items": []}`))
	assert.Error(t, err)

	_, err = Decode([]byte(`not json`))
	assert.Error(t, err)
}
