// Package source loads raw datasets and normalizes them into the common
// FeatureRecord model. Three input dialects exist in the wild: GeoJSON
// FeatureCollections, flat event records with position/regions fields, and
// bare geometry lists. Each gets an explicit adapter instead of ad-hoc
// shape probing.
package source

import (
	"encoding/json"
	"fmt"

	"github.com/rotisserie/eris"
	"github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/encoding/geojson"
	"go.uber.org/zap"

	"github.com/porkytheunique/ocean-insight/internal/model"
)

// document is the tagged union of the supported input dialects. Exactly
// one of the three lists is expected to be present.
type document struct {
	Features   []json.RawMessage `json:"features"`
	Entries    []flatEntry       `json:"entries"`
	Geometries []json.RawMessage `json:"geometries"`
}

type flatEntry struct {
	Position struct {
		Lon float64 `json:"lon"`
		Lat float64 `json:"lat"`
	} `json:"position"`
	Regions struct {
		EEZ []string `json:"eez"`
	} `json:"regions"`
}

// Decode normalizes a raw dataset document into a Dataset, preserving
// source order. Individual malformed records are skipped with a log line;
// a document matching none of the dialects is an error.
func Decode(data []byte) (model.Dataset, error) {
	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, eris.Wrap(err, "source: parse dataset document")
	}

	switch {
	case len(doc.Features) > 0:
		return decodeFeatures(doc.Features), nil
	case len(doc.Entries) > 0:
		return decodeEntries(doc.Entries), nil
	case len(doc.Geometries) > 0:
		return decodeGeometries(doc.Geometries), nil
	default:
		return nil, eris.New("source: document has no features, entries, or geometries")
	}
}

func decodeFeatures(raw []json.RawMessage) model.Dataset {
	ds := make(model.Dataset, 0, len(raw))
	skipped := 0
	for _, r := range raw {
		var f geojson.Feature
		if err := json.Unmarshal(r, &f); err != nil || f.Geometry == nil {
			skipped++
			continue
		}
		ds = append(ds, model.FeatureRecord{
			Geometry:   f.Geometry,
			Properties: stringProperties(f.Properties),
		})
	}
	if skipped > 0 {
		zap.L().Warn("source: skipped malformed features", zap.Int("skipped", skipped))
	}
	return ds
}

func decodeEntries(entries []flatEntry) model.Dataset {
	ds := make(model.Dataset, 0, len(entries))
	skipped := 0
	for _, e := range entries {
		pt := model.GeoPoint{Lon: e.Position.Lon, Lat: e.Position.Lat}
		if !pt.Valid() {
			skipped++
			continue
		}
		props := map[string]string{}
		if len(e.Regions.EEZ) > 0 {
			props["eez"] = e.Regions.EEZ[0]
		}
		ds = append(ds, model.FeatureRecord{
			Geometry:   geom.NewPointFlat(geom.XY, []float64{pt.Lon, pt.Lat}),
			Properties: props,
		})
	}
	if skipped > 0 {
		zap.L().Warn("source: skipped entries with out-of-range positions", zap.Int("skipped", skipped))
	}
	return ds
}

func decodeGeometries(raw []json.RawMessage) model.Dataset {
	ds := make(model.Dataset, 0, len(raw))
	skipped := 0
	for _, r := range raw {
		var g geom.T
		if err := geojson.Unmarshal(r, &g); err != nil || g == nil {
			skipped++
			continue
		}
		ds = append(ds, model.FeatureRecord{
			Geometry:   g,
			Properties: map[string]string{},
		})
	}
	if skipped > 0 {
		zap.L().Warn("source: skipped malformed geometries", zap.Int("skipped", skipped))
	}
	return ds
}

// stringProperties flattens GeoJSON property values to strings. Nested
// objects and arrays are dropped; analyzers only consume scalar labels.
func stringProperties(props map[string]any) map[string]string {
	out := make(map[string]string, len(props))
	for k, v := range props {
		switch val := v.(type) {
		case string:
			out[k] = val
		case float64:
			out[k] = trimFloat(val)
		case bool:
			out[k] = fmt.Sprintf("%t", val)
		case nil:
			// absent value, excluded from categorical counts
		}
	}
	return out
}

func trimFloat(f float64) string {
	if f == float64(int64(f)) {
		return fmt.Sprintf("%d", int64(f))
	}
	return fmt.Sprintf("%g", f)
}
