package model

import (
	"github.com/twpayne/go-geom"
)

// GeoPoint is a longitude/latitude pair in floating-point degrees.
type GeoPoint struct {
	Lon float64 `json:"lon"`
	Lat float64 `json:"lat"`
}

// Valid reports whether the point lies inside the WGS84 coordinate range.
// Source data does not enforce this, so adapters must check it themselves.
func (p GeoPoint) Valid() bool {
	return p.Lon >= -180 && p.Lon <= 180 && p.Lat >= -90 && p.Lat <= 90
}

// FeatureRecord is one normalized source record: a geometry plus its
// string-keyed properties. Property insertion order is irrelevant.
type FeatureRecord struct {
	Geometry   geom.T
	Properties map[string]string
}

// Prop returns the named property or the fallback when absent or empty.
func (f FeatureRecord) Prop(key, fallback string) string {
	if v, ok := f.Properties[key]; ok && v != "" {
		return v
	}
	return fallback
}

// Point returns the record's representative coordinate. For point
// geometries this is the point itself; for everything else it is the
// bounding-box center. ok is false for nil or empty geometries.
func (f FeatureRecord) Point() (GeoPoint, bool) {
	if f.Geometry == nil {
		return GeoPoint{}, false
	}
	if p, isPoint := f.Geometry.(*geom.Point); isPoint {
		c := p.Coords()
		if len(c) < 2 {
			return GeoPoint{}, false
		}
		return GeoPoint{Lon: c[0], Lat: c[1]}, true
	}
	b := f.Geometry.Bounds()
	if b == nil || b.IsEmpty() {
		return GeoPoint{}, false
	}
	return GeoPoint{
		Lon: (b.Min(0) + b.Max(0)) / 2,
		Lat: (b.Min(1) + b.Max(1)) / 2,
	}, true
}

// Dataset is an ordered sequence of feature records. Order matches the
// source document and is load-bearing: tie-breaks and representative
// samples are defined as first-in-dataset-order.
type Dataset []FeatureRecord
