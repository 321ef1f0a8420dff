package model

// MapView describes how the consumer-facing map should frame an entry.
type MapView struct {
	Center  [2]float64 `json:"center"` // [lon, lat]
	Zoom    int        `json:"zoom"`
	MaxZoom int        `json:"maxZoom"`
}

// InsightEntry is one rendered story in the published feed. Entries are
// created only after narrative generation succeeds and are never mutated
// once appended to the log.
type InsightEntry struct {
	Tag            string  `json:"tag"`
	Content        string  `json:"content"`
	MapView        MapView `json:"map_view"`
	Date           string  `json:"date"` // ISO date, e.g. 2026-08-28
	UniqueID       string  `json:"unique_id,omitempty"`
	SourceURL      string  `json:"source_url,omitempty"`
	SourceHeadline string  `json:"source_headline,omitempty"`
}

// EntryUniqueID derives the deterministic dedup key for a derived
// geospatial story: "<subject>-<date>".
func EntryUniqueID(subject, date string) string {
	return subject + "-" + date
}
