package model

// StoryKind discriminates StoryCandidate variants.
type StoryKind string

const (
	StoryProximity StoryKind = "proximity"
	StoryHotspot   StoryKind = "hotspot"
	StoryFocus     StoryKind = "focus"
	StoryHeadline  StoryKind = "headline"
)

// ProximityStory is a notable near-pair between a query feature and an
// indexed geometry.
type ProximityStory struct {
	DistanceKM float64  `json:"distance_km"`
	CoordsA    GeoPoint `json:"coords_a"`
	CoordsB    GeoPoint `json:"coords_b"`
	LabelA     string   `json:"label_a"`
	LabelB     string   `json:"label_b"`
}

// HotspotStory is the busiest fixed-size grid cell over a point dataset.
type HotspotStory struct {
	Center     GeoPoint `json:"center"`
	EventCount int      `json:"event_count"`
}

// FocusStory is the most frequent categorical attribute value and one
// representative record.
type FocusStory struct {
	Category   string   `json:"category"`
	EventCount int      `json:"event_count"`
	Sample     GeoPoint `json:"sample"`
}

// HeadlineStory is an externally sourced headline candidate. It flows
// through the text-similarity side of the dedup gate rather than the
// derived-fact side.
type HeadlineStory struct {
	Title string `json:"title"`
	URL   string `json:"url"`
}

// StoryCandidate is a tagged union over the analyzer outputs. Exactly one
// payload pointer is non-nil, matching Kind. It carries enough data for
// the narrative generator to render display text without re-querying.
type StoryCandidate struct {
	Kind      StoryKind       `json:"kind"`
	Subject   string          `json:"subject"`
	Proximity *ProximityStory `json:"proximity,omitempty"`
	Hotspot   *HotspotStory   `json:"hotspot,omitempty"`
	Focus     *FocusStory     `json:"focus,omitempty"`
	Headline  *HeadlineStory  `json:"headline,omitempty"`
}

// Center returns the map coordinate the story should focus on.
func (c StoryCandidate) Center() GeoPoint {
	switch c.Kind {
	case StoryProximity:
		if c.Proximity != nil {
			return c.Proximity.CoordsA
		}
	case StoryHotspot:
		if c.Hotspot != nil {
			return c.Hotspot.Center
		}
	case StoryFocus:
		if c.Focus != nil {
			return c.Focus.Sample
		}
	}
	return GeoPoint{}
}
