package dedupe

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/porkytheunique/ocean-insight/internal/model"
)

func TestGate_SeenID(t *testing.T) {
	entries := []model.InsightEntry{
		{UniqueID: "hotspot-2026-08-26"},
		{UniqueID: "proximity-2026-08-25"},
	}
	g := NewGate(entries, 0)

	assert.True(t, g.SeenID("hotspot-2026-08-26"))
	assert.False(t, g.SeenID("hotspot-2026-08-27"))
	assert.False(t, g.SeenID("focus-2026-08-26"))
}

func TestGate_SeenHeadline_ExactURL(t *testing.T) {
	entries := []model.InsightEntry{
		{SourceURL: "https://example.org/a", SourceHeadline: "Coral bleaching spreads in the Pacific"},
	}
	g := NewGate(entries, 0)

	assert.True(t, g.SeenHeadline("Totally different title", "https://example.org/a"))
	assert.False(t, g.SeenHeadline("Totally different title", "https://example.org/b"))
}

func TestGate_SeenHeadline_TitleSimilarity(t *testing.T) {
	entries := []model.InsightEntry{
		{SourceURL: "https://example.org/a", SourceHeadline: "Coral bleaching spreads in the Pacific"},
	}
	g := NewGate(entries, 0.9)

	// Near-identical title at a new URL still counts as seen.
	assert.True(t, g.SeenHeadline("Coral bleaching spreads in the Pacific!", "https://example.org/new"))
	assert.False(t, g.SeenHeadline("Deep sea mining permit denied", "https://example.org/new"))
}

func TestGate_Seen_DispatchesOnKind(t *testing.T) {
	entries := []model.InsightEntry{
		{UniqueID: "hotspot-2026-08-28"},
		{SourceURL: "https://example.org/a", SourceHeadline: "Coral bleaching spreads in the Pacific"},
	}
	g := NewGate(entries, 0)

	hotspot := model.StoryCandidate{
		Kind:    model.StoryHotspot,
		Subject: "hotspot",
		Hotspot: &model.HotspotStory{},
	}
	assert.True(t, g.Seen(hotspot, "2026-08-28"))
	assert.False(t, g.Seen(hotspot, "2026-08-29"))

	headline := model.StoryCandidate{
		Kind:     model.StoryHeadline,
		Headline: &model.HeadlineStory{Title: "Coral bleaching spreads in the Pacific", URL: "https://example.org/other"},
	}
	assert.True(t, g.Seen(headline, "2026-08-28"))

	fresh := model.StoryCandidate{
		Kind:     model.StoryHeadline,
		Headline: &model.HeadlineStory{Title: "Whale migration shifts north", URL: "https://example.org/w"},
	}
	assert.False(t, g.Seen(fresh, "2026-08-28"))
}

func TestGate_EmptyLog(t *testing.T) {
	g := NewGate(nil, 0)
	assert.False(t, g.SeenID("anything-2026-08-28"))
	assert.False(t, g.SeenHeadline("A title", "https://example.org/a"))
}
