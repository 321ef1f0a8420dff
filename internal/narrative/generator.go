// Package narrative turns a selected story candidate into the display text
// of a feed entry. Generation is an external call that fails independently
// of the analysis; a failure aborts the run before the log is touched.
package narrative

import (
	"context"
	"fmt"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/porkytheunique/ocean-insight/internal/model"
	"github.com/porkytheunique/ocean-insight/pkg/anthropic"
)

// Generator maps a story candidate to a finished feed entry.
type Generator interface {
	Render(ctx context.Context, c model.StoryCandidate, date string) (*model.InsightEntry, error)
}

// Options tunes how rendered entries frame the map.
type Options struct {
	Model     string
	MaxTokens int64
	Zoom      int
	MaxZoom   int
}

// AnthropicGenerator renders narratives with the Anthropic messages API.
type AnthropicGenerator struct {
	client anthropic.Client
	opts   Options
}

// NewAnthropic creates a generator backed by the given client.
func NewAnthropic(client anthropic.Client, opts Options) *AnthropicGenerator {
	if opts.MaxTokens <= 0 {
		opts.MaxTokens = 400
	}
	if opts.Zoom <= 0 {
		opts.Zoom = 4
	}
	if opts.MaxZoom <= 0 {
		opts.MaxZoom = 10
	}
	return &AnthropicGenerator{client: client, opts: opts}
}

const systemPrompt = "You write one short, factual paragraph for an ocean activity feed. " +
	"No headlines, no emoji, no speculation beyond the provided numbers."

// Render generates display text for the candidate and assembles the final
// entry. The entry is created only here, after generation succeeds.
func (g *AnthropicGenerator) Render(ctx context.Context, c model.StoryCandidate, date string) (*model.InsightEntry, error) {
	prompt, err := buildPrompt(c)
	if err != nil {
		return nil, err
	}

	resp, err := g.client.CreateMessage(ctx, anthropic.MessageRequest{
		Model:     g.opts.Model,
		MaxTokens: g.opts.MaxTokens,
		System:    systemPrompt,
		Prompt:    prompt,
	})
	if err != nil {
		return nil, eris.Wrap(err, "narrative: generate")
	}
	resp.Usage.LogUsage(resp.Model, "narrative")

	content := strings.TrimSpace(resp.Text)
	if content == "" {
		return nil, eris.New("narrative: generator returned empty content")
	}

	center := c.Center()
	entry := &model.InsightEntry{
		Tag:     string(c.Kind),
		Content: content,
		MapView: model.MapView{
			Center:  [2]float64{center.Lon, center.Lat},
			Zoom:    g.opts.Zoom,
			MaxZoom: g.opts.MaxZoom,
		},
		Date: date,
	}
	if c.Kind == model.StoryHeadline && c.Headline != nil {
		entry.SourceURL = c.Headline.URL
		entry.SourceHeadline = c.Headline.Title
	} else {
		entry.UniqueID = model.EntryUniqueID(c.Subject, date)
	}
	return entry, nil
}

func buildPrompt(c model.StoryCandidate) (string, error) {
	switch c.Kind {
	case model.StoryProximity:
		p := c.Proximity
		if p == nil {
			return "", eris.New("narrative: proximity candidate without payload")
		}
		return fmt.Sprintf(
			"Write about %s at (%.4f, %.4f) being %.1f km from %s.",
			orUnnamed(p.LabelA), p.CoordsA.Lon, p.CoordsA.Lat, p.DistanceKM, orUnnamed(p.LabelB),
		), nil
	case model.StoryHotspot:
		h := c.Hotspot
		if h == nil {
			return "", eris.New("narrative: hotspot candidate without payload")
		}
		return fmt.Sprintf(
			"Write about %d events clustered around (%.2f, %.2f), the busiest area in the current dataset.",
			h.EventCount, h.Center.Lon, h.Center.Lat,
		), nil
	case model.StoryFocus:
		f := c.Focus
		if f == nil {
			return "", eris.New("narrative: focus candidate without payload")
		}
		return fmt.Sprintf(
			"Write about zone %q leading the dataset with %d events, for example near (%.2f, %.2f).",
			f.Category, f.EventCount, f.Sample.Lon, f.Sample.Lat,
		), nil
	case model.StoryHeadline:
		h := c.Headline
		if h == nil {
			return "", eris.New("narrative: headline candidate without payload")
		}
		return fmt.Sprintf("Summarize this headline in one neutral sentence: %q", h.Title), nil
	default:
		return "", eris.Errorf("narrative: unknown story kind %q", c.Kind)
	}
}

func orUnnamed(label string) string {
	if label == "" {
		return "an unnamed feature"
	}
	return label
}
