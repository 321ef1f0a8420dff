package source

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/porkytheunique/ocean-insight/internal/model"
)

// headlineDocument is the wire shape of the curated news feed.
type headlineDocument struct {
	Articles []struct {
		Title string `json:"title"`
		URL   string `json:"url"`
	} `json:"articles"`
}

// HeadlineFeed fetches keyword-filtered headlines from a JSON feed
// endpoint. It satisfies the engine's HeadlineSource.
type HeadlineFeed struct {
	http    *HTTPSource
	feedURL string
}

// NewHeadlineFeed creates a headline source over the given endpoint.
func NewHeadlineFeed(http *HTTPSource, feedURL string) *HeadlineFeed {
	return &HeadlineFeed{http: http, feedURL: feedURL}
}

// Headlines fetches the feed filtered by keywords, preserving feed order.
func (f *HeadlineFeed) Headlines(ctx context.Context, keywords []string) ([]model.HeadlineStory, error) {
	u, err := url.Parse(f.feedURL)
	if err != nil {
		return nil, eris.Wrapf(err, "source: parse feed url %s", f.feedURL)
	}
	if len(keywords) > 0 {
		q := u.Query()
		q.Set("q", strings.Join(keywords, ","))
		u.RawQuery = q.Encode()
	}

	if err := f.http.limiter.Wait(ctx); err != nil {
		return nil, eris.Wrap(err, "source: rate limiter wait")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, eris.Wrap(err, "source: create request")
	}
	req.Header.Set("User-Agent", f.http.agent)

	resp, err := f.http.client.Do(req)
	if err != nil {
		return nil, eris.Wrapf(err, "source: fetch %s", u.String())
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode != http.StatusOK {
		return nil, eris.Errorf("source: unexpected status %d from %s", resp.StatusCode, u.String())
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, eris.Wrap(err, "source: read headline feed")
	}

	var doc headlineDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, eris.Wrap(err, "source: parse headline feed")
	}

	out := make([]model.HeadlineStory, 0, len(doc.Articles))
	for _, a := range doc.Articles {
		if a.Title == "" {
			continue
		}
		out = append(out, model.HeadlineStory{Title: a.Title, URL: a.URL})
	}
	zap.L().Info("source: headlines loaded", zap.Int("count", len(out)))
	return out, nil
}
