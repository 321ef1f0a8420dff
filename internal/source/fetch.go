package source

import (
	"context"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/porkytheunique/ocean-insight/internal/model"
)

// DataSource supplies structured datasets to the engine. Implementations
// are single blocking calls: one failure fails the whole run, there is no
// retry loop behind this interface.
type DataSource interface {
	Fetch(ctx context.Context, url string) (model.Dataset, error)
}

// HTTPSource fetches dataset documents over HTTP and decodes them. A
// shared rate limiter keeps back-to-back dataset loads polite toward the
// static host serving them.
type HTTPSource struct {
	client  *http.Client
	limiter *rate.Limiter
	agent   string
}

// HTTPOptions configures an HTTPSource.
type HTTPOptions struct {
	UserAgent      string
	Timeout        time.Duration
	RequestsPerSec float64
}

// NewHTTPSource creates an HTTP data source with the given options.
func NewHTTPSource(opts HTTPOptions) *HTTPSource {
	if opts.Timeout == 0 {
		opts.Timeout = 60 * time.Second
	}
	if opts.UserAgent == "" {
		opts.UserAgent = "ocean-insight/1.0"
	}
	if opts.RequestsPerSec <= 0 {
		opts.RequestsPerSec = 2
	}
	return &HTTPSource{
		client:  &http.Client{Timeout: opts.Timeout},
		limiter: rate.NewLimiter(rate.Limit(opts.RequestsPerSec), 1),
		agent:   opts.UserAgent,
	}
}

// Fetch downloads and decodes one dataset document.
func (s *HTTPSource) Fetch(ctx context.Context, url string) (model.Dataset, error) {
	if err := s.limiter.Wait(ctx); err != nil {
		return nil, eris.Wrap(err, "source: rate limiter wait")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, eris.Wrap(err, "source: create request")
	}
	req.Header.Set("User-Agent", s.agent)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, eris.Wrapf(err, "source: fetch %s", url)
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode != http.StatusOK {
		return nil, eris.Errorf("source: unexpected status %d from %s", resp.StatusCode, url)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, eris.Wrapf(err, "source: read %s", url)
	}

	ds, err := Decode(data)
	if err != nil {
		return nil, err
	}
	zap.L().Info("source: dataset loaded", zap.String("url", url), zap.Int("records", len(ds)))
	return ds, nil
}

// FileSource reads dataset documents from local paths. Useful for cached
// snapshots and tests; the url argument is interpreted as a path.
type FileSource struct{}

// Fetch reads and decodes one local dataset document.
func (FileSource) Fetch(ctx context.Context, path string) (model.Dataset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "source: read %s", path)
	}
	return Decode(data)
}
