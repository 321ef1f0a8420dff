package insightlog

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/porkytheunique/ocean-insight/internal/model"
)

// FileStore persists the feed as a single JSON array, newest-first,
// overwritten wholesale on each successful run. The revision token is
// ignored: two concurrent runs against the same file can silently lose an
// append.
type FileStore struct {
	path string
}

// NewFileStore creates a file-backed store at path.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

func (s *FileStore) Load(ctx context.Context) ([]model.InsightEntry, Revision, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			zap.L().Info("insightlog: no existing log, treating as first run", zap.String("path", s.path))
			return nil, 0, nil
		}
		return nil, 0, eris.Wrapf(err, "insightlog: read %s", s.path)
	}

	var entries []model.InsightEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		zap.L().Warn("insightlog: malformed log, treating as first run",
			zap.String("path", s.path),
			zap.Error(err),
		)
		return nil, 0, nil
	}
	return entries, 0, nil
}

func (s *FileStore) Persist(ctx context.Context, entries []model.InsightEntry, rev Revision) error {
	if entries == nil {
		entries = []model.InsightEntry{}
	}
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return eris.Wrap(err, "insightlog: marshal entries")
	}

	// Write to a sibling temp file then rename, so a crashed run never
	// leaves a truncated feed behind.
	tmp := s.path + ".tmp"
	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return eris.Wrapf(err, "insightlog: create dir %s", dir)
		}
	}
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return eris.Wrapf(err, "insightlog: write %s", tmp)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return eris.Wrapf(err, "insightlog: rename %s", s.path)
	}

	zap.L().Info("insightlog: persisted", zap.String("path", s.path), zap.Int("entries", len(entries)))
	return nil
}

func (s *FileStore) Close() error { return nil }
