// Package insightlog persists the published feed: an ordered, newest-first
// sequence of insight entries. The whole log is read once at run start,
// mutated by at most one insert-at-head, and written back wholesale at run
// end. There is no locking between concurrent runs; the read-modify-write
// race is a known weakness of the feed, so the storage contract carries a
// revision token that a backend can start enforcing without changing
// callers.
package insightlog

import (
	"context"

	"github.com/porkytheunique/ocean-insight/internal/model"
)

// Revision is an opaque optimistic-concurrency token returned by Load and
// handed back to Persist. Current backends do not enforce it.
type Revision int64

// Store is the persistence interface for the insight feed.
type Store interface {
	// Load returns the existing entries newest-first, or an empty slice
	// when the backing store is missing, unreadable, or malformed (treated
	// as a first run, not an error).
	Load(ctx context.Context) ([]model.InsightEntry, Revision, error)

	// Persist replaces the stored log with entries in one shot.
	Persist(ctx context.Context, entries []model.InsightEntry, rev Revision) error

	Close() error
}

// Prepend returns the log with e inserted at the head. Newest-first
// ordering is an invariant the consumer-facing feed depends on.
func Prepend(entries []model.InsightEntry, e model.InsightEntry) []model.InsightEntry {
	out := make([]model.InsightEntry, 0, len(entries)+1)
	out = append(out, e)
	return append(out, entries...)
}
