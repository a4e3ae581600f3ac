// Package docstore provides a small keyed JSON document store. The ledger
// persists everything as documents grouped into collections, so the storage
// backend only needs get/set/delete/stream semantics, not a relational
// schema per entity.
package docstore

import (
	"context"
	"time"
)

// Collection names used by the ledger.
const (
	CollectionPastMatches     = "pastMatches"
	CollectionUpcomingMatches = "upcomingMatches"
	CollectionSnapshots       = "snapshots"
)

// Store persists JSON documents keyed by (collection, key). Writes report
// the document's server-side update time so callers can surface data
// freshness without keeping their own clocks.
type Store interface {
	// Get unmarshals the document into out. The returned time is the
	// document's last write time; found is false when no document exists.
	Get(ctx context.Context, collection, key string, out any) (updatedAt time.Time, found bool, err error)
	// Set marshals value and upserts it under (collection, key).
	Set(ctx context.Context, collection, key string, value any) (updatedAt time.Time, err error)
	// Delete removes the document if present. Deleting a missing document
	// is not an error.
	Delete(ctx context.Context, collection, key string) error
	// Stream invokes fn for every document in the collection, in key
	// order. Iteration stops at the first error fn returns.
	Stream(ctx context.Context, collection string, fn func(key string, raw []byte) error) error
}
