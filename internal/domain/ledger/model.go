package ledger

import "time"

// Metadata tracks how far the ledger has been carried forward. LastRefreshed
// is not part of the stored document; it is stamped from the document's own
// write time on read, so it cannot drift from what was actually persisted.
type Metadata struct {
	LastPastMatch   time.Time `json:"lastPastMatch"`
	LastFutureMatch time.Time `json:"lastFutureMatch"`
	LastRefreshed   time.Time `json:"-"`
}
